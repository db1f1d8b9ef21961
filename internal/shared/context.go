package shared

import (
	"context"

	"github.com/google/uuid"
)

// Principal is the authenticated actor resolved from the bearer credential.
type Principal struct {
	ID    uuid.UUID
	Email string
}

type principalContextKey struct{}

// ContextWithPrincipal stores the principal in context.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext extracts the principal from context.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalContextKey{}).(*Principal)
	return p
}
