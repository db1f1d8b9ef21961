// Package auth resolves bearer credentials into principals. The identity
// provider itself is external; this package only verifies what it issued.
package auth

import "github.com/quayside-pos/quayside-pos/internal/shared"

// Verifier turns a bearer credential into a principal.
type Verifier interface {
	Verify(token string) (*shared.Principal, error)
}
