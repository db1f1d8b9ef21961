package permissions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogCounts(t *testing.T) {
	assert.Len(t, Keys(RoleOwner), 13)
	assert.Len(t, Keys(RoleManager), 13)
	assert.Len(t, Keys(RoleWaiter), 5)
	assert.Len(t, Keys(RoleEmployee), 3)
	assert.Len(t, Grants(), 34)
}

func TestCatalogGrantsHaveNoDuplicates(t *testing.T) {
	seen := make(map[Grant]struct{})
	for _, grant := range Grants() {
		_, dup := seen[grant]
		require.False(t, dup, "duplicate grant %v", grant)
		seen[grant] = struct{}{}
	}
}

func TestCatalogGrantsAreDeterministic(t *testing.T) {
	assert.Equal(t, Grants(), Grants())
	first := Grants()[0]
	assert.Equal(t, RoleOwner, first.Role)
	assert.Equal(t, "TAB_CREATE", first.Key)
}

func TestIsValidRole(t *testing.T) {
	for _, role := range Roles() {
		assert.True(t, IsValidRole(role), role)
	}
	assert.False(t, IsValidRole("admin"))
	assert.False(t, IsValidRole(""))
}

func TestKeysPanicsOnUnknownRole(t *testing.T) {
	assert.Panics(t, func() { Keys("admin") })
}

func TestKeysReturnsCopy(t *testing.T) {
	keys := Keys(RoleWaiter)
	keys[0] = "mutated"
	assert.Equal(t, "TAB_CREATE", Keys(RoleWaiter)[0])
}
