// Package permissions holds the fixed role-to-permission matrix seeded into
// every new tenant. The catalog is compiled in and never mutated at runtime.
package permissions

import "fmt"

// Known roles.
const (
	RoleOwner    = "owner"
	RoleManager  = "manager"
	RoleWaiter   = "waiter"
	RoleEmployee = "employee"
)

// Grant is one (role, permission key) pair from the catalog.
type Grant struct {
	Role string
	Key  string
}

var managementKeys = []string{
	"TAB_CREATE",
	"TAB_ADD_ITEM",
	"TAB_ADD_TIP",
	"TAB_CLOSE",
	"PAYMENT_RECORD_BAR",
	"PAYMENT_RECORD_CARWASH",
	"TIP_PAYOUT",
	"STOCK_ADJUST",
	"CARWASH_CREATE_ORDER",
	"CARWASH_ADD_ITEM",
	"CARWASH_FINISH",
	"USERS_MANAGE",
	"CONFIG_MANAGE",
}

var keysByRole = map[string][]string{
	RoleOwner:   managementKeys,
	RoleManager: managementKeys,
	RoleWaiter: {
		"TAB_CREATE",
		"TAB_ADD_ITEM",
		"TAB_ADD_TIP",
		"TAB_CLOSE",
		"PAYMENT_RECORD_BAR",
	},
	RoleEmployee: {
		"CARWASH_CREATE_ORDER",
		"CARWASH_ADD_ITEM",
		"CARWASH_FINISH",
	},
}

// roleOrder keeps Roles and Grants deterministic.
var roleOrder = []string{RoleOwner, RoleManager, RoleWaiter, RoleEmployee}

// Roles returns all known roles in stable order.
func Roles() []string {
	out := make([]string, len(roleOrder))
	copy(out, roleOrder)
	return out
}

// IsValidRole reports whether the role exists in the catalog.
func IsValidRole(role string) bool {
	_, ok := keysByRole[role]
	return ok
}

// Keys returns the permission keys granted to the role. Looking up an unknown
// role is a programming error: roles are validated against this catalog before
// reaching here.
func Keys(role string) []string {
	keys, ok := keysByRole[role]
	if !ok {
		panic(fmt.Sprintf("permissions: unknown role %q", role))
	}
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// Grants flattens the catalog into (role, key) pairs in stable order.
func Grants() []Grant {
	var out []Grant
	for _, role := range roleOrder {
		for _, key := range keysByRole[role] {
			out = append(out, Grant{Role: role, Key: key})
		}
	}
	return out
}
