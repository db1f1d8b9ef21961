package shared

import "fmt"

// InviteAcceptLockKey builds redis keys for the invitation acceptance critical
// section. The row-level conditional update remains the final arbiter; the lock
// only short-circuits concurrent accepts of the same token.
func InviteAcceptLockKey(inviteID string) string {
	return fmt.Sprintf("invites:%s:accept:lock", inviteID)
}
