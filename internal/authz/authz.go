// Package authz centralizes the identity, role, and ownership checks that
// gate every sensitive handler. The checks always run in that order and
// short-circuit on the first failure.
package authz

import "madaba-market-be/internal/identity"

type Reason int

const (
	ReasonNone Reason = iota
	ReasonUnauthenticated
	ReasonRole
	ReasonOwnership
)

type Decision struct {
	Allowed bool
	Reason  Reason
}

var allowed = Decision{Allowed: true}

// Check gates an operation. ownerID is the id of the resource owner, or empty
// when the operation is not scoped to a resource. Admins pass the ownership
// check unconditionally.
func Check(caller *identity.Identity, allowedRoles []identity.Role, ownerID string) Decision {
	if caller == nil {
		return Decision{Reason: ReasonUnauthenticated}
	}

	roleOK := false
	for _, role := range allowedRoles {
		if caller.Role == role {
			roleOK = true
			break
		}
	}
	if !roleOK {
		return Decision{Reason: ReasonRole}
	}

	if ownerID != "" && ownerID != caller.UserID && !caller.IsAdmin() {
		return Decision{Reason: ReasonOwnership}
	}

	return allowed
}
