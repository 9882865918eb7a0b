// Package permission decides whether a caller may perform an operation on a
// resource instance. Policies are small strategy values consulted by the
// service layer before any write runs.
package permission

import "github.com/emzola/watchlist/data"

// Operation classifies what the caller is trying to do.
type Operation int

const (
	OpRead Operation = iota
	OpWrite
)

// Decision is the outcome of a policy evaluation. DenyAnonymous means the
// caller presented no identity (401); DenyForbidden means the identity is
// known but lacks rights (403). The distinction is load-bearing for the API's
// status codes and must not be collapsed.
type Decision int

const (
	Allow Decision = iota
	DenyAnonymous
	DenyForbidden
)

// Policy evaluates a caller against an operation on a resource. ownerID is
// the resource's owning user id where ownership applies; policies that don't
// use ownership ignore it.
type Policy interface {
	Evaluate(user *data.User, op Operation, ownerID int64) Decision
}

// AdminOrReadOnly allows reads for everyone and writes for admin users only.
// Any non-admin write attempt, anonymous callers included, is forbidden.
// Applied to platforms and titles.
type AdminOrReadOnly struct{}

func (AdminOrReadOnly) Evaluate(user *data.User, op Operation, _ int64) Decision {
	if op == OpRead {
		return Allow
	}
	if !user.IsAnonymous() && user.Admin {
		return Allow
	}
	return DenyForbidden
}

// OwnerOrReadOnly allows reads for everyone and writes for the resource
// owner or an admin. Applied to reviews.
type OwnerOrReadOnly struct{}

func (OwnerOrReadOnly) Evaluate(user *data.User, op Operation, ownerID int64) Decision {
	if op == OpRead {
		return Allow
	}
	if user.IsAnonymous() {
		return DenyAnonymous
	}
	if user.ID == ownerID || user.Admin {
		return Allow
	}
	return DenyForbidden
}
