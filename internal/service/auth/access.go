package auth

import (
	"fmt"
	"slices"

	"github.com/gaspigz/taskManagerClg/internal/domain"
)

// RequireRole fails with domain.ErrForbidden unless the principal holds one
// of the allowed roles.
func RequireRole(p domain.Principal, allowed ...domain.Role) error {
	if slices.Contains(allowed, p.Role) {
		return nil
	}
	return fmt.Errorf("%w: role %s not permitted", domain.ErrForbidden, p.Role)
}

// RequireOwnership fails with domain.ErrForbidden unless the principal is an
// ADMIN or owns the resource.
func RequireOwnership(p domain.Principal, ownerID int64) error {
	if p.IsAdmin() || p.UserID == ownerID {
		return nil
	}
	return fmt.Errorf("%w: resource owned by another user", domain.ErrForbidden)
}
