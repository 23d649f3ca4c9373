package auth

import (
	"testing"

	"github.com/gaspigz/taskManagerClg/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestRequireRole(t *testing.T) {
	admin := domain.Principal{UserID: 1, Username: "ADMIN", Role: domain.RoleAdmin}
	user := domain.Principal{UserID: 2, Username: "user1", Role: domain.RoleUser}

	assert.NoError(t, RequireRole(admin, domain.RoleAdmin))
	assert.NoError(t, RequireRole(user, domain.RoleUser, domain.RoleAdmin))
	assert.ErrorIs(t, RequireRole(user, domain.RoleAdmin), domain.ErrForbidden)
	assert.ErrorIs(t, RequireRole(admin), domain.ErrForbidden)
}

func TestRequireOwnership(t *testing.T) {
	admin := domain.Principal{UserID: 1, Role: domain.RoleAdmin}
	owner := domain.Principal{UserID: 2, Role: domain.RoleUser}
	stranger := domain.Principal{UserID: 3, Role: domain.RoleUser}

	assert.NoError(t, RequireOwnership(admin, 2))
	assert.NoError(t, RequireOwnership(owner, 2))
	assert.ErrorIs(t, RequireOwnership(stranger, 2), domain.ErrForbidden)
}
