package auth

import (
	"context"
	"time"

	"github.com/gaspigz/taskManagerClg/internal/domain"
)

// TokenService issues and verifies signed access tokens.
type TokenService interface {
	// GenerateToken creates a signed access token for the principal.
	// Returns the token string and its expiry time.
	GenerateToken(ctx context.Context, principal domain.Principal) (string, time.Time, error)

	// ValidateToken verifies the token signature and time claims and extracts the claims.
	// Every failure wraps domain.ErrUnauthenticated.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the verified content of an access token.
type Claims struct {
	UserID   int64
	Username string
	Role     domain.Role

	// Standard registered JWT claims
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}

// Principal returns the identity carried by the claims.
func (c *Claims) Principal() domain.Principal {
	return domain.Principal{
		UserID:   c.UserID,
		Username: c.Username,
		Role:     c.Role,
	}
}
