package auth

import (
	"fmt"

	"github.com/gaspigz/taskManagerClg/internal/domain"
)

// Token validation errors. Each one wraps domain.ErrUnauthenticated so
// callers can classify them without knowing the specific cause.
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = fmt.Errorf("%w: invalid authentication token", domain.ErrUnauthenticated)

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = fmt.Errorf("%w: authentication token has expired", domain.ErrUnauthenticated)

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf or iat in the future)
	ErrTokenNotYetValid = fmt.Errorf("%w: authentication token not yet valid", domain.ErrUnauthenticated)

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = fmt.Errorf("%w: authentication token is missing", domain.ErrUnauthenticated)

	// ErrInvalidClaims indicates a required claim is absent or malformed
	ErrInvalidClaims = fmt.Errorf("%w: authentication token claims are invalid", domain.ErrUnauthenticated)
)
