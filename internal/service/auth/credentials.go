package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gaspigz/taskManagerClg/internal/domain"
	"github.com/gaspigz/taskManagerClg/internal/platform/logger"
	"github.com/gaspigz/taskManagerClg/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// unknownUserHash is compared against when the username does not exist so
// both failure paths pay one bcrypt comparison.
var unknownUserHash = sync.OnceValue(func() string {
	hash, err := bcrypt.GenerateFromPassword([]byte("no-such-user"), bcrypt.DefaultCost)
	if err != nil {
		panic(fmt.Sprintf("failed to build placeholder hash: %v", err))
	}
	return string(hash)
})

// CredentialGate checks username/password pairs against the user store.
type CredentialGate struct {
	users    store.UserStore
	verifier PasswordVerifier
	logger   *slog.Logger
}

// NewCredentialGate creates a CredentialGate.
func NewCredentialGate(users store.UserStore, verifier PasswordVerifier, log *slog.Logger) *CredentialGate {
	if users == nil {
		panic("users cannot be nil")
	}
	if verifier == nil {
		verifier = NewBcryptVerifier()
	}
	if log == nil {
		log = slog.Default()
	}
	return &CredentialGate{
		users:    users,
		verifier: verifier,
		logger:   log.With(slog.String("component", "credential_gate")),
	}
}

// Verify returns the user matching username and password. Unknown users and
// wrong passwords both fail with domain.ErrInvalidCredentials.
func (g *CredentialGate) Verify(ctx context.Context, username, password string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	user, err := g.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Debug("login attempt for unknown username")
			_ = g.verifier.Compare(unknownUserHash(), password)
			return nil, domain.ErrInvalidCredentials
		}
		log.Error("failed to load user for login", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := g.verifier.Compare(user.PasswordHash, password); err != nil {
		log.Debug("login attempt with wrong password", slog.Int64("user_id", user.ID))
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
