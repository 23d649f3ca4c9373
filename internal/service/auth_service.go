package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gaspigz/taskManagerClg/internal/domain"
	"github.com/gaspigz/taskManagerClg/internal/platform/logger"
	"github.com/gaspigz/taskManagerClg/internal/service/auth"
)

// LoginResult is what a successful login hands back to the client.
type LoginResult struct {
	AccessToken string              `json:"access_token"`
	ExpiresAt   time.Time           `json:"expires_at"`
	User        domain.ResponseUser `json:"user"`
}

// AuthService exchanges credentials for an access token.
type AuthService struct {
	gate   *auth.CredentialGate
	tokens auth.TokenService
	logger *slog.Logger
}

// NewAuthService creates an AuthService.
func NewAuthService(gate *auth.CredentialGate, tokens auth.TokenService, log *slog.Logger) *AuthService {
	if log == nil {
		log = slog.Default()
	}
	return &AuthService{
		gate:   gate,
		tokens: tokens,
		logger: log.With(slog.String("component", "auth_service")),
	}
}

// Login verifies the credentials and issues a token for the user's principal.
// Wrong usernames and wrong passwords both yield domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.gate.Verify(ctx, username, password)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.GenerateToken(ctx, user.Principal())
	if err != nil {
		log.Error("failed to generate token",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	log.Info("user logged in", slog.Int64("user_id", user.ID))
	return &LoginResult{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		User:        user.Response(),
	}, nil
}
