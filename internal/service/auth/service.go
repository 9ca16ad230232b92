// Package auth implements the household auth gate: one password, one static
// token, no per-user identity. Login exchanges the password for the token;
// every protected request presents the token back.
package auth

import (
	"crypto/subtle"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/family-timeline/internal/config"
	"github.com/heartmarshall/family-timeline/internal/domain"
)

// Service validates the household password and token.
type Service struct {
	password string
	token    string
	log      *slog.Logger
}

// NewService creates an auth Service from the configured credentials.
func NewService(cfg config.AuthConfig, logger *slog.Logger) *Service {
	return &Service{
		password: cfg.FamilyPassword,
		token:    cfg.FamilyToken,
		log:      logger.With("service", "auth"),
	}
}

// Login checks the supplied password and returns the shared token on success.
// A missing password is a validation error; a wrong one is ErrUnauthorized.
// The comparison is constant-time and the error never reveals more than the
// password being wrong.
func (s *Service) Login(password string) (string, error) {
	if password == "" {
		return "", domain.NewValidationError("Password is required")
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return "", fmt.Errorf("login: %w", domain.ErrUnauthorized)
	}

	return s.token, nil
}

// ValidateToken reports whether the presented token matches the shared
// secret. Constant-time, like Login.
func (s *Service) ValidateToken(token string) bool {
	if token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.token)) == 1
}

// Token returns the shared token. The timeline service embeds it in media
// proxy URLs so <img> tags can authenticate via query parameter.
func (s *Service) Token() string {
	return s.token
}
