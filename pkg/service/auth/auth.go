// Package auth authenticates users against the static directory declared
// in configuration and issues HS256 JWT access tokens carrying a role
// claim.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/amirasaad/currency-converter/pkg/config"
)

// ErrInvalidCredentials indicates an unknown username or a wrong password.
// The two cases are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Service verifies credentials and issues tokens.
type Service struct {
	users  map[string]config.User
	cfg    *config.Jwt
	logger *slog.Logger
}

// New creates the service over the given user directory.
func New(users []config.User, cfg *config.Jwt, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	byName := make(map[string]config.User, len(users))
	for _, u := range users {
		byName[u.Username] = u
	}
	return &Service{users: byName, cfg: cfg, logger: logger}
}

// Login checks the password against the stored bcrypt hash and returns the
// matched user.
func (s *Service) Login(ctx context.Context, username, password string) (*config.User, error) {
	log := s.logger.With("context", "Login", "username", username)

	u, ok := s.users[username]
	if !ok {
		log.Warn("login failed, unknown user")
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		log.Warn("login failed, wrong password")
		return nil, ErrInvalidCredentials
	}

	log.Info("login successful", "role", u.Role)
	return &u, nil
}

// GenerateToken issues a signed access token for u.
func (s *Service) GenerateToken(u *config.User) (string, error) {
	claims := jwt.MapClaims{
		"username": u.Username,
		"role":     u.Role,
		"exp":      time.Now().Add(s.cfg.Expiry).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.Secret))
}
