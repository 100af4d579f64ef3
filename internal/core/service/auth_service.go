package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/accesshub/accounts-api/internal/core/domain"
	"github.com/accesshub/accounts-api/internal/core/ports"
)

// AuthService implements sign-in.
type AuthService struct {
	users ports.UserRepository
	creds ports.Credentials
	log   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, creds ports.Credentials, log zerolog.Logger) *AuthService {
	return &AuthService{users: users, creds: creds, log: log}
}

// Signin exchanges an email and password for a bearer token. Unknown emails
// and wrong passwords fail the same way.
func (s *AuthService) Signin(ctx context.Context, email, password string) (*ports.SigninResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	users, err := s.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("signin: %w", err)
	}

	idx := indexByEmail(users, email)
	if idx < 0 {
		return nil, domain.ErrInvalidCredentials
	}
	user := users[idx]

	ok, legacy := checkPassword(user.Password, password)
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}
	if legacy {
		s.upgradePassword(ctx, user, password)
	}

	token, expiresAt, err := s.creds.Issue(user.Identity())
	if err != nil {
		return nil, fmt.Errorf("signin: %w", err)
	}

	return &ports.SigninResult{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// upgradePassword replaces a plaintext secret with its hash. Failure does not
// fail the sign-in.
func (s *AuthService) upgradePassword(ctx context.Context, user domain.User, password string) {
	hash, err := hashPassword(password)
	if err != nil {
		s.log.Warn().Err(err).Int("user_id", user.ID).Msg("hash legacy password")
		return
	}

	err = s.users.Modify(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := indexByID(users, user.ID)
		// skip if the record changed since it was read
		if idx < 0 || users[idx].Password != user.Password {
			return nil, errUnchanged
		}
		users[idx].Password = hash
		return users, nil
	})
	switch {
	case errors.Is(err, errUnchanged):
	case err != nil:
		s.log.Warn().Err(err).Int("user_id", user.ID).Msg("upgrade legacy password")
	default:
		s.log.Info().Int("user_id", user.ID).Msg("legacy password upgraded")
	}
}
