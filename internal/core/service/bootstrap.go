package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/accesshub/accounts-api/internal/core/domain"
	"github.com/accesshub/accounts-api/internal/core/ports"
)

// BootstrapAdmin describes the superadmin created on first start. An empty
// Email or Password disables it.
type BootstrapAdmin struct {
	Name     string
	Email    string
	Password string
}

// Bootstrap seeds the default roles into an empty role collection and
// creates the configured superadmin when no account uses its email yet.
// Running it again changes nothing.
func Bootstrap(ctx context.Context, roles ports.RoleRepository, users ports.UserRepository, admin BootstrapAdmin, log zerolog.Logger) error {
	err := roles.Modify(ctx, func(existing []domain.Role) ([]domain.Role, error) {
		if len(existing) > 0 {
			return nil, errUnchanged
		}
		seeded := make([]domain.Role, 0, len(domain.DefaultRoles))
		for i, name := range domain.DefaultRoles {
			seeded = append(seeded, domain.Role{ID: i + 1, Name: name})
		}
		return seeded, nil
	})
	switch {
	case errors.Is(err, errUnchanged):
	case err != nil:
		return fmt.Errorf("bootstrap roles: %w", err)
	default:
		log.Info().Strs("roles", domain.DefaultRoles).Msg("default roles seeded")
	}

	if admin.Email == "" || admin.Password == "" {
		return nil
	}
	if admin.Name == "" {
		admin.Name = "Administrator"
	}

	hash, err := hashPassword(admin.Password)
	if err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	var created domain.User
	err = users.Modify(ctx, func(existing []domain.User) ([]domain.User, error) {
		if indexByEmail(existing, admin.Email) >= 0 {
			return nil, errUnchanged
		}
		created = domain.User{
			ID:       domain.NextID(len(existing), maxUserID(existing)),
			Name:     admin.Name,
			Email:    admin.Email,
			Password: hash,
			Role:     domain.RoleSuperAdmin,
		}
		return append(existing, created), nil
	})
	switch {
	case errors.Is(err, errUnchanged):
	case err != nil:
		return fmt.Errorf("bootstrap admin: %w", err)
	default:
		log.Info().Int("user_id", created.ID).Str("email", created.Email).Msg("bootstrap superadmin created")
	}
	return nil
}
