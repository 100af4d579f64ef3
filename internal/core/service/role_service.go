package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/accesshub/accounts-api/internal/core/domain"
	"github.com/accesshub/accounts-api/internal/core/ports"
)

// RoleService is the role directory. It also touches users so that role
// names held by accounts stay valid across renames and deletes.
type RoleService struct {
	roles ports.RoleRepository
	users ports.UserRepository
	log   zerolog.Logger
}

func NewRoleService(roles ports.RoleRepository, users ports.UserRepository, log zerolog.Logger) *RoleService {
	return &RoleService{roles: roles, users: users, log: log}
}

func (s *RoleService) List(ctx context.Context, actor domain.Identity) ([]domain.Role, error) {
	if err := domain.Authorize(actor, domain.ActionListRoles); err != nil {
		return nil, err
	}

	roles, err := s.roles.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	return roles, nil
}

func (s *RoleService) Get(ctx context.Context, actor domain.Identity, id int) (*domain.Role, error) {
	if err := domain.Authorize(actor, domain.ActionReadRole); err != nil {
		return nil, err
	}

	roles, err := s.roles.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("get role: %w", err)
	}
	idx := roleIndexByID(roles, id)
	if idx < 0 {
		return nil, domain.ErrRoleNotFound
	}
	return &roles[idx], nil
}

func (s *RoleService) Create(ctx context.Context, actor domain.Identity, input ports.RoleInput) (*domain.Role, error) {
	if err := domain.Authorize(actor, domain.ActionCreateRole); err != nil {
		return nil, err
	}
	name, err := roleName(input)
	if err != nil {
		return nil, err
	}

	var created domain.Role
	err = s.roles.Modify(ctx, func(roles []domain.Role) ([]domain.Role, error) {
		if roleIndexByName(roles, name) >= 0 {
			return nil, domain.ErrRoleExists
		}
		created = domain.Role{ID: domain.NextID(len(roles), maxRoleID(roles)), Name: name}
		return append(roles, created), nil
	})
	if err != nil {
		return nil, fmt.Errorf("create role: %w", err)
	}

	s.log.Info().Int("role_id", created.ID).Str("role", name).Msg("role created")
	return &created, nil
}

// Update renames a role. Users holding the old name are moved to the new one.
func (s *RoleService) Update(ctx context.Context, actor domain.Identity, id int, input ports.RoleInput) error {
	if err := domain.Authorize(actor, domain.ActionUpdateRole); err != nil {
		return err
	}
	name, err := roleName(input)
	if err != nil {
		return err
	}

	var previous string
	err = s.roles.Modify(ctx, func(roles []domain.Role) ([]domain.Role, error) {
		idx := roleIndexByID(roles, id)
		if idx < 0 {
			return nil, domain.ErrRoleNotFound
		}
		if other := roleIndexByName(roles, name); other >= 0 && other != idx {
			return nil, domain.ErrRoleExists
		}
		previous = roles[idx].Name
		if previous != name && domain.Reserved(previous) {
			return nil, fmt.Errorf("%w: role %q cannot be renamed", domain.ErrValidation, previous)
		}
		roles[idx].Name = name
		return roles, nil
	})
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if previous == name {
		return nil
	}

	swept := 0
	err = s.users.Modify(ctx, func(users []domain.User) ([]domain.User, error) {
		for i := range users {
			if users[i].Role == previous {
				users[i].Role = name
				swept++
			}
		}
		if swept == 0 {
			return nil, errUnchanged
		}
		return users, nil
	})
	if err != nil && !errors.Is(err, errUnchanged) {
		return fmt.Errorf("update role: move users to %q: %w", name, err)
	}

	s.log.Info().Int("role_id", id).Str("from", previous).Str("to", name).Int("users", swept).Msg("role renamed")
	return nil
}

// Delete removes a role that no user holds.
func (s *RoleService) Delete(ctx context.Context, actor domain.Identity, id int) error {
	if err := domain.Authorize(actor, domain.ActionDeleteRole); err != nil {
		return err
	}

	err := s.roles.Modify(ctx, func(roles []domain.Role) ([]domain.Role, error) {
		idx := roleIndexByID(roles, id)
		if idx < 0 {
			return nil, domain.ErrRoleNotFound
		}
		if domain.Reserved(roles[idx].Name) {
			return nil, fmt.Errorf("%w: role %q cannot be deleted", domain.ErrValidation, roles[idx].Name)
		}

		users, err := s.users.All(ctx)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			if u.Role == roles[idx].Name {
				return nil, domain.ErrRoleInUse
			}
		}
		return append(roles[:idx], roles[idx+1:]...), nil
	})
	if err != nil {
		return fmt.Errorf("delete role: %w", err)
	}

	s.log.Info().Int("role_id", id).Msg("role deleted")
	return nil
}

func roleName(input ports.RoleInput) (string, error) {
	name := strings.TrimSpace(input.Role)
	if name == "" {
		return "", fmt.Errorf("%w: role required", domain.ErrValidation)
	}
	return name, nil
}
