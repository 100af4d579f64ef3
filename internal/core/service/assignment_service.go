package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/accesshub/accounts-api/internal/core/domain"
	"github.com/accesshub/accounts-api/internal/core/ports"
	"github.com/accesshub/accounts-api/internal/pkg/metrics"
)

// AssignmentService reads and changes the role a user holds.
type AssignmentService struct {
	users ports.UserRepository
	roles ports.RoleRepository
	log   zerolog.Logger
}

func NewAssignmentService(users ports.UserRepository, roles ports.RoleRepository, log zerolog.Logger) *AssignmentService {
	return &AssignmentService{users: users, roles: roles, log: log}
}

func (s *AssignmentService) UserRole(ctx context.Context, actor domain.Identity, userID int) (*ports.UserRole, error) {
	if err := domain.Authorize(actor, domain.ActionReadUserRole); err != nil {
		return nil, err
	}

	users, err := s.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("read user role: %w", err)
	}
	idx := indexByID(users, userID)
	if idx < 0 {
		return nil, domain.ErrUserNotFound
	}
	return &ports.UserRole{UserID: users[idx].ID, Role: users[idx].Role}, nil
}

// Assign sets the role of userID. The actor must hold the assign permission
// and may only grant roles below its own tier, unless it is a superadmin.
func (s *AssignmentService) Assign(ctx context.Context, actor domain.Identity, userID int, input ports.RoleInput) error {
	if err := domain.Authorize(actor, domain.ActionAssignRole); err != nil {
		return err
	}
	name, err := roleName(input)
	if err != nil {
		return err
	}

	// The roles lock is held until the user is saved, so the role cannot be
	// deleted in between. Lock order is roles then users, as in role deletion.
	var previous string
	err = s.roles.Modify(ctx, func(roles []domain.Role) ([]domain.Role, error) {
		err := s.users.Modify(ctx, func(users []domain.User) ([]domain.User, error) {
			idx := indexByID(users, userID)
			if idx < 0 {
				return nil, domain.ErrUserNotFound
			}
			if roleIndexByName(roles, name) < 0 {
				return nil, domain.ErrRoleNotFound
			}
			if !domain.CanGrant(actor.Role, name) {
				return nil, domain.ErrForbidden
			}
			previous = users[idx].Role
			users[idx].Role = name
			return users, nil
		})
		if err != nil {
			return nil, err
		}
		return nil, errUnchanged
	})
	if err != nil && !errors.Is(err, errUnchanged) {
		return fmt.Errorf("assign role: %w", err)
	}

	metrics.RoleAssignmentsTotal.WithLabelValues(name).Inc()
	s.log.Info().
		Int("user_id", userID).
		Int("actor_id", actor.ID).
		Str("from", previous).
		Str("to", name).
		Msg("role assigned")
	return nil
}
