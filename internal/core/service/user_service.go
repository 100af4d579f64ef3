package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/accesshub/accounts-api/internal/core/domain"
	"github.com/accesshub/accounts-api/internal/core/ports"
)

// UserService is the user directory.
type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) List(ctx context.Context, actor domain.Identity) ([]domain.User, error) {
	if err := domain.Authorize(actor, domain.ActionListUsers); err != nil {
		return nil, err
	}

	users, err := s.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) Get(ctx context.Context, actor domain.Identity, id int) (*domain.User, error) {
	if err := domain.Authorize(actor, domain.ActionReadUser); err != nil {
		return nil, err
	}

	users, err := s.users.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	idx := indexByID(users, id)
	if idx < 0 {
		return nil, domain.ErrUserNotFound
	}
	return &users[idx], nil
}

// Register creates an account holding the "user" role. It needs no actor.
func (s *UserService) Register(ctx context.Context, input ports.RegisterUserInput) (*domain.User, error) {
	if err := requireFields(input.Name, input.Email, input.Password); err != nil {
		return nil, err
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	var created domain.User
	err = s.users.Modify(ctx, func(users []domain.User) ([]domain.User, error) {
		if indexByEmail(users, input.Email) >= 0 {
			return nil, domain.ErrUserExists
		}
		created = domain.User{
			ID:       domain.NextID(len(users), maxUserID(users)),
			Name:     input.Name,
			Email:    input.Email,
			Password: hash,
			Role:     domain.RoleUser,
		}
		return append(users, created), nil
	})
	if err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}

	s.log.Info().Int("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return &created, nil
}

// Update overwrites name, email and password of the actor's own account.
func (s *UserService) Update(ctx context.Context, actor domain.Identity, id int, input ports.UpdateUserInput) error {
	if err := domain.Authorize(actor, domain.ActionUpdateUser); err != nil {
		return err
	}
	if actor.ID != id {
		return domain.ErrForbidden
	}
	if err := requireFields(input.Name, input.Email, input.Password); err != nil {
		return err
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	err = s.users.Modify(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := indexByID(users, id)
		if idx < 0 {
			return nil, domain.ErrUserNotFound
		}
		if other := indexByEmail(users, input.Email); other >= 0 && other != idx {
			return nil, domain.ErrUserExists
		}
		users[idx].Name = input.Name
		users[idx].Email = input.Email
		users[idx].Password = hash
		return users, nil
	})
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	s.log.Info().Int("user_id", id).Msg("user updated")
	return nil
}

func (s *UserService) Delete(ctx context.Context, actor domain.Identity, id int) error {
	if err := domain.Authorize(actor, domain.ActionDeleteUser); err != nil {
		return err
	}

	err := s.users.Modify(ctx, func(users []domain.User) ([]domain.User, error) {
		idx := indexByID(users, id)
		if idx < 0 {
			return nil, domain.ErrUserNotFound
		}
		return append(users[:idx], users[idx+1:]...), nil
	})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.Info().Int("user_id", id).Int("actor_id", actor.ID).Msg("user deleted")
	return nil
}

func requireFields(name, email, password string) error {
	var missing []string
	if strings.TrimSpace(name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(email) == "" {
		missing = append(missing, "email")
	}
	if password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", domain.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}
