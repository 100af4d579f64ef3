package ports

import (
	"context"

	"github.com/accesshub/accounts-api/internal/core/domain"
)

// RegisterUserInput carries the fields accepted at registration.
type RegisterUserInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserInput carries the fields a user may change on their own account.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
}

// UserService is the user directory.
type UserService interface {
	List(ctx context.Context, actor domain.Identity) ([]domain.User, error)
	Get(ctx context.Context, actor domain.Identity, id int) (*domain.User, error)
	Register(ctx context.Context, input RegisterUserInput) (*domain.User, error)
	Update(ctx context.Context, actor domain.Identity, id int, input UpdateUserInput) error
	Delete(ctx context.Context, actor domain.Identity, id int) error
}
