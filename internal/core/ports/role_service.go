package ports

import (
	"context"

	"github.com/accesshub/accounts-api/internal/core/domain"
)

// RoleInput carries the single mutable field of a role.
type RoleInput struct {
	Role string
}

// RoleService is the role directory.
type RoleService interface {
	List(ctx context.Context, actor domain.Identity) ([]domain.Role, error)
	Get(ctx context.Context, actor domain.Identity, id int) (*domain.Role, error)
	Create(ctx context.Context, actor domain.Identity, input RoleInput) (*domain.Role, error)
	Update(ctx context.Context, actor domain.Identity, id int, input RoleInput) error
	Delete(ctx context.Context, actor domain.Identity, id int) error
}

// UserRole is the role currently stored for a user.
type UserRole struct {
	UserID int
	Role   string
}

// AssignmentService reads and reassigns user roles across both directories.
type AssignmentService interface {
	UserRole(ctx context.Context, actor domain.Identity, userID int) (*UserRole, error)
	Assign(ctx context.Context, actor domain.Identity, userID int, input RoleInput) error
}
