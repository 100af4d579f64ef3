package ports

import (
	"context"

	"github.com/accesshub/accounts-api/internal/core/domain"
)

// RoleRepository gives read-modify-write access to the roles collection.
type RoleRepository interface {
	All(ctx context.Context) ([]domain.Role, error)
	Modify(ctx context.Context, fn func([]domain.Role) ([]domain.Role, error)) error
}
