package ports

import (
	"context"

	"github.com/accesshub/accounts-api/internal/core/domain"
)

// UserRepository gives read-modify-write access to the users collection.
type UserRepository interface {
	All(ctx context.Context) ([]domain.User, error)
	// Modify loads all users, passes them to fn and saves fn's result. The
	// collection is locked for the whole cycle. When fn returns an error
	// nothing is written and the error is returned unchanged.
	Modify(ctx context.Context, fn func([]domain.User) ([]domain.User, error)) error
}
