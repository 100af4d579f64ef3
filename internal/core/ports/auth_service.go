package ports

import (
	"context"
	"time"

	"github.com/accesshub/accounts-api/internal/core/domain"
)

// SigninResult is returned after a successful sign-in.
type SigninResult struct {
	User      domain.User
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Signin(ctx context.Context, email, password string) (*SigninResult, error)
}
