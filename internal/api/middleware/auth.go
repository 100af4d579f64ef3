package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/accesshub/accounts-api/internal/core/domain"
	"github.com/accesshub/accounts-api/internal/core/ports"
	"github.com/accesshub/accounts-api/internal/pkg/metrics"
)

// ActorKey is the echo context key holding the verified domain.Identity.
const ActorKey = "actor"

// Auth verifies the bearer credential and injects the actor into context.
// Rejections are returned as domain errors for the error handler to map.
func Auth(creds ports.Credentials) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, err := creds.Verify(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				metrics.CredentialRejectionsTotal.WithLabelValues(rejectionReason(err)).Inc()
				return err
			}

			c.Set(ActorKey, identity)
			return next(c)
		}
	}
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrMissingCredential):
		return "missing"
	case errors.Is(err, domain.ErrCredentialExpired):
		return "expired"
	case errors.Is(err, domain.ErrInvalidCredential):
		return "invalid"
	default:
		return "unauthorized"
	}
}
