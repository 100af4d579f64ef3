package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/accesshub/accounts-api/internal/core/domain"
	"github.com/accesshub/accounts-api/internal/pkg/metrics"
)

// RBAC denies the request unless the actor set by Auth may perform action.
// It must run after Auth.
func RBAC(action domain.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, _ := c.Get(ActorKey).(domain.Identity)
			if err := domain.Authorize(actor, action); err != nil {
				metrics.AuthorizationDecisionsTotal.WithLabelValues(string(action), "deny").Inc()
				return err
			}

			metrics.AuthorizationDecisionsTotal.WithLabelValues(string(action), "allow").Inc()
			return next(c)
		}
	}
}
