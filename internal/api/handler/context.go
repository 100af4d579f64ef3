package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/accesshub/accounts-api/internal/api/middleware"
	"github.com/accesshub/accounts-api/internal/core/domain"
)

// actorFrom returns the identity injected by the Auth middleware. A missing
// actor means the route was mounted without Auth.
func actorFrom(c echo.Context) (domain.Identity, error) {
	actor, ok := c.Get(middleware.ActorKey).(domain.Identity)
	if !ok || !actor.Authenticated() {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	return actor, nil
}
