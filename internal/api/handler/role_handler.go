package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/accesshub/accounts-api/internal/core/ports"
)

type RoleHandler struct {
	roles       ports.RoleService
	assignments ports.AssignmentService
}

func NewRoleHandler(roles ports.RoleService, assignments ports.AssignmentService) *RoleHandler {
	return &RoleHandler{roles: roles, assignments: assignments}
}

type roleRequest struct {
	Role string `json:"role" validate:"required,max=64,printascii"`
}

type userRoleResponse struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
}

// List returns every role.
//
// @Summary      List roles
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  envelope{data=[]roleResponse}
// @Failure      403  {object}  ErrorResponse
// @Router       /roles [get]
func (h *RoleHandler) List(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}

	roles, err := h.roles.List(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	out := make([]roleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, toRoleResponse(r))
	}
	return respond(c, http.StatusOK, out, "")
}

// Get returns one role.
//
// @Summary      Get role
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Role ID"
// @Success      200  {object}  envelope{data=roleResponse}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /roles/{id} [get]
func (h *RoleHandler) Get(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	role, err := h.roles.Get(c.Request().Context(), actor, id)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, toRoleResponse(*role), "")
}

// Create adds a role.
//
// @Summary      Create role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      roleRequest  true  "Exactly role"
// @Success      201   {object}  envelope{data=roleResponse}
// @Failure      400   {object}  ErrorResponse
// @Failure      403   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /roles [post]
func (h *RoleHandler) Create(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	var req roleRequest
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	role, err := h.roles.Create(c.Request().Context(), actor, ports.RoleInput{Role: req.Role})
	if err != nil {
		return err
	}
	return respond(c, http.StatusCreated, toRoleResponse(*role), "role created")
}

// Update renames a role.
//
// @Summary      Rename role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int          true  "Role ID"
// @Param        body  body      roleRequest  true  "Exactly role"
// @Success      200   {object}  envelope
// @Failure      400   {object}  ErrorResponse
// @Failure      404   {object}  ErrorResponse
// @Failure      409   {object}  ErrorResponse
// @Router       /roles/{id} [put]
func (h *RoleHandler) Update(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req roleRequest
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	if err := h.roles.Update(c.Request().Context(), actor, id, ports.RoleInput{Role: req.Role}); err != nil {
		return err
	}
	return respond(c, http.StatusOK, nil, "role updated")
}

// Delete removes a role no user holds.
//
// @Summary      Delete role
// @Tags         roles
// @Security     BearerAuth
// @Param        id   path  int  true  "Role ID"
// @Success      204
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /roles/{id} [delete]
func (h *RoleHandler) Delete(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.roles.Delete(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UserRole returns the role a user currently holds.
//
// @Summary      Get a user's role
// @Tags         roles
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      int  true  "User ID"
// @Success      200     {object}  envelope{data=userRoleResponse}
// @Failure      403     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /roles/user/{userId} [get]
func (h *RoleHandler) UserRole(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	ur, err := h.assignments.UserRole(c.Request().Context(), actor, userID)
	if err != nil {
		return err
	}
	return respond(c, http.StatusOK, userRoleResponse{UserID: ur.UserID, Role: ur.Role}, "")
}

// Assign sets a user's role.
//
// @Summary      Assign role
// @Tags         roles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      int          true  "User ID"
// @Param        body    body      roleRequest  true  "Exactly role"
// @Success      200     {object}  envelope{data=userRoleResponse}
// @Failure      400     {object}  ErrorResponse
// @Failure      403     {object}  ErrorResponse
// @Failure      404     {object}  ErrorResponse
// @Router       /roles/assign/{userId} [post]
func (h *RoleHandler) Assign(c echo.Context) error {
	actor, err := actorFrom(c)
	if err != nil {
		return err
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}
	var req roleRequest
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	if err := h.assignments.Assign(c.Request().Context(), actor, userID, ports.RoleInput{Role: req.Role}); err != nil {
		return err
	}
	return respond(c, http.StatusOK, userRoleResponse{UserID: userID, Role: req.Role}, "role assigned")
}
