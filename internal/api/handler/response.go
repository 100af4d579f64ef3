package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/accesshub/accounts-api/internal/core/domain"
)

// envelope wraps every successful JSON response.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func respond(c echo.Context, code int, data any, message string) error {
	return c.JSON(code, envelope{Success: true, Data: data, Message: message})
}

// userResponse is the public view of a user. The password never leaves the
// service.
type userResponse struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func toUserResponse(u domain.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

type roleResponse struct {
	ID   int    `json:"id"`
	Role string `json:"role"`
}

func toRoleResponse(r domain.Role) roleResponse {
	return roleResponse{ID: r.ID, Role: r.Name}
}

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	Error string `json:"error"`
}
