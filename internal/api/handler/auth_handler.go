package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/accesshub/accounts-api/internal/core/domain"
	"github.com/accesshub/accounts-api/internal/core/ports"
	"github.com/accesshub/accounts-api/internal/pkg/metrics"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type signinRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type signinResponse struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Signin authenticates a user and returns a bearer token.
//
// @Summary      Sign in
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signinRequest  true  "Credentials"
// @Success      200   {object}  envelope{data=signinResponse}
// @Failure      400   {object}  ErrorResponse
// @Failure      401   {object}  ErrorResponse
// @Failure      429   {object}  ErrorResponse
// @Router       /auth/signin [post]
func (h *AuthHandler) Signin(c echo.Context) error {
	var req signinRequest
	if err := bindStrict(c, &req); err != nil {
		return err
	}

	res, err := h.authService.Signin(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.SigninTotal.WithLabelValues(signinResult(err)).Inc()
		return err
	}
	metrics.SigninTotal.WithLabelValues("success").Inc()

	return respond(c, http.StatusOK, signinResponse{
		ID:        res.User.ID,
		Email:     res.User.Email,
		Role:      res.User.Role,
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
	}, "signed in")
}

func signinResult(err error) string {
	if errors.Is(err, domain.ErrInvalidCredentials) {
		return "invalid_credentials"
	}
	return "error"
}
