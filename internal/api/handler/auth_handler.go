package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recruithub/recruiting-system/internal/api/metrics"
	"github.com/recruithub/recruiting-system/internal/core/domain"
	"github.com/recruithub/recruiting-system/internal/core/ports"
)

// AuthHandler exposes login, impersonation, and context switching.
type AuthHandler struct {
	auth    ports.AuthService
	context ports.ContextService
}

func NewAuthHandler(auth ports.AuthService, context ports.ContextService) *AuthHandler {
	return &AuthHandler{auth: auth, context: context}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type impersonateRequest struct {
	UserID string `json:"user_id" validate:"required"`
	Mode   string `json:"mode" validate:"required,oneof=read-only full"`
}

type switchContextRequest struct {
	CompanyID string `json:"company_id" validate:"required"`
	ClientID  string `json:"client_id,omitempty"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Login authenticates a user and returns a 30-day session credential.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, user, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

// Impersonate mints a one-hour impersonation credential for another user.
// Admin tier only; enforced by route middleware and re-checked in the service.
//
// @Summary      Impersonate a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      impersonateRequest  true  "Impersonation target and mode"
// @Success      200   {object}  authResponse
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/impersonate [post]
func (h *AuthHandler) Impersonate(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req impersonateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, target, err := h.auth.Impersonate(c.Request().Context(), session, req.UserID, domain.ImpersonationMode(req.Mode))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, authResponse{Token: token, User: target})
}

// SwitchContext changes the caller's active company/client context and
// returns a freshly minted credential alongside the updated user.
//
// @Summary      Switch company context
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      switchContextRequest  true  "Target company and optional client"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /auth/switch-context [post]
func (h *AuthHandler) SwitchContext(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req switchContextRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, token, err := h.context.SwitchContext(c.Request().Context(), session.UserID, req.CompanyID, req.ClientID)
	if err != nil {
		metrics.ContextSwitchesTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.ContextSwitchesTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}
