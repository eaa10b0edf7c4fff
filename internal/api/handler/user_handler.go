package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recruithub/recruiting-system/internal/core/ports"
)

// UserHandler exposes seniority-guarded user management.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type createUserRequest struct {
	Email             string   `json:"email" validate:"required,email"`
	Name              string   `json:"name" validate:"required"`
	Password          string   `json:"password" validate:"required,min=8"`
	RoleRef           string   `json:"role_ref" validate:"required"`
	AssignedClientIDs []string `json:"assigned_client_ids"`
}

type updateUserRequest struct {
	Name              *string   `json:"name,omitempty"`
	Email             *string   `json:"email,omitempty" validate:"omitempty,email"`
	RoleRef           *string   `json:"role_ref,omitempty"`
	AssignedClientIDs *[]string `json:"assigned_client_ids,omitempty"`
	Enabled           *bool     `json:"enabled,omitempty"`
}

// Create adds a user under the operator's current company.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      createUserRequest  true  "New user"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Create(c.Request().Context(), session, ports.CreateUserInput{
		Email:             req.Email,
		Name:              req.Name,
		Password:          req.Password,
		RoleRef:           req.RoleRef,
		AssignedClientIDs: req.AssignedClientIDs,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

// Get returns a single user of the operator's tenant.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      string  true  "User ID"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.Request().Context(), session, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Update applies a partial edit to a user, including role reassignment.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "User ID"
// @Param        body  body      updateUserRequest  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Update(c.Request().Context(), session, c.Param("id"), ports.UpdateUserInput{
		Name:              req.Name,
		Email:             req.Email,
		RoleRef:           req.RoleRef,
		AssignedClientIDs: req.AssignedClientIDs,
		Enabled:           req.Enabled,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
