package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recruithub/recruiting-system/internal/api/middleware"
	"github.com/recruithub/recruiting-system/internal/core/domain"
	"github.com/recruithub/recruiting-system/internal/core/ports"
)

// ConfigHandler serves the public per-tenant configuration used by the login
// screen before any credential exists. The tenant comes from the resolver
// middleware, not from a session.
type ConfigHandler struct {
	companies ports.CompanyRepository
}

func NewConfigHandler(companies ports.CompanyRepository) *ConfigHandler {
	return &ConfigHandler{companies: companies}
}

type publicConfigResponse struct {
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
	Status      string `json:"status"`
}

// Get returns the resolved tenant's public configuration.
//
// @Summary      Public tenant configuration
// @Tags         config
// @Produce      json
// @Success      200  {object}  publicConfigResponse
// @Failure      404  {object}  map[string]string
// @Router       /config [get]
func (h *ConfigHandler) Get(c echo.Context) error {
	companyID, ok := middleware.TenantFromContext(c)
	if !ok {
		return domain.ErrTenantNotFound
	}

	company, err := h.companies.FindByID(c.Request().Context(), companyID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, publicConfigResponse{
		CompanyID:   company.ID,
		CompanyName: company.Name,
		Status:      string(company.Status),
	})
}
