package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recruithub/recruiting-system/internal/core/domain"
	"github.com/recruithub/recruiting-system/internal/core/ports"
)

// ClientHandler lists the clients a caller may act on within their current
// company. The allowed set drives every other scoped query, so this endpoint
// doubles as the UI's client picker source.
type ClientHandler struct {
	access  ports.AccessService
	clients ports.ClientRepository
}

func NewClientHandler(access ports.AccessService, clients ports.ClientRepository) *ClientHandler {
	return &ClientHandler{access: access, clients: clients}
}

type clientListResponse struct {
	Clients []*domain.Client `json:"clients"`
}

// List returns the caller's allowed clients with their details. An empty
// allowed set yields an empty collection.
//
// @Summary      List allowed clients
// @Tags         clients
// @Produce      json
// @Success      200  {object}  clientListResponse
// @Failure      401  {object}  map[string]string
// @Router       /clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}

	allowed, err := h.access.AllowedClients(c.Request().Context(), session.UserID, session.TenantID())
	if err != nil {
		return err
	}
	if len(allowed) == 0 {
		return c.JSON(http.StatusOK, clientListResponse{Clients: []*domain.Client{}})
	}

	clients, err := h.clients.FindByIDs(c.Request().Context(), allowed)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, clientListResponse{Clients: clients})
}
