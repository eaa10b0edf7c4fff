package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/recruithub/recruiting-system/internal/core/domain"
	"github.com/recruithub/recruiting-system/internal/core/ports"
)

// CampaignHandler is the thin resource controller exercising the
// access-control collaborator contract: List scopes through allowed clients,
// the single-document routes sit behind the campaign tenant guard.
type CampaignHandler struct {
	campaigns ports.CampaignService
}

func NewCampaignHandler(campaigns ports.CampaignService) *CampaignHandler {
	return &CampaignHandler{campaigns: campaigns}
}

type campaignListResponse struct {
	Campaigns []*domain.Campaign `json:"campaigns"`
}

type updateCampaignRequest struct {
	Title  string `json:"title,omitempty"`
	Status string `json:"status,omitempty"`
}

// List returns the campaigns of the caller's allowed clients.
//
// @Summary      List campaigns
// @Tags         campaigns
// @Produce      json
// @Success      200  {object}  campaignListResponse
// @Router       /campaigns [get]
func (h *CampaignHandler) List(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	campaigns, err := h.campaigns.List(c.Request().Context(), session)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaignListResponse{Campaigns: campaigns})
}

// Get returns a single campaign. Ownership was already validated by the
// tenant guard on this route.
//
// @Summary      Get a campaign
// @Tags         campaigns
// @Produce      json
// @Param        id   path      string  true  "Campaign ID"
// @Success      200  {object}  domain.Campaign
// @Failure      404  {object}  map[string]string
// @Router       /campaigns/{id} [get]
func (h *CampaignHandler) Get(c echo.Context) error {
	campaign, err := h.campaigns.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaign)
}

// Update edits a campaign's mutable fields.
//
// @Summary      Update a campaign
// @Tags         campaigns
// @Accept       json
// @Produce      json
// @Param        id    path      string                 true  "Campaign ID"
// @Param        body  body      updateCampaignRequest  true  "Fields to change"
// @Success      200   {object}  domain.Campaign
// @Failure      404   {object}  map[string]string
// @Router       /campaigns/{id} [put]
func (h *CampaignHandler) Update(c echo.Context) error {
	var req updateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	campaign, err := h.campaigns.Update(c.Request().Context(), c.Param("id"), req.Title, req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, campaign)
}

// Delete removes a campaign.
//
// @Summary      Delete a campaign
// @Tags         campaigns
// @Param        id  path  string  true  "Campaign ID"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Router       /campaigns/{id} [delete]
func (h *CampaignHandler) Delete(c echo.Context) error {
	if err := h.campaigns.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
