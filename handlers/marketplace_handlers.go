package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"videocanvas/api-gateway/internal/marketplace"
	"videocanvas/api-gateway/models"
	"videocanvas/api-gateway/utils"
)

// ImportListingRequest is the marketplace listing the user selected.
type ImportListingRequest struct {
	ID           string `json:"id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// SearchMarketplace godoc
// @Summary Search the stock-template marketplace
// @Router /marketplace/search [get]
func (h *ApplicationHandler) SearchMarketplace(c *fiber.Ctx) error {
	query := c.Query("query")
	listings, err := h.Marketplace.Search(c.Context(), query)
	if err != nil {
		// Missing credentials and upstream failures surface as distinct
		// statuses so the UI can show the right inline error state.
		return h.respondWithDomainError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, listings)
}

// ImportListing godoc
// @Summary Convert a marketplace listing into an editable template
// @Router /marketplace/import [post]
func (h *ApplicationHandler) ImportListing(c *fiber.Ctx) error {
	req := new(ImportListingRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse listing JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid listing: %v", utils.FormatValidationErrors(err)))
	}

	template := marketplace.ImportListing(models.Listing{
		ID:           req.ID,
		Name:         req.Name,
		ThumbnailURL: req.ThumbnailURL,
	})
	if err := h.Templates.SaveTemplate(c.Context(), template); err != nil {
		return h.respondWithDomainError(c, err)
	}

	h.Log.WithFields(map[string]interface{}{
		"template_id": template.ID,
		"listing_id":  req.ID,
	}).Info("Imported marketplace listing")
	return utils.RespondWithJSON(c, fiber.StatusCreated, template)
}
