package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"videocanvas/api-gateway/models"
	"videocanvas/api-gateway/utils"
)

// ImportTemplateRequest is the payload for importing a template file. The
// file contents never reach the gateway; the processing collaborator
// synthesizes a template from the name alone.
type ImportTemplateRequest struct {
	FileName string `json:"file_name" validate:"required"`
}

// UpdatePropertyRequest carries the new polymorphic value for one layer
// property.
type UpdatePropertyRequest struct {
	Value interface{} `json:"value"`
}

// ReorderLayersRequest names the splice endpoints of a layer move.
type ReorderLayersRequest struct {
	From int `json:"from" validate:"gte=0"`
	To   int `json:"to" validate:"gte=0"`
}

// ListTemplates godoc
// @Summary List all templates
// @Router /templates [get]
func (h *ApplicationHandler) ListTemplates(c *fiber.Ctx) error {
	templates, err := h.Templates.ListTemplates(c.Context())
	if err != nil {
		return h.respondWithDomainError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, templates)
}

// GetTemplate godoc
// @Summary Get one template by id
// @Router /templates/{id} [get]
func (h *ApplicationHandler) GetTemplate(c *fiber.Ctx) error {
	template, err := h.Templates.GetTemplate(c.Context(), c.Params("id"))
	if err != nil {
		return h.respondWithDomainError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, template)
}

// ImportTemplate godoc
// @Summary Import a template file and add the synthesized template to the library
// @Router /templates/import [post]
func (h *ApplicationHandler) ImportTemplate(c *fiber.Ctx) error {
	req := new(ImportTemplateRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse import JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid import request: %v", utils.FormatValidationErrors(err)))
	}

	template, err := h.Flows.ProcessTemplateFile(c.Context(), req.FileName)
	if err != nil {
		return h.respondWithDomainError(c, err)
	}
	if err := h.Templates.SaveTemplate(c.Context(), template); err != nil {
		return h.respondWithDomainError(c, err)
	}

	h.Log.WithFields(map[string]interface{}{
		"template_id": template.ID,
		"file_name":   req.FileName,
	}).Info("Imported template")
	return utils.RespondWithJSON(c, fiber.StatusCreated, template)
}

// UpdateLayerProperty godoc
// @Summary Replace the value of one layer property
// @Router /templates/{id}/layers/{layerId}/properties/{key} [patch]
func (h *ApplicationHandler) UpdateLayerProperty(c *fiber.Ctx) error {
	req := new(UpdatePropertyRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse property JSON: %v", err))
	}
	value, err := models.ValueFromAny(req.Value)
	if err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	}

	template, err := h.Templates.GetTemplate(c.Context(), c.Params("id"))
	if err != nil {
		return h.respondWithDomainError(c, err)
	}

	// The write is fire-and-forget; the optimistic copy is returned
	// immediately.
	updated, _, err := h.Engine.SetLayerProperty(c.Context(), template, c.Params("layerId"), c.Params("key"), value)
	if err != nil {
		return h.respondWithDomainError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, updated)
}

// ReorderLayers godoc
// @Summary Move a layer to a new position in the stacking order
// @Router /templates/{id}/layers/reorder [post]
func (h *ApplicationHandler) ReorderLayers(c *fiber.Ctx) error {
	req := new(ReorderLayersRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse reorder JSON: %v", err))
	}

	template, err := h.Templates.GetTemplate(c.Context(), c.Params("id"))
	if err != nil {
		return h.respondWithDomainError(c, err)
	}

	updated, _, err := h.Engine.ReorderLayer(c.Context(), template, req.From, req.To)
	if err != nil {
		return h.respondWithDomainError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, updated)
}
