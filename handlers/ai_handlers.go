package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"videocanvas/api-gateway/models"
	"videocanvas/api-gateway/utils"
)

// AIEditRequest carries one natural-language edit command.
type AIEditRequest struct {
	Command string `json:"command" validate:"required"`
}

// RecommendAssetsRequest describes the project assets are wanted for.
type RecommendAssetsRequest struct {
	ProjectDescription string `json:"project_description" validate:"required"`
	DesiredStyle       string `json:"desired_style"`
	NumRecommendations int    `json:"num_recommendations" validate:"gte=0,lte=10"`
}

// AIEditTemplate godoc
// @Summary Apply a natural-language edit command to a template
// @Router /templates/{id}/ai-edit [post]
func (h *ApplicationHandler) AIEditTemplate(c *fiber.Ctx) error {
	req := new(AIEditRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse edit JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid edit request: %v", utils.FormatValidationErrors(err)))
	}

	template, err := h.Templates.GetTemplate(c.Context(), c.Params("id"))
	if err != nil {
		return h.respondWithDomainError(c, err)
	}

	updated, err := h.Flows.EditTemplate(c.Context(), template, req.Command)
	if err != nil {
		// The command is reported as a single failed attempt; the prior
		// template stays active and no retry is scheduled.
		h.Log.WithFields(map[string]interface{}{
			"template_id": template.ID,
			"error":       err.Error(),
		}).Warn("AI edit command failed")
		if errors.Is(err, models.ErrInvalidTemplate) {
			return utils.RespondWithError(c, fiber.StatusBadGateway, "The AI returned an invalid template; your command was not applied")
		}
		return h.respondWithDomainError(c, err)
	}

	if err := h.Templates.SaveTemplate(c.Context(), updated); err != nil {
		return h.respondWithDomainError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, updated)
}

// RecommendAssets godoc
// @Summary Recommend fonts, stock videos, and images for a project
// @Router /assets/recommendations [post]
func (h *ApplicationHandler) RecommendAssets(c *fiber.Ctx) error {
	req := new(RecommendAssetsRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Cannot parse recommendations JSON: %v", err))
	}
	if err := h.Validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid recommendations request: %v", utils.FormatValidationErrors(err)))
	}

	recs, err := h.Flows.RecommendAssets(c.Context(), req.ProjectDescription, req.DesiredStyle, req.NumRecommendations)
	if err != nil {
		return h.respondWithDomainError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, recs)
}
