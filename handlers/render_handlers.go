package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"videocanvas/api-gateway/internal/renderer"
	"videocanvas/api-gateway/models"
	"videocanvas/api-gateway/utils"
)

// CreateRender godoc
// @Summary Submit a template to the render API and start tracking the job
// @Router /templates/{id}/renders [post]
func (h *ApplicationHandler) CreateRender(c *fiber.Ctx) error {
	template, err := h.Templates.GetTemplate(c.Context(), c.Params("id"))
	if err != nil {
		return h.respondWithDomainError(c, err)
	}

	edit := renderer.BuildEdit(template)
	submitted, err := h.Renderer.Submit(c.Context(), edit)
	if err != nil {
		// A failed submission creates no render record.
		h.Log.WithFields(map[string]interface{}{
			"template_id": template.ID,
			"error":       err.Error(),
		}).Warn("Render submission failed")
		return h.respondWithDomainError(c, err)
	}

	// The job is recorded as submitted immediately, without waiting for the
	// external API to confirm queueing.
	job := models.RenderJob{
		ID:            uuid.New(),
		ExternalJobID: submitted.ID,
		TemplateID:    template.ID,
		TemplateName:  template.Name,
		OwnerID:       ownerID(c),
		Status:        models.RenderSubmitted,
		Progress:      0,
		CreatedAt:     time.Now().UTC(),
	}
	if err := h.Renders.CreateRenderJob(c.Context(), job); err != nil {
		return h.respondWithDomainError(c, err)
	}
	h.Poller.Watch(job)

	h.Log.WithFields(map[string]interface{}{
		"render_id":       job.ID,
		"external_job_id": job.ExternalJobID,
		"template_id":     template.ID,
	}).Info("Render submitted")
	return utils.RespondWithJSON(c, fiber.StatusAccepted, job)
}

// ListRenders godoc
// @Summary List the caller's render jobs
// @Router /renders [get]
func (h *ApplicationHandler) ListRenders(c *fiber.Ctx) error {
	jobs, err := h.Renders.ListRenderJobs(c.Context(), ownerID(c))
	if err != nil {
		return h.respondWithDomainError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, jobs)
}

// GetRender godoc
// @Summary Get one render job by id
// @Router /renders/{id} [get]
func (h *ApplicationHandler) GetRender(c *fiber.Ctx) error {
	job, err := h.Renders.GetRenderJob(c.Context(), c.Params("id"))
	if err != nil {
		return h.respondWithDomainError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, job)
}
