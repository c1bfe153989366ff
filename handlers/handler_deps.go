package handlers

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"videocanvas/api-gateway/internal/aiflow"
	"videocanvas/api-gateway/internal/editor"
	"videocanvas/api-gateway/internal/renderer"
	"videocanvas/api-gateway/models"
	"videocanvas/api-gateway/utils"
)

// TemplateStore defines the template persistence operations handlers expect.
type TemplateStore interface {
	ListTemplates(ctx context.Context) ([]models.Template, error)
	GetTemplate(ctx context.Context, id string) (models.Template, error)
	SaveTemplate(ctx context.Context, t models.Template) error
}

// RenderJobStore defines the render record operations handlers expect.
type RenderJobStore interface {
	CreateRenderJob(ctx context.Context, job models.RenderJob) error
	GetRenderJob(ctx context.Context, id string) (models.RenderJob, error)
	ListRenderJobs(ctx context.Context, ownerID string) ([]models.RenderJob, error)
}

// AIFlows defines the generative operations handlers expect. Decoupled behind
// an interface so tests can inject a fake.
type AIFlows interface {
	EditTemplate(ctx context.Context, t models.Template, command string) (models.Template, error)
	ProcessTemplateFile(ctx context.Context, fileName string) (models.Template, error)
	RecommendAssets(ctx context.Context, projectDescription, desiredStyle string, numRecommendations int) (aiflow.AssetRecommendations, error)
}

// MarketplaceSearcher defines the marketplace search operation.
type MarketplaceSearcher interface {
	Search(ctx context.Context, query string) ([]models.Listing, error)
}

// RenderSubmitter submits job descriptions to the external render API.
type RenderSubmitter interface {
	Submit(ctx context.Context, edit renderer.Edit) (renderer.SubmitResponse, error)
}

// RenderWatcher starts status polling for a newly created render job.
type RenderWatcher interface {
	Watch(job models.RenderJob)
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Log         *logrus.Logger
	Templates   TemplateStore
	Renders     RenderJobStore
	Engine      *editor.Engine
	Flows       AIFlows
	Marketplace MarketplaceSearcher
	Renderer    RenderSubmitter
	Poller      RenderWatcher
	Validate    *validator.Validate
}

// NewApplicationHandler creates an ApplicationHandler with the given
// dependencies.
func NewApplicationHandler(
	log *logrus.Logger,
	templates TemplateStore,
	renders RenderJobStore,
	engine *editor.Engine,
	flows AIFlows,
	mkt MarketplaceSearcher,
	rnd RenderSubmitter,
	watcher RenderWatcher,
) *ApplicationHandler {
	return &ApplicationHandler{
		Log:         log,
		Templates:   templates,
		Renders:     renders,
		Engine:      engine,
		Flows:       flows,
		Marketplace: mkt,
		Renderer:    rnd,
		Poller:      watcher,
		Validate:    validator.New(),
	}
}

// respondWithDomainError maps the shared error taxonomy to HTTP statuses.
func (h *ApplicationHandler) respondWithDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, models.ErrNotFound):
		return utils.RespondWithError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrIndexOutOfRange), errors.Is(err, models.ErrInvalidTemplate):
		return utils.RespondWithError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrConfiguration):
		return utils.RespondWithError(c, fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, models.ErrServiceUnavailable):
		return utils.RespondWithError(c, fiber.StatusBadGateway, err.Error())
	default:
		return utils.RespondWithError(c, fiber.StatusInternalServerError, err.Error())
	}
}

// ownerID resolves the acting user. Authentication is handled upstream; the
// gateway trusts the forwarded identity header.
func ownerID(c *fiber.Ctx) string {
	if id := c.Get("X-User-Id"); id != "" {
		return id
	}
	return "anonymous"
}
