package main

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"videocanvas/api-gateway/config"
	"videocanvas/api-gateway/handlers"
	"videocanvas/api-gateway/internal/aiflow"
	"videocanvas/api-gateway/internal/editor"
	"videocanvas/api-gateway/internal/marketplace"
	"videocanvas/api-gateway/internal/poller"
	"videocanvas/api-gateway/internal/renderer"
	"videocanvas/api-gateway/internal/store"
	"videocanvas/api-gateway/middleware"
)

const renderPollInterval = 3 * time.Second

func main() {
	config.InitLogger()
	config.LoadEnv()

	if err := config.InitSupabase(); err != nil {
		log.Fatalf("Failed to initialize Supabase: %v", err)
	}

	db := store.New(config.SupabaseClient, config.Log)
	engine := editor.NewEngine(db, config.Log)

	// The AI credential is optional at startup; without it the AI routes
	// report a configuration error per request.
	var flows handlers.AIFlows
	if gen, err := aiflow.NewCohereGenerator(config.CohereAPIKey(), config.CohereModel()); err != nil {
		config.Log.Warn("Generative AI is not configured; AI routes will be unavailable")
		flows = aiflow.NewFlows(aiflow.Unconfigured{}, config.Log)
	} else {
		flows = aiflow.NewFlows(gen, config.Log)
	}

	mkt := marketplace.NewClient(config.MarketplaceURL(), config.MarketplaceToken(), config.Log)
	renderClient := renderer.NewClient(config.RenderAPIURL(), config.RenderAPIKey(), config.Log)

	jobPoller := poller.New(renderClient, db, renderPollInterval, config.Log)
	defer jobPoller.Stop()
	if err := jobPoller.Resume(context.Background()); err != nil {
		config.Log.WithField("error", err.Error()).Warn("Could not resume in-flight renders")
	}

	h := handlers.NewApplicationHandler(config.Log, db, db, engine, flows, mkt, renderClient, jobPoller)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, X-User-Id",
	}))
	app.Use(middleware.RequestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "API Gateway is healthy",
		})
	})

	apiV1 := app.Group("/api/v1")

	// Template routes
	apiV1.Get("/templates", h.ListTemplates)
	apiV1.Post("/templates/import", h.ImportTemplate)
	apiV1.Get("/templates/:id", h.GetTemplate)
	apiV1.Patch("/templates/:id/layers/:layerId/properties/:key", h.UpdateLayerProperty)
	apiV1.Post("/templates/:id/layers/reorder", h.ReorderLayers)
	apiV1.Post("/templates/:id/ai-edit", h.AIEditTemplate)
	apiV1.Post("/templates/:id/renders", h.CreateRender)

	// Asset and marketplace routes
	apiV1.Post("/assets/recommendations", h.RecommendAssets)
	apiV1.Get("/marketplace/search", h.SearchMarketplace)
	apiV1.Post("/marketplace/import", h.ImportListing)

	// Render tracking routes
	apiV1.Get("/renders", h.ListRenders)
	apiV1.Get("/renders/:id", h.GetRender)

	config.Log.Infof("Starting API Gateway on port %s", config.Port())
	log.Fatal(app.Listen(":" + config.Port()))
}
