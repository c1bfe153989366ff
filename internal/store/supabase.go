// Package store persists templates and render jobs in Supabase. The in-memory
// copies held by the editing engine and the poller are working copies; reads
// pull the latest record and writes push optimistically, last-writer-wins at
// field-update granularity.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	supa "github.com/supabase-community/supabase-go"

	"videocanvas/api-gateway/models"
)

const (
	templatesTable = "templates"
	rendersTable   = "renders"
)

// Store wraps the Supabase client for the templates and renders tables.
type Store struct {
	client *supa.Client
	log    *logrus.Logger
}

// New creates a store over an initialized Supabase client.
func New(client *supa.Client, log *logrus.Logger) *Store {
	return &Store{client: client, log: log}
}

// ListTemplates returns every template record.
func (s *Store) ListTemplates(ctx context.Context) ([]models.Template, error) {
	body, _, err := s.client.From(templatesTable).Select("*", "", false).Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: could not list templates: %v", models.ErrServiceUnavailable, err)
	}
	var templates []models.Template
	if err := json.Unmarshal(body, &templates); err != nil {
		return nil, fmt.Errorf("could not decode templates: %w", err)
	}
	return templates, nil
}

// GetTemplate returns one template by id.
func (s *Store) GetTemplate(ctx context.Context, id string) (models.Template, error) {
	body, _, err := s.client.From(templatesTable).
		Select("*", "", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return models.Template{}, fmt.Errorf("%w: could not fetch template %s: %v", models.ErrServiceUnavailable, id, err)
	}
	var templates []models.Template
	if err := json.Unmarshal(body, &templates); err != nil {
		return models.Template{}, fmt.Errorf("could not decode template %s: %w", id, err)
	}
	if len(templates) == 0 {
		return models.Template{}, fmt.Errorf("%w: template %s", models.ErrNotFound, id)
	}
	return templates[0], nil
}

// SaveTemplate upserts a template record. The acknowledgment is ignored by
// fire-and-forget callers; the error return exists for tests and logging.
func (s *Store) SaveTemplate(ctx context.Context, t models.Template) error {
	_, _, err := s.client.From(templatesTable).
		Insert(t, true, "id", "representation", "").
		Execute()
	if err != nil {
		return fmt.Errorf("%w: could not save template %s: %v", models.ErrServiceUnavailable, t.ID, err)
	}
	return nil
}

// CreateRenderJob inserts a new render job record.
func (s *Store) CreateRenderJob(ctx context.Context, job models.RenderJob) error {
	_, _, err := s.client.From(rendersTable).
		Insert(job, false, "", "representation", "").
		Execute()
	if err != nil {
		return fmt.Errorf("%w: could not create render job %s: %v", models.ErrServiceUnavailable, job.ID, err)
	}
	return nil
}

// UpdateRenderJob overwrites the lifecycle fields of an existing record.
func (s *Store) UpdateRenderJob(ctx context.Context, job models.RenderJob) error {
	update := map[string]interface{}{
		"status":   job.Status,
		"progress": job.Progress,
	}
	if job.OutputURL != nil {
		update["output_url"] = *job.OutputURL
	}
	_, _, err := s.client.From(rendersTable).
		Update(update, "representation", "").
		Eq("id", job.ID.String()).
		Execute()
	if err != nil {
		return fmt.Errorf("%w: could not update render job %s: %v", models.ErrServiceUnavailable, job.ID, err)
	}
	return nil
}

// GetRenderJob returns one render job by local record id.
func (s *Store) GetRenderJob(ctx context.Context, id string) (models.RenderJob, error) {
	body, _, err := s.client.From(rendersTable).
		Select("*", "", false).
		Eq("id", id).
		Execute()
	if err != nil {
		return models.RenderJob{}, fmt.Errorf("%w: could not fetch render job %s: %v", models.ErrServiceUnavailable, id, err)
	}
	var jobs []models.RenderJob
	if err := json.Unmarshal(body, &jobs); err != nil {
		return models.RenderJob{}, fmt.Errorf("could not decode render job %s: %w", id, err)
	}
	if len(jobs) == 0 {
		return models.RenderJob{}, fmt.Errorf("%w: render job %s", models.ErrNotFound, id)
	}
	return jobs[0], nil
}

// ListRenderJobs returns every render job owned by ownerID, newest first.
func (s *Store) ListRenderJobs(ctx context.Context, ownerID string) ([]models.RenderJob, error) {
	body, _, err := s.client.From(rendersTable).
		Select("*", "", false).
		Eq("owner_id", ownerID).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: could not list render jobs: %v", models.ErrServiceUnavailable, err)
	}
	var jobs []models.RenderJob
	if err := json.Unmarshal(body, &jobs); err != nil {
		return nil, fmt.Errorf("could not decode render jobs: %w", err)
	}
	return jobs, nil
}

// ListActiveRenderJobs returns every job whose status is non-terminal, across
// owners. Used by the poller to resume watching after a restart.
func (s *Store) ListActiveRenderJobs(ctx context.Context) ([]models.RenderJob, error) {
	body, _, err := s.client.From(rendersTable).
		Select("*", "", false).
		In("status", []string{
			string(models.RenderSubmitted),
			string(models.RenderQueued),
			string(models.RenderRendering),
		}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("%w: could not list active render jobs: %v", models.ErrServiceUnavailable, err)
	}
	var jobs []models.RenderJob
	if err := json.Unmarshal(body, &jobs); err != nil {
		return nil, fmt.Errorf("could not decode render jobs: %w", err)
	}
	return jobs, nil
}
