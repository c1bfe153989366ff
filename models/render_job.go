package models

import (
	"time"

	"github.com/google/uuid"
)

// RenderStatus is the lifecycle state of an externally executed render.
// submitted -> queued -> rendering -> done, or -> failed from any
// non-terminal state.
type RenderStatus string

const (
	RenderSubmitted RenderStatus = "submitted"
	RenderQueued    RenderStatus = "queued"
	RenderRendering RenderStatus = "rendering"
	RenderDone      RenderStatus = "done"
	RenderFailed    RenderStatus = "failed"
)

// IsTerminal reports whether no further transitions occur from this status.
func (s RenderStatus) IsTerminal() bool {
	return s == RenderDone || s == RenderFailed
}

// RenderJob tracks one submitted rendering request in the renders table.
// Progress is 0-100 and does not regress while the status is non-terminal.
// OutputURL is set at most once, at the transition to done.
type RenderJob struct {
	ID            uuid.UUID    `json:"id"`
	ExternalJobID string       `json:"external_job_id"`
	TemplateID    string       `json:"template_id"`
	TemplateName  string       `json:"template_name"`
	OwnerID       string       `json:"owner_id"`
	Status        RenderStatus `json:"status"`
	Progress      int          `json:"progress"`
	OutputURL     *string      `json:"output_url,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}
