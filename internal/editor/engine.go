package editor

import (
	"context"

	"github.com/sirupsen/logrus"

	"videocanvas/api-gateway/models"
)

// TemplateWriter persists templates. The store acknowledgment is ignored by
// normal callers; tests inject a synchronous fake to assert write contents.
type TemplateWriter interface {
	SaveTemplate(ctx context.Context, t models.Template) error
}

// Engine couples the pure editing operations to the persistence
// collaborator. Every mutation is pushed optimistically: the updated template
// is returned immediately and the write happens in the background. The
// returned channel carries the single write result and may be ignored.
type Engine struct {
	writer TemplateWriter
	log    *logrus.Logger
}

// NewEngine creates an Engine persisting through writer.
func NewEngine(writer TemplateWriter, log *logrus.Logger) *Engine {
	return &Engine{writer: writer, log: log}
}

// SetLayerProperty applies the property mutation and persists the result
// without waiting for acknowledgment.
func (e *Engine) SetLayerProperty(ctx context.Context, t models.Template, layerID, propertyKey string, value models.PropertyValue) (models.Template, <-chan error, error) {
	updated, err := SetLayerProperty(t, layerID, propertyKey, value)
	if err != nil {
		return models.Template{}, nil, err
	}
	return updated, e.persist(ctx, updated), nil
}

// ReorderLayer applies the reorder mutation and persists the result without
// waiting for acknowledgment.
func (e *Engine) ReorderLayer(ctx context.Context, t models.Template, fromIndex, toIndex int) (models.Template, <-chan error, error) {
	updated, err := ReorderLayer(t, fromIndex, toIndex)
	if err != nil {
		return models.Template{}, nil, err
	}
	return updated, e.persist(ctx, updated), nil
}

// ReplaceTemplate validates and accepts an externally supplied replacement,
// persisting it on acceptance. On validation failure the previous template
// stays active and nothing is written.
func (e *Engine) ReplaceTemplate(ctx context.Context, old, replacement models.Template) (models.Template, <-chan error, error) {
	accepted, err := ReplaceTemplate(old, replacement)
	if err != nil {
		return accepted, nil, err
	}
	return accepted, e.persist(ctx, accepted), nil
}

func (e *Engine) persist(ctx context.Context, t models.Template) <-chan error {
	done := make(chan error, 1)
	go func() {
		err := e.writer.SaveTemplate(ctx, t)
		if err != nil {
			e.log.WithFields(logrus.Fields{
				"template_id": t.ID,
				"error":       err.Error(),
			}).Warn("Background template write failed")
		}
		done <- err
	}()
	return done
}
