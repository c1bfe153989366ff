package editor

import "videocanvas/api-gateway/models"

// Session tracks the caller's selection state: at most one active template
// and, within it, at most one active layer. It is a convenience for the
// consuming surface, not an invariant of Template itself; the editing
// operations stay pure and take the template explicitly.
type Session struct {
	activeTemplate *models.Template
	activeLayer    *models.Layer
}

// SetActiveTemplate activates a template and resets the active layer to its
// first layer, or to none when the template has zero layers (or is nil).
func (s *Session) SetActiveTemplate(t *models.Template) {
	s.activeTemplate = t
	if t != nil && len(t.Layers) > 0 {
		first := t.Layers[0]
		s.activeLayer = &first
		return
	}
	s.activeLayer = nil
}

// SetActiveLayer selects a layer within the active template.
func (s *Session) SetActiveLayer(l *models.Layer) {
	s.activeLayer = l
}

// ActiveTemplate returns the current active template, or nil.
func (s *Session) ActiveTemplate() *models.Template {
	return s.activeTemplate
}

// ActiveLayer returns the current active layer, or nil.
func (s *Session) ActiveLayer() *models.Layer {
	return s.activeLayer
}

// Refresh re-points the selection at an updated copy of the active template,
// keeping the active layer selection by id when it still exists.
func (s *Session) Refresh(t models.Template) {
	if s.activeTemplate == nil || s.activeTemplate.ID != t.ID {
		return
	}
	s.activeTemplate = &t
	if s.activeLayer == nil {
		return
	}
	if layer, ok := t.Layer(s.activeLayer.ID); ok {
		s.activeLayer = &layer
		return
	}
	s.SetActiveTemplate(&t)
}
