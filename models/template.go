package models

import "fmt"

// Template is one editable project: an ordered sequence of layers plus
// display metadata. Layer order is semantically meaningful: later layers
// paint on top unless a layer carries an explicit zIndex property.
type Template struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	ThumbnailURL  string  `json:"thumbnailUrl"`
	ThumbnailHint string  `json:"thumbnailHint"`
	Layers        []Layer `json:"layers"`
}

// Validate checks the template and all contained layers. A template is valid
// iff every layer is valid and layer ids are unique within it.
func (t Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: template is missing an id", ErrInvalidTemplate)
	}
	seen := make(map[string]struct{}, len(t.Layers))
	for _, layer := range t.Layers {
		if err := layer.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTemplate, err)
		}
		if _, dup := seen[layer.ID]; dup {
			return fmt.Errorf("%w: duplicate layer id %q", ErrInvalidTemplate, layer.ID)
		}
		seen[layer.ID] = struct{}{}
	}
	return nil
}

// Clone returns a deep copy of the template.
func (t Template) Clone() Template {
	out := t
	if t.Layers != nil {
		out.Layers = make([]Layer, len(t.Layers))
		for i, layer := range t.Layers {
			out.Layers[i] = layer.Clone()
		}
	}
	return out
}

// Layer returns the layer with the given id, if present.
func (t Template) Layer(id string) (Layer, bool) {
	for _, layer := range t.Layers {
		if layer.ID == id {
			return layer, true
		}
	}
	return Layer{}, false
}
