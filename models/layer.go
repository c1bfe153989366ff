package models

import "fmt"

// LayerType identifies the visual element a layer represents.
type LayerType string

const (
	LayerText  LayerType = "text"
	LayerImage LayerType = "image"
	LayerShape LayerType = "shape"
)

// zIndexProperty is the optional numeric property that overrides sequence
// position when composing layers for rendering.
const zIndexProperty = "zIndex"

// Layer is one visual element within a template. ID is immutable once
// created. Keys of Properties are unique; their insertion order groups the
// property inspector UI but does not define render order.
type Layer struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Type       LayerType           `json:"type"`
	Properties map[string]Property `json:"properties"`
}

// Validate checks the layer's id, type, and every contained property.
// Absence of a type-specific property (e.g. "content" on a text layer) means
// the feature is not applicable to this layer, not an error.
func (l Layer) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("layer is missing an id")
	}
	switch l.Type {
	case LayerText, LayerImage, LayerShape:
	default:
		return fmt.Errorf("layer %q has unknown type %q", l.ID, l.Type)
	}
	for key, prop := range l.Properties {
		if err := prop.Validate(); err != nil {
			return fmt.Errorf("layer %q property %q: %w", l.ID, key, err)
		}
	}
	return nil
}

// ZIndex returns the layer's explicit z-order value and whether one is set.
func (l Layer) ZIndex() (float64, bool) {
	return l.NumberProperty(zIndexProperty)
}

// NumberProperty returns the numeric value of the named property, if present
// and numeric.
func (l Layer) NumberProperty(key string) (float64, bool) {
	p, ok := l.Properties[key]
	if !ok {
		return 0, false
	}
	n, ok := p.Value.(NumberValue)
	if !ok {
		return 0, false
	}
	return float64(n), true
}

// StringProperty returns the string value of the named property, if present
// and string-shaped.
func (l Layer) StringProperty(key string) (string, bool) {
	p, ok := l.Properties[key]
	if !ok {
		return "", false
	}
	s, ok := p.Value.(StringValue)
	if !ok {
		return "", false
	}
	return string(s), true
}

// Clone returns a deep copy of the layer. Mutating the copy's properties
// never aliases the original.
func (l Layer) Clone() Layer {
	out := l
	if l.Properties != nil {
		out.Properties = make(map[string]Property, len(l.Properties))
		for k, v := range l.Properties {
			out.Properties[k] = v
		}
	}
	return out
}
