// Package editor applies field-level property mutations and layer-order
// mutations to templates. The operations are pure: they never modify their
// input and return a fresh, valid template. Engine couples them to the
// persistence collaborator with fire-and-forget writes.
package editor

import (
	"fmt"

	"videocanvas/api-gateway/models"
)

// SetLayerProperty returns a copy of t in which the named property's value is
// replaced. Kind, label, and options are untouched. Fails with
// models.ErrNotFound when the layer or property does not exist.
func SetLayerProperty(t models.Template, layerID, propertyKey string, value models.PropertyValue) (models.Template, error) {
	out := t.Clone()
	for i, layer := range out.Layers {
		if layer.ID != layerID {
			continue
		}
		prop, ok := layer.Properties[propertyKey]
		if !ok {
			return models.Template{}, fmt.Errorf("%w: property %q on layer %q", models.ErrNotFound, propertyKey, layerID)
		}
		prop.Value = value
		out.Layers[i].Properties[propertyKey] = prop
		return out, nil
	}
	return models.Template{}, fmt.Errorf("%w: layer %q", models.ErrNotFound, layerID)
}

// ReorderLayer returns a copy of t with the layer at fromIndex moved to
// toIndex, all other layers shifted contiguously (remove then insert). This
// is the sole mechanism for changing stacking order when the moved layer has
// no explicit zIndex property.
func ReorderLayer(t models.Template, fromIndex, toIndex int) (models.Template, error) {
	n := len(t.Layers)
	if fromIndex < 0 || fromIndex >= n || toIndex < 0 || toIndex >= n {
		return models.Template{}, fmt.Errorf("%w: from=%d to=%d with %d layers", models.ErrIndexOutOfRange, fromIndex, toIndex, n)
	}
	out := t.Clone()
	moved := out.Layers[fromIndex]
	out.Layers = append(out.Layers[:fromIndex], out.Layers[fromIndex+1:]...)
	out.Layers = append(out.Layers[:toIndex], append([]models.Layer{moved}, out.Layers[toIndex:]...)...)
	return out, nil
}

// ReplaceTemplate accepts a wholesale replacement supplied by an external
// collaborator. The replacement is validated first; on failure the previous
// template is returned unchanged along with models.ErrInvalidTemplate.
func ReplaceTemplate(old, replacement models.Template) (models.Template, error) {
	if err := replacement.Validate(); err != nil {
		return old, err
	}
	return replacement, nil
}
