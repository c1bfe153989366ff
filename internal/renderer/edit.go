// Package renderer converts templates into render job descriptions and talks
// to the external render API that executes them.
package renderer

import (
	"fmt"
	"sort"

	"videocanvas/api-gateway/models"
)

// Default clip timing when a layer carries no start/duration properties.
const (
	defaultClipStart  = 0
	defaultClipLength = 5
)

// Edit is the complete job description submitted to the render API.
type Edit struct {
	Timeline Timeline `json:"timeline"`
	Output   Output   `json:"output"`
}

// Timeline aggregates all clips over a fixed background. Later tracks paint
// on top of earlier ones.
type Timeline struct {
	Background string  `json:"background"`
	Tracks     []Track `json:"tracks"`
}

// Track holds the clips of one composed layer.
type Track struct {
	Clips []Clip `json:"clips"`
}

// Clip is one timed asset on the timeline.
type Clip struct {
	Asset  Asset   `json:"asset"`
	Start  float64 `json:"start"`
	Length float64 `json:"length"`
}

// Asset describes what a clip shows. Type is "title" for text layers and
// "image" for image layers.
type Asset struct {
	Type     string  `json:"type"`
	Text     string  `json:"text,omitempty"`
	Style    string  `json:"style,omitempty"`
	Color    string  `json:"color,omitempty"`
	Size     string  `json:"size,omitempty"`
	Position string  `json:"position,omitempty"`
	Offset   *Offset `json:"offset,omitempty"`
	Src      string  `json:"src,omitempty"`
	Scale    *Scale  `json:"scale,omitempty"`
}

// Offset positions a title asset in normalized -1..1 coordinates.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Scale sizes an image asset relative to the frame.
type Scale struct {
	Width float64 `json:"width"`
}

// Output is the fixed format/resolution configuration of a render.
type Output struct {
	Format     string `json:"format"`
	Resolution string `json:"resolution"`
}

// BuildEdit deterministically converts a template into a job description. It
// is total over any valid template: layers that are neither text nor image
// emit no clip. Composition order is bottom-to-top by explicit zIndex value
// ascending (layers without one count as 0), position in the layer sequence
// breaking ties.
func BuildEdit(t models.Template) Edit {
	type ordered struct {
		layer models.Layer
		z     float64
		pos   int
	}
	layers := make([]ordered, 0, len(t.Layers))
	for i, layer := range t.Layers {
		z, _ := layer.ZIndex()
		layers = append(layers, ordered{layer: layer, z: z, pos: i})
	}
	sort.SliceStable(layers, func(a, b int) bool {
		if layers[a].z != layers[b].z {
			return layers[a].z < layers[b].z
		}
		return layers[a].pos < layers[b].pos
	})

	tracks := make([]Track, 0, len(layers))
	for _, o := range layers {
		asset, ok := buildAsset(o.layer)
		if !ok {
			continue
		}
		start := defaultClipStart
		length := defaultClipLength
		clip := Clip{Asset: asset, Start: float64(start), Length: float64(length)}
		if v, ok := o.layer.NumberProperty("start"); ok {
			clip.Start = v
		}
		if v, ok := o.layer.NumberProperty("duration"); ok {
			clip.Length = v
		}
		tracks = append(tracks, Track{Clips: []Clip{clip}})
	}

	return Edit{
		Timeline: Timeline{Background: "#000000", Tracks: tracks},
		Output:   Output{Format: "mp4", Resolution: "hd"},
	}
}

func buildAsset(layer models.Layer) (Asset, bool) {
	switch layer.Type {
	case models.LayerText:
		asset := Asset{Type: "title", Style: "minimal", Position: "center"}
		if content, ok := layer.StringProperty("content"); ok {
			asset.Text = content
		}
		if color, ok := layer.StringProperty("color"); ok {
			asset.Color = color
		}
		if size, ok := layer.NumberProperty("fontSize"); ok {
			asset.Size = fmt.Sprintf("%gpx", size)
		}
		// x/y are template percentages; the renderer wants -1..1 offsets
		// from center.
		x, hasX := layer.NumberProperty("x")
		y, hasY := layer.NumberProperty("y")
		if hasX || hasY {
			offset := &Offset{}
			if hasX {
				offset.X = x/50 - 1
			}
			if hasY {
				offset.Y = y/50 - 1
			}
			asset.Offset = offset
		}
		return asset, true
	case models.LayerImage:
		asset := Asset{Type: "image", Scale: &Scale{Width: 1}}
		if src, ok := layer.StringProperty("source"); ok {
			asset.Src = src
		}
		if scale, ok := layer.NumberProperty("scale"); ok {
			asset.Scale = &Scale{Width: scale}
		}
		return asset, true
	default:
		// Forward-compatible no-op: shape and unknown layer types render
		// nothing.
		return Asset{}, false
	}
}
