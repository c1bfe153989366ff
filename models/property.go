package models

import (
	"encoding/json"
	"fmt"
)

// PropertyKind identifies the editor control and the legal value shape for a
// layer property.
type PropertyKind string

const (
	KindText        PropertyKind = "text"
	KindNumber      PropertyKind = "number"
	KindColor       PropertyKind = "color"
	KindSlider      PropertyKind = "slider"
	KindFile        PropertyKind = "file"
	KindSelect      PropertyKind = "select"
	KindToggleGroup PropertyKind = "toggleGroup"
)

// PropertyValue is the tagged union of value shapes a property can hold.
// Which variant is legal depends on the property's Kind.
type PropertyValue interface {
	propertyValue()
}

// StringValue holds the value of text, color, file, select and toggleGroup
// properties.
type StringValue string

// NumberValue holds the value of number and slider properties.
type NumberValue float64

// BoolValue holds the value of boolean toggleGroup properties.
type BoolValue bool

func (StringValue) propertyValue() {}
func (NumberValue) propertyValue() {}
func (BoolValue) propertyValue()   {}

// OptionItem is one choice of an enumerated (select/toggleGroup) property.
type OptionItem struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// PropertyOptions carries kind-specific constraints. Min/Max/Step apply to
// numeric kinds, Items to enumerated kinds.
type PropertyOptions struct {
	Min   *float64     `json:"min,omitempty"`
	Max   *float64     `json:"max,omitempty"`
	Step  *float64     `json:"step,omitempty"`
	Items []OptionItem `json:"items,omitempty"`
}

// Property is one editable attribute of a layer. Kind is immutable after
// layer creation; only Value changes during normal editing.
type Property struct {
	Value   PropertyValue
	Kind    PropertyKind
	Label   string
	Options *PropertyOptions
}

// propertyJSON is the wire shape of Property. Value is decoded lazily so a
// structurally malformed value becomes a validation error, never a decode
// failure.
type propertyJSON struct {
	Value   json.RawMessage  `json:"value"`
	Kind    PropertyKind     `json:"kind"`
	Label   string           `json:"label"`
	Options *PropertyOptions `json:"options,omitempty"`
}

// MarshalJSON emits the raw polymorphic value alongside the kind tag.
func (p Property) MarshalJSON() ([]byte, error) {
	out := propertyJSON{Kind: p.Kind, Label: p.Label, Options: p.Options}

	var v interface{}
	switch val := p.Value.(type) {
	case StringValue:
		v = string(val)
	case NumberValue:
		v = float64(val)
	case BoolValue:
		v = bool(val)
	case nil:
		v = nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	out.Value = raw
	return json.Marshal(out)
}

// UnmarshalJSON decodes a property, mapping the JSON value onto the matching
// PropertyValue variant. Values of an unsupported JSON type (objects, arrays,
// null) are left nil and rejected later by Validate.
func (p *Property) UnmarshalJSON(data []byte) error {
	var raw propertyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.Kind = raw.Kind
	p.Label = raw.Label
	p.Options = raw.Options
	p.Value = valueFromJSON(raw.Value)
	return nil
}

// valueFromJSON maps a raw JSON scalar onto a PropertyValue variant. Non-scalar
// values yield nil.
func valueFromJSON(raw json.RawMessage) PropertyValue {
	if len(raw) == 0 {
		return nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return StringValue(s)
		}
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(raw, &b); err == nil {
			return BoolValue(b)
		}
	default:
		var n float64
		if err := json.Unmarshal(raw, &n); err == nil {
			return NumberValue(n)
		}
	}
	return nil
}

// ValueFromAny converts a decoded JSON scalar (as produced by encoding/json
// into interface{}) to a PropertyValue. Used by handlers that accept an
// untyped value field.
func ValueFromAny(v interface{}) (PropertyValue, error) {
	switch val := v.(type) {
	case string:
		return StringValue(val), nil
	case float64:
		return NumberValue(val), nil
	case int:
		return NumberValue(val), nil
	case bool:
		return BoolValue(val), nil
	default:
		return nil, fmt.Errorf("unsupported property value type %T", v)
	}
}

// Validate checks that the property's value and options match the shape
// implied by its kind.
func (p Property) Validate() error {
	switch p.Kind {
	case KindText, KindColor, KindFile, KindSelect:
		if _, ok := p.Value.(StringValue); !ok {
			return fmt.Errorf("kind %q requires a string value, got %s", p.Kind, valueShape(p.Value))
		}
	case KindNumber, KindSlider:
		if _, ok := p.Value.(NumberValue); !ok {
			return fmt.Errorf("kind %q requires a numeric value, got %s", p.Kind, valueShape(p.Value))
		}
	case KindToggleGroup:
		switch p.Value.(type) {
		case StringValue, BoolValue:
		default:
			return fmt.Errorf("kind %q requires a string or boolean value, got %s", p.Kind, valueShape(p.Value))
		}
	default:
		return fmt.Errorf("unknown property kind %q", p.Kind)
	}

	if p.Options != nil {
		if len(p.Options.Items) > 0 && p.Kind != KindSelect && p.Kind != KindToggleGroup {
			return fmt.Errorf("kind %q does not take enumerated items", p.Kind)
		}
		numeric := p.Options.Min != nil || p.Options.Max != nil || p.Options.Step != nil
		if numeric && p.Kind != KindNumber && p.Kind != KindSlider {
			return fmt.Errorf("kind %q does not take numeric range options", p.Kind)
		}
	}
	return nil
}

func valueShape(v PropertyValue) string {
	switch v.(type) {
	case StringValue:
		return "string"
	case NumberValue:
		return "number"
	case BoolValue:
		return "boolean"
	case nil:
		return "nothing"
	default:
		return "unknown"
	}
}
