// Package message implements the MT code wire format: flat text with typed,
// keyed segments embedded as bracketed tokens, e.g. "hi [MT:at,qq=123]".
// It provides entity escaping, segment and message types, a tokenizing
// parser, deterministic rendering, and the normalization rules that keep a
// segment sequence canonical.
package message

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// TypeText is the segment type for literal text. By convention the content
// lives in the "text" parameter; a missing parameter reads as empty.
const TypeText = "text"

// Segment is one typed unit of a message: a type tag plus string-keyed
// parameters. These two fields are the whole representation; text content
// is a parameter like any other.
type Segment struct {
	Type   string            `json:"type"`
	Params map[string]string `json:"data"`
}

// NewSegment builds a Segment from its parts. The type must be a non-empty
// identifier made of letters, digits, '.', '_' and '-'; anything else
// yields ErrInvalidSegment. The params map is copied, nil means no params.
func NewSegment(typ string, params map[string]string) (Segment, error) {
	if !validType(typ) {
		return Segment{}, fmt.Errorf("%w: type %q", ErrInvalidSegment, typ)
	}
	p := make(map[string]string, len(params))
	maps.Copy(p, params)
	return Segment{Type: typ, Params: p}, nil
}

// SegmentFrom coerces an untyped value into a Segment. It accepts a
// Segment, a *Segment, or a map[string]any shaped like the JSON object form
// {"type": ..., "data": {...}}. Unknown map keys and missing types yield
// ErrInvalidSegment. The result always owns a fresh parameter map.
func SegmentFrom(v any) (Segment, error) {
	switch s := v.(type) {
	case Segment:
		if !validType(s.Type) {
			return Segment{}, fmt.Errorf("%w: type %q", ErrInvalidSegment, s.Type)
		}
		return s.Clone(), nil
	case *Segment:
		if s == nil {
			return Segment{}, fmt.Errorf("%w: nil segment", ErrInvalidSegment)
		}
		return SegmentFrom(*s)
	case map[string]any:
		return segmentFromMap(s)
	default:
		return Segment{}, fmt.Errorf("%w: cannot coerce %T", ErrInvalidSegment, v)
	}
}

// segmentFromMap builds a Segment from a decoded JSON object. Only the
// "type" and "data" keys are representable.
func segmentFromMap(m map[string]any) (Segment, error) {
	typ, ok := m["type"].(string)
	if !ok || !validType(typ) {
		return Segment{}, fmt.Errorf("%w: map has no valid type", ErrInvalidSegment)
	}
	for k := range m {
		if k != "type" && k != "data" {
			return Segment{}, fmt.Errorf("%w: unknown field %q", ErrInvalidSegment, k)
		}
	}
	params := map[string]string{}
	switch data := m["data"].(type) {
	case nil:
	case map[string]string:
		maps.Copy(params, data)
	case map[string]any:
		for k, v := range data {
			params[k] = stringify(v)
		}
	default:
		return Segment{}, fmt.Errorf("%w: data is %T, want a map", ErrInvalidSegment, m["data"])
	}
	return Segment{Type: typ, Params: params}, nil
}

// String renders the segment as MT code. Text segments render as escaped
// literal text with commas untouched; every other type renders in token
// form with parameters in sorted key order, each value fully escaped.
func (s Segment) String() string {
	if s.Type == TypeText {
		return EscapeText(s.Params["text"])
	}
	var b strings.Builder
	b.WriteString("[MT:")
	b.WriteString(s.Type)
	for _, k := range slices.Sorted(maps.Keys(s.Params)) {
		b.WriteByte(',')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(Escape(s.Params[k]))
	}
	b.WriteByte(']')
	return b.String()
}

// IsText reports whether the segment carries literal text.
func (s Segment) IsText() bool {
	return s.Type == TypeText
}

// Equal reports whether two segments have the same type and parameters.
// Parameter order is irrelevant; nil and empty parameter maps compare equal.
func (s Segment) Equal(other Segment) bool {
	return s.Type == other.Type && maps.Equal(s.Params, other.Params)
}

// Clone returns a deep copy with its own parameter map.
func (s Segment) Clone() Segment {
	p := make(map[string]string, len(s.Params))
	maps.Copy(p, s.Params)
	return Segment{Type: s.Type, Params: p}
}

// MarshalJSON implements json.Marshaler. A nil parameter map is normalized
// to an empty object so the wire shape is always {"type": ..., "data": {}}.
func (s Segment) MarshalJSON() ([]byte, error) {
	type alias Segment
	if s.Params == nil {
		s.Params = map[string]string{}
	}
	return json.Marshal(alias(s))
}

// UnmarshalJSON implements json.Unmarshaler. It accepts the object form
// {"type": ..., "data": {...}}, stringifying non-string data values, and
// validates the type like NewSegment.
func (s *Segment) UnmarshalJSON(b []byte) error {
	var raw struct {
		Type string         `json:"type"`
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSegment, err)
	}
	if !validType(raw.Type) {
		return fmt.Errorf("%w: type %q", ErrInvalidSegment, raw.Type)
	}
	params := make(map[string]string, len(raw.Data))
	for k, v := range raw.Data {
		params[k] = stringify(v)
	}
	*s = Segment{Type: raw.Type, Params: params}
	return nil
}

// validType reports whether s is a well-formed segment type identifier.
func validType(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z':
		case 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9':
		case c == '.' || c == '_' || c == '-':
		default:
			return false
		}
	}
	return true
}

// stringify renders a decoded JSON value as a parameter string. Numbers
// avoid exponent notation so identifiers survive the float round-trip.
func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
