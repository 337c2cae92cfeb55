package message

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode"
)

// Message is an ordered sequence of segments representing one chat message.
// The zero value is an empty message ready to use.
//
// A Message owns its segments: every method that inserts clones the incoming
// segment, so later mutation of the source value never leaks in. Elements
// stay directly indexable and mutable, which the surrounding pipeline relies
// on to trim a recognized prefix in place; direct index writes bypass the
// append normalization rules, and Reduce restores them.
type Message []Segment

// tokenPattern matches one bracketed MT token. Anything it does not match
// stays literal text, so malformed tokens degrade instead of failing.
var tokenPattern = regexp.MustCompile(`\[MT:([a-zA-Z0-9._-]+)((?:,[a-zA-Z0-9._-]+=?[^,\]]*)*),?\]`)

// Parse decodes wire text into a Message. Literal spans between tokens are
// unescaped and become text segments; token parameter values are unescaped
// too, making Parse invert String on canonical wire text. A text-typed
// token collapses to its text parameter, so parsed text segments always
// carry the shape Text builds. Parse never fails: input that merely
// resembles a token is kept as literal text.
func Parse(text string) Message {
	var m Message
	last := 0
	for _, idx := range tokenPattern.FindAllStringSubmatchIndex(text, -1) {
		if lit := text[last:idx[0]]; lit != "" {
			m.push(Text(Unescape(lit)))
		}
		last = idx[1]
		typ := text[idx[2]:idx[3]]
		params := parseParams(text[idx[4]:idx[5]])
		if typ == TypeText {
			m.push(Text(params["text"]))
			continue
		}
		m.push(Segment{Type: typ, Params: params})
	}
	if lit := text[last:]; lit != "" {
		m.push(Text(Unescape(lit)))
	}
	return m
}

// parseParams splits a matched parameter list (",k=v,k2=v2") into a map.
// Fragments that are empty after trimming leading whitespace are dropped;
// a fragment without '=' becomes a key with an empty value.
func parseParams(raw string) map[string]string {
	params := map[string]string{}
	for _, frag := range strings.Split(raw, ",") {
		frag = strings.TrimLeftFunc(frag, unicode.IsSpace)
		if frag == "" {
			continue
		}
		k, v, _ := strings.Cut(frag, "=")
		params[k] = Unescape(v)
	}
	return params
}

// From builds a Message from an untyped value: nil (empty message), a wire
// string, a single segment-like value, or a batch of them. Anything else
// yields ErrInvalidMessage.
func From(v any) (Message, error) {
	var m Message
	switch v := v.(type) {
	case nil:
		return m, nil
	case Segment, *Segment, map[string]any:
		seg, err := SegmentFrom(v)
		if err != nil {
			return nil, invalidMessage(err)
		}
		m.push(seg)
	default:
		if err := m.Extend(v); err != nil {
			return nil, invalidMessage(err)
		}
	}
	return m, nil
}

// Append adds one segment at the tail, applying the normalization rules:
// a text segment merges into a trailing text segment, and an empty text
// segment is dropped unless it would be the message's only element. The
// segment is validated like NewSegment and cloned before insertion; on
// error the message is unchanged.
func (m *Message) Append(seg Segment) error {
	if !validType(seg.Type) {
		return fmt.Errorf("%w: type %q", ErrInvalidSegment, seg.Type)
	}
	m.push(seg.Clone())
	return nil
}

// Extend appends a batch: a wire string (parsed first), a Message, or a
// sequence of segments or segment-like values. The whole batch is coerced
// before anything is appended, so a failing element leaves the message
// unchanged. An unrecognized batch shape yields ErrInvalidMessage; an
// element that cannot be coerced yields ErrInvalidSegment.
func (m *Message) Extend(v any) error {
	segs, err := coerceBatch(v)
	if err != nil {
		return err
	}
	for _, seg := range segs {
		m.push(seg)
	}
	return nil
}

// Concat returns a new message holding the receiver's segments followed by
// other, which may be a wire string, a Segment, a *Segment, a segment-like
// map, a Message, or a sequence of segment-like values. The receiver is
// never modified. Unrecognized shapes and failed coercions yield
// ErrInvalidMessage.
func (m Message) Concat(other any) (Message, error) {
	out := m.Clone()
	switch v := other.(type) {
	case Segment, *Segment, map[string]any:
		seg, err := SegmentFrom(v)
		if err != nil {
			return nil, invalidMessage(err)
		}
		out.push(seg)
	default:
		if err := out.Extend(other); err != nil {
			return nil, invalidMessage(err)
		}
	}
	return out, nil
}

// Reduce restores the message invariants in one linear pass: adjacent text
// segments merge into one and empty text segments are dropped. Reduce is
// idempotent; a message of nothing but empty text reduces to empty.
func (m *Message) Reduce() {
	src := *m
	out := src[:0]
	for _, seg := range src {
		if seg.Type == TypeText {
			if n := len(out); n > 0 && out[n-1].Type == TypeText {
				appendText(&out[n-1], seg.Params["text"])
				continue
			}
			if seg.Params["text"] == "" {
				continue
			}
		}
		out = append(out, seg)
	}
	clear(src[len(out):])
	*m = out
}

// String renders the message as wire text by concatenating each segment's
// rendering in order.
func (m Message) String() string {
	var b strings.Builder
	for _, seg := range m {
		b.WriteString(seg.String())
	}
	return b.String()
}

// ExtractPlainText returns the content of all text segments joined by
// single spaces, with no leading or trailing space; text segments with
// empty content are skipped. When reduceFirst is true the message is
// reduced before extraction.
func (m *Message) ExtractPlainText(reduceFirst bool) string {
	if reduceFirst {
		m.Reduce()
	}
	var parts []string
	for _, seg := range *m {
		if seg.Type == TypeText && seg.Params["text"] != "" {
			parts = append(parts, seg.Params["text"])
		}
	}
	return strings.Join(parts, " ")
}

// Equal reports element-wise equality. Nil and empty messages are equal.
func (m Message) Equal(other Message) bool {
	return slices.EqualFunc(m, other, Segment.Equal)
}

// Clone returns a deep copy: a fresh slice with every segment cloned.
func (m Message) Clone() Message {
	out := make(Message, len(m))
	for i, seg := range m {
		out[i] = seg.Clone()
	}
	return out
}

// MarshalJSON implements json.Marshaler, emitting the array-of-objects
// form. A nil message marshals as an empty array.
func (m Message) MarshalJSON() ([]byte, error) {
	if m == nil {
		m = Message{}
	}
	return json.Marshal([]Segment(m))
}

// UnmarshalJSON implements json.Unmarshaler. It accepts both wire forms: a
// JSON array of segment objects, or a JSON string holding MT code.
func (m *Message) UnmarshalJSON(b []byte) error {
	if t := bytes.TrimLeft(b, " \t\r\n"); len(t) > 0 && t[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return invalidMessage(err)
		}
		*m = Parse(s)
		return nil
	}
	var segs []Segment
	if err := json.Unmarshal(b, &segs); err != nil {
		return invalidMessage(err)
	}
	out := make(Message, 0, len(segs))
	for _, seg := range segs {
		out.push(seg)
	}
	*m = out
	return nil
}

// push applies the append normalization rules to an already-owned segment,
// without validation or cloning.
func (m *Message) push(seg Segment) {
	if seg.Type == TypeText {
		if n := len(*m); n > 0 && (*m)[n-1].Type == TypeText {
			appendText(&(*m)[n-1], seg.Params["text"])
			return
		}
		if seg.Params["text"] == "" && len(*m) > 0 {
			return
		}
	}
	*m = append(*m, seg)
}

// appendText concatenates text onto a text segment, allocating the
// parameter map if the segment was built without one.
func appendText(seg *Segment, text string) {
	if text == "" {
		return
	}
	if seg.Params == nil {
		seg.Params = map[string]string{}
	}
	seg.Params["text"] += text
}

// coerceBatch normalizes batch-shaped input to a slice of owned segments.
func coerceBatch(v any) ([]Segment, error) {
	switch batch := v.(type) {
	case string:
		return []Segment(Parse(batch)), nil
	case Message:
		return coerceBatch([]Segment(batch))
	case []Segment:
		out := make([]Segment, 0, len(batch))
		for _, seg := range batch {
			if !validType(seg.Type) {
				return nil, fmt.Errorf("%w: type %q", ErrInvalidSegment, seg.Type)
			}
			out = append(out, seg.Clone())
		}
		return out, nil
	case []map[string]any:
		out := make([]Segment, 0, len(batch))
		for _, el := range batch {
			seg, err := segmentFromMap(el)
			if err != nil {
				return nil, err
			}
			out = append(out, seg)
		}
		return out, nil
	case []any:
		out := make([]Segment, 0, len(batch))
		for _, el := range batch {
			seg, err := SegmentFrom(el)
			if err != nil {
				return nil, err
			}
			out = append(out, seg)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: cannot coerce %T", ErrInvalidMessage, v)
	}
}

// invalidMessage folds any coercion failure into ErrInvalidMessage,
// avoiding double-wrapped sentinels.
func invalidMessage(err error) error {
	if errors.Is(err, ErrInvalidMessage) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
}
