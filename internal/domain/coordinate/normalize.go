package coordinate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrShapeInvalid means the parsed value has no usable suggestions array.
var ErrShapeInvalid = errors.New("coordinate: model response does not match the suggestion schema")

// Normalize coerces an untrusted parsed value into at most SetSize
// suggestions. The top-level array must hold at least minCount entries;
// individual malformed fields are defaulted instead of rejected.
func Normalize(v any, minCount int) ([]Suggestion, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: top level is not an object", ErrShapeInvalid)
	}
	items, ok := obj["suggestions"].([]any)
	if !ok {
		return nil, fmt.Errorf("%w: suggestions is missing or not an array", ErrShapeInvalid)
	}
	if minCount < 1 {
		minCount = 1
	}
	if len(items) < minCount {
		return nil, fmt.Errorf("%w: got %d suggestions, need %d", ErrShapeInvalid, len(items), minCount)
	}
	if len(items) > SetSize {
		items = items[:SetSize]
	}

	out := make([]Suggestion, 0, len(items))
	for idx, item := range items {
		out = append(out, normalizeEntry(item, idx+1))
	}
	return out, nil
}

func normalizeEntry(item any, position int) Suggestion {
	fields, _ := item.(map[string]any)

	title, ok := fields["title"].(string)
	if !ok {
		title = fmt.Sprintf("suggestion %d", position)
	}
	description, _ := fields["description"].(string)

	points := []string{}
	if raw, ok := fields["points"].([]any); ok {
		if len(raw) > MaxPoints {
			raw = raw[:MaxPoints]
		}
		for _, p := range raw {
			points = append(points, stringify(p))
		}
	}

	return Suggestion{Title: title, Description: description, Points: points}
}

// stringify renders any decoded JSON value as text.
func stringify(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case nil:
		return "null"
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(data)
	}
}
