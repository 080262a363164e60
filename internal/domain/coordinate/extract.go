package coordinate

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrExtractionFailed means no JSON value could be recovered from model text.
var ErrExtractionFailed = errors.New("coordinate: no JSON found in model response")

var fencePattern = regexp.MustCompile("(?i)```(?:json)?")

// Extract recovers a JSON value from raw model output. It strips code fences,
// tries the cleaned text as-is, then the span from the first '{' to the last '}'.
func Extract(raw string) (any, error) {
	cleaned := strings.TrimSpace(fencePattern.ReplaceAllString(raw, ""))

	if v, err := decodeJSON(cleaned); err == nil {
		return v, nil
	}

	first := strings.Index(cleaned, "{")
	last := strings.LastIndex(cleaned, "}")
	if first >= 0 && last > first {
		if v, err := decodeJSON(cleaned[first : last+1]); err == nil {
			return v, nil
		}
	}
	return nil, ErrExtractionFailed
}

// decodeJSON parses exactly one JSON value, keeping numbers as json.Number.
func decodeJSON(text string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text[dec.InputOffset():]) != "" {
		return nil, errors.New("trailing data after JSON value")
	}
	return v, nil
}
