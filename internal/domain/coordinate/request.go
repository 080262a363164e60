package coordinate

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	apperrors "github.com/yanqian/coordinate-advisor/pkg/errors"
)

// ParseRequest validates an untrusted request body. Only a body that is not a
// JSON object is rejected; every field is optional and individually defaulted.
func ParseRequest(data []byte) (Request, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		return Request{}, apperrors.Wrap(apperrors.CodeInvalidInput, "Invalid JSON body", err)
	}
	return Request{
		Temp:     parseDegrees(raw["temp"]),
		Feels:    parseDegrees(raw["feels"]),
		Occasion: parseLabel(raw["occasion"]),
		Style:    parseLabel(raw["style"]),
	}, nil
}

// parseDegrees accepts a JSON number or a numeric string. Anything else,
// including null, means "unknown" and is never coerced to zero.
func parseDegrees(raw json.RawMessage) *int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil
	}

	var text string
	switch raw[0] {
	case '"':
		if err := json.Unmarshal(raw, &text); err != nil {
			return nil
		}
		text = strings.TrimSpace(text)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		text = string(raw)
	default:
		return nil
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	rounded := math.Round(f)
	if rounded > math.MaxInt32 || rounded < math.MinInt32 {
		return nil
	}
	v := int(rounded)
	return &v
}

func parseLabel(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return Unspecified
	}
	if s = strings.TrimSpace(s); s == "" {
		return Unspecified
	}
	return s
}
