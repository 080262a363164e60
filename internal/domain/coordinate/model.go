package coordinate

import "time"

// SetSize is the number of suggestions every response carries.
const SetSize = 3

// MaxPoints bounds the points kept per suggestion.
const MaxPoints = 3

// Unspecified is substituted for a missing occasion or style.
const Unspecified = "unspecified"

// Request is the validated input of one suggestion run.
type Request struct {
	Temp     *int
	Feels    *int
	Occasion string
	Style    string
	// SessionID scopes the in-flight guard; it never reaches the prompt.
	SessionID string
}

// Suggestion is one outfit recommendation.
type Suggestion struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Points      []string `json:"points"`
}

// Valid reports whether title and description are present and points fit.
func (s Suggestion) Valid() bool {
	return s.Title != "" && s.Description != "" && len(s.Points) <= MaxPoints
}

// Set is the ordered, exactly-three collection returned to callers.
type Set [SetSize]Suggestion

// Source tells where a response's suggestions came from.
type Source string

const (
	SourceModel    Source = "model"
	SourceFallback Source = "fallback"
)

// Response is serialized back to API consumers.
type Response struct {
	Suggestions []Suggestion `json:"suggestions"`
	Source      Source       `json:"-"`
}

// Config wires runtime knobs for the pipeline.
type Config struct {
	Temperature           float32
	MinSuggestions        int
	Language              string
	SurfaceUpstreamErrors bool
	InflightTTL           time.Duration
	// APIKeyEnv is named in the error returned when the credential is missing.
	APIKeyEnv             string
}
