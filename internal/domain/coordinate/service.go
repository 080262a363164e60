package coordinate

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/yanqian/coordinate-advisor/internal/infra/llm"
	apperrors "github.com/yanqian/coordinate-advisor/pkg/errors"
)

const defaultAPIKeyEnv = "GEMINI_API_KEY"

// ErrInFlight is returned by an InflightGuard when the key is already held.
var ErrInFlight = errors.New("coordinate: request already in flight")

// Service exposes the outfit suggestion pipeline.
type Service interface {
	Suggest(ctx context.Context, req Request) (Response, error)
}

// Generator is the model invoker: one prompt in, the first text candidate out.
type Generator interface {
	Generate(ctx context.Context, req llm.GenerateRequest) (llm.Generation, error)
}

// InflightGuard serializes suggestion runs per session.
type InflightGuard interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}

type service struct {
	cfg       Config
	generator Generator
	guard     InflightGuard
	logger    *slog.Logger
	now       func() time.Time
}

// NewService wires up the suggestion pipeline. guard may be nil.
func NewService(cfg Config, generator Generator, guard InflightGuard, logger *slog.Logger) Service {
	if cfg.MinSuggestions < 1 {
		cfg.MinSuggestions = SetSize
	}
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = defaultAPIKeyEnv
	}
	return &service{
		cfg:       cfg,
		generator: generator,
		guard:     guard,
		logger:    logger.With("component", "coordinate.service"),
		now:       time.Now,
	}
}

func (s *service) Suggest(ctx context.Context, req Request) (Response, error) {
	if s.generator == nil {
		return Response{}, s.missingKey(llm.ErrMissingAPIKey)
	}
	if s.guard != nil && req.SessionID != "" {
		release, err := s.guard.Acquire(ctx, req.SessionID, s.cfg.InflightTTL)
		switch {
		case errors.Is(err, ErrInFlight):
			return Response{}, apperrors.Wrap(apperrors.CodeRequestInFlight, "suggestion already in progress", err)
		case err != nil:
			s.logger.Warn("inflight guard unavailable, continuing unguarded", "error", err)
		default:
			defer release()
		}
	}

	start := s.now()
	prompt := BuildPrompt(req, PromptOptions{Language: s.cfg.Language})
	gen, err := s.generator.Generate(ctx, llm.GenerateRequest{
		Prompt:      prompt,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			return Response{}, s.missingKey(err)
		}
		var statusErr *llm.StatusError
		if s.cfg.SurfaceUpstreamErrors && errors.As(err, &statusErr) {
			return Response{}, apperrors.Wrap(apperrors.CodeUpstreamUnavailable, "model API error", err)
		}
		return s.fallback("generate", err), nil
	}
	s.logger.Debug("model response received", "content", gen.Text)

	parsed, err := Extract(gen.Text)
	if err != nil {
		return s.fallback("extract", err), nil
	}
	suggestions, err := Normalize(parsed, s.cfg.MinSuggestions)
	if err != nil {
		return s.fallback("normalize", err), nil
	}
	// A partial set is never mixed with fallback entries.
	if len(suggestions) < SetSize {
		return s.fallback("normalize", errors.New("fewer than 3 suggestions")), nil
	}

	s.logger.Info("coordinate suggestions generated",
		"occasion", req.Occasion,
		"style", req.Style,
		"tokens", gen.Usage,
		"latency_ms", s.now().Sub(start).Milliseconds(),
	)
	return Response{Suggestions: suggestions, Source: SourceModel}, nil
}

func (s *service) missingKey(err error) error {
	return apperrors.Wrap(apperrors.CodeConfigMissing, s.cfg.APIKeyEnv+" is not set", err)
}

func (s *service) fallback(stage string, reason error) Response {
	s.logger.Warn("serving fallback suggestions", "stage", stage, "reason", reason)
	set := Fallback()
	return Response{Suggestions: set[:], Source: SourceFallback}
}
