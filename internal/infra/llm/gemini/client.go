package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	genai "google.golang.org/genai"

	"github.com/yanqian/coordinate-advisor/internal/infra/llm"
	"github.com/yanqian/coordinate-advisor/pkg/metrics"
)

const (
	providerName = "gemini"
	defaultModel = "gemini-2.5-flash"
)

// Options configures the Gemini adapter.
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// contentGenerator is the subset of *genai.Models used here.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client is a thin wrapper around the official genai client.
type Client struct {
	models contentGenerator
	model  string
}

// NewClient builds a Gemini adapter. An empty API key yields a client whose
// Generate always fails with llm.ErrMissingAPIKey, so the deployment defect is
// reported per request instead of preventing the weather endpoint from serving.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	if strings.TrimSpace(opts.APIKey) == "" {
		return &Client{model: model}, nil
	}

	cfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.Timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}
	if base := strings.TrimSpace(opts.BaseURL); base != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: base}
	}
	cli, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Client{models: cli.Models, model: model}, nil
}

// Name identifies the adapter in logs.
func (c *Client) Name() string { return providerName + ":" + c.model }

// Generate sends exactly one generateContent call and returns the first
// candidate's first text part.
func (c *Client) Generate(ctx context.Context, req llm.GenerateRequest) (gen llm.Generation, err error) {
	if c.models == nil {
		return llm.Generation{}, llm.ErrMissingAPIKey
	}
	// genai panics on error responses that lack an "error" object, which
	// happens behind some gateways.
	defer func() {
		if r := recover(); r != nil {
			gen, err = llm.Generation{}, fmt.Errorf("gemini generate content: %v", r)
		}
	}()

	resp, err := c.models.GenerateContent(ctx, c.model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: req.Prompt}}}},
		&genai.GenerateContentConfig{Temperature: genai.Ptr(req.Temperature)},
	)
	if err != nil {
		return llm.Generation{}, classify(err)
	}

	text := firstText(resp)
	if text == "" {
		return llm.Generation{}, llm.ErrEmptyResponse
	}
	return llm.Generation{Text: text, Usage: usageOf(resp)}, nil
}

func classify(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return &llm.StatusError{Provider: providerName, Status: apiErr.Code, Detail: apiDetail(apiErr)}
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return &llm.StatusError{Provider: providerName, Status: apiErrPtr.Code, Detail: apiDetail(*apiErrPtr)}
	}
	return fmt.Errorf("gemini generate content: %w", err)
}

func apiDetail(e genai.APIError) string {
	if e.Status == "" {
		return e.Message
	}
	return e.Status + ": " + e.Message
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil || len(cand.Content.Parts) == 0 || cand.Content.Parts[0] == nil {
		return ""
	}
	return cand.Content.Parts[0].Text
}

func usageOf(resp *genai.GenerateContentResponse) metrics.TokenUsage {
	if resp.UsageMetadata == nil {
		return metrics.TokenUsage{}
	}
	return metrics.TokenUsage{
		PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
		CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
	}
}
