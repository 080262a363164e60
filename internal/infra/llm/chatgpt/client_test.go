package chatgpt

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/coordinate-advisor/internal/infra/llm"
)

func TestGenerateSuccess(t *testing.T) {
	var got ChatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"suggestions\":[]}"}}],"usage":{"prompt_tokens":3,"completion_tokens":4,"total_tokens":7}}`))
	}))
	defer server.Close()

	client := NewClient("sk-test", server.URL+"/", "gpt-test", time.Second)
	gen, err := client.Generate(context.Background(), llm.GenerateRequest{Prompt: "outfit please", Temperature: 0.9})
	require.NoError(t, err)
	require.Equal(t, `{"suggestions":[]}`, gen.Text)
	require.Equal(t, 7, gen.Usage.TotalTokens)

	require.Equal(t, "gpt-test", got.Model)
	require.Equal(t, []Message{{Role: "user", Content: "outfit please"}}, got.Messages)
	require.Equal(t, float32(0.9), got.Temperature)
}

func TestGenerateStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"rate limited"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient("sk-test", server.URL, "gpt-test", time.Second)
	_, err := client.Generate(context.Background(), llm.GenerateRequest{Prompt: "p"})

	var statusErr *llm.StatusError
	require.True(t, errors.As(err, &statusErr))
	require.Equal(t, http.StatusTooManyRequests, statusErr.Status)
	require.Contains(t, statusErr.Detail, "rate limited")
}

func TestGenerateEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewClient("sk-test", server.URL, "gpt-test", time.Second)
	_, err := client.Generate(context.Background(), llm.GenerateRequest{Prompt: "p"})
	require.ErrorIs(t, err, llm.ErrEmptyResponse)
}

func TestGenerateWithoutKey(t *testing.T) {
	client := NewClient("  ", "", "gpt-test", 0)
	_, err := client.Generate(context.Background(), llm.GenerateRequest{Prompt: "p"})
	require.ErrorIs(t, err, llm.ErrMissingAPIKey)
	require.Equal(t, defaultBaseURL, client.baseURL)
}
