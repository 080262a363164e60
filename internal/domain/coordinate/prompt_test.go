package coordinate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildPromptRendersConditions(t *testing.T) {
	req := Request{Temp: intPtr(5), Feels: intPtr(-2), Occasion: "デート", Style: "きれいめ"}
	prompt := BuildPrompt(req, PromptOptions{Language: "Japanese"})

	require.Contains(t, prompt, "- Temperature: 5°C\n")
	require.Contains(t, prompt, "- Feels like: -2°C\n")
	require.Contains(t, prompt, "- Occasion: デート\n")
	require.Contains(t, prompt, "- Style: きれいめ\n")
	require.Contains(t, prompt, "Write every title, description and point in Japanese.")
	require.NotContains(t, prompt, unknownMarker)
}

func TestBuildPromptUnknownTemperatures(t *testing.T) {
	tests := []struct {
		name  string
		req   Request
		count int
	}{
		{name: "both absent", req: Request{Occasion: Unspecified, Style: Unspecified}, count: 2},
		{name: "feels absent", req: Request{Temp: intPtr(0), Occasion: "仕事", Style: "モード"}, count: 1},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			prompt := BuildPrompt(tt.req, PromptOptions{})
			require.Equal(t, tt.count, strings.Count(prompt, unknownMarker))
			require.Contains(t, prompt, "- Occasion: "+tt.req.Occasion)
			require.Contains(t, prompt, "- Style: "+tt.req.Style)
			require.NotContains(t, prompt, "Write every title")
		})
	}
}

func TestBuildPromptConstraints(t *testing.T) {
	prompt := BuildPrompt(Request{Occasion: "a", Style: "b"}, PromptOptions{})

	for _, want := range []string{
		"Return JSON only. No explanations, no preface, no code fences.",
		`"suggestions"`,
		"exactly 3 objects",
		"One suggestion is one outfit.",
		"Vague adjectives are forbidden",
		"outer, top, bottom (or one-piece dress), shoes and bag",
		"1st: the main item",
		"2nd: a warmth or comfort tactic",
		"3rd: an alternative",
		"1st: the safe choice",
	} {
		require.Contains(t, prompt, want)
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	req := Request{Temp: intPtr(12), Occasion: "お出かけ", Style: "カジュアル"}
	require.Equal(t, BuildPrompt(req, PromptOptions{Language: "Japanese"}), BuildPrompt(req, PromptOptions{Language: "Japanese"}))
}
