package coordinate

import (
	"strconv"
	"strings"
)

const unknownMarker = "unknown"

// PromptOptions carries the configurable parts of the prompt.
type PromptOptions struct {
	// Language the model writes titles, descriptions and points in.
	Language string
}

// BuildPrompt renders the request into the instruction sent to the model.
// It is pure: identical input always yields the identical string.
func BuildPrompt(req Request, opts PromptOptions) string {
	var b strings.Builder

	b.WriteString("You are an editor and stylist for a women's fashion magazine.\n")
	b.WriteString("Your top priority is that the reader can decide without hesitation: \"today I will wear exactly this\".\n")
	if lang := strings.TrimSpace(opts.Language); lang != "" {
		b.WriteString("Write every title, description and point in " + lang + ".\n")
	}

	b.WriteString("\n[Conditions]\n")
	b.WriteString("- Temperature: " + degrees(req.Temp) + "\n")
	b.WriteString("- Feels like: " + degrees(req.Feels) + "\n")
	b.WriteString("- Occasion: " + req.Occasion + "\n")
	b.WriteString("- Style: " + req.Style + "\n")

	b.WriteString(`
[Output rules (most important)]
- Return JSON only. No explanations, no preface, no code fences.
- The JSON must have exactly this shape:
{
  "suggestions": [
    { "title": "...", "description": "...", "points": ["...", "...", "..."] },
    { "title": "...", "description": "...", "points": ["...", "...", "..."] },
    { "title": "...", "description": "...", "points": ["...", "...", "..."] }
  ]
}
- "suggestions" holds exactly 3 objects and every "points" array holds exactly 3 strings.

[Content rules]
- One suggestion is one outfit. Never branch inside a suggestion ("or", "alternatively").
- Vague adjectives are forbidden (refined, effortless, grown-up, elegant, trendy, polished and the like). Always name concrete items (nouns).
- Use items found in an ordinary wardrobe. Avoid made-up brands and hard-to-find pieces.
- Always include protection from the cold that fits the temperature and feels-like temperature (cover the neck, wrists or ankles).
- Avoid anything that does not suit the occasion (for example full sportswear for a date, or overly revealing clothes for work).

[How to write each field]
- title: short (about 12 characters), in the form of a conclusion (for example "Black long coat x boots").
- description: 2 to 3 sentences. The first sentence states decisively what to wear today; the remaining sentences give the reasons (temperature, occasion, style fit).
  The description must mention the outer, top, bottom (or one-piece dress), shoes and bag.
- points: always exactly 3, with fixed roles:
  1st: the main item (such as the outer) made concrete with its colour, length or material.
  2nd: a warmth or comfort tactic (inner layer, tights, socks, gloves, scarf and so on).
  3rd: an alternative, one item that can replace another in the same direction (for example "no leather skirt? black satin skirt or slacks").

[Variation across the 3 suggestions]
- The three suggestions must not share a direction:
  - 1st: the safe choice when in doubt (hard to get wrong).
  - 2nd: mood first (looks great in photos or on a date).
  - 3rd: a little adventurous (leans into the style but still works).
`)
	return b.String()
}

func degrees(v *int) string {
	if v == nil {
		return unknownMarker
	}
	return strconv.Itoa(*v) + "°C"
}
