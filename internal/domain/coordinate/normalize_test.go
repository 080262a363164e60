package coordinate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeMalformedEntry(t *testing.T) {
	parsed, err := Extract(`{"suggestions":[{"title":1,"description":"x","points":["a","b","c","d"]}]}`)
	require.NoError(t, err)

	got, err := Normalize(parsed, 1)
	require.NoError(t, err)
	require.Equal(t, []Suggestion{{Title: "suggestion 1", Description: "x", Points: []string{"a", "b", "c"}}}, got)
}

func TestNormalizeRejectsShape(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		min  int
	}{
		{name: "not an array", raw: `{"suggestions":"not-an-array"}`, min: 1},
		{name: "missing field", raw: `{"items":[]}`, min: 1},
		{name: "top level array", raw: `[{"title":"x"}]`, min: 1},
		{name: "too few for strict policy", raw: `{"suggestions":[{},{}]}`, min: 3},
		{name: "empty array", raw: `{"suggestions":[]}`, min: 0},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			parsed, err := Extract(tt.raw)
			require.NoError(t, err)
			_, err = Normalize(parsed, tt.min)
			require.ErrorIs(t, err, ErrShapeInvalid)
		})
	}
}

func TestNormalizePerFieldDefaults(t *testing.T) {
	raw := `{"suggestions":[
		{"title":"A","description":"first","points":["p1","p2","p3"]},
		"just a string",
		{"title":null,"description":7,"points":"not a list"},
		{"title":"D","description":"dropped","points":[]}
	]}`
	parsed, err := Extract(raw)
	require.NoError(t, err)

	got, err := Normalize(parsed, 3)
	require.NoError(t, err)
	require.Equal(t, []Suggestion{
		{Title: "A", Description: "first", Points: []string{"p1", "p2", "p3"}},
		{Title: "suggestion 2", Description: "", Points: []string{}},
		{Title: "suggestion 3", Description: "", Points: []string{}},
	}, got)
}

func TestNormalizeCoercesPoints(t *testing.T) {
	parsed, err := Extract(`{"suggestions":[{"title":"t","description":"d","points":[1.5,true,null]},{"title":"t","description":"d","points":[{"k":"v"},["x"],"s"]}]}`)
	require.NoError(t, err)

	got, err := Normalize(parsed, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"1.5", "true", "null"}, got[0].Points)
	require.Equal(t, []string{`{"k":"v"}`, `["x"]`, "s"}, got[1].Points)
}

func TestSuggestionValid(t *testing.T) {
	require.True(t, Suggestion{Title: "t", Description: "d", Points: []string{"a"}}.Valid())
	require.False(t, Suggestion{Title: "", Description: "d"}.Valid())
	require.False(t, Suggestion{Title: "t", Description: "d", Points: []string{"1", "2", "3", "4"}}.Valid())
}
