package invite

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Code(t *testing.T) {
	g, err := NewGenerator(16, "https://ldr.example.com/")
	require.NoError(t, err)

	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code, err := g.Code()
		require.NoError(t, err)
		assert.Len(t, code, 16)
		assert.Equal(t, strings.ToLower(code), code)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(Alphabet, r), "unexpected rune %q", r)
		}
		seen[code] = struct{}{}
	}
	assert.Len(t, seen, 200)
}

func TestGenerator_MinimumLength(t *testing.T) {
	g, err := NewGenerator(4, "https://ldr.example.com/")
	require.NoError(t, err)

	code, err := g.Code()
	require.NoError(t, err)
	assert.Len(t, code, MinCodeLength)
}

func TestGenerator_CodePair(t *testing.T) {
	g, err := NewGenerator(MinCodeLength, "https://ldr.example.com/")
	require.NoError(t, err)

	pair, trio, err := g.CodePair()
	require.NoError(t, err)
	assert.NotEqual(t, pair, trio)
}

func TestGenerator_SpaceID(t *testing.T) {
	g, err := NewGenerator(16, "https://ldr.example.com/")
	require.NoError(t, err)

	a, b := g.SpaceID(), g.SpaceID()
	assert.NotEqual(t, a, b)
	assert.Equal(t, strings.ToLower(a), a)
}

func TestGenerator_LinkAndParse(t *testing.T) {
	g, err := NewGenerator(16, "https://ldr.example.com/join?ref=app")
	require.NoError(t, err)

	link := g.Link("abc123xyz0000")
	assert.Contains(t, link, "invite=abc123xyz0000")
	assert.Contains(t, link, "ref=app")
	assert.Equal(t, "abc123xyz0000", Parse(link))
	assert.Empty(t, g.Link(""))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "typed mixed case", input: "AbC123xyz", want: "abc123xyz"},
		{name: "stored lower case", input: "abc123xyz", want: "abc123xyz"},
		{name: "surrounding spaces", input: "  ABC123XYZ \n", want: "abc123xyz"},
		{name: "link", input: "https://ldr.example.com/?invite=AbC123xyz", want: "abc123xyz"},
		{name: "empty", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}
