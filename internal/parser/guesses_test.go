package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/order-parser/internal/lexicon"
)

func TestBuildGuesses(t *testing.T) {
	lex := lexicon.Default()

	guesses := BuildGuesses(lex, []string{"benda", "kaya", "please"}, "benda kaya please")
	require.NotEmpty(t, guesses)
	assert.LessOrEqual(t, len(guesses), MaxSegmentGuesses)
	assert.Equal(t, ParseGuess{Name: "okra", Confidence: 1, Raw: "benda kaya please"}, guesses[0])

	assert.Empty(t, BuildGuesses(lex, nil, ""))
}

func TestBuildGuesses_PartialFraction(t *testing.T) {
	lex, err := lexicon.Load(
		[]byte("products:\n  - name: curry leaves\n    aliases: [curry patta]\n"),
		[]byte("{}"), []byte("{}"), []byte("{}"))
	require.NoError(t, err)

	guesses := BuildGuesses(lex, []string{"kurry"}, "kurry")
	require.Len(t, guesses, 1)
	assert.Equal(t, 0.5, guesses[0].Confidence, "one of two alias tokens matched")
}

func TestRankGuesses(t *testing.T) {
	in := []ParseGuess{
		{Name: "okra", Confidence: 0.5, Raw: "a"},
		{Name: "tomato", Confidence: 0.5, Raw: "b"},
		{Name: "okra", Confidence: 1, Raw: "c"},
		{Name: "onion", Confidence: 0.3, Raw: "d"},
		{Name: "tomato", Confidence: 0.2, Raw: "e"},
		{Name: "rice", Confidence: 0.3, Raw: "f"},
		{Name: "salt", Confidence: 0.3, Raw: "g"},
		{Name: "milk", Confidence: 0.3, Raw: "h"},
	}

	got := rankGuesses(in, MaxGuesses)
	assert.Equal(t, []ParseGuess{
		{Name: "okra", Confidence: 1, Raw: "c"},
		{Name: "tomato", Confidence: 0.5, Raw: "b"},
		{Name: "onion", Confidence: 0.3, Raw: "d"},
		{Name: "rice", Confidence: 0.3, Raw: "f"},
		{Name: "salt", Confidence: 0.3, Raw: "g"},
	}, got)
}

func TestSweepGuesses(t *testing.T) {
	lex := lexicon.Default()

	got := sweepGuesses(lex, []string{"or"}, "or")
	require.NotEmpty(t, got)
	assert.LessOrEqual(t, len(got), MaxGuesses)
	assert.Contains(t, guessNames(got), "oil")
	assert.Contains(t, guessNames(got), "toor dal")

	assert.Empty(t, sweepGuesses(lex, nil, ""))
}
