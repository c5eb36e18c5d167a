package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/order-parser/internal/langdetect"
	"github.com/order-parser/internal/lexicon"
)

func newTestParser() *OrderParser {
	return NewOrderParser(lexicon.Default(), zap.NewNop())
}

func TestParse_Examples(t *testing.T) {
	p := newTestParser()

	t.Run("Telugu_Romanized", func(t *testing.T) {
		r := p.Parse("oka kg tomatolu")
		assert.Equal(t, []ParsedItem{{Name: "tomato", Quantity: 1, Unit: lexicon.UnitKg, Raw: "oka kg tomatolu"}}, r.Items)
		assert.Empty(t, r.Guesses)
		assert.Equal(t, langdetect.Telugu, r.LanguageHint)
	})

	t.Run("English_Half_Kilo", func(t *testing.T) {
		r := p.Parse("half kilo tomato")
		require.Len(t, r.Items, 1)
		assert.Equal(t, "tomato", r.Items[0].Name)
		assert.Equal(t, 0.5, r.Items[0].Quantity)
		assert.Equal(t, lexicon.UnitKg, r.Items[0].Unit)
		assert.Equal(t, langdetect.English, r.LanguageHint)
	})

	t.Run("Hindi_Dozen", func(t *testing.T) {
		r := p.Parse("do dozen eggs")
		require.Len(t, r.Items, 1)
		assert.Equal(t, "eggs", r.Items[0].Name)
		assert.Equal(t, 2.0, r.Items[0].Quantity)
		assert.Equal(t, lexicon.UnitDozen, r.Items[0].Unit)
		assert.Equal(t, langdetect.Hindi, r.LanguageHint)
	})

	t.Run("Spoken_Compound_Only_Guesses", func(t *testing.T) {
		r := p.Parse("benda kaya please")
		assert.Empty(t, r.Items)
		assert.Contains(t, guessNames(r.Guesses), "okra")
		assert.Equal(t, ParseGuess{Name: "okra", Confidence: 1, Raw: "benda kaya please"}, r.Guesses[0])
	})

	t.Run("Two_Items_In_Order", func(t *testing.T) {
		r := p.Parse("2 kg bendakayalu, oka kilo tomatolu")
		assert.Equal(t, []ParsedItem{
			{Name: "okra", Quantity: 2, Unit: lexicon.UnitKg, Raw: "2 kg bendakayalu"},
			{Name: "tomato", Quantity: 1, Unit: lexicon.UnitKg, Raw: "oka kilo tomatolu"},
		}, r.Items)
		assert.Empty(t, r.Guesses)
	})
}

func TestParse_EmptyInput(t *testing.T) {
	p := newTestParser()

	for _, input := range []string{"", "   ", "\n\t"} {
		r := p.Parse(input)
		assert.Empty(t, r.Items)
		assert.Empty(t, r.Guesses)
		assert.NotNil(t, r.Items, "items must serialize as []")
		assert.NotNil(t, r.Guesses, "guesses must serialize as []")
		assert.Equal(t, langdetect.English, r.LanguageHint, "blank input is en")
	}

	// Non-blank input without any language signal is mixed, not en.
	assert.Equal(t, langdetect.Mixed, p.Parse("2 kg rice").LanguageHint)
	assert.Equal(t, langdetect.Mixed, p.Parse("!!!").LanguageHint)
}

func TestParse_DefaultsUnitToPiece(t *testing.T) {
	r := newTestParser().Parse("tomato")
	require.Len(t, r.Items, 1)
	assert.Equal(t, lexicon.UnitPiece, r.Items[0].Unit)
	assert.Equal(t, 1.0, r.Items[0].Quantity)
}

func TestParse_TieKeepsDeclarationOrder(t *testing.T) {
	// "eggplant" hits brinjal ("eggplant") and eggs ("egg") with the same score.
	r := newTestParser().Parse("eggplant")
	require.Len(t, r.Items, 1)
	assert.Equal(t, "brinjal", r.Items[0].Name)
}

func TestParse_SafetySweep(t *testing.T) {
	// "or" is only a delimiter, so no segment survives and the sweep runs.
	r := newTestParser().Parse("or")
	assert.Empty(t, r.Items)
	require.NotEmpty(t, r.Guesses)
	assert.LessOrEqual(t, len(r.Guesses), MaxGuesses)
	assert.Contains(t, guessNames(r.Guesses), "oil")
	for _, g := range r.Guesses {
		assert.Equal(t, SweepConfidence, g.Confidence)
		assert.Equal(t, "or", g.Raw)
	}
}

func TestParse_Invariants(t *testing.T) {
	p := newTestParser()
	lex := p.Lexicon()

	inputs := []string{
		"oka kg tomatolu", "half kilo tomato", "do dozen eggs", "benda kaya please",
		"2 kg bendakayalu, oka kilo tomatolu", "or", "2 kg", "xyzzy qwerty",
		"0.001 kg salt", "zero eggs", "teen kilo pyaz or do kg aloo",
		"please give me some milk and bread", "ఒక కిలో టమాటాలు", "दो किलो आलू",
		"a b c d e f g", "tamatr pyaaz aloo bhindi gajar mirchi adrak",
	}
	for _, input := range inputs {
		r := p.Parse(input)

		assert.Equal(t, r, p.Parse(input), "Parse must be deterministic for %q", input)
		assert.LessOrEqual(t, len(r.Guesses), MaxGuesses, "%q", input)

		seen := make(map[string]bool)
		for i, g := range r.Guesses {
			assert.True(t, lex.Has(g.Name), "unknown guess %q", g.Name)
			assert.False(t, seen[g.Name], "duplicate guess %q for %q", g.Name, input)
			seen[g.Name] = true
			assert.GreaterOrEqual(t, g.Confidence, 0.0)
			assert.LessOrEqual(t, g.Confidence, 1.0)
			if i > 0 {
				assert.GreaterOrEqual(t, r.Guesses[i-1].Confidence, g.Confidence, "guesses sorted for %q", input)
			}
		}
		for _, item := range r.Items {
			assert.True(t, lex.Has(item.Name), "unknown item %q", item.Name)
			assert.GreaterOrEqual(t, item.Quantity, 0.01, "%q", input)
			assert.True(t, item.Unit.Valid())
		}
	}
}

func TestParse_QuantityClamp(t *testing.T) {
	p := newTestParser()

	r := p.Parse("0.001 kg salt")
	require.Len(t, r.Items, 1)
	assert.Equal(t, 0.01, r.Items[0].Quantity)

	r = p.Parse("zero eggs")
	require.Len(t, r.Items, 1)
	assert.Equal(t, 1.0, r.Items[0].Quantity, "unresolved quantity defaults to 1")

	r = p.Parse("one half kg onion")
	require.Len(t, r.Items, 1)
	assert.Equal(t, 1.5, r.Items[0].Quantity)
}

func TestParseMultiple(t *testing.T) {
	p := newTestParser()

	t.Run("Concatenates_Items", func(t *testing.T) {
		r := p.ParseMultiple([]string{"2 kg bendakayalu", "oka kilo tomatolu"})
		assert.Equal(t, []string{"okra", "tomato"}, itemNames(r.Items))
		assert.Equal(t, langdetect.Telugu, r.LanguageHint)
	})

	t.Run("Hint_From_Item_Raw_Text", func(t *testing.T) {
		// en 1 (half) vs te 2 (oka, tomatolu): within one point.
		r := p.ParseMultiple([]string{"half kilo tomato", "oka kg tomatolu"})
		assert.Len(t, r.Items, 2)
		assert.Equal(t, langdetect.Mixed, r.LanguageHint)
	})

	t.Run("Hint_Ignores_Guess_Only_Utterances", func(t *testing.T) {
		r := p.ParseMultiple([]string{"do dozen eggs", "benda kaya please"})
		assert.Equal(t, langdetect.Hindi, r.LanguageHint)
		assert.Contains(t, guessNames(r.Guesses), "okra")
	})

	t.Run("No_Items_Uses_First_Hint", func(t *testing.T) {
		r := p.ParseMultiple([]string{"benda kaya please", "or"})
		assert.Empty(t, r.Items)
		assert.Equal(t, langdetect.English, r.LanguageHint)
		assert.LessOrEqual(t, len(r.Guesses), MaxGuesses)
	})

	t.Run("Guesses_Deduplicated", func(t *testing.T) {
		r := p.ParseMultiple([]string{"benda kaya please", "benda kaya please"})
		assert.Equal(t, []string{"okra"}, guessNames(r.Guesses))
	})

	t.Run("Empty_Batch", func(t *testing.T) {
		r := p.ParseMultiple(nil)
		assert.Empty(t, r.Items)
		assert.Empty(t, r.Guesses)
		assert.Equal(t, langdetect.English, r.LanguageHint)
	})
}

func TestPackageLevelParse(t *testing.T) {
	assert.Equal(t, newTestParser().Parse("do dozen eggs"), Parse("do dozen eggs"))
	assert.Equal(t, newTestParser().ParseMultiple([]string{"tomato", "aloo"}), ParseMultiple([]string{"tomato", "aloo"}))
}

func guessNames(guesses []ParseGuess) []string {
	names := make([]string, 0, len(guesses))
	for _, g := range guesses {
		names = append(names, g.Name)
	}
	return names
}

func itemNames(items []ParsedItem) []string {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	return names
}
