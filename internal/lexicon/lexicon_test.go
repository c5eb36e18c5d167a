package lexicon

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Loads(t *testing.T) {
	lex := Default()
	require.NotNil(t, lex)

	assert.GreaterOrEqual(t, lex.Len(), 30)
	assert.Same(t, lex, Default(), "Default must build once")
	assert.Len(t, lex.Version(), 12)
}

func TestDefault_EntriesAreNormalized(t *testing.T) {
	lex := Default()

	for _, e := range lex.Entries() {
		require.NotEmpty(t, e.Aliases, "entry %s", e.Name)
		assert.Equal(t, e.Name, strings.Join(e.Aliases[0], " "), "canonical name must be the first alias")

		seen := make(map[string]bool)
		for _, alias := range e.Aliases {
			joined := strings.Join(alias, " ")
			assert.False(t, seen[joined], "duplicate alias %q in %s", joined, e.Name)
			seen[joined] = true

			for _, tok := range alias {
				assert.False(t, lex.IsUnit(tok), "alias token %q of %s is a unit word", tok, e.Name)
				_, isNumber := lex.Number(tok)
				assert.False(t, isNumber, "alias token %q of %s is a number word", tok, e.Name)
			}
		}
	}
}

func TestLookup(t *testing.T) {
	lex := Default()

	testCases := map[string]string{
		"Tomatoes":     "tomato",
		"lady-finger":  "okra",
		"BENDAKAYALU":  "okra",
		"టమాటాలు":      "tomato",
		"green chilli": "green chilli",
		"eggplant":     "brinjal",
	}
	for alias, want := range testCases {
		got, ok := lex.Lookup(alias)
		assert.True(t, ok, "Lookup(%q)", alias)
		assert.Equal(t, want, got, "Lookup(%q)", alias)
	}

	_, ok := lex.Lookup("benda kaya")
	assert.False(t, ok)
}

func TestNumbersUnitsHints(t *testing.T) {
	lex := Default()

	numbers := map[string]float64{
		"one": 1, "half": 0.5, "threequarter": 0.75, "dozen": 12,
		"ek": 1, "do": 2, "sawa": 1.25, "dedh": 1.5, "adhai": 2.5, "aadha": 0.5, "paav": 0.25,
		"oka": 1, "rendu": 2, "aidu": 5, "ara": 0.5, "pav": 0.25,
	}
	for word, want := range numbers {
		got, ok := lex.Number(word)
		assert.True(t, ok, "number word %q", word)
		assert.Equal(t, want, got, "number word %q", word)
	}

	units := map[string]Unit{"kg": UnitKg, "kilo": UnitKg, "kgs": UnitKg, "gm": UnitG, "grams": UnitG, "dozen": UnitDozen, "pcs": UnitPiece}
	for word, want := range units {
		got, ok := lex.Unit(word)
		assert.True(t, ok, "unit word %q", word)
		assert.Equal(t, want, got, "unit word %q", word)
	}

	assert.True(t, lex.IsHint("te", "oka"))
	assert.True(t, lex.IsHint("hi", "do"))
	assert.True(t, lex.IsHint("en", "half"))
	assert.False(t, lex.IsHint("en", "dozen"))
	assert.False(t, lex.IsHint("xx", "oka"))
}

func TestAliasTokens_DeclarationOrder(t *testing.T) {
	lex := Default()
	tokens := lex.AliasTokens()
	require.NotEmpty(t, tokens)

	assert.Equal(t, "tomato", tokens[0].Token)
	assert.Equal(t, 0, tokens[0].Entry)
	for i := 1; i < len(tokens); i++ {
		assert.LessOrEqual(t, tokens[i-1].Entry, tokens[i].Entry)
	}
}

func TestLoad_Errors(t *testing.T) {
	products := []byte("products:\n  - name: rice\n    aliases: [chawal]\n")
	empty := []byte("{}")

	_, err := Load([]byte("products:\n  - name: rice\n  - name: Rice\n"), empty, empty, empty)
	assert.Error(t, err, "duplicate canonical names")

	_, err = Load([]byte("products: []\n"), empty, empty, empty)
	assert.Error(t, err, "no products")

	_, err = Load(products, empty, []byte("units:\n  litre: [l]\n"), empty)
	assert.Error(t, err, "unknown unit")

	_, err = Load(products, empty, []byte("units:\n  kg: [kilo]\n  g: [kilo]\n"), empty)
	assert.Error(t, err, "unit synonym in two units")

	lex, err := Load(products, empty, empty, empty)
	require.NoError(t, err)
	assert.True(t, lex.Has("rice"))
	assert.False(t, lex.Has("chawal"))
}

func TestUnit_Text(t *testing.T) {
	for _, u := range []Unit{UnitPiece, UnitKg, UnitG, UnitDozen} {
		b, err := json.Marshal(u)
		require.NoError(t, err)

		var back Unit
		require.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(t, u, back)
	}

	assert.Equal(t, "piece", Unit(0).String())

	var u Unit
	assert.Error(t, json.Unmarshal([]byte(`"litre"`), &u))
	_, err := json.Marshal(Unit(42))
	assert.Error(t, err)
}
