package langdetect

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/order-parser/internal/lexicon"
	"github.com/order-parser/internal/normalizer"
)

func TestClassify(t *testing.T) {
	lex := lexicon.Default()

	testCases := []struct {
		name  string
		input string
		want  Language
	}{
		{name: "Telugu_Romanized", input: "oka kg tomatolu", want: Telugu},
		{name: "English", input: "half kilo tomato", want: English},
		{name: "Hindi_Romanized", input: "do dozen eggs", want: Hindi},
		{name: "Telugu_Script", input: "ఒక కిలో టమాటాలు", want: Telugu},
		{name: "Devanagari_Script", input: "दो किलो आलू", want: Hindi},
		{name: "No_Signal", input: "2 kg rice", want: Mixed},
		{name: "Tie_Is_Mixed", input: "oka ek", want: Mixed},
		{name: "Within_One_Is_Mixed", input: "rendu kavali please", want: Mixed},
		{name: "Clear_Lead", input: "rendu kilo tomatolu kavali please", want: Telugu},
		{name: "Empty_Tokens", input: "", want: Mixed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(lex, normalizer.Tokenize(tc.input)))
		})
	}
}

func TestScore(t *testing.T) {
	lex := lexicon.Default()

	s := Score(lex, normalizer.Tokenize("ఒక oka half"))
	assert.Equal(t, Scores{Telugu: 2 + 1, Hindi: 0, English: 1}, s)
}

func TestDecide(t *testing.T) {
	assert.Equal(t, Mixed, Decide(Scores{}))
	assert.Equal(t, Telugu, Decide(Scores{Telugu: 3, Hindi: 1}))
	assert.Equal(t, Mixed, Decide(Scores{Telugu: 3, Hindi: 2}))
	assert.Equal(t, Hindi, Decide(Scores{Hindi: 1}))
	assert.Equal(t, English, Decide(Scores{English: 2}))
}

func TestLanguage_Text(t *testing.T) {
	for _, l := range []Language{English, Telugu, Hindi, Mixed} {
		b, err := json.Marshal(l)
		require.NoError(t, err)

		var back Language
		require.NoError(t, json.Unmarshal(b, &back))
		assert.Equal(t, l, back)
	}

	var l Language
	assert.Error(t, json.Unmarshal([]byte(`"fr"`), &l))
	assert.Equal(t, "te", Telugu.String())
}
