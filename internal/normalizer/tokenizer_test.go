package normalizer

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected []string
	}{
		{name: "Digit_Letter_Boundary", input: "2kg Tomatoes!", expected: []string{"2", "kg", "tomatoes"}},
		{name: "Letter_Digit_Boundary", input: "kg2", expected: []string{"kg", "2"}},
		{name: "Decimal_Kept", input: "1.5kg aloo", expected: []string{"1.5", "kg", "aloo"}},
		{name: "Dot_Not_Decimal", input: "3.kg", expected: []string{"3", "kg"}},
		{name: "Diacritics", input: "Jalapeño Crème", expected: []string{"jalapeno", "creme"}},
		{name: "Latin_Fold", input: "Straße", expected: []string{"strasse"}},
		{name: "Fullwidth_Digits", input: "２kg", expected: []string{"2", "kg"}},
		{name: "Other_Scripts_Dropped", input: "2 kg молоко 你好 rice", expected: []string{"2", "kg", "rice"}},
		{name: "Punctuation_Collapsed", input: "tomato,onion  --  \"rice\"", expected: []string{"tomato", "onion", "rice"}},
		{name: "Telugu_Script", input: "ఒక కిలో టమాటాలు", expected: []string{"ఒక", "కిలో", "టమాటాలు"}},
		{name: "Devanagari_Script", input: "दो किलो आलू", expected: []string{"दो", "किलो", "आलू"}},
		{name: "Devanagari_Digits", input: "२किलो", expected: []string{"2", "किलो"}},
		{name: "Mixed_Script", input: "2 kg బెండకాయలు", expected: []string{"2", "kg", "బెండకాయలు"}},
		{name: "Math_Operators", input: "1+1=2", expected: []string{"1", "1", "2"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Tokenize(tc.input)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("Tokenize(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
		})
	}
}

// TestTokenize_Garbage đảm bảo input rỗng hoặc rác trả về dãy rỗng
func TestTokenize_Garbage(t *testing.T) {
	for _, input := range []string{"", "   ", "!!!", "...", "¿¡", "\t\n", "молоко 你好", "ελαιόλαδο"} {
		if got := Tokenize(input); len(got) != 0 {
			t.Errorf("Tokenize(%q) = %q, expected empty", input, got)
		}
	}
}

func TestNormalizeToken(t *testing.T) {
	testCases := map[string]string{
		"Tomato!":     "tomato",
		"  Eggs ":     "eggs",
		"Piñata":      "pinata",
		"టమాటా":       "టమాటా",
		"lady-finger": "ladyfinger",
		"":            "",
	}
	for input, expected := range testCases {
		if got := NormalizeToken(input); got != expected {
			t.Errorf("NormalizeToken(%q) = %q, expected %q", input, got, expected)
		}
	}
}

func TestStripDiacritics_KeepsIndicVowelSigns(t *testing.T) {
	input := "टमाटर टమాటా"
	if got := StripDiacritics(input); got != input {
		t.Errorf("StripDiacritics(%q) = %q, Indic vowel signs must survive", input, got)
	}
	if got := StripDiacritics("naïve café"); got != "naive cafe" {
		t.Errorf("StripDiacritics = %q", got)
	}
}
