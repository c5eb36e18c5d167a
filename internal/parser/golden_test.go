package parser

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// GoldenTest một fixture trong testdata/golden
type GoldenTest struct {
	Raw    string `json:"raw"`
	Expect struct {
		Items []struct {
			Name     string  `json:"name"`
			Quantity float64 `json:"quantity"`
			Unit     string  `json:"unit"`
		} `json:"items"`
		Guesses      []string `json:"guesses"`
		LanguageHint string   `json:"language_hint"`
	} `json:"expect"`
}

// TestGoldenTests chạy tất cả golden tests
func TestGoldenTests(t *testing.T) {
	goldenDir := filepath.Join("testdata", "golden")
	files, err := os.ReadDir(goldenDir)
	require.NoError(t, err)

	p := newTestParser()
	for _, file := range files {
		if filepath.Ext(file.Name()) != ".json" {
			continue
		}
		path := filepath.Join(goldenDir, file.Name())

		t.Run(file.Name(), func(t *testing.T) {
			data, err := os.ReadFile(path)
			require.NoError(t, err)

			var test GoldenTest
			require.NoError(t, json.Unmarshal(data, &test))

			r := p.Parse(test.Raw)
			require.Len(t, r.Items, len(test.Expect.Items), "items for %q", test.Raw)
			for i, want := range test.Expect.Items {
				assert.Equal(t, want.Name, r.Items[i].Name)
				assert.Equal(t, want.Quantity, r.Items[i].Quantity)
				assert.Equal(t, want.Unit, r.Items[i].Unit.String())
			}

			if len(test.Expect.Guesses) == 0 {
				assert.Empty(t, r.Guesses)
			}
			for _, name := range test.Expect.Guesses {
				assert.Contains(t, guessNames(r.Guesses), name)
			}
			assert.Equal(t, test.Expect.LanguageHint, r.LanguageHint.String())
		})
	}
}
