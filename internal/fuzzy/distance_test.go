package fuzzy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/order-parser/internal/fuzzy"
)

func TestDistance(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"tomato", "tomato", 0},
		{"tomato", "tomatoes", 2},
		{"kitten", "sitting", 3},
		{"or", "oil", 2},
		{"", "egg", 3},
		{"టమాటా", "టమాటాలు", 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fuzzy.Distance(tt.a, tt.b), "Distance(%q, %q)", tt.a, tt.b)
		assert.Equal(t, tt.want, fuzzy.Distance(tt.b, tt.a), "Distance is symmetric for %q, %q", tt.a, tt.b)
	}
}

func TestWithin(t *testing.T) {
	t.Parallel()

	assert.True(t, fuzzy.Within("tomatos", "tomato", fuzzy.MaxDistance))
	assert.True(t, fuzzy.Within("bhindi", "bhindee", fuzzy.MaxDistance))
	assert.False(t, fuzzy.Within("benda", "bendakaya", fuzzy.MaxDistance))
	assert.False(t, fuzzy.Within("egg", "kela", 1))
}

func TestBestDistance(t *testing.T) {
	t.Parallel()

	best, ok := fuzzy.BestDistance("tomatolu", []string{"onion", "tomatoes", "tomatolu"})
	assert.True(t, ok)
	assert.Equal(t, 0, best)

	best, ok = fuzzy.BestDistance("aloo", []string{"alu", "aaloo"})
	assert.True(t, ok)
	assert.Equal(t, 1, best)

	_, ok = fuzzy.BestDistance("aloo", nil)
	assert.False(t, ok)
}

func TestMatchesAny(t *testing.T) {
	t.Parallel()

	assert.True(t, fuzzy.MatchesAny("pyaaz", []string{"rice", "pyaz"}))
	assert.False(t, fuzzy.MatchesAny("please", []string{"rice", "pyaz"}))
}
