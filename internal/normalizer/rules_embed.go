package normalizer

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/delimiters.yaml
var delimitersYAML []byte

// DelimiterRules tập từ nối dùng để tách một câu đặt hàng thành nhiều dòng
type DelimiterRules struct {
	SingleWord []string `yaml:"single_word"`
	TwoWord    []string `yaml:"two_word"`
}

// delimiterSet dạng tra cứu nhanh của DelimiterRules
type delimiterSet struct {
	single map[string]struct{}
	pairs  map[[2]string]struct{}
}

var defaultDelimiters = mustDelimiters(delimitersYAML)

// LoadDelimiterRules load tập từ nối từ YAML
func LoadDelimiterRules(data []byte) (*DelimiterRules, error) {
	rules := &DelimiterRules{}
	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("lỗi đọc delimiter rules: %w", err)
	}
	return rules, nil
}

func newDelimiterSet(rules *DelimiterRules) (*delimiterSet, error) {
	set := &delimiterSet{
		single: make(map[string]struct{}, len(rules.SingleWord)),
		pairs:  make(map[[2]string]struct{}, len(rules.TwoWord)),
	}
	for _, w := range rules.SingleWord {
		set.single[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
	}
	for _, p := range rules.TwoWord {
		words := strings.Fields(strings.ToLower(p))
		if len(words) != 2 {
			return nil, fmt.Errorf("two_word delimiter %q phải có đúng 2 từ", p)
		}
		set.pairs[[2]string{words[0], words[1]}] = struct{}{}
	}
	return set, nil
}

func mustDelimiters(data []byte) *delimiterSet {
	rules, err := LoadDelimiterRules(data)
	if err != nil {
		panic(err)
	}
	set, err := newDelimiterSet(rules)
	if err != nil {
		panic(err)
	}
	return set
}
