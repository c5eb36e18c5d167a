// Package langdetect phân loại câu đặt hàng thành te, hi, en hoặc mixed dựa
// trên chữ viết và các từ gợi ý đã La-tinh hóa.
package langdetect

import (
	"github.com/order-parser/internal/lexicon"
	"github.com/order-parser/internal/normalizer"
)

const (
	scriptWeight = 2
	hintWeight   = 1
	// mixedMargin hai ngôn ngữ cách nhau không quá mức này thì coi là mixed
	mixedMargin = 1
)

// candidates thứ tự xét khi chọn ngôn ngữ cao điểm nhất
var candidates = [...]Language{Telugu, Hindi, English}

// Scores điểm của từng ngôn ngữ
type Scores struct {
	Telugu  int `json:"te"`
	Hindi   int `json:"hi"`
	English int `json:"en"`
}

func (s Scores) of(l Language) int {
	switch l {
	case Telugu:
		return s.Telugu
	case Hindi:
		return s.Hindi
	case English:
		return s.English
	}
	return 0
}

// Score tính điểm: token toàn chữ Telugu +2 cho te, toàn Devanagari +2 cho hi,
// token thuộc tập từ gợi ý +1 cho ngôn ngữ tương ứng
func Score(lex *lexicon.Lexicon, tokens []string) Scores {
	var s Scores
	for _, tok := range tokens {
		switch {
		case allRunes(tok, normalizer.IsTelugu):
			s.Telugu += scriptWeight
		case allRunes(tok, normalizer.IsDevanagari):
			s.Hindi += scriptWeight
		}
		if lex.IsHint(Telugu.String(), tok) {
			s.Telugu += hintWeight
		}
		if lex.IsHint(Hindi.String(), tok) {
			s.Hindi += hintWeight
		}
		if lex.IsHint(English.String(), tok) {
			s.English += hintWeight
		}
	}
	return s
}

// Classify trả về ngôn ngữ điểm cao nhất. Kết quả là Mixed khi mọi điểm bằng 0,
// hoặc khi có ngôn ngữ khác cách điểm cao nhất không quá 1 và cả hai đều > 0.
func Classify(lex *lexicon.Lexicon, tokens []string) Language {
	return Decide(Score(lex, tokens))
}

// Decide chọn ngôn ngữ từ bảng điểm
func Decide(s Scores) Language {
	best := candidates[0]
	for _, l := range candidates[1:] {
		if s.of(l) > s.of(best) {
			best = l
		}
	}

	top := s.of(best)
	if top == 0 {
		return Mixed
	}
	for _, l := range candidates {
		if l == best {
			continue
		}
		if other := s.of(l); other > 0 && top-other <= mixedMargin {
			return Mixed
		}
	}
	return best
}

func allRunes(s string, pred func(rune) bool) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !pred(r) {
			return false
		}
	}
	return true
}
