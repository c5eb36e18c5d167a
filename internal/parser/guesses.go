package parser

import (
	"sort"

	"github.com/order-parser/internal/fuzzy"
	"github.com/order-parser/internal/lexicon"
)

// BuildGuesses sinh gợi ý cho một đoạn không khớp sản phẩm nào.
// Điểm của một sản phẩm là tỉ lệ token alias khớp mờ lớn nhất trên các alias.
// Ngoài các token, cặp token liền kề được ghép lại ("benda kaya" → "bendakaya")
// vì từ ghép thường bị nói tách rời.
func BuildGuesses(lex *lexicon.Lexicon, tokens []string, raw string) []ParseGuess {
	candidates := withAdjacentPairs(tokens)
	if len(candidates) == 0 {
		return nil
	}

	var guesses []ParseGuess
	for _, entry := range lex.Entries() {
		best := 0.0
		for _, alias := range entry.Aliases {
			matched := 0
			for _, tok := range alias {
				if fuzzy.MatchesAny(tok, candidates) {
					matched++
				}
			}
			if frac := float64(matched) / float64(len(alias)); frac > best {
				best = frac
			}
		}
		if best > 0 {
			guesses = append(guesses, ParseGuess{Name: entry.Name, Confidence: min(1, best), Raw: raw})
		}
	}

	sortByConfidence(guesses)
	return truncate(guesses, MaxSegmentGuesses)
}

func withAdjacentPairs(tokens []string) []string {
	if len(tokens) < 2 {
		return tokens
	}
	out := make([]string, 0, 2*len(tokens)-1)
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+tokens[i+1])
	}
	return out
}

// rankGuesses gộp gợi ý trùng tên (giữ độ tin cậy cao nhất và vị trí xuất hiện
// đầu tiên), sắp giảm dần theo độ tin cậy rồi cắt còn limit
func rankGuesses(guesses []ParseGuess, limit int) []ParseGuess {
	pos := make(map[string]int, len(guesses))
	unique := make([]ParseGuess, 0, len(guesses))
	for _, g := range guesses {
		if i, ok := pos[g.Name]; ok {
			if g.Confidence > unique[i].Confidence {
				unique[i].Confidence = g.Confidence
				unique[i].Raw = g.Raw
			}
			continue
		}
		pos[g.Name] = len(unique)
		unique = append(unique, g)
	}

	sortByConfidence(unique)
	return truncate(unique, limit)
}

// sweepGuesses lượt quét dự phòng trên toàn bộ token của câu: mọi sản phẩm có token
// alias khớp mờ hoặc trùng mã âm với một token nào đó thành gợi ý 0.3
func sweepGuesses(lex *lexicon.Lexicon, tokens []string, raw string) []ParseGuess {
	guesses := []ParseGuess{}
	if len(tokens) == 0 {
		return guesses
	}

	entries := lex.Entries()
	emitted := make(map[int]bool)
	for _, at := range lex.AliasTokens() {
		if emitted[at.Entry] {
			continue
		}
		for _, tok := range tokens {
			if fuzzy.Within(tok, at.Token, fuzzy.MaxDistance) || fuzzy.PhoneticOverlap(tok, at.Token) {
				emitted[at.Entry] = true
				guesses = append(guesses, ParseGuess{
					Name:       entries[at.Entry].Name,
					Confidence: SweepConfidence,
					Raw:        raw,
				})
				break
			}
		}
		if len(guesses) == MaxGuesses {
			break
		}
	}
	return guesses
}

func sortByConfidence(guesses []ParseGuess) {
	sort.SliceStable(guesses, func(i, j int) bool {
		return guesses[i].Confidence > guesses[j].Confidence
	})
}

func truncate(guesses []ParseGuess, limit int) []ParseGuess {
	if len(guesses) > limit {
		return guesses[:limit]
	}
	return guesses
}
