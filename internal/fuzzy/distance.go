// Package fuzzy gom các phép so khớp mờ dùng chung: khoảng cách Levenshtein
// và so khớp âm (Double Metaphone).
package fuzzy

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// MaxDistance ngưỡng edit distance cho mọi "fuzzy match"
const MaxDistance = 2

// Distance khoảng cách Levenshtein (chi phí đơn vị) tính theo rune
func Distance(a, b string) int {
	return levenshtein.ComputeDistance(a, b)
}

// Within kiểm tra Distance(a, b) <= max
func Within(a, b string, max int) bool {
	diff := utf8.RuneCountInString(a) - utf8.RuneCountInString(b)
	if diff > max || -diff > max {
		return false
	}
	return Distance(a, b) <= max
}

// BestDistance trả về khoảng cách nhỏ nhất từ token tới các candidate.
// ok = false khi candidates rỗng.
func BestDistance(token string, candidates []string) (best int, ok bool) {
	for i, c := range candidates {
		d := Distance(token, c)
		if i == 0 || d < best {
			best = d
		}
		if best == 0 {
			return 0, true
		}
	}
	return best, len(candidates) > 0
}

// MatchesAny kiểm tra token có khớp mờ (<= MaxDistance) với candidate nào không
func MatchesAny(token string, candidates []string) bool {
	for _, c := range candidates {
		if Within(token, c, MaxDistance) {
			return true
		}
	}
	return false
}
