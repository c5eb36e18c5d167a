package normalizer

import (
	"regexp"
	"strings"
)

var decimalCommaRe = regexp.MustCompile(`(\d),(\d)`)

// trailingPunct các ký tự bị cắt ở cuối mỗi đoạn
const trailingPunct = ".,;:!?-"

// Split tách một câu đặt hàng thành các đoạn, mỗi đoạn ứng với một dòng hàng.
// Thứ tự trái sang phải được giữ nguyên; đoạn rỗng bị bỏ.
func Split(utterance string) []string {
	return splitWith(utterance, defaultDelimiters)
}

func splitWith(utterance string, delims *delimiterSet) []string {
	s := normalizePunctuation(utterance)
	words := strings.Fields(s)

	var segments []string
	var current []string
	flush := func() {
		piece := strings.TrimSpace(strings.TrimRight(strings.Join(current, " "), trailingPunct))
		if piece != "" {
			segments = append(segments, piece)
		}
		current = current[:0]
	}

	for i := 0; i < len(words); i++ {
		w := strings.ToLower(words[i])
		if w == "," {
			flush()
			continue
		}
		if i+1 < len(words) {
			if _, ok := delims.pairs[[2]string{w, strings.ToLower(words[i+1])}]; ok {
				flush()
				i++
				continue
			}
		}
		if _, ok := delims.single[w]; ok {
			flush()
			continue
		}
		current = append(current, words[i])
	}
	flush()

	return segments
}

// normalizePunctuation đưa dấu câu về dấu phẩy đứng riêng để tách theo từ.
// Dấu phẩy thập phân ("1,5") được đổi thành dấu chấm trước.
func normalizePunctuation(s string) string {
	s = decimalCommaRe.ReplaceAllString(s, "$1.$2")

	rs := []rune(s)
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i, r := range rs {
		switch r {
		case '.':
			if i > 0 && i+1 < len(rs) && isDigitRune(rs[i-1]) && isDigitRune(rs[i+1]) {
				b.WriteRune('.')
			} else {
				b.WriteString(" , ")
			}
		case ',', '+', ';', '!', '?', '\n', '\r', '।', '॥':
			b.WriteString(" , ")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
