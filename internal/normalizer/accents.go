package normalizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// latinMarks chỉ gồm các dấu kết hợp Latin; dấu nguyên âm Devanagari/Telugu không nằm trong dải này
var latinMarks = runes.In(&unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
})

// StripDiacritics đưa chuỗi về NFD và bỏ dấu Latin ("jalapeño" → "jalapeno")
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(latinMarks))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// RemoveAccentsAndLowercase loại bỏ dấu và chuyển về lowercase
func RemoveAccentsAndLowercase(s string) string {
	return strings.ToLower(StripDiacritics(s))
}
