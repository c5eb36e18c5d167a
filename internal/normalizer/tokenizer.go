package normalizer

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
)

var (
	digitLetterRe = regexp.MustCompile(`(\d)([^\d\s.])`)
	letterDigitRe = regexp.MustCompile(`([^\d\s.])(\d)`)
)

// IsDevanagari kiểm tra rune thuộc khối Devanagari (U+0900–U+097F)
func IsDevanagari(r rune) bool {
	return r >= 0x0900 && r <= 0x097f
}

// IsTelugu kiểm tra rune thuộc khối Telugu (U+0C00–U+0C7F)
func IsTelugu(r rune) bool {
	return r >= 0x0c00 && r <= 0x0c7f
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// indicDigit đổi chữ số Devanagari/Telugu sang ASCII
func indicDigit(r rune) (rune, bool) {
	switch {
	case r >= 0x0966 && r <= 0x096f:
		return '0' + (r - 0x0966), true
	case r >= 0x0c66 && r <= 0x0c6f:
		return '0' + (r - 0x0c66), true
	}
	return r, false
}

// NormalizeToken chuẩn hóa một token: NFD, bỏ dấu, lowercase và loại mọi ký tự
// ngoài [a-z0-9], khối Devanagari và khối Telugu
func NormalizeToken(token string) string {
	return strings.ReplaceAll(clean(token), " ", "")
}

// Tokenize tách câu thành dãy token đã chuẩn hóa.
// Chữ số và chữ cái liền nhau được tách ra ("2kg" → "2", "kg"); dấu chấm chỉ được
// giữ khi nằm giữa hai chữ số ("1.5kg" → "1.5", "kg"). Không bao giờ lỗi.
func Tokenize(utterance string) []string {
	s := clean(utterance)
	s = digitLetterRe.ReplaceAllString(s, "$1 $2")
	s = letterDigitRe.ReplaceAllString(s, "$1 $2")
	return strings.Fields(s)
}

// clean thay mọi ký tự không hợp lệ bằng khoảng trắng
func clean(s string) string {
	rs := []rune(RemoveAccentsAndLowercase(s))
	var b strings.Builder
	b.Grow(len(rs))

	for i, r := range rs {
		if d, ok := indicDigit(r); ok {
			b.WriteRune(d)
			continue
		}
		switch {
		case isASCIIAlnum(r), IsDevanagari(r), IsTelugu(r):
			b.WriteRune(r)
		case r == '\u200c' || r == '\u200d':
			// ZWNJ/ZWJ nằm giữa một từ Indic
		case r == '.' && i > 0 && i+1 < len(rs) && isDigitRune(rs[i-1]) && isDigitRune(rs[i+1]):
			b.WriteRune('.')
		case unicode.Is(unicode.Latin, r) || unicode.IsDigit(r):
			b.WriteString(foldLatin(r))
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func isDigitRune(r rune) bool {
	if isASCIIDigit(r) {
		return true
	}
	_, ok := indicDigit(r)
	return ok
}

// foldLatin chuyển tự một rune ngoài ASCII ("ß" → "ss", "２" → "2")
func foldLatin(r rune) string {
	folded := strings.ToLower(unidecode.Unidecode(string(r)))
	var b strings.Builder
	for _, c := range folded {
		if isASCIIAlnum(c) {
			b.WriteRune(c)
		} else {
			b.WriteByte(' ')
		}
	}
	if b.Len() == 0 {
		return " "
	}
	return b.String()
}
