package fuzzy

import (
	"github.com/antzucaro/matchr"
)

// minPhoneticLen token ngắn hơn không có mã Double Metaphone đủ tin cậy
const minPhoneticLen = 3

// PhoneticCodes trả về mã Double Metaphone (primary, alternate) của token.
// Token không phải ASCII hoặc quá ngắn trả về nil.
func PhoneticCodes(token string) []string {
	if len(token) < minPhoneticLen || !isASCIIWord(token) {
		return nil
	}
	p, s := matchr.DoubleMetaphone(token)
	codes := make([]string, 0, 2)
	if p != "" {
		codes = append(codes, p)
	}
	if s != "" && s != p {
		codes = append(codes, s)
	}
	return codes
}

// PhoneticOverlap kiểm tra hai token có chung ít nhất một mã Double Metaphone
func PhoneticOverlap(a, b string) bool {
	ca := PhoneticCodes(a)
	if len(ca) == 0 {
		return false
	}
	for _, cb := range PhoneticCodes(b) {
		for _, c := range ca {
			if c == cb {
				return true
			}
		}
	}
	return false
}

func isASCIIWord(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')) {
			return false
		}
	}
	return true
}
