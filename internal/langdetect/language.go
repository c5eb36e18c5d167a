package langdetect

import (
	"fmt"
)

// Language gợi ý ngôn ngữ của một câu đặt hàng
type Language uint8

const (
	English Language = iota
	Telugu
	Hindi
	Mixed
)

var languageCodes = [...]string{
	English: "en",
	Telugu:  "te",
	Hindi:   "hi",
	Mixed:   "mixed",
}

func (l Language) String() string {
	if int(l) < len(languageCodes) {
		return languageCodes[l]
	}
	return fmt.Sprintf("Language(%d)", uint8(l))
}

// ParseLanguage chuyển mã ("te", "hi", "en", "mixed") sang Language
func ParseLanguage(s string) (Language, error) {
	for i, code := range languageCodes {
		if code == s {
			return Language(i), nil
		}
	}
	return English, fmt.Errorf("ngôn ngữ không hợp lệ: %q", s)
}

func (l Language) MarshalText() ([]byte, error) {
	if int(l) >= len(languageCodes) {
		return nil, fmt.Errorf("ngôn ngữ không hợp lệ: %d", uint8(l))
	}
	return []byte(l.String()), nil
}

func (l *Language) UnmarshalText(text []byte) error {
	parsed, err := ParseLanguage(string(text))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}
