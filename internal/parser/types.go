package parser

import (
	"github.com/order-parser/internal/langdetect"
	"github.com/order-parser/internal/lexicon"
)

const (
	// MaxGuesses số gợi ý tối đa của một kết quả
	MaxGuesses = 5
	// MaxSegmentGuesses số gợi ý tối đa của một đoạn
	MaxSegmentGuesses = 3
	// SweepConfidence độ tin cậy của gợi ý từ lượt quét dự phòng
	SweepConfidence = 0.3
)

// ParsedItem một dòng hàng đã nhận diện chắc chắn
type ParsedItem struct {
	Name     string       `json:"name" bson:"name"`         // Tên sản phẩm chuẩn
	Quantity float64      `json:"quantity" bson:"quantity"` // >= 0.01, làm tròn 2 chữ số
	Unit     lexicon.Unit `json:"unit" bson:"unit"`
	Raw      string       `json:"raw" bson:"raw"` // Đoạn gốc
}

// ParseGuess gợi ý độ tin cậy thấp, không bao giờ tự động thành ParsedItem
type ParseGuess struct {
	Name       string  `json:"name" bson:"name"`
	Confidence float64 `json:"confidence" bson:"confidence"` // [0, 1]
	Raw        string  `json:"raw" bson:"raw"`
}

// ParseResult kết quả parse một câu (hoặc một batch)
type ParseResult struct {
	Items        []ParsedItem        `json:"items" bson:"items"`
	Guesses      []ParseGuess        `json:"guesses" bson:"guesses"`
	LanguageHint langdetect.Language `json:"language_hint" bson:"language_hint"`
}

// MatchStrategy cách một alias khớp với đoạn
type MatchStrategy string

const (
	MatchStrategyContains MatchStrategy = "contains"
	MatchStrategyFuzzy    MatchStrategy = "fuzzy"
	MatchStrategyPartial  MatchStrategy = "partial"
)

// Match kết quả tốt nhất của MatchProduct
type Match struct {
	Name     string
	Alias    string
	Score    int
	Strategy MatchStrategy
}

func newResult(hint langdetect.Language) ParseResult {
	return ParseResult{
		Items:        []ParsedItem{},
		Guesses:      []ParseGuess{},
		LanguageHint: hint,
	}
}
