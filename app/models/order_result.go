package models

import (
	"github.com/order-parser/internal/catalog"
	"github.com/order-parser/internal/parser"
)

// Trạng thái kết quả parse
const (
	OrderStatusParsed      = "parsed"       // có item, không có gợi ý
	OrderStatusPartial     = "partial"      // có item và gợi ý
	OrderStatusNeedsReview = "needs_review" // chỉ có gợi ý
	OrderStatusEmpty       = "empty"
)

// OrderResult kết quả parse kèm metadata phục vụ cache và review
type OrderResult struct {
	parser.ParseResult `bson:",inline"`

	Raw            []string       `json:"raw" bson:"raw"`                         // Các câu gốc
	Fingerprint    string         `json:"fingerprint" bson:"fingerprint"`         // Cache key
	LexiconVersion string         `json:"lexicon_version" bson:"lexicon_version"` // Phiên bản lexicon
	Status         string         `json:"status" bson:"status"`                   // Trạng thái xử lý
	Catalog        []CatalogMatch `json:"catalog,omitempty" bson:"catalog,omitempty"`
}

// CatalogMatch các SKU ứng viên cho một item
type CatalogMatch struct {
	Item string        `json:"item" bson:"item"`
	Hits []catalog.Hit `json:"hits" bson:"hits"`
}

// NewOrderResult bọc kết quả parse và tính trạng thái
func NewOrderResult(raw []string, result parser.ParseResult, fingerprint, lexiconVersion string) *OrderResult {
	return &OrderResult{
		ParseResult:    result,
		Raw:            raw,
		Fingerprint:    fingerprint,
		LexiconVersion: lexiconVersion,
		Status:         StatusOf(result),
	}
}

// StatusOf suy ra trạng thái từ số item và gợi ý
func StatusOf(result parser.ParseResult) string {
	switch {
	case len(result.Items) > 0 && len(result.Guesses) > 0:
		return OrderStatusPartial
	case len(result.Items) > 0:
		return OrderStatusParsed
	case len(result.Guesses) > 0:
		return OrderStatusNeedsReview
	default:
		return OrderStatusEmpty
	}
}

// NeedsReview không nhận diện được item nào nhưng có gợi ý
func (r *OrderResult) NeedsReview() bool {
	return r.Status == OrderStatusNeedsReview
}
