package requests

// ParseOptions tùy chọn parse
type ParseOptions struct {
	UseCache       bool `json:"use_cache,omitempty"`       // Có sử dụng cache không
	ResolveCatalog bool `json:"resolve_catalog,omitempty"` // Có tra SKU trong catalog không
}

// ParseOrderRequest request parse một câu. Câu rỗng là hợp lệ.
type ParseOrderRequest struct {
	Text    string       `json:"text"`
	Options ParseOptions `json:"options,omitempty"`
}

// BatchParseRequest request parse nhiều câu thành một đơn
type BatchParseRequest struct {
	Texts   []string     `json:"texts" binding:"required,min=1"`
	Options ParseOptions `json:"options,omitempty"`
}

// ResolveReviewRequest request xử lý review. CanonicalName rỗng nghĩa là từ chối.
type ResolveReviewRequest struct {
	CanonicalName string `json:"canonical_name"`
	ReviewerID    string `json:"reviewer_id" binding:"required"`
}
