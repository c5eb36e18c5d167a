package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseCache bản ghi cache kết quả parse trong MongoDB
type ParseCache struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Fingerprint    string             `bson:"fingerprint" json:"fingerprint"`         // Cache key
	Raw            []string           `bson:"raw" json:"raw"`                         // Các câu gốc
	ParsedResult   OrderResult        `bson:"parsed_result" json:"parsed_result"`     // Kết quả parse
	LexiconVersion string             `bson:"lexicon_version" json:"lexicon_version"` // Phiên bản lexicon
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	LastAccessed   time.Time          `bson:"last_accessed" json:"last_accessed"`
	AccessCount    int                `bson:"access_count" json:"access_count"`
}

// NewParseCache tạo mới một ParseCache
func NewParseCache(fingerprint string, result OrderResult) *ParseCache {
	now := time.Now()
	return &ParseCache{
		Fingerprint:    fingerprint,
		Raw:            result.Raw,
		ParsedResult:   result,
		LexiconVersion: result.LexiconVersion,
		CreatedAt:      now,
		LastAccessed:   now,
		AccessCount:    1,
	}
}

// UpdateAccess cập nhật thông tin truy cập
func (pc *ParseCache) UpdateAccess() {
	pc.LastAccessed = time.Now()
	pc.AccessCount++
}

// IsExpired ttl <= 0 nghĩa là không hết hạn
func (pc *ParseCache) IsExpired(ttl time.Duration) bool {
	return ttl > 0 && time.Since(pc.CreatedAt) > ttl
}

// IsValidLexiconVersion kiểm tra phiên bản lexicon có khớp không
func (pc *ParseCache) IsValidLexiconVersion(currentVersion string) bool {
	return pc.LexiconVersion == currentVersion
}
