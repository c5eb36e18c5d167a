package models

import (
	"time"
)

// LearnedAlias alias học được từ review, dùng để bổ sung lexicon
type LearnedAlias struct {
	Alias          string    `bson:"alias" json:"alias"`                     // Câu/từ đã chuẩn hóa
	CanonicalName  string    `bson:"canonical_name" json:"canonical_name"`   // Tên chuẩn trong lexicon
	LexiconVersion string    `bson:"lexicon_version" json:"lexicon_version"` // Phiên bản lexicon lúc học
	Confidence     float64   `bson:"confidence" json:"confidence"`
	Source         string    `bson:"source" json:"source"` // manual/auto_learned
	UsageCount     int       `bson:"usage_count" json:"usage_count"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	LastUsed       time.Time `bson:"last_used" json:"last_used"`
}

// Source constants
const (
	SourceManual      = "manual"
	SourceAutoLearned = "auto_learned"
)

// NewLearnedAlias tạo mới một LearnedAlias
func NewLearnedAlias(alias, canonicalName, lexiconVersion, source string) *LearnedAlias {
	now := time.Now()
	confidence := 0.8
	if source == SourceManual {
		confidence = 1
	}
	return &LearnedAlias{
		Alias:          alias,
		CanonicalName:  canonicalName,
		LexiconVersion: lexiconVersion,
		Confidence:     confidence,
		Source:         source,
		UsageCount:     1,
		CreatedAt:      now,
		LastUsed:       now,
	}
}

// IsValidSource kiểm tra source có hợp lệ không
func (la *LearnedAlias) IsValidSource() bool {
	return la.Source == SourceManual || la.Source == SourceAutoLearned
}

// UpdateUsage cập nhật thông tin sử dụng
func (la *LearnedAlias) UpdateUsage() {
	la.UsageCount++
	la.LastUsed = time.Now()
}
