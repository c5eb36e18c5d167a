package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/order-parser/internal/parser"
)

// ParseReview câu không nhận diện được item, chờ người duyệt
type ParseReview struct {
	ID             primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Utterance      string              `bson:"utterance" json:"utterance"`             // Câu gốc
	Fingerprint    string              `bson:"fingerprint" json:"fingerprint"`         // Cache key của request
	Guesses        []parser.ParseGuess `bson:"guesses" json:"guesses"`                 // Gợi ý tự động
	LexiconVersion string              `bson:"lexicon_version" json:"lexicon_version"` // Phiên bản lexicon
	Status         string              `bson:"status" json:"status"`                   // Trạng thái review
	ResolvedName   *string             `bson:"resolved_name,omitempty" json:"resolved_name,omitempty"`
	ReviewerID     *string             `bson:"reviewer_id,omitempty" json:"reviewer_id,omitempty"`
	ReviewedAt     *time.Time          `bson:"reviewed_at,omitempty" json:"reviewed_at,omitempty"`
	CreatedAt      time.Time           `bson:"created_at" json:"created_at"`
}

// Status constants
const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
	ReviewStatusRejected = "rejected"
)

// NewParseReview tạo mới một ParseReview
func NewParseReview(utterance, fingerprint, lexiconVersion string, guesses []parser.ParseGuess) *ParseReview {
	return &ParseReview{
		Utterance:      utterance,
		Fingerprint:    fingerprint,
		Guesses:        guesses,
		LexiconVersion: lexiconVersion,
		Status:         ReviewStatusPending,
		CreatedAt:      time.Now(),
	}
}

// Approve gán sản phẩm đúng cho câu
func (pr *ParseReview) Approve(name, reviewerID string) {
	pr.ResolvedName = &name
	pr.complete(ReviewStatusApproved, reviewerID)
}

// Reject câu không phải sản phẩm nào
func (pr *ParseReview) Reject(reviewerID string) {
	pr.complete(ReviewStatusRejected, reviewerID)
}

func (pr *ParseReview) complete(status, reviewerID string) {
	pr.Status = status
	pr.ReviewerID = &reviewerID
	now := time.Now()
	pr.ReviewedAt = &now
}

// IsPending kiểm tra có đang chờ review không
func (pr *ParseReview) IsPending() bool {
	return pr.Status == ReviewStatusPending
}

// IsCompleted kiểm tra đã hoàn thành review chưa
func (pr *ParseReview) IsCompleted() bool {
	return pr.Status == ReviewStatusApproved || pr.Status == ReviewStatusRejected
}
