package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/order-parser/app/responses"
	"github.com/order-parser/app/services"
)

// RequestIDKey key lưu request id trong gin.Context
const RequestIDKey = "request_id"

func respondError(c *gin.Context, status int, code, message string, details interface{}) {
	c.JSON(status, responses.ErrorResponse{
		Error:     code,
		Message:   message,
		Details:   details,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: c.GetString(RequestIDKey),
	})
}

// respondServiceError ánh xạ lỗi service sang mã HTTP
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyBatch):
		respondError(c, http.StatusBadRequest, "EMPTY_BATCH", err.Error(), nil)
	case errors.Is(err, services.ErrBatchTooLarge):
		respondError(c, http.StatusRequestEntityTooLarge, "TOO_MANY_UTTERANCES", err.Error(), nil)
	case errors.Is(err, services.ErrUtteranceTooLong):
		respondError(c, http.StatusRequestEntityTooLarge, "UTTERANCE_TOO_LONG", err.Error(), nil)
	case errors.Is(err, services.ErrReviewNotFound):
		respondError(c, http.StatusNotFound, "REVIEW_NOT_FOUND", err.Error(), nil)
	case errors.Is(err, services.ErrReviewCompleted):
		respondError(c, http.StatusConflict, "REVIEW_COMPLETED", err.Error(), nil)
	case errors.Is(err, services.ErrUnknownProduct):
		respondError(c, http.StatusUnprocessableEntity, "UNKNOWN_PRODUCT", err.Error(), nil)
	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), nil)
	}
}
