// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Feedback
// model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/asknova/go-assist-backend/internal/domain"
)

// CreateFeedback inserts a feedback row against a query. The sentiment tag
// is derived from the rating before insert.
func CreateFeedback(ctx context.Context, db *gorm.DB, queryID, userID string, rating int, comment string) (*domain.Feedback, error) {
	fb := &domain.Feedback{
		ID:        uuid.NewString(),
		QueryID:   queryID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		Sentiment: domain.SentimentForRating(rating),
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(fb).Error; err != nil {
		return nil, err
	}
	return fb, nil
}

// ListFeedbackForQuery returns all feedback rows left on a query, oldest
// first.
func ListFeedbackForQuery(ctx context.Context, db *gorm.DB, queryID string) ([]domain.Feedback, error) {
	var out []domain.Feedback
	err := db.WithContext(ctx).
		Where("query_id = ?", queryID).
		Order("created_at asc").
		Find(&out).Error
	return out, err
}
