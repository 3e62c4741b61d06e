// Package services – FeedbackService
//
// This file implements the FeedbackService, which governs how users rate
// resolved answers (1–5 stars plus an optional comment). It enforces the
// business rules (query existence, ownership, terminal state) and persists
// the feedback row with its derived sentiment tag. Feedback is write-once
// per submission: re-rating creates another row and never mutates the
// query's stored response.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/asknova/go-assist-backend/internal/domain"
	"github.com/asknova/go-assist-backend/internal/repo"
)

// FeedbackService implements the use-cases around answer feedback.
type FeedbackService struct {
	DB *gorm.DB
}

// Leave records a rating for queryID on behalf of userID.
//
// Semantics and validation:
//   - rating must be in 1..5; otherwise ErrInvalidRating.
//   - queryID must exist and belong to userID; otherwise ErrQueryNotFound.
//   - The query must be terminally resolved; rating a pending query yields
//     ErrQueryNotTerminal.
//   - Multiple submissions are allowed; each creates a new row.
func (s *FeedbackService) Leave(ctx context.Context, userID, queryID string, rating int, comment string) (*domain.Feedback, error) {
	if rating < 1 || rating > 5 {
		return nil, ErrInvalidRating
	}

	q, err := repo.GetQuery(ctx, s.DB, queryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQueryNotFound
		}
		return nil, err
	}
	if q.UserID != userID {
		return nil, ErrForbiddenFeedback
	}
	if !q.Terminal() {
		return nil, ErrQueryNotTerminal
	}

	return repo.CreateFeedback(ctx, s.DB, queryID, userID, rating, strings.TrimSpace(comment))
}

// ListForQuery returns the feedback left on one of the user's queries,
// oldest first.
func (s *FeedbackService) ListForQuery(ctx context.Context, userID, queryID string) ([]domain.Feedback, error) {
	q, err := repo.GetQuery(ctx, s.DB, queryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQueryNotFound
		}
		return nil, err
	}
	if q.UserID != userID {
		return nil, ErrQueryNotFound
	}
	return repo.ListFeedbackForQuery(ctx, s.DB, queryID)
}
