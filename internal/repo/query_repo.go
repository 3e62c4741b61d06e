// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Query
// model, covering the record lifecycle: pending creation, terminal
// finalization, escalation, and history reads.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/asknova/go-assist-backend/internal/domain"
)

// CreatePendingQuery inserts the audit row for a question before any
// resolution step runs. Source and response type start as pending and the
// response carries the processing sentinel, so a crash mid-pipeline still
// leaves an observable record.
func CreatePendingQuery(ctx context.Context, db *gorm.DB, userID, sessionID, prompt, department, role string) (*domain.Query, error) {
	q := &domain.Query{
		ID:         uuid.NewString(),
		UserID:     userID,
		SessionID:  sessionID,
		Prompt:     prompt,
		Response:   domain.PendingResponse,
		Source:     domain.SourcePending,
		Type:       domain.ResponsePending,
		Department: department,
		Role:       role,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(q).Error; err != nil {
		return nil, err
	}
	return q, nil
}

// GetQuery fetches a query by ID, or ErrNotFound.
func GetQuery(ctx context.Context, db *gorm.DB, id string) (*domain.Query, error) {
	var q domain.Query
	err := db.WithContext(ctx).Where("id = ?", id).First(&q).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// FinalizeQuery writes the resolution outcome onto a pending query: response
// text, source tag, terminal response type, detected intent, and measured
// latency. AnsweredAt is stamped with the current time.
func FinalizeQuery(ctx context.Context, db *gorm.DB, id, response, source, respType, intent string, latency time.Duration) error {
	now := time.Now().UTC()
	res := db.WithContext(ctx).Model(&domain.Query{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"response":      response,
			"source":        source,
			"response_type": respType,
			"intent":        intent,
			"latency_ms":    latency.Milliseconds(),
			"answered_at":   now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// MarkEscalated flips the escalation flag and stores the ticket id. The
// WHERE clause guards the one-way transition: a row already escalated is not
// matched, so a stale caller cannot overwrite the first ticket.
func MarkEscalated(ctx context.Context, db *gorm.DB, id, ticketID string) error {
	res := db.WithContext(ctx).Model(&domain.Query{}).
		Where("id = ? AND escalated = ?", id, false).
		Updates(map[string]any{"escalated": true, "ticket_id": ticketID})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountQueries returns the total number of queries asked by userID.
func CountQueries(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Query{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

// ListQueriesPage returns a page of the user's queries, most recent first.
// The caller computes offset and limit (e.g., (page-1)*pageSize).
func ListQueriesPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.Query, error) {
	var out []domain.Query
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// RecentAnswered returns up to limit of the user's most recent terminally
// answered queries, newest first. Used to build conversation context for the
// generative prompt.
func RecentAnswered(ctx context.Context, db *gorm.DB, userID string, limit int) ([]domain.Query, error) {
	var out []domain.Query
	err := db.WithContext(ctx).
		Where("user_id = ? AND response_type = ?", userID, domain.ResponseText).
		Order("created_at desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}
