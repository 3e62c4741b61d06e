// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides aggregate/statistics queries: small
// per-user aggregates used for conditional responses (ETag generation) in
// the HTTP layer, and the usage roll-ups behind the admin analytics
// endpoint.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/asknova/go-assist-backend/internal/domain"
)

// QueriesStats returns aggregate metadata for a user's queries: the total
// number of rows and the maximum UpdatedAt timestamp among them. When the
// user has no queries, count is 0 and maxUpdatedAt is nil.
func QueriesStats(ctx context.Context, db *gorm.DB, userID string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Query{}).Where("user_id = ?", userID)

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}

// CountBucket is a generic (label, count) aggregation row.
type CountBucket struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// UsageStats is the roll-up served by the admin analytics endpoint.
type UsageStats struct {
	TotalQueries   int64         `json:"total_queries"`
	BySource       []CountBucket `json:"by_source"`
	TopIntents     []CountBucket `json:"top_intents"`
	Sentiment      []CountBucket `json:"sentiment"`
	AvgLatencyMS   float64       `json:"avg_latency_ms"`
	Escalated      int64         `json:"escalated"`
	EscalationRate float64       `json:"escalation_rate"` // percent
}

// CollectUsageStats computes usage aggregates over queries and feedback,
// optionally bounded to [from, to) and/or one department. Zero-value bounds
// and an empty department mean "all".
func CollectUsageStats(ctx context.Context, db *gorm.DB, from, to time.Time, department string) (*UsageStats, error) {
	scope := func(q *gorm.DB) *gorm.DB {
		if !from.IsZero() && !to.IsZero() {
			q = q.Where("created_at >= ? AND created_at < ?", from, to)
		}
		if department != "" {
			q = q.Where("department = ?", department)
		}
		return q
	}

	out := &UsageStats{}

	queries := scope(db.WithContext(ctx).Model(&domain.Query{}))
	if err := queries.Count(&out.TotalQueries).Error; err != nil {
		return nil, err
	}

	if err := scope(db.WithContext(ctx).Model(&domain.Query{})).
		Select("source AS label, COUNT(*) AS count").
		Group("source").
		Scan(&out.BySource).Error; err != nil {
		return nil, err
	}

	if err := scope(db.WithContext(ctx).Model(&domain.Query{})).
		Select("intent AS label, COUNT(*) AS count").
		Where("intent <> ''").
		Group("intent").
		Order("count DESC").
		Limit(5).
		Scan(&out.TopIntents).Error; err != nil {
		return nil, err
	}

	var avg struct{ Avg *float64 }
	if err := scope(db.WithContext(ctx).Model(&domain.Query{})).
		Select("AVG(latency_ms) AS avg").
		Where("response_type <> ?", domain.ResponsePending).
		Scan(&avg).Error; err != nil {
		return nil, err
	}
	if avg.Avg != nil {
		out.AvgLatencyMS = *avg.Avg
	}

	if err := scope(db.WithContext(ctx).Model(&domain.Query{})).
		Where("escalated = ?", true).
		Count(&out.Escalated).Error; err != nil {
		return nil, err
	}
	if out.TotalQueries > 0 {
		out.EscalationRate = float64(out.Escalated) / float64(out.TotalQueries) * 100
	}

	// Sentiment buckets come from feedback; the department scope does not
	// apply because feedback rows carry no department snapshot.
	fb := db.WithContext(ctx).Model(&domain.Feedback{})
	if !from.IsZero() && !to.IsZero() {
		fb = fb.Where("created_at >= ? AND created_at < ?", from, to)
	}
	if err := fb.
		Select("sentiment AS label, COUNT(*) AS count").
		Group("sentiment").
		Scan(&out.Sentiment).Error; err != nil {
		return nil, err
	}

	return out, nil
}
