// Package services – AnalyticsService
//
// Usage roll-ups for the admin surface: query volume by source, top
// intents, sentiment distribution, latency, and escalation rate.
package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/asknova/go-assist-backend/internal/repo"
)

// AnalyticsService computes usage aggregates over queries and feedback.
type AnalyticsService struct {
	DB *gorm.DB
}

// Usage returns aggregates over [from, to), optionally scoped to one
// department. Zero bounds mean all time; an empty department means all
// departments.
func (s *AnalyticsService) Usage(ctx context.Context, from, to time.Time, department string) (*repo.UsageStats, error) {
	if department != "" && !validDepartment(department) {
		return nil, ErrInvalidDepartment
	}
	return repo.CollectUsageStats(ctx, s.DB, from, to, department)
}
