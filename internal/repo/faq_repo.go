// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the FAQ model.
// FAQ entries are read-mostly reference data; administrative edits go
// through Update, and removal is a soft deactivation.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/asknova/go-assist-backend/internal/domain"
)

// ListActiveFAQs returns active FAQ entries ordered by popularity, filtered
// by department and/or category when those are non-empty.
func ListActiveFAQs(ctx context.Context, db *gorm.DB, department, category string) ([]domain.FAQ, error) {
	q := db.WithContext(ctx).Where("active = ?", true)
	if department != "" {
		q = q.Where("department = ?", department)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	var out []domain.FAQ
	err := q.Order("popularity desc").Find(&out).Error
	return out, err
}

// MatchCandidates returns the active FAQ entries eligible for matching a
// query in the given department. A non-general department restricts the set
// to that department plus general entries; general sees everything active.
func MatchCandidates(ctx context.Context, db *gorm.DB, department string) ([]domain.FAQ, error) {
	q := db.WithContext(ctx).Where("active = ?", true)
	if department != "" && department != "general" {
		q = q.Where("department IN ?", []string{department, "general"})
	}
	var out []domain.FAQ
	err := q.Find(&out).Error
	return out, err
}

// GetFAQ fetches an FAQ entry by ID, or ErrNotFound.
func GetFAQ(ctx context.Context, db *gorm.DB, id string) (*domain.FAQ, error) {
	var f domain.FAQ
	err := db.WithContext(ctx).Where("id = ?", id).First(&f).Error
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateFAQ inserts a new FAQ entry.
func CreateFAQ(ctx context.Context, db *gorm.DB, f *domain.FAQ) (*domain.FAQ, error) {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	f.CreatedAt = time.Now().UTC()
	f.Active = true
	if err := db.WithContext(ctx).Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

// UpdateFAQ applies a partial update to an FAQ entry. Returns ErrNotFound
// when the entry does not exist.
func UpdateFAQ(ctx context.Context, db *gorm.DB, id string, updates map[string]any) error {
	res := db.WithContext(ctx).Model(&domain.FAQ{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeactivateFAQ soft-removes an FAQ entry so matching skips it while the
// row survives for audit continuity.
func DeactivateFAQ(ctx context.Context, db *gorm.DB, id string) error {
	return UpdateFAQ(ctx, db, id, map[string]any{"active": false})
}

// BumpFAQPopularity increments the popularity counter. Callers treat this
// as best effort; a failed bump never fails the match.
func BumpFAQPopularity(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Model(&domain.FAQ{}).
		Where("id = ?", id).
		Update("popularity", gorm.Expr("popularity + 1")).Error
}
