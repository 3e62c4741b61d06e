// Package services – FAQService
//
// Administrative lifecycle for the curated FAQ reference data, plus the
// public read surface. Removal is soft deactivation so audit history and
// popularity counters survive.
package services

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/asknova/go-assist-backend/internal/domain"
	"github.com/asknova/go-assist-backend/internal/repo"
)

// FAQService manages FAQ entries.
type FAQService struct {
	DB *gorm.DB
}

// List returns active entries ordered by popularity, optionally filtered by
// department and/or category.
func (s *FAQService) List(ctx context.Context, department, category string) ([]domain.FAQ, error) {
	if department != "" && !validDepartment(department) {
		return nil, ErrInvalidDepartment
	}
	return repo.ListActiveFAQs(ctx, s.DB, department, category)
}

// Create validates and inserts a new entry. Department defaults to general.
func (s *FAQService) Create(ctx context.Context, f *domain.FAQ) (*domain.FAQ, error) {
	f.Question = strings.TrimSpace(f.Question)
	f.Answer = strings.TrimSpace(f.Answer)
	if f.Question == "" || f.Answer == "" {
		return nil, ErrInvalidFAQ
	}
	if f.Department == "" {
		f.Department = "general"
	}
	if !validDepartment(f.Department) {
		return nil, ErrInvalidDepartment
	}
	return repo.CreateFAQ(ctx, s.DB, f)
}

// Update applies a partial update. Only question, answer, category,
// department, keywords, and active are settable.
func (s *FAQService) Update(ctx context.Context, id string, updates map[string]any) error {
	allowed := map[string]bool{
		"question": true, "answer": true, "category": true,
		"department": true, "keywords": true, "active": true,
	}
	clean := make(map[string]any, len(updates))
	for k, v := range updates {
		if allowed[k] {
			clean[k] = v
		}
	}
	if len(clean) == 0 {
		return ErrInvalidFAQ
	}
	if d, ok := clean["department"].(string); ok && !validDepartment(d) {
		return ErrInvalidDepartment
	}
	err := repo.UpdateFAQ(ctx, s.DB, id, clean)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrFAQNotFound
	}
	return err
}

// Deactivate soft-removes an entry from matching and listings.
func (s *FAQService) Deactivate(ctx context.Context, id string) error {
	err := repo.DeactivateFAQ(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrFAQNotFound
	}
	return err
}

func validDepartment(d string) bool {
	for _, dep := range domain.Departments {
		if dep == d {
			return true
		}
	}
	return false
}
