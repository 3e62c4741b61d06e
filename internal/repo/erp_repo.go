// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for ERP
// integration descriptors: reference data describing how to proxy calls to
// the upstream ERP system.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/asknova/go-assist-backend/internal/domain"
)

// GetIntegration fetches a descriptor by ID, or ErrNotFound.
func GetIntegration(ctx context.Context, db *gorm.DB, id string) (*domain.ERPIntegration, error) {
	var e domain.ERPIntegration
	err := db.WithContext(ctx).Where("id = ?", id).First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// GetActiveIntegrationByModule returns the active descriptor registered for
// a module tag, or ErrNotFound when no integration serves that module.
func GetActiveIntegrationByModule(ctx context.Context, db *gorm.DB, module string) (*domain.ERPIntegration, error) {
	var e domain.ERPIntegration
	err := db.WithContext(ctx).
		Where("module = ? AND active = ?", module, true).
		First(&e).Error
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListActiveIntegrations returns all active descriptors, ordered by module.
func ListActiveIntegrations(ctx context.Context, db *gorm.DB) ([]domain.ERPIntegration, error) {
	var out []domain.ERPIntegration
	err := db.WithContext(ctx).
		Where("active = ?", true).
		Order("module asc").
		Find(&out).Error
	return out, err
}

// CreateIntegration inserts a new descriptor. Method defaults to GET and the
// allow-list to the wildcard when left empty, mirroring how descriptors are
// registered administratively.
func CreateIntegration(ctx context.Context, db *gorm.DB, e *domain.ERPIntegration) (*domain.ERPIntegration, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Method == "" {
		e.Method = "GET"
	}
	if len(e.AccessRoles) == 0 {
		e.AccessRoles = []string{"all"}
	}
	e.Active = true
	e.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateIntegration applies a partial update to a descriptor. Returns
// ErrNotFound when the descriptor does not exist.
func UpdateIntegration(ctx context.Context, db *gorm.DB, id string, updates map[string]any) error {
	res := db.WithContext(ctx).Model(&domain.ERPIntegration{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeactivateIntegration soft-removes a descriptor from lookup.
func DeactivateIntegration(ctx context.Context, db *gorm.DB, id string) error {
	return UpdateIntegration(ctx, db, id, map[string]any{"active": false})
}
