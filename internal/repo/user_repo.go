// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a user is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/asknova/go-assist-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for consistency across the service
// layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// GetUserBySubject fetches a user by external auth subject, or ErrNotFound.
func GetUserBySubject(ctx context.Context, db *gorm.DB, subject string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).Where("subject = ?", subject).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByID fetches a user by primary key, or ErrNotFound.
func GetUserByID(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user row with a generated UUID and UTC timestamps.
func CreateUser(ctx context.Context, db *gorm.DB, subject, name, email, department, role string) (*domain.User, error) {
	now := time.Now().UTC()
	u := &domain.User{
		ID:         uuid.NewString(),
		Subject:    subject,
		Name:       name,
		Email:      email,
		Department: department,
		Role:       role,
		LastActive: now,
		CreatedAt:  now,
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// TouchUser bumps the user's last-active timestamp and query counter.
// countQuery controls whether the interaction counts as a question asked.
func TouchUser(ctx context.Context, db *gorm.DB, id string, countQuery bool) error {
	updates := map[string]any{"last_active": time.Now().UTC()}
	if countQuery {
		updates["query_count"] = gorm.Expr("query_count + 1")
	}
	res := db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
