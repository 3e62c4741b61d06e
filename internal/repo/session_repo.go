// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Session
// model: lookup of the active session, creation with supersession of stale
// actives, and explicit closing.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/asknova/go-assist-backend/internal/domain"
)

// GetActiveSession returns the user's most recent active session, or
// ErrNotFound when none exists.
func GetActiveSession(ctx context.Context, db *gorm.DB, userID string) (*domain.Session, error) {
	var s domain.Session
	err := db.WithContext(ctx).
		Where("user_id = ? AND active = ?", userID, true).
		Order("started_at desc").
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetSessionByToken fetches a session by its token regardless of state.
func GetSessionByToken(ctx context.Context, db *gorm.DB, token string) (*domain.Session, error) {
	var s domain.Session
	err := db.WithContext(ctx).Where("token = ?", token).First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateSession opens a new active session for userID, superseding any other
// active sessions the user holds (single-active-session rule). When token is
// empty a UUID is generated. The supersede-then-create pair is not wrapped in
// a transaction; a concurrent first request for a brand-new user can still
// race and leave a duplicate active session, which is acceptable here.
func CreateSession(ctx context.Context, db *gorm.DB, userID, token, platform, deviceInfo string) (*domain.Session, error) {
	now := time.Now().UTC()

	// Supersede: close any other active sessions for this user.
	if err := db.WithContext(ctx).Model(&domain.Session{}).
		Where("user_id = ? AND active = ?", userID, true).
		Updates(map[string]any{"active": false, "ended_at": now}).Error; err != nil {
		return nil, err
	}

	if token == "" {
		token = uuid.NewString()
	}
	s := &domain.Session{
		ID:           uuid.NewString(),
		Token:        token,
		UserID:       userID,
		Platform:     platform,
		DeviceInfo:   deviceInfo,
		StartedAt:    now,
		Active:       true,
		LastActiveAt: now,
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// TouchSession bumps the session's last-active timestamp.
func TouchSession(ctx context.Context, db *gorm.DB, id string) error {
	return db.WithContext(ctx).Model(&domain.Session{}).
		Where("id = ?", id).
		Update("last_active_at", time.Now().UTC()).Error
}

// EndSession closes an active session by token: sets the end time, computes
// the duration in seconds, and flips the active flag. Returns the closed
// session, or ErrNotFound when no active session carries the token.
func EndSession(ctx context.Context, db *gorm.DB, token string) (*domain.Session, error) {
	var s domain.Session
	err := db.WithContext(ctx).
		Where("token = ? AND active = ?", token, true).
		First(&s).Error
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	s.EndedAt = &now
	s.Duration = int64(now.Sub(s.StartedAt).Seconds())
	s.Active = false
	if err := db.WithContext(ctx).Model(&domain.Session{}).
		Where("id = ?", s.ID).
		Updates(map[string]any{"ended_at": now, "duration": s.Duration, "active": false}).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
