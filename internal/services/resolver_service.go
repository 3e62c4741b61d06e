// Package services – ResolverService
//
// This file implements ResolverService, which turns the request-boundary
// identity (authenticated subject or generated anonymous id) into a durable
// User row and an active Session. It enforces the single-active-session rule
// by superseding stale sessions on open, and owns explicit session closing.
//
// Observability: public methods are OpenTelemetry-instrumented.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/asknova/go-assist-backend/internal/domain"
	"github.com/asknova/go-assist-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Role and department defaults applied on first contact.
const (
	defaultAnonRole = "guest"
	defaultAuthRole = "employee"
	defaultDept     = "general"
)

// ResolverService resolves caller identities to users and sessions.
type ResolverService struct {
	DB *gorm.DB
}

// Resolve maps an identity to its user row and an active session, creating
// both on first contact. When sessionToken is non-empty and names an active
// session owned by this user, that session is reused; any other value opens
// a fresh session (superseding older actives). The user's last-active
// timestamp is bumped on every call.
func (s *ResolverService) Resolve(ctx context.Context, id domain.Identity, sessionToken, platform, deviceInfo string) (*domain.User, *domain.Session, error) {
	tr := otel.Tracer("services/ResolverService")
	ctx, span := tr.Start(ctx, "Resolve",
		trace.WithAttributes(
			attribute.String("identity.subject", id.Subject),
			attribute.Bool("identity.anonymous", id.Anonymous()),
		),
	)
	defer span.End()

	// An anonymous caller presenting a live session token keeps their prior
	// identity; the generated subject is only used when no session ties them
	// back to an existing user.
	if id.Anonymous() && sessionToken != "" {
		if sess, err := repo.GetSessionByToken(ctx, s.DB, sessionToken); err == nil && sess.Active {
			user, err := repo.GetUserByID(ctx, s.DB, sess.UserID)
			if err == nil {
				if terr := repo.TouchUser(ctx, s.DB, user.ID, false); terr != nil {
					return nil, nil, terr
				}
				_ = repo.TouchSession(ctx, s.DB, sess.ID)
				return user, sess, nil
			}
		}
	}

	user, err := repo.GetUserBySubject(ctx, s.DB, id.Subject)
	switch {
	case err == nil:
	case errors.Is(err, gorm.ErrRecordNotFound):
		role := defaultAuthRole
		if id.Anonymous() {
			role = defaultAnonRole
		}
		user, err = repo.CreateUser(ctx, s.DB, id.Subject, "", "", defaultDept, role)
		if err != nil {
			// A concurrent first request may have inserted the row already.
			if u, gerr := repo.GetUserBySubject(ctx, s.DB, id.Subject); gerr == nil {
				user = u
			} else {
				return nil, nil, err
			}
		}
	default:
		return nil, nil, err
	}

	session, err := s.resolveSession(ctx, user.ID, sessionToken, platform, deviceInfo)
	if err != nil {
		return nil, nil, err
	}

	if err := repo.TouchUser(ctx, s.DB, user.ID, false); err != nil {
		return nil, nil, err
	}
	_ = repo.TouchSession(ctx, s.DB, session.ID) // best effort

	return user, session, nil
}

func (s *ResolverService) resolveSession(ctx context.Context, userID, token, platform, deviceInfo string) (*domain.Session, error) {
	if token != "" {
		sess, err := repo.GetSessionByToken(ctx, s.DB, token)
		if err == nil && sess.Active && sess.UserID == userID {
			return sess, nil
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		// Unknown, ended, or foreign token: fall through and open a new session.
	} else if sess, err := repo.GetActiveSession(ctx, s.DB, userID); err == nil {
		return sess, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return repo.CreateSession(ctx, s.DB, userID, "", platform, deviceInfo)
}

// End closes the caller's active session identified by token. Returns
// ErrSessionNotFound when no active session with that token belongs to the
// user.
func (s *ResolverService) End(ctx context.Context, userID, token string) (*domain.Session, error) {
	tr := otel.Tracer("services/ResolverService")
	ctx, span := tr.Start(ctx, "End",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	sess, err := repo.GetSessionByToken(ctx, s.DB, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if sess.UserID != userID || !sess.Active {
		return nil, ErrSessionNotFound
	}
	closed, err := repo.EndSession(ctx, s.DB, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return closed, nil
}
