package services

import (
	"context"
	"errors"
	"testing"

	"github.com/asknova/go-assist-backend/internal/domain"
	"github.com/asknova/go-assist-backend/internal/repo"
)

func TestResolve_FirstContactAuthenticated(t *testing.T) {
	db := newTestDB(t)
	svc := &ResolverService{DB: db}

	id := domain.Identity{Kind: domain.IdentityAuthenticated, Subject: "emp-42"}
	user, sess, err := svc.Resolve(context.Background(), id, "", "web", "test-agent")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if user.Subject != "emp-42" || user.Role != "employee" || user.Department != "general" {
		t.Fatalf("unexpected user defaults: %+v", user)
	}
	if !sess.Active || sess.UserID != user.ID || sess.Token == "" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if sess.Platform != "web" || sess.DeviceInfo != "test-agent" {
		t.Fatalf("session metadata: %+v", sess)
	}
}

func TestResolve_FirstContactAnonymousIsGuest(t *testing.T) {
	db := newTestDB(t)
	svc := &ResolverService{DB: db}

	user, _, err := svc.Resolve(context.Background(), domain.Anonymous(), "", "web", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if user.Role != "guest" {
		t.Fatalf("anonymous role = %q, want guest", user.Role)
	}
}

func TestResolve_RepeatReusesUserAndSession(t *testing.T) {
	db := newTestDB(t)
	svc := &ResolverService{DB: db}
	id := domain.Identity{Kind: domain.IdentityAuthenticated, Subject: "emp-7"}

	u1, s1, err := svc.Resolve(context.Background(), id, "", "web", "")
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	u2, s2, err := svc.Resolve(context.Background(), id, s1.Token, "web", "")
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if u2.ID != u1.ID {
		t.Fatalf("user duplicated: %q vs %q", u1.ID, u2.ID)
	}
	if s2.ID != s1.ID {
		t.Fatalf("session with valid token not reused: %q vs %q", s1.ID, s2.ID)
	}
}

func TestResolve_NoTokenReusesActiveSession(t *testing.T) {
	db := newTestDB(t)
	svc := &ResolverService{DB: db}
	id := domain.Identity{Kind: domain.IdentityAuthenticated, Subject: "emp-8"}

	_, s1, err := svc.Resolve(context.Background(), id, "", "web", "")
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	_, s2, err := svc.Resolve(context.Background(), id, "", "web", "")
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if s2.ID != s1.ID {
		t.Fatalf("active session not reused without a token")
	}
}

func TestResolve_UnknownTokenSupersedesActives(t *testing.T) {
	db := newTestDB(t)
	svc := &ResolverService{DB: db}
	id := domain.Identity{Kind: domain.IdentityAuthenticated, Subject: "emp-9"}

	user, s1, err := svc.Resolve(context.Background(), id, "", "web", "")
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}
	_, s2, err := svc.Resolve(context.Background(), id, "stale-or-foreign", "slack", "")
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if s2.ID == s1.ID {
		t.Fatal("expected a fresh session for an unknown token")
	}

	// Single-active-session rule: the old one is closed.
	old, err := repo.GetSessionByToken(context.Background(), db, s1.Token)
	if err != nil {
		t.Fatalf("load old session: %v", err)
	}
	if old.Active || old.EndedAt == nil {
		t.Fatalf("old session still active: %+v", old)
	}
	active, err := repo.GetActiveSession(context.Background(), db, user.ID)
	if err != nil {
		t.Fatalf("GetActiveSession: %v", err)
	}
	if active.ID != s2.ID {
		t.Fatalf("active session = %q, want %q", active.ID, s2.ID)
	}
}

func TestResolve_AnonymousWithLiveTokenKeepsIdentity(t *testing.T) {
	db := newTestDB(t)
	svc := &ResolverService{DB: db}

	// First anonymous contact mints a user and session.
	first := domain.Anonymous()
	u1, s1, err := svc.Resolve(context.Background(), first, "", "web", "")
	if err != nil {
		t.Fatalf("first Resolve: %v", err)
	}

	// A later request generates a fresh anonymous subject, but the session
	// token ties the caller back to the original user.
	second := domain.Anonymous()
	u2, s2, err := svc.Resolve(context.Background(), second, s1.Token, "web", "")
	if err != nil {
		t.Fatalf("second Resolve: %v", err)
	}
	if u2.ID != u1.ID {
		t.Fatalf("anonymous caller lost identity: %q vs %q", u1.ID, u2.ID)
	}
	if s2.ID != s1.ID {
		t.Fatalf("session not reattached: %q vs %q", s1.ID, s2.ID)
	}

	// No second user row was minted for the throwaway subject.
	if _, err := repo.GetUserBySubject(context.Background(), db, second.Subject); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("throwaway subject persisted: %v", err)
	}
}

func TestEnd_ClosesSessionAndComputesDuration(t *testing.T) {
	db := newTestDB(t)
	svc := &ResolverService{DB: db}
	id := domain.Identity{Kind: domain.IdentityAuthenticated, Subject: "emp-10"}

	user, sess, err := svc.Resolve(context.Background(), id, "", "web", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}

	closed, err := svc.End(context.Background(), user.ID, sess.Token)
	if err != nil {
		t.Fatalf("End: %v", err)
	}
	if closed.Active || closed.EndedAt == nil {
		t.Fatalf("session not closed: %+v", closed)
	}
	if closed.Duration < 0 {
		t.Fatalf("duration = %d", closed.Duration)
	}

	// Ending again reports not found.
	if _, err := svc.End(context.Background(), user.ID, sess.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound on re-end, got %v", err)
	}
}

func TestEnd_ForeignTokenRejected(t *testing.T) {
	db := newTestDB(t)
	svc := &ResolverService{DB: db}

	_, sess, err := svc.Resolve(context.Background(),
		domain.Identity{Kind: domain.IdentityAuthenticated, Subject: "owner"}, "", "web", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if _, err := svc.End(context.Background(), "someone-else", sess.Token); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
