package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/asknova/go-assist-backend/internal/domain"
	"github.com/asknova/go-assist-backend/internal/repo"
)

func TestUsageAnalytics_AdminGate(t *testing.T) {
	db := newHandlerDB(t)
	u, s := seedUserSession(t, db, "employee")
	r := newRig(db, &stubResolver{user: u, sess: s}, &stubPipeline{}, &stubFeedback{})

	w := doJSON(r, http.MethodGet, "/admin/analytics/usage", nil,
		map[string]string{"X-Session-Token": s.Token})
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", w.Code)
	}
}

func TestUsageAnalytics_BadWindow(t *testing.T) {
	db := newHandlerDB(t)
	admin, s := seedUserSession(t, db, "admin")
	r := newRig(db, &stubResolver{user: admin, sess: s}, &stubPipeline{}, &stubFeedback{})

	w := doJSON(r, http.MethodGet, "/admin/analytics/usage?from=yesterday", nil,
		map[string]string{"X-Session-Token": s.Token})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestUsageAnalytics_Rollup(t *testing.T) {
	db := newHandlerDB(t)
	admin, s := seedUserSession(t, db, "admin")
	ctx := context.Background()

	q1, err := repo.CreatePendingQuery(ctx, db, admin.ID, s.ID, "gst filing", "finance", "admin")
	if err != nil {
		t.Fatalf("seed query: %v", err)
	}
	if err := repo.FinalizeQuery(ctx, db, q1.ID, "answer", domain.SourceFAQ, domain.ResponseText, "finance", 120*time.Millisecond); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	q2, _ := repo.CreatePendingQuery(ctx, db, admin.ID, s.ID, "stock level", "inventory", "admin")
	if err := repo.FinalizeQuery(ctx, db, q2.ID, "answer", domain.SourceAI, domain.ResponseText, "inventory", 180*time.Millisecond); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	r := newRig(db, &stubResolver{user: admin, sess: s}, &stubPipeline{}, &stubFeedback{})
	w := doJSON(r, http.MethodGet, "/admin/analytics/usage", nil,
		map[string]string{"X-Session-Token": s.Token})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var stats repo.UsageStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if stats.TotalQueries != 2 {
		t.Fatalf("total = %d", stats.TotalQueries)
	}
	if stats.AvgLatencyMS != 150 {
		t.Fatalf("avg latency = %v", stats.AvgLatencyMS)
	}
}
