package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/asknova/go-assist-backend/internal/domain"
	"github.com/asknova/go-assist-backend/internal/http/middleware"
	"github.com/asknova/go-assist-backend/internal/repo"
	"github.com/asknova/go-assist-backend/internal/services"
)

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// seedUserSession inserts a user plus one active session and returns both.
func seedUserSession(t *testing.T, db *gorm.DB, role string) (*domain.User, *domain.Session) {
	t.Helper()
	u := &domain.User{
		ID:         uuid.NewString(),
		Subject:    "subj-" + uuid.NewString(),
		Department: "general",
		Role:       role,
		LastActive: time.Now().UTC(),
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	s := &domain.Session{
		ID:           uuid.NewString(),
		Token:        "tok-" + uuid.NewString(),
		UserID:       u.ID,
		Platform:     "web",
		StartedAt:    time.Now().UTC(),
		Active:       true,
		LastActiveAt: time.Now().UTC(),
	}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}
	return u, s
}

//
// Stub services
//

type stubResolver struct {
	user *domain.User
	sess *domain.Session
	err  error

	endSess *domain.Session
	endErr  error
}

func (s *stubResolver) Resolve(ctx context.Context, id domain.Identity, token, platform, device string) (*domain.User, *domain.Session, error) {
	return s.user, s.sess, s.err
}

func (s *stubResolver) End(ctx context.Context, userID, token string) (*domain.Session, error) {
	return s.endSess, s.endErr
}

type stubPipeline struct {
	askCalls int
	askQuery *domain.Query
	askErr   error

	histItems []domain.Query
	histTotal int64
	histErr   error

	ticket  string
	already bool
	escErr  error
}

func (s *stubPipeline) Ask(ctx context.Context, user *domain.User, session *domain.Session, prompt string, params map[string]any) (*domain.Query, error) {
	s.askCalls++
	return s.askQuery, s.askErr
}

func (s *stubPipeline) History(ctx context.Context, userID string, page, pageSize int) ([]domain.Query, int64, error) {
	return s.histItems, s.histTotal, s.histErr
}

func (s *stubPipeline) Get(ctx context.Context, userID, queryID string) (*domain.Query, error) {
	return s.askQuery, s.askErr
}

func (s *stubPipeline) Escalate(ctx context.Context, userID, queryID string) (string, bool, error) {
	return s.ticket, s.already, s.escErr
}

type stubFeedback struct {
	fb  *domain.Feedback
	err error
}

func (s *stubFeedback) Leave(ctx context.Context, userID, queryID string, rating int, comment string) (*domain.Feedback, error) {
	return s.fb, s.err
}

// newRig wires the handlers into a minimal gin engine with the identity and
// idempotency middleware the real router installs.
func newRig(db *gorm.DB, res Resolver, pipe QueryPipeline, fb FeedbackSink) *gin.Engine {
	h := New(db, res, pipe, fb,
		&services.FAQService{DB: db},
		&services.ERPService{DB: db},
		&services.AnalyticsService{DB: db},
		time.Hour)
	return mountRoutes(h)
}

// mountRoutes registers every endpoint under test on a fresh engine.
func mountRoutes(h *Handlers) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.Identity())
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, nil))
	r.POST("/query", h.Ask)
	r.GET("/history", h.History)
	r.GET("/queries/:id", h.GetQuery)
	r.POST("/queries/:id/feedback", h.LeaveFeedback)
	r.POST("/queries/:id/escalate", h.Escalate)
	r.POST("/session/end", h.EndSession)
	r.GET("/faq", h.ListFAQ)
	r.POST("/admin/faq", h.CreateFAQ)
	r.PUT("/admin/faq/:id", h.UpdateFAQ)
	r.DELETE("/admin/faq/:id", h.DeleteFAQ)
	r.GET("/erp/integrations", h.ListIntegrations)
	r.POST("/erp/execute/:id", h.ExecuteIntegration)
	r.POST("/admin/integrations", h.RegisterIntegration)
	r.PUT("/admin/integrations/:id", h.UpdateIntegration)
	r.DELETE("/admin/integrations/:id", h.DeleteIntegration)
	r.GET("/admin/analytics/usage", h.UsageAnalytics)
	return r
}

func doJSON(r *gin.Engine, method, target string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

//
// POST /query
//

func TestAsk_Created(t *testing.T) {
	db := newHandlerDB(t)
	u, s := seedUserSession(t, db, "employee")
	q := &domain.Query{
		ID: uuid.NewString(), UserID: u.ID, SessionID: s.ID,
		Prompt: "leave balance?", Response: "12 days",
		Source: domain.SourceFAQ, Type: domain.ResponseText,
	}
	pipe := &stubPipeline{askQuery: q}
	r := newRig(db, &stubResolver{user: u, sess: s}, pipe, &stubFeedback{})

	w := doJSON(r, http.MethodPost, "/query", AskRequest{Prompt: "leave balance?"}, nil)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp AskResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Query == nil || resp.Query.ID != q.ID {
		t.Fatalf("query = %+v", resp.Query)
	}
	if resp.SessionToken != s.Token {
		t.Fatalf("session_token = %q", resp.SessionToken)
	}
	if resp.Answer["text"] != "12 days" {
		t.Fatalf("answer = %v", resp.Answer)
	}
	if pipe.askCalls != 1 {
		t.Fatalf("ask calls = %d", pipe.askCalls)
	}
}

func TestAsk_InvalidBody(t *testing.T) {
	db := newHandlerDB(t)
	u, s := seedUserSession(t, db, "employee")
	r := newRig(db, &stubResolver{user: u, sess: s}, &stubPipeline{}, &stubFeedback{})

	req := httptest.NewRequest(http.MethodPost, "/query", strings.NewReader("{not json"))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestAsk_PromptErrorsMapTo400(t *testing.T) {
	db := newHandlerDB(t)
	u, s := seedUserSession(t, db, "employee")

	for _, svcErr := range []error{services.ErrEmptyPrompt, services.ErrTooLong} {
		r := newRig(db, &stubResolver{user: u, sess: s}, &stubPipeline{askErr: svcErr}, &stubFeedback{})
		w := doJSON(r, http.MethodPost, "/query", AskRequest{Prompt: "x"}, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%v: status = %d", svcErr, w.Code)
		}
	}
}

func TestAsk_ResolverFailure(t *testing.T) {
	db := newHandlerDB(t)
	r := newRig(db, &stubResolver{err: fmt.Errorf("db down")}, &stubPipeline{}, &stubFeedback{})

	w := doJSON(r, http.MethodPost, "/query", AskRequest{Prompt: "x"}, nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), ErrCodeResolveFailed) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestAsk_IdempotentReplay(t *testing.T) {
	db := newHandlerDB(t)
	u, s := seedUserSession(t, db, "employee")

	// The answered query must exist in storage for the replay path.
	q, err := repo.CreatePendingQuery(context.Background(), db, u.ID, s.ID, "leave balance?", "general", "employee")
	if err != nil {
		t.Fatalf("seed query: %v", err)
	}
	if err := repo.FinalizeQuery(context.Background(), db, q.ID, "12 days", domain.SourceFAQ, domain.ResponseText, "hr", time.Second); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	stored, err := repo.GetQuery(context.Background(), db, q.ID)
	if err != nil {
		t.Fatalf("reload query: %v", err)
	}

	pipe := &stubPipeline{askQuery: stored}
	r := newRig(db, &stubResolver{user: u, sess: s}, pipe, &stubFeedback{})
	headers := map[string]string{"Idempotency-Key": "ask-once"}

	w := doJSON(r, http.MethodPost, "/query", AskRequest{Prompt: "leave balance?"}, headers)
	if w.Code != http.StatusCreated {
		t.Fatalf("first call status = %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(r, http.MethodPost, "/query", AskRequest{Prompt: "leave balance?"}, headers)
	if w.Code != http.StatusCreated {
		t.Fatalf("replay status = %d: %s", w.Code, w.Body.String())
	}
	var resp AskResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !resp.Replayed || resp.Query.ID != q.ID {
		t.Fatalf("replay response = %+v", resp)
	}
	if pipe.askCalls != 1 {
		t.Fatalf("pipeline ran %d times, replay must not re-resolve", pipe.askCalls)
	}
}

//
// GET /history
//

func TestHistory_NoIdentityIsEmptyPage(t *testing.T) {
	db := newHandlerDB(t)
	r := newRig(db, &stubResolver{}, &stubPipeline{}, &stubFeedback{})

	w := doJSON(r, http.MethodGet, "/history", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp HistoryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(resp.Queries) != 0 || resp.Pagination.Page != 1 || resp.Pagination.PageSize != 20 {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestHistory_ETagNotModified(t *testing.T) {
	db := newHandlerDB(t)
	u, s := seedUserSession(t, db, "employee")
	if _, err := repo.CreatePendingQuery(context.Background(), db, u.ID, s.ID, "q1", "general", "employee"); err != nil {
		t.Fatalf("seed query: %v", err)
	}

	pipe := &stubPipeline{histItems: []domain.Query{{ID: uuid.NewString()}}, histTotal: 1}
	r := newRig(db, &stubResolver{user: u, sess: s}, pipe, &stubFeedback{})
	headers := map[string]string{"X-Session-Token": s.Token}

	w := doJSON(r, http.MethodGet, "/history", nil, headers)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatal("missing ETag")
	}

	headers["If-None-Match"] = etag
	w = doJSON(r, http.MethodGet, "/history", nil, headers)
	if w.Code != http.StatusNotModified {
		t.Fatalf("status = %d, want 304", w.Code)
	}
}

func TestHistory_Pagination(t *testing.T) {
	db := newHandlerDB(t)
	u, s := seedUserSession(t, db, "employee")
	pipe := &stubPipeline{
		histItems: []domain.Query{{ID: uuid.NewString()}, {ID: uuid.NewString()}},
		histTotal: 5,
	}
	r := newRig(db, &stubResolver{user: u, sess: s}, pipe, &stubFeedback{})

	w := doJSON(r, http.MethodGet, "/history?page=2&page_size=2", nil,
		map[string]string{"X-Session-Token": s.Token})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp HistoryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	p := resp.Pagination
	if p.Page != 2 || p.PageSize != 2 || p.Total != 5 || p.TotalPages != 3 || !p.HasNext {
		t.Fatalf("pagination = %+v", p)
	}
}

//
// GET /queries/{id}
//

func TestGetQuery_ReturnsRecord(t *testing.T) {
	db := newHandlerDB(t)
	u, s := seedUserSession(t, db, "employee")
	qid := uuid.NewString()
	pipe := &stubPipeline{askQuery: &domain.Query{
		ID:           qid,
		UserID:       u.ID,
		Prompt:       "leave balance",
		Source:       domain.SourceERP,
		Type:         domain.ResponseText,
	}}
	r := newRig(db, &stubResolver{user: u, sess: s}, pipe, &stubFeedback{})

	w := doJSON(r, http.MethodGet, "/queries/"+qid, nil,
		map[string]string{"X-Session-Token": s.Token})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var got domain.Query
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != qid || got.Source != domain.SourceERP {
		t.Fatalf("query = %+v", got)
	}
}

func TestGetQuery_NotFoundAndBadID(t *testing.T) {
	db := newHandlerDB(t)
	u, s := seedUserSession(t, db, "employee")
	headers := map[string]string{"X-Session-Token": s.Token}

	r := newRig(db, &stubResolver{user: u, sess: s},
		&stubPipeline{askErr: services.ErrQueryNotFound}, &stubFeedback{})
	w := doJSON(r, http.MethodGet, "/queries/"+uuid.NewString(), nil, headers)
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing query status = %d", w.Code)
	}

	w = doJSON(r, http.MethodGet, "/queries/not-a-uuid", nil, headers)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad id status = %d", w.Code)
	}
}

//
// POST /queries/{id}/feedback
//

func TestLeaveFeedback_StatusMapping(t *testing.T) {
	db := newHandlerDB(t)
	u, s := seedUserSession(t, db, "employee")
	qid := uuid.NewString()

	cases := []struct {
		err  error
		want int
	}{
		{services.ErrInvalidRating, http.StatusBadRequest},
		{services.ErrQueryNotFound, http.StatusNotFound},
		{services.ErrForbiddenFeedback, http.StatusForbidden},
		{services.ErrQueryNotTerminal, http.StatusConflict},
	}
	for _, tc := range cases {
		r := newRig(db, &stubResolver{user: u, sess: s}, &stubPipeline{}, &stubFeedback{err: tc.err})
		w := doJSON(r, http.MethodPost, "/queries/"+qid+"/feedback",
			FeedbackRequest{Rating: 4}, map[string]string{"X-Session-Token": s.Token})
		if w.Code != tc.want {
			t.Errorf("%v: status = %d, want %d", tc.err, w.Code, tc.want)
		}
	}
}

func TestLeaveFeedback_Created(t *testing.T) {
	db := newHandlerDB(t)
	u, s := seedUserSession(t, db, "employee")
	qid := uuid.NewString()
	fb := &domain.Feedback{ID: uuid.NewString(), QueryID: qid, UserID: u.ID, Rating: 5, Sentiment: domain.SentimentPositive}

	r := newRig(db, &stubResolver{user: u, sess: s}, &stubPipeline{}, &stubFeedback{fb: fb})
	w := doJSON(r, http.MethodPost, "/queries/"+qid+"/feedback",
		FeedbackRequest{Rating: 5}, map[string]string{"X-Session-Token": s.Token})

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), fb.ID) {
		t.Fatalf("body = %s", w.Body.String())
	}
}

func TestLeaveFeedback_BadQueryID(t *testing.T) {
	db := newHandlerDB(t)
	u, s := seedUserSession(t, db, "employee")
	r := newRig(db, &stubResolver{user: u, sess: s}, &stubPipeline{}, &stubFeedback{})

	w := doJSON(r, http.MethodPost, "/queries/not-a-uuid/feedback",
		FeedbackRequest{Rating: 5}, map[string]string{"X-Session-Token": s.Token})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

//
// POST /queries/{id}/escalate
//

func TestEscalate_ReturnsTicket(t *testing.T) {
	db := newHandlerDB(t)
	u, s := seedUserSession(t, db, "employee")
	pipe := &stubPipeline{ticket: "TKT-ABCD1234", already: false}
	r := newRig(db, &stubResolver{user: u, sess: s}, pipe, &stubFeedback{})

	w := doJSON(r, http.MethodPost, "/queries/"+uuid.NewString()+"/escalate", nil,
		map[string]string{"X-Session-Token": s.Token})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp EscalateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.TicketID != "TKT-ABCD1234" || resp.AlreadyEscalated {
		t.Fatalf("resp = %+v", resp)
	}
}

func TestEscalate_NotFound(t *testing.T) {
	db := newHandlerDB(t)
	u, s := seedUserSession(t, db, "employee")
	r := newRig(db, &stubResolver{user: u, sess: s}, &stubPipeline{escErr: services.ErrQueryNotFound}, &stubFeedback{})

	w := doJSON(r, http.MethodPost, "/queries/"+uuid.NewString()+"/escalate", nil,
		map[string]string{"X-Session-Token": s.Token})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}

//
// POST /session/end
//

func TestEndSession_RequiresToken(t *testing.T) {
	db := newHandlerDB(t)
	r := newRig(db, &stubResolver{}, &stubPipeline{}, &stubFeedback{})

	w := doJSON(r, http.MethodPost, "/session/end", nil, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestEndSession_ReturnsClosedSession(t *testing.T) {
	db := newHandlerDB(t)
	u, s := seedUserSession(t, db, "employee")
	now := time.Now().UTC()
	closed := *s
	closed.Active = false
	closed.EndedAt = &now
	closed.Duration = 42

	r := newRig(db, &stubResolver{user: u, sess: s, endSess: &closed}, &stubPipeline{}, &stubFeedback{})
	w := doJSON(r, http.MethodPost, "/session/end", nil,
		map[string]string{"X-Session-Token": s.Token})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp domain.Session
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Active || resp.Duration != 42 {
		t.Fatalf("session = %+v", resp)
	}
}

func TestEndSession_NotFound(t *testing.T) {
	db := newHandlerDB(t)
	u, s := seedUserSession(t, db, "employee")
	r := newRig(db, &stubResolver{user: u, sess: s, endErr: services.ErrSessionNotFound}, &stubPipeline{}, &stubFeedback{})

	w := doJSON(r, http.MethodPost, "/session/end", nil,
		map[string]string{"X-Session-Token": s.Token})
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d", w.Code)
	}
}
