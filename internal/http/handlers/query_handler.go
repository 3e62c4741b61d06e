// Query HTTP handlers.
//
// This file exposes the conversational surface of the API:
//   - POST /query                      (ask a question)
//   - GET  /history                    (paginated query history, ETag support)
//   - POST /queries/{id}/feedback      (rate an answer)
//   - POST /queries/{id}/escalate      (hand over to a human agent)
//   - POST /session/end                (close the active session)
//
// Handlers are transport-thin: they resolve the caller, call application
// services, and translate results into HTTP responses (including idempotent
// replays and conditional responses).
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/asknova/go-assist-backend/internal/channel"
	"github.com/asknova/go-assist-backend/internal/domain"
	"github.com/asknova/go-assist-backend/internal/http/middleware"
	"github.com/asknova/go-assist-backend/internal/repo"
	"github.com/asknova/go-assist-backend/internal/services"
	"github.com/asknova/go-assist-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// Resolver maps request-boundary identities to users and sessions.
// Implementations must be safe for concurrent use and honor the context.
type Resolver interface {
	Resolve(ctx context.Context, id domain.Identity, sessionToken, platform, deviceInfo string) (*domain.User, *domain.Session, error)
	End(ctx context.Context, userID, token string) (*domain.Session, error)
}

// QueryPipeline resolves questions and owns the query record lifecycle.
type QueryPipeline interface {
	Ask(ctx context.Context, user *domain.User, session *domain.Session, prompt string, params map[string]any) (*domain.Query, error)
	History(ctx context.Context, userID string, page, pageSize int) ([]domain.Query, int64, error)
	Get(ctx context.Context, userID, queryID string) (*domain.Query, error)
	Escalate(ctx context.Context, userID, queryID string) (ticketID string, already bool, err error)
}

// FeedbackSink records answer ratings.
type FeedbackSink interface {
	Leave(ctx context.Context, userID, queryID string, rating int, comment string) (*domain.Feedback, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints of the assistant API. It depends on
// abstract service contracts for the pipeline surfaces and on concrete
// admin services for the reference-data surfaces.
type Handlers struct {
	DB *gorm.DB

	resolver Resolver
	queries  QueryPipeline
	feedback FeedbackSink

	faq       *services.FAQService
	erp       *services.ERPService
	analytics *services.AnalyticsService

	idempotencyTTL time.Duration
}

// New constructs a Handlers instance bound to the given services.
func New(db *gorm.DB, resolver Resolver, queries QueryPipeline, feedback FeedbackSink,
	faq *services.FAQService, erpSvc *services.ERPService, analytics *services.AnalyticsService,
	idempotencyTTL time.Duration) *Handlers {
	return &Handlers{
		DB:             db,
		resolver:       resolver,
		queries:        queries,
		feedback:       feedback,
		faq:            faq,
		erp:            erpSvc,
		analytics:      analytics,
		idempotencyTTL: idempotencyTTL,
	}
}

//
// DTOs
//

// AskRequest is the JSON payload for POST /query.
type AskRequest struct {
	// Prompt is the user's question (1–2000 chars).
	Prompt string `json:"prompt" binding:"required" example:"How to generate GST invoice?"`
	// Platform selects the response formatting (web, slack, whatsapp, teams).
	Platform string `json:"platform" example:"web"`
	// Params carries explicit parameters for live data lookups.
	Params map[string]any `json:"params,omitempty"`
}

// AskResponse wraps the resolved query plus the session token the client
// should carry on subsequent requests, and the platform-shaped payload.
type AskResponse struct {
	Query        *domain.Query  `json:"query"`
	SessionToken string         `json:"session_token"`
	Answer       map[string]any `json:"answer"`
	Replayed     bool           `json:"replayed,omitempty"`
}

// FeedbackRequest is the JSON payload for rating an answer.
type FeedbackRequest struct {
	Rating  int    `json:"rating" binding:"required" example:"4"`
	Comment string `json:"comment,omitempty"`
}

// EscalateResponse reports the support ticket a query was escalated to.
type EscalateResponse struct {
	QueryID          string `json:"query_id"`
	TicketID         string `json:"ticket_id"`
	AlreadyEscalated bool   `json:"already_escalated"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// HistoryResponse wraps a page of queries and pagination information.
type HistoryResponse struct {
	Queries    []domain.Query `json:"queries"`
	Pagination Pagination     `json:"pagination"`
}

//
// Helpers
//

// clampPagination parses and bounds page and page_size query params.
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

// currentUser loads the caller's user row without creating one: by session
// token first, then by authenticated subject. Read-only endpoints use this
// so a GET never mints users or sessions.
func (h *Handlers) currentUser(c *gin.Context) (*domain.User, error) {
	ctx := c.Request.Context()
	if token := middleware.SessionTokenFrom(c); token != "" {
		if sess, err := repo.GetSessionByToken(ctx, h.DB, token); err == nil {
			return repo.GetUserByID(ctx, h.DB, sess.UserID)
		}
	}
	id := middleware.IdentityFrom(c)
	if id.Anonymous() || id.Subject == "" {
		return nil, repo.ErrNotFound
	}
	return repo.GetUserBySubject(ctx, h.DB, id.Subject)
}

//
// Handlers
//

// Ask godoc
// @ID          askQuery
// @Summary     Ask a question
// @Description Records the question, resolves it through the FAQ/ERP/AI pipeline, and returns the finalized query record. Supports Idempotency-Key replays.
// @Tags        Query
// @Accept      json
// @Produce     json
//
// @Param       X-User-Subject   header  string  false "Authenticated subject (set by gateway)"
// @Param       X-Session-Token  header  string  false "Session token from a prior response"
// @Param       Idempotency-Key  header  string  false "Safe-retry key"
// @Param       body             body    handlers.AskRequest  true  "Question payload"
//
// @Success     201  {object}  handlers.AskResponse
// @Success     200  {object}  handlers.AskResponse "Idempotent replay"
// @Failure     400  {object}  handlers.ErrorResponse "Bad request"
// @Failure     500  {object}  handlers.ErrorResponse "Internal error"
// @Router      /query [post]
func (h *Handlers) Ask(c *gin.Context) {
	ctx := c.Request.Context()

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	platform := channel.Normalize(req.Platform)

	user, session, err := h.resolver.Resolve(ctx,
		middleware.IdentityFrom(c), middleware.SessionTokenFrom(c),
		platform, c.Request.UserAgent())
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeResolveFailed, "could not resolve caller")
		return
	}
	// Swap the boundary subject for the durable user id in logs downstream.
	c.Set("userID", user.ID)

	// Idempotent replay: serve the previously finalized record.
	if key, present := middleware.GetIdempotencyKey(c); present {
		if rec, err := repo.GetIdempotency(ctx, h.DB, user.ID, key, time.Now().UTC()); err == nil {
			if q, err := repo.GetQuery(ctx, h.DB, rec.QueryID); err == nil {
				ok(c, rec.Status, AskResponse{
					Query:        q,
					SessionToken: session.Token,
					Answer:       channel.Format(q.Response, platform, nil),
					Replayed:     true,
				})
				return
			}
		}
	}

	q, err := h.queries.Ask(ctx, user, session, req.Prompt, req.Params)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyPrompt):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "prompt must not be empty")
		case errors.Is(err, services.ErrTooLong):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "prompt too long")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not resolve query")
		}
		return
	}

	if key, present := middleware.GetIdempotencyKey(c); present {
		// Best effort; a concurrent duplicate just means the other request
		// recorded the same outcome first.
		_, _ = repo.CreateIdempotency(ctx, h.DB, user.ID, key, q.ID, http.StatusCreated, h.idempotencyTTL)
	}

	ok(c, http.StatusCreated, AskResponse{
		Query:        q,
		SessionToken: session.Token,
		Answer:       channel.Format(q.Response, platform, nil),
	})
}

// History godoc
// @ID          queryHistory
// @Summary     Query history (paginated)
// @Description Returns a page of the caller's queries, most recent first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Query
// @Produce     json
//
// @Param       X-Session-Token  header  string  false "Session token"
// @Param       If-None-Match    header  string  false "Return 304 if ETag matches"
// @Param       page             query   int     false "Page number"     minimum(1) default(1)
// @Param       page_size        query   int     false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.HistoryResponse
// @Header      200  {string} ETag "Weak ETag for current result"
// @Success     304  {string} string "Not Modified"
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /history [get]
func (h *Handlers) History(c *gin.Context) {
	ctx := c.Request.Context()
	page, pageSize := clampPagination(c)

	user, err := h.currentUser(c)
	if err != nil {
		// No durable identity yet: an empty history, not an error.
		ok(c, http.StatusOK, HistoryResponse{
			Queries:    []domain.Query{},
			Pagination: Pagination{Page: page, PageSize: pageSize},
		})
		return
	}

	// ETag pre-check (best effort).
	if count, maxTS, err := repo.QueriesStats(ctx, h.DB, user.ID); err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.Unix()
		}
		etag := fmt.Sprintf(`W/"queries:%s:%d:%d"`, user.ID, count, ts)
		c.Header("ETag", etag)
		if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, total, err := h.queries.History(ctx, user.ID, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, HistoryResponse{
		Queries: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// GetQuery godoc
// @ID          getQuery
// @Summary     Fetch one query record
// @Description Returns a single query record owned by the caller, including its resolution source, intent, and escalation state.
// @Tags        Query
// @Produce     json
//
// @Param       id  path  string  true "Query ID (UUID)" format(uuid)
//
// @Success     200  {object} domain.Query
// @Failure     404  {object} handlers.ErrorResponse "Query not found"
// @Router      /queries/{id} [get]
func (h *Handlers) GetQuery(c *gin.Context) {
	queryID := c.Param("id")
	if _, err := uuid.Parse(queryID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "query id must be a UUID")
		return
	}

	user, err := h.currentUser(c)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "query not found")
		return
	}

	q, err := h.queries.Get(c.Request.Context(), user.ID, queryID)
	if err != nil {
		if errors.Is(err, services.ErrQueryNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "query not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load query")
		return
	}
	ok(c, http.StatusOK, q)
}

// LeaveFeedback godoc
// @ID          leaveFeedback
// @Summary     Rate an answer
// @Description Records a 1–5 rating (plus optional comment) against a resolved query. Each submission creates a new feedback row.
// @Tags        Query
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                    true "Query ID (UUID)" format(uuid)
// @Param       body  body  handlers.FeedbackRequest  true "Rating payload"
//
// @Success     201  {object} domain.Feedback
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     403  {object} handlers.ErrorResponse "Not the query owner"
// @Failure     404  {object} handlers.ErrorResponse "Query not found"
// @Failure     409  {object} handlers.ErrorResponse "Query not resolved yet"
// @Router      /queries/{id}/feedback [post]
func (h *Handlers) LeaveFeedback(c *gin.Context) {
	queryID := c.Param("id")
	if _, err := uuid.Parse(queryID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "query id must be a UUID")
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	user, err := h.currentUser(c)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "query not found")
		return
	}

	fb, err := h.feedback.Leave(c.Request.Context(), user.ID, queryID, req.Rating, req.Comment)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRating):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		case errors.Is(err, services.ErrQueryNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "query not found")
		case errors.Is(err, services.ErrForbiddenFeedback):
			fail(c, http.StatusForbidden, ErrCodeForbidden, err.Error())
		case errors.Is(err, services.ErrQueryNotTerminal):
			fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not record feedback")
		}
		return
	}
	ok(c, http.StatusCreated, fb)
}

// Escalate godoc
// @ID          escalateQuery
// @Summary     Escalate to a human agent
// @Description Marks a resolved query as escalated and returns the support ticket id. Escalation is one-way; repeated calls return the original ticket.
// @Tags        Query
// @Produce     json
//
// @Param       id  path  string  true "Query ID (UUID)" format(uuid)
//
// @Success     200  {object} handlers.EscalateResponse
// @Failure     404  {object} handlers.ErrorResponse "Query not found"
// @Failure     409  {object} handlers.ErrorResponse "Query not resolved yet"
// @Router      /queries/{id}/escalate [post]
func (h *Handlers) Escalate(c *gin.Context) {
	queryID := c.Param("id")
	if _, err := uuid.Parse(queryID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "query id must be a UUID")
		return
	}

	user, err := h.currentUser(c)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "query not found")
		return
	}

	ticket, already, err := h.queries.Escalate(c.Request.Context(), user.ID, queryID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrQueryNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "query not found")
		case errors.Is(err, services.ErrQueryNotTerminal):
			fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not escalate query")
		}
		return
	}
	ok(c, http.StatusOK, EscalateResponse{
		QueryID:          queryID,
		TicketID:         ticket,
		AlreadyEscalated: already,
	})
}

// EndSession godoc
// @ID          endSession
// @Summary     End the active session
// @Description Closes the session named by X-Session-Token and returns its final record, including the computed duration in seconds.
// @Tags        Session
// @Produce     json
//
// @Param       X-Session-Token  header  string  true "Session token"
//
// @Success     200  {object} domain.Session
// @Failure     404  {object} handlers.ErrorResponse "Session not found"
// @Router      /session/end [post]
func (h *Handlers) EndSession(c *gin.Context) {
	token := strings.TrimSpace(middleware.SessionTokenFrom(c))
	if token == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "X-Session-Token header required")
		return
	}

	user, err := h.currentUser(c)
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "session not found")
		return
	}

	sess, err := h.resolver.End(c.Request.Context(), user.ID, token)
	if err != nil {
		if errors.Is(err, services.ErrSessionNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "session not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not end session")
		return
	}
	ok(c, http.StatusOK, sess)
}
