// Package services – QueryService
//
// This file implements QueryService, the application-level component that
// owns the resolution pipeline for user questions. Every question is
// recorded as a pending query before any resolution step runs, then exactly
// one stage finalizes it: a high-confidence FAQ match answers directly, a
// module intent with a registered integration fetches live ERP data, and
// everything else falls through to the generative completion with an
// enriched system prompt. Failures finalize the record too, as error
// outcomes, so the audit trail never loses a question.
//
// Observability: public methods are OpenTelemetry-instrumented, and resolved
// queries are counted per source in Prometheus.
package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"

	"github.com/asknova/go-assist-backend/internal/ai"
	"github.com/asknova/go-assist-backend/internal/domain"
	"github.com/asknova/go-assist-backend/internal/erp"
	"github.com/asknova/go-assist-backend/internal/repo"
	"github.com/asknova/go-assist-backend/internal/search"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// resolutionsTotal counts finalized queries by answer source.
var resolutionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "asknova_query_resolutions_total",
		Help: "Resolved queries by answer source (faq, erp, ai, error).",
	},
	[]string{"source"},
)

// ERPExecutor abstracts the ERP gateway for the pipeline (and tests).
type ERPExecutor interface {
	Execute(ctx context.Context, integ *domain.ERPIntegration, role string, params map[string]any) erp.Result
}

// QueryService coordinates the question lifecycle: pending record, staged
// resolution, and terminal finalization.
type QueryService struct {
	DB  *gorm.DB
	AI  ai.Completer
	ERP ERPExecutor

	// RouteThreshold is the FAQ confidence a match must exceed to count as a
	// candidate (fed into the generative prompt as grounding).
	RouteThreshold float64
	// DirectThreshold is the FAQ confidence a match must exceed to answer
	// directly and skip the remaining stages. Always >= RouteThreshold.
	DirectThreshold float64
	// HistoryLimit caps the prior answered turns included in the prompt.
	HistoryLimit int

	// MaxPromptRunes guards against oversized questions; 0 disables the cap.
	MaxPromptRunes int
}

// Ask resolves one question for the given user and session. It returns the
// finalized query record; resolution failures are folded into the record as
// error outcomes, so err is non-nil only for validation and storage
// problems.
func (s *QueryService) Ask(ctx context.Context, user *domain.User, session *domain.Session, prompt string, params map[string]any) (*domain.Query, error) {
	tr := otel.Tracer("services/QueryService")
	ctx, span := tr.Start(ctx, "Ask",
		trace.WithAttributes(
			attribute.String("user.id", user.ID),
			attribute.String("session.id", session.ID),
		),
	)
	defer span.End()

	start := time.Now()

	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}
	if s.MaxPromptRunes > 0 && utf8.RuneCountInString(prompt) > s.MaxPromptRunes {
		return nil, ErrTooLong
	}

	q, err := repo.CreatePendingQuery(ctx, s.DB, user.ID, session.ID, prompt, user.Department, user.Role)
	if err != nil {
		return nil, err
	}

	intent := search.Classify(prompt)
	span.SetAttributes(attribute.String("query.intent", intent))

	outcome := s.resolve(ctx, user, prompt, intent, params)

	if err := repo.FinalizeQuery(ctx, s.DB, q.ID, outcome.text, outcome.source, outcome.respType, intent, time.Since(start)); err != nil {
		return nil, err
	}
	resolutionsTotal.WithLabelValues(outcome.source).Inc()

	// Refresh counters; failures here never undo a resolved answer.
	_ = repo.TouchUser(ctx, s.DB, user.ID, true)
	_ = repo.TouchSession(ctx, s.DB, session.ID)

	return repo.GetQuery(ctx, s.DB, q.ID)
}

// outcome is the result of one pipeline stage winning.
type outcome struct {
	text     string
	source   string
	respType string
}

func textOutcome(source, text string) outcome {
	return outcome{text: text, source: source, respType: domain.ResponseText}
}

func errorOutcome(text string) outcome {
	return outcome{text: text, source: domain.SourceError, respType: domain.ResponseError}
}

// resolve runs the staged pipeline and always produces a terminal outcome.
// params carries the caller's explicit ERP parameter values through to the
// gateway when an integration stage runs.
func (s *QueryService) resolve(ctx context.Context, user *domain.User, prompt, intent string, params map[string]any) outcome {
	// Stage 1: FAQ lookup.
	var hint *domain.FAQ
	candidates, err := repo.MatchCandidates(ctx, s.DB, user.Department)
	if err == nil {
		if m := search.BestMatch(prompt, user.Department, candidates); m != nil {
			if m.Confidence > s.DirectThreshold {
				_ = repo.BumpFAQPopularity(ctx, s.DB, m.FAQ.ID)
				return textOutcome(domain.SourceFAQ, m.FAQ.Answer)
			}
			if m.Confidence > s.RouteThreshold {
				faq := m.FAQ
				hint = &faq
			}
		}
	}

	// Stage 2: live ERP data for module intents the role may query.
	if intent != search.IntentGeneral && RoleAllowsModule(user.Role, intent) && s.ERP != nil {
		integ, err := repo.GetActiveIntegrationByModule(ctx, s.DB, intent)
		switch {
		case err == nil:
			res := s.ERP.Execute(ctx, integ, user.Role, params)
			if res.OK {
				return textOutcome(domain.SourceERP, renderERPResult(integ, res))
			}
			if res.Unavailable {
				return errorOutcome(res.Message)
			}
			// Refusal (permission, missing parameters): a terminal answer
			// telling the user what is needed.
			return textOutcome(domain.SourceERP, res.Message)
		case errors.Is(err, gorm.ErrRecordNotFound):
			// No integration registered for this module; fall through.
		default:
			return errorOutcome("I couldn't look up the requested data right now. Please try again later.")
		}
	}

	// Stage 3: generative fallback with an enriched prompt.
	return s.generate(ctx, user, prompt, hint)
}

func (s *QueryService) generate(ctx context.Context, user *domain.User, prompt string, hint *domain.FAQ) outcome {
	history, err := repo.RecentAnswered(ctx, s.DB, user.ID, s.HistoryLimit)
	if err != nil {
		history = nil
	}
	var visible []domain.ERPIntegration
	if all, err := repo.ListActiveIntegrations(ctx, s.DB); err == nil {
		for _, e := range all {
			if e.AllowsRole(user.Role) {
				visible = append(visible, e)
			}
		}
	}

	system := BuildSystemPrompt(PromptContext{
		User:         user,
		History:      history,
		Integrations: visible,
		FAQHint:      hint,
	})

	answer, err := s.AI.Complete(ctx, system, prompt)
	if err != nil {
		return errorOutcome("I'm having trouble generating an answer right now. Please try again, or escalate to a human agent.")
	}
	return textOutcome(domain.SourceAI, answer)
}

// renderERPResult flattens remapped ERP data into a readable answer.
func renderERPResult(integ *domain.ERPIntegration, res erp.Result) string {
	if len(res.Data) == 0 {
		return fmt.Sprintf("%s returned no data.", integ.Name)
	}
	keys := make([]string, 0, len(res.Data))
	for k := range res.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "Here is the latest from %s:\n", integ.Name)
	for _, k := range keys {
		fmt.Fprintf(&b, "- %s: %v\n", k, res.Data[k])
	}
	return strings.TrimRight(b.String(), "\n")
}

// History returns a page of the user's queries, most recent first, plus the
// total count for pagination.
func (s *QueryService) History(ctx context.Context, userID string, page, pageSize int) ([]domain.Query, int64, error) {
	tr := otel.Tracer("services/QueryService")
	ctx, span := tr.Start(ctx, "History",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountQueries(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Query{}, 0, nil
	}
	items, err := repo.ListQueriesPage(ctx, s.DB, userID, offset, pageSize)
	return items, total, err
}

// Get fetches one query owned by userID, or ErrQueryNotFound.
func (s *QueryService) Get(ctx context.Context, userID, queryID string) (*domain.Query, error) {
	q, err := repo.GetQuery(ctx, s.DB, queryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQueryNotFound
		}
		return nil, err
	}
	if q.UserID != userID {
		return nil, ErrQueryNotFound
	}
	return q, nil
}

// Escalate hands a resolved query over to a human agent and returns the
// ticket id. Escalation is one-way: repeated calls return the ticket issued
// the first time, never a new one.
func (s *QueryService) Escalate(ctx context.Context, userID, queryID string) (ticketID string, already bool, err error) {
	tr := otel.Tracer("services/QueryService")
	ctx, span := tr.Start(ctx, "Escalate",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("query.id", queryID),
		),
	)
	defer span.End()

	q, err := s.Get(ctx, userID, queryID)
	if err != nil {
		return "", false, err
	}
	// Only successfully answered queries are escalatable: pending queries
	// have nothing to hand over yet, and error outcomes never produced an
	// answer a human would review.
	if q.Type != domain.ResponseText {
		return "", false, ErrQueryNotTerminal
	}
	if q.Escalated {
		return q.TicketID, true, nil
	}

	ticket := fmt.Sprintf("TKT-%d-%s", time.Now().UTC().Unix(), strings.ToUpper(uuid.NewString()[:8]))
	if err := repo.MarkEscalated(ctx, s.DB, queryID, ticket); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Lost the race against a concurrent escalation: surface the
			// winner's ticket.
			if q2, gerr := repo.GetQuery(ctx, s.DB, queryID); gerr == nil && q2.Escalated {
				return q2.TicketID, true, nil
			}
			return "", false, ErrQueryNotFound
		}
		return "", false, err
	}
	return ticket, false, nil
}
