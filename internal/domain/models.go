// Package domain defines the persistence models for users, sessions, queries,
// feedback, FAQ entries, and ERP integration descriptors. These types are
// mapped with GORM and form the core data layer of the assistant backend.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Response source tags recorded on a Query. A query starts as SourcePending
// and ends with the tag of the pipeline stage that produced its answer.
const (
	SourceFAQ     = "faq"
	SourceERP     = "erp"
	SourceAI      = "ai"
	SourceHuman   = "human"
	SourcePending = "pending"
	SourceError   = "error"
)

// Response types recorded on a Query. Pending is the initial state; text and
// error are terminal.
const (
	ResponsePending = "pending"
	ResponseText    = "text"
	ResponseError   = "error"
)

// PendingResponse is the sentinel response body stored while a query is
// still being resolved, so clients never render a null response.
const PendingResponse = "Processing..."

// Departments recognized for users, queries, and FAQ entries.
var Departments = []string{"general", "sales", "purchase", "inventory", "production", "finance", "gst", "admin"}

// User is a durable identity created on first contact and never hard-deleted.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Subject: external auth subject id, or a generated anonymous id; unique.
//   - Department / Role: defaults applied at first contact ("general"/"guest"
//     for anonymous callers).
//   - LastActive: bumped on every resolved request.
//   - QueryCount: running total of questions asked.
type User struct {
	ID         string         `json:"id"          gorm:"type:char(36);primaryKey"`
	Subject    string         `json:"subject"     gorm:"type:varchar(128);not null;uniqueIndex:ux_user_subject"`
	Name       string         `json:"name"        gorm:"type:varchar(255)"`
	Email      string         `json:"email"       gorm:"type:varchar(255)"`
	Department string         `json:"department"  gorm:"type:varchar(32);not null;default:'general'"`
	Role       string         `json:"role"        gorm:"type:varchar(32);not null;default:'guest'"`
	LastActive time.Time      `json:"last_active"`
	QueryCount int64          `json:"query_count" gorm:"not null;default:0"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-"           gorm:"index"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Session ties a session token to one user on one platform. The intended
// invariant is a single active session per user; the resolver supersedes
// older active sessions when it opens a new one.
type Session struct {
	ID           string     `json:"id"             gorm:"type:char(36);primaryKey"`
	Token        string     `json:"token"          gorm:"type:varchar(128);not null;uniqueIndex:ux_session_token"`
	UserID       string     `json:"user_id"        gorm:"type:char(36);not null;index:idx_user_sessions"`
	Platform     string     `json:"platform"       gorm:"type:varchar(16);not null;default:'web'"`
	DeviceInfo   string     `json:"device_info"    gorm:"type:varchar(255)"`
	StartedAt    time.Time  `json:"started_at"`
	EndedAt      *time.Time `json:"ended_at,omitempty"`
	Duration     int64      `json:"duration"` // seconds, set when the session ends
	Active       bool       `json:"active"         gorm:"not null;default:true;index"`
	LastActiveAt time.Time  `json:"last_active_at"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Session.
func (Session) TableName() string { return "sessions" }

// Query is the audit trail of one user question: prompt, resolution path,
// timing, and later feedback/escalation. It is created in a pending state
// before any resolution step runs, then finalized in place. Once a terminal
// response type is set the record is append-only except for feedback
// attachment and the one guarded escalation.
type Query struct {
	ID         string     `json:"id"          gorm:"type:char(36);primaryKey"`
	UserID     string     `json:"user_id"     gorm:"type:char(36);not null;index:idx_user_queries,priority:1"`
	SessionID  string     `json:"session_id"  gorm:"type:char(36);not null;index"`
	Prompt     string     `json:"prompt"      gorm:"type:text;not null"`
	Response   string     `json:"response"    gorm:"type:text;not null;default:'Processing...'"`
	Source     string     `json:"source"      gorm:"type:varchar(16);not null;default:'pending';check:source IN ('faq','erp','ai','human','pending','error')"`
	Type       string     `json:"response_type" gorm:"column:response_type;type:varchar(16);not null;default:'pending';check:response_type IN ('pending','text','error')"`
	Department string     `json:"department"  gorm:"type:varchar(32);not null;default:'general'"`
	Role       string     `json:"role"        gorm:"type:varchar(32);not null;default:'guest'"`
	Intent     string     `json:"intent"      gorm:"type:varchar(32)"`
	LatencyMS  int64      `json:"latency_ms"` // wall-clock receipt to completion
	Escalated  bool       `json:"escalated"   gorm:"not null;default:false"`
	TicketID   string     `json:"ticket_id,omitempty" gorm:"type:varchar(64)"`
	Context    string     `json:"context,omitempty"   gorm:"type:text"`
	AnsweredAt *time.Time `json:"answered_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"  gorm:"index:idx_user_queries,priority:2"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TableName returns the database table name for Query.
func (Query) TableName() string { return "queries" }

// Terminal reports whether the query has reached a terminal response type.
func (q *Query) Terminal() bool {
	return q.Type == ResponseText || q.Type == ResponseError
}

// Sentiment tags derived from feedback ratings.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// Feedback is a single rating left against a Query. Feedback rows are
// write-once; re-submitting creates another row and never mutates the
// query's stored response.
type Feedback struct {
	ID        string    `json:"id"         gorm:"type:char(36);primaryKey"`
	QueryID   string    `json:"query_id"   gorm:"type:char(36);not null;index"`
	UserID    string    `json:"user_id"    gorm:"type:char(36);not null;index"`
	Rating    int       `json:"rating"     gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Comment   string    `json:"comment,omitempty" gorm:"type:text"`
	Sentiment string    `json:"sentiment"  gorm:"type:varchar(16);not null;default:'neutral';check:sentiment IN ('positive','neutral','negative')"`
	CreatedAt time.Time `json:"created_at"`

	Query Query `json:"-" gorm:"foreignKey:QueryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Feedback.
func (Feedback) TableName() string { return "feedback" }

// SentimentForRating maps a 1–5 rating to a sentiment tag: >=4 positive,
// <=2 negative, 3 neutral.
func SentimentForRating(rating int) string {
	switch {
	case rating >= 4:
		return SentimentPositive
	case rating <= 2:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}

// FAQ is long-lived curated reference data. Entries are soft-deactivated via
// Active rather than deleted, for audit continuity.
type FAQ struct {
	ID         string         `json:"id"         gorm:"type:char(36);primaryKey"`
	Department string         `json:"department" gorm:"type:varchar(32);not null;default:'general';index"`
	Category   string         `json:"category"   gorm:"type:varchar(64)"`
	Question   string         `json:"question"   gorm:"type:text;not null"`
	Answer     string         `json:"answer"     gorm:"type:text;not null"`
	Keywords   []string       `json:"keywords"   gorm:"serializer:json"`
	Popularity int64          `json:"popularity" gorm:"not null;default:0"`
	Active     bool           `json:"active"     gorm:"not null;default:true;index"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-"          gorm:"index"`
}

// TableName returns the database table name for FAQ.
func (FAQ) TableName() string { return "faqs" }

// ParamSpec declares one parameter accepted by an ERP integration.
type ParamSpec struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
}

// ERPIntegration describes how to proxy a request to an external ERP
// surface and how to reshape its response. It is reference data, not user
// data: looked up by module tag at resolution time.
//
// ResponseMapping projects the raw upstream payload into a flat object:
// target key -> dotted source path ("leaveBalance.annual"). AccessRoles is a
// role allow-list; the wildcard "all" admits every caller.
type ERPIntegration struct {
	ID              string            `json:"id"               gorm:"type:char(36);primaryKey"`
	Module          string            `json:"module"           gorm:"type:varchar(32);not null;index"`
	Name            string            `json:"name"             gorm:"type:varchar(128);not null"`
	Description     string            `json:"description,omitempty" gorm:"type:text"`
	Endpoint        string            `json:"endpoint"         gorm:"type:varchar(255);not null"`
	Method          string            `json:"method"           gorm:"type:varchar(8);not null;default:'GET'"`
	Parameters      []ParamSpec       `json:"parameters"       gorm:"serializer:json"`
	ResponseMapping map[string]string `json:"response_mapping" gorm:"serializer:json"`
	AccessRoles     []string          `json:"access_roles"     gorm:"serializer:json"`
	Active          bool              `json:"active"           gorm:"not null;default:true;index"`
	CreatedAt       time.Time         `json:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at"`
	DeletedAt       gorm.DeletedAt    `json:"-"                gorm:"index"`
}

// TableName returns the database table name for ERPIntegration.
func (ERPIntegration) TableName() string { return "erp_integrations" }

// AllowsRole reports whether the descriptor's allow-list admits role.
// The check fails closed: an empty list admits nobody.
func (e *ERPIntegration) AllowsRole(role string) bool {
	for _, r := range e.AccessRoles {
		if r == "all" || r == role {
			return true
		}
	}
	return false
}
