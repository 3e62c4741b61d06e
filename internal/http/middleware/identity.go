// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file establishes the caller identity exactly once, at the request
// boundary. Downstream code never re-derives who is calling: it reads the
// resolved identity (and session token, when supplied) from the Gin context.
//
// The identity model is deliberately simple: an upstream gateway or reverse
// proxy authenticates the caller and forwards the stable subject in
// X-User-Subject. Requests without that header are anonymous and get a
// generated subject; an anonymous caller holding a live session token is
// re-attached to their prior user by the resolver service.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/asknova/go-assist-backend/internal/domain"
)

const (
	// HeaderUserSubject carries the authenticated subject set by the upstream
	// auth gateway.
	HeaderUserSubject = "X-User-Subject"
	// HeaderSessionToken lets a client continue an existing session.
	HeaderSessionToken = "X-Session-Token"

	ctxKeyIdentity     = "identity"
	ctxKeySessionToken = "sessionToken"
)

// Identity resolves the caller identity variant and stashes it (plus the
// optional session token) in the Gin context. It never touches storage.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		var id domain.Identity
		if subject := strings.TrimSpace(c.GetHeader(HeaderUserSubject)); subject != "" {
			id = domain.Identity{Kind: domain.IdentityAuthenticated, Subject: subject}
		} else {
			id = domain.Anonymous()
		}
		c.Set(ctxKeyIdentity, id)
		c.Set(ctxKeySessionToken, strings.TrimSpace(c.GetHeader(HeaderSessionToken)))

		// userID here is the subject; the resolver swaps in the durable user
		// row id once resolved. Rate limiting keys off this value either way.
		c.Set("userID", id.Subject)

		c.Next()
	}
}

// IdentityFrom returns the identity stashed by Identity(). The zero Identity
// (authenticated, empty subject) is returned when the middleware did not run.
func IdentityFrom(c *gin.Context) domain.Identity {
	if v, ok := c.Get(ctxKeyIdentity); ok {
		if id, ok := v.(domain.Identity); ok {
			return id
		}
	}
	return domain.Identity{}
}

// SessionTokenFrom returns the session token header value, possibly empty.
func SessionTokenFrom(c *gin.Context) string {
	if v, ok := c.Get(ctxKeySessionToken); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
