package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/asknova/go-assist-backend/internal/domain"
)

func identityProbe(t *testing.T) (*gin.Engine, *domain.Identity, *string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	var seen domain.Identity
	var token string
	r := gin.New()
	r.Use(Identity())
	r.GET("/probe", func(c *gin.Context) {
		seen = IdentityFrom(c)
		token = SessionTokenFrom(c)
		c.Status(http.StatusOK)
	})
	return r, &seen, &token
}

func TestIdentity_AuthenticatedSubject(t *testing.T) {
	r, seen, token := identityProbe(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(HeaderUserSubject, "  emp-1001  ")
	req.Header.Set(HeaderSessionToken, " tok-1 ")
	r.ServeHTTP(w, req)

	if seen.Kind != domain.IdentityAuthenticated || seen.Subject != "emp-1001" {
		t.Fatalf("identity = %+v", *seen)
	}
	if *token != "tok-1" {
		t.Fatalf("token = %q, want trimmed value", *token)
	}
}

func TestIdentity_AnonymousFallback(t *testing.T) {
	r, seen, token := identityProbe(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	if !seen.Anonymous() {
		t.Fatalf("identity = %+v, want anonymous", *seen)
	}
	if !strings.HasPrefix(seen.Subject, "anon-") {
		t.Fatalf("subject = %q, want generated anon subject", seen.Subject)
	}
	if *token != "" {
		t.Fatalf("token = %q, want empty", *token)
	}
}

func TestIdentity_EachAnonymousRequestGetsFreshSubject(t *testing.T) {
	r, seen, _ := identityProbe(t)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/probe", nil))
	first := seen.Subject
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/probe", nil))

	if first == seen.Subject {
		t.Fatalf("anonymous subjects repeated: %q", first)
	}
}

func TestIdentityFrom_WithoutMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if id := IdentityFrom(c); id.Subject != "" {
		t.Fatalf("expected zero identity, got %+v", id)
	}
	if tok := SessionTokenFrom(c); tok != "" {
		t.Fatalf("expected empty token, got %q", tok)
	}
}
