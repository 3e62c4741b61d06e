package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// captureLogs swaps the global zerolog writer for the duration of fn and
// returns everything written.
func captureLogs(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	defer func() { log.Logger = prev }()
	fn()
	return buf.String()
}

func TestRedactingLogger_ScrubsQueryAndHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RedactingLogger(RedactOptions{MaskHeaders: []string{"X-API-Key"}}))
	r.GET("/q", func(c *gin.Context) { c.Status(http.StatusOK) })

	out := captureLogs(t, func() {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/q?id=123e4567-e89b-12d3-a456-426614174000", nil)
		req.Header.Set("Authorization", "Bearer secret-token")
		req.Header.Set("X-API-Key", "sk-12345")
		req.Header.Set("X-Contact", "reach priya@example.com or call 415-555-0134")
		r.ServeHTTP(w, req)
	})

	for _, leaked := range []string{"priya@example.com", "426614174000", "secret-token", "sk-12345", "555-0134"} {
		if strings.Contains(out, leaked) {
			t.Errorf("log leaked %q: %s", leaked, out)
		}
	}
	for _, want := range []string{"[REDACTED:email]", "[REDACTED:id]", "[REDACTED]", "[REDACTED:phone]"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing marker %q: %s", want, out)
		}
	}
}

func TestRedactingLogger_LevelByStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RedactingLogger(RedactOptions{}))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	cases := map[string]string{
		"/ok":   `"level":"info"`,
		"/bad":  `"level":"warn"`,
		"/boom": `"level":"error"`,
	}
	for path, want := range cases {
		out := captureLogs(t, func() {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		})
		if !strings.Contains(out, want) {
			t.Errorf("%s: log = %s, want %s", path, out, want)
		}
	}
}
