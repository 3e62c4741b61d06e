package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/asknova/go-assist-backend/internal/config"
	"github.com/asknova/go-assist-backend/internal/domain"
	"github.com/asknova/go-assist-backend/internal/http/middleware"
	"github.com/asknova/go-assist-backend/internal/repo"
)

func newRouterDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", uuid.NewString())
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

func routerConfig() config.Config {
	return config.Config{
		APIBasePath:     "/api/v1",
		RateRPS:         100,
		RateBurst:       10,
		RouteThreshold:  0.3,
		DirectThreshold: 0.75,
		HistoryContext:  5,
		IdempotencyTTL:  time.Hour,
		AI:              config.AIConfig{APIKey: "test", Timeout: time.Second},
		ERP:             config.ERPConfig{BaseURL: "http://127.0.0.1:1", Timeout: time.Second},
		OTEL:            config.OTELConfig{ServiceName: "asknova-test"},
	}
}

func TestRegisterRoutes_HealthMetricsAndFallbacks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newRouterDB(t), routerConfig())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	// Allow-all branch forces ACAO: * even without an Origin header.
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("ACAO = %q, want *", got)
	}
	if rid := w.Header().Get("X-Request-ID"); rid == "" {
		t.Fatal("missing X-Request-ID")
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Fatalf("GET /metrics = %d (%d bytes)", w.Code, w.Body.Len())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /nope = %d", w.Code)
	}
	var errResp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &errResp); err != nil {
		t.Fatalf("404 body not JSON: %v", err)
	}
	if errResp["code"] != "not_found" {
		t.Fatalf("404 body = %v", errResp)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/health", nil))
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health = %d", w.Code)
	}
}

func TestRegisterRoutes_CORSAllowlistEcho(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := routerConfig()
	cfg.CORS.AllowedOrigins = []string{"https://erp.example.com"}
	RegisterRoutes(r, newRouterDB(t), cfg)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://erp.example.com")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://erp.example.com" {
		t.Fatalf("ACAO = %q", got)
	}

	// Unlisted origins get no ACAO grant.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	r.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unlisted origin got ACAO %q", got)
	}
}

func TestRegisterRoutes_SwaggerToggle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	cfg := routerConfig()
	cfg.SwaggerEnabled = true
	RegisterRoutes(r, newRouterDB(t), cfg)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("GET /swagger/index.html = %d", w.Code)
	}

	// Disabled: the route does not exist.
	r = gin.New()
	RegisterRoutes(r, newRouterDB(t), routerConfig())
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("disabled swagger = %d", w.Code)
	}
}

// Full-stack: an FAQ whose tokens cover the prompt resolves without any
// upstream call, and an Idempotency-Key replays the stored record.
func TestRegisterRoutes_AskAndIdempotentReplay(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	db := newRouterDB(t)
	RegisterRoutes(r, db, routerConfig())

	if err := db.Create(&domain.FAQ{
		ID:         uuid.NewString(),
		Department: "general",
		Question:   "reset password portal",
		Answer:     "Use the self-service portal to reset your password.",
		Active:     true,
	}).Error; err != nil {
		t.Fatalf("seed faq: %v", err)
	}

	ask := func(key string) *httptest.ResponseRecorder {
		body, _ := json.Marshal(map[string]any{"prompt": "reset password portal"})
		req := httptest.NewRequest(http.MethodPost, "/api/v1/query", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.HeaderUserSubject, "emp-router-1")
		if key != "" {
			req.Header.Set(middleware.HeaderIdempotencyKey, key)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := ask("router-ask-1")
	if w.Code != http.StatusCreated {
		t.Fatalf("first ask = %d: %s", w.Code, w.Body.String())
	}
	var first map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &first); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	q1, _ := first["query"].(map[string]any)
	if q1["source"] != "faq" {
		t.Fatalf("first query = %v", q1)
	}

	w = ask("router-ask-1")
	if w.Code != http.StatusCreated {
		t.Fatalf("replay = %d: %s", w.Code, w.Body.String())
	}
	var second map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &second); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if second["replayed"] != true {
		t.Fatalf("replay flag missing: %v", second)
	}
	q2, _ := second["query"].(map[string]any)
	if q2["id"] != q1["id"] {
		t.Fatalf("replay returned a different record: %v vs %v", q2["id"], q1["id"])
	}

	// Only one query row exists for the user.
	var count int64
	db.Model(&domain.Query{}).Count(&count)
	if count != 1 {
		t.Fatalf("query rows = %d", count)
	}
}

func Test_limitBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(limitBody(8))
	r.POST("/echo", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789")))
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("oversized body = %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("tiny")))
	if w.Code != http.StatusOK {
		t.Fatalf("small body = %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	groupWithPrefix(r, "").GET("/root-a", func(c *gin.Context) { c.Status(http.StatusOK) })
	groupWithPrefix(r, "/").GET("/root-b", func(c *gin.Context) { c.Status(http.StatusOK) })
	groupWithPrefix(r, "/api").GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/root-a", "/root-b", "/api/ping"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Errorf("GET %s = %d", path, w.Code)
		}
	}
}
