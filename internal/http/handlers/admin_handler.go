// Admin HTTP handlers.
//
// Usage analytics plus the shared admin gate. Admin access requires an
// authenticated caller whose user row carries the admin role; there is no
// separate credential.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/asknova/go-assist-backend/internal/services"
)

// requireAdmin loads the caller and aborts with 403 unless their role is
// admin. Returns true when the request may proceed.
func (h *Handlers) requireAdmin(c *gin.Context) bool {
	user, err := h.currentUser(c)
	if err != nil || user.Role != "admin" {
		fail(c, http.StatusForbidden, ErrCodeForbidden, "admin access required")
		return false
	}
	return true
}

// UsageAnalytics godoc
// @ID          usageAnalytics
// @Summary     Usage analytics
// @Description Returns query volume by source, top intents, sentiment distribution, average latency, and escalation rate, optionally bounded by [from, to) (RFC 3339) and department.
// @Tags        Admin
// @Produce     json
//
// @Param       from        query  string  false "Start of window (RFC 3339)"
// @Param       to          query  string  false "End of window (RFC 3339)"
// @Param       department  query  string  false "Department scope"
//
// @Success     200  {object} repo.UsageStats
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     403  {object} handlers.ErrorResponse "Admin only"
// @Router      /admin/analytics/usage [get]
func (h *Handlers) UsageAnalytics(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	var from, to time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "from must be RFC 3339")
			return
		}
		from = t
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "to must be RFC 3339")
			return
		}
		to = t
	}

	stats, err := h.analytics.Usage(c.Request.Context(), from, to, c.Query("department"))
	if err != nil {
		if err == services.ErrInvalidDepartment {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	ok(c, http.StatusOK, stats)
}
