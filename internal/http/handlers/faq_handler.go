// FAQ HTTP handlers.
//
// Public read surface plus the administrative CRUD for the curated FAQ
// reference data:
//   - GET    /faq                   (list active entries)
//   - POST   /admin/faq             (create)
//   - PUT    /admin/faq/{id}        (partial update)
//   - DELETE /admin/faq/{id}        (soft deactivate)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/asknova/go-assist-backend/internal/domain"
	"github.com/asknova/go-assist-backend/internal/services"
)

// CreateFAQRequest is the JSON payload for creating an FAQ entry.
type CreateFAQRequest struct {
	Department string   `json:"department" example:"sales"`
	Category   string   `json:"category" example:"report"`
	Question   string   `json:"question" binding:"required"`
	Answer     string   `json:"answer" binding:"required"`
	Keywords   []string `json:"keywords,omitempty"`
}

// ListFAQ godoc
// @ID          listFAQ
// @Summary     List FAQ entries
// @Description Returns active FAQ entries ordered by popularity, optionally filtered by department and category.
// @Tags        FAQ
// @Produce     json
//
// @Param       department  query  string  false "Department filter"
// @Param       category    query  string  false "Category filter"
//
// @Success     200  {array}  domain.FAQ
// @Failure     400  {object} handlers.ErrorResponse "Unknown department"
// @Router      /faq [get]
func (h *Handlers) ListFAQ(c *gin.Context) {
	items, err := h.faq.List(c.Request.Context(), c.Query("department"), c.Query("category"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidDepartment) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// CreateFAQ godoc
// @ID          createFAQ
// @Summary     Create an FAQ entry
// @Tags        Admin
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.CreateFAQRequest  true  "FAQ payload"
//
// @Success     201  {object} domain.FAQ
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     403  {object} handlers.ErrorResponse "Admin only"
// @Router      /admin/faq [post]
func (h *Handlers) CreateFAQ(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	var req CreateFAQRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	entry, err := h.faq.Create(c.Request.Context(), &domain.FAQ{
		Department: req.Department,
		Category:   req.Category,
		Question:   req.Question,
		Answer:     req.Answer,
		Keywords:   req.Keywords,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidFAQ), errors.Is(err, services.ErrInvalidDepartment):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		}
		return
	}
	ok(c, http.StatusCreated, entry)
}

// UpdateFAQ godoc
// @ID          updateFAQ
// @Summary     Update an FAQ entry
// @Description Applies a partial update (question, answer, category, department, keywords, active).
// @Tags        Admin
// @Accept      json
// @Produce     json
//
// @Param       id    path  string          true "FAQ ID (UUID)" format(uuid)
// @Param       body  body  map[string]any  true "Fields to update"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "FAQ not found"
// @Router      /admin/faq/{id} [put]
func (h *Handlers) UpdateFAQ(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "faq id must be a UUID")
		return
	}
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil || len(updates) == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if err := h.faq.Update(c.Request.Context(), id, updates); err != nil {
		switch {
		case errors.Is(err, services.ErrFAQNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "faq not found")
		case errors.Is(err, services.ErrInvalidFAQ), errors.Is(err, services.ErrInvalidDepartment):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}

// DeleteFAQ godoc
// @ID          deleteFAQ
// @Summary     Deactivate an FAQ entry
// @Description Soft-removes the entry from matching and listings; the row survives for audit continuity.
// @Tags        Admin
// @Produce     json
//
// @Param       id  path  string  true "FAQ ID (UUID)" format(uuid)
//
// @Success     204  {string} string "No Content"
// @Failure     404  {object} handlers.ErrorResponse "FAQ not found"
// @Router      /admin/faq/{id} [delete]
func (h *Handlers) DeleteFAQ(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "faq id must be a UUID")
		return
	}
	if err := h.faq.Deactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrFAQNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "faq not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
