// ERP HTTP handlers.
//
// Direct access to integration descriptors, outside the query pipeline:
//   - GET    /erp/integrations        (descriptors visible to the caller's role)
//   - POST   /erp/execute/{id}        (run one descriptor with explicit params)
//   - POST   /admin/integrations      (register a descriptor)
//   - PUT    /admin/integrations/{id} (partial update)
//   - DELETE /admin/integrations/{id} (soft deactivate)
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/asknova/go-assist-backend/internal/domain"
	"github.com/asknova/go-assist-backend/internal/services"
)

// ExecuteRequest is the JSON payload for running an integration.
type ExecuteRequest struct {
	Params map[string]any `json:"params,omitempty"`
}

// RegisterIntegrationRequest is the JSON payload for registering a
// descriptor.
type RegisterIntegrationRequest struct {
	Module          string             `json:"module" binding:"required" example:"finance"`
	Name            string             `json:"name" binding:"required" example:"Invoice Status"`
	Description     string             `json:"description,omitempty"`
	Endpoint        string             `json:"endpoint" binding:"required" example:"/finance/invoice/status"`
	Method          string             `json:"method,omitempty" example:"GET"`
	Parameters      []domain.ParamSpec `json:"parameters,omitempty"`
	ResponseMapping map[string]string  `json:"response_mapping,omitempty"`
	AccessRoles     []string           `json:"access_roles,omitempty"`
}

// callerRole returns the caller's role, defaulting to guest when no durable
// user exists yet.
func (h *Handlers) callerRole(c *gin.Context) string {
	if user, err := h.currentUser(c); err == nil {
		return user.Role
	}
	return "guest"
}

// ListIntegrations godoc
// @ID          listIntegrations
// @Summary     List visible ERP integrations
// @Description Returns the active integration descriptors the caller's role may execute.
// @Tags        ERP
// @Produce     json
//
// @Success     200  {array}  domain.ERPIntegration
// @Failure     500  {object} handlers.ErrorResponse "Internal error"
// @Router      /erp/integrations [get]
func (h *Handlers) ListIntegrations(c *gin.Context) {
	items, err := h.erp.ListVisible(c.Request.Context(), h.callerRole(c))
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, err.Error())
		return
	}
	ok(c, http.StatusOK, items)
}

// ExecuteIntegration godoc
// @ID          executeIntegration
// @Summary     Execute an ERP integration
// @Description Runs one integration descriptor with the supplied parameters. Upstream failures are reported as 502 with a shaped result; refusals (missing parameters) come back 200 with ok=false.
// @Tags        ERP
// @Accept      json
// @Produce     json
//
// @Param       id    path  string                   true "Integration ID (UUID)" format(uuid)
// @Param       body  body  handlers.ExecuteRequest  true "Execution parameters"
//
// @Success     200  {object} erp.Result
// @Failure     403  {object} handlers.ErrorResponse "Role not permitted"
// @Failure     404  {object} handlers.ErrorResponse "Integration not found"
// @Failure     502  {object} handlers.ErrorResponse "Upstream unavailable"
// @Router      /erp/execute/{id} [post]
func (h *Handlers) ExecuteIntegration(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "integration id must be a UUID")
		return
	}
	var req ExecuteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	res, err := h.erp.Execute(c.Request.Context(), h.callerRole(c), id, req.Params)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrIntegrationNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "integration not found")
		case errors.Is(err, services.ErrForbiddenIntegration):
			fail(c, http.StatusForbidden, ErrCodeForbidden, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not execute integration")
		}
		return
	}
	if res.Unavailable {
		fail(c, http.StatusBadGateway, ErrCodeUpstreamError, res.Message)
		return
	}
	ok(c, http.StatusOK, res)
}

// RegisterIntegration godoc
// @ID          registerIntegration
// @Summary     Register an ERP integration
// @Tags        Admin
// @Accept      json
// @Produce     json
//
// @Param       body  body  handlers.RegisterIntegrationRequest  true  "Descriptor payload"
//
// @Success     201  {object} domain.ERPIntegration
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     403  {object} handlers.ErrorResponse "Admin only"
// @Router      /admin/integrations [post]
func (h *Handlers) RegisterIntegration(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	var req RegisterIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	integ, err := h.erp.Register(c.Request.Context(), &domain.ERPIntegration{
		Module:          req.Module,
		Name:            req.Name,
		Description:     req.Description,
		Endpoint:        req.Endpoint,
		Method:          req.Method,
		Parameters:      req.Parameters,
		ResponseMapping: req.ResponseMapping,
		AccessRoles:     req.AccessRoles,
	})
	if err != nil {
		if errors.Is(err, services.ErrInvalidIntegration) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, err.Error())
		return
	}
	ok(c, http.StatusCreated, integ)
}

// UpdateIntegration godoc
// @ID          updateIntegration
// @Summary     Update an ERP integration
// @Description Applies a partial update (module, name, description, endpoint, method, access_roles, active).
// @Tags        Admin
// @Accept      json
// @Produce     json
//
// @Param       id    path  string          true "Integration ID (UUID)" format(uuid)
// @Param       body  body  map[string]any  true "Fields to update"
//
// @Success     204  {string} string "No Content"
// @Failure     400  {object} handlers.ErrorResponse "Bad request"
// @Failure     404  {object} handlers.ErrorResponse "Integration not found"
// @Router      /admin/integrations/{id} [put]
func (h *Handlers) UpdateIntegration(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "integration id must be a UUID")
		return
	}
	var updates map[string]any
	if err := c.ShouldBindJSON(&updates); err != nil || len(updates) == 0 {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	if err := h.erp.Update(c.Request.Context(), id, updates); err != nil {
		switch {
		case errors.Is(err, services.ErrIntegrationNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "integration not found")
		case errors.Is(err, services.ErrInvalidIntegration):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		}
		return
	}
	noContent(c)
}

// DeleteIntegration godoc
// @ID          deleteIntegration
// @Summary     Deactivate an ERP integration
// @Tags        Admin
// @Produce     json
//
// @Param       id  path  string  true "Integration ID (UUID)" format(uuid)
//
// @Success     204  {string} string "No Content"
// @Failure     404  {object} handlers.ErrorResponse "Integration not found"
// @Router      /admin/integrations/{id} [delete]
func (h *Handlers) DeleteIntegration(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "integration id must be a UUID")
		return
	}
	if err := h.erp.Deactivate(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrIntegrationNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "integration not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
		return
	}
	noContent(c)
}
