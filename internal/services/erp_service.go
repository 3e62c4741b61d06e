// Package services – ERPService
//
// Direct execution of ERP integration descriptors, outside the query
// pipeline: listing the integrations visible to a role and running one by
// id with explicit parameters. Administrative descriptor management lives
// here too.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/asknova/go-assist-backend/internal/domain"
	"github.com/asknova/go-assist-backend/internal/erp"
	"github.com/asknova/go-assist-backend/internal/repo"
)

// ERPService exposes integration descriptors and their execution.
type ERPService struct {
	DB      *gorm.DB
	Gateway ERPExecutor
}

// ListVisible returns the active integrations the given role may execute.
func (s *ERPService) ListVisible(ctx context.Context, role string) ([]domain.ERPIntegration, error) {
	all, err := repo.ListActiveIntegrations(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ERPIntegration, 0, len(all))
	for _, e := range all {
		if e.AllowsRole(role) {
			out = append(out, e)
		}
	}
	return out, nil
}

// Execute runs one integration descriptor by id with the caller's role and
// parameters. The role gate is checked here before the gateway runs, so an
// unauthorized caller gets ErrForbiddenIntegration rather than a shaped
// refusal result.
func (s *ERPService) Execute(ctx context.Context, role, id string, params map[string]any) (erp.Result, error) {
	integ, err := repo.GetIntegration(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return erp.Result{}, ErrIntegrationNotFound
		}
		return erp.Result{}, err
	}
	if !integ.Active {
		return erp.Result{}, ErrIntegrationNotFound
	}
	if !integ.AllowsRole(role) {
		return erp.Result{}, ErrForbiddenIntegration
	}
	return s.Gateway.Execute(ctx, integ, role, params), nil
}

// Register inserts a new descriptor (admin surface).
func (s *ERPService) Register(ctx context.Context, e *domain.ERPIntegration) (*domain.ERPIntegration, error) {
	if e.Module == "" || e.Name == "" || e.Endpoint == "" {
		return nil, ErrInvalidIntegration
	}
	return repo.CreateIntegration(ctx, s.DB, e)
}

// Update applies a partial update to a descriptor. Only module, name,
// description, endpoint, method, access_roles, and active are settable.
func (s *ERPService) Update(ctx context.Context, id string, updates map[string]any) error {
	allowed := map[string]bool{
		"module": true, "name": true, "description": true,
		"endpoint": true, "method": true, "access_roles": true, "active": true,
	}
	clean := make(map[string]any, len(updates))
	for k, v := range updates {
		if allowed[k] {
			clean[k] = v
		}
	}
	if len(clean) == 0 {
		return ErrInvalidIntegration
	}
	err := repo.UpdateIntegration(ctx, s.DB, id, clean)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrIntegrationNotFound
	}
	return err
}

// Deactivate soft-removes a descriptor from lookup and listings.
func (s *ERPService) Deactivate(ctx context.Context, id string) error {
	err := repo.DeactivateIntegration(ctx, s.DB, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrIntegrationNotFound
	}
	return err
}
