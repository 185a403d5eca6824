package loanmock

import (
	"context"

	domain "loan-origination/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies domain.Repository.
// Unset lookups return context.Canceled; unset writes succeed.
type Repo struct {
	CreateFn                      func(ctx context.Context, a *domain.Application) error
	GetByApplicationIDFn          func(ctx context.Context, applicationID string) (*domain.Application, error)
	GetByApplicationIDForUpdateFn func(ctx context.Context, applicationID string) (*domain.Application, error)
	SaveFn                        func(ctx context.Context, a *domain.Application) error
	ListFn                        func(ctx context.Context, f domain.ListFilter) ([]domain.Application, int64, error)
	CountFn                       func(ctx context.Context, statuses ...domain.Status) (int64, error)
	StatsByCustomerFn             func(ctx context.Context, customerID uint64) ([]domain.StatusStat, error)
	StatsByOfficerFn              func(ctx context.Context, officerID uint64) ([]domain.StatusStat, error)
}

func (m *Repo) Create(ctx context.Context, a *domain.Application) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, a)
	}
	return nil
}

func (m *Repo) GetByApplicationID(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDFn != nil {
		return m.GetByApplicationIDFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*domain.Application, error) {
	if m.GetByApplicationIDForUpdateFn != nil {
		return m.GetByApplicationIDForUpdateFn(ctx, applicationID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, a *domain.Application) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, a)
	}
	return nil
}

func (m *Repo) List(ctx context.Context, f domain.ListFilter) ([]domain.Application, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, f)
	}
	return nil, 0, context.Canceled
}

func (m *Repo) Count(ctx context.Context, statuses ...domain.Status) (int64, error) {
	if m.CountFn != nil {
		return m.CountFn(ctx, statuses...)
	}
	return 0, context.Canceled
}

func (m *Repo) StatsByCustomer(ctx context.Context, customerID uint64) ([]domain.StatusStat, error) {
	if m.StatsByCustomerFn != nil {
		return m.StatsByCustomerFn(ctx, customerID)
	}
	return nil, context.Canceled
}

func (m *Repo) StatsByOfficer(ctx context.Context, officerID uint64) ([]domain.StatusStat, error) {
	if m.StatsByOfficerFn != nil {
		return m.StatsByOfficerFn(ctx, officerID)
	}
	return nil, context.Canceled
}
