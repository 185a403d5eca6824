package uow

import (
	"context"

	"loan-origination/internal/domain/customer"
	"loan-origination/internal/domain/loan"
	"loan-origination/internal/domain/officer"
)

// Repos are bound to the surrounding transaction.
type Repos struct {
	Loans     loan.Repository
	Customers customer.Repository
	Officers  officer.Repository
}

type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinApplicationTx locks the application row before fn runs.
	// Callers that also lock an officer row do so after, never before.
	WithinApplicationTx(ctx context.Context, applicationID string, fn func(r Repos, a *loan.Application) error) error
}
