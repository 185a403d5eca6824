package loan

import (
	"context"

	"github.com/shopspring/decimal"
)

// Sortable columns accepted by ListFilter.Sort.
var sortColumns = map[string]string{
	"createdAt":        "created_at",
	"amountRequested":  "amount_requested",
	"tenureMonths":     "tenure_months",
	"eligibilityScore": "eligibility_score",
	"interestRate":     "interest_rate",
	"reviewedAt":       "reviewed_at",
}

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

type ListFilter struct {
	Statuses   []Status
	CustomerID *uint64
	OfficerID  *uint64
	MinAmount  decimal.NullDecimal
	MaxAmount  decimal.NullDecimal
	Sort       string
	Desc       bool
	Page       int
	Limit      int
}

// Normalize clamps paging and resolves Sort to a column name.
// Unknown sort keys fall back to created_at.
func (f ListFilter) Normalize() ListFilter {
	if f.Page < 1 {
		f.Page = DefaultPage
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
	if col, ok := sortColumns[f.Sort]; ok {
		f.Sort = col
	} else if !isColumn(f.Sort) {
		f.Sort = "created_at"
	}
	return f
}

func (f ListFilter) Offset() int { return (f.Page - 1) * f.Limit }

func isColumn(s string) bool {
	for _, c := range sortColumns {
		if c == s {
			return true
		}
	}
	return false
}

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByApplicationID(ctx context.Context, applicationID string) (*Application, error)
	GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*Application, error)
	Save(ctx context.Context, a *Application) error
	List(ctx context.Context, f ListFilter) ([]Application, int64, error)
	Count(ctx context.Context, statuses ...Status) (int64, error)
	StatsByCustomer(ctx context.Context, customerID uint64) ([]StatusStat, error)
	StatsByOfficer(ctx context.Context, officerID uint64) ([]StatusStat, error)
}
