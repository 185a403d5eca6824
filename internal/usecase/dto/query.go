package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"loan-origination/internal/domain/loan"
)

// ListQuery carries list parameters as they arrive from the transport.
type ListQuery struct {
	Status    string
	MinAmount decimal.NullDecimal
	MaxAmount decimal.NullDecimal
	Page      int
	Limit     int
	SortBy    string
	Order     string
}

// Filter parses the status token and resolves ordering; anything but "asc"
// sorts descending.
func (q ListQuery) Filter() (loan.ListFilter, error) {
	f := loan.ListFilter{
		MinAmount: q.MinAmount,
		MaxAmount: q.MaxAmount,
		Page:      q.Page,
		Limit:     q.Limit,
		Sort:      q.SortBy,
		Desc:      !strings.EqualFold(strings.TrimSpace(q.Order), "asc"),
	}
	if strings.TrimSpace(q.Status) != "" {
		s, err := loan.ParseStatus(q.Status)
		if err != nil {
			return loan.ListFilter{}, err
		}
		f.Statuses = []loan.Status{s}
	}
	return f.Normalize(), nil
}
