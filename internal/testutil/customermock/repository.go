package customermock

import (
	"context"

	"loan-origination/internal/domain/customer"
)

var _ customer.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies customer.Repository.
type Repo struct {
	CreateFn      func(ctx context.Context, p *customer.Profile) error
	GetByUserIDFn func(ctx context.Context, userID string) (*customer.Profile, error)
}

func (m *Repo) Create(ctx context.Context, p *customer.Profile) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*customer.Profile, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, customer.ErrNotFound
}

// Static serves fixed profiles keyed by user id.
func Static(profiles ...*customer.Profile) *Repo {
	byUser := make(map[string]*customer.Profile, len(profiles))
	for _, p := range profiles {
		byUser[p.UserID] = p
	}
	return &Repo{
		GetByUserIDFn: func(_ context.Context, userID string) (*customer.Profile, error) {
			if p, ok := byUser[userID]; ok {
				return p, nil
			}
			return nil, customer.ErrNotFound
		},
	}
}
