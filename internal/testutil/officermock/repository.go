package officermock

import (
	"context"

	"loan-origination/internal/domain/officer"
)

var _ officer.Repository = (*Repo)(nil)

// Repo is a function-backed mock that satisfies officer.Repository.
type Repo struct {
	CreateFn               func(ctx context.Context, p *officer.Profile) error
	GetByUserIDFn          func(ctx context.Context, userID string) (*officer.Profile, error)
	GetByUserIDForUpdateFn func(ctx context.Context, userID string) (*officer.Profile, error)
	IncrementStatsFn       func(ctx context.Context, id uint64, d officer.Delta) error
}

func (m *Repo) Create(ctx context.Context, p *officer.Profile) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *Repo) GetByUserID(ctx context.Context, userID string) (*officer.Profile, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, officer.ErrNotFound
}

func (m *Repo) GetByUserIDForUpdate(ctx context.Context, userID string) (*officer.Profile, error) {
	if m.GetByUserIDForUpdateFn != nil {
		return m.GetByUserIDForUpdateFn(ctx, userID)
	}
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	return nil, officer.ErrNotFound
}

func (m *Repo) IncrementStats(ctx context.Context, id uint64, d officer.Delta) error {
	if m.IncrementStatsFn != nil {
		return m.IncrementStatsFn(ctx, id, d)
	}
	return nil
}
