package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	loanDomain "loan-origination/internal/domain/loan"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, a *loanDomain.Application) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *LoanRepository) Save(ctx context.Context, a *loanDomain.Application) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *LoanRepository) GetByApplicationID(ctx context.Context, applicationID string) (*loanDomain.Application, error) {
	var out loanDomain.Application
	err := r.db.WithContext(ctx).Where("application_id = ?", applicationID).First(&out).Error
	if err != nil {
		return nil, notFound(err, loanDomain.ErrNotFound)
	}
	return &out, nil
}

// GetByApplicationIDForUpdate must run inside a transaction; the row stays
// locked until it ends.
func (r *LoanRepository) GetByApplicationIDForUpdate(ctx context.Context, applicationID string) (*loanDomain.Application, error) {
	var out loanDomain.Application
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("application_id = ?", applicationID).
		First(&out).Error
	if err != nil {
		return nil, notFound(err, loanDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *LoanRepository) List(ctx context.Context, f loanDomain.ListFilter) ([]loanDomain.Application, int64, error) {
	f = f.Normalize()

	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	out := make([]loanDomain.Application, 0, f.Limit)
	err := r.filtered(ctx, f).
		Order(clause.OrderByColumn{Column: clause.Column{Name: f.Sort}, Desc: f.Desc}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: f.Desc}).
		Offset(f.Offset()).
		Limit(f.Limit).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *LoanRepository) filtered(ctx context.Context, f loanDomain.ListFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&loanDomain.Application{})
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.OfficerID != nil {
		q = q.Where("officer_id = ?", *f.OfficerID)
	}
	if f.MinAmount.Valid {
		q = q.Where("amount_requested >= ?", f.MinAmount.Decimal)
	}
	if f.MaxAmount.Valid {
		q = q.Where("amount_requested <= ?", f.MaxAmount.Decimal)
	}
	return q
}

func (r *LoanRepository) Count(ctx context.Context, statuses ...loanDomain.Status) (int64, error) {
	q := r.db.WithContext(ctx).Model(&loanDomain.Application{})
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var n int64
	return n, q.Count(&n).Error
}

func (r *LoanRepository) StatsByCustomer(ctx context.Context, customerID uint64) ([]loanDomain.StatusStat, error) {
	return r.stats(ctx, "customer_id = ?", customerID)
}

func (r *LoanRepository) StatsByOfficer(ctx context.Context, officerID uint64) ([]loanDomain.StatusStat, error) {
	return r.stats(ctx, "officer_id = ?", officerID)
}

func (r *LoanRepository) stats(ctx context.Context, where string, arg any) ([]loanDomain.StatusStat, error) {
	out := []loanDomain.StatusStat{}
	err := r.db.WithContext(ctx).
		Model(&loanDomain.Application{}).
		Select("status, COUNT(*) AS count, COALESCE(SUM(amount_requested), 0) AS total_amount").
		Where(where, arg).
		Group("status").
		Order("status").
		Scan(&out).Error
	return out, err
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
