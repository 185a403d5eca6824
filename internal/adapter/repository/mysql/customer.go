package mysql

import (
	"context"

	"gorm.io/gorm"

	"loan-origination/internal/domain/customer"
)

type CustomerRepository struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) *CustomerRepository { return &CustomerRepository{db: db} }

func (r *CustomerRepository) Create(ctx context.Context, p *customer.Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *CustomerRepository) GetByUserID(ctx context.Context, userID string) (*customer.Profile, error) {
	var out customer.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out).Error; err != nil {
		return nil, notFound(err, customer.ErrNotFound)
	}
	return &out, nil
}
