package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"loan-origination/internal/domain/officer"
)

type OfficerRepository struct{ db *gorm.DB }

func NewOfficerRepository(db *gorm.DB) *OfficerRepository { return &OfficerRepository{db: db} }

func (r *OfficerRepository) Create(ctx context.Context, p *officer.Profile) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *OfficerRepository) GetByUserID(ctx context.Context, userID string) (*officer.Profile, error) {
	var out officer.Profile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&out).Error; err != nil {
		return nil, notFound(err, officer.ErrNotFound)
	}
	return &out, nil
}

func (r *OfficerRepository) GetByUserIDForUpdate(ctx context.Context, userID string) (*officer.Profile, error) {
	var out officer.Profile
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&out).Error
	if err != nil {
		return nil, notFound(err, officer.ErrNotFound)
	}
	return &out, nil
}

// IncrementStats adds d in SQL so concurrent writers cannot lose updates.
func (r *OfficerRepository) IncrementStats(ctx context.Context, id uint64, d officer.Delta) error {
	res := r.db.WithContext(ctx).
		Model(&officer.Profile{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"total_reviewed": gorm.Expr("total_reviewed + ?", d.Reviewed),
			"total_approved": gorm.Expr("total_approved + ?", d.Approved),
			"total_rejected": gorm.Expr("total_rejected + ?", d.Rejected),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return officer.ErrNotFound
	}
	return nil
}
