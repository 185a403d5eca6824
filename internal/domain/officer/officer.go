package officer

import (
	"context"
	"fmt"
	"time"

	"loan-origination/internal/domain/apperr"
	"loan-origination/internal/domain/loan"
)

var ErrNotFound = fmt.Errorf("officer profile %w", apperr.ErrNotFound)

type Profile struct {
	ID            uint64    `gorm:"primaryKey;column:id"`
	UserID        string    `gorm:"size:64;not null;uniqueIndex:ux_officer_profiles_user;column:user_id"`
	FullName      string    `gorm:"size:128;column:full_name"`
	Branch        string    `gorm:"size:64;column:branch"`
	TotalReviewed int64     `gorm:"not null;default:0;column:total_reviewed"`
	TotalApproved int64     `gorm:"not null;default:0;column:total_approved"`
	TotalRejected int64     `gorm:"not null;default:0;column:total_rejected"`
	CreatedAt     time.Time `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime;column:updated_at"`
}

func (Profile) TableName() string { return "officer_profiles" }

// Delta is a counter increment. Counters never decrease.
type Delta struct {
	Reviewed int64
	Approved int64
	Rejected int64
}

// DeltaFor returns the increment a review ending in s produces.
func DeltaFor(s loan.Status) Delta {
	d := Delta{Reviewed: 1}
	switch s {
	case loan.StatusApproved:
		d.Approved = 1
	case loan.StatusRejected:
		d.Rejected = 1
	}
	return d
}

// Apply mirrors an increment already written to storage.
func (p *Profile) Apply(d Delta) {
	p.TotalReviewed += d.Reviewed
	p.TotalApproved += d.Approved
	p.TotalRejected += d.Rejected
}

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
	GetByUserIDForUpdate(ctx context.Context, userID string) (*Profile, error)
	IncrementStats(ctx context.Context, id uint64, d Delta) error
}
