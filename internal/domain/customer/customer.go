package customer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"loan-origination/internal/domain/apperr"
)

const (
	MinCreditScore = 300
	MaxCreditScore = 850
)

type EmploymentStatus string

const (
	Employed     EmploymentStatus = "EMPLOYED"
	SelfEmployed EmploymentStatus = "SELF_EMPLOYED"
	Unemployed   EmploymentStatus = "UNEMPLOYED"
	Retired      EmploymentStatus = "RETIRED"
)

var (
	ErrNotFound          = fmt.Errorf("customer profile %w", apperr.ErrNotFound)
	ErrNegativeIncome    = fmt.Errorf("%w: income cannot be negative", apperr.ErrValidation)
	ErrCreditOutOfRange  = fmt.Errorf("%w: credit score must be between 300 and 850", apperr.ErrValidation)
	ErrMissingUser       = fmt.Errorf("%w: user id is required", apperr.ErrValidation)
	ErrInvalidEmployment = fmt.Errorf("%w: invalid employment status", apperr.ErrValidation)
)

// Profile is the financial profile evaluation reads. Owned by customer
// management; this service never mutates it after creation.
type Profile struct {
	ID               uint64           `gorm:"primaryKey;column:id"`
	UserID           string           `gorm:"size:64;not null;uniqueIndex:ux_customer_profiles_user;column:user_id"`
	FullName         string           `gorm:"size:128;column:full_name"`
	Income           decimal.Decimal  `gorm:"type:decimal(14,2);not null;column:income"`
	CreditScore      int              `gorm:"not null;column:credit_score"`
	EmploymentStatus EmploymentStatus `gorm:"size:16;column:employment_status"`
	CreatedAt        time.Time        `gorm:"autoCreateTime;column:created_at"`
	UpdatedAt        time.Time        `gorm:"autoUpdateTime;column:updated_at"`
}

func (Profile) TableName() string { return "customer_profiles" }

func ParseEmploymentStatus(raw string) (EmploymentStatus, error) {
	switch e := EmploymentStatus(strings.ToUpper(strings.TrimSpace(raw))); e {
	case Employed, SelfEmployed, Unemployed, Retired:
		return e, nil
	case "":
		return "", nil
	}
	return "", fmt.Errorf("%w (got %q)", ErrInvalidEmployment, raw)
}

// Validate checks the fields evaluation depends on.
func (p *Profile) Validate() error {
	if strings.TrimSpace(p.UserID) == "" {
		return ErrMissingUser
	}
	if p.Income.IsNegative() {
		return ErrNegativeIncome
	}
	if p.CreditScore < MinCreditScore || p.CreditScore > MaxCreditScore {
		return ErrCreditOutOfRange
	}
	if _, err := ParseEmploymentStatus(string(p.EmploymentStatus)); err != nil {
		return err
	}
	return nil
}

type Repository interface {
	Create(ctx context.Context, p *Profile) error
	GetByUserID(ctx context.Context, userID string) (*Profile, error)
}
