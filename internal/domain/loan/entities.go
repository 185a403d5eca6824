package loan

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending     Status = "PENDING"
	StatusUnderReview Status = "UNDER_REVIEW"
	StatusApproved    Status = "APPROVED"
	StatusRejected    Status = "REJECTED"
)

// ParseStatus normalizes case and whitespace; unknown tokens are a validation error.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.ToUpper(strings.TrimSpace(raw))); s {
	case StatusPending, StatusUnderReview, StatusApproved, StatusRejected:
		return s, nil
	}
	return "", fmt.Errorf("%w (got %q)", ErrInvalidStatus, raw)
}

// IsTerminal reports whether no further transition is allowed.
func (s Status) IsTerminal() bool { return s == StatusApproved || s == StatusRejected }

// IsReviewOutcome reports whether an officer may set s through a review.
func (s Status) IsReviewOutcome() bool {
	return s == StatusApproved || s == StatusRejected || s == StatusUnderReview
}

type LoanType string

const (
	TypePersonal  LoanType = "PERSONAL"
	TypeHome      LoanType = "HOME"
	TypeEducation LoanType = "EDUCATION"
	TypeBusiness  LoanType = "BUSINESS"
	TypeVehicle   LoanType = "VEHICLE"
)

// ParseLoanType normalizes case; an empty value defaults to PERSONAL.
func ParseLoanType(raw string) (LoanType, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return TypePersonal, nil
	}
	switch t := LoanType(strings.ToUpper(raw)); t {
	case TypePersonal, TypeHome, TypeEducation, TypeBusiness, TypeVehicle:
		return t, nil
	}
	return "", fmt.Errorf("%w (got %q)", ErrInvalidLoanType, raw)
}

const (
	MinTenureMonths    = 6
	MaxTenureMonths    = 360
	MaxPurposeLength   = 500
	MaxReviewNotesSize = 1000
)

var (
	MinAmountRequested = decimal.NewFromInt(10_000)
	MaxAmountRequested = decimal.NewFromInt(50_000_000)
)

// Application is a customer's loan application. The scoring columns stay NULL
// only on an in-memory shell; every persisted row has them set.
type Application struct {
	ID               uint64              `gorm:"primaryKey;column:id" json:"-"`
	ApplicationID    string              `gorm:"size:32;not null;uniqueIndex:ux_loan_applications_application_id;column:application_id" json:"id"`
	CustomerID       uint64              `gorm:"not null;index:idx_loan_applications_customer;column:customer_id" json:"customer_id"`
	OfficerID        *uint64             `gorm:"index:idx_loan_applications_officer;column:officer_id" json:"officer_id"`
	AmountRequested  decimal.Decimal     `gorm:"type:decimal(14,2);not null;column:amount_requested" json:"amount_requested"`
	TenureMonths     int                 `gorm:"not null;column:tenure_months" json:"tenure_months"`
	LoanType         LoanType            `gorm:"size:16;not null;default:'PERSONAL';column:loan_type" json:"loan_type"`
	Purpose          string              `gorm:"size:500;column:purpose" json:"purpose"`
	Status           Status              `gorm:"size:16;not null;default:'PENDING';index:idx_loan_applications_status;column:status" json:"status"`
	EligibilityScore decimal.NullDecimal `gorm:"type:decimal(3,2);column:eligibility_score" json:"eligibility_score"`
	InterestRate     decimal.NullDecimal `gorm:"type:decimal(5,2);column:interest_rate" json:"interest_rate"`
	MonthlyEMI       decimal.NullDecimal `gorm:"type:decimal(14,2);column:monthly_emi" json:"monthly_emi"`
	ReviewNotes      string              `gorm:"size:1000;column:review_notes" json:"review_notes"`
	ReviewedAt       *time.Time          `gorm:"column:reviewed_at" json:"reviewed_at"`
	CreatedAt        time.Time           `gorm:"autoCreateTime;index:idx_loan_applications_created;column:created_at" json:"created_at"`
	UpdatedAt        time.Time           `gorm:"autoUpdateTime;column:updated_at" json:"updated_at"`
}

func (Application) TableName() string { return "loan_applications" }

// StatusStat is one row of the per-status aggregation.
type StatusStat struct {
	Status      Status          `gorm:"column:status"`
	Count       int64           `gorm:"column:count"`
	TotalAmount decimal.Decimal `gorm:"column:total_amount"`
}

// IsEvaluated reports whether the scoring columns have been filled.
func (a *Application) IsEvaluated() bool {
	return a.EligibilityScore.Valid && a.InterestRate.Valid
}
