package loan

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"loan-origination/pkg/id"
)

// NewApplication validates the requested terms and returns a PENDING shell.
// The shell must be evaluated before it is persisted.
func NewApplication(customerID uint64, amount decimal.Decimal, tenureMonths int, loanType LoanType, purpose string, now time.Time) (*Application, error) {
	if customerID == 0 {
		return nil, ErrMissingCustomer
	}
	if amount.LessThan(MinAmountRequested) || amount.GreaterThan(MaxAmountRequested) {
		return nil, ErrAmountOutOfRange
	}
	if tenureMonths < MinTenureMonths || tenureMonths > MaxTenureMonths {
		return nil, ErrTenureOutOfRange
	}
	if loanType == "" {
		loanType = TypePersonal
	}
	if _, err := ParseLoanType(string(loanType)); err != nil {
		return nil, err
	}
	purpose = strings.TrimSpace(purpose)
	if utf8.RuneCountInString(purpose) > MaxPurposeLength {
		return nil, ErrPurposeTooLong
	}

	now = now.UTC()
	return &Application{
		ApplicationID:   id.NewID32(),
		CustomerID:      customerID,
		AmountRequested: amount,
		TenureMonths:    tenureMonths,
		LoanType:        loanType,
		Purpose:         purpose,
		Status:          StatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// ApplyEvaluation records the evaluator's output. It succeeds once, on a
// PENDING application that has not been scored yet.
func (a *Application) ApplyEvaluation(score, rate decimal.Decimal, status Status, emi decimal.NullDecimal) error {
	if a.Status != StatusPending || a.IsEvaluated() {
		return ErrAlreadyEvaluated
	}
	if status != StatusUnderReview && status != StatusRejected {
		return ErrEvaluationIncomplete
	}
	a.EligibilityScore = decimal.NewNullDecimal(score)
	a.InterestRate = decimal.NewNullDecimal(rate)
	a.MonthlyEMI = emi
	a.Status = status
	return nil
}

// Review moves a non-terminal application to the officer's decision.
// The terminal check runs first so a finished application reports its
// current status whatever the requested one is.
func (a *Application) Review(to Status, officerID uint64, notes string, now time.Time) error {
	if a.Status.IsTerminal() {
		return &TransitionError{From: a.Status, To: to}
	}
	if !to.IsReviewOutcome() {
		return ErrNotReviewOutcome
	}
	if officerID == 0 {
		return ErrMissingOfficer
	}
	notes = strings.TrimSpace(notes)
	if utf8.RuneCountInString(notes) > MaxReviewNotesSize {
		return ErrNotesTooLong
	}

	reviewed := now.UTC()
	a.Status = to
	a.OfficerID = &officerID
	a.ReviewNotes = notes
	a.ReviewedAt = &reviewed
	return nil
}
