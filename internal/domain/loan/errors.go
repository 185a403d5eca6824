package loan

import (
	"fmt"
	"strings"

	"loan-origination/internal/domain/apperr"
)

var (
	ErrNotFound          = fmt.Errorf("loan application %w", apperr.ErrNotFound)
	ErrInvalidTransition = fmt.Errorf("loan application: %w", apperr.ErrInvalidTransition)

	ErrInvalidStatus        = fmt.Errorf("%w: invalid loan status", apperr.ErrValidation)
	ErrInvalidLoanType      = fmt.Errorf("%w: invalid loan type", apperr.ErrValidation)
	ErrAmountOutOfRange     = fmt.Errorf("%w: amount_requested must be between 10000 and 50000000", apperr.ErrValidation)
	ErrTenureOutOfRange     = fmt.Errorf("%w: tenure_months must be between 6 and 360", apperr.ErrValidation)
	ErrPurposeTooLong       = fmt.Errorf("%w: purpose cannot exceed 500 characters", apperr.ErrValidation)
	ErrNotesTooLong         = fmt.Errorf("%w: review notes cannot exceed 1000 characters", apperr.ErrValidation)
	ErrMissingCustomer      = fmt.Errorf("%w: customer is required", apperr.ErrValidation)
	ErrMissingOfficer       = fmt.Errorf("%w: officer is required", apperr.ErrValidation)
	ErrNotReviewOutcome     = fmt.Errorf("%w: status must be one of APPROVED, REJECTED, UNDER_REVIEW", apperr.ErrValidation)
	ErrAlreadyEvaluated     = fmt.Errorf("%w: loan application already evaluated", apperr.ErrInvalidTransition)
	ErrEvaluationIncomplete = fmt.Errorf("%w: evaluation result is incomplete", apperr.ErrValidation)
)

// TransitionError reports a review attempted on a terminal application.
type TransitionError struct {
	From Status
	To   Status
}

func (e *TransitionError) Error() string {
	return "loan application has already been " + strings.ToLower(string(e.From))
}

func (e *TransitionError) Unwrap() error { return ErrInvalidTransition }
