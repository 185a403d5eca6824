package evaluation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"loan-origination/internal/domain/apperr"
	"loan-origination/internal/domain/loan"
)

var ErrInvalidInput = fmt.Errorf("%w: evaluation input out of domain", apperr.ErrValidation)

// Applicant is the financial profile a score is computed from.
type Applicant struct {
	Income      decimal.Decimal
	CreditScore int
}

// Terms are the requested loan terms.
type Terms struct {
	Amount       decimal.Decimal
	TenureMonths int
}

type Result struct {
	EligibilityScore decimal.Decimal
	InterestRate     decimal.Decimal
	Status           loan.Status
	MonthlyEMI       decimal.NullDecimal
}

// Evaluator is stateless after construction; safe for concurrent use.
type Evaluator struct {
	cfg Config
}

func NewEvaluator(cfg Config) (*Evaluator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Evaluator{cfg: cfg.clone()}, nil
}

// Config returns a copy of the table the evaluator was built with.
func (e *Evaluator) Config() Config { return e.cfg.clone() }

func (e *Evaluator) Evaluate(a Applicant, t Terms) (Result, error) {
	if a.Income.IsNegative() {
		return Result{}, fmt.Errorf("%w: income %s is negative", ErrInvalidInput, a.Income)
	}
	if a.CreditScore < e.cfg.MinCreditScore || a.CreditScore > e.cfg.MaxCreditScore {
		return Result{}, fmt.Errorf("%w: credit score %d outside [%d,%d]", ErrInvalidInput, a.CreditScore, e.cfg.MinCreditScore, e.cfg.MaxCreditScore)
	}

	raw := e.Score(a)
	rate := e.RateFor(raw)
	status := loan.StatusRejected
	if raw.GreaterThanOrEqual(e.cfg.ApprovalThreshold) {
		status = loan.StatusUnderReview
	}

	// Decisions use the unrounded score; only the stored value is rounded.
	return Result{
		EligibilityScore: raw.Round(2),
		InterestRate:     rate,
		Status:           status,
		MonthlyEMI:       CalculateEMI(t.Amount, decimal.NewNullDecimal(rate), t.TenureMonths),
	}, nil
}

// Score is the unrounded weighted sum of normalized credit and income.
// Inputs are assumed to be inside the configured domain.
func (e *Evaluator) Score(a Applicant) decimal.Decimal {
	creditNorm := normalize(
		decimal.NewFromInt(int64(a.CreditScore)),
		decimal.NewFromInt(int64(e.cfg.MinCreditScore)),
		decimal.NewFromInt(int64(e.cfg.MaxCreditScore)),
	)

	incomeCap := decimal.Min(a.Income.Mul(decimal.NewFromInt(2)), e.cfg.MaxIncome)
	incomeNorm := normalize(a.Income, decimal.Zero, incomeCap)
	if incomeNorm.GreaterThan(one) {
		incomeNorm = one
	}

	return e.cfg.CreditWeight.Mul(creditNorm).
		Add(e.cfg.IncomeWeight.Mul(incomeNorm))
}

// RateFor returns the first tier rate whose minimum the score meets.
func (e *Evaluator) RateFor(score decimal.Decimal) decimal.Decimal {
	for _, t := range e.cfg.Tiers {
		if score.GreaterThanOrEqual(t.MinScore) {
			return t.Rate
		}
	}
	return e.cfg.FallbackRate
}

var one = decimal.NewFromInt(1)

// normalize maps v onto [0,1] relative to [lo,hi]; equal bounds yield 0.
func normalize(v, lo, hi decimal.Decimal) decimal.Decimal {
	if hi.Equal(lo) {
		return decimal.Zero
	}
	return v.Sub(lo).Div(hi.Sub(lo))
}

// Apply evaluates a and records the result on the application shell.
func (e *Evaluator) Apply(app *loan.Application, a Applicant) (Result, error) {
	res, err := e.Evaluate(a, Terms{Amount: app.AmountRequested, TenureMonths: app.TenureMonths})
	if err != nil {
		return Result{}, err
	}
	if err := app.ApplyEvaluation(res.EligibilityScore, res.InterestRate, res.Status, res.MonthlyEMI); err != nil {
		return Result{}, err
	}
	return res, nil
}
