package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"loan-origination/internal/domain/apperr"
	"loan-origination/internal/domain/auth"
	"loan-origination/internal/domain/customer"
	"loan-origination/internal/domain/evaluation"
	"loan-origination/internal/domain/loan"
	"loan-origination/internal/infrastructure/metrics"
	"loan-origination/internal/usecase/dto"
)

var ErrNotOwner = fmt.Errorf("%w: access denied to this loan application", apperr.ErrForbidden)

type Usecase struct {
	loans     loan.Repository
	customers customer.Repository
	evaluator *evaluation.Evaluator
	metrics   metrics.Recorder
	log       logrus.FieldLogger
	now       func() time.Time
}

type Option func(*Usecase)

func WithMetrics(m metrics.Recorder) Option  { return func(u *Usecase) { u.metrics = m } }
func WithLogger(l logrus.FieldLogger) Option { return func(u *Usecase) { u.log = l } }
func WithClock(now func() time.Time) Option  { return func(u *Usecase) { u.now = now } }

func NewUsecase(loans loan.Repository, customers customer.Repository, ev *evaluation.Evaluator, opts ...Option) *Usecase {
	u := &Usecase{
		loans:     loans,
		customers: customers,
		evaluator: ev,
		metrics:   metrics.Nop{},
		log:       logrus.StandardLogger(),
		now:       time.Now,
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

type ApplyInput struct {
	AmountRequested decimal.Decimal
	TenureMonths    int
	LoanType        string
	Purpose         string
}

// Apply creates an application for the calling customer. It is evaluated
// before the insert, so a stored application always carries its score.
func (u *Usecase) Apply(ctx context.Context, caller auth.Caller, in ApplyInput) (*dto.Application, error) {
	if err := caller.RequireCustomer(); err != nil {
		return nil, err
	}
	loanType, err := loan.ParseLoanType(in.LoanType)
	if err != nil {
		return nil, err
	}
	profile, err := u.customers.GetByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	a, err := loan.NewApplication(profile.ID, in.AmountRequested, in.TenureMonths, loanType, in.Purpose, u.now())
	if err != nil {
		return nil, err
	}
	res, err := u.evaluator.Apply(a, applicantOf(profile))
	if err != nil {
		return nil, err
	}
	if err := u.loans.Create(ctx, a); err != nil {
		return nil, err
	}

	u.metrics.Evaluated(res.Status)
	u.log.WithFields(logrus.Fields{
		"application_id":    a.ApplicationID,
		"customer_id":       a.CustomerID,
		"status":            a.Status,
		"eligibility_score": res.EligibilityScore.String(),
		"interest_rate":     res.InterestRate.String(),
	}).Info("loan application submitted")

	out := dto.FromApplication(a)
	return &out, nil
}

type QuoteInput struct {
	AmountRequested decimal.Decimal
	TenureMonths    int
}

// Quote evaluates the caller's profile against the terms without storing anything.
func (u *Usecase) Quote(ctx context.Context, caller auth.Caller, in QuoteInput) (*dto.Quote, error) {
	if err := caller.RequireCustomer(); err != nil {
		return nil, err
	}
	if in.AmountRequested.LessThan(loan.MinAmountRequested) || in.AmountRequested.GreaterThan(loan.MaxAmountRequested) {
		return nil, loan.ErrAmountOutOfRange
	}
	if in.TenureMonths < loan.MinTenureMonths || in.TenureMonths > loan.MaxTenureMonths {
		return nil, loan.ErrTenureOutOfRange
	}
	profile, err := u.customers.GetByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	res, err := u.evaluator.Evaluate(applicantOf(profile), evaluation.Terms{Amount: in.AmountRequested, TenureMonths: in.TenureMonths})
	if err != nil {
		return nil, err
	}
	out := dto.FromResult(res)
	return &out, nil
}

func (u *Usecase) Get(ctx context.Context, caller auth.Caller, applicationID string) (*dto.Application, error) {
	a, err := u.readable(ctx, caller, applicationID)
	if err != nil {
		return nil, err
	}
	out := dto.FromApplication(a)
	return &out, nil
}

func (u *Usecase) GetStatus(ctx context.Context, caller auth.Caller, applicationID string) (*dto.StatusView, error) {
	a, err := u.readable(ctx, caller, applicationID)
	if err != nil {
		return nil, err
	}
	out := dto.StatusViewOf(a)
	return &out, nil
}

// Schedule returns the repayment plan at the application's quoted rate,
// counted from its creation date.
func (u *Usecase) Schedule(ctx context.Context, caller auth.Caller, applicationID string) ([]dto.ScheduleEntry, error) {
	a, err := u.readable(ctx, caller, applicationID)
	if err != nil {
		return nil, err
	}
	return dto.FromSchedule(evaluation.Schedule(a.AmountRequested, a.InterestRate, a.TenureMonths, a.CreatedAt)), nil
}

// ListMine pages through the caller's applications, newest first, with
// per-status totals.
func (u *Usecase) ListMine(ctx context.Context, caller auth.Caller, q dto.ListQuery) (*dto.MyApplications, error) {
	if err := caller.RequireCustomer(); err != nil {
		return nil, err
	}
	profile, err := u.customers.GetByUserID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	q.SortBy, q.Order = "createdAt", "desc"
	f, err := q.Filter()
	if err != nil {
		return nil, err
	}
	f.CustomerID = &profile.ID

	items, total, err := u.loans.List(ctx, f)
	if err != nil {
		return nil, err
	}
	stats, err := u.CustomerStats(ctx, profile.ID)
	if err != nil {
		return nil, err
	}
	return &dto.MyApplications{
		ApplicationPage: dto.ApplicationPage{
			Items:      dto.FromApplications(items),
			Pagination: dto.NewPagination(total, f.Page, f.Limit),
		},
		Stats: stats,
	}, nil
}

func (u *Usecase) CustomerStats(ctx context.Context, customerID uint64) ([]dto.StatusStat, error) {
	stats, err := u.loans.StatsByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return dto.FromStats(stats), nil
}

// readable loads an application the caller may see: any officer, or the
// customer who owns it.
func (u *Usecase) readable(ctx context.Context, caller auth.Caller, applicationID string) (*loan.Application, error) {
	if caller.UserID == "" {
		return nil, auth.ErrMissingCaller
	}
	a, err := u.loans.GetByApplicationID(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if caller.IsOfficer() {
		return a, nil
	}
	if !caller.IsCustomer() {
		return nil, ErrNotOwner
	}
	profile, err := u.customers.GetByUserID(ctx, caller.UserID)
	if errors.Is(err, customer.ErrNotFound) {
		return nil, ErrNotOwner
	}
	if err != nil {
		return nil, err
	}
	if profile.ID != a.CustomerID {
		return nil, ErrNotOwner
	}
	return a, nil
}

func applicantOf(p *customer.Profile) evaluation.Applicant {
	return evaluation.Applicant{Income: p.Income, CreditScore: p.CreditScore}
}
