package review

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"loan-origination/internal/domain/apperr"
	"loan-origination/internal/domain/auth"
	"loan-origination/internal/domain/loan"
	"loan-origination/internal/domain/officer"
	"loan-origination/internal/domain/uow"
	"loan-origination/internal/infrastructure/metrics"
	"loan-origination/internal/usecase/dto"
)

const recentReviews = 5

type Usecase struct {
	uow      uow.UnitOfWork
	loans    loan.Repository
	officers officer.Repository
	metrics  metrics.Recorder
	log      logrus.FieldLogger
	now      func() time.Time
}

type Option func(*Usecase)

func WithMetrics(m metrics.Recorder) Option  { return func(u *Usecase) { u.metrics = m } }
func WithLogger(l logrus.FieldLogger) Option { return func(u *Usecase) { u.log = l } }
func WithClock(now func() time.Time) Option  { return func(u *Usecase) { u.now = now } }

func NewUsecase(u uow.UnitOfWork, loans loan.Repository, officers officer.Repository, opts ...Option) *Usecase {
	uc := &Usecase{
		uow:      u,
		loans:    loans,
		officers: officers,
		metrics:  metrics.Nop{},
		log:      logrus.StandardLogger(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(uc)
	}
	return uc
}

type ReviewInput struct {
	ApplicationID string
	Status        string
	Notes         string
}

// Review applies an officer decision. The application row is locked for the
// whole transaction, so of two concurrent reviews the second one sees the
// first one's terminal status and fails. Officer counters move in the same
// transaction.
func (u *Usecase) Review(ctx context.Context, caller auth.Caller, in ReviewInput) (*dto.Application, error) {
	if err := caller.RequireOfficer(); err != nil {
		return nil, err
	}
	to, err := loan.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	var out dto.Application
	var off *officer.Profile
	err = u.uow.WithinApplicationTx(ctx, in.ApplicationID, func(r uow.Repos, a *loan.Application) error {
		if a.Status.IsTerminal() {
			return &loan.TransitionError{From: a.Status, To: to}
		}
		var err error
		if off, err = r.Officers.GetByUserIDForUpdate(ctx, caller.UserID); err != nil {
			return err
		}
		if err := a.Review(to, off.ID, in.Notes, u.now()); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, a); err != nil {
			return err
		}
		delta := officer.DeltaFor(to)
		if err := r.Officers.IncrementStats(ctx, off.ID, delta); err != nil {
			return err
		}
		off.Apply(delta)
		out = dto.FromApplication(a)
		return nil
	})
	if err != nil {
		entry := u.log.WithError(err).WithFields(logrus.Fields{
			"application_id": in.ApplicationID,
			"officer":        caller.UserID,
			"status":         to,
		})
		if apperr.IsClassified(err) {
			entry.Info("loan review rejected")
		} else {
			entry.Warn("loan review failed")
		}
		return nil, err
	}

	u.metrics.Reviewed(to)
	u.log.WithFields(logrus.Fields{
		"application_id": out.ID,
		"officer":        caller.UserID,
		"status":         out.Status,
		"total_reviewed": off.TotalReviewed,
	}).Info("loan application reviewed")
	return &out, nil
}

// ListPending returns applications awaiting a decision.
func (u *Usecase) ListPending(ctx context.Context, caller auth.Caller, q dto.ListQuery) (*dto.ApplicationPage, error) {
	if err := caller.RequireOfficer(); err != nil {
		return nil, err
	}
	q.Status = ""
	f, err := q.Filter()
	if err != nil {
		return nil, err
	}
	f.Statuses = []loan.Status{loan.StatusPending, loan.StatusUnderReview}
	return u.page(ctx, f)
}

// ListAll filters across every application.
func (u *Usecase) ListAll(ctx context.Context, caller auth.Caller, q dto.ListQuery) (*dto.ApplicationPage, error) {
	if err := caller.RequireOfficer(); err != nil {
		return nil, err
	}
	f, err := q.Filter()
	if err != nil {
		return nil, err
	}
	return u.page(ctx, f)
}

// ListMyReviews returns the caller's reviews, latest decision first.
func (u *Usecase) ListMyReviews(ctx context.Context, caller auth.Caller, q dto.ListQuery) (*dto.ApplicationPage, error) {
	off, err := u.caller(ctx, caller)
	if err != nil {
		return nil, err
	}
	q.SortBy, q.Order = "reviewedAt", "desc"
	f, err := q.Filter()
	if err != nil {
		return nil, err
	}
	f.OfficerID = &off.ID
	return u.page(ctx, f)
}

func (u *Usecase) OfficerStats(ctx context.Context, officerID uint64) ([]dto.StatusStat, error) {
	stats, err := u.loans.StatsByOfficer(ctx, officerID)
	if err != nil {
		return nil, err
	}
	return dto.FromStats(stats), nil
}

func (u *Usecase) Dashboard(ctx context.Context, caller auth.Caller) (*dto.Dashboard, error) {
	off, err := u.caller(ctx, caller)
	if err != nil {
		return nil, err
	}
	pending, err := u.loans.Count(ctx, loan.StatusPending, loan.StatusUnderReview)
	if err != nil {
		return nil, err
	}
	total, err := u.loans.Count(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := u.OfficerStats(ctx, off.ID)
	if err != nil {
		return nil, err
	}
	recent, _, err := u.loans.List(ctx, loan.ListFilter{
		OfficerID: &off.ID,
		Sort:      "reviewedAt",
		Desc:      true,
		Page:      1,
		Limit:     recentReviews,
	})
	if err != nil {
		return nil, err
	}

	return &dto.Dashboard{
		Officer:       dto.FromOfficer(off),
		System:        dto.SystemStats{TotalPending: pending, TotalLoans: total},
		LoanStats:     stats,
		RecentReviews: dto.FromApplications(recent),
	}, nil
}

func (u *Usecase) caller(ctx context.Context, caller auth.Caller) (*officer.Profile, error) {
	if err := caller.RequireOfficer(); err != nil {
		return nil, err
	}
	return u.officers.GetByUserID(ctx, caller.UserID)
}

func (u *Usecase) page(ctx context.Context, f loan.ListFilter) (*dto.ApplicationPage, error) {
	items, total, err := u.loans.List(ctx, f)
	if err != nil {
		return nil, err
	}
	f = f.Normalize()
	return &dto.ApplicationPage{
		Items:      dto.FromApplications(items),
		Pagination: dto.NewPagination(total, f.Page, f.Limit),
	}, nil
}
