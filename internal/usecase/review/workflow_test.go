package review

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"loan-origination/internal/adapter/repository/mysql"
	"loan-origination/internal/domain/auth"
	"loan-origination/internal/domain/customer"
	"loan-origination/internal/domain/evaluation"
	"loan-origination/internal/domain/loan"
	"loan-origination/internal/domain/officer"
)

// openDB gives every test its own in-memory database on a single connection,
// so transactions queue on the pool like row locks would on MySQL.
func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&customer.Profile{}, &officer.Profile{}, &loan.Application{}))
	return db
}

func submitted(t *testing.T, db *gorm.DB, creditScore int) *loan.Application {
	t.Helper()
	ev, err := evaluation.NewEvaluator(evaluation.DefaultConfig())
	require.NoError(t, err)

	a, err := loan.NewApplication(1, decimal.NewFromInt(200_000), 24, loan.TypePersonal, "", time.Now())
	require.NoError(t, err)
	_, err = ev.Apply(a, evaluation.Applicant{Income: decimal.NewFromInt(80_000), CreditScore: creditScore})
	require.NoError(t, err)
	require.NoError(t, mysql.NewLoanRepository(db).Create(context.Background(), a))
	return a
}

// tickingClock advances by step on every call.
func tickingClock(start time.Time, step time.Duration) func() time.Time {
	var mu sync.Mutex
	next := start
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now := next
		next = next.Add(step)
		return now
	}
}

func newWorkflow(t *testing.T) (*Usecase, *gorm.DB, *officer.Profile) {
	t.Helper()
	db := openDB(t)
	off := &officer.Profile{UserID: reviewer.UserID, Branch: "Central"}
	require.NoError(t, mysql.NewOfficerRepository(db).Create(context.Background(), off))
	uc := NewUsecase(mysql.NewGormUoW(db), mysql.NewLoanRepository(db), mysql.NewOfficerRepository(db),
		WithClock(tickingClock(fixedNow, time.Minute)))
	return uc, db, off
}

func TestWorkflow_ConcurrentReviewsSingleWinner(t *testing.T) {
	uc, db, _ := newWorkflow(t)
	app := submitted(t, db, 760)
	require.Equal(t, loan.StatusUnderReview, app.Status)

	const callers = 8
	var (
		wg      sync.WaitGroup
		start   = make(chan struct{})
		results = make(chan error, callers)
	)
	for i := 0; i < callers; i++ {
		status := "APPROVED"
		if i%2 == 1 {
			status = "REJECTED"
		}
		wg.Add(1)
		go func(status string) {
			defer wg.Done()
			<-start
			_, err := uc.Review(context.Background(), reviewer, ReviewInput{ApplicationID: app.ApplicationID, Status: status})
			results <- err
		}(status)
	}
	close(start)
	wg.Wait()
	close(results)

	succeeded, transitions := 0, 0
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, loan.ErrInvalidTransition):
			transitions++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, callers-1, transitions)

	got, err := mysql.NewOfficerRepository(db).GetByUserID(context.Background(), reviewer.UserID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TotalReviewed)
	assert.Equal(t, int64(1), got.TotalApproved+got.TotalRejected)
}

func TestWorkflow_OfficerStatsAcrossReviews(t *testing.T) {
	uc, db, off := newWorkflow(t)
	ctx := context.Background()
	first := submitted(t, db, 800)
	second := submitted(t, db, 700)

	_, err := uc.Review(ctx, reviewer, ReviewInput{ApplicationID: first.ApplicationID, Status: "approved"})
	require.NoError(t, err)
	_, err = uc.Review(ctx, reviewer, ReviewInput{ApplicationID: second.ApplicationID, Status: "rejected", Notes: "insufficient income"})
	require.NoError(t, err)

	got, err := mysql.NewOfficerRepository(db).GetByUserID(ctx, reviewer.UserID)
	require.NoError(t, err)
	assert.Equal(t, officer.Delta{Reviewed: 2, Approved: 1, Rejected: 1}, officer.Delta{
		Reviewed: got.TotalReviewed,
		Approved: got.TotalApproved,
		Rejected: got.TotalRejected,
	})

	stats, err := uc.OfficerStats(ctx, off.ID)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	for _, s := range stats {
		assert.Equal(t, int64(1), s.Count)
		assert.True(t, s.TotalAmount.Equal(decimal.NewFromInt(200_000)))
	}

	// Terminal now: nothing else may change.
	_, err = uc.Review(ctx, reviewer, ReviewInput{ApplicationID: first.ApplicationID, Status: "rejected"})
	assert.ErrorIs(t, err, loan.ErrInvalidTransition)
	assert.EqualError(t, err, "loan application has already been approved")

	reloaded, err := mysql.NewLoanRepository(db).GetByApplicationID(ctx, first.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, loan.StatusApproved, reloaded.Status)
	assert.Empty(t, reloaded.ReviewNotes)

	dash, err := uc.Dashboard(ctx, reviewer)
	require.NoError(t, err)
	assert.Equal(t, int64(2), dash.System.TotalLoans)
	assert.Equal(t, int64(0), dash.System.TotalPending)
	assert.Len(t, dash.RecentReviews, 2)
	assert.Equal(t, second.ApplicationID, dash.RecentReviews[0].ID)
}

func TestWorkflow_FailedReviewLeavesNoTrace(t *testing.T) {
	uc, db, _ := newWorkflow(t)
	ctx := context.Background()
	app := submitted(t, db, 760)

	_, err := uc.Review(ctx, reviewer, ReviewInput{ApplicationID: app.ApplicationID, Status: "APPROVED", Notes: strings.Repeat("x", 1001)})
	require.Error(t, err)

	reloaded, err := mysql.NewLoanRepository(db).GetByApplicationID(ctx, app.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, loan.StatusUnderReview, reloaded.Status)
	assert.Nil(t, reloaded.OfficerID)
	assert.Nil(t, reloaded.ReviewedAt)

	got, _ := mysql.NewOfficerRepository(db).GetByUserID(ctx, reviewer.UserID)
	assert.Zero(t, got.TotalReviewed)
}

func TestWorkflow_TerminalBeforeOfficerLookup(t *testing.T) {
	uc, db, _ := newWorkflow(t)
	app := submitted(t, db, 300)
	require.Equal(t, loan.StatusRejected, app.Status)

	stranger := auth.Caller{UserID: "officer-without-profile", Role: auth.RoleOfficer}
	_, err := uc.Review(context.Background(), stranger, ReviewInput{ApplicationID: app.ApplicationID, Status: "APPROVED"})
	assert.ErrorIs(t, err, loan.ErrInvalidTransition)
	assert.EqualError(t, err, "loan application has already been rejected")
}
