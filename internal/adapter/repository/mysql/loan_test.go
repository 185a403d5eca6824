package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	domain "loan-origination/internal/domain/loan"
	"loan-origination/pkg/id"
)

func TestCreateAndGetByApplicationID(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	a := seedApplication(t, db, 11, 250_000, domain.StatusUnderReview, time.Now())
	if a.ID == 0 {
		t.Fatalf("Create did not set auto-increment ID")
	}

	got, err := repo.GetByApplicationID(ctx, a.ApplicationID)
	if err != nil {
		t.Fatalf("GetByApplicationID: %v", err)
	}
	if got.CustomerID != 11 || !got.AmountRequested.Equal(decimal.NewFromInt(250_000)) {
		t.Errorf("unexpected application: %+v", got)
	}
	if !got.EligibilityScore.Valid || got.EligibilityScore.Decimal.StringFixed(2) != "0.62" {
		t.Errorf("eligibility score not persisted: %+v", got.EligibilityScore)
	}
	if !got.MonthlyEMI.Valid || got.MonthlyEMI.Decimal.StringFixed(2) != "4545.45" {
		t.Errorf("monthly emi not persisted: %+v", got.MonthlyEMI)
	}
	if got.LoanType != domain.TypeHome || got.Status != domain.StatusUnderReview {
		t.Errorf("enum columns not persisted: %s %s", got.LoanType, got.Status)
	}
}

func TestGetByApplicationID_NotFound(t *testing.T) {
	repo := NewLoanRepository(openTestDB(t))

	_, err := repo.GetByApplicationID(context.Background(), id.NewID32())
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveReview(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()

	a := seedApplication(t, db, 1, 50_000, domain.StatusUnderReview, time.Now())
	if err := a.Review(domain.StatusApproved, 9, "income verified", time.Now()); err != nil {
		t.Fatalf("Review: %v", err)
	}
	if err := repo.Save(ctx, a); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByApplicationID(ctx, a.ApplicationID)
	if err != nil {
		t.Fatalf("GetByApplicationID: %v", err)
	}
	if got.Status != domain.StatusApproved || got.OfficerID == nil || *got.OfficerID != 9 || got.ReviewedAt == nil {
		t.Errorf("review not persisted: %+v", got)
	}
	if got.ReviewNotes != "income verified" {
		t.Errorf("ReviewNotes = %q", got.ReviewNotes)
	}
}

func TestList_FiltersAndPaging(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	seedApplication(t, db, 1, 20_000, domain.StatusUnderReview, base)
	seedApplication(t, db, 1, 40_000, domain.StatusRejected, base.Add(time.Hour))
	seedApplication(t, db, 2, 60_000, domain.StatusUnderReview, base.Add(2*time.Hour))
	seedApplication(t, db, 2, 80_000, domain.StatusPending, base.Add(3*time.Hour))
	seedApplication(t, db, 3, 100_000, domain.StatusApproved, base.Add(4*time.Hour))

	t.Run("status filter newest first", func(t *testing.T) {
		got, total, err := repo.List(ctx, domain.ListFilter{
			Statuses: []domain.Status{domain.StatusPending, domain.StatusUnderReview},
			Desc:     true,
		})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if total != 3 || len(got) != 3 {
			t.Fatalf("total=%d len=%d, want 3", total, len(got))
		}
		if !got[0].AmountRequested.Equal(decimal.NewFromInt(80_000)) {
			t.Errorf("first = %s, want newest (80000)", got[0].AmountRequested)
		}
	})

	t.Run("amount range ascending by amount", func(t *testing.T) {
		got, total, err := repo.List(ctx, domain.ListFilter{
			MinAmount: decimal.NewNullDecimal(decimal.NewFromInt(40_000)),
			MaxAmount: decimal.NewNullDecimal(decimal.NewFromInt(80_000)),
			Sort:      "amountRequested",
		})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if total != 3 {
			t.Fatalf("total=%d, want 3", total)
		}
		for i, want := range []int64{40_000, 60_000, 80_000} {
			if !got[i].AmountRequested.Equal(decimal.NewFromInt(want)) {
				t.Errorf("got[%d] = %s, want %d", i, got[i].AmountRequested, want)
			}
		}
	})

	t.Run("customer filter with paging", func(t *testing.T) {
		cid := uint64(2)
		got, total, err := repo.List(ctx, domain.ListFilter{CustomerID: &cid, Page: 2, Limit: 1, Desc: true})
		if err != nil {
			t.Fatalf("List: %v", err)
		}
		if total != 2 || len(got) != 1 {
			t.Fatalf("total=%d len=%d, want 2/1", total, len(got))
		}
		if !got[0].AmountRequested.Equal(decimal.NewFromInt(60_000)) {
			t.Errorf("page 2 = %s, want 60000", got[0].AmountRequested)
		}
	})
}

func TestCountAndStats(t *testing.T) {
	db := openTestDB(t)
	repo := NewLoanRepository(db)
	ctx := context.Background()
	now := time.Now()

	seedApplication(t, db, 5, 20_000, domain.StatusUnderReview, now)
	seedApplication(t, db, 5, 30_000, domain.StatusUnderReview, now)
	seedApplication(t, db, 5, 50_000, domain.StatusRejected, now)
	seedApplication(t, db, 6, 70_000, domain.StatusPending, now)

	n, err := repo.Count(ctx, domain.StatusPending, domain.StatusUnderReview)
	if err != nil || n != 3 {
		t.Fatalf("Count = %d, %v; want 3", n, err)
	}
	all, err := repo.Count(ctx)
	if err != nil || all != 4 {
		t.Fatalf("Count() = %d, %v; want 4", all, err)
	}

	stats, err := repo.StatsByCustomer(ctx, 5)
	if err != nil {
		t.Fatalf("StatsByCustomer: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("stats = %+v, want 2 groups", stats)
	}
	byStatus := map[domain.Status]domain.StatusStat{}
	for _, s := range stats {
		byStatus[s.Status] = s
	}
	if s := byStatus[domain.StatusUnderReview]; s.Count != 2 || !s.TotalAmount.Equal(decimal.NewFromInt(50_000)) {
		t.Errorf("UNDER_REVIEW stat = %+v", s)
	}
	if s := byStatus[domain.StatusRejected]; s.Count != 1 || !s.TotalAmount.Equal(decimal.NewFromInt(50_000)) {
		t.Errorf("REJECTED stat = %+v", s)
	}

	empty, err := repo.StatsByOfficer(ctx, 99)
	if err != nil || len(empty) != 0 {
		t.Fatalf("StatsByOfficer(99) = %+v, %v", empty, err)
	}
}
