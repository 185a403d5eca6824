package mysql

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"loan-origination/internal/domain/customer"
	"loan-origination/internal/domain/loan"
	"loan-origination/internal/domain/officer"
)

// openTestDB creates an in-memory sqlite DB. One connection keeps every
// query on the same in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&loan.Application{}, &customer.Profile{}, &officer.Profile{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func seedApplication(t *testing.T, db *gorm.DB, customerID uint64, amount int64, status loan.Status, created time.Time) *loan.Application {
	t.Helper()
	a, err := loan.NewApplication(customerID, decimal.NewFromInt(amount), 24, loan.TypeHome, "renovation", created)
	if err != nil {
		t.Fatalf("new application: %v", err)
	}
	if err := a.ApplyEvaluation(decimal.RequireFromString("0.62"), decimal.RequireFromString("8.5"), loan.StatusUnderReview, decimal.NewNullDecimal(decimal.RequireFromString("4545.45"))); err != nil {
		t.Fatalf("apply evaluation: %v", err)
	}
	a.Status = status
	if err := NewLoanRepository(db).Create(context.Background(), a); err != nil {
		t.Fatalf("seed application: %v", err)
	}
	return a
}

func seedOfficer(t *testing.T, db *gorm.DB, userID string) *officer.Profile {
	t.Helper()
	p := &officer.Profile{UserID: userID, FullName: "Officer " + userID, Branch: "Central"}
	if err := NewOfficerRepository(db).Create(context.Background(), p); err != nil {
		t.Fatalf("seed officer: %v", err)
	}
	return p
}
