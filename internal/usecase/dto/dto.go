package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"loan-origination/internal/domain/evaluation"
	"loan-origination/internal/domain/loan"
	"loan-origination/internal/domain/officer"
)

type Application struct {
	ID               string              `json:"id"`
	CustomerID       uint64              `json:"customer_id"`
	OfficerID        *uint64             `json:"officer_id"`
	AmountRequested  decimal.Decimal     `json:"amount_requested"`
	TenureMonths     int                 `json:"tenure_months"`
	LoanType         loan.LoanType       `json:"loan_type"`
	Purpose          string              `json:"purpose,omitempty"`
	Status           loan.Status         `json:"status"`
	EligibilityScore decimal.NullDecimal `json:"eligibility_score"`
	InterestRate     decimal.NullDecimal `json:"interest_rate"`
	MonthlyEMI       decimal.NullDecimal `json:"monthly_emi"`
	ReviewNotes      string              `json:"review_notes,omitempty"`
	ReviewedAt       *time.Time          `json:"reviewed_at"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

func FromApplication(a *loan.Application) Application {
	return Application{
		ID:               a.ApplicationID,
		CustomerID:       a.CustomerID,
		OfficerID:        a.OfficerID,
		AmountRequested:  a.AmountRequested,
		TenureMonths:     a.TenureMonths,
		LoanType:         a.LoanType,
		Purpose:          a.Purpose,
		Status:           a.Status,
		EligibilityScore: a.EligibilityScore,
		InterestRate:     a.InterestRate,
		MonthlyEMI:       a.MonthlyEMI,
		ReviewNotes:      a.ReviewNotes,
		ReviewedAt:       a.ReviewedAt,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func FromApplications(in []loan.Application) []Application {
	out := make([]Application, 0, len(in))
	for i := range in {
		out = append(out, FromApplication(&in[i]))
	}
	return out
}

// StatusView is the reduced projection returned by the status endpoint.
type StatusView struct {
	ID               string              `json:"id"`
	Status           loan.Status         `json:"status"`
	EligibilityScore decimal.NullDecimal `json:"eligibility_score"`
	AmountRequested  decimal.Decimal     `json:"amount_requested"`
	TenureMonths     int                 `json:"tenure_months"`
	InterestRate     decimal.NullDecimal `json:"interest_rate"`
	MonthlyEMI       decimal.NullDecimal `json:"monthly_emi"`
	LoanType         loan.LoanType       `json:"loan_type"`
	CreatedAt        time.Time           `json:"created_at"`
	ReviewedAt       *time.Time          `json:"reviewed_at"`
	ReviewNotes      string              `json:"review_notes,omitempty"`
}

func StatusViewOf(a *loan.Application) StatusView {
	return StatusView{
		ID:               a.ApplicationID,
		Status:           a.Status,
		EligibilityScore: a.EligibilityScore,
		AmountRequested:  a.AmountRequested,
		TenureMonths:     a.TenureMonths,
		InterestRate:     a.InterestRate,
		MonthlyEMI:       a.MonthlyEMI,
		LoanType:         a.LoanType,
		CreatedAt:        a.CreatedAt,
		ReviewedAt:       a.ReviewedAt,
		ReviewNotes:      a.ReviewNotes,
	}
}

type StatusStat struct {
	Status      loan.Status     `json:"status"`
	Count       int64           `json:"count"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func FromStats(in []loan.StatusStat) []StatusStat {
	out := make([]StatusStat, 0, len(in))
	for _, s := range in {
		out = append(out, StatusStat{Status: s.Status, Count: s.Count, TotalAmount: s.TotalAmount})
	}
	return out
}

type Pagination struct {
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Pages int64 `json:"pages"`
}

func NewPagination(total int64, page, limit int) Pagination {
	p := Pagination{Total: total, Page: page, Limit: limit}
	if limit > 0 {
		p.Pages = (total + int64(limit) - 1) / int64(limit)
	}
	return p
}

type ApplicationPage struct {
	Items      []Application `json:"items"`
	Pagination Pagination    `json:"pagination"`
}

type MyApplications struct {
	ApplicationPage
	Stats []StatusStat `json:"stats"`
}

// Quote is an evaluation that was not persisted.
type Quote struct {
	EligibilityScore decimal.Decimal     `json:"eligibility_score"`
	InterestRate     decimal.Decimal     `json:"interest_rate"`
	Status           loan.Status         `json:"status"`
	MonthlyEMI       decimal.NullDecimal `json:"monthly_emi"`
}

func FromResult(r evaluation.Result) Quote {
	return Quote{EligibilityScore: r.EligibilityScore, InterestRate: r.InterestRate, Status: r.Status, MonthlyEMI: r.MonthlyEMI}
}

type ScheduleEntry struct {
	Period           int             `json:"period"`
	DueDate          time.Time       `json:"due_date"`
	Principal        decimal.Decimal `json:"principal"`
	Interest         decimal.Decimal `json:"interest"`
	Total            decimal.Decimal `json:"total"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

func FromSchedule(in []evaluation.Installment) []ScheduleEntry {
	out := make([]ScheduleEntry, 0, len(in))
	for _, i := range in {
		out = append(out, ScheduleEntry(i))
	}
	return out
}

type OfficerStats struct {
	TotalReviewed int64 `json:"total_reviewed"`
	TotalApproved int64 `json:"total_approved"`
	TotalRejected int64 `json:"total_rejected"`
}

type Officer struct {
	UserID   string       `json:"user_id"`
	FullName string       `json:"full_name,omitempty"`
	Branch   string       `json:"branch"`
	Stats    OfficerStats `json:"stats"`
}

func FromOfficer(p *officer.Profile) Officer {
	return Officer{
		UserID:   p.UserID,
		FullName: p.FullName,
		Branch:   p.Branch,
		Stats: OfficerStats{
			TotalReviewed: p.TotalReviewed,
			TotalApproved: p.TotalApproved,
			TotalRejected: p.TotalRejected,
		},
	}
}

type SystemStats struct {
	TotalPending int64 `json:"total_pending"`
	TotalLoans   int64 `json:"total_loans"`
}

type Dashboard struct {
	Officer       Officer       `json:"officer"`
	System        SystemStats   `json:"system"`
	LoanStats     []StatusStat  `json:"loan_stats"`
	RecentReviews []Application `json:"recent_reviews"`
}
