package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loan-origination/internal/domain/apperr"
	"loan-origination/internal/domain/evaluation"
	"loan-origination/internal/domain/loan"
)

func TestNewPagination(t *testing.T) {
	assert.Equal(t, Pagination{Total: 21, Page: 2, Limit: 10, Pages: 3}, NewPagination(21, 2, 10))
	assert.Equal(t, int64(0), NewPagination(0, 1, 10).Pages)
	assert.Equal(t, int64(1), NewPagination(10, 1, 10).Pages)
}

func TestListQuery_Filter(t *testing.T) {
	f, err := ListQuery{Status: "under_review", SortBy: "amountRequested", Order: "ASC", Limit: 1000}.Filter()
	require.NoError(t, err)
	assert.Equal(t, []loan.Status{loan.StatusUnderReview}, f.Statuses)
	assert.Equal(t, "amount_requested", f.Sort)
	assert.False(t, f.Desc)
	assert.Equal(t, loan.MaxLimit, f.Limit)
	assert.Equal(t, 1, f.Page)

	f, err = ListQuery{Order: "sideways"}.Filter()
	require.NoError(t, err)
	assert.True(t, f.Desc)
	assert.Empty(t, f.Statuses)

	_, err = ListQuery{Status: "LOST"}.Filter()
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestApplicationJSON_NullScoring(t *testing.T) {
	a := &loan.Application{
		ApplicationID:   "abc",
		AmountRequested: decimal.NewFromInt(20_000),
		Status:          loan.StatusPending,
		CreatedAt:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	raw, err := json.Marshal(FromApplication(a))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "abc", m["id"])
	assert.Nil(t, m["eligibility_score"])
	assert.Nil(t, m["monthly_emi"])
	assert.Nil(t, m["officer_id"])
	assert.Equal(t, "PENDING", m["status"])
}

func TestFromSchedule(t *testing.T) {
	rows := evaluation.Schedule(decimal.NewFromInt(12_000), decimal.NewNullDecimal(decimal.Zero), 6, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	out := FromSchedule(rows)
	require.Len(t, out, 6)
	assert.Equal(t, "2000.00", out[0].Total.StringFixed(2))
	assert.True(t, out[5].RemainingBalance.IsZero())
}
