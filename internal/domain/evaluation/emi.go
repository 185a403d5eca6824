package evaluation

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

var (
	monthsPerYear = decimal.NewFromInt(12)
	hundred       = decimal.NewFromInt(100)
)

// CalculateEMI returns the fixed monthly installment, rounded half-up to
// cents. It is null when the rate is unset or principal or tenure is not
// positive. A zero rate repays straight-line.
func CalculateEMI(principal decimal.Decimal, annualRatePercent decimal.NullDecimal, tenureMonths int) decimal.NullDecimal {
	if !annualRatePercent.Valid || !principal.IsPositive() || tenureMonths <= 0 || annualRatePercent.Decimal.IsNegative() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(installment(principal, monthlyRate(annualRatePercent.Decimal), tenureMonths))
}

func monthlyRate(annualRatePercent decimal.Decimal) decimal.Decimal {
	return annualRatePercent.Div(monthsPerYear).Div(hundred)
}

// installment uses float64 only for the power term; the result is rounded
// back to a decimal so equal inputs give equal cents.
func installment(principal, r decimal.Decimal, n int) decimal.Decimal {
	if r.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(n))).Round(2)
	}
	rf := r.InexactFloat64()
	factor := math.Pow(1+rf, float64(n))
	emi := principal.InexactFloat64() * rf * factor / (factor - 1)
	return decimal.NewFromFloat(emi).Round(2)
}

// Installment is one period of an amortization schedule.
type Installment struct {
	Period           int
	DueDate          time.Time
	Principal        decimal.Decimal
	Interest         decimal.Decimal
	Total            decimal.Decimal
	RemainingBalance decimal.Decimal
}

// Schedule splits the loan into monthly installments starting one month
// after start. The last period absorbs rounding so the balance closes at zero.
func Schedule(principal decimal.Decimal, annualRatePercent decimal.NullDecimal, tenureMonths int, start time.Time) []Installment {
	emi := CalculateEMI(principal, annualRatePercent, tenureMonths)
	if !emi.Valid {
		return nil
	}
	r := monthlyRate(annualRatePercent.Decimal)
	payment := emi.Decimal

	out := make([]Installment, 0, tenureMonths)
	remaining := principal
	for period := 1; period <= tenureMonths; period++ {
		interest := remaining.Mul(r).Round(2)
		principalPart := payment.Sub(interest)
		if period == tenureMonths || principalPart.GreaterThan(remaining) {
			principalPart = remaining
		}
		remaining = remaining.Sub(principalPart)

		out = append(out, Installment{
			Period:           period,
			DueDate:          start.AddDate(0, period, 0),
			Principal:        principalPart,
			Interest:         interest,
			Total:            principalPart.Add(interest),
			RemainingBalance: remaining,
		})
		if remaining.IsZero() {
			break
		}
	}
	return out
}
