package evaluation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"loan-origination/internal/domain/apperr"
)

// Tier is an interest-rate bracket. A score at or above MinScore qualifies.
type Tier struct {
	Name     string
	MinScore decimal.Decimal
	Rate     decimal.Decimal
}

// Config is the scoring table. Evaluators copy it on construction, so a
// Config can be modified after use without affecting running evaluators.
type Config struct {
	CreditWeight      decimal.Decimal
	IncomeWeight      decimal.Decimal
	MinCreditScore    int
	MaxCreditScore    int
	MaxIncome         decimal.Decimal
	ApprovalThreshold decimal.Decimal
	// Tiers are ordered best to worst.
	Tiers        []Tier
	FallbackRate decimal.Decimal
}

var ErrInvalidConfig = fmt.Errorf("%w: invalid scoring config", apperr.ErrValidation)

func DefaultConfig() Config {
	return Config{
		CreditWeight:      decimal.RequireFromString("0.6"),
		IncomeWeight:      decimal.RequireFromString("0.4"),
		MinCreditScore:    300,
		MaxCreditScore:    850,
		MaxIncome:         decimal.NewFromInt(10_000_000),
		ApprovalThreshold: decimal.RequireFromString("0.5"),
		Tiers: []Tier{
			{Name: "excellent", MinScore: decimal.RequireFromString("0.75"), Rate: decimal.RequireFromString("6.5")},
			{Name: "good", MinScore: decimal.RequireFromString("0.60"), Rate: decimal.RequireFromString("8.5")},
			{Name: "fair", MinScore: decimal.RequireFromString("0.50"), Rate: decimal.RequireFromString("11.5")},
		},
		FallbackRate: decimal.RequireFromString("15.0"),
	}
}

func (c Config) Validate() error {
	if c.CreditWeight.IsNegative() || c.IncomeWeight.IsNegative() {
		return fmt.Errorf("%w: weights must be non-negative", ErrInvalidConfig)
	}
	if c.CreditWeight.Add(c.IncomeWeight).GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: weights must not sum above 1", ErrInvalidConfig)
	}
	if c.MaxCreditScore <= c.MinCreditScore {
		return fmt.Errorf("%w: credit score range is empty", ErrInvalidConfig)
	}
	if !c.MaxIncome.IsPositive() {
		return fmt.Errorf("%w: max income must be positive", ErrInvalidConfig)
	}
	if c.FallbackRate.IsNegative() {
		return fmt.Errorf("%w: fallback rate must be non-negative", ErrInvalidConfig)
	}
	for i, t := range c.Tiers {
		if t.Rate.IsNegative() {
			return fmt.Errorf("%w: tier %q has a negative rate", ErrInvalidConfig, t.Name)
		}
		if i > 0 && !t.MinScore.LessThan(c.Tiers[i-1].MinScore) {
			return fmt.Errorf("%w: tiers must be ordered by descending min score", ErrInvalidConfig)
		}
	}
	return nil
}

func (c Config) clone() Config {
	c.Tiers = append([]Tier(nil), c.Tiers...)
	return c
}
