package calculator

import (
	"math"

	"github.com/shopspring/decimal"

	"MarketVision/internal/model"
)

var hundred = decimal.NewFromInt(100)

// dec converts v, reading NaN and ±Inf as zero.
func dec(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// DefaultTaxRules is the overseas capital gains rule: 22% on profit above a 2.5M deduction.
func DefaultTaxRules() model.TaxRules {
	return model.TaxRules{Deduction: 2_500_000, Rate: 0.22}
}

// Project applies the scenario multiplier 1 + (sum of sliders)/100 to base.
// The result is not clamped and may be negative for extreme inputs.
func Project(base float64, s model.Scenario) float64 {
	return project(dec(base), s).InexactFloat64()
}

func project(base decimal.Decimal, s model.Scenario) decimal.Decimal {
	sum := dec(s.MuskRiskPct).
		Add(dec(s.PolicyImpactPct)).
		Add(dec(s.RobotaxiPremiumPct))
	mult := decimal.NewFromInt(1).Add(sum.Div(hundred))
	return base.Mul(mult)
}

// Evaluate values the portfolio at price.Current. A nil scenario is the identity projection.
// Negative or non-finite inputs are treated as zero and a zero cost basis yields 0%.
func Evaluate(p model.Portfolio, price model.PriceState, s *model.Scenario, tax model.TaxRules) model.Valuation {
	p = p.Sanitize()
	shares := dec(p.Shares)
	current := dec(price.Current)

	currentValue := shares.Mul(current)
	costBasis := shares.Mul(dec(p.AvgCost))
	profit := currentValue.Sub(costBasis)
	profitQuote := profit.Mul(dec(p.FxRate))

	taxable := profitQuote.Sub(dec(tax.Deduction))
	if taxable.IsNegative() {
		taxable = decimal.Zero
	}
	rate := dec(tax.Rate)
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	taxDue := taxable.Mul(rate)

	scenarioPrice := current
	if s != nil {
		scenarioPrice = project(current, *s)
	}
	scenarioValue := shares.Mul(scenarioPrice)
	scenarioProfit := scenarioValue.Sub(costBasis)

	return model.Valuation{
		CurrentValue:          currentValue.InexactFloat64(),
		CostBasis:             costBasis.InexactFloat64(),
		Profit:                profit.InexactFloat64(),
		ProfitPercent:         percentOf(profit, costBasis),
		ProfitInQuoteCurrency: profitQuote.InexactFloat64(),
		TaxableAmount:         taxable.InexactFloat64(),
		Tax:                   taxDue.InexactFloat64(),
		AfterTaxProfit:        profitQuote.Sub(taxDue).InexactFloat64(),
		ScenarioPrice:         scenarioPrice.InexactFloat64(),
		ScenarioValue:         scenarioValue.InexactFloat64(),
		ScenarioProfit:        scenarioProfit.InexactFloat64(),
		ScenarioProfitPercent: percentOf(scenarioProfit, costBasis),
	}
}

func percentOf(part, whole decimal.Decimal) float64 {
	if whole.IsZero() {
		return 0
	}
	return part.Mul(hundred).Div(whole).InexactFloat64()
}
