package model

import "math"

// Portfolio is the user's holding in the tracked symbol.
type Portfolio struct {
	Shares  float64 `json:"shares" yaml:"shares"`
	AvgCost float64 `json:"avg_cost" yaml:"avg_cost"` // per share, quote currency of the exchange
	FxRate  float64 `json:"fx_rate" yaml:"fx_rate"`   // home currency per unit of share currency
}

// Sanitize clamps negative and non-finite inputs to zero.
func (p Portfolio) Sanitize() Portfolio {
	p.Shares = nonNegative(p.Shares)
	p.AvgCost = nonNegative(p.AvgCost)
	p.FxRate = nonNegative(p.FxRate)
	return p
}

func nonNegative(v float64) float64 {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// Slider ranges for scenario parameters, in percent.
const (
	MuskRiskMin        = -10.0
	MuskRiskMax        = 0.0
	PolicyImpactMin    = -15.0
	PolicyImpactMax    = 25.0
	RobotaxiPremiumMin = 0.0
	RobotaxiPremiumMax = 200.0
)

// Scenario holds hypothetical percentage adjustments to price.
type Scenario struct {
	MuskRiskPct        float64 `json:"musk_risk_pct" yaml:"musk_risk_pct"`
	PolicyImpactPct    float64 `json:"policy_impact_pct" yaml:"policy_impact_pct"`
	RobotaxiPremiumPct float64 `json:"robotaxi_premium_pct" yaml:"robotaxi_premium_pct"`
}

// IsZero reports whether the scenario is the identity projection.
func (s Scenario) IsZero() bool {
	return s.MuskRiskPct == 0 && s.PolicyImpactPct == 0 && s.RobotaxiPremiumPct == 0
}

// Clamp bounds every slider to its range.
func (s Scenario) Clamp() Scenario {
	s.MuskRiskPct = clamp(s.MuskRiskPct, MuskRiskMin, MuskRiskMax)
	s.PolicyImpactPct = clamp(s.PolicyImpactPct, PolicyImpactMin, PolicyImpactMax)
	s.RobotaxiPremiumPct = clamp(s.RobotaxiPremiumPct, RobotaxiPremiumMin, RobotaxiPremiumMax)
	return s
}

// NaN becomes the neutral 0 before bounding; every range contains 0.
func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		v = 0
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// TaxRules configures the capital gains tax applied to home-currency profit.
type TaxRules struct {
	Deduction float64 `json:"deduction" yaml:"deduction"`
	Rate      float64 `json:"rate" yaml:"rate"`
}

// Valuation is the result of evaluating a portfolio against a price.
type Valuation struct {
	CurrentValue          float64 `json:"current_value"`
	CostBasis             float64 `json:"cost_basis"`
	Profit                float64 `json:"profit"`
	ProfitPercent         float64 `json:"profit_percent"`
	ProfitInQuoteCurrency float64 `json:"profit_in_quote_currency"`
	TaxableAmount         float64 `json:"taxable_amount"`
	Tax                   float64 `json:"tax"`
	AfterTaxProfit        float64 `json:"after_tax_profit"`
	ScenarioPrice         float64 `json:"scenario_price"`
	ScenarioValue         float64 `json:"scenario_value"`
	ScenarioProfit        float64 `json:"scenario_profit"`
	ScenarioProfitPercent float64 `json:"scenario_profit_percent"`
}
