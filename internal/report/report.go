// Package report renders snapshots as plain text for logs, the summary
// endpoint and chat alerts.
package report

import (
	"fmt"
	"strings"

	"MarketVision/internal/model"
)

// FormatTickLine is the one-line log summary written after every tick.
func FormatTickLine(s model.Snapshot) string {
	p := s.Price
	return fmt.Sprintf("%s %.2f (%+.2f, %+.2f%%) [%s] range %.2f~%.2f news=%d posts=%d mood=%d",
		p.Symbol, p.Current, p.Change, p.ChangePercent, p.Session.String(),
		p.DayLow, p.DayHigh, len(s.News), len(s.Posts), s.FearGreed.Value)
}

// FormatSnapshot formats the full dashboard state.
func FormatSnapshot(s model.Snapshot) string {
	var b strings.Builder
	p := s.Price

	b.WriteString(fmt.Sprintf("📊 %s | %s | %s\n\n", p.Symbol, p.Session.Label(), p.TradingDay))

	b.WriteString(fmt.Sprintf("Price: %.2f (%+.2f, %+.2f%%)\n", p.Current, p.Change, p.ChangePercent))
	b.WriteString(fmt.Sprintf("Close: %.2f | Segment close: %.2f\n", p.ClosePrice, p.PreviousSegmentClose))
	b.WriteString(fmt.Sprintf("Day range: %.2f ~ %.2f (position %.0f%%)\n", p.DayLow, p.DayHigh, s.DayRangePosition*100))
	if p.Volume > 0 {
		b.WriteString(fmt.Sprintf("Volume: %.0f\n", p.Volume))
	}
	b.WriteString(fmt.Sprintf("Fear & Greed: %d (%s)\n", s.FearGreed.Value, s.FearGreed.Label))
	for _, m := range s.Macro {
		b.WriteString(fmt.Sprintf("  %s: %.2f%s (%+.2f%%)\n", m.Name, m.Value, m.Unit, m.ChangePercent))
	}
	b.WriteString("\n")

	if s.Portfolio.Shares > 0 {
		b.WriteString(FormatValuation(s.Portfolio, s.Scenario, s.Valuation))
		b.WriteString("\n")
	}

	if len(s.News) > 0 {
		b.WriteString("📰 Latest news:\n")
		for i, n := range s.News {
			if i >= 3 {
				break
			}
			b.WriteString(fmt.Sprintf("  [%s] %s (%+d)\n", n.Category, n.Title, n.ImpactScore))
		}
	}
	if len(s.Posts) > 0 {
		b.WriteString(fmt.Sprintf("💬 %s\n", s.Posts[0].Content))
	}

	b.WriteString(fmt.Sprintf("\nUpdated: %s", s.UpdatedAt.Format("2006-01-02 15:04:05")))
	return b.String()
}

// FormatValuation formats the portfolio block.
func FormatValuation(p model.Portfolio, sc model.Scenario, v model.Valuation) string {
	var b strings.Builder
	b.WriteString("💰 Portfolio\n")
	b.WriteString(fmt.Sprintf("  %.4g shares @ %.2f (fx %.2f)\n", p.Shares, p.AvgCost, p.FxRate))
	b.WriteString(fmt.Sprintf("  Value: %.2f | Cost: %.2f\n", v.CurrentValue, v.CostBasis))
	b.WriteString(fmt.Sprintf("  P/L: %+.2f (%+.2f%%)\n", v.Profit, v.ProfitPercent))
	b.WriteString(fmt.Sprintf("  P/L (home): %+.0f | Tax: %.0f | After tax: %+.0f\n",
		v.ProfitInQuoteCurrency, v.Tax, v.AfterTaxProfit))
	if !sc.IsZero() {
		b.WriteString(fmt.Sprintf("  Scenario (%+.0f%% / %+.0f%% / %+.0f%%): %.2f → value %.2f, P/L %+.2f (%+.2f%%)\n",
			sc.MuskRiskPct, sc.PolicyImpactPct, sc.RobotaxiPremiumPct,
			v.ScenarioPrice, v.ScenarioValue, v.ScenarioProfit, v.ScenarioProfitPercent))
	}
	return b.String()
}

// FormatTransition formats a session change alert.
func FormatTransition(from, to model.MarketSession, p model.PriceState, rolledOver bool) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔔 %s: %s → %s\n", p.Symbol, from.Label(), to.Label()))
	b.WriteString(fmt.Sprintf("Segment close: %.2f | Now: %.2f (%+.2f%%)\n",
		p.PreviousSegmentClose, p.Current, p.ChangePercent))
	if rolledOver {
		b.WriteString(fmt.Sprintf("New trading day %s, close %.2f\n", p.TradingDay, p.ClosePrice))
	}
	return b.String()
}
