package feed

import "MarketVision/internal/model"

// macroPanel holds the reference macro figures shown beside the quote.
var macroPanel = []model.MacroIndicator{
	{Name: "US 10Y Treasury Yield", Value: 4.18, Change: 0.03, ChangePercent: 0.72, Unit: "%"},
	{Name: "Dollar Index (DXY)", Value: 104.82, Change: 0.45, ChangePercent: 0.43},
	{Name: "WTI Crude", Value: 72.45, Change: -1.23, ChangePercent: -1.67, Unit: "$/bbl"},
	{Name: "Bitcoin", Value: 43250, Change: -850, ChangePercent: -1.93, Unit: "$"},
}

// MacroIndicators returns a copy of the static macro panel.
func MacroIndicators() []model.MacroIndicator {
	return append([]model.MacroIndicator(nil), macroPanel...)
}
