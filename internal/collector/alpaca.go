package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"MarketVision/internal/model"
)

// AlpacaSource implements PriceSource using Alpaca market data snapshots.
type AlpacaSource struct {
	client *marketdata.Client
}

// NewAlpacaSource creates an Alpaca snapshot source. dataURL may be empty.
func NewAlpacaSource(apiKey, apiSecret, dataURL string) *AlpacaSource {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}
	return &AlpacaSource{client: marketdata.NewClient(opts)}
}

func (a *AlpacaSource) Name() string { return "alpaca" }

type snapshotResult struct {
	snap *marketdata.Snapshot
	err  error
}

func (a *AlpacaSource) FetchPrice(ctx context.Context, symbol string) (model.PriceSample, error) {
	// The SDK call takes no context; abandon it when ctx expires.
	ch := make(chan snapshotResult, 1)
	go func() {
		snap, err := a.client.GetSnapshot(symbol, marketdata.GetSnapshotRequest{})
		ch <- snapshotResult{snap: snap, err: err}
	}()

	var res snapshotResult
	select {
	case <-ctx.Done():
		return model.PriceSample{}, fmt.Errorf("alpaca snapshot: %w", ctx.Err())
	case res = <-ch:
	}
	if res.err != nil {
		return model.PriceSample{}, fmt.Errorf("alpaca snapshot: %w", res.err)
	}
	return sampleFromSnapshot(res.snap)
}

func sampleFromSnapshot(snap *marketdata.Snapshot) (model.PriceSample, error) {
	if snap == nil || snap.LatestTrade == nil {
		return model.PriceSample{}, fmt.Errorf("alpaca: %w", ErrNoData)
	}
	s := model.PriceSample{
		Source:  "alpaca",
		Current: snap.LatestTrade.Price,
		AsOf:    snap.LatestTrade.Timestamp,
	}
	if snap.PrevDailyBar != nil {
		s.ClosePrice = snap.PrevDailyBar.Close
	}
	if snap.DailyBar != nil {
		s.High = snap.DailyBar.High
		s.Low = snap.DailyBar.Low
		s.Volume = float64(snap.DailyBar.Volume)
	}
	if s.AsOf.IsZero() {
		s.AsOf = time.Now()
	}
	return s, nil
}
