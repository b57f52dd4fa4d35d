package client

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
)

// NatalChartKey is the fixed storage key for the caller's natal chart.
const NatalChartKey = "natalChart"

// ChartStore is host-provided key-value storage. Get reports found=false,
// not an error, for a missing key. See package store for implementations.
type ChartStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
}

// ChartComputer computes natal charts. *Client satisfies it.
type ChartComputer interface {
	ComputeNatalChart(ctx context.Context, birth BirthData) (*NatalChart, error)
}

// TransitLister lists planetary transits. *Client satisfies it.
type TransitLister interface {
	GetTransits(ctx context.Context, date, timezone string) (*TransitSet, error)
}

// Gateway is the full set of service calls used by FullFlow.
type Gateway interface {
	ChartComputer
	HoroscopeFetcher
	TransitLister
}

// StoreChart writes chart as JSON under NatalChartKey.
func StoreChart(ctx context.Context, s ChartStore, chart *NatalChart) error {
	if chart == nil {
		return fmt.Errorf("%w: natal chart is nil", ErrInvalidInput)
	}
	b, err := json.Marshal(chart)
	if err != nil {
		return fmt.Errorf("encode natal chart: %w", err)
	}
	if err := s.Set(ctx, NatalChartKey, b); err != nil {
		return fmt.Errorf("store natal chart: %w", err)
	}
	return nil
}

// LoadChart reads the chart stored under NatalChartKey. It returns
// ErrNoStoredChart when nothing has been stored yet.
func LoadChart(ctx context.Context, s ChartStore) (*NatalChart, error) {
	b, found, err := s.Get(ctx, NatalChartKey)
	if err != nil {
		return nil, fmt.Errorf("load natal chart: %w", err)
	}
	if !found {
		return nil, ErrNoStoredChart
	}
	var chart NatalChart
	if err := json.Unmarshal(b, &chart); err != nil {
		return nil, fmt.Errorf("decode stored natal chart: %w", err)
	}
	return &chart, nil
}

// ComputeAndStore computes the natal chart and persists it.
func ComputeAndStore(ctx context.Context, gw ChartComputer, s ChartStore, birth BirthData) (*NatalChart, error) {
	chart, err := gw.ComputeNatalChart(ctx, birth)
	if err != nil {
		return nil, err
	}
	if err := StoreChart(ctx, s, chart); err != nil {
		return nil, err
	}
	log.Debug().Int("planets", len(chart.Planets)).Msg("natal chart computed and stored")
	return chart, nil
}

// QuickHoroscope fetches today's (or date's) horoscope for the stored chart
// without recomputing it. Pass a *HoroscopeCache as f to reuse answers.
func QuickHoroscope(ctx context.Context, f HoroscopeFetcher, s ChartStore, date, timezone string) (*DailyHoroscope, error) {
	chart, err := LoadChart(ctx, s)
	if err != nil {
		return nil, err
	}
	return f.GetDailyHoroscope(ctx, chart, date, timezone)
}

// FlowResult holds everything FullFlow fetched.
type FlowResult struct {
	Chart     *NatalChart
	Horoscope *DailyHoroscope
	Transits  *TransitSet
}

// FullFlow runs chart, store, horoscope and transits in that order, each
// step waiting for the previous one. The first failure stops the flow.
func FullFlow(ctx context.Context, gw Gateway, s ChartStore, birth BirthData, timezone string) (*FlowResult, error) {
	chart, err := ComputeAndStore(ctx, gw, s, birth)
	if err != nil {
		return nil, err
	}
	h, err := gw.GetDailyHoroscope(ctx, chart, "", timezone)
	if err != nil {
		return &FlowResult{Chart: chart}, err
	}
	ts, err := gw.GetTransits(ctx, "", timezone)
	if err != nil {
		return &FlowResult{Chart: chart, Horoscope: h}, err
	}
	return &FlowResult{Chart: chart, Horoscope: h, Transits: ts}, nil
}
