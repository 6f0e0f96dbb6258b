package market

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"github.com/sporters/courtside/internal/api"
	"github.com/sporters/courtside/internal/model"
)

// Feed fetches and normalizes one series' game-winner markets. It keeps the
// previous tick's yes prices so successive fetches can report price trends.
type Feed struct {
	client *api.Client
	series string
	status string
	limit  int
	logger *slog.Logger

	mu      sync.Mutex
	prevYes map[string]int
}

// NewFeed creates a feed over the given series.
func NewFeed(client *api.Client, seriesTicker, status string, limit int, logger *slog.Logger) *Feed {
	if logger == nil {
		logger = slog.Default()
	}
	return &Feed{
		client:  client,
		series:  seriesTicker,
		status:  status,
		limit:   limit,
		logger:  logger,
		prevYes: make(map[string]int),
	}
}

// Fetch pulls one page of markets and runs the normalization pipeline.
// On failure it returns a nil list and a *FetchError; the previous tick's
// trend history is kept so the next successful fetch still has a baseline.
func (f *Feed) Fetch(ctx context.Context) ([]model.Market, error) {
	if f.series == "" {
		return nil, &FetchError{
			Kind:    KindConfiguration,
			Message: "series ticker is not configured",
		}
	}

	resp, err := f.client.GetMarkets(ctx, api.GetMarketsOptions{
		SeriesTicker: f.series,
		Status:       f.status,
		Limit:        f.limit,
	})
	if err != nil {
		return nil, classify(err)
	}

	f.mu.Lock()
	prev := f.prevYes
	f.mu.Unlock()

	markets := normalize(resp.Markets, f.series, prev)

	next := make(map[string]int, len(markets))
	for _, m := range markets {
		next[m.ID] = m.YesPrice
	}
	f.mu.Lock()
	f.prevYes = next
	f.mu.Unlock()

	f.logger.Debug("fetched markets",
		"series", f.series,
		"raw", len(resp.Markets),
		"normalized", len(markets),
	)

	return markets, nil
}

// classify maps a client error onto the fetch error taxonomy.
func classify(err error) *FetchError {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		return &FetchError{
			Kind:    KindUpstreamStatus,
			Status:  apiErr.StatusCode,
			Message: strings.TrimSpace(string(apiErr.Body)),
			Err:     err,
		}
	}

	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return &FetchError{
			Kind:    KindMalformed,
			Message: err.Error(),
			Err:     err,
		}
	}

	return &FetchError{
		Kind:    KindNetwork,
		Message: err.Error(),
		Err:     err,
	}
}
