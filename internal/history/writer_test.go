package history

import (
	"context"
	"testing"
	"time"

	"github.com/sporters/courtside/internal/model"
)

func TestTransform(t *testing.T) {
	at := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	gameTime := time.Date(2024, 1, 15, 19, 0, 0, 0, time.UTC)

	rows := transform(tick{
		at: at,
		markets: []model.Market{
			{
				ID:          "KXNBAGAME-25OCT01LALBOS-LAL",
				EventTicker: "KXNBAGAME-25OCT01LALBOS",
				Title:       "Lakers vs Celtics",
				YesPrice:    62,
				NoPrice:     38,
				IsLive:      true,
				Trend:       model.TrendUp,
				GameTime:    &gameTime,
			},
			{
				ID:       "market-1",
				Title:    "Warriors vs Nuggets",
				YesPrice: 45,
				NoPrice:  52,
				Trend:    model.TrendStable,
			},
		},
	})

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}

	r := rows[0]
	if r.ID == "" {
		t.Error("ID should be a generated uuid")
	}
	if !r.TickAt.Equal(at) {
		t.Errorf("TickAt = %v, want %v", r.TickAt, at)
	}
	if r.Ticker != "KXNBAGAME-25OCT01LALBOS-LAL" {
		t.Errorf("Ticker = %q", r.Ticker)
	}
	if r.EventTicker != "KXNBAGAME-25OCT01LALBOS" {
		t.Errorf("EventTicker = %q", r.EventTicker)
	}
	if r.YesPrice != 62 || r.NoPrice != 38 {
		t.Errorf("prices = (%d, %d), want (62, 38)", r.YesPrice, r.NoPrice)
	}
	if !r.IsLive {
		t.Error("IsLive should carry through")
	}
	if r.Trend != "up" {
		t.Errorf("Trend = %q, want up", r.Trend)
	}
	if r.GameTime == nil || !r.GameTime.Equal(gameTime) {
		t.Errorf("GameTime = %v, want %v", r.GameTime, gameTime)
	}

	if rows[0].ID == rows[1].ID {
		t.Error("row ids should be unique")
	}
	if rows[1].GameTime != nil {
		t.Errorf("GameTime = %v, want nil when unset", rows[1].GameTime)
	}
}

func TestTransformEmptyTick(t *testing.T) {
	rows := transform(tick{at: time.Now()})
	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0", len(rows))
	}
}

func TestRecordDropsWhenBufferFull(t *testing.T) {
	cfg := DefaultWriterConfig()
	cfg.BufferSize = 1
	w := NewWriter(cfg, nil, nil)

	// Not started, so nothing drains the channel.
	w.Record([]model.Market{{ID: "T1"}}, time.Now())
	w.Record([]model.Market{{ID: "T2"}}, time.Now())

	if got := w.Stats().Dropped; got != 1 {
		t.Errorf("Dropped = %d, want 1", got)
	}
	if len(w.input) != 1 {
		t.Errorf("queued ticks = %d, want 1", len(w.input))
	}
}

func TestHandleTickBatchesBelowThreshold(t *testing.T) {
	cfg := DefaultWriterConfig()
	cfg.BatchSize = 100
	w := NewWriter(cfg, nil, nil)

	w.handleTick(tick{at: time.Now(), markets: []model.Market{{ID: "T1"}, {ID: "T2"}}})

	w.batchMu.Lock()
	defer w.batchMu.Unlock()
	if len(w.batch) != 2 {
		t.Errorf("batch = %d, want 2 (no flush below threshold)", len(w.batch))
	}
}

func TestWriterLifecycle(t *testing.T) {
	cfg := DefaultWriterConfig()
	w := NewWriter(cfg, nil, nil)

	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := w.Stop(stopCtx); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
