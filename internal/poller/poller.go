package poller

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sporters/courtside/internal/model"
)

// Fetcher produces one tick's worth of normalized markets.
type Fetcher interface {
	Fetch(ctx context.Context) ([]model.Market, error)
}

// Target receives the outcome of each tick.
type Target interface {
	Replace(markets []model.Market)
	SetError(err error)
}

// Recorder optionally persists each successful tick.
type Recorder interface {
	Record(markets []model.Market, at time.Time)
}

// Poller schedules fetches against a Fetcher and applies results to a
// Target. At most one fetch is outstanding per instance.
type Poller struct {
	interval time.Duration
	fetcher  Fetcher
	target   Target
	recorder Recorder // may be nil
	logger   *slog.Logger

	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	inFlight atomic.Bool
}

// New creates a poller. recorder may be nil when history persistence is
// disabled.
func New(interval time.Duration, fetcher Fetcher, target Target, recorder Recorder, logger *slog.Logger) *Poller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Poller{
		interval: interval,
		fetcher:  fetcher,
		target:   target,
		recorder: recorder,
		logger:   logger,
	}
}

// Start begins the polling loop. The first fetch happens immediately.
func (p *Poller) Start(ctx context.Context) error {
	p.ctx, p.cancel = context.WithCancel(ctx)

	p.wg.Add(1)
	go p.run()

	p.logger.Info("market poller started", "interval", p.interval)
	return nil
}

// Stop cancels the loop and waits for any in-flight fetch to finish.
func (p *Poller) Stop(ctx context.Context) error {
	if p.cancel != nil {
		p.cancel()
	}

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Info("market poller stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Poller) run() {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Populate the snapshot before the first interval elapses.
	p.poll()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-ticker.C:
			p.poll()
		}
	}
}

// poll runs one tick. A tick that fires while a fetch is still running is
// skipped rather than queued.
func (p *Poller) poll() {
	if !p.inFlight.CompareAndSwap(false, true) {
		p.logger.Debug("fetch still in flight, skipping tick")
		return
	}
	defer p.inFlight.Store(false)

	start := time.Now()
	markets, err := p.fetcher.Fetch(p.ctx)

	// A response that lands after teardown must not touch the target.
	if p.ctx.Err() != nil {
		return
	}

	if err != nil {
		p.logger.Warn("market fetch failed",
			"error", err,
			"elapsed", time.Since(start),
		)
		p.target.SetError(err)
		return
	}

	p.target.Replace(markets)
	if p.recorder != nil {
		p.recorder.Record(markets, time.Now().UTC())
	}

	p.logger.Debug("market snapshot refreshed",
		"markets", len(markets),
		"elapsed", time.Since(start),
	)
}
