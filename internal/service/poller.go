package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/tejashwikalptaru/themetune/internal/domain"
	"github.com/tejashwikalptaru/themetune/internal/ports"
)

// DefaultPollInterval is how often the elapsed time display refreshes.
const DefaultPollInterval = 700 * time.Millisecond

// runtimeInfoSource supplies the duration of the loaded track.
type runtimeInfoSource interface {
	RuntimeInfo() domain.TrackRuntimeInfo
}

// Poller periodically reads the engine position and publishes TrackProgressEvent.
//
// The ticker runs on its own goroutine but every Tick is handed to the
// dispatcher, so the tick itself runs on the UI thread next to the controller.
type Poller struct {
	logger   *slog.Logger
	engine   ports.AudioEngine
	bus      ports.EventBus
	source   runtimeInfoSource
	interval time.Duration

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPoller creates a poller. A non-positive interval selects DefaultPollInterval.
func NewPoller(
	logger *slog.Logger,
	engine ports.AudioEngine,
	bus ports.EventBus,
	source runtimeInfoSource,
	interval time.Duration,
) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		logger:   logger,
		engine:   engine,
		bus:      bus,
		source:   source,
		interval: interval,
	}
}

// Tick reads the position once. Failed or negative reads are skipped without
// publishing anything, leaving the last display in place.
func (p *Poller) Tick() {
	pos, err := p.engine.Position()
	if err != nil {
		return
	}
	if pos < 0 {
		p.logger.Debug("negative position skipped", slog.Duration("position", pos))
		return
	}

	p.bus.Publish(domain.NewTrackProgressEvent(int(pos/time.Second), p.source.RuntimeInfo().DurationSeconds))
}

// Start launches the ticker. It runs until ctx is done or Stop is called.
// Starting a running poller is an error.
func (p *Poller) Start(ctx context.Context, dispatch ports.Dispatcher) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return domain.ErrAlreadyInitialized
	}

	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				dispatch(p.Tick)
			}
		}
	}()

	p.logger.Debug("poller started", slog.Duration("interval", p.interval))
	return nil
}

// Stop cancels the ticker and waits for its goroutine to exit.
// Stopping an idle poller is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	p.wg.Wait()
	p.logger.Debug("poller stopped")
}
