// Package scheduler runs the periodic status refresh that the dashboard
// used to drive from a client-side timer. Each tick is an independent
// stateless read; the poller only adds the schedule and a cancellation
// handle.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/zellohq/devportal/internal/usecase"
)

type StatusPoller struct {
	overview usecase.StatusOverviewUsecase
	logger   zerolog.Logger
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

func NewStatusPoller(overview usecase.StatusOverviewUsecase, logger zerolog.Logger, interval time.Duration) *StatusPoller {
	return &StatusPoller{
		overview: overview,
		logger:   logger,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start polls immediately, then on every tick until Stop is called or ctx
// is cancelled.
func (p *StatusPoller) Start(ctx context.Context) {
	p.poll(ctx)
	ticker := time.NewTicker(p.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				p.poll(ctx)
			case <-p.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop halts the tick loop. Safe to call more than once.
func (p *StatusPoller) Stop() {
	p.stopOnce.Do(func() { close(p.stopCh) })
}

func (p *StatusPoller) poll(ctx context.Context) {
	out, err := p.overview.Execute(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("status poll failed")
		return
	}
	p.logger.Info().
		Int("total_services", out.Summary.TotalServices).
		Int("deployed", out.Summary.DeployedServices).
		Int("healthy", out.Summary.Healthy).
		Int("unhealthy", out.Summary.Unhealthy).
		Msg("status poll")
}
