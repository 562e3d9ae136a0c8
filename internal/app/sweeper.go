package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	ucBooking "github.com/HamidBoasidah/namaa-sub001/internal/usecase/booking"
)

// Sweeper runs the expiry sweep on a fixed interval. A failed cycle is
// logged and skipped: stale holds stop blocking on their own and get
// picked up by the next cycle.
type Sweeper struct {
	sweep    *ucBooking.ExpireSweep
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
}

func NewSweeper(sweep *ucBooking.ExpireSweep, interval time.Duration, logger *zap.Logger) *Sweeper {
	return &Sweeper{
		sweep:    sweep,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("starting expiry sweeper", zap.Duration("interval", s.interval))

	go s.run(ctx)
}

func (s *Sweeper) Stop() {
	s.logger.Info("stopping expiry sweeper")
	close(s.stopChan)
}

func (s *Sweeper) run(ctx context.Context) {
	// first sweep right away so a restart does not leave stale holds
	// sitting for a full interval
	s.sweepOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweepOnce(ctx)
		case <-s.stopChan:
			s.logger.Info("expiry sweeper stopped")
			return
		case <-ctx.Done():
			s.logger.Info("expiry sweeper cancelled")
			return
		}
	}
}

func (s *Sweeper) sweepOnce(ctx context.Context) {
	expired, err := s.sweep.Execute(ctx)
	if err != nil {
		s.logger.Error("expiry sweep failed", zap.Error(err))
		return
	}

	if expired > 0 {
		s.logger.Info("expired stale holds", zap.Int64("count", expired))
	}
}
