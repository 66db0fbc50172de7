package settlement

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/daristays/service-booking/internal/application"
)

// Sweeper periodically releases held funds for bookings whose dispute window
// has elapsed without a dispute. It only moves bookings to settlement_pending
// and requests the payout; the payment service confirms the actual transfer.
type Sweeper struct {
	service   *application.BookingService
	interval  time.Duration
	batchSize int
	logger    *zap.Logger
}

// NewSweeper creates a settlement sweeper.
func NewSweeper(service *application.BookingService, interval time.Duration, batchSize int, logger *zap.Logger) *Sweeper {
	if interval <= 0 {
		interval = time.Minute
	}
	if batchSize <= 0 {
		batchSize = 100
	}
	return &Sweeper{
		service:   service,
		interval:  interval,
		batchSize: batchSize,
		logger:    logger,
	}
}

// Run sweeps on a fixed interval until the context is cancelled. A sweep
// failure is logged and the next tick retries; due bookings are never lost,
// only delayed.
func (s *Sweeper) Run(ctx context.Context) {
	s.logger.Info("settlement sweeper started",
		zap.Duration("interval", s.interval),
		zap.Int("batch_size", s.batchSize),
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("settlement sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	processed, err := s.service.SettleDueBookings(ctx, time.Now().UTC(), s.batchSize)
	if err != nil {
		s.logger.Error("settlement sweep failed", zap.Error(err))
		return
	}
	if processed > 0 {
		s.logger.Info("settlement sweep completed", zap.Int("payouts_requested", processed))
	}
}
