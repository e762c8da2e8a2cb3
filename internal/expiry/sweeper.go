package expiry

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/sirupsen/logrus"
)

type VIPStore interface {
	ExpireVIP(ctx context.Context, now time.Time) (int64, error)
}

// Sweeper periodically revokes VIP status whose expiry has passed. Approval
// only ever sets the expiry; this job is what ends it.
type Sweeper struct {
	store    VIPStore
	interval time.Duration
	now      func() time.Time
	log      logrus.FieldLogger
}

func NewSweeper(store VIPStore, interval time.Duration, log logrus.FieldLogger) *Sweeper {
	return &Sweeper{
		store:    store,
		interval: interval,
		now:      time.Now,
		log:      log.WithField("component", "vip_expiry"),
	}
}

// Run schedules Sweep every interval, starting immediately, and blocks until
// ctx is done. Runs never overlap.
func (s *Sweeper) Run(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(s.interval),
		gocron.NewTask(func() { s.Sweep(ctx) }),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return fmt.Errorf("failed to schedule vip expiry: %w", err)
	}

	sched.Start()
	s.log.WithField("interval", s.interval.String()).Info("vip expiry sweeper started")

	<-ctx.Done()
	if err := sched.Shutdown(); err != nil {
		return fmt.Errorf("failed to stop scheduler: %w", err)
	}
	s.log.Info("vip expiry sweeper stopped")
	return nil
}

func (s *Sweeper) Sweep(ctx context.Context) int64 {
	n, err := s.store.ExpireVIP(ctx, s.now())
	if err != nil {
		if ctx.Err() == nil {
			s.log.WithError(err).Error("failed to expire VIP status")
		}
		return 0
	}
	if n > 0 {
		s.log.WithField("users", n).Info("VIP status expired")
	}
	return n
}
