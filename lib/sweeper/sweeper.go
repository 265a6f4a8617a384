package sweeper

import (
	"context"
	"sync"
	"time"

	"github.com/urbansetu/pricewatch/config"
	"github.com/urbansetu/pricewatch/lib"
	"github.com/urbansetu/pricewatch/lib/models"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Runner interface {
	SweepPriceDrops(ctx context.Context) (*models.AlertResult, error)
}

type Sweeper struct {
	log    *zap.Logger
	runner Runner

	interval time.Duration // Time between scheduled sweeps
	timeout  time.Duration // Upper bound for a single sweep

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewSweeper(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, svc *lib.Service) *Sweeper {
	s := New(log, svc, cfg.Sweep.Interval, cfg.Sweep.Timeout)
	if cfg.Sweep.Interval <= 0 {
		log.Sugar().Info("Scheduled sweeps are disabled since SWEEP_INTERVAL is not set")
		return s
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			s.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Sugar().Info("Trying to stop sweeper")
			s.Stop()
			return nil
		},
	})
	return s
}

func New(log *zap.Logger, runner Runner, interval, timeout time.Duration) *Sweeper {
	return &Sweeper{log: log, runner: runner, interval: interval, timeout: timeout}
}

func (s *Sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	c := newAlarmClock(s.interval).Start(ctx)
	go func() {
		defer close(s.done)
		for wakeup := range c {
			s.sweep(ctx, wakeup)
		}
	}()
	s.log.Sugar().Infow("Sweeper started", "interval", s.interval.String())
}

// Stop cancels the schedule and waits for an in-flight sweep to return.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel == nil {
		return
	}

	s.cancel()
	<-s.done
	s.cancel, s.done = nil, nil
	s.log.Sugar().Info("Sweeper stopped")
}

func (s *Sweeper) sweep(ctx context.Context, wakeup time.Time) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err := s.runner.SweepPriceDrops(ctx)
	if err != nil {
		s.log.Sugar().Errorw("Scheduled sweep failed", "scheduled_at", wakeup, "err", err)
		return
	}
	s.log.Sugar().Infow("Scheduled sweep finished",
		"scheduled_at", wakeup, "run_id", result.RunID, "success", result.Success)
}
