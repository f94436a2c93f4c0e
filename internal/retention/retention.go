package retention

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/fx"

	"github.com/orgball2608/piazza/internal/repositories/post"
	"github.com/orgball2608/piazza/pkg/config"
	"github.com/orgball2608/piazza/pkg/logger"
)

const sweepTimeout = time.Minute

type Opts struct {
	fx.In

	LC       fx.Lifecycle
	PostRepo post.Repository
	Clock    clockwork.Clock
	Logger   logger.Logger
	Config   *config.Config
}

// Pruner deletes posts that expired more than After ago. Expiry itself is never
// stored, so pruning does not change the status of any remaining post.
type Pruner struct {
	PostRepo post.Repository
	Clock    clockwork.Clock
	Logger   logger.Logger
	After    time.Duration
	Interval time.Duration
}

func New(opts Opts) (*Pruner, error) {
	p := &Pruner{
		PostRepo: opts.PostRepo,
		Clock:    opts.Clock,
		Logger:   opts.Logger.WithComponent("Retention"),
		After:    opts.Config.Retention.After,
		Interval: opts.Config.Retention.Interval,
	}

	if !p.Enabled() {
		p.Logger.Info("Retention disabled")
		return p, nil
	}

	scheduler, err := p.Schedule()
	if err != nil {
		return nil, err
	}

	opts.LC.Append(fx.Hook{
		OnStart: func(context.Context) error {
			scheduler.Start()
			p.Logger.Info("Retention scheduled", "after", p.After, "interval", p.Interval)
			return nil
		},
		OnStop: func(context.Context) error {
			return scheduler.Shutdown()
		},
	})

	return p, nil
}

func (p *Pruner) Enabled() bool {
	return p.After > 0 && p.Interval > 0
}

// Schedule registers the sweep as a singleton duration job. The scheduler is not started.
func (p *Pruner) Schedule() (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler(gocron.WithClock(p.Clock))
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(p.Interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
			defer cancel()

			if _, err := p.Sweep(ctx); err != nil {
				p.Logger.Error("Retention sweep failed", "error", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule retention job: %w", err)
	}

	return scheduler, nil
}

// Sweep deletes every post whose expiry is older than now minus After.
func (p *Pruner) Sweep(ctx context.Context) (int64, error) {
	if !p.Enabled() {
		return 0, nil
	}

	cutoff := p.Clock.Now().Add(-p.After)
	removed, err := p.PostRepo.DeleteExpiredBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete posts expired before %s: %w", cutoff.Format(time.RFC3339), err)
	}

	if removed > 0 {
		p.Logger.Info("Pruned expired posts", "count", removed, "cutoff", cutoff)
	}
	return removed, nil
}

var Module = fx.Module("retention",
	fx.Provide(New),
	fx.Invoke(func(*Pruner) {}),
)
