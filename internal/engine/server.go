package engine

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskmill/internal/config"
	"taskmill/internal/infra/redisstore"
	"taskmill/internal/infra/sysclock"
	"taskmill/internal/usecase"
	"taskmill/pkg/backoff"

	"github.com/rs/zerolog/log"
)

type Config struct {
	Tenants     []string
	Interval    time.Duration
	BaseBackoff time.Duration
	MaxBackoff  time.Duration
}

// Run ticks the automation engine for the configured tenants until the
// process is signalled. One engine process per tenant set is the deployment
// rule that keeps each due occurrence executed at most once.
func Run(cfg Config) error {
	appCfg := config.Load()
	cli := redisstore.New(appCfg.Redis)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Connect(ctx); err != nil {
		return err
	}

	tenants := cfg.Tenants
	if len(tenants) == 0 {
		tenants = appCfg.Engine.Tenants
	}
	interval := cfg.Interval
	if interval <= 0 {
		if d, err := time.ParseDuration(appCfg.Engine.TickInterval); err == nil {
			interval = d
		} else {
			interval = time.Minute
		}
	}

	runner := usecase.Runner{
		Automations: redisstore.NewAutomationStore(cli),
		Tasks:       redisstore.NewTaskStore(cli),
		Directory:   redisstore.NewDirectory(cli),
		Clock:       sysclock.Clock{},
	}

	log.Ctx(ctx).Info().
		Strs("tenants", tenants).
		Dur("interval", interval).
		Msg("engine started")

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	failures := 0
	for {
		for _, tenant := range tenants {
			executed, err := runner.RunEngine(ctx, tenant)
			if err != nil {
				failures++
				delay := backoff.ExponentialJitter(cfg.BaseBackoff, cfg.MaxBackoff, failures)
				log.Ctx(ctx).Error().Err(err).
					Str("tenant", tenant).
					Dur("delay", delay).
					Msg("engine tick failed")
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(delay):
				}
				continue
			}
			failures = 0
			if executed > 0 {
				log.Ctx(ctx).Info().
					Str("tenant", tenant).
					Int("executed", executed).
					Msg("automations executed")
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
