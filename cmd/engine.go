package cmd

import (
	"taskmill/internal/engine"
	"time"

	"github.com/spf13/cobra"
)

func engineCmd() *cobra.Command {
	var (
		tenants     []string
		interval    time.Duration
		baseBackoff time.Duration
		maxBackoff  time.Duration
	)

	var command = &cobra.Command{
		Use:   "engine",
		Short: "Start automation engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return engine.Run(engine.Config{
				Tenants:     tenants,
				Interval:    interval,
				BaseBackoff: baseBackoff,
				MaxBackoff:  maxBackoff,
			})
		},
	}

	command.Flags().StringSliceVar(&tenants, "tenant", nil, "Tenant ids to tick (defaults to Engine_Tenants)")
	command.Flags().DurationVar(&interval, "interval", 0, "Tick interval (defaults to Engine_TickInterval)")
	command.Flags().DurationVar(&baseBackoff, "base-backoff", 500*time.Millisecond, "Base backoff duration")
	command.Flags().DurationVar(&maxBackoff, "max-backoff", 30*time.Second, "Max backoff duration")

	return command
}
