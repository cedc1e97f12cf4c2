package cli

import (
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/ghprofile/internal/server"
	"github.com/dmitrymomot/ghprofile/pkg/logger"
)

func newServeCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the profile JSON API",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := flags.load()
			if err != nil {
				return err
			}

			log := newLogger(cfg, cmd.ErrOrStderr())
			defer logger.Flush(flushTimeout)

			ctx := cmd.Context()
			c, err := build(ctx, cfg, log)
			if err != nil {
				return err
			}

			opts := []server.Option{
				server.WithLogger(log),
				server.WithAddress(cfg.Server.Addr),
				server.WithReadTimeout(cfg.Server.ReadTimeout),
				server.WithWriteTimeout(cfg.Server.WriteTimeout),
				server.WithShutdownTimeout(cfg.Server.ShutdownTimeout),
				server.WithShutdownHook(c.close),
			}
			for name, check := range c.checks {
				opts = append(opts, server.WithHealthCheck(name, check))
			}

			return server.New(c.client, opts...).Run(ctx)
		},
	}
}
