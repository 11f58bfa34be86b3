package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-folio/internal/metrics"
	"github.com/goliatone/go-folio/internal/server"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the portfolio site and the contact endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := loadRuntime(root)
			if err != nil {
				return err
			}
			if addr != "" {
				rt.cfg.Server.Addr = addr
			}
			var m *metrics.Metrics
			if rt.cfg.Server.Metrics {
				m = metrics.New()
			}
			sender, err := newSender(rt.cfg.Contact, m)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			deps := server.Deps{
				Orchestrator: rt.orch,
				Source:       rt.source,
				Sender:       sender,
				Metrics:      m,
				Logger:       rt.logger,
				Version:      version,
			}
			srv, err := server.New(ctx, rt.cfg, deps)
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
