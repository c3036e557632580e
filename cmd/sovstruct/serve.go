package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ukaji3/sovstruct/internal/config"
	"github.com/ukaji3/sovstruct/internal/server"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the processing API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return server.New(server.Config{
				Addr:      cfg.Server.Addr,
				Completer: config.NewCompleter(cfg.Completion),
				Logger:    logger,
			}).Serve(ctx)
		},
	}

	cmd.Flags().String("addr", config.DefaultServerAddr, "Listen address")
	return cmd
}
