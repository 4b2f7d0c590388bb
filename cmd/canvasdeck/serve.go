package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ivlev/canvasdeck/internal/logging"
	"github.com/ivlev/canvasdeck/internal/server"
	"github.com/ivlev/canvasdeck/internal/system"
	"github.com/ivlev/canvasdeck/internal/ui"
)

func serveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [deck]",
		Short: "Serve slide frames, snapshots and live websocket sessions",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, path, err := a.readDeck(cmd, args)
			if err != nil {
				ui.Fail(cmd.ErrOrStderr(), "%v", err)
				return err
			}

			log := logging.Component(a.log, "server")
			system.RaiseFileLimit(4096, log)

			srv, err := server.New(a.cfg, d, filepath.Dir(path), log)
			if err != nil {
				ui.Fail(cmd.ErrOrStderr(), "%v", err)
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ui.Step(cmd.OutOrStdout(), "Serving %d slides on %s", len(d.Slides), a.cfg.Listen)
			if err := srv.ListenAndServe(ctx); err != nil {
				ui.Fail(cmd.ErrOrStderr(), "%v", err)
				return err
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringP("listen", "l", ":8080", "Listen address")
	f.Int("dpi", 150, "DPI for PDF backgrounds")
	f.Bool("qr", false, "Stamp a QR code of the slide route on snapshots")
	return cmd
}
