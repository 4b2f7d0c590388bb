package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/canvasdeck/internal/engine"
	"github.com/ivlev/canvasdeck/internal/logging"
	"github.com/ivlev/canvasdeck/internal/script"
	"github.com/ivlev/canvasdeck/internal/system"
	"github.com/ivlev/canvasdeck/internal/ui"
)

func renderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [deck]",
		Short: "Render every slide of a deck to PNG snapshots",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			start := time.Now()

			d, path, err := a.readDeck(cmd, args)
			if err != nil {
				ui.Fail(cmd.ErrOrStderr(), "%v", err)
				return err
			}

			var scripts *script.File
			if a.cfg.ScriptPath != "" {
				if scripts, err = script.ReadFile(a.cfg.ScriptPath); err != nil {
					ui.Fail(cmd.ErrOrStderr(), "%v", err)
					return err
				}
				ui.Step(out, "Using script: %s", a.cfg.ScriptPath)
			}

			cfg := *a.cfg
			if !cmd.Flags().Changed("output") {
				cfg.OutputDir = filepath.Join(cfg.OutputDir, runName(path, start))
			}

			ui.Step(out, "Deck: %s | Slides: %d", path, len(d.Slides))
			ui.Step(out, "Viewport: %dx%d | Recompute: %s", cfg.ViewportWidth, cfg.ViewportHeight, cfg.Recompute)

			p := engine.NewProject(&cfg, d, filepath.Dir(path), scripts, logging.Component(a.log, "engine"))
			snaps, err := p.Run(cmd.Context())
			if err != nil {
				ui.Fail(cmd.ErrOrStderr(), "%v", err)
				return err
			}

			for _, s := range snaps {
				fmt.Fprintf(out, "    %s %s\n", ui.Subtle.Sprintf("%-12s", s.SlideID), s.Path)
			}
			ui.Done(out, "Rendered %d slides in %s", len(snaps), time.Since(start).Round(time.Millisecond))
			if cfg.ShowStats {
				ui.Step(out, "Memory: %s", system.MemoryStats())
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringP("output", "o", "./snapshots", "Output directory (default: a timestamped folder under ./snapshots)")
	f.StringP("script", "s", "", "YAML script of input steps replayed per slide")
	f.IntP("workers", "w", 0, "Parallel renderers (0 = physical cores)")
	f.Int("dpi", 150, "DPI for PDF backgrounds")
	f.Bool("qr", false, "Stamp a QR code of each slide route")
	f.Bool("stats", false, "Print memory statistics when done")
	return cmd
}

// runName builds "<deck>_<timestamp>" for a render's output folder
func runName(deckPath string, at time.Time) string {
	base := filepath.Base(deckPath)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.ReplaceAll(name, " ", "_")
	return fmt.Sprintf("%s_%s", name, at.Format("2006-01-02_15-04-05"))
}
