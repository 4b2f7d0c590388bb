package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ivlev/canvasdeck/internal/config"
	"github.com/ivlev/canvasdeck/internal/deck"
	"github.com/ivlev/canvasdeck/internal/logging"
	"github.com/ivlev/canvasdeck/internal/ui"
)

var version = "dev"

// decksDir is searched for the newest deck when none is given
const decksDir = "decks"

// flagKeys maps CLI flags onto config keys so flags override file and env values
var flagKeys = map[string]string{
	"log-level": "logLevel",
	"width":     "viewportWidth",
	"height":    "viewportHeight",
	"zoom-step": "zoomStep",
	"recompute": "recompute",
	"workers":   "workers",
	"dpi":       "dpi",
	"qr":        "qr",
	"output":    "outputDir",
	"script":    "script",
	"listen":    "listen",
	"stats":     "showStats",
}

// app is the state shared by subcommands after the root pre-run
type app struct {
	configDir string
	preset    string
	cfg       *config.Config
	log       zerolog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "canvasdeck",
		Short:         "Pan/zoom canvas slides with disclosure trees and connectors",
		Long:          ui.Brand.Sprint("canvasdeck") + " renders, inspects and serves interactive canvas slide decks",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}
	root.SetVersionTemplate("canvasdeck {{ .Version }}\n")

	pf := root.PersistentFlags()
	pf.StringVar(&a.configDir, "config", "", "Directory containing canvasdeck.yaml")
	pf.String("log-level", "info", "Log level: debug, info, warn, error")
	pf.Int("width", 1280, "Viewport width")
	pf.Int("height", 720, "Viewport height")
	pf.StringVar(&a.preset, "preset", "", "Viewport preset: 16:9, 9:16, 4:5")
	pf.Float64("zoom-step", 0.1, "Scale change per wheel notch")
	pf.String("recompute", "commit", "Connector recompute policy: commit, settle")

	root.AddCommand(
		renderCmd(a),
		serveCmd(a),
		inspectCmd(a),
		validateCmd(a),
	)

	root.SetErr(os.Stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		ui.Fail(cmd.ErrOrStderr(), "%v", err)
		return err
	})
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	v := config.New(a.configDir)
	if err := bindFlags(cmd, v); err != nil {
		return err
	}

	cfg, err := config.Load(v)
	if err != nil {
		ui.Fail(cmd.ErrOrStderr(), "%v", err)
		return err
	}
	cfg.BuildVersion = version

	switch a.preset {
	case "":
	case "16:9":
		cfg.ViewportWidth, cfg.ViewportHeight = 1280, 720
	case "9:16":
		cfg.ViewportWidth, cfg.ViewportHeight = 720, 1280
	case "4:5":
		cfg.ViewportWidth, cfg.ViewportHeight = 1080, 1350
	default:
		err := fmt.Errorf("unknown preset %q", a.preset)
		ui.Fail(cmd.ErrOrStderr(), "%v", err)
		return err
	}

	a.cfg = cfg
	a.log = logging.Console(cfg.LogLevel)
	return nil
}

func bindFlags(cmd *cobra.Command, v *viper.Viper) error {
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind --%s: %w", name, err)
		}
	}
	return nil
}

// resolveDeck picks the deck from args, then config, then the newest file in decks/
func (a *app) resolveDeck(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if a.cfg.DeckPath != "" {
		return a.cfg.DeckPath, nil
	}
	latest, err := deck.FindLatestDeck(decksDir)
	if err != nil {
		return "", fmt.Errorf("%w; pass a deck path or put one in %s/", err, decksDir)
	}
	ui.Step(cmd.OutOrStdout(), "Selected deck: %s", latest)
	return latest, nil
}

// readDeck resolves and parses the deck, returning its path
func (a *app) readDeck(cmd *cobra.Command, args []string) (*deck.Deck, string, error) {
	path, err := a.resolveDeck(cmd, args)
	if err != nil {
		return nil, "", err
	}
	d, err := deck.ReadDeck(path)
	if err != nil {
		return nil, "", err
	}
	return d, path, nil
}
