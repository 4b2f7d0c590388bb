// Package config loads canvasdeck settings from canvasdeck.yaml and CANVASDECK_ environment variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/viper"

	"github.com/ivlev/canvasdeck/internal/canvas"
)

const (
	FileName  = "canvasdeck"
	EnvPrefix = "CANVASDECK"
)

type Config struct {
	DeckPath       string  `mapstructure:"deck"`
	ScriptPath     string  `mapstructure:"script"`
	OutputDir      string  `mapstructure:"outputDir"`
	ViewportWidth  int     `mapstructure:"viewportWidth"`
	ViewportHeight int     `mapstructure:"viewportHeight"`
	ZoomStep       float64 `mapstructure:"zoomStep"`
	Recompute      string  `mapstructure:"recompute"`
	Workers        int     `mapstructure:"workers"`
	DPI            int     `mapstructure:"dpi"`
	QR             bool    `mapstructure:"qr"`
	Listen         string  `mapstructure:"listen"`
	LogLevel       string  `mapstructure:"logLevel"`
	ShowStats      bool    `mapstructure:"showStats"`
	BuildVersion   string  `mapstructure:"-"`
}

// New returns a viper instance with defaults, env binding and the config search path set
func New(configDir string) *viper.Viper {
	v := viper.New()

	v.SetDefault("deck", "")
	v.SetDefault("script", "")
	v.SetDefault("outputDir", "./snapshots")
	v.SetDefault("viewportWidth", 1280)
	v.SetDefault("viewportHeight", 720)
	v.SetDefault("zoomStep", canvas.ZoomStep)
	v.SetDefault("recompute", "commit")
	// 0 means one worker per physical core
	v.SetDefault("workers", 0)
	v.SetDefault("dpi", 150)
	v.SetDefault("qr", false)
	v.SetDefault("listen", ":8080")
	v.SetDefault("logLevel", "info")
	v.SetDefault("showStats", false)

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	if configDir != "" {
		v.AddConfigPath(configDir)
	}
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load reads the config file if present. A missing file is not an error.
func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		errs = append(errs, fmt.Errorf("viewport must be positive, got %dx%d", c.ViewportWidth, c.ViewportHeight))
	}
	if c.ZoomStep <= 0 || math.IsNaN(c.ZoomStep) || math.IsInf(c.ZoomStep, 0) {
		errs = append(errs, fmt.Errorf("zoomStep must be positive and finite, got %v", c.ZoomStep))
	}
	if c.Recompute != "commit" && c.Recompute != "settle" {
		errs = append(errs, fmt.Errorf("recompute must be commit or settle, got %q", c.Recompute))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers must not be negative, got %d", c.Workers))
	}
	if c.DPI <= 0 {
		errs = append(errs, fmt.Errorf("dpi must be positive, got %d", c.DPI))
	}
	return errors.Join(errs...)
}

// Viewport is the container rect snapshots and sessions are laid out in
func (c *Config) Viewport() canvas.Rect {
	return canvas.Rect{W: float64(c.ViewportWidth), H: float64(c.ViewportHeight)}
}
