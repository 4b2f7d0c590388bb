// Package engine renders every slide of a deck to PNG snapshots in parallel.
package engine

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/canvasdeck/internal/config"
	"github.com/ivlev/canvasdeck/internal/deck"
	"github.com/ivlev/canvasdeck/internal/render"
	"github.com/ivlev/canvasdeck/internal/script"
	"github.com/ivlev/canvasdeck/internal/slide"
	"github.com/ivlev/canvasdeck/internal/source"
	"github.com/ivlev/canvasdeck/internal/system"
)

type Project struct {
	Config *config.Config
	Deck   *deck.Deck
	// Scripts is optional; slides without a script render their initial state
	Scripts *script.File
	Log     zerolog.Logger

	backgrounds *source.Cache
}

// Snapshot is one rendered slide
type Snapshot struct {
	Index   int
	SlideID string
	Path    string
	Frame   slide.Frame
}

// NewProject resolves relative background paths against deckDir
func NewProject(cfg *config.Config, d *deck.Deck, deckDir string, scripts *script.File, log zerolog.Logger) *Project {
	return &Project{
		Config:      cfg,
		Deck:        d,
		Scripts:     scripts,
		Log:         log,
		backgrounds: source.NewCache(deckDir, cfg.DPI),
	}
}

// Run renders all slides into Config.OutputDir. Snapshots come back in deck order.
func (p *Project) Run(ctx context.Context) ([]Snapshot, error) {
	start := time.Now()

	slides := p.Deck.Slides
	if len(slides) == 0 {
		return nil, fmt.Errorf("deck has no slides")
	}
	policy, err := slide.ParseRecomputePolicy(p.Config.Recompute)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(p.Config.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	workers := system.ResolveWorkers(p.Config.Workers, len(slides))
	p.Log.Info().
		Int("slides", len(slides)).
		Int("workers", workers).
		Str("viewport", fmt.Sprintf("%dx%d", p.Config.ViewportWidth, p.Config.ViewportHeight)).
		Msg("rendering deck")

	results := make([]Snapshot, len(slides))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range slides {
		i := i // per-iteration copy; go directive is 1.21
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			snap, err := p.renderSlide(i, slides[i], policy)
			if err != nil {
				return fmt.Errorf("slide %q: %w", slides[i].ID, err)
			}
			results[i] = snap
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.Log.Info().Dur("elapsed", time.Since(start)).Str("output", p.Config.OutputDir).Msg("deck rendered")
	return results, nil
}

func (p *Project) renderSlide(index int, def deck.Slide, policy slide.RecomputePolicy) (Snapshot, error) {
	log := p.Log.With().Str("slide", def.ID).Logger()

	sl, err := slide.New(def, p.Config.Viewport(), slide.Options{
		ZoomStep:  p.Config.ZoomStep,
		Recompute: policy,
		Logger:    &log,
	})
	if err != nil {
		return Snapshot{}, err
	}

	if steps := p.Scripts.For(def.ID); len(steps) > 0 {
		if _, err := script.Apply(sl, steps); err != nil {
			return Snapshot{}, err
		}
		log.Debug().Int("steps", len(steps)).Msg("script replayed")
	}

	var bg image.Image
	if def.Background != "" {
		if bg, err = p.backgrounds.Get(def.Background); err != nil {
			return Snapshot{}, err
		}
	}

	frame := sl.Frame()
	img, err := render.Frame(frame, render.Options{Background: bg, QR: p.Config.QR})
	if err != nil {
		return Snapshot{}, err
	}
	defer render.Release(img)

	path := filepath.Join(p.Config.OutputDir, fmt.Sprintf("%02d_%s.png", index+1, def.ID))
	if err := render.WritePNG(img, path); err != nil {
		return Snapshot{}, err
	}
	log.Debug().Str("path", path).Msg("snapshot written")

	return Snapshot{Index: index, SlideID: def.ID, Path: path, Frame: frame}, nil
}
