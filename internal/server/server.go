// Package server exposes slides over HTTP and runs live websocket sessions.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/ivlev/canvasdeck/internal/canvas"
	"github.com/ivlev/canvasdeck/internal/config"
	"github.com/ivlev/canvasdeck/internal/deck"
	"github.com/ivlev/canvasdeck/internal/slide"
	"github.com/ivlev/canvasdeck/internal/source"
)

var ErrUnknownSlide = errors.New("unknown slide")

const shutdownTimeout = 5 * time.Second

type Server struct {
	cfg         *config.Config
	deck        *deck.Deck
	policy      slide.RecomputePolicy
	backgrounds *source.Cache
	log         zerolog.Logger
	upgrader    websocket.Upgrader
	sessions    atomic.Int64
}

// New validates the deck once up front so sessions can't fail on content errors
func New(cfg *config.Config, d *deck.Deck, deckDir string, log zerolog.Logger) (*Server, error) {
	policy, err := slide.ParseRecomputePolicy(cfg.Recompute)
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("invalid deck: %w", err)
	}
	return &Server{
		cfg:         cfg,
		deck:        d,
		policy:      policy,
		backgrounds: source.NewCache(deckDir, cfg.DPI),
		log:         log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}, nil
}

// Router wires the REST and websocket routes
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/slides", s.ListSlides).Methods(http.MethodGet)
	api.HandleFunc("/slides/{id}/frame", s.GetFrame).Methods(http.MethodGet)
	api.HandleFunc("/slides/{id}/snapshot.png", s.GetSnapshot).Methods(http.MethodGet)

	r.HandleFunc("/ws/slides/{id}", s.Session).Methods(http.MethodGet)
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", srv.Addr).Int("slides", len(s.deck.Slides)).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.log.Info().Msg("server stopped")
	return nil
}

// newSession builds a fresh, unshared session for a slide
func (s *Server) newSession(id string, viewport canvas.Rect) (*slide.Slide, *deck.Slide, error) {
	def, ok := s.deck.FindSlide(id)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", ErrUnknownSlide, id)
	}
	log := s.log.With().Str("slide", id).Logger()
	sl, err := slide.New(*def, viewport, slide.Options{
		ZoomStep:  s.cfg.ZoomStep,
		Recompute: s.policy,
		Logger:    &log,
	})
	if err != nil {
		return nil, nil, err
	}
	return sl, def, nil
}

// ActiveSessions is the number of open websocket sessions
func (s *Server) ActiveSessions() int64 {
	return s.sessions.Load()
}
