package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/ivlev/canvasdeck/internal/canvas"
	"github.com/ivlev/canvasdeck/internal/render"
)

// SlideSummary is one entry of the slide listing
type SlideSummary struct {
	ID         string `json:"id"`
	Title      string `json:"title,omitempty"`
	Route      string `json:"route,omitempty"`
	Nodes      int    `json:"nodes"`
	Connectors int    `json:"connectors"`
}

// ListSlides returns every slide of the deck
// GET /api/slides
func (s *Server) ListSlides(w http.ResponseWriter, r *http.Request) {
	slides := make([]SlideSummary, 0, len(s.deck.Slides))
	for _, sl := range s.deck.Slides {
		slides = append(slides, SlideSummary{
			ID:         sl.ID,
			Title:      sl.Title,
			Route:      sl.Route,
			Nodes:      len(sl.Nodes),
			Connectors: len(sl.Connectors),
		})
	}
	if err := writeJSON(w, slides); err != nil {
		s.log.Warn().Err(err).Msg("write slide list failed")
	}
}

// GetFrame returns the initial frame of a slide
// GET /api/slides/{id}/frame?width=..&height=..
func (s *Server) GetFrame(w http.ResponseWriter, r *http.Request) {
	viewport, err := s.viewport(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sl, _, err := s.newSession(mux.Vars(r)["id"], viewport)
	if err != nil {
		s.sessionError(w, err)
		return
	}
	if err := writeJSON(w, sl.Frame()); err != nil {
		s.log.Warn().Err(err).Str("slide", sl.ID()).Msg("write frame failed")
	}
}

// GetSnapshot renders the initial frame of a slide as PNG
// GET /api/slides/{id}/snapshot.png?width=..&height=..&qr=1
func (s *Server) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	viewport, err := s.viewport(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sl, def, err := s.newSession(mux.Vars(r)["id"], viewport)
	if err != nil {
		s.sessionError(w, err)
		return
	}

	var bg image.Image
	if def.Background != "" {
		if bg, err = s.backgrounds.Get(def.Background); err != nil {
			s.log.Error().Err(err).Str("slide", def.ID).Msg("background failed")
			http.Error(w, "background unavailable", http.StatusInternalServerError)
			return
		}
	}

	qr := s.cfg.QR || r.URL.Query().Get("qr") == "1"
	img, err := render.Frame(sl.Frame(), render.Options{Background: bg, QR: qr})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	defer render.Release(img)

	w.Header().Set("Content-Type", "image/png")
	if err := render.Encode(w, img); err != nil {
		s.log.Warn().Err(err).Msg("snapshot write failed")
	}
}

func (s *Server) sessionError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrUnknownSlide) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	s.log.Error().Err(err).Msg("session failed")
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// viewport reads optional width/height query parameters, defaulting to the configured size
func (s *Server) viewport(r *http.Request) (canvas.Rect, error) {
	v := s.cfg.Viewport()
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *float64
	}{{"width", &v.W}, {"height", &v.H}} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil || n <= 0 || n > 8192 {
			return canvas.Rect{}, fmt.Errorf("invalid %s %q", p.name, raw)
		}
		*p.dst = n
	}
	return v, nil
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}
