package server

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/ivlev/canvasdeck/internal/input"
	"github.com/ivlev/canvasdeck/internal/script"
	"github.com/ivlev/canvasdeck/internal/slide"
)

const writeWait = 10 * time.Second

// Reply answers every client message. Result is nil for session commands.
type Reply struct {
	Result *input.Result `json:"result,omitempty"`
	Frame  *slide.Frame  `json:"frame,omitempty"`
	Error  string        `json:"error,omitempty"`
}

// Session upgrades to a websocket that owns one fresh slide session.
// Clients send steps (input events or commands) as JSON and receive a Reply per step.
// GET /ws/slides/{id}?width=..&height=..
func (s *Server) Session(w http.ResponseWriter, r *http.Request) {
	viewport, err := s.viewport(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id := mux.Vars(r)["id"]
	sl, _, err := s.newSession(id, viewport)
	if err != nil {
		s.sessionError(w, err)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	active := s.sessions.Add(1)
	defer s.sessions.Add(-1)
	log := s.log.With().Str("slide", id).Str("remote", r.RemoteAddr).Logger()
	log.Info().Int64("active", active).Msg("session opened")

	frame := sl.Frame()
	if err := send(conn, Reply{Frame: &frame}); err != nil {
		log.Warn().Err(err).Msg("session write failed")
		return
	}

	for {
		var step script.Step
		if err := conn.ReadJSON(&step); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warn().Err(err).Msg("session read failed")
			}
			break
		}

		res, err := script.ApplyStep(sl, step)
		if err != nil {
			if err := send(conn, Reply{Error: err.Error()}); err != nil {
				break
			}
			continue
		}

		frame := sl.Frame()
		if err := send(conn, Reply{Result: res, Frame: &frame}); err != nil {
			log.Warn().Err(err).Msg("session write failed")
			break
		}
	}
	log.Info().Msg("session closed")
}

func send(conn *websocket.Conn, reply Reply) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(reply)
}
