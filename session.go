package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Archna-29/portfolio/internal/layout"
	"github.com/Archna-29/portfolio/internal/player"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// clientMessage is everything the page sends over the socket.
type clientMessage struct {
	Type  string  `json:"type"` // "scroll", "toggle", "volume" or "audio:done"
	Y     float64 `json:"y"`
	Value float64 `json:"value"`
	ID    uint64  `json:"id"`
	Error string  `json:"error"`
}

type sessionMessage struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type layoutMessage struct {
	Type    string `json:"type"`
	Compact bool   `json:"compact"`
	Mode    string `json:"mode"`
}

type playerMessage struct {
	Type    string  `json:"type"`
	Playing bool    `json:"playing"`
	Volume  float64 `json:"volume"`
	Status  string  `json:"status"`
}

// session is one page view: the scroll-driven layout and the music widget,
// mounted for as long as the socket stays open.
type session struct {
	id   string
	conn *websocket.Conn

	writeMu sync.Mutex

	scroll *layout.Signal
	layout *layout.Controller
	player *player.Controller
	audio  *remoteAudio
}

func newSession(conn *websocket.Conn, cfg Config) *session {
	s := &session{
		id:     uuid.NewString(),
		conn:   conn,
		scroll: layout.NewSignal(),
		layout: layout.New(),
		player: player.New(player.WithVolume(cfg.InitialVolume)),
	}
	s.audio = newRemoteAudio(s.write)

	s.layout.OnChange(func(m layout.Mode) {
		s.write(layoutMessage{Type: "layout", Compact: m == layout.Compact, Mode: m.String()})
	})
	s.player.OnChange(func(st player.State) {
		s.write(playerMessage{
			Type:    "player",
			Playing: st.IsPlaying(),
			Volume:  st.Volume,
			Status:  st.Status.String(),
		})
	})
	return s
}

func (s *session) write(v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteJSON(v)
}

// run mounts both controllers and serves the socket until the page goes
// away. Both controllers are unmounted on every exit path.
func (s *session) run(ctx context.Context) {
	defer s.conn.Close()

	if err := s.write(sessionMessage{Type: "session", ID: s.id}); err != nil {
		log.Printf("session %s: hello: %v", s.id, err)
		return
	}

	s.layout.Mount(s.scroll)
	defer s.layout.Unmount()

	s.player.Mount(ctx, s.audio)
	defer s.player.Unmount()

	s.conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("session %s: read: %v", s.id, err)
			}
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			log.Printf("session %s: invalid message: %v", s.id, err)
			continue
		}
		s.dispatch(msg)
	}
}

func (s *session) dispatch(msg clientMessage) {
	switch msg.Type {
	case "scroll":
		s.scroll.Publish(msg.Y)
	case "toggle":
		s.player.HandlePlayPause()
	case "volume":
		s.player.HandleVolumeChange(msg.Value)
	case "audio:done":
		s.audio.resolve(msg.ID, msg.Error)
	default:
		log.Printf("session %s: unknown message type %q", s.id, msg.Type)
	}
}

func serveSession(cfg Config, visitor string, w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade: %v", err)
		return
	}
	s := newSession(conn, cfg)
	log.Printf("session %s: opened for visitor %s", s.id, visitor)
	s.run(r.Context())
	log.Printf("session %s: closed", s.id)
}
