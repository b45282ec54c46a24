package ws_round

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	http_common "github.com/humanbelnik/jukebox/internal/delivery/http/common"
	"github.com/humanbelnik/jukebox/internal/model"
	"golang.org/x/sync/errgroup"
)

type Role string

const (
	RoleDisplay     Role = "display"
	RoleParticipant Role = "participant"
	RoleOperator    Role = "operator"
)

func (r Role) Valid() bool {
	return r == RoleDisplay || r == RoleParticipant || r == RoleOperator
}

const EventSnapshot = "SNAPSHOT"

// Snapshot is pushed to observers on subscribe and after every change.
// Tally is only present for operators while a round is open.
type Snapshot struct {
	Type       string                `json:"type"`
	Cause      model.EventType       `json:"cause,omitempty"`
	Round      *http_common.RoundDTO `json:"round"`
	Tally      map[string]int        `json:"tally,omitempty"`
	ServerTime time.Time             `json:"server_time"`
}

type Source interface {
	Current(ctx context.Context) (model.Round, error)
	LiveTally(ctx context.Context) (model.Round, model.Tally, error)
}

type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	role Role
}

func NewClient(hub *Hub, conn *websocket.Conn, role Role) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 16),
		role: role,
	}
}

// Hub keeps observer connections and pushes full snapshots to them. It
// never sends deltas, so a client may miss or repeat a message safely.
type Hub struct {
	source Source
	logger *slog.Logger
	now    func() time.Time

	mu      sync.RWMutex
	clients map[*Client]struct{}
}

type Option func(*Hub)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Hub) {
		h.logger = logger
	}
}

func WithClock(now func() time.Time) Option {
	return func(h *Hub) {
		h.now = now
	}
}

func NewHub(source Source, opts ...Option) *Hub {
	h := &Hub{
		source:  source,
		logger:  slog.Default(),
		now:     time.Now,
		clients: make(map[*Client]struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run refreshes observers on every event until events is closed or ctx is
// done.
func (h *Hub) Run(ctx context.Context, events <-chan model.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			if err := h.Refresh(ctx, e.Type); err != nil {
				h.logger.Error("failed to refresh observers",
					slog.String("event", string(e.Type)),
					slog.String("error", err.Error()),
				)
			}
		}
	}
}

// Register adds a client and sends it the current snapshot right away.
func (h *Hub) Register(ctx context.Context, c *Client) error {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	h.logger.Info("observer registered", slog.String("role", string(c.role)))

	payload, err := h.snapshot(ctx, c.role == RoleOperator, "")
	if err != nil {
		return err
	}
	h.deliver(c, payload)
	return nil
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
		h.logger.Info("observer unregistered", slog.String("role", string(c.role)))
	}
}

// Refresh rebuilds the public and operator snapshots and pushes them to
// every client.
func (h *Hub) Refresh(ctx context.Context, cause model.EventType) error {
	withOperators := h.hasOperators()

	var public, operator []byte
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		public, err = h.snapshot(gctx, false, cause)
		return err
	})
	if withOperators {
		g.Go(func() error {
			var err error
			operator, err = h.snapshot(gctx, true, cause)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		payload := public
		if c.role == RoleOperator {
			payload = operator
		}
		select {
		case c.send <- payload:
		default:
			// Too slow to keep up; it reconnects and gets a fresh snapshot.
			close(c.send)
			delete(h.clients, c)
		}
	}
	return nil
}

func (h *Hub) ClientsCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) hasOperators() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		if c.role == RoleOperator {
			return true
		}
	}
	return false
}

func (h *Hub) deliver(c *Client, payload []byte) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

func (h *Hub) snapshot(ctx context.Context, operator bool, cause model.EventType) ([]byte, error) {
	s := Snapshot{
		Type:       EventSnapshot,
		Cause:      cause,
		ServerTime: h.now(),
	}

	var (
		r     model.Round
		tally model.Tally
		err   error
	)
	if operator {
		r, tally, err = h.source.LiveTally(ctx)
	} else {
		r, err = h.source.Current(ctx)
	}
	switch {
	case errors.Is(err, model.ErrNotFound):
	case err != nil:
		return nil, err
	default:
		dto := http_common.NewRoundDTO(r, s.ServerTime)
		s.Round = &dto
		if operator && r.IsOpen() {
			s.Tally = tally
		}
	}

	return json.Marshal(s)
}

func (h *Hub) readPump(c *Client) {
	defer func() {
		h.Unregister(c)
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			break
		}
	}
}

func (h *Hub) writePump(c *Client) {
	const writeWait = 10 * time.Second
	defer c.conn.Close()

	for message := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			break
		}
	}
}
