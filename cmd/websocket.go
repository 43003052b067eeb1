package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"isafari/internal/handlers"
	"isafari/internal/services"
)

const (
	readLimit     = 4 << 10
	readDeadline  = 60 * time.Second
	writeDeadline = 5 * time.Second
	pingInterval  = 15 * time.Second
)

type hubClient struct {
	userID int
	conn   *websocket.Conn
	done   chan struct{}
}

type directMsg struct {
	userID  int
	payload []byte
}

// NotificationHub keeps the open notification sockets of every user. A user
// may be connected from several devices at once.
type NotificationHub struct {
	clients    map[int]map[*hubClient]struct{}
	register   chan *hubClient
	unregister chan *hubClient
	direct     chan directMsg
	stopped    chan struct{}
	log        services.Logger
}

func NewNotificationHub(log services.Logger) *NotificationHub {
	return &NotificationHub{
		clients:    make(map[int]map[*hubClient]struct{}),
		register:   make(chan *hubClient),
		unregister: make(chan *hubClient),
		direct:     make(chan directMsg, 64),
		stopped:    make(chan struct{}),
		log:        log,
	}
}

// Run owns the client map until ctx is cancelled, then closes every socket.
func (h *NotificationHub) Run(ctx context.Context) {
	defer close(h.stopped)
	for {
		select {
		case <-ctx.Done():
			for _, conns := range h.clients {
				for c := range conns {
					_ = writeClose(c.conn, websocket.CloseGoingAway, "server shutdown")
					_ = c.conn.Close()
				}
			}
			h.clients = map[int]map[*hubClient]struct{}{}
			return

		case c := <-h.register:
			if h.clients[c.userID] == nil {
				h.clients[c.userID] = make(map[*hubClient]struct{})
			}
			h.clients[c.userID][c] = struct{}{}
			h.log.Infof("ws register user=%d conns=%d", c.userID, len(h.clients[c.userID]))

			_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteJSON(map[string]interface{}{"event": "connected", "user_id": c.userID}); err != nil {
				h.remove(c)
			}

		case c := <-h.unregister:
			h.remove(c)

		case dm := <-h.direct:
			for c := range h.clients[dm.userID] {
				_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
				if err := c.conn.WriteMessage(websocket.TextMessage, dm.payload); err != nil {
					h.log.Errorf("ws send to user=%d: %v", dm.userID, err)
					h.remove(c)
				}
			}
		}
	}
}

func (h *NotificationHub) remove(c *hubClient) {
	conns, ok := h.clients[c.userID]
	if !ok {
		return
	}
	if _, ok := conns[c]; !ok {
		return
	}
	_ = c.conn.Close()
	delete(conns, c)
	if len(conns) == 0 {
		delete(h.clients, c.userID)
	}
	h.log.Infof("ws unregister user=%d", c.userID)
}

// SendToUser queues payload for every socket of userID. Users without an open
// socket are skipped.
func (h *NotificationHub) SendToUser(userID int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		h.log.Errorf("ws encode payload for user=%d: %v", userID, err)
		return
	}
	select {
	case h.direct <- directMsg{userID: userID, payload: data}:
	case <-h.stopped:
	}
}

func (h *NotificationHub) add(c *hubClient) bool {
	select {
	case h.register <- c:
		return true
	case <-h.stopped:
		return false
	}
}

func (h *NotificationHub) drop(c *hubClient) {
	select {
	case h.unregister <- c:
	case <-h.stopped:
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// NotificationsWS authenticates with ?token=<jwt> (or a bearer header) before
// upgrading; the socket is push-only.
func (app *application) NotificationsWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token, _ = bearerToken(r)
	}
	claims, err := app.tokens.Parse(token)
	if err != nil {
		handlers.Fail(w, http.StatusUnauthorized, "Invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		app.log.Errorf("ws upgrade: %v", err)
		return
	}
	conn.SetReadLimit(readLimit)
	_ = conn.SetReadDeadline(time.Now().Add(readDeadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readDeadline))
	})

	c := &hubClient{userID: claims.UserID, conn: conn, done: make(chan struct{})}
	if !app.hub.add(c) {
		_ = writeClose(conn, websocket.CloseGoingAway, "server shutdown")
		_ = conn.Close()
		return
	}

	go pingLoop(c)
	go readLoop(app.hub, c)
}

func pingLoop(c *hubClient) {
	t := time.NewTicker(pingInterval)
	defer t.Stop()
	for {
		select {
		case <-c.done:
			return
		case <-t.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeDeadline)); err != nil {
				return
			}
		}
	}
}

// readLoop drains client frames so pongs and close frames are processed.
func readLoop(hub *NotificationHub, c *hubClient) {
	defer func() {
		close(c.done)
		hub.drop(c)
	}()
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeClose(conn *websocket.Conn, code int, reason string) error {
	return conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(code, reason),
		time.Now().Add(writeDeadline),
	)
}
