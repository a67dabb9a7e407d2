package websocketPkg

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

const (
	TypeNotification = "notification"
	TypeAnalysis     = "analysis"
)

type Notification struct {
	Type      string      `json:"type"`
	Level     Level       `json:"level"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

const defaultWriteTimeout = 5 * time.Second

// Conn is the subset of a websocket connection the hub writes to.
type Conn interface {
	SetWriteDeadline(t time.Time) error
	WriteJSON(v interface{}) error
	Close() error
}

type IHub interface {
	Register(conn Conn) string
	Unregister(id string)
	Broadcast(n Notification)
	Notify(level Level, message string)
	Count() int
	CloseAll()
}

type client struct {
	mu   sync.Mutex
	conn Conn
}

type hub struct {
	mu           sync.RWMutex
	clients      map[string]*client
	log          *logrus.Logger
	onChange     func(count int)
	writeTimeout time.Duration
}

type Option func(*hub)

// WithCountObserver is called with the client count after every change.
func WithCountObserver(fn func(count int)) Option {
	return func(h *hub) {
		h.onChange = fn
	}
}

// WithWriteTimeout bounds each write; a client that cannot take a
// notification in time is dropped.
func WithWriteTimeout(d time.Duration) Option {
	return func(h *hub) {
		if d > 0 {
			h.writeTimeout = d
		}
	}
}

func NewHub(log *logrus.Logger, opts ...Option) IHub {
	h := &hub{
		clients:      make(map[string]*client),
		log:          log,
		writeTimeout: defaultWriteTimeout,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *hub) Register(conn Conn) string {
	id := uuid.NewString()

	h.mu.Lock()
	h.clients[id] = &client{conn: conn}
	count := len(h.clients)
	h.mu.Unlock()

	h.log.WithFields(logrus.Fields{
		"client_id": id,
		"clients":   count,
	}).Info("Notification client connected")
	h.changed(count)

	return id
}

func (h *hub) Unregister(id string) {
	h.mu.Lock()
	_, ok := h.clients[id]
	delete(h.clients, id)
	count := len(h.clients)
	h.mu.Unlock()

	if ok {
		h.log.WithFields(logrus.Fields{
			"client_id": id,
			"clients":   count,
		}).Info("Notification client disconnected")
		h.changed(count)
	}
}

// Broadcast writes n to every client in parallel and returns once each write
// finished or hit the write deadline. Clients that fail are unregistered;
// closing the connection is left to the handler that owns it.
func (h *hub) Broadcast(n Notification) {
	if n.Type == "" {
		n.Type = TypeNotification
	}
	if n.Timestamp == "" {
		n.Timestamp = time.Now().Format(time.RFC3339)
	}

	h.mu.RLock()
	targets := make(map[string]*client, len(h.clients))
	for id, c := range h.clients {
		targets[id] = c
	}
	h.mu.RUnlock()

	var wg sync.WaitGroup
	for id, c := range targets {
		wg.Add(1)
		go func(id string, c *client) {
			defer wg.Done()
			if err := h.write(c, n); err != nil {
				h.log.WithFields(logrus.Fields{
					"client_id": id,
					"error":     err.Error(),
				}).Warn("Dropping notification client after write failure")
				h.Unregister(id)
			}
		}(id, c)
	}
	wg.Wait()
}

func (h *hub) write(c *client, n Notification) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(h.writeTimeout)); err != nil {
		return err
	}
	if err := c.conn.WriteJSON(n); err != nil {
		return err
	}
	return c.conn.SetWriteDeadline(time.Time{})
}

func (h *hub) Notify(level Level, message string) {
	h.Broadcast(Notification{Type: TypeNotification, Level: level, Message: message})
}

func (h *hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *hub) CloseAll() {
	h.mu.Lock()
	clients := h.clients
	h.clients = make(map[string]*client)
	h.mu.Unlock()

	for _, c := range clients {
		c.mu.Lock()
		_ = c.conn.Close()
		c.mu.Unlock()
	}
	h.changed(0)
}

func (h *hub) changed(count int) {
	if h.onChange != nil {
		h.onChange(count)
	}
}
