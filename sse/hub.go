package sse

import (
	"context"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kbukum/elevenlabs-stt/component"
	"github.com/kbukum/elevenlabs-stt/logger"
	"github.com/kbukum/elevenlabs-stt/observability"
)

const (
	defaultClientBuffer = 64
	defaultKeepAlive    = 30 * time.Second
)

// Client is one connected subscriber.
type Client struct {
	id      string
	pattern string
	events  chan Event
}

// NewClient creates a subscriber for the keys matching pattern, a
// filepath.Match glob.
func NewClient(id, pattern string) *Client {
	return &Client{id: id, pattern: pattern, events: make(chan Event, defaultClientBuffer)}
}

func (c *Client) ID() string { return c.id }

// Events is closed when the hub drops the client.
func (c *Client) Events() <-chan Event { return c.events }

// send never blocks. It reports false when the client's buffer is full.
func (c *Client) send(ev Event) bool {
	select {
	case c.events <- ev:
		return true
	default:
		return false
	}
}

type message struct {
	key   string
	event Event
}

// Hub fans events out to subscribers. All client bookkeeping happens on the
// Run goroutine.
type Hub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan message
	done       chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup
	running    atomic.Bool

	mu        sync.RWMutex
	log       *logger.Logger
	keepAlive time.Duration
}

// Option configures a Hub.
type Option func(*Hub)

func WithLogger(l *logger.Logger) Option {
	return func(h *Hub) { h.log = l }
}

// WithKeepAlive sets the interval of keep-alive comments.
func WithKeepAlive(d time.Duration) Option {
	return func(h *Hub) { h.keepAlive = d }
}

// NewHub creates a hub. Call Start or run Run in a goroutine.
func NewHub(opts ...Option) *Hub {
	h := &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan message, 256),
		done:       make(chan struct{}),
		keepAlive:  defaultKeepAlive,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.log == nil {
		h.log = logger.Get("sse")
	}
	return h
}

// Run is the hub's event loop. It returns after Stop.
func (h *Hub) Run() {
	h.running.Store(true)
	defer h.running.Store(false)
	for {
		select {
		case <-h.done:
			h.closeAll()
			return

		case c := <-h.register:
			h.mu.Lock()
			h.clients[c.id] = c
			n := len(h.clients)
			h.mu.Unlock()
			h.log.Debug("subscriber registered", logger.Fields("client_id", c.id, "pattern", c.pattern, "clients", n))

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c.id]; ok {
				delete(h.clients, c.id)
				close(c.events)
			}
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.dispatch(msg)
		}
	}
}

func (h *Hub) dispatch(msg message) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	sent := 0
	for _, c := range h.clients {
		if ok, _ := filepath.Match(c.pattern, msg.key); !ok {
			continue
		}
		if c.send(msg.event) {
			sent++
			continue
		}
		h.log.Warn("subscriber too slow, event dropped", logger.Fields("client_id", c.id, "event_id", msg.event.ID))
	}
	h.log.Debug("event broadcast", logger.Fields("key", msg.key, "type", msg.event.Type, "subscribers", sent))
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.clients {
		close(c.events)
		delete(h.clients, id)
	}
}

// Register adds c. It reports false once the hub is stopped.
func (h *Hub) Register(c *Client) bool {
	select {
	case h.register <- c:
		return true
	case <-h.done:
		return false
	}
}

// Unregister removes c and closes its channel.
func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// Broadcast queues ev for every subscriber whose pattern matches key. It is
// a no-op while Run is not active, before Start or after Stop.
func (h *Hub) Broadcast(key string, ev Event) {
	if !h.running.Load() {
		return
	}
	select {
	case h.broadcast <- message{key: key, event: ev}:
	case <-h.done:
	}
}

// ClientCount returns the number of connected subscribers.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

var (
	_ component.Component   = (*Hub)(nil)
	_ component.Describable = (*Hub)(nil)
)

func (h *Hub) Name() string { return "sse" }

// Start launches Run in the background.
func (h *Hub) Start(context.Context) error {
	h.running.Store(true)
	h.wg.Add(1)
	go func() {
		defer h.wg.Done()
		h.Run()
	}()
	return nil
}

// Stop disconnects every subscriber and ends Run. Safe to call repeatedly.
func (h *Hub) Stop(ctx context.Context) error {
	h.stopOnce.Do(func() { close(h.done) })

	waited := make(chan struct{})
	go func() {
		h.wg.Wait()
		close(waited)
	}()
	select {
	case <-waited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Hub) Health(context.Context) observability.Health {
	status := observability.HealthStatusUp
	select {
	case <-h.done:
		status = observability.HealthStatusDown
	default:
	}
	return observability.Health{
		Name:    "sse",
		Status:  status,
		Details: map[string]string{"clients": strconv.Itoa(h.ClientCount())},
	}
}

func (h *Hub) Describe() component.Description {
	return component.Description{Type: "sse", Details: "keepalive=" + h.keepAlive.String()}
}
