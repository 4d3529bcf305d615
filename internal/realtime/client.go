package realtime

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
	"nhooyr.io/websocket"
	"nhooyr.io/websocket/wsjson"

	"github.com/s21platform/skills-messenger/internal/config"
	"github.com/s21platform/skills-messenger/internal/model"
)

// Client is one realtime connection. Outbound events go through a bounded buffer
// drained by writeLoop; a full buffer drops the event instead of blocking the producer.
type Client struct {
	id      string
	conn    *websocket.Conn
	send    chan model.Event
	done    chan struct{}
	once    sync.Once
	limiter *rate.Limiter

	mu     sync.RWMutex
	userID string
}

func newClient(conn *websocket.Conn, cfg config.Realtime) *Client {
	return &Client{
		id:      uuid.NewString(),
		conn:    conn,
		send:    make(chan model.Event, cfg.SendBuffer),
		done:    make(chan struct{}),
		limiter: rate.NewLimiter(rate.Limit(cfg.EventsPerSecond), cfg.EventBurst),
	}
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) UserID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.userID
}

func (c *Client) setUserID(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.userID = userID
}

func (c *Client) Send(event model.Event) bool {
	select {
	case <-c.done:
		return false
	default:
	}

	select {
	case c.send <- event:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.once.Do(func() {
		close(c.done)
	})
}

func (c *Client) writeLoop(ctx context.Context, timeout time.Duration) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case event := <-c.send:
			writeCtx, cancel := context.WithTimeout(ctx, timeout)
			err := wsjson.Write(writeCtx, c.conn, event)
			cancel()
			if err != nil {
				c.close()
				return
			}
		}
	}
}
