// Package realtime is the WebSocket front door of the messenger.
package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"nhooyr.io/websocket"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/skills-messenger/internal/config"
	"github.com/s21platform/skills-messenger/internal/model"
	"github.com/s21platform/skills-messenger/internal/presence"
)

type Gateway struct {
	store    MessageStore
	tokens   TokenValidator
	registry *presence.Registry
	mirror   PresenceMirror
	metrics  *Metrics
	logger   logger_lib.LoggerInterface
	cfg      config.Realtime
}

func New(
	store MessageStore,
	tokens TokenValidator,
	registry *presence.Registry,
	mirror PresenceMirror,
	metrics *Metrics,
	logger logger_lib.LoggerInterface,
	cfg config.Realtime,
) *Gateway {
	if mirror == nil {
		mirror = nopMirror{}
	}

	return &Gateway{
		store:    store,
		tokens:   tokens,
		registry: registry,
		mirror:   mirror,
		metrics:  metrics,
		logger:   logger,
		cfg:      cfg,
	}
}

func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: g.cfg.AllowedOrigins,
	})
	if err != nil {
		g.logger.Warn(fmt.Sprintf("failed to accept websocket: %v", err))
		return
	}
	conn.SetReadLimit(g.cfg.MaxMessageBytes)

	ctx, cancel := context.WithCancel(context.WithValue(r.Context(), config.KeyLogger, g.logger))
	defer cancel()

	c := newClient(conn, g.cfg)

	g.metrics.Connections.Inc()
	defer g.metrics.Connections.Dec()

	go func() {
		select {
		case <-c.done:
			cancel()
		case <-ctx.Done():
		}
	}()
	go c.writeLoop(ctx, g.cfg.WriteTimeout)
	go g.pingLoop(ctx, c)

	g.readLoop(ctx, c)

	c.close()
	g.disconnect(context.WithoutCancel(ctx), c)
	_ = conn.Close(websocket.StatusNormalClosure, "")
}

// Notify relays event to userID if that user is connected. It never blocks and reports
// whether the event was queued.
func (g *Gateway) Notify(userID string, event model.Event) bool {
	h, ok := g.registry.Lookup(userID)
	if !ok {
		return false
	}

	if !h.Send(event) {
		g.metrics.RelayDropped.Inc()
		g.logger.Warn(fmt.Sprintf("dropped %s event for user %s: send buffer is full", event.Type, userID))
		return false
	}

	return true
}

func (g *Gateway) readLoop(ctx context.Context, c *Client) {
	for {
		_, data, err := c.conn.Read(ctx)
		if err != nil {
			return
		}

		var in model.InboundEvent
		if err := json.Unmarshal(data, &in); err != nil {
			c.Send(errorEvent("", fmt.Errorf("%w: malformed event", model.ErrValidation)))
			continue
		}

		g.dispatch(ctx, c, in)
	}
}

// dispatch runs one inbound event. Events of one connection run in arrival order;
// a failure or panic becomes a message_error for this connection only.
func (g *Gateway) dispatch(ctx context.Context, c *Client, in model.InboundEvent) {
	logger := logger_lib.FromContext(ctx, config.KeyLogger)

	defer func() {
		if p := recover(); p != nil {
			logger.Error(fmt.Sprintf("panic while handling %s: %v", in.Type, p))
			g.metrics.Events.WithLabelValues(in.Type, resultPanic).Inc()
			c.Send(errorEvent(in.Type, errors.New("internal error")))
		}
	}()

	if !c.limiter.Allow() {
		g.metrics.Events.WithLabelValues(in.Type, resultLimited).Inc()
		c.Send(errorEvent(in.Type, fmt.Errorf("%w: too many events", model.ErrValidation)))
		return
	}

	if g.cfg.EventTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.cfg.EventTimeout)
		defer cancel()
	}

	var err error
	switch in.Type {
	case model.EventAuthenticate:
		err = g.handleAuthenticate(ctx, c, in.Data)
	case model.EventPrivateMessage:
		err = g.handlePrivateMessage(ctx, c, in.Data)
	case model.EventMarkAsSeen:
		err = g.handleMarkAsSeen(ctx, c, in.Data)
	case model.EventMarkAsRead:
		err = g.handleMarkAsRead(ctx, c, in.Data)
	case model.EventTyping:
		err = g.handleTyping(ctx, c, in.Data)
	default:
		err = fmt.Errorf("%w: unknown event %q", model.ErrValidation, in.Type)
	}

	if err != nil {
		if !isClientError(err) {
			logger.Error(fmt.Sprintf("failed to handle %s: %v", in.Type, err))
		}
		g.metrics.Events.WithLabelValues(in.Type, resultError).Inc()
		c.Send(errorEvent(in.Type, err))
		return
	}

	g.metrics.Events.WithLabelValues(in.Type, resultOK).Inc()
}

func (g *Gateway) pingLoop(ctx context.Context, c *Client) {
	if g.cfg.PingInterval <= 0 {
		return
	}

	ticker := time.NewTicker(g.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-c.done:
			return
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, g.cfg.WriteTimeout)
			err := c.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				c.close()
				return
			}

			if userID := c.UserID(); userID != "" && g.registry.IsOnline(userID) {
				if err := g.mirror.Refresh(ctx, userID); err != nil {
					g.logger.Warn(fmt.Sprintf("failed to refresh presence of %s: %v", userID, err))
				}
			}
		}
	}
}

func (g *Gateway) disconnect(ctx context.Context, c *Client) {
	userID, wentOffline := g.registry.Disconnect(c.ID())
	if !wentOffline {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.WriteTimeout)
	defer cancel()

	if err := g.mirror.SetOffline(ctx, userID); err != nil {
		g.logger.Warn(fmt.Sprintf("failed to mirror offline presence of %s: %v", userID, err))
	}

	g.broadcast(userID, model.Event{
		Type: model.EventUserOffline,
		Data: model.PresenceData{UserID: userID},
	})
}

// broadcast sends event to every connected user except excluding.
func (g *Gateway) broadcast(excluding string, event model.Event) {
	for _, h := range g.registry.Handles(excluding) {
		if !h.Send(event) {
			g.metrics.RelayDropped.Inc()
		}
	}
}

func errorEvent(eventType string, err error) model.Event {
	text := "failed to process event"
	if isClientError(err) {
		text = err.Error()
	}

	return model.Event{
		Type: model.EventMessageError,
		Data: model.MessageErrorData{Error: text, Event: eventType},
	}
}

func isClientError(err error) bool {
	return errors.Is(err, model.ErrValidation) ||
		errors.Is(err, model.ErrNotFound) ||
		errors.Is(err, model.ErrForbidden) ||
		errors.Is(err, model.ErrNotAuthenticated)
}

type nopMirror struct{}

func (nopMirror) SetOnline(context.Context, string) error { return nil }

func (nopMirror) SetOffline(context.Context, string) error { return nil }

func (nopMirror) Refresh(context.Context, string) error { return nil }
