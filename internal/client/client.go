// SPDX-License-Identifier: Apache-2.0

// Package client connects one participant to the relay: it sends the
// events a local Board mints and feeds inbound frames back through the
// deduplicating ingest path.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/cenkalti/backoff"
	"github.com/gorilla/websocket"

	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/board"
	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/domain"
	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/metrics"
	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/presence"
)

type Deps struct {
	Board   *board.Board
	Tracker *presence.Tracker
	Logger  *slog.Logger
	URL     string

	// OnEvent fires after a remote event is admitted into the log,
	// never for duplicates. OnPresence fires for other participants'
	// cursors only; the local user's own echo is suppressed here, at
	// the consumer, not in the tracker.
	OnEvent    func(domain.Event)
	OnPresence func(domain.Presence)
}

type Client struct {
	logger  *slog.Logger
	board   *board.Board
	tracker *presence.Tracker
	url     string

	onEvent    func(domain.Event)
	onPresence func(domain.Presence)

	writeMu sync.Mutex
	ws      *websocket.Conn
}

func New(deps Deps) (*Client, error) {
	if deps.Board == nil {
		return nil, errors.New("client: Board is required")
	}
	if deps.URL == "" {
		return nil, errors.New("client: URL is required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	tracker := deps.Tracker
	if tracker == nil {
		tracker = presence.NewTracker()
	}

	return &Client{
		logger:     logger,
		board:      deps.Board,
		tracker:    tracker,
		url:        deps.URL,
		onEvent:    deps.OnEvent,
		onPresence: deps.OnPresence,
	}, nil
}

func (c *Client) Board() *board.Board {
	return c.board
}

func (c *Client) Tracker() *presence.Tracker {
	return c.tracker
}

// Connect dials the relay, retrying with exponential backoff until the
// dial succeeds or ctx is done.
func (c *Client) Connect(ctx context.Context) error {
	dial := func() error {
		ws, _, err := websocket.DefaultDialer.DialContext(ctx, c.url, nil)
		if err != nil {
			c.logger.Warn("relay dial failed, retrying", "url", c.url, "error", err)
			return err
		}
		c.writeMu.Lock()
		c.ws = ws
		c.writeMu.Unlock()
		return nil
	}

	policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	if err := backoff.Retry(dial, policy); err != nil {
		return fmt.Errorf("connect to relay %s: %w", c.url, err)
	}

	c.logger.Info("connected to relay", "url", c.url, "user_id", c.board.UserID())
	return nil
}

// Run reads frames until the connection drops or ctx is done. A
// malformed or unrecognized frame is dropped with a diagnostic and the
// loop keeps going; only transport failure ends it.
func (c *Client) Run(ctx context.Context) error {
	ws := c.conn()
	if ws == nil {
		return errors.New("client: not connected")
	}

	// Unblock the read when the caller gives up.
	stop := context.AfterFunc(ctx, func() {
		_ = ws.Close()
	})
	defer stop()

	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("relay read: %w", err)
		}
		c.handleFrame(data)
	}
}

func (c *Client) handleFrame(data []byte) {
	fr, err := domain.DecodeFrame(data)
	if err != nil {
		reason := metrics.RejectMalformed
		if errors.Is(err, domain.ErrUnknownFrameType) {
			reason = metrics.RejectUnknownType
		}
		metrics.IncFramesRejected(reason)
		c.logger.Warn("dropped inbound frame", "reason", reason, "error", err)
		return
	}

	if fr.Presence != nil {
		c.tracker.Update(*fr.Presence)
		if fr.Presence.UserID != c.board.UserID() && c.onPresence != nil {
			c.onPresence(*fr.Presence)
		}
		return
	}

	admitted := c.board.Ingest(*fr.Event)
	if !admitted {
		metrics.IncEventsIngested(metrics.IngestDuplicate)
		return
	}
	metrics.IncEventsIngested(metrics.IngestAdmitted)
	if c.onEvent != nil {
		c.onEvent(*fr.Event)
	}
}

// Close tears the connection down. Run returns shortly after.
func (c *Client) Close() error {
	ws := c.conn()
	if ws == nil {
		return nil
	}
	return ws.Close()
}

// StartStroke mints and broadcasts the local pen going down.
func (c *Client) StartStroke(strokeID string, x, y float64) error {
	return c.sendEvent(c.board.StartStroke(strokeID, x, y))
}

// MoveStroke mints and broadcasts a stroke extension.
func (c *Client) MoveStroke(strokeID string, x, y float64) error {
	return c.sendEvent(c.board.MoveStroke(strokeID, x, y))
}

// EndStroke mints and broadcasts the local pen lifting.
func (c *Client) EndStroke(strokeID string) error {
	return c.sendEvent(c.board.EndStroke(strokeID))
}

// Undo broadcasts a compensating event for the user's latest completed
// stroke. Reports false, sending nothing, when there is no target.
func (c *Client) Undo() (bool, error) {
	ev, ok := c.board.Undo()
	if !ok {
		return false, nil
	}
	return true, c.sendEvent(ev)
}

// Redo broadcasts a compensating event for the user's latest undo.
// Reports false, sending nothing, when there is no target.
func (c *Client) Redo() (bool, error) {
	ev, ok := c.board.Redo()
	if !ok {
		return false, nil
	}
	return true, c.sendEvent(ev)
}

// SendPresence broadcasts the local cursor position. Presence bypasses
// the log entirely: no ID, no seq, no dedup, fire-and-forget.
func (c *Client) SendPresence(x, y float64, color string) error {
	data, err := domain.EncodePresence(domain.Presence{
		UserID: c.board.UserID(),
		X:      x,
		Y:      y,
		Color:  color,
	})
	if err != nil {
		return fmt.Errorf("encode presence: %w", err)
	}
	return c.write(data)
}

func (c *Client) sendEvent(ev domain.Event) error {
	data, err := domain.EncodeEvent(ev)
	if err != nil {
		return fmt.Errorf("encode event %s: %w", ev.ID, err)
	}
	return c.write(data)
}

func (c *Client) write(data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if c.ws == nil {
		return errors.New("client: not connected")
	}
	return c.ws.WriteMessage(websocket.TextMessage, data)
}

func (c *Client) conn() *websocket.Conn {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.ws
}
