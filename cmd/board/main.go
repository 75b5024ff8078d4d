// SPDX-License-Identifier: Apache-2.0

// Command board runs a headless whiteboard participant: it joins a
// relay session, keeps the full event log, and can snapshot the
// visible canvas to PDF on exit.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/board"
	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/client"
	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/config"
	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/discovery"
	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/export"
	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/logging"
	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/presence"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := logging.ForComponent(logging.NewLogger(cfg.Env), "board")

	relayURL := cfg.RelayURL
	if cfg.MDNSDiscover {
		addr, err := discovery.Lookup(3 * time.Second)
		if err != nil {
			logger.Warn("mdns discovery failed, using configured relay", "error", err)
		} else {
			relayURL = fmt.Sprintf("ws://%s/ws", addr)
			logger.Info("discovered relay over mdns", "url", relayURL)
		}
	}

	b := board.New(board.Deps{UserID: cfg.UserID, Logger: logger})
	tracker := presence.NewTracker()

	c, err := client.New(client.Deps{
		Board:   b,
		Tracker: tracker,
		Logger:  logger,
		URL:     relayURL,
	})
	if err != nil {
		logger.Error("client setup failed", "error", err)
		os.Exit(1)
	}

	go logStats(ctx, logger, b)

	doodled := false
	for ctx.Err() == nil {
		if err := c.Connect(ctx); err != nil {
			break
		}

		if cfg.Doodle && !doodled {
			doodled = true
			if err := doodle(c, b); err != nil {
				logger.Warn("doodle failed", "error", err)
			}
		}

		if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("session dropped, reconnecting", "error", err)
		}
	}

	if cfg.ExportPath != "" {
		if err := export.PDF(cfg.ExportPath, b.VisibleEvents()); err != nil {
			logger.Error("snapshot export failed", "path", cfg.ExportPath, "error", err)
		} else {
			logger.Info("snapshot exported", "path", cfg.ExportPath)
		}
	}

	logger.Info("board stopped",
		"user_id", b.UserID(),
		"events", b.EventCount(),
		"visible_strokes", len(b.VisibleStrokes()),
	)
}

// doodle draws one short diagonal stroke, exercising the local-action
// path so a pair of agents demonstrates end-to-end sync.
func doodle(c *client.Client, b *board.Board) error {
	strokeID := b.NewStrokeID()
	if err := c.StartStroke(strokeID, 10, 10); err != nil {
		return err
	}
	for i := 1; i <= 5; i++ {
		if err := c.MoveStroke(strokeID, 10+float64(i)*20, 10+float64(i)*15); err != nil {
			return err
		}
	}
	return c.EndStroke(strokeID)
}

func logStats(ctx context.Context, logger *slog.Logger, b *board.Board) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			logger.Info("session state",
				"events", b.EventCount(),
				"visible_strokes", len(b.VisibleStrokes()),
			)
		}
	}
}
