// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/config"
	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/discovery"
	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/logging"
	"github.com/Himanshu-Sharma005/realtime-collaborative-whiteboard/internal/relay"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	logger := logging.ForComponent(logging.NewLogger(cfg.Env), "relay")

	hub := relay.NewHub(logger)
	handler := relay.NewRouter(relay.Deps{
		Hub:       hub,
		Logger:    logger,
		Version:   Version,
		Commit:    Commit,
		BuildDate: BuildDate,
	})

	if cfg.MDNSAdvertise {
		port, err := listenPort(cfg.HTTPAddr)
		if err != nil {
			logger.Warn("mdns advertise skipped", "addr", cfg.HTTPAddr, "error", err)
		} else {
			server, err := discovery.Advertise(port)
			if err != nil {
				logger.Warn("mdns advertise failed", "error", err)
			} else {
				defer func() { _ = server.Shutdown() }()
				logger.Info("advertising relay over mdns", "port", port)
			}
		}
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("relay listening",
			"addr", cfg.HTTPAddr,
			"version", Version,
			"commit", Commit,
			"build_date", BuildDate,
		)

		if err := srv.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down relay")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		5*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
}

func listenPort(addr string) (int, error) {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(portStr)
}
