// SPDX-License-Identifier: Apache-2.0

package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("RELAY_URL", "")
	t.Setenv("BOARD_USER_ID", "")
	t.Setenv("EXPORT_PATH", "")
	t.Setenv("MDNS_ADVERTISE", "")
	t.Setenv("MDNS_DISCOVER", "")
	t.Setenv("BOARD_DOODLE", "")
	t.Setenv("ENV", "")

	cfg := Load()

	if cfg.HTTPAddr != ":8080" {
		t.Fatalf("expected default HTTPAddr=:8080, got %s", cfg.HTTPAddr)
	}
	if cfg.RelayURL != "ws://localhost:8080/ws" {
		t.Fatalf("expected default RelayURL, got %s", cfg.RelayURL)
	}
	if cfg.UserID != "" {
		t.Fatalf("expected empty default UserID, got %s", cfg.UserID)
	}
	if cfg.MDNSAdvertise || cfg.MDNSDiscover || cfg.Doodle {
		t.Fatal("expected mdns and doodle off by default")
	}
	if cfg.Env != "dev" {
		t.Fatalf("expected default Env=dev, got %s", cfg.Env)
	}
}

func TestLoadRespectsEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("RELAY_URL", "ws://board.local:9090/ws")
	t.Setenv("BOARD_USER_ID", "alice")
	t.Setenv("EXPORT_PATH", "/tmp/canvas.pdf")
	t.Setenv("MDNS_ADVERTISE", "true")
	t.Setenv("MDNS_DISCOVER", "1")
	t.Setenv("BOARD_DOODLE", "yes")
	t.Setenv("ENV", "prod")

	cfg := Load()

	if cfg.HTTPAddr != ":9090" {
		t.Fatalf("expected HTTP_ADDR override, got %s", cfg.HTTPAddr)
	}
	if cfg.RelayURL != "ws://board.local:9090/ws" {
		t.Fatalf("expected RELAY_URL override, got %s", cfg.RelayURL)
	}
	if cfg.UserID != "alice" {
		t.Fatalf("expected BOARD_USER_ID override, got %s", cfg.UserID)
	}
	if cfg.ExportPath != "/tmp/canvas.pdf" {
		t.Fatalf("expected EXPORT_PATH override, got %s", cfg.ExportPath)
	}
	if !cfg.MDNSAdvertise || !cfg.MDNSDiscover || !cfg.Doodle {
		t.Fatal("expected boolean overrides to be on")
	}
	if cfg.Env != "prod" {
		t.Fatalf("expected ENV override, got %s", cfg.Env)
	}
}

func TestGetenv(t *testing.T) {
	t.Setenv("EXAMPLE_KEY", "value")
	if got := getenv("EXAMPLE_KEY", "fallback"); got != "value" {
		t.Fatalf("expected env value, got %s", got)
	}

	t.Setenv("EXAMPLE_KEY", "")
	if got := getenv("EXAMPLE_KEY", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback value, got %s", got)
	}
}

func TestGetenvBool(t *testing.T) {
	t.Setenv("BOOL_KEY", "true")
	if !getenvBool("BOOL_KEY", false) {
		t.Fatal("expected true value")
	}

	t.Setenv("BOOL_KEY", "0")
	if getenvBool("BOOL_KEY", true) {
		t.Fatal("expected false value")
	}

	t.Setenv("BOOL_KEY", "")
	if !getenvBool("BOOL_KEY", true) {
		t.Fatal("expected fallback true value")
	}
}
