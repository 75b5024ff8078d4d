// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"strings"
)

type Config struct {
	// Relay.
	HTTPAddr      string
	MDNSAdvertise bool

	// Board agent.
	RelayURL     string
	UserID       string
	ExportPath   string
	MDNSDiscover bool
	Doodle       bool

	Env string
}

func Load() Config {
	return Config{
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		MDNSAdvertise: getenvBool("MDNS_ADVERTISE", false),
		RelayURL:      getenv("RELAY_URL", "ws://localhost:8080/ws"),
		UserID:        getenv("BOARD_USER_ID", ""),
		ExportPath:    getenv("EXPORT_PATH", ""),
		MDNSDiscover:  getenvBool("MDNS_DISCOVER", false),
		Doodle:        getenvBool("BOARD_DOODLE", false),
		Env:           getenv("ENV", "dev"),
	}
}

func getenv(key, defaultValue string) string {
	v := os.Getenv(key)
	if v != "" {
		return v
	}
	return defaultValue
}

func getenvBool(key string, defaultValue bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return defaultValue
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
