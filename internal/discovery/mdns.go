// SPDX-License-Identifier: Apache-2.0

// Package discovery announces and finds whiteboard relays on the local
// network over mDNS.
package discovery

import (
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/mdns"
)

const serviceType = "_whiteboard._tcp"

// Advertise registers the relay as an mDNS service on the LAN. The
// returned server must be shut down on exit.
func Advertise(port int) (*mdns.Server, error) {
	host, err := os.Hostname()
	if err != nil {
		return nil, fmt.Errorf("resolve hostname: %w", err)
	}

	service, err := mdns.NewMDNSService(
		host,
		serviceType,
		"", // default ".local"
		"", // default OS hostname
		port,
		nil, // auto-detect IPs
		[]string{"whiteboard-relay"},
	)
	if err != nil {
		return nil, fmt.Errorf("create mdns service: %w", err)
	}

	server, err := mdns.NewServer(&mdns.Config{Zone: service})
	if err != nil {
		return nil, fmt.Errorf("start mdns server: %w", err)
	}

	return server, nil
}

// Lookup browses the LAN and returns the first advertised relay as a
// host:port address.
func Lookup(timeout time.Duration) (string, error) {
	entries := make(chan *mdns.ServiceEntry, 8)
	found := make(chan string, 1)

	go func() {
		for e := range entries {
			if e.AddrV4 == nil || e.Port == 0 {
				continue
			}
			select {
			case found <- fmt.Sprintf("%s:%d", e.AddrV4.String(), e.Port):
			default:
			}
		}
	}()

	params := mdns.DefaultParams(serviceType)
	params.Entries = entries
	params.Timeout = timeout
	if err := mdns.Query(params); err != nil {
		return "", fmt.Errorf("mdns query: %w", err)
	}

	// Query has returned; give the forwarding goroutine a beat to drain
	// anything already buffered.
	select {
	case addr := <-found:
		return addr, nil
	case <-time.After(200 * time.Millisecond):
		return "", fmt.Errorf("no relay found on the local network")
	}
}
