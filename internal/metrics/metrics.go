// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	DropSlowClient = "slow_client"
	DropClosed     = "closed"

	RejectMalformed   = "malformed"
	RejectUnknownType = "unknown_type"

	IngestAdmitted  = "admitted"
	IngestDuplicate = "duplicate"
)

var (
	initOnce sync.Once

	connectionsOpenGauge prometheus.Gauge
	framesRelayedCounter prometheus.Counter
	framesDroppedVec     *prometheus.CounterVec
	framesRejectedVec    *prometheus.CounterVec
	eventsIngestedVec    *prometheus.CounterVec
)

// Init registers metrics on the default Prometheus registry exactly once.
func Init() {
	initOnce.Do(func() {
		connectionsOpenGauge = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "whiteboard_connections_open",
			Help: "Number of websocket connections currently open on the relay.",
		})

		framesRelayedCounter = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "whiteboard_frames_relayed_total",
			Help: "Total frames fanned out to recipients by the relay.",
		})

		framesDroppedVec = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "whiteboard_frames_dropped_total",
				Help: "Frames skipped for a recipient during fan-out, by reason.",
			},
			[]string{"reason"},
		)

		framesRejectedVec = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "whiteboard_frames_rejected_total",
				Help: "Inbound frames a participant dropped before ingest, by reason.",
			},
			[]string{"reason"},
		)

		eventsIngestedVec = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "whiteboard_events_ingested_total",
				Help: "Log events offered to a participant's store, by result.",
			},
			[]string{"result"},
		)

		prometheus.MustRegister(
			connectionsOpenGauge,
			framesRelayedCounter,
			framesDroppedVec,
			framesRejectedVec,
			eventsIngestedVec,
		)

		// Make label values visible at /metrics before first increment.
		for _, reason := range []string{DropSlowClient, DropClosed} {
			framesDroppedVec.WithLabelValues(reason)
		}
		for _, reason := range []string{RejectMalformed, RejectUnknownType} {
			framesRejectedVec.WithLabelValues(reason)
		}
		for _, result := range []string{IngestAdmitted, IngestDuplicate} {
			eventsIngestedVec.WithLabelValues(result)
		}
	})
}

func IncConnections() {
	Init()
	connectionsOpenGauge.Inc()
}

func DecConnections() {
	Init()
	connectionsOpenGauge.Dec()
}

func IncFramesRelayed() {
	Init()
	framesRelayedCounter.Inc()
}

func IncFramesDropped(reason string) {
	Init()
	framesDroppedVec.WithLabelValues(reason).Inc()
}

func IncFramesRejected(reason string) {
	Init()
	framesRejectedVec.WithLabelValues(reason).Inc()
}

func IncEventsIngested(result string) {
	Init()
	eventsIngestedVec.WithLabelValues(result).Inc()
}
