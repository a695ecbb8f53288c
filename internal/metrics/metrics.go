// Package metrics implements Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PacketsReceivedTotal counts datagrams read off a source.
	PacketsReceivedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitwall_packets_received_total",
			Help: "Total number of datagrams received from a source",
		},
		[]string{"source"},
	)

	// BytesReceivedTotal counts payload bytes read off a source.
	BytesReceivedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitwall_bytes_received_total",
			Help: "Total number of payload bytes received from a source",
		},
		[]string{"source"},
	)

	// PacketsDecodedTotal counts successfully decoded packets by kind.
	PacketsDecodedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitwall_packets_decoded_total",
			Help: "Total number of packets decoded, by packet kind",
		},
		[]string{"kind"},
	)

	// DecodeErrorsTotal counts decode failures by error class.
	DecodeErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitwall_decode_errors_total",
			Help: "Total number of decode failures, by failure class",
		},
		[]string{"class"},
	)

	// PacketsDroppedTotal counts datagrams shed when the pipeline buffer
	// is full.
	PacketsDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitwall_packets_dropped_total",
			Help: "Total number of datagrams dropped before decoding",
		},
		[]string{"policy"},
	)

	// SinkErrorsTotal counts delivery failures by sink.
	SinkErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitwall_sink_errors_total",
			Help: "Total number of sink delivery failures",
		},
		[]string{"sink"},
	)

	// DecodeLatencySeconds measures the time from datagram receipt to
	// decoded packet.
	DecodeLatencySeconds = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pitwall_decode_latency_seconds",
			Help:    "Latency from datagram receipt to decoded packet in seconds",
			Buckets: prometheus.ExponentialBuckets(0.000001, 2, 20), // 1µs to ~1s
		},
	)

	// PipelineDepth tracks the fill level of the capture-to-decode
	// buffer.
	PipelineDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pitwall_pipeline_depth",
			Help: "Number of datagrams queued between capture and decode",
		},
	)
)
