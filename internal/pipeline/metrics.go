package pipeline

import (
	"errors"
	"sync/atomic"

	"blackflag.dev/pitwall/internal/packet"
)

// Metrics holds the per-run counters. The Prometheus collectors
// aggregate across runs; these stay per-pipeline for the shutdown
// summary and tests.
type Metrics struct {
	Received     atomic.Uint64
	Bytes        atomic.Uint64
	Decoded      atomic.Uint64
	DecodeErrors atomic.Uint64
	Dropped      atomic.Uint64
	Delivered    atomic.Uint64
	SinkErrors   atomic.Uint64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

// Stats is a point-in-time copy of the counters.
type Stats struct {
	Received     uint64
	Bytes        uint64
	Decoded      uint64
	DecodeErrors uint64
	Dropped      uint64
	Delivered    uint64
	SinkErrors   uint64
}

func (p *Pipeline) Stats() Stats {
	return Stats{
		Received:     p.metrics.Received.Load(),
		Bytes:        p.metrics.Bytes.Load(),
		Decoded:      p.metrics.Decoded.Load(),
		DecodeErrors: p.metrics.DecodeErrors.Load(),
		Dropped:      p.metrics.Dropped.Load(),
		Delivered:    p.metrics.Delivered.Load(),
		SinkErrors:   p.metrics.SinkErrors.Load(),
	}
}

// classifyError buckets a decode failure for the error counter label.
func classifyError(err error) string {
	switch {
	case errors.Is(err, packet.ErrInsufficientData):
		return "truncated"
	case errors.Is(err, packet.ErrMalformedHeader):
		return "malformed_header"
	case errors.Is(err, packet.ErrMalformedPayload):
		return "malformed_payload"
	case errors.Is(err, packet.ErrUnsupportedPacket):
		return "unsupported"
	default:
		return "other"
	}
}
