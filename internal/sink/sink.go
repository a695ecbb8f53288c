// Package sink defines where decoded telemetry packets go. Sinks are
// registered by name from their package init and constructed from the
// per-sink options map in the configuration, so a build selects its
// sinks by importing them.
package sink

import (
	"fmt"
	"sort"
	"time"

	"blackflag.dev/pitwall/internal/packet"
)

// Decoded is one decoded packet together with its capture context.
type Decoded struct {
	// ReceivedAt is when the datagram arrived, or the capture timestamp
	// when replaying a file.
	ReceivedAt time.Time

	// Source names the source that produced the datagram.
	Source string

	// Size is the datagram size in bytes.
	Size int

	Packet packet.Packet
}

// Sink consumes decoded packets. Send is called from pipeline workers
// and must be safe for concurrent use.
type Sink interface {
	Send(d *Decoded) error
	Close() error
}

// Factory builds a sink from its configuration options.
type Factory func(options map[string]interface{}) (Sink, error)

var registry = make(map[string]Factory)

// Register makes a sink constructor available under name. It is meant
// to be called from package init, like database/sql drivers.
func Register(name string, factory Factory) {
	registry[name] = factory
}

// New constructs the sink registered under name.
func New(name string, options map[string]interface{}) (Sink, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("sink: unknown sink %q (registered: %v)", name, Names())
	}
	return factory(options)
}

// Names lists the registered sink names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
