// Package stats aggregates packet counts and logs a periodic summary.
// It is the sink to run with when you want to verify a session is
// arriving without printing every packet.
package stats

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mitchellh/mapstructure"

	"blackflag.dev/pitwall/internal/log"
	"blackflag.dev/pitwall/internal/packet"
	"blackflag.dev/pitwall/internal/sink"
)

const Name = "stats"

type Options struct {
	// Interval between summary log lines; zero logs only on Close.
	Interval time.Duration `mapstructure:"interval"`
}

type Sink struct {
	counts   map[packet.PacketType]*atomic.Uint64
	packets  atomic.Uint64
	bytes    atomic.Uint64
	started  time.Time
	interval time.Duration

	done chan struct{}
	wg   sync.WaitGroup
}

// Totals is a point-in-time view of the counters.
type Totals struct {
	Packets uint64
	Bytes   uint64
	ByKind  map[packet.PacketType]uint64
}

func init() {
	sink.Register(Name, func(options map[string]interface{}) (sink.Sink, error) {
		opts, err := decodeOptions(options)
		if err != nil {
			return nil, err
		}
		return NewSink(opts), nil
	})
}

func decodeOptions(options map[string]interface{}) (Options, error) {
	var opts Options
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.StringToTimeDurationHookFunc(),
		Result:     &opts,
	})
	if err != nil {
		return opts, err
	}
	if err := dec.Decode(options); err != nil {
		return opts, fmt.Errorf("stats: decode options: %w", err)
	}
	return opts, nil
}

func NewSink(opts Options) *Sink {
	s := &Sink{
		counts:   make(map[packet.PacketType]*atomic.Uint64, 8),
		started:  time.Now(),
		interval: opts.Interval,
		done:     make(chan struct{}),
	}
	kinds := []packet.PacketType{
		packet.TypeEvent, packet.TypeLap, packet.TypeMotion,
		packet.TypeParticipants, packet.TypeSession, packet.TypeSetup,
		packet.TypeStatus, packet.TypeTelemetry,
	}
	// The map is complete before any Send, so Send only touches the
	// atomic values.
	for _, kind := range kinds {
		s.counts[kind] = new(atomic.Uint64)
	}

	if s.interval > 0 {
		s.wg.Add(1)
		go s.loop()
	}
	return s
}

func (s *Sink) loop() {
	defer s.wg.Done()
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.log()
		case <-s.done:
			return
		}
	}
}

func (s *Sink) Send(d *sink.Decoded) error {
	s.packets.Add(1)
	s.bytes.Add(uint64(d.Size))
	if c, ok := s.counts[d.Packet.Kind()]; ok {
		c.Add(1)
	}
	return nil
}

// Totals returns the counters accumulated so far.
func (s *Sink) Totals() Totals {
	t := Totals{
		Packets: s.packets.Load(),
		Bytes:   s.bytes.Load(),
		ByKind:  make(map[packet.PacketType]uint64, len(s.counts)),
	}
	for kind, c := range s.counts {
		if n := c.Load(); n > 0 {
			t.ByKind[kind] = n
		}
	}
	return t
}

// Close stops the periodic logger and writes a final summary.
func (s *Sink) Close() error {
	select {
	case <-s.done:
		return nil
	default:
		close(s.done)
	}
	s.wg.Wait()
	s.log()
	return nil
}

func (s *Sink) log() {
	fields := map[string]interface{}{
		"packets": s.packets.Load(),
		"bytes":   s.bytes.Load(),
		"uptime":  time.Since(s.started).Round(time.Second).String(),
	}
	for kind, c := range s.counts {
		if n := c.Load(); n > 0 {
			fields[kind.String()] = n
		}
	}
	log.GetLogger().WithFields(fields).Info("telemetry stats")
}
