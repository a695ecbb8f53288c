// Package console prints decoded packets to standard output, one line
// per packet.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mitchellh/mapstructure"

	"blackflag.dev/pitwall/internal/packet"
	"blackflag.dev/pitwall/internal/sink"
)

const Name = "console"

const timeFormat = "15:04:05.000"

type Options struct {
	// Kinds keeps only the named packet kinds; empty keeps all.
	Kinds []string `mapstructure:"kinds"`

	// Verbose prints the full decoded struct instead of a summary line.
	Verbose bool `mapstructure:"verbose"`
}

type Sink struct {
	mu      sync.Mutex
	out     io.Writer
	kinds   map[packet.PacketType]bool
	verbose bool
}

func init() {
	sink.Register(Name, func(options map[string]interface{}) (sink.Sink, error) {
		var opts Options
		if err := mapstructure.Decode(options, &opts); err != nil {
			return nil, fmt.Errorf("console: decode options: %w", err)
		}
		return NewSink(os.Stdout, opts)
	})
}

func NewSink(out io.Writer, opts Options) (*Sink, error) {
	s := &Sink{out: out, verbose: opts.Verbose}
	if len(opts.Kinds) > 0 {
		s.kinds = make(map[packet.PacketType]bool, len(opts.Kinds))
		for _, name := range opts.Kinds {
			kind, ok := packet.PacketTypeFromName(name)
			if !ok {
				return nil, fmt.Errorf("console: unknown packet kind %q", name)
			}
			s.kinds[kind] = true
		}
	}
	return s, nil
}

func (s *Sink) Send(d *sink.Decoded) error {
	if s.kinds != nil && !s.kinds[d.Packet.Kind()] {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.verbose {
		_, err := fmt.Fprintf(s.out, "%s %s %dB %+v\n",
			d.ReceivedAt.Format(timeFormat), d.Source, d.Size, d.Packet)
		return err
	}
	_, err := fmt.Fprintf(s.out, "%s %s %dB %s %s packet\n",
		d.ReceivedAt.Format(timeFormat), d.Source, d.Size, d.Packet.Spec(), d.Packet.Kind())
	return err
}

func (s *Sink) Close() error {
	return nil
}
