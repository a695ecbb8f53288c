// Package pcapfile implements the replay source: it reads a capture of
// game traffic and feeds the UDP payloads through the same decode path
// as a live session.
package pcapfile

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"blackflag.dev/pitwall/internal/source"
)

const Name = "pcap"

type Config struct {
	Path string

	// Port keeps only datagrams addressed to this UDP port; 0 keeps
	// every UDP packet in the capture.
	Port int

	// Realtime restores the original inter-packet gaps instead of
	// replaying as fast as the file can be read.
	Realtime bool
}

// Source replays UDP payloads from a pcap file.
type Source struct {
	cfg    Config
	file   *os.File
	reader *pcapgo.Reader

	parser  *gopacket.DecodingLayerParser
	eth     layers.Ethernet
	ip4     layers.IPv4
	ip6     layers.IPv6
	udp     layers.UDP
	payload gopacket.Payload
	decoded []gopacket.LayerType

	// prev is the capture timestamp of the previously replayed packet,
	// used to pace realtime replay.
	prev   time.Time
	closed chan struct{}
}

func NewSource(cfg Config) *Source {
	s := &Source{
		cfg:    cfg,
		closed: make(chan struct{}),
	}
	s.parser = gopacket.NewDecodingLayerParser(
		layers.LayerTypeEthernet,
		&s.eth,
		&s.ip4,
		&s.ip6,
		&s.udp,
		&s.payload,
	)
	s.parser.IgnoreUnsupported = true
	return s
}

func (s *Source) Name() string { return Name }

func (s *Source) Start(ctx context.Context) error {
	if s.cfg.Path == "" {
		return fmt.Errorf("pcap: path is required")
	}
	f, err := os.Open(s.cfg.Path)
	if err != nil {
		return fmt.Errorf("pcap: open %s: %w", s.cfg.Path, err)
	}
	r, err := pcapgo.NewReader(f)
	if err != nil {
		f.Close()
		return fmt.Errorf("pcap: read header of %s: %w", s.cfg.Path, err)
	}
	s.file = f
	s.reader = r
	return nil
}

// ReadPacket returns the next matching UDP payload from the capture.
// Non-UDP packets and datagrams for other ports are skipped. The end of
// the file is reported as io.EOF.
func (s *Source) ReadPacket() ([]byte, time.Time, error) {
	if s.reader == nil {
		return nil, time.Time{}, fmt.Errorf("pcap: source not started")
	}

	for {
		data, ci, err := s.reader.ReadPacketData()
		if err != nil {
			if err == io.EOF {
				return nil, time.Time{}, io.EOF
			}
			if errors.Is(err, fs.ErrClosed) {
				return nil, time.Time{}, source.ErrClosed
			}
			return nil, time.Time{}, fmt.Errorf("pcap: read: %w", err)
		}

		payload, ok := s.extractUDP(data)
		if !ok {
			continue
		}

		if s.cfg.Realtime {
			if err := s.pace(ci.Timestamp); err != nil {
				return nil, time.Time{}, err
			}
		}
		s.prev = ci.Timestamp

		out := make([]byte, len(payload))
		copy(out, payload)
		return out, ci.Timestamp, nil
	}
}

// extractUDP parses the link, network and transport layers and returns
// the UDP payload when the packet matches the configured port.
func (s *Source) extractUDP(data []byte) ([]byte, bool) {
	s.decoded = s.decoded[:0]
	if err := s.parser.DecodeLayers(data, &s.decoded); err != nil {
		return nil, false
	}

	sawUDP := false
	for _, layerType := range s.decoded {
		if layerType == layers.LayerTypeUDP {
			sawUDP = true
		}
	}
	if !sawUDP {
		return nil, false
	}
	if s.cfg.Port != 0 && int(s.udp.DstPort) != s.cfg.Port {
		return nil, false
	}
	return s.udp.Payload, true
}

// pace sleeps for the capture gap between the previous packet and this
// one. Stop interrupts the sleep.
func (s *Source) pace(ts time.Time) error {
	if s.prev.IsZero() {
		return nil
	}
	gap := ts.Sub(s.prev)
	if gap <= 0 {
		return nil
	}
	timer := time.NewTimer(gap)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-s.closed:
		return source.ErrClosed
	}
}

func (s *Source) Stop() error {
	select {
	case <-s.closed:
	default:
		close(s.closed)
	}
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}
