// Package udp implements the live capture source: a UDP socket the game
// streams telemetry datagrams to.
package udp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"golang.org/x/net/ipv4"

	"blackflag.dev/pitwall/internal/source"
)

const Name = "udp"

// maxDatagramSize comfortably holds the largest telemetry packet on the
// wire (1347 bytes).
const maxDatagramSize = 2048

type Config struct {
	Host string
	Port int

	// Multicast is an optional group to join for setups broadcasting
	// telemetry to several consumers.
	Multicast string

	// ReadBuffer is the socket receive buffer size in bytes; 0 keeps
	// the system default.
	ReadBuffer int
}

// Source reads telemetry datagrams from a UDP socket. One datagram is
// one telemetry packet; fragments never span datagrams.
type Source struct {
	cfg  Config
	conn *net.UDPConn
	pool sync.Pool
}

func NewSource(cfg Config) *Source {
	s := &Source{cfg: cfg}
	s.pool.New = func() interface{} {
		b := make([]byte, maxDatagramSize)
		return &b
	}
	return s
}

func (s *Source) Name() string { return Name }

func (s *Source) Start(ctx context.Context) error {
	addr := &net.UDPAddr{IP: net.ParseIP(s.cfg.Host), Port: s.cfg.Port}
	conn, err := net.ListenUDP("udp", addr)
	if err != nil {
		return fmt.Errorf("udp: listen %s:%d: %w", s.cfg.Host, s.cfg.Port, err)
	}

	if s.cfg.ReadBuffer > 0 {
		if err := conn.SetReadBuffer(s.cfg.ReadBuffer); err != nil {
			conn.Close()
			return fmt.Errorf("udp: set read buffer: %w", err)
		}
	}

	if s.cfg.Multicast != "" {
		group := net.ParseIP(s.cfg.Multicast)
		if group == nil {
			conn.Close()
			return fmt.Errorf("udp: invalid multicast group %q", s.cfg.Multicast)
		}
		p := ipv4.NewPacketConn(conn)
		if err := p.JoinGroup(nil, &net.UDPAddr{IP: group}); err != nil {
			conn.Close()
			return fmt.Errorf("udp: join multicast group %s: %w", group, err)
		}
	}

	s.conn = conn
	return nil
}

// LocalAddr reports the bound socket address, or nil before Start.
func (s *Source) LocalAddr() net.Addr {
	if s.conn == nil {
		return nil
	}
	return s.conn.LocalAddr()
}

func (s *Source) ReadPacket() ([]byte, time.Time, error) {
	if s.conn == nil {
		return nil, time.Time{}, fmt.Errorf("udp: source not started")
	}

	bufp := s.pool.Get().(*[]byte)
	defer s.pool.Put(bufp)

	n, _, err := s.conn.ReadFromUDP(*bufp)
	if err != nil {
		if errors.Is(err, net.ErrClosed) {
			return nil, time.Time{}, source.ErrClosed
		}
		return nil, time.Time{}, fmt.Errorf("udp: read: %w", err)
	}

	data := make([]byte, n)
	copy(data, (*bufp)[:n])
	return data, time.Now(), nil
}

func (s *Source) Stop() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}
