package udp

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"blackflag.dev/pitwall/internal/source"
)

func startSource(t *testing.T) *Source {
	t.Helper()

	s := NewSource(Config{Host: "127.0.0.1", Port: 0})
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { s.Stop() })
	return s
}

func dialSource(t *testing.T, s *Source) *net.UDPConn {
	t.Helper()

	conn, err := net.DialUDP("udp", nil, s.LocalAddr().(*net.UDPAddr))
	if err != nil {
		t.Fatalf("DialUDP: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestSourceReadsDatagrams(t *testing.T) {
	s := startSource(t)
	conn := dialSource(t, s)

	payloads := [][]byte{
		[]byte("first"),
		[]byte("second datagram"),
		{0xE3, 0x07, 0x01, 0x16},
	}
	for _, p := range payloads {
		if _, err := conn.Write(p); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}

	before := time.Now()
	for i, want := range payloads {
		data, at, err := s.ReadPacket()
		if err != nil {
			t.Fatalf("ReadPacket %d: %v", i, err)
		}
		if string(data) != string(want) {
			t.Errorf("Expected payload %q, got %q", want, data)
		}
		if at.Before(before) || at.After(time.Now()) {
			t.Errorf("Expected receive time near now, got %v", at)
		}
	}
}

func TestSourceCopiesOutOfScratchBuffer(t *testing.T) {
	s := startSource(t)
	conn := dialSource(t, s)

	if _, err := conn.Write([]byte("aaaa")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	first, _, err := s.ReadPacket()
	if err != nil {
		t.Fatalf("ReadPacket: %v", err)
	}

	if _, err := conn.Write([]byte("bbbb")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if _, _, err := s.ReadPacket(); err != nil {
		t.Fatalf("ReadPacket: %v", err)
	}

	if string(first) != "aaaa" {
		t.Errorf("Expected first payload to survive the next read, got %q", first)
	}
}

func TestSourceStopUnblocksRead(t *testing.T) {
	s := startSource(t)

	done := make(chan error, 1)
	go func() {
		_, _, err := s.ReadPacket()
		done <- err
	}()

	time.Sleep(50 * time.Millisecond)
	if err := s.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}

	select {
	case err := <-done:
		if !errors.Is(err, source.ErrClosed) {
			t.Errorf("Expected ErrClosed after Stop, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("ReadPacket still blocked after Stop")
	}
}

func TestSourceReadBeforeStart(t *testing.T) {
	s := NewSource(Config{Host: "127.0.0.1", Port: 0})
	if _, _, err := s.ReadPacket(); err == nil {
		t.Fatal("Expected error reading before Start")
	}
}

func TestSourceName(t *testing.T) {
	if got := NewSource(Config{}).Name(); got != "udp" {
		t.Errorf("Expected source name udp, got %s", got)
	}
}
