package pcapfile

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"blackflag.dev/pitwall/internal/source"
)

const fixturePort = 20777

type capturedPacket struct {
	ts      time.Time
	dstPort int
	payload []byte
	tcp     bool
}

func writeFixture(t *testing.T, packets []capturedPacket) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "session.pcap")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer f.Close()

	w := pcapgo.NewWriter(f)
	if err := w.WriteFileHeader(65536, layers.LinkTypeEthernet); err != nil {
		t.Fatalf("WriteFileHeader: %v", err)
	}
	for i, p := range packets {
		data := serializePacket(t, p)
		ci := gopacket.CaptureInfo{
			Timestamp:     p.ts,
			CaptureLength: len(data),
			Length:        len(data),
		}
		if err := w.WritePacket(ci, data); err != nil {
			t.Fatalf("WritePacket %d: %v", i, err)
		}
	}
	return path
}

func serializePacket(t *testing.T, p capturedPacket) []byte {
	t.Helper()

	eth := layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x01},
		DstMAC:       net.HardwareAddr{0x02, 0x00, 0x00, 0x00, 0x00, 0x02},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := layers.IPv4{
		Version:  4,
		TTL:      64,
		SrcIP:    net.IPv4(192, 168, 1, 10),
		DstIP:    net.IPv4(192, 168, 1, 20),
		Protocol: layers.IPProtocolUDP,
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}

	if p.tcp {
		ip.Protocol = layers.IPProtocolTCP
		tcp := layers.TCP{SrcPort: 51000, DstPort: layers.TCPPort(p.dstPort), SYN: true}
		tcp.SetNetworkLayerForChecksum(&ip)
		if err := gopacket.SerializeLayers(buf, opts, &eth, &ip, &tcp, gopacket.Payload(p.payload)); err != nil {
			t.Fatalf("SerializeLayers: %v", err)
		}
		return buf.Bytes()
	}

	udp := layers.UDP{SrcPort: 51000, DstPort: layers.UDPPort(p.dstPort)}
	udp.SetNetworkLayerForChecksum(&ip)
	if err := gopacket.SerializeLayers(buf, opts, &eth, &ip, &udp, gopacket.Payload(p.payload)); err != nil {
		t.Fatalf("SerializeLayers: %v", err)
	}
	return buf.Bytes()
}

func startReplay(t *testing.T, cfg Config) *Source {
	t.Helper()

	s := NewSource(cfg)
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(func() { s.Stop() })
	return s
}

func TestReplayFiltersByPort(t *testing.T) {
	base := time.Unix(1693000000, 0).UTC()
	path := writeFixture(t, []capturedPacket{
		{ts: base, dstPort: fixturePort, payload: []byte("one")},
		{ts: base.Add(20 * time.Millisecond), dstPort: 9999, payload: []byte("other port")},
		{ts: base.Add(40 * time.Millisecond), dstPort: fixturePort, payload: []byte("two"), tcp: true},
		{ts: base.Add(60 * time.Millisecond), dstPort: fixturePort, payload: []byte("three")},
	})

	s := startReplay(t, Config{Path: path, Port: fixturePort})

	want := []struct {
		payload string
		ts      time.Time
	}{
		{"one", base},
		{"three", base.Add(60 * time.Millisecond)},
	}
	for i, w := range want {
		data, at, err := s.ReadPacket()
		if err != nil {
			t.Fatalf("ReadPacket %d: %v", i, err)
		}
		if string(data) != w.payload {
			t.Errorf("Expected payload %q, got %q", w.payload, data)
		}
		if !at.Equal(w.ts) {
			t.Errorf("Expected capture time %v, got %v", w.ts, at)
		}
	}

	if _, _, err := s.ReadPacket(); err != io.EOF {
		t.Fatalf("Expected io.EOF at end of capture, got %v", err)
	}
}

func TestReplayKeepsAllPortsWhenUnfiltered(t *testing.T) {
	base := time.Unix(1693000000, 0).UTC()
	path := writeFixture(t, []capturedPacket{
		{ts: base, dstPort: fixturePort, payload: []byte("a")},
		{ts: base.Add(time.Millisecond), dstPort: 9999, payload: []byte("b")},
	})

	s := startReplay(t, Config{Path: path})

	var got []string
	for {
		data, _, err := s.ReadPacket()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("ReadPacket: %v", err)
		}
		got = append(got, string(data))
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Expected both UDP payloads, got %q", got)
	}
}

func TestReplayRealtimeRestoresGaps(t *testing.T) {
	base := time.Unix(1693000000, 0).UTC()
	path := writeFixture(t, []capturedPacket{
		{ts: base, dstPort: fixturePort, payload: []byte("first")},
		{ts: base.Add(150 * time.Millisecond), dstPort: fixturePort, payload: []byte("second")},
	})

	s := startReplay(t, Config{Path: path, Port: fixturePort, Realtime: true})

	if _, _, err := s.ReadPacket(); err != nil {
		t.Fatalf("ReadPacket: %v", err)
	}
	started := time.Now()
	if _, _, err := s.ReadPacket(); err != nil {
		t.Fatalf("ReadPacket: %v", err)
	}
	if elapsed := time.Since(started); elapsed < 100*time.Millisecond {
		t.Errorf("Expected realtime replay to wait for the capture gap, waited %v", elapsed)
	}
}

func TestReplayStopInterruptsRealtimeWait(t *testing.T) {
	base := time.Unix(1693000000, 0).UTC()
	path := writeFixture(t, []capturedPacket{
		{ts: base, dstPort: fixturePort, payload: []byte("first")},
		{ts: base.Add(time.Hour), dstPort: fixturePort, payload: []byte("second")},
	})

	s := startReplay(t, Config{Path: path, Port: fixturePort, Realtime: true})

	if _, _, err := s.ReadPacket(); err != nil {
		t.Fatalf("ReadPacket: %v", err)
	}

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

func TestStartMissingFile(t *testing.T) {
	s := NewSource(Config{Path: filepath.Join(t.TempDir(), "absent.pcap")})
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("Expected error opening a missing capture")
	}
}

func TestSourceName(t *testing.T) {
	if got := NewSource(Config{}).Name(); got != "pcap" {
		t.Errorf("Expected source name pcap, got %s", got)
	}
}
