package codec

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blackflag.dev/pitwall/internal/packet"
	"blackflag.dev/pitwall/internal/packet/nineteen"
)

var packetKinds = []struct {
	name string
	id   uint8
	kind packet.PacketType
}{
	{"motion", 0, packet.TypeMotion},
	{"session", 1, packet.TypeSession},
	{"lap", 2, packet.TypeLap},
	{"event", 3, packet.TypeEvent},
	{"participants", 4, packet.TypeParticipants},
	{"setup", 5, packet.TypeSetup},
	{"telemetry", 6, packet.TypeTelemetry},
	{"status", 7, packet.TypeStatus},
}

// testHeader builds a well-formed 23-byte header for the given packet id.
func testHeader(id uint8) []byte {
	b := make([]byte, 0, nineteen.HeaderLen)
	b = binary.LittleEndian.AppendUint16(b, nineteen.PacketFormat)
	b = append(b, 1, 18, 1, id)
	b = binary.LittleEndian.AppendUint64(b, 77)
	b = binary.LittleEndian.AppendUint32(b, math.Float32bits(5.5))
	b = binary.LittleEndian.AppendUint32(b, 42)
	b = append(b, 0)
	return b
}

// fullFrame builds a frame of the documented total size with a
// zero-filled payload.
func fullFrame(id uint8, kind packet.PacketType) []byte {
	b := testHeader(id)
	return append(b, make([]byte, nineteen.PacketSize(kind)-nineteen.HeaderLen)...)
}

func TestDecodeDispatchesEveryKind(t *testing.T) {
	d := NewDecoder()
	for _, c := range packetKinds {
		t.Run(c.name, func(t *testing.T) {
			data := fullFrame(c.id, c.kind)
			if c.kind == packet.TypeEvent {
				// A zero event code is meaningless; use a real one.
				copy(data[nineteen.HeaderLen:], "SSTA")
			}

			pkt, err := d.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, c.kind, pkt.Kind())
			assert.Equal(t, packet.SpecNineteen, pkt.Spec())
		})
	}
}

func TestDecodeLapPacket(t *testing.T) {
	data := fullFrame(2, packet.TypeLap)
	// First car: last lap 90.5s, position 3.
	binary.LittleEndian.PutUint32(data[nineteen.HeaderLen:], math.Float32bits(90.5))
	data[nineteen.HeaderLen+32] = 3

	pkt, err := NewDecoder().Decode(data)
	require.NoError(t, err)

	lap, ok := pkt.(*nineteen.Lap)
	require.True(t, ok, "expected *nineteen.Lap, got %T", pkt)
	assert.Equal(t, uint64(77), lap.Header.SessionUID)
	assert.Equal(t, uint32(42), lap.Header.FrameIdentifier)
	assert.Equal(t, 90500*time.Millisecond, lap.Cars[0].LastLapTime)
	assert.Equal(t, uint8(3), lap.Cars[0].CarPosition)
}

func TestDecodeUnknownFormat(t *testing.T) {
	data := fullFrame(2, packet.TypeLap)
	binary.LittleEndian.PutUint16(data, 2018)

	_, err := NewDecoder().Decode(data)
	assert.ErrorIs(t, err, packet.ErrMalformedHeader)

	var malformed *packet.MalformedHeaderError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, malformed.Reason, "2018")
}

func TestDecodeShortBuffers(t *testing.T) {
	d := NewDecoder()

	for _, data := range [][]byte{nil, {0xE3}} {
		_, err := d.Decode(data)
		var insufficient *packet.InsufficientDataError
		require.ErrorAs(t, err, &insufficient)
		assert.Equal(t, 2, insufficient.Expected)
		assert.Equal(t, len(data), insufficient.Actual)
	}
}

// A frame cut anywhere short of its documented total size reports that
// total against the bytes on hand, so a stream reader knows how much more
// to fetch.
func TestDecodeTruncatedFrames(t *testing.T) {
	d := NewDecoder()
	for _, c := range packetKinds {
		t.Run(c.name, func(t *testing.T) {
			total := nineteen.PacketSize(c.kind)
			data := fullFrame(c.id, c.kind)[:total-1]

			_, err := d.Decode(data)
			var insufficient *packet.InsufficientDataError
			require.ErrorAs(t, err, &insufficient)
			assert.Equal(t, total, insufficient.Expected)
			assert.Equal(t, total-1, insufficient.Actual)
		})
	}
}

func TestDecodeUnknownPacketID(t *testing.T) {
	data := fullFrame(9, packet.TypeLap)

	_, err := NewDecoder().Decode(data)
	assert.ErrorIs(t, err, packet.ErrMalformedHeader)
}

// Every possible format discriminant either selects a known spec or
// fails with a typed error; no input panics the decoder.
func TestDecodeArbitraryFormats(t *testing.T) {
	d := NewDecoder()
	data := fullFrame(2, packet.TypeLap)

	for format := 0; format <= 0xFFFF; format++ {
		binary.LittleEndian.PutUint16(data, uint16(format))

		pkt, err := d.Decode(data)
		if uint16(format) == nineteen.PacketFormat {
			require.NoError(t, err)
			require.Equal(t, packet.SpecNineteen, pkt.Spec())
			continue
		}
		require.ErrorIs(t, err, packet.ErrMalformedHeader, "format %d", format)
	}
}

func TestDecodeUnregisteredKind(t *testing.T) {
	d := NewDecoder()
	delete(d.decoders, registryKey{packet.SpecNineteen, packet.TypeSetup})

	_, err := d.Decode(fullFrame(5, packet.TypeSetup))
	assert.ErrorIs(t, err, packet.ErrUnsupportedPacket)

	var unsupported *packet.UnsupportedPacketError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, packet.SpecNineteen, unsupported.Spec)
	assert.Equal(t, packet.TypeSetup, unsupported.Kind)

	// Other kinds keep decoding.
	_, err = d.Decode(fullFrame(2, packet.TypeLap))
	assert.NoError(t, err)
}

func TestDecodeLeavesBufferUntouched(t *testing.T) {
	data := fullFrame(6, packet.TypeTelemetry)
	before := make([]byte, len(data))
	copy(before, data)

	d := NewDecoder()
	_, err := d.Decode(data)
	require.NoError(t, err)
	assert.Equal(t, before, data)

	// Same bytes, truncated: still untouched after the error path.
	_, err = d.Decode(data[:100])
	require.Error(t, err)
	assert.Equal(t, before, data)
}
