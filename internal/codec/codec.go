// Package codec turns raw datagram bytes into decoded telemetry packets.
// It gates on the leading packet-format discriminant, delegates header
// decoding to the matching specification, checks the whole frame is
// present, then dispatches the payload through a registry keyed by the
// (spec, kind) pair. The registry is a closed table built at construction:
// supporting a new specification or kind means registering its decode
// function here at compile time.
package codec

import (
	"fmt"

	"blackflag.dev/pitwall/internal/packet"
	"blackflag.dev/pitwall/internal/packet/nineteen"
)

// formatLen is the width of the packet-format discriminant every
// specification leads with.
const formatLen = 2

// decodeFunc decodes one payload kind. The cursor is positioned at the
// first payload byte.
type decodeFunc func(packet.Header, *packet.Cursor) (packet.Packet, error)

type registryKey struct {
	spec packet.ApiSpec
	kind packet.PacketType
}

// specEntry binds a wire format discriminant to one specification's
// header decoding and packet sizing.
type specEntry struct {
	spec         packet.ApiSpec
	decodeHeader func(*packet.Cursor) (packet.Header, error)
	packetSize   func(packet.PacketType) int
}

func defaultSpecs() map[uint16]specEntry {
	return map[uint16]specEntry{
		nineteen.PacketFormat: {
			spec:         packet.SpecNineteen,
			decodeHeader: nineteen.DecodeHeader,
			packetSize:   nineteen.PacketSize,
		},
	}
}

func defaultDecoders() map[registryKey]decodeFunc {
	return map[registryKey]decodeFunc{
		{packet.SpecNineteen, packet.TypeEvent}:        nineteen.DecodeEvent,
		{packet.SpecNineteen, packet.TypeLap}:          nineteen.DecodeLap,
		{packet.SpecNineteen, packet.TypeMotion}:       nineteen.DecodeMotion,
		{packet.SpecNineteen, packet.TypeParticipants}: nineteen.DecodeParticipants,
		{packet.SpecNineteen, packet.TypeSession}:      nineteen.DecodeSession,
		{packet.SpecNineteen, packet.TypeSetup}:        nineteen.DecodeSetup,
		{packet.SpecNineteen, packet.TypeStatus}:       nineteen.DecodeStatus,
		{packet.SpecNineteen, packet.TypeTelemetry}:    nineteen.DecodeTelemetry,
	}
}

// Decoder decodes telemetry packets. It holds no per-packet state and is
// safe for concurrent use on distinct buffers.
type Decoder struct {
	specs    map[uint16]specEntry
	decoders map[registryKey]decodeFunc
}

func NewDecoder() *Decoder {
	return &Decoder{
		specs:    defaultSpecs(),
		decoders: defaultDecoders(),
	}
}

// Decode decodes one packet from data. data is never modified, so on an
// insufficient-data error the caller can accumulate more bytes and call
// again with the fuller buffer.
func (d *Decoder) Decode(data []byte) (packet.Packet, error) {
	cur := packet.NewCursor(data)
	if err := packet.EnsurePacketSize(formatLen, cur); err != nil {
		return nil, err
	}

	format := cur.PeekU16()
	entry, ok := d.specs[format]
	if !ok {
		return nil, &packet.MalformedHeaderError{
			Reason: fmt.Sprintf("unknown packet format %d", format),
		}
	}

	hdr, err := entry.decodeHeader(cur)
	if err != nil {
		return nil, err
	}

	if total := entry.packetSize(hdr.Type); cur.Len() < total {
		return nil, &packet.InsufficientDataError{Expected: total, Actual: cur.Len()}
	}

	decode, ok := d.decoders[registryKey{entry.spec, hdr.Type}]
	if !ok {
		return nil, &packet.UnsupportedPacketError{Spec: entry.spec, Kind: hdr.Type}
	}
	return decode(hdr, cur)
}
