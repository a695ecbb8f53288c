package nineteen

import (
	"fmt"

	"blackflag.dev/pitwall/internal/packet"
)

// Wire packet ids at header offset 5.
const (
	idMotion uint8 = iota
	idSession
	idLap
	idEvent
	idParticipants
	idSetup
	idTelemetry
	idStatus
)

// DecodeHeader reads the 23-byte header from cur and leaves the cursor
// positioned at the first payload byte. The packet format and packet id
// must decode to known values; the per-kind packet version at offset 4 is
// consumed but not republished.
func DecodeHeader(cur *packet.Cursor) (packet.Header, error) {
	if err := packet.EnsurePacketSize(HeaderLen, cur); err != nil {
		return packet.Header{}, err
	}

	format := cur.U16()
	if format != PacketFormat {
		return packet.Header{}, &packet.MalformedHeaderError{
			Reason: fmt.Sprintf("packet format %d, want %d", format, PacketFormat),
		}
	}

	version := &packet.GameVersion{Major: cur.U8(), Minor: cur.U8()}
	cur.Skip(1)

	id := cur.U8()
	kind, ok := packetTypeForID(id)
	if !ok {
		return packet.Header{}, &packet.MalformedHeaderError{
			Reason: fmt.Sprintf("unknown packet id %d", id),
		}
	}

	hdr := packet.Header{
		Spec:        packet.SpecNineteen,
		GameVersion: version,
		Type:        kind,
	}
	hdr.SessionUID = cur.U64()
	hdr.SessionTime = duration(cur.F32())
	hdr.FrameIdentifier = cur.U32()
	hdr.PlayerCarIndex = packet.VehicleIndex(cur.U8())
	return hdr, nil
}

func packetTypeForID(id uint8) (packet.PacketType, bool) {
	switch id {
	case idMotion:
		return packet.TypeMotion, true
	case idSession:
		return packet.TypeSession, true
	case idLap:
		return packet.TypeLap, true
	case idEvent:
		return packet.TypeEvent, true
	case idParticipants:
		return packet.TypeParticipants, true
	case idSetup:
		return packet.TypeSetup, true
	case idTelemetry:
		return packet.TypeTelemetry, true
	case idStatus:
		return packet.TypeStatus, true
	default:
		return 0, false
	}
}
