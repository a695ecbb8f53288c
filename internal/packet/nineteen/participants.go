package nineteen

import (
	"bytes"
	"fmt"

	"blackflag.dev/pitwall/internal/packet"
)

// nameLen is the fixed width of the driver name field on the wire.
const nameLen = 48

// Participant describes one driver. DriverID, TeamID and Nationality are
// the game's numeric identifiers, passed through raw.
type Participant struct {
	AIControlled uint8
	DriverID     uint8
	TeamID       uint8
	RaceNumber   uint8
	Nationality  uint8

	// Name is decoded from the fixed 48-byte UTF-8 field, truncated at
	// the first NUL.
	Name string

	// Telemetry: 0 restricted, 1 public. Online players can restrict
	// what other clients see of their car.
	Telemetry uint8
}

// Participants lists the drivers occupying the vehicle slots.
type Participants struct {
	Header packet.Header

	// ActiveCars is how many leading entries of Cars are in the session.
	ActiveCars uint8

	Cars [NumCars]Participant
}

func (p *Participants) Spec() packet.ApiSpec    { return packet.SpecNineteen }
func (p *Participants) Kind() packet.PacketType { return packet.TypeParticipants }

// DecodeParticipants decodes a participants packet from cur, which must
// be positioned at the first payload byte.
func DecodeParticipants(hdr packet.Header, cur *packet.Cursor) (packet.Packet, error) {
	if err := packet.EnsurePacketSize(packetSizeParticipants-HeaderLen, cur); err != nil {
		return nil, err
	}
	if err := checkVehicle(hdr.PlayerCarIndex); err != nil {
		return nil, err
	}

	p := &Participants{Header: hdr}
	p.ActiveCars = cur.U8()
	if int(p.ActiveCars) > NumCars {
		return nil, &packet.MalformedPayloadError{
			Reason: fmt.Sprintf("%d active cars exceed the %d-car grid", p.ActiveCars, NumCars),
		}
	}
	for i := range p.Cars {
		c := &p.Cars[i]
		c.AIControlled = cur.U8()
		c.DriverID = cur.U8()
		c.TeamID = cur.U8()
		c.RaceNumber = cur.U8()
		c.Nationality = cur.U8()
		c.Name = decodeName(cur.Bytes(nameLen))
		c.Telemetry = cur.U8()
	}
	return p, cur.Err()
}

func decodeName(raw []byte) string {
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}
	return string(raw)
}
