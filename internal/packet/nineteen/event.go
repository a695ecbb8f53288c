package nineteen

import (
	"fmt"
	"time"

	"blackflag.dev/pitwall/internal/packet"
)

// EventCode is the four-character ASCII code naming a session event.
type EventCode string

const (
	EventSessionStarted EventCode = "SSTA"
	EventSessionEnded   EventCode = "SEND"
	EventFastestLap     EventCode = "FTLP"
	EventRetirement     EventCode = "RTMT"
	EventDRSEnabled     EventCode = "DRSE"
	EventDRSDisabled    EventCode = "DRSD"
	EventTeamMateInPits EventCode = "TMPT"
	EventChequeredFlag  EventCode = "CHQF"
	EventRaceWinner     EventCode = "RCWN"
)

// Event notifies a session event. Vehicle is set for FTLP, RTMT, TMPT and
// RCWN; LapTime is set for FTLP only. The wire packet is padded to a fixed
// size regardless of the code.
type Event struct {
	Header  packet.Header
	Code    EventCode
	Vehicle packet.VehicleIndex
	LapTime time.Duration
}

func (p *Event) Spec() packet.ApiSpec    { return packet.SpecNineteen }
func (p *Event) Kind() packet.PacketType { return packet.TypeEvent }

// DecodeEvent decodes an event packet from cur, which must be positioned
// at the first payload byte.
func DecodeEvent(hdr packet.Header, cur *packet.Cursor) (packet.Packet, error) {
	if err := packet.EnsurePacketSize(packetSizeEvent-HeaderLen, cur); err != nil {
		return nil, err
	}

	p := &Event{Header: hdr, Code: EventCode(cur.Bytes(4))}
	switch p.Code {
	case EventSessionStarted, EventSessionEnded, EventDRSEnabled, EventDRSDisabled, EventChequeredFlag:
	case EventFastestLap:
		p.Vehicle = packet.VehicleIndex(cur.U8())
		p.LapTime = duration(cur.F32())
		if err := checkVehicle(p.Vehicle); err != nil {
			return nil, err
		}
	case EventRetirement, EventTeamMateInPits, EventRaceWinner:
		p.Vehicle = packet.VehicleIndex(cur.U8())
		if err := checkVehicle(p.Vehicle); err != nil {
			return nil, err
		}
	default:
		return nil, &packet.MalformedPayloadError{
			Reason: fmt.Sprintf("unknown event code %q", p.Code),
		}
	}
	return p, cur.Err()
}
