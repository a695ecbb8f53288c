package nineteen

import (
	"fmt"

	"blackflag.dev/pitwall/internal/packet"
)

// MaxMarshalZones is the number of marshal zone slots in a session
// packet. Only the first NumMarshalZones entries are meaningful.
const MaxMarshalZones = 21

// MarshalZone is one marshalling zone around the lap.
type MarshalZone struct {
	// Start is the zone start as a fraction of the lap.
	Start float32
	Flag  Flag
}

// Session describes the running session: track, weather, rules and
// marshalling state. Identifier fields carry the game's raw numeric
// values.
type Session struct {
	Header packet.Header

	// Weather: 0 clear, 1 light cloud, 2 overcast, 3 light rain,
	// 4 heavy rain, 5 storm.
	Weather uint8

	// Track and air temperature in °C.
	TrackTemperature int8
	AirTemperature   int8

	TotalLaps uint8

	// TrackLength in metres.
	TrackLength uint16

	// SessionType: 0 unknown, 1-4 practice, 5-9 qualifying, 10 race,
	// 11 second race, 12 time trial.
	SessionType uint8

	// TrackID is the game's track identifier, -1 when unknown.
	TrackID int8

	// Formula: 0 modern, 1 classic, 2 F2, 3 generic.
	Formula uint8

	// Session clock in seconds.
	SessionTimeLeft uint16
	SessionDuration uint16

	// PitSpeedLimit in km/h.
	PitSpeedLimit uint8

	GamePaused   uint8
	IsSpectating uint8

	// SpectatorCarIndex is 255 when not spectating.
	SpectatorCarIndex packet.VehicleIndex

	SLIProNativeSupport uint8

	NumMarshalZones uint8
	MarshalZones    [MaxMarshalZones]MarshalZone

	// SafetyCarStatus: 0 none, 1 full, 2 virtual.
	SafetyCarStatus uint8

	// NetworkGame: 0 offline, 1 online.
	NetworkGame uint8
}

func (p *Session) Spec() packet.ApiSpec    { return packet.SpecNineteen }
func (p *Session) Kind() packet.PacketType { return packet.TypeSession }

// DecodeSession decodes a session packet from cur, which must be
// positioned at the first payload byte.
func DecodeSession(hdr packet.Header, cur *packet.Cursor) (packet.Packet, error) {
	if err := packet.EnsurePacketSize(packetSizeSession-HeaderLen, cur); err != nil {
		return nil, err
	}

	p := &Session{Header: hdr}
	p.Weather = cur.U8()
	p.TrackTemperature = cur.I8()
	p.AirTemperature = cur.I8()
	p.TotalLaps = cur.U8()
	p.TrackLength = cur.U16()
	p.SessionType = cur.U8()
	p.TrackID = cur.I8()
	p.Formula = cur.U8()
	p.SessionTimeLeft = cur.U16()
	p.SessionDuration = cur.U16()
	p.PitSpeedLimit = cur.U8()
	p.GamePaused = cur.U8()
	p.IsSpectating = cur.U8()
	p.SpectatorCarIndex = packet.VehicleIndex(cur.U8())
	p.SLIProNativeSupport = cur.U8()
	p.NumMarshalZones = cur.U8()
	if int(p.NumMarshalZones) > MaxMarshalZones {
		return nil, &packet.MalformedPayloadError{
			Reason: fmt.Sprintf("%d marshal zones exceed the %d-zone limit", p.NumMarshalZones, MaxMarshalZones),
		}
	}
	for i := range p.MarshalZones {
		p.MarshalZones[i].Start = cur.F32()
		flag, err := decodeFlag(cur.I8())
		if err != nil {
			return nil, err
		}
		p.MarshalZones[i].Flag = flag
	}
	p.SafetyCarStatus = cur.U8()
	p.NetworkGame = cur.U8()
	return p, cur.Err()
}
