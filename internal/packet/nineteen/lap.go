package nineteen

import (
	"time"

	"blackflag.dev/pitwall/internal/packet"
)

// CarLap is the lap timing state of one car. Wire times are float seconds
// and convert to Duration with full precision.
type CarLap struct {
	LastLapTime    time.Duration
	CurrentLapTime time.Duration
	BestLapTime    time.Duration
	Sector1Time    time.Duration
	Sector2Time    time.Duration

	// Distance in metres; LapDistance can be negative before the line.
	LapDistance   float32
	TotalDistance float32

	// SafetyCarDelta is the delta to the safety car while one is out.
	SafetyCarDelta time.Duration

	CarPosition   uint8
	CurrentLapNum uint8

	// PitStatus: 0 none, 1 pitting, 2 in pit area.
	PitStatus uint8

	// Sector: 0, 1 or 2.
	Sector uint8

	CurrentLapInvalid uint8

	// Penalties is the accumulated time penalty in seconds.
	Penalties uint8

	GridPosition uint8

	// DriverStatus: 0 in garage, 1 flying lap, 2 in lap, 3 out lap,
	// 4 on track.
	DriverStatus uint8

	// ResultStatus: 0 invalid, 1 inactive, 2 active, 3 finished,
	// 4 disqualified, 5 not classified, 6 retired.
	ResultStatus uint8
}

// Lap carries lap timing for every car in the session.
type Lap struct {
	Header packet.Header
	Cars   [NumCars]CarLap
}

func (p *Lap) Spec() packet.ApiSpec    { return packet.SpecNineteen }
func (p *Lap) Kind() packet.PacketType { return packet.TypeLap }

// DecodeLap decodes a lap packet from cur, which must be positioned at
// the first payload byte.
func DecodeLap(hdr packet.Header, cur *packet.Cursor) (packet.Packet, error) {
	if err := packet.EnsurePacketSize(packetSizeLap-HeaderLen, cur); err != nil {
		return nil, err
	}
	if err := checkVehicle(hdr.PlayerCarIndex); err != nil {
		return nil, err
	}

	p := &Lap{Header: hdr}
	for i := range p.Cars {
		c := &p.Cars[i]
		c.LastLapTime = duration(cur.F32())
		c.CurrentLapTime = duration(cur.F32())
		c.BestLapTime = duration(cur.F32())
		c.Sector1Time = duration(cur.F32())
		c.Sector2Time = duration(cur.F32())
		c.LapDistance = cur.F32()
		c.TotalDistance = cur.F32()
		c.SafetyCarDelta = duration(cur.F32())
		c.CarPosition = cur.U8()
		c.CurrentLapNum = cur.U8()
		c.PitStatus = cur.U8()
		c.Sector = cur.U8()
		c.CurrentLapInvalid = cur.U8()
		c.Penalties = cur.U8()
		c.GridPosition = cur.U8()
		c.DriverStatus = cur.U8()
		c.ResultStatus = cur.U8()
	}
	return p, cur.Err()
}
