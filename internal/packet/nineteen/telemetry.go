package nineteen

import "blackflag.dev/pitwall/internal/packet"

// CarTelemetry is the live telemetry of one car. Temperatures are °C,
// pressures psi.
type CarTelemetry struct {
	// Speed in km/h.
	Speed uint16

	// Pedal inputs: throttle and brake 0..1, steer -1..1.
	Throttle float32
	Steer    float32
	Brake    float32

	// Clutch in percent.
	Clutch uint8

	// Gear: -1 reverse, 0 neutral, 1..8.
	Gear int8

	EngineRPM uint16

	DRS uint8

	RevLightsPercent uint8

	BrakesTemperature       [NumWheels]uint16
	TyresSurfaceTemperature [NumWheels]uint16
	TyresInnerTemperature   [NumWheels]uint16

	EngineTemperature uint16

	TyresPressure [NumWheels]float32

	// SurfaceType per wheel: 0 tarmac, 1 rumble strip, 2 concrete,
	// 3 rock, 4 gravel, 5 mud, 6 sand, 7 grass, 8 water, 9 cobblestone,
	// 10 metal, 11 ridged.
	SurfaceType [NumWheels]uint8
}

// Telemetry carries live telemetry for every car plus the player's
// controller button state.
type Telemetry struct {
	Header packet.Header
	Cars   [NumCars]CarTelemetry

	// ButtonStatus is a bit field of currently pressed controller
	// buttons, passed through raw.
	ButtonStatus uint32
}

func (p *Telemetry) Spec() packet.ApiSpec    { return packet.SpecNineteen }
func (p *Telemetry) Kind() packet.PacketType { return packet.TypeTelemetry }

// DecodeTelemetry decodes a car telemetry packet from cur, which must be
// positioned at the first payload byte.
func DecodeTelemetry(hdr packet.Header, cur *packet.Cursor) (packet.Packet, error) {
	if err := packet.EnsurePacketSize(packetSizeTelemetry-HeaderLen, cur); err != nil {
		return nil, err
	}
	if err := checkVehicle(hdr.PlayerCarIndex); err != nil {
		return nil, err
	}

	p := &Telemetry{Header: hdr}
	for i := range p.Cars {
		c := &p.Cars[i]
		c.Speed = cur.U16()
		c.Throttle = cur.F32()
		c.Steer = cur.F32()
		c.Brake = cur.F32()
		c.Clutch = cur.U8()
		c.Gear = cur.I8()
		c.EngineRPM = cur.U16()
		c.DRS = cur.U8()
		c.RevLightsPercent = cur.U8()
		c.BrakesTemperature = wheelsU16(cur)
		c.TyresSurfaceTemperature = wheelsU16(cur)
		c.TyresInnerTemperature = wheelsU16(cur)
		c.EngineTemperature = cur.U16()
		c.TyresPressure = wheelsF32(cur)
		c.SurfaceType = wheelsU8(cur)
	}
	p.ButtonStatus = cur.U32()
	return p, cur.Err()
}
