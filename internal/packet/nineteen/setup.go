package nineteen

import "blackflag.dev/pitwall/internal/packet"

// CarSetup is the setup of one car. Wing and suspension values are the
// in-game setup scale; pressures are psi.
type CarSetup struct {
	FrontWing uint8
	RearWing  uint8

	// Differential adjustment on throttle and off throttle, percent.
	OnThrottle  uint8
	OffThrottle uint8

	FrontCamber float32
	RearCamber  float32
	FrontToe    float32
	RearToe     float32

	FrontSuspension       uint8
	RearSuspension        uint8
	FrontAntiRollBar      uint8
	RearAntiRollBar       uint8
	FrontSuspensionHeight uint8
	RearSuspensionHeight  uint8

	// BrakePressure and BrakeBias in percent.
	BrakePressure uint8
	BrakeBias     uint8

	FrontTyrePressure float32
	RearTyrePressure  float32

	Ballast uint8

	// FuelLoad in kg.
	FuelLoad float32
}

// Setup carries the car setup of every vehicle slot. In multiplayer the
// game blanks other players' setups.
type Setup struct {
	Header packet.Header
	Cars   [NumCars]CarSetup
}

func (p *Setup) Spec() packet.ApiSpec    { return packet.SpecNineteen }
func (p *Setup) Kind() packet.PacketType { return packet.TypeSetup }

// DecodeSetup decodes a car setup packet from cur, which must be
// positioned at the first payload byte.
func DecodeSetup(hdr packet.Header, cur *packet.Cursor) (packet.Packet, error) {
	if err := packet.EnsurePacketSize(packetSizeSetup-HeaderLen, cur); err != nil {
		return nil, err
	}
	if err := checkVehicle(hdr.PlayerCarIndex); err != nil {
		return nil, err
	}

	p := &Setup{Header: hdr}
	for i := range p.Cars {
		c := &p.Cars[i]
		c.FrontWing = cur.U8()
		c.RearWing = cur.U8()
		c.OnThrottle = cur.U8()
		c.OffThrottle = cur.U8()
		c.FrontCamber = cur.F32()
		c.RearCamber = cur.F32()
		c.FrontToe = cur.F32()
		c.RearToe = cur.F32()
		c.FrontSuspension = cur.U8()
		c.RearSuspension = cur.U8()
		c.FrontAntiRollBar = cur.U8()
		c.RearAntiRollBar = cur.U8()
		c.FrontSuspensionHeight = cur.U8()
		c.RearSuspensionHeight = cur.U8()
		c.BrakePressure = cur.U8()
		c.BrakeBias = cur.U8()
		c.FrontTyrePressure = cur.F32()
		c.RearTyrePressure = cur.F32()
		c.Ballast = cur.U8()
		c.FuelLoad = cur.F32()
	}
	return p, cur.Err()
}
