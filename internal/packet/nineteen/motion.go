package nineteen

import "blackflag.dev/pitwall/internal/packet"

// CarMotion is the world-space motion state of one car. The forward and
// right direction components are unit vectors normalised to int16: divide
// by 32767 to recover the float value.
type CarMotion struct {
	WorldPositionX float32
	WorldPositionY float32
	WorldPositionZ float32

	WorldVelocityX float32
	WorldVelocityY float32
	WorldVelocityZ float32

	WorldForwardDirX int16
	WorldForwardDirY int16
	WorldForwardDirZ int16

	WorldRightDirX int16
	WorldRightDirY int16
	WorldRightDirZ int16

	GForceLateral      float32
	GForceLongitudinal float32
	GForceVertical     float32

	// Orientation in radians.
	Yaw   float32
	Pitch float32
	Roll  float32
}

// Motion carries world-space motion for every car, plus physics the game
// samples only for the player's car.
type Motion struct {
	Header packet.Header
	Cars   [NumCars]CarMotion

	SuspensionPosition     [NumWheels]float32
	SuspensionVelocity     [NumWheels]float32
	SuspensionAcceleration [NumWheels]float32
	WheelSpeed             [NumWheels]float32
	WheelSlip              [NumWheels]float32

	LocalVelocityX float32
	LocalVelocityY float32
	LocalVelocityZ float32

	AngularVelocityX float32
	AngularVelocityY float32
	AngularVelocityZ float32

	AngularAccelerationX float32
	AngularAccelerationY float32
	AngularAccelerationZ float32

	// FrontWheelsAngle is the current steering angle in radians.
	FrontWheelsAngle float32
}

func (p *Motion) Spec() packet.ApiSpec    { return packet.SpecNineteen }
func (p *Motion) Kind() packet.PacketType { return packet.TypeMotion }

// DecodeMotion decodes a motion packet from cur, which must be positioned
// at the first payload byte.
func DecodeMotion(hdr packet.Header, cur *packet.Cursor) (packet.Packet, error) {
	if err := packet.EnsurePacketSize(packetSizeMotion-HeaderLen, cur); err != nil {
		return nil, err
	}
	if err := checkVehicle(hdr.PlayerCarIndex); err != nil {
		return nil, err
	}

	p := &Motion{Header: hdr}
	for i := range p.Cars {
		c := &p.Cars[i]
		c.WorldPositionX = cur.F32()
		c.WorldPositionY = cur.F32()
		c.WorldPositionZ = cur.F32()
		c.WorldVelocityX = cur.F32()
		c.WorldVelocityY = cur.F32()
		c.WorldVelocityZ = cur.F32()
		c.WorldForwardDirX = cur.I16()
		c.WorldForwardDirY = cur.I16()
		c.WorldForwardDirZ = cur.I16()
		c.WorldRightDirX = cur.I16()
		c.WorldRightDirY = cur.I16()
		c.WorldRightDirZ = cur.I16()
		c.GForceLateral = cur.F32()
		c.GForceLongitudinal = cur.F32()
		c.GForceVertical = cur.F32()
		c.Yaw = cur.F32()
		c.Pitch = cur.F32()
		c.Roll = cur.F32()
	}

	p.SuspensionPosition = wheelsF32(cur)
	p.SuspensionVelocity = wheelsF32(cur)
	p.SuspensionAcceleration = wheelsF32(cur)
	p.WheelSpeed = wheelsF32(cur)
	p.WheelSlip = wheelsF32(cur)
	p.LocalVelocityX = cur.F32()
	p.LocalVelocityY = cur.F32()
	p.LocalVelocityZ = cur.F32()
	p.AngularVelocityX = cur.F32()
	p.AngularVelocityY = cur.F32()
	p.AngularVelocityZ = cur.F32()
	p.AngularAccelerationX = cur.F32()
	p.AngularAccelerationY = cur.F32()
	p.AngularAccelerationZ = cur.F32()
	p.FrontWheelsAngle = cur.F32()
	return p, cur.Err()
}
