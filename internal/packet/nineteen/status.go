package nineteen

import "blackflag.dev/pitwall/internal/packet"

// CarStatus is the status of one car: fuel, damage, tyres, flags and ERS.
type CarStatus struct {
	// TractionControl: 0 off, 1 medium, 2 full.
	TractionControl uint8

	AntiLockBrakes uint8

	// FuelMix: 0 lean, 1 standard, 2 rich, 3 max.
	FuelMix uint8

	// FrontBrakeBias in percent.
	FrontBrakeBias uint8

	PitLimiterStatus uint8

	// Fuel in kg; FuelRemainingLaps is the game's estimate.
	FuelInTank        float32
	FuelCapacity      float32
	FuelRemainingLaps float32

	MaxRPM  uint16
	IdleRPM uint16

	MaxGears uint8

	// DRSAllowed: 0 not allowed, 1 allowed.
	DRSAllowed uint8

	// TyresWear per wheel in percent.
	TyresWear [NumWheels]uint8

	// Tyre compound identifiers, raw: the actual compound fitted and the
	// one shown visually.
	ActualTyreCompound uint8
	TyreVisualCompound uint8

	// TyresDamage per wheel in percent.
	TyresDamage [NumWheels]uint8

	// Damage in percent.
	FrontLeftWingDamage  uint8
	FrontRightWingDamage uint8
	RearWingDamage       uint8
	EngineDamage         uint8
	GearBoxDamage        uint8

	// VehicleFlags is the flag currently shown to this car.
	VehicleFlags Flag

	// ERS energy in joules; harvested and deployed this lap by source.
	ERSStoreEnergy float32

	// ERSDeployMode: 0 none, 1 low, 2 medium, 3 high, 4 overtake/hotlap.
	ERSDeployMode uint8

	ERSHarvestedThisLapMGUK float32
	ERSHarvestedThisLapMGUH float32
	ERSDeployedThisLap      float32
}

// Status carries the car status of every vehicle slot.
type Status struct {
	Header packet.Header
	Cars   [NumCars]CarStatus
}

func (p *Status) Spec() packet.ApiSpec    { return packet.SpecNineteen }
func (p *Status) Kind() packet.PacketType { return packet.TypeStatus }

// DecodeStatus decodes a car status packet from cur, which must be
// positioned at the first payload byte.
func DecodeStatus(hdr packet.Header, cur *packet.Cursor) (packet.Packet, error) {
	if err := packet.EnsurePacketSize(packetSizeStatus-HeaderLen, cur); err != nil {
		return nil, err
	}
	if err := checkVehicle(hdr.PlayerCarIndex); err != nil {
		return nil, err
	}

	p := &Status{Header: hdr}
	for i := range p.Cars {
		c := &p.Cars[i]
		c.TractionControl = cur.U8()
		c.AntiLockBrakes = cur.U8()
		c.FuelMix = cur.U8()
		c.FrontBrakeBias = cur.U8()
		c.PitLimiterStatus = cur.U8()
		c.FuelInTank = cur.F32()
		c.FuelCapacity = cur.F32()
		c.FuelRemainingLaps = cur.F32()
		c.MaxRPM = cur.U16()
		c.IdleRPM = cur.U16()
		c.MaxGears = cur.U8()
		c.DRSAllowed = cur.U8()
		c.TyresWear = wheelsU8(cur)
		c.ActualTyreCompound = cur.U8()
		c.TyreVisualCompound = cur.U8()
		c.TyresDamage = wheelsU8(cur)
		c.FrontLeftWingDamage = cur.U8()
		c.FrontRightWingDamage = cur.U8()
		c.RearWingDamage = cur.U8()
		c.EngineDamage = cur.U8()
		c.GearBoxDamage = cur.U8()
		flag, err := decodeFlag(cur.I8())
		if err != nil {
			return nil, err
		}
		c.VehicleFlags = flag
		c.ERSStoreEnergy = cur.F32()
		c.ERSDeployMode = cur.U8()
		c.ERSHarvestedThisLapMGUK = cur.F32()
		c.ERSHarvestedThisLapMGUH = cur.F32()
		c.ERSDeployedThisLap = cur.F32()
	}
	return p, cur.Err()
}
