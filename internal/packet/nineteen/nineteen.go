// Package nineteen decodes the telemetry specification published by the
// 2019 game. Packets are fixed-layout little-endian structures: a 23-byte
// header followed by a payload whose shape the header's packet id selects.
// Per-car data always spans the full 20-slot grid; wheel arrays are
// ordered rear left, rear right, front left, front right.
package nineteen

import (
	"fmt"
	"time"

	"blackflag.dev/pitwall/internal/packet"
)

const (
	// PacketFormat is the wire discriminant at offset 0 of every packet
	// published under this specification.
	PacketFormat uint16 = 2019

	// HeaderLen is the packet header size in bytes.
	HeaderLen = 23

	// NumCars is the number of slots in every per-car array.
	NumCars = 20

	// NumWheels is the number of slots in every per-wheel array.
	NumWheels = 4
)

// Total packet sizes on the wire, header included.
const (
	packetSizeMotion       = 1343
	packetSizeSession      = 149
	packetSizeLap          = 843
	packetSizeEvent        = 32
	packetSizeParticipants = 1104
	packetSizeSetup        = 843
	packetSizeTelemetry    = 1347
	packetSizeStatus       = 1143
)

// PacketSize reports the documented total size in bytes of a packet of
// the given kind, header included. Unknown kinds report 0.
func PacketSize(t packet.PacketType) int {
	switch t {
	case packet.TypeMotion:
		return packetSizeMotion
	case packet.TypeSession:
		return packetSizeSession
	case packet.TypeLap:
		return packetSizeLap
	case packet.TypeEvent:
		return packetSizeEvent
	case packet.TypeParticipants:
		return packetSizeParticipants
	case packet.TypeSetup:
		return packetSizeSetup
	case packet.TypeTelemetry:
		return packetSizeTelemetry
	case packet.TypeStatus:
		return packetSizeStatus
	default:
		return 0
	}
}

// duration converts the wire's float seconds to a Duration, keeping the
// sub-second precision.
func duration(seconds float32) time.Duration {
	return time.Duration(float64(seconds) * float64(time.Second))
}

func checkVehicle(idx packet.VehicleIndex) error {
	if int(idx) >= NumCars {
		return &packet.MalformedPayloadError{
			Reason: fmt.Sprintf("vehicle index %d outside the %d-car grid", idx, NumCars),
		}
	}
	return nil
}

func wheelsF32(cur *packet.Cursor) [NumWheels]float32 {
	var w [NumWheels]float32
	for i := range w {
		w[i] = cur.F32()
	}
	return w
}

func wheelsU16(cur *packet.Cursor) [NumWheels]uint16 {
	var w [NumWheels]uint16
	for i := range w {
		w[i] = cur.U16()
	}
	return w
}

func wheelsU8(cur *packet.Cursor) [NumWheels]uint8 {
	var w [NumWheels]uint8
	for i := range w {
		w[i] = cur.U8()
	}
	return w
}
