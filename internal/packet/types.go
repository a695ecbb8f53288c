package packet

import "fmt"

// ApiSpec identifies the packet format revision a game publishes. Each
// yearly release of the game ships its own specification; decoding is
// always qualified by the spec a packet was published under.
type ApiSpec uint8

const (
	specUnknown ApiSpec = iota

	// SpecNineteen is the specification published by the 2019 game.
	SpecNineteen
)

func (s ApiSpec) String() string {
	switch s {
	case SpecNineteen:
		return "nineteen"
	default:
		return fmt.Sprintf("spec(%d)", uint8(s))
	}
}

// PacketType is the logical kind of a telemetry packet, independent of the
// wire discriminant a particular spec uses for it.
type PacketType uint8

const (
	// TypeEvent notifies session events such as the fastest lap or a
	// retirement.
	TypeEvent PacketType = iota + 1

	// TypeLap carries lap timing for every car in the session.
	TypeLap

	// TypeMotion carries world-space motion state for every car.
	TypeMotion

	// TypeParticipants lists the drivers in the session.
	TypeParticipants

	// TypeSession describes the session itself: track, weather, rules.
	TypeSession

	// TypeSetup carries the car setups.
	TypeSetup

	// TypeStatus carries car status: fuel, damage, flags, ERS.
	TypeStatus

	// TypeTelemetry carries the live car telemetry: speed, pedals, tyres.
	TypeTelemetry
)

func (t PacketType) String() string {
	switch t {
	case TypeEvent:
		return "event"
	case TypeLap:
		return "lap"
	case TypeMotion:
		return "motion"
	case TypeParticipants:
		return "participants"
	case TypeSession:
		return "session"
	case TypeSetup:
		return "setup"
	case TypeStatus:
		return "status"
	case TypeTelemetry:
		return "telemetry"
	default:
		return fmt.Sprintf("type(%d)", uint8(t))
	}
}

// PacketTypeFromName resolves a kind name, as printed by String, back
// to the kind. It reports false for names it does not know.
func PacketTypeFromName(name string) (PacketType, bool) {
	switch name {
	case "event":
		return TypeEvent, true
	case "lap":
		return TypeLap, true
	case "motion":
		return TypeMotion, true
	case "participants":
		return TypeParticipants, true
	case "session":
		return TypeSession, true
	case "setup":
		return TypeSetup, true
	case "status":
		return TypeStatus, true
	case "telemetry":
		return TypeTelemetry, true
	}
	return 0, false
}

// VehicleIndex addresses one slot in a spec's fixed-size per-vehicle
// arrays.
type VehicleIndex uint8
