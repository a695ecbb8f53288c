package packet

import (
	"fmt"
	"time"
)

// GameVersion is the major.minor build of the game that published a
// packet. Versions are totally ordered by major, then minor.
type GameVersion struct {
	Major uint8
	Minor uint8
}

// Compare returns -1 if v is older than o, 0 if equal, 1 if newer.
func (v GameVersion) Compare(o GameVersion) int {
	switch {
	case v.Major != o.Major:
		if v.Major < o.Major {
			return -1
		}
		return 1
	case v.Minor != o.Minor:
		if v.Minor < o.Minor {
			return -1
		}
		return 1
	default:
		return 0
	}
}

func (v GameVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Header carries the fields every specification prefixes its packets
// with. It is decoded once per packet and treated as an immutable value.
//
// SessionTime keeps the wire's full sub-second precision; rendering that
// truncates it is a presentation concern of the caller. PlayerCarIndex is
// validated against a payload's vehicle arrays by the payload decoder,
// not here: the header does not know which arrays a payload carries.
type Header struct {
	Spec ApiSpec

	// GameVersion is nil when the spec does not embed one.
	GameVersion *GameVersion

	Type            PacketType
	SessionUID      uint64
	SessionTime     time.Duration
	FrameIdentifier uint32
	PlayerCarIndex  VehicleIndex
}

func (h Header) String() string {
	return fmt.Sprintf("%s %s packet, session %d, frame %d at %s",
		h.Spec, h.Type, h.SessionUID, h.FrameIdentifier, h.SessionTime.Truncate(time.Second))
}
