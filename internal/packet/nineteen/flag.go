package nineteen

import (
	"fmt"

	"blackflag.dev/pitwall/internal/packet"
)

// Flag is a marshalling flag as waved at a car. The wire encodes it as a
// signed byte.
type Flag int8

const (
	// FlagInvalid marks a flag value the game could not determine.
	FlagInvalid Flag = iota - 1
	FlagNone
	FlagGreen
	FlagBlue
	FlagYellow
	FlagRed
)

func (f Flag) String() string {
	switch f {
	case FlagInvalid:
		return "invalid"
	case FlagNone:
		return "none"
	case FlagGreen:
		return "green"
	case FlagBlue:
		return "blue"
	case FlagYellow:
		return "yellow"
	case FlagRed:
		return "red"
	default:
		return fmt.Sprintf("flag(%d)", int8(f))
	}
}

func decodeFlag(v int8) (Flag, error) {
	f := Flag(v)
	if f < FlagInvalid || f > FlagRed {
		return 0, &packet.MalformedPayloadError{
			Reason: fmt.Sprintf("unknown flag value %d", v),
		}
	}
	return f, nil
}
