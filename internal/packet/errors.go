package packet

import (
	"errors"
	"fmt"
)

// Sentinel errors for the four decode failure classes. Decoders return
// typed errors that unwrap to one of these, so callers can branch with
// errors.Is and still read the details with errors.As.
var (
	ErrInsufficientData  = errors.New("pitwall: insufficient packet data")
	ErrMalformedHeader   = errors.New("pitwall: malformed packet header")
	ErrUnsupportedPacket = errors.New("pitwall: unsupported packet")
	ErrMalformedPayload  = errors.New("pitwall: malformed packet payload")
)

// InsufficientDataError reports a buffer holding fewer bytes than a decode
// step needs. It is the only retryable failure: the buffer is left
// untouched, so the caller can accumulate more bytes and decode again.
type InsufficientDataError struct {
	Expected int
	Actual   int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("pitwall: packet expected to have a size of %d bytes, but was %d", e.Expected, e.Actual)
}

func (e *InsufficientDataError) Unwrap() error { return ErrInsufficientData }

// MalformedHeaderError reports header fields that decoded to values outside
// the known set, e.g. an unknown packet format or packet id.
type MalformedHeaderError struct {
	Reason string
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("pitwall: malformed packet header: %s", e.Reason)
}

func (e *MalformedHeaderError) Unwrap() error { return ErrMalformedHeader }

// UnsupportedPacketError reports a structurally valid header naming a
// (spec, kind) pair this build has no decoder registered for.
type UnsupportedPacketError struct {
	Spec ApiSpec
	Kind PacketType
}

func (e *UnsupportedPacketError) Error() string {
	return fmt.Sprintf("pitwall: no decoder registered for %s packet in spec %s", e.Kind, e.Spec)
}

func (e *UnsupportedPacketError) Unwrap() error { return ErrUnsupportedPacket }

// MalformedPayloadError reports a payload field that failed a structural
// check, e.g. a vehicle index beyond the fixed grid size.
type MalformedPayloadError struct {
	Reason string
}

func (e *MalformedPayloadError) Error() string {
	return fmt.Sprintf("pitwall: malformed packet payload: %s", e.Reason)
}

func (e *MalformedPayloadError) Unwrap() error { return ErrMalformedPayload }
