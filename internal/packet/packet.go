// Package packet defines the building blocks shared by every supported
// telemetry specification: the byte cursor, the packet size guard, the
// decoded header model and the decode error taxonomy.
//
// The game publishes telemetry as fixed-layout little-endian UDP packets.
// Decoding never interprets values beyond their documented wire meaning
// and never writes packets back out.
package packet

// Packet is one decoded telemetry packet. Concrete variants live in the
// per-specification packages and are qualified by both the spec and the
// kind, so variants from different specs coexist behind this interface.
type Packet interface {
	// Spec reports the specification the packet was decoded under.
	Spec() ApiSpec

	// Kind reports the logical packet kind.
	Kind() PacketType
}

// EnsurePacketSize verifies that at least expected bytes remain to be read
// from c. On failure it returns an *InsufficientDataError carrying the
// expected and actual counts. It never consumes bytes, so a caller that
// streams fragments can wait for more data and retry on the same buffer.
func EnsurePacketSize(expected int, c *Cursor) error {
	if r := c.Remaining(); r < expected {
		return &InsufficientDataError{Expected: expected, Actual: r}
	}
	return nil
}
