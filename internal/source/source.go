// Package source defines where raw telemetry datagrams come from. A
// source hands the pipeline one datagram payload at a time along with
// its receive timestamp.
package source

import (
	"context"
	"errors"
	"time"
)

// ErrClosed is returned by ReadPacket after Stop, or when the source has
// run out of data for good.
var ErrClosed = errors.New("pitwall: source closed")

// Source produces raw datagram payloads. Start must be called before
// ReadPacket; Stop unblocks any in-flight ReadPacket.
type Source interface {
	// Name identifies the source in logs and metrics.
	Name() string

	Start(ctx context.Context) error

	// ReadPacket returns the next datagram payload and the time it was
	// received or captured. It blocks until data arrives, the source is
	// stopped, or the underlying stream ends.
	ReadPacket() ([]byte, time.Time, error)

	Stop() error
}
