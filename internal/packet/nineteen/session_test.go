package nineteen

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"blackflag.dev/pitwall/internal/packet"
)

func buildSession() (*frame, *Session) {
	want := &Session{
		Header:              wantHeader(packet.TypeSession, 0),
		Weather:             2,
		TrackTemperature:    31,
		AirTemperature:      24,
		TotalLaps:           52,
		TrackLength:         5891,
		SessionType:         10,
		TrackID:             4,
		Formula:             0,
		SessionTimeLeft:     3600,
		SessionDuration:     7200,
		PitSpeedLimit:       80,
		GamePaused:          0,
		IsSpectating:        1,
		SpectatorCarIndex:   5,
		SLIProNativeSupport: 0,
		NumMarshalZones:     3,
		SafetyCarStatus:     1,
		NetworkGame:         1,
	}
	want.MarshalZones[0] = MarshalZone{Start: 0.125, Flag: FlagGreen}
	want.MarshalZones[1] = MarshalZone{Start: 0.5, Flag: FlagYellow}
	want.MarshalZones[2] = MarshalZone{Start: 0.875, Flag: FlagNone}

	var f frame
	f.header(idSession, 0)
	f.u8(want.Weather)
	f.i8(want.TrackTemperature)
	f.i8(want.AirTemperature)
	f.u8(want.TotalLaps)
	f.u16(want.TrackLength)
	f.u8(want.SessionType)
	f.i8(want.TrackID)
	f.u8(want.Formula)
	f.u16(want.SessionTimeLeft)
	f.u16(want.SessionDuration)
	f.u8(want.PitSpeedLimit)
	f.u8(want.GamePaused)
	f.u8(want.IsSpectating)
	f.u8(uint8(want.SpectatorCarIndex))
	f.u8(want.SLIProNativeSupport)
	f.u8(want.NumMarshalZones)
	for _, z := range want.MarshalZones {
		f.f32(z.Start)
		f.i8(int8(z.Flag))
	}
	f.u8(want.SafetyCarStatus)
	f.u8(want.NetworkGame)
	return &f, want
}

func TestDecodeSession(t *testing.T) {
	f, want := buildSession()

	pkt := decodeFrame(t, f, packet.TypeSession, DecodeSession)
	if diff := cmp.Diff(want, pkt.(*Session)); diff != "" {
		t.Errorf("Session mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeSessionTooManyMarshalZones(t *testing.T) {
	f, _ := buildSession()
	// Zone count byte sits 18 bytes into the payload.
	f.b[HeaderLen+18] = MaxMarshalZones + 1

	cur := packet.NewCursor(f.b)
	hdr, err := DecodeHeader(cur)
	if err != nil {
		t.Fatalf("Expected header to decode, got %v", err)
	}
	if _, err := DecodeSession(hdr, cur); !errors.Is(err, packet.ErrMalformedPayload) {
		t.Errorf("Expected ErrMalformedPayload for zone count, got %v", err)
	}
}

func TestDecodeSessionBadZoneFlag(t *testing.T) {
	f, _ := buildSession()
	// Flag byte of the first marshal zone, after its float start fraction.
	f.b[HeaderLen+19+4] = 7

	cur := packet.NewCursor(f.b)
	hdr, err := DecodeHeader(cur)
	if err != nil {
		t.Fatalf("Expected header to decode, got %v", err)
	}
	if _, err := DecodeSession(hdr, cur); !errors.Is(err, packet.ErrMalformedPayload) {
		t.Errorf("Expected ErrMalformedPayload for flag 7, got %v", err)
	}
}
