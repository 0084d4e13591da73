package streamer

import (
	"errors"
	"testing"
	"time"

	"github.com/danmuck/irac/internal/pulse"
	"github.com/danmuck/irac/internal/technibel"
)

func TestFrameRoundTrip(t *testing.T) {
	in := technibel.Timing.Encode(0x18840119000062, technibel.Bits, 0)

	data, err := EncodeFrame(in)
	if err != nil {
		t.Fatalf("encode frame: %v", err)
	}
	out, rest, err := DecodeFrame(data)
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if len(rest) != 0 {
		t.Fatalf("expected no trailing bytes, got %d", len(rest))
	}
	if out.CarrierHz != 38000 {
		t.Fatalf("carrier: got %d want 38000", out.CarrierHz)
	}
	if out.DutyCycle != in.DutyCycle {
		t.Fatalf("duty: got %d want %d", out.DutyCycle, in.DutyCycle)
	}
	if len(out.Pulses) != len(in.Pulses) {
		t.Fatalf("pulse count: got %d want %d", len(out.Pulses), len(in.Pulses))
	}
	for i := range in.Pulses {
		if out.Pulses[i] != in.Pulses[i] {
			t.Fatalf("pulse %d: got %v want %v", i, out.Pulses[i], in.Pulses[i])
		}
	}
}

func TestDecodeFrameKeepsRemainder(t *testing.T) {
	one, err := EncodeFrame(pulse.Train{Pulses: []time.Duration{time.Millisecond}, CarrierHz: 38000, DutyCycle: 50})
	if err != nil {
		t.Fatalf("encode frame: %v", err)
	}
	two := append(append([]byte{}, one...), one...)

	_, rest, err := DecodeFrame(two)
	if err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if len(rest) != len(one) {
		t.Fatalf("remainder: got %d bytes want %d", len(rest), len(one))
	}
}

func TestDecodeFrameErrors(t *testing.T) {
	valid, err := EncodeFrame(pulse.Train{Pulses: []time.Duration{564 * time.Microsecond}, CarrierHz: 38000, DutyCycle: 50})
	if err != nil {
		t.Fatalf("encode frame: %v", err)
	}

	if _, _, err := DecodeFrame(valid[:4]); !errors.Is(err, ErrFrameTooShort) {
		t.Fatalf("expected ErrFrameTooShort, got %v", err)
	}

	badMagic := append([]byte{}, valid...)
	badMagic[0] = 0x00
	if _, _, err := DecodeFrame(badMagic); !errors.Is(err, ErrInvalidMagic) {
		t.Fatalf("expected ErrInvalidMagic, got %v", err)
	}

	if _, _, err := DecodeFrame(valid[:len(valid)-1]); !errors.Is(err, ErrIncompleteFrame) {
		t.Fatalf("expected ErrIncompleteFrame, got %v", err)
	}

	corrupted := append([]byte{}, valid...)
	corrupted[headerLen] ^= 0xFF
	if _, _, err := DecodeFrame(corrupted); !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch, got %v", err)
	}
}

func TestEncodeFrameRejectsOversizedTrain(t *testing.T) {
	train := pulse.Train{Pulses: make([]time.Duration, MaxPulses+1)}
	if _, err := EncodeFrame(train); !errors.Is(err, ErrTooManyPulses) {
		t.Fatalf("expected ErrTooManyPulses, got %v", err)
	}
}
