package pulse

import (
	"errors"
	"testing"
	"time"
)

var testTiming = Timing{
	HeaderMark:  9 * time.Millisecond,
	HeaderSpace: 4500 * time.Microsecond,
	BitMark:     560 * time.Microsecond,
	OneSpace:    1690 * time.Microsecond,
	ZeroSpace:   560 * time.Microsecond,
	Gap:         40 * time.Millisecond,
	CarrierHz:   38000,
	DutyCycle:   33,
}

func TestEncodeShape(t *testing.T) {
	train := testTiming.Encode(0b1010, 4, 0)
	want := 2*4 + Overhead + 1
	if len(train.Pulses) != want {
		t.Fatalf("pulse count: got %d want %d", len(train.Pulses), want)
	}
	if train.Pulses[0] != testTiming.HeaderMark || train.Pulses[1] != testTiming.HeaderSpace {
		t.Fatalf("header pair: got %v %v", train.Pulses[0], train.Pulses[1])
	}
	// LSB first: bit 0 is zero, bit 1 is one.
	if train.Pulses[3] != testTiming.ZeroSpace {
		t.Fatalf("bit 0 space: got %v want zero space", train.Pulses[3])
	}
	if train.Pulses[5] != testTiming.OneSpace {
		t.Fatalf("bit 1 space: got %v want one space", train.Pulses[5])
	}
	if train.Pulses[len(train.Pulses)-1] != testTiming.Gap {
		t.Fatalf("trailing gap: got %v", train.Pulses[len(train.Pulses)-1])
	}
	if train.CarrierHz != 38000 || train.DutyCycle != 33 {
		t.Fatalf("carrier settings: got %d Hz / %d%%", train.CarrierHz, train.DutyCycle)
	}
}

func TestEncodeRepeats(t *testing.T) {
	single := testTiming.Encode(0x5A, 8, 0)
	tripled := testTiming.Encode(0x5A, 8, 2)
	if len(tripled.Pulses) != 3*len(single.Pulses) {
		t.Fatalf("repeat count: got %d pulses want %d", len(tripled.Pulses), 3*len(single.Pulses))
	}
}

func TestMatchRoundTrip(t *testing.T) {
	for _, data := range []uint64{0, 1, 0xA5, 0xFFFF, 0x0123456789AB} {
		train := testTiming.Encode(data, 48, 0)
		got, err := testTiming.Match(train.Pulses, 0, 48, DefaultTolerance, DefaultMarkExcess)
		if err != nil {
			t.Fatalf("match %#x: %v", data, err)
		}
		if got != data {
			t.Fatalf("match: got %#x want %#x", got, data)
		}
	}
}

func TestMatchWithJitter(t *testing.T) {
	train := testTiming.Encode(0xC3, 8, 0)
	jittered := make([]time.Duration, len(train.Pulses))
	for i, p := range train.Pulses {
		// 10% stretch stays inside the default 25% window.
		jittered[i] = p + p/10
	}
	got, err := testTiming.Match(jittered, 0, 8, DefaultTolerance, DefaultMarkExcess)
	if err != nil {
		t.Fatalf("match jittered: %v", err)
	}
	if got != 0xC3 {
		t.Fatalf("match jittered: got %#x want 0xc3", got)
	}
}

func TestMatchShortCapture(t *testing.T) {
	train := testTiming.Encode(0xC3, 8, 0)
	_, err := testTiming.Match(train.Pulses[:2*8+Overhead-1], 0, 8, DefaultTolerance, DefaultMarkExcess)
	if !errors.Is(err, ErrShortCapture) {
		t.Fatalf("expected ErrShortCapture, got %v", err)
	}
}

func TestMatchOffset(t *testing.T) {
	train := testTiming.Encode(0x42, 8, 0)
	shifted := append([]time.Duration{123 * time.Microsecond}, train.Pulses...)
	got, err := testTiming.Match(shifted, 1, 8, DefaultTolerance, DefaultMarkExcess)
	if err != nil {
		t.Fatalf("match with offset: %v", err)
	}
	if got != 0x42 {
		t.Fatalf("match with offset: got %#x want 0x42", got)
	}
}

func TestMatchRejectsBadHeader(t *testing.T) {
	train := testTiming.Encode(0x42, 8, 0)
	train.Pulses[0] = testTiming.HeaderMark / 2
	_, err := testTiming.Match(train.Pulses, 0, 8, DefaultTolerance, DefaultMarkExcess)
	if !errors.Is(err, ErrHeaderMismatch) {
		t.Fatalf("expected ErrHeaderMismatch, got %v", err)
	}
}

func TestMatchRejectsBadSpace(t *testing.T) {
	train := testTiming.Encode(0x42, 8, 0)
	// Bit 3 space lands between the zero and one windows.
	train.Pulses[2+2*3+1] = (testTiming.OneSpace + testTiming.ZeroSpace) / 2
	_, err := testTiming.Match(train.Pulses, 0, 8, 10, DefaultMarkExcess)
	if !errors.Is(err, ErrDataMismatch) {
		t.Fatalf("expected ErrDataMismatch, got %v", err)
	}
}

func TestMatchRejectsShortGap(t *testing.T) {
	train := testTiming.Encode(0x42, 8, 0)
	train.Pulses[len(train.Pulses)-1] = time.Millisecond
	_, err := testTiming.Match(train.Pulses, 0, 8, DefaultTolerance, DefaultMarkExcess)
	if !errors.Is(err, ErrGapMismatch) {
		t.Fatalf("expected ErrGapMismatch, got %v", err)
	}
}
