package technibel

import (
	"errors"
	"testing"
	"time"

	"github.com/danmuck/irac/internal/pulse"
)

// Golden frame from a reference capture: defaults, then power on, fan Low,
// mode Fan, 25C, swing off.
const goldenFrame = uint64(0x18840119000062)

func goldenState() *Ac {
	ac := NewAc()
	ac.On()
	ac.SetFan(FanLow)
	ac.SetMode(ModeFan)
	ac.SetTemp(25, false)
	ac.SetSwing(false)
	return ac
}

func TestGoldenFrame(t *testing.T) {
	got := goldenState().Raw()
	if got != goldenFrame {
		t.Fatalf("packed frame: got %#016x want %#016x", got, goldenFrame)
	}
}

func TestChecksumDeterministic(t *testing.T) {
	frame := goldenState().Raw()
	first := CalcChecksum(frame)
	second := CalcChecksum(frame)
	if first != second {
		t.Fatalf("checksum not deterministic: %#02x then %#02x", first, second)
	}
}

func TestRawAlwaysCarriesValidChecksum(t *testing.T) {
	ac := NewAc()
	states := []func(){
		func() { ac.On() },
		func() { ac.SetMode(ModeHeat) },
		func() { ac.SetTemp(88, true) },
		func() { ac.SetFan(FanHigh) },
		func() { ac.SetTimer(5 * time.Hour) },
		func() { ac.SetSleep(true) },
	}
	for i, mutate := range states {
		mutate()
		if frame := ac.Raw(); !ValidChecksum(frame) {
			t.Fatalf("step %d: frame %#016x has invalid checksum", i, frame)
		}
	}
}

func TestValidChecksumRejectsCorruption(t *testing.T) {
	frame := goldenState().Raw()
	if !ValidChecksum(frame) {
		t.Fatalf("golden frame should carry a valid checksum")
	}
	if ValidChecksum(frame ^ 1<<tempOffset) {
		t.Fatalf("corrupted frame should fail the checksum")
	}
}

func TestLoadRawSkipsValidation(t *testing.T) {
	// SetRaw replaces the frame verbatim, stale checksum included; the
	// next Raw restamps it.
	ac := NewAc()
	ac.SetRaw(goldenFrame ^ 0xFF)
	if got := ac.Raw(); !ValidChecksum(got) {
		t.Fatalf("Raw after SetRaw: frame %#016x has invalid checksum", got)
	}
}

type recordTransmitter struct {
	trains []pulse.Train
}

func (r *recordTransmitter) Transmit(train pulse.Train) error {
	r.trains = append(r.trains, train)
	return nil
}

func TestSendEmitsProtocolTrain(t *testing.T) {
	tx := &recordTransmitter{}
	ac := goldenState()
	if err := ac.Send(tx, 1); err != nil {
		t.Fatalf("send: %v", err)
	}
	if len(tx.trains) != 1 {
		t.Fatalf("expected one train, got %d", len(tx.trains))
	}
	train := tx.trains[0]
	perMessage := 2*Bits + pulse.Overhead + 1
	if len(train.Pulses) != 2*perMessage {
		t.Fatalf("pulse count: got %d want %d", len(train.Pulses), 2*perMessage)
	}
	if train.CarrierHz != 38000 {
		t.Fatalf("carrier: got %d want 38000", train.CarrierHz)
	}
	if train.Pulses[0] != 8836*time.Microsecond || train.Pulses[1] != 4380*time.Microsecond {
		t.Fatalf("header pair: got %v %v", train.Pulses[0], train.Pulses[1])
	}
}

func TestDecodeRoundTrip(t *testing.T) {
	frame := goldenState().Raw()
	train := Timing.Encode(frame, Bits, 0)

	res, err := Decode(train.Pulses, 0, Bits, true)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Value != frame {
		t.Fatalf("decoded value: got %#016x want %#016x", res.Value, frame)
	}
	if res.Protocol != pulse.ProtocolTechnibelAC {
		t.Fatalf("protocol: got %v", res.Protocol)
	}
	if res.Bits != Bits {
		t.Fatalf("bits: got %d want %d", res.Bits, Bits)
	}
	if res.Address != 0 || res.Command != 0 {
		t.Fatalf("address/command should be zero, got %d/%d", res.Address, res.Command)
	}

	fresh := NewAc()
	fresh.SetRaw(res.Value)
	if !fresh.Power() || fresh.Mode() != ModeFan || fresh.Temp() != 25 {
		t.Fatalf("restored state mismatch: %s", fresh)
	}
}

func TestDecodeTooShort(t *testing.T) {
	train := Timing.Encode(goldenFrame, Bits, 0)
	short := train.Pulses[:2*Bits+pulse.Overhead-1]
	if _, err := Decode(short, 0, Bits, false); !errors.Is(err, pulse.ErrShortCapture) {
		t.Fatalf("expected ErrShortCapture, got %v", err)
	}
}

func TestDecodeStrictBitCount(t *testing.T) {
	train := Timing.Encode(goldenFrame, Bits, 0)
	if _, err := Decode(train.Pulses, 0, 48, true); !errors.Is(err, ErrBitCount) {
		t.Fatalf("expected ErrBitCount, got %v", err)
	}
	// Non-strict decodes accept shorter counts and extract what they can.
	res, err := Decode(Timing.Encode(0xABCD, 16, 0).Pulses, 0, 16, false)
	if err != nil {
		t.Fatalf("non-strict decode: %v", err)
	}
	if res.Value != 0xABCD {
		t.Fatalf("non-strict value: got %#x want 0xabcd", res.Value)
	}
}

func TestDecodeRejectsTimingMismatch(t *testing.T) {
	train := Timing.Encode(goldenFrame, Bits, 0)
	train.Pulses[2] = 5 * time.Millisecond // first bit mark, way off
	if _, err := Decode(train.Pulses, 0, Bits, true); err == nil {
		t.Fatalf("expected decode failure on timing mismatch")
	}
}
