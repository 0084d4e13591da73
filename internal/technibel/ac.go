package technibel

import (
	"fmt"
	"strings"
	"time"
)

// Ac models the full configuration of one remote session. Setters never
// fail: invalid requests are clamped or substituted, the device has no
// other channel to refuse a setting. One Ac is not safe for concurrent
// mutation; callers serialize access themselves.
type Ac struct {
	state uint64

	// Last temperature the user actually asked for. Mode changes restore
	// it after Dry/Fan excursions rewrite the visible field.
	savedTemp uint8
	savedFahr bool
}

// NewAc returns a state model holding the power-on defaults.
func NewAc() *Ac {
	ac := &Ac{}
	ac.Reset()
	return ac
}

// Reset restores the defaults: power off, Cool, fan Low, 20C, swing off,
// sleep off, timer cleared.
func (ac *Ac) Reset() {
	ac.state = 0
	ac.savedTemp = DefaultTemp
	ac.savedFahr = false

	ac.Off()
	ac.SetTemp(DefaultTemp, false)
	ac.SetMode(ModeCool)
	ac.SetFan(FanLow)
	ac.SetSwing(false)
	ac.SetSleep(false)
	ac.SetTimer(0)
}

// On requests the power state on.
func (ac *Ac) On() { ac.SetPower(true) }

// Off requests the power state off.
func (ac *Ac) Off() { ac.SetPower(false) }

func (ac *Ac) SetPower(on bool) { setBit(&ac.state, powerBit, on) }
func (ac *Ac) Power() bool      { return getBit(ac.state, powerBit) }

// SetTempUnit selects Fahrenheit (true) or Celsius (false).
func (ac *Ac) SetTempUnit(fahrenheit bool) { setBit(&ac.state, tempUnitBit, fahrenheit) }

// TempUnit reports true for Fahrenheit.
func (ac *Ac) TempUnit() bool { return getBit(ac.state, tempUnitBit) }

// SetTemp clamps degrees to the bounds of the requested unit, stores it
// and remembers the pair so a later mode change can restore it.
func (ac *Ac) SetTemp(degrees uint8, fahrenheit bool) {
	lo, hi := uint8(TempMinC), uint8(TempMaxC)
	if fahrenheit {
		lo, hi = TempMinF, TempMaxF
	}
	ac.SetTempUnit(fahrenheit)
	t := degrees
	if t < lo {
		t = lo
	}
	if t > hi {
		t = hi
	}
	ac.savedTemp = t
	ac.savedFahr = fahrenheit
	setBits(&ac.state, tempOffset, tempSize, uint64(t))
}

// Temp returns the temperature field in degrees of the current unit.
func (ac *Ac) Temp() uint8 { return uint8(getBits(ac.state, tempOffset, tempSize)) }

// SetFan clamps speed to the supported range. Dry mode pins the fan to
// Low regardless of the request, and the pin is sticky: leaving Dry does
// not restore the previous speed.
func (ac *Ac) SetFan(speed Fan) {
	if speed < FanLow {
		speed = FanLow
	}
	if speed > FanHigh {
		speed = FanHigh
	}
	if ac.Mode() == ModeDry {
		speed = FanLow
	}
	setBits(&ac.state, fanOffset, fanSize, uint64(speed))
}

func (ac *Ac) Fan() Fan { return Fan(getBits(ac.state, fanOffset, fanSize)) }

// SetMode stores the operating mode, then re-applies the fan constraint
// and restores the last requested temperature and unit. Unrecognized
// modes substitute Cool.
func (ac *Ac) SetMode(mode Mode) {
	switch mode {
	case ModeCool, ModeDry, ModeFan, ModeHeat:
	default:
		mode = ModeCool
	}
	setBits(&ac.state, modeOffset, modeSize, uint64(mode))
	ac.SetFan(ac.Fan())
	ac.SetTemp(ac.savedTemp, ac.savedFahr)
}

func (ac *Ac) Mode() Mode { return Mode(getBits(ac.state, modeOffset, modeSize)) }

// SetSwing controls the vertical swing.
func (ac *Ac) SetSwing(on bool) { setBit(&ac.state, swingBit, on) }
func (ac *Ac) Swing() bool      { return getBit(ac.state, swingBit) }

func (ac *Ac) SetSleep(on bool) { setBit(&ac.state, sleepBit, on) }
func (ac *Ac) Sleep() bool      { return getBit(ac.state, sleepBit) }

// SetTimer arms the off timer. The duration is truncated to whole hours
// and capped at TimerMax; anything under an hour clears the timer. The
// enable bit is derived from the stored hours, never set independently.
func (ac *Ac) SetTimer(d time.Duration) {
	if d < 0 {
		d = 0
	}
	hours := uint64(d / time.Hour)
	if max := uint64(TimerMax / time.Hour); hours > max {
		hours = max
	}
	setBits(&ac.state, timerHoursOffset, timerHoursSize, hours)
	setBit(&ac.state, timerEnableBit, hours > 0)
}

// TimerEnabled reports whether the off timer is armed.
func (ac *Ac) TimerEnabled() bool { return getBit(ac.state, timerEnableBit) }

// Timer returns the off-timer duration, zero when disarmed.
func (ac *Ac) Timer() time.Duration {
	if !ac.TimerEnabled() {
		return 0
	}
	return time.Duration(getBits(ac.state, timerHoursOffset, timerHoursSize)) * time.Hour
}

// Raw stamps the header constant, recomputes the checksum and returns the
// packed frame. Logical state is untouched, so Raw is idempotent.
func (ac *Ac) Raw() uint64 {
	setBits(&ac.state, headerOffset, headerSize, frameHeader)
	setBits(&ac.state, checksumOffset, checksumSize, uint64(CalcChecksum(ac.state)))
	return ac.state
}

// SetRaw replaces the frame verbatim without validation. Decode is the
// validating entry point for captured frames.
func (ac *Ac) SetRaw(state uint64) { ac.state = state }

// String renders every field for diagnostics. Not a wire format.
func (ac *Ac) String() string {
	var b strings.Builder
	onOff := func(v bool) string {
		if v {
			return "On"
		}
		return "Off"
	}
	fmt.Fprintf(&b, "Power: %s", onOff(ac.Power()))
	fmt.Fprintf(&b, ", Mode: %d (%s)", ac.Mode(), ac.Mode())
	fmt.Fprintf(&b, ", Fan: %d (%s)", ac.Fan(), ac.Fan())
	unit := "C"
	if ac.TempUnit() {
		unit = "F"
	}
	fmt.Fprintf(&b, ", Temp: %d%s", ac.Temp(), unit)
	fmt.Fprintf(&b, ", Sleep: %s", onOff(ac.Sleep()))
	fmt.Fprintf(&b, ", Swing(V): %s", onOff(ac.Swing()))
	if ac.TimerEnabled() {
		mins := int(ac.Timer() / time.Minute)
		fmt.Fprintf(&b, ", Timer: %02d:%02d", mins/60, mins%60)
	} else {
		b.WriteString(", Timer: Off")
	}
	return b.String()
}
