package technibel

import (
	"time"

	"github.com/danmuck/irac/internal/pulse"
)

// Bits is the canonical frame length on the wire.
const Bits = 56

// DefaultRepeat is the number of extra message repeats per transmission.
const DefaultRepeat = 0

// Timing is the protocol pulse table, shared by Send and Decode. The
// values are fixed by the hardware; changing any of them breaks
// interoperability with real remotes.
var Timing = pulse.Timing{
	HeaderMark:  8836 * time.Microsecond,
	HeaderSpace: 4380 * time.Microsecond,
	BitMark:     523 * time.Microsecond,
	OneSpace:    1696 * time.Microsecond,
	ZeroSpace:   564 * time.Microsecond,
	Gap:         pulse.DefaultGap,
	CarrierHz:   38000,
	DutyCycle:   pulse.DefaultDutyCycle,
}

// Frame bit layout, least-significant bit first on the wire. The checksum
// covers the bytes between the footer and header fields.
const (
	checksumOffset   = 0
	checksumSize     = 8
	footerOffset     = 8
	footerSize       = 8
	timerHoursOffset = 16
	timerHoursSize   = 5
	tempOffset       = 24
	tempSize         = 7
	fanOffset        = 32
	fanSize          = 3
	sleepBit         = 36
	swingBit         = 37
	tempUnitBit      = 38 // 0 = Celsius, 1 = Fahrenheit
	timerEnableBit   = 39
	modeOffset       = 40
	modeSize         = 4
	fanChangeBit     = 44
	tempChangeBit    = 45
	timerChangeBit   = 46
	powerBit         = 47
	headerOffset     = 48
	headerSize       = 8

	// frameHeader identifies the frame type; stamped on every read-out.
	frameHeader = 0x18
)

// Mode is the native operating-mode field value. The protocol has no Auto
// encoding.
type Mode uint8

const (
	ModeCool Mode = 0b0001
	ModeDry  Mode = 0b0010
	ModeFan  Mode = 0b0100
	ModeHeat Mode = 0b1000
)

func (m Mode) String() string {
	switch m {
	case ModeCool:
		return "Cool"
	case ModeDry:
		return "Dry"
	case ModeFan:
		return "Fan"
	case ModeHeat:
		return "Heat"
	default:
		return "Unknown"
	}
}

// Fan is the native fan-speed field value.
type Fan uint8

const (
	FanLow    Fan = 0b001
	FanMedium Fan = 0b010
	FanHigh   Fan = 0b100
)

func (f Fan) String() string {
	switch f {
	case FanLow:
		return "Low"
	case FanMedium:
		return "Medium"
	case FanHigh:
		return "High"
	default:
		return "Unknown"
	}
}

// Temperature bounds per unit, in whole degrees.
const (
	TempMinC = 16
	TempMaxC = 31
	TempMinF = 61
	TempMaxF = 88
)

// DefaultTemp is the reset temperature in degrees Celsius.
const DefaultTemp = 20

// TimerMax is the longest supported off timer.
const TimerMax = 24 * time.Hour
