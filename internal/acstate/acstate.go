// Package acstate defines the protocol-agnostic air-conditioner state used
// to interoperate across remote protocols. Protocol packages convert their
// native frames to and from State; fields a protocol cannot express are
// reported as absent, never invented.
package acstate

import "github.com/danmuck/irac/internal/pulse"

// OpMode is the cross-protocol operating mode.
type OpMode int

const (
	ModeOff OpMode = iota - 1
	ModeAuto
	ModeCool
	ModeHeat
	ModeDry
	ModeFan
)

func (m OpMode) String() string {
	switch m {
	case ModeOff:
		return "Off"
	case ModeAuto:
		return "Auto"
	case ModeCool:
		return "Cool"
	case ModeHeat:
		return "Heat"
	case ModeDry:
		return "Dry"
	case ModeFan:
		return "Fan"
	default:
		return "Unknown"
	}
}

// FanLevel is the cross-protocol fan speed.
type FanLevel int

const (
	FanAuto FanLevel = iota
	FanMin
	FanLow
	FanMedium
	FanHigh
	FanMax
)

func (f FanLevel) String() string {
	switch f {
	case FanAuto:
		return "Auto"
	case FanMin:
		return "Min"
	case FanLow:
		return "Low"
	case FanMedium:
		return "Medium"
	case FanHigh:
		return "High"
	case FanMax:
		return "Max"
	default:
		return "Unknown"
	}
}

// SwingV is the vertical swing position.
type SwingV int

const (
	SwingVOff SwingV = iota - 1
	SwingVAuto
	SwingVHighest
	SwingVHigh
	SwingVMiddle
	SwingVLow
	SwingVLowest
)

// SwingH is the horizontal swing position.
type SwingH int

const (
	SwingHOff SwingH = iota - 1
	SwingHAuto
)

// State is the cross-protocol device configuration. Numeric fields use -1
// for "absent", toggles use false, swing fields use their Off variants.
type State struct {
	Protocol pulse.Protocol
	Model    int
	Power    bool
	Mode     OpMode
	Degrees  float64
	Celsius  bool
	Fan      FanLevel
	SwingV   SwingV
	SwingH   SwingH
	Quiet    bool
	Turbo    bool
	Econo    bool
	Light    bool
	Filter   bool
	Clean    bool
	Beep     bool
	Sleep    int // minutes, -1 when off
	Clock    int // minutes past midnight, -1 when unset
}
