package technibel

import (
	"github.com/danmuck/irac/internal/acstate"
	"github.com/danmuck/irac/internal/pulse"
)

// ConvertMode maps a cross-protocol mode onto the native field value.
// Modes the protocol cannot express become Cool.
func ConvertMode(mode acstate.OpMode) Mode {
	switch mode {
	case acstate.ModeHeat:
		return ModeHeat
	case acstate.ModeDry:
		return ModeDry
	case acstate.ModeFan:
		return ModeFan
	default:
		return ModeCool
	}
}

// ConvertFan maps a cross-protocol fan level onto the native field value.
func ConvertFan(level acstate.FanLevel) Fan {
	switch level {
	case acstate.FanMedium:
		return FanMedium
	case acstate.FanHigh, acstate.FanMax:
		return FanHigh
	default:
		return FanLow
	}
}

// ConvertSwing reduces a vertical swing position to the protocol's single
// on/off bit. Anything but Off enables swing.
func ConvertSwing(swing acstate.SwingV) bool {
	return swing != acstate.SwingVOff
}

func toCommonMode(m Mode) acstate.OpMode {
	switch m {
	case ModeCool:
		return acstate.ModeCool
	case ModeHeat:
		return acstate.ModeHeat
	case ModeDry:
		return acstate.ModeDry
	case ModeFan:
		return acstate.ModeFan
	default:
		return acstate.ModeAuto
	}
}

func toCommonFan(f Fan) acstate.FanLevel {
	switch f {
	case FanHigh:
		return acstate.FanHigh
	case FanMedium:
		return acstate.FanMedium
	default:
		return acstate.FanLow
	}
}

func toCommonSwing(on bool) acstate.SwingV {
	if on {
		return acstate.SwingVAuto
	}
	return acstate.SwingVOff
}

// ToCommon exports the state in the cross-protocol representation.
// Features this protocol lacks (model, turbo, horizontal swing, light,
// filter, econo, quiet, clean, beep, clock) are reported absent.
func (ac *Ac) ToCommon() acstate.State {
	s := acstate.State{
		Protocol: pulse.ProtocolTechnibelAC,
		Model:    -1,
		Power:    ac.Power(),
		Mode:     toCommonMode(ac.Mode()),
		Celsius:  !ac.TempUnit(),
		Degrees:  float64(ac.Temp()),
		Fan:      toCommonFan(ac.Fan()),
		SwingV:   toCommonSwing(ac.Swing()),
		SwingH:   acstate.SwingHOff,
		Sleep:    -1,
		Clock:    -1,
	}
	if ac.Sleep() {
		s.Sleep = 0
	}
	return s
}

// FromCommon applies the expressible subset of a cross-protocol state.
func (ac *Ac) FromCommon(s acstate.State) {
	ac.SetPower(s.Power)
	ac.SetMode(ConvertMode(s.Mode))
	degrees := s.Degrees
	if degrees < 0 {
		degrees = 0
	}
	ac.SetTemp(uint8(degrees), !s.Celsius)
	ac.SetFan(ConvertFan(s.Fan))
	ac.SetSwing(ConvertSwing(s.SwingV))
	ac.SetSleep(s.Sleep >= 0)
}
