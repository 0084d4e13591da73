package technibel

import (
	"fmt"
	"strings"
)

// ParseMode maps a textual mode name onto the native field value.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cool":
		return ModeCool, nil
	case "heat":
		return ModeHeat, nil
	case "dry":
		return ModeDry, nil
	case "fan":
		return ModeFan, nil
	default:
		return 0, fmt.Errorf("technibel: unknown mode %q", s)
	}
}

// ParseFan maps a textual fan speed onto the native field value.
func ParseFan(s string) (Fan, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return FanLow, nil
	case "medium", "med":
		return FanMedium, nil
	case "high":
		return FanHigh, nil
	default:
		return 0, fmt.Errorf("technibel: unknown fan speed %q", s)
	}
}
