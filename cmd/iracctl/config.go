package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/irac/internal/pulse"
	"github.com/danmuck/irac/internal/streamer"
	"github.com/danmuck/irac/internal/technibel"
)

// iracctl config.toml key mapping to transmit/decode settings.
type fileConfig struct {
	SerialPort string `toml:"serial_port"`
	SerialBaud int    `toml:"serial_baud"`
	Repeat     int    `toml:"repeat"`
	Tolerance  int    `toml:"tolerance_percent"`
}

type runtimeConfig struct {
	SerialPort string
	SerialBaud int
	Repeat     int
	Tolerance  int
}

func defaultRuntimeConfig() runtimeConfig {
	return runtimeConfig{
		SerialBaud: streamer.DefaultBaud,
		Repeat:     technibel.DefaultRepeat,
		Tolerance:  pulse.DefaultTolerance,
	}
}

// iracctl loader for TOML config with default overlay.
func loadRuntimeConfig(path string) (runtimeConfig, error) {
	cfg := defaultRuntimeConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return runtimeConfig{}, fmt.Errorf("load iracctl config: %w", err)
	}

	if meta.IsDefined("serial_port") {
		cfg.SerialPort = strings.TrimSpace(raw.SerialPort)
	}
	if meta.IsDefined("serial_baud") {
		cfg.SerialBaud = raw.SerialBaud
	}
	if meta.IsDefined("repeat") {
		cfg.Repeat = raw.Repeat
	}
	if meta.IsDefined("tolerance_percent") {
		cfg.Tolerance = raw.Tolerance
	}

	if err := validateRuntimeConfig(cfg); err != nil {
		return runtimeConfig{}, err
	}
	return cfg, nil
}

func validateRuntimeConfig(cfg runtimeConfig) error {
	if cfg.SerialBaud <= 0 {
		return fmt.Errorf("load iracctl config: serial_baud must be positive, got %d", cfg.SerialBaud)
	}
	if cfg.Repeat < 0 {
		return fmt.Errorf("load iracctl config: repeat must not be negative, got %d", cfg.Repeat)
	}
	if cfg.Tolerance < 0 || cfg.Tolerance > 100 {
		return fmt.Errorf("load iracctl config: tolerance_percent must be within 0..100, got %d", cfg.Tolerance)
	}
	return nil
}
