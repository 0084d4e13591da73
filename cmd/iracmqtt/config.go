package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/danmuck/irac/internal/streamer"
	"github.com/danmuck/irac/internal/technibel"
)

// iracmqtt config.toml key mapping to bridge settings.
type fileConfig struct {
	Broker     string `toml:"broker"`
	ClientID   string `toml:"client_id"`
	SerialPort string `toml:"serial_port"`
	SerialBaud int    `toml:"serial_baud"`
	Repeat     int    `toml:"repeat"`
}

type bridgeConfig struct {
	Broker     string
	ClientID   string
	SerialPort string
	SerialBaud int
	Repeat     int
}

func defaultBridgeConfig() bridgeConfig {
	return bridgeConfig{
		Broker:     "tcp://127.0.0.1:1883",
		ClientID:   "iracmqtt",
		SerialBaud: streamer.DefaultBaud,
		Repeat:     technibel.DefaultRepeat,
	}
}

// iracmqtt loader for TOML config with default overlay.
func loadBridgeConfig(path string) (bridgeConfig, error) {
	cfg := defaultBridgeConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return bridgeConfig{}, fmt.Errorf("load iracmqtt config: %w", err)
	}

	if meta.IsDefined("broker") {
		cfg.Broker = strings.TrimSpace(raw.Broker)
	}
	if meta.IsDefined("client_id") {
		cfg.ClientID = strings.TrimSpace(raw.ClientID)
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

	if err := validateBridgeConfig(cfg); err != nil {
		return bridgeConfig{}, err
	}
	return cfg, nil
}

func validateBridgeConfig(cfg bridgeConfig) error {
	if cfg.Broker == "" {
		return fmt.Errorf("load iracmqtt config: broker is required")
	}
	if cfg.ClientID == "" {
		return fmt.Errorf("load iracmqtt config: client_id is required")
	}
	if cfg.SerialBaud <= 0 {
		return fmt.Errorf("load iracmqtt config: serial_baud must be positive, got %d", cfg.SerialBaud)
	}
	if cfg.Repeat < 0 {
		return fmt.Errorf("load iracmqtt config: repeat must not be negative, got %d", cfg.Repeat)
	}
	return nil
}
