// Package bridge maps MQTT set topics onto IR transmissions. One service
// owns one remote state and serializes access to it; the codec itself is
// single-threaded by contract.
//
// Topics:
//   - irac/<field>/set  commands (power, mode, fan, temp, swing, sleep, timer)
//   - irac/state        retained JSON snapshot after each transmission
package bridge

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog"

	"github.com/danmuck/irac/internal/pulse"
	"github.com/danmuck/irac/internal/technibel"
)

const (
	TopicPrefix = "irac"
	StateTopic  = TopicPrefix + "/state"
	setSuffix   = "/set"
)

// Service bridges one device state to a transmitter.
type Service struct {
	mu     sync.Mutex
	ac     *technibel.Ac
	tx     pulse.Transmitter
	repeat int
	log    zerolog.Logger
}

func New(tx pulse.Transmitter, repeat int, log zerolog.Logger) *Service {
	return &Service{
		ac:     technibel.NewAc(),
		tx:     tx,
		repeat: repeat,
		log:    log,
	}
}

// Apply executes one set command against the state. field is the topic
// segment between the prefix and "/set". Parse failures reject the
// command; the state model itself never rejects, it clamps.
func (s *Service) Apply(field, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.apply(field, value)
}

func (s *Service) apply(field, value string) error {
	value = strings.ToLower(strings.TrimSpace(value))
	switch field {
	case "power":
		on, err := parseOnOff(value)
		if err != nil {
			return err
		}
		s.ac.SetPower(on)
	case "mode":
		mode, err := technibel.ParseMode(value)
		if err != nil {
			return err
		}
		s.ac.SetMode(mode)
	case "fan":
		fan, err := technibel.ParseFan(value)
		if err != nil {
			return err
		}
		s.ac.SetFan(fan)
	case "temp":
		degrees, fahrenheit, err := parseTemp(value, s.ac.TempUnit())
		if err != nil {
			return err
		}
		s.ac.SetTemp(degrees, fahrenheit)
	case "swing":
		on, err := parseOnOff(value)
		if err != nil {
			return err
		}
		s.ac.SetSwing(on)
	case "sleep":
		on, err := parseOnOff(value)
		if err != nil {
			return err
		}
		s.ac.SetSleep(on)
	case "timer":
		d, err := parseTimer(value)
		if err != nil {
			return err
		}
		s.ac.SetTimer(d)
	default:
		return fmt.Errorf("bridge: unknown field %q", field)
	}
	return nil
}

// Snapshot is the retained state publication.
type Snapshot struct {
	Power        bool   `json:"power"`
	Mode         string `json:"mode"`
	Fan          string `json:"fan"`
	Temp         int    `json:"temp"`
	Fahrenheit   bool   `json:"fahrenheit"`
	Swing        bool   `json:"swing"`
	Sleep        bool   `json:"sleep"`
	TimerMinutes int    `json:"timer_minutes"`
	Frame        string `json:"frame"`
}

// Snapshot captures the current state for publication.
func (s *Service) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Service) snapshot() Snapshot {
	return Snapshot{
		Power:        s.ac.Power(),
		Mode:         s.ac.Mode().String(),
		Fan:          s.ac.Fan().String(),
		Temp:         int(s.ac.Temp()),
		Fahrenheit:   s.ac.TempUnit(),
		Swing:        s.ac.Swing(),
		Sleep:        s.ac.Sleep(),
		TimerMinutes: int(s.ac.Timer() / time.Minute),
		Frame:        fmt.Sprintf("0x%014X", s.ac.Raw()),
	}
}

// HandleSet is the MQTT callback for set topics: apply, transmit, publish.
func (s *Service) HandleSet(client mqtt.Client, msg mqtt.Message) {
	field := strings.TrimSuffix(strings.TrimPrefix(msg.Topic(), TopicPrefix+"/"), setSuffix)

	s.mu.Lock()
	if err := s.apply(field, string(msg.Payload())); err != nil {
		s.mu.Unlock()
		s.log.Warn().Err(err).Str("topic", msg.Topic()).Msg("rejected set command")
		return
	}
	err := s.ac.Send(s.tx, s.repeat)
	snap := s.snapshot()
	state := s.ac.String()
	s.mu.Unlock()

	if err != nil {
		s.log.Error().Err(err).Msg("transmit failed")
		return
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		s.log.Error().Err(err).Msg("marshal state snapshot")
		return
	}
	client.Publish(StateTopic, 0, true, payload)
	s.log.Info().Str("field", field).Str("state", state).Msg("state transmitted")
}

// Subscribe registers the set-topic handler on an established client.
func (s *Service) Subscribe(client mqtt.Client) error {
	token := client.Subscribe(TopicPrefix+"/+/set", 0, s.HandleSet)
	token.Wait()
	if err := token.Error(); err != nil {
		return fmt.Errorf("bridge: subscribe: %w", err)
	}
	return nil
}

func parseOnOff(value string) (bool, error) {
	switch value {
	case "on", "true", "1":
		return true, nil
	case "off", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("bridge: invalid on/off value %q", value)
	}
}

// parseTemp accepts "23", "23c" or "74f"; a bare number keeps the current
// unit.
func parseTemp(value string, fahrenheit bool) (uint8, bool, error) {
	switch {
	case strings.HasSuffix(value, "f"):
		fahrenheit = true
		value = strings.TrimSuffix(value, "f")
	case strings.HasSuffix(value, "c"):
		fahrenheit = false
		value = strings.TrimSuffix(value, "c")
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 || n > 255 {
		return 0, false, fmt.Errorf("bridge: invalid temperature %q", value)
	}
	return uint8(n), fahrenheit, nil
}

// parseTimer accepts a Go duration ("90m", "2h") or a bare minute count.
func parseTimer(value string) (time.Duration, error) {
	if mins, err := strconv.Atoi(value); err == nil {
		if mins < 0 {
			return 0, fmt.Errorf("bridge: invalid timer %q", value)
		}
		return time.Duration(mins) * time.Minute, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return 0, fmt.Errorf("bridge: invalid timer %q", value)
	}
	return d, nil
}
