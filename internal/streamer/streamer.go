// Package streamer talks to a USB pulse-streamer dongle over a serial
// link. The dongle replays mark/space trains on its IR LED and reports
// captured trains back using the same framing.
//
// Frame format: magic (2 bytes BE) | duty % (1) | carrier kHz (1) |
// pulse count (2 BE) | count x pulse microseconds (4 BE each) |
// Fletcher16 checksum (2 BE, over everything after the magic).
package streamer

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"

	"go.bug.st/serial"

	"github.com/danmuck/irac/internal/pulse"
)

const (
	// FrameMagic starts every frame on the link.
	FrameMagic uint16 = 0xA9C3
	// MaxPulses bounds a single frame; a Technibel message is 116 pulses,
	// the margin leaves room for long captures with repeats.
	MaxPulses = 1024

	headerLen   = 6
	checksumLen = 2
	pulseLen    = 4

	// DefaultBaud matches the stock dongle firmware.
	DefaultBaud = 115200
)

var (
	ErrFrameTooShort    = errors.New("streamer: frame too short")
	ErrInvalidMagic     = errors.New("streamer: invalid frame magic")
	ErrTooManyPulses    = errors.New("streamer: pulse count exceeds frame limit")
	ErrChecksumMismatch = errors.New("streamer: checksum mismatch")
	ErrIncompleteFrame  = errors.New("streamer: incomplete frame")
)

// EncodeFrame serializes a pulse train for the link.
func EncodeFrame(train pulse.Train) ([]byte, error) {
	if len(train.Pulses) > MaxPulses {
		return nil, ErrTooManyPulses
	}
	duty := train.DutyCycle
	if duty <= 0 || duty > 100 {
		duty = pulse.DefaultDutyCycle
	}

	buf := make([]byte, headerLen+pulseLen*len(train.Pulses)+checksumLen)
	binary.BigEndian.PutUint16(buf[0:2], FrameMagic)
	buf[2] = byte(duty)
	buf[3] = byte(train.CarrierHz / 1000)
	binary.BigEndian.PutUint16(buf[4:6], uint16(len(train.Pulses)))
	for i, p := range train.Pulses {
		binary.BigEndian.PutUint32(buf[headerLen+pulseLen*i:], uint32(p/time.Microsecond))
	}
	sum := fletcher16(buf[2 : len(buf)-checksumLen])
	binary.BigEndian.PutUint16(buf[len(buf)-checksumLen:], sum)
	return buf, nil
}

// DecodeFrame decodes the first complete frame in data, returning the
// train and any remaining bytes after it.
func DecodeFrame(data []byte) (pulse.Train, []byte, error) {
	if len(data) < headerLen+checksumLen {
		return pulse.Train{}, data, ErrFrameTooShort
	}
	if binary.BigEndian.Uint16(data[0:2]) != FrameMagic {
		return pulse.Train{}, data, ErrInvalidMagic
	}
	count := int(binary.BigEndian.Uint16(data[4:6]))
	if count > MaxPulses {
		return pulse.Train{}, data, ErrTooManyPulses
	}
	total := headerLen + pulseLen*count + checksumLen
	if len(data) < total {
		return pulse.Train{}, data, ErrIncompleteFrame
	}

	want := binary.BigEndian.Uint16(data[total-checksumLen : total])
	if got := fletcher16(data[2 : total-checksumLen]); got != want {
		return pulse.Train{}, data, fmt.Errorf("%w: got %04x want %04x", ErrChecksumMismatch, got, want)
	}

	train := pulse.Train{
		Pulses:    make([]time.Duration, count),
		CarrierHz: uint32(data[3]) * 1000,
		DutyCycle: int(data[2]),
	}
	for i := 0; i < count; i++ {
		us := binary.BigEndian.Uint32(data[headerLen+pulseLen*i:])
		train.Pulses[i] = time.Duration(us) * time.Microsecond
	}
	return train, data[total:], nil
}

func fletcher16(data []byte) uint16 {
	var sum1, sum2 uint16
	for _, b := range data {
		sum1 = (sum1 + uint16(b)) % 255
		sum2 = (sum2 + sum1) % 255
	}
	return sum2<<8 | sum1
}

// Config selects the serial link parameters.
type Config struct {
	Port        string
	Baud        int
	ReadTimeout time.Duration
}

// Device is one open pulse streamer. It implements pulse.Transmitter.
type Device struct {
	port serial.Port
}

// Open connects to the dongle.
func Open(cfg Config) (*Device, error) {
	if cfg.Baud <= 0 {
		cfg.Baud = DefaultBaud
	}
	port, err := serial.Open(cfg.Port, &serial.Mode{BaudRate: cfg.Baud})
	if err != nil {
		return nil, fmt.Errorf("streamer: open %s: %w", cfg.Port, err)
	}
	if cfg.ReadTimeout > 0 {
		if err := port.SetReadTimeout(cfg.ReadTimeout); err != nil {
			port.Close()
			return nil, fmt.Errorf("streamer: set read timeout: %w", err)
		}
	}
	return &Device{port: port}, nil
}

func (d *Device) Close() error { return d.port.Close() }

// Transmit frames the train and hands it to the dongle. Blocks only for
// the serial write, not for the IR signal itself.
func (d *Device) Transmit(train pulse.Train) error {
	frame, err := EncodeFrame(train)
	if err != nil {
		return err
	}
	if _, err := d.port.Write(frame); err != nil {
		return fmt.Errorf("streamer: write frame: %w", err)
	}
	return nil
}

// Capture reads one captured train reported by the dongle. A read
// timeout (zero-byte read) before a complete frame arrives surfaces as
// ErrIncompleteFrame.
func (d *Device) Capture() ([]time.Duration, error) {
	buf := make([]byte, 0, 4096)
	chunk := make([]byte, 512)
	for {
		n, err := d.port.Read(chunk)
		if err != nil {
			return nil, fmt.Errorf("streamer: read: %w", err)
		}
		if n == 0 {
			return nil, ErrIncompleteFrame
		}
		buf = append(buf, chunk[:n]...)

		train, _, err := DecodeFrame(buf)
		switch {
		case err == nil:
			return train.Pulses, nil
		case errors.Is(err, ErrIncompleteFrame), errors.Is(err, ErrFrameTooShort):
			continue
		default:
			return nil, err
		}
	}
}
