package technibel

import (
	"errors"
	"time"

	"github.com/danmuck/irac/internal/pulse"
)

var (
	// ErrBitCount is returned by strict decodes when the capture does not
	// carry the canonical frame length.
	ErrBitCount = errors.New("technibel: bit count not canonical")
)

// CalcChecksum sums the 8-bit chunks between the footer and header
// fields, inverts the sum and adds one.
func CalcChecksum(state uint64) uint8 {
	var sum uint8
	for offset := uint(timerHoursOffset); offset < headerOffset; offset += 8 {
		sum += uint8(getBits(state, offset, 8))
	}
	return uint8(invertBits(uint64(sum), 8)) + 1
}

// ValidChecksum reports whether the checksum field of state matches its
// data region.
func ValidChecksum(state uint64) bool {
	return uint8(getBits(state, checksumOffset, checksumSize)) == CalcChecksum(state)
}

// Send transmits the current state, repeat extra times after the first
// message.
func (ac *Ac) Send(tx pulse.Transmitter, repeat int) error {
	return SendRaw(tx, ac.Raw(), Bits, repeat)
}

// SendRaw transmits an already-packed frame.
func SendRaw(tx pulse.Transmitter, data uint64, nbits, repeat int) error {
	return tx.Transmit(Timing.Encode(data, nbits, repeat))
}

// Decode matches a captured pulse train against the protocol timing and
// extracts the frame. offset skips leading samples (capture preamble),
// strict additionally requires nbits to equal the canonical length. On
// any mismatch the error is returned with a zero Result; there are no
// partial decodes.
func Decode(raw []time.Duration, offset, nbits int, strict bool) (pulse.Result, error) {
	if len(raw)-offset < 2*nbits+pulse.Overhead {
		return pulse.Result{}, pulse.ErrShortCapture
	}
	if strict && nbits != Bits {
		return pulse.Result{}, ErrBitCount
	}
	data, err := Timing.Match(raw, offset, nbits, pulse.DefaultTolerance, pulse.DefaultMarkExcess)
	if err != nil {
		return pulse.Result{}, err
	}
	return pulse.Result{
		Protocol: pulse.ProtocolTechnibelAC,
		Bits:     nbits,
		Value:    data,
	}, nil
}
