package pulse

import (
	"errors"
	"time"
)

const (
	// DefaultTolerance is the matching tolerance as a percentage of the
	// expected duration.
	DefaultTolerance = 25
	// DefaultMarkExcess compensates for demodulating receivers reporting
	// marks longer, and spaces shorter, than transmitted.
	DefaultMarkExcess = 50 * time.Microsecond
	// DefaultGap separates repeated messages when a timing table carries
	// no protocol-specific trailing gap.
	DefaultGap = 100 * time.Millisecond
	// DefaultDutyCycle is the carrier duty cycle percentage used when a
	// timing table leaves it unset.
	DefaultDutyCycle = 50

	// Overhead is the number of non-data pulses in one message: header
	// mark, header space and the trailing bit mark.
	Overhead = 3
)

var (
	ErrShortCapture   = errors.New("pulse: capture too short")
	ErrHeaderMismatch = errors.New("pulse: header outside tolerance")
	ErrDataMismatch   = errors.New("pulse: data bit outside tolerance")
	ErrGapMismatch    = errors.New("pulse: trailing gap too short")
)

// Timing is the immutable pulse table for one protocol. Encode and Match
// read the same table so the transmit and receive directions cannot drift
// apart.
type Timing struct {
	HeaderMark  time.Duration
	HeaderSpace time.Duration
	BitMark     time.Duration
	OneSpace    time.Duration
	ZeroSpace   time.Duration
	Gap         time.Duration
	CarrierHz   uint32
	DutyCycle   int // percent
}

// Train is one transmittable pulse sequence. Pulses alternate mark, space,
// starting with a mark.
type Train struct {
	Pulses    []time.Duration
	CarrierHz uint32
	DutyCycle int
}

// Transmitter pushes a pulse train through a physical carrier. The call
// may block for the duration of the signal.
type Transmitter interface {
	Transmit(train Train) error
}

// Encode builds the pulse train for data: a header mark/space pair, nbits
// data bits least-significant first (bit mark followed by the one or zero
// space), a trailing bit mark and the inter-message gap. The message is
// emitted repeat+1 times.
func (t Timing) Encode(data uint64, nbits, repeat int) Train {
	perMessage := 2*nbits + Overhead + 1
	pulses := make([]time.Duration, 0, (repeat+1)*perMessage)
	for r := 0; r <= repeat; r++ {
		pulses = append(pulses, t.HeaderMark, t.HeaderSpace)
		for i := 0; i < nbits; i++ {
			pulses = append(pulses, t.BitMark)
			if data>>uint(i)&1 == 1 {
				pulses = append(pulses, t.OneSpace)
			} else {
				pulses = append(pulses, t.ZeroSpace)
			}
		}
		pulses = append(pulses, t.BitMark, t.gap())
	}
	return Train{Pulses: pulses, CarrierHz: t.CarrierHz, DutyCycle: t.duty()}
}

// Match extracts nbits least-significant-first from raw starting at
// offset, checking every mark and space against t within the tolerance
// window. Marks are measured minus markExcess and spaces plus it. The
// trailing gap is matched as a minimum only, and only when the capture
// extends past the final bit mark. Any mismatch fails without a partial
// value.
func (t Timing) Match(raw []time.Duration, offset, nbits, tolerance int, markExcess time.Duration) (uint64, error) {
	if len(raw)-offset < 2*nbits+Overhead {
		return 0, ErrShortCapture
	}
	i := offset
	if !matchMark(raw[i], t.HeaderMark, tolerance, markExcess) ||
		!matchSpace(raw[i+1], t.HeaderSpace, tolerance, markExcess) {
		return 0, ErrHeaderMismatch
	}
	i += 2

	var data uint64
	for bit := 0; bit < nbits; bit++ {
		if !matchMark(raw[i], t.BitMark, tolerance, markExcess) {
			return 0, ErrDataMismatch
		}
		switch {
		case matchSpace(raw[i+1], t.OneSpace, tolerance, markExcess):
			data |= 1 << uint(bit)
		case matchSpace(raw[i+1], t.ZeroSpace, tolerance, markExcess):
		default:
			return 0, ErrDataMismatch
		}
		i += 2
	}

	if !matchMark(raw[i], t.BitMark, tolerance, markExcess) {
		return 0, ErrDataMismatch
	}
	i++
	if i < len(raw) && !matchAtLeast(raw[i], t.gap(), tolerance) {
		return 0, ErrGapMismatch
	}
	return data, nil
}

func (t Timing) gap() time.Duration {
	if t.Gap <= 0 {
		return DefaultGap
	}
	return t.Gap
}

func (t Timing) duty() int {
	if t.DutyCycle <= 0 || t.DutyCycle > 100 {
		return DefaultDutyCycle
	}
	return t.DutyCycle
}

func inTolerance(measured, desired time.Duration, tolerance int) bool {
	delta := desired * time.Duration(tolerance) / 100
	return measured >= desired-delta && measured <= desired+delta
}

func matchMark(measured, desired time.Duration, tolerance int, excess time.Duration) bool {
	return inTolerance(measured, desired+excess, tolerance)
}

func matchSpace(measured, desired time.Duration, tolerance int, excess time.Duration) bool {
	return inTolerance(measured, desired-excess, tolerance)
}

func matchAtLeast(measured, desired time.Duration, tolerance int) bool {
	return measured >= desired-desired*time.Duration(tolerance)/100
}
