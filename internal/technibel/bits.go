package technibel

// Bit-field helpers over the packed frame. All field access goes through
// these so the layout lives only in the constants table.

func getBits(v uint64, offset, width uint) uint64 {
	return v >> offset & (1<<width - 1)
}

func setBits(v *uint64, offset, width uint, value uint64) {
	mask := uint64(1<<width-1) << offset
	*v = *v&^mask | value<<offset&mask
}

func getBit(v uint64, offset uint) bool {
	return v>>offset&1 == 1
}

func setBit(v *uint64, offset uint, on bool) {
	if on {
		*v |= 1 << offset
	} else {
		*v &^= 1 << offset
	}
}

// invertBits flips the low width bits of v and drops the rest.
func invertBits(v uint64, width uint) uint64 {
	return ^v & (1<<width - 1)
}
