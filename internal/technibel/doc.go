// Package technibel implements the IR remote protocol of the Technibel
// IRO PLUS air-conditioner family.
//
// Ownership boundary:
// - the 56-bit packed frame layout and its checksum
// - the state model with its clamping and cross-field rules
// - encode to / decode from the protocol pulse timing
//
// Physical transmission and capture stay behind pulse.Transmitter and the
// raw duration slices handed to Decode.
package technibel
