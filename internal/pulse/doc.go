// Package pulse owns the generic pulse-distance modulation primitives.
//
// Ownership boundary:
// - timing tables shared by encode and decode
// - mark/space train generation
// - tolerance-window matching of captured trains
//
// Protocol packages contribute a Timing value and a bit order; everything
// about physical signal generation lives behind the Transmitter interface.
package pulse
