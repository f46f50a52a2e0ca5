// Package ident classifies the passive identification voltage on a motor port.
//
// Each port carries an ID resistor inside the motor; with the detect line
// driven low the divider settles at a voltage band per motor variant. The
// bands were measured on reference hardware, in raw 12-bit converter counts.
// A port with nothing attached floats at the centre reference.
//
// Each motor shows two values (low and high) depending on the quadrature
// encoder state, so every variant owns one band below centre and one above.
// The large motor's low state is barely distinguishable from the medium
// motor's, hence the computed midpoint thresholds rather than per-variant
// tuning.
package ident

import (
	"motioncode-go/types"
	"motioncode-go/x/mathx"
)

// Measured references, raw converter counts.
const (
	RawNone          = 2014 // nothing attached
	RawNoneTolerance = 750  // inclusive band around RawNone

	rawMediumLow  = 290
	rawMediumHigh = 3451
	rawLargeLow   = 120
	rawLargeHigh  = 3666

	// Split points between variants, midpoint of the neighbouring bands.
	thresholdLow  = (rawMediumLow + rawLargeLow) / 2
	thresholdHigh = (rawMediumHigh + rawLargeHigh) / 2
)

// Classify maps one raw sample to a motor type. Pure: no smoothing, no
// memory of prior samples. A sample exactly on a threshold resolves to the
// band farther from centre being strictly-greater-only, i.e. at thresholdLow
// the large motor, at thresholdHigh the medium motor.
func Classify(raw uint16) types.MotorType {
	v := int(raw)

	if mathx.IsClose(v, RawNone, RawNoneTolerance) {
		return types.MotorNone
	}

	if v < RawNone {
		if v > thresholdLow {
			return types.MotorMedium
		}
		return types.MotorLarge
	}

	if v > thresholdHigh {
		return types.MotorLarge
	}
	return types.MotorMedium
}
