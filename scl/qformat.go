// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package scl

import (
	"math"
	"math/bits"
)

// Q16 is a fixed-point scalar: a signed 64-bit integer scaled by 2^16.
// The usable envelope is |value| <= 2^31; operations saturate at that
// bound instead of wrapping. Multiplication rounds to nearest; division
// pre-scales the numerator and shifts it by half of the denominator,
// matching the sign parity of the operands, so that results stay
// bit-exact with the vehicle firmware.
type Q16 int64

const (
	qFracBits = 16                       // compile-time fractional scale
	qOne      = Q16(1) << qFracBits      // 1.0 in raw units
	qSat      = Q16(math.MaxInt32) << 16 // saturation bound (raw)
)

// From quantizes a real number (round to nearest, ties away from zero)
func (o Q16) From(v float64) Q16 {
	r := v * float64(int64(qOne))
	if r >= float64(int64(qSat)) {
		return qSat
	}
	if r <= -float64(int64(qSat)) {
		return -qSat
	}
	if r < 0 {
		return Q16(r - 0.5)
	}
	return Q16(r + 0.5)
}

// Float converts to a real number
func (o Q16) Float() float64 { return float64(int64(o)) / float64(int64(qOne)) }

// Add returns o + b saturated to the envelope
func (o Q16) Add(b Q16) Q16 { return satQ(int64(o) + int64(b)) }

// Sub returns o - b saturated to the envelope
func (o Q16) Sub(b Q16) Q16 { return satQ(int64(o) - int64(b)) }

// Mul returns o * b rounded to nearest and saturated
func (o Q16) Mul(b Q16) Q16 {
	neg := (o < 0) != (b < 0)
	hi, lo := bits.Mul64(uint64(absRaw(int64(o))), uint64(absRaw(int64(b))))
	lo, carry := bits.Add64(lo, uint64(qOne)>>1, 0) // round to nearest
	hi += carry
	if hi != 0 || lo>>qFracBits > uint64(qSat) {
		if neg {
			return -qSat
		}
		return qSat
	}
	r := int64(lo >> qFracBits)
	if neg {
		r = -r
	}
	return Q16(r)
}

// Div returns o / b with the firmware rounding rule: the numerator is
// pre-scaled by 2^16 and shifted by half of the denominator, added when
// the operand signs agree and subtracted when they differ
func (o Q16) Div(b Q16) Q16 {
	if b == 0 {
		if o < 0 {
			return -qSat
		}
		return qSat
	}
	num := int64(o) << qFracBits
	if (o < 0) == (b < 0) {
		num += int64(b) / 2
	} else {
		num -= int64(b) / 2
	}
	return satQ(num / int64(b))
}

// Sqrt evaluates in the real domain and re-quantizes
func (o Q16) Sqrt() Q16 {
	if o <= 0 {
		return 0
	}
	return o.From(math.Sqrt(o.Float()))
}

// Abs returns |o|
func (o Q16) Abs() Q16 {
	if o < 0 {
		return -o
	}
	return o
}

// Neg returns -o
func (o Q16) Neg() Q16 { return -o }

// satQ clamps a raw value to the envelope
func satQ(r int64) Q16 {
	if r > int64(qSat) {
		return qSat
	}
	if r < -int64(qSat) {
		return -qSat
	}
	return Q16(r)
}

// absRaw returns |r| of a raw value
func absRaw(r int64) int64 {
	if r < 0 {
		return -r
	}
	return r
}
