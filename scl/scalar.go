// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package scl implements the scalar layer of the path-tracking core.
// Two representations coexist behind one contract: F64 (IEEE double) for
// workstation builds and Q16 (fixed point) for microcontrollers without a
// fast FPU. The choice is made at compile time through instantiation;
// mixing representations within one build is not supported.
package scl

import "math"

// Num defines the contract shared by all scalar representations
type Num[S any] interface {
	From(v float64) S // quantizes a real number into S
	Float() float64   // converts S back to a real number
	Add(b S) S        // saturating addition
	Sub(b S) S        // saturating subtraction
	Mul(b S) S        // saturating multiplication with rounding
	Div(b S) S        // division with rounding-to-nearest
	Sqrt() S          // square root via real-domain evaluation
	Abs() S           // absolute value
	Neg() S           // negation
}

// F64 wraps an IEEE double; all operations are the native ones
type F64 float64

// From returns v as F64
func (o F64) From(v float64) F64 { return F64(v) }

// Float converts to a real number
func (o F64) Float() float64 { return float64(o) }

// Add returns o + b
func (o F64) Add(b F64) F64 { return o + b }

// Sub returns o - b
func (o F64) Sub(b F64) F64 { return o - b }

// Mul returns o * b
func (o F64) Mul(b F64) F64 { return o * b }

// Div returns o / b
func (o F64) Div(b F64) F64 { return o / b }

// Sqrt returns the square root of o
func (o F64) Sqrt() F64 { return F64(math.Sqrt(float64(o))) }

// Abs returns |o|
func (o F64) Abs() F64 {
	if o < 0 {
		return -o
	}
	return o
}

// Neg returns -o
func (o F64) Neg() F64 { return -o }
