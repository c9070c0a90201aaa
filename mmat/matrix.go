// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mmat implements the fixed-size dense matrix kernel used by the
// steering controllers and the position filter. Dimensions are bounded at
// 4x4; storage is a row-major array of 16 scalars held by value, so no
// operation allocates. The kernel never aborts: out-of-range access is
// ignored and shape mismatches return the zero matrix of the expected
// shape. Callers keep shape discipline; the LQR controller detects
// unreliable results downstream (DARE non-convergence), reports itself
// degraded and reuses its last gain. InvDLS provides the damped
// least-squares inverse as a separate operation; no controller calls it.
package mmat

import (
	"github.com/LUXROBO/golfcar-lqr-path-manager/scl"
)

// size bounds
const (
	MaxDim  = 4  // maximum number of rows or columns
	MaxSize = 16 // capacity of the element array
)

// Matrix holds a dense matrix with fixed-capacity storage
type Matrix[S scl.Num[S]] struct {
	nrow, ncol int
	v          [MaxSize]S
}

// D is the double-precision instantiation used by the controllers
type D = Matrix[scl.F64]

// Q is the fixed-point instantiation used on the embedded target
type Q = Matrix[scl.Q16]

// New returns a zero nrow x ncol matrix. Dimensions outside {1..4} or
// with nrow*ncol > 16 are clamped to 4
func New[S scl.Num[S]](nrow, ncol int) (o Matrix[S]) {
	if nrow < 1 || nrow > MaxDim {
		nrow = MaxDim
	}
	if ncol < 1 || ncol > MaxDim {
		ncol = MaxDim
	}
	o.nrow, o.ncol = nrow, ncol
	return
}

// NewFrom returns a nrow x ncol matrix quantizing the given real values
// (row-major). Missing values are zero
func NewFrom[S scl.Num[S]](nrow, ncol int, vals ...float64) (o Matrix[S]) {
	o = New[S](nrow, ncol)
	n := o.nrow * o.ncol
	if len(vals) < n {
		n = len(vals)
	}
	var z S
	for k := 0; k < n; k++ {
		o.v[k] = z.From(vals[k])
	}
	return
}

// NewD is a shorthand for the double-precision instantiation
func NewD(nrow, ncol int, vals ...float64) D {
	return NewFrom[scl.F64](nrow, ncol, vals...)
}

// IdentityD is a shorthand for the double-precision identity
func IdentityD(nrow, ncol int) D {
	return Identity[scl.F64](nrow, ncol)
}

// Zero returns the nrow x ncol zero matrix
func Zero[S scl.Num[S]](nrow, ncol int) Matrix[S] {
	return New[S](nrow, ncol)
}

// One returns the nrow x ncol matrix with all elements equal to one
func One[S scl.Num[S]](nrow, ncol int) (o Matrix[S]) {
	o = New[S](nrow, ncol)
	var z S
	one := z.From(1)
	for k := 0; k < o.nrow*o.ncol; k++ {
		o.v[k] = one
	}
	return
}

// Identity returns the nrow x ncol matrix with ones on the diagonal
func Identity[S scl.Num[S]](nrow, ncol int) (o Matrix[S]) {
	o = New[S](nrow, ncol)
	var z S
	one := z.From(1)
	for i := 0; i < o.nrow && i < o.ncol; i++ {
		o.v[i*o.ncol+i] = one
	}
	return
}

// Nrow returns the number of rows
func (o Matrix[S]) Nrow() int { return o.nrow }

// Ncol returns the number of columns
func (o Matrix[S]) Ncol() int { return o.ncol }

// Get returns the element at (i,j); out-of-range indices read as zero
func (o Matrix[S]) Get(i, j int) (res S) {
	if i < 0 || i >= o.nrow || j < 0 || j >= o.ncol {
		return
	}
	return o.v[i*o.ncol+j]
}

// GetReal returns the element at (i,j) as a real number
func (o Matrix[S]) GetReal(i, j int) float64 { return o.Get(i, j).Float() }

// Set assigns the element at (i,j); out-of-range indices are ignored
func (o *Matrix[S]) Set(i, j int, val S) {
	if i < 0 || i >= o.nrow || j < 0 || j >= o.ncol {
		return
	}
	o.v[i*o.ncol+j] = val
}

// SetReal quantizes and assigns the element at (i,j)
func (o *Matrix[S]) SetReal(i, j int, val float64) {
	var z S
	o.Set(i, j, z.From(val))
}

// Transpose returns the transposed matrix
func (o Matrix[S]) Transpose() (res Matrix[S]) {
	res = New[S](o.ncol, o.nrow)
	for i := 0; i < o.nrow; i++ {
		for j := 0; j < o.ncol; j++ {
			res.v[j*res.ncol+i] = o.v[i*o.ncol+j]
		}
	}
	return
}

// Add returns o + b; shapes must match, otherwise the zero matrix with
// the shape of o is returned
func (o Matrix[S]) Add(b Matrix[S]) (res Matrix[S]) {
	res = New[S](o.nrow, o.ncol)
	if o.nrow != b.nrow || o.ncol != b.ncol {
		return
	}
	for k := 0; k < o.nrow*o.ncol; k++ {
		res.v[k] = o.v[k].Add(b.v[k])
	}
	return
}

// Sub returns o - b; shapes must match, otherwise the zero matrix with
// the shape of o is returned
func (o Matrix[S]) Sub(b Matrix[S]) (res Matrix[S]) {
	res = New[S](o.nrow, o.ncol)
	if o.nrow != b.nrow || o.ncol != b.ncol {
		return
	}
	for k := 0; k < o.nrow*o.ncol; k++ {
		res.v[k] = o.v[k].Sub(b.v[k])
	}
	return
}

// Mul returns the matrix product o * b; the inner dimensions must agree,
// otherwise the zero matrix with the shape of o is returned
func (o Matrix[S]) Mul(b Matrix[S]) (res Matrix[S]) {
	if o.ncol != b.nrow {
		return New[S](o.nrow, o.ncol)
	}
	res = New[S](o.nrow, b.ncol)
	for i := 0; i < o.nrow; i++ {
		for j := 0; j < b.ncol; j++ {
			sum := o.v[i*o.ncol].Mul(b.v[j])
			for k := 1; k < o.ncol; k++ {
				sum = sum.Add(o.v[i*o.ncol+k].Mul(b.v[k*b.ncol+j]))
			}
			res.v[i*res.ncol+j] = sum
		}
	}
	return
}

// AddScalar returns o + s (elementwise)
func (o Matrix[S]) AddScalar(s S) (res Matrix[S]) {
	res = New[S](o.nrow, o.ncol)
	for k := 0; k < o.nrow*o.ncol; k++ {
		res.v[k] = o.v[k].Add(s)
	}
	return
}

// SubScalar returns o - s (elementwise)
func (o Matrix[S]) SubScalar(s S) (res Matrix[S]) {
	res = New[S](o.nrow, o.ncol)
	for k := 0; k < o.nrow*o.ncol; k++ {
		res.v[k] = o.v[k].Sub(s)
	}
	return
}

// MulScalar returns o * s (elementwise)
func (o Matrix[S]) MulScalar(s S) (res Matrix[S]) {
	res = New[S](o.nrow, o.ncol)
	for k := 0; k < o.nrow*o.ncol; k++ {
		res.v[k] = o.v[k].Mul(s)
	}
	return
}

// MulReal quantizes a real factor and returns o * s (elementwise)
func (o Matrix[S]) MulReal(v float64) Matrix[S] {
	var z S
	return o.MulScalar(z.From(v))
}

// ScalarSub returns s - o (elementwise); the scalar-on-the-left variant
func ScalarSub[S scl.Num[S]](s S, o Matrix[S]) (res Matrix[S]) {
	res = New[S](o.nrow, o.ncol)
	for k := 0; k < o.nrow*o.ncol; k++ {
		res.v[k] = s.Sub(o.v[k])
	}
	return
}
