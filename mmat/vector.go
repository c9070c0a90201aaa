// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmat

// Length returns the Frobenius norm; for vectors this is the Euclidean
// length. The square root is evaluated in the real domain
func (o Matrix[S]) Length() S {
	var sum S
	for k := 0; k < o.nrow*o.ncol; k++ {
		sum = sum.Add(o.v[k].Mul(o.v[k]))
	}
	return sum.Sqrt()
}

// Normalize returns o divided by its length; a zero-length matrix
// normalizes to the identity of the same shape
func (o Matrix[S]) Normalize() (res Matrix[S]) {
	l := o.Length()
	if l.Float() == 0 {
		return Identity[S](o.nrow, o.ncol)
	}
	res = New[S](o.nrow, o.ncol)
	for k := 0; k < o.nrow*o.ncol; k++ {
		res.v[k] = o.v[k].Div(l)
	}
	return
}

// Dot returns the sum of the elementwise products; shapes must match,
// otherwise zero is returned
func (o Matrix[S]) Dot(b Matrix[S]) (res S) {
	if o.nrow != b.nrow || o.ncol != b.ncol {
		return
	}
	for k := 0; k < o.nrow*o.ncol; k++ {
		res = res.Add(o.v[k].Mul(b.v[k]))
	}
	return
}

// Cross returns the cross product of two 3x1 vectors; any other shape
// returns the zero 3x1 vector
func (o Matrix[S]) Cross(b Matrix[S]) (res Matrix[S]) {
	res = New[S](3, 1)
	if o.nrow != 3 || o.ncol != 1 || b.nrow != 3 || b.ncol != 1 {
		return
	}
	res.v[0] = o.v[1].Mul(b.v[2]).Sub(o.v[2].Mul(b.v[1]))
	res.v[1] = o.v[2].Mul(b.v[0]).Sub(o.v[0].Mul(b.v[2]))
	res.v[2] = o.v[0].Mul(b.v[1]).Sub(o.v[1].Mul(b.v[0]))
	return
}

// Skew returns the skew-symmetric 3x3 matrix of a 3x1 vector, so that
// o.Skew().Mul(b) == o.Cross(b); any other shape returns the zero 3x3
func (o Matrix[S]) Skew() (res Matrix[S]) {
	res = New[S](3, 3)
	if o.nrow != 3 || o.ncol != 1 {
		return
	}
	res.v[1] = o.v[2].Neg()
	res.v[2] = o.v[1]
	res.v[3] = o.v[2]
	res.v[5] = o.v[0].Neg()
	res.v[6] = o.v[1].Neg()
	res.v[7] = o.v[0]
	return
}
