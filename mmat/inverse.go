// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmat

import (
	"github.com/LUXROBO/golfcar-lqr-path-manager/scl"
)

// pivTol is the partial-pivoting tolerance (in scaled units). A column
// whose best pivot magnitude falls below it is skipped: the matrix is
// treated as numerically singular and the result is unreliable
const pivTol = 1e-4

// Det returns the determinant. Closed forms are used for orders 1 to 3;
// order 4 uses Gaussian elimination with partial pivoting (the product
// of the pivots). For non-square matrices the determinant of At*A or
// A*At is returned, whichever is smaller
func (o Matrix[S]) Det() S {
	if o.nrow == o.ncol {
		return det(&o.v, o.nrow)
	}
	if o.nrow > o.ncol {
		m := o.Transpose().Mul(o)
		return det(&m.v, m.nrow)
	}
	m := o.Mul(o.Transpose())
	return det(&m.v, m.nrow)
}

// det computes the determinant of an order x order block held in e
func det[S scl.Num[S]](e *[MaxSize]S, order int) (res S) {
	var z S
	switch order {
	case 1:
		return e[0]
	case 2:
		return e[0].Mul(e[3]).Sub(e[1].Mul(e[2]))
	case 3:
		res = e[0].Mul(e[4]).Mul(e[8])
		res = res.Add(e[1].Mul(e[5]).Mul(e[6]))
		res = res.Add(e[2].Mul(e[3]).Mul(e[7]))
		res = res.Sub(e[0].Mul(e[5]).Mul(e[7]))
		res = res.Sub(e[1].Mul(e[3]).Mul(e[8]))
		res = res.Sub(e[2].Mul(e[4]).Mul(e[6]))
		return
	}

	// gaussian elimination with partial pivoting
	a := *e
	res = z.From(1)
	sign := 1.0
	for i := 0; i < order; i++ {

		// find pivot row
		maxRow, maxAbs := i, a[i*order+i].Abs().Float()
		for j := i + 1; j < order; j++ {
			if v := a[j*order+i].Abs().Float(); v > maxAbs {
				maxRow, maxAbs = j, v
			}
		}
		if maxAbs < pivTol {
			continue // numerically singular column
		}

		// swap rows
		if maxRow != i {
			for j := 0; j < order; j++ {
				a[maxRow*order+j], a[i*order+j] = a[i*order+j], a[maxRow*order+j]
			}
			sign = -sign
		}

		// eliminate below
		for j := i + 1; j < order; j++ {
			f := a[j*order+i].Div(a[i*order+i])
			for k := i; k < order; k++ {
				a[j*order+k] = a[j*order+k].Sub(a[i*order+k].Mul(f))
			}
		}
	}
	for i := 0; i < order; i++ {
		res = res.Mul(a[i*order+i])
	}
	if sign < 0 {
		res = res.Neg()
	}
	return
}

// Inv returns the inverse. Square matrices go through Gauss-Jordan
// elimination with partial pivoting; non-square matrices go through the
// Moore-Penrose pseudo-inverse
func (o Matrix[S]) Inv() Matrix[S] {
	if o.nrow == o.ncol {
		return gaussJordan(o)
	}
	if o.nrow > o.ncol {
		// left inverse: (At*A)^-1 * At
		return o.Transpose().Mul(o).Inv().Mul(o.Transpose())
	}
	// right inverse: At * (A*At)^-1
	return o.Transpose().Mul(o.Mul(o.Transpose()).Inv())
}

// InvDLS returns the damped least-squares (Tikhonov) inverse with
// damping sigma; it stays bounded near singular configurations
func (o Matrix[S]) InvDLS(sigma S) Matrix[S] {
	if o.nrow <= o.ncol {
		// At * (A*At + sigma*I)^-1
		damp := Identity[S](o.nrow, o.nrow).MulScalar(sigma)
		return o.Transpose().Mul(o.Mul(o.Transpose()).Add(damp).Inv())
	}
	// (At*A + sigma*I)^-1 * At
	damp := Identity[S](o.ncol, o.ncol).MulScalar(sigma)
	return o.Transpose().Mul(o).Add(damp).Inv().Mul(o.Transpose())
}

// gaussJordan inverts a square matrix in augmented form. Columns whose
// best pivot is below pivTol are skipped, leaving an unreliable result;
// no fallback to InvDLS happens here or in the controllers
func gaussJordan[S scl.Num[S]](o Matrix[S]) Matrix[S] {
	n := o.nrow
	a := o.v
	res := Identity[S](n, n)
	b := &res.v

	// forward: normalize pivot row, eliminate below
	for i := 0; i < n; i++ {

		// find pivot row
		maxRow, maxAbs := i, a[i*n+i].Abs().Float()
		for j := i + 1; j < n; j++ {
			if v := a[j*n+i].Abs().Float(); v > maxAbs {
				maxRow, maxAbs = j, v
			}
		}
		if maxAbs < pivTol {
			continue // numerically singular column
		}

		// swap and normalize by the pivot
		piv := a[maxRow*n+i]
		for j := 0; j < n; j++ {
			a[maxRow*n+j], a[i*n+j] = a[i*n+j], a[maxRow*n+j].Div(piv)
			b[maxRow*n+j], b[i*n+j] = b[i*n+j], b[maxRow*n+j].Div(piv)
		}

		// eliminate below
		for j := i + 1; j < n; j++ {
			f := a[j*n+i]
			for k := 0; k < n; k++ {
				a[j*n+k] = a[j*n+k].Sub(a[i*n+k].Mul(f))
				b[j*n+k] = b[j*n+k].Sub(b[i*n+k].Mul(f))
			}
		}
	}

	// backward: eliminate above
	for i := n - 1; i >= 0; i-- {
		for j := i - 1; j >= 0; j-- {
			f := a[j*n+i]
			for k := 0; k < n; k++ {
				a[j*n+k] = a[j*n+k].Sub(a[i*n+k].Mul(f))
				b[j*n+k] = b[j*n+k].Sub(b[i*n+k].Mul(f))
			}
		}
	}
	return res
}
