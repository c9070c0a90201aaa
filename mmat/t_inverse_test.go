// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mmat

import (
	"testing"

	"github.com/LUXROBO/golfcar-lqr-path-manager/scl"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
	gm "gonum.org/v1/gonum/mat"
)

// checkInv exercises A * A^-1 == I and the determinant laws
func checkInv[S scl.Num[S]](tst *testing.T, lab string, tol float64) {

	// well-conditioned matrices near the operating envelope
	a2 := NewFrom[S](2, 2, 4, 7, 2, 6)
	a3 := NewFrom[S](3, 3, 2, 0, 1, 1, 3, 2, 1, 1, 2)
	a4 := NewFrom[S](4, 4,
		5, 2, 0, 1,
		2, 6, 1, 0,
		0, 1, 4, 2,
		1, 0, 2, 3)

	for _, m := range []Matrix[S]{a2, a3, a4} {
		n := m.Nrow()
		ident := toDense(Identity[S](n, n))
		chk.Matrix(tst, io.Sf("%s: A*inv(A) %dx%d", lab, n, n), tol, toDense(m.Mul(m.Inv())), ident)
		chk.Matrix(tst, io.Sf("%s: inv(A)*A %dx%d", lab, n, n), tol, toDense(m.Inv().Mul(m)), ident)
	}

	// determinants: closed forms and pivot product
	chk.Scalar(tst, lab+": det 2x2", tol, a2.Det().Float(), 10)
	chk.Scalar(tst, lab+": det 3x3", tol, a3.Det().Float(), 6)
	chk.Scalar(tst, lab+": det 4x4", tol*100, a4.Det().Float(), 162)

	// det(A*B) == det(A)*det(B)
	b3 := NewFrom[S](3, 3, 1, 2, 0, 0, 1, 1, 2, 0, 1)
	chk.Scalar(tst, lab+": det(A*B)", tol*100, a3.Mul(b3).Det().Float(), a3.Det().Mul(b3.Det()).Float())
}

func Test_inv01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	//utl.Tsilent = false
	chk.PrintTitle("inv01. inverse and determinant, both backends")

	checkInv[scl.F64](tst, "f64", 1e-6)
	checkInv[scl.Q16](tst, "q16", 1e-3)
}

func Test_inv02(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	//utl.Tsilent = false
	chk.PrintTitle("inv02. cross-check against gonum")

	a := NewD(4, 4,
		5, 2, 0, 1,
		2, 6, 1, 0,
		0, 1, 4, 2,
		1, 0, 2, 3)

	// gonum reference inverse
	ref := gm.NewDense(4, 4, []float64{
		5, 2, 0, 1,
		2, 6, 1, 0,
		0, 1, 4, 2,
		1, 0, 2, 3})
	var refInv gm.Dense
	err := refInv.Inverse(ref)
	if err != nil {
		tst.Errorf("gonum inversion failed: %v\n", err)
		return
	}

	inv := a.Inv()
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			chk.Scalar(tst, io.Sf("inv[%d][%d]", i, j), 1e-12, inv.GetReal(i, j), refInv.At(i, j))
		}
	}

	// gonum reference determinant
	chk.Scalar(tst, "det", 1e-10, a.Det().Float(), gm.Det(ref))
}

// checkPinv exercises the Moore-Penrose law A * A+ * A == A
func checkPinv[S scl.Num[S]](tst *testing.T, lab string, tol float64) {

	// tall (rows > cols) and wide (cols > rows)
	tall := NewFrom[S](3, 2, 1, 0, 0, 1, 1, 1)
	wide := NewFrom[S](2, 3, 1, 0, 1, 0, 1, 1)

	for _, m := range []Matrix[S]{tall, wide} {
		p := m.Inv()
		chk.IntAssert(p.Nrow(), m.Ncol())
		chk.IntAssert(p.Ncol(), m.Nrow())
		chk.Matrix(tst, io.Sf("%s: A*A+*A %dx%d", lab, m.Nrow(), m.Ncol()), tol, toDense(m.Mul(p).Mul(m)), toDense(m))
	}
}

func Test_inv03(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	//utl.Tsilent = false
	chk.PrintTitle("inv03. pseudo-inverse, both backends")

	checkPinv[scl.F64](tst, "f64", 1e-6)
	checkPinv[scl.Q16](tst, "q16", 1e-2)
}

func Test_inv04(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	//utl.Tsilent = false
	chk.PrintTitle("inv04. damped least squares near singularity")

	// rank-deficient wide matrix: the plain pseudo-inverse path hits a
	// singular A*At, the damped one stays bounded
	a := NewD(2, 3,
		1, 2, 3,
		2, 4, 6)

	var z scl.F64
	dls := a.InvDLS(z.From(0.1))
	chk.IntAssert(dls.Nrow(), 3)
	chk.IntAssert(dls.Ncol(), 2)
	if l := dls.Length().Float(); l > 10 {
		tst.Errorf("DLS inverse blew up: |A+| = %g\n", l)
		return
	}

	// the damped inverse still approximately solves the consistent system
	x := dls.Mul(NewD(2, 1, 14, 28)) // b = A * [1 2 3]t
	r := a.Mul(x).Sub(NewD(2, 1, 14, 28))
	io.Pforan("residual = %v\n", toDense(r))
	if l := r.Length().Float(); l > 1.0 {
		tst.Errorf("DLS residual too large: %g\n", l)
	}
}

func Test_inv05(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	//utl.Tsilent = false
	chk.PrintTitle("inv05. singular matrix does not crash the kernel")

	// rank 2: third row is the sum of the first two
	a := NewD(3, 3,
		1, 2, 3,
		4, 5, 6,
		5, 7, 9)

	inv := a.Inv() // unreliable by contract, but must return
	chk.IntAssert(inv.Nrow(), 3)
	chk.IntAssert(inv.Ncol(), 3)
	chk.Scalar(tst, "det of singular", 1e-10, a.Det().Float(), 0)
}
