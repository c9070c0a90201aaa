// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctl

import (
	"math"

	"github.com/LUXROBO/golfcar-lqr-path-manager/mmat"
	"github.com/LUXROBO/golfcar-lqr-path-manager/track"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// LQRSteer implements the LQR steering controller over the linearized
// lateral error model with states (e, de, th_e, dth_e). The discrete
// algebraic Riccati equation is solved by value iteration each tick; on
// non-convergence the last gain is reused and the controller reports a
// degraded (non-fatal) status
type LQRSteer struct {
	Tracker

	// configuration
	Q           mmat.D  // 4x4 state weights
	R           mmat.D  // 1x1 input weight
	DareEps     float64 // value-iteration termination threshold
	DareMaxIter int     // value-iteration cap

	// warm start
	prevK mmat.D // last gain
	hasK  bool   // prevK holds a usable gain

	// error memory for the difference quotients
	pe   float64 // previous lateral error
	pthE float64 // previous heading error
}

// add controller to factory
func init() {
	allocators["lqr"] = func() Controller { return new(LQRSteer) }
}

// Init initialises the controller
func (o *LQRSteer) Init(prms fun.Prms) (err error) {
	o.Tracker.SetDefault()
	o.Q = mmat.IdentityD(4, 4)
	o.R = mmat.NewD(1, 1, 1)
	o.DareEps = 1e-2
	o.DareMaxIter = 150
	for _, p := range prms {
		if o.Tracker.setPrm(p) {
			continue
		}
		switch p.N {
		case "q0", "q1", "q2", "q3":
			i := int(p.N[1] - '0')
			o.Q.SetReal(i, i, p.V)
		case "r":
			o.R.SetReal(0, 0, p.V)
		case "dare_eps":
			o.DareEps = p.V
		case "dare_maxit":
			o.DareMaxIter = int(p.V)
		default:
			return chk.Err("lqr: parameter named %q is incorrect\n", p.N)
		}
	}
	o.Reset()
	return
}

// Reset clears per-run state
func (o *LQRSteer) Reset() {
	o.Tracker.reset()
	o.hasK = false
	o.pe, o.pthE = 0, 0
}

// Update advances one control period
func (o *LQRSteer) Update(dt float64) (UpdateResult, float64, float64) {
	return o.step(dt, o.steer)
}

// steer computes the LQR steering command: curvature feedforward at the
// front target plus state feedback at the real target
func (o *LQRSteer) steer(dt float64) (float64, bool) {

	// errors at the real target
	e := o.path.SignedDist(o.state, o.targetInd)
	thE := track.WrapAngle(o.state.Yaw - o.path.At(o.targetInd).Yaw)
	v := o.state.V

	// linearized lateral model
	A := mmat.NewD(4, 4,
		1, dt, 0, 0,
		0, 0, v, 0,
		0, 0, 1, dt,
		0, 0, 0, 0)
	B := mmat.NewD(4, 1, 0, 0, 0, v/o.L)

	// gain from the Riccati fixed point
	X, conv := solveDARE(A, B, o.Q, o.R, o.DareEps, o.DareMaxIter)
	Bt := B.Transpose()
	K := o.R.Add(Bt.Mul(X).Mul(B)).Inv().Mul(Bt).Mul(X).Mul(A)
	if conv {
		o.degraded = false
	} else {
		o.degraded = true
		if o.hasK {
			K = o.prevK // warm fall-back
		}
	}
	o.prevK, o.hasK = K, true

	// feedforward + feedback
	x := mmat.NewD(4, 1, e, (e-o.pe)/dt, thE, (thE-o.pthE)/dt)
	ff := math.Atan(o.L * o.path.At(o.frontInd).K)
	fb := track.WrapAngle(-K.Mul(x).GetReal(0, 0))

	o.pe, o.pthE = e, thE
	o.latErr, o.yawErr = e, thE
	return ff + fb, true
}

// solveDARE iterates the discrete algebraic Riccati equation
//  X_{n+1} = At*X*A - At*X*B (R + Bt*X*B)^-1 Bt*X*A + Q
// until the largest element change falls under eps or maxIter is hit
func solveDARE(A, B, Q, R mmat.D, eps float64, maxIter int) (X mmat.D, converged bool) {
	X = Q
	At, Bt := A.Transpose(), B.Transpose()
	for it := 0; it < maxIter; it++ {
		inner := R.Add(Bt.Mul(X).Mul(B)).Inv()
		AtX := At.Mul(X)
		Xn := AtX.Mul(A).Sub(AtX.Mul(B).Mul(inner).Mul(Bt).Mul(X).Mul(A)).Add(Q)
		if maxAbsDiff(Xn, X) < eps {
			return Xn, true
		}
		X = Xn
	}
	return X, false
}

// maxAbsDiff returns the largest elementwise |a - b|
func maxAbsDiff(a, b mmat.D) (res float64) {
	for i := 0; i < a.Nrow(); i++ {
		for j := 0; j < a.Ncol(); j++ {
			if d := math.Abs(a.GetReal(i, j) - b.GetReal(i, j)); d > res {
				res = d
			}
		}
	}
	return
}
