// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package flt implements the extended Kalman position/heading filter.
// The motion model is the kinematic bicycle driven by wheel odometry
// (forward speed and steer angle); intermittent absolute position and
// heading fixes correct the estimate. The filter may run on prediction
// alone for many ticks between fixes
package flt

import (
	"math"

	"github.com/LUXROBO/golfcar-lqr-path-manager/mmat"
	"github.com/LUXROBO/golfcar-lqr-path-manager/track"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// PositionFilter holds the 3-state (x, y, yaw) extended Kalman filter
type PositionFilter struct {

	// configuration
	L     float64 // wheelbase [m]
	Qproc mmat.D  // 3x3 additive process noise
	Qu    mmat.D  // 3x3 input noise over (v, steer, dt)
	Rmeas mmat.D  // 3x3 measurement noise
	Gate  float64 // innovation gate distance [m]; 0 disables gating

	// state
	x     mmat.D // 3x1 estimate (x, y, yaw)
	p     mmat.D // 3x3 covariance
	valid bool   // estimate has been initialised
}

// Init initialises the filter from a parameters list. Recognized names:
// wheelbase, gate, qx, qy, qyaw (process), qv, qsteer, qdt (input) and
// rx, ry, ryaw (measurement) as variances
func (o *PositionFilter) Init(prms fun.Prms) (err error) {
	o.SetDefault()
	for _, p := range prms {
		switch p.N {
		case "wheelbase":
			o.L = p.V
		case "gate":
			o.Gate = p.V
		case "qx":
			o.Qproc.SetReal(0, 0, p.V)
		case "qy":
			o.Qproc.SetReal(1, 1, p.V)
		case "qyaw":
			o.Qproc.SetReal(2, 2, p.V)
		case "qv":
			o.Qu.SetReal(0, 0, p.V)
		case "qsteer":
			o.Qu.SetReal(1, 1, p.V)
		case "qdt":
			o.Qu.SetReal(2, 2, p.V)
		case "rx":
			o.Rmeas.SetReal(0, 0, p.V)
		case "ry":
			o.Rmeas.SetReal(1, 1, p.V)
		case "ryaw":
			o.Rmeas.SetReal(2, 2, p.V)
		default:
			return chk.Err("position filter: parameter named %q is incorrect\n", p.N)
		}
	}
	return
}

// SetDefault sets the golf-cart defaults
func (o *PositionFilter) SetDefault() {
	o.L = 2.15
	o.Gate = 3.0
	o.Qproc = mmat.NewD(3, 3)
	o.Qproc.SetReal(0, 0, 1e-5)
	o.Qproc.SetReal(1, 1, 1e-5)
	o.Qproc.SetReal(2, 2, 1e-6)
	o.Qu = mmat.NewD(3, 3)
	o.Qu.SetReal(0, 0, 1e-3)
	o.Qu.SetReal(1, 1, 1e-3)
	o.Qu.SetReal(2, 2, 0)
	o.Rmeas = mmat.NewD(3, 3)
	o.Rmeas.SetReal(0, 0, 2.5e-3)
	o.Rmeas.SetReal(1, 1, 2.5e-3)
	o.Rmeas.SetReal(2, 2, 4e-4)
	o.x = mmat.NewD(3, 1)
	o.p = mmat.IdentityD(3, 3)
	o.valid = false
}

// SetPose (re)initialises the estimate with a 3x1 (x, y, yaw) vector and
// resets the covariance
func (o *PositionFilter) SetPose(pose mmat.D) {
	o.x = pose
	o.x.SetReal(2, 0, track.WrapAngle(pose.GetReal(2, 0)))
	o.p = mmat.IdentityD(3, 3)
	o.valid = true
}

// Pose returns the 3x1 (x, y, yaw) estimate
func (o *PositionFilter) Pose() mmat.D { return o.x }

// Cov returns the 3x3 covariance
func (o *PositionFilter) Cov() mmat.D { return o.p }

// Valid reports whether the estimate has been initialised
func (o *PositionFilter) Valid() bool { return o.valid }

// Predict propagates the estimate with the odometry input u = 3x1
// (v, steer, dt) through the bicycle model with zero acceleration
func (o *PositionFilter) Predict(u mmat.D) {
	if !o.valid {
		return
	}
	v, steer, dt := u.GetReal(0, 0), u.GetReal(1, 0), u.GetReal(2, 0)
	yaw := o.x.GetReal(2, 0)
	sy, cy := math.Sin(yaw), math.Cos(yaw)
	ts := math.Tan(steer)

	// x- = f(x, u)
	o.x.SetReal(0, 0, o.x.GetReal(0, 0)+v*cy*dt)
	o.x.SetReal(1, 0, o.x.GetReal(1, 0)+v*sy*dt)
	o.x.SetReal(2, 0, track.WrapAngle(yaw+v/o.L*ts*dt))

	// F = df/dx
	F := mmat.NewD(3, 3,
		1, 0, -v*sy*dt,
		0, 1, v*cy*dt,
		0, 0, 1)

	// G = df/du over (v, steer, dt)
	cs := math.Cos(steer)
	G := mmat.NewD(3, 3,
		cy*dt, 0, v*cy,
		sy*dt, 0, v*sy,
		ts*dt/o.L, v*dt/(o.L*cs*cs), v*ts/o.L)

	// P- = F P Ft + G Qu Gt + Qproc
	o.p = F.Mul(o.p).Mul(F.Transpose()).
		Add(G.Mul(o.Qu).Mul(G.Transpose())).
		Add(o.Qproc)
}

// Update corrects the estimate with an absolute 3x1 (x, y, yaw) fix and
// reports whether the measurement was accepted. A fix whose position
// innovation exceeds the gate is rejected, leaving estimate and
// covariance untouched
func (o *PositionFilter) Update(z mmat.D) bool {
	if !o.valid {
		o.SetPose(z)
		return true
	}

	// innovation with normalized heading component (H = I3)
	y := z.Sub(o.x)
	y.SetReal(2, 0, track.WrapAngle(y.GetReal(2, 0)))

	if o.Gate > 0 {
		if math.Hypot(y.GetReal(0, 0), y.GetReal(1, 0)) > o.Gate {
			return false
		}
	}

	// S = P- + R;  K = P- S^-1
	S := o.p.Add(o.Rmeas)
	K := o.p.Mul(S.Inv())

	// x = x- + K y;  P = (I - K) P-, re-symmetrized
	o.x = o.x.Add(K.Mul(y))
	o.x.SetReal(2, 0, track.WrapAngle(o.x.GetReal(2, 0)))
	o.p = mmat.IdentityD(3, 3).Sub(K).Mul(o.p)
	o.p = o.p.Add(o.p.Transpose()).MulReal(0.5)
	return true
}
