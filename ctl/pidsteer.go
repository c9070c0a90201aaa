// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctl

import (
	"math"

	"github.com/LUXROBO/golfcar-lqr-path-manager/track"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// PIDSteer implements the PID steering controller: the lateral error at
// the real target goes through the PID block (derivative on measurement,
// which damps the approach) and the curvature feedforward of the front
// target is added on top
type PIDSteer struct {
	Tracker
	pid PID
}

// add controller to factory
func init() {
	allocators["pid"] = func() Controller { return new(PIDSteer) }
}

// Init initialises the controller
func (o *PIDSteer) Init(prms fun.Prms) (err error) {
	o.Tracker.SetDefault()
	o.pid.SetDefault()
	o.pid.Kp, o.pid.Ki, o.pid.Kd = 0.6, 0.02, 0.8
	o.pid.OutMin, o.pid.OutMax = -o.MaxSteer, o.MaxSteer
	o.pid.IntMin, o.pid.IntMax = -0.2, 0.2
	for _, p := range prms {
		if o.Tracker.setPrm(p) {
			continue
		}
		switch p.N {
		case "kp":
			o.pid.Kp = p.V
		case "ki":
			o.pid.Ki = p.V
		case "kd":
			o.pid.Kd = p.V
		case "out_min":
			o.pid.OutMin = p.V
		case "out_max":
			o.pid.OutMax = p.V
		case "i_min":
			o.pid.IntMin = p.V
		case "i_max":
			o.pid.IntMax = p.V
		case "deriv_on_err":
			o.pid.DerivOnErr = p.V > 0
		default:
			return chk.Err("pid steer: parameter named %q is incorrect\n", p.N)
		}
	}
	o.Reset()
	return
}

// Reset clears per-run state
func (o *PIDSteer) Reset() {
	o.Tracker.reset()
	o.pid.Reset()
}

// Update advances one control period
func (o *PIDSteer) Update(dt float64) (UpdateResult, float64, float64) {
	return o.step(dt, o.steer)
}

// steer regulates the signed lateral error to zero
func (o *PIDSteer) steer(dt float64) (float64, bool) {
	e := o.path.SignedDist(o.state, o.targetInd)
	o.latErr = e
	o.yawErr = track.WrapAngle(o.state.Yaw - o.path.At(o.targetInd).Yaw)

	ff := math.Atan(o.L * o.path.At(o.frontInd).K)
	fb := o.pid.Update(0, e, dt)
	return ff + fb, true
}
