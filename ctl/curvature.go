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

// CurvatureSteer implements the geometry-only steering controller: the
// command realizes the arc circumscribing the vehicle pose and the front
// target, blended with the curvature feedforward of the target sample.
// It is the fallback for low speeds where the LQR model is
// ill-conditioned
type CurvatureSteer struct {
	Tracker
	Blend float64 // weight of the feedforward term in [0, 1]
}

// add controller to factory
func init() {
	allocators["curvature"] = func() Controller { return new(CurvatureSteer) }
}

// Init initialises the controller
func (o *CurvatureSteer) Init(prms fun.Prms) (err error) {
	o.Tracker.SetDefault()
	o.Blend = 0.5
	for _, p := range prms {
		if o.Tracker.setPrm(p) {
			continue
		}
		switch p.N {
		case "blend":
			o.Blend = p.V
		default:
			return chk.Err("curvature: parameter named %q is incorrect\n", p.N)
		}
	}
	o.Reset()
	return
}

// Reset clears per-run state
func (o *CurvatureSteer) Reset() { o.Tracker.reset() }

// Update advances one control period
func (o *CurvatureSteer) Update(dt float64) (UpdateResult, float64, float64) {
	return o.step(dt, o.steer)
}

// steer derives the angle realizing the circumscribing arc: with the
// front target at bearing alpha and distance ld, the arc radius is
// R = ld / (2 sin alpha) and delta = atan(L/R)
func (o *CurvatureSteer) steer(dt float64) (float64, bool) {

	// errors at the real target, for reporting and termination
	o.latErr = o.path.SignedDist(o.state, o.targetInd)
	o.yawErr = track.WrapAngle(o.state.Yaw - o.path.At(o.targetInd).Yaw)

	tp := o.path.At(o.frontInd)
	ff := math.Atan(o.L * tp.K)

	dx, dy := tp.X-o.state.X, tp.Y-o.state.Y
	ld := math.Hypot(dx, dy)
	if ld < 1e-6 {
		return ff, true // on top of the target: feedforward only
	}
	alpha := track.WrapAngle(math.Atan2(dy, dx) - o.state.Yaw)
	arc := math.Atan2(2.0*o.L*math.Sin(alpha), ld)

	return (1.0-o.Blend)*arc + o.Blend*ff, true
}
