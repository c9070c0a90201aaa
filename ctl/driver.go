// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctl

import (
	"github.com/LUXROBO/golfcar-lqr-path-manager/flt"
	"github.com/LUXROBO/golfcar-lqr-path-manager/mmat"
	"github.com/LUXROBO/golfcar-lqr-path-manager/track"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// Driver is the per-tick coordinator: it feeds the position filter with
// the last commanded odometry, hands the filtered pose to the active
// controller and returns the controller's command. The filter is
// optional; without one the controller runs on its own prediction
type Driver struct {
	Ctl    Controller          // active steering controller
	Filter *flt.PositionFilter // optional position filter
}

// NewDriver allocates the named controller and initialises it with
// ctlprms. A non-nil fltprms also allocates and initialises the position
// filter; with a nil one the controller runs on dead reckoning alone
func NewDriver(ctlname string, ctlprms, fltprms fun.Prms) (o *Driver, err error) {
	o = new(Driver)
	o.Ctl = GetController(ctlname)
	if o.Ctl == nil {
		return nil, chk.Err("cannot find controller named %q\n", ctlname)
	}
	err = o.Ctl.Init(ctlprms)
	if err != nil {
		return nil, err
	}
	if fltprms != nil {
		o.Filter = new(flt.PositionFilter)
		err = o.Filter.Init(fltprms)
		if err != nil {
			return nil, err
		}
	}
	return
}

// SetCourse loads a route segment into the controller and aligns the
// filter estimate with the initial state
func (o *Driver) SetCourse(init track.State, pts []track.Point) {
	o.Ctl.SetPath(init, pts)
	if o.Filter != nil {
		o.Filter.SetPose(mmat.NewD(3, 1, init.X, init.Y, init.Yaw))
	}
}

// NeedRefill reports whether the remaining buffer has fallen under the
// half-window threshold and the host should stream the next block
func (o *Driver) NeedRefill() bool {
	return o.Ctl.RemainPoints() < track.HalfWindow
}

// Measure forwards an absolute (x, y, yaw) fix to the filter; it reports
// whether the fix was accepted
func (o *Driver) Measure(x, y, yaw float64) bool {
	if o.Filter == nil {
		return false
	}
	return o.Filter.Update(mmat.NewD(3, 1, x, y, yaw))
}

// Update advances one control period: filter prediction with the last
// odometry, state hand-off, then the controller tick
func (o *Driver) Update(dt float64) (UpdateResult, float64, float64) {
	if o.Filter != nil && o.Filter.Valid() {
		s := o.Ctl.State()
		o.Filter.Predict(mmat.NewD(3, 1, s.V, s.Steer, dt))
		pose := o.Filter.Pose()
		s.X = pose.GetReal(0, 0)
		s.Y = pose.GetReal(1, 0)
		s.Yaw = pose.GetReal(2, 0)
		o.Ctl.SetState(s)
	}
	return o.Ctl.Update(dt)
}
