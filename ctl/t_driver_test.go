// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctl

import (
	"math"
	"testing"

	"github.com/LUXROBO/golfcar-lqr-path-manager/track"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

func Test_driver01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	//utl.Tsilent = false
	chk.PrintTitle("driver01. coordinator with position filter in the loop")

	// unknown controller name is a configuration error
	_, err := NewDriver("mpc", nil, nil)
	if err == nil {
		tst.Errorf("expected error for unknown controller\n")
		return
	}

	drv, err := NewDriver("lqr", nil, fun.Prms{
		&fun.Prm{N: "gate", V: 3},
	})
	if err != nil {
		tst.Errorf("cannot allocate driver: %v\n", err)
		return
	}

	pts := make([]track.Point, 21)
	for i := range pts {
		pts[i] = track.Point{X: float64(i), Speed: 1}
	}
	drv.SetCourse(track.State{X: 0, Y: 0.3, Yaw: 0}, pts)
	if !drv.Filter.Valid() {
		tst.Errorf("filter must be initialised by SetCourse\n")
		return
	}

	// run a few seconds with exact fixes every 4th tick
	dt := 0.05
	for tick := 0; tick < 200; tick++ {
		if tick%4 == 0 {
			s := drv.Ctl.State()
			if !drv.Measure(s.X, s.Y, s.Yaw) {
				tst.Errorf("exact fix rejected at tick %d\n", tick)
				return
			}
		}
		res, steer, speed := drv.Update(dt)
		if res == Failed {
			tst.Errorf("driver failed at tick %d\n", tick)
			return
		}
		if math.Abs(steer) > math.Pi/4.0+1e-12 || speed < 0 {
			tst.Errorf("implausible command: steer=%g speed=%g\n", steer, speed)
			return
		}
		if res == GoalReached {
			break
		}
	}
	io.Pforan("final state = %+v\n", drv.Ctl.State())

	// an absurd fix is gated out and the pose stays finite
	if drv.Measure(1000, 1000, 0) {
		tst.Errorf("gated fix must be rejected\n")
		return
	}

	// refill bookkeeping follows the remaining points
	if drv.NeedRefill() != (drv.Ctl.RemainPoints() < track.HalfWindow) {
		tst.Errorf("refill flag inconsistent\n")
	}
}
