// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctl

import (
	"math"
	"testing"

	"github.com/LUXROBO/golfcar-lqr-path-manager/track"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// quarterCircle builds n samples along a left quarter circle of radius r
func quarterCircle(n int, r, speed float64) []track.Point {
	pts := make([]track.Point, n)
	for i := range pts {
		th := (math.Pi / 2.0) * float64(i) / float64(n-1)
		pts[i] = track.Point{
			X:     r * math.Sin(th),
			Y:     r * (1.0 - math.Cos(th)),
			Yaw:   th,
			K:     1.0 / r,
			Speed: speed,
		}
	}
	return pts
}

func Test_curv01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	//utl.Tsilent = false
	chk.PrintTitle("curv01. quarter circle: mean lateral error stays small")

	pts := quarterCircle(50, 5.0, 1.0)

	c := GetController("curvature")
	if c == nil {
		tst.Errorf("cannot allocate curvature controller\n")
		return
	}
	err := c.Init(nil)
	if err != nil {
		tst.Errorf("init failed: %v\n", err)
		return
	}
	c.SetPath(track.State{X: pts[0].X, Y: pts[0].Y, Yaw: pts[0].Yaw}, pts)

	dt := 0.05
	sum, nerr := 0.0, 0
	cc := c.(*CurvatureSteer)
	for tick := 0; tick < 1200; tick++ {
		res, _, _ := c.Update(dt)
		if res == Failed {
			tst.Errorf("controller failed at tick %d\n", tick)
			return
		}
		sum += math.Abs(cc.LatError())
		nerr++
		if res == GoalReached {
			io.Pforan("goal reached at t = %g s\n", cc.Time())
			break
		}
	}
	mean := sum / float64(nerr)
	io.Pforan("mean |e| = %g over %d ticks\n", mean, nerr)
	if mean > 0.1 {
		tst.Errorf("mean lateral error too large: %g\n", mean)
	}
}

func Test_curv02(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	//utl.Tsilent = false
	chk.PrintTitle("curv02. on-path command equals the curvature feedforward")

	pts := quarterCircle(50, 5.0, 1.0)
	c := GetController("curvature")
	err := c.Init(nil)
	if err != nil {
		tst.Errorf("init failed: %v\n", err)
		return
	}
	c.SetPath(track.State{X: pts[0].X, Y: pts[0].Y, Yaw: pts[0].Yaw, V: 1}, pts)

	// on the circle both the arc construction and the feedforward
	// request the same steering angle: atan(L/r)
	_, steer, _ := c.Update(0.05)
	chk.Scalar(tst, "on-path steer", 0.02, steer, math.Atan(2.15/5.0))
}
