// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

func Test_sim01(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	//utl.Tsilent = false
	chk.PrintTitle("sim01. read simulation file")

	sim := ReadSim("data", "course01.sim")
	if sim == nil {
		tst.Errorf("cannot read course01.sim\n")
		return
	}
	io.Pforan("sim = %+v\n", sim.Data)

	chk.StrAssert(sim.Data.Ctl, "lqr")
	chk.Scalar(tst, "dt", 1e-15, sim.Data.Dt, 0.05)
	chk.Scalar(tst, "wheelbase", 1e-15, sim.Vehicle.Wheelbase, 2.15)
	chk.Scalar(tst, "maxsteer", 1e-15, sim.Vehicle.MaxSteer, 0.7853981633974483)
	chk.Scalar(tst, "epsdist", 1e-15, sim.Goal.EpsDist, 1.0)
	chk.Vector(tst, "qdiag", 1e-15, sim.Lqr.Qdiag, []float64{1, 1, 1, 1})
	chk.Vector(tst, "rmeas", 1e-15, sim.Ekf.Rmeas, []float64{2.5e-3, 2.5e-3, 4e-4})
	chk.StrAssert(sim.Data.FnameKey, "course01")

	// relative path file resolves against the sim directory
	chk.StrAssert(sim.Data.PathFile, "data/course01.path")
}

func Test_sim02(tst *testing.T) {

	prevTs := utl.Tsilent
	defer func() {
		utl.Tsilent = prevTs
		if err := recover(); err != nil {
			tst.Error("[1;31mERROR:", err, "[0m\n")
		}
	}()

	//utl.Tsilent = false
	chk.PrintTitle("sim02. parameter lists for controller and filter")

	sim := ReadSim("data", "course01.sim")
	if sim == nil {
		tst.Errorf("cannot read course01.sim\n")
		return
	}

	// controller parameters carry the vehicle, goal and lqr groups
	prms := sim.CtlPrms()
	got := map[string]float64{}
	for _, p := range prms {
		got[p.N] = p.V
	}
	chk.Scalar(tst, "wheelbase", 1e-15, got["wheelbase"], 2.15)
	chk.Scalar(tst, "look_base", 1e-15, got["look_base"], 2.5)
	chk.Scalar(tst, "q2", 1e-15, got["q2"], 1)
	chk.Scalar(tst, "r", 1e-15, got["r"], 1)
	chk.Scalar(tst, "dare_maxit", 1e-15, got["dare_maxit"], 150)

	// filter parameters carry the noise diagonals
	fprms := sim.EkfPrms()
	got = map[string]float64{}
	for _, p := range fprms {
		got[p.N] = p.V
	}
	chk.Scalar(tst, "gate", 1e-15, got["gate"], 3)
	chk.Scalar(tst, "qx", 1e-15, got["qx"], 1e-5)
	chk.Scalar(tst, "ryaw", 1e-15, got["ryaw"], 4e-4)

	// defaults fill the groups missing from the file
	chk.Scalar(tst, "pid kp default", 1e-15, sim.Pid.Kp, 0.6)

	// missing file yields nil
	if bad := ReadSim("data", "nosuch.sim"); bad != nil {
		tst.Errorf("expected nil for missing file\n")
	}
}
