// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"flag"
	"math/rand"
	"os"
	"path/filepath"

	"github.com/LUXROBO/golfcar-lqr-path-manager/ctl"
	"github.com/LUXROBO/golfcar-lqr-path-manager/inp"
	"github.com/LUXROBO/golfcar-lqr-path-manager/track"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	// message
	io.PfGreen("\nGolfcar path manager -- waypoint tracking control\n\n")
	io.Pf("Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.\n")
	io.Pf("Use of this source code is governed by a BSD-style\n")
	io.Pf("license that can be found in the LICENSE file.\n\n")

	// simulation filenamepath
	flag.Parse()
	var fnamepath string
	if len(flag.Args()) > 0 {
		fnamepath = flag.Arg(0)
	} else {
		chk.Panic("please, provide a filename. Ex.: course01.sim")
	}

	// simulation input and log
	dir, fn := filepath.Dir(fnamepath), filepath.Base(fnamepath)
	err := inp.InitLogFile(os.TempDir(), io.FnKey(fn))
	if err != nil {
		chk.Panic("cannot create log file: %v", err)
	}
	defer inp.FlushLog()
	sim := inp.ReadSim(dir, fn)
	if sim == nil {
		chk.Panic("cannot read simulation file %q", fnamepath)
	}

	// waypoints
	allpts, err := track.ReadPath(sim.Data.PathFile)
	if err != nil {
		chk.Panic("cannot read path: %v", err)
	}
	if len(allpts) < 2 {
		chk.Panic("path %q is too short: %d points", sim.Data.PathFile, len(allpts))
	}

	// driver: controller + position filter
	fltprms := sim.EkfPrms()
	if !sim.Data.UseEkf {
		fltprms = nil
	}
	drv, err := ctl.NewDriver(sim.Data.Ctl, sim.CtlPrms(), fltprms)
	if err != nil {
		chk.Panic("cannot allocate driver: %v", err)
	}

	// run simulation
	if err = run(sim, drv, allpts); err != nil {
		chk.Panic("run failed: %v", err)
	}
}

// run streams the waypoints through the driver in blocks with
// half-window overlap, ticks the control loop and writes the log
func run(sim *inp.Simulation, drv *ctl.Driver, allpts []track.Point) (err error) {

	// block streaming
	cursor := 0
	last := false
	load := func() []track.Point {
		end := cursor + track.BufCap
		if end >= len(allpts) {
			end = len(allpts)
			last = true
		}
		blk := allpts[cursor:end]
		cursor = end - track.HalfWindow
		if cursor < 0 {
			cursor = 0
		}
		return blk
	}
	first := allpts[0]
	drv.SetCourse(track.State{X: first.X, Y: first.Y, Yaw: first.Yaw}, load())

	// simulated absolute fixes at 5 Hz
	dt := sim.Data.Dt
	measPeriod := int(0.2/dt + 0.5)
	if measPeriod < 1 {
		measPeriod = 1
	}
	rnd := rand.New(rand.NewSource(1234))

	// log header
	buf := new(bytes.Buffer)
	io.Ff(buf, "x,y,yaw,steer,v,front,target,status\n")

	for tick := 0; ; tick++ {

		// rolling refill with half-window overlap
		if !last && drv.NeedRefill() {
			drv.Ctl.SetPath(drv.Ctl.State(), load())
		}

		// absolute fix
		if drv.Filter != nil && tick%measPeriod == 0 {
			s := drv.Ctl.State()
			drv.Measure(
				s.X+0.05*rnd.NormFloat64(),
				s.Y+0.05*rnd.NormFloat64(),
				s.Yaw+0.02*rnd.NormFloat64())
		}

		// one control period
		res, steer, speed := drv.Update(dt)
		if res == ctl.Failed {
			return chk.Err("controller failed at t = %g s", float64(tick)*dt)
		}
		if res == ctl.NotReady {
			continue
		}

		// actuator rate limits towards the commanded targets
		state := drv.Ctl.State()
		applyLimits(&state, steer, speed, sim.Vehicle.SteerRate, sim.Vehicle.MaxAccel, dt)
		drv.Ctl.SetState(state)

		io.Ff(buf, "%g,%g,%g,%g,%g,%d,%d,%s\n",
			state.X, state.Y, state.Yaw, state.Steer, state.V,
			drv.Ctl.FrontTargetIndex(), drv.Ctl.TargetIndex(), res)

		if res == ctl.GoalReached {
			io.Pf("goal reached after %g s\n", float64(tick)*dt)
			break
		}
	}

	// write log
	logdir := filepath.Dir(sim.Data.LogFile)
	if err = os.MkdirAll(logdir, 0777); err != nil {
		return chk.Err("cannot create log directory %q: %v", logdir, err)
	}
	io.WriteFileV(sim.Data.LogFile, buf)
	return
}

// applyLimits caps the steering rate and the acceleration towards the
// commanded targets, mirroring the vehicle control unit
func applyLimits(s *track.State, steerCmd, speedCmd, steerRate, maxAccel, dt float64) {
	ds := steerCmd - s.Steer
	if lim := steerRate * dt; ds > lim {
		ds = lim
	} else if ds < -lim {
		ds = -lim
	}
	s.Steer += ds

	dv := speedCmd - s.V
	if lim := maxAccel * dt; dv > lim {
		dv = lim
	} else if dv < -lim {
		dv = -lim
	}
	s.V += dv
}
