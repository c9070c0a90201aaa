// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package inp implements the input data read from a (.sim) JSON file
package inp

import (
	"encoding/json"
	"path/filepath"

	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"
)

// Data holds global data for simulations
type Data struct {
	Desc     string  `json:"desc"`     // description of simulation
	PathFile string  `json:"pathfile"` // resampled waypoints file
	Ctl      string  `json:"ctl"`      // controller name: "lqr", "pid" or "curvature"
	Dt       float64 `json:"dt"`       // control period [s]
	UseEkf   bool    `json:"useekf"`   // drive the controller from the position filter
	LogFile  string  `json:"logfile"`  // output log; e.g. /tmp/golfcar/run.csv

	// derived
	FnameDir string // directory where .sim filename is located
	FnameKey string // simulation filename key; e.g. course01.sim => course01
}

// SetDefault sets default values
func (o *Data) SetDefault() {
	o.Ctl = "lqr"
	o.Dt = 0.05
}

// PostProcess performs a post-processing of the just read json file
func (o *Data) PostProcess(dir, fn string) {
	o.FnameDir = dir
	o.FnameKey = io.FnKey(fn)
	if o.PathFile != "" && !filepath.IsAbs(o.PathFile) {
		o.PathFile = filepath.Join(dir, o.PathFile)
	}
	if o.LogFile == "" {
		o.LogFile = io.Sf("/tmp/golfcar/%s.csv", o.FnameKey)
	}
}

// VehicleData holds the geometric and actuation constants
type VehicleData struct {
	Wheelbase float64 `json:"wheelbase"` // wheelbase L [m]
	MaxSteer  float64 `json:"maxsteer"`  // steering saturation [rad]
	MaxAccel  float64 `json:"maxaccel"`  // acceleration cap [m/s2]
	SteerRate float64 `json:"steerrate"` // steering rate cap [rad/s]
	LookBase  float64 `json:"lookbase"`  // look-ahead base distance d0 [m]
	LookGain  float64 `json:"lookgain"`  // look-ahead speed gain kv [s]
}

// SetDefault sets default values
func (o *VehicleData) SetDefault() {
	o.Wheelbase = 2.15
	o.MaxSteer = 0.7853981633974483  // 45 deg
	o.MaxAccel = 0.8333333
	o.SteerRate = 0.3490658503988659 // 20 deg/s
	o.LookBase = 2.5
	o.LookGain = 0.5
}

// GoalData holds the termination thresholds
type GoalData struct {
	EpsDist  float64 `json:"epsdist"`  // goal distance epsilon [m]
	EpsSpeed float64 `json:"epsspeed"` // goal speed epsilon [m/s]
}

// SetDefault sets default values
func (o *GoalData) SetDefault() {
	o.EpsDist = 1.0
	o.EpsSpeed = 0.3
}

// LqrData holds the LQR weights and the Riccati iteration knobs
type LqrData struct {
	Qdiag   []float64 `json:"qdiag"`   // diagonal of the 4x4 state weight
	R       float64   `json:"r"`       // input weight
	Eps     float64   `json:"eps"`     // DARE termination threshold
	MaxIter int       `json:"maxiter"` // DARE iteration cap
}

// SetDefault sets default values
func (o *LqrData) SetDefault() {
	o.Qdiag = []float64{1, 1, 1, 1}
	o.R = 1
	o.Eps = 1e-2
	o.MaxIter = 150
}

// PidData holds the PID gains and clamps for the PID steering controller
type PidData struct {
	Kp     float64 `json:"kp"`     // proportional gain
	Ki     float64 `json:"ki"`     // integral gain
	Kd     float64 `json:"kd"`     // derivative gain
	OutMin float64 `json:"outmin"` // output clamp, lower
	OutMax float64 `json:"outmax"` // output clamp, upper
	IMin   float64 `json:"imin"`   // integral clamp, lower
	IMax   float64 `json:"imax"`   // integral clamp, upper
}

// SetDefault sets default values
func (o *PidData) SetDefault() {
	o.Kp, o.Ki, o.Kd = 0.6, 0.02, 0.8
	o.OutMin, o.OutMax = -0.7853981633974483, 0.7853981633974483
	o.IMin, o.IMax = -0.2, 0.2
}

// EkfData holds the position filter noise (variances) and the gate
type EkfData struct {
	Qproc []float64 `json:"qproc"` // diagonal of the process noise (x, y, yaw)
	Qu    []float64 `json:"qu"`    // diagonal of the input noise (v, steer, dt)
	Rmeas []float64 `json:"rmeas"` // diagonal of the measurement noise (x, y, yaw)
	Gate  float64   `json:"gate"`  // innovation gate distance [m]
}

// SetDefault sets default values
func (o *EkfData) SetDefault() {
	o.Qproc = []float64{1e-5, 1e-5, 1e-6}
	o.Qu = []float64{1e-3, 1e-3, 0}
	o.Rmeas = []float64{2.5e-3, 2.5e-3, 4e-4}
	o.Gate = 3.0
}

// Simulation holds all simulation data
type Simulation struct {
	Data    Data        `json:"data"`    // global data
	Vehicle VehicleData `json:"vehicle"` // vehicle constants
	Goal    GoalData    `json:"goal"`    // termination thresholds
	Lqr     LqrData     `json:"lqr"`     // LQR knobs
	Pid     PidData     `json:"pid"`     // PID steering knobs
	Ekf     EkfData     `json:"ekf"`     // position filter knobs
}

// ReadSim reads the simulation input data from a .sim JSON file
//  Note: returns nil on errors
func ReadSim(dir, fn string) *Simulation {

	// new sim with defaults
	var o Simulation
	o.Data.SetDefault()
	o.Vehicle.SetDefault()
	o.Goal.SetDefault()
	o.Lqr.SetDefault()
	o.Pid.SetDefault()
	o.Ekf.SetDefault()

	// read file
	b, err := utl.ReadFile(filepath.Join(dir, fn))
	if LogErr(err, "sim: cannot read simulation file "+fn) {
		return nil
	}

	// decode
	err = json.Unmarshal(b, &o)
	if LogErr(err, "sim: cannot unmarshal simulation file "+fn) {
		return nil
	}

	// post-process
	o.Data.PostProcess(dir, fn)
	if LogErrCond(len(o.Lqr.Qdiag) != 4, "lqr qdiag must have 4 components; got %d", len(o.Lqr.Qdiag)) {
		return nil
	}
	if LogErrCond(len(o.Ekf.Qproc) != 3 || len(o.Ekf.Qu) != 3 || len(o.Ekf.Rmeas) != 3,
		"ekf noise diagonals must have 3 components") {
		return nil
	}
	return &o
}

// CtlPrms builds the parameters list for the active controller
func (o *Simulation) CtlPrms() fun.Prms {
	prms := fun.Prms{
		&fun.Prm{N: "wheelbase", V: o.Vehicle.Wheelbase},
		&fun.Prm{N: "max_steer", V: o.Vehicle.MaxSteer},
		&fun.Prm{N: "max_accel", V: o.Vehicle.MaxAccel},
		&fun.Prm{N: "look_base", V: o.Vehicle.LookBase},
		&fun.Prm{N: "look_gain", V: o.Vehicle.LookGain},
		&fun.Prm{N: "goal_dist", V: o.Goal.EpsDist},
		&fun.Prm{N: "goal_speed", V: o.Goal.EpsSpeed},
	}
	switch o.Data.Ctl {
	case "lqr":
		for i, q := range o.Lqr.Qdiag {
			prms = append(prms, &fun.Prm{N: io.Sf("q%d", i), V: q})
		}
		prms = append(prms,
			&fun.Prm{N: "r", V: o.Lqr.R},
			&fun.Prm{N: "dare_eps", V: o.Lqr.Eps},
			&fun.Prm{N: "dare_maxit", V: float64(o.Lqr.MaxIter)},
		)
	case "pid":
		prms = append(prms,
			&fun.Prm{N: "kp", V: o.Pid.Kp},
			&fun.Prm{N: "ki", V: o.Pid.Ki},
			&fun.Prm{N: "kd", V: o.Pid.Kd},
			&fun.Prm{N: "out_min", V: o.Pid.OutMin},
			&fun.Prm{N: "out_max", V: o.Pid.OutMax},
			&fun.Prm{N: "i_min", V: o.Pid.IMin},
			&fun.Prm{N: "i_max", V: o.Pid.IMax},
		)
	}
	return prms
}

// EkfPrms builds the parameters list for the position filter
func (o *Simulation) EkfPrms() fun.Prms {
	names := []string{"qx", "qy", "qyaw", "qv", "qsteer", "qdt", "rx", "ry", "ryaw"}
	vals := append(append(append([]float64{}, o.Ekf.Qproc...), o.Ekf.Qu...), o.Ekf.Rmeas...)
	prms := fun.Prms{
		&fun.Prm{N: "wheelbase", V: o.Vehicle.Wheelbase},
		&fun.Prm{N: "gate", V: o.Ekf.Gate},
	}
	for i, n := range names {
		prms = append(prms, &fun.Prm{N: n, V: vals[i]})
	}
	return prms
}
