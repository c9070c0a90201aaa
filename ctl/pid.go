// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctl

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// PID implements the discrete PID block with output and integral
// clamping. The derivative acts on the measurement unless DerivOnErr is
// set. Anti-windup is the classic conditional integration: while the
// output is saturated and the error keeps pushing into the limit, the
// integral state is frozen
type PID struct {

	// gains and limits
	Kp, Ki, Kd     float64 // gains
	OutMin, OutMax float64 // output clamp
	IntMin, IntMax float64 // integral state clamp
	DtDef          float64 // default control period
	DerivOnErr     bool    // derivative on error instead of measurement

	// memory
	integ    float64 // integral state
	prevMeas float64 // last measurement (derivative on measurement)
	prevErr  float64 // last error (derivative on error)
	hasPrev  bool    // derivative memory is primed
}

// SetDefault sets default gains and limits
func (o *PID) SetDefault() {
	o.Kp, o.Ki, o.Kd = 1, 0, 0
	o.OutMin, o.OutMax = -1, 1
	o.IntMin, o.IntMax = -1, 1
	o.DtDef = 0.05
}

// Init initialises the block from a parameters list
func (o *PID) Init(prms fun.Prms) (err error) {
	o.SetDefault()
	for _, p := range prms {
		switch p.N {
		case "kp":
			o.Kp = p.V
		case "ki":
			o.Ki = p.V
		case "kd":
			o.Kd = p.V
		case "out_min":
			o.OutMin = p.V
		case "out_max":
			o.OutMax = p.V
		case "i_min":
			o.IntMin = p.V
		case "i_max":
			o.IntMax = p.V
		case "dt":
			o.DtDef = p.V
		case "deriv_on_err":
			o.DerivOnErr = p.V > 0
		default:
			return chk.Err("pid: parameter named %q is incorrect\n", p.N)
		}
	}
	o.Reset()
	return
}

// Reset clears the integral and derivative memory
func (o *PID) Reset() {
	o.integ = 0
	o.prevMeas = 0
	o.prevErr = 0
	o.hasPrev = false
}

// Update advances the block one step and returns the clamped output
func (o *PID) Update(target, meas, dt float64) float64 {
	if dt <= 0 {
		dt = o.DtDef
	}
	e := target - meas

	// integrate subject to clamp
	integ := o.integ + o.Ki*e*dt
	if integ > o.IntMax {
		integ = o.IntMax
	}
	if integ < o.IntMin {
		integ = o.IntMin
	}

	// derivative term
	var d float64
	if o.hasPrev {
		if o.DerivOnErr {
			d = (e - o.prevErr) / dt
		} else {
			d = -(meas - o.prevMeas) / dt
		}
	}

	// output with conditional integration on saturation
	out := o.Kp*e + integ + o.Kd*d
	if out > o.OutMax {
		out = o.OutMax
		if e > 0 {
			integ = o.integ
		}
	} else if out < o.OutMin {
		out = o.OutMin
		if e < 0 {
			integ = o.integ
		}
	}

	o.integ = integ
	o.prevMeas = meas
	o.prevErr = e
	o.hasPrev = true
	return out
}
