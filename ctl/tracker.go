// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctl

import (
	"math"

	"github.com/LUXROBO/golfcar-lqr-path-manager/track"
	"github.com/cpmech/gosl/fun"
)

// Tracker holds the plumbing shared by all steering controllers: the
// vehicle state, the path buffer with its target indices, the speed PID
// and the termination logic. Concrete controllers embed it and provide
// the steering law
type Tracker struct {

	// configuration
	L         float64 // wheelbase [m]
	MaxSteer  float64 // steering saturation [rad]
	LookBase  float64 // look-ahead base distance d0 [m]
	LookGain  float64 // look-ahead speed gain kv [s]
	GoalDist  float64 // goal distance epsilon [m]
	GoalSpeed float64 // goal speed epsilon [m/s]

	// state
	state     track.State // current (or externally estimated) state
	path      track.Path  // current route segment
	t         float64     // cumulative time [s]
	targetInd int         // real target: nearest sample
	frontInd  int         // front target: look-ahead sample
	latErr    float64     // last signed lateral error [m]
	yawErr    float64     // last heading error [rad]
	degraded  bool        // steering law running on a fallback
	ready     bool        // a path has been loaded

	// speed tracking
	speedPID PID
}

// steerFunc is the steering law provided by a concrete controller; it
// returns the unsaturated steering command
type steerFunc func(dt float64) (delta float64, ok bool)

// SetDefault sets the golf-cart defaults
func (o *Tracker) SetDefault() {
	o.L = 2.15
	o.MaxSteer = math.Pi / 4.0
	o.LookBase = 2.5
	o.LookGain = 0.5
	o.GoalDist = 1.0
	o.GoalSpeed = 0.3
	o.speedPID.SetDefault()
	o.speedPID.Kp, o.speedPID.Ki, o.speedPID.Kd = 1.5, 0.1, 0
	o.speedPID.OutMin, o.speedPID.OutMax = -0.8333333, 0.8333333
	o.speedPID.IntMin, o.speedPID.IntMax = -0.5, 0.5
}

// setPrm consumes one shared parameter; it reports whether the name was
// recognized so that concrete controllers can parse their own afterwards
func (o *Tracker) setPrm(p *fun.Prm) bool {
	switch p.N {
	case "wheelbase":
		o.L = p.V
	case "max_steer":
		o.MaxSteer = p.V
	case "look_base":
		o.LookBase = p.V
	case "look_gain":
		o.LookGain = p.V
	case "goal_dist":
		o.GoalDist = p.V
	case "goal_speed":
		o.GoalSpeed = p.V
	case "vkp":
		o.speedPID.Kp = p.V
	case "vki":
		o.speedPID.Ki = p.V
	case "vkd":
		o.speedPID.Kd = p.V
	case "max_accel":
		o.speedPID.OutMax = p.V
		o.speedPID.OutMin = -p.V
	default:
		return false
	}
	return true
}

// SetPath loads a route segment and resets the target indices to the
// new frame. For a rolling refill the caller passes its current state as
// the initial one, so tracking continues from where the vehicle is
func (o *Tracker) SetPath(init track.State, pts []track.Point) {
	o.path.SetPoints(pts)
	o.state = init
	o.targetInd = 0
	o.frontInd = 0
	o.ready = o.path.Size() >= 2
}

// SetState overrides the internal state with an external estimate
// (typically the position filter output)
func (o *Tracker) SetState(s track.State) { o.state = s }

// State returns the current state
func (o *Tracker) State() track.State { return o.state }

// TargetIndex returns the real (nearest) target index
func (o *Tracker) TargetIndex() int { return o.targetInd }

// FrontTargetIndex returns the look-ahead target index
func (o *Tracker) FrontTargetIndex() int { return o.frontInd }

// RemainPoints returns the number of samples past the real target; the
// host refills the buffer when this falls under track.HalfWindow
func (o *Tracker) RemainPoints() int { return o.path.Remain(o.targetInd) }

// LatError returns the last signed lateral error
func (o *Tracker) LatError() float64 { return o.latErr }

// YawError returns the last heading error
func (o *Tracker) YawError() float64 { return o.yawErr }

// Degraded reports whether the steering law is running on a fallback
// (e.g. a stale LQR gain after DARE non-convergence)
func (o *Tracker) Degraded() bool { return o.degraded }

// Time returns the cumulative tracking time
func (o *Tracker) Time() float64 { return o.t }

// PredictState advances a state through the kinematic bicycle model:
// the heading rate is v/L * tan(steer) and the result is wrapped to
// (-pi, pi]. Steering has no lag here; saturation is handled outside
func (o *Tracker) PredictState(s track.State, a, delta, dt float64) track.State {
	s.X += s.V * math.Cos(s.Yaw) * dt
	s.Y += s.V * math.Sin(s.Yaw) * dt
	s.Yaw = track.WrapAngle(s.Yaw + s.V/o.L*math.Tan(s.Steer)*dt)
	s.V += a * dt
	s.Steer = delta
	return s
}

// reset clears the shared per-run state
func (o *Tracker) reset() {
	o.t = 0
	o.targetInd = 0
	o.frontInd = 0
	o.latErr = 0
	o.yawErr = 0
	o.degraded = false
	o.speedPID.Reset()
}

// step advances one control period: it refreshes the target indices,
// asks the steering law for a command, saturates it, tracks the path
// speed and checks the termination conditions
func (o *Tracker) step(dt float64, steer steerFunc) (UpdateResult, float64, float64) {
	if !o.ready || o.path.Size() < 2 {
		return NotReady, 0, 0
	}
	if dt <= 0 {
		dt = o.speedPID.DtDef
	}

	// advance target indices with the current (predicted) pose
	o.targetInd, _ = o.path.NearestIndex(o.state, o.targetInd)
	o.frontInd = o.path.FrontIndex(o.targetInd, o.state.V, o.LookBase, o.LookGain)

	// steering law
	delta, ok := steer(dt)
	if !ok {
		return Failed, 0, 0
	}
	if delta > o.MaxSteer {
		delta = o.MaxSteer
	}
	if delta < -o.MaxSteer {
		delta = -o.MaxSteer
	}

	// per-waypoint desired speed; zero once the segment is exhausted
	vt := o.path.At(o.targetInd).Speed
	if o.path.Remain(o.targetInd) == 0 {
		vt = 0
	}

	// internal prediction with speed tracking
	a := o.speedPID.Update(vt, o.state.V, dt)
	o.state = o.PredictState(o.state, a, delta, dt)
	o.t += dt

	// termination
	if o.state.Dist(o.path.Last()) < o.GoalDist && math.Abs(o.state.V) < o.GoalSpeed {
		return GoalReached, delta, vt
	}
	return Running, delta, vt
}
