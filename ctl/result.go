// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ctl implements the steering controllers of the path-tracking
// core: LQR, PID and curvature variants sharing the path/state plumbing,
// the discrete PID block, and the per-tick coordinator.
package ctl

// UpdateResult is the per-tick status reported to the host
type UpdateResult int

// update results
const (
	NotReady    UpdateResult = iota // path buffer too short or indices uninitialized
	Running                         // tracking in progress
	GoalReached                     // within goal distance with near-zero speed
	Failed                          // controller reported a hard failure
)

// String returns the name of an update result
func (o UpdateResult) String() string {
	switch o {
	case NotReady:
		return "NotReady"
	case Running:
		return "Running"
	case GoalReached:
		return "GoalReached"
	case Failed:
		return "Failed"
	}
	return "Unknown"
}
