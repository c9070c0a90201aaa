// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package track implements the path plumbing shared by all steering
// controllers: resampled waypoints, the fixed-capacity path buffer with
// yaw continuity, and the nearest/front target index searches.
package track

import "math"

// Point holds one resampled path sample in SI units
type Point struct {
	X     float64 // x position [m]
	Y     float64 // y position [m]
	Yaw   float64 // heading [rad]; 0 along +x, positive counter-clockwise
	K     float64 // signed path curvature [1/m]
	Speed float64 // desired speed at this sample [m/s]
}

// State holds the vehicle control state
type State struct {
	X     float64 // x position [m]
	Y     float64 // y position [m]
	Yaw   float64 // heading [rad] in (-pi, pi]
	Steer float64 // current steer angle [rad]; positive = left turn
	V     float64 // current forward speed [m/s]
}

// WrapAngle normalizes an angle to (-pi, pi]
func WrapAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2.0 * math.Pi
	}
	for a <= -math.Pi {
		a += 2.0 * math.Pi
	}
	return a
}

// Dist returns the Euclidean distance from the state to a path sample
func (o State) Dist(p Point) float64 {
	return math.Hypot(p.X-o.X, p.Y-o.Y)
}
