// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package track

import (
	"math"
)

// BufCap is the fixed capacity of the path buffer. Route segments longer
// than this are streamed in blocks with half-window overlap; see SetPoints
const BufCap = 256

// HalfWindow is the refill threshold: when fewer than HalfWindow samples
// remain past the target index, the host should load the next block
const HalfWindow = BufCap / 2

// Path holds a bounded sequence of waypoints for one route segment. The
// buffer is append-or-replace only; samples are never mutated in place
// except for the yaw unwrapping applied at load
type Path struct {
	pts [BufCap]Point
	n   int
}

// Size returns the number of loaded samples
func (o *Path) Size() int { return o.n }

// At returns the sample at index i; out-of-range indices are clamped
func (o *Path) At(i int) Point {
	if o.n == 0 {
		return Point{}
	}
	if i < 0 {
		i = 0
	}
	if i >= o.n {
		i = o.n - 1
	}
	return o.pts[i]
}

// Last returns the final sample (the goal of this segment)
func (o *Path) Last() Point { return o.At(o.n - 1) }

// Remain returns the number of samples past index i
func (o *Path) Remain(i int) int {
	if i >= o.n {
		return 0
	}
	return o.n - 1 - i
}

// SetPoints replaces the buffer contents with up to BufCap samples and
// unwraps the headings. Rolling replacement across route segments loads
// each new block with half-window overlap; the caller resets its target
// indices to the new frame afterwards
func (o *Path) SetPoints(pts []Point) {
	o.n = len(pts)
	if o.n > BufCap {
		o.n = BufCap
	}
	copy(o.pts[:o.n], pts[:o.n])
	o.smoothYaw()
}

// smoothYaw unwraps headings walking forward so that adjacent samples
// differ by at most pi; downstream heading errors stay continuous across
// the +/-pi boundary
func (o *Path) smoothYaw() {
	for i := 0; i < o.n-1; i++ {
		d := o.pts[i+1].Yaw - o.pts[i].Yaw
		for d >= math.Pi {
			o.pts[i+1].Yaw -= 2.0 * math.Pi
			d = o.pts[i+1].Yaw - o.pts[i].Yaw
		}
		for d <= -math.Pi {
			o.pts[i+1].Yaw += 2.0 * math.Pi
			d = o.pts[i+1].Yaw - o.pts[i].Yaw
		}
	}
}

// NearestIndex searches forward from the hint pind for the sample
// closest to the state and returns its index and distance. The returned
// index is never smaller than pind, so the target advances monotonically
// along the path even if the vehicle momentarily moves backward
func (o *Path) NearestIndex(s State, pind int) (ind int, dist float64) {
	if o.n == 0 {
		return 0, 0
	}
	if pind < 0 {
		pind = 0
	}
	if pind >= o.n {
		pind = o.n - 1
	}
	ind, dist = pind, s.Dist(o.pts[pind])
	for i := pind + 1; i < o.n; i++ {
		if d := s.Dist(o.pts[i]); d < dist {
			ind, dist = i, d
		}
	}
	return
}

// SignedDist returns the distance from the state to the sample at ind
// with the sign taken from which side of the path tangent the vehicle
// lies on (positive to the left)
func (o *Path) SignedDist(s State, ind int) float64 {
	p := o.At(ind)
	d := s.Dist(p)
	angle := WrapAngle(p.Yaw - math.Atan2(p.Y-s.Y, p.X-s.X))
	if angle < 0 {
		return -d
	}
	return d
}

// FrontIndex shifts the nearest index forward by the speed-proportional
// look-ahead distance d0 + kv*v, walking the accumulated arc length of
// the buffer; the result is clamped to the buffer tail. This is the
// sample the controller aims at, while the nearest index is used for
// error reporting and termination
func (o *Path) FrontIndex(nearest int, v, d0, kv float64) int {
	look := d0 + kv*v
	acc := 0.0
	i := nearest
	for i < o.n-1 && acc < look {
		acc += math.Hypot(o.pts[i+1].X-o.pts[i].X, o.pts[i+1].Y-o.pts[i].Y)
		i++
	}
	return i
}
