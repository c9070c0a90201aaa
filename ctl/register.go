// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ctl

import (
	"github.com/LUXROBO/golfcar-lqr-path-manager/track"
	"github.com/cpmech/gosl/fun"
)

// Controller defines the capability shared by the steering controllers
type Controller interface {
	Init(prms fun.Prms) error                      // initialises the controller
	Reset()                                        // clears per-run state
	SetPath(init track.State, pts []track.Point)   // loads a route segment
	SetState(s track.State)                        // overrides the state estimate
	State() track.State                            // current state
	Update(dt float64) (UpdateResult, float64, float64) // one tick: status, steer, speed
	TargetIndex() int                              // real (nearest) target index
	FrontTargetIndex() int                         // look-ahead target index
	RemainPoints() int                             // samples left past the target
	Degraded() bool                                // steering law on a fallback
}

// GetController returns a new controller by name; nil for unknown names
func GetController(name string) Controller {
	allocator, ok := allocators[name]
	if !ok {
		return nil
	}
	return allocator()
}

// allocators holds all available controllers; name => allocator
var allocators = map[string]func() Controller{}
