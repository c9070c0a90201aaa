// Copyright 2016 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package track

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// ReadPath reads a table of resampled waypoints from a file with columns
// named x, y, yaw, v and k. The spline generator writes this format; any
// other producer of (x, y, yaw, curvature, speed) tuples works as well.
// A file that cannot be read is reported through err
func ReadPath(fn string) (pts []Point, err error) {
	defer func() {
		if r := recover(); r != nil {
			pts, err = nil, chk.Err("cannot read path file %q: %v", fn, r)
		}
	}()
	_, tab := io.ReadTable(fn)
	for _, key := range []string{"x", "y", "yaw", "v", "k"} {
		if _, ok := tab[key]; !ok {
			return nil, chk.Err("path file %q misses column %q", fn, key)
		}
	}
	n := len(tab["x"])
	pts = make([]Point, n)
	for i := 0; i < n; i++ {
		pts[i] = Point{
			X:     tab["x"][i],
			Y:     tab["y"][i],
			Yaw:   tab["yaw"][i],
			Speed: tab["v"][i],
			K:     tab["k"][i],
		}
	}
	return
}
