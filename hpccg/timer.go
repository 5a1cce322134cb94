// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpccg

import "time"

// Now returns a monotonic count of seconds as a double. It is a package
// variable, not a hardwired call to time.Now, so timing-sensitive tests can
// substitute a fake clock (mirroring the original's habit of isolating wall
// time behind a single swappable function).
var Now = func() float64 {
	return time.Since(clockStart).Seconds()
}

// clockStart is the origin of Now; time.Since reads Go's monotonic clock.
var clockStart = time.Now()

// Timings accumulates the running totals the CG driver reports (spec §4.5):
// one running total per kernel, each fed by paired Tick/Tock calls bracketing
// that kernel's invocation, plus an independent Total bracketing the whole
// solve.
type Timings struct {
	Total     float64
	DDOT      float64
	WAXPBY    float64
	SpMV      float64
	AllReduce float64
	HaloExch  float64
}

// Tick returns the current time, to be paired with a later Tock call.
func Tick() float64 { return Now() }

// Tock adds the elapsed time since start to *accum.
func Tock(accum *float64, start float64) {
	*accum += Now() - start
}
