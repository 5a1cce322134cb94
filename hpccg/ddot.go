// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpccg

import "github.com/cpmech/hpccg-go/transport"

// DDOT returns the dot product of x and y over their owned entries (spec
// §4.4). When x and y are the same backing slice it takes the Σx[i]² fast
// path, which must and does produce the same value as the general form.
// Purely local; see DDOTGlobal for the distributed form. Solve times the
// all-reduce portion separately, so it calls DDOT and AllReduceInto directly
// rather than through DDOTGlobal.
func DDOT(x, y []float64) float64 {
	n := len(x)
	if sameBacking(x, y) {
		return parallelReduce(n, func(lo, hi int) float64 {
			var sum float64
			for i := lo; i < hi; i++ {
				sum += x[i] * x[i]
			}
			return sum
		})
	}
	return parallelReduce(n, func(lo, hi int) float64 {
		var sum float64
		for i := lo; i < hi; i++ {
			sum += x[i] * y[i]
		}
		return sum
	})
}

// DDOTGlobal computes the distributed dot product: a local DDOT followed by
// a SUM all-reduce across w. Passing a nil w (or a size-1 World) skips the
// reduction.
func DDOTGlobal(x, y []float64, w transport.World) float64 {
	local := DDOT(x, y)
	if w == nil || w.Size() == 1 {
		return local
	}
	dest := make([]float64, 1)
	w.AllReduceInto(dest, []float64{local}, transport.SUM)
	return dest[0]
}

func sameBacking(x, y []float64) bool {
	return len(x) > 0 && len(y) > 0 && &x[0] == &y[0]
}
