// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpccg

import "github.com/cpmech/gosl/la"

// Residual returns max_i |result[i] - exact[i]| over owned rows: the
// infinity norm of the error (spec §4.6). Not all-reduced; callers on rank 0
// report their own value, matching the reference's summary output. Mirrors
// fem/s_implicit.go's `la.VecLargest(d.Fb, 1)` largest-absolute-component
// scan, applied here to the solve error instead of a residual force vector.
func Residual(result, exact []float64) float64 {
	diff := make([]float64, len(result))
	parallelMap(len(result), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			diff[i] = result[i] - exact[i]
		}
	})
	return la.VecLargest(diff, 1)
}
