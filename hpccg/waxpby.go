// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpccg

// WAXPBY returns w[i] = alpha*x[i] + beta*y[i] (spec §4.4), "W equals Alpha X
// Plus Beta Y". The three branches below are not just an optimization: each
// is a distinct expression tree, so floating-point results are bit-for-bit
// deterministic across runs of the same configuration regardless of which
// branch a given (alpha, beta) pair happens to hit.
func WAXPBY(alpha float64, x []float64, beta float64, y []float64) []float64 {
	n := len(x)
	w := make([]float64, n)
	switch {
	case alpha == 1.0:
		parallelMap(n, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				w[i] = x[i] + beta*y[i]
			}
		})
	case beta == 1.0:
		parallelMap(n, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				w[i] = alpha*x[i] + y[i]
			}
		})
	default:
		parallelMap(n, func(lo, hi int) {
			for i := lo; i < hi; i++ {
				w[i] = alpha*x[i] + beta*y[i]
			}
		})
	}
	return w
}
