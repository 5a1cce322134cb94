// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpccg

// SpMV computes Ap = A*p over A's owned rows (spec §4.4). p must already be
// halo-extended to A.LocalNcol (see ExchangeExternals) whenever A has
// external columns. Row-parallel: no row writes any other row's output, so
// this is safe to fan out across Workers.
func SpMV(A *SparseMatrix, p []float64) []float64 {
	Ap := make([]float64, A.LocalNrow)
	parallelMap(A.LocalNrow, func(lo, hi int) {
		for i := lo; i < hi; i++ {
			values, cols := A.Row(i)
			var sum float64
			for k, v := range values {
				sum += v * p[cols[k]]
			}
			Ap[i] = sum
		}
	})
	return Ap
}
