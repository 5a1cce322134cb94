// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpccg

import (
	"math"

	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/utl"

	"github.com/cpmech/hpccg-go/transport"
)

// Result is everything Solve hands back: the final iterate, how many
// iterations it took, the final residual norm, and per-kernel timings (spec
// §4.5).
type Result struct {
	X          []float64
	Iterations int
	NormR      float64
	Timings    Timings

	// ResidHistory records normr at every iteration, one stage (the single
	// solve), for convergence plots such as the teacher's ResidPlot tool
	// consumes.
	ResidHistory utl.DblSlist
}

// Solve runs the conjugate-gradient iteration against A*x=b, starting from
// guess x, for k = 1 .. maxIterations-1 (at most maxIterations-1 iterations)
// or until normr <= tolerance, whichever comes first (spec §4.5). A must already have had MakeLocalMatrix
// applied if w.Size() > 1. Only rank 0 logs progress.
func Solve(A *SparseMatrix, b, x []float64, maxIterations int, tolerance float64, w transport.World, verbose bool) Result {
	t0total := Tick()
	var timings Timings

	nrow := A.LocalNrow
	rank := w.Rank()
	printFreq := clamp(maxIterations/10, 1, 50)

	ddot := func(u, v []float64) float64 {
		t0 := Tick()
		local := DDOT(u, v)
		result := local
		if w.Size() > 1 {
			ta := Tick()
			dest := make([]float64, 1)
			w.AllReduceInto(dest, []float64{local}, transport.SUM)
			Tock(&timings.AllReduce, ta)
			result = dest[0]
		}
		Tock(&timings.DDOT, t0)
		return result
	}
	waxpby := func(alpha float64, u []float64, beta float64, v []float64) []float64 {
		t0 := Tick()
		r := WAXPBY(alpha, u, beta, v)
		Tock(&timings.WAXPBY, t0)
		return r
	}
	haloExchange := func(p []float64) {
		t0 := Tick()
		ExchangeExternals(A, p, w)
		Tock(&timings.HaloExch, t0)
	}
	spmv := func(p []float64) []float64 {
		t0 := Tick()
		Ap := SpMV(A, p)
		Tock(&timings.SpMV, t0)
		return Ap
	}

	result := append([]float64(nil), x...)

	// p is halo-extended length; its tail is filled by haloExchange below.
	p := make([]float64, A.LocalNcol)
	copy(p, waxpby(1.0, result, 0.0, b))

	haloExchange(p)
	Ap := spmv(p)
	r := waxpby(1.0, b, -1.0, Ap)
	rtrans := ddot(r, r)
	normr := math.Sqrt(rtrans)

	if rank == 0 && verbose {
		io.Pf("Initial Residual = %+.5e\n", normr)
	}

	var residHistory utl.DblSlist
	residHistory.Append(true, normr)

	iteration := 0
	var oldrtrans, beta float64
	for k := 1; k < maxIterations; k++ {
		if normr <= tolerance {
			break
		}

		if k == 1 {
			copy(p, waxpby(1.0, r, 0.0, r))
		} else {
			oldrtrans = rtrans
			rtrans = ddot(r, r)
			beta = rtrans / oldrtrans
			copy(p[:nrow], waxpby(1.0, r, beta, p[:nrow]))
		}

		normr = math.Sqrt(rtrans)
		residHistory.Append(false, normr)
		if rank == 0 && verbose && (k%printFreq == 0 || k+1 == maxIterations) {
			io.Pf("Iteration = %d , Residual = %+.5e\n", k, normr)
		}

		haloExchange(p)
		Ap = spmv(p)

		alphaDenom := ddot(p[:nrow], Ap)
		alpha := rtrans / alphaDenom

		result = waxpby(1.0, result, alpha, p[:nrow])
		r = waxpby(1.0, r, -alpha, Ap)
		iteration = k
	}

	Tock(&timings.Total, t0total)

	return Result{X: result, Iterations: iteration, NormR: normr, Timings: timings, ResidHistory: residHistory}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
