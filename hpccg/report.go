// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpccg

import "github.com/cpmech/gosl/io"

// Report is the spec §6 stdout contract: everything needed to print the
// rank-0 summary, gathered after Solve returns.
type Report struct {
	Ranks      int
	Backend    string
	Nx, Ny, Nz int
	TotalNrow  int
	TotalNnz   int
	Iterations int
	NormR      float64
	Residual   float64
	Timings    Timings
}

// Print writes the human-readable performance summary to stdout, in the
// exact labeled-line order the spec mandates. Callers are responsible for
// calling this only on rank 0.
func (r Report) Print() {
	io.Pf("Mini-Application Name: hpccg\n")
	io.Pf("Mini-Application Version: 1.0\n")
	io.Pf("Parallelism:\n")
	io.Pf("  Number of MPI ranks: %d\n", r.Ranks)
	io.Pf("  %s\n", r.Backend)
	io.Pf("Dimensions:\n")
	io.Pf("  nx: %d\n", r.Nx)
	io.Pf("  ny: %d\n", r.Ny)
	io.Pf("  nz: %d\n", r.Nz)
	io.Pf("Number of iterations: %d\n", r.Iterations)
	io.Pf("Final residual: %+.5e\n", r.NormR)

	io.Pf("#********** Performance Summary (times in sec) ***********\n")

	t := r.Timings
	io.Pf("Time Summary:\n")
	io.Pf("  Total: %g\n", t.Total)
	io.Pf("  DDOT: %g\n", t.DDOT)
	io.Pf("  WAXPBY: %g\n", t.WAXPBY)
	io.Pf("  SPARSEMV: %g\n", t.SpMV)

	ddotFlops := float64(r.Iterations) * 4 * float64(r.TotalNrow)
	waxpbyFlops := float64(r.Iterations) * 6 * float64(r.TotalNrow)
	sparsemvFlops := float64(r.Iterations) * 2 * float64(r.TotalNnz)
	totalFlops := ddotFlops + waxpbyFlops + sparsemvFlops

	io.Pf("FLOPS Summary:\n")
	io.Pf("  Total: %g\n", totalFlops)
	io.Pf("  DDOT: %g\n", ddotFlops)
	io.Pf("  WAXPBY: %g\n", waxpbyFlops)
	io.Pf("  SPARSEMV: %g\n", sparsemvFlops)

	io.Pf("MFLOPS Summary:\n")
	io.Pf("  Total: %g\n", mflops(totalFlops, t.Total))
	io.Pf("  DDOT: %g\n", mflops(ddotFlops, t.DDOT))
	io.Pf("  WAXPBY: %g\n", mflops(waxpbyFlops, t.WAXPBY))
	io.Pf("  SPARSEMV: %g\n", mflops(sparsemvFlops, t.SpMV))

	io.Pf("Difference between computed and exact = %g.\n", r.Residual)
}

// mflops guards against division by zero for kernels that ran too fast to
// register on the clock, or not at all (zero iterations).
func mflops(flops, seconds float64) float64 {
	if seconds <= 0 {
		return 0
	}
	return flops / seconds / 1.0e6
}
