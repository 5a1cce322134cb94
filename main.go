// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"os"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"

	"github.com/cpmech/hpccg-go/hpccg"
	"github.com/cpmech/hpccg-go/transport"
)

func main() {

	// catch errors
	exitCode := 0
	defer func() {
		if err := recover(); err != nil {
			if mpi.Rank() == 0 {
				chk.Verbose = true
				for i := 8; i > 3; i-- {
					chk.CallerInfo(i)
				}
				io.PfRed("ERROR: %v\n", err)
			}
			exitCode = 1
		}
		mpi.Stop(false)
		os.Exit(exitCode)
	}()
	mpi.Start(false)

	// grid dimensions, defaulting to a small smoke-test size
	nx := io.ArgToInt(0, 5)
	ny := io.ArgToInt(1, 5)
	nz := io.ArgToInt(2, 5)
	maxIterations := io.ArgToInt(3, 150)
	verbose := io.ArgToBool(4, true)

	if nx < 1 || ny < 1 || nz < 1 {
		chk.Panic("nx, ny and nz must all be positive; got (%d, %d, %d)", nx, ny, nz)
	}

	size := mpi.Size()
	rank := mpi.Rank()

	var w transport.World
	var backend string
	switch {
	case size == 1:
		w = transport.NewSingle()
		backend = "Backend: single-process (no transport)"
	default:
		locals := transport.NewLocalWorld(size)
		w = transport.NewMPI(locals[rank])
		backend = "Backend: MPI (point-to-point via in-process fabric)"
	}

	if rank == 0 && verbose {
		io.PfWhite("\nhpccg-go -- a distributed conjugate-gradient mini-application\n\n")
		io.Pf("\n%v\n", io.ArgsTable(
			"grid size in x", "nx", nx,
			"grid size in y", "ny", ny,
			"grid size in z", "nz", nz,
			"maximum iterations", "maxIterations", maxIterations,
			"show messages", "verbose", verbose,
		))
	}

	gen := hpccg.Generate(nx, ny, nz, rank, size, hpccg.Stencil27)
	hpccg.MakeLocalMatrix(gen.A, w)

	result := hpccg.Solve(gen.A, gen.Rhs, gen.Guess, maxIterations, 0.0, w, verbose)
	residual := hpccg.Residual(result.X, gen.Exact)

	if rank == 0 {
		report := hpccg.Report{
			Ranks:      size,
			Backend:    backend,
			Nx:         nx,
			Ny:         ny,
			Nz:         nz,
			TotalNrow:  gen.A.TotalNrow,
			TotalNnz:   gen.A.TotalNnz,
			Iterations: result.Iterations,
			NormR:      result.NormR,
			Residual:   residual,
			Timings:    result.Timings,
		}
		report.Print()
	}
}
