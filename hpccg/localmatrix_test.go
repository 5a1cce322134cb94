// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpccg

import (
	"sync"
	"testing"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/hpccg-go/transport"
)

// runRanks builds a simulated world of n ranks and runs fn concurrently on
// each, waiting for every rank to finish before returning.
func runRanks(n int, fn func(rank int, w transport.World)) {
	worlds := transport.NewLocalWorld(n)
	var wg sync.WaitGroup
	wg.Add(n)
	for r := 0; r < n; r++ {
		go func(r int) {
			defer wg.Done()
			fn(r, worlds[r])
		}(r)
	}
	wg.Wait()
}

func Test_localmatrix01(tst *testing.T) {

	chk.PrintTitle("localmatrix01: two-rank halo setup invariants")

	const size = 2
	gens := make([]*GenerateResult, size)
	var mu sync.Mutex

	runRanks(size, func(rank int, w transport.World) {
		gen := Generate(2, 2, 2, rank, size, Stencil27)
		MakeLocalMatrix(gen.A, w)
		mu.Lock()
		gens[rank] = gen
		mu.Unlock()
	})

	for rank, gen := range gens {
		A := gen.A
		chk.IntAssert(A.LocalNcol, A.LocalNrow+A.NumExternal)

		sumRecv := 0
		for _, n := range A.RecvLength {
			sumRecv += n
		}
		chk.IntAssert(sumRecv, A.NumExternal)

		sumSend := 0
		for _, n := range A.SendLength {
			sumSend += n
		}
		chk.IntAssert(sumSend, A.TotalToBeSent)
		chk.IntAssert(len(A.ElementsToSend), A.TotalToBeSent)

		for _, c := range A.ColIndex {
			if c < 0 || c >= A.LocalNcol {
				tst.Errorf("rank %d: column index %d out of range [0,%d)", rank, c, A.LocalNcol)
			}
		}

		// each rank in a two-rank z-stack has a neighbor, so there must be
		// halo traffic in both directions.
		if A.NumExternal == 0 {
			tst.Errorf("rank %d: expected external columns, got none", rank)
		}
		if len(A.Neighbors) == 0 {
			tst.Errorf("rank %d: expected at least one neighbor", rank)
		}
	}
}

func Test_localmatrix02(tst *testing.T) {

	chk.PrintTitle("localmatrix02: halo round-trip on the all-ones vector")

	const size = 3
	gens := make([]*GenerateResult, size)
	worldsByRank := make([]transport.World, size)
	var mu sync.Mutex

	runRanks(size, func(rank int, w transport.World) {
		gen := Generate(3, 3, 2, rank, size, Stencil27)
		MakeLocalMatrix(gen.A, w)
		mu.Lock()
		gens[rank] = gen
		worldsByRank[rank] = w
		mu.Unlock()
	})

	var wg sync.WaitGroup
	wg.Add(size)
	for rank := 0; rank < size; rank++ {
		go func(rank int) {
			defer wg.Done()
			gen := gens[rank]
			p := make([]float64, gen.A.LocalNcol)
			copy(p, gen.Exact)
			ExchangeExternals(gen.A, p, worldsByRank[rank])
			for i, v := range p {
				if v != 1 {
					tst.Errorf("rank %d: p[%d] = %v, want 1", rank, i, v)
				}
			}
		}(rank)
	}
	wg.Wait()
}

func Test_localmatrix03(tst *testing.T) {

	chk.PrintTitle("localmatrix03: single rank is a no-op")

	gen := Generate(3, 3, 3, 0, 1, Stencil27)
	MakeLocalMatrix(gen.A, transport.NewSingle())
	chk.IntAssert(gen.A.NumExternal, 0)
	chk.IntAssert(gen.A.LocalNcol, gen.A.LocalNrow)
}
