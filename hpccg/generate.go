// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpccg

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Stencil selects the neighbor pattern used by Generate.
type Stencil int

const (
	// Stencil27 couples every cell to its 26 neighbors plus itself.
	Stencil27 Stencil = iota
	// Stencil7 couples a cell only to its 6 face neighbors plus itself
	// (sx²+sy²+sz² <= 1). Kept as a compile-time-style option mirroring the
	// original Rust sources' feature-gated 7-point variant; not the default.
	Stencil7
)

// GenerateResult bundles the matrix generated for this rank with the exact
// solution, initial guess and right-hand side vectors it implies.
type GenerateResult struct {
	A     *SparseMatrix
	Guess []float64
	Exact []float64
	Rhs   []float64
}

// Generate builds the synthetic block-row matrix owned by rank out of size,
// for a per-rank grid of nx*ny*nz cells stacked along z (spec §4.1). Ranks
// are conceptually chimneys of cubes concatenated along the z-axis: rank r
// owns global rows [r*nx*ny*nz, (r+1)*nx*ny*nz).
func Generate(nx, ny, nz, rank, size int, stencil Stencil) *GenerateResult {
	if nx < 1 || ny < 1 || nz < 1 {
		chk.Panic("nx, ny, nz must all be >= 1; got (%d, %d, %d)", nx, ny, nz)
	}
	if rank < 0 || size < 1 || rank >= size {
		chk.Panic("invalid rank/size: rank=%d size=%d", rank, size)
	}

	localNrow := nx * ny * nz
	totalNrow := size * localNrow
	// upper bound: 27 entries per row.
	maxNnz := localNrow * 27

	m := &SparseMatrix{
		StartRow:  rank * localNrow,
		StopRow:   rank*localNrow + localNrow - 1,
		LocalNrow: localNrow,
		LocalNcol: localNrow,
		TotalNrow: totalNrow,
		NnzInRow:  make([]int, localNrow),
		RowStart:  make([]int, localNrow+1),
		Values:    make([]float64, 0, maxNnz),
		ColIndex:  make([]int, 0, maxNnz),
	}

	guess := make([]float64, localNrow)
	exact := make([]float64, localNrow)
	rhs := make([]float64, localNrow)

	i := 0
	for iz := 0; iz < nz; iz++ {
		for iy := 0; iy < ny; iy++ {
			for ix := 0; ix < nx; ix++ {
				currow := m.StartRow + i
				m.RowStart[i] = len(m.Values)
				nnz := 0
				for sz := -1; sz <= 1; sz++ {
					for sy := -1; sy <= 1; sy++ {
						for sx := -1; sx <= 1; sx++ {
							if stencil == Stencil7 && sx*sx+sy*sy+sz*sz > 1 {
								continue
							}
							jx, jy := ix+sx, iy+sy
							if jx < 0 || jx >= nx || jy < 0 || jy >= ny {
								continue
							}
							c := currow + sz*nx*ny + sy*nx + sx
							if c < 0 || c >= totalNrow {
								continue
							}
							if c == currow {
								m.Values = append(m.Values, 27)
							} else {
								m.Values = append(m.Values, -1)
							}
							m.ColIndex = append(m.ColIndex, c)
							nnz++
						}
					}
				}
				m.NnzInRow[i] = nnz
				rhs[i] = 27 - float64(nnz-1)
				i++
			}
		}
	}
	m.RowStart[localNrow] = len(m.Values)
	// Approximate, matching the reference generator: 27 neighbors per row
	// globally, not the exact sum (which would require a reduction boundary
	// rows never pay in full).
	m.TotalNnz = 27 * totalNrow

	la.VecFill(guess, 0)
	la.VecFill(exact, 1)

	return &GenerateResult{A: m, Guess: guess, Exact: exact, Rhs: rhs}
}
