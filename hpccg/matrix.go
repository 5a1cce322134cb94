// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hpccg implements the distributed sparse CG solver: the synthetic
// 27-point-stencil problem generator, local-matrix setup, halo exchange, the
// DDOT/WAXPBY/SpMV kernels, and the CG driver that ties them together.
package hpccg

// SparseMatrix is a block-row distributed CSR matrix, owned one contiguous
// row range per rank. Before MakeLocalMatrix runs, ColIndex holds global
// column indices; afterwards it holds local indices, with external (halo)
// slots living in [LocalNrow, LocalNcol).
type SparseMatrix struct {
	StartRow int // global index of the first row owned by this rank (inclusive)
	StopRow  int // global index of the last row owned by this rank (inclusive)

	LocalNrow int // StopRow - StartRow + 1
	LocalNcol int // LocalNrow before setup; LocalNrow + NumExternal after

	TotalNrow int // global row count, for reporting
	TotalNnz  int // global nonzero count, for reporting

	NnzInRow []int     // [LocalNrow] nonzero count of row i
	RowStart []int     // [LocalNrow+1] offset into Values/ColIndex; sentinel at the end
	Values   []float64 // [nnz] matrix entries, row-major within each row
	ColIndex []int     // [nnz] column index per entry; global pre-setup, local post-setup

	// Halo metadata, populated by MakeLocalMatrix; zero-valued pre-setup.
	NumExternal        int
	NumSendNeighbors   int
	ExternalIndex      []int // global indices of externals, in discovery order
	ExternalLocalIndex []int // local slot assigned to each external, same order
	Neighbors          []int // ranks this rank exchanges with
	RecvLength         []int // per neighbor, count of values received
	SendLength         []int // per neighbor, count of values sent
	ElementsToSend     []int // local row indices packed into SendBuffer
	SendBuffer         []float64
	TotalToBeSent      int
}

// Row returns the entry slice [Values, ColIndex] for local row i, valid
// before or after MakeLocalMatrix.
func (m *SparseMatrix) Row(i int) (values []float64, cols []int) {
	lo, hi := m.RowStart[i], m.RowStart[i]+m.NnzInRow[i]
	return m.Values[lo:hi], m.ColIndex[lo:hi]
}
