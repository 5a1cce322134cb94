// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpccg

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_generate01(tst *testing.T) {

	chk.PrintTitle("generate01: 2x2x2 single-rank structure")

	gen := Generate(2, 2, 2, 0, 1, Stencil27)
	A := gen.A

	chk.IntAssert(A.LocalNrow, 8)
	for i := 0; i < A.LocalNrow; i++ {
		chk.IntAssert(A.NnzInRow[i], 8)
	}

	v0, c0 := A.Row(0)
	chk.Vector(tst, "row 0 values", 1e-15, v0, []float64{27, -1, -1, -1, -1, -1, -1, -1})
	expectCols := []int{0, 1, 2, 3, 4, 5, 6, 7}
	for k, c := range c0 {
		chk.IntAssert(c, expectCols[k])
	}

	rhs := make([]float64, A.LocalNrow)
	exact := make([]float64, A.LocalNrow)
	for i := range rhs {
		rhs[i] = 20
		exact[i] = 1
	}
	chk.Vector(tst, "rhs", 1e-15, gen.Rhs, rhs)
	chk.Vector(tst, "exact", 1e-15, gen.Exact, exact)
	chk.Vector(tst, "guess", 1e-15, gen.Guess, make([]float64, A.LocalNrow))
}

func Test_generate02(tst *testing.T) {

	chk.PrintTitle("generate02: SpMV on 2x2x2 matrix")

	gen := Generate(2, 2, 2, 0, 1, Stencil27)
	p := make([]float64, gen.A.LocalNrow)
	for i := range p {
		p[i] = 20
	}
	Ap := SpMV(gen.A, p)
	want := make([]float64, gen.A.LocalNrow)
	for i := range want {
		want[i] = 400
	}
	chk.Vector(tst, "A*p", 1e-13, Ap, want)
}

func Test_generate03(tst *testing.T) {

	chk.PrintTitle("generate03: SpMV on 3x3x3 matrix")

	gen := Generate(3, 3, 3, 0, 1, Stencil27)
	v := []float64{
		20, 16, 20, 16, 10, 16, 20, 16, 20,
		16, 10, 16, 10, 1, 10, 16, 10, 16,
		20, 16, 20, 16, 10, 16, 20, 16, 20,
	}
	want := []float64{
		461, 287, 461, 287, 21, 287, 461, 287, 461,
		287, 21, 287, 21, -385, 21, 287, 21, 287,
		461, 287, 461, 287, 21, 287, 461, 287, 461,
	}
	Ap := SpMV(gen.A, v)
	chk.Vector(tst, "A*v", 1e-12, Ap, want)
}

func Test_generate04(tst *testing.T) {

	chk.PrintTitle("generate04: SpMV identity against the exact solution")

	for _, dims := range [][3]int{{2, 2, 2}, {3, 3, 3}, {4, 3, 2}} {
		gen := Generate(dims[0], dims[1], dims[2], 0, 1, Stencil27)
		Ap := SpMV(gen.A, gen.Exact)
		chk.Vector(tst, "A*exact == rhs", 1e-12, Ap, gen.Rhs)
	}
}

func Test_generate05(tst *testing.T) {

	chk.PrintTitle("generate05: interior points see the full 27-point stencil")

	gen := Generate(5, 5, 5, 0, 1, Stencil27)
	nx, ny := 5, 5
	// cell (2,2,2) is interior: one full grid-width away from every boundary.
	i := 2*nx*ny + 2*nx + 2
	chk.IntAssert(gen.A.NnzInRow[i], 27)
}
