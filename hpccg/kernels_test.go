// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpccg

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_waxpby01(tst *testing.T) {

	chk.PrintTitle("waxpby01: scenario values")

	x := []float64{1, 2, 3}
	y := []float64{3, 2, 1}

	chk.Vector(tst, "alpha=4, beta=5", 1e-15, WAXPBY(4, x, 5, y), []float64{19, 18, 17})
	chk.Vector(tst, "alpha=1, beta=5", 1e-15, WAXPBY(1, x, 5, y), []float64{16, 12, 8})
	chk.Vector(tst, "alpha=4, beta=1", 1e-15, WAXPBY(4, x, 1, y), []float64{7, 10, 13})
}

func Test_waxpby02(tst *testing.T) {

	chk.PrintTitle("waxpby02: linearity")

	x := []float64{1, 2, 3, 4}
	y := []float64{4, 3, 2, 1}

	chk.Vector(tst, "(1,x,0,y) == x", 1e-15, WAXPBY(1, x, 0, y), x)
	chk.Vector(tst, "(0,x,1,y) == y", 1e-15, WAXPBY(0, x, 1, y), y)
	chk.Vector(tst, "(a,x,b,y) == (b,y,a,x)", 1e-15, WAXPBY(2.5, x, -1.5, y), WAXPBY(-1.5, y, 2.5, x))
}

func Test_ddot01(tst *testing.T) {

	chk.PrintTitle("ddot01: scenario values")

	x := []float64{1, 2, 3}
	y := []float64{3, 2, 1}

	if r := DDOT(x, y); r != 10 {
		tst.Errorf("DDOT(x,y) = %v, want 10", r)
	}
	if r := DDOT(x, x); r != 14 {
		tst.Errorf("DDOT(x,x) = %v, want 14", r)
	}
}

func Test_ddot02(tst *testing.T) {

	chk.PrintTitle("ddot02: commutativity and non-negativity of self-dot")

	x := []float64{5, -3, 2, 0, 7}
	y := []float64{1, 4, -2, 9, -1}

	if DDOT(x, y) != DDOT(y, x) {
		tst.Errorf("DDOT not commutative")
	}
	if DDOT(x, x) < 0 {
		tst.Errorf("DDOT(x,x) negative")
	}
}

func Test_spmv01(tst *testing.T) {

	chk.PrintTitle("spmv01: single row, diagonal only")

	A := &SparseMatrix{
		LocalNrow: 1,
		NnzInRow:  []int{1},
		RowStart:  []int{0, 1},
		Values:    []float64{27},
		ColIndex:  []int{0},
	}
	Ap := SpMV(A, []float64{2})
	chk.Vector(tst, "Ap", 1e-15, Ap, []float64{54})
}
