// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"sync"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestSingleAllReduce(tst *testing.T) {
	chk.PrintTitle("SingleAllReduce")
	w := NewSingle()
	dest := make([]float64, 3)
	w.AllReduceInto(dest, []float64{1, 2, 3}, SUM)
	chk.Vector(tst, "dest", 1e-15, dest, []float64{1, 2, 3})
}

func TestLocalAllReduceSum(tst *testing.T) {
	chk.PrintTitle("LocalAllReduceSum")
	worlds := NewLocalWorld(4)
	results := make([][]float64, 4)
	var wg sync.WaitGroup
	for r, w := range worlds {
		wg.Add(1)
		go func(r int, w Local) {
			defer wg.Done()
			local := []float64{float64(r + 1)}
			dest := make([]float64, 1)
			w.AllReduceInto(dest, local, SUM)
			results[r] = dest
		}(r, w)
	}
	wg.Wait()
	for r := 0; r < 4; r++ {
		chk.Vector(tst, "reduced", 1e-15, results[r], []float64{10})
	}
}

func TestLocalAllReduceMinMax(tst *testing.T) {
	chk.PrintTitle("LocalAllReduceMinMax")
	worlds := NewLocalWorld(3)
	vals := [][]float64{{5}, {1}, {9}}
	minResults := make([][]float64, 3)
	maxResults := make([][]float64, 3)
	var wg sync.WaitGroup
	for r, w := range worlds {
		wg.Add(1)
		go func(r int, w Local) {
			defer wg.Done()
			dmin := make([]float64, 1)
			w.AllReduceInto(dmin, vals[r], MIN)
			minResults[r] = dmin
			dmax := make([]float64, 1)
			w.AllReduceInto(dmax, vals[r], MAX)
			maxResults[r] = dmax
		}(r, w)
	}
	wg.Wait()
	for r := 0; r < 3; r++ {
		chk.Vector(tst, "min", 1e-15, minResults[r], []float64{1})
		chk.Vector(tst, "max", 1e-15, maxResults[r], []float64{9})
	}
}

func TestLocalSendRecv(tst *testing.T) {
	chk.PrintTitle("LocalSendRecv")
	worlds := NewLocalWorld(2)
	var wg sync.WaitGroup
	var received ReceivedFrom
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, recv := worlds[1].ImmediateReceiveWithTag(3, 42)
		received = recv.Wait()
	}()
	go func() {
		defer wg.Done()
		worlds[0].SendWithTag([]float64{7, 8, 9}, 1, 42)
	}()
	wg.Wait()
	chk.IntAssert(received.Rank, 0)
	chk.Vector(tst, "payload", 1e-15, received.Data, []float64{7, 8, 9})
}

func TestLocalReceiveInto(tst *testing.T) {
	chk.PrintTitle("LocalReceiveInto")
	worlds := NewLocalWorld(2)
	buf := make([]float64, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		recv := worlds[1].ImmediateReceiveIntoWithTag(buf, 0, 7)
		recv.Wait()
	}()
	go func() {
		defer wg.Done()
		worlds[0].SendWithTag([]float64{1.5, 2.5}, 1, 7)
	}()
	wg.Wait()
	chk.Vector(tst, "buf", 1e-15, buf, []float64{1.5, 2.5})
}

func TestLocalBarrier(tst *testing.T) {
	chk.PrintTitle("LocalBarrier")
	worlds := NewLocalWorld(5)
	var wg sync.WaitGroup
	for _, w := range worlds {
		wg.Add(1)
		go func(w Local) {
			defer wg.Done()
			w.Barrier()
		}(w)
	}
	wg.Wait()
}
