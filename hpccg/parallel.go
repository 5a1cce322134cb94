// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpccg

import "sync"

// Workers controls how many goroutines the kernels below fan out across.
// Zero or one disables the pool and runs the range inline; this is the
// shared-memory half of the two-level scheduling model in spec §5 (the
// message-passing half lives in the transport package). Each call starts one
// goroutine per contiguous chunk and joins them with a WaitGroup; no channel
// of jobs is involved.
var Workers = 0

// chunkRanges splits [0, n) into up to Workers contiguous chunks.
func chunkRanges(n, workers int) [][2]int {
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 || n == 0 {
		return [][2]int{{0, n}}
	}
	size := (n + workers - 1) / workers
	ranges := make([][2]int, 0, workers)
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		ranges = append(ranges, [2]int{lo, hi})
	}
	return ranges
}

// parallelMap runs fn(lo, hi) over disjoint chunks of [0, n), fanning out
// across Workers goroutines synchronized with a WaitGroup, and waits for all
// of them to finish before returning.
func parallelMap(n int, fn func(lo, hi int)) {
	ranges := chunkRanges(n, Workers)
	if len(ranges) == 1 {
		fn(ranges[0][0], ranges[0][1])
		return
	}
	var wg sync.WaitGroup
	wg.Add(len(ranges))
	for _, r := range ranges {
		go func(lo, hi int) {
			defer wg.Done()
			fn(lo, hi)
		}(r[0], r[1])
	}
	wg.Wait()
}

// parallelReduce runs fn(lo, hi) over disjoint chunks of [0, n), each
// producing a partial float64, and combines the partials by addition. Used
// by DDOT, whose reduction is commutative and associative over owned rows.
func parallelReduce(n int, fn func(lo, hi int) float64) float64 {
	ranges := chunkRanges(n, Workers)
	if len(ranges) == 1 {
		return fn(ranges[0][0], ranges[0][1])
	}
	partials := make([]float64, len(ranges))
	var wg sync.WaitGroup
	wg.Add(len(ranges))
	for i, r := range ranges {
		go func(i, lo, hi int) {
			defer wg.Done()
			partials[i] = fn(lo, hi)
		}(i, r[0], r[1])
	}
	wg.Wait()
	var total float64
	for _, p := range partials {
		total += p
	}
	return total
}
