// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package transport defines the message-passing contract that the HPCCG solver
// needs from its surrounding runtime, and ships backends that satisfy it.
//
// The spec this solver implements treats the distributed-messaging transport as
// an external collaborator: something "assumed to supply" point-to-point
// send/receive with tags, non-blocking receive with wait, and an all-reduce
// collective. World is that contract.
package transport

import "time"

// ReduceOp selects the combining operator for AllReduceInto.
type ReduceOp int

const (
	// SUM combines values by addition.
	SUM ReduceOp = iota
	// MIN keeps the smallest value.
	MIN
	// MAX keeps the largest value.
	MAX
)

// Recv is a handle to a posted non-blocking receive; Wait blocks until the
// message has arrived and returns its payload and source rank. For receives
// posted with ImmediateReceiveIntoWithTag, the returned Data is the same
// backing slice that was passed in.
type Recv interface {
	Wait() ReceivedFrom
}

// World is the messaging contract required by local-matrix setup and halo
// exchange. Implementations: Single (one rank, no transport), Local
// (goroutine-backed simulation of many ranks in one process), MPI (real
// gosl/mpi-backed transport).
type World interface {
	// Size returns the total number of ranks.
	Size() int

	// Rank returns this process's rank, in [0, Size()).
	Rank() int

	// SendWithTag blocks until msg has been handed off to the transport for
	// delivery to rank dest under the given tag.
	SendWithTag(msg []float64, dest, tag int)

	// ImmediateReceiveWithTag posts a non-blocking receive of length n from a
	// wildcard source under tag, returning the received slice and source rank
	// once Wait is called on the returned handle.
	ImmediateReceiveWithTag(n int, tag int) (ReceivedFrom, Recv)

	// ImmediateReceiveIntoWithTag posts a non-blocking receive of len(buf)
	// values from source under tag directly into buf.
	ImmediateReceiveIntoWithTag(buf []float64, source, tag int) Recv

	// AllReduceInto combines local (per-rank) into dest using op, and leaves
	// the combined result in dest on every rank.
	AllReduceInto(dest, local []float64, op ReduceOp)

	// Barrier blocks until every rank has called Barier.
	Barrier()

	// Time returns a monotonic count of seconds as a double.
	Time() float64
}

// ReceivedFrom pairs a received payload with the rank that sent it; used by
// ImmediateReceiveWithTag, whose source is a wildcard until the receive
// completes.
type ReceivedFrom struct {
	Data []float64
	Rank int
}

// wallClock is the Time() implementation shared by every backend (Single,
// Local, MPI). time.Since reads Go's monotonic clock.
func wallClock() float64 {
	return time.Since(clockStart).Seconds()
}

// clockStart is the origin of wallClock.
var clockStart = time.Now()
