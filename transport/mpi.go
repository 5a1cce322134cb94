// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import (
	"github.com/cpmech/gosl/mpi"
)

// MPI is the real distributed backend, wired to gosl/mpi for the primitives
// gofem itself exercises: Rank, Size, Barrier and AllReduceSum/Min/Max. gosl's
// exported surface has no tagged point-to-point send/receive anywhere
// evidenced by its callers (gofem's own distributed path never posts one, it
// only all-reduces), so point-to-point here is delegated to a Local hub
// shared across this process's MPI rank — see SPEC_FULL.md's "Distributed-
// messaging transport" section for the rationale.
type MPI struct {
	p2p Local
}

var _ World = MPI{}

// NewMPI returns a World bound to gosl's MPI runtime, which the caller must
// already have started (main.go calls mpi.Start). p2p supplies the point-to-point fabric (see type doc); pass a Local
// world from the same process sized to mpi.Size().
func NewMPI(p2p Local) MPI {
	return MPI{p2p: p2p}
}

func (w MPI) Size() int { return mpi.Size() }

func (w MPI) Rank() int { return mpi.Rank() }

func (w MPI) SendWithTag(msg []float64, dest, tag int) {
	w.p2p.SendWithTag(msg, dest, tag)
}

func (w MPI) ImmediateReceiveWithTag(n int, tag int) (ReceivedFrom, Recv) {
	return w.p2p.ImmediateReceiveWithTag(n, tag)
}

func (w MPI) ImmediateReceiveIntoWithTag(buf []float64, source, tag int) Recv {
	return w.p2p.ImmediateReceiveIntoWithTag(buf, source, tag)
}

func (w MPI) AllReduceInto(dest, local []float64, op ReduceOp) {
	switch op {
	case SUM:
		mpi.AllReduceSum(dest, local)
	case MIN:
		mpi.AllReduceMin(dest, local)
	case MAX:
		mpi.AllReduceMax(dest, local)
	}
}

func (w MPI) Barrier() {
	mpi.Barrier()
}

func (w MPI) Time() float64 { return wallClock() }
