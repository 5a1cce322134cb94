// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import "github.com/cpmech/gosl/chk"

// Single is the size-1, rank-0 loopback world. It is used whenever a solver is
// launched without a distributed launcher, and by every single-rank test.
// Local-matrix setup is skipped entirely when Size() == 1 (spec §4.2), so
// Single never needs to service a real send or receive; any attempt to do so
// is a configuration error.
type Single struct{}

var _ World = Single{}

// NewSingle returns the trivial one-rank world.
func NewSingle() Single { return Single{} }

func (Single) Size() int { return 1 }

func (Single) Rank() int { return 0 }

func (Single) SendWithTag(msg []float64, dest, tag int) {
	chk.Panic("Single transport has no peers to send to (dest=%d)", dest)
}

func (Single) ImmediateReceiveWithTag(n int, tag int) (ReceivedFrom, Recv) {
	chk.Panic("Single transport has no peers to receive from")
	return ReceivedFrom{}, nil
}

func (Single) ImmediateReceiveIntoWithTag(buf []float64, source, tag int) Recv {
	chk.Panic("Single transport has no peers to receive from (source=%d)", source)
	return nil
}

func (Single) AllReduceInto(dest, local []float64, op ReduceOp) {
	copy(dest, local)
}

func (Single) Barrier() {}

func (Single) Time() float64 { return wallClock() }
