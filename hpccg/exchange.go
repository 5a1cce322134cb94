// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpccg

import "github.com/cpmech/hpccg-go/transport"

// tagExchange is the wire tag used by every halo exchange; distinct from the
// setup-phase tags so the two never collide if they happened to overlap in
// flight.
const tagExchange = 200

// ExchangeExternals extends p in place from length A.LocalNrow to
// A.LocalNcol, filling the external slots with the current values of the
// remote entries this rank's rows reference (spec §4.3). Called once before
// every SpMV once MakeLocalMatrix has populated the halo metadata; a no-op
// when there are no neighbors (single rank, or a rank that neither references
// external values nor owns values another rank references).
func ExchangeExternals(A *SparseMatrix, p []float64, w transport.World) {
	if len(A.Neighbors) == 0 {
		return
	}

	for i, row := range A.ElementsToSend {
		A.SendBuffer[i] = p[row]
	}

	handles := make([]transport.Recv, len(A.Neighbors))
	offset := A.LocalNrow
	for i, n := range A.Neighbors {
		handles[i] = w.ImmediateReceiveIntoWithTag(p[offset:offset+A.RecvLength[i]], n, tagExchange)
		offset += A.RecvLength[i]
	}

	sent := 0
	for i, n := range A.Neighbors {
		w.SendWithTag(A.SendBuffer[sent:sent+A.SendLength[i]], n, tagExchange)
		sent += A.SendLength[i]
	}

	for _, h := range handles {
		h.Wait()
	}
}
