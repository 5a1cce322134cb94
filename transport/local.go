// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package transport

import "sync"

// Local simulates size ranks inside one OS process, using goroutines in place
// of processes and a shared hub in place of a real transport. It implements
// the same World contract as MPI so that local-matrix setup and halo exchange
// can be exercised deterministically without a real MPI runtime.
type Local struct {
	hub  *localHub
	rank int
}

var _ World = Local{}

// NewLocalWorld builds size Local worlds, one per simulated rank, sharing a
// single hub.
func NewLocalWorld(size int) []Local {
	h := newLocalHub(size)
	worlds := make([]Local, size)
	for r := 0; r < size; r++ {
		worlds[r] = Local{hub: h, rank: r}
	}
	return worlds
}

func (w Local) Size() int { return w.hub.size }

func (w Local) Rank() int { return w.rank }

func (w Local) SendWithTag(msg []float64, dest, tag int) {
	w.hub.send(w.rank, dest, tag, msg)
}

func (w Local) ImmediateReceiveWithTag(n int, tag int) (ReceivedFrom, Recv) {
	return ReceivedFrom{}, &localRecv{hub: w.hub, rank: w.rank, tag: tag, wildcard: true}
}

func (w Local) ImmediateReceiveIntoWithTag(buf []float64, source, tag int) Recv {
	return &localRecv{hub: w.hub, rank: w.rank, tag: tag, source: source, into: buf}
}

func (w Local) AllReduceInto(dest, local []float64, op ReduceOp) {
	w.hub.allReduce(w.rank, dest, local, op)
}

func (w Local) Barrier() {
	w.hub.barrier(w.rank)
}

func (w Local) Time() float64 { return wallClock() }

// localRecv is a deferred receive: the actual blocking/matching happens in
// Wait, which keeps posting cheap (as a real non-blocking receive would be).
type localRecv struct {
	hub      *localHub
	rank     int
	tag      int
	wildcard bool
	source   int
	into     []float64
}

func (r *localRecv) Wait() ReceivedFrom {
	from, data := r.hub.recv(r.rank, r.tag, r.wildcard, r.source)
	if r.into != nil {
		copy(r.into, data)
		return ReceivedFrom{Data: r.into, Rank: from}
	}
	return ReceivedFrom{Data: data, Rank: from}
}

type localMsg struct {
	from int
	data []float64
}

type localHub struct {
	size int
	mu   sync.Mutex
	cond *sync.Cond

	// point-to-point: inbox[rank][tag] is a FIFO of pending messages.
	inbox map[int]map[int][]localMsg

	// all-reduce rendezvous, keyed by generation number.
	reduceGen      int
	reduceArrived  int
	reduceContribs [][]float64
	reduceResults  map[int][]float64
	reducePending  map[int]int

	// barrier rendezvous.
	barrierGen     int
	barrierArrived int
}

func newLocalHub(size int) *localHub {
	h := &localHub{
		size:          size,
		inbox:         make(map[int]map[int][]localMsg),
		reduceResults: make(map[int][]float64),
		reducePending: make(map[int]int),
	}
	h.cond = sync.NewCond(&h.mu)
	for r := 0; r < size; r++ {
		h.inbox[r] = make(map[int][]localMsg)
	}
	return h
}

func (h *localHub) send(from, dest, tag int, data []float64) {
	cp := append([]float64(nil), data...)
	h.mu.Lock()
	h.inbox[dest][tag] = append(h.inbox[dest][tag], localMsg{from: from, data: cp})
	h.cond.Broadcast()
	h.mu.Unlock()
}

func (h *localHub) recv(rank, tag int, wildcard bool, source int) (int, []float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for {
		q := h.inbox[rank][tag]
		if wildcard {
			if len(q) > 0 {
				m := q[0]
				h.inbox[rank][tag] = q[1:]
				return m.from, m.data
			}
		} else {
			for i, m := range q {
				if m.from == source {
					h.inbox[rank][tag] = append(q[:i:i], q[i+1:]...)
					return m.from, m.data
				}
			}
		}
		h.cond.Wait()
	}
}

func (h *localHub) allReduce(rank int, dest, local []float64, op ReduceOp) {
	h.mu.Lock()
	gen := h.reduceGen
	if h.reduceContribs == nil {
		h.reduceContribs = make([][]float64, h.size)
	}
	h.reduceContribs[rank] = append([]float64(nil), local...)
	h.reduceArrived++
	if h.reduceArrived == 1 {
		h.reducePending[gen] = h.size
	}
	if h.reduceArrived == h.size {
		h.reduceResults[gen] = combineReduce(h.reduceContribs, op, len(local))
		h.reduceContribs = nil
		h.reduceArrived = 0
		h.reduceGen++
		h.cond.Broadcast()
	} else {
		for h.reduceGen == gen {
			h.cond.Wait()
		}
	}
	copy(dest, h.reduceResults[gen])
	h.reducePending[gen]--
	if h.reducePending[gen] == 0 {
		delete(h.reduceResults, gen)
		delete(h.reducePending, gen)
	}
	h.mu.Unlock()
}

func combineReduce(contribs [][]float64, op ReduceOp, n int) []float64 {
	out := make([]float64, n)
	switch op {
	case SUM:
		for _, c := range contribs {
			for i := 0; i < n; i++ {
				out[i] += c[i]
			}
		}
	case MIN:
		for i := 0; i < n; i++ {
			out[i] = contribs[0][i]
		}
		for _, c := range contribs[1:] {
			for i := 0; i < n; i++ {
				if c[i] < out[i] {
					out[i] = c[i]
				}
			}
		}
	case MAX:
		for i := 0; i < n; i++ {
			out[i] = contribs[0][i]
		}
		for _, c := range contribs[1:] {
			for i := 0; i < n; i++ {
				if c[i] > out[i] {
					out[i] = c[i]
				}
			}
		}
	}
	return out
}

func (h *localHub) barrier(rank int) {
	h.mu.Lock()
	gen := h.barrierGen
	h.barrierArrived++
	if h.barrierArrived == h.size {
		h.barrierArrived = 0
		h.barrierGen++
		h.cond.Broadcast()
	} else {
		for h.barrierGen == gen {
			h.cond.Wait()
		}
	}
	h.mu.Unlock()
}
