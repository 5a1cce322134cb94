// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpccg

import (
	"sort"

	"github.com/cpmech/gosl/chk"

	"github.com/cpmech/hpccg-go/transport"
)

// maxNumMessages bounds the number of distinct neighbors a rank may exchange
// with. It exists only as a safety limit (spec §4.2/§7); dynamic sizing means
// it is never reached in practice, only checked.
const maxNumMessages = 10000

// Exchange tags, incrementing per phase to disambiguate messages in flight.
const (
	tagNeighborProbe = 99
	tagLength        = 100
	tagGlobalIndices = 101
)

// MakeLocalMatrix rewrites m's global column indices to local ones and
// populates its halo-exchange metadata (spec §4.2). Single-rank runs have no
// externals to discover and this is a no-op.
func MakeLocalMatrix(m *SparseMatrix, w transport.World) {
	size := w.Size()
	if size == 1 {
		return
	}
	rank := w.Rank()

	externalIndex, externalPositions := scanAndMarkExternals(m)
	m.NumExternal = len(externalIndex)
	m.ExternalIndex = externalIndex

	externalProcessor := locateOwners(m, externalIndex, w)

	externalLocalIndex, newExternalProcessor := assignLocalSlots(m, externalProcessor)
	m.ExternalLocalIndex = externalLocalIndex
	rewriteExternalColumns(m, externalPositions, externalLocalIndex)

	m.LocalNcol = m.LocalNrow + m.NumExternal

	numSendNeighbors, totalToBeSent := countNeighbors(rank, size, newExternalProcessor, w)
	m.TotalToBeSent = totalToBeSent
	m.SendBuffer = make([]float64, totalToBeSent)

	if numSendNeighbors > maxNumMessages {
		chk.Panic("number of send neighbors %d exceeds MAX_NUM_MESSAGES; raise it", numSendNeighbors)
	}

	recvList, sendList := discoverNeighborIdentities(newExternalProcessor, numSendNeighbors, w)
	neighbors := mergeNeighborLists(recvList, sendList)
	if len(neighbors) > maxNumMessages {
		chk.Panic("number of neighbors %d exceeds MAX_NUM_MESSAGES; raise it", len(neighbors))
	}
	m.NumSendNeighbors = len(neighbors)
	m.Neighbors = neighbors

	newExternal := orderedNewExternal(m, externalLocalIndex)

	recvLength, sendLength := exchangeLengths(m, neighbors, newExternalProcessor, w)
	m.RecvLength = recvLength
	m.SendLength = sendLength

	m.ElementsToSend = exchangeElementsToSend(m, neighbors, newExternalProcessor, newExternal, sendLength, w)
}

// scanAndMarkExternals rewrites every in-range column to a local row index
// and records, for every out-of-range (external) column, the discovery order
// in which it was first seen plus every ColIndex position referencing it.
// This plays the role of the original's "negate and tag" trick (spec §9
// prefers an explicit auxiliary index over that encoding).
func scanAndMarkExternals(m *SparseMatrix) (externalIndex []int, positions map[int][]int) {
	order := make(map[int]int)
	positions = make(map[int][]int)
	for i := 0; i < m.LocalNrow; i++ {
		lo, hi := m.RowStart[i], m.RowStart[i]+m.NnzInRow[i]
		for k := lo; k < hi; k++ {
			c := m.ColIndex[k]
			if c >= m.StartRow && c <= m.StopRow {
				m.ColIndex[k] = c - m.StartRow
				continue
			}
			idx, ok := order[c]
			if !ok {
				idx = len(externalIndex)
				order[c] = idx
				externalIndex = append(externalIndex, c)
			}
			positions[idx] = append(positions[idx], k)
		}
	}
	return externalIndex, positions
}

// locateOwners all-reduces every rank's StartRow into a shared offsets table,
// then finds each external's owning rank as the largest j with
// offsets[j] <= globalIndex (spec §4.2 phase 2).
func locateOwners(m *SparseMatrix, externalIndex []int, w transport.World) []int {
	size := w.Size()
	local := make([]float64, size)
	local[w.Rank()] = float64(m.StartRow)
	offsets := make([]float64, size)
	w.AllReduceInto(offsets, local, transport.SUM)

	owners := make([]int, len(externalIndex))
	for i, c := range externalIndex {
		for j := size - 1; j >= 0; j-- {
			if int(offsets[j]) <= c {
				owners[i] = j
				break
			}
		}
	}
	return owners
}

// assignLocalSlots hands out consecutive local slots (starting at
// m.LocalNrow) so that every external owned by the same rank occupies a
// contiguous range; receives can then land directly with no scatter (spec
// §4.2 phase 3).
func assignLocalSlots(m *SparseMatrix, owners []int) (localIndex []int, newOwners []int) {
	n := len(owners)
	localIndex = make([]int, n)
	for i := range localIndex {
		localIndex[i] = -1
	}
	count := m.LocalNrow
	for i := 0; i < n; i++ {
		if localIndex[i] != -1 {
			continue
		}
		localIndex[i] = count
		count++
		for j := i + 1; j < n; j++ {
			if owners[j] == owners[i] && localIndex[j] == -1 {
				localIndex[j] = count
				count++
			}
		}
	}
	newOwners = make([]int, n)
	for i := 0; i < n; i++ {
		newOwners[localIndex[i]-m.LocalNrow] = owners[i]
	}
	return localIndex, newOwners
}

func rewriteExternalColumns(m *SparseMatrix, positions map[int][]int, localIndex []int) {
	for order, ks := range positions {
		slot := localIndex[order]
		for _, k := range ks {
			m.ColIndex[k] = slot
		}
	}
}

// countNeighbors builds, per rank, a tally of how many externals are owned by
// each other rank, all-reduces it, and decodes this rank's own slot into a
// neighbor count and a total element count to send (spec §4.2 phase 5).
func countNeighbors(rank, size int, newOwners []int, w transport.World) (numSendNeighbors, totalToBeSent int) {
	tally := make([]float64, size)
	for _, p := range newOwners {
		if tally[p] == 0 {
			tally[p] = 1
		}
		tally[p] += float64(size)
	}
	combined := make([]float64, size)
	w.AllReduceInto(combined, tally, transport.SUM)

	mine := int(combined[rank])
	numSendNeighbors = mine % size
	totalToBeSent = (mine - numSendNeighbors) / size
	return
}

// discoverNeighborIdentities builds the receive-from list (every rank that
// owns externals we reference, in discovery order, deduplicated) and the send-to list
// (by probing for sentinels), spec §4.2 phase 6.
func discoverNeighborIdentities(newOwners []int, numSendNeighbors int, w transport.World) (recvList, sendList []int) {
	if len(newOwners) > 0 {
		recvList = append(recvList, newOwners[0])
	}
	for i := 1; i < len(newOwners); i++ {
		if newOwners[i-1] != newOwners[i] {
			recvList = append(recvList, newOwners[i])
		}
	}

	sendList = make([]int, numSendNeighbors)
	handles := make([]transport.Recv, numSendNeighbors)
	for i := 0; i < numSendNeighbors; i++ {
		_, h := w.ImmediateReceiveWithTag(1, tagNeighborProbe)
		handles[i] = h
	}
	for _, dest := range recvList {
		w.SendWithTag([]float64{1}, dest, tagNeighborProbe)
	}
	for i, h := range handles {
		rf := h.Wait()
		sendList[i] = rf.Rank
	}
	return recvList, sendList
}

// mergeNeighborLists adds any send-only neighbor missing from recvList,
// producing the single symmetric neighbor list this rank both sends to and
// receives from.
func mergeNeighborLists(recvList, sendList []int) []int {
	present := make(map[int]bool, len(recvList))
	for _, r := range recvList {
		present[r] = true
	}
	out := append([]int(nil), recvList...)
	for _, s := range sendList {
		if !present[s] {
			out = append(out, s)
			present[s] = true
		}
	}
	return out
}

// orderedNewExternal reindexes the discovery-order external globals into
// local-slot order, for use when telling neighbors which globals we want.
func orderedNewExternal(m *SparseMatrix, localIndex []int) []int {
	out := make([]int, m.NumExternal)
	for i, g := range m.ExternalIndex {
		out[localIndex[i]-m.LocalNrow] = g
	}
	return out
}

// exchangeLengths tells every neighbor how many of its elements we need
// (populating our RecvLength and their SendLength), and learns from them how
// many of ours they need (our SendLength), spec §4.2 phase 7 part 1.
func exchangeLengths(m *SparseMatrix, neighbors []int, newOwners []int, w transport.World) (recvLength, sendLength []int) {
	n := len(neighbors)
	recvLength = make([]int, n)
	sendLength = make([]int, n)
	handles := make([]transport.Recv, n)
	for i, nb := range neighbors {
		handles[i] = w.ImmediateReceiveIntoWithTag(make([]float64, 1), nb, tagLength)
	}

	j := 0
	for i, nb := range neighbors {
		start := j
		for j < m.NumExternal && newOwners[j] == nb {
			j++
		}
		recvLength[i] = j - start
		w.SendWithTag([]float64{float64(j - start)}, nb, tagLength)
	}

	for i, h := range handles {
		rf := h.Wait()
		sendLength[i] = int(rf.Data[0])
	}
	return recvLength, sendLength
}

// exchangeElementsToSend tells every neighbor the global indices of the
// externals we want from it, and receives the same from them, translating
// what we receive into local row numbers to pack into SendBuffer on future
// halo exchanges (spec §4.2 phase 7 part 2).
func exchangeElementsToSend(m *SparseMatrix, neighbors []int, newOwners, newExternal, sendLength []int, w transport.World) []int {
	n := len(neighbors)
	buffers := make([][]float64, n)
	handles := make([]transport.Recv, n)
	for i := range neighbors {
		buffers[i] = make([]float64, sendLength[i])
		handles[i] = w.ImmediateReceiveIntoWithTag(buffers[i], neighbors[i], tagGlobalIndices)
	}

	j := 0
	for i, nb := range neighbors {
		start := j
		for j < m.NumExternal && newOwners[j] == nb {
			j++
		}
		want := make([]float64, j-start)
		for k, g := range newExternal[start:j] {
			want[k] = float64(g)
		}
		w.SendWithTag(want, nb, tagGlobalIndices)
	}

	var elementsToSend []int
	for i := range neighbors {
		handles[i].Wait()
		for _, v := range buffers[i] {
			elementsToSend = append(elementsToSend, int(v)-m.StartRow)
		}
	}
	return elementsToSend
}

// sortedCopy returns a sorted copy of xs: a deterministic view of a neighbor
// set regardless of discovery order. Nothing in the package calls it.
func sortedCopy(xs []int) []int {
	out := append([]int(nil), xs...)
	sort.Ints(out)
	return out
}
