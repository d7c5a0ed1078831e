// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"
)

// Field is anything the core exchanges across the partition boundary: a
// packed, per-entity vector (primitive variables, conservative update,
// grid velocity, ...).
type Field interface {
	// Pack writes the payload for local entity idx into buf, returning
	// the number of floats written (constant across calls for a given
	// field).
	Pack(idx int, buf []float64) int
	// Unpack reads a received payload for local (halo) entity idx.
	Unpack(idx int, buf []float64)
	// Width is the number of float64 per entity in the payload.
	Width() int
}

// PeriodicTransform rotates/translates a vector payload through a
// per-marker transformation before it is unpacked on a periodic halo
// (§3, §6 "Periodic halos transform vector payloads").
type PeriodicTransform struct {
	Rotation    [][]float64 // [ndim][ndim]
	Translation []float64   // [ndim]
}

// Apply transforms a vector payload in place.
func (t *PeriodicTransform) Apply(v []float64) {
	if t == nil {
		return
	}
	out := make([]float64, len(v))
	for i := range out {
		out[i] = t.Translation[i]
		for j := range v {
			out[i] += t.Rotation[i][j] * v[j]
		}
	}
	copy(v, out)
}

// ExchangeHandle is the explicit suspension point object created by
// StartExchange and finalized by Wait (Design Notes §9: no implicit
// coroutine-based suspension). No other kernel may read neighbor fields
// between StartExchange and the matching Wait (§5).
type ExchangeHandle struct {
	m        *Mesh
	field    Field
	periodic map[int]*PeriodicTransform // rank -> transform, for periodic halo entries on that rank
	sendBufs [][]float64
	recvBufs [][]float64
	reqs     []mpi.Request
}

// StartExchange packs local data for every send-rank (including
// self-communication as an in-memory copy) and posts non-blocking
// sends/receives for every recv-rank. Self-communication is represented
// as this rank appearing in its own RanksSend/RanksRecv lists, keeping
// the loop uniform (§5).
func (m *Mesh) StartExchange(field Field, periodic map[int]*PeriodicTransform) *ExchangeHandle {
	h := &ExchangeHandle{m: m, field: field, periodic: periodic}
	width := field.Width()

	h.sendBufs = make([][]float64, len(m.RanksSend))
	for i, rank := range m.RanksSend {
		ids := m.EntitiesSend[i]
		buf := make([]float64, len(ids)*width)
		for k, idx := range ids {
			field.Pack(idx, buf[k*width:(k+1)*width])
		}
		h.sendBufs[i] = buf
		if rank == m.rank {
			continue // self-communication resolved synchronously in Wait
		}
		req := mpi.Isend(rank, buf)
		h.reqs = append(h.reqs, req)
	}

	h.recvBufs = make([][]float64, len(m.RanksRecv))
	for i, rank := range m.RanksRecv {
		ids := m.EntitiesRecv[i]
		buf := make([]float64, len(ids)*width)
		h.recvBufs[i] = buf
		if rank == m.rank {
			continue
		}
		req := mpi.Irecv(rank, buf)
		h.reqs = append(h.reqs, req)
	}
	return h
}

// Wait blocks until all posted sends/receives of this exchange complete,
// resolves self-communication in-memory, applies periodic transforms to
// vector payloads, and unpacks every receive buffer into field. This is
// the single suspension point of §5.
func (h *ExchangeHandle) Wait() error {
	if len(h.reqs) > 0 {
		if err := mpi.WaitAll(h.reqs); err != nil {
			return chk.Err("mesh: halo exchange communication failed: %v", err)
		}
	}
	width := h.field.Width()
	for i, rank := range h.m.RanksRecv {
		buf := h.recvBufs[i]
		if rank == h.m.rank {
			// self-communication: find the matching send buffer and copy
			for j, sendRank := range h.m.RanksSend {
				if sendRank == rank {
					copy(buf, h.sendBufs[j])
					break
				}
			}
		}
		xform := h.periodic[rank]
		ids := h.m.EntitiesRecv[i]
		for k, idx := range ids {
			payload := buf[k*width : (k+1)*width]
			if xform != nil {
				xform.Apply(payload)
			}
			h.field.Unpack(idx, payload)
		}
	}
	return nil
}

// AllReduceSum reduces a rank-local slice into dest across all ranks
// (e.g. force/heat-coefficient monitors, §4.4 item 10).
func AllReduceSum(dest, src []float64) {
	if !mpi.IsOn() {
		copy(dest, src)
		return
	}
	mpi.AllReduceSum(dest, src)
}

// IntAllReduceMax reduces integer counters with a max (e.g. non-physical
// point counts and per-term NaN counters reduced to rank 0 for a
// warning, §4.3).
func IntAllReduceMax(dest, src []int) {
	if !mpi.IsOn() {
		copy(dest, src)
		return
	}
	mpi.IntAllReduceMax(dest, src)
}
