// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"github.com/cpmech/gosl/chk"
)

// Mesh owns flat vectors of Point, Element, Face, BoundaryFace and
// exposes the ranks-to-communicate lists used for halo exchange. Halos
// occupy a contiguous tail of Elements so that an index beyond
// NOwnedElements is always a halo (Design Notes §9).
type Mesh struct {
	Ndim int

	Points   []Point
	Elements []Element
	Faces    []Face
	Boundaries []Boundary

	NOwnedElements int // elements[:NOwnedElements] are owned; the rest are halos
	NOwnedPoints   int

	CountPerLevel []int // cumulative exclusive upper bound per DG time level

	// ranks to communicate with, ordered and deterministic; self-rank
	// is included to keep the exchange loop uniform (§5)
	RanksSend []int
	RanksRecv []int
	EntitiesSend [][]int // per rank, indices into Points (or Elements) to pack
	EntitiesRecv [][]int

	Standard *StandardElementCatalog

	rank, nprocs int
}

// New returns an empty Mesh for a local partition.
func New(ndim, rank, nprocs int) *Mesh {
	return &Mesh{
		Ndim:     ndim,
		Standard: NewStandardElementCatalog(),
		rank:     rank,
		nprocs:   nprocs,
	}
}

// Rank returns this mesh partition's owning rank.
func (m *Mesh) Rank() int { return m.rank }

// IterInteriorFaces calls fn for every internal (non-boundary) face,
// owned-before-halo and grouped by time level per the sort order
// established by CreateFaces (§4.1 "cache-friendly traversal").
func (m *Mesh) IterInteriorFaces(fn func(f *Face)) {
	for i := range m.Faces {
		fn(&m.Faces[i])
	}
}

// IterBoundaryVertices calls fn for every boundary face of the given marker.
func (m *Mesh) IterBoundaryVertices(tag string, fn func(bf *BoundaryFace)) error {
	for bi := range m.Boundaries {
		b := &m.Boundaries[bi]
		if b.Tag != tag {
			continue
		}
		for fi := range b.Faces {
			fn(&b.Faces[fi])
		}
		return nil
	}
	return chk.Err("mesh: no boundary marker named %q", tag)
}

// TimeLevelOf returns the DG time level bucket an element index falls in,
// using the cumulative CountPerLevel table. Returns an error (fatal per
// §4.1 failure semantics) for an out-of-range level.
func (m *Mesh) TimeLevelOf(elemIdx int) (level int, err error) {
	for lvl, upper := range m.CountPerLevel {
		if elemIdx < upper {
			return lvl, nil
		}
	}
	return 0, chk.Err("mesh: element index %d has out-of-range time level (max cumulative=%d)", elemIdx, lastOrZero(m.CountPerLevel))
}

func lastOrZero(xs []int) int {
	if len(xs) == 0 {
		return 0
	}
	return xs[len(xs)-1]
}

// DualVolumes holds the dual-grid control volume associated with each
// owned point (finite-volume dual cell) as a plain table. Nothing in this
// package fills it; the solver's Vol slice is built separately by the
// caller.
type DualVolumes struct {
	Vol []float64 // [NOwnedPoints]
}

// EdgeNormal returns the outward unit normal scaled by face area for the
// dual-grid edge between two owned points, oriented point i -> point j.
// In a finite-volume dual mesh this is the accumulated normal of all
// faces of the primal mesh dual to edge (i,j); DG callers instead use
// Face.Normal directly at integration points.
type EdgeNormal struct {
	I, J   int
	Normal []float64 // already scaled by |A|
}
