// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mesh implements the partitioned unstructured grid: points,
// elements, faces, boundaries, halos and the DG standard-element catalog.
package mesh

// Point holds vertex data. Coordinates are mutable under grid motion; the
// ID is immutable once assigned at mesh load.
type Point struct {
	ID            int
	PeriodicDonor int // -1 if none
	Coord         []float64
}

// DOFOffsets holds the degree-of-freedom bookkeeping an element carries for
// DG time-accurate local time stepping (TALTS): one global/local pair per
// time level, plus the previous-time-level offset needed by multirate
// update schedules.
type DOFOffsets struct {
	Global         int
	Local          int
	PerLevel       []int
	PerLevelPrev   []int
}

// Element holds volume-cell data. Halos are flagged !Owned and are stored
// in a contiguous tail so that index ordering alone classifies owned vs
// halo (Design Notes §9: "arena + integer indices").
type Element struct {
	ID                int
	VTKType           int
	NPolyGrid         int
	NPolySol          int
	Owned             bool
	OriginalRank      int
	TimeLevel         int
	GlobalID          int64
	DOF               DOFOffsets
	Nodes             []int // grid node IDs
	ConstJacobianFace []bool
}

// Face describes an internal (element-to-element) matching face. Side-0
// element ID is always < side-1 element ID for matching internal faces
// (§3 invariant); normals point from side-0 to side-1.
type Face struct {
	VTKType        int
	StdFaceIndex   int
	ElemSide0      int
	ElemSide1      int
	DOFSide0       []int
	DOFSide1       []int
	GridDOFSide0   []int
	GridDOFSide1   []int
	Normal         []float64   // per integration point, or a single constant normal
	CoordDerivSide0 [][]float64
	CoordDerivSide1 [][]float64
	TimeLevel      int
	IsHalo         bool // true when ElemSide1 (or side0) is owned by another rank
	SwapFaceInElement bool
}

// BoundaryFace describes a face on a physical or periodic boundary marker.
type BoundaryFace struct {
	VTKType   int
	ParentElem int
	DOFs      []int
	GridDOFs  []int
	Normal    []float64 // outward
}

// Boundary is an immutable-after-setup marker.
type Boundary struct {
	Tag               string
	Periodic          bool
	CountPerLevel     []int // cumulative, exclusive upper bound per time level
	Faces             []BoundaryFace
}
