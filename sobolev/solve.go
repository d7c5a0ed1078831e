// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sobolev

import (
	"github.com/cpmech/gofem-cfd/linsys"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Mode selects which of §4.6's three operating modes a Smoother runs.
type Mode int

const (
	ModeVolumeFull   Mode = iota // one block-diagonal system over all nDim directions at once
	ModeVolumePerDim             // nDim independent scalar solves, one per Cartesian direction
	ModeSurface                  // scalar solve over the surface mesh, normal-direction sensitivity only
)

// Smoother holds the assembled stiffness operator, element connectivity
// and the strong-Dirichlet point set ("boundary of the boundary":
// points shared by two or more physical markers, §4.6) for repeated
// smoothing solves against different raw-sensitivity right-hand sides.
type Smoother struct {
	Kb        *la.Triplet
	N         int
	Conn      [][]int
	ElemLoad  func(e int, sLocal []float64) ([]float64, error)
	Dirichlet map[int]bool
}

// NewSmoother assembles the stiffness operator over the given elements
// (volume elements for ModeVolumeFull/ModeVolumePerDim, surface
// elements for ModeSurface) and marks dirichletPoints as strong-
// Dirichlet rows. elemLoad must interpolate the same basis elemStiff
// integrates against, so the weak form stays internally consistent.
func NewSmoother(n int, conn [][]int, elemStiff func(e int) ([][]float64, error), elemLoad func(e int, sLocal []float64) ([]float64, error), dirichletPoints []int) (*Smoother, error) {
	Kb, err := AssembleGlobal(n, conn, elemStiff)
	if err != nil {
		return nil, err
	}
	dir := make(map[int]bool, len(dirichletPoints))
	for _, p := range dirichletPoints {
		dir[p] = true
	}
	return &Smoother{Kb: Kb, N: n, Conn: conn, ElemLoad: elemLoad, Dirichlet: dir}, nil
}

// Solve smooths one scalar raw-sensitivity field s (indexed by global
// point) into z, assembling the consistent load vector ∫s·ϕ via
// AssembleLoad and enforcing z=0 at every strong-Dirichlet point (zero
// Neumann is the natural condition elsewhere, needing no explicit row).
// Grounded on linsys.Solver's direct la.LinSol contract, reused here
// exactly as the flow solver's implicit step reuses it (§4.5).
func (sm *Smoother) Solve(s []float64) ([]float64, error) {
	if len(s) != sm.N {
		return nil, chk.Err("sobolev: sensitivity length %d does not match system size %d", len(s), sm.N)
	}
	b, err := AssembleLoad(sm.N, sm.Conn, s, sm.ElemLoad)
	if err != nil {
		return nil, err
	}
	jac := &linsys.Jacobian{Kb: sm.Kb, NVar: 1, NNode: sm.N}
	for p := range sm.Dirichlet {
		b[p] = 0
	}
	lin := linsys.NewSolver("umfpack")
	defer lin.Free()
	z := make([]float64, sm.N)
	_, err = lin.Solve(jac, b, z, true, false, false)
	if err != nil {
		return nil, chk.Err("sobolev: smoothing solve failed: %v", err)
	}
	for p := range sm.Dirichlet {
		z[p] = 0
	}
	return z, nil
}

// SolvePerDimension runs ModeVolumePerDim: nDim independent scalar
// solves, one per Cartesian direction of the raw sensitivity.
func (sm *Smoother) SolvePerDimension(sRaw [][]float64) ([][]float64, error) {
	out := make([][]float64, len(sRaw))
	for d, s := range sRaw {
		z, err := sm.Solve(s)
		if err != nil {
			return nil, chk.Err("sobolev: dimension %d: %v", d, err)
		}
		out[d] = z
	}
	return out, nil
}

// BoundaryOfBoundary returns the points that belong to two or more of
// the given physical markers' point sets, the strong-Dirichlet point
// set required by §4.6.
func BoundaryOfBoundary(markerPoints [][]int) []int {
	count := make(map[int]int)
	for _, pts := range markerPoints {
		seen := make(map[int]bool, len(pts))
		for _, p := range pts {
			if !seen[p] {
				count[p]++
				seen[p] = true
			}
		}
	}
	var out []int
	for p, c := range count {
		if c >= 2 {
			out = append(out, p)
		}
	}
	return out
}
