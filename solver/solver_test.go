// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"testing"

	"github.com/cpmech/gofem-cfd/config"
	"github.com/cpmech/gofem-cfd/mesh"
	"github.com/cpmech/gofem-cfd/variables"
	"github.com/cpmech/gosl/fun/dbf"
)

type fakeReader struct {
	linearPrec string
	markerBC   config.BC
	hasMarker  bool
}

func (f fakeReader) ConvScheme() string               { return config.SchemeUpwind }
func (f fakeReader) Centered() string                 { return config.CenteredJST }
func (f fakeReader) Upwind() string                   { return config.UpwindRoe }
func (f fakeReader) SlopeLimiter() string             { return config.LimitNone }
func (f fakeReader) Gradient() string                 { return config.GradientGreenGauss }
func (f fakeReader) TimeInt() string                  { return config.TimeEulerImplicit }
func (f fakeReader) LinearPrec() string                { return f.linearPrec }
func (f fakeReader) Marching() string                 { return config.MarchingSteady }
func (f fakeReader) MUSCL() bool                      { return false }
func (f fakeReader) CFL() float64                     { return 1 }
func (f fakeReader) MaxDeltaTime() float64            { return 1e-3 }
func (f fakeReader) RelaxationFactorFlow() float64    { return 1 }
func (f fakeReader) VenkatLimiterCoeff() float64      { return 5 }
func (f fakeReader) RefArea() float64                 { return 1 }
func (f fakeReader) RefLength() float64               { return 1 }
func (f fakeReader) AoA() float64                     { return 0 }
func (f fakeReader) AoS() float64                     { return 0 }
func (f fakeReader) Mach() float64                    { return 0.5 }
func (f fakeReader) Reynolds() float64                { return 1e6 }
func (f fakeReader) FreeStreamPressure() float64      { return 101325 }
func (f fakeReader) FreeStreamTemperature() float64   { return 288.15 }
func (f fakeReader) FreeStreamTemperatureVe() float64 { return 288.15 }
func (f fakeReader) FreeStreamMassFrac() []float64    { return []float64{1} }
func (f fakeReader) FreeStreamDensity() float64       { return 1.225 }
func (f fakeReader) MarkerBC(tag string) (config.BC, bool) {
	return f.markerBC, f.hasMarker
}
func (f fakeReader) NSpecies() int                  { return 1 }
func (f fakeReader) MonatomicSpecies() []bool       { return []bool{false} }
func (f fakeReader) Func(name string) (dbf.T, bool) { return nil, false }
func (f fakeReader) MaxLinearIters() int            { return 100 }
func (f fakeReader) LinearSolverTol() float64       { return 1e-10 }

func newTestMesh() *mesh.Mesh {
	return &mesh.Mesh{
		Ndim:         2,
		NOwnedPoints: 1,
		Points:       []mesh.Point{{ID: 0, Coord: []float64{0, 0}}},
		Elements:     []mesh.Element{{ID: 0, Nodes: []int{0}}},
		Boundaries: []mesh.Boundary{
			{
				Tag: "wall",
				Faces: []mesh.BoundaryFace{
					{DOFs: []int{0}, GridDOFs: []int{0}, Normal: []float64{1, 0}},
				},
			},
		},
	}
}

// TestNewSolverRejectsUnknownLinearPrec covers §6's Kind_Linear_Prec
// validation: an unrecognized preconditioner string must fail
// construction rather than silently fall back to a default.
func TestNewSolverRejectsUnknownLinearPrec(t *testing.T) {
	m := newTestMesh()
	layout := variables.NewLayout(1, 2, false)
	store := variables.NewStore(layout, 1, false)
	eos := &variables.PerfectGasEOS{Gamma: 1.4, R: 287}
	cfg := fakeReader{linearPrec: "BOGUS"}

	_, err := NewSolver(m, store, layout, eos, cfg)
	if err == nil {
		t.Fatalf("expected an error for an unknown linear preconditioner")
	}
}

// TestNewSolverBuildsFreestreamForPerfectGas covers the FAR_FIELD
// prerequisite: a *variables.PerfectGasEOS construction must populate
// Solver.Freestream from the configured Mach/AoA/freestream state.
func TestNewSolverBuildsFreestreamForPerfectGas(t *testing.T) {
	m := newTestMesh()
	layout := variables.NewLayout(1, 2, false)
	store := variables.NewStore(layout, 1, false)
	eos := &variables.PerfectGasEOS{Gamma: 1.4, R: 287}
	cfg := fakeReader{linearPrec: config.PrecJacobi}

	s, err := NewSolver(m, store, layout, eos, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if s.Freestream == nil {
		t.Fatalf("expected a populated freestream state for a PerfectGasEOS")
	}
	if s.Freestream[layout.IdxRho] != cfg.FreeStreamDensity() {
		t.Fatalf("expected freestream density %v, got %v", cfg.FreeStreamDensity(), s.Freestream[layout.IdxRho])
	}
}

// TestNewSolverMarksWallAdjacentNodes covers the linelet preconditioner's
// seed set: a boundary marker resolving to a strong-Dirichlet wall kind
// must flag its DOF in Solver.wallAdjacent.
func TestNewSolverMarksWallAdjacentNodes(t *testing.T) {
	m := newTestMesh()
	layout := variables.NewLayout(1, 2, false)
	store := variables.NewStore(layout, 1, false)
	eos := &variables.PerfectGasEOS{Gamma: 1.4, R: 287}
	cfg := fakeReader{
		linearPrec: config.PrecLinelet,
		markerBC:   config.BC{Kind: "ISOTHERMAL_WALL", IsothermalTemp: 300},
		hasMarker:  true,
	}

	s, err := NewSolver(m, store, layout, eos, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if !s.wallAdjacent[0] {
		t.Fatalf("expected node 0 to be flagged wall-adjacent")
	}
}

// TestIterateZerosMomentumRowsAtIsothermalWall exercises the strong-
// Dirichlet fix end to end: a node with only an ISOTHERMAL_WALL
// boundary face must come out of Iterate with its momentum residual and
// Jacobian rows zeroed to identity, and the proportional-control energy
// term non-zero when the node temperature differs from the wall target.
func TestIterateZerosMomentumRowsAtIsothermalWall(t *testing.T) {
	m := newTestMesh()
	layout := variables.NewLayout(1, 2, false)
	store := variables.NewStore(layout, 1, false)
	eos := &variables.PerfectGasEOS{Gamma: 1.4, R: 287}
	cfg := fakeReader{
		linearPrec: config.PrecJacobi,
		markerBC:   config.BC{Kind: "ISOTHERMAL_WALL", IsothermalTemp: 250},
		hasMarker:  true,
	}

	s, err := NewSolver(m, store, layout, eos, cfg)
	if err != nil {
		t.Fatal(err)
	}
	s.Vol = []float64{1}

	nd := &store.Nodes[0]
	nd.V[layout.IdxRho] = 1.2
	nd.V[layout.IdxT] = 300
	nd.V[layout.IdxTve] = 300
	nd.V[layout.IdxVel] = 10
	nd.V[layout.IdxVel+1] = 5
	nd.V[layout.IdxRhoS] = 1.2
	nd.V[layout.IdxP] = nd.V[layout.IdxRho] * eos.R * nd.V[layout.IdxT]
	nd.ThermalConductivity = 0.02
	nd.ThermalConductivityVe = 0
	nd.DiffusionCoeff = []float64{0}
	variables.PrimitiveToConservative(nd.V, layout, nd.U)

	rep, err := s.Iterate([]float64{1e-6})
	if err != nil {
		t.Fatal(err)
	}
	if rep.Residual[layout.NSpecies] != 0 || rep.Residual[layout.NSpecies+1] != 0 {
		t.Fatalf("expected zeroed momentum residual rows at the isothermal wall, got %v", rep.Residual)
	}
	energyIdx := layout.NSpecies + layout.NDim
	if rep.Residual[energyIdx] == 0 {
		t.Fatalf("expected a non-zero proportional-control energy residual when T differs from the wall target")
	}
}
