// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/cpmech/gofem-cfd/config"
	"github.com/cpmech/gofem-cfd/mesh"
	"github.com/cpmech/gofem-cfd/variables"
	"github.com/cpmech/gosl/fun/dbf"
)

type fakeReader struct{}

func (fakeReader) ConvScheme() string             { return config.SchemeUpwind }
func (fakeReader) Centered() string               { return config.CenteredJST }
func (fakeReader) Upwind() string                 { return config.UpwindRoe }
func (fakeReader) SlopeLimiter() string           { return config.LimitNone }
func (fakeReader) Gradient() string                { return config.GradientGreenGauss }
func (fakeReader) TimeInt() string                { return config.TimeEulerImplicit }
func (fakeReader) LinearPrec() string             { return config.PrecJacobi }
func (fakeReader) Marching() string               { return config.MarchingSteady }
func (fakeReader) MUSCL() bool                    { return true }
func (fakeReader) CFL() float64                   { return 1 }
func (fakeReader) MaxDeltaTime() float64          { return 1e-3 }
func (fakeReader) RelaxationFactorFlow() float64  { return 1 }
func (fakeReader) VenkatLimiterCoeff() float64    { return 5 }
func (fakeReader) RefArea() float64               { return 1 }
func (fakeReader) RefLength() float64             { return 1 }
func (fakeReader) AoA() float64                   { return 2 }
func (fakeReader) AoS() float64                   { return 0 }
func (fakeReader) Mach() float64                  { return 0.5 }
func (fakeReader) Reynolds() float64              { return 1e6 }
func (fakeReader) FreeStreamPressure() float64    { return 101325 }
func (fakeReader) FreeStreamTemperature() float64 { return 288.15 }
func (fakeReader) FreeStreamTemperatureVe() float64 { return 288.15 }
func (fakeReader) FreeStreamMassFrac() []float64  { return []float64{1} }
func (fakeReader) FreeStreamDensity() float64     { return 1.225 }
func (fakeReader) MarkerBC(tag string) (config.BC, bool) { return config.BC{}, false }
func (fakeReader) NSpecies() int                  { return 1 }
func (fakeReader) MonatomicSpecies() []bool       { return []bool{false} }
func (fakeReader) Func(name string) (dbf.T, bool) { return nil, false }
func (fakeReader) MaxLinearIters() int            { return 100 }
func (fakeReader) LinearSolverTol() float64       { return 1e-10 }

// TestInitFreestreamProducesPhysicalState checks that the freestream
// seeding in run()'s setup path yields a physical conservative state
// (positive density, positive energy) that SetPrimVar_Compressible
// accepts without the non-physical flag.
func TestInitFreestreamProducesPhysicalState(t *testing.T) {
	cfg := fakeReader{}
	layout := variables.NewLayout(cfg.NSpecies(), 2, false)
	store := variables.NewStore(layout, 3, false)
	initFreestream(store, layout, cfg)

	eos := &variables.PerfectGasEOS{Gamma: 1.4, R: 287.0}
	for i := range store.Nodes {
		nonPhys, err := store.SetPrimVar_Compressible(i, eos)
		if err != nil {
			t.Fatal(err)
		}
		if nonPhys {
			t.Fatalf("expected physical freestream state at node %d", i)
		}
	}
	if store.Nodes[0].V[layout.IdxRho] <= 0 {
		t.Fatalf("expected positive freestream density, got %v", store.Nodes[0].V[layout.IdxRho])
	}
}

// TestDualVolumesPositive checks that every owned point receives a
// strictly-positive share of its incident elements' bounding-box
// volume proxy, since the solver's edge loop divides residuals by Vol.
func TestDualVolumesPositive(t *testing.T) {
	m := &mesh.Mesh{
		Ndim: 2,
		Points: []mesh.Point{
			{ID: 0, Coord: []float64{0, 0}},
			{ID: 1, Coord: []float64{1, 0}},
			{ID: 2, Coord: []float64{1, 1}},
			{ID: 3, Coord: []float64{0, 1}},
		},
		Elements: []mesh.Element{
			{ID: 0, Nodes: []int{0, 1, 2, 3}},
		},
	}
	vol := dualVolumes(m)
	if len(vol) != 4 {
		t.Fatalf("expected 4 volumes, got %d", len(vol))
	}
	for i, v := range vol {
		if v <= 0 {
			t.Fatalf("expected positive dual volume at point %d, got %v", i, v)
		}
	}
}
