// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numerics

import (
	"math"
	"testing"

	"github.com/cpmech/gofem-cfd/variables"
)

func makeEdgeInputs(layout variables.Layout, eos *variables.PerfectGasEOS, rhoI, uI, pI, rhoJ, uJ, pJ float64) *EdgeInputs {
	cv := eos.R / (eos.Gamma - 1)
	buildU := func(rho, u, p float64) []float64 {
		T := p / (rho * eos.R)
		e := cv*T + 0.5*u*u
		return []float64{rho, rho * u, rho * e}
	}
	Ui := buildU(rhoI, uI, pI)
	Uj := buildU(rhoJ, uJ, pJ)
	Vi := make([]float64, layout.NPrim)
	Vj := make([]float64, layout.NPrim)
	eos.ToPrimitive(Ui, Vi, layout)
	eos.ToPrimitive(Uj, Vj, layout)

	dPdUi := make([]float64, layout.NCons)
	dPdUj := make([]float64, layout.NCons)
	eos.DPdU(Vi, layout, dPdUi)
	eos.DPdU(Vj, layout, dPdUj)

	return &EdgeInputs{
		Normal: []float64{1},
		Ui:     Ui, Uj: Uj,
		Vi: Vi, Vj: Vj,
		DPdUi: dPdUi, DPdUj: dPdUj,
	}
}

// TestConvectiveConsistency covers Scenario E: when both sides carry the
// identical state, every kernel's dissipation must vanish and the
// residual must equal the exact physical flux (far-field consistency).
func TestConvectiveConsistency(t *testing.T) {
	layout := variables.NewLayout(1, 1, false)
	eos := &variables.PerfectGasEOS{Gamma: 1.4, R: 287.0}
	in := makeEdgeInputs(layout, eos, 1.2, 50.0, 101325.0, 1.2, 50.0, 101325.0)

	kernels := []ConvectiveKernel{NewJSTCentered(), LaxCentered{}, NewRoeUpwind(), AUSMUpwind{}}
	for _, k := range kernels {
		res := NewResult(layout.NCons)
		k.ComputeResidual(in, layout.NCons, layout.NDim, layout.NSpecies, res)
		want := in.Vi[layout.IdxRho] * in.Vi[layout.IdxVel]
		if math.Abs(res.ResConv[0]-want) > 1e-6 {
			t.Errorf("%T: mass flux = %v, want %v", k, res.ResConv[0], want)
		}
	}
}

// TestRoeUpwindJumpNoNaN checks that the Roe kernel stays finite (no
// NaN) across a single 1D jump in density, velocity and pressure.
func TestRoeUpwindJumpNoNaN(t *testing.T) {
	layout := variables.NewLayout(1, 1, false)
	eos := &variables.PerfectGasEOS{Gamma: 1.4, R: 287.0}
	in := makeEdgeInputs(layout, eos, 1.2, 100.0, 150000.0, 1.0, 50.0, 90000.0)

	res := NewResult(layout.NCons)
	k := NewRoeUpwind()
	k.ComputeResidual(in, layout.NCons, layout.NDim, layout.NSpecies, res)
	if res.HasNaN() {
		t.Fatalf("Roe kernel produced NaN for a physical jump")
	}
}

func TestJSTCenteredNoNaN(t *testing.T) {
	layout := variables.NewLayout(1, 2, false)
	eos := &variables.PerfectGasEOS{Gamma: 1.4, R: 287.0}
	cv := eos.R / (eos.Gamma - 1)
	buildU := func(rho, u, v, p float64) []float64 {
		T := p / (rho * eos.R)
		e := cv*T + 0.5*(u*u+v*v)
		return []float64{rho, rho * u, rho * v, rho * e}
	}
	Ui := buildU(1.2, 50, 0, 101325)
	Uj := buildU(1.15, 45, 2, 100000)
	Vi := make([]float64, layout.NPrim)
	Vj := make([]float64, layout.NPrim)
	eos.ToPrimitive(Ui, Vi, layout)
	eos.ToPrimitive(Uj, Vj, layout)
	dPdUi := make([]float64, layout.NCons)
	dPdUj := make([]float64, layout.NCons)
	eos.DPdU(Vi, layout, dPdUi)
	eos.DPdU(Vj, layout, dPdUj)
	in := &EdgeInputs{Normal: []float64{1, 0}, Ui: Ui, Uj: Uj, Vi: Vi, Vj: Vj, DPdUi: dPdUi, DPdUj: dPdUj}

	res := NewResult(layout.NCons)
	NewJSTCentered().ComputeResidual(in, layout.NCons, layout.NDim, layout.NSpecies, res)
	if res.HasNaN() {
		t.Fatalf("JST kernel produced NaN")
	}
}
