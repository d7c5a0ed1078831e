// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"testing"

	"github.com/cpmech/gofem-cfd/config"
	"github.com/cpmech/gofem-cfd/variables"
)

func TestApplyBoundaryEulerWallReflectsNormalVelocity(t *testing.T) {
	layout := variables.NewLayout(1, 2, false)
	vint := make([]float64, layout.NPrim)
	vint[layout.IdxRho] = 1.2
	vint[layout.IdxVel] = 10
	vint[layout.IdxVel+1] = 5
	vghost := make([]float64, layout.NPrim)
	err := ApplyBoundary(config.BC{Kind: "EULER_WALL"}, vint, []float64{1, 0}, layout, &variables.PerfectGasEOS{Gamma: 1.4, R: 287}, nil, nil, vghost)
	if err != nil {
		t.Fatal(err)
	}
	if vghost[layout.IdxVel] != -10 {
		t.Fatalf("expected reflected normal velocity -10, got %v", vghost[layout.IdxVel])
	}
	if vghost[layout.IdxVel+1] != 5 {
		t.Fatalf("expected unchanged tangential velocity, got %v", vghost[layout.IdxVel+1])
	}
}

func TestApplyBoundaryIonizedInletRejected(t *testing.T) {
	layout := variables.NewLayout(1, 2, false)
	vint := make([]float64, layout.NPrim)
	vghost := make([]float64, layout.NPrim)
	err := ApplyBoundary(config.BC{Kind: "IONIZED_INLET"}, vint, []float64{1, 0}, layout, &variables.PerfectGasEOS{Gamma: 1.4, R: 287}, nil, nil, vghost)
	if err == nil {
		t.Fatalf("expected ionized-species inlet to be rejected")
	}
}

func TestApplyBoundaryIsothermalWallFixesVelocityAndTemp(t *testing.T) {
	layout := variables.NewLayout(1, 2, false)
	vint := make([]float64, layout.NPrim)
	vint[layout.IdxT] = 500
	vghost := make([]float64, layout.NPrim)
	err := ApplyBoundary(config.BC{Kind: "ISOTHERMAL_WALL", IsothermalTemp: 300}, vint, []float64{1, 0}, layout, &variables.PerfectGasEOS{Gamma: 1.4, R: 287}, nil, nil, vghost)
	if err != nil {
		t.Fatal(err)
	}
	if vghost[layout.IdxVel] != 0 || vghost[layout.IdxVel+1] != 0 {
		t.Fatalf("expected zero velocity at isothermal wall, got %v %v", vghost[layout.IdxVel], vghost[layout.IdxVel+1])
	}
	if vghost[layout.IdxT] != 100 {
		t.Fatalf("expected ghost T=100 (2*300-500), got %v", vghost[layout.IdxT])
	}
}

func TestApplyBoundaryIsothermalCatalyticDrivesMonatomicToZero(t *testing.T) {
	layout := variables.NewLayout(2, 2, false)
	vint := make([]float64, layout.NPrim)
	vint[layout.IdxRhoS+0] = 0.4 // monatomic species
	vint[layout.IdxRhoS+1] = 0.8 // molecular species
	vint[layout.IdxT] = 500
	vghost := make([]float64, layout.NPrim)
	monatomic := []bool{true, false}
	err := ApplyBoundary(config.BC{Kind: "ISOTHERMAL_WALL", IsothermalTemp: 300, Catalytic: true}, vint, []float64{1, 0}, layout, &variables.PerfectGasEOS{Gamma: 1.4, R: 287}, nil, monatomic, vghost)
	if err != nil {
		t.Fatal(err)
	}
	if vghost[layout.IdxRhoS+0] != -0.4 {
		t.Fatalf("expected catalytic monatomic ghost reflected about zero, got %v", vghost[layout.IdxRhoS+0])
	}
	if vghost[layout.IdxRhoS+1] != 0.8 {
		t.Fatalf("expected non-catalytic molecular species mirrored, got %v", vghost[layout.IdxRhoS+1])
	}
}

func TestApplyBoundaryFarFieldUsesFreestreamNotInterior(t *testing.T) {
	layout := variables.NewLayout(1, 2, false)
	vint := make([]float64, layout.NPrim)
	vint[layout.IdxRho] = 10 // deliberately far from freestream
	vint[layout.IdxVel] = 500
	freestream := make([]float64, layout.NPrim)
	freestream[layout.IdxRho] = 1.225
	freestream[layout.IdxVel] = 50
	vghost := make([]float64, layout.NPrim)
	err := ApplyBoundary(config.BC{Kind: "FAR_FIELD"}, vint, []float64{1, 0}, layout, &variables.PerfectGasEOS{Gamma: 1.4, R: 287}, freestream, nil, vghost)
	if err != nil {
		t.Fatal(err)
	}
	if vghost[layout.IdxRho] != 1.225 || vghost[layout.IdxVel] != 50 {
		t.Fatalf("expected far-field ghost to equal freestream, got rho=%v vel=%v", vghost[layout.IdxRho], vghost[layout.IdxVel])
	}
}

func TestApplyBoundaryFarFieldWithoutFreestreamErrors(t *testing.T) {
	layout := variables.NewLayout(1, 2, false)
	vint := make([]float64, layout.NPrim)
	vghost := make([]float64, layout.NPrim)
	err := ApplyBoundary(config.BC{Kind: "FAR_FIELD"}, vint, []float64{1, 0}, layout, &variables.PerfectGasEOS{Gamma: 1.4, R: 287}, nil, nil, vghost)
	if err == nil {
		t.Fatalf("expected error when no freestream state is available")
	}
}

func TestApplyBoundarySupersonicInletImposesConfiguredState(t *testing.T) {
	layout := variables.NewLayout(1, 2, false)
	vint := make([]float64, layout.NPrim)
	vint[layout.IdxRhoS] = 1.0
	vint[layout.IdxRho] = 1.0
	vint[layout.IdxT] = 250
	vint[layout.IdxP] = 1.0 * 287 * 250
	vint[layout.IdxRhoCvTr] = 1.0 * (287 / 0.4)
	bc := config.BC{Kind: "SUPERSONIC_INLET", InletPressure: 50000, InletTemp: 300, InletFlowDir: []float64{400, 0}}
	vghost := make([]float64, layout.NPrim)
	err := ApplyBoundary(bc, vint, []float64{1, 0}, layout, &variables.PerfectGasEOS{Gamma: 1.4, R: 287}, nil, nil, vghost)
	if err != nil {
		t.Fatal(err)
	}
	if vghost[layout.IdxT] != 300 {
		t.Fatalf("expected configured inlet temperature 300, got %v", vghost[layout.IdxT])
	}
	if vghost[layout.IdxP] != 50000 {
		t.Fatalf("expected configured inlet pressure 50000, got %v", vghost[layout.IdxP])
	}
	if vghost[layout.IdxVel] != 400 || vghost[layout.IdxVel+1] != 0 {
		t.Fatalf("expected configured inlet velocity [400,0], got %v %v", vghost[layout.IdxVel], vghost[layout.IdxVel+1])
	}
	if vghost[layout.IdxTve] != 300 {
		t.Fatalf("expected Tve=T at the inlet, got %v", vghost[layout.IdxTve])
	}
	if vghost[layout.IdxRho] <= 0 {
		t.Fatalf("expected positive inlet density from the ideal gas law, got %v", vghost[layout.IdxRho])
	}
}
