// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package numerics implements the per-edge flux functors and per-point
// source terms of §4.3: JST/Lax centered and Roe/AUSM upwind convective
// fluxes with MUSCL reconstruction, viscous flux, axisymmetric/chemistry/
// vibrational-relaxation source terms, and spectral-radius time-step
// estimation. Kernels are monomorphized per Design Notes §9 ("virtual
// dispatch in hot edge loops"): FluxKind selects one concrete function
// once per run, and the edge loop calls it directly without a vtable.
package numerics

import "github.com/cpmech/gosl/la"

// Status replaces exception-based control flow per Design Notes §9.
type Status int

const (
	StatusOK Status = iota
	StatusNonPhysical
	StatusNaN
)

// Result carries a kernel's per-edge contribution: the residual additions
// for both sides and the two block-Jacobians.
type Result struct {
	ResConv []float64
	ResVisc []float64
	JacI    [][]float64 // d(Res)/dU_i
	JacJ    [][]float64 // d(Res)/dU_j
	Status  Status
}

// NewResult allocates a zeroed Result for nVar equations.
func NewResult(nVar int) *Result {
	return &Result{
		ResConv: make([]float64, nVar),
		ResVisc: make([]float64, nVar),
		JacI:    la.MatAlloc(nVar, nVar),
		JacJ:    la.MatAlloc(nVar, nVar),
	}
}

func (r *Result) zero() {
	la.VecFill(r.ResConv, 0)
	la.VecFill(r.ResVisc, 0)
	la.MatFill(r.JacI, 0)
	la.MatFill(r.JacJ, 0)
}

// HasNaN scans a Result for any NaN in the residual or Jacobian blocks
// (§4.3 "strict NaN rejection").
func (r *Result) HasNaN() bool {
	if vecHasNaN(r.ResConv) || vecHasNaN(r.ResVisc) {
		return true
	}
	return matHasNaN(r.JacI) || matHasNaN(r.JacJ)
}

func vecHasNaN(v []float64) bool {
	for _, x := range v {
		if x != x {
			return true
		}
	}
	return false
}

func matHasNaN(m [][]float64) bool {
	for _, row := range m {
		if vecHasNaN(row) {
			return true
		}
	}
	return false
}

// EdgeInputs are the per-invocation inputs a kernel is fed at one
// interior edge or boundary vertex (§4.3).
type EdgeInputs struct {
	Normal []float64 // area-scaled, side-0 -> side-1

	Ui, Uj []float64
	Vi, Vj []float64

	DPdUi, DPdUj     []float64
	DTdUi, DTdUj     []float64
	DTvedUi, DTvedUj []float64

	DiffusionCoeffI, DiffusionCoeffJ []float64
	LaminarViscosityI, LaminarViscosityJ float64
	ThermalConductivityI, ThermalConductivityJ float64
	ThermalConductivityVeI, ThermalConductivityVeJ float64
	EveI, EveJ   float64
	CvveI, CvveJ float64

	GradVi, GradVj [][]float64 // for viscous kernels
	DistIJ         float64     // |x_j - x_i|, for wall-type BCs
}

// ConvectiveKernel computes the convective (inviscid) flux and its
// Jacobians for one edge, given already-reconstructed states.
type ConvectiveKernel interface {
	ComputeResidual(in *EdgeInputs, nVar, nDim, nSpecies int, res *Result)
}

// ViscousKernel computes the viscous flux contribution, added into
// res.ResVisc. ViscousFlux, the implementation in this package, leaves
// res.JacI/res.JacJ untouched.
type ViscousKernel interface {
	ComputeResidual(in *EdgeInputs, nVar, nDim, nSpecies int, res *Result)
}
