// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numerics

import "github.com/cpmech/gofem-cfd/variables"

// ReconstructionResult holds the outcome of one MUSCL reconstruction
// attempt at an edge (§4.3).
type ReconstructionResult struct {
	Ui, Uj         []float64
	Vi, Vj         []float64
	FirstOrder     bool // true if reverted to unreconstructed states
}

// MUSCLReconstruct performs the four-step reconstruction of §4.3:
//  1. halfEdge = 0.5*(xj - xi)
//  2. Ui* = Ui + limiterI*(gradUi . halfEdge); Uj* = Uj - limiterJ*(gradUj . halfEdge)
//  3. convert U* back to V* via eos, recomputing dP/dU etc (left to caller)
//  4. if either side is non-physical, revert BOTH sides to first order
//     (§8 invariant 6).
//
// gradUi/gradUj are gradients of the conservative variables at nodes i
// and j (Open Question #1 in SPEC_FULL.md: reconstruction is on U, per
// spec.md's default canonical form).
func MUSCLReconstruct(xi, xj []float64, Ui, Uj []float64, gradUi, gradUj [][]float64, limiterI, limiterJ []float64, eos variables.EOS, layout variables.Layout) ReconstructionResult {
	nDim := len(xi)
	half := make([]float64, nDim)
	for d := 0; d < nDim; d++ {
		half[d] = 0.5 * (xj[d] - xi[d])
	}

	nVar := len(Ui)
	UiStar := make([]float64, nVar)
	UjStar := make([]float64, nVar)
	for k := 0; k < nVar; k++ {
		dotI := dotProd(gradUi[k], half)
		dotJ := dotProd(gradUj[k], half)
		UiStar[k] = Ui[k] + limiterI[k]*dotI
		UjStar[k] = Uj[k] - limiterJ[k]*dotJ
	}

	ViStar := make([]float64, layout.NPrim)
	VjStar := make([]float64, layout.NPrim)
	nonPhysI := eos.ToPrimitive(UiStar, ViStar, layout)
	nonPhysJ := eos.ToPrimitive(UjStar, VjStar, layout)

	if nonPhysI || nonPhysJ {
		Vi := make([]float64, layout.NPrim)
		Vj := make([]float64, layout.NPrim)
		eos.ToPrimitive(Ui, Vi, layout)
		eos.ToPrimitive(Uj, Vj, layout)
		return ReconstructionResult{Ui: Ui, Uj: Uj, Vi: Vi, Vj: Vj, FirstOrder: true}
	}

	return ReconstructionResult{Ui: UiStar, Uj: UjStar, Vi: ViStar, Vj: VjStar}
}

func dotProd(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
