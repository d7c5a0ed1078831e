// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numerics

import "math"

// SourceCounters counts per-term source-evaluation NaN rejections, which
// are counted rather than fatal (§4.3, §7: "never fatal").
type SourceCounters struct {
	NaNRejections int
}

// AxisymmetricSource adds the axisymmetric pressure/convective source
// term -1/y * (rho*v, rho*u*v, rho*v*v, v*(rhoE+P)) that an axisymmetric
// 2D run needs in place of a true 3D divergence (§7 supplemented
// feature, grounded on SU2_CFD's CSourceAxisymmetric).
type AxisymmetricSource struct {
	Enabled bool
}

// Evaluate computes the source contribution at one node given its
// conservative and primitive state and the node's radial coordinate y.
// It returns true and leaves res unmodified when the source is disabled
// or y is at or below the axis (y <= 1e-12), where the term is singular
// and vanishes; otherwise it returns false if the updated res holds a NaN.
func (a AxisymmetricSource) Evaluate(u, v []float64, y float64, nSpecies, nDim int, res []float64) bool {
	if !a.Enabled || y <= 1e-12 {
		return true
	}
	velStart := nSpecies + 3
	rho := v[nSpecies]
	p := v[velStart+nDim]
	vr := v[velStart+1] // radial component is index 1 by the axisymmetric-y convention
	rhoE := u[nSpecies+nDim]

	for s := 0; s < nSpecies; s++ {
		res[s] -= u[s] * vr / y
	}
	for d := 0; d < nDim; d++ {
		res[nSpecies+d] -= rho * v[velStart+d] * vr / y
	}
	res[nSpecies+nDim] -= (rhoE + p) * vr / y
	return !vecHasNaN(res)
}

// ArrheniusReaction describes one finite-rate chemistry reaction in
// Arrhenius form: k = A * T^b * exp(-Ea/(R*T)) (§7 supplemented
// feature, grounded on SU2_CFD's CSourceChemistry reaction-rate form).
type ArrheniusReaction struct {
	A, B, Ea float64
	Reactant, Product int // species indices; single-step, bimolecular-free simplification
}

// ChemistrySource evaluates a list of finite-rate reactions, accumulating
// species-mass-production source terms. Each reaction's NaN contribution
// is rejected independently (never aborts the whole source evaluation).
type ChemistrySource struct {
	Reactions []ArrheniusReaction
	Rgas      float64
}

// Evaluate adds chemistry production into res[0:nSpecies]; returns the
// count of per-reaction NaN rejections (§4.3/§7: counted, not fatal).
func (c ChemistrySource) Evaluate(u, v []float64, nSpecies int, res []float64) int {
	rejected := 0
	T := v[nSpecies+1]
	if T < 1 {
		return rejected
	}
	for _, rx := range c.Reactions {
		k := rx.A * math.Pow(T, rx.B) * math.Exp(-rx.Ea/(c.Rgas*T))
		rate := k * u[rx.Reactant]
		if rate != rate { // NaN
			rejected++
			continue
		}
		res[rx.Reactant] -= rate
		res[rx.Product] += rate
	}
	return rejected
}

// VibrationalRelaxationSource implements a Landau-Teller relaxation of
// vibrational-electronic energy toward its translational-equilibrium
// value, (e_ve*(T) - e_ve) / tau (§7 supplemented feature, grounded on
// SU2_CFD's CSourceVibRelaxation / Millikan-White relaxation time).
type VibrationalRelaxationSource struct {
	Enabled bool
	Tau     float64 // relaxation time, supplied by the physics configuration
}

// Evaluate adds the relaxation source into res[last] (the Eve equation),
// given the current and equilibrium vibrational energy per unit mass.
func (r VibrationalRelaxationSource) Evaluate(rho, eveEq, eveCur float64, res []float64) bool {
	if !r.Enabled || r.Tau <= 0 {
		return true
	}
	term := rho * (eveEq - eveCur) / r.Tau
	if term != term {
		return false
	}
	res[len(res)-1] += term
	return true
}
