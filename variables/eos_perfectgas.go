// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variables

import "math"

// PerfectGasEOS is a single-species calorically-perfect-gas equation of
// state: T_ve is frozen equal to T (no vibrational non-equilibrium). It
// is the default EOS used for the Euler/Navier-Stokes path and for unit
// tests; a NEMO mixture EOS with per-species T_ve lives in a consuming
// package and also satisfies the EOS contract.
type PerfectGasEOS struct {
	Gamma float64 // ratio of specific heats
	R     float64 // specific gas constant
}

// ToPrimitive implements the EOS contract (§4.2, §8 invariant 5).
func (eos *PerfectGasEOS) ToPrimitive(u []float64, v []float64, layout Layout) (nonPhys bool) {
	rho := 0.0
	for s := 0; s < layout.NSpecies; s++ {
		rhoS := u[layout.IdxRhoS+s]
		if rhoS < 0 {
			nonPhys = true
		}
		v[layout.IdxRhoS+s] = rhoS
		rho += rhoS
	}
	v[layout.IdxRho] = rho
	if rho <= 0 {
		nonPhys = true
		return
	}

	momStart := layout.NSpecies
	kinetic := 0.0
	for d := 0; d < layout.NDim; d++ {
		ud := u[momStart+d]
		vel := ud / rho
		v[layout.IdxVel+d] = vel
		kinetic += vel * vel
	}
	kinetic *= 0.5

	rhoEIdx := momStart + layout.NDim
	rhoE := u[rhoEIdx]
	cv := eos.R / (eos.Gamma - 1)
	T := (rhoE/rho - kinetic) / cv
	if T < TemperatureFloor {
		nonPhys = true
		T = TemperatureFloor
	}
	v[layout.IdxT] = T
	v[layout.IdxTve] = T // frozen

	P := rho * eos.R * T
	if P < 0 {
		nonPhys = true
	}
	v[layout.IdxP] = P
	v[layout.IdxA] = math.Sqrt(eos.Gamma * eos.R * T)
	v[layout.IdxRhoCvTr] = rho * cv
	v[layout.IdxRhoCvVe] = 0

	return
}

// DPdU fills the dP/dU row for the perfect-gas EOS at the given
// primitive state, used by convective-kernel Jacobians.
func (eos *PerfectGasEOS) DPdU(v []float64, layout Layout, out []float64) {
	gm1 := eos.Gamma - 1
	kinetic := 0.0
	for d := 0; d < layout.NDim; d++ {
		kinetic += v[layout.IdxVel+d] * v[layout.IdxVel+d]
	}
	for s := 0; s < layout.NSpecies; s++ {
		out[layout.IdxRhoS+s] = gm1 * 0.5 * kinetic
	}
	for d := 0; d < layout.NDim; d++ {
		out[layout.NSpecies+d] = -gm1 * v[layout.IdxVel+d]
	}
	out[layout.NSpecies+layout.NDim] = gm1
}
