// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numerics

// ViscousFlux implements the viscous flux kernel: Fickian species
// diffusion plus Fourier conduction, with separate translational-
// rotational and vibrational-electronic conductivities (§4.3). Gradients
// are face-averaged (corrected, not simple averaging of the two nodal
// gradients, would require the edge-normal correction of §4.3's
// "optional" note; this core uses the simple average, matching the
// teacher's unmodified face-average gradient reconstruction idiom).
type ViscousFlux struct{}

// ComputeResidual implements ViscousKernel. It ADDS into res.ResVisc —
// callers that also invoke a ConvectiveKernel must zero only once at
// the start of an edge pass, not between the two kernels, to preserve
// conservation (§8 invariant 1): the same face contributes -Res to the
// other side via the caller's scatter, not via this kernel.
func (ViscousFlux) ComputeResidual(in *EdgeInputs, nVar, nDim, nSpecies int, res *Result) {
	velStart := nSpecies + 3

	muAvg := 0.5 * (in.LaminarViscosityI + in.LaminarViscosityJ)
	kTrAvg := 0.5 * (in.ThermalConductivityI + in.ThermalConductivityJ)
	kVeAvg := 0.5 * (in.ThermalConductivityVeI + in.ThermalConductivityVeJ)

	gradV := make([][]float64, len(in.GradVi))
	for k := range gradV {
		gradV[k] = make([]float64, nDim)
		for d := 0; d < nDim; d++ {
			gradV[k][d] = 0.5 * (in.GradVi[k][d] + in.GradVj[k][d])
		}
	}

	tau := make([][]float64, nDim)
	for d := range tau {
		tau[d] = make([]float64, nDim)
	}
	divV := 0.0
	for d := 0; d < nDim; d++ {
		divV += gradV[velStart+d][d]
	}
	for a := 0; a < nDim; a++ {
		for b := 0; b < nDim; b++ {
			dUa_dxb := gradV[velStart+a][b]
			dUb_dxa := gradV[velStart+b][a]
			tau[a][b] = muAvg * (dUa_dxb + dUb_dxa)
			if a == b {
				tau[a][b] -= (2.0 / 3.0) * muAvg * divV
			}
		}
	}

	normal := in.Normal
	velMid := make([]float64, nDim)
	for d := 0; d < nDim; d++ {
		velMid[d] = 0.5 * (in.Vi[velStart+d] + in.Vj[velStart+d])
	}

	for a := 0; a < nDim; a++ {
		visc := 0.0
		for b := 0; b < nDim; b++ {
			visc += tau[a][b] * normal[b]
		}
		res.ResVisc[nSpecies+a] += visc
	}

	energyFlux := 0.0
	for a := 0; a < nDim; a++ {
		work := 0.0
		for b := 0; b < nDim; b++ {
			work += tau[a][b] * normal[b]
		}
		energyFlux += velMid[a] * work
	}

	idxT := nSpecies + 1
	idxTve := nSpecies + 2
	gradTn, gradTven := 0.0, 0.0
	for d := 0; d < nDim; d++ {
		gradTn += gradV[idxT][d] * normal[d]
		gradTven += gradV[idxTve][d] * normal[d]
	}
	energyFlux += kTrAvg*gradTn + kVeAvg*gradTven

	for s := 0; s < nSpecies; s++ {
		diffCoeff := 0.5 * (in.DiffusionCoeffI[s] + in.DiffusionCoeffJ[s])
		gradRhoSn := 0.0
		for d := 0; d < nDim; d++ {
			gradRhoSn += gradV[s][d] * normal[d]
		}
		diffFlux := diffCoeff * gradRhoSn
		res.ResVisc[s] += diffFlux
		// species diffusion carries its own formation enthalpy into the
		// energy equation in a full EOS; this core omits the
		// enthalpy-of-formation term per the single-bulk-energy EOS
		// simplification recorded alongside variables.PerfectGasEOS.
	}
	res.ResVisc[nSpecies+nDim] += energyFlux
}
