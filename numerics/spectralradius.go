// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numerics

import "math"

// TimeStepAccumulator accumulates MaxLambda_{Inv,Visc} over a node's
// incident edges and converts to a local time step (§4.4 step 4):
// dt = CFL * Vol / MaxLambda, clipped at MaxDeltaTime.
type TimeStepAccumulator struct {
	MaxLambdaInv  float64
	MaxLambdaVisc float64
}

// AddEdge folds in one edge's inviscid and (optional) viscous spectral
// radii.
func (t *TimeStepAccumulator) AddEdge(vi, vj []float64, nSpecies, nDim int, normal []float64, muAvg, kAvg, rhoAvg float64, prandtl float64) {
	t.MaxLambdaInv += specRadius(vi, vj, nSpecies, nDim, normal)
	if muAvg > 0 {
		t.MaxLambdaVisc += viscousSpectralRadius(normal, muAvg, kAvg, rhoAvg, prandtl)
	}
}

// viscousSpectralRadius implements a standard viscous spectral-radius
// estimate, lambda_v = (mu/Pr + mu) * |n|^2 / rho, used to bound the
// viscous time-step restriction alongside the inviscid one.
func viscousSpectralRadius(normal []float64, mu, k, rho, prandtl float64) float64 {
	area2 := 0.0
	for _, n := range normal {
		area2 += n * n
	}
	if rho <= 0 {
		return 0
	}
	coeff := mu
	if prandtl > 0 {
		coeff += k / prandtl
	}
	return coeff * area2 / rho
}

// LocalTimeStep computes dt for one node given its accumulated spectral
// radii, cell volume, CFL number and an optional ceiling (§4.4 step 4;
// §5's TALTS uses this per time-level bucket rather than globally).
func LocalTimeStep(t TimeStepAccumulator, vol, cfl, maxDeltaTime float64) float64 {
	maxLambda := t.MaxLambdaInv + t.MaxLambdaVisc
	if maxLambda <= 0 {
		return maxDeltaTime
	}
	dt := cfl * vol / maxLambda
	if maxDeltaTime > 0 && dt > maxDeltaTime {
		dt = maxDeltaTime
	}
	return dt
}

// GlobalTimeStep reduces a slice of per-node local time steps to the
// minimum, for non-time-accurate-local-stepping (steady global dt)
// marching (§4.4, §6 MarchingSteady without TALTS).
func GlobalTimeStep(dts []float64) float64 {
	min := math.Inf(1)
	for _, dt := range dts {
		if dt < min {
			min = dt
		}
	}
	if math.IsInf(min, 1) {
		return 0
	}
	return min
}
