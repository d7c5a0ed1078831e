// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/cpmech/gofem-cfd/config"
	"github.com/cpmech/gosl/la"
)

// GreenGaussEdge accumulates one edge's contribution to the Green-Gauss
// gradient of every primitive component at both incident nodes:
// grad += 0.5*(Vi+Vj) (x) n / Vol, summed over all edges incident to a
// node and divided by the node's dual volume by the caller (§4.4 step
// 1, GradientGreenGauss).
func GreenGaussEdge(vi, vj []float64, normal []float64, gradI, gradJ [][]float64) {
	nDim := len(normal)
	for k := range vi {
		avg := 0.5 * (vi[k] + vj[k])
		for d := 0; d < nDim; d++ {
			gradI[k][d] += avg * normal[d]
			gradJ[k][d] -= avg * normal[d]
		}
	}
}

// FinalizeGreenGauss divides the accumulated face sums by the node's
// dual volume.
func FinalizeGreenGauss(grad [][]float64, vol float64) {
	if vol <= 0 {
		return
	}
	for k := range grad {
		for d := range grad[k] {
			grad[k][d] /= vol
		}
	}
}

// WLSGradient implements the weighted-least-squares gradient: solves
// the small normal-equations system (Aᵀ·W·A)·grad = Aᵀ·W·Δv for every
// primitive component, using the same dense-inverse idiom as
// interp.Isoparametric (la.MatInv + la.MatVecMul) since the system size
// is fixed at nDim (§4.4 step 1, GradientWLS).
func WLSGradient(neighborDeltaX [][]float64, neighborDeltaV [][]float64, nDim, nVar int) [][]float64 {
	AtA := la.MatAlloc(nDim, nDim)
	for _, dx := range neighborDeltaX {
		w := weight(dx)
		for a := 0; a < nDim; a++ {
			for b := 0; b < nDim; b++ {
				AtA[a][b] += w * dx[a] * dx[b]
			}
		}
	}
	AtAinv := la.MatAlloc(nDim, nDim)
	la.MatInv(AtAinv, AtA, 1e-14)

	grad := make([][]float64, nVar)
	for k := 0; k < nVar; k++ {
		Atb := make([]float64, nDim)
		for e, dx := range neighborDeltaX {
			w := weight(dx)
			dv := neighborDeltaV[e][k]
			for a := 0; a < nDim; a++ {
				Atb[a] += w * dx[a] * dv
			}
		}
		grad[k] = make([]float64, nDim)
		la.MatVecMul(grad[k], 1, AtAinv, Atb)
	}
	return grad
}

func weight(dx []float64) float64 {
	d2 := 0.0
	for _, x := range dx {
		d2 += x * x
	}
	if d2 <= 1e-300 {
		return 0
	}
	return 1.0 / d2
}

// SelectGradient returns the gradient method named by config.Reader's
// Gradient() setting (§6), Green-Gauss or WLS, defaulting to Green-Gauss
// for any other value. It only returns the name; it calls neither
// gradient routine.
func SelectGradient(cfg config.Reader) string {
	switch cfg.Gradient() {
	case config.GradientGreenGauss, config.GradientWLS:
		return cfg.Gradient()
	default:
		return config.GradientGreenGauss
	}
}
