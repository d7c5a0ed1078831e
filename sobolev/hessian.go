// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sobolev

import (
	"bytes"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/la"
)

// ReducedHessian computes H = P . K . Pᵀ (§4.6), where K is the dense
// gradient-smoothing stiffness operator (already solved down to a
// mesh-node-sized matrix by the caller, e.g. by smoothing one unit
// impulse per design variable) and P is the nDesignVars x nMeshNodes
// parameterization Jacobian (design variable -> mesh node displacement).
func ReducedHessian(P [][]float64, K [][]float64) [][]float64 {
	nDV := len(P)
	nMesh := len(K)
	PK := la.MatAlloc(nDV, nMesh)
	for i := 0; i < nDV; i++ {
		for k := 0; k < nMesh; k++ {
			sum := 0.0
			for m := 0; m < nMesh; m++ {
				sum += P[i][m] * K[m][k]
			}
			PK[i][k] = sum
		}
	}
	H := la.MatAlloc(nDV, nDV)
	for i := 0; i < nDV; i++ {
		for j := 0; j < nDV; j++ {
			sum := 0.0
			for m := 0; m < nMesh; m++ {
				sum += PK[i][m] * P[j][m]
			}
			H[i][j] = sum
		}
	}
	return H
}

// WriteCSV writes H in CSV form, one row per line (§4.6: "H ... is
// written to a CSV-formatted file").
func WriteCSV(path string, H [][]float64) error {
	var buf bytes.Buffer
	for _, row := range H {
		for k, v := range row {
			if k > 0 {
				buf.WriteString(",")
			}
			buf.WriteString(io.Sf("%.15e", v))
		}
		buf.WriteString("\n")
	}
	io.WriteFileV(path, &buf)
	return nil
}

// RecoverDeltaP solves H.ΔP = g (the current raw-gradient projection)
// via the normal equations (Hᵀ.H).ΔP = Hᵀ.g, the same dense-inverse
// idiom solver/gradients.go's WLSGradient uses for its small
// fixed-size system, rather than an unconfirmed dedicated QR routine.
func RecoverDeltaP(H [][]float64, g []float64) ([]float64, error) {
	n := len(H)
	if n == 0 || len(g) != n {
		return nil, chk.Err("sobolev: RecoverDeltaP dimension mismatch: H is %dx%d, g has length %d", n, n, len(g))
	}
	HtH := la.MatAlloc(n, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += H[k][i] * H[k][j]
			}
			HtH[i][j] = sum
		}
	}
	Htg := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		for k := 0; k < n; k++ {
			sum += H[k][i] * g[k]
		}
		Htg[i] = sum
	}
	HtHinv := la.MatAlloc(n, n)
	if _, err := la.MatInv(HtHinv, HtH, 1e-14); err != nil {
		return nil, chk.Err("sobolev: reduced Hessian is singular: %v", err)
	}
	dP := make([]float64, n)
	la.MatVecMul(dP, 1, HtHinv, Htg)
	return dP, nil
}
