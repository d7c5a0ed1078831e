// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sobolev

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func TestBoundaryOfBoundary(t *testing.T) {
	markerA := []int{0, 1, 2}
	markerB := []int{2, 3}
	markerC := []int{2, 4}
	got := BoundaryOfBoundary([][]int{markerA, markerB, markerC})
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected only point 2 to be shared by >=2 markers, got %v", got)
	}
}

// TestRecoverDeltaPIdentity checks that ΔP = H^-1 . g when H is the
// identity, i.e. the normal-equations solve degenerates to g itself.
func TestRecoverDeltaPIdentity(t *testing.T) {
	H := [][]float64{{1, 0}, {0, 1}}
	g := []float64{3, -2}
	dP, err := RecoverDeltaP(H, g)
	if err != nil {
		t.Fatal(err)
	}
	chk.Array(t, "dP", 1e-12, dP, g)
}

func TestReducedHessianDiagonal(t *testing.T) {
	// P selects mesh nodes 0 and 1 directly as design variables.
	P := [][]float64{{1, 0}, {0, 1}}
	K := [][]float64{{4, 1}, {1, 3}}
	H := ReducedHessian(P, K)
	chk.Float64(t, "H00", 1e-12, H[0][0], 4)
	chk.Float64(t, "H11", 1e-12, H[1][1], 3)
	chk.Float64(t, "H01", 1e-12, H[0][1], 1)
}
