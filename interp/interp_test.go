// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package interp

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// TestIsoparametricUnitTriangle is Scenario D of spec.md §8: unit
// triangle (0,0,0),(1,0,0),(0,1,0), target (0.25,0.25,0.0) expects
// coefficients (0.5, 0.25, 0.25).
func TestIsoparametricUnitTriangle(t *testing.T) {
	face := DonorFace{
		ID: 1,
		Coords: [][]float64{
			{0, 1, 0},
			{0, 0, 1},
			{0, 0, 0},
		},
	}
	target := []float64{0.25, 0.25, 0.0}
	w, err := Isoparametric(target, face, DefaultFallbackTol)
	if err != nil {
		t.Fatal(err)
	}
	if w.NearestOnly {
		t.Fatalf("expected isoparametric projection to succeed, got nearest-neighbor fallback")
	}
	sum := 0.0
	for _, c := range w.Coeff {
		sum += c
	}
	chk.Float64(t, "sum(coeff)", 1e-12, sum, 1.0)
	chk.Float64(t, "coeff[0]", 1e-10, w.Coeff[0], 0.5)
	chk.Float64(t, "coeff[1]", 1e-10, w.Coeff[1], 0.25)
	chk.Float64(t, "coeff[2]", 1e-10, w.Coeff[2], 0.25)
}

// TestIsoparametricFallback covers the outside-face nearest-neighbor path
// (§8 invariant 4): exactly one coefficient equals 1.
func TestIsoparametricFallback(t *testing.T) {
	face := DonorFace{
		ID: 1,
		Coords: [][]float64{
			{0, 1, 0},
			{0, 0, 1},
			{0, 0, 0},
		},
	}
	target := []float64{5, 5, 0} // far outside the face
	w, err := Isoparametric(target, face, DefaultFallbackTol)
	if err != nil {
		t.Fatal(err)
	}
	if !w.NearestOnly {
		t.Fatalf("expected nearest-neighbor fallback for an out-of-face target")
	}
	chk.Float64(t, "fallback coeff", 1e-15, w.Coeff[0], 1.0)
}
