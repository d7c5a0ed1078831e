// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sobolev

import (
	"testing"

	"github.com/cpmech/gofem-cfd/mesh"
	"github.com/cpmech/gosl/chk"
)

// TestElementStiffnessSymmetric checks that the assembled local
// stiffness matrix of a unit-square linear quad is symmetric, since the
// operator ∇ϕ_i·∇ϕ_j + ϕ_i·ϕ_j is symmetric in (i,j) by construction.
func TestElementStiffnessSymmetric(t *testing.T) {
	cat := mesh.NewStandardElementCatalog()
	se, err := cat.Get(mesh.VTKQuad, 1)
	if err != nil {
		t.Fatal(err)
	}
	x := [][]float64{{0, 1, 1, 0}, {0, 0, 1, 1}}
	Ke, err := ElementStiffness(se, x, false)
	if err != nil {
		t.Fatal(err)
	}
	for i := range Ke {
		for j := range Ke[i] {
			if diff := Ke[i][j] - Ke[j][i]; diff > 1e-12 || diff < -1e-12 {
				t.Fatalf("stiffness not symmetric at (%d,%d): %v vs %v", i, j, Ke[i][j], Ke[j][i])
			}
		}
	}
}

// TestSobolevIdentity covers §8 invariant 8: a constant raw sensitivity
// field over a domain with zero-Neumann boundary (no Dirichlet points)
// smooths to the same constant at every node, since z=c solves
// ∫∇c·∇ϕ+cϕ = ∫cϕ for any test function ϕ.
func TestSobolevIdentity(t *testing.T) {
	cat := mesh.NewStandardElementCatalog()
	se, err := cat.Get(mesh.VTKQuad, 1)
	if err != nil {
		t.Fatal(err)
	}
	x := [][]float64{{0, 1, 1, 0}, {0, 0, 1, 1}}
	conn := [][]int{{0, 1, 2, 3}}

	sm, err := NewSmoother(4, conn,
		func(e int) ([][]float64, error) { return ElementStiffness(se, x, false) },
		func(e int, sLocal []float64) ([]float64, error) { return ElementLoad(se, x, sLocal, false) },
		nil)
	if err != nil {
		t.Fatal(err)
	}

	c := 2.5
	s := []float64{c, c, c, c}
	z, err := sm.Solve(s)
	if err != nil {
		t.Fatal(err)
	}
	for _, zi := range z {
		chk.Float64(t, "z_i", 1e-8, zi, c)
	}
}
