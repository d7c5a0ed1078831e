// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package variables

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

// TestSetPrimVarCompressible covers §8 invariant 5: SetPrimVar_Compressible
// returns true iff a physical bound is violated.
func TestSetPrimVarCompressible(t *testing.T) {
	layout := NewLayout(1, 2, false)
	store := NewStore(layout, 1, false)
	eos := &PerfectGasEOS{Gamma: 1.4, R: 287.0}

	nd := &store.Nodes[0]
	nd.U[layout.IdxRhoS] = 1.0
	nd.U[layout.NSpecies] = 1.0   // rho*u
	nd.U[layout.NSpecies+1] = 0.0 // rho*v
	nd.U[layout.NSpecies+layout.NDim] = 300000.0 // rho*E, large enough for positive T

	nonPhys, err := store.SetPrimVar_Compressible(0, eos)
	if err != nil {
		t.Fatal(err)
	}
	if nonPhys {
		t.Fatalf("expected a physical state, got non-physical")
	}
	chk.Float64(t, "rho", 1e-15, nd.V[layout.IdxRho], 1.0)

	// now violate rho_s < 0
	nd.U[layout.IdxRhoS] = -1.0
	nonPhys, err = store.SetPrimVar_Compressible(0, eos)
	if err != nil {
		t.Fatal(err)
	}
	if !nonPhys {
		t.Fatalf("expected non-physical state for negative species density")
	}
}

// TestPrimitiveToConservativeRoundTrip checks that converting a
// ToPrimitive output back with PrimitiveToConservative recovers the
// original conservative state, for a perfect-gas ghost state carrying
// the donor node's cached RhoCvTr.
func TestPrimitiveToConservativeRoundTrip(t *testing.T) {
	layout := NewLayout(1, 2, false)
	eos := &PerfectGasEOS{Gamma: 1.4, R: 287.0}

	u := []float64{1.0, 1.0, 0.0, 300000.0}
	v := make([]float64, layout.NPrim)
	if nonPhys := eos.ToPrimitive(u, v, layout); nonPhys {
		t.Fatalf("expected physical state")
	}

	uBack := make([]float64, layout.NCons)
	PrimitiveToConservative(v, layout, uBack)
	chk.Array(t, "u round-trip", 1e-9, uBack, u)
}

func TestBoundaryVertexMapIsNoOpWhenUnregistered(t *testing.T) {
	layout := NewLayout(1, 2, false)
	store := NewStore(layout, 1, false)
	store.SetBoundaryValue(42, []float64{1, 2, 3}) // no-op: 42 never registered
	if v := store.BoundaryValue(42); v != nil {
		t.Fatalf("expected nil for unregistered boundary vertex, got %v", v)
	}
	idx := store.RegisterBoundaryVertex(42, 3)
	if idx != 0 {
		t.Fatalf("expected first registration to get index 0, got %d", idx)
	}
	store.SetBoundaryValue(42, []float64{1, 2, 3})
	chk.Array(t, "boundary[42]", 1e-15, store.BoundaryValue(42), []float64{1, 2, 3})
}
