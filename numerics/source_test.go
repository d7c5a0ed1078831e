// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numerics

import "testing"

func TestAxisymmetricSourceDisabledOnAxis(t *testing.T) {
	a := AxisymmetricSource{Enabled: true}
	res := make([]float64, 4)
	ok := a.Evaluate([]float64{1, 1, 1, 100}, []float64{1, 1, 300, 300, 1, 1, 1000, 300, 1, 0}, 0, 1, 2, res)
	if !ok {
		t.Fatalf("expected no-op success on the axis")
	}
	for _, r := range res {
		if r != 0 {
			t.Fatalf("expected zero source on the axis, got %v", res)
		}
	}
}

func TestChemistrySourceConservesSpecies(t *testing.T) {
	c := ChemistrySource{
		Rgas: 8.314,
		Reactions: []ArrheniusReaction{
			{A: 1e3, B: 0, Ea: 1000, Reactant: 0, Product: 1},
		},
	}
	u := []float64{1.0, 0.0}
	v := []float64{1.0, 0.0, 1.0, 2000.0}
	res := make([]float64, 2)
	rejected := c.Evaluate(u, v, 2, res)
	if rejected != 0 {
		t.Fatalf("expected no rejections, got %d", rejected)
	}
	if res[0]+res[1] != 0 {
		t.Fatalf("expected species-mass-conserving source, got %v", res)
	}
	if res[0] >= 0 {
		t.Fatalf("expected reactant consumption, got %v", res[0])
	}
}

func TestVibrationalRelaxationNoOpWhenDisabled(t *testing.T) {
	r := VibrationalRelaxationSource{}
	res := make([]float64, 1)
	ok := r.Evaluate(1.0, 500, 300, res)
	if !ok || res[0] != 0 {
		t.Fatalf("expected no-op when disabled, got ok=%v res=%v", ok, res)
	}
}
