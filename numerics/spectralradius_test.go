// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numerics

import "testing"

func TestLocalTimeStepClipsToMax(t *testing.T) {
	acc := TimeStepAccumulator{MaxLambdaInv: 1e-6}
	dt := LocalTimeStep(acc, 1.0, 1.0, 0.01)
	if dt != 0.01 {
		t.Fatalf("expected clipped dt = 0.01, got %v", dt)
	}
}

func TestGlobalTimeStepReducesToMin(t *testing.T) {
	dt := GlobalTimeStep([]float64{0.5, 0.1, 0.3})
	if dt != 0.1 {
		t.Fatalf("expected min = 0.1, got %v", dt)
	}
}

func TestGlobalTimeStepEmpty(t *testing.T) {
	if dt := GlobalTimeStep(nil); dt != 0 {
		t.Fatalf("expected 0 for empty input, got %v", dt)
	}
}
