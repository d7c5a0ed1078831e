// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package numerics

import "math"

// Limiter computes a per-component limiter value for one node, given the
// node's gradient-projected difference to a neighbor and the node's
// Solution_{Max,Min} bracket accumulated over all incident edges (§4.4
// step 3). Limiters must be identical on both edges sharing a node
// (spec.md §4.3).
type Limiter interface {
	Value(uNode, uMax, uMin, projected, vol float64) float64
}

// VenkatakrishnanLimiter implements ε² = (K·L_ref)³ smoothing (§4.3).
type VenkatakrishnanLimiter struct {
	K      float64
	LRef   float64
}

// NewVenkatakrishnanLimiter defaults LRef to the freestream reference
// length when refLength is zero, mirroring the original's freestream
// fallback (SPEC_FULL.md supplemented feature).
func NewVenkatakrishnanLimiter(k, refLength, freestreamRefLength float64) *VenkatakrishnanLimiter {
	if refLength <= 0 {
		refLength = freestreamRefLength
	}
	return &VenkatakrishnanLimiter{K: k, LRef: refLength}
}

// Value implements the Venkatakrishnan limiter function.
func (l *VenkatakrishnanLimiter) Value(uNode, uMax, uMin, projected, vol float64) float64 {
	eps2 := math.Pow(l.K*l.LRef, 3)
	var delta2, deltaMinus float64
	if projected > 0 {
		delta2 = uMax - uNode
	} else if projected < 0 {
		delta2 = uMin - uNode
	} else {
		return 1
	}
	deltaMinus = projected
	num := (delta2*delta2+eps2)*deltaMinus + 2*deltaMinus*deltaMinus*delta2
	den := delta2*delta2 + 2*deltaMinus*deltaMinus + delta2*deltaMinus + eps2
	if den == 0 {
		return 0
	}
	return num / (den * deltaMinus)
}

// MinmodLimiter implements the classical minmod slope limiter.
type MinmodLimiter struct{}

// Value implements the Limiter interface for minmod.
func (MinmodLimiter) Value(uNode, uMax, uMin, projected, vol float64) float64 {
	var bound float64
	if projected > 0 {
		bound = uMax - uNode
	} else if projected < 0 {
		bound = uMin - uNode
	} else {
		return 1
	}
	if projected == 0 {
		return 1
	}
	ratio := bound / projected
	if ratio < 1 {
		if ratio < 0 {
			return 0
		}
		return ratio
	}
	return 1
}

// SolutionBracket accumulates Solution_{Max,Min} over all edges incident
// to a node (§4.4 step 3): reduction over each edge.
type SolutionBracket struct {
	Max, Min []float64
}

// NewSolutionBracket initializes Max/Min to u0 (the node's own value).
func NewSolutionBracket(u0 []float64) *SolutionBracket {
	b := &SolutionBracket{Max: make([]float64, len(u0)), Min: make([]float64, len(u0))}
	copy(b.Max, u0)
	copy(b.Min, u0)
	return b
}

// Update folds in a neighbor's value uNeighbor.
func (b *SolutionBracket) Update(uNeighbor []float64) {
	for k, v := range uNeighbor {
		if v > b.Max[k] {
			b.Max[k] = v
		}
		if v < b.Min[k] {
			b.Min[k] = v
		}
	}
}
