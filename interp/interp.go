// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package interp implements the two inter-mesh interpolation flavors of
// §4.2: nearest-neighbor (globally gathered candidate lists) and
// isoparametric (project-to-face-plane + barycentric-like coefficients).
package interp

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// DonorFace is one candidate donor face: its corner coordinates
// (ndim x nverts) and a global identifier used to report the chosen
// donor back to the caller.
type DonorFace struct {
	ID     int
	Coords [][]float64 // [ndim][nverts]
}

// Weights describes how a target point is built from donor data:
// either (one donor, coeff 1) from the nearest-neighbor path, or
// (several donors, barycentric-like coefficients) from the isoparametric
// path.
type Weights struct {
	DonorFaceID int
	DonorVertex []int     // local vertex indices into the donor face used
	Coeff       []float64 // matches DonorVertex; sums to 1 within 1e-13
	NearestOnly bool       // true when the nearest-neighbor fallback fired
}

// NearestNeighbor picks, among a globally gathered candidate list, the
// single closest donor face vertex to target and returns a Weights with
// a single unit coefficient.
func NearestNeighbor(target []float64, candidates []DonorFace) (w Weights, err error) {
	if len(candidates) == 0 {
		return w, chk.Err("interp: nearest-neighbor has no candidate donor faces")
	}
	bestDist := math.Inf(1)
	bestFace, bestVert := -1, -1
	for _, f := range candidates {
		nverts := len(f.Coords[0])
		for v := 0; v < nverts; v++ {
			d := 0.0
			for dim := range target {
				diff := target[dim] - f.Coords[dim][v]
				d += diff * diff
			}
			if d < bestDist {
				bestDist, bestFace, bestVert = d, f.ID, v
			}
		}
	}
	w.DonorFaceID = bestFace
	w.DonorVertex = []int{bestVert}
	w.Coeff = []float64{1}
	w.NearestOnly = true
	return w, nil
}

// FallbackTol is the tunable isoparametric-coefficient range outside
// which the projection is considered to have missed the donor face and
// the nearest-neighbor fallback fires (Open Question #3 in SPEC_FULL.md;
// preserved from the original hardcoded [-0.1, 1.1] but exposed here as a
// field so callers can tune it).
type FallbackTol struct {
	Lo, Hi float64
}

// DefaultFallbackTol matches the value the original implementation
// hardcodes.
var DefaultFallbackTol = FallbackTol{Lo: -0.1, Hi: 1.1}

// Isoparametric projects target onto the plane of the nearest donor face,
// then solves for barycentric-like coefficients via the normal equations
// of a Vandermonde-style system built from the face's corner
// coordinates (a reduced-QR-equivalent least-squares solve using
// gosl/la's dense primitives). If any resulting coefficient falls outside
// tol, it falls back to nearest-neighbor on that face's vertices.
func Isoparametric(target []float64, nearestFace DonorFace, tol FallbackTol) (w Weights, err error) {
	ndim := len(target)
	nverts := len(nearestFace.Coords[0])
	if nverts < ndim {
		return w, chk.Err("interp: donor face has fewer vertices (%d) than dimensions (%d)", nverts, ndim)
	}

	// project target to the face plane: subtract the component along the
	// face normal (approximated here by the best-fit plane normal from
	// the first three non-collinear corners).
	proj := projectToPlane(target, nearestFace.Coords)

	// Vandermonde-style system: [coords; 1...1] * coeff = [proj; 1]
	// solved via normal equations (A^T A) coeff = A^T b.
	A := la.MatAlloc(ndim+1, nverts)
	for v := 0; v < nverts; v++ {
		for d := 0; d < ndim; d++ {
			A[d][v] = nearestFace.Coords[d][v]
		}
		A[ndim][v] = 1
	}
	b := make([]float64, ndim+1)
	copy(b, proj)
	b[ndim] = 1

	AtA := la.MatAlloc(nverts, nverts)
	la.MatTrMul3(AtA, 1, A, A) // AtA := A^T * A
	Atb := make([]float64, nverts)
	la.MatTrVecMulAdd(Atb, 1, A, b)

	AtAinv := la.MatAlloc(nverts, nverts)
	_, err = la.MatInv(AtAinv, AtA, 1e-14)
	if err != nil {
		return w, chk.Err("interp: isoparametric least-squares solve failed (singular normal-equations matrix): %v", err)
	}
	coeff := make([]float64, nverts)
	la.MatVecMul(coeff, 1, AtAinv, Atb)

	for _, c := range coeff {
		if c < tol.Lo || c > tol.Hi {
			return nearestNeighborOnFace(target, nearestFace)
		}
	}

	w.DonorFaceID = nearestFace.ID
	w.DonorVertex = make([]int, nverts)
	w.Coeff = coeff
	for v := range w.DonorVertex {
		w.DonorVertex[v] = v
	}
	return w, nil
}

func nearestNeighborOnFace(target []float64, f DonorFace) (w Weights, err error) {
	return NearestNeighbor(target, []DonorFace{f})
}

// projectToPlane projects point p onto the plane spanned by the corners
// of a donor face (least-squares plane through the corner centroid using
// the face's first two edge vectors as an in-plane basis).
func projectToPlane(p []float64, corners [][]float64) []float64 {
	ndim := len(p)
	nverts := len(corners[0])
	centroid := make([]float64, ndim)
	for d := 0; d < ndim; d++ {
		for v := 0; v < nverts; v++ {
			centroid[d] += corners[d][v]
		}
		centroid[d] /= float64(nverts)
	}
	if ndim == 2 || nverts < 3 {
		return p // no out-of-plane component to remove in 2D (edges are lines)
	}
	e1 := sub(col(corners, 1), col(corners, 0))
	e2 := sub(col(corners, 2), col(corners, 0))
	n := cross3(e1, e2)
	nn := la.VecNorm(n)
	if nn < 1e-14 {
		return p
	}
	for d := range n {
		n[d] /= nn
	}
	rel := sub(p, centroid)
	dist := dot(rel, n)
	out := make([]float64, ndim)
	for d := range out {
		out[d] = p[d] - dist*n[d]
	}
	return out
}

func col(m [][]float64, j int) []float64 {
	c := make([]float64, len(m))
	for i := range m {
		c[i] = m[i][j]
	}
	return c
}
func sub(a, b []float64) []float64 {
	r := make([]float64, len(a))
	for i := range a {
		r[i] = a[i] - b[i]
	}
	return r
}
func dot(a, b []float64) float64 {
	s := 0.0
	for i := range a {
		s += a[i] * b[i]
	}
	return s
}
func cross3(a, b []float64) []float64 {
	return []float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}
