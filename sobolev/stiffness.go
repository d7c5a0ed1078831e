// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package sobolev implements the Sobolev gradient-smoothing elliptic
// solve and reduced-Hessian construction of §4.6, grounded on the same
// standard-element integration machinery used for mesh face metrics
// (mesh.StandardElement.CalcAtIP) and on CGradientSmoothingSolver.cpp
// in original_source for the stiffness operator statement and the
// strong-Dirichlet "boundary of the boundary" condition.
package sobolev

import (
	"github.com/cpmech/gofem-cfd/mesh"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// quadrature point (natural coordinates + weight).
type ipoint struct{ r, s, t, w float64 }

// integration rules for the element types actually present in
// mesh.NewStandardElementCatalog (§4.6: "element types {Line, Triangle
// (1-pt & 3-pt rules), Quadrilateral, Tetrahedron (1-pt & 4-pt),
// Hexahedron, Pyramid, Prism}" — this core's mesh catalog only
// populates the P1 Line/Triangle/Quad/Tetra/Hex standard elements, so
// Pyramid and Prism rules are not implemented here; see DESIGN.md).
func integrationRule(vtkType int, highOrder bool) []ipoint {
	switch vtkType {
	case mesh.VTKLine:
		g := 1.0 / 1.7320508075688772 // 1/sqrt(3)
		return []ipoint{{r: -g, w: 1}, {r: g, w: 1}}
	case mesh.VTKTriangle:
		if !highOrder {
			return []ipoint{{r: 1.0 / 3, s: 1.0 / 3, w: 0.5}}
		}
		return []ipoint{
			{r: 1.0 / 6, s: 1.0 / 6, w: 1.0 / 6},
			{r: 2.0 / 3, s: 1.0 / 6, w: 1.0 / 6},
			{r: 1.0 / 6, s: 2.0 / 3, w: 1.0 / 6},
		}
	case mesh.VTKQuad:
		g := 1.0 / 1.7320508075688772
		var pts []ipoint
		for _, rr := range []float64{-g, g} {
			for _, ss := range []float64{-g, g} {
				pts = append(pts, ipoint{r: rr, s: ss, w: 1})
			}
		}
		return pts
	case mesh.VTKTetra:
		if !highOrder {
			return []ipoint{{r: 0.25, s: 0.25, t: 0.25, w: 1.0 / 6}}
		}
		a, b := 0.5854101966249685, 0.1381966011250105
		w := (1.0 / 6) / 4
		return []ipoint{
			{r: b, s: b, t: b, w: w},
			{r: a, s: b, t: b, w: w},
			{r: b, s: a, t: b, w: w},
			{r: b, s: b, t: a, w: w},
		}
	case mesh.VTKHexahedron:
		g := 1.0 / 1.7320508075688772
		var pts []ipoint
		for _, rr := range []float64{-g, g} {
			for _, ss := range []float64{-g, g} {
				for _, tt := range []float64{-g, g} {
					pts = append(pts, ipoint{r: rr, s: ss, t: tt, w: 1})
				}
			}
		}
		return pts
	default:
		return nil
	}
}

// ElementStiffness assembles the local ∫(∇ϕ_i·∇ϕ_j + ϕ_i·ϕ_j) matrix
// for one element, given its standard element and nodal coordinates
// x[gndim][nverts]. highOrder selects the richer rule for elements that
// have one (triangle, tetrahedron); it has no effect on the others.
func ElementStiffness(se *mesh.StandardElement, x [][]float64, highOrder bool) ([][]float64, error) {
	n := se.NVerts
	Ke := la.MatAlloc(n, n)
	for _, ip := range integrationRule(se.VTKType, highOrder) {
		J, err := se.CalcAtIP(x, ip.r, ip.s, ip.t)
		if err != nil {
			return nil, chk.Err("sobolev: %v", err)
		}
		wdet := ip.w * J
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				grad := 0.0
				for d := 0; d < se.Gndim; d++ {
					grad += se.G[i][d] * se.G[j][d]
				}
				Ke[i][j] += wdet * (grad + se.S[i]*se.S[j])
			}
		}
	}
	return Ke, nil
}

// ElementLoad assembles the local ∫ s·ϕ_i load vector for one element,
// interpolating the nodal raw-sensitivity values sNodal (local order)
// at each integration point with the same basis used for the
// stiffness operator, so the pair (ElementStiffness, ElementLoad)
// always discretizes the weak form consistently (§4.6).
func ElementLoad(se *mesh.StandardElement, x [][]float64, sNodal []float64, highOrder bool) ([]float64, error) {
	n := se.NVerts
	fe := make([]float64, n)
	for _, ip := range integrationRule(se.VTKType, highOrder) {
		J, err := se.CalcAtIP(x, ip.r, ip.s, ip.t)
		if err != nil {
			return nil, chk.Err("sobolev: %v", err)
		}
		sAtIP := 0.0
		for a := 0; a < n; a++ {
			sAtIP += se.S[a] * sNodal[a]
		}
		wdet := ip.w * J
		for i := 0; i < n; i++ {
			fe[i] += wdet * se.S[i] * sAtIP
		}
	}
	return fe, nil
}

// AssembleGlobal scatters every element's local stiffness into a global
// triplet, where conn[e] lists the global point indices of element e's
// standard-element-local vertices in order.
func AssembleGlobal(n int, conn [][]int, elemStiff func(e int) ([][]float64, error)) (*la.Triplet, error) {
	var nnz int
	for _, c := range conn {
		nnz += len(c) * len(c)
	}
	Kb := new(la.Triplet)
	Kb.Init(n, n, nnz)
	for e, c := range conn {
		Ke, err := elemStiff(e)
		if err != nil {
			return nil, err
		}
		for a, ga := range c {
			for b, gb := range c {
				Kb.Put(ga, gb, Ke[a][b])
			}
		}
	}
	return Kb, nil
}

// AssembleLoad scatters every element's local load vector (ElementLoad)
// into a global right-hand side of length n, given the full nodal
// sensitivity field s indexed globally.
func AssembleLoad(n int, conn [][]int, s []float64, elemLoad func(e int, sLocal []float64) ([]float64, error)) ([]float64, error) {
	b := make([]float64, n)
	for e, c := range conn {
		sLocal := make([]float64, len(c))
		for a, ga := range c {
			sLocal[a] = s[ga]
		}
		fe, err := elemLoad(e, sLocal)
		if err != nil {
			return nil, err
		}
		for a, ga := range c {
			b[ga] += fe[a]
		}
	}
	return b, nil
}
