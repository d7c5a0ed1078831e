// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// VTK element type codes (subset actually exercised by this core).
const (
	VTKLine          = 3
	VTKTriangle      = 5
	VTKQuad          = 9
	VTKTetra         = 10
	VTKHexahedron    = 12
	VTKWedge         = 13 // prism
	VTKPyramid       = 14
)

// BasisFunc evaluates shape functions S and, when derivs is true, their
// natural-coordinate derivatives dSdR at (r,s,t).
type BasisFunc func(S []float64, dSdR [][]float64, r, s, t float64, derivs bool)

// StandardElement is the canonical reference element of a given VTK type
// and polynomial order: basis functions, integration rule and canonical
// face connectivity tables (Design Notes glossary: "Standard element").
type StandardElement struct {
	VTKType      int
	PolyOrder    int
	Gndim        int
	NVerts       int
	Func         BasisFunc
	FaceVTKType  int
	FaceNVerts   int
	FaceLocalV   [][]int // [nFaces][faceNVerts] canonical local vertex lists

	// scratch (not safe for concurrent use by multiple goroutines on the
	// same *StandardElement instance; callers take one per worker thread,
	// matching §5 "exclusive per thread" scratch policy)
	S     []float64
	dSdR  [][]float64
	dxdR  [][]float64
	dRdx  [][]float64
	G     [][]float64
}

// NewStandardElement allocates scratch buffers for repeated CalcAtIP calls.
func NewStandardElement(vtkType, polyOrder, gndim, nverts int, fn BasisFunc, faceVTKType, faceNVerts int, faceLocalV [][]int) *StandardElement {
	return &StandardElement{
		VTKType: vtkType, PolyOrder: polyOrder, Gndim: gndim, NVerts: nverts, Func: fn,
		FaceVTKType: faceVTKType, FaceNVerts: faceNVerts, FaceLocalV: faceLocalV,
		S:    make([]float64, nverts),
		dSdR: la.MatAlloc(nverts, gndim),
		dxdR: la.MatAlloc(gndim, gndim),
		dRdx: la.MatAlloc(gndim, gndim),
		G:    la.MatAlloc(nverts, gndim),
	}
}

// CalcAtIP computes S, dSdR, dxdR, dRdx (=inverse(dxdR)), G=dSdx and the
// determinant J at one integration point, given the element's coordinate
// matrix x[gndim][nverts]. Grounded on shp.Shape.CalcAtIp's
// derivative-of-basis / cross-product pattern.
func (o *StandardElement) CalcAtIP(x [][]float64, r, s, t float64) (J float64, err error) {
	o.Func(o.S, o.dSdR, r, s, t, true)
	for i := 0; i < len(x); i++ {
		for j := 0; j < o.Gndim; j++ {
			sum := 0.0
			for n := 0; n < o.NVerts; n++ {
				sum += x[i][n] * o.dSdR[n][j]
			}
			o.dxdR[i][j] = sum
		}
	}
	J, err = la.MatInv(o.dRdx, o.dxdR, 1e-14)
	if err != nil {
		return 0, chk.Err("mesh: degenerate element Jacobian: %v", err)
	}
	la.MatMul(o.G, 1, o.dSdR, o.dRdx)
	return
}

// FaceNormal computes the (unnormalized) outward face normal at a face
// integration point via the cross product of the face's parametric
// tangent vectors, mirroring shp.Shape.CalcAtFaceIp.
func (o *StandardElement) FaceNormal(x [][]float64, faceIdx int, faceS []float64, faceDSdR [][]float64) []float64 {
	verts := o.FaceLocalV[faceIdx]
	gndim := o.Gndim
	dxf := la.MatAlloc(gndim, gndim-1)
	for i := 0; i < gndim; i++ {
		for j := 0; j < gndim-1; j++ {
			sum := 0.0
			for k, n := range verts {
				sum += x[i][n] * faceDSdR[k][j]
			}
			dxf[i][j] = sum
		}
	}
	n := make([]float64, gndim)
	if gndim == 2 {
		n[0] = dxf[1][0]
		n[1] = -dxf[0][0]
		return n
	}
	n[0] = dxf[1][0]*dxf[2][1] - dxf[2][0]*dxf[1][1]
	n[1] = dxf[2][0]*dxf[0][1] - dxf[0][0]*dxf[2][1]
	n[2] = dxf[0][0]*dxf[1][1] - dxf[1][0]*dxf[0][1]
	return n
}

// StandardElementCatalog is keyed by (VTKType, PolyOrder) per §4.1.
type StandardElementCatalog struct {
	byKey map[stdKey]*StandardElement
}

type stdKey struct {
	vtkType, polyOrder int
}

// NewStandardElementCatalog returns a catalog pre-populated with the
// linear (P1) standard elements this core exercises: line, triangle,
// quadrilateral, tetrahedron and hexahedron.
func NewStandardElementCatalog() *StandardElementCatalog {
	c := &StandardElementCatalog{byKey: make(map[stdKey]*StandardElement)}
	c.Register(NewStandardElement(VTKLine, 1, 1, 2, lin2Func, 0, 1, nil))
	c.Register(NewStandardElement(VTKTriangle, 1, 2, 3, tri3Func, VTKLine, 2,
		[][]int{{0, 1}, {1, 2}, {2, 0}}))
	c.Register(NewStandardElement(VTKQuad, 1, 2, 4, quad4Func, VTKLine, 2,
		[][]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}))
	c.Register(NewStandardElement(VTKTetra, 1, 3, 4, tet4Func, VTKTriangle, 3,
		[][]int{{0, 1, 3}, {1, 2, 3}, {2, 0, 3}, {0, 2, 1}}))
	c.Register(NewStandardElement(VTKHexahedron, 1, 3, 8, hex8Func, VTKQuad, 4,
		[][]int{{0, 4, 7, 3}, {1, 2, 6, 5}, {0, 1, 5, 4}, {2, 3, 7, 6}, {0, 3, 2, 1}, {4, 5, 6, 7}}))
	return c
}

// Register adds or replaces a standard element in the catalog.
func (c *StandardElementCatalog) Register(se *StandardElement) {
	c.byKey[stdKey{se.VTKType, se.PolyOrder}] = se
}

// Get returns the standard element for (vtkType, polyOrder), or an error
// if it is not registered — a fatal configuration error per §4.1.
func (c *StandardElementCatalog) Get(vtkType, polyOrder int) (*StandardElement, error) {
	se, ok := c.byKey[stdKey{vtkType, polyOrder}]
	if !ok {
		return nil, chk.Err("mesh: no standard element registered for (vtkType=%d, polyOrder=%d)", vtkType, polyOrder)
	}
	return se, nil
}

// basis functions (P1) ///////////////////////////////////////////////////

func lin2Func(S []float64, dSdR [][]float64, r, s, t float64, derivs bool) {
	S[0] = 0.5 * (1 - r)
	S[1] = 0.5 * (1 + r)
	if !derivs {
		return
	}
	dSdR[0][0] = -0.5
	dSdR[1][0] = 0.5
}

func tri3Func(S []float64, dSdR [][]float64, r, s, t float64, derivs bool) {
	S[0] = 1 - r - s
	S[1] = r
	S[2] = s
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = -1, -1
	dSdR[1][0], dSdR[1][1] = 1, 0
	dSdR[2][0], dSdR[2][1] = 0, 1
}

func quad4Func(S []float64, dSdR [][]float64, r, s, t float64, derivs bool) {
	S[0] = 0.25 * (1 - r) * (1 - s)
	S[1] = 0.25 * (1 + r) * (1 - s)
	S[2] = 0.25 * (1 + r) * (1 + s)
	S[3] = 0.25 * (1 - r) * (1 + s)
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1] = -0.25*(1-s), -0.25*(1-r)
	dSdR[1][0], dSdR[1][1] = 0.25*(1-s), -0.25*(1+r)
	dSdR[2][0], dSdR[2][1] = 0.25*(1+s), 0.25*(1+r)
	dSdR[3][0], dSdR[3][1] = -0.25*(1+s), 0.25*(1-r)
}

func tet4Func(S []float64, dSdR [][]float64, r, s, t float64, derivs bool) {
	S[0] = 1 - r - s - t
	S[1] = r
	S[2] = s
	S[3] = t
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1], dSdR[0][2] = -1, -1, -1
	dSdR[1][0], dSdR[1][1], dSdR[1][2] = 1, 0, 0
	dSdR[2][0], dSdR[2][1], dSdR[2][2] = 0, 1, 0
	dSdR[3][0], dSdR[3][1], dSdR[3][2] = 0, 0, 1
}

func hex8Func(S []float64, dSdR [][]float64, r, s, t float64, derivs bool) {
	rp, rm := 1+r, 1-r
	sp, sm := 1+s, 1-s
	tp, tm := 1+t, 1-t
	S[0] = 0.125 * rm * sm * tm
	S[1] = 0.125 * rp * sm * tm
	S[2] = 0.125 * rp * sp * tm
	S[3] = 0.125 * rm * sp * tm
	S[4] = 0.125 * rm * sm * tp
	S[5] = 0.125 * rp * sm * tp
	S[6] = 0.125 * rp * sp * tp
	S[7] = 0.125 * rm * sp * tp
	if !derivs {
		return
	}
	dSdR[0][0], dSdR[0][1], dSdR[0][2] = -0.125*sm*tm, -0.125*rm*tm, -0.125*rm*sm
	dSdR[1][0], dSdR[1][1], dSdR[1][2] = 0.125*sm*tm, -0.125*rp*tm, -0.125*rp*sm
	dSdR[2][0], dSdR[2][1], dSdR[2][2] = 0.125*sp*tm, 0.125*rp*tm, -0.125*rp*sp
	dSdR[3][0], dSdR[3][1], dSdR[3][2] = -0.125*sp*tm, 0.125*rm*tm, -0.125*rm*sp
	dSdR[4][0], dSdR[4][1], dSdR[4][2] = -0.125*sm*tp, -0.125*rm*tp, 0.125*rm*sm
	dSdR[5][0], dSdR[5][1], dSdR[5][2] = 0.125*sm*tp, -0.125*rp*tp, 0.125*rp*sm
	dSdR[6][0], dSdR[6][1], dSdR[6][2] = 0.125*sp*tp, 0.125*rp*tp, 0.125*rp*sp
	dSdR[7][0], dSdR[7][1], dSdR[7][2] = -0.125*sp*tp, 0.125*rm*tp, 0.125*rm*sp
}
