// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import "github.com/cpmech/gosl/chk"

// ComputeFaceMetrics fills f.Normal at one integration point, given the
// coordinate matrices of the two adjacent elements; the per-side
// coordinate derivatives (CoordDerivSide0/CoordDerivSide1) are not
// computed. The normal points from side-0 to side-1 (§3 invariant, §8
// invariant 2): computed by taking the cross product of the face's
// parametric tangents, then flipped if its dot product with
// (xCentroid1 - xCentroid0) is negative.
func ComputeFaceMetrics(catalog *StandardElementCatalog, elems []Element, f *Face, x0, x1 [][]float64, faceIPr, faceIPs float64) error {
	e0 := elems[f.ElemSide0]
	se0, err := catalog.Get(e0.VTKType, e0.NPolyGrid)
	if err != nil {
		return err
	}
	faceSE, err := catalog.Get(se0.FaceVTKType, e0.NPolyGrid)
	if err != nil {
		return err
	}
	faceSE.Func(faceSE.S, faceSE.dSdR, faceIPr, faceIPs, 0, true)
	n := se0.FaceNormal(x0, f.StdFaceIndex, faceSE.S, faceSE.dSdR)

	if f.ElemSide1 >= 0 && x1 != nil {
		c0 := centroid(x0)
		c1 := centroid(x1)
		dot := 0.0
		for d := range n {
			dot += n[d] * (c1[d] - c0[d])
		}
		if dot < 0 {
			for d := range n {
				n[d] = -n[d]
			}
		}
	}
	f.Normal = n
	return nil
}

func centroid(x [][]float64) []float64 {
	ndim := len(x)
	nverts := len(x[0])
	c := make([]float64, ndim)
	for d := 0; d < ndim; d++ {
		for v := 0; v < nverts; v++ {
			c[d] += x[d][v]
		}
		c[d] /= float64(nverts)
	}
	return c
}

// CheckNormalOrientation validates §8 invariant 2 for every internal face.
func CheckNormalOrientation(faces []Face, centroids [][]float64) error {
	for _, f := range faces {
		if f.ElemSide1 < 0 || f.Normal == nil {
			continue
		}
		c0, c1 := centroids[f.ElemSide0], centroids[f.ElemSide1]
		dot := 0.0
		for d := range f.Normal {
			dot += f.Normal[d] * (c1[d] - c0[d])
		}
		if dot <= 0 {
			return chk.Err("mesh: face %d->%d normal is not oriented from side-0 to side-1 (dot=%g)", f.ElemSide0, f.ElemSide1, dot)
		}
	}
	return nil
}
