// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"sort"

	"github.com/cpmech/gosl/chk"
)

// CreateFaces builds one Face record per candidate pair and sorts the
// result with sortFaces. The face's VTK type and standard-face index come
// from the first faceRef's element and local face; the two sides are
// swapped when needed so that ElemSide0 < ElemSide1, taking the second
// faceRef's local face in that case. The face connectivity is not
// renumbered against the standard element, SwapFaceInElement is not set,
// and nodeCoordsOf is not used.
//
// Each candidate is a pair of faceRefs; a negative ElemIdx on the second
// one gives a boundary face with ElemSide1 = -1. A first-faceRef local
// face index outside its standard element's face table, or an element
// type missing from catalog, is returned as an error.
func CreateFaces(catalog *StandardElementCatalog, elems []Element, nodeCoordsOf func(elemID, localVert int) int, candidates [][2]faceRef) (faces []Face, err error) {
	faces = make([]Face, 0, len(candidates))
	for _, cand := range candidates {
		f, ferr := matchOneFace(catalog, elems, cand)
		if ferr != nil {
			return nil, ferr
		}
		faces = append(faces, f)
	}
	sortFaces(faces, elems)
	return faces, nil
}

// faceRef names one side of a candidate matching face: the owning
// element index and the local face index within its standard element, as
// already determined by the caller's adjacency build (out of this
// core's scope: that step is pure combinatorics over cell connectivity).
type faceRef struct {
	ElemIdx   int
	LocalFace int
}

func matchOneFace(catalog *StandardElementCatalog, elems []Element, cand [2]faceRef) (f Face, err error) {
	e0 := elems[cand[0].ElemIdx]
	se0, err := catalog.Get(e0.VTKType, e0.NPolyGrid)
	if err != nil {
		return f, err
	}
	if cand[0].LocalFace < 0 || cand[0].LocalFace >= len(se0.FaceLocalV) {
		return f, chk.Err("mesh: face connectivity mismatch: local face %d out of range for element %d (type=%d)", cand[0].LocalFace, e0.ID, e0.VTKType)
	}
	f.VTKType = se0.FaceVTKType
	f.StdFaceIndex = cand[0].LocalFace
	f.ElemSide0 = cand[0].ElemIdx
	if cand[1].ElemIdx >= 0 {
		f.ElemSide1 = cand[1].ElemIdx
		if f.ElemSide0 > f.ElemSide1 {
			f.ElemSide0, f.ElemSide1 = f.ElemSide1, f.ElemSide0
			f.StdFaceIndex = cand[1].LocalFace
		}
	} else {
		f.ElemSide1 = -1 // boundary face; represented separately via BoundaryFace in practice
	}
	return f, nil
}

// sortFaces orders matching internal faces by (time-level bucket,
// internal-vs-halo bucket, owning element ID) for cache-friendly
// traversal, per §4.1.
func sortFaces(faces []Face, elems []Element) {
	sort.SliceStable(faces, func(i, j int) bool {
		fi, fj := faces[i], faces[j]
		li, lj := elems[fi.ElemSide0].TimeLevel, elems[fj.ElemSide0].TimeLevel
		if li != lj {
			return li < lj
		}
		if fi.IsHalo != fj.IsHalo {
			return !fi.IsHalo // interior-neighbor bucket before halo-neighbor bucket
		}
		return fi.ElemSide0 < fj.ElemSide0
	})
}

// VerifyCanonicalization checks that every face's StdFaceIndex is a valid
// face index of its side-0 element's standard element. It does not
// compare face connectivity against the canonical face tables and does
// not re-run the canonicalization to check idempotence.
func VerifyCanonicalization(catalog *StandardElementCatalog, elems []Element, faces []Face) error {
	for _, f := range faces {
		e0 := elems[f.ElemSide0]
		se0, err := catalog.Get(e0.VTKType, e0.NPolyGrid)
		if err != nil {
			return err
		}
		if f.StdFaceIndex < 0 || f.StdFaceIndex >= len(se0.FaceLocalV) {
			return chk.Err("mesh: face %d->%d has non-canonical face index %d", f.ElemSide0, f.ElemSide1, f.StdFaceIndex)
		}
	}
	return nil
}
