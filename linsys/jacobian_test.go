// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsys

import "testing"

// TestJacobianAssemblyDoesNotPanic covers the AddBlock/SubtractBlock/
// AddVal2Diag/Reset sequence a solver iteration performs (§4.5): writes
// within the reserved Triplet capacity must not panic.
func TestJacobianAssemblyDoesNotPanic(t *testing.T) {
	j := NewJacobian(2, 2, 8)
	block := [][]float64{{1, 2}, {3, 4}}
	j.AddBlock(0, 0, block)
	j.AddBlock(0, 0, block)
	j.SubtractBlock(1, 0, block)
	j.AddVal2Diag(0, 7)
	j.AddVal2Diag(1, 7)
	j.Reset()
	j.AddBlock(0, 1, block)
}

func TestNewJacobianPanicsOnInvalidDims(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic for invalid dimensions")
		}
	}()
	NewJacobian(1, 0, 1)
}

// TestZeroRowsStrongDirichletCancelsOffDiagonalAndSetsIdentity covers
// fixing a strong no-slip wall's momentum rows: every previously
// assembled off-diagonal contribution to that row must cancel out and
// the diagonal entry must become exactly 1, while untouched rows and
// columns are left alone.
func TestZeroRowsStrongDirichletCancelsOffDiagonalAndSetsIdentity(t *testing.T) {
	j := NewJacobian(2, 2, 8)
	self := [][]float64{{5, 1}, {2, 6}}
	neighbor := [][]float64{{3, 4}, {7, 8}}
	j.AddBlock(0, 0, self)
	j.AddBlock(0, 1, neighbor)

	j.ZeroRowsStrongDirichlet(0, []int{0})

	diag := j.DiagBlock(0)
	if diag[0][0] != 1 || diag[0][1] != 0 {
		t.Fatalf("expected identity row 0 in diag block, got %v", diag[0])
	}
	if diag[1][0] != 2 || diag[1][1] != 6 {
		t.Fatalf("expected untouched row 1 in diag block, got %v", diag[1])
	}
	off := j.OffDiagBlock(0, 1)
	if off[0][0] != 0 || off[0][1] != 0 {
		t.Fatalf("expected zeroed row 0 in off-diagonal block, got %v", off[0])
	}
	if off[1][0] != 7 || off[1][1] != 8 {
		t.Fatalf("expected untouched row 1 in off-diagonal block, got %v", off[1])
	}
}

// TestScaleRowRescalesTrackedEntries covers the Jacobi row-equilibration
// path: scaling a row must update every tracked block entry in that row
// consistently, leaving other rows untouched.
func TestScaleRowRescalesTrackedEntries(t *testing.T) {
	j := NewJacobian(2, 2, 8)
	self := [][]float64{{4, 2}, {1, 3}}
	neighbor := [][]float64{{6, 8}, {5, 7}}
	j.AddBlock(0, 0, self)
	j.AddBlock(0, 1, neighbor)

	j.ScaleRow(0, 0, 0.5)

	diag := j.DiagBlock(0)
	if diag[0][0] != 2 || diag[0][1] != 1 {
		t.Fatalf("expected row 0 scaled by 0.5 in diag block, got %v", diag[0])
	}
	if diag[1][0] != 1 || diag[1][1] != 3 {
		t.Fatalf("expected row 1 untouched in diag block, got %v", diag[1])
	}
	off := j.OffDiagBlock(0, 1)
	if off[0][0] != 3 || off[0][1] != 4 {
		t.Fatalf("expected row 0 scaled by 0.5 in off-diagonal block, got %v", off[0])
	}
	if off[1][0] != 5 || off[1][1] != 7 {
		t.Fatalf("expected row 1 untouched in off-diagonal block, got %v", off[1])
	}
}
