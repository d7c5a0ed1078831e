// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsys

import "testing"

// TestSolveLinelet covers a 2-node block-tridiagonal system with scalar
// (1x1) blocks, reducible to plain Gaussian elimination, checked against
// the hand-solved answer.
func TestSolveLinelet(t *testing.T) {
	diag := [][][]float64{{{2}}, {{2}}}
	lower := [][][]float64{{{0}}, {{-1}}}
	upper := [][][]float64{{{-1}}, {{0}}}
	b := [][]float64{{1}, {1}}

	x := SolveLinelet(diag, lower, upper, b)
	// 2x0 - x1 = 1; -x0 + 2x1 = 1 => x0 = x1 = 1
	if abs(x[0][0]-1) > 1e-9 || abs(x[1][0]-1) > 1e-9 {
		t.Fatalf("expected x = [1,1], got %v %v", x[0], x[1])
	}
}

func TestLUSGSSweepConverges(t *testing.T) {
	s := &LUSGSSweep{
		NVar:      1,
		Diag:      [][][]float64{{{4}}, {{4}}},
		Neighbors: [][]int{{1}, {0}},
		OffDiag: func(node, neighbor int) [][]float64 {
			return [][]float64{{-1}}
		},
	}
	b := []float64{3, 3}
	x := make([]float64, 2)
	for i := 0; i < 20; i++ {
		s.Apply(b, x)
	}
	// 4x0 - x1 = 3; -x0 + 4x1 = 3 => x0 = x1 = 1
	if abs(x[0]-1) > 1e-6 || abs(x[1]-1) > 1e-6 {
		t.Fatalf("expected convergence to [1,1], got %v", x)
	}
}

// TestBuildLineletPreconditionerWalksAwayFromWall covers growing a line
// from a wall-adjacent node along the strongest coupling: node 0 is wall
// adjacent and couples more strongly to node 1 than to node 2, so the
// line must visit 0, 1, 2 in that order.
func TestBuildLineletPreconditionerWalksAwayFromWall(t *testing.T) {
	j := NewJacobian(3, 1, 8)
	j.AddBlock(0, 1, [][]float64{{5}})
	j.AddBlock(0, 2, [][]float64{{1}})
	j.AddBlock(1, 2, [][]float64{{3}})
	neighbors := [][]int{{1, 2}, {0, 2}, {0, 1}}
	wallAdjacent := []bool{true, false, false}

	groups, avgLen := BuildLineletPreconditioner(neighbors, wallAdjacent, j)
	if len(groups) != 1 {
		t.Fatalf("expected exactly one linelet group, got %d", len(groups))
	}
	want := []int{0, 1, 2}
	for i, n := range want {
		if groups[0].Nodes[i] != n {
			t.Fatalf("expected line %v, got %v", want, groups[0].Nodes)
		}
	}
	if avgLen != 3 {
		t.Fatalf("expected average line length 3, got %v", avgLen)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
