// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package linsys implements the block-sparse Jacobian assembly and the
// Krylov linear-solve contract of §4.5 "Linear System", grounded on
// fem/domain.go's la.Triplet-based Kb assembly and la.GetSolver/LinSol
// usage (fem/s_linimp.go, fem/solver.go).
package linsys

import (
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
)

// Jacobian wraps an la.Triplet as a block-sparse matrix addressed by
// (node, nVar) block coordinates, mirroring the teacher's element-local
// AddToKb pattern but generalized to per-edge Jac_i/Jac_j blocks instead
// of per-element stiffness blocks.
//
// blocks mirrors every Put into Kb as a dense per-(rowNode,colNode)
// accumulator. la.Triplet is append-only (COO), so it cannot be queried
// back; blocks is the bookkeeping ZeroRowsStrongDirichlet needs to
// cancel a row's previously-assembled entries.
type Jacobian struct {
	Kb     *la.Triplet
	NVar   int
	NNode  int
	blocks map[[2]int][][]float64
}

// NewJacobian allocates a Triplet sized for nNode blocks of width nVar,
// reserving nnzBlocks block-entries of capacity (each block contributes
// nVar*nVar triplet entries, following o.Kb.Init(o.Nyb, o.Nyb, o.NnzKb)
// in fem/domain.go).
func NewJacobian(nNode, nVar, nnzBlocks int) *Jacobian {
	if nNode < 0 || nVar <= 0 {
		chk.Panic("linsys: invalid Jacobian dimensions nNode=%d nVar=%d", nNode, nVar)
	}
	n := nNode * nVar
	j := &Jacobian{Kb: new(la.Triplet), NVar: nVar, NNode: nNode, blocks: make(map[[2]int][][]float64)}
	j.Kb.Init(n, n, nnzBlocks*nVar*nVar)
	return j
}

// Reset clears the triplet's entry count so the matrix can be
// reassembled for a new iteration without reallocating (§4.5: Jacobian
// is rebuilt every nonlinear iteration for TimeEulerImplicit marching).
func (j *Jacobian) Reset() {
	j.Kb.Start()
	j.blocks = make(map[[2]int][][]float64)
}

// AddBlock adds a dense nVar x nVar block at (rowNode, colNode),
// accumulating into any existing entries at the same coordinates (the
// Triplet format allows repeated (i,j) entries to sum, as used by
// AddToKb across overlapping element contributions).
func (j *Jacobian) AddBlock(rowNode, colNode int, block [][]float64) {
	r0 := rowNode * j.NVar
	c0 := colNode * j.NVar
	acc := j.blockAt(rowNode, colNode)
	for a := 0; a < j.NVar; a++ {
		for b := 0; b < j.NVar; b++ {
			j.Kb.Put(r0+a, c0+b, block[a][b])
			acc[a][b] += block[a][b]
		}
	}
}

// SubtractBlock adds the negated block, used for the Jac_j contribution
// at the owning-row node when a kernel's residual convention is R_i +=
// F, R_j -= F (§8 invariant 1) and the Jacobian must match sign.
func (j *Jacobian) SubtractBlock(rowNode, colNode int, block [][]float64) {
	r0 := rowNode * j.NVar
	c0 := colNode * j.NVar
	acc := j.blockAt(rowNode, colNode)
	for a := 0; a < j.NVar; a++ {
		for b := 0; b < j.NVar; b++ {
			j.Kb.Put(r0+a, c0+b, -block[a][b])
			acc[a][b] -= block[a][b]
		}
	}
}

// AddVal2Diag adds a scalar to every diagonal entry of one node's block,
// the pseudo-time term 1/dt * Vol added to the Jacobian diagonal before
// each implicit solve (§4.4 step 6).
func (j *Jacobian) AddVal2Diag(node int, val float64) {
	i0 := node * j.NVar
	acc := j.blockAt(node, node)
	for a := 0; a < j.NVar; a++ {
		j.Kb.Put(i0+a, i0+a, val)
		acc[a][a] += val
	}
}

// blockAt returns (allocating if needed) the tracked dense accumulator
// for (rowNode, colNode).
func (j *Jacobian) blockAt(rowNode, colNode int) [][]float64 {
	key := [2]int{rowNode, colNode}
	acc, ok := j.blocks[key]
	if !ok {
		acc = make([][]float64, j.NVar)
		for a := range acc {
			acc[a] = make([]float64, j.NVar)
		}
		j.blocks[key] = acc
	}
	return acc
}

// ZeroRowsStrongDirichlet replaces the given local equation rows of
// node's block-row with an identity row (§4.5: "zero Jacobian row
// except identity" for a strong-Dirichlet boundary condition such as a
// heat-flux or isothermal no-slip wall): every off-diagonal contribution
// already assembled into that row, from interior-face neighbors as well
// as the node's own diagonal block, is cancelled, and the diagonal entry
// is set to exactly 1. The caller is responsible for also zeroing the
// corresponding right-hand-side entries so the linear solve leaves the
// constrained unknowns unchanged.
func (j *Jacobian) ZeroRowsStrongDirichlet(node int, rows []int) {
	r0 := node * j.NVar
	for key, block := range j.blocks {
		if key[0] != node {
			continue
		}
		c0 := key[1] * j.NVar
		for _, r := range rows {
			for c := 0; c < j.NVar; c++ {
				v := block[r][c]
				if v == 0 {
					continue
				}
				j.Kb.Put(r0+r, c0+c, -v)
				block[r][c] = 0
			}
		}
	}
	diag := j.blockAt(node, node)
	for _, r := range rows {
		j.Kb.Put(r0+r, r0+r, 1)
		diag[r][r] = 1
	}
}

// DiagBlock returns the dense block currently assembled at (node, node),
// used by the LU-SGS and linelet preconditioning passes to read the
// block-diagonal without a second Triplet traversal.
func (j *Jacobian) DiagBlock(node int) [][]float64 {
	return j.blockAt(node, node)
}

// OffDiagBlock returns the dense block assembled at (rowNode, colNode),
// or nil if the two nodes were never coupled this assembly; used as the
// LUSGSSweep.OffDiag callback.
func (j *Jacobian) OffDiagBlock(rowNode, colNode int) [][]float64 {
	return j.blocks[[2]int{rowNode, colNode}]
}

// ScaleRow multiplies every previously-assembled entry of one local
// equation row of node's block-row by factor, keeping the tracked
// accumulator and the underlying Triplet consistent (§6 PrecJacobi: a
// direct solve needs the row and its right-hand-side entry scaled
// together, or the scaling changes the solution instead of just its
// conditioning).
func (j *Jacobian) ScaleRow(node, row int, factor float64) {
	if factor == 1 {
		return
	}
	r0 := node * j.NVar
	for key, block := range j.blocks {
		if key[0] != node {
			continue
		}
		c0 := key[1] * j.NVar
		for c := 0; c < j.NVar; c++ {
			v := block[row][c]
			if v == 0 {
				continue
			}
			delta := v * (factor - 1)
			j.Kb.Put(r0+row, c0+c, delta)
			block[row][c] = v + delta
		}
	}
}
