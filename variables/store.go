// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package variables implements the per-node conservative/primitive
// variable store (§4.2 "Variable Store"), grounded on ele.Solution's
// single-struct-of-parallel-slices style (ele/solution.go) but
// generalized from FE nodal y/dydt/d2ydt2 to CFD U/V/gradients/limiters.
package variables

import "github.com/cpmech/gosl/chk"

// Layout describes the fixed primitive-variable index assignment a
// Numerics kernel is configured with once (§4.3): RHO, RHOS, T, TVE, VEL,
// P, A, RHOCVTR, RHOCVVE.
type Layout struct {
	NSpecies int
	NDim     int

	IdxRho     int // density
	IdxRhoS    int // first species-density index (NSpecies consecutive slots)
	IdxT       int
	IdxTve     int
	IdxVel     int // first velocity component (NDim consecutive slots)
	IdxP       int
	IdxA       int // sound speed
	IdxRhoCvTr int
	IdxRhoCvVe int

	NPrim int // total width of a V vector
	NCons int // total width of a U vector (species densities, momentum, energy[, Eve])
	HasEve bool
}

// NewLayout returns the canonical primitive/conservative layout for a
// mixture with nSpecies species, nDim spatial dimensions and optional
// vibrational-electronic energy storage.
func NewLayout(nSpecies, nDim int, hasEve bool) Layout {
	l := Layout{NSpecies: nSpecies, NDim: nDim, HasEve: hasEve}
	l.IdxRhoS = 0
	l.IdxRho = nSpecies
	l.IdxT = nSpecies + 1
	l.IdxTve = nSpecies + 2
	l.IdxVel = nSpecies + 3
	l.IdxP = nSpecies + 3 + nDim
	l.IdxA = l.IdxP + 1
	l.IdxRhoCvTr = l.IdxA + 1
	l.IdxRhoCvVe = l.IdxRhoCvTr + 1
	l.NPrim = l.IdxRhoCvVe + 1

	l.NCons = nSpecies + nDim + 1
	if hasEve {
		l.NCons++
	}
	return l
}

// TemperatureFloor is the minimum physical temperature (§3: "T_ve ≥ ε,
// T ≥ ε").
const TemperatureFloor = 1.0

// EOS converts a conservative state to a primitive state for a given gas
// mixture. It is an external collaborator contract: this package depends
// on it by interface only (thermochemical property evaluation is
// mixture-specific and lives in the Numerics layer's configuration, not
// in the variable store).
type EOS interface {
	// ToPrimitive fills v from u; returns nonPhys=true if any physical
	// bound is violated (ρ_s<0, T or T_ve below TemperatureFloor, P<0).
	ToPrimitive(u []float64, v []float64, layout Layout) (nonPhys bool)
}

// Node holds all per-node quantities of §3's data model.
type Node struct {
	U        []float64 // conservative
	V        []float64 // primitive
	GradV    [][]float64 // [nPrim][nDim]
	GradU    [][]float64 // [nCons][nDim], used by MUSCL reconstruction (Open Question #1: reconstruct on U)
	Limiter  []float64   // per conservative (or primitive) component
	UTimeN   []float64
	UTimeNm1 []float64

	// auxiliary sensitivities for adjoint / Sobolev smoothing
	Sensitivity []float64 // [nDim] raw sensitivity, smoothed in place by sobolev

	// dP/dU, dT/dU, dT_ve/dU rows, Eve, Cvve. DPdU is refreshed by
	// SetPrimVar_Compressible when the EOS also provides DPdU; DTdU,
	// DTvedU, Eve and Cvve are not computed by this package.
	DPdU   []float64
	DTdU   []float64
	DTvedU []float64
	Eve    float64
	Cvve   float64

	// transport properties, set by the physics layer, read by viscous
	// kernels
	LaminarViscosity     float64
	ThermalConductivity   float64
	ThermalConductivityVe float64
	DiffusionCoeff        []float64 // per species
}

// Store is the per-partition variable container. Boundary-only
// quantities (e.g. wall heat flux diagnostics) use vertexIdx, a map from
// global point ID to an index in a smaller boundary-only array so large
// interior-dominated passes stay allocation-free (§4.2).
type Store struct {
	Layout Layout
	Nodes  []Node

	// vertex-index map for boundary-only quantities: nil or absent
	// entries make the accessor return the zero value and writes no-ops.
	vertexIdx map[int]int
	boundary  [][]float64 // parallel to the ids registered in vertexIdx
}

// NewStore allocates U,V (and, for unsteady runs, time-level snapshots)
// for n nodes.
func NewStore(layout Layout, n int, unsteady bool) *Store {
	s := &Store{Layout: layout, Nodes: make([]Node, n), vertexIdx: make(map[int]int)}
	for i := range s.Nodes {
		nd := &s.Nodes[i]
		nd.U = make([]float64, layout.NCons)
		nd.V = make([]float64, layout.NPrim)
		nd.GradV = make([][]float64, layout.NPrim)
		for k := range nd.GradV {
			nd.GradV[k] = make([]float64, layout.NDim)
		}
		nd.GradU = make([][]float64, layout.NCons)
		for k := range nd.GradU {
			nd.GradU[k] = make([]float64, layout.NDim)
		}
		nd.Limiter = make([]float64, layout.NCons)
		nd.DPdU = make([]float64, layout.NCons)
		nd.DTdU = make([]float64, layout.NCons)
		nd.DTvedU = make([]float64, layout.NCons)
		nd.DiffusionCoeff = make([]float64, layout.NSpecies)
		nd.Sensitivity = make([]float64, layout.NDim)
		if unsteady {
			nd.UTimeN = make([]float64, layout.NCons)
			nd.UTimeNm1 = make([]float64, layout.NCons)
		}
	}
	return s
}

// RegisterBoundaryVertex allocates a boundary-only slot of the given
// width for global point id, returning its local index.
func (s *Store) RegisterBoundaryVertex(id, width int) int {
	if idx, ok := s.vertexIdx[id]; ok {
		return idx
	}
	idx := len(s.boundary)
	s.boundary = append(s.boundary, make([]float64, width))
	s.vertexIdx[id] = idx
	return idx
}

// BoundaryValue returns the boundary-only slice for point id, or nil
// (read as zero by convention) when id was never registered.
func (s *Store) BoundaryValue(id int) []float64 {
	idx, ok := s.vertexIdx[id]
	if !ok {
		return nil
	}
	return s.boundary[idx]
}

// SetBoundaryValue writes v into the boundary-only slot for point id; a
// no-op when id is not a registered boundary vertex (§4.2).
func (s *Store) SetBoundaryValue(id int, v []float64) {
	idx, ok := s.vertexIdx[id]
	if !ok {
		return
	}
	copy(s.boundary[idx], v)
}

// SetPrimVar_Compressible recomputes V from U at node i using eos,
// returning nonPhys=true on any physical-bound violation (§4.2, §8
// invariant 5). On success, DPdU is refreshed when eos also provides a
// DPdU method (as PerfectGasEOS does); DTdU, DTvedU, Eve and Cvve are not
// computed here.
func (s *Store) SetPrimVar_Compressible(i int, eos EOS) (nonPhys bool, err error) {
	if i < 0 || i >= len(s.Nodes) {
		return false, chk.Err("variables: node index %d out of range", i)
	}
	nd := &s.Nodes[i]
	nonPhys = eos.ToPrimitive(nd.U, nd.V, s.Layout)
	if !nonPhys {
		if d, ok := eos.(interface {
			DPdU(v []float64, layout Layout, out []float64)
		}); ok {
			d.DPdU(nd.V, s.Layout, nd.DPdU)
		}
	}
	return nonPhys, nil
}

// GetSolution returns U at node i.
func (s *Store) GetSolution(i int) []float64 { return s.Nodes[i].U }

// GetPrimitive returns V at node i.
func (s *Store) GetPrimitive(i int) []float64 { return s.Nodes[i].V }

// GetGradientPrimitive returns ∇V at node i.
func (s *Store) GetGradientPrimitive(i int) [][]float64 { return s.Nodes[i].GradV }

// GetLimiter returns the limiter vector at node i.
func (s *Store) GetLimiter(i int) []float64 { return s.Nodes[i].Limiter }

// PrimitiveToConservative rebuilds a conservative ghost state from a
// primitive ghost state produced by the boundary-condition state
// machine, using the donor node's cached RhoCvTr/RhoCvVe (the ghost
// state never runs through SetPrimVar_Compressible, so these caloric
// coefficients are carried over from the interior node rather than
// recomputed from a mixture model).
func PrimitiveToConservative(v []float64, layout Layout, u []float64) {
	rho := v[layout.IdxRho]
	for s := 0; s < layout.NSpecies; s++ {
		u[layout.IdxRhoS+s] = v[layout.IdxRhoS+s]
	}
	momStart := layout.NSpecies
	kinetic := 0.0
	for d := 0; d < layout.NDim; d++ {
		vel := v[layout.IdxVel+d]
		u[momStart+d] = rho * vel
		kinetic += vel * vel
	}
	kinetic *= 0.5
	e := v[layout.IdxRhoCvTr]*v[layout.IdxT] + rho*kinetic
	if layout.HasEve {
		e += v[layout.IdxRhoCvVe] * v[layout.IdxTve]
	}
	u[momStart+layout.NDim] = e
}
