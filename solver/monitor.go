// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"math"

	"github.com/cpmech/gofem-cfd/mesh"
)

// ForceAccumulator sums pressure and viscous-shear contributions over a
// rank's boundary faces into global-axis force components (and a wall
// heat-flux total), then reduces across ranks via mesh.AllReduceSum
// (§4.4 item 10).
type ForceAccumulator struct {
	Fx, Fy, Fz float64
	HeatFlux   float64
}

// AddFace folds in one boundary face's pressure and viscous traction
// projected onto the global axes (freestream-aligned rotation into
// CL/CD is the caller's job once the reduced totals are known).
func (f *ForceAccumulator) AddFace(pressure, pInf float64, normal []float64, viscousTraction []float64, wallHeatFlux float64) {
	n := len(normal)
	dp := pressure - pInf
	f.Fx += dp * normal[0]
	if n > 1 {
		f.Fy += dp * normal[1]
	}
	if n > 2 {
		f.Fz += dp * normal[2]
	}
	for d, t := range viscousTraction {
		switch d {
		case 0:
			f.Fx -= t
		case 1:
			f.Fy -= t
		case 2:
			f.Fz -= t
		}
	}
	f.HeatFlux += wallHeatFlux
}

// Reduce combines this rank's partial sums with every other rank's via
// an MPI all-reduce, returning the global totals (every rank receives
// the same answer, per mesh.AllReduceSum's contract).
func (f ForceAccumulator) Reduce() ForceAccumulator {
	src := []float64{f.Fx, f.Fy, f.Fz, f.HeatFlux}
	dst := make([]float64, 4)
	mesh.AllReduceSum(dst, src)
	return ForceAccumulator{Fx: dst[0], Fy: dst[1], Fz: dst[2], HeatFlux: dst[3]}
}

// Coefficients converts reduced dimensional forces to CL/CD given the
// dynamic pressure and reference area, and the angle of attack used to
// rotate Fx/Fy into lift/drag axes (§6: AoA, RefArea).
func (f ForceAccumulator) Coefficients(qInf, refArea, aoaRad float64) (cl, cd float64) {
	if qInf <= 0 || refArea <= 0 {
		return 0, 0
	}
	cx := f.Fx / (qInf * refArea)
	cy := f.Fy / (qInf * refArea)
	cl = cy*math.Cos(aoaRad) - cx*math.Sin(aoaRad)
	cd = cx*math.Cos(aoaRad) + cy*math.Sin(aoaRad)
	return
}

// Residual aggregates the global RMS residual norm across equations and
// ranks for the monitor log line and the convergence check of §4.4 step
// 7, mirroring fem/solver.go's largFb/Lδu pattern generalized to a
// per-equation RMS rather than a single scalar.
type Residual struct {
	SumSq []float64 // per-equation sum of squares, this rank
	Count int
}

// NewResidual allocates a zeroed per-equation accumulator.
func NewResidual(nVar int) *Residual { return &Residual{SumSq: make([]float64, nVar)} }

// Add folds in one node's residual vector.
func (r *Residual) Add(res []float64) {
	for k, v := range res {
		r.SumSq[k] += v * v
	}
	r.Count++
}

// Reduce combines this rank's sums across all ranks and returns the
// global per-equation RMS.
func (r *Residual) Reduce() []float64 {
	dst := make([]float64, len(r.SumSq))
	mesh.AllReduceSum(dst, r.SumSq)
	countSrc := []float64{float64(r.Count)}
	countDst := make([]float64, 1)
	mesh.AllReduceSum(countDst, countSrc)
	n := countDst[0]
	rms := make([]float64, len(dst))
	for k, sq := range dst {
		if n > 0 {
			rms[k] = math.Sqrt(sq / n)
		}
	}
	return rms
}
