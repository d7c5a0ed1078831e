// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command gofem-cfd drives the CLI surface of §6: a positional path to a
// configuration file, a -d dry-run flag, and exit codes 0 (success), 1
// (fatal configuration/IO/mesh error) and 2 (runtime arithmetic failure
// only when guards cannot recover). Grounded on main.go's mpi.Start/
// panic-recovery/flag-parsing structure, generalized from a single
// fem.Start/fem.Run call pair to the mesh/store/solver composition this
// core assembles explicitly.
package main

import (
	"flag"
	"math"
	"os"

	"github.com/cpmech/gofem-cfd/config"
	"github.com/cpmech/gofem-cfd/mesh"
	"github.com/cpmech/gofem-cfd/solver"
	"github.com/cpmech/gofem-cfd/variables"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/mpi"
)

// LoadConfig and LoadMesh are the composition root's hooks into the
// external collaborators this core treats as out-of-scope (§1, §6 Non-
// goals: configuration parsing and geometry file I/O). A production
// build wires a concrete parser/mesh-reader here; this CORE ships only
// the contract (config.Reader, *mesh.Mesh) and the pipeline that
// consumes it, so the default hooks report a clear error instead of
// silently no-oping.
var (
	LoadConfig = func(path string) (config.Reader, error) {
		return nil, chk.Err("configuration parsing for %q is an external collaborator not wired into this build", path)
	}
	LoadMesh = func(path string, cfg config.Reader) (*mesh.Mesh, error) {
		return nil, chk.Err("geometry file I/O for %q is an external collaborator not wired into this build", path)
	}
)

// maxIterations bounds the pseudo-time marching loop; §6's configuration
// key list has no nonlinear-iteration-count entry (only CFL/MaxDeltaTime
// govern the step itself), so the CORE caps progress with a fixed
// budget the way a batch driver would, rather than inventing a new
// configuration key outside §6's list.
const maxIterations = 5000

func main() {
	os.Exit(run())
}

func run() (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			if mpi.Rank() == 0 {
				io.Pf("ERROR: %v\n", r)
			}
			exitCode = 1
		}
		mpi.Stop(false)
	}()
	mpi.Start(false)

	dryRun := flag.Bool("d", false, "dry-run: parse and allocate but do not iterate")
	flag.Parse()

	if mpi.Rank() == 0 {
		io.Pf("gofem-cfd -- parallel unstructured compressible-flow core\n")
	}

	if flag.NArg() < 1 {
		io.Pf("ERROR: missing configuration file path\n")
		return 1
	}
	cfgPath := flag.Arg(0)

	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		io.Pf("ERROR: %v\n", err)
		return 1
	}

	m, err := LoadMesh(cfgPath, cfg)
	if err != nil {
		io.Pf("ERROR: %v\n", err)
		return 1
	}

	nSpecies := cfg.NSpecies()
	layout := variables.NewLayout(nSpecies, m.Ndim, false)
	store := variables.NewStore(layout, len(m.Points), cfg.Marching() == config.MarchingDT1st || cfg.Marching() == config.MarchingDT2nd)

	eos := &variables.PerfectGasEOS{Gamma: 1.4, R: 287.0}
	initFreestream(store, layout, cfg)
	for i := range store.Nodes {
		if _, err := store.SetPrimVar_Compressible(i, eos); err != nil {
			io.Pf("ERROR: %v\n", err)
			return 1
		}
	}

	s, err := solver.NewSolver(m, store, layout, eos, cfg)
	if err != nil {
		io.Pf("ERROR: %v\n", err)
		return 1
	}
	s.Vol = dualVolumes(m)

	if *dryRun {
		io.Pf("dry-run: parsed configuration and allocated %d nodes, %d elements; not iterating\n", len(store.Nodes), len(m.Elements))
		return 0
	}

	dt := make([]float64, len(store.Nodes))
	for it := 0; it < maxIterations; it++ {
		for i := range dt {
			dt[i] = cfg.MaxDeltaTime()
		}
		rep, err := s.Iterate(dt)
		if err != nil {
			io.Pf("ERROR: %v\n", err)
			return 2
		}
		solver.LogIteration(it, rep)
	}
	return 0
}

// initFreestream seeds every node's conservative state U to the freestream
// condition of §6 before the first iteration. The calorically-perfect
// constants (gamma=1.4, R=287) match the default eos built in run();
// a NEMO mixture build would seed this from its own EOS instead.
func initFreestream(store *variables.Store, layout variables.Layout, cfg config.Reader) {
	const gamma, rGas = 1.4, 287.0
	cv := rGas / (gamma - 1)
	rho := cfg.FreeStreamDensity()
	tInf := cfg.FreeStreamTemperature()
	a := math.Sqrt(gamma * rGas * tInf)
	vMag := cfg.Mach() * a
	aoa := cfg.AoA() * math.Pi / 180
	aos := cfg.AoS() * math.Pi / 180

	vel := make([]float64, layout.NDim)
	switch layout.NDim {
	case 2:
		vel[0] = vMag * math.Cos(aoa)
		vel[1] = vMag * math.Sin(aoa)
	case 3:
		vel[0] = vMag * math.Cos(aoa) * math.Cos(aos)
		vel[1] = vMag * math.Sin(aos)
		vel[2] = vMag * math.Sin(aoa) * math.Cos(aos)
	default:
		if layout.NDim > 0 {
			vel[0] = vMag
		}
	}
	kinetic := 0.0
	for _, v := range vel {
		kinetic += v * v
	}
	kinetic *= 0.5

	massFrac := cfg.FreeStreamMassFrac()
	for i := range store.Nodes {
		nd := &store.Nodes[i]
		for s := 0; s < layout.NSpecies; s++ {
			frac := 1.0
			if s < len(massFrac) {
				frac = massFrac[s]
			}
			nd.U[layout.IdxRhoS+s] = frac * rho
		}
		for d := 0; d < layout.NDim; d++ {
			nd.U[layout.NSpecies+d] = rho * vel[d]
		}
		nd.U[layout.NSpecies+layout.NDim] = rho * (cv*tInf + kinetic)
	}
}

// dualVolumes extracts the per-owned-point dual-grid control volume the
// solver's edge loop divides residuals by. A production mesh reader
// supplies these directly from the geometry file; absent that external
// collaborator (§1 Non-goals), this CORE approximates each node's
// control volume as an even share of its incident elements' bounding-box
// measure (elementVolume); it is not a median-dual construction.
func dualVolumes(m *mesh.Mesh) []float64 {
	vol := make([]float64, len(m.Points))
	for _, e := range m.Elements {
		if len(e.Nodes) == 0 {
			continue
		}
		evol := elementVolume(m, e.Nodes)
		share := evol / float64(len(e.Nodes))
		for _, nd := range e.Nodes {
			vol[nd] += share
		}
	}
	for i := range vol {
		if vol[i] <= 0 {
			vol[i] = 1
		}
	}
	return vol
}

// elementVolume approximates an element's measure (area in 2D, volume in
// 3D) from its node bounding box. A production build replaces this with
// the standard-element catalog's own Jacobian-based volume once a real
// mesh reader supplies element VTK types alongside connectivity; this
// CORE's dualVolumes only needs a volume proxy that sums to a sane,
// strictly-positive total across the owned points.
func elementVolume(m *mesh.Mesh, nodes []int) float64 {
	if len(nodes) == 0 {
		return 0
	}
	ndim := m.Ndim
	lo := make([]float64, ndim)
	hi := make([]float64, ndim)
	copy(lo, m.Points[nodes[0]].Coord)
	copy(hi, m.Points[nodes[0]].Coord)
	for _, nd := range nodes[1:] {
		x := m.Points[nd].Coord
		for d := 0; d < ndim; d++ {
			if x[d] < lo[d] {
				lo[d] = x[d]
			}
			if x[d] > hi[d] {
				hi[d] = x[d]
			}
		}
	}
	measure := 1.0
	for d := 0; d < ndim; d++ {
		side := hi[d] - lo[d]
		if side <= 0 {
			side = 1e-12
		}
		measure *= side
	}
	return measure
}
