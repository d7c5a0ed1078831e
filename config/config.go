// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package config defines the read-only contract the core depends on for
// simulation options. Parsing the on-disk key/value file is an external
// collaborator's job (out of scope); this package only states what the
// core needs to read from it.
package config

import "github.com/cpmech/gosl/fun/dbf"

// scheme, limiter and time-integration enumerations (§6)
const (
	SchemeCentered = "CENTERED"
	SchemeUpwind   = "UPWIND"

	CenteredJST = "JST"
	CenteredLax = "LAX"

	UpwindRoe   = "ROE"
	UpwindAUSM  = "AUSM"
	UpwindHLLC  = "HLLC"

	LimitNone       = "NONE"
	LimitVenkat     = "VENKAT"
	LimitMinmod     = "MINMOD"
	LimitVanAlbada  = "VAN_ALBADA"

	GradientGreenGauss = "GREEN_GAUSS"
	GradientWLS        = "WLS"

	TimeEulerExplicit = "EULER_EXPLICIT"
	TimeRK            = "RK"
	TimeEulerImplicit = "EULER_IMPLICIT"

	PrecJacobi  = "JACOBI"
	PrecLUSGS   = "LU_SGS"
	PrecLinelet = "LINELET"

	MarchingSteady    = "STEADY"
	MarchingDT1st     = "DT_1ST"
	MarchingDT2nd     = "DT_2ND"
	MarchingStepping  = "TIME_STEPPING"
)

// BC holds the resolved boundary-condition kind and parameters for one marker.
type BC struct {
	Kind            string // e.g. "EULER_WALL", "ISOTHERMAL_WALL", "FAR_FIELD", ...
	WallHeatFlux    float64
	IsothermalTemp  float64
	Catalytic       bool
	InletPressure   float64
	InletTemp       float64
	InletFlowDir    []float64
	OutletPressure  float64
}

// Reader is the read-only key/value contract the numerical core depends on.
// A concrete implementation (outside this repo's scope) parses the .sim
// file and answers these queries.
type Reader interface {
	// scheme selection
	ConvScheme() string // Kind_ConvNumScheme
	Centered() string   // Kind_Centered
	Upwind() string      // Kind_Upwind
	SlopeLimiter() string // Kind_SlopeLimit
	Gradient() string    // Kind_Gradient
	TimeInt() string     // Kind_TimeInt
	LinearPrec() string  // Kind_Linear_Solver_Prec
	Marching() string    // Time_Marching
	MUSCL() bool

	// scalars
	CFL() float64
	MaxDeltaTime() float64
	RelaxationFactorFlow() float64
	VenkatLimiterCoeff() float64
	RefArea() float64
	RefLength() float64
	AoA() float64
	AoS() float64
	Mach() float64
	Reynolds() float64

	// freestream
	FreeStreamPressure() float64
	FreeStreamTemperature() float64
	FreeStreamTemperatureVe() float64
	FreeStreamMassFrac() []float64
	FreeStreamDensity() float64

	// per-marker boundary conditions
	MarkerBC(tag string) (BC, bool)

	// species / gas-mixture table
	NSpecies() int
	MonatomicSpecies() []bool

	// arbitrary time/space functions for inlet profiles etc.
	Func(name string) (dbf.T, bool)

	// linear solver iteration cap
	MaxLinearIters() int
	LinearSolverTol() float64
}
