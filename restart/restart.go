// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package restart implements the binary restart record layout and its
// sibling metadata file of §6 "Persisted state". The binary layout uses
// encoding/binary directly: no library in the example pack does custom
// fixed-width record I/O, and the teacher's own persistence code
// (inp/sim.go) reaches for encoding/json only for its human-editable
// configuration file, which is exactly the library this package reuses
// for the sibling metadata file below.
package restart

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"io"
	"os"

	"github.com/cpmech/gosl/chk"
)

// Header is the fixed-width preamble of a restart file (§6).
type Header struct {
	NVars          int32
	NPointsPerBlock int32
}

// Record is one point's restart entry: coordinates, conservative state,
// and an optional grid velocity (present only for moving-grid runs).
type Record struct {
	Coord        []float64
	U            []float64
	GridVelocity []float64 // len 0 when the run is not a moving-grid run
}

// Metadata is the sibling text file recording what is needed to resume
// a run: solver iteration, physical time and the aerodynamic state
// (§6: "AoA, CL, CD").
type Metadata struct {
	Iteration int     `json:"iteration"`
	Time      float64 `json:"time"`
	AoA       float64 `json:"aoa"`
	CL        float64 `json:"cl"`
	CD        float64 `json:"cd"`
}

// Write serializes header and records to w in the fixed binary layout:
// header, then per-point (coord[nDim], U[nVar], optional grid velocity).
func Write(w io.Writer, nDim int, hasGridVelocity bool, records []Record) error {
	bw := bufio.NewWriter(w)
	nVar := 0
	if len(records) > 0 {
		nVar = len(records[0].U)
	}
	hdr := Header{NVars: int32(nVar), NPointsPerBlock: int32(len(records))}
	if err := binary.Write(bw, binary.LittleEndian, hdr); err != nil {
		return chk.Err("restart: failed writing header: %v", err)
	}
	for i, rec := range records {
		if len(rec.Coord) != nDim || len(rec.U) != nVar {
			return chk.Err("restart: record %d has inconsistent dimensions", i)
		}
		if err := binary.Write(bw, binary.LittleEndian, rec.Coord); err != nil {
			return chk.Err("restart: failed writing coord at record %d: %v", i, err)
		}
		if err := binary.Write(bw, binary.LittleEndian, rec.U); err != nil {
			return chk.Err("restart: failed writing U at record %d: %v", i, err)
		}
		if hasGridVelocity {
			gv := rec.GridVelocity
			if len(gv) != nDim {
				gv = make([]float64, nDim)
			}
			if err := binary.Write(bw, binary.LittleEndian, gv); err != nil {
				return chk.Err("restart: failed writing grid velocity at record %d: %v", i, err)
			}
		}
	}
	return bw.Flush()
}

// Read parses a restart file written by Write, given the mesh's spatial
// dimension and whether records carry a grid-velocity block.
func Read(r io.Reader, nDim int, hasGridVelocity bool) (records []Record, err error) {
	var hdr Header
	if err := binary.Read(r, binary.LittleEndian, &hdr); err != nil {
		return nil, chk.Err("restart: failed reading header: %v", err)
	}
	records = make([]Record, hdr.NPointsPerBlock)
	for i := range records {
		rec := &records[i]
		rec.Coord = make([]float64, nDim)
		if err := binary.Read(r, binary.LittleEndian, rec.Coord); err != nil {
			return nil, chk.Err("restart: failed reading coord at record %d: %v", i, err)
		}
		rec.U = make([]float64, hdr.NVars)
		if err := binary.Read(r, binary.LittleEndian, rec.U); err != nil {
			return nil, chk.Err("restart: failed reading U at record %d: %v", i, err)
		}
		if hasGridVelocity {
			rec.GridVelocity = make([]float64, nDim)
			if err := binary.Read(r, binary.LittleEndian, rec.GridVelocity); err != nil {
				return nil, chk.Err("restart: failed reading grid velocity at record %d: %v", i, err)
			}
		}
	}
	return records, nil
}

// WriteFile writes the binary restart blob to path and the sibling
// metadata JSON file to path+".meta".
func WriteFile(path string, nDim int, hasGridVelocity bool, records []Record, meta Metadata) error {
	f, err := os.Create(path)
	if err != nil {
		return chk.Err("restart: %v", err)
	}
	defer f.Close()
	if err := Write(f, nDim, hasGridVelocity, records); err != nil {
		return err
	}
	mf, err := os.Create(path + ".meta")
	if err != nil {
		return chk.Err("restart: %v", err)
	}
	defer mf.Close()
	enc := json.NewEncoder(mf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return chk.Err("restart: failed writing metadata: %v", err)
	}
	return nil
}

// ReadFile reads the binary restart blob and its sibling metadata file.
func ReadFile(path string, nDim int, hasGridVelocity bool) ([]Record, Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Metadata{}, chk.Err("restart: %v", err)
	}
	defer f.Close()
	records, err := Read(f, nDim, hasGridVelocity)
	if err != nil {
		return nil, Metadata{}, err
	}
	mf, err := os.Open(path + ".meta")
	if err != nil {
		return nil, Metadata{}, chk.Err("restart: %v", err)
	}
	defer mf.Close()
	var meta Metadata
	if err := json.NewDecoder(mf).Decode(&meta); err != nil {
		return nil, Metadata{}, chk.Err("restart: failed reading metadata: %v", err)
	}
	return records, meta, nil
}
