// Copyright 2010-2017 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

// Package hint implements the stack-based hinting virtual machine
// that executes a TrueType-style font's grid-fitting bytecode: the
// Font Program (run once per font load), the CVT Program (run once
// per point size), and each glyph's own instruction stream.
package hint

import "github.com/andrew-pa/ttscale/sfnt"

// unitVector is a normalized 2-D direction in 2.14 fixed point, used
// for the projection, freedom and dual-projection vectors.
type unitVector struct {
	X, Y sfnt.F2Dot14
}

var axisX = unitVector{sfnt.F2Dot14(1 << 14), 0}
var axisY = unitVector{0, sfnt.F2Dot14(1 << 14)}

// dot projects an F26Dot6 point onto a 2.14 unit vector, yielding an
// F26Dot6 scalar distance along that axis. Multiplying a 26.6 value
// by a 2.14 value and shifting right by 14 keeps the 26.6 radix,
// exactly as the VM's other fixed-point operations keep their radix
// after a multiply.
func dot(px, py sfnt.F26Dot6, v unitVector) sfnt.F26Dot6 {
	return sfnt.F26Dot6((int64(px)*int64(v.X) + int64(py)*int64(v.Y)) >> 14)
}

// roundState names the active rounding policy, set by RTG/RTHG/RDTG/
// RUTG/ROFF/SROUND/S45ROUND.
type roundState int

const (
	roundToHalfGrid roundState = iota
	roundToGrid
	roundToDoubleGrid
	roundDownToGrid
	roundUpToGrid
	roundOff
	roundSuper
	roundSuper45
)

// GraphicsState is the TrueType graphics state: everything that
// persists across instructions within one VM run and, via the
// persistent/working split in VM, across glyphs rendered at the same
// point size.
type GraphicsState struct {
	ProjVec, FreedomVec, DualProjVec unitVector

	RP                [3]int // rp0, rp1, rp2: reference point indices
	ZP                [3]int // zp0, zp1, zp2: zone selectors (0 = twilight, 1 = glyph)

	ControlValueCutIn sfnt.F26Dot6
	SingleWidthCutIn  sfnt.F26Dot6
	SingleWidthValue  sfnt.F26Dot6
	DeltaBase         int32
	DeltaShift        int32
	MinimumDistance   sfnt.F26Dot6
	Loop              int32

	Round           roundState
	RoundPeriod     sfnt.F26Dot6
	RoundPhase      sfnt.F26Dot6
	RoundThreshold  sfnt.F26Dot6

	AutoFlip    bool
	ScanControl bool
	ScanType    int32
	InstructCtrl int32
}

// defaultGraphicsState returns the graphics state every VM starts
// from before the Font Program runs, matching the standard TrueType
// interpreter's documented defaults.
func defaultGraphicsState() GraphicsState {
	return GraphicsState{
		ProjVec:     axisX,
		FreedomVec:  axisX,
		DualProjVec: axisX,
		RP:          [3]int{0, 0, 0},
		ZP:          [3]int{1, 1, 1},

		ControlValueCutIn: sfnt.Int26Dot6FromInt(17).Div(sfnt.Int26Dot6FromInt(16)),
		SingleWidthCutIn:  0,
		SingleWidthValue:  0,
		DeltaBase:         9,
		DeltaShift:        3,
		MinimumDistance:   sfnt.Int26Dot6FromInt(1),
		Loop:              1,

		Round:          roundToGrid,
		RoundPeriod:    sfnt.Int26Dot6FromInt(1),
		RoundPhase:     0,
		RoundThreshold:  sfnt.Int26Dot6FromInt(1).Div(2),

		AutoFlip:    true,
		ScanControl: false,
		ScanType:    0,
	}
}

// point is one outline point as the VM sees it: a current (mutable,
// hinted) position and an original (immutable, post-scale pre-hint)
// position, plus the touched flags IUP needs to know which points
// were explicitly moved by an instruction versus left for
// interpolation.
type point struct {
	X, Y    sfnt.F26Dot6
	OX, OY  sfnt.F26Dot6
	TouchX  bool
	TouchY  bool
	OnCurve bool
}

// zone is one of the VM's two point stores: zone 0 is the scratch
// "twilight" zone (no real outline, used by fpgm/prep to stash
// reference points), zone 1 is the current glyph's real outline.
type zone struct {
	points    []point
	endPoints []uint16 // contour boundaries, empty for the twilight zone
}

func newZone(n int) zone {
	return zone{points: make([]point, n)}
}

func (z *zone) contourOf(i int) (start, end int) {
	s := 0
	for _, e := range z.endPoints {
		if i <= int(e) {
			return s, int(e)
		}
		s = int(e) + 1
	}
	return s, len(z.points) - 1
}
