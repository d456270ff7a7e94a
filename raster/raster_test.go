// Copyright 2010-2017 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package raster

import (
	"testing"

	"github.com/andrew-pa/ttscale/sfnt"
)

func square(x0, y0, x1, y1 float64) *sfnt.Outline {
	return &sfnt.Outline{
		Points: []sfnt.Point{
			{X: x0, Y: y0},
			{X: x1, Y: y0},
			{X: x1, Y: y1},
			{X: x0, Y: y1},
		},
		Primitives: []sfnt.Primitive{
			sfnt.Line{A: 0, B: 1},
			sfnt.Line{A: 1, B: 2},
			sfnt.Line{A: 2, B: 3},
			sfnt.Line{A: 3, B: 0},
		},
	}
}

func TestRenderFullyCoveredInterior(t *testing.T) {
	bm := Render(square(1, 1, 7, 7), 8, 8)
	if bm.Width != 8 || bm.Height != 8 {
		t.Fatalf("got %dx%d bitmap, want 8x8", bm.Width, bm.Height)
	}
	if got := bm.At(4, 4); got != 255 {
		t.Errorf("At(4,4) = %d, want 255 (fully inside the square)", got)
	}
	if got := bm.At(0, 0); got != 0 {
		t.Errorf("At(0,0) = %d, want 0 (outside the square)", got)
	}
	if got := bm.At(7, 7); got != 0 {
		t.Errorf("At(7,7) = %d, want 0 (past the square's right/bottom edge)", got)
	}
}

func TestRenderOutOfBoundsIsZero(t *testing.T) {
	bm := Render(square(1, 1, 5, 5), 6, 6)
	if got := bm.At(-1, 2); got != 0 {
		t.Errorf("At(-1,2) = %d, want 0", got)
	}
	if got := bm.At(2, 100); got != 0 {
		t.Errorf("At(2,100) = %d, want 0", got)
	}
}

func TestRenderFractionalHorizontalCoverage(t *testing.T) {
	// A square whose left edge falls at x=0.5 should leave the first
	// column half-covered and every interior column fully covered.
	bm := Render(square(0.5, 0, 3, 4), 4, 4)
	if got := bm.At(0, 1); got < 100 || got > 155 {
		t.Errorf("At(0,1) = %d, want roughly half coverage (~127)", got)
	}
	if got := bm.At(1, 1); got != 255 {
		t.Errorf("At(1,1) = %d, want 255 (fully interior column)", got)
	}
}

func TestRenderEmptyOutline(t *testing.T) {
	bm := Render(&sfnt.Outline{}, 4, 4)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := bm.At(x, y); got != 0 {
				t.Errorf("At(%d,%d) = %d, want 0 for an empty outline", x, y, got)
			}
		}
	}
}

func TestRenderNilOutline(t *testing.T) {
	bm := Render(nil, 4, 4)
	if bm.Width != 4 || bm.Height != 4 {
		t.Fatalf("got %dx%d bitmap, want 4x4", bm.Width, bm.Height)
	}
}

func TestRenderTriangleWithQuad(t *testing.T) {
	// A shape whose right-hand edge bows outward via a quadratic
	// control point reaches x=4 at its widest, the middle row: there it
	// should cover column 1 and leave column 7 empty.
	o := &sfnt.Outline{
		Points: []sfnt.Point{
			{X: 0, Y: 0},
			{X: 0, Y: 8},
			{X: 8, Y: 4},
		},
		Primitives: []sfnt.Primitive{
			sfnt.Line{A: 0, B: 1},
			sfnt.Quad{A: 1, C: 2, B: 0},
		},
	}
	bm := Render(o, 8, 8)
	if got := bm.At(1, 4); got == 0 {
		t.Errorf("At(1,4) = %d, want nonzero coverage near the bulge's widest point", got)
	}
	if got := bm.At(7, 4); got != 0 {
		t.Errorf("At(7,4) = %d, want 0 (right of the bulge's rightmost extent)", got)
	}
}

func TestNewBitmapClampsNegativeDimensions(t *testing.T) {
	bm := NewBitmap(-1, -2)
	if bm.Width != 0 || bm.Height != 0 {
		t.Errorf("NewBitmap(-1,-2) = %dx%d, want 0x0", bm.Width, bm.Height)
	}
}
