// Copyright 2010-2017 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package sfnt

import (
	"reflect"
	"testing"
)

func TestAssembleOutlineAllOnCurve(t *testing.T) {
	pts := []OutlinePoint{
		{X: 0, Y: 0, OnCurve: true},
		{X: 10, Y: 0, OnCurve: true},
		{X: 10, Y: 10, OnCurve: true},
		{X: 0, Y: 10, OnCurve: true},
	}
	o, err := AssembleOutline(pts, []uint16{3})
	if err != nil {
		t.Fatalf("AssembleOutline: %v", err)
	}
	if len(o.Points) != 4 {
		t.Fatalf("got %d points, want 4: %v", len(o.Points), o.Points)
	}
	want := []Primitive{Line{0, 1}, Line{1, 2}, Line{2, 3}, Line{3, 0}}
	if !reflect.DeepEqual(o.Primitives, want) {
		t.Errorf("got primitives %v, want %v", o.Primitives, want)
	}
}

func TestAssembleOutlineSingleOffCurve(t *testing.T) {
	pts := []OutlinePoint{
		{X: 0, Y: 0, OnCurve: true},
		{X: 10, Y: 10, OnCurve: false},
		{X: 20, Y: 0, OnCurve: true},
	}
	o, err := AssembleOutline(pts, []uint16{2})
	if err != nil {
		t.Fatalf("AssembleOutline: %v", err)
	}
	wantPoints := []Point{{0, 0}, {20, 0}, {10, 10}}
	if !reflect.DeepEqual(o.Points, wantPoints) {
		t.Errorf("got points %v, want %v", o.Points, wantPoints)
	}
	wantPrims := []Primitive{Quad{0, 2, 1}, Line{1, 0}}
	if !reflect.DeepEqual(o.Primitives, wantPrims) {
		t.Errorf("got primitives %v, want %v", o.Primitives, wantPrims)
	}
}

func TestAssembleOutlineConsecutiveOffCurve(t *testing.T) {
	// Two adjacent off-curve points require a synthesized on-curve
	// midpoint between them.
	pts := []OutlinePoint{
		{X: 0, Y: 0, OnCurve: true},
		{X: 10, Y: 10, OnCurve: false},
		{X: 20, Y: 10, OnCurve: false},
		{X: 30, Y: 0, OnCurve: true},
	}
	o, err := AssembleOutline(pts, []uint16{3})
	if err != nil {
		t.Fatalf("AssembleOutline: %v", err)
	}
	wantPoints := []Point{{0, 0}, {15, 10}, {10, 10}, {30, 0}, {20, 10}}
	if !reflect.DeepEqual(o.Points, wantPoints) {
		t.Errorf("got points %v, want %v", o.Points, wantPoints)
	}
	wantPrims := []Primitive{Quad{0, 2, 1}, Quad{1, 4, 3}, Line{3, 0}}
	if !reflect.DeepEqual(o.Primitives, wantPrims) {
		t.Errorf("got primitives %v, want %v", o.Primitives, wantPrims)
	}
}

func TestAssembleOutlineAllOffCurve(t *testing.T) {
	// No on-curve anchor: the start point is synthesized from the
	// midpoint of the first and last points of the contour.
	pts := []OutlinePoint{
		{X: 0, Y: 0, OnCurve: false},
		{X: 10, Y: 10, OnCurve: false},
		{X: 20, Y: 0, OnCurve: false},
	}
	o, err := AssembleOutline(pts, []uint16{2})
	if err != nil {
		t.Fatalf("AssembleOutline: %v", err)
	}
	if len(o.Points) != 6 {
		t.Fatalf("got %d points, want 6: %v", len(o.Points), o.Points)
	}
	if len(o.Primitives) != 3 {
		t.Fatalf("got %d primitives, want 3: %v", len(o.Primitives), o.Primitives)
	}
	for _, p := range o.Primitives {
		if _, ok := p.(Quad); !ok {
			t.Errorf("got primitive %v, want a Quad", p)
		}
	}
}

func TestAssembleOutlineMultipleContours(t *testing.T) {
	pts := []OutlinePoint{
		{X: 0, Y: 0, OnCurve: true},
		{X: 10, Y: 0, OnCurve: true},
		{X: 10, Y: 10, OnCurve: true},
		{X: 100, Y: 100, OnCurve: true},
		{X: 110, Y: 100, OnCurve: true},
		{X: 110, Y: 110, OnCurve: true},
	}
	o, err := AssembleOutline(pts, []uint16{2, 5})
	if err != nil {
		t.Fatalf("AssembleOutline: %v", err)
	}
	if len(o.Points) != 6 {
		t.Fatalf("got %d points, want 6", len(o.Points))
	}
	if len(o.Primitives) != 6 {
		t.Fatalf("got %d primitives, want 6 (3 per contour)", len(o.Primitives))
	}
}

func TestAssembleOutlineBadEndPoint(t *testing.T) {
	pts := []OutlinePoint{{X: 0, Y: 0, OnCurve: true}}
	if _, err := AssembleOutline(pts, []uint16{5}); err == nil {
		t.Error("AssembleOutline: got no error for out-of-range end point")
	}
}
