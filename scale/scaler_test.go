// Copyright 2010-2017 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package scale

import (
	"testing"

	"github.com/andrew-pa/ttscale/sfnt"
)

func TestOutlineBounds(t *testing.T) {
	o := &sfnt.Outline{Points: []sfnt.Point{
		{X: -2, Y: 3},
		{X: 5, Y: -7},
		{X: 1, Y: 1},
	}}
	minX, minY, maxX, maxY := outlineBounds(o)
	if minX != -2 || maxX != 5 || minY != -7 || maxY != 3 {
		t.Errorf("outlineBounds = (%v,%v,%v,%v), want (-2,-7,5,3)", minX, minY, maxX, maxY)
	}
}

func TestOutlineBoundsSinglePoint(t *testing.T) {
	o := &sfnt.Outline{Points: []sfnt.Point{{X: 4, Y: 4}}}
	minX, minY, maxX, maxY := outlineBounds(o)
	if minX != 4 || maxX != 4 || minY != 4 || maxY != 4 {
		t.Errorf("outlineBounds = (%v,%v,%v,%v), want (4,4,4,4)", minX, minY, maxX, maxY)
	}
}
