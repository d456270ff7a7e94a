// Copyright 2010-2017 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/andrew-pa/ttscale/sfnt"
)

var fontfile = flag.String("font", "", "filename of font to dump")

func main() {
	flag.Parse()

	fontData, err := os.ReadFile(*fontfile)
	if err != nil {
		fmt.Printf("failed to load font from %s: %+v\n", *fontfile, err)
		os.Exit(1)
	}

	font, err := sfnt.Parse(fontData)
	if err != nil {
		fmt.Printf("failed to parse font from %s: %+v\n", *fontfile, err)
		os.Exit(1)
	}

	dump(font)
}

// dump prints a summary of the parsed font's tables to stdout, enough
// to sanity-check that a font loaded the way its source expects.
func dump(f *sfnt.Font) {
	b := f.Bounds()
	fmt.Printf("name:          %q\n", f.Name())
	fmt.Printf("units per em:  %d\n", f.UnitsPerEm())
	fmt.Printf("num glyphs:    %d\n", f.NumGlyphs())
	fmt.Printf("bounds:        [%d %d %d %d]\n", b.XMin, b.YMin, b.XMax, b.YMax)
	fmt.Printf("weight class:  %d\n", f.WeightClass())
	fmt.Printf("width class:   %d\n", f.WidthClass())
	fmt.Printf("fpgm bytes:    %d\n", len(f.FontProgram()))
	fmt.Printf("prep bytes:    %d\n", len(f.CVTProgram()))
	fmt.Printf("post bytes:    %d\n", len(f.PostTable()))
	fmt.Printf("cvt entries:   %d\n", len(f.CVT()))

	maxp := f.MaxProfile()
	fmt.Printf("max points:    %d\n", maxp.MaxPoints)
	fmt.Printf("max contours:  %d\n", maxp.MaxContours)
	fmt.Printf("max storage:   %d\n", maxp.MaxStorage)
	fmt.Printf("max functions: %d\n", maxp.MaxFunctionDefs)

	n := f.NumGlyphs()
	if n > 10 {
		n = 10
	}
	for i := 0; i < n; i++ {
		data, err := f.Glyph(sfnt.GlyphIndex(i))
		if err != nil {
			fmt.Printf("glyph %4d: error: %v\n", i, err)
			continue
		}
		switch g := data.(type) {
		case sfnt.NoneGlyph:
			fmt.Printf("glyph %4d: empty\n", i)
		case *sfnt.SimpleGlyph:
			fmt.Printf("glyph %4d: simple, %d contours, %d points\n", i, len(g.EndPoints), len(g.Points))
		case *sfnt.CompositeGlyph:
			fmt.Printf("glyph %4d: composite, %d components\n", i, len(g.Components))
		}
	}
}
