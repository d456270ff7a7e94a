// Copyright 2010-2017 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

// Package scale implements the Scaler Coordinator: it combines a
// parsed sfnt.Font, a hint.VM, and the raster package into the
// per-size and per-glyph pipeline that turns a glyph index at a point
// size and resolution into a device-space grayscale bitmap, and
// exposes the result as a golang.org/x/image/font.Face.
package scale

import (
	"image"
	"math"

	"golang.org/x/image/math/fixed"

	"github.com/andrew-pa/ttscale/hint"
	"github.com/andrew-pa/ttscale/raster"
	"github.com/andrew-pa/ttscale/sfnt"
)

// Scaler is the Scaler Coordinator. It is not safe for concurrent use:
// each goroutine rendering from the same *sfnt.Font should own its own
// Scaler, since the underlying VM's graphics state is mutated in
// place by every glyph it renders.
type Scaler struct {
	font       *sfnt.Font
	vm         *hint.VM
	unitsPerEm float64

	scale   float64 // S = point_size * dpi / (72 * units_per_em)
	ppem    int32
	sizeSet bool
}

// NewScaler parses no data itself; it wraps an already-parsed Font,
// building the font's Hinting VM and running its Font Program once,
// as the data model requires before any size can be set.
func NewScaler(f *sfnt.Font) (*Scaler, error) {
	vm := hint.New(f)
	if err := vm.RunFontProgram(); err != nil {
		return nil, err
	}
	return &Scaler{font: f, vm: vm, unitsPerEm: float64(f.UnitsPerEm())}, nil
}

// SetSize establishes a new point size and resolution: it computes
// the uniform scale factor, rescales the Control Value Table and runs
// the CVT Program. Every glyph rendered afterward, until the next
// SetSize call, uses this size.
func (s *Scaler) SetSize(pointSize, dpi float64) error {
	if s.unitsPerEm == 0 {
		return sfnt.MalformedDataError("font declares zero units per em")
	}
	scaleF := pointSize * dpi / (72 * s.unitsPerEm)
	ppem := int32(math.Round(pointSize * dpi / 72))
	if err := s.vm.SetSize(ppem, scaleF); err != nil {
		return err
	}
	s.scale, s.ppem, s.sizeSet = scaleF, ppem, true
	return nil
}

// Glyph renders glyph index i at the Scaler's current size, with or
// without hinting, returning a grayscale coverage bitmap, the integer
// pixel offset of the bitmap's top-left corner relative to the glyph
// origin (x right, y down), and the glyph's advance width.
func (s *Scaler) Glyph(i sfnt.GlyphIndex, hinting bool) (bm *raster.Bitmap, offset image.Point, advance fixed.Int26_6, err error) {
	if !s.sizeSet {
		return nil, image.Point{}, 0, sfnt.MalformedDataError("Glyph called before SetSize")
	}

	data, err := s.font.Glyph(i)
	if err != nil {
		return nil, image.Point{}, 0, err
	}

	hm := s.font.HMetric(i)
	advance = fixed.Int26_6(math.Round(float64(hm.AdvanceWidth) * s.scale * 64))

	simple, ok := data.(*sfnt.SimpleGlyph)
	if !ok {
		if _, isNone := data.(sfnt.NoneGlyph); isNone {
			return raster.NewBitmap(0, 0), image.Point{}, advance, nil
		}
		return nil, image.Point{}, 0, sfnt.ErrUnassembled
	}

	pts := make([]hint.GlyphPoint, len(simple.Points))
	for j, p := range simple.Points {
		pts[j] = hint.GlyphPoint{
			X:       sfnt.F26Dot6FromFloat64(float64(p.X) * s.scale),
			Y:       sfnt.F26Dot6FromFloat64(float64(p.Y) * s.scale),
			OnCurve: p.OnCurve,
		}
	}

	if hinting {
		pts, err = s.vm.RunGlyph(pts, simple.EndPoints, simple.Instructions)
		if err != nil {
			return nil, image.Point{}, 0, err
		}
	}

	outlinePts := make([]sfnt.OutlinePoint, len(pts))
	for j, p := range pts {
		outlinePts[j] = sfnt.OutlinePoint{X: p.X.Float64(), Y: p.Y.Float64(), OnCurve: p.OnCurve}
	}
	outline, err := sfnt.AssembleOutline(outlinePts, simple.EndPoints)
	if err != nil {
		return nil, image.Point{}, 0, err
	}
	if len(outline.Points) == 0 {
		return raster.NewBitmap(0, 0), image.Point{}, advance, nil
	}

	minX, minY, maxX, maxY := outlineBounds(outline)
	width := int(math.Ceil(maxX)) - int(math.Floor(minX))
	height := int(math.Ceil(maxY)) - int(math.Floor(minY))
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}

	// The outline is in font-space (x right, y up); the rasterizer
	// wants device space (x right, y down) with the glyph's bounding
	// box flush against (0, 0).
	originX, topY := math.Floor(minX), math.Ceil(maxY)
	device := &sfnt.Outline{Points: make([]sfnt.Point, len(outline.Points)), Primitives: outline.Primitives}
	for j, p := range outline.Points {
		device.Points[j] = sfnt.Point{X: p.X - originX, Y: topY - p.Y}
	}

	bm = raster.Render(device, width, height)
	offset = image.Point{X: int(originX), Y: -int(topY)}
	return bm, offset, advance, nil
}

// Kerning returns the device-pixel kerning adjustment between two
// runes at the Scaler's current size.
func (s *Scaler) Kerning(r0, r1 rune) fixed.Int26_6 {
	i0, i1 := s.font.Index(r0), s.font.Index(r1)
	v := s.font.Kerning(i0, i1)
	return fixed.Int26_6(math.Round(float64(v) * s.scale * 64))
}

// Index looks up the glyph index for a rune via the font's cmap.
func (s *Scaler) Index(r rune) sfnt.GlyphIndex { return s.font.Index(r) }

func outlineBounds(o *sfnt.Outline) (minX, minY, maxX, maxY float64) {
	minX, minY = o.Points[0].X, o.Points[0].Y
	maxX, maxY = minX, minY
	for _, p := range o.Points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return
}
