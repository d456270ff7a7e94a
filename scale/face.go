// Copyright 2010-2017 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package scale

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/andrew-pa/ttscale/sfnt"
)

// NewFace returns a font.Face backed by f, rendering at the size and
// hinting policy given by opts. Unlike the teacher this Face does not
// quantize the pen position to sub-pixel locations: every glyph is
// rasterized flush to the integer pixel grid (see DESIGN.md).
func NewFace(f *sfnt.Font, opts *Options) (font.Face, error) {
	s, err := NewScaler(f)
	if err != nil {
		return nil, err
	}
	if err := s.SetSize(opts.size(), opts.dpi()); err != nil {
		return nil, err
	}
	return &faceImpl{font: f, scaler: s, hinting: opts.hinting()}, nil
}

type faceImpl struct {
	font    *sfnt.Font
	scaler  *Scaler
	hinting bool
}

func (a *faceImpl) Close() error { return nil }

func (a *faceImpl) Kern(r0, r1 rune) fixed.Int26_6 {
	return a.scaler.Kerning(r0, r1)
}

func (a *faceImpl) Glyph(dot fixed.Point26_6, r rune) (dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	i := a.scaler.Index(r)
	bm, offset, adv, err := a.scaler.Glyph(i, a.hinting)
	if err != nil || bm.Width == 0 || bm.Height == 0 {
		return image.Rectangle{}, nil, image.Point{}, adv, err == nil
	}
	ix, iy := int(dot.X>>6), int(dot.Y>>6)
	dr = image.Rectangle{
		Min: image.Point{X: ix + offset.X, Y: iy + offset.Y},
		Max: image.Point{X: ix + offset.X + bm.Width, Y: iy + offset.Y + bm.Height},
	}
	img := &image.Alpha{Pix: bm.Pix, Stride: bm.Stride, Rect: image.Rect(0, 0, bm.Width, bm.Height)}
	return dr, img, image.Point{}, adv, true
}

func (a *faceImpl) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	i := a.scaler.Index(r)
	bm, offset, adv, err := a.scaler.Glyph(i, a.hinting)
	if err != nil {
		return fixed.Rectangle26_6{}, 0, false
	}
	bounds = fixed.Rectangle26_6{
		Min: fixed.P(offset.X, offset.Y),
		Max: fixed.P(offset.X+bm.Width, offset.Y+bm.Height),
	}
	return bounds, adv, true
}

func (a *faceImpl) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	i := a.scaler.Index(r)
	_, _, adv, err := a.scaler.Glyph(i, a.hinting)
	if err != nil {
		return 0, false
	}
	return adv, true
}

func (a *faceImpl) Metrics() font.Metrics {
	b := a.font.Bounds()
	upm := float64(a.font.UnitsPerEm())
	if upm == 0 {
		return font.Metrics{}
	}
	scale := a.scaler.scale
	return font.Metrics{
		Height:  fixed.I(int(float64(int(b.YMax)-int(b.YMin)) * scale)),
		Ascent:  fixed.I(int(float64(b.YMax) * scale)),
		Descent: fixed.I(int(float64(-b.YMin) * scale)),
	}
}
