// Copyright 2010-2017 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package sfnt

// GlyphData is the tagged union of what a glyph's glyf-table entry
// can be: no outline at all, a simple (contour) glyph, or a composite
// (component) glyph.
type GlyphData interface {
	isGlyphData()
}

// NoneGlyph is an empty glyph (loca start == end), e.g. the space
// character.
type NoneGlyph struct{}

func (NoneGlyph) isGlyphData() {}

// GlyphPoint is one font-unit outline point, as stored in a glyf
// simple-glyph point stream.
type GlyphPoint struct {
	X, Y    int16
	OnCurve bool
}

// SimpleGlyph is a single contour-based glyph outline.
type SimpleGlyph struct {
	Bounds       Bounds
	EndPoints    []uint16 // contour end-point indices, ascending
	Instructions []byte
	Points       []GlyphPoint
}

func (*SimpleGlyph) isGlyphData() {}

// Component flag bits, per the standard composite glyph format.
const (
	compArgsAreWords    = 0x0001
	compArgsAreXYValues = 0x0002
	compRoundXYToGrid   = 0x0004
	compHaveScale       = 0x0008
	compMoreComponents  = 0x0020
	compHaveXYScale     = 0x0040
	compHaveTwoByTwo    = 0x0080
	compHaveInstrs      = 0x0100
	compUseMyMetrics    = 0x0200
	compOverlapCompound = 0x0400
)

// GlyphComponent is one entry of a composite glyph's component list:
// which child glyph to place, how to position it (either an (x,y)
// offset or a point-matching pair, per ARGS_ARE_XY_VALUES), and an
// optional 2x2 transform in F2Dot14.
type GlyphComponent struct {
	Flags uint16
	Glyph GlyphIndex
	Arg1  int16
	Arg2  int16

	// ScaleXX/ScaleXY/ScaleYX/ScaleYY form the component's transform
	// matrix, identity unless WE_HAVE_A_SCALE / _AN_X_AND_Y_SCALE /
	// _A_TWO_BY_TWO was set.
	ScaleXX, ScaleXY, ScaleYX, ScaleYY F2Dot14
}

// ArgsAreXYValues reports whether Arg1/Arg2 are an (x,y) offset
// rather than a pair of point indices to match.
func (c GlyphComponent) ArgsAreXYValues() bool { return c.Flags&compArgsAreXYValues != 0 }

// UseMyMetrics reports whether this component's horizontal metrics
// should be used for the composite as a whole.
func (c GlyphComponent) UseMyMetrics() bool { return c.Flags&compUseMyMetrics != 0 }

// CompositeGlyph is a glyph assembled from references to other
// glyphs. Per this package's contract, components are decoded and
// exposed but never flattened into a hinted outline: Font.Outline
// returns ErrUnassembled for a composite glyph index.
type CompositeGlyph struct {
	Bounds       Bounds
	Components   []GlyphComponent
	Instructions []byte
}

func (*CompositeGlyph) isGlyphData() {}

const f2dot14One = F2Dot14(1 << 14)

// Glyph decodes and returns the glyf-table entry for glyph index i.
func (f *Font) Glyph(i GlyphIndex) (GlyphData, error) {
	idx := int(i)
	if idx < 0 || idx+1 >= len(f.loca) {
		return nil, InvalidGlyphError("glyph index out of range")
	}
	start, end := f.loca[idx], f.loca[idx+1]
	if start > end || uint64(end) > uint64(len(f.glyf)) {
		return nil, MalformedDataError("glyph location out of range")
	}
	if start == end {
		return NoneGlyph{}, nil
	}
	b := f.glyf[start:end]
	r := newReader(b)
	numContours, err := r.i16()
	if err != nil {
		return nil, err
	}
	xMin, err := r.i16()
	if err != nil {
		return nil, err
	}
	yMin, err := r.i16()
	if err != nil {
		return nil, err
	}
	xMax, err := r.i16()
	if err != nil {
		return nil, err
	}
	yMax, err := r.i16()
	if err != nil {
		return nil, err
	}
	bounds := Bounds{xMin, yMin, xMax, yMax}
	if numContours >= 0 {
		return decodeSimpleGlyph(r, bounds, int(numContours))
	}
	return decodeCompositeGlyph(r, bounds)
}

const (
	flagOnCurve      = 0x01
	flagXShort       = 0x02
	flagYShort       = 0x04
	flagRepeat       = 0x08
	flagXSameOrPos   = 0x10
	flagYSameOrPos   = 0x20
	flagOverlapStart = 0x40
)

func decodeSimpleGlyph(r *reader, bounds Bounds, numContours int) (*SimpleGlyph, error) {
	endPts := make([]uint16, numContours)
	for i := range endPts {
		v, err := r.u16()
		if err != nil {
			return nil, err
		}
		endPts[i] = v
	}
	numPoints := 0
	if numContours > 0 {
		numPoints = int(endPts[numContours-1]) + 1
	}
	insLen, err := r.u16()
	if err != nil {
		return nil, err
	}
	instructions, err := r.bytes(int(insLen))
	if err != nil {
		return nil, err
	}

	flags := make([]byte, 0, numPoints)
	for len(flags) < numPoints {
		flag, err := r.u8()
		if err != nil {
			return nil, err
		}
		flags = append(flags, flag)
		if flag&flagRepeat != 0 {
			count, err := r.u8()
			if err != nil {
				return nil, err
			}
			for i := 0; i < int(count) && len(flags) < numPoints; i++ {
				flags = append(flags, flag)
			}
		}
	}
	if len(flags) != numPoints {
		return nil, MalformedDataError("flag run length mismatch")
	}

	xs := make([]int16, numPoints)
	x := int32(0)
	for i, flag := range flags {
		switch {
		case flag&flagXShort != 0:
			v, err := r.u8()
			if err != nil {
				return nil, err
			}
			if flag&flagXSameOrPos != 0 {
				x += int32(v)
			} else {
				x -= int32(v)
			}
		case flag&flagXSameOrPos != 0:
			// repeat previous x
		default:
			v, err := r.i16()
			if err != nil {
				return nil, err
			}
			x += int32(v)
		}
		xs[i] = int16(x)
	}

	ys := make([]int16, numPoints)
	y := int32(0)
	for i, flag := range flags {
		switch {
		case flag&flagYShort != 0:
			v, err := r.u8()
			if err != nil {
				return nil, err
			}
			if flag&flagYSameOrPos != 0 {
				y += int32(v)
			} else {
				y -= int32(v)
			}
		case flag&flagYSameOrPos != 0:
			// repeat previous y
		default:
			v, err := r.i16()
			if err != nil {
				return nil, err
			}
			y += int32(v)
		}
		ys[i] = int16(y)
	}

	points := make([]GlyphPoint, numPoints)
	for i := range points {
		points[i] = GlyphPoint{X: xs[i], Y: ys[i], OnCurve: flags[i]&flagOnCurve != 0}
	}

	return &SimpleGlyph{Bounds: bounds, EndPoints: endPts, Instructions: instructions, Points: points}, nil
}

func decodeCompositeGlyph(r *reader, bounds Bounds) (*CompositeGlyph, error) {
	var components []GlyphComponent
	haveInstructions := false
	for {
		flags, err := r.u16()
		if err != nil {
			return nil, err
		}
		glyphIndex, err := r.u16()
		if err != nil {
			return nil, err
		}
		var arg1, arg2 int16
		if flags&compArgsAreWords != 0 {
			arg1, err = r.i16()
			if err != nil {
				return nil, err
			}
			arg2, err = r.i16()
			if err != nil {
				return nil, err
			}
		} else {
			a1, err := r.i8()
			if err != nil {
				return nil, err
			}
			a2, err := r.i8()
			if err != nil {
				return nil, err
			}
			arg1, arg2 = int16(a1), int16(a2)
		}

		scaleXX, scaleXY, scaleYX, scaleYY := f2dot14One, F2Dot14(0), F2Dot14(0), f2dot14One
		switch {
		case flags&compHaveScale != 0:
			s, err := r.f2dot14()
			if err != nil {
				return nil, err
			}
			scaleXX, scaleYY = s, s
		case flags&compHaveXYScale != 0:
			sx, err := r.f2dot14()
			if err != nil {
				return nil, err
			}
			sy, err := r.f2dot14()
			if err != nil {
				return nil, err
			}
			scaleXX, scaleYY = sx, sy
		case flags&compHaveTwoByTwo != 0:
			xx, err := r.f2dot14()
			if err != nil {
				return nil, err
			}
			xy, err := r.f2dot14()
			if err != nil {
				return nil, err
			}
			yx, err := r.f2dot14()
			if err != nil {
				return nil, err
			}
			yy, err := r.f2dot14()
			if err != nil {
				return nil, err
			}
			scaleXX, scaleXY, scaleYX, scaleYY = xx, xy, yx, yy
		}

		components = append(components, GlyphComponent{
			Flags: flags, Glyph: GlyphIndex(glyphIndex), Arg1: arg1, Arg2: arg2,
			ScaleXX: scaleXX, ScaleXY: scaleXY, ScaleYX: scaleYX, ScaleYY: scaleYY,
		})
		if flags&compHaveInstrs != 0 {
			haveInstructions = true
		}
		if flags&compMoreComponents == 0 {
			break
		}
	}
	var instructions []byte
	if haveInstructions {
		insLen, err := r.u16()
		if err != nil {
			return nil, err
		}
		instructions, err = r.bytes(int(insLen))
		if err != nil {
			return nil, err
		}
	}
	return &CompositeGlyph{Bounds: bounds, Components: components, Instructions: instructions}, nil
}
