// Copyright 2010-2017 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package sfnt

// OutlinePoint is one contour point in whatever coordinate domain the
// caller is assembling in: font units for an unhinted outline, device
// pixels for a hinted one. The Outline Assembler only cares about
// position and the on-curve flag.
type OutlinePoint struct {
	X, Y    float64
	OnCurve bool
}

// Point is a vertex of an assembled Outline.
type Point struct {
	X, Y float64
}

// Primitive is either a Line or a Quad, indexing into an Outline's
// Points array.
type Primitive interface {
	isPrimitive()
}

// Line is a straight segment from Points[A] to Points[B].
type Line struct{ A, B int }

func (Line) isPrimitive() {}

// Quad is a quadratic Bezier segment from Points[A] through control
// point Points[C] to Points[B].
type Quad struct{ A, C, B int }

func (Quad) isPrimitive() {}

// Outline is the Outline Assembler's output: a point array and the
// ordered primitive list a rasterizer consumes.
type Outline struct {
	Points     []Point
	Primitives []Primitive
}

func midpoint(a, b OutlinePoint) Point {
	return Point{(a.X + b.X) / 2, (a.Y + b.Y) / 2}
}

// AssembleOutline converts a flat point stream plus per-contour
// end-point indices into line and quadratic-Bezier primitives,
// synthesizing an on-curve midpoint whenever two off-curve points
// appear consecutively (TrueType's implicit on-curve convention).
func AssembleOutline(points []OutlinePoint, endPoints []uint16) (*Outline, error) {
	out := &Outline{}
	start := 0
	for _, end := range endPoints {
		if int(end) >= len(points) || int(end) < start {
			return nil, InvalidGlyphError("contour end point out of range")
		}
		assembleContour(points[start:end+1], out)
		start = int(end) + 1
	}
	return out, nil
}

// assembleContour assembles one contour's points, appending the
// resulting vertices and primitives to out.
func assembleContour(pts []OutlinePoint, out *Outline) {
	n := len(pts)
	if n == 0 {
		return
	}
	at := func(i int) OutlinePoint { return pts[((i%n)+n)%n] }

	start := -1
	for i := 0; i < n; i++ {
		if at(i).OnCurve {
			start = i
			break
		}
	}

	base := len(out.Points)
	var startPt Point
	if start == -1 {
		// Every point in the contour is off-curve: synthesize a start
		// from the midpoint of the last and first points.
		startPt = midpoint(at(0), at(n-1))
	} else {
		p := at(start)
		startPt = Point{float64(p.X), float64(p.Y)}
	}
	out.Points = append(out.Points, startPt)
	curIdx := base

	var haveCtrl bool
	var ctrl OutlinePoint

	// When the start point is a real, already-numbered point in pts
	// (as opposed to a synthesized midpoint), the cycle reaches it
	// again after n-1 more points; stop one short so the closing
	// logic below isn't handed a duplicate of the start vertex.
	steps := n
	if start != -1 {
		steps = n - 1
	}
	for count := 0; count < steps; count++ {
		p := at(start + 1 + count)
		if p.OnCurve {
			out.Points = append(out.Points, Point{p.X, p.Y})
			endIdx := len(out.Points) - 1
			if haveCtrl {
				out.Points = append(out.Points, Point{ctrl.X, ctrl.Y})
				ctrlIdx := len(out.Points) - 1
				out.Primitives = append(out.Primitives, Quad{curIdx, ctrlIdx, endIdx})
				haveCtrl = false
			} else {
				out.Primitives = append(out.Primitives, Line{curIdx, endIdx})
			}
			curIdx = endIdx
		} else {
			if haveCtrl {
				mid := midpoint(ctrl, p)
				out.Points = append(out.Points, mid)
				midIdx := len(out.Points) - 1
				out.Points = append(out.Points, Point{ctrl.X, ctrl.Y})
				ctrlIdx := len(out.Points) - 1
				out.Primitives = append(out.Primitives, Quad{curIdx, ctrlIdx, midIdx})
				curIdx = midIdx
			}
			ctrl = p
			haveCtrl = true
		}
	}

	// Close the contour back to its start point.
	if haveCtrl {
		out.Points = append(out.Points, Point{ctrl.X, ctrl.Y})
		ctrlIdx := len(out.Points) - 1
		out.Primitives = append(out.Primitives, Quad{curIdx, ctrlIdx, base})
	} else if curIdx != base {
		out.Primitives = append(out.Primitives, Line{curIdx, base})
	}
}

// Outline assembles the unhinted, font-unit outline of a simple
// glyph. Composite glyphs return ErrUnassembled, per this package's
// Non-goal of assembling composite component trees.
func (f *Font) Outline(i GlyphIndex) (*Outline, error) {
	g, err := f.Glyph(i)
	if err != nil {
		return nil, err
	}
	switch g := g.(type) {
	case NoneGlyph:
		return &Outline{}, nil
	case *SimpleGlyph:
		pts := make([]OutlinePoint, len(g.Points))
		for i, p := range g.Points {
			pts[i] = OutlinePoint{X: float64(p.X), Y: float64(p.Y), OnCurve: p.OnCurve}
		}
		return AssembleOutline(pts, g.EndPoints)
	case *CompositeGlyph:
		return nil, ErrUnassembled
	default:
		return nil, InvalidGlyphError("unrecognized glyph data variant")
	}
}
