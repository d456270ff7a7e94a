// Copyright 2010-2017 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

// Package sfnt implements the Binary Reader, Table Parser and Outline
// Assembler for TrueType-style scalable outline fonts: it decodes an
// sfnt byte stream into an immutable Font model and, per glyph,
// assembles the on/off-curve point stream into line and quadratic
// Bezier primitives ready for a rasterizer. It does not perform
// hinting (see package hint) or rasterization (see package raster).
package sfnt

import "sort"

// GlyphIndex identifies a glyph within a Font. Index 0 is always the
// "missing glyph" / .notdef glyph.
type GlyphIndex uint16

// Bounds is a glyph or font bounding box in font units.
type Bounds struct {
	XMin, YMin, XMax, YMax int16
}

// HMetric is one glyph's horizontal metrics.
type HMetric struct {
	AdvanceWidth    uint16
	LeftSideBearing int16
}

// MaxProfile holds the resource limits the Hinting VM must honor,
// taken directly from the font's maxp table.
type MaxProfile struct {
	NumGlyphs              int
	MaxPoints              uint16
	MaxContours            uint16
	MaxComponentPoints     uint16
	MaxComponentContours   uint16
	MaxZones               uint16
	MaxTwilightPoints      uint16
	MaxStorage             uint16
	MaxFunctionDefs        uint16
	MaxInstructionDefs     uint16
	MaxStackElements       uint16
	MaxSizeOfInstructions  uint16
	MaxComponentElements   uint16
	MaxComponentDepth      uint16
}

// Font is the parsed, immutable form of one sfnt byte stream: the
// table-parser output described by the data model. It is safe for
// concurrent read access from multiple goroutines; each goroutine
// that hints or scales glyphs from it should own its own VM state.
type Font struct {
	unitsPerEm       uint16
	bounds           Bounds
	indexToLocFormat int16

	maxp MaxProfile

	loca []uint32 // length NumGlyphs+1, byte offsets into glyf
	glyf []byte   // raw glyf table bytes

	numHMetrics int
	hmtx        []HMetric

	cmapSubtables []cmapSubtable

	cvt  []int16
	fpgm []byte
	prep []byte

	kern *kernTable
	name *nameTable
	os2  *os2Table
	gasp *gaspTable
	hdmx *hdmxTable
	post []byte // raw post table bytes, retained verbatim like fpgm/prep rather than decoded into glyph-name records
}

// UnitsPerEm returns the font's design grid resolution (the "em
// square" side length in font units).
func (f *Font) UnitsPerEm() uint16 { return f.unitsPerEm }

// Bounds returns the font-wide glyph bounding box in font units.
func (f *Font) Bounds() Bounds { return f.bounds }

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int { return f.maxp.NumGlyphs }

// MaxProfile returns the VM resource limits declared by the font.
func (f *Font) MaxProfile() MaxProfile { return f.maxp }

// HMetric returns the horizontal metrics for glyph i. Glyph indices
// beyond the last parsed record get the last record's advance width
// and a zero left side bearing.
func (f *Font) HMetric(i GlyphIndex) HMetric {
	if len(f.hmtx) == 0 {
		return HMetric{}
	}
	idx := int(i)
	if idx >= len(f.hmtx) {
		last := f.hmtx[len(f.hmtx)-1]
		return HMetric{AdvanceWidth: last.AdvanceWidth, LeftSideBearing: 0}
	}
	return f.hmtx[idx]
}

// CVT returns the font's Control Value Table, in font units.
func (f *Font) CVT() []int16 { return f.cvt }

// FontProgram returns the bytecode run once, at font load.
func (f *Font) FontProgram() []byte { return f.fpgm }

// CVTProgram returns the bytecode run once per distinct point size.
func (f *Font) CVTProgram() []byte { return f.prep }

// PostTable returns the font's raw post table bytes, or nil if the
// font has none. The table is not decoded into glyph-name records;
// nothing in this package consumes those, so the bytes are retained
// as-is for a caller that wants the italic angle, underline metrics,
// or monospace flag out of the fixed-size header.
func (f *Font) PostTable() []byte { return f.post }

// Kerning returns the signed kerning adjustment, in font units,
// between glyphs i0 and i1 (i0 immediately preceding i1). It returns
// 0 if there is no kern table or no matching pair.
func (f *Font) Kerning(i0, i1 GlyphIndex) int16 {
	if f.kern == nil {
		return 0
	}
	return f.kern.lookup(i0, i1)
}

// Name returns the font's family name, or "" if the name table did
// not carry one in a recognized platform/encoding.
func (f *Font) Name() string {
	if f.name == nil {
		return ""
	}
	return f.name.family
}

// tableEntry is one table-directory record.
type tableEntry struct {
	tag            string
	checksum       uint32
	offset, length uint32
}

const (
	sfntVersionTrueType = 0x00010000
	sfntVersionTrue     = 0x74727565 // "true"
)

// Parse decodes an sfnt byte stream into a Font. Parse errors abort
// the whole load: a non-nil error means no Font is returned.
//
// The directory is scanned once, then tables are parsed in dependency
// order (MaxProfile, then Header, then Location, then everything
// else) regardless of their order in the file, because Location
// parsing needs both the glyph count from MaxProfile and the offset
// format from Header.
func Parse(data []byte) (*Font, error) {
	r := newReader(data)
	version, err := r.u32()
	if err != nil {
		return nil, err
	}
	if version != sfntVersionTrueType && version != sfntVersionTrue {
		return nil, MalformedDataError("unrecognized sfnt version")
	}
	numTables, err := r.u16()
	if err != nil {
		return nil, err
	}
	if err := r.skip(6); err != nil { // searchRange, entrySelector, rangeShift
		return nil, err
	}

	entries := make(map[string]tableEntry, numTables)
	var order []string
	for i := 0; i < int(numTables); i++ {
		tag, err := r.tag()
		if err != nil {
			return nil, err
		}
		checksum, err := r.u32()
		if err != nil {
			return nil, err
		}
		offset, err := r.u32()
		if err != nil {
			return nil, err
		}
		length, err := r.u32()
		if err != nil {
			return nil, err
		}
		if uint64(offset)+uint64(length) > uint64(len(data)) {
			return nil, MalformedDataError("table extends past end of file")
		}
		entries[tag] = tableEntry{tag, checksum, offset, length}
		order = append(order, tag)
	}

	table := func(tag string) ([]byte, bool) {
		e, ok := entries[tag]
		if !ok {
			return nil, false
		}
		return data[e.offset : e.offset+e.length], true
	}
	requireTable := func(tag string) ([]byte, error) {
		b, ok := table(tag)
		if !ok {
			return nil, MissingTableError(tag)
		}
		return b, nil
	}

	f := &Font{}

	maxpData, err := requireTable("maxp")
	if err != nil {
		return nil, err
	}
	if err := f.parseMaxp(maxpData); err != nil {
		return nil, err
	}

	headData, err := requireTable("head")
	if err != nil {
		return nil, err
	}
	if err := f.parseHead(headData); err != nil {
		return nil, err
	}

	locaData, err := requireTable("loca")
	if err != nil {
		return nil, err
	}
	if err := f.parseLoca(locaData); err != nil {
		return nil, err
	}

	glyfData, err := requireTable("glyf")
	if err != nil {
		return nil, err
	}
	f.glyf = glyfData

	// Remaining tables, in tag order. hmtx needs the metric count from
	// hhea, and tag order parses hhea first.
	rest := make([]string, 0, len(order))
	for _, tag := range order {
		switch tag {
		case "maxp", "head", "loca", "glyf":
		default:
			rest = append(rest, tag)
		}
	}
	sort.Strings(rest)
	for _, tag := range rest {
		b, _ := table(tag)
		switch tag {
		case "hhea":
			if err := f.parseHhea(b); err != nil {
				return nil, err
			}
		case "hmtx":
			if err := f.parseHmtx(b); err != nil {
				return nil, err
			}
		case "cmap":
			if err := f.parseCmap(b); err != nil {
				return nil, err
			}
		case "cvt ":
			if err := f.parseCVT(b); err != nil {
				return nil, err
			}
		case "fpgm":
			f.fpgm = b
		case "prep":
			f.prep = b
		case "kern":
			if err := f.parseKern(b); err != nil {
				return nil, err
			}
		case "name":
			if err := f.parseName(b); err != nil {
				return nil, err
			}
		case "OS/2":
			if err := f.parseOS2(b); err != nil {
				return nil, err
			}
		case "gasp":
			if err := f.parseGasp(b); err != nil {
				return nil, err
			}
		case "hdmx":
			if err := f.parseHdmx(b); err != nil {
				return nil, err
			}
		case "post":
			f.post = b
		}
	}

	if f.hmtx == nil {
		return nil, MissingTableError("hmtx")
	}

	return f, nil
}
