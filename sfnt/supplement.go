// Copyright 2010-2017 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package sfnt

import "sort"

// kernTable is a parsed, version-0, format-0 kern subtable: a sorted
// array of (left, right, value) pairs, binary-searchable.
type kernTable struct {
	pairs []kernPair
}

type kernPair struct {
	left, right GlyphIndex
	value       int16
}

func (k *kernTable) lookup(i0, i1 GlyphIndex) int16 {
	pairs := k.pairs
	i := sort.Search(len(pairs), func(i int) bool {
		if pairs[i].left != i0 {
			return pairs[i].left >= i0
		}
		return pairs[i].right >= i1
	})
	if i < len(pairs) && pairs[i].left == i0 && pairs[i].right == i1 {
		return pairs[i].value
	}
	return 0
}

// parseKern decodes the legacy kern table: version 0, one or more
// subtables, using only format-0 (ordered list) horizontal-coverage
// subtables, which is what every common font tool still emits.
func (f *Font) parseKern(b []byte) error {
	r := newReader(b)
	version, err := r.u16()
	if err != nil {
		return err
	}
	if version != 0 {
		return nil // format 1 (Apple) kern tables are not recognized
	}
	nTables, err := r.u16()
	if err != nil {
		return err
	}
	kt := &kernTable{}
	for t := 0; t < int(nTables); t++ {
		if _, err := r.u16(); err != nil { // subtable version
			return err
		}
		length, err := r.u16()
		if err != nil {
			return err
		}
		subStart := r.pos
		coverage, err := r.u16()
		if err != nil {
			return err
		}
		format := coverage >> 8
		if format != 0 || coverage&0x0001 == 0 { // bit 0: horizontal data
			if err := r.seek(subStart + int(length) - 4); err != nil {
				return err
			}
			continue
		}
		nPairs, err := r.u16()
		if err != nil {
			return err
		}
		if err := r.skip(6); err != nil { // searchRange, entrySelector, rangeShift
			return err
		}
		for i := 0; i < int(nPairs); i++ {
			left, err := r.u16()
			if err != nil {
				return err
			}
			right, err := r.u16()
			if err != nil {
				return err
			}
			value, err := r.i16()
			if err != nil {
				return err
			}
			kt.pairs = append(kt.pairs, kernPair{GlyphIndex(left), GlyphIndex(right), value})
		}
	}
	sort.Slice(kt.pairs, func(i, j int) bool {
		if kt.pairs[i].left != kt.pairs[j].left {
			return kt.pairs[i].left < kt.pairs[j].left
		}
		return kt.pairs[i].right < kt.pairs[j].right
	})
	f.kern = kt
	return nil
}

// nameTable holds only the family name: the one record consumers
// actually read from a font without doing full internationalized
// string-table resolution.
type nameTable struct {
	family string
}

const nameIDFamily = 1

// parseName decodes the name table far enough to extract a family
// name record, preferring a Windows Unicode BMP record then a
// Macintosh Roman one.
func (f *Font) parseName(b []byte) error {
	r := newReader(b)
	if _, err := r.u16(); err != nil { // format
		return err
	}
	count, err := r.u16()
	if err != nil {
		return err
	}
	storageOffset, err := r.u16()
	if err != nil {
		return err
	}
	type record struct {
		platform, encoding, language, nameID uint16
		length, offset                       uint16
	}
	records := make([]record, count)
	for i := range records {
		p, err := r.u16()
		if err != nil {
			return err
		}
		e, err := r.u16()
		if err != nil {
			return err
		}
		l, err := r.u16()
		if err != nil {
			return err
		}
		nid, err := r.u16()
		if err != nil {
			return err
		}
		length, err := r.u16()
		if err != nil {
			return err
		}
		offset, err := r.u16()
		if err != nil {
			return err
		}
		records[i] = record{p, e, l, nid, length, offset}
	}

	best := -1
	bestRank := 1 << 30
	for i, rec := range records {
		if rec.nameID != nameIDFamily {
			continue
		}
		rank := 2
		switch {
		case rec.platform == 3:
			rank = 0
		case rec.platform == 1:
			rank = 1
		}
		if rank < bestRank {
			bestRank = rank
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	rec := records[best]
	start := int(storageOffset) + int(rec.offset)
	end := start + int(rec.length)
	if start < 0 || end > len(b) {
		return nil
	}
	raw := b[start:end]
	if rec.platform == 3 || rec.platform == 0 {
		f.name = &nameTable{family: decodeUTF16BE(raw)}
	} else {
		f.name = &nameTable{family: string(raw)}
	}
	return nil
}

func decodeUTF16BE(b []byte) string {
	runes := make([]rune, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		runes = append(runes, rune(uint16(b[i])<<8|uint16(b[i+1])))
	}
	return string(runes)
}

// os2Table carries the handful of OS/2 fields consumers commonly
// need: weight/width class, embedding restrictions, and the
// typographic vertical metrics.
type os2Table struct {
	WeightClass, WidthClass                uint16
	FSType                                 uint16
	TypoAscender, TypoDescender, TypoLineGap int16
}

func (f *Font) parseOS2(b []byte) error {
	r := newReader(b)
	if err := r.skip(2 + 2); err != nil { // version, xAvgCharWidth
		return err
	}
	weightClass, err := r.u16()
	if err != nil {
		return err
	}
	widthClass, err := r.u16()
	if err != nil {
		return err
	}
	fsType, err := r.u16()
	if err != nil {
		return err
	}
	// subscript/superscript/strikeout metrics (10 fields) + family
	// class + panose (10 bytes) + 4 unicode-range dwords + vendor ID.
	if err := r.skip(2*10 + 2 + 10 + 4*4 + 4 + 2 + 2 + 2); err != nil {
		return err
	}
	typoAscender, err := r.i16()
	if err != nil {
		return err
	}
	typoDescender, err := r.i16()
	if err != nil {
		return err
	}
	typoLineGap, err := r.i16()
	if err != nil {
		return err
	}
	f.os2 = &os2Table{weightClass, widthClass, fsType, typoAscender, typoDescender, typoLineGap}
	return nil
}

// WeightClass and WidthClass expose the OS/2 weight and width classes
// parsed above; they return zero if no OS/2 table was present.
func (f *Font) WeightClass() uint16 {
	if f.os2 == nil {
		return 0
	}
	return f.os2.WeightClass
}

func (f *Font) WidthClass() uint16 {
	if f.os2 == nil {
		return 0
	}
	return f.os2.WidthClass
}

// gaspRange is one entry of the grid-fit/grayscale behavior table.
type gaspRange struct {
	maxPPEM  uint16
	behavior uint16
}

type gaspTable struct {
	ranges []gaspRange
}

const (
	gaspGridfit          = 0x0001
	gaspDoGray           = 0x0002
	gaspSymmetricGridfit = 0x0004
	gaspSymmetricSmooth  = 0x0008
)

func (f *Font) parseGasp(b []byte) error {
	r := newReader(b)
	if _, err := r.u16(); err != nil { // version
		return err
	}
	n, err := r.u16()
	if err != nil {
		return err
	}
	gt := &gaspTable{ranges: make([]gaspRange, n)}
	for i := range gt.ranges {
		maxPPEM, err := r.u16()
		if err != nil {
			return err
		}
		behavior, err := r.u16()
		if err != nil {
			return err
		}
		gt.ranges[i] = gaspRange{maxPPEM, behavior}
	}
	f.gasp = gt
	return nil
}

// GridFit reports whether the font requests grid-fitting (hinting)
// at the given PPEM, per the gasp table; fonts without a gasp table
// default to true (always hint), matching common renderer behavior.
func (f *Font) GridFit(ppem uint16) bool {
	if f.gasp == nil || len(f.gasp.ranges) == 0 {
		return true
	}
	for _, r := range f.gasp.ranges {
		if ppem <= r.maxPPEM {
			return r.behavior&gaspGridfit != 0
		}
	}
	return f.gasp.ranges[len(f.gasp.ranges)-1].behavior&gaspGridfit != 0
}

// hdmxTable holds the precomputed per-pixel-size device advance
// widths some fonts ship to avoid rounding drift at small sizes.
type hdmxTable struct {
	recordSize int
	records    map[byte][]byte // pixelSize -> per-glyph width array
}

func (f *Font) parseHdmx(b []byte) error {
	r := newReader(b)
	if _, err := r.u16(); err != nil { // version
		return err
	}
	numRecords, err := r.u16()
	if err != nil {
		return err
	}
	sizeDeviceRecord, err := r.i32()
	if err != nil {
		return err
	}
	ht := &hdmxTable{recordSize: int(sizeDeviceRecord), records: make(map[byte][]byte, numRecords)}
	for i := 0; i < int(numRecords); i++ {
		pixelSize, err := r.u8()
		if err != nil {
			return err
		}
		if _, err := r.u8(); err != nil { // maxWidth
			return err
		}
		widths := int(sizeDeviceRecord) - 2
		data, err := r.bytes(widths)
		if err != nil {
			return err
		}
		ht.records[pixelSize] = data
	}
	f.hdmx = ht
	return nil
}

// DeviceWidth returns the font's precomputed hdmx advance width for
// glyph i at the given pixel size, and whether one was present.
func (f *Font) DeviceWidth(pixelSize byte, i GlyphIndex) (byte, bool) {
	if f.hdmx == nil {
		return 0, false
	}
	widths, ok := f.hdmx.records[pixelSize]
	if !ok || int(i) >= len(widths) {
		return 0, false
	}
	return widths[i], true
}
