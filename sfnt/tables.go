// Copyright 2010-2017 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package sfnt

// parseMaxp decodes the maxp table: glyph count plus every resource
// limit the Hinting VM must size its stack, storage and zones to.
func (f *Font) parseMaxp(b []byte) error {
	r := newReader(b)
	version, err := r.u32()
	if err != nil {
		return err
	}
	numGlyphs, err := r.u16()
	if err != nil {
		return err
	}
	f.maxp.NumGlyphs = int(numGlyphs)
	if version < 0x00010000 || r.remaining() < 26 {
		// Version 0.5 (CFF-flavored fonts) carries only numGlyphs; the
		// rest default to zero, which the VM treats as "no hinting
		// resources available".
		return nil
	}
	fields := []*uint16{
		&f.maxp.MaxPoints, &f.maxp.MaxContours,
		&f.maxp.MaxComponentPoints, &f.maxp.MaxComponentContours,
		&f.maxp.MaxZones, &f.maxp.MaxTwilightPoints,
		&f.maxp.MaxStorage, &f.maxp.MaxFunctionDefs,
		&f.maxp.MaxInstructionDefs, &f.maxp.MaxStackElements,
		&f.maxp.MaxSizeOfInstructions, &f.maxp.MaxComponentElements,
		&f.maxp.MaxComponentDepth,
	}
	for _, field := range fields {
		v, err := r.u16()
		if err != nil {
			return err
		}
		*field = v
	}
	return nil
}

// parseHead decodes the head table: units-per-em, the font-wide
// bounding box and the loca offset format.
func (f *Font) parseHead(b []byte) error {
	r := newReader(b)
	if err := r.skip(4 + 4 + 4 + 4 + 2); err != nil { // version, revision, checksumAdj, magic, flags
		return err
	}
	unitsPerEm, err := r.u16()
	if err != nil {
		return err
	}
	f.unitsPerEm = unitsPerEm
	if err := r.skip(8 + 8); err != nil { // created, modified
		return err
	}
	xMin, err := r.i16()
	if err != nil {
		return err
	}
	yMin, err := r.i16()
	if err != nil {
		return err
	}
	xMax, err := r.i16()
	if err != nil {
		return err
	}
	yMax, err := r.i16()
	if err != nil {
		return err
	}
	f.bounds = Bounds{xMin, yMin, xMax, yMax}
	if err := r.skip(2 + 2 + 2); err != nil { // macStyle, lowestRecPPEM, fontDirectionHint
		return err
	}
	indexToLocFormat, err := r.i16()
	if err != nil {
		return err
	}
	f.indexToLocFormat = indexToLocFormat
	return nil
}

// parseHhea decodes the hhea table far enough to learn the number of
// explicit hmtx records; the ascent/descent/lineGap fields are
// vertical-metrics adjacent and out of scope.
func (f *Font) parseHhea(b []byte) error {
	r := newReader(b)
	if err := r.skip(4 + 2*3 + 2 + 2*2 + 2 + 2*2 + 2 + 2*4 + 2); err != nil {
		return err
	}
	n, err := r.u16()
	if err != nil {
		return err
	}
	f.numHMetrics = int(n)
	return nil
}

// parseHmtx decodes the horizontal metrics table: numHMetrics
// explicit (advanceWidth, lsb) pairs, followed by lsb-only entries
// for any remaining glyphs (they repeat the last advance width).
func (f *Font) parseHmtx(b []byte) error {
	r := newReader(b)
	n := f.numHMetrics
	if n == 0 {
		n = f.maxp.NumGlyphs
	}
	metrics := make([]HMetric, 0, f.maxp.NumGlyphs)
	for i := 0; i < n; i++ {
		aw, err := r.u16()
		if err != nil {
			return err
		}
		lsb, err := r.i16()
		if err != nil {
			return err
		}
		metrics = append(metrics, HMetric{aw, lsb})
	}
	lastAdvance := uint16(0)
	if len(metrics) > 0 {
		lastAdvance = metrics[len(metrics)-1].AdvanceWidth
	}
	for len(metrics) < f.maxp.NumGlyphs {
		lsb, err := r.i16()
		if err != nil {
			// Some fonts omit the trailing lsb-only run entirely.
			break
		}
		metrics = append(metrics, HMetric{lastAdvance, lsb})
	}
	f.hmtx = metrics
	return nil
}

// parseLoca decodes the glyph location index: NumGlyphs+1 byte
// offsets into the glyf table, either packed as half-offsets (short
// format) or literal byte offsets (long format).
func (f *Font) parseLoca(b []byte) error {
	r := newReader(b)
	n := f.maxp.NumGlyphs + 1
	loca := make([]uint32, n)
	if f.indexToLocFormat == 0 {
		for i := 0; i < n; i++ {
			v, err := r.u16()
			if err != nil {
				return err
			}
			loca[i] = uint32(v) * 2
		}
	} else {
		for i := 0; i < n; i++ {
			v, err := r.u32()
			if err != nil {
				return err
			}
			loca[i] = v
		}
	}
	f.loca = loca
	return nil
}

// parseCVT decodes the Control Value Table: a flat run of signed
// 16-bit font-unit values, indexed by the RCVT/WCVTP/WCVTF opcodes.
func (f *Font) parseCVT(b []byte) error {
	r := newReader(b)
	n := len(b) / 2
	cvt := make([]int16, n)
	for i := 0; i < n; i++ {
		v, err := r.i16()
		if err != nil {
			return err
		}
		cvt[i] = v
	}
	f.cvt = cvt
	return nil
}
