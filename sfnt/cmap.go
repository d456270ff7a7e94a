// Copyright 2010-2017 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package sfnt

// cmapSubtable is one character-map encoding subtable: a codepoint to
// glyph-index lookup, plus the platform/encoding pair used to rank
// subtables when more than one is present.
type cmapSubtable interface {
	platformID() uint16
	encodingID() uint16
	lookup(r rune) GlyphIndex
}

// byteEncodingSubtable is cmap Format 0: a flat 256-entry byte table,
// suitable only for single-byte (Latin-1-ish) encodings.
type byteEncodingSubtable struct {
	platform, encoding uint16
	glyphIDs           [256]byte
}

func (s *byteEncodingSubtable) platformID() uint16 { return s.platform }
func (s *byteEncodingSubtable) encodingID() uint16  { return s.encoding }
func (s *byteEncodingSubtable) lookup(r rune) GlyphIndex {
	if r < 0 || r > 255 {
		return 0
	}
	return GlyphIndex(s.glyphIDs[r])
}

// highByteMappingSubtable is cmap Format 2: used by legacy CJK
// encodings where a lead byte selects a 256-entry sub-header whose
// range of trail bytes maps into a shared glyph-index array.
type highByteMappingSubtable struct {
	platform, encoding uint16
	subHeaderKeys      [256]uint16 // byte offset / 8 into subHeaders, indexed by high byte
	subHeaders         []highByteSubHeader
	glyphIDArray       []uint16
}

type highByteSubHeader struct {
	firstCode     uint16
	entryCount    uint16
	idDelta       int16
	idRangeOffset uint16 // byte offset from itself to glyphIDArray entry
	arrayOffset   int    // resolved index into glyphIDArray for idRangeOffset
}

func (s *highByteMappingSubtable) platformID() uint16 { return s.platform }
func (s *highByteMappingSubtable) encodingID() uint16  { return s.encoding }
func (s *highByteMappingSubtable) lookup(r rune) GlyphIndex {
	if r < 0 || r > 0xFFFF {
		return 0
	}
	v := uint16(r)
	high, low := byte(v>>8), byte(v)
	headerIdx := int(s.subHeaderKeys[high]) / 8
	if headerIdx >= len(s.subHeaders) {
		return 0
	}
	sh := s.subHeaders[headerIdx]
	if headerIdx == 0 {
		// Sub-header 0 is the single-byte range: low byte is the code.
		if high != 0 {
			return 0
		}
	}
	if uint16(low) < sh.firstCode || uint16(low) >= sh.firstCode+sh.entryCount {
		return 0
	}
	i := sh.arrayOffset + int(uint16(low)-sh.firstCode)
	if i < 0 || i >= len(s.glyphIDArray) {
		return 0
	}
	g := s.glyphIDArray[i]
	if g == 0 {
		return 0
	}
	return GlyphIndex(uint16(int32(g) + int32(sh.idDelta)))
}

// segmentMappingSubtable is cmap Format 4: the common Unicode BMP
// encoding, expressed as sorted (start, end, delta, rangeOffset)
// segments.
type segmentMappingSubtable struct {
	platform, encoding uint16
	endCode            []uint16
	startCode          []uint16
	idDelta            []int16
	idRangeOffset      []uint16
	glyphIDArray       []uint16
	// byte offset of idRangeOffset[i] within the subtable, recorded at
	// parse time; lookup resolves idRangeOffset's self-relative
	// addressing from the segment count and does not read it.
	rangeOffsetPos []int
}

func (s *segmentMappingSubtable) platformID() uint16 { return s.platform }
func (s *segmentMappingSubtable) encodingID() uint16  { return s.encoding }
func (s *segmentMappingSubtable) lookup(r rune) GlyphIndex {
	if r < 0 || r > 0xFFFF {
		return 0
	}
	c := uint16(r)
	// Segments are sorted ascending by endCode; linear scan is fine
	// for the modest segment counts real fonts carry.
	for i, end := range s.endCode {
		if c > end {
			continue
		}
		if c < s.startCode[i] {
			return 0
		}
		if s.idRangeOffset[i] == 0 {
			return GlyphIndex(uint16(int32(c) + int32(s.idDelta[i])))
		}
		// glyphIDArray index = idRangeOffset[i]/2 + (c - startCode[i]) -
		// (segCount - i), the standard self-relative addressing rule
		// for format 4 (the position of idRangeOffset[i] itself is the
		// base from which its byte value is measured).
		arrIdx := int(s.idRangeOffset[i])/2 + int(c-s.startCode[i]) - (len(s.endCode) - i)
		if arrIdx < 0 || arrIdx >= len(s.glyphIDArray) {
			return 0
		}
		g := s.glyphIDArray[arrIdx]
		if g == 0 {
			return 0
		}
		return GlyphIndex(uint16(int32(g) + int32(s.idDelta[i])))
	}
	return 0
}

// trimmedSubtable is cmap Format 6: a dense run starting at firstCode.
type trimmedSubtable struct {
	platform, encoding uint16
	firstCode          uint16
	glyphIDs           []uint16
}

func (s *trimmedSubtable) platformID() uint16 { return s.platform }
func (s *trimmedSubtable) encodingID() uint16  { return s.encoding }
func (s *trimmedSubtable) lookup(r rune) GlyphIndex {
	if r < int32(s.firstCode) {
		return 0
	}
	i := int(uint16(r) - s.firstCode)
	if i < 0 || i >= len(s.glyphIDs) {
		return 0
	}
	return GlyphIndex(s.glyphIDs[i])
}

// parseCmap decodes every encoding subtable named in the cmap
// directory; the Table Parser preserves all of them, in file order.
// Font.Index picks one at lookup time.
func (f *Font) parseCmap(b []byte) error {
	r := newReader(b)
	if _, err := r.u16(); err != nil { // version
		return err
	}
	numTables, err := r.u16()
	if err != nil {
		return err
	}
	type encRecord struct {
		platform, encoding uint16
		offset             uint32
	}
	records := make([]encRecord, numTables)
	for i := range records {
		p, err := r.u16()
		if err != nil {
			return err
		}
		e, err := r.u16()
		if err != nil {
			return err
		}
		o, err := r.u32()
		if err != nil {
			return err
		}
		records[i] = encRecord{p, e, o}
	}
	for _, rec := range records {
		if uint64(rec.offset) >= uint64(len(b)) {
			continue
		}
		sr := newReader(b[rec.offset:])
		format, err := sr.u16()
		if err != nil {
			continue
		}
		switch format {
		case 0:
			st, err := parseByteEncodingSubtable(sr, rec.platform, rec.encoding)
			if err != nil {
				continue
			}
			f.cmapSubtables = append(f.cmapSubtables, st)
		case 2:
			st, err := parseHighByteMappingSubtable(sr, rec.platform, rec.encoding)
			if err != nil {
				continue
			}
			f.cmapSubtables = append(f.cmapSubtables, st)
		case 4:
			st, err := parseSegmentMappingSubtable(sr, rec.platform, rec.encoding)
			if err != nil {
				continue
			}
			f.cmapSubtables = append(f.cmapSubtables, st)
		case 6:
			st, err := parseTrimmedSubtable(sr, rec.platform, rec.encoding)
			if err != nil {
				continue
			}
			f.cmapSubtables = append(f.cmapSubtables, st)
		}
	}
	return nil
}

func parseByteEncodingSubtable(r *reader, platform, encoding uint16) (*byteEncodingSubtable, error) {
	if _, err := r.u16(); err != nil { // length
		return nil, err
	}
	if _, err := r.u16(); err != nil { // language
		return nil, err
	}
	st := &byteEncodingSubtable{platform: platform, encoding: encoding}
	for i := 0; i < 256; i++ {
		v, err := r.u8()
		if err != nil {
			return nil, err
		}
		st.glyphIDs[i] = v
	}
	return st, nil
}

func parseHighByteMappingSubtable(r *reader, platform, encoding uint16) (*highByteMappingSubtable, error) {
	if _, err := r.u16(); err != nil { // length
		return nil, err
	}
	if _, err := r.u16(); err != nil { // language
		return nil, err
	}
	st := &highByteMappingSubtable{platform: platform, encoding: encoding}
	maxHeaderIdx := 0
	for i := 0; i < 256; i++ {
		v, err := r.u16()
		if err != nil {
			return nil, err
		}
		st.subHeaderKeys[i] = v
		if int(v)/8 > maxHeaderIdx {
			maxHeaderIdx = int(v) / 8
		}
	}
	st.subHeaders = make([]highByteSubHeader, maxHeaderIdx+1)
	for i := range st.subHeaders {
		firstCode, err := r.u16()
		if err != nil {
			return nil, err
		}
		entryCount, err := r.u16()
		if err != nil {
			return nil, err
		}
		idDelta, err := r.i16()
		if err != nil {
			return nil, err
		}
		idRangeOffset, err := r.u16()
		if err != nil {
			return nil, err
		}
		st.subHeaders[i] = highByteSubHeader{firstCode, entryCount, idDelta, idRangeOffset, 0}
	}
	// Remaining bytes are the shared glyphIDArray.
	n := r.remaining() / 2
	st.glyphIDArray = make([]uint16, n)
	for i := 0; i < n; i++ {
		v, err := r.u16()
		if err != nil {
			return nil, err
		}
		st.glyphIDArray[i] = v
	}
	// Resolve each sub-header's self-relative idRangeOffset into a
	// glyphIDArray index, mirroring the format-4 resolution below.
	for i := range st.subHeaders {
		sh := &st.subHeaders[i]
		if sh.idRangeOffset == 0 {
			continue
		}
		// idRangeOffset is a byte offset from the field's own position
		// to the first relevant glyphIDArray entry; since we've already
		// split subHeaders from glyphIDArray, recompute relative to the
		// start of glyphIDArray using the known subHeaders table size.
		// The field sits 6 bytes into its 8-byte sub-header.
		headerBytesAfter := (len(st.subHeaders)-i)*8 - 6
		byteIntoArray := int(sh.idRangeOffset) - headerBytesAfter
		sh.arrayOffset = byteIntoArray / 2
	}
	return st, nil
}

func parseSegmentMappingSubtable(r *reader, platform, encoding uint16) (*segmentMappingSubtable, error) {
	if _, err := r.u16(); err != nil { // length
		return nil, err
	}
	if _, err := r.u16(); err != nil { // language
		return nil, err
	}
	segCountX2, err := r.u16()
	if err != nil {
		return nil, err
	}
	segCount := int(segCountX2 / 2)
	if err := r.skip(6); err != nil { // searchRange, entrySelector, rangeShift
		return nil, err
	}
	st := &segmentMappingSubtable{platform: platform, encoding: encoding}
	st.endCode = make([]uint16, segCount)
	for i := range st.endCode {
		v, err := r.u16()
		if err != nil {
			return nil, err
		}
		st.endCode[i] = v
	}
	if _, err := r.u16(); err != nil { // reservedPad
		return nil, err
	}
	st.startCode = make([]uint16, segCount)
	for i := range st.startCode {
		v, err := r.u16()
		if err != nil {
			return nil, err
		}
		st.startCode[i] = v
	}
	st.idDelta = make([]int16, segCount)
	for i := range st.idDelta {
		v, err := r.i16()
		if err != nil {
			return nil, err
		}
		st.idDelta[i] = v
	}
	st.idRangeOffset = make([]uint16, segCount)
	st.rangeOffsetPos = make([]int, segCount)
	for i := range st.idRangeOffset {
		st.rangeOffsetPos[i] = r.pos
		v, err := r.u16()
		if err != nil {
			return nil, err
		}
		st.idRangeOffset[i] = v
	}
	n := r.remaining() / 2
	st.glyphIDArray = make([]uint16, n)
	for i := 0; i < n; i++ {
		v, err := r.u16()
		if err != nil {
			return nil, err
		}
		st.glyphIDArray[i] = v
	}
	return st, nil
}

func parseTrimmedSubtable(r *reader, platform, encoding uint16) (*trimmedSubtable, error) {
	if _, err := r.u16(); err != nil { // length
		return nil, err
	}
	if _, err := r.u16(); err != nil { // language
		return nil, err
	}
	firstCode, err := r.u16()
	if err != nil {
		return nil, err
	}
	entryCount, err := r.u16()
	if err != nil {
		return nil, err
	}
	st := &trimmedSubtable{platform: platform, encoding: encoding, firstCode: firstCode}
	st.glyphIDs = make([]uint16, entryCount)
	for i := range st.glyphIDs {
		v, err := r.u16()
		if err != nil {
			return nil, err
		}
		st.glyphIDs[i] = v
	}
	return st, nil
}

// subtablePriority ranks (platform, encoding) pairs the way real
// clients do: prefer a Windows Unicode BMP subtable, then Unicode
// platform, then symbol, then Mac Roman, then anything else.
func subtablePriority(platform, encoding uint16) int {
	switch {
	case platform == 3 && encoding == 1:
		return 0
	case platform == 0:
		return 1
	case platform == 3 && encoding == 0:
		return 2
	case platform == 1 && encoding == 0:
		return 3
	default:
		return 4
	}
}

// Index maps a Unicode code point to a glyph index using the best
// available cmap subtable, or 0 (the missing glyph) if none maps it.
func (f *Font) Index(r rune) GlyphIndex {
	var best cmapSubtable
	bestRank := 1 << 30
	for _, st := range f.cmapSubtables {
		if rank := subtablePriority(st.platformID(), st.encodingID()); rank < bestRank {
			bestRank = rank
			best = st
		}
	}
	if best == nil {
		return 0
	}
	return best.lookup(r)
}
