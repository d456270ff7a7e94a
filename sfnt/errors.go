// Copyright 2010-2017 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package sfnt

import "fmt"

// MalformedDataError reports a font stream that could not be decoded:
// a short read, a bad checksum, or an offset outside the file.
type MalformedDataError string

func (e MalformedDataError) Error() string { return "sfnt: malformed data: " + string(e) }

// MissingTableError reports that a table required for the requested
// operation is absent from the font.
type MissingTableError string

func (e MissingTableError) Error() string { return "sfnt: missing required table: " + string(e) }

// InvalidInstructionError reports an undefined or context-disallowed
// hinting opcode encountered at a given program counter.
type InvalidInstructionError struct {
	PC     int
	Opcode byte
}

func (e InvalidInstructionError) Error() string {
	return fmt.Sprintf("sfnt: invalid instruction 0x%02x at pc %d", e.Opcode, e.PC)
}

// StackUnderflowError reports a hinting VM pop against an empty stack.
type StackUnderflowError struct {
	PC int
}

func (e StackUnderflowError) Error() string {
	return fmt.Sprintf("sfnt: stack underflow at pc %d", e.PC)
}

// InvalidGlyphError reports glyph data that is structurally
// inconsistent, or a glyph index out of range.
type InvalidGlyphError string

func (e InvalidGlyphError) Error() string { return "sfnt: invalid glyph: " + string(e) }

// ErrUnassembled is returned by Font.Outline when asked to assemble a
// composite glyph. Composite component records are parsed and exposed
// via Font.Glyph, but this package does not flatten them into a
// single hinted outline.
var ErrUnassembled = MalformedDataError("composite glyph assembly is not supported")
