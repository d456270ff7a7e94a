// Copyright 2010-2017 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package sfnt

// F2Dot14 is a 16-bit fixed-point number with a 2-bit integer part and
// a 14-bit fraction. It is used for unit vectors (projection, freedom,
// dual-projection) and for composite glyph transform matrices.
type F2Dot14 int16

// Float64 returns x as a floating-point number.
func (x F2Dot14) Float64() float64 {
	return float64(x) / (1 << 14)
}

// F2Dot14FromFloat64 converts a float in [-2, 2) to an F2Dot14,
// truncating the fraction toward zero. Values outside that range do
// not fit in 16 bits and are not clamped.
func F2Dot14FromFloat64(x float64) F2Dot14 {
	return F2Dot14(x * (1 << 14))
}

// F26Dot6 is a 32-bit fixed-point number with a 26-bit integer part
// and a 6-bit fraction, representing pixel-domain quantities in the
// hinting VM and the scaled outline it operates on. Arithmetic wraps
// on overflow, matching plain int32 semantics.
type F26Dot6 int32

// Add, Sub and Neg need no scaling: fixed-point values with the same
// radix add and subtract like integers.
func (x F26Dot6) Add(y F26Dot6) F26Dot6 { return x + y }
func (x F26Dot6) Sub(y F26Dot6) F26Dot6 { return x - y }
func (x F26Dot6) Neg() F26Dot6          { return -x }

// Abs returns the absolute value of x.
func (x F26Dot6) Abs() F26Dot6 {
	if x < 0 {
		return -x
	}
	return x
}

// Mul multiplies two F26Dot6 values, restoring the 6-bit radix that a
// plain int64 multiply would otherwise double.
func (x F26Dot6) Mul(y F26Dot6) F26Dot6 {
	return F26Dot6((int64(x)*int64(y) + 1<<5) >> 6)
}

// Div divides x by y, scaling up before the integer divide to keep
// the 6-bit radix.
func (x F26Dot6) Div(y F26Dot6) F26Dot6 {
	if y == 0 {
		return 0
	}
	return F26Dot6((int64(x) << 6) / int64(y))
}

// Floor rounds x down to the nearest integer pixel.
func (x F26Dot6) Floor() F26Dot6 { return x &^ 0x3F }

// Ceil rounds x up to the nearest integer pixel. This is deliberately
// NOT Floor's mask plus a conditional: adding 0x3F before masking
// handles the already-integral case for free and is the only form
// that is correct for negative x as well as positive.
func (x F26Dot6) Ceil() F26Dot6 { return (x + 0x3F) &^ 0x3F }

// Round rounds x to the nearest integer pixel, halves rounding away
// from zero.
func (x F26Dot6) Round() F26Dot6 {
	if x >= 0 {
		return (x + 0x20) &^ 0x3F
	}
	return -((-x + 0x20) &^ 0x3F)
}

// Int converts x to a plain integer by an arithmetic shift, so the
// fraction is floored: F26Dot6(-1).Int() is -1.
func (x F26Dot6) Int() int32 { return int32(x) >> 6 }

// Int26Dot6FromInt converts a plain integer to F26Dot6.
func Int26Dot6FromInt(i int32) F26Dot6 { return F26Dot6(i) << 6 }

// Float64 returns x as a floating-point number.
func (x F26Dot6) Float64() float64 { return float64(x) / 64 }

// F26Dot6FromFloat64 converts a float to F26Dot6: the integer part is
// shifted into place and the fraction is scaled by 64 and truncated
// toward zero, matching the Binary Reader's documented construction
// rule.
func F26Dot6FromFloat64(f float64) F26Dot6 {
	whole := int32(f)
	frac := f - float64(whole)
	return F26Dot6(whole)<<6 + F26Dot6(frac*64)
}
