// Copyright 2010-2017 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package sfnt

import "testing"

func TestF26Dot6Floor(t *testing.T) {
	cases := []struct{ x, want F26Dot6 }{
		{0, 0},
		{63, 0},
		{64, 64},
		{90, 64},
		{-1, -64},
		{-64, -64},
		{-65, -128},
	}
	for _, c := range cases {
		if got := c.x.Floor(); got != c.want {
			t.Errorf("F26Dot6(%d).Floor() = %d, want %d", c.x, got, c.want)
		}
	}
}

func TestF26Dot6Ceil(t *testing.T) {
	cases := []struct{ x, want F26Dot6 }{
		{0, 0},
		{1, 64},
		{64, 64},
		{90, 128},
		{-63, 0},
		{-64, -64},
		{-90, -64},
	}
	for _, c := range cases {
		if got := c.x.Ceil(); got != c.want {
			t.Errorf("F26Dot6(%d).Ceil() = %d, want %d", c.x, got, c.want)
		}
	}
}

func TestF26Dot6Round(t *testing.T) {
	cases := []struct{ x, want F26Dot6 }{
		{0, 0},
		{31, 0},
		{32, 64},
		{96, 128},
		{-31, 0},
		{-32, -64},
		{-96, -128},
	}
	for _, c := range cases {
		if got := c.x.Round(); got != c.want {
			t.Errorf("F26Dot6(%d).Round() = %d, want %d", c.x, got, c.want)
		}
	}
}

func TestF26Dot6MulDiv(t *testing.T) {
	two := Int26Dot6FromInt(2)
	three := Int26Dot6FromInt(3)
	if got := two.Mul(three); got != Int26Dot6FromInt(6) {
		t.Errorf("2.Mul(3) = %v, want 6", got.Float64())
	}
	six := Int26Dot6FromInt(6)
	if got := six.Div(two); got != three {
		t.Errorf("6.Div(2) = %v, want 3", got.Float64())
	}
	if got := six.Div(0); got != 0 {
		t.Errorf("6.Div(0) = %v, want 0", got.Float64())
	}
}

func TestF26Dot6FromFloat64(t *testing.T) {
	cases := []struct {
		f    float64
		want F26Dot6
	}{
		{0, 0},
		{1, 64},
		{1.5, 96},
		{-1.5, -96},
		{0.25, 16},
	}
	for _, c := range cases {
		if got := F26Dot6FromFloat64(c.f); got != c.want {
			t.Errorf("F26Dot6FromFloat64(%v) = %d, want %d", c.f, got, c.want)
		}
	}
}

func TestF26Dot6Int(t *testing.T) {
	if got := Int26Dot6FromInt(5).Int(); got != 5 {
		t.Errorf("Int26Dot6FromInt(5).Int() = %d, want 5", got)
	}
	if got := F26Dot6(-1).Int(); got != -1 {
		t.Errorf("F26Dot6(-1).Int() = %d, want -1", got)
	}
}

func TestF2Dot14RoundTrip(t *testing.T) {
	cases := []float64{0, 1, -1, 0.5, -0.5, 1.999}
	for _, f := range cases {
		got := F2Dot14FromFloat64(f).Float64()
		if diff := got - f; diff > 1.0/(1<<14) || diff < -1.0/(1<<14) {
			t.Errorf("F2Dot14FromFloat64(%v).Float64() = %v, want ~%v", f, got, f)
		}
	}
}
