// Copyright 2010-2017 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package scale

import (
	"testing"

	"golang.org/x/image/font"
)

func TestOptionsDefaults(t *testing.T) {
	var o *Options
	if got := o.size(); got != 12 {
		t.Errorf("nil Options.size() = %v, want 12", got)
	}
	if got := o.dpi(); got != 72 {
		t.Errorf("nil Options.dpi() = %v, want 72", got)
	}
	if got := o.hinting(); got != false {
		t.Errorf("nil Options.hinting() = %v, want false", got)
	}
}

func TestOptionsExplicitValues(t *testing.T) {
	o := &Options{Size: 24, DPI: 96, Hinting: font.HintingFull}
	if got := o.size(); got != 24 {
		t.Errorf("o.size() = %v, want 24", got)
	}
	if got := o.dpi(); got != 96 {
		t.Errorf("o.dpi() = %v, want 96", got)
	}
	if got := o.hinting(); got != true {
		t.Errorf("o.hinting() = %v, want true", got)
	}
}

func TestOptionsZeroValueFallsBackToDefault(t *testing.T) {
	o := &Options{}
	if got := o.size(); got != 12 {
		t.Errorf("o.size() = %v, want 12 for a zero Size", got)
	}
	if got := o.dpi(); got != 72 {
		t.Errorf("o.dpi() = %v, want 72 for a zero DPI", got)
	}
	if got := o.hinting(); got != false {
		t.Errorf("o.hinting() = %v, want false for HintingNone", got)
	}
}
