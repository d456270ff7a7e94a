// Copyright 2010-2017 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hint

import (
	"reflect"
	"strings"
	"testing"

	"github.com/andrew-pa/ttscale/sfnt"
)

// runProg executes prog against a freshly built VM with storeSize
// storage registers and no glyph outline, returning the VM (whose
// stack holds the result) and any execution error.
func runProg(storeSize int, prog []byte) (*VM, error) {
	vm := &VM{
		store: make([]int32, storeSize),
		funcs: make(map[int32]funcDef),
		idefs: make(map[int32]funcDef),
	}
	vm.gs = defaultGraphicsState()
	vm.zones[0] = &zone{}
	vm.zones[1] = &zone{}
	err := vm.execute(prog)
	return vm, err
}

func TestBytecode(t *testing.T) {
	testCases := []struct {
		desc   string
		prog   []byte
		want   []int32
		errStr string
	}{
		{
			"underflow",
			[]byte{opDUP},
			nil,
			"underflow",
		},
		{
			"push ops",
			[]byte{
				opPUSHB0, 255, // [255]
				opPUSHW0 + 1, 255, 254, 0, 253, // [255, -2, 253]
				opNPUSHB, 2, 1, 2, // [255, -2, 253, 1, 2]
				opNPUSHW, 3, 4, 5, 6, 7, 8, 9, // [255, -2, 253, 1, 2, 0x0405, 0x0607, 0x0809]
			},
			[]int32{255, -2, 253, 1, 2, 0x0405, 0x0607, 0x0809},
			"",
		},
		{
			"stack ops",
			[]byte{
				opPUSHB0 + 2, 10, 20, 30, // [10, 20, 30]
				opCLEAR,
				opPUSHB0 + 2, 40, 50, 60, // [40, 50, 60]
				opSWAP,   // [40, 60, 50]
				opDUP,    // [40, 60, 50, 50]
				opDUP,    // [40, 60, 50, 50, 50]
				opPOP,    // [40, 60, 50, 50]
				opDEPTH,  // [40, 60, 50, 50, 4]
				opCINDEX, // [40, 60, 50, 50, 40]
				opPUSHB0, 4,
				opMINDEX, // [40, 50, 50, 40, 60]
			},
			[]int32{40, 50, 50, 40, 60},
			"",
		},
		{
			"roll",
			[]byte{
				opPUSHB0 + 2, 1, 2, 3,
				opROLL,
			},
			[]int32{2, 3, 1},
			"",
		},
		{
			"max/min",
			[]byte{
				opPUSHW0 + 1, 0xff, 0xfe, 0xff, 0xfd, // [-2, -3]
				opMAX, // [-2]
				opPUSHW0 + 1, 0xff, 0xfc, 0xff, 0xfb, // [-2, -4, -5]
				opMIN, // [-2, -5]
			},
			[]int32{-2, -5},
			"",
		},
		{
			"comparison ops",
			[]byte{
				opPUSHB0 + 1, 10, 20,
				opLT, // [1]
				opPUSHB0 + 1, 10, 20,
				opLTEQ, // [1, 1]
				opPUSHB0 + 1, 10, 20,
				opGT, // [1, 1, 0]
				opPUSHB0 + 1, 10, 20,
				opGTEQ, // [1, 1, 0, 0]
				opEQ,   // [1, 1, 1]
				opNEQ,  // [1, 0]
			},
			[]int32{1, 0},
			"",
		},
		{
			"logical ops",
			[]byte{
				opPUSHB0 + 2, 0, 10, 20,
				opAND, // [0, 1]
				opOR,  // [1]
				opNOT, // [0]
			},
			[]int32{0},
			"",
		},
		{
			"odd/even",
			[]byte{
				opPUSHB0, 159,
				opODD, // [0]
				opPUSHB0, 160,
				opODD, // [0, 1]
				opPUSHB0, 128,
				opEVEN, // [0, 1, 1]
				opPUSHB0, 64,
				opEVEN, // [0, 1, 1, 0]
			},
			[]int32{0, 1, 1, 0},
			"",
		},
		{
			"arithmetic ops",
			// abs((-(1 - (2*3)))/2 + 1/64) == 161 in 26.6 fixed point.
			[]byte{
				opPUSHB0 + 2, 1 << 6, 2 << 6, 3 << 6,
				opMUL, // [64, 384]
				opSUB, // [-320]
				opNEG, // [320]
				opPUSHB0, 2 << 6,
				opDIV, // [160]
				opPUSHB0, 1,
				opADD, // [161]
				opABS, // [161]
			},
			[]int32{161},
			"",
		},
		{
			"floor, ceiling",
			[]byte{
				opPUSHB0, 96,
				opFLOOR, // [64]
				opPUSHB0, 96,
				opCEILING, // [64, 128]
			},
			[]int32{64, 128},
			"",
		},
		{
			"rounding",
			// Round 90/64 under each of the six non-super rounding policies.
			[]byte{
				opROFF,
				opPUSHB0, 90,
				opROUND0, // [90]
				opRTG,
				opPUSHB0, 90,
				opROUND0, // [90, 64]
				opRTHG,
				opPUSHB0, 90,
				opROUND0, // [90, 64, 96]
				opRDTG,
				opPUSHB0, 90,
				opROUND0, // [90, 64, 96, 64]
				opRUTG,
				opPUSHB0, 90,
				opROUND0, // [90, 64, 96, 64, 128]
				opRTDG,
				opPUSHB0, 90,
				opROUND0, // [90, 64, 96, 64, 128, 96]
			},
			[]int32{90, 64, 96, 64, 128, 96},
			"",
		},
		{
			"super-rounding",
			// Selector 0x58: period 1px, phase 1/4px, threshold 1/2px.
			[]byte{
				opPUSHB0, 0x58,
				opSROUND,
				opPUSHW0, 0xff, 0xaf, // -81
				opROUND0,
				opPUSHW0, 0xff, 0xb0, // -80
				opROUND0,
				opPUSHW0, 0xff, 0xef, // -17
				opROUND0,
				opPUSHW0, 0xff, 0xf0, // -16
				opROUND0,
				opPUSHB0, 0,
				opROUND0,
				opPUSHB0, 16,
				opROUND0,
				opPUSHB0, 47,
				opROUND0,
				opPUSHB0, 48,
				opROUND0,
			},
			[]int32{-80, -80, -16, -16, 16, 16, 16, 80},
			"",
		},
		{
			"jumps",
			[]byte{
				opPUSHB0 + 1, 10, 2,
				opJMPR,     // [10]
				opDUP,      // skipped
				opDUP,      // [10, 10]
				opPUSHB0 + 2, 20, 2, 1,
				opJROT,     // [10, 10, 20]
				opDUP,      // skipped
				opDUP,      // [10, 10, 20, 20]
				opPUSHB0 + 2, 30, 2, 1,
				opJROF, // [10, 10, 20, 20, 30]
				opDUP,  // [10, 10, 20, 20, 30, 30]
				opDUP,  // [10, 10, 20, 20, 30, 30, 30]
			},
			[]int32{10, 10, 20, 20, 30, 30, 30},
			"",
		},
		{
			"if true",
			[]byte{
				opPUSHB0 + 1, 255, 1,
				opIF,
				opPUSHB0, 2,
				opEIF,
				opPUSHB0, 254,
			},
			[]int32{255, 2, 254},
			"",
		},
		{
			"if false",
			[]byte{
				opPUSHB0 + 1, 255, 0,
				opIF,
				opPUSHB0, 2,
				opEIF,
				opPUSHB0, 254,
			},
			[]int32{255, 254},
			"",
		},
		{
			"if/else true",
			[]byte{
				opPUSHB0, 1,
				opIF,
				opPUSHB0, 2,
				opELSE,
				opPUSHB0, 3,
				opEIF,
			},
			[]int32{2},
			"",
		},
		{
			"if/else false",
			[]byte{
				opPUSHB0, 0,
				opIF,
				opPUSHB0, 2,
				opELSE,
				opPUSHB0, 3,
				opEIF,
			},
			[]int32{3},
			"",
		},
		{
			"store ops",
			[]byte{
				opPUSHB0 + 3, 1, 22, 3, 44,
				opWS, // [1, 22]
				opWS, // []
				opPUSHB0, 3,
				opRS, // [44]
			},
			[]int32{44},
			"",
		},
		{
			"function define and call",
			[]byte{
				opPUSHB0, 0,
				opFDEF,
				opPUSHB0, 99,
				opENDF,
				opPUSHB0, 0,
				opCALL,
			},
			[]int32{99},
			"",
		},
	}

	for _, tc := range testCases {
		vm, err := runProg(8, tc.prog)
		errStr := ""
		if err != nil {
			errStr = err.Error()
		}
		if tc.errStr != "" {
			if errStr == "" {
				t.Errorf("%s: got no error, want one containing %q", tc.desc, tc.errStr)
			} else if !strings.Contains(errStr, tc.errStr) {
				t.Errorf("%s: got error %q, want one containing %q", tc.desc, errStr, tc.errStr)
			}
			continue
		}
		if errStr != "" {
			t.Errorf("%s: got error %q, want none", tc.desc, errStr)
			continue
		}
		if tc.want == nil {
			continue
		}
		got := vm.stack[len(vm.stack)-len(tc.want):]
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.desc, got, tc.want)
		}
	}
}

func TestRoundToNearest(t *testing.T) {
	cases := []struct {
		x, unit, want int32
	}{
		{50, 64, 64},
		{96, 64, 128},
		{-50, 64, -64},
		{0, 64, 0},
	}
	for _, c := range cases {
		got := int32(roundToNearest(sfnt.F26Dot6(c.x), sfnt.F26Dot6(c.unit)))
		if got != c.want {
			t.Errorf("roundToNearest(%d, %d) = %d, want %d", c.x, c.unit, got, c.want)
		}
	}
}
