// Copyright 2010-2017 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hint

import "github.com/andrew-pa/ttscale/sfnt"

type funcDef struct {
	start, end int // [start, end) into the defining program's bytes
}

type callFrame struct {
	returnProg []byte
	returnPC   int
	loopsLeft  int32
}

// VM is one hinting virtual machine instance: its stack, storage
// area, function table and graphics state. A VM is not safe for
// concurrent use; callers that render from multiple goroutines must
// give each goroutine its own VM over the same *sfnt.Font.
type VM struct {
	font *sfnt.Font
	maxp sfnt.MaxProfile

	store []int32
	cvt   []sfnt.F26Dot6

	funcs map[int32]funcDef
	idefs map[int32]funcDef

	// persistent is the graphics state snapshot established by the
	// Font Program and CVT Program; each glyph run starts from a copy
	// of it. persistentZone0 is the twilight zone contents at the same
	// point.
	persistent      GraphicsState
	persistentZone0 zone

	ppem  int32
	scale float64

	gs        GraphicsState
	stack     []int32
	zones     [2]*zone
	prog      []byte
	pc        int
	callStack []callFrame
}

// New creates a VM sized to font's maxp resource limits.
func New(font *sfnt.Font) *VM {
	maxp := font.MaxProfile()
	vm := &VM{
		font:  font,
		maxp:  maxp,
		store: make([]int32, maxp.MaxStorage),
		funcs: make(map[int32]funcDef),
		idefs: make(map[int32]funcDef),
	}
	vm.persistent = defaultGraphicsState()
	vm.persistentZone0 = newZone(int(maxp.MaxTwilightPoints))
	return vm
}

// RunFontProgram executes the font's Font Program once. It must be
// called before SetSize. A Font Program ordinarily contains only
// FDEF/IDEF instructions, but any valid instruction is accepted.
func (vm *VM) RunFontProgram() error {
	vm.gs = defaultGraphicsState()
	vm.zones[0] = &vm.persistentZone0
	vm.zones[1] = &zone{}
	vm.stack = vm.stack[:0]
	if err := vm.execute(vm.font.FontProgram()); err != nil {
		return err
	}
	vm.persistent = vm.gs
	return nil
}

// SetSize runs the CVT Program for a new point size: it rescales the
// font's Control Value Table into device pixels, resets the graphics
// state and the twilight zone, then executes the program. The
// resulting state becomes the snapshot every subsequent glyph run
// starts from until SetSize is called again.
func (vm *VM) SetSize(ppem int32, scale float64) error {
	vm.ppem = ppem
	vm.scale = scale

	fontCVT := vm.font.CVT()
	vm.cvt = make([]sfnt.F26Dot6, len(fontCVT))
	for i, v := range fontCVT {
		vm.cvt[i] = sfnt.F26Dot6FromFloat64(float64(v) * scale)
	}

	vm.gs = vm.persistent
	vm.persistentZone0 = newZone(int(vm.maxp.MaxTwilightPoints))
	vm.zones[0] = &vm.persistentZone0
	vm.zones[1] = &zone{}
	vm.stack = vm.stack[:0]

	if err := vm.execute(vm.font.CVTProgram()); err != nil {
		return err
	}
	vm.persistent = vm.gs
	vm.persistentZone0 = *vm.zones[0]
	return nil
}

// RunGlyph executes one glyph's instructions against the supplied
// scaled point set (current == original, both already multiplied by
// the uniform scale) and returns the hinted points. A VM error aborts
// only this glyph; the VM itself remains usable for the next one.
func (vm *VM) RunGlyph(points []GlyphPoint, endPoints []uint16, instructions []byte) ([]GlyphPoint, error) {
	gz := newZone(len(points))
	for i, p := range points {
		gz.points[i] = point{X: p.X, Y: p.Y, OX: p.X, OY: p.Y, OnCurve: p.OnCurve}
	}
	gz.endPoints = endPoints

	vm.gs = vm.persistent
	tz := vm.persistentZone0
	vm.zones[0] = &tz
	vm.zones[1] = &gz
	vm.stack = vm.stack[:0]

	if err := vm.execute(instructions); err != nil {
		return nil, err
	}

	out := make([]GlyphPoint, len(gz.points))
	for i, p := range gz.points {
		out[i] = GlyphPoint{X: p.X, Y: p.Y, OnCurve: p.OnCurve}
	}
	return out, nil
}

// GlyphPoint is a device-pixel outline point as handed to and
// returned from the VM. OnCurve survives the round trip so FLIPPT and
// FLIPRGON/FLIPRGOFF can toggle it and the caller can feed the result
// straight back into outline assembly.
type GlyphPoint struct {
	X, Y    sfnt.F26Dot6
	OnCurve bool
}

// -- stack helpers --------------------------------------------------

func (vm *VM) push(v int32) { vm.stack = append(vm.stack, v) }

func (vm *VM) pop() (int32, error) {
	n := len(vm.stack)
	if n == 0 {
		return 0, sfnt.StackUnderflowError{PC: vm.pc}
	}
	v := vm.stack[n-1]
	vm.stack = vm.stack[:n-1]
	return v, nil
}

func (vm *VM) popF26() (sfnt.F26Dot6, error) {
	v, err := vm.pop()
	return sfnt.F26Dot6(v), err
}

func (vm *VM) pushF26(v sfnt.F26Dot6) { vm.push(int32(v)) }

func (vm *VM) popIndex() (int, error) {
	v, err := vm.pop()
	return int(v), err
}

// -- zone / point helpers --------------------------------------------------

func (vm *VM) zoneOf(zp int) *zone { return vm.zones[zp] }

func (vm *VM) curPoint(zp, i int) (*point, error) {
	z := vm.zoneOf(zp)
	if i < 0 || i >= len(z.points) {
		return nil, sfnt.InvalidGlyphError("point index out of range")
	}
	return &z.points[i], nil
}

// project returns the current position of point p (in zone zp)
// projected onto the projection vector.
func (vm *VM) project(zp, p int) (sfnt.F26Dot6, error) {
	pt, err := vm.curPoint(zp, p)
	if err != nil {
		return 0, err
	}
	return dot(pt.X, pt.Y, vm.gs.ProjVec), nil
}

// projectOrigDual returns the original (pre-hint) position of point
// p projected onto the dual-projection vector, used to measure
// "original distance" in MDRP/MIRP.
func (vm *VM) projectOrigDual(zp, p int) (sfnt.F26Dot6, error) {
	pt, err := vm.curPoint(zp, p)
	if err != nil {
		return 0, err
	}
	return dot(pt.OX, pt.OY, vm.gs.DualProjVec), nil
}

// movePoint displaces point p (in zone zp) along the freedom vector
// so that its projection changes by distance. Because the freedom
// vector need not be axis-aligned, the exact displacement is solved
// in floating point: this keeps the projection
// algebra tractable while the bit-exact F26Dot6 arithmetic is
// reserved for the values that the spec pins down exactly (Ceil,
// Floor, Add, Mul, Div).
func (vm *VM) movePoint(zp, p int, distance sfnt.F26Dot6) error {
	pt, err := vm.curPoint(zp, p)
	if err != nil {
		return err
	}
	fx, fy := vm.gs.FreedomVec.X.Float64(), vm.gs.FreedomVec.Y.Float64()
	px, py := vm.gs.ProjVec.X.Float64(), vm.gs.ProjVec.Y.Float64()
	denom := fx*px + fy*py
	if denom == 0 {
		denom = 1
	}
	k := distance.Float64() / denom
	pt.X += sfnt.F26Dot6FromFloat64(k * fx)
	pt.Y += sfnt.F26Dot6FromFloat64(k * fy)
	if fx != 0 {
		pt.TouchX = true
	}
	if fy != 0 {
		pt.TouchY = true
	}
	return nil
}

// setPointPosition sets point p's current (and, in the twilight zone,
// original) position directly, used when a twilight-zone point is
// first referenced and has no natural position yet.
func (vm *VM) setPointPosition(zp, p int, x, y sfnt.F26Dot6) error {
	pt, err := vm.curPoint(zp, p)
	if err != nil {
		return err
	}
	pt.X, pt.Y = x, y
	if zp == 0 {
		pt.OX, pt.OY = x, y
	}
	return nil
}

func sign(x sfnt.F26Dot6) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func absF26(x sfnt.F26Dot6) sfnt.F26Dot6 { return x.Abs() }

// -- rounding --------------------------------------------------------------

func roundToNearest(x, unit sfnt.F26Dot6) sfnt.F26Dot6 {
	if unit == 0 {
		return x
	}
	half := unit / 2
	if x >= 0 {
		return ((x + half) / unit) * unit
	}
	return -(((-x) + half) / unit) * unit
}

func (vm *VM) applyRound(x sfnt.F26Dot6) sfnt.F26Dot6 {
	gs := &vm.gs
	switch gs.Round {
	case roundToHalfGrid:
		return x.Floor() + sfnt.Int26Dot6FromInt(1)/2
	case roundToGrid:
		return x.Round()
	case roundToDoubleGrid:
		return roundToNearest(x, sfnt.Int26Dot6FromInt(1)/2)
	case roundDownToGrid:
		return x.Floor()
	case roundUpToGrid:
		return x.Ceil()
	case roundOff:
		return x
	case roundSuper, roundSuper45:
		period, phase, threshold := gs.RoundPeriod, gs.RoundPhase, gs.RoundThreshold
		if period == 0 {
			return x
		}
		neg := x < 0
		v := x
		if neg {
			v = -v
		}
		v = v - phase + threshold
		if v < 0 {
			v = 0
		} else {
			v = (v / period) * period
		}
		v += phase
		if neg {
			v = -v
		}
		return v
	}
	return x
}

// -- control flow ------------------------------------------------------------

// execute runs prog from pc 0 until it is exhausted, handling CALL by
// temporarily switching vm.prog/vm.pc and restoring them on return.
func (vm *VM) execute(prog []byte) error {
	vm.prog = prog
	vm.pc = 0
	for vm.pc < len(vm.prog) {
		if err := vm.step(); err != nil {
			return err
		}
	}
	return nil
}

// skipToElseOrEIF advances pc past the instruction stream until it
// finds a matching ELSE or EIF, respecting nested IF/EIF depth; if
// stopAtElse is true it also stops at an ELSE belonging to the same
// nesting level as the IF being skipped. This resolves the spec's
// flagged ambiguity in the obvious, symmetric way: depth increments
// on IF, decrements on EIF, and ELSE only matters at depth 0.
func (vm *VM) skipToElseOrEIF(stopAtElse bool) error {
	depth := 0
	for vm.pc < len(vm.prog) {
		op := vm.prog[vm.pc]
		switch {
		case op == opIF:
			depth++
			vm.pc++
		case op == opELSE:
			if depth == 0 && stopAtElse {
				vm.pc++
				return nil
			}
			vm.pc++
		case op == opEIF:
			if depth == 0 {
				vm.pc++
				return nil
			}
			depth--
			vm.pc++
		default:
			vm.pc += instructionLength(vm.prog, vm.pc)
		}
	}
	return nil
}

// skipFunctionBody advances pc past the next ENDF. No instruction
// handler calls it: FDEF and IDEF bodies are skipped by
// defineFunction.
func (vm *VM) skipFunctionBody() error {
	for vm.pc < len(vm.prog) {
		op := vm.prog[vm.pc]
		if op == opENDF {
			vm.pc++
			return nil
		}
		vm.pc += instructionLength(vm.prog, vm.pc)
	}
	return nil
}

func (vm *VM) callFunction(key int32, table map[int32]funcDef) error {
	fd, ok := table[key]
	if !ok {
		return sfnt.InvalidInstructionError{PC: vm.pc, Opcode: vm.prog[vm.pc]}
	}
	if len(vm.callStack) > 64 {
		return sfnt.InvalidInstructionError{PC: vm.pc, Opcode: vm.prog[vm.pc]}
	}
	vm.callStack = append(vm.callStack, callFrame{returnProg: vm.prog, returnPC: vm.pc})
	vm.prog = vm.prog[:fd.end]
	vm.pc = fd.start
	for vm.pc < fd.end {
		if err := vm.step(); err != nil {
			return err
		}
	}
	frame := vm.callStack[len(vm.callStack)-1]
	vm.callStack = vm.callStack[:len(vm.callStack)-1]
	vm.prog = frame.returnProg
	vm.pc = frame.returnPC
	return nil
}

func bool2int32(b bool) int32 {
	if b {
		return 1
	}
	return 0
}
