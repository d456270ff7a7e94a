// Copyright 2010-2017 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hint

import (
	"math"

	"github.com/andrew-pa/ttscale/sfnt"
)

// -- vector setters ----------------------------------------------------------

// normalize reduces (x, y) to a unit vector, defaulting to the x axis
// if given the zero vector (a degenerate line or stack argument).
func normalize(x, y float64) (float64, float64) {
	m := math.Hypot(x, y)
	if m == 0 {
		return 1, 0
	}
	return x / m, y / m
}

func unitVectorFromFloat(x, y float64) unitVector {
	nx, ny := normalize(x, y)
	return unitVector{sfnt.F2Dot14FromFloat64(nx), sfnt.F2Dot14FromFloat64(ny)}
}

// setVectorToLine implements SPVTL/SFVTL: pop two point numbers and
// set the projection or freedom vector to the line between them, or
// to that line's perpendicular when perpendicular is set.
func (vm *VM) setVectorToLine(perpendicular, freedom bool) error {
	p2, err := vm.popIndex()
	if err != nil {
		return err
	}
	p1, err := vm.popIndex()
	if err != nil {
		return err
	}
	pt2, err := vm.curPoint(vm.gs.ZP[1], p2)
	if err != nil {
		return err
	}
	pt1, err := vm.curPoint(vm.gs.ZP[2], p1)
	if err != nil {
		return err
	}
	dx, dy := (pt2.X - pt1.X).Float64(), (pt2.Y - pt1.Y).Float64()
	if perpendicular {
		dx, dy = -dy, dx
	}
	v := unitVectorFromFloat(dx, dy)
	if freedom {
		vm.gs.FreedomVec = v
	} else {
		vm.gs.ProjVec = v
		vm.gs.DualProjVec = v
	}
	return nil
}

// setDualVectorToLine implements SDPVTL: like setVectorToLine but
// measured against the points' original (pre-hint) positions, setting
// both the dual-projection and projection vectors.
func (vm *VM) setDualVectorToLine(perpendicular bool) error {
	p2, err := vm.popIndex()
	if err != nil {
		return err
	}
	p1, err := vm.popIndex()
	if err != nil {
		return err
	}
	pt2, err := vm.curPoint(vm.gs.ZP[1], p2)
	if err != nil {
		return err
	}
	pt1, err := vm.curPoint(vm.gs.ZP[2], p1)
	if err != nil {
		return err
	}
	dx, dy := (pt2.OX - pt1.OX).Float64(), (pt2.OY - pt1.OY).Float64()
	if perpendicular {
		dx, dy = -dy, dx
	}
	v := unitVectorFromFloat(dx, dy)
	vm.gs.DualProjVec = v
	vm.gs.ProjVec = v
	return nil
}

// setVectorFromStack implements SPVFS/SFVFS: the vector's (x, y)
// components, in 2.14 fixed point, are read directly off the stack.
func (vm *VM) setVectorFromStack(freedom bool) error {
	y, err := vm.pop()
	if err != nil {
		return err
	}
	x, err := vm.pop()
	if err != nil {
		return err
	}
	v := unitVectorFromFloat(sfnt.F2Dot14(x).Float64(), sfnt.F2Dot14(y).Float64())
	if freedom {
		vm.gs.FreedomVec = v
	} else {
		vm.gs.ProjVec = v
		vm.gs.DualProjVec = v
	}
	return nil
}

// isect implements ISECT: given two lines (a1, a2) and (b1, b2), move
// the result point to their intersection. Points a1/a2 are read from
// zone zp1, points b1/b2 from zone zp0, and the target point from
// zone zp2.
func (vm *VM) isect() error {
	point, err := vm.popIndex()
	if err != nil {
		return err
	}
	b2, err := vm.popIndex()
	if err != nil {
		return err
	}
	b1, err := vm.popIndex()
	if err != nil {
		return err
	}
	a2, err := vm.popIndex()
	if err != nil {
		return err
	}
	a1, err := vm.popIndex()
	if err != nil {
		return err
	}
	pa1, err := vm.curPoint(vm.gs.ZP[1], a1)
	if err != nil {
		return err
	}
	pa2, err := vm.curPoint(vm.gs.ZP[1], a2)
	if err != nil {
		return err
	}
	pb1, err := vm.curPoint(vm.gs.ZP[0], b1)
	if err != nil {
		return err
	}
	pb2, err := vm.curPoint(vm.gs.ZP[0], b2)
	if err != nil {
		return err
	}

	ax1, ay1 := pa1.X.Float64(), pa1.Y.Float64()
	ax2, ay2 := pa2.X.Float64(), pa2.Y.Float64()
	bx1, by1 := pb1.X.Float64(), pb1.Y.Float64()
	bx2, by2 := pb2.X.Float64(), pb2.Y.Float64()

	dax, day := ax2-ax1, ay2-ay1
	dbx, dby := bx2-bx1, by2-by1
	denom := dax*dby - day*dbx
	var ix, iy float64
	if denom == 0 {
		ix, iy = (ax1+ax2)/2, (ay1+ay2)/2
	} else {
		t := ((bx1-ax1)*dby - (by1-ay1)*dbx) / denom
		ix, iy = ax1+t*dax, ay1+t*day
	}

	target, err := vm.curPoint(vm.gs.ZP[2], point)
	if err != nil {
		return err
	}
	target.X = sfnt.F26Dot6FromFloat64(ix)
	target.Y = sfnt.F26Dot6FromFloat64(iy)
	target.TouchX, target.TouchY = true, true
	return nil
}

// alignPts implements ALIGNPTS: move both points halfway toward each
// other so their projected distance becomes zero.
func (vm *VM) alignPts() error {
	p2, err := vm.popIndex()
	if err != nil {
		return err
	}
	p1, err := vm.popIndex()
	if err != nil {
		return err
	}
	proj1, err := vm.project(vm.gs.ZP[1], p1)
	if err != nil {
		return err
	}
	proj2, err := vm.project(vm.gs.ZP[0], p2)
	if err != nil {
		return err
	}
	d := proj2 - proj1
	if err := vm.movePoint(vm.gs.ZP[1], p1, d/2); err != nil {
		return err
	}
	return vm.movePoint(vm.gs.ZP[0], p2, -(d / 2))
}

// utp implements UTP: clear the touch flags of a point on the axes the
// current freedom vector has a nonzero component on, so IUP is free to
// reposition it.
func (vm *VM) utp() error {
	p, err := vm.popIndex()
	if err != nil {
		return err
	}
	pt, err := vm.curPoint(vm.gs.ZP[0], p)
	if err != nil {
		return err
	}
	if vm.gs.FreedomVec.X != 0 {
		pt.TouchX = false
	}
	if vm.gs.FreedomVec.Y != 0 {
		pt.TouchY = false
	}
	return nil
}

// defineFunction implements FDEF/IDEF: pop the function's key, then
// record the [start, end) byte range of its body (up to the matching
// ENDF) in table, or in vm.idefs when table is nil.
func (vm *VM) defineFunction(table map[int32]funcDef, pcAtOp int) error {
	key, err := vm.pop()
	if err != nil {
		return err
	}
	depth := 0
	pc := vm.pc
	for pc < len(vm.prog) {
		op := vm.prog[pc]
		switch op {
		case opFDEF, opIDEF:
			depth++
			pc += instructionLength(vm.prog, pc)
		case opENDF:
			if depth == 0 {
				fd := funcDef{start: vm.pc, end: pc}
				if table != nil {
					table[key] = fd
				} else {
					vm.idefs[key] = fd
				}
				vm.pc = pc + 1
				return nil
			}
			depth--
			pc++
		default:
			pc += instructionLength(vm.prog, pc)
		}
	}
	return sfnt.InvalidInstructionError{PC: pcAtOp, Opcode: vm.prog[pcAtOp]}
}

// -- point-move family ---------------------------------------------------

func (vm *VM) mdap(round bool) error {
	p, err := vm.popIndex()
	if err != nil {
		return err
	}
	zp0 := vm.gs.ZP[0]
	cur, err := vm.project(zp0, p)
	if err != nil {
		return err
	}
	target := cur
	if round {
		target = vm.applyRound(cur)
	}
	if err := vm.movePoint(zp0, p, target-cur); err != nil {
		return err
	}
	vm.gs.RP[0], vm.gs.RP[1] = p, p
	return nil
}

func (vm *VM) miap(round bool) error {
	cvtIdx, err := vm.popIndex()
	if err != nil {
		return err
	}
	p, err := vm.popIndex()
	if err != nil {
		return err
	}
	cvtVal, err := vm.cvtAt(cvtIdx)
	if err != nil {
		return err
	}
	zp0 := vm.gs.ZP[0]
	if zp0 == 0 {
		fx, fy := vm.gs.FreedomVec.X.Float64(), vm.gs.FreedomVec.Y.Float64()
		x := sfnt.F26Dot6FromFloat64(cvtVal.Float64() * fx)
		y := sfnt.F26Dot6FromFloat64(cvtVal.Float64() * fy)
		if err := vm.setPointPosition(zp0, p, x, y); err != nil {
			return err
		}
	}
	cur, err := vm.project(zp0, p)
	if err != nil {
		return err
	}
	distance := cvtVal
	if absF26(distance-cur) > vm.gs.ControlValueCutIn {
		distance = cur
	}
	if round {
		distance = vm.applyRound(distance)
	}
	if err := vm.movePoint(zp0, p, distance-cur); err != nil {
		return err
	}
	vm.gs.RP[0], vm.gs.RP[1] = p, p
	return nil
}

// mdrp implements MDRP[abcde]: move a point so its distance from rp0
// matches their original distance, honoring the round/minimum-distance
// flags packed into the opcode's low bits.
func (vm *VM) mdrp(sub byte) error {
	round := sub&0x01 != 0
	minDist := sub&0x02 != 0
	setRP0 := sub&0x10 != 0

	p, err := vm.popIndex()
	if err != nil {
		return err
	}
	rp0 := vm.gs.RP[0]
	zp0, zp1 := vm.gs.ZP[0], vm.gs.ZP[1]

	origRP0, err := vm.projectOrigDual(zp0, rp0)
	if err != nil {
		return err
	}
	origP, err := vm.projectOrigDual(zp1, p)
	if err != nil {
		return err
	}
	distance := origP - origRP0
	if absF26(distance) < vm.gs.SingleWidthCutIn {
		if distance >= 0 {
			distance = vm.gs.SingleWidthValue
		} else {
			distance = -vm.gs.SingleWidthValue
		}
	}
	if round {
		distance = vm.applyRound(distance)
	}
	if minDist {
		distance = clampMinDistance(distance, vm.gs.MinimumDistance)
	}

	curRP0, err := vm.project(zp0, rp0)
	if err != nil {
		return err
	}
	curP, err := vm.project(zp1, p)
	if err != nil {
		return err
	}
	if err := vm.movePoint(zp1, p, (curRP0+distance)-curP); err != nil {
		return err
	}
	vm.gs.RP[1], vm.gs.RP[2] = rp0, p
	if setRP0 {
		vm.gs.RP[0] = p
	}
	return nil
}

// mirp implements MIRP[abcde]: as mdrp, but the target distance comes
// from a CVT entry rather than the points' original distance, subject
// to auto-flip and the control-value cut-in.
func (vm *VM) mirp(sub byte) error {
	round := sub&0x01 != 0
	minDist := sub&0x02 != 0
	setRP0 := sub&0x10 != 0

	cvtIdx, err := vm.popIndex()
	if err != nil {
		return err
	}
	p, err := vm.popIndex()
	if err != nil {
		return err
	}
	cvtVal, err := vm.cvtAt(cvtIdx)
	if err != nil {
		return err
	}
	rp0 := vm.gs.RP[0]
	zp0, zp1 := vm.gs.ZP[0], vm.gs.ZP[1]

	origRP0, err := vm.projectOrigDual(zp0, rp0)
	if err != nil {
		return err
	}
	origP, err := vm.projectOrigDual(zp1, p)
	if err != nil {
		return err
	}
	origDistance := origP - origRP0

	distance := cvtVal
	if vm.gs.AutoFlip && origDistance != 0 && sign(distance) != sign(origDistance) {
		distance = -distance
	}
	if absF26(distance-origDistance) > vm.gs.ControlValueCutIn {
		distance = origDistance
	}
	if absF26(distance) < vm.gs.SingleWidthCutIn {
		if distance >= 0 {
			distance = vm.gs.SingleWidthValue
		} else {
			distance = -vm.gs.SingleWidthValue
		}
	}
	if round {
		distance = vm.applyRound(distance)
	}
	if minDist {
		distance = clampMinDistance(distance, vm.gs.MinimumDistance)
	}

	curRP0, err := vm.project(zp0, rp0)
	if err != nil {
		return err
	}
	curP, err := vm.project(zp1, p)
	if err != nil {
		return err
	}
	if err := vm.movePoint(zp1, p, (curRP0+distance)-curP); err != nil {
		return err
	}
	vm.gs.RP[1], vm.gs.RP[2] = rp0, p
	if setRP0 {
		vm.gs.RP[0] = p
	}
	return nil
}

func clampMinDistance(distance, min sfnt.F26Dot6) sfnt.F26Dot6 {
	if distance >= 0 {
		if distance < min {
			return min
		}
		return distance
	}
	if distance > -min {
		return -min
	}
	return distance
}

// -- storage, CVT, GETCOORD family ---------------------------------------

func (vm *VM) readStorage() error {
	idx, err := vm.popIndex()
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(vm.store) {
		return sfnt.InvalidGlyphError("storage index out of range")
	}
	vm.push(vm.store[idx])
	return nil
}

func (vm *VM) writeStorage() error {
	val, err := vm.pop()
	if err != nil {
		return err
	}
	idx, err := vm.popIndex()
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(vm.store) {
		return sfnt.InvalidGlyphError("storage index out of range")
	}
	vm.store[idx] = val
	return nil
}

func (vm *VM) cvtAt(i int) (sfnt.F26Dot6, error) {
	if i < 0 || i >= len(vm.cvt) {
		return 0, sfnt.InvalidGlyphError("cvt index out of range")
	}
	return vm.cvt[i], nil
}

// writeCVT implements WCVTP/WCVTF. WCVTP's value is already a device
// F26Dot6 distance; WCVTF's is in font units and is scaled by the
// current size's uniform scale factor first.
func (vm *VM) writeCVT(fontUnits bool) error {
	val, err := vm.pop()
	if err != nil {
		return err
	}
	idx, err := vm.popIndex()
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(vm.cvt) {
		return sfnt.InvalidGlyphError("cvt index out of range")
	}
	if fontUnits {
		vm.cvt[idx] = sfnt.F26Dot6FromFloat64(float64(val) * vm.scale)
	} else {
		vm.cvt[idx] = sfnt.F26Dot6(val)
	}
	return nil
}

// gc implements GC[a]: push a point's projection. a=0 uses its current
// position and the projection vector; a=1 uses its original position
// and the dual-projection vector.
func (vm *VM) gc(useOriginal bool) error {
	p, err := vm.popIndex()
	if err != nil {
		return err
	}
	zp2 := vm.gs.ZP[2]
	var v sfnt.F26Dot6
	if useOriginal {
		v, err = vm.projectOrigDual(zp2, p)
	} else {
		v, err = vm.project(zp2, p)
	}
	if err != nil {
		return err
	}
	vm.pushF26(v)
	return nil
}

// scfs implements SCFS: move a point so its current projection equals
// the given value.
func (vm *VM) scfs() error {
	val, err := vm.popF26()
	if err != nil {
		return err
	}
	p, err := vm.popIndex()
	if err != nil {
		return err
	}
	zp2 := vm.gs.ZP[2]
	cur, err := vm.project(zp2, p)
	if err != nil {
		return err
	}
	return vm.movePoint(zp2, p, val-cur)
}

// md implements MD[a]: push the projected distance between two
// points, p2 minus p1 (see DESIGN.md for the resolved pop order).
// a=0 measures current positions; a=1 measures original positions
// along the dual-projection vector.
func (vm *VM) md(useOriginal bool) error {
	p2, err := vm.popIndex()
	if err != nil {
		return err
	}
	p1, err := vm.popIndex()
	if err != nil {
		return err
	}
	var proj1, proj2 sfnt.F26Dot6
	if useOriginal {
		proj1, err = vm.projectOrigDual(vm.gs.ZP[1], p1)
		if err != nil {
			return err
		}
		proj2, err = vm.projectOrigDual(vm.gs.ZP[0], p2)
	} else {
		proj1, err = vm.project(vm.gs.ZP[1], p1)
		if err != nil {
			return err
		}
		proj2, err = vm.project(vm.gs.ZP[0], p2)
	}
	if err != nil {
		return err
	}
	vm.pushF26(proj2 - proj1)
	return nil
}

// -- shift / interpolate family -------------------------------------------

func (vm *VM) iup(yAxis bool) error {
	z := vm.zoneOf(1)
	if len(z.endPoints) == 0 {
		return nil
	}
	start := 0
	for _, end := range z.endPoints {
		interpolateContour(z, start, int(end), yAxis)
		start = int(end) + 1
	}
	return nil
}

func interpolateContour(z *zone, start, end int, yAxis bool) {
	n := end - start + 1
	if n <= 0 {
		return
	}
	touched := func(i int) bool {
		p := &z.points[start+i]
		if yAxis {
			return p.TouchY
		}
		return p.TouchX
	}
	first := -1
	for i := 0; i < n; i++ {
		if touched(i) {
			first = i
			break
		}
	}
	if first == -1 {
		return
	}
	cur := first
	for count := 0; count < n; {
		step := 1
		next := cur
		for ; step <= n; step++ {
			idx := (cur + step) % n
			if touched(idx) {
				next = idx
				break
			}
		}
		interpolateRun(z, start, n, cur, next, yAxis)
		count += step
		cur = next
		if step > n {
			break
		}
	}
}

func interpolateRun(z *zone, start, n, a, b int, yAxis bool) {
	if a == b {
		return
	}
	get := func(i int) *point { return &z.points[start+i] }
	pa, pb := get(a), get(b)
	var oa, ob, ca, cb sfnt.F26Dot6
	if yAxis {
		oa, ob, ca, cb = pa.OY, pb.OY, pa.Y, pb.Y
	} else {
		oa, ob, ca, cb = pa.OX, pb.OX, pa.X, pb.X
	}
	lo, hi := oa, ob
	loVal, hiVal := ca, cb
	if oa > ob {
		lo, hi = ob, oa
		loVal, hiVal = cb, ca
	}
	i := (a + 1) % n
	for i != b {
		p := get(i)
		var op *sfnt.F26Dot6
		var cp *sfnt.F26Dot6
		if yAxis {
			op, cp = &p.OY, &p.Y
		} else {
			op, cp = &p.OX, &p.X
		}
		switch {
		case oa == ob:
			*cp = ca
		case *op <= lo:
			*cp = loVal
		case *op >= hi:
			*cp = hiVal
		default:
			ratio := float64(*op-oa) / float64(ob-oa)
			*cp = ca + sfnt.F26Dot6(float64(cb-ca)*ratio)
		}
		i = (i + 1) % n
	}
}

func (vm *VM) shp(useRP2 bool) error {
	rp := vm.gs.RP[1]
	if useRP2 {
		rp = vm.gs.RP[2]
	}
	refPt, err := vm.curPoint(vm.gs.ZP[0], rp)
	if err != nil {
		return err
	}
	dx, dy := refPt.X-refPt.OX, refPt.Y-refPt.OY
	loop := vm.gs.Loop
	for i := int32(0); i < loop; i++ {
		p, err := vm.popIndex()
		if err != nil {
			return err
		}
		pt, err := vm.curPoint(vm.gs.ZP[2], p)
		if err != nil {
			return err
		}
		pt.X += dx
		pt.Y += dy
		if dx != 0 {
			pt.TouchX = true
		}
		if dy != 0 {
			pt.TouchY = true
		}
	}
	vm.gs.Loop = 1
	return nil
}

func (vm *VM) shc(useRP2 bool) error {
	rp := vm.gs.RP[1]
	if useRP2 {
		rp = vm.gs.RP[2]
	}
	refPt, err := vm.curPoint(vm.gs.ZP[0], rp)
	if err != nil {
		return err
	}
	dx, dy := refPt.X-refPt.OX, refPt.Y-refPt.OY
	contourIdx, err := vm.popIndex()
	if err != nil {
		return err
	}
	z := vm.zoneOf(vm.gs.ZP[2])
	s, e := 0, len(z.points)-1
	if contourIdx >= 0 && contourIdx < len(z.endPoints) {
		st := 0
		if contourIdx > 0 {
			st = int(z.endPoints[contourIdx-1]) + 1
		}
		s, e = st, int(z.endPoints[contourIdx])
	}
	for i := s; i <= e; i++ {
		z.points[i].X += dx
		z.points[i].Y += dy
		if dx != 0 {
			z.points[i].TouchX = true
		}
		if dy != 0 {
			z.points[i].TouchY = true
		}
	}
	return nil
}

func (vm *VM) shz(useRP2 bool) error {
	rp := vm.gs.RP[1]
	if useRP2 {
		rp = vm.gs.RP[2]
	}
	refPt, err := vm.curPoint(vm.gs.ZP[0], rp)
	if err != nil {
		return err
	}
	dx, dy := refPt.X-refPt.OX, refPt.Y-refPt.OY
	zoneSel, err := vm.popIndex()
	if err != nil {
		return err
	}
	if zoneSel != 0 && zoneSel != 1 {
		return sfnt.InvalidGlyphError("SHZ selects an invalid zone")
	}
	z := vm.zoneOf(zoneSel)
	for i := range z.points {
		z.points[i].X += dx
		z.points[i].Y += dy
	}
	return nil
}

func (vm *VM) shpix() error {
	d, err := vm.popF26()
	if err != nil {
		return err
	}
	loop := vm.gs.Loop
	for i := int32(0); i < loop; i++ {
		p, err := vm.popIndex()
		if err != nil {
			return err
		}
		if err := vm.movePoint(vm.gs.ZP[2], p, d); err != nil {
			return err
		}
	}
	vm.gs.Loop = 1
	return nil
}

// ip implements IP: interpolate the loop's points between rp1 and rp2
// proportionally to their original positions.
func (vm *VM) ip() error {
	rp1, rp2 := vm.gs.RP[1], vm.gs.RP[2]
	p1, err := vm.curPoint(vm.gs.ZP[0], rp1)
	if err != nil {
		return err
	}
	p2, err := vm.curPoint(vm.gs.ZP[1], rp2)
	if err != nil {
		return err
	}
	origA := dot(p1.OX, p1.OY, vm.gs.DualProjVec)
	origB := dot(p2.OX, p2.OY, vm.gs.DualProjVec)
	curA := dot(p1.X, p1.Y, vm.gs.ProjVec)
	curB := dot(p2.X, p2.Y, vm.gs.ProjVec)

	lo, hi := origA, origB
	loVal, hiVal := curA, curB
	if origA > origB {
		lo, hi = origB, origA
		loVal, hiVal = curB, curA
	}

	loop := vm.gs.Loop
	for i := int32(0); i < loop; i++ {
		p, err := vm.popIndex()
		if err != nil {
			return err
		}
		pt, err := vm.curPoint(vm.gs.ZP[2], p)
		if err != nil {
			return err
		}
		origP := dot(pt.OX, pt.OY, vm.gs.DualProjVec)
		var target sfnt.F26Dot6
		switch {
		case origA == origB:
			target = curA
		case origP <= lo:
			target = loVal
		case origP >= hi:
			target = hiVal
		default:
			ratio := float64(origP-origA) / float64(origB-origA)
			target = curA + sfnt.F26Dot6(float64(curB-curA)*ratio)
		}
		curP := dot(pt.X, pt.Y, vm.gs.ProjVec)
		if err := vm.movePoint(vm.gs.ZP[2], p, target-curP); err != nil {
			return err
		}
	}
	vm.gs.Loop = 1
	return nil
}

func (vm *VM) msirp(setRP0 bool) error {
	d, err := vm.popF26()
	if err != nil {
		return err
	}
	p, err := vm.popIndex()
	if err != nil {
		return err
	}
	rp0 := vm.gs.RP[0]
	curRP0, err := vm.project(vm.gs.ZP[0], rp0)
	if err != nil {
		return err
	}
	curP, err := vm.project(vm.gs.ZP[1], p)
	if err != nil {
		return err
	}
	if err := vm.movePoint(vm.gs.ZP[1], p, (curRP0+d)-curP); err != nil {
		return err
	}
	vm.gs.RP[1], vm.gs.RP[2] = rp0, p
	if setRP0 {
		vm.gs.RP[0] = p
	}
	return nil
}

func (vm *VM) alignrp() error {
	rp0 := vm.gs.RP[0]
	curRP0, err := vm.project(vm.gs.ZP[0], rp0)
	if err != nil {
		return err
	}
	loop := vm.gs.Loop
	for i := int32(0); i < loop; i++ {
		p, err := vm.popIndex()
		if err != nil {
			return err
		}
		curP, err := vm.project(vm.gs.ZP[1], p)
		if err != nil {
			return err
		}
		if err := vm.movePoint(vm.gs.ZP[1], p, curRP0-curP); err != nil {
			return err
		}
	}
	vm.gs.Loop = 1
	return nil
}

// flippt implements FLIPPT: toggle the on-curve flag of each of the
// loop's points in zone zp0.
func (vm *VM) flippt() error {
	loop := vm.gs.Loop
	for i := int32(0); i < loop; i++ {
		p, err := vm.popIndex()
		if err != nil {
			return err
		}
		pt, err := vm.curPoint(vm.gs.ZP[0], p)
		if err != nil {
			return err
		}
		pt.OnCurve = !pt.OnCurve
	}
	vm.gs.Loop = 1
	return nil
}

// fliprange implements FLIPRGON/FLIPRGOFF: set the on-curve flag of
// every point between two popped indices (inclusive) to on or off.
func (vm *VM) fliprange(on bool) error {
	hi, err := vm.popIndex()
	if err != nil {
		return err
	}
	lo, err := vm.popIndex()
	if err != nil {
		return err
	}
	z := vm.zoneOf(vm.gs.ZP[0])
	if lo > hi {
		lo, hi = hi, lo
	}
	for i := lo; i <= hi; i++ {
		if i < 0 || i >= len(z.points) {
			return sfnt.InvalidGlyphError("FLIPRGON/FLIPRGOFF index out of range")
		}
		z.points[i].OnCurve = on
	}
	return nil
}

// -- delta exceptions ------------------------------------------------------

// deltaP implements DELTAP1/2/3: pop a count, then that many
// (point, argument) pairs; for each pair whose encoded trigger PPEM
// matches the glyph's current PPEM, shift the point along the
// freedom vector by the encoded step size.
func (vm *VM) deltaP(family int32) error {
	n, err := vm.popIndex()
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		arg, err := vm.pop()
		if err != nil {
			return err
		}
		p, err := vm.popIndex()
		if err != nil {
			return err
		}
		if distance, ok := vm.deltaDistance(family, arg); ok {
			if err := vm.movePoint(vm.gs.ZP[0], p, distance); err != nil {
				return err
			}
		}
	}
	return nil
}

// deltaC implements DELTAC1/2/3: as deltaP, but adjusts a device-space
// CVT entry directly instead of moving a point.
func (vm *VM) deltaC(family int32) error {
	n, err := vm.popIndex()
	if err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		arg, err := vm.pop()
		if err != nil {
			return err
		}
		idx, err := vm.popIndex()
		if err != nil {
			return err
		}
		if distance, ok := vm.deltaDistance(family, arg); ok {
			if idx < 0 || idx >= len(vm.cvt) {
				return sfnt.InvalidGlyphError("DELTAC index out of range")
			}
			vm.cvt[idx] += distance
		}
	}
	return nil
}

// deltaDistance decodes one packed (trigger, magnitude) argument and
// reports the device-space adjustment, and whether the instruction's
// trigger PPEM equals the current glyph's PPEM.
func (vm *VM) deltaDistance(family int32, arg int32) (sfnt.F26Dot6, bool) {
	trigger := vm.gs.DeltaBase + family*16 + (arg >> 4)
	if trigger != vm.ppem {
		return 0, false
	}
	mag := (arg & 0xF) - 8
	if mag >= 0 {
		mag++
	}
	step := int32(64) >> uint(vm.gs.DeltaShift)
	return sfnt.F26Dot6(mag * step), true
}

// setSuperRound implements SROUND/S45ROUND: decode the period/phase/
// threshold selector byte, scaling the period by factor (the 45-degree
// variant scales by 1/sqrt(2)).
func (vm *VM) setSuperRound(factor float64) error {
	sel, err := vm.pop()
	if err != nil {
		return err
	}
	s := byte(sel)

	var period sfnt.F26Dot6
	switch (s >> 6) & 0x3 {
	case 0:
		period = sfnt.Int26Dot6FromInt(1) / 2
	case 2:
		period = sfnt.Int26Dot6FromInt(2)
	default:
		period = sfnt.Int26Dot6FromInt(1)
	}
	period = sfnt.F26Dot6FromFloat64(period.Float64() * factor)

	var phase sfnt.F26Dot6
	switch (s >> 4) & 0x3 {
	case 1:
		phase = period / 4
	case 2:
		phase = period / 2
	case 3:
		phase = (period * 3) / 4
	}

	steps := sfnt.F26Dot6(s & 0xF)
	threshold := period / 2
	if steps != 0 {
		threshold = ((steps - 4) * period) / 8
	}

	vm.gs.RoundPeriod = period
	vm.gs.RoundPhase = phase
	vm.gs.RoundThreshold = threshold
	vm.gs.Round = roundSuper
	return nil
}
