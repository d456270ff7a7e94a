// Copyright 2010-2017 The Freetype-Go Authors. All rights reserved.
// Use of this source code is governed by your choice of either the
// FreeType License or the GNU General Public License version 2 (or
// any later version), both of which can be found in the LICENSE file.

package hint

import (
	"math"

	"github.com/andrew-pa/ttscale/sfnt"
)

// step decodes and executes the single instruction at vm.pc, leaving
// vm.pc advanced past it (including any inline operand bytes).
func (vm *VM) step() error {
	op := vm.prog[vm.pc]
	pcAtOp := vm.pc
	vm.pc++

	switch {
	case op >= opPUSHB0 && op <= opPUSHB7:
		n := int(op-opPUSHB0) + 1
		return vm.pushBytes(n)
	case op >= opPUSHW0 && op <= opPUSHW7:
		n := int(op-opPUSHW0) + 1
		return vm.pushWords(n)
	case op >= opMDRPBase && op <= opMDRPBase+31:
		return vm.mdrp(op - opMDRPBase)
	case op >= opMIRPBase && op <= opMIRPBase+31:
		return vm.mirp(op - opMIRPBase)
	case op >= opROUND0 && op <= opROUND3:
		v, err := vm.popF26()
		if err != nil {
			return err
		}
		vm.pushF26(vm.applyRound(v))
		return nil
	case op >= opNROUND0 && op <= opNROUND3:
		v, err := vm.popF26()
		if err != nil {
			return err
		}
		vm.pushF26(v) // not rounded: NROUND leaves magnitude unchanged besides engine compensation, which this renderer does not model
		return nil
	}

	switch op {
	case opSVTCA0:
		vm.gs.ProjVec, vm.gs.FreedomVec, vm.gs.DualProjVec = axisY, axisY, axisY
	case opSVTCA1:
		vm.gs.ProjVec, vm.gs.FreedomVec, vm.gs.DualProjVec = axisX, axisX, axisX
	case opSPVTCA0:
		vm.gs.ProjVec, vm.gs.DualProjVec = axisY, axisY
	case opSPVTCA1:
		vm.gs.ProjVec, vm.gs.DualProjVec = axisX, axisX
	case opSFVTCA0:
		vm.gs.FreedomVec = axisY
	case opSFVTCA1:
		vm.gs.FreedomVec = axisX
	case opSPVTL0, opSPVTL1:
		return vm.setVectorToLine(op == opSPVTL1, false)
	case opSFVTL0, opSFVTL1:
		return vm.setVectorToLine(op == opSFVTL1, true)
	case opSDPVTL0, opSDPVTL1:
		return vm.setDualVectorToLine(op == opSDPVTL1)
	case opSPVFS:
		return vm.setVectorFromStack(false)
	case opSFVFS:
		return vm.setVectorFromStack(true)
	case opGPV:
		vm.push(int32(vm.gs.ProjVec.X))
		vm.push(int32(vm.gs.ProjVec.Y))
	case opGFV:
		vm.push(int32(vm.gs.FreedomVec.X))
		vm.push(int32(vm.gs.FreedomVec.Y))
	case opSFVTPV:
		vm.gs.FreedomVec = vm.gs.ProjVec
	case opISECT:
		return vm.isect()

	case opSRP0, opSRP1, opSRP2:
		i, err := vm.popIndex()
		if err != nil {
			return err
		}
		vm.gs.RP[op-opSRP0] = i
	case opSZP0, opSZP1, opSZP2:
		i, err := vm.popIndex()
		if err != nil {
			return err
		}
		if i != 0 && i != 1 {
			return sfnt.InvalidInstructionError{PC: pcAtOp, Opcode: op}
		}
		vm.gs.ZP[op-opSZP0] = i
	case opSZPS:
		i, err := vm.popIndex()
		if err != nil {
			return err
		}
		if i != 0 && i != 1 {
			return sfnt.InvalidInstructionError{PC: pcAtOp, Opcode: op}
		}
		vm.gs.ZP[0], vm.gs.ZP[1], vm.gs.ZP[2] = i, i, i
	case opSLOOP:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.gs.Loop = v
	case opRTG:
		vm.gs.Round = roundToGrid
	case opRTHG:
		vm.gs.Round = roundToHalfGrid
	case opRTDG:
		vm.gs.Round = roundToDoubleGrid
	case opRDTG:
		vm.gs.Round = roundDownToGrid
	case opRUTG:
		vm.gs.Round = roundUpToGrid
	case opROFF:
		vm.gs.Round = roundOff
	case opSROUND:
		return vm.setSuperRound(1.0)
	case opS45ROUND:
		return vm.setSuperRound(math.Sqrt2 / 2)
	case opSMD:
		v, err := vm.popF26()
		if err != nil {
			return err
		}
		vm.gs.MinimumDistance = v
	case opELSE:
		return vm.skipToElseOrEIF(false)
	case opJMPR:
		off, err := vm.pop()
		if err != nil {
			return err
		}
		vm.pc = pcAtOp + int(off)
	case opSCVTCI:
		v, err := vm.popF26()
		if err != nil {
			return err
		}
		vm.gs.ControlValueCutIn = v
	case opSSWCI:
		v, err := vm.popF26()
		if err != nil {
			return err
		}
		vm.gs.SingleWidthCutIn = v
	case opSSW:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.gs.SingleWidthValue = sfnt.F26Dot6(v)

	case opDUP:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.push(v)
		vm.push(v)
	case opPOP:
		_, err := vm.pop()
		return err
	case opCLEAR:
		vm.stack = vm.stack[:0]
	case opSWAP:
		a, err := vm.pop()
		if err != nil {
			return err
		}
		b, err := vm.pop()
		if err != nil {
			return err
		}
		vm.push(a)
		vm.push(b)
	case opDEPTH:
		vm.push(int32(len(vm.stack)))
	case opCINDEX:
		i, err := vm.popIndex()
		if err != nil {
			return err
		}
		if i < 1 || i > len(vm.stack) {
			return sfnt.InvalidGlyphError("CINDEX out of range")
		}
		vm.push(vm.stack[len(vm.stack)-i])
	case opMINDEX:
		i, err := vm.popIndex()
		if err != nil {
			return err
		}
		if i < 1 || i > len(vm.stack) {
			return sfnt.InvalidGlyphError("MINDEX out of range")
		}
		j := len(vm.stack) - i
		v := vm.stack[j]
		vm.stack = append(vm.stack[:j], vm.stack[j+1:]...)
		vm.push(v)
	case opROLL:
		if len(vm.stack) < 3 {
			return sfnt.StackUnderflowError{PC: pcAtOp}
		}
		n := len(vm.stack)
		a, b, c := vm.stack[n-3], vm.stack[n-2], vm.stack[n-1]
		vm.stack[n-3], vm.stack[n-2], vm.stack[n-1] = b, c, a

	case opALIGNPTS:
		return vm.alignPts()
	case opUTP:
		return vm.utp()
	case opLOOPCALL:
		fn, err := vm.pop()
		if err != nil {
			return err
		}
		count, err := vm.pop()
		if err != nil {
			return err
		}
		for i := int32(0); i < count; i++ {
			if err := vm.callFunction(fn, vm.funcs); err != nil {
				return err
			}
		}
	case opCALL:
		fn, err := vm.pop()
		if err != nil {
			return err
		}
		return vm.callFunction(fn, vm.funcs)
	case opFDEF:
		return vm.defineFunction(vm.funcs, pcAtOp)
	case opIDEF:
		return vm.defineFunction(nil, pcAtOp)
	case opENDF:
		// Reached by falling through a function body rather than
		// returning via CALL's own loop: nothing to do, the enclosing
		// callFunction loop bound will stop at fd.end.
	case opMDAP0, opMDAP1:
		return vm.mdap(op == opMDAP1)
	case opMIAP0, opMIAP1:
		return vm.miap(op == opMIAP1)

	case opIUP0:
		return vm.iup(false)
	case opIUP1:
		return vm.iup(true)
	case opSHP0, opSHP1:
		return vm.shp(op == opSHP1)
	case opSHC0, opSHC1:
		return vm.shc(op == opSHC1)
	case opSHZ0, opSHZ1:
		return vm.shz(op == opSHZ1)
	case opSHPIX:
		return vm.shpix()
	case opIP:
		return vm.ip()
	case opMSIRP0, opMSIRP1:
		return vm.msirp(op == opMSIRP1)
	case opALIGNRP:
		return vm.alignrp()
	case opFLIPPT:
		return vm.flippt()
	case opFLIPRGON, opFLIPRGOFF:
		return vm.fliprange(op == opFLIPRGON)

	case opNPUSHB:
		if vm.pc >= len(vm.prog) {
			return sfnt.MalformedDataError("NPUSHB missing count byte")
		}
		n := int(vm.prog[vm.pc])
		vm.pc++
		return vm.pushBytes(n)
	case opNPUSHW:
		if vm.pc >= len(vm.prog) {
			return sfnt.MalformedDataError("NPUSHW missing count byte")
		}
		n := int(vm.prog[vm.pc])
		vm.pc++
		return vm.pushWords(n)
	case opWS:
		return vm.writeStorage()
	case opRS:
		return vm.readStorage()
	case opWCVTP:
		return vm.writeCVT(false)
	case opWCVTF:
		return vm.writeCVT(true)
	case opRCVT:
		i, err := vm.popIndex()
		if err != nil {
			return err
		}
		v, err := vm.cvtAt(i)
		if err != nil {
			return err
		}
		vm.pushF26(v)
	case opGC0, opGC1:
		return vm.gc(op == opGC1)
	case opSCFS:
		return vm.scfs()
	case opMD0, opMD1:
		return vm.md(op == opMD1)
	case opMPPEM:
		vm.push(vm.ppem)
	case opMPS:
		vm.push(vm.ppem) // point size in pixels == ppem for this renderer's single-axis scale
	case opFLIPON:
		vm.gs.AutoFlip = true
	case opFLIPOFF:
		vm.gs.AutoFlip = false
	case opDEBUG:
		_, err := vm.pop()
		return err

	case opLT, opLTEQ, opGT, opGTEQ, opEQ, opNEQ:
		b, err := vm.pop()
		if err != nil {
			return err
		}
		a, err := vm.pop()
		if err != nil {
			return err
		}
		var res bool
		switch op {
		case opLT:
			res = a < b
		case opLTEQ:
			res = a <= b
		case opGT:
			res = a > b
		case opGTEQ:
			res = a >= b
		case opEQ:
			res = a == b
		case opNEQ:
			res = a != b
		}
		vm.push(bool2int32(res))
	case opODD, opEVEN:
		v, err := vm.popF26()
		if err != nil {
			return err
		}
		i := vm.applyRound(v).Int()
		isOdd := i%2 != 0
		if op == opODD {
			vm.push(bool2int32(isOdd))
		} else {
			vm.push(bool2int32(!isOdd))
		}
	case opIF:
		c, err := vm.pop()
		if err != nil {
			return err
		}
		if c == 0 {
			return vm.skipToElseOrEIF(true)
		}
	case opEIF:
		// no-op: reached naturally at the end of a taken IF branch
	case opAND, opOR:
		b, err := vm.pop()
		if err != nil {
			return err
		}
		a, err := vm.pop()
		if err != nil {
			return err
		}
		if op == opAND {
			vm.push(bool2int32(a != 0 && b != 0))
		} else {
			vm.push(bool2int32(a != 0 || b != 0))
		}
	case opNOT:
		a, err := vm.pop()
		if err != nil {
			return err
		}
		vm.push(bool2int32(a == 0))
	case opDELTAP1:
		return vm.deltaP(0)
	case opDELTAP2:
		return vm.deltaP(1)
	case opDELTAP3:
		return vm.deltaP(2)
	case opDELTAC1:
		return vm.deltaC(0)
	case opDELTAC2:
		return vm.deltaC(1)
	case opDELTAC3:
		return vm.deltaC(2)
	case opSDB:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.gs.DeltaBase = v
	case opSDS:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.gs.DeltaShift = v

	case opADD:
		a, err := vm.popF26()
		if err != nil {
			return err
		}
		b, err := vm.popF26()
		if err != nil {
			return err
		}
		vm.pushF26(b.Add(a))
	case opSUB:
		a, err := vm.popF26()
		if err != nil {
			return err
		}
		b, err := vm.popF26()
		if err != nil {
			return err
		}
		vm.pushF26(b.Sub(a))
	case opDIV:
		a, err := vm.popF26()
		if err != nil {
			return err
		}
		b, err := vm.popF26()
		if err != nil {
			return err
		}
		vm.pushF26(b.Div(a))
	case opMUL:
		a, err := vm.popF26()
		if err != nil {
			return err
		}
		b, err := vm.popF26()
		if err != nil {
			return err
		}
		vm.pushF26(b.Mul(a))
	case opABS:
		v, err := vm.popF26()
		if err != nil {
			return err
		}
		vm.pushF26(v.Abs())
	case opNEG:
		v, err := vm.popF26()
		if err != nil {
			return err
		}
		vm.pushF26(v.Neg())
	case opFLOOR:
		v, err := vm.popF26()
		if err != nil {
			return err
		}
		vm.pushF26(v.Floor())
	case opCEILING:
		v, err := vm.popF26()
		if err != nil {
			return err
		}
		vm.pushF26(v.Ceil())
	case opMAX:
		a, err := vm.pop()
		if err != nil {
			return err
		}
		b, err := vm.pop()
		if err != nil {
			return err
		}
		if a > b {
			vm.push(a)
		} else {
			vm.push(b)
		}
	case opMIN:
		a, err := vm.pop()
		if err != nil {
			return err
		}
		b, err := vm.pop()
		if err != nil {
			return err
		}
		if a < b {
			vm.push(a)
		} else {
			vm.push(b)
		}

	case opJROT:
		c, err := vm.pop()
		if err != nil {
			return err
		}
		off, err := vm.pop()
		if err != nil {
			return err
		}
		if c != 0 {
			vm.pc = pcAtOp + int(off)
		}
	case opJROF:
		c, err := vm.pop()
		if err != nil {
			return err
		}
		off, err := vm.pop()
		if err != nil {
			return err
		}
		if c == 0 {
			vm.pc = pcAtOp + int(off)
		}

	case opSANGW:
		_, err := vm.pop() // obsolete: "set angle weight" has no effect since FreeType 2
		return err
	case opAA:
		_, err := vm.pop() // obsolete "adjust angle", likewise inert
		return err

	case opSCANCTRL:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.gs.ScanControl = v != 0
	case opSCANTYPE:
		v, err := vm.pop()
		if err != nil {
			return err
		}
		vm.gs.ScanType = v
	case opINSTCTRL:
		s, err := vm.pop()
		if err != nil {
			return err
		}
		_, err = vm.pop()
		if err != nil {
			return err
		}
		vm.gs.InstructCtrl = s
	case opGETINFO:
		sel, err := vm.pop()
		if err != nil {
			return err
		}
		var result int32
		if sel&0x01 != 0 {
			result |= 42 // rasterizer version: arbitrary stable constant
		}
		vm.push(result)

	default:
		return sfnt.InvalidInstructionError{PC: pcAtOp, Opcode: op}
	}
	return nil
}

func (vm *VM) pushBytes(n int) error {
	if vm.pc+n > len(vm.prog) {
		return sfnt.MalformedDataError("PUSHB/NPUSHB overruns program")
	}
	for i := 0; i < n; i++ {
		vm.push(int32(vm.prog[vm.pc+i]))
	}
	vm.pc += n
	return nil
}

func (vm *VM) pushWords(n int) error {
	if vm.pc+2*n > len(vm.prog) {
		return sfnt.MalformedDataError("PUSHW/NPUSHW overruns program")
	}
	for i := 0; i < n; i++ {
		hi := vm.prog[vm.pc]
		lo := vm.prog[vm.pc+1]
		vm.pc += 2
		vm.push(int32(int16(uint16(hi)<<8 | uint16(lo))))
	}
	return nil
}
