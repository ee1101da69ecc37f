// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package axvm

import (
	"math/bits"

	"github.com/Fantom-foundation/Axon/go/axon"
	"github.com/Fantom-foundation/Axon/go/axon/isa"
	"github.com/holiman/uint256"
	"golang.org/x/exp/constraints"
)

// Handlers set the pc of the current frame first. A handler deciding to
// panic calls setShorthandPanic and returns without any further mutation.
// Errors returned by handlers are backend failures aborting the run.

func opNop[A constraints.Unsigned](c *context[A], _ *Instruction[A], operands *prestate[A]) error {
	// operand resolution may still have moved the stack pointer
	c.callstack.current().Pc = operands.nextPc
	return nil
}

func opJump[A constraints.Unsigned](c *context[A], _ *Instruction[A], operands *prestate[A]) error {
	c.callstack.current().Pc = A(axon.Low64(&operands.src0.Value))
	return nil
}

func opAdd[A constraints.Unsigned](c *context[A], instruction *Instruction[A], operands *prestate[A]) error {
	c.callstack.current().Pc = operands.nextPc
	var result uint256.Int
	_, carry := result.AddOverflow(&operands.src0.Value, &operands.src1.Value)
	if instruction.Variant.SetFlags() {
		c.setArithmeticFlags(carry, result.IsZero())
	}
	return c.writeDst0(instruction, operands, axon.PrimitiveValue{Value: result})
}

func opSub[A constraints.Unsigned](c *context[A], instruction *Instruction[A], operands *prestate[A]) error {
	c.callstack.current().Pc = operands.nextPc
	var result uint256.Int
	_, borrow := result.SubOverflow(&operands.src0.Value, &operands.src1.Value)
	if instruction.Variant.SetFlags() {
		c.setArithmeticFlags(borrow, result.IsZero())
	}
	return c.writeDst0(instruction, operands, axon.PrimitiveValue{Value: result})
}

func opMul[A constraints.Unsigned](c *context[A], instruction *Instruction[A], operands *prestate[A]) error {
	c.callstack.current().Pc = operands.nextPc
	low, high := mulFull(&operands.src0.Value, &operands.src1.Value)
	if instruction.Variant.SetFlags() {
		c.setArithmeticFlags(!high.IsZero(), low.IsZero())
	}
	if err := c.writeDst0(instruction, operands, axon.PrimitiveValue{Value: low}); err != nil {
		return err
	}
	c.writeRegister(instruction.Dst1, axon.PrimitiveValue{Value: high})
	return nil
}

func opDiv[A constraints.Unsigned](c *context[A], instruction *Instruction[A], operands *prestate[A]) error {
	c.callstack.current().Pc = operands.nextPc
	var quotient, remainder uint256.Int
	divisorIsZero := operands.src1.Value.IsZero()
	if !divisorIsZero {
		quotient.DivMod(&operands.src0.Value, &operands.src1.Value, &remainder)
	}
	if instruction.Variant.SetFlags() {
		c.flags = Flags{
			LessThanOrOverflow: divisorIsZero,
			Equal:              !divisorIsZero && quotient.IsZero(),
			GreaterThan:        !divisorIsZero && remainder.IsZero(),
		}
	}
	if err := c.writeDst0(instruction, operands, axon.PrimitiveValue{Value: quotient}); err != nil {
		return err
	}
	c.writeRegister(instruction.Dst1, axon.PrimitiveValue{Value: remainder})
	return nil
}

// setArithmeticFlags sets the flags of additive and multiplicative results.
func (c *context[A]) setArithmeticFlags(overflow, zero bool) {
	c.flags = Flags{
		LessThanOrOverflow: overflow,
		Equal:              zero,
		GreaterThan:        !overflow && !zero,
	}
}

// mulFull returns the low and high half of the 512-bit product of x and y.
func mulFull(x, y *uint256.Int) (low, high uint256.Int) {
	var res [8]uint64
	for i := 0; i < 4; i++ {
		var carry uint64
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(x[i], y[j])
			var c uint64
			lo, c = bits.Add64(lo, res[i+j], 0)
			hi += c
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			res[i+j] = lo
			carry = hi
		}
		res[i+4] = carry
	}
	low = uint256.Int{res[0], res[1], res[2], res[3]}
	high = uint256.Int{res[4], res[5], res[6], res[7]}
	return low, high
}

func opBinop[A constraints.Unsigned](c *context[A], instruction *Instruction[A], operands *prestate[A]) error {
	c.callstack.current().Pc = operands.nextPc
	var result uint256.Int
	switch isa.BinopOp(instruction.Variant.Opcode.Variant) {
	case isa.BinopXor:
		result.Xor(&operands.src0.Value, &operands.src1.Value)
	case isa.BinopAnd:
		result.And(&operands.src0.Value, &operands.src1.Value)
	case isa.BinopOr:
		result.Or(&operands.src0.Value, &operands.src1.Value)
	}
	if instruction.Variant.SetFlags() {
		c.resetFlags()
		c.flags.Equal = result.IsZero()
	}
	return c.writeDst0(instruction, operands, axon.PrimitiveValue{Value: result})
}

func opShift[A constraints.Unsigned](c *context[A], instruction *Instruction[A], operands *prestate[A]) error {
	c.callstack.current().Pc = operands.nextPc
	src := &operands.src0.Value
	amount := uint(uint8(axon.Low64(&operands.src1.Value)))

	var result uint256.Int
	switch isa.ShiftOp(instruction.Variant.Opcode.Variant) {
	case isa.ShiftShl:
		result.Lsh(src, amount)
	case isa.ShiftShr:
		result.Rsh(src, amount)
	case isa.ShiftRol:
		result.Lsh(src, amount)
		if amount != 0 {
			var wrapped uint256.Int
			result.Or(&result, wrapped.Rsh(src, 256-amount))
		}
	case isa.ShiftRor:
		result.Rsh(src, amount)
		if amount != 0 {
			var wrapped uint256.Int
			result.Or(&result, wrapped.Lsh(src, 256-amount))
		}
	}
	if instruction.Variant.SetFlags() {
		c.resetFlags()
		c.flags.Equal = result.IsZero()
	}
	return c.writeDst0(instruction, operands, axon.PrimitiveValue{Value: result})
}

func opPtr[A constraints.Unsigned](c *context[A], instruction *Instruction[A], operands *prestate[A]) error {
	c.callstack.current().Pc = operands.nextPc
	src0, src1 := &operands.src0, &operands.src1
	if !src0.IsPointer || src1.IsPointer {
		c.setShorthandPanic()
		return nil
	}

	var result uint256.Int
	switch op := isa.PtrOp(instruction.Variant.Opcode.Variant); op {
	case isa.PtrAdd, isa.PtrSub:
		if !src1.Value.LtUint64(isa.MaxOffsetForAddSub) {
			c.setShorthandPanic()
			return nil
		}
		ptr := isa.FatPointerFromWord(&src0.Value)
		delta := axon.Low32(&src1.Value)
		var overflow bool
		if op == isa.PtrAdd {
			ptr.Offset, overflow = addUint32(ptr.Offset, delta)
		} else {
			ptr.Offset, overflow = subUint32(ptr.Offset, delta)
		}
		if overflow {
			c.setShorthandPanic()
			return nil
		}
		result = ptr.WithLowBitsOf(&src0.Value)
	case isa.PtrPack:
		if !axon.Low128IsZero(&src1.Value) {
			c.setShorthandPanic()
			return nil
		}
		result = uint256.Int{src0.Value[0], src0.Value[1], src1.Value[2], src1.Value[3]}
	case isa.PtrShrink:
		ptr := isa.FatPointerFromWord(&src0.Value)
		var underflow bool
		ptr.Length, underflow = subUint32(ptr.Length, axon.Low32(&src1.Value))
		if underflow {
			c.setShorthandPanic()
			return nil
		}
		result = ptr.WithLowBitsOf(&src0.Value)
	}
	return c.writeDst0(instruction, operands, axon.NewPointer(&result))
}

func addUint32(a, b uint32) (uint32, bool) {
	sum, carry := bits.Add32(a, b, 0)
	return sum, carry != 0
}

func subUint32(a, b uint32) (uint32, bool) {
	diff, borrow := bits.Sub32(a, b, 0)
	return diff, borrow != 0
}
