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
	"github.com/Fantom-foundation/Axon/go/axon"
	"github.com/Fantom-foundation/Axon/go/axon/isa"
	"golang.org/x/exp/constraints"
)

// operandResolver computes the memory locations of operands. It tracks the
// stack pointer of the current frame across the resolution of the source
// and destination operand of one instruction.
type operandResolver[A constraints.Unsigned] struct {
	sp        A
	stackPage axon.MemoryPage
	codePage  axon.MemoryPage
}

func newOperandResolver[A constraints.Unsigned](frame *Frame[A]) operandResolver[A] {
	return operandResolver[A]{
		sp:        frame.Sp,
		stackPage: frame.stackPage(),
		codePage:  frame.CodePage,
	}
}

// resolve returns the memory location addressed by the given register value
// and immediate under the given mode. The boolean result is false for modes
// not addressing memory. Push and pop modes update the stack pointer even if
// the location is never accessed.
func (r *operandResolver[A]) resolve(register axon.PrimitiveValue, imm A, mode isa.AddressingMode, isWrite bool) (axon.MemoryLocation, bool) {
	vaddr := A(axon.Low64(&register.Value)) + imm
	switch mode {
	case isa.UseStackWithPushPop:
		if isWrite {
			index := r.sp
			r.sp += vaddr
			return r.stackLocation(index), true
		}
		r.sp -= vaddr
		return r.stackLocation(r.sp), true
	case isa.UseStackWithOffset:
		return r.stackLocation(r.sp - vaddr), true
	case isa.UseAbsoluteOnStack:
		return r.stackLocation(vaddr), true
	case isa.UseCodePage:
		return axon.MemoryLocation{Type: axon.MemoryCode, Page: r.codePage, Index: uint32(vaddr)}, true
	}
	// register and immediate modes
	return axon.MemoryLocation{}, false
}

func (r *operandResolver[A]) stackLocation(index A) axon.MemoryLocation {
	return axon.MemoryLocation{Type: axon.MemoryStack, Page: r.stackPage, Index: uint32(index)}
}
