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
	"fmt"

	"github.com/Fantom-foundation/Axon/go/axon"
	"github.com/Fantom-foundation/Axon/go/axon/isa"
	"golang.org/x/exp/constraints"
)

// umaWordSize is the number of bytes moved by an unaligned memory access.
const umaWordSize = 32

func opUMA[A constraints.Unsigned](c *context[A], instruction *Instruction[A], operands *prestate[A]) error {
	frame := c.callstack.current()
	frame.Pc = operands.nextPc

	op := isa.UMAOp(instruction.Variant.Opcode.Variant)
	if op == isa.UMAFatPointerRead {
		return umaFatPointerRead(c, instruction, operands)
	}

	src0 := &operands.src0
	if src0.IsPointer || !src0.Value.LtUint64(1<<32) {
		c.setShorthandPanic()
		return nil
	}
	offset := axon.Low32(&src0.Value)
	end := uint64(offset) + umaWordSize
	if end > isa.MaxHeapBound {
		c.setShorthandPanic()
		return nil
	}

	typ, bound, page := axon.MemoryHeap, &frame.HeapBound, frame.heapPage()
	if op == isa.UMAAuxHeapRead || op == isa.UMAAuxHeapWrite {
		typ, bound, page = axon.MemoryAuxHeap, &frame.AuxHeapBound, frame.auxHeapPage()
	}
	if !growBound(frame, bound, uint32(end)) {
		c.setShorthandPanic()
		return nil
	}

	memory := c.params.Backends.Memory
	cycle := uint32(c.cycle)
	timestamp := c.timestamp + sideEffectTimestampDelta
	switch op {
	case isa.UMAHeapRead, isa.UMAAuxHeapRead:
		data, err := axon.ReadMemoryBytes(memory, cycle, timestamp, axon.MemoryRange{
			Type:   typ,
			Page:   page,
			Offset: offset,
			Length: umaWordSize,
		})
		if err != nil {
			return fmt.Errorf("heap read failed: %w", err)
		}
		var value axon.PrimitiveValue
		value.Value.SetBytes32(data)
		if err := c.writeDst0(instruction, operands, value); err != nil {
			return err
		}
	case isa.UMAHeapWrite, isa.UMAAuxHeapWrite:
		data := operands.src1.Value.Bytes32()
		if err := axon.WriteMemoryBytes(memory, cycle, timestamp, typ, page, offset, data[:]); err != nil {
			return fmt.Errorf("heap write failed: %w", err)
		}
	}

	if instruction.Variant.Flags[isa.UMAIncrementFlagIdx] {
		c.writeRegister(instruction.Dst1, axon.NewInteger(end))
	}
	return nil
}

// umaFatPointerRead reads a word through a fat pointer. Bytes beyond the
// length of the pointer read as zero; the read never grows a bound.
func umaFatPointerRead[A constraints.Unsigned](c *context[A], instruction *Instruction[A], operands *prestate[A]) error {
	src0 := &operands.src0
	if !src0.IsPointer {
		c.setShorthandPanic()
		return nil
	}
	ptr := isa.FatPointerFromWord(&src0.Value)
	if _, overflow := ptr.End(); overflow {
		c.setShorthandPanic()
		return nil
	}
	increment := instruction.Variant.Flags[isa.UMAIncrementFlagIdx]
	next := ptr
	if increment {
		var overflow bool
		if next.Offset, overflow = addUint32(ptr.Offset, umaWordSize); overflow {
			c.setShorthandPanic()
			return nil
		}
	}

	var word [umaWordSize]byte
	if ptr.Offset < ptr.Length {
		length := min(ptr.Length-ptr.Offset, umaWordSize)
		data, err := axon.ReadMemoryBytes(c.params.Backends.Memory, uint32(c.cycle), c.timestamp+sideEffectTimestampDelta, axon.MemoryRange{
			Type:   axon.MemoryFatPointer,
			Page:   axon.MemoryPage(ptr.Page),
			Offset: ptr.Start + ptr.Offset,
			Length: length,
		})
		if err != nil {
			return fmt.Errorf("fat pointer read failed: %w", err)
		}
		copy(word[:], data)
	}
	var value axon.PrimitiveValue
	value.Value.SetBytes32(word[:])
	if err := c.writeDst0(instruction, operands, value); err != nil {
		return err
	}

	if increment {
		result := next.WithLowBitsOf(&src0.Value)
		c.writeRegister(instruction.Dst1, axon.NewPointer(&result))
	}
	return nil
}
