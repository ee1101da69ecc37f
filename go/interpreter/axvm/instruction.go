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
	"bytes"
	"fmt"

	"github.com/Fantom-foundation/Axon/go/axon/isa"
	"golang.org/x/exp/constraints"
)

// Instruction is a decoded instruction of the register machine. Register
// indexes range from 0 to 15, where 0 names the zero register.
type Instruction[A constraints.Unsigned] struct {
	// Index is the decoding table slot the variant was taken from.
	Index     uint16
	Variant   isa.OpcodeVariant
	Condition isa.Condition
	Src0      uint8
	Src1      uint8
	Dst0      uint8
	Dst1      uint8
	Imm0      A
	Imm1      A
}

// Header layout shared by all encodings.
const (
	conditionShift = isa.ConditionalBitsShift
	conditionMask  = 1<<isa.ConditionBits - 1
	registerMask   = 1<<isa.RegisterIndexEncodingBits - 1
	src0Shift      = isa.SrcRegsShift
	src1Shift      = isa.SrcRegsShift + isa.RegisterIndexEncodingBits
	dst0Shift      = isa.DstRegsShift
	dst1Shift      = isa.DstRegsShift + isa.RegisterIndexEncodingBits
)

// decodeInstruction resolves the 32-bit header of an instruction against the
// decoding table.
func decodeInstruction[A constraints.Unsigned](table *isa.Table, header uint32, imm0, imm1 A) Instruction[A] {
	index := uint16(header & isa.TableIndexMask)
	return Instruction[A]{
		Index:     index,
		Variant:   table.Decode(uint64(index)),
		Condition: isa.Condition(header >> conditionShift & conditionMask),
		Src0:      uint8(header >> src0Shift & registerMask),
		Src1:      uint8(header >> src1Shift & registerMask),
		Dst0:      uint8(header >> dst0Shift & registerMask),
		Dst1:      uint8(header >> dst1Shift & registerMask),
		Imm0:      imm0,
		Imm1:      imm1,
	}
}

// header packs the instruction into its 32-bit header.
func (i Instruction[A]) header() uint32 {
	return uint32(i.Index&isa.TableIndexMask) |
		uint32(i.Condition&conditionMask)<<conditionShift |
		uint32(i.Src0&registerMask)<<src0Shift |
		uint32(i.Src1&registerMask)<<src1Shift |
		uint32(i.Dst0&registerMask)<<dst0Shift |
		uint32(i.Dst1&registerMask)<<dst1Shift
}

func (i Instruction[A]) String() string {
	var buffer bytes.Buffer
	if i.Condition != isa.Always {
		fmt.Fprintf(&buffer, "%v.", i.Condition)
	}
	fmt.Fprintf(&buffer, "%v r%d,r%d -> r%d,r%d", i.Variant, i.Src0, i.Src1, i.Dst0, i.Dst1)
	if i.Imm0 != 0 || i.Imm1 != 0 {
		fmt.Fprintf(&buffer, " imm=%#x,%#x", uint64(i.Imm0), uint64(i.Imm1))
	}
	return buffer.String()
}

// Code is a sequence of instructions to be assembled into code words.
type Code[A constraints.Unsigned] []Instruction[A]

func (c Code[A]) String() string {
	var buffer bytes.Buffer
	for i, instruction := range c {
		buffer.WriteString(fmt.Sprintf("0x%04x: %v\n", i, instruction))
	}
	return buffer.String()
}
