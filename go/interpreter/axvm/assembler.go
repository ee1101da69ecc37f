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

	"github.com/Fantom-foundation/Axon/go/axon/isa"
	"github.com/holiman/uint256"
	"golang.org/x/exp/constraints"
)

// Op creates an unconditional instruction of the given variant. Registers
// and immediates are set through the returned value's fields.
func Op[A constraints.Unsigned](variant isa.OpcodeVariant) Instruction[A] {
	return Instruction[A]{Variant: variant}
}

// Assemble encodes instructions into code words. Constants are placed in the
// words following the last instruction, see ConstantsStart. The table index
// of each instruction is derived from its variant.
func Assemble[A constraints.Unsigned](table *isa.Table, encoding Encoding[A], code Code[A], constants ...uint256.Int) ([]uint256.Int, error) {
	perWord := encoding.InstructionsPerWord()
	start := ConstantsStart(encoding, len(code))
	if uint64(len(code)) > uint64(PanicPc[A]()) {
		return nil, fmt.Errorf("%w: %d instructions", errCodeTooLarge, len(code))
	}
	words := make([]uint256.Int, int(start)+len(constants))
	for i, instruction := range code {
		index, err := table.Encode(instruction.Variant)
		if err != nil {
			return nil, fmt.Errorf("instruction %d: %w", i, err)
		}
		instruction.Index = index
		encoding.Pack(&words[i/perWord], i%perWord, instruction.header(), instruction.Imm0, instruction.Imm1)
	}
	copy(words[start:], constants)
	return words, nil
}

// ConstantsStart returns the index of the first code word following the
// given number of instructions.
func ConstantsStart[A constraints.Unsigned](encoding Encoding[A], numInstructions int) uint32 {
	perWord := encoding.InstructionsPerWord()
	return uint32((numInstructions + perWord - 1) / perWord)
}

// Disassemble decodes every instruction slot of the given code words. Words
// holding constants decode like any other word.
func Disassemble[A constraints.Unsigned](table *isa.Table, encoding Encoding[A], words []uint256.Int) Code[A] {
	perWord := encoding.InstructionsPerWord()
	res := make(Code[A], 0, len(words)*perWord)
	for pc := A(0); int(encoding.CodeWordIndex(pc)) < len(words); pc++ {
		header, imm0, imm1 := encoding.Unpack(&words[encoding.CodeWordIndex(pc)], pc)
		res = append(res, decodeInstruction(table, header, imm0, imm1))
		if pc == PanicPc[A]()-1 {
			break
		}
	}
	return res
}
