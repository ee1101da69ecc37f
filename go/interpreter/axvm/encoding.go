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
	"github.com/holiman/uint256"
	"golang.org/x/exp/constraints"
)

// Encoding defines how instructions are laid out in 256-bit code words. The
// type parameter is the width of program counters and immediates; all
// wrapping of pc and stack pointer arithmetic follows from it.
type Encoding[A constraints.Unsigned] interface {
	Name() string
	// InstructionsPerWord is the number of instructions packed into a code
	// word.
	InstructionsPerWord() int
	// CodeWordIndex returns the index of the code word holding the
	// instruction at the given pc.
	CodeWordIndex(pc A) uint32
	// Unpack extracts header and immediates of the instruction at pc from
	// its code word.
	Unpack(word *uint256.Int, pc A) (header uint32, imm0, imm1 A)
	// Pack places an instruction into the given slot of a code word.
	Pack(word *uint256.Int, slot int, header uint32, imm0, imm1 A)
}

// ProductionEncoding packs four 64-bit instructions into a code word, the
// first one in the most significant bits:
//
//	bits  0..32  header
//	bits 32..48  imm0
//	bits 48..64  imm1
type ProductionEncoding struct{}

func (ProductionEncoding) Name() string {
	return "production"
}

func (ProductionEncoding) InstructionsPerWord() int {
	return 4
}

func (ProductionEncoding) CodeWordIndex(pc uint16) uint32 {
	return uint32(pc >> 2)
}

func (ProductionEncoding) Unpack(word *uint256.Int, pc uint16) (uint32, uint16, uint16) {
	raw := word[3-int(pc&3)]
	return uint32(raw), uint16(raw >> 32), uint16(raw >> 48)
}

func (ProductionEncoding) Pack(word *uint256.Int, slot int, header uint32, imm0, imm1 uint16) {
	word[3-slot&3] = uint64(header) | uint64(imm0)<<32 | uint64(imm1)<<48
}

// TestingEncoding places a single instruction with 64-bit immediates into a
// code word: the header in the low half of the most significant limb, imm0
// in limb 1 and imm1 in limb 0.
type TestingEncoding struct{}

func (TestingEncoding) Name() string {
	return "testing"
}

func (TestingEncoding) InstructionsPerWord() int {
	return 1
}

func (TestingEncoding) CodeWordIndex(pc uint64) uint32 {
	return uint32(pc)
}

func (TestingEncoding) Unpack(word *uint256.Int, _ uint64) (uint32, uint64, uint64) {
	return uint32(word[3]), word[1], word[0]
}

func (TestingEncoding) Pack(word *uint256.Int, _ int, header uint32, imm0, imm1 uint64) {
	*word = uint256.Int{imm1, imm0, 0, uint64(header)}
}
