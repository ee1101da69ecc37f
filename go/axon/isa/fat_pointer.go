// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package isa

import (
	"fmt"

	"github.com/holiman/uint256"
)

// MaxOffsetForAddSub bounds the displacement accepted by Ptr.Add/Ptr.Sub.
const MaxOffsetForAddSub = 1 << 32

// FatPointer is a bounded view into a memory page. In its word form the
// mutable fields live in the low 128 bits:
//
//	bits   0..32  offset
//	bits  32..64  length
//	bits 128..160 page
//	bits 160..192 start
//
// The bits 192..256 are not part of the pointer and are used by the ABIs
// that embed one.
type FatPointer struct {
	Offset uint32
	Length uint32
	Page   uint32
	Start  uint32
}

// FatPointerFromWord extracts the pointer fields of a word.
func FatPointerFromWord(word *uint256.Int) FatPointer {
	return FatPointer{
		Offset: uint32(word[0]),
		Length: uint32(word[0] >> 32),
		Page:   uint32(word[2]),
		Start:  uint32(word[2] >> 32),
	}
}

// ToWord packs the pointer into a word with zero bits above 192.
func (p FatPointer) ToWord() uint256.Int {
	return uint256.Int{
		uint64(p.Offset) | uint64(p.Length)<<32,
		0,
		uint64(p.Page) | uint64(p.Start)<<32,
		0,
	}
}

// WithLowBitsOf returns the pointer word whose low 128 bits are taken from
// p and whose high 128 bits are copied from base.
func (p FatPointer) WithLowBitsOf(base *uint256.Int) uint256.Int {
	low := p.ToWord()
	return uint256.Int{low[0], low[1], base[2], base[3]}
}

// Narrow moves the start of the pointer to its current offset.
func (p FatPointer) Narrow() FatPointer {
	p.Start += p.Offset
	p.Length -= p.Offset
	p.Offset = 0
	return p
}

// IsInBounds reports whether the offset does not exceed the length.
func (p FatPointer) IsInBounds() bool {
	return p.Offset <= p.Length
}

// End returns start + length and whether that sum overflowed.
func (p FatPointer) End() (uint32, bool) {
	end := p.Start + p.Length
	return end, end < p.Start
}

func (p FatPointer) String() string {
	return fmt.Sprintf("ptr(page=%d, start=%d, length=%d, offset=%d)", p.Page, p.Start, p.Length, p.Offset)
}
