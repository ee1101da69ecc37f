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

// ForwardingMode selects the memory a call or return passes its data from.
type ForwardingMode byte

const (
	UseHeap           ForwardingMode = 0
	ForwardFatPointer ForwardingMode = 1
	UseAuxHeap        ForwardingMode = 2
)

func (m ForwardingMode) IsValid() bool {
	return m <= UseAuxHeap
}

func (m ForwardingMode) String() string {
	switch m {
	case UseHeap:
		return "heap"
	case ForwardFatPointer:
		return "forward"
	case UseAuxHeap:
		return "aux-heap"
	}
	return fmt.Sprintf("ForwardingMode(%d)", byte(m))
}

// FarCallABI is the layout of src0 of a far call.
type FarCallABI struct {
	Pointer         FatPointer
	ErgsPassed      uint32
	ShardID         uint8
	ForwardingMode  ForwardingMode
	ConstructorCall bool
	ToSystem        bool
}

func FarCallABIFromWord(word *uint256.Int) FarCallABI {
	high := word[3]
	return FarCallABI{
		Pointer:         FatPointerFromWord(word),
		ErgsPassed:      uint32(high),
		ShardID:         uint8(high >> 32),
		ForwardingMode:  ForwardingMode(high >> 40),
		ConstructorCall: uint8(high>>48) != 0,
		ToSystem:        uint8(high>>56) != 0,
	}
}

func (a FarCallABI) ToWord() uint256.Int {
	res := a.Pointer.ToWord()
	res[3] = uint64(a.ErgsPassed) |
		uint64(a.ShardID)<<32 |
		uint64(a.ForwardingMode)<<40 |
		uint64(boolToByte(a.ConstructorCall))<<48 |
		uint64(boolToByte(a.ToSystem))<<56
	return res
}

// RetABI is the layout of src0 of a far return.
type RetABI struct {
	Pointer        FatPointer
	ForwardingMode ForwardingMode
}

func RetABIFromWord(word *uint256.Int) RetABI {
	return RetABI{
		Pointer:        FatPointerFromWord(word),
		ForwardingMode: ForwardingMode(word[3] >> 40),
	}
}

func (a RetABI) ToWord() uint256.Int {
	res := a.Pointer.ToWord()
	res[3] = uint64(a.ForwardingMode) << 40
	return res
}

// NearCallABI is the layout of src0 of a near call. Zero ergs pass all
// remaining ergs.
type NearCallABI struct {
	ErgsPassed uint32
}

func NearCallABIFromWord(word *uint256.Int) NearCallABI {
	return NearCallABI{ErgsPassed: uint32(word[0])}
}

// PrecompileCallABI is the layout of src0 of a precompile call. Input is
// addressed in bytes, output in words.
type PrecompileCallABI struct {
	InputMemoryOffset         uint32
	InputMemoryLength         uint32
	OutputMemoryOffset        uint32
	OutputMemoryLength        uint32
	MemoryPageToRead          uint32
	MemoryPageToWrite         uint32
	PrecompileInterpretedData uint64
}

func PrecompileCallABIFromWord(word *uint256.Int) PrecompileCallABI {
	return PrecompileCallABI{
		InputMemoryOffset:         uint32(word[0]),
		InputMemoryLength:         uint32(word[0] >> 32),
		OutputMemoryOffset:        uint32(word[1]),
		OutputMemoryLength:        uint32(word[1] >> 32),
		MemoryPageToRead:          uint32(word[2]),
		MemoryPageToWrite:         uint32(word[2] >> 32),
		PrecompileInterpretedData: word[3],
	}
}

func (a PrecompileCallABI) ToWord() uint256.Int {
	return uint256.Int{
		uint64(a.InputMemoryOffset) | uint64(a.InputMemoryLength)<<32,
		uint64(a.OutputMemoryOffset) | uint64(a.OutputMemoryLength)<<32,
		uint64(a.MemoryPageToRead) | uint64(a.MemoryPageToWrite)<<32,
		a.PrecompileInterpretedData,
	}
}

// MetaParameters is the value reported by Context.Meta.
type MetaParameters struct {
	ErgsPerPubdataByte uint32
	HeapSize           uint32
	AuxHeapSize        uint32
	ThisShardID        uint8
	CallerShardID      uint8
	CodeShardID        uint8
}

func (m MetaParameters) ToWord() uint256.Int {
	shards := uint64(m.ThisShardID) | uint64(m.CallerShardID)<<8 | uint64(m.CodeShardID)<<16
	return uint256.Int{
		uint64(m.ErgsPerPubdataByte),
		uint64(m.HeapSize) | uint64(m.AuxHeapSize)<<32,
		0,
		shards << 32,
	}
}

// Call flags placed in r2 of a far call callee.
const (
	CallFlagConstructor = 1 << 0
	CallFlagSystem      = 1 << 1
)

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
