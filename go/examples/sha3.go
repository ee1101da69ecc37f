// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.
package examples

import (
	"github.com/Fantom-foundation/Axon/go/axon"
	"github.com/Fantom-foundation/Axon/go/axon/isa"
	"github.com/Fantom-foundation/Axon/go/interpreter/axvm"
	"github.com/holiman/uint256"
)

// GetSha3Example hashes the argument n times through the keccak precompile.
// Precompiles are invoked by the code running at their address, so the
// example runs at the keccak address.
func GetSha3Example() Example {
	abi := isa.PrecompileCallABI{
		InputMemoryLength:  32,
		OutputMemoryOffset: 1, // in words
		MemoryPageToRead:   uint32(isa.BootloaderHeapPage),
		MemoryPageToWrite:  uint32(isa.BootloaderHeapPage),
	}
	return exampleSpec{
		Name: "sha3",
		program: func(constants uint64) axvm.Code[uint64] {
			code := axvm.Code[uint64]{
				{Variant: readArg, Src0: 1, Dst0: 2},             // r2 = n
				{Variant: add, Src0: 2, Dst0: 3},                 // r3 = h = n
				{Variant: addCode, Imm0: constants + 1, Dst0: 7}, // r7 = precompile ABI
				{Variant: compare, Src0: 5, Src1: 2},             // loop: i - n
				{Variant: jump, Imm0: 10, Condition: isa.Ge},     // exit if i >= n
				{Variant: heapWrite, Src1: 3},                    // heap[0:32] = h
				{Variant: precompile, Src0: 7},                   // heap[32:64] = keccak(heap[0:32])
				{Variant: heapRead, Imm0: 32, Dst0: 3},           // h = heap[32:64]
				{Variant: addImm, Imm0: 1, Src1: 5, Dst0: 5},     // i++
				{Variant: jump, Imm0: 3},                         // next iteration
			}
			return append(code, returnWord(3, constants)...)
		},
		constants: []uint256.Int{abi.ToWord()},
		address:   isa.AddressKeccak256,
		reference: sha3,
	}.build()
}

func sha3(n int) int {
	hash := encodeArgument(n)
	for i := 0; i < n; i++ {
		digest := axon.Keccak256(hash)
		hash = digest[:]
	}
	res, _ := decodeOutput(hash)
	return res
}
