// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package backend

import (
	"crypto/sha256"
	"fmt"

	"github.com/Fantom-foundation/Axon/go/axon"
	"github.com/Fantom-foundation/Axon/go/axon/isa"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
)

// Precompiles executes the precompiled contracts at their system
// addresses. Input bytes are read from the page and byte offset given by
// the call ABI; results are written as whole words at the output word
// offset.
type Precompiles struct {
	calls map[axon.Address]int
}

func NewPrecompiles() *Precompiles {
	return &Precompiles{calls: map[axon.Address]int{}}
}

type precompile func(input []byte) []uint256.Int

var precompiles = map[axon.Address]precompile{
	isa.AddressKeccak256: keccak256Precompile,
	isa.AddressSha256:    sha256Precompile,
	isa.AddressEcrecover: ecrecoverPrecompile,
	isa.AddressIdentity:  identityPrecompile,
}

func (p *Precompiles) ExecutePrecompile(cycle uint32, query axon.LogQuery, memory axon.Memory) error {
	function, found := precompiles[query.Address]
	if !found {
		return fmt.Errorf("%w: %v", axon.ErrUnknownPrecompile, query.Address)
	}
	p.calls[query.Address]++

	abi := isa.PrecompileCallABIFromWord(&query.Key)
	input, err := axon.ReadMemoryBytes(memory, cycle, query.Timestamp, axon.MemoryRange{
		Type:   axon.MemoryHeap,
		Page:   axon.MemoryPage(abi.MemoryPageToRead),
		Offset: abi.InputMemoryOffset,
		Length: abi.InputMemoryLength,
	})
	if err != nil {
		return fmt.Errorf("failed to read precompile input: %w", err)
	}

	output := function(input)
	for i := range output {
		_, err := memory.ExecuteQuery(cycle, axon.MemoryQuery{
			Timestamp: query.Timestamp,
			Location: axon.MemoryLocation{
				Type:  axon.MemoryHeap,
				Page:  axon.MemoryPage(abi.MemoryPageToWrite),
				Index: abi.OutputMemoryOffset + uint32(i),
			},
			Value:   axon.PrimitiveValue{Value: output[i]},
			IsWrite: true,
		})
		if err != nil {
			return fmt.Errorf("failed to write precompile output: %w", err)
		}
	}
	return nil
}

// NumCalls returns how often the precompile at the given address ran.
func (p *Precompiles) NumCalls(address axon.Address) int {
	return p.calls[address]
}

func keccak256Precompile(input []byte) []uint256.Int {
	hash := axon.Keccak256(input)
	return []uint256.Int{*new(uint256.Int).SetBytes32(hash[:])}
}

func sha256Precompile(input []byte) []uint256.Int {
	hash := sha256.Sum256(input)
	return []uint256.Int{*new(uint256.Int).SetBytes32(hash[:])}
}

// ecrecoverPrecompile takes hash, v, r and s as 32-byte words and produces
// a success flag followed by the recovered address.
func ecrecoverPrecompile(input []byte) []uint256.Int {
	failure := []uint256.Int{{}, {}}
	var padded [128]byte
	copy(padded[:], input)

	v := new(uint256.Int).SetBytes32(padded[32:64])
	if !v.IsUint64() || v.Uint64() > 28 {
		return failure
	}
	recovery := byte(v.Uint64())
	if recovery >= 27 {
		recovery -= 27
	}
	r := new(uint256.Int).SetBytes32(padded[64:96])
	s := new(uint256.Int).SetBytes32(padded[96:128])
	if !crypto.ValidateSignatureValues(recovery, r.ToBig(), s.ToBig(), false) {
		return failure
	}

	signature := make([]byte, 65)
	copy(signature[:64], padded[64:128])
	signature[64] = recovery
	pubKey, err := crypto.Ecrecover(padded[:32], signature)
	if err != nil {
		return failure
	}
	hash := axon.Keccak256(pubKey[1:])
	var address axon.Address
	copy(address[:], hash[12:])
	return []uint256.Int{*uint256.NewInt(1), *axon.AddressToWord(address)}
}

func identityPrecompile(input []byte) []uint256.Int {
	res := make([]uint256.Int, (len(input)+31)/32)
	for i := range res {
		var word [32]byte
		copy(word[:], input[i*32:])
		res[i].SetBytes32(word[:])
	}
	return res
}
