// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package axon

import (
	"encoding/binary"
	"fmt"

	"github.com/holiman/uint256"
)

// Low32 returns the lowest 32 bits of the given word.
func Low32(v *uint256.Int) uint32 {
	return uint32(v[0])
}

// Low64 returns the lowest 64 bits of the given word.
func Low64(v *uint256.Int) uint64 {
	return v[0]
}

// Low128 returns the lowest 128 bits of the given word as (high, low) limbs.
func Low128(v *uint256.Int) (hi, lo uint64) {
	return v[1], v[0]
}

// Low128IsZero reports whether the lowest 128 bits of the given word are 0.
func Low128IsZero(v *uint256.Int) bool {
	return v[0] == 0 && v[1] == 0
}

// AddressToWord converts an address into a word, right-aligned.
func AddressToWord(a Address) *uint256.Int {
	return new(uint256.Int).SetBytes20(a[:])
}

// WordToAddress returns the address held in the lowest 160 bits of the
// given word, ignoring all higher bits.
func WordToAddress(v *uint256.Int) Address {
	buffer := v.Bytes32()
	var res Address
	copy(res[:], buffer[12:])
	return res
}

// AddressFromUint64 creates the address with the given numeric value, as
// used for system contracts.
func AddressFromUint64(v uint64) Address {
	var res Address
	binary.BigEndian.PutUint64(res[12:], v)
	return res
}

// BytecodeToWords splits bytecode into big-endian 256-bit code words. The
// length of the code has to be a multiple of 32.
func BytecodeToWords(code []byte) ([]uint256.Int, error) {
	if len(code)%32 != 0 {
		return nil, fmt.Errorf("invalid bytecode length %d, not a multiple of 32", len(code))
	}
	res := make([]uint256.Int, len(code)/32)
	for i := range res {
		res[i].SetBytes32(code[i*32 : (i+1)*32])
	}
	return res, nil
}

// WordsToBytecode is the inverse of BytecodeToWords.
func WordsToBytecode(words []uint256.Int) []byte {
	res := make([]byte, 0, len(words)*32)
	for i := range words {
		b := words[i].Bytes32()
		res = append(res, b[:]...)
	}
	return res
}

// Layout of versioned code hashes: version byte, construction marker, length
// in words, and the tail of the keccak hash of the code.
const (
	CodeHashVersion           byte = 1
	CodeHashMarkerConstructed byte = 0
	CodeHashMarkerConstructor byte = 1
)

// VersionedCodeHash computes the hash under which code is stored in the
// account code storage and decommitted.
func VersionedCodeHash(words []uint256.Int) (Hash, error) {
	if len(words) > 0xFFFF {
		return Hash{}, fmt.Errorf("code too long: %d words", len(words))
	}
	hash := Keccak256(WordsToBytecode(words))
	hash[0] = CodeHashVersion
	hash[1] = CodeHashMarkerConstructed
	binary.BigEndian.PutUint16(hash[2:4], uint16(len(words)))
	return hash, nil
}

// CodeLengthInWords extracts the code length encoded in a versioned hash.
func CodeLengthInWords(hash Hash) uint16 {
	return binary.BigEndian.Uint16(hash[2:4])
}
