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
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
)

// Address represents the 160-bit (20 bytes) address of an account.
type Address [20]byte

// Hash represents the 256-bit (32 bytes) hash of a code or of a sequence of
// bytes processed by a precompile.
type Hash [32]byte

// Ergs is the unit metering the cost of executed instructions.
type Ergs uint32

// Timestamp orders memory and log queries within a run. It advances by a
// fixed delta per cycle.
type Timestamp uint32

// MemoryPage identifies one word-addressable page of the memory backend.
type MemoryPage uint32

func (a Address) String() string {
	return fmt.Sprintf("0x%x", a[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return bytesToText(a[:])
}

func (a *Address) UnmarshalText(data []byte) error {
	return textToBytes(a[:], data)
}

func (h Hash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return bytesToText(h[:])
}

func (h *Hash) UnmarshalText(data []byte) error {
	return textToBytes(h[:], data)
}

func bytesToText(data []byte) ([]byte, error) {
	return []byte(fmt.Sprintf("0x%x", data)), nil
}

func textToBytes(trg []byte, data []byte) error {
	s := string(data)
	if !strings.HasPrefix(s, "0x") {
		return fmt.Errorf("invalid format, does not start with 0x: %v", s)
	}
	data, err := hex.DecodeString(s[2:])
	if err != nil {
		return err
	}
	if want, got := len(trg), len(data); want != got {
		return fmt.Errorf("invalid format, wanted %d bytes, got %d", want, got)
	}
	copy(trg[:], data)
	return nil
}

// PrimitiveValue is the content of every register and memory cell: a 256-bit
// integer and, alongside it, a tag marking the integer as a fat pointer.
// Only the pointer instructions interpret the tag; everything else ignores
// it on input and produces untagged results.
type PrimitiveValue struct {
	Value     uint256.Int
	IsPointer bool
}

// NewInteger creates an untagged value from the given 64-bit integer.
func NewInteger(v uint64) PrimitiveValue {
	return PrimitiveValue{Value: *uint256.NewInt(v)}
}

// NewPointer creates a pointer-tagged value from the given raw bits.
func NewPointer(raw *uint256.Int) PrimitiveValue {
	return PrimitiveValue{Value: *raw, IsPointer: true}
}

func (v PrimitiveValue) String() string {
	if v.IsPointer {
		return fmt.Sprintf("ptr(%#x)", &v.Value)
	}
	return fmt.Sprintf("%#x", &v.Value)
}

// MemoryType names the kind of memory a location refers to.
type MemoryType byte

const (
	MemoryStack MemoryType = iota
	MemoryHeap
	MemoryAuxHeap
	MemoryFatPointer
	MemoryCode
)

func (t MemoryType) String() string {
	switch t {
	case MemoryStack:
		return "Stack"
	case MemoryHeap:
		return "Heap"
	case MemoryAuxHeap:
		return "AuxHeap"
	case MemoryFatPointer:
		return "FatPointer"
	case MemoryCode:
		return "Code"
	}
	return fmt.Sprintf("MemoryType(%d)", t)
}

// MemoryLocation identifies one 256-bit cell of the memory backend.
type MemoryLocation struct {
	Type  MemoryType
	Page  MemoryPage
	Index uint32
}

func (l MemoryLocation) String() string {
	return fmt.Sprintf("%v[%d:%d]", l.Type, l.Page, l.Index)
}

// MemoryQuery is a single read or write of a memory cell. Reads return the
// query with Value filled in.
type MemoryQuery struct {
	Timestamp Timestamp
	Location  MemoryLocation
	Value     PrimitiveValue
	IsWrite   bool
}

// Aux bytes distinguishing the kinds of log queries.
const (
	StorageAuxByte        byte = 0
	EventAuxByte          byte = 1
	L1MessageAuxByte      byte = 2
	PrecompileCallAuxByte byte = 3
)

// LogQuery is an access to storage, an emitted event or message, or a
// precompile invocation, addressed by contract address and 256-bit key.
type LogQuery struct {
	Timestamp       Timestamp
	TxNumberInBlock uint16
	AuxByte         byte
	ShardID         byte
	Address         Address
	Key             uint256.Int
	ReadValue       uint256.Int
	WrittenValue    uint256.Int
	IsWrite         bool
	IsFirst         bool
	IsService       bool
}

// DecommittmentQuery requests the code with the given versioned hash to be
// placed into a memory page.
type DecommittmentQuery struct {
	Hash      Hash
	Timestamp Timestamp
	Page      MemoryPage
	// Filled in by the decommitter.
	NumWords uint16
	IsFresh  bool
}
