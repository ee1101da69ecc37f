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

import "fmt"

// MemoryRange addresses a byte range of a page. Words are stored big-endian,
// so byte i of the page is byte i%32 of word i/32.
type MemoryRange struct {
	Type   MemoryType
	Page   MemoryPage
	Offset uint32
	Length uint32
}

// ReadMemoryBytes reads a byte range of a page through the given memory.
// Reads beyond the end of the 32-bit address space are an error.
func ReadMemoryBytes(memory Memory, cycle uint32, timestamp Timestamp, r MemoryRange) ([]byte, error) {
	if uint64(r.Offset)+uint64(r.Length) > 1<<32 {
		return nil, fmt.Errorf("memory range %d+%d exceeds the page", r.Offset, r.Length)
	}
	res := make([]byte, 0, r.Length)
	end := uint64(r.Offset) + uint64(r.Length)
	for pos := uint64(r.Offset); pos < end; {
		index := uint32(pos / 32)
		query, err := memory.ExecuteQuery(cycle, MemoryQuery{
			Timestamp: timestamp,
			Location:  MemoryLocation{Type: r.Type, Page: r.Page, Index: index},
		})
		if err != nil {
			return nil, err
		}
		word := query.Value.Value.Bytes32()
		from := pos % 32
		to := min(uint64(32), end-uint64(index)*32)
		res = append(res, word[from:to]...)
		pos = uint64(index)*32 + to
	}
	return res, nil
}

// WriteMemoryBytes writes data into a page starting at the given byte
// offset. Partially covered words keep their remaining bytes. Written words
// are untagged.
func WriteMemoryBytes(memory Memory, cycle uint32, timestamp Timestamp, typ MemoryType, page MemoryPage, offset uint32, data []byte) error {
	if uint64(offset)+uint64(len(data)) > 1<<32 {
		return fmt.Errorf("memory range %d+%d exceeds the page", offset, len(data))
	}
	end := uint64(offset) + uint64(len(data))
	for pos := uint64(offset); pos < end; {
		index := uint32(pos / 32)
		location := MemoryLocation{Type: typ, Page: page, Index: index}
		from := pos % 32
		to := min(uint64(32), end-uint64(index)*32)

		var word [32]byte
		if from != 0 || to != 32 {
			query, err := memory.ExecuteQuery(cycle, MemoryQuery{Timestamp: timestamp, Location: location})
			if err != nil {
				return err
			}
			word = query.Value.Value.Bytes32()
		}
		copy(word[from:to], data[pos-uint64(offset):])

		value := PrimitiveValue{}
		value.Value.SetBytes32(word[:])
		if _, err := memory.ExecuteQuery(cycle, MemoryQuery{
			Timestamp: timestamp,
			Location:  location,
			Value:     value,
			IsWrite:   true,
		}); err != nil {
			return err
		}
		pos = uint64(index)*32 + to
	}
	return nil
}
