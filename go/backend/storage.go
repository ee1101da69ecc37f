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
	"github.com/Fantom-foundation/Axon/go/axon"
	"github.com/Fantom-foundation/Axon/go/axon/isa"
	"github.com/holiman/uint256"
)

type slotKey struct {
	shard   byte
	address axon.Address
	key     uint256.Int
}

type journalEntry struct {
	slot     slotKey
	previous uint256.Int
}

// Storage is a journaled key-value store. Changes made inside a frame that
// finishes with a panic are rolled back.
type Storage struct {
	slots   map[slotKey]uint256.Int
	journal []journalEntry
	frames  []int
}

func NewStorage() *Storage {
	return &Storage{slots: map[slotKey]uint256.Int{}}
}

func (s *Storage) ExecuteQuery(_ uint32, query axon.LogQuery) (axon.LogQuery, error) {
	slot := slotKey{query.ShardID, query.Address, query.Key}
	query.ReadValue = s.slots[slot]
	if query.IsWrite {
		if len(s.frames) > 0 {
			s.journal = append(s.journal, journalEntry{slot: slot, previous: query.ReadValue})
		}
		s.set(slot, &query.WrittenValue)
	}
	return query, nil
}

func (s *Storage) StartFrame(axon.Timestamp) {
	s.frames = append(s.frames, len(s.journal))
}

func (s *Storage) FinishFrame(_ axon.Timestamp, panicked bool) {
	if len(s.frames) == 0 {
		return
	}
	start := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	if panicked {
		for i := len(s.journal) - 1; i >= start; i-- {
			entry := s.journal[i]
			s.set(entry.slot, &entry.previous)
		}
		s.journal = s.journal[:start]
	}
	if len(s.frames) == 0 {
		s.journal = s.journal[:0]
	}
}

func (s *Storage) set(slot slotKey, value *uint256.Int) {
	if value.IsZero() {
		delete(s.slots, slot)
	} else {
		s.slots[slot] = *value
	}
}

// Get returns the value of a slot of shard 0.
func (s *Storage) Get(address axon.Address, key *uint256.Int) uint256.Int {
	return s.slots[slotKey{address: address, key: *key}]
}

// Set writes a slot of shard 0 outside of any frame.
func (s *Storage) Set(address axon.Address, key, value *uint256.Int) {
	s.set(slotKey{address: address, key: *key}, value)
}

// SetCodeHash registers the versioned code hash deployed at an address in
// the account code storage.
func (s *Storage) SetCodeHash(address axon.Address, hash axon.Hash) {
	key := axon.AddressToWord(address)
	value := new(uint256.Int).SetBytes32(hash[:])
	s.Set(isa.AddressAccountCodeStorage, key, value)
}
