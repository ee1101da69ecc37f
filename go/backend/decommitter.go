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
	"fmt"

	"github.com/Fantom-foundation/Axon/go/axon"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/holiman/uint256"
)

// DefaultDecommitmentCacheSize is the number of code hashes remembered as
// already decommitted.
const DefaultDecommitmentCacheSize = 1 << 10

// Decommitter serves code registered by its versioned hash. Hashes are
// reported as fresh until they were decommitted once; the set of known
// decommitted hashes is bounded by an LRU cache.
type Decommitter struct {
	codes        map[axon.Hash][]uint256.Int
	decommitted  *lru.Cache[axon.Hash, uint16]
	numDecommits int
}

func NewDecommitter(cacheSize int) (*Decommitter, error) {
	cache, err := lru.New[axon.Hash, uint16](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create decommitment cache: %w", err)
	}
	return &Decommitter{
		codes:       map[axon.Hash][]uint256.Int{},
		decommitted: cache,
	}, nil
}

// AddCode registers code and returns its versioned hash.
func (d *Decommitter) AddCode(words []uint256.Int) (axon.Hash, error) {
	hash, err := axon.VersionedCodeHash(words)
	if err != nil {
		return axon.Hash{}, err
	}
	d.codes[hash] = append([]uint256.Int(nil), words...)
	return hash, nil
}

func (d *Decommitter) PrepareToDecommit(_ uint32, query axon.DecommittmentQuery) (axon.DecommittmentQuery, error) {
	code, found := d.codes[query.Hash]
	if !found {
		return query, fmt.Errorf("%w: %v", axon.ErrCodeNotFound, query.Hash)
	}
	query.NumWords = uint16(len(code))
	query.IsFresh = !d.decommitted.Contains(query.Hash)
	return query, nil
}

func (d *Decommitter) DecommitIntoMemory(cycle uint32, query axon.DecommittmentQuery, memory axon.Memory) error {
	code, found := d.codes[query.Hash]
	if !found {
		return fmt.Errorf("%w: %v", axon.ErrCodeNotFound, query.Hash)
	}
	for i := range code {
		_, err := memory.ExecuteQuery(cycle, axon.MemoryQuery{
			Timestamp: query.Timestamp,
			Location:  axon.MemoryLocation{Type: axon.MemoryCode, Page: query.Page, Index: uint32(i)},
			Value:     axon.PrimitiveValue{Value: code[i]},
			IsWrite:   true,
		})
		if err != nil {
			return err
		}
	}
	d.decommitted.Add(query.Hash, query.NumWords)
	d.numDecommits++
	return nil
}

// NumDecommits returns the number of codes loaded into memory so far.
func (d *Decommitter) NumDecommits() int {
	return d.numDecommits
}
