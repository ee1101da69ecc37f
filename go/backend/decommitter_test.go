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
	"errors"
	"testing"

	"github.com/Fantom-foundation/Axon/go/axon"
	"github.com/holiman/uint256"
)

func TestDecommitter_LoadsCodeIntoPage(t *testing.T) {
	d, err := NewDecommitter(4)
	if err != nil {
		t.Fatalf("failed to create decommitter: %v", err)
	}
	code := []uint256.Int{*uint256.NewInt(1), *uint256.NewInt(2), *uint256.NewInt(3)}
	hash, err := d.AddCode(code)
	if err != nil {
		t.Fatalf("failed to add code: %v", err)
	}

	query, err := d.PrepareToDecommit(0, axon.DecommittmentQuery{Hash: hash, Page: 42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want, got := uint16(3), query.NumWords; want != got {
		t.Errorf("unexpected code length, wanted %d, got %d", want, got)
	}
	if !query.IsFresh {
		t.Errorf("code should be fresh before its first decommitment")
	}

	memory := NewMemory()
	if err := d.DecommitIntoMemory(0, query, memory); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range code {
		if want, got := code[i], memory.Get(42, uint32(i)).Value; want != got {
			t.Errorf("unexpected code word %d, wanted %v, got %v", i, &want, &got)
		}
	}
	if want, got := 1, d.NumDecommits(); want != got {
		t.Errorf("unexpected number of decommits, wanted %d, got %d", want, got)
	}

	query, err = d.PrepareToDecommit(0, axon.DecommittmentQuery{Hash: hash, Page: 43})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if query.IsFresh {
		t.Errorf("code should not be fresh after it was decommitted")
	}
}

func TestDecommitter_CacheEvictsLeastRecentlyUsedCodes(t *testing.T) {
	d, err := NewDecommitter(1)
	if err != nil {
		t.Fatalf("failed to create decommitter: %v", err)
	}
	memory := NewMemory()
	hashes := make([]axon.Hash, 2)
	for i := range hashes {
		hashes[i], err = d.AddCode([]uint256.Int{*uint256.NewInt(uint64(i + 1))})
		if err != nil {
			t.Fatalf("failed to add code: %v", err)
		}
		query, err := d.PrepareToDecommit(0, axon.DecommittmentQuery{Hash: hashes[i]})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := d.DecommitIntoMemory(0, query, memory); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	query, err := d.PrepareToDecommit(0, axon.DecommittmentQuery{Hash: hashes[0]})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !query.IsFresh {
		t.Errorf("evicted code should be fresh again")
	}
}

func TestDecommitter_UnknownHashesAreReported(t *testing.T) {
	d, err := NewDecommitter(1)
	if err != nil {
		t.Fatalf("failed to create decommitter: %v", err)
	}
	query := axon.DecommittmentQuery{Hash: axon.Hash{1}}
	if _, err := d.PrepareToDecommit(0, query); !errors.Is(err, axon.ErrCodeNotFound) {
		t.Errorf("unexpected error, wanted %v, got %v", axon.ErrCodeNotFound, err)
	}
	if err := d.DecommitIntoMemory(0, query, NewMemory()); !errors.Is(err, axon.ErrCodeNotFound) {
		t.Errorf("unexpected error, wanted %v, got %v", axon.ErrCodeNotFound, err)
	}
}

func TestDecommitter_InvalidCacheSizeIsRejected(t *testing.T) {
	if _, err := NewDecommitter(0); err == nil {
		t.Errorf("expected cache size 0 to be rejected")
	}
}
