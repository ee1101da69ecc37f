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
	"testing"

	"github.com/Fantom-foundation/Axon/go/axon"
	"github.com/Fantom-foundation/Axon/go/axon/isa"
	"github.com/holiman/uint256"
)

func TestInMemory_DeployBindsCodeHashToAddress(t *testing.T) {
	b := NewInMemory()
	address := axon.AddressFromUint64(0x10000)
	hash, err := b.Deploy(address, []uint256.Int{*uint256.NewInt(1)})
	if err != nil {
		t.Fatalf("failed to deploy code: %v", err)
	}
	stored := b.Storage.Get(isa.AddressAccountCodeStorage, axon.AddressToWord(address))
	if want, got := hash, axon.Hash(stored.Bytes32()); want != got {
		t.Errorf("unexpected code hash, wanted %v, got %v", want, got)
	}
	if _, err := b.Decommitter.PrepareToDecommit(0, axon.DecommittmentQuery{Hash: hash}); err != nil {
		t.Errorf("deployed code should be known to the decommitter: %v", err)
	}

	backends := b.Backends()
	if backends.Memory == nil || backends.Storage == nil || backends.Events == nil || backends.Precompiles == nil || backends.Decommitter == nil {
		t.Errorf("all backends should be set: %v", backends)
	}
}
