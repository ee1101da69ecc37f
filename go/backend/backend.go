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
	"github.com/holiman/uint256"
)

// InMemory bundles one instance of each in-memory backend.
type InMemory struct {
	Memory      *Memory
	Storage     *Storage
	Events      *EventSink
	Precompiles *Precompiles
	Decommitter *Decommitter
}

func NewInMemory() *InMemory {
	decommitter, err := NewDecommitter(DefaultDecommitmentCacheSize)
	if err != nil {
		// the default size is valid
		panic(err)
	}
	return &InMemory{
		Memory:      NewMemory(),
		Storage:     NewStorage(),
		Events:      NewEventSink(),
		Precompiles: NewPrecompiles(),
		Decommitter: decommitter,
	}
}

func (b *InMemory) Backends() axon.Backends {
	return axon.Backends{
		Memory:      b.Memory,
		Storage:     b.Storage,
		Events:      b.Events,
		Precompiles: b.Precompiles,
		Decommitter: b.Decommitter,
	}
}

// Deploy registers code with the decommitter and binds its hash to the
// given address.
func (b *InMemory) Deploy(address axon.Address, code []uint256.Int) (axon.Hash, error) {
	hash, err := b.Decommitter.AddCode(code)
	if err != nil {
		return axon.Hash{}, err
	}
	b.Storage.SetCodeHash(address, hash)
	return hash, nil
}
