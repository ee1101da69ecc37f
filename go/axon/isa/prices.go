// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package isa

import (
	"math"

	"github.com/Fantom-foundation/Axon/go/axon"
)

// Circuit costs the opcode prices are derived from.
const (
	VmCycleCostInErgs                 axon.Ergs = 4
	RamPermutationCostInErgs          axon.Ergs = 1
	CodeDecommitmentCostPerWordInErgs axon.Ergs = 4
	ErgsPerCodeWordDecommittment                = CodeDecommitmentCostPerWordInErgs
	MemoryGrowthErgsPerByte           axon.Ergs = 1
	RichAddressingOpcodeErgs                    = VmCycleCostInErgs + 2*RamPermutationCostInErgs
	AverageOpcodeErgs                           = VmCycleCostInErgs + RamPermutationCostInErgs
	InvalidOpcodeErgs                 axon.Ergs = math.MaxUint32 // burns everything at once
	StorageReadIOPrice                axon.Ergs = 150
	StorageWriteIOPrice               axon.Ergs = 250
	EventIOPrice                      axon.Ergs = 25
	L1MessageIOPrice                  axon.Ergs = 100 // extra for merklization
	CallLikeErgsCost                  axon.Ergs = 20  // new item on the call stack
	FarCallErgsReservationDenominator           = 64
)

// Price returns the ergs charged for executing the variant, before any
// dynamic cost of its semantics.
func (v OpcodeVariant) Price() axon.Ergs {
	switch v.Opcode.Family {
	case Invalid:
		return InvalidOpcodeErgs
	case Nop, Add, Sub, Mul, Div, Jump, Shift, Binop, Ptr:
		if v.IsMemoryUsed() {
			return RichAddressingOpcodeErgs
		}
		return AverageOpcodeErgs
	case NearCall, FarCall:
		return AverageOpcodeErgs + CallLikeErgsCost
	case Log:
		switch LogOp(v.Opcode.Variant) {
		case LogStorageRead:
			return AverageOpcodeErgs + StorageReadIOPrice
		case LogStorageWrite:
			return AverageOpcodeErgs + StorageWriteIOPrice
		case LogEvent:
			return AverageOpcodeErgs + EventIOPrice
		case LogToL1Message:
			return AverageOpcodeErgs + L1MessageIOPrice
		}
		return AverageOpcodeErgs
	}
	return AverageOpcodeErgs
}
