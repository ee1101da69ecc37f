// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package axvm

import (
	"fmt"

	"github.com/Fantom-foundation/Axon/go/axon"
	"github.com/Fantom-foundation/Axon/go/axon/isa"
	"golang.org/x/exp/constraints"
)

func opLog[A constraints.Unsigned](c *context[A], instruction *Instruction[A], operands *prestate[A]) error {
	frame := c.callstack.current()
	frame.Pc = operands.nextPc

	backends := c.params.Backends
	cycle := uint32(c.cycle)
	first := instruction.Variant.Flags[isa.FirstMessageFlagIdx]
	query := axon.LogQuery{
		Timestamp:       c.timestamp + sideEffectTimestampDelta,
		TxNumberInBlock: c.txNumberInBlock,
		ShardID:         frame.ThisShardID,
		Address:         frame.This,
		Key:             operands.src0.Value,
	}

	switch isa.LogOp(instruction.Variant.Opcode.Variant) {
	case isa.LogStorageRead:
		query.AuxByte = axon.StorageAuxByte
		res, err := backends.Storage.ExecuteQuery(cycle, query)
		if err != nil {
			return fmt.Errorf("storage read failed: %w", err)
		}
		return c.writeDst0(instruction, operands, axon.PrimitiveValue{Value: res.ReadValue})

	case isa.LogStorageWrite:
		query.AuxByte = axon.StorageAuxByte
		query.WrittenValue = operands.src1.Value
		query.IsWrite = true
		if _, err := backends.Storage.ExecuteQuery(cycle, query); err != nil {
			return fmt.Errorf("storage write failed: %w", err)
		}

	case isa.LogEvent:
		query.AuxByte = axon.EventAuxByte
		query.WrittenValue = operands.src1.Value
		query.IsWrite = true
		query.IsFirst = first
		if err := backends.Events.AddQuery(cycle, query); err != nil {
			return fmt.Errorf("failed to emit event: %w", err)
		}

	case isa.LogToL1Message:
		query.AuxByte = axon.L1MessageAuxByte
		query.WrittenValue = operands.src1.Value
		query.IsWrite = true
		query.IsService = first
		if err := backends.Events.AddQuery(cycle, query); err != nil {
			return fmt.Errorf("failed to emit L1 message: %w", err)
		}

	case isa.LogPrecompileCall:
		extra := axon.Ergs(axon.Low32(&operands.src1.Value))
		if frame.Ergs < extra {
			frame.Ergs = 0
			return c.writeDst0(instruction, operands, axon.PrimitiveValue{})
		}
		frame.Ergs -= extra
		query.AuxByte = axon.PrecompileCallAuxByte
		if err := backends.Precompiles.ExecutePrecompile(cycle, query, backends.Memory); err != nil {
			return fmt.Errorf("precompile at %v failed: %w", frame.This, err)
		}
		return c.writeDst0(instruction, operands, axon.NewInteger(1))
	}
	return nil
}
