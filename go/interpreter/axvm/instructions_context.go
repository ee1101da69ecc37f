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
	"github.com/Fantom-foundation/Axon/go/axon"
	"github.com/Fantom-foundation/Axon/go/axon/isa"
	"github.com/holiman/uint256"
	"golang.org/x/exp/constraints"
)

func opContext[A constraints.Unsigned](c *context[A], instruction *Instruction[A], operands *prestate[A]) error {
	frame := c.callstack.current()
	frame.Pc = operands.nextPc

	var result uint256.Int
	switch isa.ContextOp(instruction.Variant.Opcode.Variant) {
	case isa.ContextThis:
		result = *axon.AddressToWord(frame.This)
	case isa.ContextCaller:
		result = *axon.AddressToWord(frame.Caller)
	case isa.ContextCodeAddress:
		result = *axon.AddressToWord(frame.CodeAddress)
	case isa.ContextMeta:
		result = isa.MetaParameters{
			ErgsPerPubdataByte: c.ergsPerPubdata,
			HeapSize:           frame.HeapBound,
			AuxHeapSize:        frame.AuxHeapBound,
			ThisShardID:        frame.ThisShardID,
			CallerShardID:      frame.CallerShardID,
			CodeShardID:        frame.CodeShardID,
		}.ToWord()
	case isa.ContextErgsLeft:
		result.SetUint64(uint64(frame.Ergs))
	case isa.ContextSp:
		result.SetUint64(uint64(frame.Sp))
	case isa.ContextGetContextU128:
		result = frame.ContextU128
	case isa.ContextSetContextU128:
		hi, lo := axon.Low128(&operands.src0.Value)
		c.contextU128 = uint256.Int{lo, hi}
		return nil
	case isa.ContextSetErgsPerPubdata:
		c.ergsPerPubdata = axon.Low32(&operands.src0.Value)
		return nil
	case isa.ContextIncrementTxNumber:
		c.txNumberInBlock++
		return nil
	}
	return c.writeDst0(instruction, operands, axon.PrimitiveValue{Value: result})
}
