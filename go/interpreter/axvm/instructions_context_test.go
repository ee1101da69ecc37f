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
	"testing"

	"github.com/Fantom-foundation/Axon/go/axon"
	"github.com/Fantom-foundation/Axon/go/axon/isa"
	"github.com/holiman/uint256"
)

func contextOp(op isa.ContextOp) isa.Opcode {
	return isa.NewOpcode(isa.Context, op)
}

func TestContext_Getters(t *testing.T) {
	word := func(v uint256.Int) axon.PrimitiveValue {
		return axon.PrimitiveValue{Value: v}
	}
	meta := isa.MetaParameters{
		ErgsPerPubdataByte: 9,
		HeapSize:           64,
		AuxHeapSize:        96,
	}.ToWord()
	tests := map[string]struct {
		op   isa.ContextOp
		want axon.PrimitiveValue
	}{
		"this":         {isa.ContextThis, word(*axon.AddressToWord(axon.AddressFromUint64(0x8001)))},
		"caller":       {isa.ContextCaller, word(*axon.AddressToWord(axon.AddressFromUint64(0x1234)))},
		"code address": {isa.ContextCodeAddress, word(*axon.AddressToWord(axon.AddressFromUint64(0x8001)))},
		"ergs left":    {isa.ContextErgsLeft, integer(uint64(testErgs - isa.AverageOpcodeErgs))},
		"sp":           {isa.ContextSp, integer(17)},
		"context u128": {isa.ContextGetContextU128, word(uint256.Int{5, 6})},
		"meta":         {isa.ContextMeta, word(meta)},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			params, _ := newTestParams(t, Code[uint64]{
				{Variant: regVariant(contextOp(test.op)), Dst0: 5},
			})
			params.ErgsPerPubdata = 9
			ctxt, err := newContext(Config{}, Encoding[uint64](TestingEncoding{}), params, nil)
			if err != nil {
				t.Fatalf("failed to create context: %v", err)
			}
			frame := ctxt.callstack.current()
			frame.Sp = 17
			frame.HeapBound = 64
			frame.AuxHeapBound = 96
			frame.ContextU128 = uint256.Int{5, 6}

			stepForTest(t, ctxt)
			if want, got := test.want, ctxt.Register(5); want != got {
				t.Errorf("unexpected result, wanted %v, got %v", want, got)
			}
		})
	}
}

func TestContext_SetContextU128KeepsLow128Bits(t *testing.T) {
	ctxt, _ := newTestContext(t, Code[uint64]{
		{Variant: regVariant(contextOp(isa.ContextSetContextU128)), Src0: 3},
		{Variant: regVariant(contextOp(isa.ContextGetContextU128)), Dst0: 5},
	})
	ctxt.registers[3] = axon.PrimitiveValue{Value: uint256.Int{1, 2, 3, 4}}
	stepForTest(t, ctxt)
	if want, got := (uint256.Int{1, 2}), ctxt.ContextU128(); want != got {
		t.Errorf("unexpected context value, wanted %v, got %v", &want, &got)
	}
	// the value is handed to the next far call, not to the current frame
	stepForTest(t, ctxt)
	if want, got := integer(0), ctxt.Register(5); want != got {
		t.Errorf("unexpected context value of current frame, wanted %v, got %v", want, got)
	}
}

func TestContext_SystemSetters(t *testing.T) {
	ctxt, _ := newTestContext(t, Code[uint64]{
		{Variant: regVariant(contextOp(isa.ContextSetErgsPerPubdata)), Src0: 3},
		{Variant: regVariant(contextOp(isa.ContextIncrementTxNumber))},
		{Variant: regVariant(contextOp(isa.ContextIncrementTxNumber))},
	})
	ctxt.registers[3] = axon.PrimitiveValue{Value: uint256.Int{77, 1}}
	for i := 0; i < 3; i++ {
		stepForTest(t, ctxt)
	}
	if want, got := uint32(77), ctxt.ErgsPerPubdata(); want != got {
		t.Errorf("unexpected ergs per pubdata, wanted %d, got %d", want, got)
	}
	if want, got := uint16(2), ctxt.TxNumberInBlock(); want != got {
		t.Errorf("unexpected tx number, wanted %d, got %d", want, got)
	}
}

func TestContext_SettersRequireKernelMode(t *testing.T) {
	ops := []isa.ContextOp{
		isa.ContextSetContextU128,
		isa.ContextSetErgsPerPubdata,
		isa.ContextIncrementTxNumber,
	}
	for _, op := range ops {
		params, _ := newTestParams(t, Code[uint64]{
			{Variant: regVariant(contextOp(op)), Src0: 3},
		})
		params.Address = calleeAddress
		ctxt, err := newContext(Config{}, Encoding[uint64](TestingEncoding{}), params, nil)
		if err != nil {
			t.Fatalf("failed to create context: %v", err)
		}
		ctxt.registers[3] = integer(1)
		stepForTest(t, ctxt)
		if !ctxt.PendingException() {
			t.Errorf("%v outside of kernel mode should panic", contextOp(op))
		}
		value := ctxt.ContextU128()
		if ctxt.ErgsPerPubdata() != 0 || ctxt.TxNumberInBlock() != 0 || !value.IsZero() {
			t.Errorf("%v outside of kernel mode should have no effect", contextOp(op))
		}
	}
}
