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
	"github.com/Fantom-foundation/Axon/go/backend"
	"github.com/holiman/uint256"
)

const testErgs axon.Ergs = 1 << 20

var (
	opNopCode      = isa.Opcode{Family: isa.Nop}
	opAddCode      = isa.Opcode{Family: isa.Add}
	opSubCode      = isa.Opcode{Family: isa.Sub}
	opMulCode      = isa.Opcode{Family: isa.Mul}
	opDivCode      = isa.Opcode{Family: isa.Div}
	opJumpCode     = isa.Opcode{Family: isa.Jump}
	opNearCallCode = isa.Opcode{Family: isa.NearCall}
	opRetOk        = isa.NewOpcode(isa.Ret, isa.RetOk)
	opRetRevert    = isa.NewOpcode(isa.Ret, isa.RetRevert)
	opRetPanic     = isa.NewOpcode(isa.Ret, isa.RetPanic)
)

// regVariant returns the register-only variant of an opcode.
func regVariant(opcode isa.Opcode, flags ...bool) isa.OpcodeVariant {
	return isa.MustNewVariant(opcode, isa.UseRegOnly, isa.UseRegOnly, flags...)
}

// immVariant returns the variant of an opcode sourcing src0 from imm0.
func immVariant(opcode isa.Opcode, flags ...bool) isa.OpcodeVariant {
	return isa.MustNewVariant(opcode, isa.UseImm16Only, isa.UseRegOnly, flags...)
}

// retOk is a far return of the entry frame without output.
func retOk() Instruction[uint64] {
	return Instruction[uint64]{Variant: regVariant(opRetOk)}
}

// assembleForTest encodes code with the testing encoding.
func assembleForTest(t *testing.T, code Code[uint64], constants ...uint256.Int) []uint256.Int {
	t.Helper()
	words, err := Assemble(isa.MustGetTable(axon.DefaultISAVersion), Encoding[uint64](TestingEncoding{}), code, constants...)
	if err != nil {
		t.Fatalf("failed to assemble code: %v", err)
	}
	return words
}

// newTestParams creates parameters running the given code with fresh
// in-memory backends from a kernel address.
func newTestParams(t *testing.T, code Code[uint64], constants ...uint256.Int) (axon.Parameters, *backend.InMemory) {
	t.Helper()
	backends := backend.NewInMemory()
	return axon.Parameters{
		ISAVersion: axon.DefaultISAVersion,
		Code:       assembleForTest(t, code, constants...),
		Address:    axon.AddressFromUint64(0x8001),
		Caller:     axon.AddressFromUint64(0x1234),
		Ergs:       testErgs,
		Backends:   backends.Backends(),
	}, backends
}

// newTestContext creates a context ready to execute the first instruction of
// the given code.
func newTestContext(t *testing.T, code Code[uint64], constants ...uint256.Int) (*context[uint64], *backend.InMemory) {
	t.Helper()
	params, backends := newTestParams(t, code, constants...)
	ctxt, err := newContext(Config{}, Encoding[uint64](TestingEncoding{}), params, nil)
	if err != nil {
		t.Fatalf("failed to create context: %v", err)
	}
	return ctxt, backends
}

// stepForTest executes a single cycle and fails the test on errors.
func stepForTest(t *testing.T, ctxt *context[uint64]) status {
	t.Helper()
	status, err := ctxt.step()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return status
}

// runForTest executes the context until it terminates.
func runForTest(t *testing.T, ctxt *context[uint64]) axon.Result {
	t.Helper()
	status, err := vanillaRunner{}.run(ctxt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	res, err := ctxt.result(status)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return res
}

func integer(v uint64) axon.PrimitiveValue {
	return axon.NewInteger(v)
}

func pointer(p isa.FatPointer) axon.PrimitiveValue {
	word := p.ToWord()
	return axon.NewPointer(&word)
}
