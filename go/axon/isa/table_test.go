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
	"errors"
	"testing"

	"github.com/Fantom-foundation/Axon/go/axon"
)

func TestTable_HasFullSizeAndSentinelAtZero(t *testing.T) {
	table := MustGetTable(axon.DefaultISAVersion)
	variants := table.Variants()
	if want, got := TableSize, len(variants); want != got {
		t.Fatalf("unexpected table size, wanted %d, got %d", want, got)
	}
	if variants[0] != InvalidVariant {
		t.Errorf("slot 0 should hold the invalid variant, got %v", variants[0])
	}
	if variants[TableSize-1] != InvalidVariant {
		t.Errorf("last slot should be unused, got %v", variants[TableSize-1])
	}
}

func TestTable_LegalVariantsAreUniquelyEncoded(t *testing.T) {
	table := MustGetTable(axon.DefaultISAVersion)
	seen := map[OpcodeVariant]int{}
	masks := map[uint64]int{}
	for i, variant := range table.Variants() {
		if variant.IsInvalid() {
			continue
		}
		if j, found := seen[variant]; found {
			t.Errorf("variant %v found at slots %d and %d", variant, j, i)
		}
		seen[variant] = i
		mask := table.Bitmask(uint16(i))
		if j, found := masks[mask]; found {
			t.Errorf("slots %d and %d share description %x", j, i, mask)
		}
		masks[mask] = i
	}
	// all families except the sentinel
	if want, got := 1289, len(seen); want != got {
		t.Errorf("unexpected number of legal variants, wanted %d, got %d", want, got)
	}
	if want, got := len(seen)+1, table.NumDistinctVariants(); want != got {
		t.Errorf("unexpected number of distinct variants, wanted %d, got %d", want, got)
	}
}

func TestTable_ReenumerationMatchesTable(t *testing.T) {
	table := MustGetTable(axon.DefaultISAVersion)
	fresh := Synthesize(OpcodesTableWidth, axon.DefaultISAVersion)
	for i, variant := range table.Variants() {
		if fresh[i] != variant {
			t.Fatalf("slot %d differs between builds, %v vs %v", i, variant, fresh[i])
		}
	}
}

func TestTable_CanonicalIndexAndDecodeAgree(t *testing.T) {
	table := MustGetTable(axon.DefaultISAVersion)
	for _, variant := range []OpcodeVariant{NopVariant, PanicVariant} {
		index, err := table.Encode(variant)
		if err != nil {
			t.Fatalf("failed to encode %v: %v", variant, err)
		}
		if got := table.Decode(uint64(index)); got != variant {
			t.Errorf("unexpected decoded variant, wanted %v, got %v", variant, got)
		}
		// only the low table bits select the slot
		if got := table.Decode(uint64(index) | 0xFFFF_0000_0000_F800); got != variant {
			t.Errorf("high bits changed the decoded variant to %v", got)
		}
		number, found := table.MonotonicNumber(variant)
		if !found || number == 0 {
			t.Errorf("unexpected monotonic number %d for %v", number, variant)
		}
	}
	if _, err := table.Encode(InvalidVariant); err == nil {
		t.Errorf("the invalid variant must not be encodable")
	}
}

func TestTable_SynthesizeOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for a too narrow table")
		}
	}()
	Synthesize(8, axon.DefaultISAVersion)
}

func TestTable_UnsupportedVersionIsRejected(t *testing.T) {
	_, err := GetTable(axon.NewestISAVersion + 1)
	var target *axon.ErrUnsupportedISAVersion
	if !errors.As(err, &target) {
		t.Errorf("unexpected error, wanted unsupported version, got %v", err)
	}
}

func TestTable_OperandCatalogsPerFamily(t *testing.T) {
	table := MustGetTable(axon.DefaultISAVersion)
	for _, variant := range table.Variants() {
		info := familyInfos[variant.Opcode.Family]
		if variant.Src0.Kind != info.src || variant.Dst0.Kind != info.dst {
			t.Errorf("variant %v uses operand catalogs of a different family", variant)
		}
		if !variant.Dst0.Mode.IsAllowedForDst() {
			t.Errorf("variant %v writes to a read-only mode", variant)
		}
		if variant.Src0.Kind == KindRegOrImm && variant.Src0.Mode.IsMemoryUsed() {
			t.Errorf("variant %v uses memory from a register-or-immediate catalog", variant)
		}
	}
}

func TestTable_PricesFollowAddressing(t *testing.T) {
	table := MustGetTable(axon.DefaultISAVersion)
	tests := map[string]struct {
		variant OpcodeVariant
		price   axon.Ergs
	}{
		"invalid":      {InvalidVariant, InvalidOpcodeErgs},
		"nop":          {NopVariant, AverageOpcodeErgs},
		"nop on stack": {OpcodeVariant{Opcode: Opcode{Family: Nop}, Src0: Full(UseStackWithPushPop), Dst0: Full(UseRegOnly)}, RichAddressingOpcodeErgs},
		"add to stack": {OpcodeVariant{Opcode: Opcode{Family: Add}, Src0: Full(UseRegOnly), Dst0: Full(UseAbsoluteOnStack)}, RichAddressingOpcodeErgs},
		"panic":        {PanicVariant, AverageOpcodeErgs},
		"near call":    {OpcodeVariant{Opcode: Opcode{Family: NearCall}, Src0: RegOnly(), Dst0: RegOnly()}, AverageOpcodeErgs + CallLikeErgsCost},
		"sstore":       {OpcodeVariant{Opcode: NewOpcode(Log, LogStorageWrite), Src0: RegOnly(), Dst0: RegOnly()}, AverageOpcodeErgs + StorageWriteIOPrice},
		"sload":        {OpcodeVariant{Opcode: NewOpcode(Log, LogStorageRead), Src0: RegOnly(), Dst0: RegOnly()}, AverageOpcodeErgs + StorageReadIOPrice},
		"event":        {OpcodeVariant{Opcode: NewOpcode(Log, LogEvent), Src0: RegOnly(), Dst0: RegOnly(), Flags: [2]bool{true}}, AverageOpcodeErgs + EventIOPrice},
		"l1 message":   {OpcodeVariant{Opcode: NewOpcode(Log, LogToL1Message), Src0: RegOnly(), Dst0: RegOnly()}, AverageOpcodeErgs + L1MessageIOPrice},
		"uma":          {OpcodeVariant{Opcode: NewOpcode(UMA, UMAHeapRead), Src0: RegOrImm(RegOrImmUseImm16Only), Dst0: RegOnly()}, AverageOpcodeErgs},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			index, found := table.CanonicalIndex(test.variant)
			if !found {
				t.Fatalf("variant %v not in table", test.variant)
			}
			if want, got := test.price, table.Price(index); want != got {
				t.Errorf("unexpected price, wanted %d, got %d", want, got)
			}
		})
	}
}

func TestTable_AuxBitsReflectOpcodeProperties(t *testing.T) {
	version := axon.DefaultISAVersion
	aux := DescriptionBitsRounded(version)
	if aux%16 != 0 || aux < DescriptionBits(version) {
		t.Fatalf("unexpected rounded description width %d", aux)
	}
	if DescriptionAndAuxBits(version) > 64 {
		t.Fatalf("description does not fit into 64 bits")
	}

	panicMask := PanicVariant.Bitmask(version)
	if panicMask&(1<<(aux+ExplicitPanicFlagIdx)) == 0 {
		t.Errorf("panic variant is missing the explicit panic bit")
	}
	nopMask := NopVariant.Bitmask(version)
	if nopMask&(1<<(aux+ExplicitPanicFlagIdx)) != 0 {
		t.Errorf("nop variant carries the explicit panic bit")
	}
	if nopMask&(1<<(aux+CanBeUsedInStaticContextFlagIdx)) == 0 {
		t.Errorf("nop variant should be usable in static context")
	}

	event := OpcodeVariant{Opcode: NewOpcode(Log, LogEvent), Src0: RegOnly(), Dst0: RegOnly()}
	eventMask := event.Bitmask(version)
	if eventMask&(1<<(aux+KernelModeFlagIdx)) == 0 {
		t.Errorf("event should require kernel mode")
	}
	if eventMask&(1<<(aux+CanBeUsedInStaticContextFlagIdx)) != 0 {
		t.Errorf("event should not be usable in static context")
	}
}

func TestOpcodeVariant_String(t *testing.T) {
	tests := map[string]OpcodeVariant{
		"Nop reg -> reg":       NopVariant,
		"Ret.Panic reg -> reg": PanicVariant,
		"Sub[set_flags,swap] stack+- -> stack-abs": {
			Opcode: Opcode{Family: Sub},
			Src0:   Full(UseStackWithPushPop),
			Dst0:   Full(UseAbsoluteOnStack),
			Flags:  [2]bool{true, true},
		},
		"UMA.HeapRead imm -> reg": {
			Opcode: NewOpcode(UMA, UMAHeapRead),
			Src0:   RegOrImm(RegOrImmUseImm16Only),
			Dst0:   RegOnly(),
		},
	}
	for want, variant := range tests {
		if got := variant.String(); want != got {
			t.Errorf("unexpected string, wanted %q, got %q", want, got)
		}
	}
}

func TestOpcodeVariant_FlagAccessors(t *testing.T) {
	sub := OpcodeVariant{Opcode: Opcode{Family: Sub}, Flags: [2]bool{false, true}}
	if sub.SetFlags() || !sub.SwapOperands() {
		t.Errorf("unexpected flags of %v", sub)
	}
	ptr := OpcodeVariant{Opcode: NewOpcode(Ptr, PtrAdd), Flags: [2]bool{true, false}}
	if ptr.SetFlags() || !ptr.SwapOperands() {
		t.Errorf("unexpected flags of %v", ptr)
	}
	add := OpcodeVariant{Opcode: Opcode{Family: Add}, Flags: [2]bool{true, false}}
	if !add.SetFlags() || add.SwapOperands() {
		t.Errorf("unexpected flags of %v", add)
	}
}

func TestOpcode_PropertiesOfPrivilegedOpcodes(t *testing.T) {
	kernelOnly := map[Opcode]bool{
		NewOpcode(Context, ContextSetContextU128):    true,
		NewOpcode(Context, ContextSetErgsPerPubdata): true,
		NewOpcode(Context, ContextIncrementTxNumber): true,
		NewOpcode(Log, LogToL1Message):               true,
		NewOpcode(Log, LogEvent):                     true,
		NewOpcode(Log, LogPrecompileCall):            true,
		NewOpcode(FarCall, FarCallMimic):             true,
	}
	for family := Family(0); int(family) < NumFamilies; family++ {
		for variant := 0; variant < NumVariants(family); variant++ {
			op := Opcode{Family: family, Variant: byte(variant)}
			if want, got := kernelOnly[op], op.IsKernelOnly(); want != got {
				t.Errorf("unexpected kernel mode requirement of %v, wanted %t, got %t", op, want, got)
			}
		}
	}
}
