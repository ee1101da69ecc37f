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
	"errors"
	"testing"

	"github.com/Fantom-foundation/Axon/go/axon"
	"github.com/Fantom-foundation/Axon/go/axon/isa"
	"github.com/holiman/uint256"
	"golang.org/x/exp/constraints"
	"pgregory.net/rand"
)

// randomCode produces n instructions of random valid variants.
func randomCode[A constraints.Unsigned](rnd *rand.Rand, table *isa.Table, n int) Code[A] {
	variants := table.Variants()
	code := make(Code[A], 0, n)
	for len(code) < n {
		variant := variants[rnd.Uint32n(uint32(len(variants)))]
		if variant.IsInvalid() {
			continue
		}
		index, _ := table.Encode(variant)
		code = append(code, Instruction[A]{
			Index:     index,
			Variant:   variant,
			Condition: isa.Condition(rnd.Uint32n(8)),
			Src0:      uint8(rnd.Uint32n(16)),
			Src1:      uint8(rnd.Uint32n(16)),
			Dst0:      uint8(rnd.Uint32n(16)),
			Dst1:      uint8(rnd.Uint32n(16)),
			Imm0:      A(rnd.Uint64()),
			Imm1:      A(rnd.Uint64()),
		})
	}
	return code
}

func testAssemblerRoundTrip[A constraints.Unsigned](t *testing.T, encoding Encoding[A]) {
	table := isa.MustGetTable(axon.DefaultISAVersion)
	rnd := rand.New(0)
	for _, size := range []int{0, 1, 3, 4, 5, 100} {
		code := randomCode[A](rnd, table, size)
		words, err := Assemble(table, encoding, code)
		if err != nil {
			t.Fatalf("failed to assemble: %v", err)
		}
		if want, got := int(ConstantsStart(encoding, size)), len(words); want != got {
			t.Errorf("unexpected number of words, wanted %d, got %d", want, got)
		}
		restored := Disassemble(table, encoding, words)
		if len(restored) < len(code) {
			t.Fatalf("missing instructions, wanted at least %d, got %d", len(code), len(restored))
		}
		for i := range code {
			if want, got := code[i], restored[i]; want != got {
				t.Errorf("unexpected instruction %d, wanted %v, got %v", i, want, got)
			}
		}
	}
}

func TestAssemble_RoundTripThroughDisassemble(t *testing.T) {
	t.Run("production", func(t *testing.T) {
		testAssemblerRoundTrip[uint16](t, ProductionEncoding{})
	})
	t.Run("testing", func(t *testing.T) {
		testAssemblerRoundTrip[uint64](t, TestingEncoding{})
	})
}

func TestAssemble_PlacesConstantsAfterCode(t *testing.T) {
	table := isa.MustGetTable(axon.DefaultISAVersion)
	code := make(Code[uint16], 5)
	for i := range code {
		code[i] = Op[uint16](isa.MustNewVariant(opNopCode, isa.UseRegOnly, isa.UseRegOnly))
	}
	constant := uint256.Int{1, 2, 3, 4}
	words, err := Assemble(table, Encoding[uint16](ProductionEncoding{}), code, constant)
	if err != nil {
		t.Fatalf("failed to assemble: %v", err)
	}
	if want, got := uint32(2), ConstantsStart(Encoding[uint16](ProductionEncoding{}), len(code)); want != got {
		t.Fatalf("unexpected start of constants, wanted %d, got %d", want, got)
	}
	if want, got := 3, len(words); want != got {
		t.Fatalf("unexpected number of words, wanted %d, got %d", want, got)
	}
	if want, got := constant, words[2]; want != got {
		t.Errorf("unexpected constant, wanted %v, got %v", &want, &got)
	}
	// unused slots of the last code word decode as invalid
	restored := Disassemble(table, Encoding[uint16](ProductionEncoding{}), words[:2])
	if !restored[5].Variant.IsInvalid() {
		t.Errorf("unused slot should decode as invalid, got %v", restored[5])
	}
}

func TestAssemble_RejectsInvalidVariants(t *testing.T) {
	table := isa.MustGetTable(axon.DefaultISAVersion)
	code := Code[uint64]{{}}
	if _, err := Assemble(table, Encoding[uint64](TestingEncoding{}), code); err == nil {
		t.Errorf("assembling an invalid variant should fail")
	}
}

func TestAssemble_RejectsCodeBeyondPcRange(t *testing.T) {
	table := isa.MustGetTable(axon.DefaultISAVersion)
	code := make(Code[uint16], int(PanicPc[uint16]())+1)
	for i := range code {
		code[i] = Op[uint16](isa.MustNewVariant(opNopCode, isa.UseRegOnly, isa.UseRegOnly))
	}
	_, err := Assemble(table, Encoding[uint16](ProductionEncoding{}), code)
	if !errors.Is(err, errCodeTooLarge) {
		t.Errorf("unexpected error, wanted %v, got %v", errCodeTooLarge, err)
	}
}

func TestCode_String(t *testing.T) {
	code := Code[uint64]{
		{Variant: immVariant(opAddCode), Imm0: 5, Dst0: 3},
		{Variant: regVariant(opRetOk), Condition: isa.Eq},
	}
	want := "0x0000: Add imm -> reg r0,r0 -> r3,r0 imm=0x5,0x0\n" +
		"0x0001: eq.Ret.Ok reg -> reg r0,r0 -> r0,r0\n"
	if got := code.String(); want != got {
		t.Errorf("unexpected listing, wanted\n%s\ngot\n%s", want, got)
	}
}
