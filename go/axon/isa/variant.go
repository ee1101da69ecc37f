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
	"fmt"
	"slices"
	"strings"
)

// OpcodeVariant is the decoded form of a table slot: an opcode, the
// addressing of its first source and destination, and its non-exclusive
// flags. Variants are comparable and may be used as map keys.
type OpcodeVariant struct {
	Opcode Opcode
	Src0   Operand
	Dst0   Operand
	Flags  [NumNonExclusiveFlags]bool
}

var (
	// InvalidVariant fills all table slots not used by a legal instruction.
	InvalidVariant = OpcodeVariant{
		Opcode: Opcode{Family: Invalid},
		Src0:   RegOnly(),
		Dst0:   RegOnly(),
	}

	// NopVariant is the canonical no-operation.
	NopVariant = OpcodeVariant{
		Opcode: Opcode{Family: Nop},
		Src0:   Full(UseRegOnly),
		Dst0:   Full(UseRegOnly),
	}

	// PanicVariant is executed by a frame with a pending exception.
	PanicVariant = OpcodeVariant{
		Opcode: NewOpcode(Ret, RetPanic),
		Src0:   RegOnly(),
		Dst0:   RegOnly(),
	}
)

func (v OpcodeVariant) IsInvalid() bool {
	return v.Opcode.Family == Invalid
}

// IsMemoryUsed reports whether one of the operands reads or writes memory.
func (v OpcodeVariant) IsMemoryUsed() bool {
	return v.Src0.Mode.IsMemoryUsed() || v.Dst0.Mode.IsMemoryUsed()
}

// SetFlags reports whether an arithmetic or logic variant updates the flags.
func (v OpcodeVariant) SetFlags() bool {
	switch v.Opcode.Family {
	case Add, Sub, Mul, Div, Shift, Binop:
		return v.Flags[SetFlagsFlagIdx]
	}
	return false
}

// SwapOperands reports whether src0 and src1 are exchanged after resolution.
func (v OpcodeVariant) SwapOperands() bool {
	switch v.Opcode.Family {
	case Sub, Mul, Div, Shift, Binop:
		return v.Flags[SwapOperandsFlagIdxForArithOpcodes]
	case Ptr:
		return v.Flags[SwapOperandsFlagIdxForPtrOpcode]
	}
	return false
}

func (v OpcodeVariant) String() string {
	var builder strings.Builder
	builder.WriteString(v.Opcode.String())
	names := familyInfos[v.Opcode.Family%Family(NumFamilies)].flags
	set := []string{}
	for i, name := range names {
		if i < len(v.Flags) && v.Flags[i] {
			set = append(set, name)
		}
	}
	if len(set) > 0 {
		builder.WriteString("[" + strings.Join(set, ",") + "]")
	}
	fmt.Fprintf(&builder, " %v -> %v", v.Src0, v.Dst0)
	return builder.String()
}

// NewVariant composes the variant of an opcode with the given operand modes
// and flags. The operand catalogs are the ones declared by the family of the
// opcode. An error is returned if the opcode is unknown or a mode or flag is
// not supported.
func NewVariant(opcode Opcode, src0, dst0 AddressingMode, flags ...bool) (OpcodeVariant, error) {
	if int(opcode.Family) >= NumFamilies || int(opcode.Variant) >= NumVariants(opcode.Family) {
		return OpcodeVariant{}, fmt.Errorf("unknown opcode %v", opcode)
	}
	info := familyInfos[opcode.Family]
	if len(flags) > len(info.flags) {
		return OpcodeVariant{}, fmt.Errorf("%v supports %d flags, got %d", opcode, len(info.flags), len(flags))
	}
	res := OpcodeVariant{
		Opcode: opcode,
		Src0:   Operand{Kind: info.src, Mode: src0},
		Dst0:   Operand{Kind: info.dst, Mode: dst0},
	}
	if !slices.Contains(info.src.srcOperands(), res.Src0) {
		return OpcodeVariant{}, fmt.Errorf("%v does not support source mode %v", opcode, src0)
	}
	if !slices.Contains(info.dst.dstOperands(), res.Dst0) {
		return OpcodeVariant{}, fmt.Errorf("%v does not support destination mode %v", opcode, dst0)
	}
	copy(res.Flags[:], flags)
	return res, nil
}

// MustNewVariant is like NewVariant but panics on invalid arguments.
func MustNewVariant(opcode Opcode, src0, dst0 AddressingMode, flags ...bool) OpcodeVariant {
	res, err := NewVariant(opcode, src0, dst0, flags...)
	if err != nil {
		panic(err)
	}
	return res
}
