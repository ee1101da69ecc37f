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

import "fmt"

// AddressingMode is the way an operand is sourced or sunk. The numeric value
// of a mode is its encoding and its index in price and description tables.
type AddressingMode byte

const (
	UseRegOnly AddressingMode = iota
	UseStackWithPushPop
	UseStackWithOffset
	UseAbsoluteOnStack
	UseImm16Only
	UseCodePage
	numAddressingModes int = iota
)

// AllAddressingModes lists the full catalog in encoding order.
func AllAddressingModes() []AddressingMode {
	return []AddressingMode{
		UseRegOnly,
		UseStackWithPushPop,
		UseStackWithOffset,
		UseAbsoluteOnStack,
		UseImm16Only,
		UseCodePage,
	}
}

// IsMemoryUsed reports whether the mode reads or writes a memory cell.
func (m AddressingMode) IsMemoryUsed() bool {
	return m != UseRegOnly && m != UseImm16Only
}

// IsAllowedForDst reports whether the mode may be used for a destination.
func (m AddressingMode) IsAllowedForDst() bool {
	return m != UseImm16Only && m != UseCodePage
}

func (m AddressingMode) String() string {
	switch m {
	case UseRegOnly:
		return "reg"
	case UseStackWithPushPop:
		return "stack+-"
	case UseStackWithOffset:
		return "stack-off"
	case UseAbsoluteOnStack:
		return "stack-abs"
	case UseImm16Only:
		return "imm"
	case UseCodePage:
		return "code"
	}
	return fmt.Sprintf("AddressingMode(%d)", m)
}

// RegOrImmMode is the reduced catalog of families that never touch memory
// through their operands.
type RegOrImmMode byte

const (
	RegOrImmUseRegOnly   RegOrImmMode = 0
	RegOrImmUseImm16Only RegOrImmMode = 4
)

// Both catalogs must encode the shared modes identically; the array index
// below fails to compile otherwise.
var (
	_ = [1]struct{}{}[int(RegOrImmUseRegOnly)-int(UseRegOnly)]
	_ = [1]struct{}{}[int(RegOrImmUseImm16Only)-int(UseImm16Only)]
)

// AllRegOrImmModes lists the reduced catalog in encoding order.
func AllRegOrImmModes() []RegOrImmMode {
	return []RegOrImmMode{RegOrImmUseRegOnly, RegOrImmUseImm16Only}
}

// AddressingMode returns the full-catalog mode with the same encoding.
func (m RegOrImmMode) AddressingMode() AddressingMode {
	return AddressingMode(m)
}

// OperandKind is the addressing catalog a family declares for an operand.
type OperandKind byte

const (
	KindRegOnly OperandKind = iota
	KindRegOrImm
	KindFull
)

// Operand is the addressing of one operand of a decoded variant: the
// declared catalog and the selected mode within it.
type Operand struct {
	Kind OperandKind
	Mode AddressingMode
}

// RegOnly is the only operand of a register-only catalog.
func RegOnly() Operand {
	return Operand{Kind: KindRegOnly, Mode: UseRegOnly}
}

// RegOrImm selects a mode of the reduced catalog.
func RegOrImm(mode RegOrImmMode) Operand {
	return Operand{Kind: KindRegOrImm, Mode: mode.AddressingMode()}
}

// Full selects a mode of the full catalog.
func Full(mode AddressingMode) Operand {
	return Operand{Kind: KindFull, Mode: mode}
}

// srcOperands lists the legal source operands of a catalog.
func (k OperandKind) srcOperands() []Operand {
	switch k {
	case KindRegOrImm:
		res := []Operand{}
		for _, m := range AllRegOrImmModes() {
			res = append(res, RegOrImm(m))
		}
		return res
	case KindFull:
		res := []Operand{}
		for _, m := range AllAddressingModes() {
			res = append(res, Full(m))
		}
		return res
	}
	return []Operand{RegOnly()}
}

// dstOperands lists the legal destination operands of a catalog.
func (k OperandKind) dstOperands() []Operand {
	res := []Operand{}
	for _, op := range k.srcOperands() {
		if op.Mode.IsAllowedForDst() {
			res = append(res, op)
		}
	}
	return res
}

func (o Operand) String() string {
	return o.Mode.String()
}
