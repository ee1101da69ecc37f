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

	"github.com/Fantom-foundation/Axon/go/axon"
)

// Family is the coarse kind of an instruction. Each family is executed by
// one handler of the interpreter.
type Family byte

const (
	Invalid Family = iota
	Nop
	Add
	Sub
	Mul
	Div
	Jump
	Context
	Shift
	Binop
	Ptr
	NearCall
	Log
	FarCall
	Ret
	UMA
	NumFamilies int = iota
)

// Variants of the families with more than one variant.
type (
	ContextOp byte
	ShiftOp   byte
	BinopOp   byte
	PtrOp     byte
	LogOp     byte
	FarCallOp byte
	RetOp     byte
	UMAOp     byte
)

const (
	ContextThis ContextOp = iota
	ContextCaller
	ContextCodeAddress
	ContextMeta
	ContextErgsLeft
	ContextSp
	ContextGetContextU128
	ContextSetContextU128
	ContextSetErgsPerPubdata
	ContextIncrementTxNumber
)

const (
	ShiftShl ShiftOp = iota
	ShiftShr
	ShiftRol
	ShiftRor
)

const (
	BinopXor BinopOp = iota
	BinopAnd
	BinopOr
)

const (
	PtrAdd PtrOp = iota
	PtrSub
	PtrPack
	PtrShrink
)

const (
	LogStorageRead LogOp = iota
	LogStorageWrite
	LogToL1Message
	LogEvent
	LogPrecompileCall
)

const (
	FarCallNormal FarCallOp = iota
	FarCallDelegate
	FarCallMimic
)

const (
	RetOk RetOp = iota
	RetRevert
	RetPanic
)

const (
	UMAHeapRead UMAOp = iota
	UMAHeapWrite
	UMAAuxHeapRead
	UMAAuxHeapWrite
	UMAFatPointerRead
)

// Opcode is a family together with the index of one of its variants.
type Opcode struct {
	Family  Family
	Variant byte
}

func NewOpcode[V ~byte](family Family, variant V) Opcode {
	return Opcode{Family: family, Variant: byte(variant)}
}

func (o Opcode) String() string {
	info := familyInfos[o.Family%Family(NumFamilies)]
	if int(o.Variant) >= len(info.variants) {
		return fmt.Sprintf("%s.Variant(%d)", info.name, o.Variant)
	}
	if len(info.variants) == 1 {
		return info.name
	}
	return info.name + "." + info.variants[o.Variant].name
}

func (f Family) String() string {
	if int(f) < NumFamilies {
		return familyInfos[f].name
	}
	return fmt.Sprintf("Family(%d)", f)
}

type variantInfo struct {
	name            string
	kernelOnly      bool
	forbiddenStatic bool
	explicitPanic   bool
}

// familyInfo is the declarative description of a family from which the
// decoding table is synthesized.
type familyInfo struct {
	name     string
	variants []variantInfo
	src      OperandKind
	dst      OperandKind
	flags    []string
}

var single = []variantInfo{{name: ""}}

var familyInfos = [NumFamilies]familyInfo{
	Invalid: {name: "Invalid", variants: single, src: KindRegOnly, dst: KindRegOnly},
	Nop:     {name: "Nop", variants: single, src: KindFull, dst: KindFull},
	Add:     {name: "Add", variants: single, src: KindFull, dst: KindFull, flags: []string{"set_flags"}},
	Sub:     {name: "Sub", variants: single, src: KindFull, dst: KindFull, flags: []string{"set_flags", "swap"}},
	Mul:     {name: "Mul", variants: single, src: KindFull, dst: KindFull, flags: []string{"set_flags", "swap"}},
	Div:     {name: "Div", variants: single, src: KindFull, dst: KindFull, flags: []string{"set_flags", "swap"}},
	Jump:    {name: "Jump", variants: single, src: KindFull, dst: KindRegOnly},
	Context: {
		name: "Context",
		variants: []variantInfo{
			ContextThis:              {name: "This"},
			ContextCaller:            {name: "Caller"},
			ContextCodeAddress:       {name: "CodeAddress"},
			ContextMeta:              {name: "Meta"},
			ContextErgsLeft:          {name: "ErgsLeft"},
			ContextSp:                {name: "Sp"},
			ContextGetContextU128:    {name: "GetContextU128"},
			ContextSetContextU128:    {name: "SetContextU128", kernelOnly: true, forbiddenStatic: true},
			ContextSetErgsPerPubdata: {name: "SetErgsPerPubdata", kernelOnly: true, forbiddenStatic: true},
			ContextIncrementTxNumber: {name: "IncrementTxNumber", kernelOnly: true, forbiddenStatic: true},
		},
		src: KindRegOnly,
		dst: KindRegOnly,
	},
	Shift: {
		name: "Shift",
		variants: []variantInfo{
			ShiftShl: {name: "Shl"},
			ShiftShr: {name: "Shr"},
			ShiftRol: {name: "Rol"},
			ShiftRor: {name: "Ror"},
		},
		src:   KindFull,
		dst:   KindFull,
		flags: []string{"set_flags", "swap"},
	},
	Binop: {
		name: "Binop",
		variants: []variantInfo{
			BinopXor: {name: "Xor"},
			BinopAnd: {name: "And"},
			BinopOr:  {name: "Or"},
		},
		src:   KindFull,
		dst:   KindFull,
		flags: []string{"set_flags", "swap"},
	},
	Ptr: {
		name: "Ptr",
		variants: []variantInfo{
			PtrAdd:    {name: "Add"},
			PtrSub:    {name: "Sub"},
			PtrPack:   {name: "Pack"},
			PtrShrink: {name: "Shrink"},
		},
		src:   KindFull,
		dst:   KindFull,
		flags: []string{"swap"},
	},
	NearCall: {name: "NearCall", variants: single, src: KindRegOnly, dst: KindRegOnly},
	Log: {
		name: "Log",
		variants: []variantInfo{
			LogStorageRead:    {name: "StorageRead"},
			LogStorageWrite:   {name: "StorageWrite", forbiddenStatic: true},
			LogToL1Message:    {name: "ToL1Message", kernelOnly: true, forbiddenStatic: true},
			LogEvent:          {name: "Event", kernelOnly: true, forbiddenStatic: true},
			LogPrecompileCall: {name: "PrecompileCall", kernelOnly: true},
		},
		src:   KindRegOnly,
		dst:   KindRegOnly,
		flags: []string{"first"},
	},
	FarCall: {
		name: "FarCall",
		variants: []variantInfo{
			FarCallNormal:   {name: "Normal"},
			FarCallDelegate: {name: "Delegate"},
			FarCallMimic:    {name: "Mimic", kernelOnly: true},
		},
		src:   KindRegOnly,
		dst:   KindRegOnly,
		flags: []string{"static", "shard"},
	},
	Ret: {
		name: "Ret",
		variants: []variantInfo{
			RetOk:     {name: "Ok"},
			RetRevert: {name: "Revert"},
			RetPanic:  {name: "Panic", explicitPanic: true},
		},
		src:   KindRegOnly,
		dst:   KindRegOnly,
		flags: []string{"to_label"},
	},
	UMA: {
		name: "UMA",
		variants: []variantInfo{
			UMAHeapRead:       {name: "HeapRead"},
			UMAHeapWrite:      {name: "HeapWrite"},
			UMAAuxHeapRead:    {name: "AuxHeapRead"},
			UMAAuxHeapWrite:   {name: "AuxHeapWrite"},
			UMAFatPointerRead: {name: "FatPointerRead"},
		},
		src:   KindRegOrImm,
		dst:   KindRegOnly,
		flags: []string{"increment"},
	},
}

// NumVariants returns the number of variants of the given family.
func NumVariants(f Family) int {
	return len(familyInfos[f].variants)
}

// maxNumVariants is the largest number of variants of any family.
func maxNumVariants(version axon.ISAVersion) int {
	res := 0
	for _, info := range familyInfos {
		res = max(res, len(info.variants))
	}
	return res
}

// maxNumFlags is the largest number of flags declared by any family.
func maxNumFlags(version axon.ISAVersion) int {
	res := 0
	for _, info := range familyInfos {
		res = max(res, len(info.flags))
	}
	return res
}

func (o Opcode) info() variantInfo {
	return familyInfos[o.Family].variants[o.Variant]
}

// IsKernelOnly reports whether the opcode requires kernel mode.
func (o Opcode) IsKernelOnly() bool { return o.info().kernelOnly }

// IsAllowedInStaticContext reports whether the opcode may run in a static
// context.
func (o Opcode) IsAllowedInStaticContext() bool { return !o.info().forbiddenStatic }

// IsExplicitPanic reports whether the opcode is the explicit panic.
func (o Opcode) IsExplicitPanic() bool { return o.info().explicitPanic }
