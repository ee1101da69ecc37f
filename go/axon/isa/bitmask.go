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

import "github.com/Fantom-foundation/Axon/go/axon"

// DescriptionBits is the number of bits of the one-hot description of a
// variant, before rounding.
func DescriptionBits(version axon.ISAVersion) int {
	return OpcodeTypeBits +
		maxNumVariants(version) +
		maxNumFlags(version) +
		OpcodeInputVariantFlags +
		OpcodeOutputVariantFlags
}

// DescriptionBitsRounded is DescriptionBits rounded up to a multiple of 16.
// The aux bits follow directly after it.
func DescriptionBitsRounded(version axon.ISAVersion) int {
	total := DescriptionBits(version)
	if rem := total % widthMultiple; rem != 0 {
		total += widthMultiple - rem
	}
	return total
}

// DescriptionAndAuxBits is the total width of a description bitmask.
func DescriptionAndAuxBits(version axon.ISAVersion) int {
	return DescriptionBitsRounded(version) + TotalAuxBits
}

// Bitmask spreads the properties of the variant into the layout
//
//	[family][variant][flags][src mode][dst mode] rounded, [aux]
//
// consumed by the proving system. Family, variant and modes are one-hot.
func (v OpcodeVariant) Bitmask(version axon.ISAVersion) uint64 {
	var res uint64
	offset := 0

	res |= 1 << (offset + int(v.Opcode.Family))
	offset += OpcodeTypeBits

	res |= 1 << (offset + int(v.Opcode.Variant))
	offset += maxNumVariants(version)

	for i, set := range v.Flags {
		if set {
			res |= 1 << (offset + i)
		}
	}
	offset += maxNumFlags(version)

	res |= 1 << (offset + int(v.Src0.Mode))
	offset += OpcodeInputVariantFlags

	res |= 1 << (offset + int(v.Dst0.Mode))

	aux := DescriptionBitsRounded(version)
	if v.Opcode.IsKernelOnly() {
		res |= 1 << (aux + KernelModeFlagIdx)
	}
	if v.Opcode.IsAllowedInStaticContext() {
		res |= 1 << (aux + CanBeUsedInStaticContextFlagIdx)
	}
	if v.Opcode.IsExplicitPanic() {
		res |= 1 << (aux + ExplicitPanicFlagIdx)
	}
	return res
}
