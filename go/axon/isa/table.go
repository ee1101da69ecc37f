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
	"sync"

	"github.com/Fantom-foundation/Axon/go/axon"
)

// Synthesize enumerates every legal variant of the given ISA version into a
// table of 2^width slots. Families are enumerated in declaration order, then
// variants, flag combinations, source and destination operands. Unused
// slots hold the InvalidVariant. The function panics if the variants do not
// fit.
func Synthesize(width int, version axon.ISAVersion) []OpcodeVariant {
	size := 1 << width
	res := make([]OpcodeVariant, 0, size)
	for family := Family(0); int(family) < NumFamilies; family++ {
		info := familyInfos[family]
		for variant := range info.variants {
			for combo := 0; combo < 1<<len(info.flags); combo++ {
				var flags [NumNonExclusiveFlags]bool
				for i := range info.flags {
					flags[i] = combo&(1<<i) != 0
				}
				for _, src := range info.src.srcOperands() {
					for _, dst := range info.dst.dstOperands() {
						res = append(res, OpcodeVariant{
							Opcode: Opcode{Family: family, Variant: byte(variant)},
							Src0:   src,
							Dst0:   dst,
							Flags:  flags,
						})
					}
				}
			}
		}
	}
	if len(res) > size {
		panic(fmt.Sprintf("%d opcode variants do not fit into a table of width %d", len(res), width))
	}
	for len(res) < size {
		res = append(res, InvalidVariant)
	}
	return res
}

// Table is the immutable decoding table of one ISA version together with
// its derived per-slot properties. Tables are shared by all VM instances.
type Table struct {
	version   axon.ISAVersion
	variants  [TableSize]OpcodeVariant
	prices    slotPropertyMap[axon.Ergs]
	bitmasks  slotPropertyMap[uint64]
	canonical map[OpcodeVariant]uint16
	monotonic map[OpcodeVariant]uint16
}

var tables [axon.NewestISAVersion + 1]struct {
	once  sync.Once
	table *Table
}

// GetTable returns the decoding table of the given version, building it on
// first use.
func GetTable(version axon.ISAVersion) (*Table, error) {
	if version > axon.NewestISAVersion {
		return nil, &axon.ErrUnsupportedISAVersion{Version: version}
	}
	entry := &tables[version]
	entry.once.Do(func() {
		entry.table = newTable(version)
	})
	return entry.table, nil
}

// MustGetTable is GetTable for versions known to be supported.
func MustGetTable(version axon.ISAVersion) *Table {
	table, err := GetTable(version)
	if err != nil {
		panic(err)
	}
	return table
}

func newTable(version axon.ISAVersion) *Table {
	res := &Table{
		version:   version,
		canonical: map[OpcodeVariant]uint16{},
		monotonic: map[OpcodeVariant]uint16{},
	}
	copy(res.variants[:], Synthesize(OpcodesTableWidth, version))

	descriptions := map[uint64]OpcodeVariant{}
	for i, variant := range res.variants {
		if existing, found := res.canonical[variant]; found {
			if res.variants[existing] != InvalidVariant {
				panic(fmt.Sprintf("variant %v is encoded at slots %d and %d", variant, existing, i))
			}
			continue
		}
		res.canonical[variant] = uint16(i)
		res.monotonic[variant] = uint16(len(res.monotonic))

		mask := variant.Bitmask(version)
		if other, found := descriptions[mask]; found {
			panic(fmt.Sprintf("variants %v and %v share description %#x", other, variant, mask))
		}
		descriptions[mask] = variant
	}

	res.prices = newSlotPropertyMap(&res.variants, OpcodeVariant.Price)
	res.bitmasks = newSlotPropertyMap(&res.variants, func(v OpcodeVariant) uint64 {
		return v.Bitmask(version)
	})

	for _, required := range []OpcodeVariant{InvalidVariant, NopVariant, PanicVariant} {
		if _, found := res.canonical[required]; !found {
			panic(fmt.Sprintf("variant %v missing from decoding table", required))
		}
	}
	return res
}

func (t *Table) Version() axon.ISAVersion {
	return t.version
}

// Decode returns the variant selected by the low table bits of an
// instruction.
func (t *Table) Decode(raw uint64) OpcodeVariant {
	return t.variants[raw&TableIndexMask]
}

// Price returns the ergs price of the variant at the given slot.
func (t *Table) Price(index uint16) axon.Ergs {
	return t.prices.get(index)
}

// Bitmask returns the description bitmask of the variant at the given slot.
func (t *Table) Bitmask(index uint16) uint64 {
	return t.bitmasks.get(index)
}

// CanonicalIndex returns the first slot holding the variant.
func (t *Table) CanonicalIndex(variant OpcodeVariant) (uint16, bool) {
	index, found := t.canonical[variant]
	return index, found
}

// MonotonicNumber returns the dense ordinal of the variant among all
// distinct variants of the table.
func (t *Table) MonotonicNumber(variant OpcodeVariant) (uint16, bool) {
	number, found := t.monotonic[variant]
	return number, found
}

// NumDistinctVariants is the number of distinct variants in the table,
// including the invalid sentinel.
func (t *Table) NumDistinctVariants() int {
	return len(t.monotonic)
}

// Variants returns a copy of all table slots.
func (t *Table) Variants() []OpcodeVariant {
	return append([]OpcodeVariant(nil), t.variants[:]...)
}

// Encode returns the table index of a variant, or an error if the variant
// is not part of the instruction set.
func (t *Table) Encode(variant OpcodeVariant) (uint16, error) {
	if index, found := t.canonical[variant]; found && !variant.IsInvalid() {
		return index, nil
	}
	return 0, fmt.Errorf("variant %v is not encodable in ISA %v", variant, t.version)
}

// slotPropertyMap is a precomputed lookup table of a property of every
// table slot.
type slotPropertyMap[T any] struct {
	lookup [TableSize]T
}

func newSlotPropertyMap[T any](variants *[TableSize]OpcodeVariant, property func(OpcodeVariant) T) slotPropertyMap[T] {
	res := slotPropertyMap[T]{}
	for i := range variants {
		res.lookup[i] = property(variants[i])
	}
	return res
}

func (p *slotPropertyMap[T]) get(index uint16) T {
	return p.lookup[index&TableIndexMask]
}
