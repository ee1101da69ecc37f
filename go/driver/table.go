// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.
package main

import (
	"fmt"
	"slices"

	"github.com/Fantom-foundation/Axon/go/axon/isa"
	cliUtils "github.com/Fantom-foundation/Axon/go/driver/cli"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/maps"
)

var TableCmd = cli.Command{
	Action: doTable,
	Name:   "table",
	Usage:  "Summarize the decoding table of an instruction set version",
	Flags: []cli.Flag{
		cliUtils.IsaVersionFlag,
		&cli.BoolFlag{
			Name:  "variants",
			Usage: "list every valid slot with its price",
		},
	},
}

func doTable(context *cli.Context) error {
	version, err := cliUtils.IsaVersionFlag.Fetch(context)
	if err != nil {
		return err
	}
	table, err := isa.GetTable(version)
	if err != nil {
		return err
	}
	out := context.App.Writer
	listVariants := context.Bool("variants")

	variants := table.Variants()
	counts := map[isa.Family]int{}
	for i, variant := range variants {
		if variant.IsInvalid() {
			continue
		}
		counts[variant.Opcode.Family]++
		if listVariants {
			fmt.Fprintf(out, "0x%03x %-40v %d\n", i, variant, table.Price(uint16(i)))
		}
	}

	families := maps.Keys(counts)
	slices.Sort(families)
	fmt.Fprintf(out, "ISA %v\n", version)
	for _, family := range families {
		fmt.Fprintf(out, "%-10v %4d\n", family, counts[family])
	}
	fmt.Fprintf(out, "total: %d of %d slots used, %d distinct variants\n", len(variants)-countInvalid(variants), len(variants), table.NumDistinctVariants())
	return nil
}

func countInvalid(variants []isa.OpcodeVariant) int {
	res := 0
	for _, variant := range variants {
		if variant.IsInvalid() {
			res++
		}
	}
	return res
}
