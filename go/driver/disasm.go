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
	"io"

	"github.com/Fantom-foundation/Axon/go/axon/isa"
	cliUtils "github.com/Fantom-foundation/Axon/go/driver/cli"
	"github.com/Fantom-foundation/Axon/go/interpreter/axvm"
	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/constraints"
)

var DisasmCmd = cli.Command{
	Action:    doDisasm,
	Name:      "disasm",
	Usage:     "Print the instructions of a program",
	ArgsUsage: "<code file>",
	Flags: []cli.Flag{
		cliUtils.IsaVersionFlag,
		cliUtils.TestingEncodingFlag,
	},
}

func doDisasm(context *cli.Context) error {
	if context.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one code file, got %d arguments", context.Args().Len())
	}
	code, err := cliUtils.ReadCodeFile(context.Args().Get(0))
	if err != nil {
		return err
	}
	version, err := cliUtils.IsaVersionFlag.Fetch(context)
	if err != nil {
		return err
	}
	table, err := isa.GetTable(version)
	if err != nil {
		return err
	}
	if cliUtils.TestingEncodingFlag.Fetch(context) {
		return disassemble(context.App.Writer, table, axvm.Encoding[uint64](axvm.TestingEncoding{}), code)
	}
	return disassemble(context.App.Writer, table, axvm.Encoding[uint16](axvm.ProductionEncoding{}), code)
}

func disassemble[A constraints.Unsigned](out io.Writer, table *isa.Table, encoding axvm.Encoding[A], code []uint256.Int) error {
	_, err := fmt.Fprint(out, axvm.Disassemble(table, encoding, code).String())
	return err
}
