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

	"github.com/Fantom-foundation/Axon/go/axon"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/maps"
)

var ListCmd = cli.Command{
	Action: doList,
	Name:   "list",
	Usage:  "List all registered interpreter configurations",
	Flags: []cli.Flag{
		&cli.BoolFlag{
			Name:  "experimental",
			Usage: "include experimental configurations",
		},
	},
}

func doList(context *cli.Context) error {
	if context.Bool("experimental") {
		if err := registerExperimental(); err != nil {
			return err
		}
	}
	names := maps.Keys(axon.GetAllRegisteredInterpreters())
	slices.Sort(names)
	for _, name := range names {
		fmt.Fprintln(context.App.Writer, name)
	}
	return nil
}
