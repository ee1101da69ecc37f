// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.
package cliUtils

import (
	"fmt"
	"math"
	"os"
	"runtime/pprof"

	"github.com/Fantom-foundation/Axon/go/axon"
	"github.com/urfave/cli/v2"
)

type verbosityFlagType struct {
	cli.IntFlag
}

var VerbosityFlag = &verbosityFlagType{
	cli.IntFlag{
		Name:  "verbosity",
		Usage: "log level: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: 3,
	},
}

func (f *verbosityFlagType) Fetch(context *cli.Context) int {
	return context.Int(f.Name)
}

type interpreterFlagType struct {
	cli.StringFlag
}

var InterpreterFlag = &interpreterFlagType{
	cli.StringFlag{
		Name:    "interpreter",
		Aliases: []string{"i"},
		Usage:   "name of the registered interpreter configuration",
		Value:   "axvm",
	},
}

func (f *interpreterFlagType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

type isaVersionFlagType struct {
	cli.StringFlag
}

var IsaVersionFlag = &isaVersionFlagType{
	cli.StringFlag{
		Name:  "isa",
		Usage: "version of the instruction set",
		Value: axon.DefaultISAVersion.String(),
	},
}

func (f *isaVersionFlagType) Fetch(context *cli.Context) (axon.ISAVersion, error) {
	return axon.ParseISAVersion(context.String(f.Name))
}

var ErgsFlag = &cli.Uint64Flag{
	Name:  "ergs",
	Usage: "ergs available to the run",
	Value: math.MaxUint32,
}

var CalldataFlag = &cli.StringFlag{
	Name:  "calldata",
	Usage: "hex encoded calldata handed to the program",
}

var AddressFlag = &cli.StringFlag{
	Name:  "address",
	Usage: "address the program is executed at",
	Value: "0x0000000000000000000000000000000000008001",
}

var CallerFlag = &cli.StringFlag{
	Name:  "caller",
	Usage: "address of the caller",
	Value: "0x0000000000000000000000000000000000000000",
}

var MaxCyclesFlag = &cli.Uint64Flag{
	Name:  "max-cycles",
	Usage: "aborts the run after the given number of cycles, 0 for no limit",
}

var TraceFlag = &cli.BoolFlag{
	Name:  "trace",
	Usage: "print one line per executed instruction to stderr",
}

var StatsFlag = &cli.BoolFlag{
	Name:  "stats",
	Usage: "print instruction statistics after the run",
}

type configFlagType struct {
	cli.StringFlag
}

var ConfigFlag = &configFlagType{
	cli.StringFlag{
		Name:      "config",
		Aliases:   []string{"c"},
		Usage:     "read run parameters from the given file (toml, yaml or json)",
		TakesFile: true,
	},
}

func (f *configFlagType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

type testingEncodingFlagType struct {
	cli.BoolFlag
}

var TestingEncodingFlag = &testingEncodingFlagType{
	cli.BoolFlag{
		Name:  "testing-encoding",
		Usage: "decode one instruction with 64-bit immediates per code word",
	},
}

func (f *testingEncodingFlagType) Fetch(context *cli.Context) bool {
	return context.Bool(f.Name)
}

var commonFlags = []cli.Flag{
	cpuProfileFlag,
}

var cpuProfileFlag = &cli.StringFlag{
	Name:      "cpuprofile",
	Usage:     "store CPU profile in the provided filename",
	TakesFile: true,
}

func AddCommonFlags(command cli.Command) cli.Command {
	command.Flags = append(command.Flags, commonFlags...)

	action := command.Action
	command.Action = func(ctx *cli.Context) (err error) {

		if cpuprofileFilename := ctx.String(cpuProfileFlag.Name); cpuprofileFilename != "" {
			f, err := os.Create(cpuprofileFilename)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %w", err)
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %w", err)
			}
			defer pprof.StopCPUProfile()
		}

		return action(ctx)
	}
	return command
}
