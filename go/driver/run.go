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
	"sync"
	"time"

	"github.com/Fantom-foundation/Axon/go/axon"
	"github.com/Fantom-foundation/Axon/go/backend"
	cliUtils "github.com/Fantom-foundation/Axon/go/driver/cli"
	"github.com/Fantom-foundation/Axon/go/interpreter/axvm"
	"github.com/dsnet/golib/unitconv"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

var RunCmd = cliUtils.AddCommonFlags(cli.Command{
	Action:    doRun,
	Name:      "run",
	Usage:     "Run a program on the selected interpreter",
	ArgsUsage: "<code file>",
	Flags:     append([]cli.Flag{cliUtils.ConfigFlag}, runConfigFlags...),
})

// registerExperimental makes the logging and statistics configurations
// available; the registry rejects a second registration.
var registerExperimental = sync.OnceValue(axvm.RegisterExperimentalInterpreterConfigurations)

func doRun(context *cli.Context) error {
	if context.Args().Len() != 1 {
		return fmt.Errorf("expected exactly one code file, got %d arguments", context.Args().Len())
	}
	code, err := cliUtils.ReadCodeFile(context.Args().Get(0))
	if err != nil {
		return err
	}
	config, err := loadRunConfig(context)
	if err != nil {
		return err
	}

	name := config.Interpreter
	if config.Trace || config.Stats {
		if err := registerExperimental(); err != nil {
			return err
		}
		if config.Trace {
			name += "-logging"
		} else {
			name += "-stats"
		}
	}
	interpreter, err := axon.NewInterpreter(name, axvm.Config{MaxCycles: config.MaxCycles})
	if err != nil {
		return err
	}

	backends := backend.NewInMemory()
	params := axon.Parameters{
		ISAVersion: config.ISAVersion,
		Code:       code,
		Calldata:   config.Calldata,
		Address:    config.Address,
		Caller:     config.Caller,
		Ergs:       config.Ergs,
		Backends:   backends.Backends(),
	}
	log.Debug("starting run", "interpreter", name, "words", len(code), "ergs", config.Ergs)

	start := time.Now()
	result, err := interpreter.Run(params)
	duration := time.Since(start)
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}
	log.Info("run finished", "status", result.Status, "cycles", result.Cycles, "time", duration)

	rate := 0.0
	if seconds := duration.Seconds(); seconds > 0 {
		rate = float64(result.Cycles) / seconds
	}
	out := context.App.Writer
	fmt.Fprintf(out, "status:    %v\n", result.Status)
	fmt.Fprintf(out, "ergs used: %d\n", config.Ergs-result.ErgsLeft)
	fmt.Fprintf(out, "ergs left: %d\n", result.ErgsLeft)
	fmt.Fprintf(out, "cycles:    %d (~%scycles/s)\n", result.Cycles, unitconv.FormatPrefix(rate, unitconv.SI, 1))
	fmt.Fprintf(out, "output:    %s\n", hexutil.Encode(result.Output))
	if n := len(backends.Events.Events()); n > 0 {
		fmt.Fprintf(out, "events:    %d\n", n)
	}
	if n := len(backends.Events.L1Messages()); n > 0 {
		fmt.Fprintf(out, "messages:  %d\n", n)
	}

	if config.Stats {
		if profiling, ok := interpreter.(axon.ProfilingInterpreter); ok {
			profiling.DumpProfile()
		}
	}
	return nil
}
