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

	"github.com/Fantom-foundation/Axon/go/axon"
	cliUtils "github.com/Fantom-foundation/Axon/go/driver/cli"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

// runConfig holds the parameters of a run. Values are taken from the
// command line flags, a configuration file, and the flag defaults, in this
// order of precedence.
type runConfig struct {
	Interpreter string
	ISAVersion  axon.ISAVersion
	Ergs        axon.Ergs
	Calldata    []byte
	Address     axon.Address
	Caller      axon.Address
	MaxCycles   uint64
	Trace       bool
	Stats       bool
}

var runConfigFlags = []cli.Flag{
	cliUtils.InterpreterFlag,
	cliUtils.IsaVersionFlag,
	cliUtils.ErgsFlag,
	cliUtils.CalldataFlag,
	cliUtils.AddressFlag,
	cliUtils.CallerFlag,
	cliUtils.MaxCyclesFlag,
	cliUtils.TraceFlag,
	cliUtils.StatsFlag,
}

func loadRunConfig(context *cli.Context) (runConfig, error) {
	v := viper.New()
	for _, flag := range runConfigFlags {
		name := flag.Names()[0]
		v.SetDefault(name, context.Value(name))
	}
	if path := cliUtils.ConfigFlag.Fetch(context); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return runConfig{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}
	for _, flag := range runConfigFlags {
		if name := flag.Names()[0]; context.IsSet(name) {
			v.Set(name, context.Value(name))
		}
	}
	return parseRunConfig(v)
}

func parseRunConfig(v *viper.Viper) (runConfig, error) {
	var err error
	res := runConfig{
		Interpreter: v.GetString(cliUtils.InterpreterFlag.Name),
		MaxCycles:   v.GetUint64(cliUtils.MaxCyclesFlag.Name),
		Trace:       v.GetBool(cliUtils.TraceFlag.Name),
		Stats:       v.GetBool(cliUtils.StatsFlag.Name),
	}
	if res.ISAVersion, err = axon.ParseISAVersion(v.GetString(cliUtils.IsaVersionFlag.Name)); err != nil {
		return runConfig{}, err
	}
	if res.Ergs, err = cliUtils.ParseErgs(v.GetUint64(cliUtils.ErgsFlag.Name)); err != nil {
		return runConfig{}, err
	}
	if res.Calldata, err = cliUtils.ParseHex(v.GetString(cliUtils.CalldataFlag.Name)); err != nil {
		return runConfig{}, fmt.Errorf("invalid calldata: %w", err)
	}
	if res.Address, err = cliUtils.ParseAddress(v.GetString(cliUtils.AddressFlag.Name)); err != nil {
		return runConfig{}, err
	}
	if res.Caller, err = cliUtils.ParseAddress(v.GetString(cliUtils.CallerFlag.Name)); err != nil {
		return runConfig{}, err
	}
	if res.Trace && res.Stats {
		return runConfig{}, fmt.Errorf("trace and stats can not be enabled at the same time")
	}
	return res, nil
}
