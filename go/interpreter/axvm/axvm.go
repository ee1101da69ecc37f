// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package axvm

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Fantom-foundation/Axon/go/axon"
	"golang.org/x/exp/constraints"
)

// Registers the register machine as a possible interpreter implementation.
func init() {
	// This is the officially supported configuration, using the production
	// encoding with 16-bit program counters.
	axon.MustRegisterInterpreterFactory("axvm", factory[uint16](Config{}, ProductionEncoding{}))

	// The testing encoding places a single instruction with 64-bit
	// immediates into each code word. It is used by tools generating code.
	axon.MustRegisterInterpreterFactory("axvm-testing", factory[uint64](Config{}, TestingEncoding{}))
}

// RegisterExperimentalInterpreterConfigurations registers all experimental
// configurations of the register machine to the interpreter registry. This
// function should not be called in production code, as the resulting VMs are
// not officially supported. Registering the configurations a second time
// fails.
func RegisterExperimentalInterpreterConfigurations() error {
	var errs []error
	for _, encoding := range []string{"", "-testing"} {
		for _, mode := range []string{"-stats", "-logging"} {
			config := Config{}
			if mode == "-stats" {
				config.runner = &statisticRunner{
					stats: newStatistics(),
				}
			} else if mode == "-logging" {
				config.runner = newLogger(os.Stderr)
			}

			name := "axvm" + encoding + mode
			var err error
			if encoding == "" {
				err = axon.RegisterInterpreterFactory(name, factory[uint16](config, ProductionEncoding{}))
			} else {
				err = axon.RegisterInterpreterFactory(name, factory[uint64](config, TestingEncoding{}))
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// factory creates interpreter factories for a base configuration. A Config
// handed to the factory overrides the cycle limit and the trace output.
// Statistics collecting configurations do not support a trace output.
func factory[A constraints.Unsigned](base Config, encoding Encoding[A]) axon.InterpreterFactory {
	return func(config any) (axon.Interpreter, error) {
		cfg := base
		switch c := config.(type) {
		case nil:
		case Config:
			cfg.MaxCycles = c.MaxCycles
			if c.Log != nil {
				if _, ok := cfg.runner.(*statisticRunner); ok {
					return nil, fmt.Errorf("invalid configuration: statistics runs do not support a log")
				}
				cfg.Log = c.Log
				cfg.runner = nil
			}
		default:
			return nil, fmt.Errorf("unsupported configuration type %T", config)
		}
		return NewVm(cfg, encoding)
	}
}

type Config struct {
	// MaxCycles limits the number of cycles of a run; zero disables the
	// limit. Runs exceeding it fail with ErrCycleLimitExceeded.
	MaxCycles uint64
	// Log receives one line per retired cycle if set.
	Log    io.Writer
	runner runner
}

// Vm is a register machine interpreter. The type parameter is the width of
// program counters and immediates of its encoding.
type Vm[A constraints.Unsigned] struct {
	config   Config
	encoding Encoding[A]
}

func NewVm[A constraints.Unsigned](config Config, encoding Encoding[A]) (*Vm[A], error) {
	if encoding == nil {
		return nil, fmt.Errorf("invalid configuration: missing encoding")
	}
	if config.Log != nil && config.runner == nil {
		config.runner = newLogger(config.Log)
	}
	return &Vm[A]{config: config, encoding: encoding}, nil
}

func (v *Vm[A]) Run(params axon.Parameters) (axon.Result, error) {
	return run(v.config, v.encoding, params, nil)
}

// RunWithTracer is like Run but reports every cycle to the given tracer.
func (v *Vm[A]) RunWithTracer(params axon.Parameters, tracer Tracer[A]) (axon.Result, error) {
	return run(v.config, v.encoding, params, tracer)
}

// Encoding returns the instruction encoding of the machine.
func (v *Vm[A]) Encoding() Encoding[A] {
	return v.encoding
}

func (v *Vm[A]) DumpProfile() {
	if statsRunner, ok := v.config.runner.(*statisticRunner); ok {
		fmt.Print(statsRunner.getSummary())
	}
}

func (v *Vm[A]) ResetProfile() {
	if statsRunner, ok := v.config.runner.(*statisticRunner); ok {
		statsRunner.reset()
	}
}
