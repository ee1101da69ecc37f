// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package axon

import (
	"fmt"

	"github.com/holiman/uint256"
)

//go:generate mockgen -source interpreter.go -destination interpreter_mock.go -package axon

// Interpreter is a component capable of executing bytecode of the register
// machine. To obtain an Interpreter instance, client code should use
// NewInterpreter() provided by the registry file in this package.
type Interpreter interface {
	// Run executes the code provided by the parameters and returns the
	// processing result. The resulting error is nil whenever the code was
	// correctly executed, even if execution ended in a revert or a panic.
	// The error is not nil if a backend failed or the interpreter could not
	// process the program. In such a case the result is undefined. Runs with
	// an unsupported ISA version fail with ErrUnsupportedISAVersion.
	// Interpreters are required to be thread-safe. Thus, multiple runs may be
	// conducted in parallel as long as they do not share backends.
	Run(Parameters) (Result, error)
}

// ProfilingInterpreter is an optional extension to the Interpreter interface
// above which may be implemented by interpreters collecting statistical data
// on their executions.
type ProfilingInterpreter interface {
	Interpreter

	// ResetProfile resets the operation statistic collected by the underlying
	// Interpreter implementation. It should not be called while running
	// operations on the Interpreter in parallel.
	ResetProfile()

	// DumpProfile prints a snapshot of the profiling data collected since the
	// last reset to stdout.
	DumpProfile()
}

// Parameters summarizes the list of input parameters required for executing
// code.
type Parameters struct {
	ISAVersion ISAVersion
	// Code is the program, one entry per 256-bit code word. It is loaded
	// into the code page of the entry frame.
	Code []uint256.Int
	// Calldata is placed into the calldata page and handed to the program
	// as a fat pointer in r1.
	Calldata []byte
	// Address the code is executed at. Addresses in the kernel space run in
	// kernel mode.
	Address Address
	Caller  Address
	Ergs    Ergs
	// ErgsPerPubdata is reported to programs through the meta context value.
	ErgsPerPubdata uint32
	// DefaultAccountCodeHash is decommitted for far calls to addresses
	// without deployed code.
	DefaultAccountCodeHash Hash
	// TxNumberInBlock is stamped on every emitted log query.
	TxNumberInBlock uint16
	Backends        Backends
}

// Status summarizes how a run ended.
type Status byte

const (
	StatusOk     Status = iota // < the entry frame returned
	StatusRevert               // < the entry frame reverted
	StatusPanic                // < the entry frame panicked
)

func (s Status) String() string {
	switch s {
	case StatusOk:
		return "ok"
	case StatusRevert:
		return "revert"
	case StatusPanic:
		return "panic"
	}
	return fmt.Sprintf("Status(%d)", s)
}

// Result summarizes the outcome of a run.
type Result struct {
	Status   Status
	Output   []byte
	ErgsLeft Ergs
	Cycles   uint64
}
