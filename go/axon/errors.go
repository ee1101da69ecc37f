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

import "fmt"

// ConstError is an error type that can be used to define immutable error
// constants, e.g. `const ErrX = ConstError("something went wrong")`.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}

const (
	// ErrCodeNotFound is reported by decommitters asked for an unknown code
	// hash. The engine treats it as an in-VM failure of the call, not as a
	// backend failure.
	ErrCodeNotFound = ConstError("code hash not found")

	// ErrUnknownPrecompile is reported by precompile processors for
	// addresses they do not serve.
	ErrUnknownPrecompile = ConstError("unknown precompile")
)

// ErrUnsupportedISAVersion is returned for runs requesting an instruction
// set version the interpreter does not implement.
type ErrUnsupportedISAVersion struct {
	Version ISAVersion
}

func (e *ErrUnsupportedISAVersion) Error() string {
	return fmt.Sprintf("unsupported ISA version %d", e.Version)
}
