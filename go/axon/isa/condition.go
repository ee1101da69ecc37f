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

import "fmt"

// Condition is the predicate over the flags guarding an instruction.
type Condition byte

const (
	Always Condition = iota
	Gt
	Lt
	Eq
	Ge
	Le
	Ne
	GtOrLt
	numConditions int = iota
)

// Holds evaluates the condition against the flags of the VM.
func (c Condition) Holds(ltOrOverflow, eq, gt bool) bool {
	switch c {
	case Always:
		return true
	case Gt:
		return gt
	case Lt:
		return ltOrOverflow
	case Eq:
		return eq
	case Ge:
		return gt || eq
	case Le:
		return ltOrOverflow || eq
	case Ne:
		return !eq
	case GtOrLt:
		return gt || ltOrOverflow
	}
	return false
}

func (c Condition) String() string {
	switch c {
	case Always:
		return ""
	case Gt:
		return "gt"
	case Lt:
		return "lt"
	case Eq:
		return "eq"
	case Ge:
		return "ge"
	case Le:
		return "le"
	case Ne:
		return "ne"
	case GtOrLt:
		return "gtlt"
	}
	return fmt.Sprintf("Condition(%d)", byte(c))
}
