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
	"github.com/Fantom-foundation/Axon/go/axon"
	"golang.org/x/exp/constraints"
)

//go:generate mockgen -source tracer.go -destination tracer_mock.go -package axvm

// Tracer observes the execution of a run. All four hooks are called exactly
// once per cycle in declaration order, including cycles that are skipped by
// their condition or end in a panic. Tracers must not modify the state or
// the memory they are handed.
type Tracer[A constraints.Unsigned] interface {
	BeforeDecoding(state *State[A], memory axon.Memory)
	AfterDecoding(state *State[A], data AfterDecodingData[A], memory axon.Memory)
	BeforeExecution(state *State[A], data BeforeExecutionData[A], memory axon.Memory)
	AfterExecution(state *State[A], data AfterExecutionData[A], memory axon.Memory)
}

type AfterDecodingData[A constraints.Unsigned] struct {
	Cycle uint64
	Pc    A
	// RawHeader is the undecoded header of the instruction; zero while an
	// exception is pending.
	RawHeader        uint32
	Instruction      Instruction[A]
	Price            axon.Ergs
	Skipped          bool
	PendingException bool
}

type BeforeExecutionData[A constraints.Unsigned] struct {
	Cycle       uint64
	Instruction Instruction[A]
	// Src0 and Src1 are the operands after an optional swap.
	Src0 axon.PrimitiveValue
	Src1 axon.PrimitiveValue
	// Dst0Location is nil if the result goes to a register.
	Dst0Location *axon.MemoryLocation
	NextPc       A
}

type AfterExecutionData[A constraints.Unsigned] struct {
	Cycle       uint64
	Instruction Instruction[A]
	// Panicked is set if the cycle entered the shared panic path.
	Panicked bool
}

// NoopTracer ignores all events.
type NoopTracer[A constraints.Unsigned] struct{}

func (NoopTracer[A]) BeforeDecoding(*State[A], axon.Memory)                          {}
func (NoopTracer[A]) AfterDecoding(*State[A], AfterDecodingData[A], axon.Memory)     {}
func (NoopTracer[A]) BeforeExecution(*State[A], BeforeExecutionData[A], axon.Memory) {}
func (NoopTracer[A]) AfterExecution(*State[A], AfterExecutionData[A], axon.Memory)   {}
