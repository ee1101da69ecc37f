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
	"fmt"

	"github.com/Fantom-foundation/Axon/go/axon"
	"golang.org/x/exp/constraints"
)

// CycleRecord is the per-cycle view of a run needed to replay it: the
// decoded instruction, its operands and the effects on the frame.
type CycleRecord[A constraints.Unsigned] struct {
	Cycle            uint64
	Timestamp        axon.Timestamp
	Pc               A
	RawHeader        uint32
	Instruction      Instruction[A]
	Skipped          bool
	PendingException bool
	Src0             axon.PrimitiveValue
	Src1             axon.PrimitiveValue
	Dst0Location     *axon.MemoryLocation
	ErgsBefore       axon.Ergs
	ErgsAfter        axon.Ergs
	Flags            Flags
	CallDepth        int
	Panicked         bool
}

func (r CycleRecord[A]) String() string {
	return fmt.Sprintf("%d@%d pc=%d %v ergs=%d->%d flags=%v depth=%d panic=%t",
		r.Cycle, r.Timestamp, uint64(r.Pc), r.Instruction, r.ErgsBefore, r.ErgsAfter, r.Flags, r.CallDepth, r.Panicked)
}

// Recorder is a tracer collecting a CycleRecord for every cycle of a run.
// A Recorder may be reused for several runs; records accumulate until Reset
// is called.
type Recorder[A constraints.Unsigned] struct {
	records []CycleRecord[A]
	current CycleRecord[A]
}

func (r *Recorder[A]) BeforeDecoding(state *State[A], _ axon.Memory) {
	r.current = CycleRecord[A]{
		Cycle:      state.Cycle(),
		Timestamp:  state.Timestamp(),
		ErgsBefore: state.Ergs(),
	}
}

func (r *Recorder[A]) AfterDecoding(_ *State[A], data AfterDecodingData[A], _ axon.Memory) {
	r.current.Pc = data.Pc
	r.current.RawHeader = data.RawHeader
	r.current.Instruction = data.Instruction
	r.current.Skipped = data.Skipped
	r.current.PendingException = data.PendingException
}

func (r *Recorder[A]) BeforeExecution(_ *State[A], data BeforeExecutionData[A], _ axon.Memory) {
	r.current.Src0 = data.Src0
	r.current.Src1 = data.Src1
	if data.Dst0Location != nil {
		location := *data.Dst0Location
		r.current.Dst0Location = &location
	}
}

func (r *Recorder[A]) AfterExecution(state *State[A], data AfterExecutionData[A], _ axon.Memory) {
	r.current.ErgsAfter = state.Ergs()
	r.current.Flags = state.Flags()
	r.current.CallDepth = state.CallDepth()
	r.current.Panicked = data.Panicked
	r.records = append(r.records, r.current)
}

// Records returns the records collected so far.
func (r *Recorder[A]) Records() []CycleRecord[A] {
	return r.records
}

func (r *Recorder[A]) Reset() {
	r.records = nil
}
