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
	"github.com/Fantom-foundation/Axon/go/axon/isa"
	"github.com/holiman/uint256"
	"golang.org/x/exp/constraints"
)

// Flags are the condition flags of the machine. They are always written as a
// block.
type Flags struct {
	LessThanOrOverflow bool
	Equal              bool
	GreaterThan        bool
}

func (f Flags) String() string {
	res := []byte("---")
	if f.LessThanOrOverflow {
		res[0] = 'L'
	}
	if f.Equal {
		res[1] = 'E'
	}
	if f.GreaterThan {
		res[2] = 'G'
	}
	return string(res)
}

// Frame is an entry of the call stack. Far frames own a fresh set of memory
// pages; local frames created by near calls share the pages of the frame
// they were called from.
type Frame[A constraints.Unsigned] struct {
	This        axon.Address
	Caller      axon.Address
	CodeAddress axon.Address

	Pc               A
	Sp               A
	ExceptionHandler A

	BasePage axon.MemoryPage
	CodePage axon.MemoryPage

	Ergs         axon.Ergs
	HeapBound    uint32
	AuxHeapBound uint32

	KernelMode bool
	Static     bool
	IsLocal    bool

	// ContextU128 is the value set by the caller through SetContextU128.
	ContextU128 uint256.Int

	ThisShardID   uint8
	CallerShardID uint8
	CodeShardID   uint8
}

func (f *Frame[A]) stackPage() axon.MemoryPage {
	return isa.StackPageFromBase(f.BasePage)
}

func (f *Frame[A]) heapPage() axon.MemoryPage {
	return isa.HeapPageFromBase(f.BasePage)
}

func (f *Frame[A]) auxHeapPage() axon.MemoryPage {
	return isa.AuxHeapPageFromBase(f.BasePage)
}

func (f Frame[A]) String() string {
	kind := "far"
	if f.IsLocal {
		kind = "near"
	}
	return fmt.Sprintf("%s{this=%v, pc=%d, sp=%d, ergs=%d, base=%d}", kind, f.This, f.Pc, f.Sp, f.Ergs, f.BasePage)
}

// State is the machine state observed by tracers. It is only valid for the
// duration of a hook call.
type State[A constraints.Unsigned] struct {
	// registers[0] is the zero register and never written.
	registers        [isa.RegistersCount + 1]axon.PrimitiveValue
	flags            Flags
	callstack        callstack[A]
	cycle            uint64
	timestamp        axon.Timestamp
	pendingException bool

	// contextU128 is handed to the next far call.
	contextU128     uint256.Int
	ergsPerPubdata  uint32
	txNumberInBlock uint16
	numFarCalls     uint32
}

// Register returns the content of register i. Index 0 is the zero register.
func (s *State[A]) Register(i int) axon.PrimitiveValue {
	return s.registers[i]
}

func (s *State[A]) Flags() Flags {
	return s.flags
}

// Cycle returns the number of cycles retired so far.
func (s *State[A]) Cycle() uint64 {
	return s.cycle
}

// Timestamp returns the memory timestamp of the current cycle.
func (s *State[A]) Timestamp() axon.Timestamp {
	return s.timestamp
}

// PendingException reports whether the next cycle executes the panic
// instruction.
func (s *State[A]) PendingException() bool {
	return s.pendingException
}

// Frame returns a copy of the current call stack entry.
func (s *State[A]) Frame() Frame[A] {
	return *s.callstack.current()
}

func (s *State[A]) Pc() A {
	return s.callstack.current().Pc
}

func (s *State[A]) Sp() A {
	return s.callstack.current().Sp
}

func (s *State[A]) Ergs() axon.Ergs {
	return s.callstack.current().Ergs
}

// CallDepth returns the number of frames on the call stack, including local
// frames.
func (s *State[A]) CallDepth() int {
	return s.callstack.depth()
}

func (s *State[A]) ContextU128() uint256.Int {
	return s.contextU128
}

func (s *State[A]) ErgsPerPubdata() uint32 {
	return s.ergsPerPubdata
}

func (s *State[A]) TxNumberInBlock() uint16 {
	return s.txNumberInBlock
}

func (s *State[A]) resetFlags() {
	s.flags = Flags{}
}

// readRegister returns the value of register i; reads of register 0 yield an
// untagged zero.
func (s *State[A]) readRegister(i uint8) axon.PrimitiveValue {
	return s.registers[i&registerMask]
}

// writeRegister updates register i; writes to register 0 are dropped.
func (s *State[A]) writeRegister(i uint8, value axon.PrimitiveValue) {
	if i &= registerMask; i != 0 {
		s.registers[i] = value
	}
}

// setShorthandPanic transitions into the shared panic path. The current
// instruction must not perform any further mutation; the next cycle
// executes the panic instruction of the current frame.
func (s *State[A]) setShorthandPanic() {
	s.pendingException = true
	s.callstack.current().Pc = PanicPc[A]()
}

// PanicPc is the reserved program counter a frame is moved to when it
// panics.
func PanicPc[A constraints.Unsigned]() A {
	return ^A(0)
}
