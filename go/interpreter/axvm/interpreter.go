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
	"golang.org/x/exp/constraints"
)

// status is enumeration of the execution state of an interpreter run.
type status byte

const (
	statusRunning  status = iota // < all fine, instructions are processed
	statusReturned               // < the entry frame returned
	statusReverted               // < the entry frame reverted
	statusPanicked               // < the entry frame panicked
)

// Memory accesses of a cycle are ordered by the offset of their timestamp
// relative to the start of the cycle.
const (
	codeReadTimestampDelta   axon.Timestamp = 0
	srcReadTimestampDelta    axon.Timestamp = 1
	dstWriteTimestampDelta   axon.Timestamp = 2
	sideEffectTimestampDelta axon.Timestamp = 3
)

// context is the execution environment of an interpreter run. It contains
// the machine state together with the inputs and collaborators of the run.
// For each run a new context is created.
type context[A constraints.Unsigned] struct {
	State[A]

	// Inputs
	params   axon.Parameters
	encoding Encoding[A]
	table    *isa.Table
	tracer   Tracer[A]

	// Configuration
	maxCycles  uint64
	panicIndex uint16

	// Outcome, set when the entry frame returns
	status status
	output []byte

	last cycleSummary
}

// cycleSummary describes the most recently retired cycle. It is consumed by
// runners collecting logs and statistics.
type cycleSummary struct {
	pc       uint64
	index    uint16
	variant  isa.OpcodeVariant
	ergs     axon.Ergs
	r1       axon.PrimitiveValue
	skipped  bool
	panicked bool
}

// prestate holds the resolved operands of an instruction.
type prestate[A constraints.Unsigned] struct {
	src0   axon.PrimitiveValue
	src1   axon.PrimitiveValue
	dst0   *axon.MemoryLocation
	nextPc A
}

func newContext[A constraints.Unsigned](
	config Config,
	encoding Encoding[A],
	params axon.Parameters,
	tracer Tracer[A],
) (*context[A], error) {
	table, err := isa.GetTable(params.ISAVersion)
	if err != nil {
		return nil, err
	}
	b := params.Backends
	if b.Memory == nil || b.Storage == nil || b.Events == nil || b.Precompiles == nil || b.Decommitter == nil {
		return nil, errMissingBackend
	}
	if uint64(len(params.Code))*uint64(encoding.InstructionsPerWord()) > uint64(PanicPc[A]()) {
		return nil, fmt.Errorf("%w: %d words", errCodeTooLarge, len(params.Code))
	}
	if len(params.Calldata) > isa.MaxHeapBound {
		return nil, fmt.Errorf("%w: %d bytes", errCalldataTooLarge, len(params.Calldata))
	}
	if tracer == nil {
		tracer = NoopTracer[A]{}
	}
	panicIndex, _ := table.CanonicalIndex(isa.PanicVariant)

	c := &context[A]{
		params:     params,
		encoding:   encoding,
		table:      table,
		tracer:     tracer,
		maxCycles:  config.MaxCycles,
		panicIndex: panicIndex,
	}
	c.timestamp = isa.StartingTimestamp
	c.ergsPerPubdata = params.ErgsPerPubdata
	c.txNumberInBlock = params.TxNumberInBlock

	for i := range params.Code {
		if _, err := b.Memory.ExecuteQuery(0, axon.MemoryQuery{
			Location: axon.MemoryLocation{Type: axon.MemoryCode, Page: isa.BootloaderCodePage, Index: uint32(i)},
			Value:    axon.PrimitiveValue{Value: params.Code[i]},
			IsWrite:  true,
		}); err != nil {
			return nil, fmt.Errorf("failed to load code: %w", err)
		}
	}
	if err := axon.WriteMemoryBytes(b.Memory, 0, 0, axon.MemoryHeap, isa.BootloaderCalldataPage, 0, params.Calldata); err != nil {
		return nil, fmt.Errorf("failed to load calldata: %w", err)
	}
	calldata := isa.FatPointer{
		Page:   uint32(isa.BootloaderCalldataPage),
		Length: uint32(len(params.Calldata)),
	}.ToWord()
	c.registers[1] = axon.NewPointer(&calldata)

	c.callstack.push(Frame[A]{
		This:        params.Address,
		Caller:      params.Caller,
		CodeAddress: params.Address,
		Sp:          isa.InitialSpOnFarCall,
		BasePage:    isa.BootloaderBasePage,
		CodePage:    isa.BootloaderCodePage,
		Ergs:        params.Ergs,
		KernelMode:  isa.IsKernelAddress(params.Address),
	})
	b.Storage.StartFrame(c.timestamp)
	b.Events.StartFrame(c.timestamp)
	return c, nil
}

// --- Interpreter ---

// stepper is the view of a run consumed by runners.
type stepper interface {
	// step executes a single cycle.
	step() (status, error)
	// lastCycle summarizes the cycle executed by the last step.
	lastCycle() cycleSummary
}

type runner interface {
	// run executes cycles until the run terminates. It returns the final
	// status of the run:
	// - Any error returned by a step aborts the run and is forwarded.
	// - Otherwise the status is the one reported by the last step.
	run(stepper) (status, error)
}

func run[A constraints.Unsigned](
	config Config,
	encoding Encoding[A],
	params axon.Parameters,
	tracer Tracer[A],
) (axon.Result, error) {
	ctxt, err := newContext(config, encoding, params, tracer)
	if err != nil {
		return axon.Result{}, err
	}

	runner := config.runner
	if runner == nil {
		runner = vanillaRunner{}
	}
	status, err := runner.run(ctxt)
	if err != nil {
		return axon.Result{}, err
	}
	return ctxt.result(status)
}

func (c *context[A]) result(status status) (axon.Result, error) {
	res := axon.Result{
		Output:   c.output,
		ErgsLeft: c.callstack.frames[0].Ergs,
		Cycles:   c.cycle,
	}
	switch status {
	case statusReturned:
		res.Status = axon.StatusOk
	case statusReverted:
		res.Status = axon.StatusRevert
	case statusPanicked:
		res.Status = axon.StatusPanic
	default:
		return axon.Result{}, fmt.Errorf("unexpected status %d at end of run", status)
	}
	return res, nil
}

type vanillaRunner struct{}

func (r vanillaRunner) run(s stepper) (status, error) {
	for {
		status, err := s.step()
		if err != nil || status != statusRunning {
			return status, err
		}
	}
}

func (c *context[A]) lastCycle() cycleSummary {
	return c.last
}

// step executes a single cycle: fetch, decode, charge, resolve, execute.
func (c *context[A]) step() (status, error) {
	if c.status != statusRunning {
		return c.status, errRunTerminated
	}
	if c.maxCycles > 0 && c.cycle >= c.maxCycles {
		return statusRunning, ErrCycleLimitExceeded
	}
	memory := c.params.Backends.Memory

	c.tracer.BeforeDecoding(&c.State, memory)

	frame := c.callstack.current()
	pc := frame.Pc
	pending := c.pendingException
	var header uint32
	var instruction Instruction[A]
	var price axon.Ergs
	if pending {
		instruction = Instruction[A]{Index: c.panicIndex, Variant: isa.PanicVariant}
	} else {
		location := axon.MemoryLocation{
			Type:  axon.MemoryCode,
			Page:  frame.CodePage,
			Index: c.encoding.CodeWordIndex(pc),
		}
		word, err := c.readMemory(location, codeReadTimestampDelta)
		if err != nil {
			return statusRunning, err
		}
		var imm0, imm1 A
		header, imm0, imm1 = c.encoding.Unpack(&word.Value, pc)
		instruction = decodeInstruction(c.table, header, imm0, imm1)
		price = c.table.Price(instruction.Index)
	}
	skipped := !instruction.Condition.Holds(c.flags.LessThanOrOverflow, c.flags.Equal, c.flags.GreaterThan)

	c.tracer.AfterDecoding(&c.State, AfterDecodingData[A]{
		Cycle:            c.cycle,
		Pc:               pc,
		RawHeader:        header,
		Instruction:      instruction,
		Price:            price,
		Skipped:          skipped,
		PendingException: pending,
	}, memory)

	execute := false
	if frame.Ergs < price {
		frame.Ergs = 0
		c.setShorthandPanic()
	} else {
		frame.Ergs -= price
		opcode := instruction.Variant.Opcode
		switch {
		case skipped:
			frame.Pc = pc + 1
		case opcode.IsKernelOnly() && !frame.KernelMode:
			c.setShorthandPanic()
		case !opcode.IsAllowedInStaticContext() && frame.Static:
			c.setShorthandPanic()
		default:
			execute = true
		}
	}

	var operands prestate[A]
	if execute {
		var err error
		if operands, err = c.resolveOperands(&instruction); err != nil {
			return statusRunning, err
		}
	}
	c.tracer.BeforeExecution(&c.State, BeforeExecutionData[A]{
		Cycle:        c.cycle,
		Instruction:  instruction,
		Src0:         operands.src0,
		Src1:         operands.src1,
		Dst0Location: operands.dst0,
		NextPc:       operands.nextPc,
	}, memory)

	if execute {
		if err := c.execute(&instruction, &operands); err != nil {
			return statusRunning, err
		}
	}
	panicked := c.pendingException

	c.tracer.AfterExecution(&c.State, AfterExecutionData[A]{
		Cycle:       c.cycle,
		Instruction: instruction,
		Panicked:    panicked,
	}, memory)

	c.last = cycleSummary{
		pc:       uint64(pc),
		index:    instruction.Index,
		variant:  instruction.Variant,
		ergs:     c.callstack.current().Ergs,
		r1:       c.registers[1],
		skipped:  skipped,
		panicked: panicked,
	}
	c.cycle++
	c.timestamp += isa.TimeDeltaPerCycle
	return c.status, nil
}

// resolveOperands fetches the source operands and locates the destination of
// an instruction. The source operand is resolved before the destination, so
// a pop followed by a push observe the stack pointer in that order.
func (c *context[A]) resolveOperands(instruction *Instruction[A]) (prestate[A], error) {
	frame := c.callstack.current()
	variant := instruction.Variant
	resolver := newOperandResolver(frame)
	res := prestate[A]{nextPc: frame.Pc + 1}

	src0 := c.readRegister(instruction.Src0)
	if variant.Src0.Mode == isa.UseImm16Only {
		src0 = axon.NewInteger(uint64(instruction.Imm0))
	} else if location, ok := resolver.resolve(src0, instruction.Imm0, variant.Src0.Mode, false); ok {
		value, err := c.readMemory(location, srcReadTimestampDelta)
		if err != nil {
			return res, err
		}
		src0 = value
	}
	if location, ok := resolver.resolve(c.readRegister(instruction.Dst0), instruction.Imm1, variant.Dst0.Mode, true); ok {
		res.dst0 = &location
	}
	frame.Sp = resolver.sp

	src1 := c.readRegister(instruction.Src1)
	if variant.SwapOperands() {
		src0, src1 = src1, src0
	}
	res.src0, res.src1 = src0, src1
	return res, nil
}

// execute dispatches an instruction to the handler of its family.
func (c *context[A]) execute(instruction *Instruction[A], operands *prestate[A]) error {
	switch instruction.Variant.Opcode.Family {
	case isa.Nop:
		return opNop(c, instruction, operands)
	case isa.Add:
		return opAdd(c, instruction, operands)
	case isa.Sub:
		return opSub(c, instruction, operands)
	case isa.Mul:
		return opMul(c, instruction, operands)
	case isa.Div:
		return opDiv(c, instruction, operands)
	case isa.Jump:
		return opJump(c, instruction, operands)
	case isa.Context:
		return opContext(c, instruction, operands)
	case isa.Shift:
		return opShift(c, instruction, operands)
	case isa.Binop:
		return opBinop(c, instruction, operands)
	case isa.Ptr:
		return opPtr(c, instruction, operands)
	case isa.NearCall:
		return opNearCall(c, instruction, operands)
	case isa.Log:
		return opLog(c, instruction, operands)
	case isa.FarCall:
		return opFarCall(c, instruction, operands)
	case isa.Ret:
		return opRet(c, instruction, operands)
	case isa.UMA:
		return opUMA(c, instruction, operands)
	}
	// the invalid instruction burns all ergs before getting here
	c.setShorthandPanic()
	return nil
}

func (c *context[A]) readMemory(location axon.MemoryLocation, delta axon.Timestamp) (axon.PrimitiveValue, error) {
	query, err := c.params.Backends.Memory.ExecuteQuery(uint32(c.cycle), axon.MemoryQuery{
		Timestamp: c.timestamp + delta,
		Location:  location,
	})
	if err != nil {
		return axon.PrimitiveValue{}, fmt.Errorf("failed to read %v: %w", location, err)
	}
	return query.Value, nil
}

func (c *context[A]) writeMemory(location axon.MemoryLocation, value axon.PrimitiveValue, delta axon.Timestamp) error {
	_, err := c.params.Backends.Memory.ExecuteQuery(uint32(c.cycle), axon.MemoryQuery{
		Timestamp: c.timestamp + delta,
		Location:  location,
		Value:     value,
		IsWrite:   true,
	})
	if err != nil {
		return fmt.Errorf("failed to write %v: %w", location, err)
	}
	return nil
}

// writeDst0 stores the result of an instruction in its first destination.
func (c *context[A]) writeDst0(instruction *Instruction[A], operands *prestate[A], value axon.PrimitiveValue) error {
	if operands.dst0 != nil {
		return c.writeMemory(*operands.dst0, value, dstWriteTimestampDelta)
	}
	c.writeRegister(instruction.Dst0, value)
	return nil
}

// growBound extends a heap bound of the frame to end, charging the growth to
// the frame. It reports false if the frame can not pay for the growth, in
// which case its ergs are burned.
func growBound[A constraints.Unsigned](frame *Frame[A], bound *uint32, end uint32) bool {
	if end <= *bound {
		return true
	}
	cost := axon.Ergs(end-*bound) * isa.MemoryGrowthErgsPerByte
	if frame.Ergs < cost {
		frame.Ergs = 0
		return false
	}
	frame.Ergs -= cost
	*bound = end
	return true
}

// passedPointer derives the fat pointer handed to another frame through a
// far call or a far return. Heap modes describe a fresh slice of the heap or
// aux heap of the frame, growing its bound; the forwarding mode narrows an
// existing pointer. The boolean result is false for invalid pointers.
func passedPointer[A constraints.Unsigned](frame *Frame[A], value axon.PrimitiveValue, ptr isa.FatPointer, mode isa.ForwardingMode) (isa.FatPointer, bool) {
	switch mode {
	case isa.UseHeap, isa.UseAuxHeap:
		if ptr.Offset != 0 {
			return ptr, false
		}
		end, overflow := ptr.End()
		if overflow || end > isa.MaxHeapBound {
			return ptr, false
		}
		bound, page := &frame.HeapBound, frame.heapPage()
		if mode == isa.UseAuxHeap {
			bound, page = &frame.AuxHeapBound, frame.auxHeapPage()
		}
		if !growBound(frame, bound, end) {
			return ptr, false
		}
		ptr.Page = uint32(page)
		return ptr, true
	case isa.ForwardFatPointer:
		if !value.IsPointer || !ptr.IsInBounds() {
			return ptr, false
		}
		if _, overflow := ptr.End(); overflow {
			return ptr, false
		}
		return ptr.Narrow(), true
	}
	return ptr, false
}

// readPointee reads the bytes a fat pointer refers to, from start to
// start+length.
func (c *context[A]) readPointee(ptr isa.FatPointer) ([]byte, error) {
	return axon.ReadMemoryBytes(c.params.Backends.Memory, uint32(c.cycle), c.timestamp+sideEffectTimestampDelta, axon.MemoryRange{
		Type:   axon.MemoryFatPointer,
		Page:   axon.MemoryPage(ptr.Page),
		Offset: ptr.Start,
		Length: ptr.Length,
	})
}

func (s status) String() string {
	switch s {
	case statusRunning:
		return "running"
	case statusReturned:
		return "returned"
	case statusReverted:
		return "reverted"
	case statusPanicked:
		return "panicked"
	}
	return fmt.Sprintf("status(%d)", byte(s))
}
