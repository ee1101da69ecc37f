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

	"github.com/Fantom-foundation/Axon/go/axon"
	"github.com/Fantom-foundation/Axon/go/axon/isa"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"golang.org/x/exp/constraints"
)

// Registers passed on to the callee of a system far call.
const (
	firstSystemCallRegister = 3
	lastSystemCallRegister  = 12
)

func opNearCall[A constraints.Unsigned](c *context[A], instruction *Instruction[A], operands *prestate[A]) error {
	caller := c.callstack.current()
	caller.Pc = operands.nextPc

	abi := isa.NearCallABIFromWord(&operands.src0.Value)
	passed := axon.Ergs(abi.ErgsPassed)
	if passed == 0 || passed > caller.Ergs {
		passed = caller.Ergs
	}
	caller.Ergs -= passed

	callee := *caller
	callee.Pc = instruction.Imm0
	callee.ExceptionHandler = instruction.Imm1
	callee.Ergs = passed
	callee.IsLocal = true
	c.callstack.push(callee)
	c.resetFlags()
	return nil
}

func opFarCall[A constraints.Unsigned](c *context[A], instruction *Instruction[A], operands *prestate[A]) error {
	caller := c.callstack.current()
	caller.Pc = operands.nextPc

	backends := c.params.Backends
	cycle := uint32(c.cycle)
	timestamp := c.timestamp + sideEffectTimestampDelta
	variant := instruction.Variant
	abi := isa.FarCallABIFromWord(&operands.src0.Value)
	address := axon.WordToAddress(&operands.src1.Value)

	calldata, ok := passedPointer(caller, operands.src0, abi.Pointer, abi.ForwardingMode)
	failed := !ok

	// the code hash of the callee is kept by a system contract
	res, err := backends.Storage.ExecuteQuery(cycle, axon.LogQuery{
		Timestamp:       timestamp,
		TxNumberInBlock: c.txNumberInBlock,
		AuxByte:         axon.StorageAuxByte,
		Address:         isa.AddressAccountCodeStorage,
		Key:             *axon.AddressToWord(address),
	})
	if err != nil {
		return fmt.Errorf("failed to read code hash of %v: %w", address, err)
	}
	hash := axon.Hash(res.ReadValue.Bytes32())
	if hash == (axon.Hash{}) {
		hash = c.params.DefaultAccountCodeHash
	}
	if !isValidCodeHash(hash, abi.ConstructorCall) {
		failed = true
	}
	hash[1] = axon.CodeHashMarkerConstructed

	basePage := isa.StartingBasePage + axon.MemoryPage(c.numFarCalls*isa.NewMemoryPagesPerFarCall)
	c.numFarCalls++

	if !failed {
		query, err := backends.Decommitter.PrepareToDecommit(cycle, axon.DecommittmentQuery{
			Hash:      hash,
			Timestamp: timestamp,
			Page:      isa.CodePageFromBase(basePage),
		})
		switch {
		case errors.Is(err, axon.ErrCodeNotFound):
			failed = true
		case err != nil:
			return fmt.Errorf("failed to prepare decommitment of %v: %w", hash, err)
		default:
			cost := axon.Ergs(0)
			if query.IsFresh {
				cost = axon.Ergs(query.NumWords) * isa.ErgsPerCodeWordDecommittment
			}
			if caller.Ergs < cost {
				caller.Ergs = 0
				failed = true
			} else {
				caller.Ergs -= cost
				if err := backends.Decommitter.DecommitIntoMemory(cycle, query, backends.Memory); err != nil {
					return fmt.Errorf("failed to decommit %v: %w", hash, err)
				}
			}
		}
	}

	passed := axon.Ergs(0)
	if !failed {
		passed = min(axon.Ergs(abi.ErgsPassed), caller.Ergs-caller.Ergs/isa.FarCallErgsReservationDenominator)
		caller.Ergs -= passed
	}

	this, sender := address, caller.This
	switch isa.FarCallOp(variant.Opcode.Variant) {
	case isa.FarCallDelegate:
		this, sender = caller.This, caller.Caller
	case isa.FarCallMimic:
		sender = axon.WordToAddress(&c.registers[firstSystemCallRegister].Value)
	}
	shard := caller.ThisShardID
	if variant.Flags[isa.FarCallShardFlagIdx] {
		shard = abi.ShardID
	}

	callee := Frame[A]{
		This:             this,
		Caller:           sender,
		CodeAddress:      address,
		Sp:               isa.InitialSpOnFarCall,
		ExceptionHandler: instruction.Imm0,
		BasePage:         basePage,
		CodePage:         isa.CodePageFromBase(basePage),
		Ergs:             passed,
		KernelMode:       isa.IsKernelAddress(this),
		Static:           caller.Static || variant.Flags[isa.FarCallStaticFlagIdx],
		ContextU128:      c.contextU128,
		ThisShardID:      shard,
		CallerShardID:    caller.ThisShardID,
		CodeShardID:      shard,
	}
	c.contextU128 = uint256.Int{}
	c.callstack.push(callee)
	backends.Storage.StartFrame(timestamp)
	backends.Events.StartFrame(timestamp)

	if failed {
		log.Debug("far call failed", "to", address, "depth", c.callstack.depth())
		c.setShorthandPanic()
		return nil
	}

	var registers [isa.RegistersCount + 1]axon.PrimitiveValue
	pointer := calldata.ToWord()
	registers[1] = axon.NewPointer(&pointer)
	flags := uint64(0)
	if abi.ConstructorCall {
		flags |= isa.CallFlagConstructor
	}
	if abi.ToSystem {
		flags |= isa.CallFlagSystem
		copy(registers[firstSystemCallRegister:lastSystemCallRegister+1], c.registers[firstSystemCallRegister:lastSystemCallRegister+1])
	}
	registers[2] = axon.NewInteger(flags)
	c.registers = registers
	c.resetFlags()

	log.Debug("far call", "to", address, "this", this, "ergs", passed, "depth", c.callstack.depth())
	return nil
}

// isValidCodeHash checks the version of a code hash and whether its
// construction marker fits the kind of call.
func isValidCodeHash(hash axon.Hash, constructorCall bool) bool {
	if hash[0] != axon.CodeHashVersion {
		return false
	}
	if constructorCall {
		return hash[1] == axon.CodeHashMarkerConstructor
	}
	return hash[1] == axon.CodeHashMarkerConstructed
}

func opRet[A constraints.Unsigned](c *context[A], instruction *Instruction[A], operands *prestate[A]) error {
	op := isa.RetOp(instruction.Variant.Opcode.Variant)
	c.pendingException = false
	if c.callstack.current().IsLocal {
		nearRet(c, instruction, op)
		return nil
	}
	return farRet(c, operands, op)
}

// nearRet returns from a local frame. Heap bounds grown by the callee stay
// grown.
func nearRet[A constraints.Unsigned](c *context[A], instruction *Instruction[A], op isa.RetOp) {
	callee := c.callstack.pop()
	caller := c.callstack.current()
	if op != isa.RetPanic {
		caller.Ergs += callee.Ergs
	}
	caller.HeapBound = callee.HeapBound
	caller.AuxHeapBound = callee.AuxHeapBound

	c.resetFlags()
	switch {
	case instruction.Variant.Flags[isa.RetToLabelFlagIdx]:
		caller.Pc = instruction.Imm0
	case op != isa.RetOk:
		caller.Pc = callee.ExceptionHandler
	}
	if op == isa.RetPanic {
		c.flags.LessThanOrOverflow = true
	}
}

// farRet returns from a far frame. Returning from the entry frame ends the
// run.
func farRet[A constraints.Unsigned](c *context[A], operands *prestate[A], op isa.RetOp) error {
	callee := c.callstack.current()

	returned := axon.NewPointer(new(uint256.Int))
	var ptr isa.FatPointer
	if op != isa.RetPanic {
		abi := isa.RetABIFromWord(&operands.src0.Value)
		var ok bool
		if ptr, ok = passedPointer(callee, operands.src0, abi.Pointer, abi.ForwardingMode); ok {
			word := ptr.ToWord()
			returned = axon.NewPointer(&word)
		} else {
			op = isa.RetPanic
		}
	}
	ergs := callee.Ergs
	if op == isa.RetPanic {
		ergs = 0
	}

	backends := c.params.Backends
	timestamp := c.timestamp + sideEffectTimestampDelta
	backends.Storage.FinishFrame(timestamp, op != isa.RetOk)
	backends.Events.FinishFrame(timestamp, op != isa.RetOk)

	c.registers = [isa.RegistersCount + 1]axon.PrimitiveValue{1: returned}
	c.resetFlags()
	if op == isa.RetPanic {
		c.flags.LessThanOrOverflow = true
	}

	if c.callstack.depth() == 1 {
		callee.Ergs = ergs
		switch op {
		case isa.RetOk:
			c.status = statusReturned
		case isa.RetRevert:
			c.status = statusReverted
		default:
			c.status = statusPanicked
		}
		if op != isa.RetPanic {
			output, err := c.readPointee(ptr)
			if err != nil {
				return fmt.Errorf("failed to read return data: %w", err)
			}
			c.output = output
		}
		log.Debug("run finished", "status", c.status, "ergs", ergs, "cycles", c.cycle+1)
		return nil
	}

	popped := c.callstack.pop()
	caller := c.callstack.current()
	caller.Ergs += ergs
	if op != isa.RetOk {
		caller.Pc = popped.ExceptionHandler
	}
	log.Debug("far return", "from", popped.This, "status", op, "ergs", ergs, "depth", c.callstack.depth())
	return nil
}
