// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.
package examples

import (
	"fmt"
	"math"

	"github.com/Fantom-foundation/Axon/go/axon"
	"github.com/Fantom-foundation/Axon/go/axon/isa"
	"github.com/Fantom-foundation/Axon/go/interpreter/axvm"
	"github.com/holiman/uint256"
)

// Example is an executable program with a (int)->int signature, assembled
// for both encodings of the register machine.
type Example struct {
	exampleSpec
	production []uint256.Int
	testing    []uint256.Int
}

// exampleSpec specifies a program and a reference function computing the
// same result.
type exampleSpec struct {
	Name string
	// program produces the instructions of the example; constants is the
	// code word index of the first constant.
	program   func(constants uint64) axvm.Code[uint64]
	constants []uint256.Int // appended to the returned ABI constant
	address   axon.Address  // zero for the bootloader address
	reference func(int) int
}

// Instructions shared by the example programs.
var (
	add        = isa.MustNewVariant(isa.Opcode{Family: isa.Add}, isa.UseRegOnly, isa.UseRegOnly)
	addImm     = isa.MustNewVariant(isa.Opcode{Family: isa.Add}, isa.UseImm16Only, isa.UseRegOnly)
	addCode    = isa.MustNewVariant(isa.Opcode{Family: isa.Add}, isa.UseCodePage, isa.UseRegOnly)
	compare    = isa.MustNewVariant(isa.Opcode{Family: isa.Sub}, isa.UseRegOnly, isa.UseRegOnly, true)
	mul        = isa.MustNewVariant(isa.Opcode{Family: isa.Mul}, isa.UseRegOnly, isa.UseRegOnly)
	jump       = isa.MustNewVariant(isa.Opcode{Family: isa.Jump}, isa.UseImm16Only, isa.UseRegOnly)
	readArg    = isa.MustNewVariant(isa.NewOpcode(isa.UMA, isa.UMAFatPointerRead), isa.UseRegOnly, isa.UseRegOnly)
	heapRead   = isa.MustNewVariant(isa.NewOpcode(isa.UMA, isa.UMAHeapRead), isa.UseImm16Only, isa.UseRegOnly)
	heapWrite  = isa.MustNewVariant(isa.NewOpcode(isa.UMA, isa.UMAHeapWrite), isa.UseImm16Only, isa.UseRegOnly)
	precompile = isa.MustNewVariant(isa.NewOpcode(isa.Log, isa.LogPrecompileCall), isa.UseRegOnly, isa.UseRegOnly)
	retOk      = isa.MustNewVariant(isa.NewOpcode(isa.Ret, isa.RetOk), isa.UseRegOnly, isa.UseRegOnly)
)

// returnWord ends a program returning the content of a register as a single
// word. It uses the first constant of the program.
func returnWord(register uint8, constants uint64) axvm.Code[uint64] {
	return axvm.Code[uint64]{
		{Variant: heapWrite, Src1: register},
		{Variant: addCode, Imm0: constants, Dst0: 15},
		{Variant: retOk, Src0: 15},
	}
}

var returnABI = isa.RetABI{
	Pointer:        isa.FatPointer{Length: 32},
	ForwardingMode: isa.UseHeap,
}.ToWord()

func (s exampleSpec) build() Example {
	table := isa.MustGetTable(axon.DefaultISAVersion)
	constants := append([]uint256.Int{returnABI}, s.constants...)
	numInstructions := len(s.program(0))

	testingEncoding := axvm.Encoding[uint64](axvm.TestingEncoding{})
	start := uint64(axvm.ConstantsStart(testingEncoding, numInstructions))
	testing, err := axvm.Assemble(table, testingEncoding, s.program(start), constants...)
	if err != nil {
		panic(fmt.Sprintf("failed to assemble example %s: %v", s.Name, err))
	}

	productionEncoding := axvm.Encoding[uint16](axvm.ProductionEncoding{})
	start = uint64(axvm.ConstantsStart(productionEncoding, numInstructions))
	production, err := axvm.Assemble(table, productionEncoding, narrow(s.program(start)), constants...)
	if err != nil {
		panic(fmt.Sprintf("failed to assemble example %s: %v", s.Name, err))
	}

	return Example{
		exampleSpec: s,
		production:  production,
		testing:     testing,
	}
}

// narrow converts code to 16-bit immediates. The example programs only use
// immediates fitting into 16 bits.
func narrow(code axvm.Code[uint64]) axvm.Code[uint16] {
	res := make(axvm.Code[uint16], len(code))
	for i, instruction := range code {
		res[i] = axvm.Instruction[uint16]{
			Variant:   instruction.Variant,
			Condition: instruction.Condition,
			Src0:      instruction.Src0,
			Src1:      instruction.Src1,
			Dst0:      instruction.Dst0,
			Dst1:      instruction.Dst1,
			Imm0:      uint16(instruction.Imm0),
			Imm1:      uint16(instruction.Imm1),
		}
	}
	return res
}

// Code returns the code words of the example in the given encoding.
func (e *Example) Code(testingEncoding bool) []uint256.Int {
	if testingEncoding {
		return e.testing
	}
	return e.production
}

type Result struct {
	Result   int
	UsedErgs axon.Ergs
}

// RunOn runs this example on the given interpreter, using the given
// argument. The interpreter has to use the testing encoding if
// testingEncoding is set, and the production encoding otherwise.
func (e *Example) RunOn(interpreter axon.Interpreter, backends axon.Backends, testingEncoding bool, argument int) (Result, error) {
	const initialErgs = math.MaxUint32
	address := e.address
	if address == (axon.Address{}) {
		address = isa.AddressBootloader
	}
	params := axon.Parameters{
		ISAVersion: axon.DefaultISAVersion,
		Code:       e.Code(testingEncoding),
		Calldata:   encodeArgument(argument),
		Address:    address,
		Ergs:       initialErgs,
		Backends:   backends,
	}

	res, err := interpreter.Run(params)
	if err != nil {
		return Result{}, err
	}
	if res.Status != axon.StatusOk {
		return Result{}, fmt.Errorf("unexpected status %v", res.Status)
	}

	result, err := decodeOutput(res.Output)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Result:   result,
		UsedErgs: initialErgs - res.ErgsLeft,
	}, nil
}

// RunReference runs the reference function of this example to produce the
// expected result.
func (e *Example) RunReference(argument int) int {
	return e.reference(argument)
}

// GetExamples returns all example programs.
func GetExamples() []Example {
	return []Example{
		GetStaticOverheadExample(),
		GetArithmeticExample(),
		GetFibExample(),
		GetSha3Example(),
	}
}

func encodeArgument(arg int) []byte {
	// the argument is a single big-endian word
	data := make([]byte, 32)
	data[28] = byte(arg >> 24)
	data[29] = byte(arg >> 16)
	data[30] = byte(arg >> 8)
	data[31] = byte(arg)
	return data
}

func decodeOutput(output []byte) (int, error) {
	if len(output) != 32 {
		return 0, fmt.Errorf("unexpected length of output; wanted 32, got %d", len(output))
	}
	return (int(output[28]) << 24) | (int(output[29]) << 16) | (int(output[30]) << 8) | (int(output[31]) << 0), nil
}
