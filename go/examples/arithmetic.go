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
	"github.com/Fantom-foundation/Axon/go/axon/isa"
	"github.com/Fantom-foundation/Axon/go/interpreter/axvm"
)

// GetArithmeticExample computes the sum of the squares of 1..n.
func GetArithmeticExample() Example {
	return exampleSpec{
		Name: "arithmetic",
		program: func(constants uint64) axvm.Code[uint64] {
			code := axvm.Code[uint64]{
				{Variant: readArg, Src0: 1, Dst0: 2},         // r2 = n
				{Variant: addImm, Imm0: 1, Dst0: 4},          // r4 = i = 1
				{Variant: compare, Src0: 4, Src1: 2},         // loop: i - n
				{Variant: jump, Imm0: 8, Condition: isa.Gt},  // exit if i > n
				{Variant: mul, Src0: 4, Src1: 4, Dst0: 5},    // r5 = i * i
				{Variant: add, Src0: 3, Src1: 5, Dst0: 3},    // r3 += r5
				{Variant: addImm, Imm0: 1, Src1: 4, Dst0: 4}, // i++
				{Variant: jump, Imm0: 2},                     // next iteration
			}
			return append(code, returnWord(3, constants)...)
		},
		reference: arithmetic,
	}.build()
}

func arithmetic(n int) int {
	// the program computes modulo 2^256, of which only the low 32 bits are
	// returned
	var result uint32
	for i := uint32(1); i <= uint32(n); i++ {
		result += i * i
	}
	return int(result)
}

// GetFibExample computes the n-th Fibonacci number iteratively.
func GetFibExample() Example {
	return exampleSpec{
		Name: "fib",
		program: func(constants uint64) axvm.Code[uint64] {
			code := axvm.Code[uint64]{
				{Variant: readArg, Src0: 1, Dst0: 2},         // r2 = n
				{Variant: addImm, Imm0: 1, Dst0: 4},          // r3 = a = 0, r4 = b = 1
				{Variant: compare, Src0: 5, Src1: 2},         // loop: i - n
				{Variant: jump, Imm0: 9, Condition: isa.Ge},  // exit if i >= n
				{Variant: add, Src0: 3, Src1: 4, Dst0: 6},    // t = a + b
				{Variant: add, Src0: 4, Dst0: 3},             // a = b
				{Variant: add, Src0: 6, Dst0: 4},             // b = t
				{Variant: addImm, Imm0: 1, Src1: 5, Dst0: 5}, // i++
				{Variant: jump, Imm0: 2},                     // next iteration
			}
			return append(code, returnWord(3, constants)...)
		},
		reference: fib,
	}.build()
}

func fib(n int) int {
	var a, b uint32 = 0, 1
	for i := 0; i < n; i++ {
		a, b = b, a+b
	}
	return int(a)
}
