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
	"github.com/Fantom-foundation/Axon/go/interpreter/axvm"
)

// This example represents the worst case for very short programs: the
// argument is read through the calldata pointer, written to the heap, which
// grows it, and returned as a non-empty output.
func GetStaticOverheadExample() Example {
	return exampleSpec{
		Name: "static_overhead",
		program: func(constants uint64) axvm.Code[uint64] {
			code := axvm.Code[uint64]{
				{Variant: readArg, Src0: 1, Dst0: 2},
			}
			return append(code, returnWord(2, constants)...)
		},
		reference: StaticOverheadRef,
	}.build()
}

func StaticOverheadRef(x int) int {
	return x
}
