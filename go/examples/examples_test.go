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
	"testing"

	"github.com/Fantom-foundation/Axon/go/axon"
	"github.com/Fantom-foundation/Axon/go/axon/isa"
	"github.com/Fantom-foundation/Axon/go/backend"
	"github.com/Fantom-foundation/Axon/go/interpreter/axvm"
)

var interpreters = map[string]bool{
	"axvm":         false,
	"axvm-testing": true,
}

func TestExamples_ComputeReferenceResults(t *testing.T) {
	for _, example := range GetExamples() {
		for name, testingEncoding := range interpreters {
			interpreter, err := axon.NewInterpreter(name)
			if err != nil {
				t.Fatalf("failed to create interpreter %s: %v", name, err)
			}
			for _, argument := range []int{0, 1, 2, 10, 100} {
				t.Run(fmt.Sprintf("%s/%s/%d", example.Name, name, argument), func(t *testing.T) {
					res, err := example.RunOn(interpreter, backend.NewInMemory().Backends(), testingEncoding, argument)
					if err != nil {
						t.Fatalf("failed to run example: %v", err)
					}
					if want, got := example.RunReference(argument), res.Result; want != got {
						t.Errorf("unexpected result, wanted %d, got %d", want, got)
					}
					if res.UsedErgs == 0 {
						t.Errorf("running the example should consume ergs")
					}
				})
			}
		}
	}
}

func TestExamples_EncodingsAgreeOnErgs(t *testing.T) {
	for _, example := range GetExamples() {
		t.Run(example.Name, func(t *testing.T) {
			used := map[string]axon.Ergs{}
			for name, testingEncoding := range interpreters {
				interpreter, err := axon.NewInterpreter(name)
				if err != nil {
					t.Fatalf("failed to create interpreter %s: %v", name, err)
				}
				res, err := example.RunOn(interpreter, backend.NewInMemory().Backends(), testingEncoding, 5)
				if err != nil {
					t.Fatalf("failed to run example: %v", err)
				}
				used[name] = res.UsedErgs
			}
			if used["axvm"] != used["axvm-testing"] {
				t.Errorf("encodings should not change the costs, got %v", used)
			}
		})
	}
}

func TestSha3Example_CallsPrecompile(t *testing.T) {
	example := GetSha3Example()
	interpreter, err := axon.NewInterpreter("axvm")
	if err != nil {
		t.Fatalf("failed to create interpreter: %v", err)
	}
	backends := backend.NewInMemory()
	if _, err := example.RunOn(interpreter, backends.Backends(), false, 3); err != nil {
		t.Fatalf("failed to run example: %v", err)
	}
	if want, got := 3, backends.Precompiles.NumCalls(example.address); want != got {
		t.Errorf("unexpected number of precompile calls, wanted %d, got %d", want, got)
	}
}

func TestExamples_ProgramsDisassembleToTheirSource(t *testing.T) {
	example := GetFibExample()
	table := isa.MustGetTable(axon.DefaultISAVersion)
	code := axvm.Disassemble(table, axvm.Encoding[uint64](axvm.TestingEncoding{}), example.Code(true))
	source := example.program(0)
	for i := range source {
		if want, got := source[i].Variant, code[i].Variant; want != got {
			t.Errorf("unexpected variant at %d, wanted %v, got %v", i, want, got)
		}
	}
}

func BenchmarkExamples(b *testing.B) {
	for _, example := range GetExamples() {
		for name, testingEncoding := range interpreters {
			interpreter, err := axon.NewInterpreter(name)
			if err != nil {
				b.Fatalf("failed to create interpreter %s: %v", name, err)
			}
			b.Run(fmt.Sprintf("%s/%s", example.Name, name), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					if _, err := example.RunOn(interpreter, backend.NewInMemory().Backends(), testingEncoding, 1000); err != nil {
						b.Fatalf("failed to run example: %v", err)
					}
				}
			})
		}
	}
}
