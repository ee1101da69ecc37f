// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package axvm_test

import (
	"strings"
	"testing"

	"github.com/Fantom-foundation/Axon/go/axon"
	"github.com/Fantom-foundation/Axon/go/axon/isa"
	"github.com/Fantom-foundation/Axon/go/backend"
	"github.com/Fantom-foundation/Axon/go/interpreter/axvm"
	"github.com/holiman/uint256"
)

// TestAxvm_RegisterExperimentalConfigurations tests the registration of
// experimental configurations.
// It is declared in its own package to avoid leaking the registration to
// other tests, and checks all properties in a single function since the
// order of test functions may change.
func TestAxvm_RegisterExperimentalConfigurations(t *testing.T) {

	// First registration must succeed.
	err := axvm.RegisterExperimentalInterpreterConfigurations()
	if err != nil {
		t.Fatalf("failed to register experimental configurations: %v", err)
	}

	// Registering a second time must fail.
	err = axvm.RegisterExperimentalInterpreterConfigurations()
	if err == nil {
		t.Fatalf("expected error when registering experimental configurations twice")
	}

	// Check that axvm is registered by default, in addition to experimental configurations
	if _, ok := axon.GetAllRegisteredInterpreters()["axvm"]; !ok {
		t.Fatalf("axvm is not registered")
	}

	ret := axvm.Code[uint64]{{Variant: isa.MustNewVariant(isa.NewOpcode(isa.Ret, isa.RetOk), isa.UseRegOnly, isa.UseRegOnly)}}
	table := isa.MustGetTable(axon.DefaultISAVersion)

	// Construct all registered interpreter configurations
	for name, factory := range axon.GetAllRegisteredInterpreters() {
		t.Run(name, func(t *testing.T) {
			vm, err := factory(axvm.Config{})
			if err != nil {
				t.Fatalf("failed to create interpreter: %v", err)
			}

			var code []uint256.Int
			if strings.Contains(name, "-testing") {
				code, err = axvm.Assemble(table, axvm.Encoding[uint64](axvm.TestingEncoding{}), ret)
			} else {
				short := axvm.Code[uint16]{{Variant: ret[0].Variant}}
				code, err = axvm.Assemble(table, axvm.Encoding[uint16](axvm.ProductionEncoding{}), short)
			}
			if err != nil {
				t.Fatalf("failed to assemble code: %v", err)
			}

			// Vms are opaque, we can only check that they execute some basic code.
			params := axon.Parameters{
				ISAVersion: axon.DefaultISAVersion,
				Code:       code,
				Address:    axon.AddressFromUint64(0x8001),
				Ergs:       5,
				Backends:   backend.NewInMemory().Backends(),
			}
			res, err := vm.Run(params)
			if err != nil {
				t.Fatalf("failed to run interpreter: %v", err)
			}

			if want, got := axon.StatusOk, res.Status; want != got {
				t.Fatalf("unexpected status: want %v, got %v", want, got)
			}
			if want, got := axon.Ergs(0), res.ErgsLeft; want != got {
				t.Fatalf("unexpected ergs left: want %v, got %v", want, got)
			}
		})
	}
}
