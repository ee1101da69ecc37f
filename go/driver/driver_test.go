// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Fantom-foundation/Axon/go/axon"
	"github.com/Fantom-foundation/Axon/go/axon/isa"
	"github.com/Fantom-foundation/Axon/go/interpreter/axvm"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	out := &bytes.Buffer{}
	app.Writer = out
	app.ErrWriter = out
	err := app.Run(append([]string{"axon", "--verbosity", "0"}, args...))
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

var retOkVariant = isa.MustNewVariant(isa.NewOpcode(isa.Ret, isa.RetOk), isa.UseRegOnly, isa.UseRegOnly)

// writeProgram stores a program adding two numbers and returning as hex
// text in the given encoding.
func writeProgram(t *testing.T, testingEncoding bool) string {
	t.Helper()
	table := isa.MustGetTable(axon.DefaultISAVersion)
	add := isa.MustNewVariant(isa.Opcode{Family: isa.Add}, isa.UseImm16Only, isa.UseRegOnly)
	var words []uint256.Int
	var err error
	if testingEncoding {
		code := axvm.Code[uint64]{{Variant: add, Imm0: 5, Dst0: 3}, {Variant: retOkVariant}}
		words, err = axvm.Assemble(table, axvm.Encoding[uint64](axvm.TestingEncoding{}), code)
	} else {
		code := axvm.Code[uint16]{{Variant: add, Imm0: 5, Dst0: 3}, {Variant: retOkVariant}}
		words, err = axvm.Assemble(table, axvm.Encoding[uint16](axvm.ProductionEncoding{}), code)
	}
	if err != nil {
		t.Fatalf("failed to assemble program: %v", err)
	}
	return writeFile(t, "program.hex", hexutil.Encode(axon.WordsToBytecode(words))+"\n")
}

func TestRun_ExecutesProgram(t *testing.T) {
	out, err := runApp(t, "run", "--ergs", "100", writeProgram(t, false))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{
		"status:    ok\n",
		"ergs used: 10\n",
		"ergs left: 90\n",
		"cycles:    2 (~",
		"output:    0x\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("did not find %q in output\n%s", want, out)
		}
	}
}

func TestRun_ConfigFileProvidesDefaults(t *testing.T) {
	tests := map[string]string{
		"config.yaml": "interpreter: axvm-testing\nergs: 17\n",
		"config.toml": "interpreter = \"axvm-testing\"\nergs = 17\n",
		"config.json": `{"interpreter": "axvm-testing", "ergs": 17}`,
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			config := writeFile(t, name, content)
			program := writeProgram(t, true)

			out, err := runApp(t, "run", "--config", config, program)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out, "ergs left: 7\n") {
				t.Errorf("config file should provide the ergs, got\n%s", out)
			}

			out, err = runApp(t, "run", "--config", config, "--ergs", "20", program)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out, "ergs left: 10\n") {
				t.Errorf("flags should override the config file, got\n%s", out)
			}
		})
	}
}

func TestRun_CycleLimitAbortsRun(t *testing.T) {
	_, err := runApp(t, "run", "--max-cycles", "1", writeProgram(t, false))
	if err == nil || !strings.Contains(err.Error(), axvm.ErrCycleLimitExceeded.Error()) {
		t.Errorf("unexpected error, wanted %v, got %v", axvm.ErrCycleLimitExceeded, err)
	}
}

func TestRun_StatisticsAreCollected(t *testing.T) {
	if _, err := runApp(t, "run", "--stats", writeProgram(t, false)); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRun_InvalidInputIsRejected(t *testing.T) {
	program := writeProgram(t, false)
	tests := map[string][]string{
		"no code file":        {"run"},
		"missing code file":   {"run", filepath.Join(t.TempDir(), "missing.hex")},
		"unknown interpreter": {"run", "-i", "evm", program},
		"unknown isa version": {"run", "--isa", "v9", program},
		"invalid calldata":    {"run", "--calldata", "0xzz", program},
		"invalid address":     {"run", "--address", "0x12", program},
		"ergs out of range":   {"run", "--ergs", "4294967296", program},
		"trace and stats":     {"run", "--trace", "--stats", program},
		"missing config file": {"run", "--config", filepath.Join(t.TempDir(), "missing.yaml"), program},
		"partial code word":   {"run", writeFile(t, "short.hex", "0x0102")},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := runApp(t, args...); err == nil {
				t.Errorf("expected run to fail")
			}
		})
	}
}

func TestDisasm_PrintsInstructions(t *testing.T) {
	tests := map[string]struct {
		testingEncoding bool
		args            []string
	}{
		"production": {false, nil},
		"testing":    {true, []string{"--testing-encoding"}},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			args := append([]string{"disasm"}, test.args...)
			out, err := runApp(t, append(args, writeProgram(t, test.testingEncoding))...)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(out, "0x0000: Add imm -> reg") || !strings.Contains(out, "0x0001: Ret.Ok") {
				t.Errorf("unexpected disassembly\n%s", out)
			}
		})
	}
}

func TestTable_SummarizesFamilies(t *testing.T) {
	out, err := runApp(t, "table")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"ISA v0\n", "Add", "UMA", "total: "} {
		if !strings.Contains(out, want) {
			t.Errorf("did not find %q in output\n%s", want, out)
		}
	}
	if strings.Contains(out, "Invalid") {
		t.Errorf("invalid slots should not be listed\n%s", out)
	}

	out, err = runApp(t, "table", "--variants")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, retOkVariant.String()) {
		t.Errorf("did not find %v in output\n%s", retOkVariant, out)
	}
}

func TestList_PrintsRegisteredInterpreters(t *testing.T) {
	out, err := runApp(t, "list")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"axvm\n", "axvm-testing\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("did not find %q in output\n%s", want, out)
		}
	}

	out, err = runApp(t, "list", "--experimental")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"axvm-stats\n", "axvm-testing-logging\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("did not find %q in output\n%s", want, out)
		}
	}
}
