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
	"testing"

	"github.com/Fantom-foundation/Axon/go/axon"
)

func newTestSession(t *testing.T, config Config, code Code[uint64]) *Session[uint64] {
	t.Helper()
	vm, err := NewVm(config, Encoding[uint64](TestingEncoding{}))
	if err != nil {
		t.Fatalf("failed to create VM: %v", err)
	}
	params, _ := newTestParams(t, code)
	session, err := vm.NewSession(params, nil)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	return session
}

func TestSession_StepsThroughRun(t *testing.T) {
	session := newTestSession(t, Config{}, Code[uint64]{
		{Variant: immVariant(opAddCode), Imm0: 5, Dst0: 3},
		{Variant: immVariant(opAddCode), Imm0: 6, Dst0: 4},
		retOk(),
	})

	if _, err := session.Result(); !errors.Is(err, errRunNotFinished) {
		t.Errorf("unexpected error before the run, wanted %v, got %v", errRunNotFinished, err)
	}

	step := func() {
		t.Helper()
		done, err := session.Step()
		if err != nil || done {
			t.Fatalf("unexpected outcome of step: done=%t, err=%v", done, err)
		}
	}
	step()
	if want, got := integer(5), session.State().Register(3); want != got {
		t.Errorf("unexpected r3, wanted %v, got %v", want, got)
	}
	if want, got := integer(0), session.State().Register(4); want != got {
		t.Errorf("unexpected r4, wanted %v, got %v", want, got)
	}
	step()
	if want, got := integer(6), session.State().Register(4); want != got {
		t.Errorf("unexpected r4, wanted %v, got %v", want, got)
	}
	if _, err := session.Result(); !errors.Is(err, errRunNotFinished) {
		t.Errorf("unexpected error during the run, wanted %v, got %v", errRunNotFinished, err)
	}

	done, err := session.Step()
	if err != nil || !done {
		t.Fatalf("run should be finished, done=%t, err=%v", done, err)
	}
	res, err := session.Result()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want, got := axon.StatusOk, res.Status; want != got {
		t.Errorf("unexpected status, wanted %v, got %v", want, got)
	}
	if want, got := uint64(3), res.Cycles; want != got {
		t.Errorf("unexpected number of cycles, wanted %d, got %d", want, got)
	}

	if _, err := session.Step(); !errors.Is(err, errRunTerminated) {
		t.Errorf("unexpected error after the run, wanted %v, got %v", errRunTerminated, err)
	}
}

func TestSession_CycleLimitApplies(t *testing.T) {
	session := newTestSession(t, Config{MaxCycles: 1}, Code[uint64]{
		{Variant: immVariant(opAddCode), Imm0: 5, Dst0: 3},
		retOk(),
	})
	if _, err := session.Step(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := session.Step(); !errors.Is(err, ErrCycleLimitExceeded) {
		t.Errorf("unexpected error, wanted %v, got %v", ErrCycleLimitExceeded, err)
	}
}

func TestSession_InvalidParametersAreRejected(t *testing.T) {
	vm, err := NewVm(Config{}, Encoding[uint64](TestingEncoding{}))
	if err != nil {
		t.Fatalf("failed to create VM: %v", err)
	}
	if _, err := vm.NewSession(axon.Parameters{}, nil); !errors.Is(err, errMissingBackend) {
		t.Errorf("unexpected error, wanted %v, got %v", errMissingBackend, err)
	}
}
