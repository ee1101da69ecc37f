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
	"github.com/Fantom-foundation/Axon/go/axon"
	"golang.org/x/exp/constraints"
)

const errRunNotFinished = axon.ConstError("run not finished")

// Session executes a run one cycle at a time. The runner of the machine's
// configuration is not involved; the cycle limit still applies.
type Session[A constraints.Unsigned] struct {
	ctxt   *context[A]
	status status
}

// NewSession prepares a run without executing any cycle. The tracer is
// optional.
func (v *Vm[A]) NewSession(params axon.Parameters, tracer Tracer[A]) (*Session[A], error) {
	ctxt, err := newContext(v.config, v.encoding, params, tracer)
	if err != nil {
		return nil, err
	}
	return &Session[A]{ctxt: ctxt}, nil
}

// Step executes a single cycle and reports whether the run has terminated.
func (s *Session[A]) Step() (bool, error) {
	status, err := s.ctxt.step()
	if err != nil {
		return false, err
	}
	s.status = status
	return status != statusRunning, nil
}

// State exposes the current machine state.
func (s *Session[A]) State() *State[A] {
	return &s.ctxt.State
}

// Result returns the result of a terminated run.
func (s *Session[A]) Result() (axon.Result, error) {
	if s.status == statusRunning {
		return axon.Result{}, errRunNotFinished
	}
	return s.ctxt.result(s.status)
}
