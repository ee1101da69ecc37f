// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package axvm is a generated GoMock package.
package axvm

import (
	reflect "reflect"

	axon "github.com/Fantom-foundation/Axon/go/axon"
	gomock "go.uber.org/mock/gomock"
	constraints "golang.org/x/exp/constraints"
)

// MockTracer is a mock of Tracer interface.
type MockTracer[A constraints.Unsigned] struct {
	ctrl     *gomock.Controller
	recorder *MockTracerMockRecorder[A]
}

// MockTracerMockRecorder is the mock recorder for MockTracer.
type MockTracerMockRecorder[A constraints.Unsigned] struct {
	mock *MockTracer[A]
}

// NewMockTracer creates a new mock instance.
func NewMockTracer[A constraints.Unsigned](ctrl *gomock.Controller) *MockTracer[A] {
	mock := &MockTracer[A]{ctrl: ctrl}
	mock.recorder = &MockTracerMockRecorder[A]{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTracer[A]) EXPECT() *MockTracerMockRecorder[A] {
	return m.recorder
}

// AfterDecoding mocks base method.
func (m *MockTracer[A]) AfterDecoding(state *State[A], data AfterDecodingData[A], memory axon.Memory) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "AfterDecoding", state, data, memory)
}

// AfterDecoding indicates an expected call of AfterDecoding.
func (mr *MockTracerMockRecorder[A]) AfterDecoding(state, data, memory any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AfterDecoding", reflect.TypeOf((*MockTracer[A])(nil).AfterDecoding), state, data, memory)
}

// AfterExecution mocks base method.
func (m *MockTracer[A]) AfterExecution(state *State[A], data AfterExecutionData[A], memory axon.Memory) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "AfterExecution", state, data, memory)
}

// AfterExecution indicates an expected call of AfterExecution.
func (mr *MockTracerMockRecorder[A]) AfterExecution(state, data, memory any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AfterExecution", reflect.TypeOf((*MockTracer[A])(nil).AfterExecution), state, data, memory)
}

// BeforeDecoding mocks base method.
func (m *MockTracer[A]) BeforeDecoding(state *State[A], memory axon.Memory) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "BeforeDecoding", state, memory)
}

// BeforeDecoding indicates an expected call of BeforeDecoding.
func (mr *MockTracerMockRecorder[A]) BeforeDecoding(state, memory any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BeforeDecoding", reflect.TypeOf((*MockTracer[A])(nil).BeforeDecoding), state, memory)
}

// BeforeExecution mocks base method.
func (m *MockTracer[A]) BeforeExecution(state *State[A], data BeforeExecutionData[A], memory axon.Memory) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "BeforeExecution", state, data, memory)
}

// BeforeExecution indicates an expected call of BeforeExecution.
func (mr *MockTracerMockRecorder[A]) BeforeExecution(state, data, memory any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "BeforeExecution", reflect.TypeOf((*MockTracer[A])(nil).BeforeExecution), state, data, memory)
}
