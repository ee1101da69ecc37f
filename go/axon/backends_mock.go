// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package axon is a generated GoMock package.
package axon

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockMemory is a mock of Memory interface.
type MockMemory struct {
	ctrl     *gomock.Controller
	recorder *MockMemoryMockRecorder
}

// MockMemoryMockRecorder is the mock recorder for MockMemory.
type MockMemoryMockRecorder struct {
	mock *MockMemory
}

// NewMockMemory creates a new mock instance.
func NewMockMemory(ctrl *gomock.Controller) *MockMemory {
	mock := &MockMemory{ctrl: ctrl}
	mock.recorder = &MockMemoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockMemory) EXPECT() *MockMemoryMockRecorder {
	return m.recorder
}

// ExecuteQuery mocks base method.
func (m *MockMemory) ExecuteQuery(cycle uint32, query MemoryQuery) (MemoryQuery, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ExecuteQuery", cycle, query)
	ret0, _ := ret[0].(MemoryQuery)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ExecuteQuery indicates an expected call of ExecuteQuery.
func (mr *MockMemoryMockRecorder) ExecuteQuery(cycle, query any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ExecuteQuery", reflect.TypeOf((*MockMemory)(nil).ExecuteQuery), cycle, query)
}

// MockStorage is a mock of Storage interface.
type MockStorage struct {
	ctrl     *gomock.Controller
	recorder *MockStorageMockRecorder
}

// MockStorageMockRecorder is the mock recorder for MockStorage.
type MockStorageMockRecorder struct {
	mock *MockStorage
}

// NewMockStorage creates a new mock instance.
func NewMockStorage(ctrl *gomock.Controller) *MockStorage {
	mock := &MockStorage{ctrl: ctrl}
	mock.recorder = &MockStorageMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockStorage) EXPECT() *MockStorageMockRecorder {
	return m.recorder
}

// ExecuteQuery mocks base method.
func (m *MockStorage) ExecuteQuery(cycle uint32, query LogQuery) (LogQuery, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ExecuteQuery", cycle, query)
	ret0, _ := ret[0].(LogQuery)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ExecuteQuery indicates an expected call of ExecuteQuery.
func (mr *MockStorageMockRecorder) ExecuteQuery(cycle, query any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ExecuteQuery", reflect.TypeOf((*MockStorage)(nil).ExecuteQuery), cycle, query)
}

// FinishFrame mocks base method.
func (m *MockStorage) FinishFrame(timestamp Timestamp, panicked bool) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "FinishFrame", timestamp, panicked)
}

// FinishFrame indicates an expected call of FinishFrame.
func (mr *MockStorageMockRecorder) FinishFrame(timestamp, panicked any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FinishFrame", reflect.TypeOf((*MockStorage)(nil).FinishFrame), timestamp, panicked)
}

// StartFrame mocks base method.
func (m *MockStorage) StartFrame(timestamp Timestamp) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "StartFrame", timestamp)
}

// StartFrame indicates an expected call of StartFrame.
func (mr *MockStorageMockRecorder) StartFrame(timestamp any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StartFrame", reflect.TypeOf((*MockStorage)(nil).StartFrame), timestamp)
}

// MockEventSink is a mock of EventSink interface.
type MockEventSink struct {
	ctrl     *gomock.Controller
	recorder *MockEventSinkMockRecorder
}

// MockEventSinkMockRecorder is the mock recorder for MockEventSink.
type MockEventSinkMockRecorder struct {
	mock *MockEventSink
}

// NewMockEventSink creates a new mock instance.
func NewMockEventSink(ctrl *gomock.Controller) *MockEventSink {
	mock := &MockEventSink{ctrl: ctrl}
	mock.recorder = &MockEventSinkMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockEventSink) EXPECT() *MockEventSinkMockRecorder {
	return m.recorder
}

// AddQuery mocks base method.
func (m *MockEventSink) AddQuery(cycle uint32, query LogQuery) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddQuery", cycle, query)
	ret0, _ := ret[0].(error)
	return ret0
}

// AddQuery indicates an expected call of AddQuery.
func (mr *MockEventSinkMockRecorder) AddQuery(cycle, query any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddQuery", reflect.TypeOf((*MockEventSink)(nil).AddQuery), cycle, query)
}

// FinishFrame mocks base method.
func (m *MockEventSink) FinishFrame(timestamp Timestamp, panicked bool) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "FinishFrame", timestamp, panicked)
}

// FinishFrame indicates an expected call of FinishFrame.
func (mr *MockEventSinkMockRecorder) FinishFrame(timestamp, panicked any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "FinishFrame", reflect.TypeOf((*MockEventSink)(nil).FinishFrame), timestamp, panicked)
}

// StartFrame mocks base method.
func (m *MockEventSink) StartFrame(timestamp Timestamp) {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "StartFrame", timestamp)
}

// StartFrame indicates an expected call of StartFrame.
func (mr *MockEventSinkMockRecorder) StartFrame(timestamp any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StartFrame", reflect.TypeOf((*MockEventSink)(nil).StartFrame), timestamp)
}

// MockPrecompilesProcessor is a mock of PrecompilesProcessor interface.
type MockPrecompilesProcessor struct {
	ctrl     *gomock.Controller
	recorder *MockPrecompilesProcessorMockRecorder
}

// MockPrecompilesProcessorMockRecorder is the mock recorder for MockPrecompilesProcessor.
type MockPrecompilesProcessorMockRecorder struct {
	mock *MockPrecompilesProcessor
}

// NewMockPrecompilesProcessor creates a new mock instance.
func NewMockPrecompilesProcessor(ctrl *gomock.Controller) *MockPrecompilesProcessor {
	mock := &MockPrecompilesProcessor{ctrl: ctrl}
	mock.recorder = &MockPrecompilesProcessorMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockPrecompilesProcessor) EXPECT() *MockPrecompilesProcessorMockRecorder {
	return m.recorder
}

// ExecutePrecompile mocks base method.
func (m *MockPrecompilesProcessor) ExecutePrecompile(cycle uint32, query LogQuery, memory Memory) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ExecutePrecompile", cycle, query, memory)
	ret0, _ := ret[0].(error)
	return ret0
}

// ExecutePrecompile indicates an expected call of ExecutePrecompile.
func (mr *MockPrecompilesProcessorMockRecorder) ExecutePrecompile(cycle, query, memory any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ExecutePrecompile", reflect.TypeOf((*MockPrecompilesProcessor)(nil).ExecutePrecompile), cycle, query, memory)
}

// MockDecommittmentProcessor is a mock of DecommittmentProcessor interface.
type MockDecommittmentProcessor struct {
	ctrl     *gomock.Controller
	recorder *MockDecommittmentProcessorMockRecorder
}

// MockDecommittmentProcessorMockRecorder is the mock recorder for MockDecommittmentProcessor.
type MockDecommittmentProcessorMockRecorder struct {
	mock *MockDecommittmentProcessor
}

// NewMockDecommittmentProcessor creates a new mock instance.
func NewMockDecommittmentProcessor(ctrl *gomock.Controller) *MockDecommittmentProcessor {
	mock := &MockDecommittmentProcessor{ctrl: ctrl}
	mock.recorder = &MockDecommittmentProcessorMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockDecommittmentProcessor) EXPECT() *MockDecommittmentProcessorMockRecorder {
	return m.recorder
}

// DecommitIntoMemory mocks base method.
func (m *MockDecommittmentProcessor) DecommitIntoMemory(cycle uint32, query DecommittmentQuery, memory Memory) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DecommitIntoMemory", cycle, query, memory)
	ret0, _ := ret[0].(error)
	return ret0
}

// DecommitIntoMemory indicates an expected call of DecommitIntoMemory.
func (mr *MockDecommittmentProcessorMockRecorder) DecommitIntoMemory(cycle, query, memory any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DecommitIntoMemory", reflect.TypeOf((*MockDecommittmentProcessor)(nil).DecommitIntoMemory), cycle, query, memory)
}

// PrepareToDecommit mocks base method.
func (m *MockDecommittmentProcessor) PrepareToDecommit(cycle uint32, query DecommittmentQuery) (DecommittmentQuery, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "PrepareToDecommit", cycle, query)
	ret0, _ := ret[0].(DecommittmentQuery)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// PrepareToDecommit indicates an expected call of PrepareToDecommit.
func (mr *MockDecommittmentProcessorMockRecorder) PrepareToDecommit(cycle, query any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "PrepareToDecommit", reflect.TypeOf((*MockDecommittmentProcessor)(nil).PrepareToDecommit), cycle, query)
}
