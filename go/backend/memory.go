// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package backend provides in-memory implementations of the capabilities an
// interpreter run consumes. They are intended for tests, tooling and the
// command line driver.
package backend

import "github.com/Fantom-foundation/Axon/go/axon"

// Memory is a sparse paged memory. Cells are keyed by page and index; the
// memory type of a query is not part of the key.
type Memory struct {
	cells   map[cellKey]axon.PrimitiveValue
	reads   uint64
	writes  uint64
	history []axon.MemoryQuery
	record  bool
}

type cellKey struct {
	page  axon.MemoryPage
	index uint32
}

func NewMemory() *Memory {
	return &Memory{cells: map[cellKey]axon.PrimitiveValue{}}
}

// NewRecordingMemory creates a memory keeping a copy of every executed
// query.
func NewRecordingMemory() *Memory {
	res := NewMemory()
	res.record = true
	return res
}

func (m *Memory) ExecuteQuery(_ uint32, query axon.MemoryQuery) (axon.MemoryQuery, error) {
	key := cellKey{query.Location.Page, query.Location.Index}
	if query.IsWrite {
		m.writes++
		if query.Value == (axon.PrimitiveValue{}) {
			delete(m.cells, key)
		} else {
			m.cells[key] = query.Value
		}
	} else {
		m.reads++
		query.Value = m.cells[key]
	}
	if m.record {
		m.history = append(m.history, query)
	}
	return query, nil
}

// Get returns the content of a cell without recording an access.
func (m *Memory) Get(page axon.MemoryPage, index uint32) axon.PrimitiveValue {
	return m.cells[cellKey{page, index}]
}

// Set overwrites a cell without recording an access.
func (m *Memory) Set(page axon.MemoryPage, index uint32, value axon.PrimitiveValue) {
	m.cells[cellKey{page, index}] = value
}

// Stats returns the number of read and write queries executed so far.
func (m *Memory) Stats() (reads, writes uint64) {
	return m.reads, m.writes
}

// History returns the recorded queries of a recording memory.
func (m *Memory) History() []axon.MemoryQuery {
	return m.history
}
