// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package axon

//go:generate mockgen -source backends.go -destination backends_mock.go -package axon

// The interfaces in this file are the capabilities an interpreter run
// consumes. Each run holds its backends exclusively; implementations do not
// need to be thread-safe. Any error returned by a backend aborts the run.
// The cycle argument is the monotonic cycle counter of the run issuing the
// request.

// Memory is a word-addressable, paged memory. Cells never written read as
// an untagged zero.
type Memory interface {
	ExecuteQuery(cycle uint32, query MemoryQuery) (MemoryQuery, error)
}

// Storage is the key-value state of all contracts, keyed by address and
// slot. Frames bracket the changes of one call so that reverted and
// panicked calls can be rolled back.
type Storage interface {
	// ExecuteQuery performs a read or a write. The returned query has
	// ReadValue set to the value before the access.
	ExecuteQuery(cycle uint32, query LogQuery) (LogQuery, error)
	StartFrame(timestamp Timestamp)
	FinishFrame(timestamp Timestamp, panicked bool)
}

// EventSink is the append-only log of events and L1 messages.
type EventSink interface {
	AddQuery(cycle uint32, query LogQuery) error
	StartFrame(timestamp Timestamp)
	FinishFrame(timestamp Timestamp, panicked bool)
}

// PrecompilesProcessor dispatches precompile calls by address. The query
// key carries the encoded precompile call ABI; input and output are
// exchanged through the given memory.
type PrecompilesProcessor interface {
	ExecutePrecompile(cycle uint32, query LogQuery, memory Memory) error
}

// DecommittmentProcessor loads code by its versioned hash into a memory
// page. Decommitment happens in two steps so that the caller can charge
// for the code size before any memory is written.
type DecommittmentProcessor interface {
	// PrepareToDecommit fills in the size of the code and whether it was
	// already decommitted during this run. Unknown hashes are reported
	// with ErrCodeNotFound.
	PrepareToDecommit(cycle uint32, query DecommittmentQuery) (DecommittmentQuery, error)
	DecommitIntoMemory(cycle uint32, query DecommittmentQuery, memory Memory) error
}

// Backends bundles the capabilities a run operates on.
type Backends struct {
	Memory      Memory
	Storage     Storage
	Events      EventSink
	Precompiles PrecompilesProcessor
	Decommitter DecommittmentProcessor
}
