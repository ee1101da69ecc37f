// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package backend

import (
	"testing"

	"github.com/Fantom-foundation/Axon/go/axon"
	"github.com/holiman/uint256"
)

func TestEventSink_SortsQueriesByKind(t *testing.T) {
	sink := NewEventSink()
	queries := []axon.LogQuery{
		{AuxByte: axon.EventAuxByte, Key: *uint256.NewInt(1)},
		{AuxByte: axon.L1MessageAuxByte, Key: *uint256.NewInt(2)},
		{AuxByte: axon.EventAuxByte, Key: *uint256.NewInt(3)},
	}
	for _, query := range queries {
		if err := sink.AddQuery(0, query); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if want, got := 2, len(sink.Events()); want != got {
		t.Errorf("unexpected number of events, wanted %d, got %d", want, got)
	}
	if want, got := 1, len(sink.L1Messages()); want != got {
		t.Fatalf("unexpected number of messages, wanted %d, got %d", want, got)
	}
	if want, got := uint64(2), sink.L1Messages()[0].Key.Uint64(); want != got {
		t.Errorf("unexpected message, wanted key %d, got %d", want, got)
	}
}

func TestEventSink_RejectsOtherQueries(t *testing.T) {
	sink := NewEventSink()
	for _, aux := range []byte{axon.StorageAuxByte, axon.PrecompileCallAuxByte} {
		if err := sink.AddQuery(0, axon.LogQuery{AuxByte: aux}); err == nil {
			t.Errorf("expected query with aux byte %d to be rejected", aux)
		}
	}
}

func TestEventSink_PanickedFramesDropTheirEntries(t *testing.T) {
	sink := NewEventSink()
	event := axon.LogQuery{AuxByte: axon.EventAuxByte}
	message := axon.LogQuery{AuxByte: axon.L1MessageAuxByte}

	sink.StartFrame(0)
	_ = sink.AddQuery(0, event) // valid query
	sink.StartFrame(1)
	_ = sink.AddQuery(0, event)   // valid query
	_ = sink.AddQuery(0, message) // valid query
	sink.FinishFrame(2, true)
	_ = sink.AddQuery(0, message) // valid query
	sink.FinishFrame(3, false)

	if want, got := 1, len(sink.Events()); want != got {
		t.Errorf("unexpected number of events, wanted %d, got %d", want, got)
	}
	if want, got := 1, len(sink.L1Messages()); want != got {
		t.Errorf("unexpected number of messages, wanted %d, got %d", want, got)
	}
}
