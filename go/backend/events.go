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
	"fmt"

	"github.com/Fantom-foundation/Axon/go/axon"
)

// EventSink collects events and L1 messages. Entries emitted by a frame
// that finishes with a panic are dropped.
type EventSink struct {
	events     []axon.LogQuery
	l1Messages []axon.LogQuery
	frames     []eventFrame
}

type eventFrame struct {
	events, l1Messages int
}

func NewEventSink() *EventSink {
	return &EventSink{}
}

func (s *EventSink) AddQuery(_ uint32, query axon.LogQuery) error {
	switch query.AuxByte {
	case axon.EventAuxByte:
		s.events = append(s.events, query)
	case axon.L1MessageAuxByte:
		s.l1Messages = append(s.l1Messages, query)
	default:
		return fmt.Errorf("unsupported event aux byte %d", query.AuxByte)
	}
	return nil
}

func (s *EventSink) StartFrame(axon.Timestamp) {
	s.frames = append(s.frames, eventFrame{len(s.events), len(s.l1Messages)})
}

func (s *EventSink) FinishFrame(_ axon.Timestamp, panicked bool) {
	if len(s.frames) == 0 {
		return
	}
	frame := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	if panicked {
		s.events = s.events[:frame.events]
		s.l1Messages = s.l1Messages[:frame.l1Messages]
	}
}

// Events returns the events emitted by frames that did not panic.
func (s *EventSink) Events() []axon.LogQuery {
	return s.events
}

// L1Messages returns the messages sent by frames that did not panic.
func (s *EventSink) L1Messages() []axon.LogQuery {
	return s.l1Messages
}
