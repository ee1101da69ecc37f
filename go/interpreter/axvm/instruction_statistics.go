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
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Fantom-foundation/Axon/go/axon/isa"
	"golang.org/x/exp/maps"
)

// statisticRunner is a runner that collects statistics about the sequence of
// decoded variants of the executed code.
type statisticRunner struct {
	mutex sync.Mutex
	stats *statistics
}

func (s *statisticRunner) run(st stepper) (status, error) {
	stats := statsCollector{stats: newStatistics()}
	status := statusRunning
	var executionError error
	for status == statusRunning {
		status, executionError = st.step()
		if executionError != nil {
			break
		}
		last := st.lastCycle()
		stats.nextOp(last.index, last.variant)
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.stats == nil {
		s.stats = newStatistics()
	}
	s.stats.insert(stats.stats)
	return status, executionError
}

// getSummary returns a summary of the collected statistics in a
// human-readable format.
func (s *statisticRunner) getSummary() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.stats == nil {
		s.stats = newStatistics()
	}
	return s.stats.print()
}

// reset clears the collected statistics.
func (s *statisticRunner) reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.stats = newStatistics()
}

// statistics contains the instruction sequence statistics of executions.
// Sequences are keyed by the table slots of their variants, 16 bits per
// slot.
type statistics struct {
	count       uint64
	singleCount map[uint64]uint64
	pairCount   map[uint64]uint64
	tripleCount map[uint64]uint64
	quadCount   map[uint64]uint64
	variants    map[uint16]isa.OpcodeVariant
}

func newStatistics() *statistics {
	return &statistics{
		singleCount: map[uint64]uint64{},
		pairCount:   map[uint64]uint64{},
		tripleCount: map[uint64]uint64{},
		quadCount:   map[uint64]uint64{},
		variants:    map[uint16]isa.OpcodeVariant{},
	}
}

// insert adds the counts of the given statistics to this instance.
func (s *statistics) insert(src *statistics) {
	s.count += src.count
	for k, v := range src.singleCount {
		s.singleCount[k] += v
	}
	for k, v := range src.pairCount {
		s.pairCount[k] += v
	}
	for k, v := range src.tripleCount {
		s.tripleCount[k] += v
	}
	for k, v := range src.quadCount {
		s.quadCount[k] += v
	}
	maps.Copy(s.variants, src.variants)
}

// print returns a human-readable summary of the collected statistics.
func (s *statistics) print() string {

	type entry struct {
		value uint64
		count uint64
	}

	getTopN := func(data map[uint64]uint64, n int) []entry {
		keys := maps.Keys(data)
		list := make([]entry, 0, len(keys))
		for _, k := range keys {
			list = append(list, entry{k, data[k]})
		}
		sort.Slice(list, func(i, j int) bool {
			if list[i].count != list[j].count {
				return list[i].count > list[j].count
			}
			return list[i].value < list[j].value
		})
		if len(list) < n {
			return list
		}
		return list[0:n]
	}

	name := func(key uint64) string {
		return s.variants[uint16(key)].String()
	}

	builder := strings.Builder{}
	write := func(format string, args ...interface{}) {
		builder.WriteString(fmt.Sprintf(format, args...))
	}

	write("\n----- Statistics ------\n")
	write("\nSteps: %d\n", s.count)
	write("\nSingles:\n")
	for _, e := range getTopN(s.singleCount, 5) {
		write("\t%-40v: %d (%.2f%%)\n", name(e.value), e.count, float32(e.count*100)/float32(s.count))
	}
	write("\nPairs:\n")
	for _, e := range getTopN(s.pairCount, 5) {
		write("\t%-40v%-40v: %d (%.2f%%)\n", name(e.value>>16), name(e.value), e.count, float32(e.count*100)/float32(s.count))
	}
	write("\nTriples:\n")
	for _, e := range getTopN(s.tripleCount, 5) {
		write("\t%-40v%-40v%-40v: %d (%.2f%%)\n", name(e.value>>32), name(e.value>>16), name(e.value), e.count, float32(e.count*100)/float32(s.count))
	}

	write("\nQuads:\n")
	for _, e := range getTopN(s.quadCount, 5) {
		write("\t%-40v%-40v%-40v%-40v: %d (%.2f%%)\n", name(e.value>>48), name(e.value>>32), name(e.value>>16), name(e.value), e.count, float32(e.count*100)/float32(s.count))
	}
	write("\n")

	return builder.String()
}

// statsCollector is a helper struct that keeps track of the recent history
// of variants executed by the VM to collect sequence statistics.
type statsCollector struct {
	stats *statistics

	last       uint64
	secondLast uint64
	thirdLast  uint64
}

func (s *statsCollector) nextOp(index uint16, variant isa.OpcodeVariant) {
	cur := uint64(index)
	s.stats.variants[index] = variant
	s.stats.count++
	s.stats.singleCount[cur]++
	if s.stats.count == 1 {
		s.last, s.secondLast, s.thirdLast = cur, s.last, s.secondLast
		return
	}
	s.stats.pairCount[s.last<<16|cur]++
	if s.stats.count == 2 {
		s.last, s.secondLast, s.thirdLast = cur, s.last, s.secondLast
		return
	}
	s.stats.tripleCount[s.secondLast<<32|s.last<<16|cur]++
	if s.stats.count == 3 {
		s.last, s.secondLast, s.thirdLast = cur, s.last, s.secondLast
		return
	}
	s.stats.quadCount[s.thirdLast<<48|s.secondLast<<32|s.last<<16|cur]++
	s.last, s.secondLast, s.thirdLast = cur, s.last, s.secondLast
}
