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
	"io"
)

// loggingRunner is a runner that logs every retired cycle to an io.Writer.
// Without a writer, nothing is logged.
type loggingRunner struct {
	log io.Writer
}

// newLogger creates a new logging runner that writes to the provided
// io.Writer.
func newLogger(writer io.Writer) loggingRunner {
	return loggingRunner{log: writer}
}

func (l loggingRunner) run(s stepper) (status, error) {
	status := statusRunning
	var err error
	for status == statusRunning {
		status, err = s.step()
		if err != nil {
			return status, err
		}
		if l.log == nil {
			continue
		}
		// log format: <pc>, <variant>, <ergs>, <r1>[, skipped|panic]\n
		last := s.lastCycle()
		suffix := ""
		if last.skipped {
			suffix = ", skipped"
		} else if last.panicked {
			suffix = ", panic"
		}
		if _, err := fmt.Fprintf(l.log, "%d, %v, %d, %v%s\n", last.pc, last.variant, last.ergs, last.r1, suffix); err != nil {
			return status, err
		}
	}
	return status, nil
}
