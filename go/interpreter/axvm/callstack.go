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

import "golang.org/x/exp/constraints"

// callstack holds the frames of a run. The last frame is the current one;
// the bottom frame is never popped.
type callstack[A constraints.Unsigned] struct {
	frames []Frame[A]
}

func (c *callstack[A]) current() *Frame[A] {
	return &c.frames[len(c.frames)-1]
}

// parent returns the frame below the current one, or nil for the bottom
// frame.
func (c *callstack[A]) parent() *Frame[A] {
	if len(c.frames) < 2 {
		return nil
	}
	return &c.frames[len(c.frames)-2]
}

func (c *callstack[A]) push(frame Frame[A]) {
	c.frames = append(c.frames, frame)
}

func (c *callstack[A]) pop() Frame[A] {
	res := c.frames[len(c.frames)-1]
	c.frames = c.frames[:len(c.frames)-1]
	return res
}

func (c *callstack[A]) depth() int {
	return len(c.frames)
}
