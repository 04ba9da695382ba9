// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package frame implements the message-frame execution context: the
// per-call state container an EVM interpreter mutates on every
// instruction. It composes a bounded operand stack, a return stack for
// structured code sections, lazily-grown memory, transient storage,
// hierarchical warm-sets, substate accumulators and a lifecycle state
// machine, and exposes the operations an interpreter performs on them.
package frame

import (
	"fmt"
	"sync"

	"golang.org/x/exp/slices"

	"github.com/Fantom-foundation/msgframe/common"
)

// MaxStackSize is the default bound on operand-stack depth.
const MaxStackSize = 1024

// Stack is the EVM operand stack: a bounded LIFO of 256-bit words.
type Stack struct {
	stack []common.U256
}

var stackPool = sync.Pool{
	New: func() interface{} {
		return &Stack{stack: make([]common.U256, 0, MaxStackSize)}
	},
}

// NewStack returns a pooled stack pre-populated with the given values,
// bottom first.
func NewStack(values ...common.U256) *Stack {
	s := stackPool.Get().(*Stack)
	if cap(s.stack) < len(values) {
		s.stack = make([]common.U256, len(values))
	} else {
		s.stack = s.stack[:len(values)]
	}
	copy(s.stack, values)
	return s
}

// Release returns the stack to the pool. The stack must not be used
// afterwards.
func (s *Stack) Release() {
	stackPool.Put(s)
}

// Clone creates an independent copy of the stack.
func (s *Stack) Clone() *Stack {
	clone := stackPool.Get().(*Stack)
	if cap(clone.stack) < s.Size() {
		clone.stack = make([]common.U256, s.Size())
	} else {
		clone.stack = clone.stack[:s.Size()]
	}
	copy(clone.stack, s.stack)
	return clone
}

// Size returns the number of elements currently on the stack.
func (s *Stack) Size() int {
	return len(s.stack)
}

// Peek returns the value at the given offset from the top (0 = top)
// without removing it.
func (s *Stack) Peek(offset int) (common.U256, error) {
	if offset < 0 || offset >= s.Size() {
		return common.U256{}, StackUnderflow
	}
	return s.stack[s.Size()-offset-1], nil
}

// Get is an alias of Peek kept for callers indexing from the top the
// way the interpreter's DUP/SWAP decoding does.
func (s *Stack) Get(offset int) (common.U256, error) {
	return s.Peek(offset)
}

// Set overwrites the value at the given offset from the top (0 = top).
func (s *Stack) Set(offset int, value common.U256) error {
	if offset < 0 || offset >= s.Size() {
		return StackUnderflow
	}
	s.stack[s.Size()-offset-1] = value
	return nil
}

// Push adds value to the top of the stack. Returns StackOverflow
// without mutating the stack if the push would exceed MaxStackSize.
func (s *Stack) Push(value common.U256) error {
	if s.Size() >= MaxStackSize {
		return StackOverflow
	}
	s.stack = append(s.stack, value)
	return nil
}

// Pop removes and returns the top value. Returns StackUnderflow if the
// stack is empty.
func (s *Stack) Pop() (common.U256, error) {
	if s.Size() == 0 {
		return common.U256{}, StackUnderflow
	}
	value := s.stack[s.Size()-1]
	s.stack = s.stack[:s.Size()-1]
	return value, nil
}

// BulkPop removes the top n values, discarding them. Returns
// StackUnderflow without mutating the stack if fewer than n elements
// are present.
func (s *Stack) BulkPop(n int) error {
	if n < 0 || n > s.Size() {
		return StackUnderflow
	}
	s.stack = s.stack[:s.Size()-n]
	return nil
}

// Eq returns true if the two stacks hold the same values in the same
// order.
func (a *Stack) Eq(b *Stack) bool {
	return slices.Equal(a.stack, b.stack)
}

// Diff returns a human-readable list of differences between the two
// stacks, for use in tests and diagnostics.
func (a *Stack) Diff(b *Stack) (res []string) {
	if a.Size() != b.Size() {
		res = append(res, fmt.Sprintf("different stack size: %v vs %v", a.Size(), b.Size()))
		return
	}
	for i := 0; i < a.Size(); i++ {
		av, _ := a.Peek(i)
		bv, _ := b.Peek(i)
		if av.Ne(bv) {
			res = append(res, fmt.Sprintf("different stack value at position %d:\n    %v\n    vs\n    %v\n", i, av, bv))
		}
	}
	return
}
