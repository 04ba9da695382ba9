// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package frame

import (
	"testing"

	"pgregory.net/rand"

	"github.com/Fantom-foundation/msgframe/common"
)

func TestStack_NewStack(t *testing.T) {
	stack := NewStack()
	if want, got := 0, stack.Size(); want != got {
		t.Errorf("unexpected stack size, want %v, got %v", want, got)
	}

	stack = NewStack(common.NewU256(1))
	if want, got := 1, stack.Size(); want != got {
		t.Errorf("unexpected stack size, want %v, got %v", want, got)
	}
}

func TestStack_PushPopRoundTrip(t *testing.T) {
	stack := NewStack()
	if err := stack.Push(common.NewU256(42)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	value, err := stack.Pop()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !value.Eq(common.NewU256(42)) {
		t.Errorf("unexpected value, want 42, got %v", value)
	}
	if stack.Size() != 0 {
		t.Errorf("unexpected stack size after pop: %v", stack.Size())
	}
}

func TestStack_PopOnEmptyYieldsUnderflow(t *testing.T) {
	stack := NewStack()
	if _, err := stack.Pop(); err != StackUnderflow {
		t.Errorf("expected StackUnderflow, got %v", err)
	}
}

func TestStack_PeekOutOfRangeYieldsUnderflow(t *testing.T) {
	stack := NewStack(common.NewU256(1))
	if _, err := stack.Peek(1); err != StackUnderflow {
		t.Errorf("expected StackUnderflow, got %v", err)
	}
	if _, err := stack.Peek(-1); err != StackUnderflow {
		t.Errorf("expected StackUnderflow, got %v", err)
	}
}

func TestStack_PushPastMaxSizeYieldsOverflow(t *testing.T) {
	values := make([]common.U256, MaxStackSize)
	stack := NewStack(values...)
	if err := stack.Push(common.NewU256(1)); err != StackOverflow {
		t.Errorf("expected StackOverflow, got %v", err)
	}
	if stack.Size() != MaxStackSize {
		t.Errorf("stack mutated on overflow: size = %v", stack.Size())
	}
}

func TestStack_BulkPop(t *testing.T) {
	stack := NewStack(common.NewU256(1), common.NewU256(2), common.NewU256(3))
	if err := stack.BulkPop(2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stack.Size() != 1 {
		t.Errorf("unexpected size after BulkPop: %v", stack.Size())
	}
	if err := stack.BulkPop(5); err != StackUnderflow {
		t.Errorf("expected StackUnderflow, got %v", err)
	}
	if stack.Size() != 1 {
		t.Errorf("BulkPop mutated stack on underflow: size = %v", stack.Size())
	}
}

func TestStack_Clone(t *testing.T) {
	stack := NewStack(common.NewU256(42))
	clone := stack.Clone()

	if stack.Size() != clone.Size() {
		t.Error("clone does not have the same size")
	}

	_ = stack.Push(common.NewU256(21))
	if clone.Size() != 1 {
		t.Error("clone is not independent from original")
	}

	_ = stack.Set(1, common.NewU256(43))
	v, _ := clone.Get(0)
	if !v.Eq(common.NewU256(42)) {
		t.Error("clone is not independent from original")
	}
}

// TestStack_Property_SizeTracksPushesMinusPops exercises invariant 1
// from §8: for any sequence of pushes/pops respecting non-negativity,
// size equals pushes minus pops.
func TestStack_Property_SizeTracksPushesMinusPops(t *testing.T) {
	rnd := rand.New(rand.NewSource(1))
	stack := NewStack()
	expected := 0
	for i := 0; i < 1000; i++ {
		if expected == 0 || rnd.Intn(2) == 0 {
			_ = stack.Push(common.RandU256(rnd))
			expected++
		} else {
			if _, err := stack.Pop(); err != nil {
				t.Fatalf("unexpected underflow at size %d", expected)
			}
			expected--
		}
		if stack.Size() != expected {
			t.Fatalf("stack size diverged: want %v, got %v", expected, stack.Size())
		}
	}
}

func TestStack_Eq(t *testing.T) {
	a := NewStack(common.NewU256(1), common.NewU256(2))
	b := NewStack(common.NewU256(1), common.NewU256(2))
	if !a.Eq(b) {
		t.Error("expected equal stacks to compare equal")
	}
	_ = b.Push(common.NewU256(3))
	if a.Eq(b) {
		t.Error("expected different stacks to compare unequal")
	}
}
