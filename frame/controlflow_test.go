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

	"github.com/Fantom-foundation/msgframe/common"
)

func newTestEOFCode() *Code {
	raw := make([]byte, 32)
	return NewStructuredCode(raw, []CodeSection{
		{EntryPoint: 0, Inputs: 0, Outputs: 0, MaxStackHeight: 2},
		{EntryPoint: 16, Inputs: 1, Outputs: 1, MaxStackHeight: 1},
	})
}

// TestCallfRetf_RoundTrip exercises scenario S2: CALLF into a one-in
// one-out section, then RETF back, preserving PC/section bookkeeping.
func TestCallfRetf_RoundTrip(t *testing.T) {
	f := &Frame{
		Code:         newTestEOFCode(),
		Stack:        NewStack(common.NewU256(1)),
		ReturnStack:  NewReturnStack(),
		MaxStackSize: MaxStackSize,
		PC:           0,
		Section:      0,
	}

	if halt := f.CallFunction(1); halt != NoHalt {
		t.Fatalf("unexpected halt: %v", halt)
	}
	if f.Section != 1 {
		t.Errorf("unexpected section after CALLF: %v", f.Section)
	}
	if f.PC != 15 {
		t.Errorf("unexpected pc after CALLF: %v", f.PC)
	}
	top := f.ReturnStack.Peek()
	want := ReturnStackItem{Section: 0, PC: 2, StackHeight: 0}
	if top != want {
		t.Errorf("unexpected return stack top: %+v, want %+v", top, want)
	}

	// Simulate the callee consuming its one input and producing its one
	// output: net stack size unchanged, satisfying RETF's outputs check.
	_, _ = f.Stack.Pop()
	_ = f.Stack.Push(common.NewU256(2))

	if halt := f.ReturnFunction(); halt != NoHalt {
		t.Fatalf("unexpected halt on RETF: %v", halt)
	}
	if f.Section != 0 {
		t.Errorf("unexpected section after RETF: %v", f.Section)
	}
	if f.PC != 2 {
		t.Errorf("unexpected pc after RETF: %v", f.PC)
	}
	if f.ReturnStack.Size() != 1 {
		t.Errorf("expected only the sentinel left on the return stack, size = %v", f.ReturnStack.Size())
	}
}

// TestJumpf_StackMismatch exercises scenario S3: a JUMPF whose operand
// stack height does not match the target's declared inputs relative to
// the current return-stack-recorded height.
func TestJumpf_StackMismatch(t *testing.T) {
	code := NewStructuredCode(make([]byte, 32), []CodeSection{
		{EntryPoint: 0, Inputs: 0, Outputs: 0, MaxStackHeight: 4},
		{EntryPoint: 8, Inputs: 2, Outputs: 0, MaxStackHeight: 2},
	})
	f := &Frame{
		Code:        code,
		Stack:       NewStack(common.NewU256(1), common.NewU256(2), common.NewU256(3)),
		ReturnStack: NewReturnStack(), // sentinel stackHeight = 0
		PC:          5,
		Section:     0,
	}

	halt := f.JumpFunction(1)
	if halt != JumpfStackMismatch {
		t.Errorf("expected JumpfStackMismatch, got %v", halt)
	}
	if f.PC != 5 || f.Section != 0 {
		t.Errorf("pc/section must be unchanged on mismatch, got pc=%v section=%v", f.PC, f.Section)
	}
	if f.ReturnStack.Size() != 1 {
		t.Errorf("return stack must be unchanged on mismatch")
	}
}

func TestCallf_MissingSectionHalts(t *testing.T) {
	f := &Frame{
		Code:        newTestEOFCode(),
		Stack:       NewStack(),
		ReturnStack: NewReturnStack(),
	}
	if halt := f.CallFunction(99); halt != CodeSectionMissing {
		t.Errorf("expected CodeSectionMissing, got %v", halt)
	}
}

func TestCallf_TooFewInputsHalts(t *testing.T) {
	code := NewStructuredCode(make([]byte, 32), []CodeSection{
		{EntryPoint: 0},
		{EntryPoint: 4, Inputs: 3},
	})
	f := &Frame{
		Code:        code,
		Stack:       NewStack(common.NewU256(1)),
		ReturnStack: NewReturnStack(),
	}
	if halt := f.CallFunction(1); halt != TooFewInputsForCodeSection {
		t.Errorf("expected TooFewInputsForCodeSection, got %v", halt)
	}
}

func TestCallf_TooManyStackItemsHalts(t *testing.T) {
	values := make([]common.U256, MaxStackSize-1)
	code := NewStructuredCode(make([]byte, 32), []CodeSection{
		{EntryPoint: 0},
		{EntryPoint: 4, MaxStackHeight: 2},
	})
	f := &Frame{
		Code:        code,
		Stack:       NewStack(values...),
		ReturnStack: NewReturnStack(),
	}
	if halt := f.CallFunction(1); halt != TooManyStackItems {
		t.Errorf("expected TooManyStackItems, got %v", halt)
	}
}
