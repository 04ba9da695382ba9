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

// CallFunction implements CALLF(targetSection): transfers control into
// a callee code section, pushing a ReturnStackItem so RETF can resume
// the caller. Returns the exceptional-halt reason on failure, or
// NoHalt on success; it never mutates pc/section/the return stack on
// failure.
func (f *Frame) CallFunction(targetSection int) ExceptionalHaltReason {
	target, ok := f.Code.GetCodeSection(targetSection)
	if !ok {
		return CodeSectionMissing
	}
	if f.Stack.Size()+target.MaxStackHeight-target.Inputs > MaxStackSize {
		return TooManyStackItems
	}
	if f.Stack.Size() < target.Inputs {
		return TooFewInputsForCodeSection
	}

	f.ReturnStack.Push(ReturnStackItem{
		Section:     f.Section,
		PC:          f.PC + 2,
		StackHeight: f.Stack.Size() - target.Inputs,
	})
	f.Section = targetSection
	f.PC = target.EntryPoint - 1 // the interpreter's post-op pc += 1 restores the entry point
	return NoHalt
}

// JumpFunction implements JUMPF(targetSection): a tail call that
// replaces the current code section without growing the return stack.
func (f *Frame) JumpFunction(targetSection int) ExceptionalHaltReason {
	target, ok := f.Code.GetCodeSection(targetSection)
	if !ok {
		return CodeSectionMissing
	}
	top := f.ReturnStack.Peek()
	if f.Stack.Size() != top.StackHeight+target.Inputs {
		return JumpfStackMismatch
	}

	f.Section = targetSection
	f.PC = -1 // the interpreter's post-op pc += 1 restores entry point 0
	return NoHalt
}

// ReturnFunction implements RETF: pops the return stack and resumes
// the caller, or -- if the return stack is now exhausted -- marks the
// outermost section's successful completion.
func (f *Frame) ReturnFunction() ExceptionalHaltReason {
	popped := f.ReturnStack.Pop()
	if f.Stack.Size() != popped.StackHeight+f.currentSectionOutputs() {
		return IncorrectCodeSectionReturnOutputs
	}

	if f.ReturnStack.IsEmpty() {
		f.SetState(StateCodeSuccess)
		f.OutputData = nil
		return NoHalt
	}

	f.PC = popped.PC
	f.Section = popped.Section
	return NoHalt
}

// currentSectionOutputs returns the declared Outputs of the active
// code section, or 0 for legacy code (section 0 with no declared
// contract).
func (f *Frame) currentSectionOutputs() int {
	section, ok := f.Code.GetCodeSection(f.Section)
	if !ok {
		return 0
	}
	return section.Outputs
}
