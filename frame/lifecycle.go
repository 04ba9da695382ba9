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

import "fmt"

// State is one of the eight lifecycle states a frame passes through.
type State int

const (
	StateNotStarted State = iota
	StateCodeExecuting
	StateCodeSuccess
	StateCodeSuspended
	StateExceptionalHalt
	StateRevert
	StateCompletedFailed
	StateCompletedSuccess
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "NotStarted"
	case StateCodeExecuting:
		return "CodeExecuting"
	case StateCodeSuccess:
		return "CodeSuccess"
	case StateCodeSuspended:
		return "CodeSuspended"
	case StateExceptionalHalt:
		return "ExceptionalHalt"
	case StateRevert:
		return "Revert"
	case StateCompletedFailed:
		return "CompletedFailed"
	case StateCompletedSuccess:
		return "CompletedSuccess"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// IsTerminal reports whether s is one of the two states that invoke
// the completer exactly once.
func (s State) IsTerminal() bool {
	return s == StateCompletedSuccess || s == StateCompletedFailed
}

// validTransitions encodes the diagram in §4.G: a legal successor set
// for every non-terminal state. Terminal states have no successors.
var validTransitions = map[State]map[State]bool{
	StateNotStarted:      {StateCodeExecuting: true, StateExceptionalHalt: true},
	StateCodeExecuting:   {StateCodeSuccess: true, StateCodeSuspended: true, StateExceptionalHalt: true, StateRevert: true},
	StateCodeSuspended:   {StateCodeExecuting: true},
	StateCodeSuccess:     {StateCompletedSuccess: true},
	StateExceptionalHalt: {StateCompletedFailed: true},
	StateRevert:          {StateCompletedFailed: true},
}

// CanTransition reports whether moving from 'from' to 'to' is a legal
// step in the lifecycle diagram.
func CanTransition(from, to State) bool {
	return validTransitions[from][to]
}

// lifecycle is embedded in Frame and owns state transitions and the
// exactly-once completer invocation (§4.G, invariant 7).
type lifecycle struct {
	state             State
	completer         func(*Frame)
	completerInvoked  bool
	exceptionalHalt   ExceptionalHaltReason
	revertReason      []byte
	currentOperation  string
}

// SetState transitions the frame to 'to'. It panics if the transition
// is not legal per the lifecycle diagram -- an illegal transition is a
// programmer error in the interpreter, not a runtime condition a
// caller should branch on (§9 design note on FSM enforcement).
func (f *Frame) SetState(to State) {
	if !CanTransition(f.state, to) {
		panic(fmt.Sprintf("illegal frame state transition: %v -> %v", f.state, to))
	}
	from := f.state
	f.state = to
	f.LogTransition(from, to)
	if to.IsTerminal() {
		f.notifyCompletion()
	}
}

// State returns the frame's current lifecycle state.
func (f *Frame) State() State {
	return f.state
}

// notifyCompletion invokes the completer exactly once, on the frame's
// first arrival at a terminal state.
func (f *Frame) notifyCompletion() {
	if f.completerInvoked {
		return
	}
	f.completerInvoked = true
	if f.completer != nil {
		f.completer(f)
	}
}
