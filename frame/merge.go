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

// MergeResult is what the call-op implementation conveys from a
// terminated child frame back to its parent: the data the next opcode
// (e.g. RETURNDATACOPY) will see.
type MergeResult struct {
	ReturnData []byte
}

// Conclude folds a terminated child frame into its parent per §4.J. It
// must be called exactly once, after the child has reached
// CompletedSuccess or CompletedFailed, and requires the child to have
// a parent (the root frame is never concluded this way).
//
// On CompletedSuccess: the child's warm sets are unioned into the
// parent, its transient-storage overlay is committed into the
// parent's, and its substate (logs, refunds, self-destructs, creates,
// gas refund) is merged into the parent's.
//
// On CompletedFailed: all of the above is discarded. Only ReturnData
// is conveyed, exactly as the child holds it. Conclude does not tell a
// Revert from an ExceptionalHalt and does not clear ReturnData for the
// latter.
func (child *Frame) Conclude() MergeResult {
	if child.Parent == nil {
		panic("Conclude called on a frame with no parent")
	}
	if child.State() != StateCompletedSuccess && child.State() != StateCompletedFailed {
		panic("Conclude called on a non-terminal frame")
	}

	if child.State() == StateCompletedSuccess {
		child.WarmSet.UnionInto(child.Parent.WarmSet)
		child.CommitTransientStorageToParent()
		child.Substate.MergeInto(child.Parent.Substate)
		return MergeResult{ReturnData: child.ReturnData}
	}

	// CompletedFailed: warm sets, transient storage and substate are
	// discarded. ReturnData alone survives, unchanged.
	return MergeResult{ReturnData: child.ReturnData}
}
