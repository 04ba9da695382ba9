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
	"github.com/Fantom-foundation/msgframe/common"
	"github.com/Fantom-foundation/msgframe/tosca"
)

// Frame is the per-call execution context the interpreter mutates on
// every instruction: the composition of an operand stack, return
// stack, memory, transient storage, warm sets, substate accumulators,
// a lifecycle state machine and a read-only environment view (§3).
type Frame struct {
	lifecycle
	hooks

	Environment Environment

	// Machine state.
	GasRemaining int64
	PC           int
	Section      int
	Stack        *Stack
	ReturnStack  *ReturnStack
	Memory       *Memory
	OutputData   []byte
	ReturnData   []byte
	IsStatic     bool
	Depth        int
	MaxStackSize int

	Code *Code

	// Logger receives frame lifecycle transition reports; nil is
	// treated as a silent discard logger.
	Logger Logger

	Substate         *Substate
	WarmSet          *WarmSet
	TransientStorage *TransientStorage

	// Parent is a non-owning back-reference used only for warm-set and
	// transient-storage ancestor lookups. Frames never outlive the
	// call stack entry holding their parent (§9 design note on parent
	// references).
	Parent *Frame

	worldState tosca.WorldState
}

// IncrementGas increases the remaining gas by amount.
func (f *Frame) IncrementGas(amount int64) {
	f.GasRemaining += amount
}

// DecrementGas reduces the remaining gas by amount and returns the new
// value, which may be negative. The frame itself never rejects an
// overdraft; the caller must check for a negative result and raise
// InsufficientGas (§9 design note: gas-underflow ownership is the
// caller's, preserved from the source behavior).
func (f *Frame) DecrementGas(amount int64) int64 {
	f.GasRemaining -= amount
	return f.GasRemaining
}

// ClearGas zeroes the remaining gas, e.g. on an exceptional halt that
// consumes all remaining gas.
func (f *Frame) ClearGas() {
	f.GasRemaining = 0
}

// WarmUpAddress marks addr warm in this frame and reports whether it
// was already warm anywhere along the parent chain (the EIP-2929
// sense of "already warm"), per §4.E.
func (f *Frame) WarmUpAddress(addr tosca.Address) bool {
	if f.WarmSet.markAddressWarm(addr) {
		return true
	}
	return f.isAddressWarmInAncestor(addr)
}

func (f *Frame) isAddressWarmInAncestor(addr tosca.Address) bool {
	for p := f.Parent; p != nil; p = p.Parent {
		if p.WarmSet.isAddressWarmLocally(addr) {
			return true
		}
	}
	return false
}

// WarmUpStorage marks (addr, slot) warm in this frame and reports
// whether it was already warm anywhere along the parent chain.
func (f *Frame) WarmUpStorage(addr tosca.Address, slot common.U256) bool {
	key := StorageKey{Address: addr, Slot: slot}
	if f.WarmSet.markStorageWarm(key) {
		return true
	}
	for p := f.Parent; p != nil; p = p.Parent {
		if p.WarmSet.isStorageWarmLocally(key) {
			return true
		}
	}
	return false
}

// GetTransientStorage implements the read policy of §4.D: if the key
// is set in this frame, return it; else recursively ask the parent; if
// no ancestor has it, return zero. Once a read has traversed an
// ancestor, the resolved value (including an implicit zero) is
// memoized into this frame, so a later read never re-traverses.
func (f *Frame) GetTransientStorage(addr tosca.Address, slot common.U256) common.U256 {
	key := TransientKey{Address: addr, Slot: slot}
	if v, ok := f.TransientStorage.localGet(key); ok {
		return v
	}
	var resolved common.U256
	if f.Parent != nil {
		resolved = f.Parent.GetTransientStorage(addr, slot)
	}
	f.TransientStorage.set(key, resolved)
	return resolved
}

// SetTransientStorage writes a value into this frame's overlay only.
func (f *Frame) SetTransientStorage(addr tosca.Address, slot, value common.U256) {
	f.TransientStorage.set(TransientKey{Address: addr, Slot: slot}, value)
}

// CommitTransientStorageToParent pushes this frame's transient-storage
// overlay into the parent's, last-write-wins. The interpreter must
// call this only when the frame completed successfully (§9 design
// note on the commit-before-revert guard).
func (f *Frame) CommitTransientStorageToParent() {
	if f.Parent == nil {
		return
	}
	f.TransientStorage.CommitInto(f.Parent.TransientStorage)
}

// WasCreatedInTransaction reports whether addr was recorded as created
// by this frame or any ancestor (§4.F).
func (f *Frame) WasCreatedInTransaction(addr tosca.Address) bool {
	for fr := f; fr != nil; fr = fr.Parent {
		if fr.Substate.IsCreatedLocally(addr) {
			return true
		}
	}
	return false
}
