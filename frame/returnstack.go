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

// ReturnStackItem is the tuple CALLF pushes and RETF pops: the section
// to resume in, the program counter to resume at, and the operand
// stack height in effect when the call was made.
type ReturnStackItem struct {
	Section     int
	PC          int
	StackHeight int
}

// ReturnStack is the LIFO of ReturnStackItems backing CALLF/JUMPF/RETF
// across structured code sections (EIP-4750/EIP-6206). It always
// contains at least the root sentinel pushed at construction.
type ReturnStack struct {
	items []ReturnStackItem
}

// NewReturnStack returns a return stack seeded with the root sentinel
// (section 0, pc 0, stackHeight 0).
func NewReturnStack() *ReturnStack {
	return &ReturnStack{items: []ReturnStackItem{{}}}
}

func (r *ReturnStack) Push(item ReturnStackItem) {
	r.items = append(r.items, item)
}

// Pop removes and returns the top item. Popping the sentinel itself is
// allowed (RETF does so when the outermost section returns, then checks
// IsEmpty); popping an already empty stack, below the sentinel, panics.
func (r *ReturnStack) Pop() ReturnStackItem {
	if len(r.items) == 0 {
		panic("return stack popped below sentinel")
	}
	item := r.items[len(r.items)-1]
	r.items = r.items[:len(r.items)-1]
	return item
}

func (r *ReturnStack) Peek() ReturnStackItem {
	return r.items[len(r.items)-1]
}

func (r *ReturnStack) Size() int {
	return len(r.items)
}

// IsEmpty reports whether the stack has been popped past the root
// sentinel, i.e. the outermost code section has returned.
func (r *ReturnStack) IsEmpty() bool {
	return len(r.items) == 0
}

// Clone creates an independent copy of the return stack.
func (r *ReturnStack) Clone() *ReturnStack {
	items := make([]ReturnStackItem, len(r.items))
	copy(items, r.items)
	return &ReturnStack{items: items}
}

func (a *ReturnStack) Eq(b *ReturnStack) bool {
	if len(a.items) != len(b.items) {
		return false
	}
	for i := range a.items {
		if a.items[i] != b.items[i] {
			return false
		}
	}
	return true
}

func (a *ReturnStack) Diff(b *ReturnStack) (res []string) {
	if len(a.items) != len(b.items) {
		res = append(res, fmt.Sprintf("different return stack depth: %v vs %v", len(a.items), len(b.items)))
		return
	}
	for i := range a.items {
		if a.items[i] != b.items[i] {
			res = append(res, fmt.Sprintf("different return stack item at %d: %+v vs %+v", i, a.items[i], b.items[i]))
		}
	}
	return
}
