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
	"fmt"

	"golang.org/x/exp/maps"

	"github.com/Fantom-foundation/msgframe/common"
	"github.com/Fantom-foundation/msgframe/tosca"
)

// TransientKey identifies a transient-storage slot within a single
// frame's overlay: an (address, storage slot) pair (EIP-1153).
type TransientKey struct {
	Address tosca.Address
	Slot    common.U256
}

// TransientStorage is a single frame's transient-storage overlay. It
// holds only what this frame itself has read or written; ancestor
// lookups and memoization are performed by Frame.GetTransientStorage,
// which is the only place that knows about the parent chain.
type TransientStorage struct {
	storage map[TransientKey]common.U256
}

// localGet returns the value held directly in this overlay and
// whether the key is present at all (as opposed to present-and-zero).
func (t *TransientStorage) localGet(key TransientKey) (common.U256, bool) {
	v, ok := t.storage[key]
	return v, ok
}

// set records value for key in this overlay. A zero value is still
// recorded explicitly, distinguishing "known to be zero" (memoized)
// from "never looked at" -- both read the same as zero, but the former
// must not re-traverse the parent chain.
func (t *TransientStorage) set(key TransientKey, value common.U256) {
	if t.storage == nil {
		t.storage = make(map[TransientKey]common.U256)
	}
	t.storage[key] = value
}

// Clone creates an independent copy of the overlay.
func (t *TransientStorage) Clone() *TransientStorage {
	return &TransientStorage{storage: maps.Clone(t.storage)}
}

// CommitInto writes every entry of t into parent, overwriting parent's
// values for the same keys. Must only be invoked by the caller when
// this frame completed successfully; committing a reverted frame's
// overlay would leak its writes into the parent (see §9 design note on
// commit-before-revert-guard).
func (t *TransientStorage) CommitInto(parent *TransientStorage) {
	for k, v := range t.storage {
		parent.set(k, v)
	}
}

// IsAllZero reports whether every entry recorded in this overlay is
// the zero value.
func (t *TransientStorage) IsAllZero() bool {
	for _, v := range t.storage {
		if !v.IsZero() {
			return false
		}
	}
	return true
}

func (t *TransientStorage) Eq(other *TransientStorage) bool {
	return mapEqualIgnoringZeroValues(t.storage, other.storage)
}

func (t *TransientStorage) Diff(other *TransientStorage) (res []string) {
	keys := make(map[TransientKey]struct{})
	for k := range t.storage {
		keys[k] = struct{}{}
	}
	for k := range other.storage {
		keys[k] = struct{}{}
	}
	for k := range keys {
		av, bv := t.storage[k], other.storage[k]
		if av.Ne(bv) {
			res = append(res, fmt.Sprintf("different transient storage value at %+v:\n    %v\n    vs\n    %v\n", k, av, bv))
		}
	}
	return
}

// mapEqualIgnoringZeroValues compares two maps of U256 values treating
// an absent key the same as a present zero-valued key.
func mapEqualIgnoringZeroValues[K comparable](a, b map[K]common.U256) bool {
	for k, v := range a {
		if bv, ok := b[k]; ok {
			if !v.Eq(bv) {
				return false
			}
		} else if !v.IsZero() {
			return false
		}
	}
	for k, v := range b {
		if _, ok := a[k]; !ok && !v.IsZero() {
			return false
		}
	}
	return true
}
