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
	"sort"

	"golang.org/x/exp/maps"

	"github.com/Fantom-foundation/msgframe/common"
	"github.com/Fantom-foundation/msgframe/tosca"
)

// StorageKey identifies a single (address, slot) storage location for
// warm-set tracking (EIP-2929).
type StorageKey struct {
	Address tosca.Address
	Slot    common.U256
}

// WarmSet holds the addresses and storage keys this frame itself has
// warmed up. It has no notion of a parent frame; ancestor-chain
// lookups live on Frame, which is the only type that knows about
// parent/child relationships (see §9 design note on parent references).
type WarmSet struct {
	addresses map[tosca.Address]struct{}
	storage   map[StorageKey]struct{}
}

// NewWarmSet returns an empty warm set.
func NewWarmSet() *WarmSet {
	return &WarmSet{}
}

// markAddressWarm inserts a locally and reports whether it was already
// present in this frame's own set (not considering ancestors).
func (w *WarmSet) markAddressWarm(a tosca.Address) (alreadyLocal bool) {
	if w.addresses == nil {
		w.addresses = make(map[tosca.Address]struct{})
	}
	_, alreadyLocal = w.addresses[a]
	w.addresses[a] = struct{}{}
	return
}

// markStorageWarm inserts key locally and reports whether it was
// already present in this frame's own set.
func (w *WarmSet) markStorageWarm(key StorageKey) (alreadyLocal bool) {
	if w.storage == nil {
		w.storage = make(map[StorageKey]struct{})
	}
	_, alreadyLocal = w.storage[key]
	w.storage[key] = struct{}{}
	return
}

func (w *WarmSet) isAddressWarmLocally(a tosca.Address) bool {
	_, ok := w.addresses[a]
	return ok
}

func (w *WarmSet) isStorageWarmLocally(key StorageKey) bool {
	_, ok := w.storage[key]
	return ok
}

// Clone creates an independent copy of the warm set.
func (w *WarmSet) Clone() *WarmSet {
	return &WarmSet{
		addresses: maps.Clone(w.addresses),
		storage:   maps.Clone(w.storage),
	}
}

// UnionInto merges w's entries into parent. Idempotent and commutative:
// merging the same child twice, or merging two children in either
// order, yields the same resulting parent set (§4.J, property 10).
func (w *WarmSet) UnionInto(parent *WarmSet) {
	if len(w.addresses) > 0 && parent.addresses == nil {
		parent.addresses = make(map[tosca.Address]struct{}, len(w.addresses))
	}
	for a := range w.addresses {
		parent.addresses[a] = struct{}{}
	}
	if len(w.storage) > 0 && parent.storage == nil {
		parent.storage = make(map[StorageKey]struct{}, len(w.storage))
	}
	for k := range w.storage {
		parent.storage[k] = struct{}{}
	}
}

func (a *WarmSet) Eq(b *WarmSet) bool {
	if len(a.addresses) != len(b.addresses) || len(a.storage) != len(b.storage) {
		return false
	}
	for addr := range a.addresses {
		if !b.isAddressWarmLocally(addr) {
			return false
		}
	}
	for key := range a.storage {
		if !b.isStorageWarmLocally(key) {
			return false
		}
	}
	return true
}

func (a *WarmSet) Diff(b *WarmSet) (res []string) {
	addrs := make(map[tosca.Address]struct{})
	for addr := range a.addresses {
		addrs[addr] = struct{}{}
	}
	for addr := range b.addresses {
		addrs[addr] = struct{}{}
	}
	list := maps.Keys(addrs)
	sort.Slice(list, func(i, j int) bool { return list[i].String() < list[j].String() })
	for _, addr := range list {
		if a.isAddressWarmLocally(addr) != b.isAddressWarmLocally(addr) {
			res = append(res, fmt.Sprintf("different warm-address membership for %v", addr))
		}
	}
	if len(a.storage) != len(b.storage) {
		res = append(res, fmt.Sprintf("different warm-storage set size: %v vs %v", len(a.storage), len(b.storage)))
	}
	return
}
