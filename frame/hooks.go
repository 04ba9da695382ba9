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

import "github.com/Fantom-foundation/msgframe/common"

// MemoryUpdate records the most recent explicit memory write, for
// tracer consumption.
type MemoryUpdate struct {
	Offset uint64
	Data   []byte
}

// StorageUpdate records the most recent explicit storage write.
type StorageUpdate struct {
	Key   common.U256
	Value common.U256
}

// hooks holds the tracer-observable "last update" state a frame
// exposes; it is embedded into Frame. Both fields are cleared at the
// start of every opcode by ResetHooks and set only by writes the
// opcode semantics mark explicit -- internal bookkeeping writes (e.g.
// pre-warming during construction) never touch them (§4.K).
type hooks struct {
	lastUpdatedMemory  *MemoryUpdate
	lastUpdatedStorage *StorageUpdate
}

// ResetHooks clears both observable hooks. The interpreter calls this
// once at the start of every opcode, before dispatching it.
func (f *Frame) ResetHooks() {
	f.lastUpdatedMemory = nil
	f.lastUpdatedStorage = nil
}

// RecordMemoryUpdate marks an explicit memory write for tracer
// consumption, overwriting whatever was recorded earlier this opcode.
func (f *Frame) RecordMemoryUpdate(offset uint64, data []byte) {
	cp := make([]byte, len(data))
	copy(cp, data)
	f.lastUpdatedMemory = &MemoryUpdate{Offset: offset, Data: cp}
}

// RecordStorageUpdate marks an explicit storage write for tracer
// consumption.
func (f *Frame) RecordStorageUpdate(key, value common.U256) {
	f.lastUpdatedStorage = &StorageUpdate{Key: key, Value: value}
}

// LastUpdatedMemory returns the most recent explicit memory write
// since the last ResetHooks call, or nil if none occurred.
func (f *Frame) LastUpdatedMemory() *MemoryUpdate {
	return f.lastUpdatedMemory
}

// LastUpdatedStorage returns the most recent explicit storage write
// since the last ResetHooks call, or nil if none occurred.
func (f *Frame) LastUpdatedStorage() *StorageUpdate {
	return f.lastUpdatedStorage
}
