// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package tosca

//go:generate mockgen -source world_state.go -destination world_state_mock.go -package tosca

// WorldState is the narrow, read-mostly interface the message-frame core
// requires of the persistent world state. The core never reasons about
// tries, databases, or commit semantics; it only ever needs to look an
// account or a storage slot up.
type WorldState interface {
	Get(address Address) (Account, bool)
}

// Account is the sliver of account state the frame core touches: enough to
// pre-warm a storage slot during frame construction.
type Account interface {
	GetStorageValue(slot Word) Word
}

// BlockValues is the read-only view of the current block the interpreter
// makes available to every frame. It is consumed, never mutated, by the
// core.
type BlockValues struct {
	ChainID     Word
	BlockNumber int64
	Timestamp   int64
	Coinbase    Address
	GasLimit    int64
	PrevRandao  Hash
	BaseFee     Value
	BlobBaseFee Value
	Revision    Revision
}
