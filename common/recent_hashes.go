// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"fmt"

	"pgregory.net/rand"

	"github.com/Fantom-foundation/msgframe/tosca"
)

// RecentBlockHashes is an immutable window of the 256 most recent block
// hashes, trivially cloneable. It backs the BlockHashLookup closure the
// frame environment exposes to the BLOCKHASH opcode. A zero value answers
// every lookup with the zero hash.
type RecentBlockHashes struct {
	data *[256]tosca.Hash
}

func NewRecentBlockHashes(hashes ...tosca.Hash) RecentBlockHashes {
	var data [256]tosca.Hash
	copy(data[:], hashes)
	return RecentBlockHashes{data: &data}
}

func NewRandomRecentBlockHashes(rnd *rand.Rand) RecentBlockHashes {
	var data [256]tosca.Hash
	for i := range data {
		data[i] = GetRandomHash(rnd)
	}
	return RecentBlockHashes{data: &data}
}

// Get returns the hash stored at the given distance from the current block
// (0 = most recent). Panics if index is out of the 256-entry window.
func (b RecentBlockHashes) Get(index uint64) tosca.Hash {
	if index >= 256 {
		panic(fmt.Sprintf("index out of range: %d", index))
	}
	if b.data == nil {
		return tosca.Hash{}
	}
	return b.data[index]
}

// Lookup adapts the window into the function long->hash shape the frame
// environment's BlockHashLookup field requires.
func (b RecentBlockHashes) Lookup(currentBlock int64) func(number int64) tosca.Hash {
	return func(number int64) tosca.Hash {
		distance := currentBlock - number
		if distance <= 0 || distance > 256 {
			return tosca.Hash{}
		}
		return b.Get(uint64(distance - 1))
	}
}
