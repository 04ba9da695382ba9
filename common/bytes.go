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

// RightPadSlice returns a copy of source, zero-padded (or truncated) on the
// right to exactly size elements.
func RightPadSlice[T any](source []T, size int) []T {
	res := make([]T, size)
	copy(res, source)
	return res
}

// LeftPadSlice returns a copy of source, zero-padded on the left to exactly
// size elements. If source is longer than size, it is right-aligned and
// truncated from the left.
func LeftPadSlice[T any](source []T, size int) []T {
	res := make([]T, size)
	if size < len(source) {
		copy(res, source[len(source)-size:])
	} else {
		copy(res[size-len(source):], source)
	}
	return res
}

func GetRandomHash(rnd *rand.Rand) tosca.Hash {
	var res tosca.Hash
	_, _ = rnd.Read(res[:]) // rnd.Read never returns an error
	return res
}

func RandomAddress(rnd *rand.Rand) tosca.Address {
	var a tosca.Address
	_, _ = rnd.Read(a[:])
	return a
}

func RandomBytesOfSize(rnd *rand.Rand, size int) []byte {
	data := make([]byte, size)
	_, _ = rnd.Read(data)
	return data
}

// FormatBytesSummary renders data for diagnostics, eliding the middle of
// long blobs so log lines stay readable.
func FormatBytesSummary(data []byte, cutoff int) string {
	if len(data) <= cutoff {
		return fmt.Sprintf("%x", data)
	}
	return fmt.Sprintf("%x... (size: %d)", data[:cutoff], len(data))
}
