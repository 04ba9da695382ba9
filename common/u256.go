// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package common provides the small, dependency-light value types shared
// across the message-frame core: 256-bit words, byte blobs, and their
// random-generation helpers used by property tests.
package common

import (
	"math"
	"math/big"

	"pgregory.net/rand"

	"github.com/holiman/uint256"
)

// U256 is a 256-bit word. Contrary to holiman/uint256.Int the API operates
// on values rather than pointers, so U256 is safe to use as a map key and
// to pass around without aliasing surprises.
type U256 struct {
	internal uint256.Int
}

// NewU256 creates a new U256 instance from up to 4 uint64 arguments, given
// from most significant to least significant. No argument yields zero.
func NewU256(args ...uint64) (result U256) {
	if len(args) > 4 {
		panic("too many arguments")
	}
	offset := 4 - len(args)
	for i := 0; i < len(args) && i < len(result.internal); i++ {
		result.internal[3-i-offset] = args[i]
	}
	return
}

// NewU256FromBytes creates a new U256 from up to 32 big-endian bytes.
func NewU256FromBytes(bytes ...byte) (result U256) {
	if len(bytes) > 32 {
		panic("too many arguments")
	}
	result.internal.SetBytes(bytes)
	return
}

// NewU256FromBigInt converts a non-negative big.Int of at most 256 bits.
func NewU256FromBigInt(b *big.Int) (result U256) {
	if b.Sign() < 0 {
		panic("cannot construct U256 from negative big.Int")
	}
	if result.internal.SetFromBig(b) {
		panic("big.Int overflows 256 bits")
	}
	return
}

func RandU256(rnd *rand.Rand) U256 {
	var value U256
	value.internal[0] = rnd.Uint64()
	value.internal[1] = rnd.Uint64()
	value.internal[2] = rnd.Uint64()
	value.internal[3] = rnd.Uint64()
	return value
}

func (i U256) IsZero() bool       { return i.internal.IsZero() }
func (i U256) IsUint64() bool     { return i.internal.IsUint64() }
func (i U256) Uint64() uint64     { return i.internal.Uint64() }
func (i U256) Bytes32() [32]byte  { return i.internal.Bytes32() }
func (i U256) Bytes20() [20]byte  { return i.internal.Bytes20() }
func (a U256) Eq(b U256) bool     { return a.internal.Eq(&b.internal) }
func (a U256) Ne(b U256) bool     { return !a.internal.Eq(&b.internal) }
func (i U256) String() string     { return i.internal.Hex() }

// SizeInWords rounds size up to the next multiple of 32 bytes, expressed in
// words. Saturates instead of overflowing for pathological sizes.
func SizeInWords(size uint64) uint64 {
	if size > math.MaxUint64-31 {
		return math.MaxUint64/32 + 1
	}
	return (size + 31) / 32
}
