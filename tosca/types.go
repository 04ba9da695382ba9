// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package tosca defines the value types and the world-state boundary shared
// by the message-frame core and its external collaborators. It purposely
// knows nothing about opcode dispatch, persistence, or cryptography -- those
// are the responsibility of the components consuming this package.
package tosca

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Address represents the 160-bit (20 bytes) address of an account.
type Address [20]byte

// Key represents the 256-bit (32 bytes) key of a storage slot.
type Key [32]byte

// Word represents an arbitrary 256-bit (32 byte) word in the EVM. It is
// also usable as a 32-byte big-endian byte string.
type Word [32]byte

// Value represents an amount of chain currency, typically wei.
type Value [32]byte

// Hash represents the 256-bit (32 bytes) hash of a code, a block, a topic,
// or a similar cryptographic summary.
type Hash [32]byte

// Code represents the raw byte-code of a contract, legacy or structured.
type Code []byte

func (a Address) String() string { return fmt.Sprintf("0x%x", a[:]) }
func (k Key) String() string     { return fmt.Sprintf("0x%x", k[:]) }
func (w Word) String() string    { return fmt.Sprintf("0x%x", w[:]) }
func (v Value) String() string   { return fmt.Sprintf("0x%x", v[:]) }
func (h Hash) String() string    { return fmt.Sprintf("0x%x", h[:]) }

// IsZero reports whether w is the all-zero word.
func (w Word) IsZero() bool { return w == Word{} }

func (a Address) MarshalText() ([]byte, error) { return bytesToText(a[:]) }
func (a *Address) UnmarshalText(data []byte) error { return textToBytes(a[:], data) }

func bytesToText(data []byte) ([]byte, error) {
	return []byte(fmt.Sprintf("0x%x", data)), nil
}

func textToBytes(dst []byte, data []byte) error {
	s := string(data)
	if !strings.HasPrefix(s, "0x") {
		return fmt.Errorf("invalid format, does not start with 0x: %v", s)
	}
	decoded, err := hex.DecodeString(s[2:])
	if err != nil {
		return err
	}
	if want, got := len(dst), len(decoded); want != got {
		return fmt.Errorf("invalid format, wanted %d bytes, got %d", want, got)
	}
	copy(dst, decoded)
	return nil
}
