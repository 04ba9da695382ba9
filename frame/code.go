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
	"bytes"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/crypto"
)

// MaxCodeSize is the maximum size of a contract deployed on an
// Ethereum-compatible chain.
const MaxCodeSize = 1<<14 + 1<<13 // 24576

// pushOpcodeLow and pushOpcodeHigh bound the legacy PUSH1..PUSH32
// opcode range; bytes in that range are followed by immediate data
// that must never be mistaken for an opcode when scanning.
const (
	pushOpcodeLow  = 0x60
	pushOpcodeHigh = 0x7f
)

// CodeSection describes one structured (EOF) code section's calling
// contract: where it starts, how many stack items it consumes and
// produces, and how much additional stack depth it may use.
// Legacy code is modeled as a single section 0 spanning the whole
// code, with inputs=outputs=maxStackHeight=0 (unchecked).
type CodeSection struct {
	EntryPoint     int
	Inputs         int
	Outputs        int
	MaxStackHeight int
}

// Code is an immutable representation of EVM bytecode, addressable by
// one or more CodeSections. It may be freely shared via shallow
// copies; Clone is a no-op for that reason, mirroring the teacher's
// copy-on-write-free immutable Code type.
type Code struct {
	code           []byte
	isCode         []bool
	sections       []CodeSection
	hash           [32]byte
	hashCalculated bool
	hashMutex      sync.Mutex
}

// ErrInvalidPosition is returned by Code observers when a position
// does not address the start of an opcode.
type ErrInvalidPosition struct{}

func (ErrInvalidPosition) Error() string { return "invalid position" }

// NewCode builds legacy (single-section) code: the whole byte range is
// section 0, with no declared input/output/stack-height contract.
func NewCode(code []byte) *Code {
	return newCode(code, []CodeSection{{EntryPoint: 0}})
}

// NewStructuredCode builds EOF-style multi-section code. Building a
// structured Code below the revision that activates code sections
// (tosca.R14_Prague) is a construction error left to the Builder to
// enforce (§9 design note on the revision gate).
func NewStructuredCode(code []byte, sections []CodeSection) *Code {
	if len(sections) == 0 {
		panic("structured code requires at least one section")
	}
	return newCode(code, sections)
}

func newCode(code []byte, sections []CodeSection) *Code {
	isCode := make([]bool, 0, len(code)+32)
	for i := 0; i < len(code); i++ {
		isCode = append(isCode, true)
		op := code[i]
		if op >= pushOpcodeLow && op <= pushOpcodeHigh {
			width := int(op-pushOpcodeLow) + 1
			isCode = append(isCode, make([]bool, width)...)
			i += width
		}
	}
	c := &Code{
		code:     bytes.Clone(code),
		isCode:   isCode,
		sections: sections,
	}
	return c
}

// Clone returns c itself: Code is immutable, so sharing it across
// frames is safe without copying.
func (c *Code) Clone() *Code {
	return c
}

func (c *Code) Length() int {
	return len(c.code)
}

// Hash returns the Keccak256 hash of the raw code, computed once and
// memoized.
func (c *Code) Hash() [32]byte {
	c.hashMutex.Lock()
	defer c.hashMutex.Unlock()

	if !c.hashCalculated {
		c.hash = crypto.Keccak256Hash(c.code)
		c.hashCalculated = true
	}
	return c.hash
}

func (c *Code) IsCode(pos int) bool {
	if pos < 0 || pos >= len(c.isCode) {
		return true // out-of-bounds reads as an implicit STOP
	}
	return c.isCode[pos]
}

func (c *Code) IsData(pos int) bool {
	return !c.IsCode(pos)
}

// GetByte returns the raw byte at pos, or 0 for an out-of-bounds
// implicit STOP.
func (c *Code) GetByte(pos int) byte {
	if pos < 0 || pos >= len(c.code) {
		return 0
	}
	return c.code[pos]
}

// GetData returns the byte at pos if it is immediate (PUSH) data.
func (c *Code) GetData(pos int) (byte, error) {
	if !c.IsData(pos) {
		return 0, ErrInvalidPosition{}
	}
	if pos >= len(c.code) {
		return 0, nil
	}
	return c.code[pos], nil
}

// NumSections returns the number of code sections: 1 for legacy code.
func (c *Code) NumSections() int {
	return len(c.sections)
}

// GetCodeSection returns the section at the given index. ok is false
// if the index is out of range, corresponding to the spec's
// CodeSectionMissing condition for CALLF/JUMPF targets.
func (c *Code) GetCodeSection(index int) (section CodeSection, ok bool) {
	if index < 0 || index >= len(c.sections) {
		return CodeSection{}, false
	}
	return c.sections[index], true
}

// IsValid reports whether entry-point lookup into section 0 is safe,
// i.e. whether the code declares at least one section.
func (c *Code) IsValid() bool {
	return len(c.sections) > 0
}

// CopyCodeSlice copies code[start:end] into dst, returning the number
// of bytes copied.
func (c *Code) CopyCodeSlice(start, end int, dst []byte) int {
	if start < 0 {
		start = 0
	}
	if end > len(c.code) {
		end = len(c.code)
	}
	if start >= end {
		return 0
	}
	return copy(dst, c.code[start:end])
}

func (c *Code) Eq(other *Code) bool {
	return c.Hash() == other.Hash() && bytes.Equal(c.code, other.code)
}

func (a *Code) Diff(b *Code) (res []string) {
	if a.Length() != b.Length() {
		res = append(res, fmt.Sprintf("different code size: %v vs %v", a.Length(), b.Length()))
		return
	}
	for i := 0; i < a.Length(); i++ {
		if a.code[i] != b.code[i] {
			res = append(res, fmt.Sprintf("different code/data at position %d: 0x%02x vs 0x%02x", i, a.code[i], b.code[i]))
		}
	}
	return
}

func (c *Code) Copy() []byte {
	return bytes.Clone(c.code)
}

func (c *Code) String() string {
	return fmt.Sprintf("%x", c.code)
}
