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

	"golang.org/x/exp/slices"

	"github.com/Fantom-foundation/msgframe/common"
)

// Memory is the frame's byte-addressable working memory. It is
// logically infinite: "active" tracks the largest 32-byte-aligned
// region ever touched, and reads past it return zero-filled slices
// without growing the backing buffer.
type Memory struct {
	mem         []byte
	activeWords uint64
}

// NewMemory creates empty memory.
func NewMemory() *Memory {
	return &Memory{}
}

// Clone creates an independent copy of the memory.
func (m *Memory) Clone() *Memory {
	return &Memory{mem: slices.Clone(m.mem), activeWords: m.activeWords}
}

// Size returns the size, in bytes, of the underlying buffer. The buffer
// grows together with the active region, so this equals GetActiveBytes.
func (m *Memory) Size() int {
	return len(m.mem)
}

// GetActiveWords returns the active region size in 32-byte words.
func (m *Memory) GetActiveWords() uint64 {
	return m.activeWords
}

// GetActiveBytes returns the active region size in bytes.
func (m *Memory) GetActiveBytes() uint64 {
	return m.activeWords * 32
}

// CalculateNewActiveWords is a pure function: it returns the active
// word count that would result from touching [offset, offset+length),
// without mutating the memory.
func (m *Memory) CalculateNewActiveWords(offset, length uint64) uint64 {
	if length == 0 {
		return m.activeWords
	}
	needed := common.SizeInWords(offset + length)
	if needed > m.activeWords {
		return needed
	}
	return m.activeWords
}

// EnsureCapacityForBytes grows the activity counter and backing buffer
// to cover [offset, offset+length).
func (m *Memory) EnsureCapacityForBytes(offset, length uint64) {
	if length == 0 {
		return
	}
	words := m.CalculateNewActiveWords(offset, length)
	if words <= m.activeWords && uint64(len(m.mem)) >= words*32 {
		m.activeWords = words
		return
	}
	m.activeWords = words
	newSize := words * 32
	if newSize > uint64(len(m.mem)) {
		m.mem = append(m.mem, make([]byte, newSize-uint64(len(m.mem)))...)
	}
}

// SetByte writes a single byte at offset, growing memory as needed.
func (m *Memory) SetByte(offset uint64, value byte) {
	m.EnsureCapacityForBytes(offset, 1)
	m.mem[offset] = value
}

// SetBytes writes length bytes at offset, sourced from src starting at
// srcOffset. src shorter than srcOffset+length is zero-padded on the
// right (missing trailing bytes become zero).
func (m *Memory) SetBytes(offset, srcOffset, length uint64, src []byte) {
	if length == 0 {
		return
	}
	m.EnsureCapacityForBytes(offset, length)
	dst := m.mem[offset : offset+length]
	for i := uint64(0); i < length; i++ {
		idx := srcOffset + i
		if idx < uint64(len(src)) {
			dst[i] = src[idx]
		} else {
			dst[i] = 0
		}
	}
}

// SetBytesFrom writes the whole of src at offset, equivalent to
// SetBytes(offset, 0, len(src), src).
func (m *Memory) SetBytesFrom(offset uint64, src []byte) {
	m.SetBytes(offset, 0, uint64(len(src)), src)
}

// SetBytesRightAligned writes src into the last len(src) bytes of the
// length-byte window starting at offset, left-padding the remainder
// with zeros -- the layout RETURNDATACOPY-adjacent opcodes that embed
// fixed-width values (e.g. CREATE2 salts) rely on.
func (m *Memory) SetBytesRightAligned(offset, length uint64, src []byte) {
	if length == 0 {
		return
	}
	m.EnsureCapacityForBytes(offset, length)
	dst := m.mem[offset : offset+length]
	padded := common.LeftPadSlice(src, int(length))
	copy(dst, padded)
}

// GetBytes returns a copy of length bytes starting at offset without
// mutating memory. Bytes beyond the active region are zero.
func (m *Memory) GetBytes(offset, length uint64) []byte {
	res := make([]byte, length)
	for i := uint64(0); i < length; i++ {
		idx := offset + i
		if idx < uint64(len(m.mem)) {
			res[i] = m.mem[idx]
		}
	}
	return res
}

// GetMutableBytes grows memory to cover [offset, offset+length) and
// returns a slice aliasing the underlying buffer, for in-place writes
// by the caller (e.g. precompile output).
func (m *Memory) GetMutableBytes(offset, length uint64) []byte {
	if length == 0 {
		return nil
	}
	m.EnsureCapacityForBytes(offset, length)
	return m.mem[offset : offset+length]
}

// Copy copies length bytes from src to dst within memory, growing it
// to cover both ranges first. Overlapping ranges behave as if copied
// through an intermediate buffer (i.e. like memmove, not memcpy).
func (m *Memory) Copy(dst, src, length uint64) {
	if length == 0 {
		return
	}
	top := dst
	if src > top {
		top = src
	}
	m.EnsureCapacityForBytes(top, length)
	buf := make([]byte, length)
	copy(buf, m.mem[src:src+length])
	copy(m.mem[dst:dst+length], buf)
}

// Eq returns true if the two memory instances hold identical content.
func (a *Memory) Eq(b *Memory) bool {
	return slices.Equal(a.mem, b.mem)
}

// Diff returns a human-readable list of differences between the two
// memory instances.
func (a *Memory) Diff(b *Memory) (res []string) {
	if a.Size() != b.Size() {
		res = append(res, fmt.Sprintf("different memory size: %v vs %v", a.Size(), b.Size()))
		return
	}
	for i := 0; i < a.Size(); i++ {
		if a.mem[i] != b.mem[i] {
			res = append(res, fmt.Sprintf("different memory value at offset %d: %v vs %v", i, a.mem[i], b.mem[i]))
		}
	}
	return
}
