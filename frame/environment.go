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
	"sync/atomic"

	"github.com/Fantom-foundation/msgframe/common"
	"github.com/Fantom-foundation/msgframe/tosca"
)

// contextKeySeq hands out the identity token backing every ContextKey.
var contextKeySeq uint64

// ContextKey is a typed key into a frame's context-variable map. Using
// a distinct key type per value type (rather than a bare string key to
// an any-valued map) lets callers get a T back without asserting the
// type themselves; the lookup performs one checked type assertion and
// yields the zero value of T on a mismatch (§9 design note on
// typed-context variables).
type ContextKey[T any] struct {
	name string
	id   uint64
}

// NewContextKey creates a fresh typed context-variable key. Two keys
// created with the same name are still distinct: identity (the token
// assigned here), not name, determines equality and map placement.
func NewContextKey[T any](name string) ContextKey[T] {
	return ContextKey[T]{name: name, id: atomic.AddUint64(&contextKeySeq, 1)}
}

func (k ContextKey[T]) String() string { return k.name }

// Environment is the immutable, per-frame read-only view the
// interpreter consults for CALLER/ORIGIN/GASPRICE/CALLDATA-family
// opcodes and similar. Every field is set once at construction (§4.L).
type Environment struct {
	Type               FrameType
	Recipient          tosca.Address
	Originator         tosca.Address
	Contract           tosca.Address
	Sender             tosca.Address
	Value              common.U256
	ApparentValue      common.U256
	GasPrice           common.U256
	InputData          []byte
	Code               *Code
	BlockValues        tosca.BlockValues
	MiningBeneficiary  tosca.Address
	BlockHashLookup    func(number int64) tosca.Hash
	VersionedHashes    []tosca.Hash

	contextVariables map[uint64]any
}

// FrameType distinguishes a contract-creation frame from a plain
// message-call frame.
type FrameType int

const (
	MessageCall FrameType = iota
	ContractCreation
)

func (t FrameType) String() string {
	if t == ContractCreation {
		return "ContractCreation"
	}
	return "MessageCall"
}

// contextVariable reads a typed context variable set at construction,
// defaulting to the zero value of T when absent.
func contextVariable[T any](e *Environment, key ContextKey[T]) T {
	var zero T
	if e.contextVariables == nil {
		return zero
	}
	v, ok := e.contextVariables[key.id]
	if !ok {
		return zero
	}
	t, ok := v.(T)
	if !ok {
		return zero
	}
	return t
}

// ContextVariable returns the value stored for key, or the zero value
// of T if it was never set. This is the Frame-facing entry point used
// by tracer hooks and diagnostics; hot-path opcode handlers should
// instead read the dedicated Environment fields above where one
// exists.
func (f *Frame) ContextVariable(key ContextKey[common.U256]) common.U256 {
	return contextVariable(&f.Environment, key)
}

// WithContextVariable records a context variable to be set on the
// Frame built by b. A Builder method cannot itself take a type
// parameter, so this is a free function rather than a Builder method.
func WithContextVariable[T any](b *Builder, key ContextKey[T], value T) *Builder {
	if b.contextVariables == nil {
		b.contextVariables = map[uint64]any{}
	}
	b.contextVariables[key.id] = value
	return b
}
