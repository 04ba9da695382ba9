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
	"slices"

	"golang.org/x/exp/maps"

	"github.com/Fantom-foundation/msgframe/common"
	"github.com/Fantom-foundation/msgframe/tosca"
)

// LogEntry is a single event log emitted by CREATE/CALL-executed code.
type LogEntry struct {
	Topics []common.U256
	Data   []byte
}

// Substate accumulates the side effects a frame produces: logs, the
// gas refund counter, the self-destruct and create sets, and pending
// balance refunds. On success these are merged into the parent frame
// (§4.J); on revert or exceptional halt the whole substate is
// discarded along with the frame.
type Substate struct {
	Logs          []LogEntry
	GasRefund     int64
	selfDestructs map[tosca.Address]struct{}
	creates       map[tosca.Address]struct{}
	refunds       map[tosca.Address]common.U256
}

// NewSubstate returns an empty substate accumulator.
func NewSubstate() *Substate {
	return &Substate{}
}

// AddLog appends a log entry, cloning its topics and data so later
// caller-side mutation cannot alter recorded history.
func (s *Substate) AddLog(data []byte, topics ...common.U256) {
	s.Logs = append(s.Logs, LogEntry{
		Topics: slices.Clone(topics),
		Data:   slices.Clone(data),
	})
}

// IncrementGasRefund adds amount to the accumulated gas refund.
func (s *Substate) IncrementGasRefund(amount int64) {
	s.GasRefund += amount
}

// AddSelfDestruct idempotently records addr as self-destructed by this
// frame. Panics if addr is already recorded as created in this frame
// (invariant 5: selfDestructs and creates never intersect).
func (s *Substate) AddSelfDestruct(addr tosca.Address) {
	if _, ok := s.creates[addr]; ok {
		panic(fmt.Sprintf("address %v recorded as both created and self-destructed in the same frame", addr))
	}
	if s.selfDestructs == nil {
		s.selfDestructs = make(map[tosca.Address]struct{})
	}
	s.selfDestructs[addr] = struct{}{}
}

// AddCreate idempotently records addr as created by this frame. Panics
// if addr is already recorded as self-destructed in this frame.
func (s *Substate) AddCreate(addr tosca.Address) {
	if _, ok := s.selfDestructs[addr]; ok {
		panic(fmt.Sprintf("address %v recorded as both self-destructed and created in the same frame", addr))
	}
	if s.creates == nil {
		s.creates = make(map[tosca.Address]struct{})
	}
	s.creates[addr] = struct{}{}
}

// IsSelfDestructedLocally reports whether this frame itself (not
// ancestors) recorded addr as self-destructed.
func (s *Substate) IsSelfDestructedLocally(addr tosca.Address) bool {
	_, ok := s.selfDestructs[addr]
	return ok
}

// IsCreatedLocally reports whether this frame itself recorded addr as
// created. Frame.WasCreatedInTransaction extends this across ancestors.
func (s *Substate) IsCreatedLocally(addr tosca.Address) bool {
	_, ok := s.creates[addr]
	return ok
}

// AddRefund records a last-write-wins balance refund for addr.
func (s *Substate) AddRefund(addr tosca.Address, value common.U256) {
	if s.refunds == nil {
		s.refunds = make(map[tosca.Address]common.U256)
	}
	s.refunds[addr] = value
}

// MergeInto folds s into parent as required on child CompletedSuccess:
// logs are appended in order, self-destruct/create sets are unioned,
// refunds are merged last-write-wins (child overrides parent), and the
// gas refund counter accumulates.
func (s *Substate) MergeInto(parent *Substate) {
	parent.Logs = append(parent.Logs, s.Logs...)
	parent.GasRefund += s.GasRefund

	if len(s.selfDestructs) > 0 && parent.selfDestructs == nil {
		parent.selfDestructs = make(map[tosca.Address]struct{}, len(s.selfDestructs))
	}
	for a := range s.selfDestructs {
		parent.selfDestructs[a] = struct{}{}
	}

	if len(s.creates) > 0 && parent.creates == nil {
		parent.creates = make(map[tosca.Address]struct{}, len(s.creates))
	}
	for a := range s.creates {
		parent.creates[a] = struct{}{}
	}

	if len(s.refunds) > 0 && parent.refunds == nil {
		parent.refunds = make(map[tosca.Address]common.U256, len(s.refunds))
	}
	for a, v := range s.refunds {
		parent.refunds[a] = v
	}
}

// Clone creates an independent copy of the substate.
func (s *Substate) Clone() *Substate {
	return &Substate{
		Logs:          slices.Clone(s.Logs),
		GasRefund:     s.GasRefund,
		selfDestructs: maps.Clone(s.selfDestructs),
		creates:       maps.Clone(s.creates),
		refunds:       maps.Clone(s.refunds),
	}
}
