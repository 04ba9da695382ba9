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
	"github.com/Fantom-foundation/msgframe/common"
	"github.com/Fantom-foundation/msgframe/tosca"
)

// AccessListEntry names one address (and, optionally, a subset of its
// storage slots) a transaction declared it would touch, per EIP-2930.
// A nil Slots means the address itself is warmed, with no slots.
type AccessListEntry struct {
	Address tosca.Address
	Slots   []common.U256
}

// Builder assembles a root Frame, validating that every field §4.I
// requires is present before Build succeeds. Fields are set with
// fluent With* setters.
type Builder struct {
	frameType     FrameType
	frameTypeSet  bool
	worldState    tosca.WorldState
	worldStateSet bool

	initialGas    int64
	initialGasSet bool

	recipient    tosca.Address
	recipientSet bool

	originator    tosca.Address
	originatorSet bool

	contract    tosca.Address
	contractSet bool

	sender    tosca.Address
	senderSet bool

	gasPrice    common.U256
	gasPriceSet bool

	inputData []byte

	value    common.U256
	valueSet bool

	apparentValue    common.U256
	apparentValueSet bool

	code    *Code
	codeSet bool

	blockValues    tosca.BlockValues
	blockValuesSet bool

	depth    int
	depthSet bool

	completer    func(*Frame)
	completerSet bool

	miningBeneficiary    tosca.Address
	miningBeneficiarySet bool

	blockHashLookup    func(number int64) tosca.Hash
	blockHashLookupSet bool

	versionedHashes []tosca.Hash
	isStatic        bool
	accessList      []AccessListEntry
	maxStackSize    int
	revision        tosca.Revision
	logger          Logger

	contextVariables map[uint64]any
}

// NewBuilder returns an empty Builder. maxStackSize defaults to
// MaxStackSize; contextVariables default to empty.
func NewBuilder() *Builder {
	return &Builder{maxStackSize: MaxStackSize}
}

func (b *Builder) WithType(t FrameType) *Builder            { b.frameType, b.frameTypeSet = t, true; return b }
func (b *Builder) WithWorldState(w tosca.WorldState) *Builder { b.worldState, b.worldStateSet = w, true; return b }
func (b *Builder) WithInitialGas(gas int64) *Builder         { b.initialGas, b.initialGasSet = gas, true; return b }
func (b *Builder) WithRecipient(a tosca.Address) *Builder    { b.recipient, b.recipientSet = a, true; return b }
func (b *Builder) WithOriginator(a tosca.Address) *Builder   { b.originator, b.originatorSet = a, true; return b }
func (b *Builder) WithContract(a tosca.Address) *Builder     { b.contract, b.contractSet = a, true; return b }
func (b *Builder) WithSender(a tosca.Address) *Builder       { b.sender, b.senderSet = a, true; return b }
func (b *Builder) WithGasPrice(p common.U256) *Builder       { b.gasPrice, b.gasPriceSet = p, true; return b }
func (b *Builder) WithInputData(data []byte) *Builder        { b.inputData = data; return b }
func (b *Builder) WithValue(v common.U256) *Builder          { b.value, b.valueSet = v, true; return b }
func (b *Builder) WithApparentValue(v common.U256) *Builder  { b.apparentValue, b.apparentValueSet = v, true; return b }
func (b *Builder) WithCode(c *Code) *Builder                 { b.code, b.codeSet = c, true; return b }
func (b *Builder) WithBlockValues(v tosca.BlockValues) *Builder {
	b.blockValues, b.blockValuesSet = v, true
	return b
}
func (b *Builder) WithDepth(d int) *Builder { b.depth, b.depthSet = d, true; return b }
func (b *Builder) WithCompleter(f func(*Frame)) *Builder {
	b.completer, b.completerSet = f, true
	return b
}
func (b *Builder) WithMiningBeneficiary(a tosca.Address) *Builder {
	b.miningBeneficiary, b.miningBeneficiarySet = a, true
	return b
}
func (b *Builder) WithBlockHashLookup(f func(number int64) tosca.Hash) *Builder {
	b.blockHashLookup, b.blockHashLookupSet = f, true
	return b
}
func (b *Builder) WithVersionedHashes(hashes []tosca.Hash) *Builder {
	b.versionedHashes = hashes
	return b
}
func (b *Builder) WithStatic(isStatic bool) *Builder { b.isStatic = isStatic; return b }
func (b *Builder) WithAccessList(entries []AccessListEntry) *Builder {
	b.accessList = entries
	return b
}
func (b *Builder) WithMaxStackSize(size int) *Builder { b.maxStackSize = size; return b }
func (b *Builder) WithRevision(r tosca.Revision) *Builder { b.revision = r; return b }
func (b *Builder) WithLogger(l Logger) *Builder           { b.logger = l; return b }

// Build validates the accumulated fields and constructs the root
// Frame, seeding warm sets from the access list and pre-reading each
// warmed storage key from the world state (§4.I). Returns a
// *ConstructionError naming the first missing mandatory field.
func (b *Builder) Build() (*Frame, error) {
	for _, missing := range []struct {
		name string
		ok   bool
	}{
		{"type", b.frameTypeSet},
		{"worldState", b.worldStateSet},
		{"initialGas", b.initialGasSet},
		{"recipient", b.recipientSet},
		{"originator", b.originatorSet},
		{"contract", b.contractSet},
		{"sender", b.senderSet},
		{"gasPrice", b.gasPriceSet},
		{"value", b.valueSet},
		{"apparentValue", b.apparentValueSet},
		{"code", b.codeSet},
		{"blockValues", b.blockValuesSet},
		{"depth", b.depthSet},
		{"completer", b.completerSet},
		{"miningBeneficiary", b.miningBeneficiarySet},
		{"blockHashLookup", b.blockHashLookupSet},
	} {
		if !missing.ok {
			return nil, &ConstructionError{MissingField: missing.name}
		}
	}
	if b.depth < 0 {
		return nil, &ConstructionError{MissingField: "depth (must be >= 0)"}
	}
	if b.code.NumSections() > 1 && !b.revision.SupportsCodeSections() {
		return nil, &ConstructionError{MissingField: "revision (structured code requires R14_Prague or later)"}
	}

	maxStackSize := b.maxStackSize
	if maxStackSize == 0 {
		maxStackSize = MaxStackSize
	}

	pc := 0
	if b.code.IsValid() {
		section, _ := b.code.GetCodeSection(0)
		pc = section.EntryPoint
	}

	f := &Frame{
		Environment: Environment{
			Type:              b.frameType,
			Recipient:         b.recipient,
			Originator:        b.originator,
			Contract:          b.contract,
			Sender:            b.sender,
			Value:             b.value,
			ApparentValue:     b.apparentValue,
			GasPrice:          b.gasPrice,
			InputData:         b.inputData,
			Code:              b.code,
			BlockValues:       b.blockValues,
			MiningBeneficiary: b.miningBeneficiary,
			BlockHashLookup:   b.blockHashLookup,
			VersionedHashes:   b.versionedHashes,
			contextVariables:  b.contextVariables,
		},
		GasRemaining: b.initialGas,
		PC:           pc,
		Section:      0,
		Stack:        NewStack(),
		ReturnStack:  NewReturnStack(),
		Memory:       NewMemory(),
		IsStatic:     b.isStatic,
		Depth:        b.depth,
		MaxStackSize: maxStackSize,
		Code:         b.code,
		Logger:       b.logger,

		Substate:         NewSubstate(),
		WarmSet:          NewWarmSet(),
		TransientStorage: &TransientStorage{},

		worldState: b.worldState,
	}
	f.lifecycle.completer = b.completer
	f.lifecycle.state = StateNotStarted

	f.WarmSet.markAddressWarm(b.sender)
	f.WarmSet.markAddressWarm(b.contract)
	for _, entry := range b.accessList {
		f.WarmSet.markAddressWarm(entry.Address)
		for _, slot := range entry.Slots {
			f.WarmSet.markStorageWarm(StorageKey{Address: entry.Address, Slot: slot})
			// Pre-read so the world-updater's own cache is warmed;
			// the frame does not itself retain persistent storage
			// values (out of scope -- §1).
			if account, ok := b.worldState.Get(entry.Address); ok {
				word := tosca.Word(slot.Bytes32())
				_ = account.GetStorageValue(word)
			}
		}
	}

	return f, nil
}
