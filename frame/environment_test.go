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
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/Fantom-foundation/msgframe/common"
	"github.com/Fantom-foundation/msgframe/tosca"
)

func TestFrameType_String(t *testing.T) {
	if MessageCall.String() != "MessageCall" {
		t.Errorf("unexpected MessageCall string: %v", MessageCall.String())
	}
	if ContractCreation.String() != "ContractCreation" {
		t.Errorf("unexpected ContractCreation string: %v", ContractCreation.String())
	}
}

func TestContextVariable_DefaultsToZeroValue(t *testing.T) {
	f := &Frame{}
	key := NewContextKey[common.U256]("blob-base-fee")
	if v := f.ContextVariable(key); !v.Eq(common.U256{}) {
		t.Errorf("expected zero value for unset key, got %v", v)
	}
}

func TestContextVariable_RoundTrip(t *testing.T) {
	key := NewContextKey[common.U256]("blob-base-fee")
	f := &Frame{
		Environment: Environment{
			contextVariables: map[uint64]any{
				key.id: common.NewU256(7),
			},
		},
	}
	if v := f.ContextVariable(key); !v.Eq(common.NewU256(7)) {
		t.Errorf("unexpected context variable value: %v", v)
	}
}

func TestContextKey_DistinctByIdentityNotName(t *testing.T) {
	a := NewContextKey[common.U256]("x")
	b := NewContextKey[common.U256]("x")
	f := &Frame{
		Environment: Environment{
			contextVariables: map[uint64]any{
				a.id: common.NewU256(1),
			},
		},
	}
	// Same literal name, but each NewContextKey call mints a distinct
	// identity token, so b must not see the value stored under a.
	if v := f.ContextVariable(b); !v.Eq(common.U256{}) {
		t.Errorf("expected distinct keys sharing a name not to alias, got %v", v)
	}
}

func TestBuilder_WithContextVariable_RoundTrips(t *testing.T) {
	ctrl := gomock.NewController(t)
	ws := tosca.NewMockWorldState(ctrl)
	key := NewContextKey[common.U256]("blob-base-fee")

	f, err := WithContextVariable(completeBuilder(t, ws), key, common.NewU256(9)).Build()
	if err != nil {
		t.Fatalf("unexpected build error: %v", err)
	}
	if v := f.ContextVariable(key); !v.Eq(common.NewU256(9)) {
		t.Errorf("unexpected context variable value after Build: %v", v)
	}
}

func TestEnvironment_AddressFieldsSurviveConstruction(t *testing.T) {
	env := Environment{
		Type:       ContractCreation,
		Recipient:  tosca.Address{1},
		Originator: tosca.Address{2},
		Contract:   tosca.Address{3},
		Sender:     tosca.Address{4},
		InputData:  []byte{0xde, 0xad},
	}
	if env.Type != ContractCreation {
		t.Errorf("unexpected frame type: %v", env.Type)
	}
	if env.Recipient != (tosca.Address{1}) {
		t.Errorf("unexpected recipient: %v", env.Recipient)
	}
}
