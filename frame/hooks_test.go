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

	"github.com/Fantom-foundation/msgframe/common"
)

func TestHooks_RecordAndResetMemoryUpdate(t *testing.T) {
	f := &Frame{}
	if f.LastUpdatedMemory() != nil {
		t.Errorf("expected nil before any write")
	}

	f.RecordMemoryUpdate(4, []byte{1, 2, 3})
	got := f.LastUpdatedMemory()
	if got == nil || got.Offset != 4 || string(got.Data) != "\x01\x02\x03" {
		t.Errorf("unexpected recorded memory update: %+v", got)
	}

	f.ResetHooks()
	if f.LastUpdatedMemory() != nil {
		t.Errorf("expected nil after ResetHooks")
	}
}

func TestHooks_RecordStorageUpdateOverwritesWithinAnOpcode(t *testing.T) {
	f := &Frame{}
	f.RecordStorageUpdate(common.NewU256(1), common.NewU256(10))
	f.RecordStorageUpdate(common.NewU256(1), common.NewU256(20))

	got := f.LastUpdatedStorage()
	if got == nil || !got.Value.Eq(common.NewU256(20)) {
		t.Errorf("expected the later write to win, got %+v", got)
	}
}

func TestHooks_RecordedMemoryIsACopy(t *testing.T) {
	f := &Frame{}
	data := []byte{1, 2, 3}
	f.RecordMemoryUpdate(0, data)
	data[0] = 0xff

	got := f.LastUpdatedMemory()
	if got.Data[0] != 1 {
		t.Errorf("recorded data must not alias the caller's slice")
	}
}
