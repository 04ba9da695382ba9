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
	"bytes"
	"testing"

	"pgregory.net/rand"
)

func TestRightPadSlice(t *testing.T) {
	tests := map[string]struct {
		source []byte
		size   int
		want   []byte
	}{
		"pads":       {[]byte{1, 2}, 4, []byte{1, 2, 0, 0}},
		"truncates":  {[]byte{1, 2, 3, 4}, 2, []byte{1, 2}},
		"exact size": {[]byte{1, 2}, 2, []byte{1, 2}},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if got := RightPadSlice(test.source, test.size); !bytes.Equal(got, test.want) {
				t.Errorf("unexpected result: got %v, want %v", got, test.want)
			}
		})
	}
}

func TestLeftPadSlice(t *testing.T) {
	tests := map[string]struct {
		source []byte
		size   int
		want   []byte
	}{
		"pads":                  {[]byte{1, 2}, 4, []byte{0, 0, 1, 2}},
		"truncates from left":   {[]byte{1, 2, 3, 4}, 2, []byte{3, 4}},
		"exact size":            {[]byte{1, 2}, 2, []byte{1, 2}},
		"empty source is zeros": {nil, 3, []byte{0, 0, 0}},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if got := LeftPadSlice(test.source, test.size); !bytes.Equal(got, test.want) {
				t.Errorf("unexpected result: got %v, want %v", got, test.want)
			}
		})
	}
}

func TestLeftPadSlice_DoesNotAliasSource(t *testing.T) {
	source := []byte{1, 2}
	got := LeftPadSlice(source, 4)
	got[2] = 9
	if source[0] != 1 {
		t.Errorf("expected LeftPadSlice not to mutate the source slice")
	}
}

func TestGetRandomHash_IsDeterministicForASeed(t *testing.T) {
	a := GetRandomHash(rand.New(rand.NewSource(1)))
	b := GetRandomHash(rand.New(rand.NewSource(1)))
	if a != b {
		t.Errorf("expected the same seed to produce the same hash: %x vs %x", a, b)
	}
}

func TestRandomAddress_IsDeterministicForASeed(t *testing.T) {
	a := RandomAddress(rand.New(rand.NewSource(1)))
	b := RandomAddress(rand.New(rand.NewSource(1)))
	if a != b {
		t.Errorf("expected the same seed to produce the same address: %x vs %x", a, b)
	}
}

func TestRandomBytesOfSize(t *testing.T) {
	data := RandomBytesOfSize(rand.New(rand.NewSource(1)), 16)
	if len(data) != 16 {
		t.Errorf("unexpected size: %v", len(data))
	}
}

func TestFormatBytesSummary(t *testing.T) {
	short := []byte{0xde, 0xad}
	if got := FormatBytesSummary(short, 8); got != "dead" {
		t.Errorf("unexpected short summary: %q", got)
	}

	long := make([]byte, 16)
	for i := range long {
		long[i] = byte(i)
	}
	got := FormatBytesSummary(long, 4)
	want := "00010203... (size: 16)"
	if got != want {
		t.Errorf("unexpected long summary: got %q, want %q", got, want)
	}
}
