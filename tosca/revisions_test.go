// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package tosca

import "testing"

func TestRevision_String(t *testing.T) {
	tests := map[string]struct {
		revision Revision
		want     string
	}{
		"Istanbul": {R07_Istanbul, "Istanbul"},
		"Berlin":   {R09_Berlin, "Berlin"},
		"London":   {R10_London, "London"},
		"Paris":    {R11_Paris, "Paris"},
		"Shanghai": {R12_Shanghai, "Shanghai"},
		"Cancun":   {R13_Cancun, "Cancun"},
		"Prague":   {R14_Prague, "Prague"},
		"unknown":  {Revision(999), "Revision(999)"},
	}
	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if got := test.revision.String(); got != test.want {
				t.Errorf("unexpected string: got %q, want %q", got, test.want)
			}
		})
	}
}

func TestRevision_SupportsCodeSections(t *testing.T) {
	if R13_Cancun.SupportsCodeSections() {
		t.Errorf("expected Cancun not to support code sections")
	}
	if !R14_Prague.SupportsCodeSections() {
		t.Errorf("expected Prague to support code sections")
	}
}

func TestGetAllKnownRevisions_CoversEveryNamedRevision(t *testing.T) {
	got := GetAllKnownRevisions()
	if len(got) != numRevisions {
		t.Fatalf("expected %d known revisions, got %d", numRevisions, len(got))
	}
	for i, r := range got {
		if int(r) != i {
			t.Errorf("expected revisions in declaration order, got %v at index %d", r, i)
		}
	}
}

func TestRevision_MarshalUnmarshalJSON_RoundTrips(t *testing.T) {
	for _, r := range GetAllKnownRevisions() {
		data, err := r.MarshalJSON()
		if err != nil {
			t.Fatalf("unexpected error marshaling %v: %v", r, err)
		}

		var got Revision
		if err := got.UnmarshalJSON(data); err != nil {
			t.Fatalf("unexpected error unmarshaling %v: %v", r, err)
		}
		if got != r {
			t.Errorf("unexpected round-trip result: got %v, want %v", got, r)
		}
	}
}

func TestRevision_UnmarshalJSON_FallsBackToNumericForm(t *testing.T) {
	var got Revision
	if err := got.UnmarshalJSON([]byte(`"Revision(42)"`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != Revision(42) {
		t.Errorf("unexpected revision: %v", got)
	}
}

func TestRevision_UnmarshalJSON_RejectsUnrecognizedText(t *testing.T) {
	var got Revision
	if err := got.UnmarshalJSON([]byte(`"not a revision"`)); err == nil {
		t.Errorf("expected an error for unrecognized revision text")
	}
}

func TestRevision_UnmarshalJSON_RejectsInvalidJSON(t *testing.T) {
	var got Revision
	if err := got.UnmarshalJSON([]byte(`not valid json`)); err == nil {
		t.Errorf("expected an error for invalid JSON")
	}
}
