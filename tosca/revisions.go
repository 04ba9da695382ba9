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

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// Revision is an enumeration of EVM specification revisions (hard forks).
type Revision int

const (
	R07_Istanbul Revision = iota
	R09_Berlin
	R10_London
	R11_Paris
	R12_Shanghai
	R13_Cancun
	R14_Prague // first revision exposing structured (EOF) code sections
	numRevisions int = iota
)

// SupportsCodeSections reports whether the given revision executes
// structured, multi-section code (EIP-4750/EIP-7620) rather than legacy
// single-section code.
func (r Revision) SupportsCodeSections() bool {
	return r >= R14_Prague
}

func (r Revision) String() string {
	switch r {
	case R07_Istanbul:
		return "Istanbul"
	case R09_Berlin:
		return "Berlin"
	case R10_London:
		return "London"
	case R11_Paris:
		return "Paris"
	case R12_Shanghai:
		return "Shanghai"
	case R13_Cancun:
		return "Cancun"
	case R14_Prague:
		return "Prague"
	default:
		return fmt.Sprintf("Revision(%d)", int(r))
	}
}

func GetAllKnownRevisions() []Revision {
	return []Revision{
		R07_Istanbul, R09_Berlin, R10_London, R11_Paris,
		R12_Shanghai, R13_Cancun, R14_Prague,
	}
}

func (r Revision) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Revision) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	for _, candidate := range GetAllKnownRevisions() {
		if candidate.String() == s {
			*r = candidate
			return nil
		}
	}

	reg := regexp.MustCompile(`Revision\(([0-9]+)\)`)
	match := reg.FindStringSubmatch(s)
	if match == nil {
		return &json.UnmarshalTypeError{Value: s, Type: nil}
	}
	revInt, err := strconv.Atoi(match[1])
	if err != nil {
		return err
	}
	*r = Revision(revInt)
	return nil
}
