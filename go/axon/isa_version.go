// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package axon

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// ISAVersion identifies a revision of the instruction set. Decoding tables
// are built per version so that revisions can coexist in one binary.
type ISAVersion uint8

const (
	ISAVersion0 ISAVersion = iota

	// DefaultISAVersion is the version used when none is requested.
	DefaultISAVersion = ISAVersion0
	// NewestISAVersion is the most recent version supported by this module.
	NewestISAVersion = ISAVersion0
)

func (v ISAVersion) String() string {
	if v > NewestISAVersion {
		return fmt.Sprintf("ISAVersion(%d)", v)
	}
	return fmt.Sprintf("v%d", v)
}

var isaVersionPattern = regexp.MustCompile(`^v([0-9]+)$`)

func (v ISAVersion) MarshalJSON() ([]byte, error) {
	if v > NewestISAVersion {
		return nil, &json.UnsupportedValueError{Str: v.String()}
	}
	return json.Marshal(v.String())
}

func (v *ISAVersion) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	version, err := ParseISAVersion(s)
	if err != nil {
		return err
	}
	*v = version
	return nil
}

// ParseISAVersion parses the textual form produced by ISAVersion.String.
func ParseISAVersion(s string) (ISAVersion, error) {
	match := isaVersionPattern.FindStringSubmatch(s)
	if match == nil {
		return 0, fmt.Errorf("invalid ISA version: %q", s)
	}
	n, err := strconv.ParseUint(match[1], 10, 8)
	if err != nil || ISAVersion(n) > NewestISAVersion {
		return 0, &ErrUnsupportedISAVersion{Version: ISAVersion(n)}
	}
	return ISAVersion(n), nil
}
