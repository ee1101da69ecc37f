// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.
package cliUtils

import (
	"fmt"
	"os"
	"strings"

	"github.com/Fantom-foundation/Axon/go/axon"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// ReadCodeFile reads a program stored as hex text. The 0x prefix and
// surrounding white space are optional.
func ReadCodeFile(path string) ([]uint256.Int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read code file: %w", err)
	}
	code, err := ParseHex(string(data))
	if err != nil {
		return nil, fmt.Errorf("invalid code in %s: %w", path, err)
	}
	return axon.BytecodeToWords(code)
}

// ParseHex decodes hex text with an optional 0x prefix.
func ParseHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

func ParseAddress(s string) (axon.Address, error) {
	if !common.IsHexAddress(s) {
		return axon.Address{}, fmt.Errorf("invalid address: %q", s)
	}
	return axon.Address(common.HexToAddress(s)), nil
}

func ParseErgs(v uint64) (axon.Ergs, error) {
	if v > uint64(^axon.Ergs(0)) {
		return 0, fmt.Errorf("ergs out of range: %d", v)
	}
	return axon.Ergs(v), nil
}
