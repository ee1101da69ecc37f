// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package axvm

import "github.com/Fantom-foundation/Axon/go/axon"

const (
	// ErrCycleLimitExceeded is returned by runs exceeding the configured
	// maximum number of cycles. The result of such a run is undefined.
	ErrCycleLimitExceeded = axon.ConstError("cycle limit exceeded")

	errMissingBackend   = axon.ConstError("missing backend")
	errRunTerminated    = axon.ConstError("run already terminated")
	errCodeTooLarge     = axon.ConstError("code exceeds the addressable range")
	errCalldataTooLarge = axon.ConstError("calldata exceeds the addressable heap")
)
