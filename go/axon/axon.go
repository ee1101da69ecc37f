// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package axon defines the public model of the Axon register machine: the
// tagged values held in registers and memory, the queries exchanged with
// the backends a run consumes, and the registry of interpreter
// implementations. The instruction set itself is defined in package isa,
// the interpreter in package axvm.
package axon
