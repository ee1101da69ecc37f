// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package isa

import "github.com/Fantom-foundation/Axon/go/axon"

// Instruction encoding. These widths are shared with the proving system and
// must not change within an ISA version.
const (
	OpcodesTableWidth               = 11
	TableSize                       = 1 << OpcodesTableWidth
	TableIndexMask                  = TableSize - 1
	ConditionalBitsShift            = 13
	ConditionBits                   = 3
	VariantAndConditionEncodingBits = 16
	RegisterIndexEncodingBits       = 4
	SrcRegsShift                    = 16
	DstRegsShift                    = 24

	RegistersCount = 15

	NumNonExclusiveFlags = 2
)

// Description bit layout of a decoded variant.
const (
	OpcodeTypeBits           = NumFamilies
	OpcodeInputVariantFlags  = 6
	OpcodeOutputVariantFlags = 4

	KernelModeFlagBits               = 1
	CanBeUsedInStaticContextFlagBits = 1
	ExplicitPanicFlagBits            = 1
	TotalAuxBits                     = KernelModeFlagBits + CanBeUsedInStaticContextFlagBits + ExplicitPanicFlagBits

	KernelModeFlagIdx               = 0
	CanBeUsedInStaticContextFlagIdx = 1
	ExplicitPanicFlagIdx            = 2

	widthMultiple = 16
)

// Indexes into OpcodeVariant.Flags.
const (
	SetFlagsFlagIdx                    = 0
	SwapOperandsFlagIdxForArithOpcodes = 1
	SwapOperandsFlagIdxForPtrOpcode    = 0
	FirstMessageFlagIdx                = 0
	FarCallStaticFlagIdx               = 0
	FarCallShardFlagIdx                = 1
	RetToLabelFlagIdx                  = 0
	UMAIncrementFlagIdx                = 0
)

// Memory layout of frames and timing of a run.
const (
	InitialSpOnFarCall = 0
	UnmappedPage       = axon.MemoryPage(0)

	BootloaderBasePage     = axon.MemoryPage(8)
	BootloaderCodePage     = BootloaderBasePage
	BootloaderCalldataPage = BootloaderBasePage - 1
	BootloaderStackPage    = BootloaderBasePage + 1
	BootloaderHeapPage     = BootloaderBasePage + 2
	BootloaderAuxHeapPage  = BootloaderBasePage + 3

	NewMemoryPagesPerFarCall = 8
	StartingTimestamp        = axon.Timestamp(1024)
	StartingBasePage         = axon.MemoryPage(2048)
	TimeDeltaPerCycle        = 4

	Log2NumAddressableHeapBytes = 24
	MaxHeapBound                = 1 << Log2NumAddressableHeapBytes
)

// CodePageFromBase returns the page holding the code of a frame.
func CodePageFromBase(base axon.MemoryPage) axon.MemoryPage { return base }

// CalldataPageFromBase returns the page holding the calldata of a frame.
func CalldataPageFromBase(base axon.MemoryPage) axon.MemoryPage { return base - 1 }

// StackPageFromBase returns the page holding the stack of a frame.
func StackPageFromBase(base axon.MemoryPage) axon.MemoryPage { return base + 1 }

// HeapPageFromBase returns the page holding the heap of a frame.
func HeapPageFromBase(base axon.MemoryPage) axon.MemoryPage { return base + 2 }

// AuxHeapPageFromBase returns the page holding the aux heap of a frame.
func AuxHeapPageFromBase(base axon.MemoryPage) axon.MemoryPage { return base + 3 }

// System contracts.
var (
	AddressEcrecover          = axon.AddressFromUint64(0x01)
	AddressSha256             = axon.AddressFromUint64(0x02)
	AddressRipemd160          = axon.AddressFromUint64(0x03)
	AddressIdentity           = axon.AddressFromUint64(0x04)
	AddressBootloader         = axon.AddressFromUint64(0x8001)
	AddressAccountCodeStorage = axon.AddressFromUint64(0x8002)
	AddressNonceHolder        = axon.AddressFromUint64(0x8003)
	AddressKnownCodesStorage  = axon.AddressFromUint64(0x8004)
	AddressImmutableSimulator = axon.AddressFromUint64(0x8005)
	AddressContractDeployer   = axon.AddressFromUint64(0x8006)
	AddressForceDeployer      = axon.AddressFromUint64(0x8007)
	AddressL1Messenger        = axon.AddressFromUint64(0x8008)
	AddressMsgValue           = axon.AddressFromUint64(0x8009)
	AddressEthToken           = axon.AddressFromUint64(0x800a)
	AddressSystemContext      = axon.AddressFromUint64(0x800b)
	AddressEventWriter        = axon.AddressFromUint64(0x800d)
	AddressKeccak256          = axon.AddressFromUint64(0x8010)
)

// KernelSpaceBound is the first address outside the kernel space. Code
// running below it runs in kernel mode.
const KernelSpaceBound = 1 << 16

// IsKernelAddress reports whether code at the given address runs in kernel
// mode.
func IsKernelAddress(address axon.Address) bool {
	for _, b := range address[:18] {
		if b != 0 {
			return false
		}
	}
	return true
}
