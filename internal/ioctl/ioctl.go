// Package ioctl holds the control codes and fixed-layout records exchanged
// with the Windows storage stack. Records are packed and unpacked by hand in
// little-endian byte order so the layouts can be exercised on any platform.
package ioctl

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math/bits"
)

// Device types, methods and access bits from winioctl.h / ntddscsi.h.
const (
	FileDeviceController  = 0x00000004
	FileDeviceMassStorage = 0x0000002d
	FileDeviceVolume      = 0x00000056

	MethodBuffered = 0

	FileAnyAccess   = 0
	FileReadAccess  = 0x0001
	FileWriteAccess = 0x0002
)

// Control codes, composed as CTL_CODE(DeviceType, Function, Method, Access).
const (
	// 0x00560000
	IoctlVolumeGetVolumeDiskExtents = (FileDeviceVolume << 16) | (FileAnyAccess << 14) | (0x0000 << 2) | MethodBuffered
	// 0x002D1400
	IoctlStorageQueryProperty = (FileDeviceMassStorage << 16) | (FileAnyAccess << 14) | (0x0500 << 2) | MethodBuffered
	// 0x0004D02C
	IoctlAtaPassThrough = (FileDeviceController << 16) | ((FileReadAccess | FileWriteAccess) << 14) | (0x040b << 2) | MethodBuffered
)

var le = binary.LittleEndian

// ErrShortBuffer is returned when a response is too small for the record
// being decoded.
var ErrShortBuffer = errors.New("ioctl: response buffer too short")

// pointerSize is the width of ULONG_PTR for the running process.
const pointerSize = bits.UintSize / 8

func shortBuffer(record string, got, want int) error {
	return fmt.Errorf("%s: got %d bytes, need %d: %w", record, got, want, ErrShortBuffer)
}
