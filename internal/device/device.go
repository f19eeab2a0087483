// Package device is the device query subsystem: it opens raw volume and
// physical-drive handles and issues control requests against them.
package device

import (
	"errors"
	"fmt"
)

// Access selects the rights requested when a device is opened.
type Access uint32

const (
	// AccessQuery requests no data access; enough for property queries.
	AccessQuery Access = 0
	// AccessReadWrite requests GENERIC_READ|GENERIC_WRITE, which the ATA
	// pass-through channel requires and which needs an elevated token.
	AccessReadWrite Access = 0x80000000 | 0x40000000
)

func (a Access) String() string {
	switch a {
	case AccessQuery:
		return "query"
	case AccessReadWrite:
		return "read-write"
	default:
		return fmt.Sprintf("access(%#x)", uint32(a))
	}
}

// Handle is an open device. It is owned by the caller that opened it.
type Handle interface {
	// Control issues an I/O control request. in and out may alias. The
	// returned count is the number of bytes the driver wrote to out and is
	// meaningful even when err reports ErrMoreData.
	Control(code uint32, in, out []byte) (uint32, error)
	Close() error
}

// Opener opens device paths such as \\.\C: or \\.\PhysicalDrive0.
type Opener interface {
	Open(path string, access Access) (Handle, error)
}

// VolumePath returns the device path of a drive-letter volume.
func VolumePath(letter byte) string {
	return `\\.\` + string(upper(letter)) + ":"
}

// PhysicalDrivePath returns the device path of a physical disk.
func PhysicalDrivePath(index int) string {
	return fmt.Sprintf(`\\.\PhysicalDrive%d`, index)
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}

// Win32 error codes the callers care about.
const (
	CodeNotSupported = 50
	CodeMoreData     = 234
)

// ErrMoreData matches an OSError whose code is ERROR_MORE_DATA.
var ErrMoreData = errors.New("more data is available")

// OSError records a failed device operation and the OS error code.
type OSError struct {
	Op   string // "open" or "ioctl"
	Path string
	Code uint32
	Err  error
}

func (e *OSError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v (code %d)", e.Op, e.Path, e.Err, e.Code)
	}
	return fmt.Sprintf("%s %s: code %d", e.Op, e.Path, e.Code)
}

func (e *OSError) Unwrap() error { return e.Err }

func (e *OSError) Is(target error) bool {
	return target == ErrMoreData && e.Code == CodeMoreData
}

// Code returns the OS error code carried anywhere in err's chain.
func Code(err error) (uint32, bool) {
	var oe *OSError
	if errors.As(err, &oe) {
		return oe.Code, true
	}
	return 0, false
}
