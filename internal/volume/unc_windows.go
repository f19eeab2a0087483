//go:build windows

package volume

import (
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	mpr                    = windows.NewLazySystemDLL("mpr.dll")
	procWNetGetConnectionW = mpr.NewProc("WNetGetConnectionW")
)

// remoteName returns the remote name a local device such as "Z:" is
// connected to.
func remoteName(drive string) (string, error) {
	if err := procWNetGetConnectionW.Find(); err != nil {
		return "", err
	}

	localPtr, err := windows.UTF16PtrFromString(drive)
	if err != nil {
		return "", err
	}

	buf := make([]uint16, 512)
	size := uint32(len(buf))

	ret, _, _ := procWNetGetConnectionW.Call(
		uintptr(unsafe.Pointer(localPtr)),
		uintptr(unsafe.Pointer(&buf[0])),
		uintptr(unsafe.Pointer(&size)),
	)
	if ret != 0 {
		return "", windows.Errno(ret)
	}

	return windows.UTF16ToString(buf), nil
}
