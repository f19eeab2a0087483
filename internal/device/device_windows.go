//go:build windows

package device

import (
	"errors"

	"golang.org/x/sys/windows"
)

// System opens devices through CreateFileW and DeviceIoControl.
type System struct{}

func (System) Open(path string, access Access) (Handle, error) {
	pathPtr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, &OSError{Op: "open", Path: path, Code: uint32(windows.ERROR_INVALID_NAME), Err: err}
	}

	h, err := windows.CreateFile(
		pathPtr,
		uint32(access),
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_ATTRIBUTE_NORMAL,
		0,
	)
	if err != nil {
		return nil, osError("open", path, err)
	}

	return &handle{h: h, path: path}, nil
}

type handle struct {
	h    windows.Handle
	path string
}

func (h *handle) Control(code uint32, in, out []byte) (uint32, error) {
	var inPtr, outPtr *byte
	if len(in) > 0 {
		inPtr = &in[0]
	}
	if len(out) > 0 {
		outPtr = &out[0]
	}

	var bytesReturned uint32
	err := windows.DeviceIoControl(
		h.h,
		code,
		inPtr,
		uint32(len(in)),
		outPtr,
		uint32(len(out)),
		&bytesReturned,
		nil,
	)
	if err != nil {
		return bytesReturned, osError("ioctl", h.path, err)
	}

	return bytesReturned, nil
}

func (h *handle) Close() error {
	if h.h == windows.InvalidHandle {
		return nil
	}
	err := windows.CloseHandle(h.h)
	h.h = windows.InvalidHandle
	return err
}

func osError(op, path string, err error) error {
	var errno windows.Errno
	if errors.As(err, &errno) {
		return &OSError{Op: op, Path: path, Code: uint32(errno), Err: err}
	}
	return &OSError{Op: op, Path: path, Err: err}
}
