//go:build !windows

package device

import "errors"

// System reports every open as unsupported; raw storage IOCTLs only exist
// on Windows.
type System struct{}

func (System) Open(path string, access Access) (Handle, error) {
	return nil, &OSError{Op: "open", Path: path, Code: CodeNotSupported, Err: errors.ErrUnsupported}
}
