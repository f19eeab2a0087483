package detector

import (
	"errors"
	"fmt"
)

// ErrPrivilegeRequired is returned when RotationRate is requested from an
// unelevated process and fallback is disabled.
var ErrPrivilegeRequired = errors.New("rotation-rate query requires administrative access")

var (
	ErrHandleOpenFailed  = errors.New("handle open failed")
	ErrExtentQueryFailed = errors.New("extent query failed")
	ErrNotAFixedDrive    = errors.New("not a fixed drive")
)

// ResolutionErrorKind says which step of device resolution failed.
type ResolutionErrorKind int

const (
	HandleOpenFailed ResolutionErrorKind = iota + 1
	ExtentQueryFailed
	NotAFixedDrive
)

func (k ResolutionErrorKind) sentinel() error {
	switch k {
	case HandleOpenFailed:
		return ErrHandleOpenFailed
	case ExtentQueryFailed:
		return ErrExtentQueryFailed
	case NotAFixedDrive:
		return ErrNotAFixedDrive
	}
	return nil
}

func (k ResolutionErrorKind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("ResolutionErrorKind(%d)", int(k))
}

// ResolutionError is returned by Resolver.ResolveDeviceIndex. Code carries
// the OS error code when one is available.
type ResolutionError struct {
	Kind   ResolutionErrorKind
	Letter byte
	Code   uint32
	Err    error
}

func (e *ResolutionError) Error() string {
	letter := "?"
	if e.Letter != 0 {
		letter = string(e.Letter)
	}
	msg := fmt.Sprintf("resolve %s: %s", letter, e.Kind)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResolutionError) Unwrap() error { return e.Err }

func (e *ResolutionError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// detectionError is a failed classifier query. It never leaves the
// classifier; the public entry points turn it into Unknown.
type detectionError struct {
	query string
	path  string
	err   error
}

func (e *detectionError) Error() string {
	return fmt.Sprintf("could not detect %s of %s: %v", e.query, e.path, e.err)
}

func (e *detectionError) Unwrap() error { return e.err }
