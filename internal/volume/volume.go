// Package volume lists the logical volumes visible to the OS and converts
// local paths on mapped drives to UNC paths.
package volume

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Kind mirrors the Win32 drive types returned by GetDriveTypeW.
type Kind uint32

const (
	KindUnknown   Kind = 0
	KindNoRootDir Kind = 1
	KindRemovable Kind = 2
	KindFixed     Kind = 3
	KindNetwork   Kind = 4
	KindCDROM     Kind = 5
	KindRAMDisk   Kind = 6
)

func (k Kind) String() string {
	switch k {
	case KindNoRootDir:
		return "NoRootDirectory"
	case KindRemovable:
		return "Removable"
	case KindFixed:
		return "Fixed"
	case KindNetwork:
		return "Network"
	case KindCDROM:
		return "CDRom"
	case KindRAMDisk:
		return "Ram"
	default:
		return "Unknown"
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Volume is one OS-visible logical volume.
type Volume struct {
	Name          string // "C:\"
	Letter        byte   // 'C', or 0 where drive letters do not exist
	Kind          Kind
	Label         string
	Format        string // "NTFS"
	Ready         bool
	TotalSize     uint64
	TotalFree     uint64
	AvailableFree uint64 // free bytes available to the calling user
	RootPath      string
}

// Lister enumerates logical volumes.
type Lister interface {
	List(ctx context.Context) ([]Volume, error)
	Lookup(ctx context.Context, letter byte) (Volume, error)
}

var (
	ErrInvalidLetter = errors.New("invalid drive letter")
	ErrNotFound      = errors.New("volume not found")
)

// IsLetter reports whether b is A-Z or a-z.
func IsLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// ParseLetter accepts "C", "c:", "C:\" or "C:/" and returns 'C'.
func ParseLetter(name string) (byte, error) {
	s := strings.TrimRight(name, `\/`)
	s = strings.TrimSuffix(s, ":")
	if len(s) != 1 || !IsLetter(s[0]) {
		return 0, fmt.Errorf("%q: %w", name, ErrInvalidLetter)
	}
	return upper(s[0]), nil
}

// RootPath returns the root directory path of a drive letter, "C:\".
func RootPath(letter byte) string {
	return string(upper(letter)) + `:\`
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - ('a' - 'A')
	}
	return b
}
