//go:build windows

package volume

import (
	"context"
	"fmt"
	"math/bits"
	"strings"

	"github.com/nhdewitt/diskdetect/internal/logger"
	"golang.org/x/sys/windows"
)

// System enumerates drive letters with GetLogicalDrives and fills each
// volume from GetDriveTypeW, GetVolumeInformationW and GetDiskFreeSpaceExW.
type System struct{}

func (s System) List(ctx context.Context) ([]Volume, error) {
	driveMask, err := windows.GetLogicalDrives()
	if err != nil {
		return nil, fmt.Errorf("GetLogicalDrives failed: %w", err)
	}

	result := make([]Volume, 0, bits.OnesCount32(driveMask))

	for i := range 26 {
		if driveMask&(1<<i) == 0 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result = append(result, query(byte('A'+i)))
	}

	return result, nil
}

func (s System) Lookup(ctx context.Context, letter byte) (Volume, error) {
	if !IsLetter(letter) {
		return Volume{}, fmt.Errorf("%q: %w", letter, ErrInvalidLetter)
	}
	if err := ctx.Err(); err != nil {
		return Volume{}, err
	}

	v := query(upper(letter))
	if v.Kind == KindNoRootDir {
		return v, fmt.Errorf("%s: %w", v.Name, ErrNotFound)
	}
	return v, nil
}

func query(letter byte) Volume {
	rootPath := RootPath(letter)
	rootPathPtr, _ := windows.UTF16PtrFromString(rootPath)

	v := Volume{
		Name:     rootPath,
		Letter:   letter,
		Kind:     Kind(windows.GetDriveType(rootPathPtr)),
		RootPath: rootPath,
	}
	if v.Kind == KindNoRootDir {
		return v
	}

	var volNameBuf [windows.MAX_PATH + 1]uint16
	var fsNameBuf [windows.MAX_PATH + 1]uint16

	err := windows.GetVolumeInformation(
		rootPathPtr,
		&volNameBuf[0],
		uint32(len(volNameBuf)),
		nil,
		nil,
		nil,
		&fsNameBuf[0],
		uint32(len(fsNameBuf)),
	)
	if err != nil {
		// No media in the drive, or a disconnected network share.
		logger.Debugf("volume %s not ready: %v", rootPath, err)
		return v
	}

	v.Label = windows.UTF16ToString(volNameBuf[:])
	v.Format = strings.ToUpper(windows.UTF16ToString(fsNameBuf[:]))
	v.Ready = true

	err = windows.GetDiskFreeSpaceEx(
		rootPathPtr,
		&v.AvailableFree,
		&v.TotalSize,
		&v.TotalFree,
	)
	if err != nil {
		logger.Warnf("failed to get space for %s: %v", rootPath, err)
	}

	return v
}
