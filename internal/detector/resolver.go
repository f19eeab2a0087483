package detector

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhdewitt/diskdetect/internal/device"
	"github.com/nhdewitt/diskdetect/internal/ioctl"
	"github.com/nhdewitt/diskdetect/internal/logger"
	"github.com/nhdewitt/diskdetect/internal/volume"
)

// Resolver maps a fixed drive letter to the physical device index backing
// it. Only the first extent is used, so a volume spanning several disks
// resolves to the disk holding its first extent.
type Resolver struct {
	Devices device.Opener
	Volumes volume.Lister
}

func NewResolver(devices device.Opener, volumes volume.Lister) Resolver {
	return Resolver{Devices: devices, Volumes: volumes}
}

// ResolveDeviceIndex returns the physical device index for letter. Errors
// are *ResolutionError.
func (r Resolver) ResolveDeviceIndex(letter byte) (int, error) {
	if !volume.IsLetter(letter) {
		return -1, &ResolutionError{Kind: NotAFixedDrive, Letter: letter, Err: volume.ErrInvalidLetter}
	}

	v, err := r.Volumes.Lookup(context.Background(), letter)
	if err != nil {
		return -1, &ResolutionError{Kind: NotAFixedDrive, Letter: letter, Err: err}
	}

	return r.resolve(v)
}

// resolve works from an already looked-up volume so the aggregator does not
// query the volume twice.
func (r Resolver) resolve(v volume.Volume) (int, error) {
	if v.Kind != volume.KindFixed || !volume.IsLetter(v.Letter) {
		return -1, &ResolutionError{
			Kind:   NotAFixedDrive,
			Letter: v.Letter,
			Err:    fmt.Errorf("drive type is %s", v.Kind),
		}
	}

	path := device.VolumePath(v.Letter)

	h, err := r.Devices.Open(path, device.AccessQuery)
	if err != nil {
		code, _ := device.Code(err)
		return -1, &ResolutionError{Kind: HandleOpenFailed, Letter: v.Letter, Code: code, Err: err}
	}
	defer h.Close()

	buf := make([]byte, ioctl.VolumeDiskExtentsSize(1))
	_, err = h.Control(ioctl.IoctlVolumeGetVolumeDiskExtents, nil, buf)
	if err != nil && !errors.Is(err, device.ErrMoreData) {
		code, _ := device.Code(err)
		return -1, &ResolutionError{Kind: ExtentQueryFailed, Letter: v.Letter, Code: code, Err: err}
	}

	// On ERROR_MORE_DATA the driver still fills the first extent.
	extents, perr := ioctl.ParseVolumeDiskExtents(buf)
	if perr != nil || len(extents.Extents) == 0 {
		code, _ := device.Code(err)
		if perr == nil {
			perr = errors.New("no disk extents returned")
		}
		return -1, &ResolutionError{Kind: ExtentQueryFailed, Letter: v.Letter, Code: code, Err: perr}
	}

	if extents.Count > 1 {
		logger.WithField("drive", string(v.Letter)).Debugf(
			"volume spans %d extents, using PhysicalDrive%d", extents.Count, extents.Extents[0].DiskNumber)
	}

	return int(extents.Extents[0].DiskNumber), nil
}
