package detector

import (
	"errors"

	"github.com/nhdewitt/diskdetect/internal/device"
	"github.com/nhdewitt/diskdetect/internal/ioctl"
	"github.com/nhdewitt/diskdetect/internal/logger"
	"github.com/nhdewitt/diskdetect/internal/volume"
)

const (
	querySeekPenalty  = "SeekPenalty"
	queryRotationRate = "NominalMediaRotationRate"
)

var errInvalidIndex = errors.New("invalid physical device index")

// Classifier turns a physical device index into a HardwareType. None of
// its methods fail: every error is logged at debug level and reported as
// Unknown.
type Classifier struct {
	Devices  device.Opener
	Resolver Resolver
}

func NewClassifier(devices device.Opener, volumes volume.Lister) Classifier {
	return Classifier{Devices: devices, Resolver: NewResolver(devices, volumes)}
}

// BySeekPenalty classifies a disk from its seek-penalty property: a disk
// that incurs a seek penalty is rotational.
func (c Classifier) BySeekPenalty(index int) HardwareType {
	penalty, err := c.incursSeekPenalty(index)
	if err != nil {
		logger.WithField("index", index).Debug(err)
		return Unknown
	}
	if penalty {
		return Hdd
	}
	return Ssd
}

// ByRotationRate classifies a disk from the IDENTIFY DEVICE nominal media
// rotation rate. It needs an elevated process; without one the open fails
// and the result is Unknown.
func (c Classifier) ByRotationRate(index int) HardwareType {
	rotating, err := c.isRotating(index)
	if err != nil {
		logger.WithField("index", index).Debug(err)
		return Unknown
	}
	if rotating {
		return Hdd
	}
	return Ssd
}

// BySeekPenaltyLetter resolves letter and classifies it by seek penalty.
func (c Classifier) BySeekPenaltyLetter(letter byte) HardwareType {
	index, err := c.Resolver.ResolveDeviceIndex(letter)
	if err != nil {
		logger.WithField("drive", string(letter)).Debug(err)
		return Unknown
	}
	return c.BySeekPenalty(index)
}

// ByRotationRateLetter resolves letter and classifies it by rotation rate.
func (c Classifier) ByRotationRateLetter(letter byte) HardwareType {
	index, err := c.Resolver.ResolveDeviceIndex(letter)
	if err != nil {
		logger.WithField("drive", string(letter)).Debug(err)
		return Unknown
	}
	return c.ByRotationRate(index)
}

func (c Classifier) incursSeekPenalty(index int) (bool, error) {
	path := device.PhysicalDrivePath(index)
	if index < 0 {
		return false, &detectionError{query: querySeekPenalty, path: path, err: errInvalidIndex}
	}

	h, err := c.Devices.Open(path, device.AccessQuery)
	if err != nil {
		return false, &detectionError{query: querySeekPenalty, path: path, err: err}
	}
	defer h.Close()

	query := ioctl.EncodeStoragePropertyQuery(ioctl.StorageDeviceSeekPenaltyProperty, ioctl.PropertyStandardQuery)
	out := make([]byte, ioctl.SeekPenaltyDescriptorSize)

	n, err := h.Control(ioctl.IoctlStorageQueryProperty, query, out)
	if err != nil {
		return false, &detectionError{query: querySeekPenalty, path: path, err: err}
	}

	desc, err := ioctl.ParseSeekPenaltyDescriptor(out[:min(int(n), len(out))])
	if err != nil {
		return false, &detectionError{query: querySeekPenalty, path: path, err: err}
	}

	return desc.IncursSeekPenalty, nil
}

func (c Classifier) isRotating(index int) (bool, error) {
	path := device.PhysicalDrivePath(index)
	if index < 0 {
		return false, &detectionError{query: queryRotationRate, path: path, err: errInvalidIndex}
	}

	h, err := c.Devices.Open(path, device.AccessReadWrite)
	if err != nil {
		return false, &detectionError{query: queryRotationRate, path: path, err: err}
	}
	defer h.Close()

	buf := ioctl.NewIdentifyDeviceRequest().Encode()

	n, err := h.Control(ioctl.IoctlAtaPassThrough, buf, buf)
	if err != nil {
		return false, &detectionError{query: queryRotationRate, path: path, err: err}
	}

	data, err := ioctl.ParseIdentifyResponse(buf[:min(int(n), len(buf))])
	if err != nil {
		return false, &detectionError{query: queryRotationRate, path: path, err: err}
	}

	return !data.NonRotating(), nil
}
