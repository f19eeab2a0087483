// Package detector classifies the physical disks behind logical drives as
// HDD or SSD.
//
// The Resolver maps a drive letter to a physical device index, the
// Classifier queries that device, and the Detector applies the strategy
// policy across one or all drives. Nothing is cached: every call re-queries
// the hardware.
package detector

import (
	"context"
	"errors"
	"fmt"

	"github.com/nhdewitt/diskdetect/internal/device"
	"github.com/nhdewitt/diskdetect/internal/inventory"
	"github.com/nhdewitt/diskdetect/internal/logger"
	"github.com/nhdewitt/diskdetect/internal/privilege"
	"github.com/nhdewitt/diskdetect/internal/volume"
)

// Detector assembles DriveDescriptors from the volume list, the device
// resolver and the classifier. The zero value is not usable; build one
// with New or fill every field except Inventory.
type Detector struct {
	Devices  device.Opener
	Volumes  volume.Lister
	Elevated func() bool
	UNCPath  func(string) string
	// Inventory, when set, supplies model names for resolved disks.
	Inventory func(context.Context) ([]inventory.Disk, error)
}

// New returns a Detector wired to the operating system.
func New() *Detector {
	return &Detector{
		Devices:   device.System{},
		Volumes:   volume.System{},
		Elevated:  privilege.IsElevated,
		UNCPath:   volume.UNCPath,
		Inventory: inventory.List,
	}
}

func (d *Detector) Resolver() Resolver {
	return NewResolver(d.Devices, d.Volumes)
}

func (d *Detector) Classifier() Classifier {
	return NewClassifier(d.Devices, d.Volumes)
}

// DetectFixedDrive describes one fixed drive. It returns an empty
// descriptor when the drive is not fixed, not ready, cannot be resolved,
// or classifies as Unknown.
func (d *Detector) DetectFixedDrive(ctx context.Context, letter byte, opts Options) (DriveDescriptor, error) {
	v, err := d.lookup(ctx, letter)
	if err != nil || v.Kind != volume.KindFixed || !v.Ready {
		return emptyDescriptor(), err
	}

	desc, resolved, err := d.detectFixed(v, opts, d.models(ctx))
	if err != nil {
		return emptyDescriptor(), err
	}
	if !resolved || desc.HardwareType == Unknown {
		return emptyDescriptor(), nil
	}
	return desc, nil
}

// DetectFixedDrives describes every fixed, ready drive whose hardware type
// could be determined. Drives that classify as Unknown are left out.
func (d *Detector) DetectFixedDrives(ctx context.Context, opts Options) ([]DriveDescriptor, error) {
	vols, err := d.Volumes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list volumes: %w", err)
	}
	models := d.models(ctx)

	result := make([]DriveDescriptor, 0, len(vols))
	for _, v := range vols {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if v.Kind != volume.KindFixed || !v.Ready {
			continue
		}

		desc, resolved, err := d.detectFixed(v, opts, models)
		if err != nil {
			return nil, err
		}
		if !resolved || desc.HardwareType == Unknown {
			logger.WithField("drive", v.Name).Debug("dropping unclassified fixed drive")
			continue
		}
		result = append(result, desc)
	}

	return result, nil
}

// DetectDrive describes one drive of any kind. Non-fixed drives get
// DeviceIndex -1 and Unknown without any device query. Not-ready drives and
// fixed drives whose device index cannot be resolved yield an empty
// descriptor.
func (d *Detector) DetectDrive(ctx context.Context, letter byte, opts Options) (DriveDescriptor, error) {
	v, err := d.lookup(ctx, letter)
	if err != nil || !v.Ready {
		return emptyDescriptor(), err
	}

	if v.Kind != volume.KindFixed {
		return d.describe(v), nil
	}

	desc, resolved, err := d.detectFixed(v, opts, d.models(ctx))
	if err != nil || !resolved {
		return emptyDescriptor(), err
	}
	return desc, nil
}

// DetectDrives describes every ready drive of any kind. Unlike
// DetectFixedDrives, drives that classify as Unknown are kept; fixed drives
// that cannot be resolved to a device are not.
func (d *Detector) DetectDrives(ctx context.Context, opts Options) ([]DriveDescriptor, error) {
	vols, err := d.Volumes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list volumes: %w", err)
	}
	models := d.models(ctx)

	result := make([]DriveDescriptor, 0, len(vols))
	for _, v := range vols {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !v.Ready {
			continue
		}

		if v.Kind != volume.KindFixed {
			result = append(result, d.describe(v))
			continue
		}

		desc, resolved, err := d.detectFixed(v, opts, models)
		if err != nil {
			return nil, err
		}
		if !resolved {
			logger.WithField("drive", v.Name).Debug("dropping unresolved fixed drive")
			continue
		}
		result = append(result, desc)
	}

	return result, nil
}

// lookup treats a missing drive as "nothing to describe" rather than an
// error; malformed letters and cancellation still fail.
func (d *Detector) lookup(ctx context.Context, letter byte) (volume.Volume, error) {
	if !volume.IsLetter(letter) {
		return volume.Volume{}, fmt.Errorf("%q: %w", letter, volume.ErrInvalidLetter)
	}

	v, err := d.Volumes.Lookup(ctx, letter)
	switch {
	case err == nil:
		return v, nil
	case errors.Is(err, volume.ErrNotFound):
		logger.WithField("drive", string(letter)).Debug(err)
		return volume.Volume{}, nil
	default:
		return volume.Volume{}, err
	}
}

// detectFixed resolves and classifies a fixed, ready volume. resolved is
// false when the device index could not be found; the descriptor then has
// DeviceIndex -1 and Unknown. The only error is ErrPrivilegeRequired.
func (d *Detector) detectFixed(v volume.Volume, opts Options, models map[int]inventory.Disk) (DriveDescriptor, bool, error) {
	desc := d.describe(v)

	index, err := d.Resolver().resolve(v)
	if err != nil {
		logger.WithField("drive", v.Name).Debug(err)
		return desc, false, nil
	}

	ht, err := d.classify(index, opts)
	if err != nil {
		return DriveDescriptor{}, true, err
	}

	desc.DeviceIndex = index
	desc.HardwareType = ht
	if m, ok := models[index]; ok {
		desc.Model = m.Model
		desc.Interface = m.InterfaceType
	}

	return desc, true, nil
}

// classify applies the strategy policy. Elevation is checked on every call.
func (d *Detector) classify(index int, opts Options) (HardwareType, error) {
	c := d.Classifier()

	switch opts.Strategy {
	case SeekPenalty:
		return c.BySeekPenalty(index), nil
	case RotationRate:
		if d.Elevated() {
			return c.ByRotationRate(index), nil
		}
		if opts.UseFallbackQuery {
			logger.WithField("index", index).Debug("not elevated, falling back to seek-penalty query")
			return c.BySeekPenalty(index), nil
		}
		return Unknown, ErrPrivilegeRequired
	default:
		return Unknown, fmt.Errorf("unsupported query strategy %s", opts.Strategy)
	}
}

func (d *Detector) describe(v volume.Volume) DriveDescriptor {
	unc := v.Name
	if d.UNCPath != nil {
		unc = d.UNCPath(v.Name)
	}

	return DriveDescriptor{
		Name:               v.Name,
		Letter:             v.Letter,
		Kind:               v.Kind,
		DeviceIndex:        -1,
		VolumeLabel:        v.Label,
		Format:             v.Format,
		TotalSize:          v.TotalSize,
		TotalFreeSpace:     v.TotalFree,
		AvailableFreeSpace: v.AvailableFree,
		RootDirectory:      v.RootPath,
		UNCPath:            unc,
		HardwareType:       Unknown,
	}
}

// models is best effort: without an inventory descriptors just lack a
// model name.
func (d *Detector) models(ctx context.Context) map[int]inventory.Disk {
	if d.Inventory == nil {
		return nil
	}

	disks, err := d.Inventory(ctx)
	if err != nil {
		logger.Debugf("disk inventory unavailable: %v", err)
		return nil
	}
	return inventory.ByIndex(disks)
}
