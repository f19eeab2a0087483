// Package report renders the result of a detection run.
package report

import (
	"time"

	"github.com/google/uuid"
	"github.com/nhdewitt/diskdetect/internal/detector"
)

// Report is one detection run.
type Report struct {
	ID        string    `json:"id"`
	Hostname  string    `json:"hostname"`
	Timestamp time.Time `json:"timestamp"`
	Elevated  bool      `json:"elevated"`
	Strategy  string    `json:"strategy"`
	Fallback  bool      `json:"fallback"`
	Drives    []Drive   `json:"drives"`
}

// Drive is the serialized form of a detector.DriveDescriptor.
type Drive struct {
	Name          string  `json:"name"`
	Letter        string  `json:"letter"`
	DriveType     string  `json:"drive_type"`
	DeviceIndex   int     `json:"device_index"`
	HardwareType  string  `json:"hardware_type"`
	Label         string  `json:"label,omitempty"`
	Filesystem    string  `json:"filesystem,omitempty"`
	Total         uint64  `json:"disk_total"`
	Free          uint64  `json:"disk_free"`
	Available     uint64  `json:"disk_available"`
	UsedPct       float64 `json:"disk_used_pct"`
	RootDirectory string  `json:"root_directory"`
	UNCPath       string  `json:"unc_path,omitempty"`
	Model         string  `json:"model,omitempty"`
	Interface     string  `json:"interface,omitempty"`
}

// New builds a Report for descs. Empty descriptors are skipped.
func New(hostname string, elevated bool, opts detector.Options, descs []detector.DriveDescriptor) Report {
	r := Report{
		ID:        uuid.NewString(),
		Hostname:  hostname,
		Timestamp: time.Now().UTC(),
		Elevated:  elevated,
		Strategy:  opts.Strategy.String(),
		Fallback:  opts.UseFallbackQuery,
		Drives:    make([]Drive, 0, len(descs)),
	}

	for _, d := range descs {
		if d.Empty() {
			continue
		}
		r.Drives = append(r.Drives, driveFrom(d))
	}

	return r
}

func driveFrom(d detector.DriveDescriptor) Drive {
	unc := d.UNCPath
	if unc == d.Name {
		unc = ""
	}

	return Drive{
		Name:          d.Name,
		Letter:        string(d.Letter),
		DriveType:     d.Kind.String(),
		DeviceIndex:   d.DeviceIndex,
		HardwareType:  d.HardwareType.String(),
		Label:         d.VolumeLabel,
		Filesystem:    d.Format,
		Total:         d.TotalSize,
		Free:          d.TotalFreeSpace,
		Available:     d.AvailableFreeSpace,
		UsedPct:       percent(d.TotalSize-min(d.TotalFreeSpace, d.TotalSize), d.TotalSize),
		RootDirectory: d.RootDirectory,
		UNCPath:       unc,
		Model:         d.Model,
		Interface:     d.Interface,
	}
}
