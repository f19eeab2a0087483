//go:build windows

package inventory

import (
	"context"
	"fmt"

	"github.com/yusufpapurcu/wmi"
)

// Win32_DiskDrive maps to the WMI class of the same name.
type Win32_DiskDrive struct {
	Index         uint32
	InterfaceType string
	Model         string
}

const diskDriveQuery = "SELECT Index, InterfaceType, Model FROM Win32_DiskDrive"

// List queries Win32_DiskDrive. WMI calls are not cancellable; ctx is only
// checked before the query starts.
func List(ctx context.Context) ([]Disk, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var drives []Win32_DiskDrive
	if err := wmi.Query(diskDriveQuery, &drives); err != nil {
		return nil, fmt.Errorf("WMI query failed: %w", err)
	}

	disks := make([]Disk, 0, len(drives))
	for _, d := range drives {
		disks = append(disks, Disk{
			Index:         d.Index,
			Model:         clean(d.Model),
			InterfaceType: clean(d.InterfaceType),
		})
	}

	return disks, nil
}
