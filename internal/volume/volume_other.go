//go:build !windows

package volume

import (
	"context"
	"fmt"
	"strings"

	"github.com/nhdewitt/diskdetect/internal/logger"
	"github.com/shirou/gopsutil/v4/disk"
)

// System lists mounted filesystems through gopsutil. There are no drive
// letters here, so Lookup never finds anything.
type System struct{}

var networkFilesystems = map[string]struct{}{
	"nfs":        {},
	"nfs4":       {},
	"cifs":       {},
	"smbfs":      {},
	"smb3":       {},
	"afpfs":      {},
	"9p":         {},
	"sshfs":      {},
	"fuse.sshfs": {},
	"davfs":      {},
}

var optical = map[string]struct{}{
	"iso9660": {},
	"udf":     {},
}

func (s System) List(ctx context.Context) ([]Volume, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list partitions: %w", err)
	}

	result := make([]Volume, 0, len(parts))
	for _, p := range parts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		v := Volume{
			Name:     p.Mountpoint,
			Kind:     kindOf(p.Fstype),
			Format:   strings.ToUpper(p.Fstype),
			RootPath: p.Mountpoint,
		}

		usage, err := disk.UsageWithContext(ctx, p.Mountpoint)
		if err != nil {
			logger.Debugf("volume %s not ready: %v", p.Mountpoint, err)
			result = append(result, v)
			continue
		}

		v.Ready = true
		v.TotalSize = usage.Total
		v.TotalFree = usage.Free
		v.AvailableFree = usage.Free
		result = append(result, v)
	}

	return result, nil
}

func (s System) Lookup(ctx context.Context, letter byte) (Volume, error) {
	if !IsLetter(letter) {
		return Volume{}, fmt.Errorf("%q: %w", letter, ErrInvalidLetter)
	}
	return Volume{}, fmt.Errorf("%s: %w", RootPath(letter), ErrNotFound)
}

func kindOf(fstype string) Kind {
	fs := strings.ToLower(fstype)
	if _, ok := networkFilesystems[fs]; ok {
		return KindNetwork
	}
	if strings.HasPrefix(fs, "smb") || strings.HasPrefix(fs, "nfs") {
		return KindNetwork
	}
	if _, ok := optical[fs]; ok {
		return KindCDROM
	}
	if fs == "tmpfs" || fs == "ramfs" {
		return KindRAMDisk
	}
	return KindFixed
}
