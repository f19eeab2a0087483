//go:build windows

package device

import (
	"errors"
	"testing"

	"github.com/nhdewitt/diskdetect/internal/ioctl"
)

func TestSystemOpen_Missing(t *testing.T) {
	_, err := System{}.Open(PhysicalDrivePath(250), AccessQuery)
	if err == nil {
		t.Fatal("expected error opening a non-existent drive")
	}

	code, ok := Code(err)
	if !ok {
		t.Fatalf("expected OSError, got %T", err)
	}
	t.Logf("open PhysicalDrive250: code %d", code)
}

func TestSystemVolumeExtents_Integration(t *testing.T) {
	h, err := System{}.Open(VolumePath('C'), AccessQuery)
	if err != nil {
		t.Skipf("cannot open C: volume: %v", err)
	}
	defer h.Close()

	buf := make([]byte, ioctl.VolumeDiskExtentsSize(1))
	_, err = h.Control(ioctl.IoctlVolumeGetVolumeDiskExtents, nil, buf)
	if err != nil && !errors.Is(err, ErrMoreData) {
		t.Fatalf("extent query failed: %v", err)
	}

	ext, err := ioctl.ParseVolumeDiskExtents(buf)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(ext.Extents) == 0 {
		t.Fatal("expected at least one extent for C:")
	}
	t.Logf("C: -> PhysicalDrive%d", ext.Extents[0].DiskNumber)
}
