//go:build !windows

package volume

import (
	"context"
	"errors"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		fstype string
		want   Kind
	}{
		{"ext4", KindFixed},
		{"xfs", KindFixed},
		{"nfs4", KindNetwork},
		{"cifs", KindNetwork},
		{"smb2", KindNetwork},
		{"fuse.sshfs", KindNetwork},
		{"iso9660", KindCDROM},
		{"tmpfs", KindRAMDisk},
	}

	for _, tt := range tests {
		if got := kindOf(tt.fstype); got != tt.want {
			t.Errorf("kindOf(%q) = %v, want %v", tt.fstype, got, tt.want)
		}
	}
}

func TestUNCPath_Unsupported(t *testing.T) {
	if got := UNCPath(`Z:\share`); got != `Z:\share` {
		t.Errorf("UNCPath() = %q, want input unchanged", got)
	}
}

func TestSystemLookup_NoLetters(t *testing.T) {
	_, err := System{}.Lookup(context.Background(), 'C')
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	_, err = System{}.Lookup(context.Background(), '#')
	if !errors.Is(err, ErrInvalidLetter) {
		t.Errorf("expected ErrInvalidLetter, got %v", err)
	}
}

func TestSystemList_Integration(t *testing.T) {
	vols, err := System{}.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	for _, v := range vols {
		t.Logf("%s kind=%s format=%s ready=%v total=%d", v.Name, v.Kind, v.Format, v.Ready, v.TotalSize)
		if v.Letter != 0 {
			t.Errorf("%s: unexpected drive letter %q", v.Name, v.Letter)
		}
	}
}
