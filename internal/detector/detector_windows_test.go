//go:build windows

package detector

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/sys/windows"
)

func TestDetectDrives_Integration(t *testing.T) {
	d := New()

	drives, err := d.DetectDrives(context.Background(), DefaultOptions())
	if err != nil {
		t.Fatalf("DetectDrives: %v", err)
	}
	if len(drives) == 0 {
		t.Fatal("expected at least one drive")
	}

	for _, desc := range drives {
		t.Logf("%s kind=%s index=%d type=%s model=%q unc=%q",
			desc.Name, desc.Kind, desc.DeviceIndex, desc.HardwareType, desc.Model, desc.UNCPath)
		if desc.DeviceIndex == -1 && desc.HardwareType != Unknown {
			t.Errorf("%s: unresolved drive classified as %v", desc.Name, desc.HardwareType)
		}
	}
}

func TestDetectFixedDrives_Integration(t *testing.T) {
	d := New()

	fixed, err := d.DetectFixedDrives(context.Background(), DefaultOptions())
	if err != nil {
		t.Fatalf("DetectFixedDrives: %v", err)
	}

	for _, desc := range fixed {
		if desc.HardwareType == Unknown || desc.DeviceIndex < 0 {
			t.Errorf("%s: fixed-only result holds %v at index %d", desc.Name, desc.HardwareType, desc.DeviceIndex)
		}
	}

	again, err := d.DetectFixedDrives(context.Background(), DefaultOptions())
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	if len(again) != len(fixed) {
		t.Errorf("drive count changed: %d then %d", len(fixed), len(again))
	}
}

func TestDetect_RotationRate_Integration(t *testing.T) {
	d := New()
	opts := Options{Strategy: RotationRate}

	if got, want := d.Elevated(), windows.GetCurrentProcessToken().IsElevated(); got != want {
		t.Fatalf("Elevated() = %v, process token elevated = %v", got, want)
	}

	_, err := d.DetectFixedDrives(context.Background(), opts)
	if d.Elevated() {
		if err != nil {
			t.Fatalf("elevated rotation-rate detection failed: %v", err)
		}
		return
	}
	if !errors.Is(err, ErrPrivilegeRequired) {
		t.Errorf("unelevated err = %v, want ErrPrivilegeRequired", err)
	}
}
