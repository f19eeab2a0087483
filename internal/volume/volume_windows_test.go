//go:build windows

package volume

import (
	"context"
	"strings"
	"testing"
)

func TestSystemList_Integration(t *testing.T) {
	vols, err := System{}.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	if len(vols) == 0 {
		t.Fatal("expected at least one volume")
	}

	foundCDrive := false
	for _, v := range vols {
		t.Logf("%s kind=%s label=%q format=%s ready=%v", v.Name, v.Kind, v.Label, v.Format, v.Ready)

		if v.Ready && v.TotalSize == 0 {
			t.Errorf("%s is ready but has 0 total bytes", v.Name)
		}
		if strings.EqualFold(v.Name, `C:\`) {
			foundCDrive = true
		}
	}

	if !foundCDrive {
		t.Log("Warning: C:\\ drive was not found.")
	}
}

func TestSystemLookup_Integration(t *testing.T) {
	v, err := System{}.Lookup(context.Background(), 'c')
	if err != nil {
		t.Fatalf("Lookup(C) failed: %v", err)
	}
	if v.Letter != 'C' || v.Name != `C:\` {
		t.Errorf("Lookup(C) = %+v", v)
	}
	if v.Kind != KindFixed {
		t.Logf("C: is %s, not fixed", v.Kind)
	}
}

func BenchmarkSystemList(b *testing.B) {
	ctx := context.Background()
	b.ReportAllocs()

	for b.Loop() {
		_, _ = System{}.List(ctx)
	}
}
