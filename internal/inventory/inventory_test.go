package inventory

import "testing"

func TestByIndex(t *testing.T) {
	disks := []Disk{
		{Index: 0, Model: "Samsung SSD 970 EVO"},
		{Index: 1, Model: "WDC WD20EZRZ-00Z5HB0"},
	}

	m := ByIndex(disks)
	if len(m) != 2 {
		t.Fatalf("len = %d, want 2", len(m))
	}
	if m[1].Model != "WDC WD20EZRZ-00Z5HB0" {
		t.Errorf("m[1].Model = %q", m[1].Model)
	}
	if _, ok := m[2]; ok {
		t.Error("unexpected entry for index 2")
	}
}

func TestClean(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  WDC WD20EZRZ-00Z5HB0  ", "WDC WD20EZRZ-00Z5HB0"},
		{"Model\x00\x00", "Model"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := clean(tt.in); got != tt.want {
			t.Errorf("clean(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
