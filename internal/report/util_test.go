package report

import (
	"math"
	"testing"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		used, total uint64
		want        float64
	}{
		{0, 100, 0.0},
		{100, 100, 100.0},
		{50, 100, 50.0},
		{0, 0, 0.0}, // Division by zero
		{1, 1000000, 0.0001},
	}

	for _, tt := range tests {
		got := percent(tt.used, tt.total)
		if math.Abs(got-tt.want) > 0.0001 {
			t.Errorf("percent(%d, %d) = %f, want %f", tt.used, tt.total, got, tt.want)
		}
	}
}

func TestHumanBytes(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{255505461248, "238.0 GiB"},
		{1 << 40, "1.0 TiB"},
	}

	for _, tt := range tests {
		if got := humanBytes(tt.n); got != tt.want {
			t.Errorf("humanBytes(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func BenchmarkHumanBytes(b *testing.B) {
	for b.Loop() {
		humanBytes(uint64(255505461248))
	}
}
