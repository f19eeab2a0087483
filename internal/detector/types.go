package detector

import (
	"fmt"
	"strings"

	"github.com/nhdewitt/diskdetect/internal/volume"
)

// HardwareType is the classification of a physical disk. Unknown is both
// the zero value and the result of any failed detection.
type HardwareType int

const (
	Unknown HardwareType = iota
	Hdd
	Ssd
)

func (h HardwareType) String() string {
	switch h {
	case Hdd:
		return "Hdd"
	case Ssd:
		return "Ssd"
	default:
		return "Unknown"
	}
}

func (h HardwareType) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *HardwareType) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "unknown", "":
		*h = Unknown
	case "hdd":
		*h = Hdd
	case "ssd":
		*h = Ssd
	default:
		return fmt.Errorf("unknown hardware type %q", text)
	}
	return nil
}

// QueryStrategy selects the raw device query used for classification.
type QueryStrategy int

const (
	// SeekPenalty queries the storage seek-penalty property. No elevation
	// needed.
	SeekPenalty QueryStrategy = iota
	// RotationRate reads the nominal media rotation rate from ATA IDENTIFY
	// DEVICE. Needs an elevated process.
	RotationRate
)

func (q QueryStrategy) String() string {
	switch q {
	case SeekPenalty:
		return "seek-penalty"
	case RotationRate:
		return "rotation-rate"
	default:
		return fmt.Sprintf("QueryStrategy(%d)", int(q))
	}
}

// ParseQueryStrategy accepts "seek-penalty" or "rotation-rate", with or
// without the dash, in any case.
func ParseQueryStrategy(s string) (QueryStrategy, error) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "") {
	case "seekpenalty":
		return SeekPenalty, nil
	case "rotationrate":
		return RotationRate, nil
	}
	return SeekPenalty, fmt.Errorf("unknown query strategy %q", s)
}

// Options controls strategy selection for the Detect* calls.
type Options struct {
	Strategy QueryStrategy
	// UseFallbackQuery falls back to SeekPenalty when RotationRate is
	// requested from an unelevated process.
	UseFallbackQuery bool
}

// DefaultOptions uses SeekPenalty with fallback enabled.
func DefaultOptions() Options {
	return Options{Strategy: SeekPenalty, UseFallbackQuery: true}
}

// DriveDescriptor is a snapshot of one logical drive and the hardware type
// of the physical disk behind it.
type DriveDescriptor struct {
	Name               string // "C:\"
	Letter             byte
	Kind               volume.Kind
	DeviceIndex        int // -1 when unresolved
	VolumeLabel        string
	Format             string
	TotalSize          uint64
	TotalFreeSpace     uint64
	AvailableFreeSpace uint64
	RootDirectory      string
	UNCPath            string
	Model              string
	Interface          string
	HardwareType       HardwareType
}

func emptyDescriptor() DriveDescriptor {
	return DriveDescriptor{DeviceIndex: -1}
}

// Empty reports whether d is the placeholder returned when a single-drive
// detection found nothing to describe.
func (d DriveDescriptor) Empty() bool {
	return d.Name == "" && d.Letter == 0
}
