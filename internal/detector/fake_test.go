package detector

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/nhdewitt/diskdetect/internal/device"
	"github.com/nhdewitt/diskdetect/internal/ioctl"
	"github.com/nhdewitt/diskdetect/internal/volume"
)

// Win32 error codes returned by the fakes.
const (
	errInvalidFunction = 1
	errFileNotFound    = 2
	errAccessDenied    = 5
	errNotReady        = 21
)

// fakeDisk scripts the responses of one device path.
type fakeDisk struct {
	openErr  error
	adminRW  bool // read-write opens fail with access denied
	ctlErr   error
	extents  []uint32
	moreData bool
	penalty  bool
	rate     uint16
	shortOut bool
}

type openCall struct {
	path   string
	access device.Access
}

// fakeDevices is a device.Opener backed by scripted fakeDisks.
type fakeDevices struct {
	mu     sync.Mutex
	disks  map[string]*fakeDisk
	opens  []openCall
	closes map[string]int
	ctls   []uint32
}

func newFakeDevices() *fakeDevices {
	return &fakeDevices{
		disks:  make(map[string]*fakeDisk),
		closes: make(map[string]int),
	}
}

func (f *fakeDevices) volume(letter byte, disks ...uint32) *fakeDisk {
	d := &fakeDisk{extents: disks}
	f.disks[device.VolumePath(letter)] = d
	return d
}

func (f *fakeDevices) physical(index int, penalty bool, rate uint16) *fakeDisk {
	d := &fakeDisk{penalty: penalty, rate: rate, adminRW: true}
	f.disks[device.PhysicalDrivePath(index)] = d
	return d
}

func (f *fakeDevices) Open(path string, access device.Access) (device.Handle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.opens = append(f.opens, openCall{path, access})

	d, ok := f.disks[path]
	if !ok {
		return nil, &device.OSError{Op: "open", Path: path, Code: errFileNotFound}
	}
	if d.openErr != nil {
		return nil, d.openErr
	}
	return &fakeHandle{f: f, d: d, path: path, access: access}, nil
}

func (f *fakeDevices) openCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.opens)
}

func (f *fakeDevices) closeCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.closes {
		n += c
	}
	return n
}

// opened counts successful and failed opens of path with access.
func (f *fakeDevices) opened(path string, access device.Access) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, o := range f.opens {
		if o.path == path && o.access == access {
			n++
		}
	}
	return n
}

type fakeHandle struct {
	f      *fakeDevices
	d      *fakeDisk
	path   string
	access device.Access
	closed bool
}

func (h *fakeHandle) Control(code uint32, in, out []byte) (uint32, error) {
	h.f.mu.Lock()
	h.f.ctls = append(h.f.ctls, code)
	h.f.mu.Unlock()

	if h.closed {
		return 0, errors.New("use of closed handle")
	}
	if h.d.ctlErr != nil {
		return 0, h.d.ctlErr
	}

	switch code {
	case ioctl.IoctlVolumeGetVolumeDiskExtents:
		return h.extents(out)
	case ioctl.IoctlStorageQueryProperty:
		return h.seekPenalty(in, out)
	case ioctl.IoctlAtaPassThrough:
		return h.identify(in, out)
	}
	return 0, &device.OSError{Op: "ioctl", Path: h.path, Code: errInvalidFunction}
}

func (h *fakeHandle) extents(out []byte) (uint32, error) {
	count := len(h.d.extents)
	binary.LittleEndian.PutUint32(out[0:], uint32(count))

	n := 4
	for i, disk := range h.d.extents {
		off := 8 + i*24
		if off+24 > len(out) {
			break
		}
		binary.LittleEndian.PutUint32(out[off:], disk)
		n = off + 24
	}

	if h.d.moreData {
		return uint32(n), &device.OSError{Op: "ioctl", Path: h.path, Code: device.CodeMoreData}
	}
	return uint32(n), nil
}

func (h *fakeHandle) seekPenalty(in, out []byte) (uint32, error) {
	if len(in) != ioctl.StoragePropertyQuerySize {
		return 0, fmt.Errorf("bad query size %d", len(in))
	}
	if binary.LittleEndian.Uint32(in[0:]) != ioctl.StorageDeviceSeekPenaltyProperty {
		return 0, &device.OSError{Op: "ioctl", Path: h.path, Code: errInvalidFunction}
	}

	binary.LittleEndian.PutUint32(out[0:], 12)
	binary.LittleEndian.PutUint32(out[4:], 12)
	out[8] = 0
	if h.d.penalty {
		out[8] = 1
	}
	if h.d.shortOut {
		return 8, nil
	}
	return 12, nil
}

func (h *fakeHandle) identify(in, out []byte) (uint32, error) {
	if h.d.adminRW && h.access != device.AccessReadWrite {
		return 0, &device.OSError{Op: "ioctl", Path: h.path, Code: errAccessDenied}
	}

	hdr := ioctl.AtaPassThroughHeaderSize
	if len(in) != hdr+ioctl.IdentifyDataBytes {
		return 0, fmt.Errorf("bad pass-through size %d", len(in))
	}
	if in[hdr-2] != ioctl.AtaIdentifyDevice {
		return 0, fmt.Errorf("unexpected command %#x", in[hdr-2])
	}

	binary.LittleEndian.PutUint16(out[hdr+2*ioctl.NominalMediaRotationRateWord:], h.d.rate)
	if h.d.shortOut {
		return uint32(hdr + 64), nil
	}
	return uint32(len(out)), nil
}

func (h *fakeHandle) Close() error {
	h.f.mu.Lock()
	defer h.f.mu.Unlock()
	if h.closed {
		return errors.New("double close")
	}
	h.closed = true
	h.f.closes[h.path]++
	return nil
}

// privileged wraps fakeDevices so read-write opens succeed only when the
// process is elevated.
type privileged struct {
	*fakeDevices
	elevated *bool
}

func (p privileged) Open(path string, access device.Access) (device.Handle, error) {
	if access == device.AccessReadWrite && !*p.elevated {
		p.mu.Lock()
		p.opens = append(p.opens, openCall{path, access})
		p.mu.Unlock()
		return nil, &device.OSError{Op: "open", Path: path, Code: errAccessDenied}
	}
	return p.fakeDevices.Open(path, access)
}

// fakeVolumes is a volume.Lister over a fixed slice.
type fakeVolumes struct {
	vols    []volume.Volume
	listErr error
	lookups int
}

func (f *fakeVolumes) List(ctx context.Context) ([]volume.Volume, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]volume.Volume(nil), f.vols...), nil
}

func (f *fakeVolumes) Lookup(ctx context.Context, letter byte) (volume.Volume, error) {
	f.lookups++
	if err := ctx.Err(); err != nil {
		return volume.Volume{}, err
	}
	for _, v := range f.vols {
		if v.Letter == letter || v.Letter == letter-('a'-'A') {
			return v, nil
		}
	}
	return volume.Volume{Letter: letter, Kind: volume.KindNoRootDir}, fmt.Errorf("%c: %w", letter, volume.ErrNotFound)
}

func fixedVolume(letter byte, label string) volume.Volume {
	return volume.Volume{
		Name:          volume.RootPath(letter),
		Letter:        letter,
		Kind:          volume.KindFixed,
		Label:         label,
		Format:        "NTFS",
		Ready:         true,
		TotalSize:     255505461248,
		TotalFree:     23861460992,
		AvailableFree: 23861460992,
		RootPath:      volume.RootPath(letter),
	}
}

func networkVolume(letter byte, label string) volume.Volume {
	v := fixedVolume(letter, label)
	v.Kind = volume.KindNetwork
	v.Format = "EXFS"
	return v
}

func fakeUNC(path string) string {
	if path == `Z:\` {
		return `\\ExpanDrive\hubiC`
	}
	return path
}
