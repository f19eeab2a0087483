package ioctl

// VOLUME_DISK_EXTENTS layout:
//
//	0  NumberOfDiskExtents uint32
//	4  padding
//	8  Extents[n], 24 bytes each:
//	     0  DiskNumber     uint32
//	     4  padding
//	     8  StartingOffset int64
//	     16 ExtentLength   int64
const (
	extentsHeaderSize = 8
	diskExtentSize    = 24
)

// DiskExtent is one contiguous byte range on a physical disk.
type DiskExtent struct {
	DiskNumber     uint32
	StartingOffset int64
	ExtentLength   int64
}

// VolumeDiskExtents is the decoded IOCTL_VOLUME_GET_VOLUME_DISK_EXTENTS reply.
// Count is what the driver reported; Extents holds only the entries that fit
// in the buffer, so len(Extents) may be smaller than Count.
type VolumeDiskExtents struct {
	Count   uint32
	Extents []DiskExtent
}

// VolumeDiskExtentsSize returns the buffer size needed for n extents.
func VolumeDiskExtentsSize(n int) int {
	if n < 1 {
		n = 1
	}
	return extentsHeaderSize + n*diskExtentSize
}

// ParseVolumeDiskExtents decodes a VOLUME_DISK_EXTENTS buffer. The driver
// fills the buffer even when it reports ERROR_MORE_DATA, so buf is decoded
// as far as it goes.
func ParseVolumeDiskExtents(buf []byte) (VolumeDiskExtents, error) {
	if len(buf) < 4 {
		return VolumeDiskExtents{}, shortBuffer("VOLUME_DISK_EXTENTS", len(buf), 4)
	}

	v := VolumeDiskExtents{Count: le.Uint32(buf[0:4])}

	avail := 0
	if len(buf) > extentsHeaderSize {
		avail = (len(buf) - extentsHeaderSize) / diskExtentSize
	}
	n := min(int(v.Count), avail)

	v.Extents = make([]DiskExtent, 0, n)
	for i := range n {
		off := extentsHeaderSize + i*diskExtentSize
		rec := buf[off : off+diskExtentSize]
		v.Extents = append(v.Extents, DiskExtent{
			DiskNumber:     le.Uint32(rec[0:4]),
			StartingOffset: int64(le.Uint64(rec[8:16])),
			ExtentLength:   int64(le.Uint64(rec[16:24])),
		})
	}

	return v, nil
}
