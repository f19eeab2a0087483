package ioctl

import "time"

const (
	AtaFlagsDataIn = 0x02

	// AtaIdentifyDevice is the ATA IDENTIFY DEVICE command opcode.
	AtaIdentifyDevice = 0xEC

	IdentifyWords     = 256
	IdentifyDataBytes = IdentifyWords * 2

	// NominalMediaRotationRateWord is the IDENTIFY DEVICE word holding the
	// nominal media rotation rate. A value of 1 means non-rotating media.
	NominalMediaRotationRateWord = 217
	NonRotatingMedia             = 0x0001

	// taskFileCommand is the command register index within a task file.
	taskFileCommand = 6
)

// AtaTimeout is the driver-level timeout for a pass-through request.
const AtaTimeout = 3 * time.Second

// ataLayout describes ATA_PASS_THROUGH_EX for a given ULONG_PTR width.
//
//	0  Length             uint16
//	2  AtaFlags           uint16
//	4  PathId             uint8
//	5  TargetId           uint8
//	6  Lun                uint8
//	7  ReservedAsUchar    uint8
//	8  DataTransferLength uint32
//	12 TimeOutValue       uint32
//	16 ReservedAsUlong    uint32
//	   DataBufferOffset   ULONG_PTR (aligned to its width)
//	   PreviousTaskFile   [8]byte
//	   CurrentTaskFile    [8]byte
type ataLayout struct {
	dataBufferOffset int
	previousTaskFile int
	currentTaskFile  int
	size             int
	ptrSize          int
}

func layoutFor(ptrSize int) ataLayout {
	off := 20
	if ptrSize == 8 {
		off = 24
	}
	return ataLayout{
		dataBufferOffset: off,
		previousTaskFile: off + ptrSize,
		currentTaskFile:  off + ptrSize + 8,
		size:             off + ptrSize + 16,
		ptrSize:          ptrSize,
	}
}

// AtaPassThroughHeaderSize is the ATA_PASS_THROUGH_EX size for this process.
var AtaPassThroughHeaderSize = layoutFor(pointerSize).size

// AtaPassThrough is the subset of ATA_PASS_THROUGH_EX fields the caller sets.
type AtaPassThrough struct {
	PathID             uint8
	TargetID           uint8
	Lun                uint8
	AtaFlags           uint16
	DataTransferLength uint32
	Timeout            time.Duration
	PreviousTaskFile   [8]byte
	CurrentTaskFile    [8]byte
}

// NewIdentifyDeviceRequest returns the pass-through header for an IDENTIFY
// DEVICE data-in transfer of 256 words.
func NewIdentifyDeviceRequest() AtaPassThrough {
	var req AtaPassThrough
	req.AtaFlags = AtaFlagsDataIn
	req.DataTransferLength = IdentifyDataBytes
	req.Timeout = AtaTimeout
	req.CurrentTaskFile[taskFileCommand] = AtaIdentifyDevice
	return req
}

// Encode packs the header followed by a zeroed data buffer of
// DataTransferLength bytes. DataBufferOffset points just past the header.
func (r AtaPassThrough) Encode() []byte {
	return r.encode(layoutFor(pointerSize))
}

func (r AtaPassThrough) encode(l ataLayout) []byte {
	buf := make([]byte, l.size+int(r.DataTransferLength))

	le.PutUint16(buf[0:2], uint16(l.size))
	le.PutUint16(buf[2:4], r.AtaFlags)
	buf[4] = r.PathID
	buf[5] = r.TargetID
	buf[6] = r.Lun
	le.PutUint32(buf[8:12], r.DataTransferLength)
	le.PutUint32(buf[12:16], uint32(r.Timeout/time.Second))

	if l.ptrSize == 8 {
		le.PutUint64(buf[l.dataBufferOffset:], uint64(l.size))
	} else {
		le.PutUint32(buf[l.dataBufferOffset:], uint32(l.size))
	}
	copy(buf[l.previousTaskFile:l.previousTaskFile+8], r.PreviousTaskFile[:])
	copy(buf[l.currentTaskFile:l.currentTaskFile+8], r.CurrentTaskFile[:])

	return buf
}

// IdentifyData is the 256-word IDENTIFY DEVICE response.
type IdentifyData [IdentifyWords]uint16

// NominalMediaRotationRate returns word 217.
func (d *IdentifyData) NominalMediaRotationRate() uint16 {
	return d[NominalMediaRotationRateWord]
}

// NonRotating reports whether the device declared non-rotating media.
func (d *IdentifyData) NonRotating() bool {
	return d.NominalMediaRotationRate() == NonRotatingMedia
}

// ParseIdentifyResponse decodes the data area of a completed pass-through
// buffer. Words the driver did not return are left zero; the response must
// at least reach the rotation-rate word.
func ParseIdentifyResponse(buf []byte) (IdentifyData, error) {
	return parseIdentifyResponse(buf, layoutFor(pointerSize))
}

func parseIdentifyResponse(buf []byte, l ataLayout) (IdentifyData, error) {
	var d IdentifyData

	need := l.size + (NominalMediaRotationRateWord+1)*2
	if len(buf) < need {
		return d, shortBuffer("ATA_PASS_THROUGH_EX", len(buf), need)
	}

	data := buf[l.size:]
	for i := 0; i < IdentifyWords && 2*i+1 < len(data); i++ {
		d[i] = le.Uint16(data[2*i:])
	}

	return d, nil
}
