package ioctl

// STORAGE_PROPERTY_ID and STORAGE_QUERY_TYPE values used here.
const (
	StorageDeviceSeekPenaltyProperty = 7
	PropertyStandardQuery            = 0
)

// STORAGE_PROPERTY_QUERY is PropertyId u32, QueryType u32,
// AdditionalParameters [1]byte, padded to 12 bytes.
const StoragePropertyQuerySize = 12

// EncodeStoragePropertyQuery packs a STORAGE_PROPERTY_QUERY.
func EncodeStoragePropertyQuery(propertyID, queryType uint32) []byte {
	buf := make([]byte, StoragePropertyQuerySize)
	le.PutUint32(buf[0:4], propertyID)
	le.PutUint32(buf[4:8], queryType)
	return buf
}

// DEVICE_SEEK_PENALTY_DESCRIPTOR is Version u32, Size u32,
// IncursSeekPenalty BOOLEAN, padded to 12 bytes.
const (
	SeekPenaltyDescriptorSize = 12
	seekPenaltyMinSize        = 9
)

// SeekPenaltyDescriptor is the decoded DEVICE_SEEK_PENALTY_DESCRIPTOR.
type SeekPenaltyDescriptor struct {
	Version           uint32
	Size              uint32
	IncursSeekPenalty bool
}

// ParseSeekPenaltyDescriptor decodes the first n bytes the driver returned.
func ParseSeekPenaltyDescriptor(buf []byte) (SeekPenaltyDescriptor, error) {
	if len(buf) < seekPenaltyMinSize {
		return SeekPenaltyDescriptor{}, shortBuffer("DEVICE_SEEK_PENALTY_DESCRIPTOR", len(buf), seekPenaltyMinSize)
	}

	return SeekPenaltyDescriptor{
		Version:           le.Uint32(buf[0:4]),
		Size:              le.Uint32(buf[4:8]),
		IncursSeekPenalty: buf[8] != 0,
	}, nil
}
