package codec

import (
	"encoding/binary"
	"math"

	"github.com/wippyai/mbe/errors"
)

// Bytes is an in-memory MBE image implementing mbe.Buffer.
// Reads past the end fail with a truncated error.
type Bytes []byte

func (b Bytes) Len() uint32 {
	if uint64(len(b)) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(len(b))
}

// Read returns a subslice; it does not copy.
func (b Bytes) Read(offset uint32, length uint32) ([]byte, error) {
	end := uint64(offset) + uint64(length)
	if end > uint64(len(b)) {
		have := uint64(0)
		if uint64(offset) < uint64(len(b)) {
			have = uint64(len(b)) - uint64(offset)
		}
		return nil, errors.Truncated(errors.PhaseDecode, int64(offset), uint64(length), have)
	}
	return b[offset:end:end], nil
}

func (b Bytes) ReadU32(offset uint32) (uint32, error) {
	data, err := b.Read(offset, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data), nil
}

func (b Bytes) Bytes() []byte {
	return b
}
