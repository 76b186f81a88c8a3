package mbe

// Buffer is a read-only view over an MBE file image.
// Offsets are absolute file positions.
type Buffer interface {
	Read(offset uint32, length uint32) ([]byte, error)
	ReadU32(offset uint32) (uint32, error)
	Len() uint32
}
