package codec

import (
	"encoding/binary"
	"sync"

	"github.com/wippyai/mbe/codec/internal/wire"
)

// ChunkMagic opens the string table section.
const ChunkMagic = "CHNK"

// StringEntry is a string addressed by the absolute offset of its row slot.
type StringEntry struct {
	Text   string
	Offset uint32
}

// StringTable collects CHNK entries in the order rows and columns are encoded.
type StringTable struct {
	entries []StringEntry
}

var stringTablePool = sync.Pool{
	New: func() any {
		return &StringTable{entries: make([]StringEntry, 0, 32)}
	},
}

func NewStringTable() *StringTable {
	return stringTablePool.Get().(*StringTable)
}

const maxPooledStringTableCapacity = 4096

// Release returns to pool. The table is invalid after Release.
func (st *StringTable) Release() {
	// Only pool small tables to prevent memory bloat
	if cap(st.entries) > maxPooledStringTableCapacity {
		return
	}
	st.Reset()
	stringTablePool.Put(st)
}

// Add records text for the slot at offset. Empty strings are never stored.
func (st *StringTable) Add(offset uint32, text string) {
	if text == "" {
		return
	}
	st.entries = append(st.entries, StringEntry{Offset: offset, Text: text})
}

func (st *StringTable) Entries() []StringEntry {
	return st.entries
}

func (st *StringTable) Count() int {
	return len(st.entries)
}

// Size is the encoded byte length of the CHNK section.
func (st *StringTable) Size() int {
	n := len(ChunkMagic) + 4
	for _, e := range st.entries {
		n += 8 + int(wire.PaddedLen(e.Text))
	}
	return n
}

// AppendTo appends the CHNK section to dst.
func (st *StringTable) AppendTo(dst []byte) []byte {
	dst = append(dst, ChunkMagic...)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(st.entries)))
	for _, e := range st.entries {
		dst = binary.LittleEndian.AppendUint32(dst, e.Offset)
		dst = binary.LittleEndian.AppendUint32(dst, wire.PaddedLen(e.Text))
		dst = wire.AppendPadded(dst, e.Text)
	}
	return dst
}

func (st *StringTable) Reset() {
	clear(st.entries)
	st.entries = st.entries[:0]
}
