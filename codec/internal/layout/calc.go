package layout

import (
	"strconv"
	"sync"

	"github.com/wippyai/mbe/codec/internal/types"
	"github.com/wippyai/mbe/codec/internal/wire"
	"github.com/wippyai/mbe/errors"
)

// RowAlign is the boundary every row size is rounded up to.
const RowAlign = 8

// Info is the row layout of a schema.
type Info struct {
	// Offsets holds the aligned offset of each column within a row.
	Offsets []uint32
	// Padding holds the number of padding bytes inserted before each column.
	Padding []uint32
	// End is the unaligned end of the last column.
	End uint32
	// RowSize is End rounded up to RowAlign.
	RowSize uint32
}

// Trailing is the padding after the last column.
func (i Info) Trailing() uint32 {
	return i.RowSize - i.End
}

type Calculator struct {
	cache map[string]Info
	mu    sync.Mutex
}

func NewCalculator() *Calculator {
	return &Calculator{
		cache: make(map[string]Info),
	}
}

// Calculate walks the schema in column order, aligning each column to its
// own size, and rounds the total to RowAlign. Results are cached per schema.
func (c *Calculator) Calculate(schema []types.Kind) (Info, error) {
	key := cacheKey(schema)

	c.mu.Lock()
	cached, ok := c.cache[key]
	c.mu.Unlock()
	if ok {
		return cached, nil
	}

	info, err := calculate(schema)
	if err != nil {
		return Info{}, err
	}

	c.mu.Lock()
	c.cache[key] = info
	c.mu.Unlock()
	return info, nil
}

func calculate(schema []types.Kind) (Info, error) {
	info := Info{
		Offsets: make([]uint32, len(schema)),
		Padding: make([]uint32, len(schema)),
	}

	offset := uint32(0)
	for i, k := range schema {
		if !k.Valid() {
			return Info{}, errors.New(errors.PhaseLayout, errors.KindSchema).
				Path("col[" + strconv.Itoa(i) + "]").
				ColumnType(k.String()).
				Detail("column type has no layout").
				Build()
		}

		pad := wire.PadBytes(offset, k.Align())
		info.Padding[i] = pad
		offset += pad
		info.Offsets[i] = offset

		next, ok := wire.SafeAddU32(offset, k.Size())
		if !ok {
			return Info{}, errors.New(errors.PhaseLayout, errors.KindOverflow).
				Detail("row size overflows u32 at column %d", i).
				Build()
		}
		offset = next
	}

	info.End = offset
	info.RowSize = wire.AlignTo(offset, RowAlign)
	if info.RowSize < offset {
		return Info{}, errors.New(errors.PhaseLayout, errors.KindOverflow).
			Detail("row size overflows u32").
			Build()
	}
	return info, nil
}

func cacheKey(schema []types.Kind) string {
	b := make([]byte, len(schema))
	for i, k := range schema {
		b[i] = byte(k)
	}
	return string(b)
}

// Walk calls fn for each column with its offset and the padding before it.
func (i Info) Walk(fn func(col int, offset, padding uint32)) {
	for c := range i.Offsets {
		fn(c, i.Offsets[c], i.Padding[c])
	}
}
