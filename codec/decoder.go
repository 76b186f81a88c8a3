package codec

import (
	"encoding/binary"
	"strconv"

	"go.uber.org/zap"

	mbe "github.com/wippyai/mbe"
	"github.com/wippyai/mbe/codec/internal/wire"
	"github.com/wippyai/mbe/errors"
	"github.com/wippyai/mbe/markup"
)

// DecoderOptions configures decoding.
type DecoderOptions struct {
	// ApplyMarkup fills Cell.Spans for string cells.
	ApplyMarkup bool
	// MaxStringSize rejects longer CHNK entries. 0 means MaxStringSize.
	MaxStringSize uint32
}

// DefaultDecoderOptions returns default decoder configuration.
func DefaultDecoderOptions() DecoderOptions {
	return DecoderOptions{ApplyMarkup: true, MaxStringSize: MaxStringSize}
}

// Decoder reads MBE images. It keeps no state between calls and is safe
// for concurrent use.
type Decoder struct {
	layouts *LayoutCalculator
	opts    DecoderOptions
}

func NewDecoder() *Decoder {
	return NewDecoderWithOptions(DefaultDecoderOptions())
}

func NewDecoderWithOptions(opts DecoderOptions) *Decoder {
	if opts.MaxStringSize == 0 {
		opts.MaxStringSize = MaxStringSize
	}
	return &Decoder{
		layouts: defaultLayouts,
		opts:    opts,
	}
}

// Decode is shorthand for NewDecoder().Decode.
func Decode(data []byte) (*Table, error) {
	return NewDecoder().Decode(data)
}

func (d *Decoder) Decode(data []byte) (*Table, error) {
	return d.DecodeBuffer(Bytes(data))
}

// header is the parsed EXPA header.
type header struct {
	name     string
	schema   Schema
	rowSize  uint32
	rowCount uint32
	// end is the position right after the row count.
	end uint32
}

// DecodeBuffer parses the EXPA header, locates the row block, loads the CHNK
// string table that follows it and resolves every cell.
func (d *Decoder) DecodeBuffer(buf mbe.Buffer) (*Table, error) {
	hdr, err := readHeader(buf)
	if err != nil {
		return nil, err
	}

	if hdr.rowCount > 0 && hdr.rowSize < RowAlign {
		return nil, errors.New(errors.PhaseDecode, errors.KindFormat).
			Offset(int64(hdr.end)-8).
			Detail("row size %d below minimum %d for %d rows", hdr.rowSize, RowAlign, hdr.rowCount).
			Value(hdr.rowSize).
			Build()
	}

	lay, err := d.layouts.Calculate(hdr.schema)
	if err != nil {
		return nil, err
	}
	if lay.End > hdr.rowSize && hdr.rowCount > 0 {
		return nil, errors.Format(errors.PhaseDecode, int64(hdr.end)-8,
			"row layout needs %d bytes, header declares row size %d", lay.End, hdr.rowSize)
	}

	dataStart := hdr.end
	if skip := LeadingAlignmentSkip(buf, hdr.end, hdr.schema, hdr.rowCount); skip > 0 {
		dataStart += skip
		Logger().Debug("skipped leading zero word before row data",
			zap.String("table", hdr.name),
			zap.Uint32("offset", hdr.end))
	}

	blockLen, ok := wire.SafeMulU32(hdr.rowCount, hdr.rowSize)
	if !ok {
		return nil, errors.Truncated(errors.PhaseDecode, int64(dataStart),
			uint64(hdr.rowCount)*uint64(hdr.rowSize), uint64(buf.Len()-min(dataStart, buf.Len())))
	}
	block, err := buf.Read(dataStart, blockLen)
	if err != nil {
		return nil, err
	}

	strs, err := readStringTable(buf, dataStart+blockLen, d.opts.MaxStringSize)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, hdr.rowCount)
	for r := range rows {
		rowOff := uint32(r) * hdr.rowSize
		row := make(Row, len(hdr.schema))
		for c, ct := range hdr.schema {
			pos := rowOff + lay.Offsets[c]
			if ct.IsInt() {
				row[c] = Cell{Type: ct, Int: int32(binary.LittleEndian.Uint32(block[pos:]))}
				continue
			}
			text := strs[dataStart+pos]
			cell := Cell{Type: ct, Text: text}
			if d.opts.ApplyMarkup {
				cell.Spans = markup.Parse(text)
			}
			row[c] = cell
		}
		rows[r] = row
	}

	Logger().Debug("decoded table",
		zap.String("table", hdr.name),
		zap.Int("rows", len(rows)),
		zap.Uint32("row_size", hdr.rowSize),
		zap.Int("strings", len(strs)))

	return &Table{Name: hdr.name, Schema: hdr.schema, Rows: rows}, nil
}

// DecodeHeader reads only the EXPA header: table name, schema and row geometry.
func DecodeHeader(data []byte) (name string, schema Schema, rowSize, rowCount uint32, err error) {
	hdr, err := readHeader(Bytes(data))
	if err != nil {
		return "", nil, 0, 0, err
	}
	return hdr.name, hdr.schema, hdr.rowSize, hdr.rowCount, nil
}

func readHeader(buf mbe.Buffer) (header, error) {
	var hdr header
	r := cursor{buf: buf}

	magic, err := r.bytes(4)
	if err != nil {
		return hdr, err
	}
	if string(magic) != HeaderMagic {
		return hdr, errors.BadMagic(errors.PhaseDecode, 0, HeaderMagic, magic)
	}

	// table count is always 1 and not checked
	if _, err := r.u32(); err != nil {
		return hdr, err
	}

	nameLen, err := r.u32()
	if err != nil {
		return hdr, err
	}
	name, err := r.bytes(nameLen)
	if err != nil {
		return hdr, err
	}
	hdr.name = wire.TrimPadded(name)

	ncols, err := r.u32()
	if err != nil {
		return hdr, err
	}
	codesLen, ok := wire.SafeMulU32(ncols, 4)
	if !ok || uint64(r.off)+uint64(codesLen) > uint64(buf.Len()) {
		return hdr, errors.Truncated(errors.PhaseDecode, int64(r.off),
			uint64(ncols)*4, uint64(buf.Len()-min(r.off, buf.Len())))
	}

	hdr.schema = make(Schema, ncols)
	for i := range hdr.schema {
		at := r.off
		code, err := r.u32()
		if err != nil {
			return hdr, err
		}
		ct, ok := ColumnTypeFromCode(code)
		if !ok {
			return hdr, errors.New(errors.PhaseDecode, errors.KindFormat).
				Path("col["+strconv.Itoa(i)+"]").
				Offset(int64(at)).
				ColumnType(Invalid.String()).
				Detail("unknown column type code 0x%x", code).
				Value(code).
				Build()
		}
		hdr.schema[i] = ct
	}

	if hdr.rowSize, err = r.u32(); err != nil {
		return hdr, err
	}
	if hdr.rowCount, err = r.u32(); err != nil {
		return hdr, err
	}
	hdr.end = r.off
	return hdr, nil
}

// readStringTable parses the CHNK section at off into an offset-to-text map.
// Later entries for the same offset replace earlier ones.
func readStringTable(buf mbe.Buffer, off, maxSize uint32) (map[uint32]string, error) {
	r := cursor{buf: buf, off: off}

	magic, err := buf.Read(off, 4)
	if err != nil {
		rest, _ := buf.Read(off, buf.Len()-min(off, buf.Len()))
		return nil, errors.New(errors.PhaseDecode, errors.KindFormat).
			Offset(int64(off)).
			Expected(ChunkMagic, string(rest)).
			Detail("missing string table section").
			Build()
	}
	if string(magic) != ChunkMagic {
		return nil, errors.BadMagic(errors.PhaseDecode, int64(off), ChunkMagic, magic)
	}
	r.off += 4

	count, err := r.u32()
	if err != nil {
		return nil, err
	}
	// each entry takes at least 8 bytes
	if uint64(count)*8 > uint64(buf.Len()-min(r.off, buf.Len())) {
		return nil, errors.Truncated(errors.PhaseDecode, int64(r.off),
			uint64(count)*8, uint64(buf.Len()-min(r.off, buf.Len())))
	}

	strs := make(map[uint32]string, count)
	for i := uint32(0); i < count; i++ {
		target, err := r.u32()
		if err != nil {
			return nil, err
		}
		size, err := r.u32()
		if err != nil {
			return nil, err
		}
		if size > maxSize {
			return nil, errors.New(errors.PhaseDecode, errors.KindOverflow).
				Offset(int64(r.off)-4).
				Detail("string entry of %d bytes exceeds limit %d", size, maxSize).
				Value(size).
				Build()
		}
		data, err := r.bytes(size)
		if err != nil {
			return nil, err
		}
		strs[target] = wire.TrimPadded(data)
	}
	return strs, nil
}

// cursor reads sequential little-endian fields from a Buffer.
type cursor struct {
	buf mbe.Buffer
	off uint32
}

func (c *cursor) bytes(n uint32) ([]byte, error) {
	data, err := c.buf.Read(c.off, n)
	if err != nil {
		return nil, err
	}
	c.off += n
	return data, nil
}

func (c *cursor) u32() (uint32, error) {
	v, err := c.buf.ReadU32(c.off)
	if err != nil {
		return 0, err
	}
	c.off += 4
	return v, nil
}
