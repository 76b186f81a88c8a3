package codec

import (
	"encoding/binary"
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/wippyai/mbe/codec/internal/wire"
	"github.com/wippyai/mbe/errors"
	"github.com/wippyai/mbe/markup"
)

// HeaderMagic opens the EXPA section.
const HeaderMagic = "EXPA"

// TableCount is the constant table count written after the header magic.
const TableCount = 1

// HeaderAlign is the boundary the EXPA header is padded to.
const HeaderAlign = 8

// MaxStringSize bounds a single string cell (16 MB).
const MaxStringSize = 1 << 24

// EncoderOptions configures encoding limits.
type EncoderOptions struct {
	// MaxStringSize rejects longer string cells and table names. 0 means MaxStringSize.
	MaxStringSize uint32
}

// DefaultEncoderOptions returns default encoder configuration.
func DefaultEncoderOptions() EncoderOptions {
	return EncoderOptions{MaxStringSize: MaxStringSize}
}

// Encoder turns typed rows into an MBE image. It keeps no state between
// calls and is safe for concurrent use.
type Encoder struct {
	layouts *LayoutCalculator
	opts    EncoderOptions
}

func NewEncoder() *Encoder {
	return NewEncoderWithOptions(DefaultEncoderOptions())
}

func NewEncoderWithOptions(opts EncoderOptions) *Encoder {
	if opts.MaxStringSize == 0 {
		opts.MaxStringSize = MaxStringSize
	}
	return &Encoder{
		layouts: defaultLayouts,
		opts:    opts,
	}
}

// Encode is shorthand for NewEncoder().Encode.
func Encode(name string, schema Schema, rows [][]any) ([]byte, error) {
	return NewEncoder().Encode(name, schema, rows)
}

// EncodeTable encodes a decoded table back to MBE.
func (e *Encoder) EncodeTable(t *Table) ([]byte, error) {
	return e.Encode(t.Name, t.Schema, t.Values())
}

// Encode builds the EXPA header, the row block and the CHNK string table.
// Int/IntID values may be any Go integer, a float or a numeric string,
// with fractions truncated toward zero; nil encodes as 0. String/StringID values are rendered as text,
// nil as the empty string. Missing trailing cells count as nil.
func (e *Encoder) Encode(name string, schema Schema, rows [][]any) ([]byte, error) {
	lay, err := e.layouts.Calculate(schema)
	if err != nil {
		return nil, err
	}
	if len(schema) == 0 && len(rows) > 0 {
		return nil, errors.New(errors.PhaseEncode, errors.KindSchema).
			Detail("table with rows needs at least one column").
			Build()
	}
	if uint64(len(rows)) > math.MaxUint32 {
		return nil, errors.Overflow(errors.PhaseEncode, nil, len(rows), "u32 row count")
	}
	if uint64(len(name)) > uint64(e.opts.MaxStringSize) {
		return nil, errors.Overflow(errors.PhaseEncode, []string{"name"}, len(name), "maximum string size")
	}

	buf := make([]byte, 0, headerSize(name, schema)+HeaderAlign+len(rows)*int(lay.RowSize))
	buf = appendHeader(buf, name, schema, lay.RowSize, uint32(len(rows)))

	for len(buf)%HeaderAlign != 0 {
		buf = append(buf, 0)
	}
	dataStart := uint64(len(buf))

	if dataStart+uint64(len(rows))*uint64(lay.RowSize) > math.MaxUint32 {
		return nil, errors.New(errors.PhaseEncode, errors.KindOverflow).
			Detail("row block of %d x %d bytes exceeds u32 file offsets", len(rows), lay.RowSize).
			Build()
	}

	cc := UsesCCPadding(schema)
	if cc {
		Logger().Debug("filling padding before second column with 0xCC",
			zap.String("table", name),
			zap.Stringer("schema", schema))
	}

	strs := NewStringTable()
	defer strs.Release()

	for r, row := range rows {
		rowStart := uint32(dataStart) + uint32(r)*lay.RowSize
		buf, err = e.appendRow(buf, schema, lay, row, r, rowStart, strs)
		if err != nil {
			return nil, err
		}
	}

	buf = strs.AppendTo(buf)

	Logger().Debug("encoded table",
		zap.String("table", name),
		zap.Int("rows", len(rows)),
		zap.Uint32("row_size", lay.RowSize),
		zap.Int("strings", strs.Count()),
		zap.Int("bytes", len(buf)))

	return buf, nil
}

func headerSize(name string, schema Schema) int {
	// magic, table count, name length, name, column count, codes, row size, row count
	return 4 + 4 + 4 + int(wire.PaddedLen(name)) + 4 + 4*len(schema) + 4 + 4
}

func appendHeader(dst []byte, name string, schema Schema, rowSize, rowCount uint32) []byte {
	dst = append(dst, HeaderMagic...)
	dst = binary.LittleEndian.AppendUint32(dst, TableCount)
	dst = binary.LittleEndian.AppendUint32(dst, wire.PaddedLen(name))
	dst = wire.AppendPadded(dst, name)
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(schema)))
	for _, ct := range schema {
		dst = binary.LittleEndian.AppendUint32(dst, ct.Code())
	}
	dst = binary.LittleEndian.AppendUint32(dst, rowSize)
	dst = binary.LittleEndian.AppendUint32(dst, rowCount)
	return dst
}

// appendRow writes one row following the layout walk. String slots stay zero
// and their text is queued in strs under the slot's absolute offset.
func (e *Encoder) appendRow(dst []byte, schema Schema, lay Layout, row []any, r int, rowStart uint32, strs *StringTable) ([]byte, error) {
	for c, ct := range schema {
		fill := PaddingFill(schema, c)
		for i := uint32(0); i < lay.Padding[c]; i++ {
			dst = append(dst, fill)
		}

		var v any
		if c < len(row) {
			v = row[c]
		}

		if ct.IsInt() {
			n, err := coerceInt(v, ct, r, c)
			if err != nil {
				return nil, err
			}
			dst = binary.LittleEndian.AppendUint32(dst, uint32(n))
			continue
		}

		s := coerceString(v)
		if uint64(len(s)) > uint64(e.opts.MaxStringSize) {
			return nil, errors.Overflow(errors.PhaseEncode, cellPath(r, c), len(s), "maximum string size")
		}
		strs.Add(rowStart+lay.Offsets[c], s)
		dst = append(dst, 0, 0, 0, 0, 0, 0, 0, 0)
	}

	for i := uint32(0); i < lay.Trailing(); i++ {
		dst = append(dst, 0)
	}
	return dst, nil
}

func coerceInt(v any, ct ColumnType, r, c int) (int32, error) {
	if v == nil {
		return 0, nil
	}
	if cell, ok := v.(Cell); ok {
		if cell.Type.IsInt() {
			return cell.Int, nil
		}
		v = cell.Text
	}
	n, ok := wire.CoerceToInt32(v)
	if !ok {
		return 0, errors.ValueType(errors.PhaseEncode, cellPath(r, c), wire.TypeName(v), ct.String(), v)
	}
	return n, nil
}

func coerceString(v any) string {
	switch s := v.(type) {
	case []markup.Span:
		return markup.Plain(s)
	case Cell:
		return wire.CoerceToString(s.Value())
	}
	return wire.CoerceToString(v)
}

func cellPath(r, c int) []string {
	return []string{"row[" + strconv.Itoa(r) + "]", "col[" + strconv.Itoa(c) + "]"}
}
