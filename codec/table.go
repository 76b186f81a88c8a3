package codec

import (
	"github.com/wippyai/mbe/markup"
)

// Cell is one decoded value. Int and IntID cells use Int; String and
// StringID cells use Text, with Spans holding its color markup when the
// decoder applied it.
type Cell struct {
	Text  string
	Spans []markup.Span
	Int   int32
	Type  ColumnType
}

// IntCell builds an Int or IntID cell.
func IntCell(ct ColumnType, v int32) Cell {
	return Cell{Type: ct, Int: v}
}

// StringCell builds a String or StringID cell with its markup spans.
func StringCell(ct ColumnType, s string) Cell {
	return Cell{Type: ct, Text: s, Spans: markup.Parse(s)}
}

// Value returns the cell as int32 or string.
func (c Cell) Value() any {
	if c.Type.IsString() {
		return c.Text
	}
	return c.Int
}

type Row []Cell

// Table is a decoded MBE table.
type Table struct {
	Name   string
	Schema Schema
	Rows   []Row
}

// NewTable coerces raw rows the way Encode does and returns them as a Table.
// Rows shorter than the schema are padded with nil cells.
func NewTable(name string, schema Schema, rows [][]any) (*Table, error) {
	if _, err := ComputeRowLayout(schema); err != nil {
		return nil, err
	}
	out := make([]Row, len(rows))
	for r, row := range rows {
		cells := make(Row, len(schema))
		for c, ct := range schema {
			var v any
			if c < len(row) {
				v = row[c]
			}
			if ct.IsInt() {
				n, err := coerceInt(v, ct, r, c)
				if err != nil {
					return nil, err
				}
				cells[c] = IntCell(ct, n)
				continue
			}
			cells[c] = StringCell(ct, coerceString(v))
		}
		out[r] = cells
	}
	return &Table{Name: name, Schema: schema, Rows: out}, nil
}

// Values converts the rows to the plain scalars Encode accepts.
func (t *Table) Values() [][]any {
	out := make([][]any, len(t.Rows))
	for i, row := range t.Rows {
		vals := make([]any, len(row))
		for j, c := range row {
			vals[j] = c.Value()
		}
		out[i] = vals
	}
	return out
}
