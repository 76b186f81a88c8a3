package codec

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/wippyai/mbe/errors"
)

var headerPattern = regexp.MustCompile(`^\s*(\w+)\s\((\d+)\)\s*$`)

// Schema is the ordered list of column types of a table.
type Schema []ColumnType

// ParseHeader derives a schema from header cells of the form "Int (1)".
// Trailing blank cells are ignored; a blank cell before the last column
// or an unknown type name is a schema error.
func ParseHeader(cells []string) (Schema, error) {
	end := len(cells)
	for end > 0 && strings.TrimSpace(cells[end-1]) == "" {
		end--
	}

	schema := make(Schema, 0, end)
	for i, cell := range cells[:end] {
		path := []string{"col[" + strconv.Itoa(i) + "]"}
		m := headerPattern.FindStringSubmatch(cell)
		if m == nil {
			return nil, errors.Schema(path, cell, "malformed column header")
		}
		ct, ok := ColumnTypeFromName(m[1])
		if !ok {
			return nil, errors.Schema(path, cell, "unknown column type "+strconv.Quote(m[1]))
		}
		schema = append(schema, ct)
	}
	return schema, nil
}

// Header renders the schema as header cells, numbering columns from 1.
func (s Schema) Header() []string {
	cells := make([]string, len(s))
	for i, ct := range s {
		cells[i] = ct.String() + " (" + strconv.Itoa(i+1) + ")"
	}
	return cells
}

// Codes returns the EXPA header codes of the schema.
func (s Schema) Codes() []uint32 {
	codes := make([]uint32, len(s))
	for i, ct := range s {
		codes[i] = ct.Code()
	}
	return codes
}

// Equal reports whether both schemas list the same column types in order.
func (s Schema) Equal(other Schema) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

func (s Schema) String() string {
	return "[" + strings.Join(s.Header(), ", ") + "]"
}
