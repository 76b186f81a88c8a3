// Package sheet maps MBE tables onto xlsx workbooks.
//
// The active worksheet carries one table: its name is the table name, row 1
// holds "Type (n)" column headers and every following row is a data row.
// String cells with color markup are written as rich text so the tagged part
// shows in its color.
package sheet

import (
	"io"
	"strings"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/wippyai/mbe/codec"
	"github.com/wippyai/mbe/errors"
	"github.com/wippyai/mbe/markup"
)

// DefaultSheetName is the worksheet excelize creates in a new workbook.
const DefaultSheetName = "Sheet1"

// SheetName turns a table name into a valid worksheet name: characters
// excel forbids become '_', surrounding quotes are dropped and the result is
// cut to excelize.MaxSheetNameLength runes. The full table name is kept in
// the workbook title.
func SheetName(table string) string {
	name := strings.Map(func(r rune) rune {
		if strings.ContainsRune(`:\/?*[]`, r) {
			return '_'
		}
		return r
	}, table)
	name = strings.Trim(name, "'")
	if utf8.RuneCountInString(name) > excelize.MaxSheetNameLength {
		name = string([]rune(name)[:excelize.MaxSheetNameLength])
		name = strings.TrimRight(name, "'")
	}
	if name == "" {
		return DefaultSheetName
	}
	return name
}

// tableName prefers the workbook title when it still maps to sheet, so a
// renamed worksheet wins over a stale title.
func tableName(f *excelize.File, sheet string) string {
	props, err := f.GetDocProps()
	if err != nil || props.Title == "" || SheetName(props.Title) != sheet {
		return sheet
	}
	return props.Title
}

// Workbook is the active worksheet of an xlsx file in codec terms.
type Workbook struct {
	// Name is the worksheet name, used as the table name.
	Name   string
	Schema codec.Schema
	// Rows hold raw cell text; blank cells are nil.
	Rows [][]any
}

// Table converts the workbook into a codec.Table. Values are coerced the
// same way the encoder does.
func (wb *Workbook) Table() (*codec.Table, error) {
	return codec.NewTable(wb.Name, wb.Schema, wb.Rows)
}

// Read loads the active worksheet from an xlsx stream. Row 1 is the
// column header; every following row is a data row.
func Read(r io.Reader) (*Workbook, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSheet, errors.KindIO, err, "open workbook")
	}
	defer f.Close()
	return readFile(f)
}

// ReadFile is Read for a path on disk.
func ReadFile(path string) (*Workbook, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSheet, errors.KindIO, err, "open "+path)
	}
	defer f.Close()
	return readFile(f)
}

func readFile(f *excelize.File) (*Workbook, error) {
	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if sheet == "" {
		return nil, errors.New(errors.PhaseSheet, errors.KindInvalidData).
			Detail("workbook has no active worksheet").
			Build()
	}
	name := tableName(f, sheet)

	cells, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, errors.Wrap(errors.PhaseSheet, errors.KindInvalidData, err, "read worksheet "+sheet)
	}
	if len(cells) == 0 {
		return nil, errors.New(errors.PhaseSheet, errors.KindSchema).
			Detail("worksheet %q has no header row", sheet).
			Build()
	}

	schema, err := codec.ParseHeader(cells[0])
	if err != nil {
		return nil, err
	}

	rows := make([][]any, 0, len(cells)-1)
	for _, line := range cells[1:] {
		row := make([]any, len(schema))
		for c := range row {
			if c < len(line) && line[c] != "" {
				row[c] = line[c]
			}
		}
		rows = append(rows, row)
	}

	Logger().Debug("read worksheet",
		zap.String("sheet", sheet),
		zap.String("table", name),
		zap.Stringer("schema", schema),
		zap.Int("rows", len(rows)))

	return &Workbook{Name: name, Schema: schema, Rows: rows}, nil
}

// Write renders t as a single-sheet workbook named after the table.
func Write(w io.Writer, t *codec.Table) error {
	f, err := build(t)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return errors.Wrap(errors.PhaseSheet, errors.KindIO, err, "write workbook")
	}
	return nil
}

// WriteFile is Write to a path on disk.
func WriteFile(path string, t *codec.Table) error {
	f, err := build(t)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return errors.Wrap(errors.PhaseSheet, errors.KindIO, err, "save "+path)
	}
	return nil
}

func build(t *codec.Table) (*excelize.File, error) {
	f := excelize.NewFile()

	name := SheetName(t.Name)
	if name != DefaultSheetName {
		if err := f.SetSheetName(DefaultSheetName, name); err != nil {
			f.Close()
			return nil, errors.Wrap(errors.PhaseSheet, errors.KindInvalidData, err, "sheet name "+name)
		}
	}
	if t.Name != "" {
		if err := f.SetDocProps(&excelize.DocProperties{Title: t.Name}); err != nil {
			f.Close()
			return nil, errors.Wrap(errors.PhaseSheet, errors.KindInvalidData, err, "document title")
		}
	}

	for c, h := range t.Schema.Header() {
		if err := setCell(f, name, c, 0, h); err != nil {
			f.Close()
			return nil, err
		}
	}

	rich := 0
	for r, row := range t.Rows {
		for c, cell := range row {
			var err error
			if cell.Type.IsString() && markup.Colored(cell.Spans) {
				err = setRichCell(f, name, c, r+1, cell.Spans)
				rich++
			} else {
				err = setCell(f, name, c, r+1, cell.Value())
			}
			if err != nil {
				f.Close()
				return nil, err
			}
		}
	}

	Logger().Debug("built worksheet",
		zap.String("sheet", name),
		zap.Int("rows", len(t.Rows)),
		zap.Int("rich_cells", rich))

	return f, nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return errors.Wrap(errors.PhaseSheet, errors.KindOverflow, err, "cell coordinates")
	}
	if s, ok := v.(string); ok && s == "" {
		return nil
	}
	if err := f.SetCellValue(sheet, ref, v); err != nil {
		return errors.Wrap(errors.PhaseSheet, errors.KindInvalidData, err, "set "+ref)
	}
	return nil
}

func setRichCell(f *excelize.File, sheet string, col, row int, spans []markup.Span) error {
	ref, err := excelize.CoordinatesToCellName(col+1, row+1)
	if err != nil {
		return errors.Wrap(errors.PhaseSheet, errors.KindOverflow, err, "cell coordinates")
	}
	runs := make([]excelize.RichTextRun, 0, len(spans))
	for _, s := range spans {
		run := excelize.RichTextRun{Text: s.Text}
		if s.HasColor() {
			run.Font = &excelize.Font{Color: s.Color}
		}
		runs = append(runs, run)
	}
	if err := f.SetCellRichText(sheet, ref, runs); err != nil {
		return errors.Wrap(errors.PhaseSheet, errors.KindInvalidData, err, "set rich text "+ref)
	}
	return nil
}
