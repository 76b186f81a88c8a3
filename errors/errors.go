package errors

import (
	"fmt"
	"strconv"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseHeader Phase = "header" // spreadsheet header parsing
	PhaseLayout Phase = "layout" // row layout computation
	PhaseEncode Phase = "encode" // table to MBE
	PhaseDecode Phase = "decode" // MBE to table
	PhaseSheet  Phase = "sheet"  // xlsx read/write
	PhaseIO     Phase = "io"     // file access
)

// Kind categorizes the error
type Kind string

const (
	KindSchema      Kind = "schema"
	KindFormat      Kind = "format"
	KindTruncated   Kind = "truncated"
	KindValueType   Kind = "value_type"
	KindInvalidData Kind = "invalid_data"
	KindOverflow    Kind = "overflow"
	KindIO          Kind = "io"
)

// Sentinels for errors.Is. They match any phase.
var (
	ErrSchema    = &Error{Kind: KindSchema}
	ErrFormat    = &Error{Kind: KindFormat}
	ErrTruncated = &Error{Kind: KindTruncated}
	ErrValueType = &Error{Kind: KindValueType}
)

// NoOffset marks an error that is not tied to a byte position.
const NoOffset int64 = -1

// Error is the structured error type used throughout the module
type Error struct {
	Value      any
	Cause      error
	Phase      Phase
	Kind       Kind
	ColumnType string
	GoType     string
	Expected   string
	Found      string
	Detail     string
	Path       []string
	Offset     int64
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Offset >= 0 {
		b.WriteString(" at offset 0x")
		b.WriteString(strconv.FormatInt(e.Offset, 16))
	}

	wrote := false
	if e.GoType != "" || e.ColumnType != "" {
		b.WriteString(": ")
		wrote = true
		if e.GoType != "" && e.ColumnType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", column type ")
			b.WriteString(e.ColumnType)
		} else if e.GoType != "" {
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		} else {
			b.WriteString("column type ")
			b.WriteString(e.ColumnType)
		}
	}

	if e.Expected != "" || e.Found != "" {
		if wrote {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		wrote = true
		fmt.Fprintf(&b, "expected %q, found %q", e.Expected, e.Found)
	}

	if e.Detail != "" {
		if wrote {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error.
// A target with an empty Phase matches any phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase:  phase,
			Kind:   kind,
			Offset: NoOffset,
		},
	}
}

// Path sets the cell path, e.g. "row[3]", "col[1]"
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Offset sets the byte offset in the MBE buffer
func (b *Builder) Offset(off int64) *Builder {
	b.err.Offset = off
	return b
}

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// ColumnType sets the column type name
func (b *Builder) ColumnType(t string) *Builder {
	b.err.ColumnType = t
	return b
}

// Expected sets the expected/found pair
func (b *Builder) Expected(expected, found string) *Builder {
	b.err.Expected = expected
	b.err.Found = found
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// Schema creates an error for an unparseable or unrecognized column header
func Schema(path []string, cell string, detail string) *Error {
	return &Error{
		Phase:    PhaseHeader,
		Kind:     KindSchema,
		Path:     path,
		Offset:   NoOffset,
		Expected: "<Type> (<n>)",
		Found:    cell,
		Detail:   detail,
	}
}

// BadMagic creates a format error for an unexpected section magic
func BadMagic(phase Phase, offset int64, expected string, found []byte) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindFormat,
		Offset:   offset,
		Expected: expected,
		Found:    string(found),
	}
}

// Format creates a generic format error at a byte offset
func Format(phase Phase, offset int64, detail string, args ...any) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFormat,
		Offset: offset,
		Detail: fmt.Sprintf(detail, args...),
	}
}

// Truncated creates an error for a read that runs past the end of the buffer
func Truncated(phase Phase, offset int64, need, have uint64) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindTruncated,
		Offset: offset,
		Detail: fmt.Sprintf("need %d bytes, %d available", need, have),
		Value:  need,
	}
}

// ValueType creates an error for a cell value that cannot be coerced to its column type
func ValueType(phase Phase, path []string, goType, columnType string, value any) *Error {
	return &Error{
		Phase:      phase,
		Kind:       KindValueType,
		Path:       path,
		Offset:     NoOffset,
		GoType:     goType,
		ColumnType: columnType,
		Value:      value,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, limit string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Offset: NoOffset,
		Detail: fmt.Sprintf("value %v exceeds %s", value, limit),
		Value:  value,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Offset: NoOffset,
		Detail: detail,
		Cause:  cause,
	}
}
