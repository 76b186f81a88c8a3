// Package codec encodes and decodes MBE game data tables.
//
// An MBE file holds one table: an EXPA header naming the table and its
// column types, a block of fixed-size rows, and a CHNK string table.
//
//	┌─────────────────────────────────────────────────────────────┐
//	│ Schema + rows ←→ [Encoder / Decoder] ←→ EXPA | rows | CHNK   │
//	└─────────────────────────────────────────────────────────────┘
//
// # Column Types
//
//	Type      Code   Size  Alignment
//	─────────────────────────────────
//	Int       0x2    4     4
//	IntID     0x9    4     4
//	String    0x7    8     8  (zero slot, text in CHNK)
//	StringID  0x8    8     8  (zero slot, text in CHNK)
//
// Int/IntID and String/StringID are laid out identically; the distinction is
// carried through encode and decode unchanged.
//
// # Row Layout
//
// ComputeRowLayout walks the columns in order, aligning each to its size, and
// rounds the row to 8 bytes. Every row of a table has the same layout.
//
// # String Table
//
// A String cell writes eight zero bytes into its row. Its text is stored in
// CHNK as (absolute file offset of the slot, padded length, bytes) in the
// order cells are encoded. Empty strings get no entry and decode as "".
//
// # Compatibility Quirks
//
// Two behaviors of the tool that produced the game files are reproduced:
//
//   - PaddingFill: for schemas [Int, String|StringID, ...] the gap before the
//     second column is filled with 0xCC instead of 0x00.
//   - LeadingAlignmentSkip: when decoding a table whose first column is Int, a
//     zero word right after the header is taken as alignment and skipped.
//
// The skip only applies to Int-first tables with at least one row. A
// consequence is that images whose header needs 4 bytes of padding only
// decode when they have rows and the first column is Int, and Int-first
// images with an already aligned header only decode when the first row's
// first value is non-zero. The other images fail with a format error.
//
// # Error Handling
//
// Errors use the structured types from the errors package:
//
//	[header] schema at col[2]: expected "<Type> (<n>)", found "Float (3)" - unknown column type "Float"
//	[decode] format at offset 0x38: expected "CHNK", found "XXXX"
//	[decode] truncated at offset 0x28: need 16 bytes, 4 available
//	[encode] value_type at row[4].col[0]: Go type string, column type Int
//
// Match kinds with errors.Is and the sentinels ErrSchema, ErrFormat,
// ErrTruncated and ErrValueType.
package codec
