// Package layout computes MBE row layouts from a column schema.
//
// # Layout Rules
//
// Columns are placed in order with natural alignment:
//   - Int, IntID: size 4, alignment 4, stored inline
//   - String, StringID: size 8, alignment 8, a zero slot resolved through CHNK
//
// Padding before a column is (align - offset%align) % align. The row size is
// the end of the last column rounded up to 8, and is the same for every row.
//
// # Padding Fill
//
// Padding bytes are 0x00 except for one artifact of the tool that produced
// the original game files: when the schema is Int followed only by String or
// StringID columns, the gap before the second column is filled with 0xCC.
//
// This package is internal to the codec.
package layout
