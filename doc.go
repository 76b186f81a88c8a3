// Package mbe converts game data tables between spreadsheets and the MBE
// binary format (an EXPA header with fixed-size rows followed by a CHNK
// string table).
//
// # Architecture Overview
//
// The module is organized into several packages with distinct responsibilities:
//
//	mbe/             Root package with the Buffer interface
//	├── codec/       Layout engine, encoder and decoder for EXPA+CHNK
//	├── markup/      {fc(RRGGBB)text} color tags to rich-text spans
//	├── sheet/       xlsx workbooks as the human-facing side of a table
//	├── mbefile/     memory-mapped input and atomic output files
//	├── errors/      Structured error types for debugging
//	└── cmd/mbe/     Command-line converter and table viewer
//
// # Quick Start
//
// Decode a table and write it out as a workbook:
//
//	f, err := mbefile.Open("item.mbe")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	tbl, err := codec.NewDecoder().DecodeBuffer(f)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	err = sheet.WriteFile("item.xlsx", tbl)
//
// Encode it back:
//
//	wb, err := sheet.ReadFile("item.xlsx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	data, err := codec.Encode(wb.Name, wb.Schema, wb.Rows)
//
// # Binary Layout
//
// All integers are little-endian:
//
//	"EXPA" | u32 1 | u32 name_len | name | u32 ncols | u32 code[ncols]
//	       | u32 row_size | u32 row_count | pad to 8
//	rows   | row_count * row_size bytes
//	"CHNK" | u32 count | (u32 offset, u32 len, bytes[len])*
//
// String cells leave an 8-byte zero slot in their row; the text lives in the
// CHNK section keyed by the absolute file offset of that slot.
package mbe
