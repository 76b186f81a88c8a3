package codec

import (
	"encoding/binary"

	mbe "github.com/wippyai/mbe"
	"github.com/wippyai/mbe/codec/internal/layout"
	"github.com/wippyai/mbe/codec/internal/types"
)

// LeadingWordSize is the size of the zero word LeadingAlignmentSkip may consume.
const LeadingWordSize = 4

// UsesCCPadding reports whether schema is [Int, (String|StringID)+].
func UsesCCPadding(schema Schema) bool {
	return layout.UsesCCPadding([]types.Kind(schema))
}

// PaddingFill returns the byte written into the padding before column col:
// 0xCC before column 1 of an [Int, String*] schema, 0x00 otherwise.
func PaddingFill(schema Schema, col int) byte {
	return layout.PaddingFill([]types.Kind(schema), col)
}

// LeadingAlignmentSkip returns how many bytes to skip at the nominal data
// start, which is the position right after the row count. When the table has
// rows and its first column is Int, a zero word at that position is treated
// as header padding and skipped. IntID-first and String-first tables are
// never adjusted. The check runs once per table, before any row is read.
func LeadingAlignmentSkip(buf mbe.Buffer, nominal uint32, schema Schema, rowCount uint32) uint32 {
	if rowCount == 0 || len(schema) == 0 || schema[0] != Int {
		return 0
	}
	word, err := buf.Read(nominal, LeadingWordSize)
	if err != nil {
		return 0
	}
	if int32(binary.LittleEndian.Uint32(word)) != 0 {
		return 0
	}
	return LeadingWordSize
}
