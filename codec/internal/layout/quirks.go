package layout

import "github.com/wippyai/mbe/codec/internal/types"

const (
	// FillZero is the default padding byte.
	FillZero byte = 0x00
	// FillCC is written into the gap before column 1 of [Int, String*] rows.
	FillCC byte = 0xCC
)

// UsesCCPadding reports whether the schema is Int followed only by
// String/StringID columns (at least one). IntID does not qualify.
func UsesCCPadding(schema []types.Kind) bool {
	if len(schema) < 2 || schema[0] != types.KindInt {
		return false
	}
	for _, k := range schema[1:] {
		if !k.IsString() {
			return false
		}
	}
	return true
}

// PaddingFill returns the byte used for the padding inserted before column col.
// Trailing row padding is always FillZero.
func PaddingFill(schema []types.Kind, col int) byte {
	if col == 1 && UsesCCPadding(schema) {
		return FillCC
	}
	return FillZero
}
