package codec

import (
	"github.com/wippyai/mbe/codec/internal/types"
)

// ColumnType is one of Int, IntID, String, StringID (or Invalid).
type ColumnType = types.Kind

const (
	Invalid  = types.KindInvalid
	Int      = types.KindInt
	IntID    = types.KindIntID
	String   = types.KindString
	StringID = types.KindStringID
)

// ColumnTypeFromCode maps an EXPA header code to its column type.
func ColumnTypeFromCode(code uint32) (ColumnType, bool) {
	return types.FromCode(code)
}

// ColumnTypeFromName maps a header type name to its column type.
func ColumnTypeFromName(name string) (ColumnType, bool) {
	return types.FromName(name)
}
