// Package wire provides internal utilities for the MBE binary encoding.
//
// # Contents
//
//   - helpers.go: alignment, overflow-checked arithmetic, padded strings
//   - coerce.go: cell value coercion to int32 and string
//
// This package is internal to the codec.
package wire
