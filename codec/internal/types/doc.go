// Package types defines the closed set of MBE column types.
//
// Each Kind carries its header name, file-format code, inline size and
// alignment. KindInvalid is a distinct variant used when a header code or
// name is not recognized; it never participates in a valid layout.
//
// This package is internal to the codec.
package types
