package wire

import (
	"math"
	"reflect"
	"strings"
)

// StringTerminator is appended to every encoded string before padding.
var StringTerminator = [2]byte{0, 0}

func SafeMulU32(a, b uint32) (uint32, bool) {
	if b != 0 && a > math.MaxUint32/b {
		return 0, false
	}
	return a * b, true
}

func SafeAddU32(a, b uint32) (uint32, bool) {
	if a > math.MaxUint32-b {
		return 0, false
	}
	return a + b, true
}

// TypeName returns "nil" for nil values, avoiding reflect.TypeOf(nil) panic.
func TypeName(value any) string {
	if value == nil {
		return "nil"
	}
	return reflect.TypeOf(value).String()
}

// AlignTo rounds offset up to a power-of-two alignment.
func AlignTo(offset, align uint32) uint32 {
	if align == 0 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}

// PadBytes returns the padding needed to bring offset to align.
func PadBytes(offset, align uint32) uint32 {
	return AlignTo(offset, align) - offset
}

// PaddedLen is the encoded length of s: UTF-8 bytes, two NULs, NUL padding to a multiple of 4.
func PaddedLen(s string) uint32 {
	return AlignTo(uint32(len(s))+2, 4)
}

// AppendPadded appends the padded encoding of s to dst.
func AppendPadded(dst []byte, s string) []byte {
	n := PaddedLen(s)
	dst = append(dst, s...)
	dst = append(dst, StringTerminator[:]...)
	for i := uint32(len(s)) + uint32(len(StringTerminator)); i < n; i++ {
		dst = append(dst, 0)
	}
	return dst
}

// TrimPadded strips trailing NULs and drops invalid UTF-8 sequences.
func TrimPadded(b []byte) string {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return strings.ToValidUTF8(string(b[:end]), "")
}
