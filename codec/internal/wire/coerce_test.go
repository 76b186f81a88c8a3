package wire

import (
	"math"
	"testing"
)

func TestCoerceToInt32(t *testing.T) {
	tests := []struct {
		in   any
		name string
		want int32
		ok   bool
	}{
		{int32(-5), "int32", -5, true},
		{int(7), "int", 7, true},
		{int64(math.MaxInt32), "int64 max", math.MaxInt32, true},
		{int64(math.MaxInt32) + 1, "int64 overflow", 0, false},
		{uint32(math.MaxUint32), "uint32 overflow", 0, false},
		{uint8(200), "uint8", 200, true},
		{float64(42), "integral float", 42, true},
		{float64(4.5), "fractional float", 4, true},
		{float64(-4.9), "negative fraction", -4, true},
		{float64(2147483647.9), "fraction below max", math.MaxInt32, true},
		{float64(2147483648), "float overflow", 0, false},
		{math.NaN(), "nan", 0, false},
		{math.Inf(1), "inf", 0, false},
		{float32(-3), "float32", -3, true},
		{"123", "decimal string", 123, true},
		{" -17 ", "spaced string", -17, true},
		{"7.0", "float string", 7, true},
		{"1E+3", "exponent string", 1000, true},
		{"abc", "word", 0, false},
		{"", "empty string", 0, false},
		{"7.5", "fractional string", 7, true},
		{"-0.5", "negative fractional string", 0, true},
		{"1e40", "huge string", 0, false},
		{true, "bool", 0, false},
		{[]int{1}, "slice", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceToInt32(tt.in)
			if ok != tt.ok || got != tt.want {
				t.Errorf("CoerceToInt32(%v) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.ok)
			}
		})
	}
}

type label string

func (l label) String() string { return "label:" + string(l) }

func TestCoerceToString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"text", "text"},
		{[]byte("raw"), "raw"},
		{7, "7"},
		{float64(7), "7"},
		{2.5, "2.5"},
		{true, "true"},
		{label("x"), "label:x"},
	}

	for _, tt := range tests {
		if got := CoerceToString(tt.in); got != tt.want {
			t.Errorf("CoerceToString(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
