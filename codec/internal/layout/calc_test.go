package layout

import (
	"errors"
	"testing"

	"github.com/wippyai/mbe/codec/internal/types"
	mbeerrors "github.com/wippyai/mbe/errors"
)

const (
	I  = types.KindInt
	ID = types.KindIntID
	S  = types.KindString
	SD = types.KindStringID
)

func TestCalculateRows(t *testing.T) {
	c := NewCalculator()

	tests := []struct {
		name    string
		schema  []types.Kind
		offsets []uint32
		padding []uint32
		end     uint32
		size    uint32
	}{
		{"empty", nil, []uint32{}, []uint32{}, 0, 0},
		{"int", []types.Kind{I}, []uint32{0}, []uint32{0}, 4, 8},
		{"int_int", []types.Kind{I, ID}, []uint32{0, 4}, []uint32{0, 0}, 8, 8},
		{"int_string", []types.Kind{I, S}, []uint32{0, 8}, []uint32{0, 4}, 16, 16},
		{"string_int", []types.Kind{S, I}, []uint32{0, 8}, []uint32{0, 0}, 12, 16},
		{"int_int_string", []types.Kind{I, I, SD}, []uint32{0, 4, 8}, []uint32{0, 0, 0}, 16, 16},
		{"string_int_string", []types.Kind{S, I, S}, []uint32{0, 8, 16}, []uint32{0, 0, 4}, 24, 24},
		{"three_ints", []types.Kind{I, I, I}, []uint32{0, 4, 8}, []uint32{0, 0, 0}, 12, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := c.Calculate(tt.schema)
			if err != nil {
				t.Fatalf("Calculate: %v", err)
			}
			if info.RowSize != tt.size {
				t.Errorf("RowSize = %d, want %d", info.RowSize, tt.size)
			}
			if info.End != tt.end {
				t.Errorf("End = %d, want %d", info.End, tt.end)
			}
			if info.Trailing() != tt.size-tt.end {
				t.Errorf("Trailing = %d, want %d", info.Trailing(), tt.size-tt.end)
			}
			if len(info.Offsets) != len(tt.offsets) {
				t.Fatalf("len(Offsets) = %d, want %d", len(info.Offsets), len(tt.offsets))
			}
			for i := range tt.offsets {
				if info.Offsets[i] != tt.offsets[i] {
					t.Errorf("Offsets[%d] = %d, want %d", i, info.Offsets[i], tt.offsets[i])
				}
				if info.Padding[i] != tt.padding[i] {
					t.Errorf("Padding[%d] = %d, want %d", i, info.Padding[i], tt.padding[i])
				}
			}
		})
	}
}

func TestRowSizeMultipleOf8(t *testing.T) {
	c := NewCalculator()
	kinds := []types.Kind{I, ID, S, SD}

	// every schema up to length 5
	var walk func(prefix []types.Kind)
	walk = func(prefix []types.Kind) {
		info, err := c.Calculate(prefix)
		if err != nil {
			t.Fatalf("Calculate(%v): %v", prefix, err)
		}
		if info.RowSize%RowAlign != 0 {
			t.Errorf("RowSize(%v) = %d, not a multiple of 8", prefix, info.RowSize)
		}
		for i, k := range prefix {
			if info.Offsets[i]%k.Align() != 0 {
				t.Errorf("%v: column %d misaligned at %d", prefix, i, info.Offsets[i])
			}
		}
		if len(prefix) == 5 {
			return
		}
		for _, k := range kinds {
			walk(append(append([]types.Kind(nil), prefix...), k))
		}
	}
	walk(nil)
}

func TestCalculateInvalid(t *testing.T) {
	c := NewCalculator()
	_, err := c.Calculate([]types.Kind{I, types.KindInvalid})
	if err == nil {
		t.Fatal("expected error for invalid column")
	}
	if !errors.Is(err, mbeerrors.ErrSchema) {
		t.Errorf("error = %v, want schema kind", err)
	}
}

func TestCalculateCached(t *testing.T) {
	c := NewCalculator()
	a, _ := c.Calculate([]types.Kind{I, S})
	b, _ := c.Calculate([]types.Kind{I, S})
	if &a.Offsets[0] != &b.Offsets[0] {
		t.Error("second Calculate should return cached layout")
	}
	if len(c.cache) != 1 {
		t.Errorf("cache size = %d, want 1", len(c.cache))
	}
}
