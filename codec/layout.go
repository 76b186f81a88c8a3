package codec

import (
	"github.com/wippyai/mbe/codec/internal/layout"
	"github.com/wippyai/mbe/codec/internal/types"
)

// Layout is the byte layout shared by every row of a table.
type Layout = layout.Info

// RowAlign is the boundary row sizes are rounded to.
const RowAlign = layout.RowAlign

type LayoutCalculator struct {
	calc *layout.Calculator
}

func NewLayoutCalculator() *LayoutCalculator {
	return &LayoutCalculator{
		calc: layout.NewCalculator(),
	}
}

func (lc *LayoutCalculator) Calculate(schema Schema) (Layout, error) {
	return lc.calc.Calculate([]types.Kind(schema))
}

var defaultLayouts = NewLayoutCalculator()

// ComputeRowLayout returns the per-column offsets and the row size for schema.
func ComputeRowLayout(schema Schema) (Layout, error) {
	return defaultLayouts.Calculate(schema)
}
