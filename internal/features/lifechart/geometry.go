package lifechart

import (
	"fmt"
	"image/color"

	"lifeweeks/internal/features/weeks"

	"github.com/lucasb-eyer/go-colorful"
)

// Geometry is the fixed pixel layout of the chart. Renderers take it by value;
// DefaultGeometry matches the shipped weeks.png template.
type Geometry struct {
	CanvasWidth  int
	CanvasHeight int

	OriginX    float64 // top-left of cell 0
	OriginY    float64
	ColumnStep float64 // x distance between neighbouring cells
	RowStep    float64 // y distance between rows
	CellSize   float64

	MarkerOffsetX float64 // circle centre relative to the cell origin
	MarkerOffsetY float64
	MarkerRadius  float64

	LegendX            float64
	LegendY            float64
	LegendSpacing      float64
	LegendSwatch       float64
	LegendLabelOffsetX float64
	LegendFontSize     float64

	TitleBandHeight float64 // the title is centred between y=0 and here
	TitleFontSize   float64

	AxisFontSize float64 // template labels only
}

// DefaultGeometry returns the layout of the 52 x 90 chart.
func DefaultGeometry() Geometry {
	return Geometry{
		CanvasWidth:  1266,
		CanvasHeight: 1950,

		OriginX:    118,
		OriginY:    229,
		ColumnStep: 20,
		RowStep:    18,
		CellSize:   10,

		MarkerOffsetX: 5,
		MarkerOffsetY: 4,
		MarkerRadius:  9,

		LegendX:            500,
		LegendY:            1870,
		LegendSpacing:      160,
		LegendSwatch:       12,
		LegendLabelOffsetX: 20,
		LegendFontSize:     24,

		TitleBandHeight: 150,
		TitleFontSize:   35,

		AxisFontSize: 14,
	}
}

// Cell maps a week index to its row and column. Indices past the last row
// keep counting rows; nothing is clamped here.
func Cell(index int) (row, col int) {
	return index / weeks.PerYear, index % weeks.PerYear
}

// CellOrigin returns the top-left pixel of the cell for index.
func (g Geometry) CellOrigin(index int) (x, y float64) {
	row, col := Cell(index)
	return g.OriginX + float64(col)*g.ColumnStep, g.OriginY + float64(row)*g.RowStep
}

// MarkerCenter returns the centre of the expectancy marker drawn over index.
func (g Geometry) MarkerCenter(index int) (x, y float64) {
	x, y = g.CellOrigin(index)
	return x + g.MarkerOffsetX, y + g.MarkerOffsetY
}

// Palette
var (
	LivedColor   = mustHex("#DA70D6")
	MarkerColor  = mustHex("#00FF00")
	TitleColor   = mustHex("#1C1480")
	OutlineColor = color.Color(color.Black)
	TextColor    = color.Color(color.Black)
	GridColor    = mustHex("#BBBBBB")
	CanvasColor  = color.Color(color.White)
)

func mustHex(s string) color.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("lifechart: bad palette colour %q: %v", s, err))
	}
	return c
}
