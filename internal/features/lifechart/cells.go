package lifechart

import (
	"lifeweeks/internal/features/weeks"

	"github.com/fogleman/gg"
)

// FillLivedWeeks paints one square per lived week: every complete row first,
// then lived%52 squares of the trailing row. Zero weeks draws nothing.
func FillLivedWeeks(dc *gg.Context, g Geometry, lived int) {
	full, partial := LivedRows(lived)
	if full == 0 && partial == 0 {
		return
	}

	for row := 0; row < full; row++ {
		drawRowCells(dc, g, row, weeks.PerYear)
	}
	drawRowCells(dc, g, full, partial)

	dc.SetColor(LivedColor)
	dc.Fill()
}

func drawRowCells(dc *gg.Context, g Geometry, row, count int) {
	for col := 0; col < count; col++ {
		x, y := g.CellOrigin(row*weeks.PerYear + col)
		dc.DrawRectangle(x, y, g.CellSize, g.CellSize)
	}
}

// LivedRows splits lived into complete rows and the squares of a trailing partial row.
func LivedRows(lived int) (full, partial int) {
	if lived <= 0 {
		return 0, 0
	}
	return lived / weeks.PerYear, lived % weeks.PerYear
}

// MarkExpectancy draws the outlined circle over the cell at round(years*52)
// and returns that index. Indices beyond the last row are drawn wherever the
// mapping puts them; a circle lying wholly outside the canvas is not drawn.
func MarkExpectancy(dc *gg.Context, g Geometry, years float64) int {
	index := weeks.ExpectancyIndex(years)
	cx, cy := g.MarkerCenter(index)

	r := g.MarkerRadius
	if cx+r < 0 || cy+r < 0 || cx-r > float64(dc.Width()) || cy-r > float64(dc.Height()) {
		return index
	}

	dc.DrawCircle(cx, cy, r)
	dc.SetColor(MarkerColor)
	dc.FillPreserve()
	dc.SetColor(OutlineColor)
	dc.SetLineWidth(1)
	dc.Stroke()

	return index
}
