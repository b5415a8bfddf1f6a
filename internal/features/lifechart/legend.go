package lifechart

import (
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

type legendItem struct {
	label string
	color color.Color
}

// legendItems are drawn left to right in this order.
var legendItems = []legendItem{
	{"avg life xp", MarkerColor},
	{"weeks lived", LivedColor},
}

// DrawLegend draws each swatch with its label, LegendSpacing apart.
func DrawLegend(dc *gg.Context, g Geometry, face font.Face) {
	dc.SetFontFace(face)
	dc.SetLineWidth(1)

	for i, item := range legendItems {
		x := g.LegendX + float64(i)*g.LegendSpacing

		dc.DrawRectangle(x, g.LegendY, g.LegendSwatch, g.LegendSwatch)
		dc.SetColor(item.color)
		dc.FillPreserve()
		dc.SetColor(OutlineColor)
		dc.Stroke()

		dc.SetColor(TextColor)
		dc.DrawStringAnchored(item.label, x+g.LegendLabelOffsetX, g.LegendY+g.LegendSwatch/2, 0, 0.5)
	}
}
