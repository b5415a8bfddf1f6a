package lifechart

import (
	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleText is "<Name>'s Life in Weeks" with the name title-cased.
func TitleText(name string) string {
	return cases.Title(language.Und).String(name) + "'s Life in Weeks"
}

// TitleOrigin returns the pen position that centres text with the given ink
// bounds horizontally on the canvas and vertically inside the title band.
// bounds are relative to the pen's baseline origin, as font.BoundString reports them.
func TitleOrigin(canvasWidth, bandHeight float64, bounds fixed.Rectangle26_6) (x, baseline float64) {
	minX := fix(bounds.Min.X)
	minY := fix(bounds.Min.Y)
	width := fix(bounds.Max.X) - minX
	height := fix(bounds.Max.Y) - minY

	left := (canvasWidth - width) / 2
	top := bandHeight/2 - height/2

	return left - minX, top - minY
}

// DrawTitle measures text with face and draws it centred above the chart.
func DrawTitle(dc *gg.Context, g Geometry, face font.Face, text string) {
	bounds, _ := font.BoundString(face, text)
	x, baseline := TitleOrigin(float64(dc.Width()), g.TitleBandHeight, bounds)

	dc.SetFontFace(face)
	dc.SetColor(TitleColor)
	dc.DrawString(text, x, baseline)
}

func fix(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
