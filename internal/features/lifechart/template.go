package lifechart

import (
	"bytes"
	"fmt"
	"strconv"

	"lifeweeks/internal/features/weeks"
	"lifeweeks/internal/infra/fs"
	logging "lifeweeks/internal/infra/log"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
)

// DrawTemplate paints the empty chart: background, one outlined square per
// cell, week numbers above the first row and ages left of every fifth row.
func DrawTemplate(g Geometry, fonts *Fonts) *gg.Context {
	dc := gg.NewContext(g.CanvasWidth, g.CanvasHeight)
	dc.SetColor(CanvasColor)
	dc.Clear()

	// Half-pixel inset keeps 1px outlines on whole pixels.
	for i := 0; i < weeks.Capacity; i++ {
		x, y := g.CellOrigin(i)
		dc.DrawRectangle(x+0.5, y+0.5, g.CellSize-1, g.CellSize-1)
	}
	dc.SetColor(GridColor)
	dc.SetLineWidth(1)
	dc.Stroke()

	dc.SetFontFace(fonts.Axis)
	dc.SetColor(TextColor)

	for col := 0; col < weeks.PerYear; col++ {
		week := col + 1
		if week != 1 && week%5 != 0 {
			continue
		}
		x, y := g.CellOrigin(col)
		dc.DrawStringAnchored(strconv.Itoa(week), x+g.CellSize/2, y-g.RowStep/2, 0.5, 0)
	}

	for row := 0; row < weeks.MaxYears; row += 5 {
		x, y := g.CellOrigin(row * weeks.PerYear)
		dc.DrawStringAnchored(strconv.Itoa(row), x-g.ColumnStep/2, y+g.CellSize/2, 1, 0.5)
	}

	left, top := g.CellOrigin(0)
	dc.DrawStringAnchored("Week of the year", left, top-g.RowStep*2, 0, 0)
	dc.DrawStringAnchored("Age", left-g.ColumnStep/2, top-g.RowStep/2, 1, 0)

	return dc
}

// GenerateTemplate writes a blank chart template to path.
func GenerateTemplate(path, fontPath string, g Geometry) error {
	fonts, err := LoadFonts(fontPath, g)
	if err != nil {
		return err
	}

	dc := DrawTemplate(g, fonts)

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return fmt.Errorf("failed to encode template: %w", err)
	}
	if err := fs.WriteFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to save template: %w", err)
	}

	logging.LogInfo("Template generated",
		zap.String("path", path),
		zap.Int("width", g.CanvasWidth),
		zap.Int("height", g.CanvasHeight),
		zap.Int("bytes", buf.Len()))
	return nil
}
