package lifechart

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

// writeTestFont puts Go Regular on disk so the real font loading path runs.
func writeTestFont(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "GoRegular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0644); err != nil {
		t.Fatalf("write font: %v", err)
	}
	return path
}

func testFonts(t *testing.T, g Geometry) *Fonts {
	t.Helper()
	fonts, err := LoadFonts(writeTestFont(t), g)
	if err != nil {
		t.Fatalf("LoadFonts: %v", err)
	}
	return fonts
}

// writeTestTemplate renders the blank template into a temp dir.
func writeTestTemplate(t *testing.T, g Geometry, fontPath string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weeks.png")
	if err := GenerateTemplate(path, fontPath, g); err != nil {
		t.Fatalf("GenerateTemplate: %v", err)
	}
	return path
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode png: %v", err)
	}
	return img
}

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func sameColor(got, want color.Color) bool {
	a, b := rgba(got), rgba(want)
	near := func(x, y uint8) bool {
		d := int(x) - int(y)
		return d >= -2 && d <= 2
	}
	return near(a.R, b.R) && near(a.G, b.G) && near(a.B, b.B) && near(a.A, b.A)
}

// cellCenterPixel is a pixel well inside the square of index.
func cellCenterPixel(g Geometry, index int) (int, int) {
	x, y := g.CellOrigin(index)
	return int(x + g.CellSize/2), int(y + g.CellSize/2)
}

func assertCellColor(t *testing.T, img image.Image, g Geometry, index int, want color.Color) {
	t.Helper()
	x, y := cellCenterPixel(g, index)
	if got := img.At(x, y); !sameColor(got, want) {
		row, col := Cell(index)
		t.Fatalf("cell %d (row %d, col %d) at (%d,%d) = %v, want %v", index, row, col, x, y, rgba(got), rgba(want))
	}
}
