package lifechart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lifeweeks/internal/infra/fs"
	logging "lifeweeks/internal/infra/log"

	"github.com/golang/freetype/truetype"
	"go.uber.org/zap"
	"golang.org/x/image/font"
)

// ErrFont marks a missing or unreadable font file.
var ErrFont = errors.New("font unavailable")

// fontDirs are searched when the configured font is a bare file name.
var fontDirs = []string{
	".",
	"etc/fonts",
	"~/.fonts",
	"~/.local/share/fonts",
	"~/Library/Fonts",
	"/Library/Fonts",
	"/usr/share/fonts/truetype/dejavu",
	"/usr/share/fonts/TTF",
	"/usr/share/fonts/dejavu",
	"/usr/local/share/fonts",
	"C:/Windows/Fonts",
}

// ResolveFontPath finds the font file. A path with a directory part is used
// as-is; a bare file name is looked up in the usual font directories.
func ResolveFontPath(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("%w: no font configured", ErrFont)
	}

	if strings.ContainsRune(path, '/') || strings.ContainsRune(path, filepath.Separator) {
		if found, ok := fs.FirstExisting(path); ok {
			return found, nil
		}
		return "", fmt.Errorf("%w: %s not found", ErrFont, path)
	}

	candidates := make([]string, 0, len(fontDirs))
	for _, dir := range fontDirs {
		candidates = append(candidates, filepath.Join(dir, path))
	}
	if found, ok := fs.FirstExisting(candidates...); ok {
		return found, nil
	}

	logging.LogWarn("Font not found in any known directory",
		zap.String("font", path),
		zap.Int("dirs_checked", len(fontDirs)))
	return "", fmt.Errorf("%w: %s not found in font directories", ErrFont, path)
}

// Fonts holds the faces used by one rendering run.
type Fonts struct {
	Title  font.Face
	Legend font.Face
	Axis   font.Face
}

// LoadFonts resolves and parses the font once and builds every face the
// chart needs, so a bad font fails the run before anything is drawn.
func LoadFonts(path string, g Geometry) (*Fonts, error) {
	ttf, err := loadTrueType(path)
	if err != nil {
		return nil, err
	}

	return &Fonts{
		Title:  truetype.NewFace(ttf, &truetype.Options{Size: g.TitleFontSize}),
		Legend: truetype.NewFace(ttf, &truetype.Options{Size: g.LegendFontSize}),
		Axis:   truetype.NewFace(ttf, &truetype.Options{Size: g.AxisFontSize}),
	}, nil
}

func loadTrueType(path string) (*truetype.Font, error) {
	resolved, err := ResolveFontPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFont, err)
	}

	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrFont, resolved, err)
	}

	logging.LogDebug("Loaded font", zap.String("path", resolved), zap.Int("bytes", len(data)))
	return ttf, nil
}
