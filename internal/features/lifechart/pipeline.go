package lifechart

// Chart pipeline: template -> lived weeks -> expectancy marker -> legend -> title -> PNG
// Each step draws over the previous ones, so the order is fixed.

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"lifeweeks/internal/features/weeks"
	"lifeweeks/internal/infra/fs"
	logging "lifeweeks/internal/infra/log"

	"github.com/fogleman/gg"
	"go.uber.org/zap"
)

var (
	// ErrTemplate marks a missing or undecodable template image.
	ErrTemplate = errors.New("template unavailable")
	// ErrName marks a name that cannot be used as an output file name.
	ErrName = errors.New("invalid render name")
)

// Chart renders life-in-weeks charts from one template.
type Chart struct {
	Geometry     Geometry
	TemplatePath string
	OutputDir    string
	FontPath     string

	// Now is the reference "today"; nil means time.Now.
	Now func() time.Time
}

// Request carries already validated input for one chart.
type Request struct {
	Name            string
	Birthdate       time.Time
	ExpectancyYears float64
}

// Result describes a written chart.
type Result struct {
	Path            string
	PNG             []byte
	WeeksLived      int  // after clamping to the grid
	GridFull        bool // true when the real count overflowed the grid
	ExpectancyIndex int
}

// OutputPath is where the chart for name is written.
func (c *Chart) OutputPath(name string) string {
	return filepath.Join(c.OutputDir, name+".png")
}

// Render draws the chart for req and writes it to OutputPath(req.Name),
// replacing any previous file. Template and font are loaded before the first
// draw; if either fails nothing is written.
func (c *Chart) Render(req Request) (*Result, error) {
	runID := logging.GenerateRequestID()
	startTime := time.Now()

	if err := checkName(req.Name); err != nil {
		return nil, err
	}

	dc, err := c.loadTemplate()
	if err != nil {
		logging.LogError("Failed to load template", zap.String("run_id", runID), zap.Error(err))
		return nil, err
	}

	fonts, err := LoadFonts(c.FontPath, c.Geometry)
	if err != nil {
		logging.LogError("Failed to load font", zap.String("run_id", runID), zap.Error(err))
		return nil, err
	}

	now := time.Now
	if c.Now != nil {
		now = c.Now
	}
	lived, full := weeks.Clamp(weeks.Lived(req.Birthdate, now()))
	if full {
		logging.LogInfo("Weeks lived exceed the grid, clamping",
			zap.String("run_id", runID),
			zap.Int("capacity", weeks.Capacity))
	}

	FillLivedWeeks(dc, c.Geometry, lived)
	index := MarkExpectancy(dc, c.Geometry, req.ExpectancyYears)
	if row, _ := Cell(index); row >= weeks.MaxYears {
		logging.LogWarn("Expectancy marker lies below the last chart row",
			zap.String("run_id", runID),
			zap.Int("index", index),
			zap.Int("row", row))
	}
	DrawLegend(dc, c.Geometry, fonts.Legend)
	DrawTitle(dc, c.Geometry, fonts.Title, TitleText(req.Name))

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode chart: %w", err)
	}

	path := c.OutputPath(req.Name)
	if err := fs.WriteFileAtomic(path, buf.Bytes()); err != nil {
		logging.LogError("Failed to save chart", zap.String("run_id", runID), zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("failed to save chart: %w", err)
	}

	logging.LogInfo("Chart rendered",
		zap.String("run_id", runID),
		zap.String("path", path),
		zap.Int("weeks_lived", lived),
		zap.Int("expectancy_index", index),
		zap.Int("bytes", buf.Len()),
		zap.Int64("duration_ms", time.Since(startTime).Milliseconds()))

	return &Result{
		Path:            path,
		PNG:             buf.Bytes(),
		WeeksLived:      lived,
		GridFull:        full,
		ExpectancyIndex: index,
	}, nil
}

func (c *Chart) loadTemplate() (*gg.Context, error) {
	img, err := gg.LoadImage(c.TemplatePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTemplate, c.TemplatePath, err)
	}

	b := img.Bounds()
	if b.Dx() != c.Geometry.CanvasWidth || b.Dy() != c.Geometry.CanvasHeight {
		logging.LogWarn("Template size differs from chart geometry",
			zap.String("path", c.TemplatePath),
			zap.Int("width", b.Dx()),
			zap.Int("height", b.Dy()),
			zap.Int("expected_width", c.Geometry.CanvasWidth),
			zap.Int("expected_height", c.Geometry.CanvasHeight))
	}

	// Copies into a fresh RGBA canvas owned by this run.
	return gg.NewContextForImage(img), nil
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty", ErrName)
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrName, name)
	}
	return nil
}
