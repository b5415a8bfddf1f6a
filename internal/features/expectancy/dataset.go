// Package expectancy loads average life expectancy per country and continent.
package expectancy

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	logging "lifeweeks/internal/infra/log"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	entityColumn     = "Entity"
	expectancyColumn = "Life Expectancy"
)

var (
	// ErrDataset marks an unreadable or malformed dataset.
	ErrDataset = errors.New("life expectancy dataset")
	// ErrUnknownLocation is returned by Lookup for names missing from the dataset.
	ErrUnknownLocation = errors.New("unknown location")
)

// Continents in menu order.
var Continents = []string{
	"Africa",
	"Asia",
	"Europe",
	"North America",
	"Oceania",
	"South America",
	"World",
}

// Dataset maps title-cased entity names to life expectancy in whole years.
type Dataset struct {
	years map[string]float64
}

// Load reads a CSV with "Entity" and "Life Expectancy" columns.
func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataset, err)
	}
	defer f.Close()

	ds, err := Parse(f)
	if err != nil {
		return nil, err
	}

	logging.LogInfo("Loaded life expectancy dataset",
		zap.String("path", path),
		zap.Int("entities", ds.Len()))
	return ds, nil
}

// Parse reads the dataset from r. Values are rounded up to whole years.
// Any malformed row fails the whole dataset; no defaults are substituted.
func Parse(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrDataset, err)
	}

	entityIdx, valueIdx := -1, -1
	for i, name := range header {
		switch strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")) {
		case entityColumn:
			entityIdx = i
		case expectancyColumn:
			valueIdx = i
		}
	}
	if entityIdx < 0 || valueIdx < 0 {
		return nil, fmt.Errorf("%w: header needs %q and %q columns, got %v", ErrDataset, entityColumn, expectancyColumn, header)
	}

	ds := &Dataset{years: make(map[string]float64)}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrDataset, line, err)
		}

		entity := normalize(record[entityIdx])
		if entity == "" {
			return nil, fmt.Errorf("%w: line %d: empty entity", ErrDataset, line)
		}

		raw := strings.TrimSpace(record[valueIdx])
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
			return nil, fmt.Errorf("%w: line %d: bad life expectancy %q for %s", ErrDataset, line, raw, entity)
		}

		ds.years[entity] = math.Ceil(value)
	}

	return ds, nil
}

// Lookup returns the expectancy for a country or continent, case-insensitively.
func (d *Dataset) Lookup(name string) (float64, error) {
	key := normalize(name)
	years, ok := d.years[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLocation, strings.TrimSpace(name))
	}
	return years, nil
}

// Len is the number of entities.
func (d *Dataset) Len() int {
	return len(d.years)
}

func normalize(name string) string {
	return cases.Title(language.Und).String(strings.Join(strings.Fields(name), " "))
}
