package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ahvonen/phoneadvisor/pkg/models"
)

// csvColumns are the required header columns of an external catalog file.
// Column order in the file does not matter; the header is used to index.
var csvColumns = []string{
	models.AttrBrand, "model",
	models.AttrPrice, models.AttrRAM, models.AttrStorage,
	models.AttrScreen, models.AttrBattery, models.AttrCamera,
}

// ReadCSV parses a catalog from CSV with a required header row. A missing
// required column is a configuration-class error that should abort
// startup, matching the load-time schema invariant.
func ReadCSV(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("catalog: csv is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.ToLower(name))] = i
	}
	for _, col := range csvColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("catalog: missing required column %q", col)
		}
	}

	var phones []models.Phone
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("catalog: read csv row %d: %w", len(phones)+1, err)
		}
		p, err := csvRowToPhone(record, index)
		if err != nil {
			return nil, fmt.Errorf("catalog: row %d: %w", len(phones)+1, err)
		}
		phones = append(phones, p)
	}

	return New(phones), nil
}

// LoadCSV reads a catalog from a CSV file on disk.
func LoadCSV(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %q: %w", path, err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// csvRowToPhone parses one CSV record using the header index.
func csvRowToPhone(record []string, index map[string]int) (models.Phone, error) {
	field := func(col string) (string, error) {
		i := index[col]
		if i >= len(record) {
			return "", fmt.Errorf("missing value for column %q", col)
		}
		return strings.TrimSpace(record[i]), nil
	}
	numeric := func(col string) (float64, error) {
		s, err := field(col)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q", col, s)
		}
		return v, nil
	}

	var p models.Phone
	var err error
	if p.Brand, err = field(models.AttrBrand); err != nil {
		return models.Phone{}, err
	}
	if p.Model, err = field("model"); err != nil {
		return models.Phone{}, err
	}
	if p.PriceUSD, err = numeric(models.AttrPrice); err != nil {
		return models.Phone{}, err
	}
	if p.RAMGB, err = numeric(models.AttrRAM); err != nil {
		return models.Phone{}, err
	}
	if p.StorageGB, err = numeric(models.AttrStorage); err != nil {
		return models.Phone{}, err
	}
	if p.ScreenInches, err = numeric(models.AttrScreen); err != nil {
		return models.Phone{}, err
	}
	if p.BatteryMAh, err = numeric(models.AttrBattery); err != nil {
		return models.Phone{}, err
	}
	if p.CameraMP, err = numeric(models.AttrCamera); err != nil {
		return models.Phone{}, err
	}
	return p, nil
}
