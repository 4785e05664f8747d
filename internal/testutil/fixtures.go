package testutil

import (
	"testing"

	"github.com/ahvonen/phoneadvisor/pkg/catalog"
	"github.com/ahvonen/phoneadvisor/pkg/models"
	"github.com/ahvonen/phoneadvisor/pkg/similarity"
)

// NewPhone returns a Phone with sensible defaults, suitable for test fixtures.
// Override individual fields after creation as needed.
func NewPhone(opts ...func(*models.Phone)) models.Phone {
	p := models.Phone{
		Brand:        "Acme",
		Model:        "One",
		PriceUSD:     499,
		RAMGB:        8,
		StorageGB:    128,
		ScreenInches: 6.1,
		BatteryMAh:   4500,
		CameraMP:     50,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}

// WithBrand sets the phone brand.
func WithBrand(brand string) func(*models.Phone) {
	return func(p *models.Phone) { p.Brand = brand }
}

// WithModel sets the phone model name.
func WithModel(model string) func(*models.Phone) {
	return func(p *models.Phone) { p.Model = model }
}

// WithPrice sets the phone price.
func WithPrice(price float64) func(*models.Phone) {
	return func(p *models.Phone) { p.PriceUSD = price }
}

// WithRAM sets the phone RAM size.
func WithRAM(gb float64) func(*models.Phone) {
	return func(p *models.Phone) { p.RAMGB = gb }
}

// WithBattery sets the phone battery capacity.
func WithBattery(mah float64) func(*models.Phone) {
	return func(p *models.Phone) { p.BatteryMAh = mah }
}

// Dataset couples phones with a score matrix, failing the test on any
// construction error so callers can build fixtures inline.
func Dataset(t *testing.T, phones []models.Phone, scores [][]float64) *catalog.Dataset {
	t.Helper()
	m, err := similarity.NewMatrix(scores)
	if err != nil {
		t.Fatalf("build matrix: %v", err)
	}
	ds, err := catalog.NewDataset(catalog.New(phones), m)
	if err != nil {
		t.Fatalf("build dataset: %v", err)
	}
	return ds
}
