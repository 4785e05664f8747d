// Package models defines the phone entity shared by the catalog, the
// recommendation engine, and the HTTP layer.
package models

// Attribute names of the fixed phone schema. Filter predicates and CSV
// columns are keyed by these.
const (
	AttrBrand   = "brand"
	AttrPrice   = "price_usd"
	AttrRAM     = "ram_gb"
	AttrStorage = "storage_gb"
	AttrScreen  = "screen_inches"
	AttrBattery = "battery_mah"
	AttrCamera  = "camera_mp"
)

// NumericAttrs lists the numeric attributes in canonical order.
var NumericAttrs = []string{
	AttrPrice, AttrRAM, AttrStorage, AttrScreen, AttrBattery, AttrCamera,
}

// CategoricalAttrs lists the categorical attributes in canonical order.
var CategoricalAttrs = []string{AttrBrand}

// Phone represents one catalog row. Position is the 0-based row index and
// is the only valid key into the similarity matrix; it is stable for the
// lifetime of the loaded catalog.
type Phone struct {
	Position     int     `json:"position" yaml:"-"`
	Brand        string  `json:"brand" yaml:"brand"`
	Model        string  `json:"model" yaml:"model"`
	PriceUSD     float64 `json:"price_usd" yaml:"price_usd"`
	RAMGB        float64 `json:"ram_gb" yaml:"ram_gb"`
	StorageGB    float64 `json:"storage_gb" yaml:"storage_gb"`
	ScreenInches float64 `json:"screen_inches" yaml:"screen_inches"`
	BatteryMAh   float64 `json:"battery_mah" yaml:"battery_mah"`
	CameraMP     float64 `json:"camera_mp" yaml:"camera_mp"`
}

// Label returns the display label, brand and model joined by a space.
// Labels are not guaranteed unique across the catalog; two rows may share
// one, and callers must treat the label as a display key, not an identity.
func (p Phone) Label() string {
	return p.Brand + " " + p.Model
}

// Numeric returns the value of a numeric attribute by name. The second
// return is false for unknown or non-numeric attribute names.
func (p Phone) Numeric(attr string) (float64, bool) {
	switch attr {
	case AttrPrice:
		return p.PriceUSD, true
	case AttrRAM:
		return p.RAMGB, true
	case AttrStorage:
		return p.StorageGB, true
	case AttrScreen:
		return p.ScreenInches, true
	case AttrBattery:
		return p.BatteryMAh, true
	case AttrCamera:
		return p.CameraMP, true
	}
	return 0, false
}

// Categorical returns the value of a categorical attribute by name. The
// second return is false for unknown or non-categorical attribute names.
func (p Phone) Categorical(attr string) (string, bool) {
	switch attr {
	case AttrBrand:
		return p.Brand, true
	}
	return "", false
}

// IsNumericAttr reports whether attr names a numeric schema attribute.
func IsNumericAttr(attr string) bool {
	for _, a := range NumericAttrs {
		if a == attr {
			return true
		}
	}
	return false
}

// IsCategoricalAttr reports whether attr names a categorical schema attribute.
func IsCategoricalAttr(attr string) bool {
	for _, a := range CategoricalAttrs {
		if a == attr {
			return true
		}
	}
	return false
}
