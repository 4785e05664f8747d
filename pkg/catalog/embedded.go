package catalog

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/ahvonen/phoneadvisor/pkg/models"
	"github.com/ahvonen/phoneadvisor/pkg/similarity"
)

//go:embed default.yaml
var defaultRawData []byte

// datasetFile is the top-level structure of the embedded YAML.
type datasetFile struct {
	Phones     []models.Phone `yaml:"phones"`
	Similarity [][]float64    `yaml:"similarity"`
}

var (
	embeddedOnce sync.Once
	embeddedDS   *Dataset
	embeddedErr  error
)

// Embedded returns the built-in sample dataset, parsed from the embedded
// YAML on first access. It lets the server run without external artifacts.
func Embedded() (*Dataset, error) {
	embeddedOnce.Do(func() {
		var f datasetFile
		if err := yaml.Unmarshal(defaultRawData, &f); err != nil {
			embeddedErr = fmt.Errorf("catalog: parse embedded yaml: %w", err)
			return
		}
		m, err := similarity.NewMatrix(f.Similarity)
		if err != nil {
			embeddedErr = err
			return
		}
		embeddedDS, embeddedErr = NewDataset(New(f.Phones), m)
	})
	return embeddedDS, embeddedErr
}
