package advisor

import (
	"context"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ahvonen/phoneadvisor/internal/plugin"
	"github.com/ahvonen/phoneadvisor/pkg/catalog"
)

// QueryRecorder receives a note of each executed recommendation query.
// The history plugin implements it; the engine itself stays stateless.
type QueryRecorder interface {
	RecordQuery(ctx context.Context, label string, n int, found bool, results int)
}

// Plugin implements the Advisor recommendation module.
type Plugin struct {
	logger   *zap.Logger
	config   *viper.Viper
	engine   *Engine
	recorder QueryRecorder
	metrics  *metrics
}

// New creates a new Advisor plugin instance.
func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string    { return "advisor" }
func (p *Plugin) Version() string { return "0.1.0" }

// SetRecorder wires an optional query recorder. Must be called before the
// server starts accepting requests.
func (p *Plugin) SetRecorder(r QueryRecorder) {
	p.recorder = r
}

// Init loads the dataset and builds the engine. Artifact paths come from
// the plugin config; with no paths configured the embedded sample dataset
// is used. Any load failure here aborts startup: dimension mismatches and
// malformed artifacts are configuration errors, never query-time ones.
func (p *Plugin) Init(config *viper.Viper, logger *zap.Logger) error {
	p.config = config
	p.logger = logger

	var ds *catalog.Dataset
	var err error

	catalogPath := config.GetString("catalog_path")
	matrixPath := config.GetString("matrix_path")
	if catalogPath != "" || matrixPath != "" {
		ds, err = catalog.Load(catalogPath, matrixPath)
	} else {
		ds, err = catalog.Embedded()
	}
	if err != nil {
		return err
	}

	if config.GetBool("strict_validation") {
		if err := ds.Matrix.Validate(); err != nil {
			return err
		}
		p.logger.Info("similarity matrix passed strict validation")
	}

	p.engine = NewEngine(ds)
	p.metrics = newMetrics()
	p.logger.Info("advisor module initialized",
		zap.Int("phones", ds.Catalog.Len()),
		zap.String("catalog_path", catalogPath),
	)
	return nil
}

func (p *Plugin) Start(ctx context.Context) error {
	p.logger.Info("advisor module started")
	return nil
}

func (p *Plugin) Stop() error {
	p.logger.Info("advisor module stopped")
	return nil
}

func (p *Plugin) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "GET", Path: "/recommendations", Handler: p.handleRecommendations},
		{Method: "POST", Path: "/filter", Handler: p.handleFilter},
		{Method: "GET", Path: "/labels", Handler: p.handleLabels},
		{Method: "GET", Path: "/phones", Handler: p.handleListPhones},
	}
}
