// Package history persists executed recommendation queries so the UI can
// offer a recent-queries view. The core engine stays stateless; this is
// the caller-held session memory, made durable.
package history

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ahvonen/phoneadvisor/internal/plugin"
)

// defaultPath is the SQLite file used when the plugin config sets none.
const defaultPath = "phoneadvisor.db"

// Plugin implements the History query log module.
type Plugin struct {
	logger *zap.Logger
	config *viper.Viper
	store  *Store
}

// New creates a new History plugin instance.
func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string    { return "history" }
func (p *Plugin) Version() string { return "0.1.0" }

func (p *Plugin) Init(config *viper.Viper, logger *zap.Logger) error {
	p.config = config
	p.logger = logger

	path := config.GetString("path")
	if path == "" {
		path = defaultPath
	}
	store, err := OpenStore(path)
	if err != nil {
		return err
	}
	p.store = store
	p.logger.Info("history module initialized", zap.String("path", path))
	return nil
}

func (p *Plugin) Start(ctx context.Context) error {
	p.logger.Info("history module started")
	return nil
}

func (p *Plugin) Stop() error {
	if p.store != nil {
		if err := p.store.Close(); err != nil {
			p.logger.Error("failed to close history store", zap.Error(err))
		}
	}
	p.logger.Info("history module stopped")
	return nil
}

func (p *Plugin) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "GET", Path: "/queries", Handler: p.handleListQueries},
		{Method: "DELETE", Path: "/queries", Handler: p.handleClearQueries},
	}
}

// RecordQuery implements the advisor's QueryRecorder. Failures are logged
// and swallowed: losing a history row must never fail the query itself.
func (p *Plugin) RecordQuery(ctx context.Context, label string, n int, found bool, results int) {
	if p.store == nil {
		return
	}
	rec := QueryRecord{
		ID:        uuid.New().String(),
		Label:     label,
		Requested: n,
		Found:     found,
		Results:   results,
		QueriedAt: time.Now().UTC(),
	}
	if err := p.store.Insert(ctx, rec); err != nil {
		p.logger.Error("failed to record query", zap.Error(err), zap.String("label", label))
	}
}

// handleListQueries returns recent queries, newest first.
//
//	@Summary		List recent queries
//	@Description	Returns the most recent recommendation queries, newest first.
//	@Tags			history
//	@Produce		json
//	@Param			limit query int false "Maximum records" default(50)
//	@Success		200 {array} QueryRecord
//	@Failure		500 {object} map[string]any
//	@Router			/history/queries [get]
func (p *Plugin) handleListQueries(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	records, err := p.store.List(r.Context(), limit)
	if err != nil {
		p.logger.Error("failed to list query history", zap.Error(err))
		historyWriteError(w, http.StatusInternalServerError, "failed to load query history")
		return
	}
	historyWriteJSON(w, http.StatusOK, records)
}

// handleClearQueries deletes all history records.
//
//	@Summary		Clear query history
//	@Tags			history
//	@Success		204
//	@Failure		500 {object} map[string]any
//	@Router			/history/queries [delete]
func (p *Plugin) handleClearQueries(w http.ResponseWriter, r *http.Request) {
	if err := p.store.Clear(r.Context()); err != nil {
		p.logger.Error("failed to clear query history", zap.Error(err))
		historyWriteError(w, http.StatusInternalServerError, "failed to clear query history")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// -- helpers --

func historyWriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func historyWriteError(w http.ResponseWriter, status int, detail string) {
	title := http.StatusText(status)
	slug := strings.ReplaceAll(strings.ToLower(title), " ", "-")
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"type":   "https://phoneadvisor.dev/problems/" + slug,
		"title":  title,
		"status": status,
		"detail": detail,
	})
}
