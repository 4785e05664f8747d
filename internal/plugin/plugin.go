// Package plugin defines the compile-time module system the phoneadvisor
// server is composed from. Each feature area (advisor, history) registers
// itself as a Plugin; the server mounts its routes under a per-plugin
// API prefix.
package plugin

import (
	"context"
	"net/http"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Route represents an HTTP route exposed by a plugin.
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// Plugin defines the interface that all phoneadvisor modules must implement.
type Plugin interface {
	// Name returns the plugin's unique identifier (e.g., "advisor", "history").
	Name() string

	// Version returns the plugin's semantic version.
	Version() string

	// Init initializes the plugin with configuration and logger. A failed
	// Init aborts startup; load-time invariant violations belong here.
	Init(config *viper.Viper, logger *zap.Logger) error

	// Start begins the plugin's background operations.
	Start(ctx context.Context) error

	// Stop gracefully shuts down the plugin.
	Stop() error

	// Routes returns the HTTP routes this plugin exposes.
	Routes() []Route
}
