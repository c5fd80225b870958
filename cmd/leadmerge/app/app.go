// Package app provides the application context and dependency management
// for the leadmerge CLI. It centralizes configuration, logging and the
// leadmerge client that commands run their operations on.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/leadmerge"
	"github.com/agentstation/leadmerge/internal/appcontext"
	"github.com/agentstation/leadmerge/internal/cmd/cmdutil"
	"github.com/agentstation/leadmerge/internal/cmd/output"
	"github.com/agentstation/leadmerge/internal/config"
	"github.com/agentstation/leadmerge/pkg/classify"
)

// App represents the leadmerge application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Client instance (lazy-initialized, reset when the config changes)
	mu     sync.RWMutex
	client leadmerge.Client
}

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// New creates a new App instance with the given version information.
// The app is initialized with the loaded configuration, which can be
// replaced using functional options.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the result format, detected from the terminal when
// none is configured.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// ReportPath returns the markdown report path, empty when not requested.
func (a *App) ReportPath() string {
	return a.config.Report
}

// Labels returns the configured provenance labels.
func (a *App) Labels() []string {
	return a.config.Labels
}

// KeywordGroups returns the groups in path, falling back to the configured
// groups file and then to the config file's keyword_groups section.
func (a *App) KeywordGroups(path string) ([]classify.Group, error) {
	if path == "" {
		path = a.config.GroupsFile
	}
	return config.KeywordGroups(path)
}

// Client returns the leadmerge client, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Client() (leadmerge.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	c, err := a.ClientWithOptions()
	if err != nil {
		return nil, err
	}
	a.client = c
	return c, nil
}

// ClientWithOptions returns a new client built from the configuration with
// opts applied last.
func (a *App) ClientWithOptions(opts ...leadmerge.Option) (leadmerge.Client, error) {
	base, err := a.clientOptions()
	if err != nil {
		return nil, err
	}
	return leadmerge.New(append(base, opts...)...)
}

// clientOptions constructs client options from the app configuration.
func (a *App) clientOptions() ([]leadmerge.Option, error) {
	comma, err := cmdutil.Comma(a.config.Comma)
	if err != nil {
		return nil, err
	}

	opts := []leadmerge.Option{
		leadmerge.WithHeader(a.config.Header),
		leadmerge.WithKeyColumn(a.config.KeyColumn),
		leadmerge.WithComma(comma),
		leadmerge.WithSheet(a.config.Sheet),
	}
	if a.config.Encoding != "" {
		opts = append(opts, leadmerge.WithEncoding(a.config.Encoding))
	}
	if a.config.OutputEncoding != "" {
		opts = append(opts, leadmerge.WithOutputEncoding(a.config.OutputEncoding))
	}
	if len(a.config.Labels) > 0 {
		opts = append(opts, leadmerge.WithLabels(a.config.Labels...))
	}
	return opts, nil
}

// setConfig replaces the configuration and drops the cached client.
func (a *App) setConfig(config *Config) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.config = config
	a.client = nil
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client instance (useful for testing).
func WithClient(c leadmerge.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
