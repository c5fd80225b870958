// Package appcontext provides the shared application context interface
// used by all commands.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/leadmerge"
	"github.com/agentstation/leadmerge/pkg/classify"
)

// Interface defines what commands need from the application. The App in
// cmd/leadmerge/app implements it; tests use Mock.
type Interface interface {
	// Client returns the client built from the loaded configuration.
	Client() (leadmerge.Client, error)

	// ClientWithOptions returns a new client with opts applied after the
	// configured ones. Use it for per-command settings such as labels.
	ClientWithOptions(opts ...leadmerge.Option) (leadmerge.Client, error)

	// KeywordGroups returns the groups in path, or the configured groups
	// when path is empty.
	KeywordGroups(path string) ([]classify.Group, error)

	// Labels returns the configured provenance labels.
	Labels() []string

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, wide).
	OutputFormat() string

	// ReportPath returns the path of the markdown run report, empty when
	// no report was requested.
	ReportPath() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
