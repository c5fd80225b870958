package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/leadmerge"
	"github.com/agentstation/leadmerge/pkg/classify"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	ClientFunc            func() (leadmerge.Client, error)
	ClientWithOptionsFunc func(...leadmerge.Option) (leadmerge.Client, error)
	KeywordGroupsFunc     func(string) ([]classify.Group, error)
	LabelsFunc            func() []string
	LoggerFunc            func() *zerolog.Logger
	OutputFormatFunc      func() string
	ReportPathFunc        func() string
	VersionFunc           func() string
	CommitFunc            func() string
	DateFunc              func() string
	BuiltByFunc           func() string
}

// Client returns a client using the mock function or a default client.
func (m *Mock) Client() (leadmerge.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc()
	}
	return leadmerge.New()
}

// ClientWithOptions returns a client using the mock function or a client
// built from opts.
func (m *Mock) ClientWithOptions(opts ...leadmerge.Option) (leadmerge.Client, error) {
	if m.ClientWithOptionsFunc != nil {
		return m.ClientWithOptionsFunc(opts...)
	}
	return leadmerge.New(opts...)
}

// KeywordGroups returns groups using the mock function or nil.
func (m *Mock) KeywordGroups(path string) ([]classify.Group, error) {
	if m.KeywordGroupsFunc != nil {
		return m.KeywordGroupsFunc(path)
	}
	return nil, nil
}

// Labels returns labels using the mock function or nil.
func (m *Mock) Labels() []string {
	if m.LabelsFunc != nil {
		return m.LabelsFunc()
	}
	return nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// ReportPath returns the report path using the mock function or "".
func (m *Mock) ReportPath() string {
	if m.ReportPathFunc != nil {
		return m.ReportPathFunc()
	}
	return ""
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns the builder using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
