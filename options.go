package leadmerge

import (
	"github.com/agentstation/leadmerge/pkg/charset"
	"github.com/agentstation/leadmerge/pkg/constants"
	"github.com/agentstation/leadmerge/pkg/errors"
	"github.com/agentstation/leadmerge/pkg/records"
	"github.com/agentstation/leadmerge/pkg/save"
	"github.com/agentstation/leadmerge/pkg/sources"
)

// config holds the settings shared by every operation of a Client.
type config struct {
	header         bool
	keyColumn      int
	encoding       string
	outputEncoding string
	sheet          string
	comma          rune
	labels         []string
}

func defaultConfig() *config {
	return &config{
		keyColumn:      constants.DefaultKeyColumn,
		encoding:       constants.DefaultEncoding,
		outputEncoding: constants.DefaultEncoding,
		sheet:          constants.DefaultSheet,
		comma:          constants.CSVComma,
	}
}

func (c *config) sourceOptions() []sources.Option {
	return []sources.Option{
		sources.WithHeader(c.header),
		sources.WithEncoding(c.encoding),
		sources.WithSheet(c.sheet),
		sources.WithComma(c.comma),
	}
}

func (c *config) saveOptions(path string) []save.Option {
	return []save.Option{
		save.WithPath(path),
		save.WithEncoding(c.outputEncoding),
		save.WithComma(c.comma),
	}
}

// Option is a function that configures a Client.
type Option func(*config) error

// WithHeader treats the first row of every input as a header and copies it
// to every output.
func WithHeader(header bool) Option {
	return func(c *config) error {
		c.header = header
		return nil
	}
}

// WithKeyColumn sets the zero-based identity column.
func WithKeyColumn(column int) Option {
	return func(c *config) error {
		if err := records.Column(column).Validate("key_column"); err != nil {
			return err
		}
		c.keyColumn = column
		return nil
	}
}

// WithEncoding sets the text encoding of CSV inputs. Outputs use the same
// encoding unless WithOutputEncoding is also given.
func WithEncoding(name string) Option {
	return func(c *config) error {
		n, err := charset.Normalize(name)
		if err != nil {
			return err
		}
		if c.outputEncoding == c.encoding {
			c.outputEncoding = n
		}
		c.encoding = n
		return nil
	}
}

// WithOutputEncoding sets the text encoding of CSV outputs.
func WithOutputEncoding(name string) Option {
	return func(c *config) error {
		n, err := charset.Normalize(name)
		if err != nil {
			return err
		}
		c.outputEncoding = n
		return nil
	}
}

// WithSheet selects the worksheet read from XLSX inputs.
func WithSheet(sheet string) Option {
	return func(c *config) error {
		c.sheet = sheet
		return nil
	}
}

// WithComma sets the CSV field delimiter of inputs and outputs.
func WithComma(comma rune) Option {
	return func(c *config) error {
		if comma == '"' || comma == '\r' || comma == '\n' {
			return errors.NewValidationError("comma", string(comma), "invalid field delimiter")
		}
		c.comma = comma
		return nil
	}
}

// WithLabels sets the provenance labels of MergeSources inputs, by position.
func WithLabels(labels ...string) Option {
	return func(c *config) error {
		c.labels = labels
		return nil
	}
}
