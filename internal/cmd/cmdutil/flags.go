// Package cmdutil provides the shared flag sets of leadmerge commands and
// binds them to configuration keys.
package cmdutil

import (
	"unicode/utf8"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentstation/leadmerge/pkg/constants"
	"github.com/agentstation/leadmerge/pkg/errors"
)

// Flag names.
const (
	FlagConfig         = "config"
	FlagVerbose        = "verbose"
	FlagQuiet          = "quiet"
	FlagNoColor        = "no-color"
	FlagFormat         = "format"
	FlagLogLevel       = "log-level"
	FlagReport         = "report"
	FlagHeader         = "header"
	FlagKeyColumn      = "key-column"
	FlagEncoding       = "encoding"
	FlagOutputEncoding = "output-encoding"
	FlagSheet          = "sheet"
	FlagComma          = "comma"
	FlagGroups         = "groups"
)

// configKeys maps flag names to the configuration keys they override.
var configKeys = map[string]string{
	FlagVerbose:        "verbose",
	FlagQuiet:          "quiet",
	FlagNoColor:        "no_color",
	FlagFormat:         "format",
	FlagLogLevel:       "log_level",
	FlagReport:         "report",
	FlagHeader:         "header",
	FlagKeyColumn:      "key_column",
	FlagEncoding:       "encoding",
	FlagOutputEncoding: "output_encoding",
	FlagSheet:          "sheet",
	FlagComma:          "comma",
	FlagGroups:         "groups_file",
}

// ConfigKey returns the configuration key a flag overrides.
func ConfigKey(flag string) (string, bool) {
	key, ok := configKeys[flag]
	return key, ok
}

// GlobalFlagSet returns the flags shared by every command.
func GlobalFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("global", pflag.ContinueOnError)
	fs.String(FlagConfig, "", "config file (default is $HOME/.leadmerge.yaml or ./.leadmerge.yaml)")
	fs.BoolP(FlagVerbose, "v", false, "verbose output (shortcut for --log-level=debug)")
	fs.BoolP(FlagQuiet, "q", false, "minimal output (shortcut for --log-level=warn)")
	fs.Bool(FlagNoColor, false, "disable colored output")
	fs.StringP(FlagFormat, "o", "", "result format: table, json, yaml, wide")
	fs.String(FlagLogLevel, "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
	fs.String(FlagReport, "", "write a markdown run report to this path")
	return fs
}

// SourceFlagSet returns the flags that describe how inputs are read and
// outputs written.
func SourceFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("source", pflag.ContinueOnError)
	fs.BoolP(FlagHeader, "H", false, "treat the first row of every input as a header and copy it to outputs")
	fs.IntP(FlagKeyColumn, "k", constants.DefaultKeyColumn, "zero-based identity column")
	fs.StringP(FlagEncoding, "e", constants.DefaultEncoding, "CSV input encoding: utf-8, utf-8-bom, gbk, gb18030")
	fs.String(FlagOutputEncoding, "", "CSV output encoding (default: the input encoding)")
	fs.String(FlagSheet, constants.DefaultSheet, "worksheet read from .xlsx inputs (default: the first sheet)")
	fs.String(FlagComma, string(constants.CSVComma), `CSV field delimiter, "tab" for tab-separated files`)
	return fs
}

// Bind binds every known flag of cmd to its configuration key, so that a
// flag given on the command line overrides the environment and the config
// file.
func Bind(cmd *cobra.Command) error {
	var err error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		key, ok := configKeys[f.Name]
		if !ok || err != nil {
			return
		}
		err = viper.BindPFlag(key, f)
	})
	if err != nil {
		return errors.NewConfigError("flags", "binding flags", err)
	}
	return nil
}

// Comma parses a field delimiter flag value.
func Comma(value string) (rune, error) {
	switch value {
	case "tab", `\t`:
		return '\t', nil
	case "":
		return constants.CSVComma, nil
	}
	r, size := utf8.DecodeRuneInString(value)
	if r == utf8.RuneError || size != len(value) {
		return 0, errors.NewValidationError(FlagComma, value, "delimiter must be a single character")
	}
	return r, nil
}

// AddColumnsFlag adds a list-of-columns flag to cmd.
func AddColumnsFlag(cmd *cobra.Command, p *[]int, name, short, usage string) {
	cmd.Flags().IntSliceVarP(p, name, short, nil, usage)
}
