// Package constants provides shared constants used throughout the leadmerge codebase.
// This includes file permissions, field separators, provenance labels and the
// mobile number pattern that must stay consistent across engines and the CLI.
package constants

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Field separators
const (
	// ContactSeparator separates phone numbers inside a contact field
	ContactSeparator = ";"

	// ProvenanceSeparator joins source labels in a merged row's provenance column.
	// It is the full-width semicolon used by the lead sheets this tool reconciles.
	ProvenanceSeparator = "；"

	// CSVComma is the default CSV field delimiter
	CSVComma = ','
)

// Mobile number rules
const (
	// MobilePattern matches an 11-digit mobile number starting with 1
	MobilePattern = `^1\d{10}$`

	// MobileLength is the number of digits in a mobile number
	MobileLength = 11
)

// Default values
const (
	// DefaultKeyColumn is the identity column used when none is configured
	DefaultKeyColumn = 0

	// DefaultSheet is the sheet read from spreadsheet sources when none is named.
	// Empty means the first sheet of the workbook.
	DefaultSheet = ""

	// DefaultEncoding is the text encoding of sources and destinations
	DefaultEncoding = "utf-8"

	// DefaultFirstLabel is the provenance label of the first source in a cross-source merge
	DefaultFirstLabel = "source A"

	// DefaultSecondLabel is the provenance label of the second source in a cross-source merge
	DefaultSecondLabel = "source B"

	// TempFilePattern is the pattern for temporary output files before publication
	TempFilePattern = ".leadmerge-*.tmp"
)

// Path constants
const (
	// DefaultConfigName is the config file name searched in $HOME and the working directory
	DefaultConfigName = ".leadmerge"

	// DefaultConfigType is the config file format
	DefaultConfigType = "yaml"
)
