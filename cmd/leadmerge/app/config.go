package app

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/leadmerge/internal/config"
	"github.com/agentstation/leadmerge/pkg/constants"
	"github.com/agentstation/leadmerge/pkg/errors"
)

// envPrefix namespaces environment variables, e.g. LEADMERGE_KEY_COLUMN.
const envPrefix = "LEADMERGE"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string
	Report  string

	// Config file
	ConfigFile string

	// Source and output settings
	Header         bool
	KeyColumn      int
	Encoding       string
	OutputEncoding string
	Sheet          string
	Comma          string
	Labels         []string
	GroupsFile     string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (bound in setupCommand)
// 2. Environment variables (LEADMERGE_*)
// 3. .env files
// 4. Config file (./.leadmerge.yaml or ~/.leadmerge.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	viper.SetEnvPrefix(envPrefix)
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults()

	if err := readConfigFile(viper.GetString("config")); err != nil {
		return nil, err
	}
	return configFromViper(), nil
}

// readConfigFile reads path, or searches the standard locations when path
// is empty. A missing config file is not an error; a malformed one is.
func readConfigFile(path string) error {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType(constants.DefaultConfigType)
		viper.SetConfigName(constants.DefaultConfigName)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path == "" && errors.As(err, &notFound) {
			return nil
		}
		return errors.NewConfigError("config", "reading config file", err)
	}
	return nil
}

func setDefaults() {
	viper.SetDefault("key_column", constants.DefaultKeyColumn)
	viper.SetDefault("encoding", constants.DefaultEncoding)
	viper.SetDefault("sheet", constants.DefaultSheet)
	viper.SetDefault("comma", string(constants.CSVComma))
}

// configFromViper builds a Config from the current viper state.
func configFromViper() *Config {
	return &Config{
		Verbose: viper.GetBool("verbose"),
		Quiet:   viper.GetBool("quiet"),
		NoColor: viper.GetBool("no_color"),
		Format:  viper.GetString("format"),
		Report:  viper.GetString("report"),

		ConfigFile: viper.ConfigFileUsed(),

		Header:         viper.GetBool("header"),
		KeyColumn:      viper.GetInt("key_column"),
		Encoding:       viper.GetString("encoding"),
		OutputEncoding: viper.GetString("output_encoding"),
		Sheet:          viper.GetString("sheet"),
		Comma:          viper.GetString("comma"),
		Labels:         config.Labels(),
		GroupsFile:     viper.GetString(config.KeyGroupsFile),

		LogLevel:  firstNonEmpty(viper.GetString("log_level"), os.Getenv("LOG_LEVEL")),
		LogFormat: getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}
}

// loadEnvFiles loads environment variables from .env files.
func loadEnvFiles() {
	// .env.local overrides .env
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
