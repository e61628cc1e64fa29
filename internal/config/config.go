package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"transaction-tracker/internal/domain"
)

// Config holds application configuration
type Config struct {
	DataDir        string // base directory for the database, sources file and output
	DBPath         string
	SourcesFile    string
	OutputDir      string
	SplitNamespace string // exchange split events are looked up in
	LogLevel       string
	LogPretty      bool
}

// Load reads configuration from environment variables, after loading a .env
// file from the working directory if there is one.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dataDir := getEnv("DATA_DIR", "./data")
	cfg := &Config{
		DataDir:        dataDir,
		DBPath:         getEnv("DB_PATH", filepath.Join(dataDir, "tracker.db")),
		SourcesFile:    getEnv("SOURCES_FILE", filepath.Join(dataDir, "sources.yaml")),
		OutputDir:      getEnv("OUTPUT_DIR", filepath.Join(dataDir, "output")),
		SplitNamespace: getEnv("SPLIT_NAMESPACE", "NASDAQ"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogPretty:      getEnvAsBool("LOG_PRETTY", false),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the loaded values.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH must not be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR must not be empty")
	}
	return nil
}

// PortfolioFile is where the investing.com export is written.
func (c *Config) PortfolioFile() string {
	return filepath.Join(c.OutputDir, "investing_portfolio.csv")
}

type sourcesFile struct {
	Sources []domain.Source `yaml:"sources"`
}

// LoadSources reads the list of broker exports to import. Relative paths are
// resolved against the directory of the sources file.
func LoadSources(path string) ([]domain.Source, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources file: %w", err)
	}

	var file sourcesFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sources file %s: %w", path, err)
	}
	if len(file.Sources) == 0 {
		return nil, fmt.Errorf("sources file %s lists no sources", path)
	}

	base := filepath.Dir(path)
	for i, src := range file.Sources {
		if src.Account == "" || src.Path == "" {
			return nil, fmt.Errorf("source %d in %s needs both account and path", i, path)
		}
		if !filepath.IsAbs(src.Path) {
			file.Sources[i].Path = filepath.Join(base, src.Path)
		}
	}
	return file.Sources, nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
