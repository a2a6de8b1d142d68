package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	domainErrors "github.com/thomas-vilte/gh-issues-importer/internal/errors"
	"github.com/thomas-vilte/gh-issues-importer/internal/models"
	"github.com/thomas-vilte/gh-issues-importer/internal/parser"
)

const (
	dirName  = ".gh-issues-importer"
	fileName = "config.json"
)

type Config struct {
	// Auth is "user:secret" or a bare token, used when --auth and
	// GITHUB_AUTH are both absent.
	Auth            string `json:"auth,omitempty"`
	Language        string `json:"language"`
	DefaultParser   string `json:"default_parser"`
	DefaultTemplate string `json:"default_template,omitempty"`
	Concurrency     int    `json:"concurrency"`
	// APIURL points the client at a GitHub Enterprise instance.
	APIURL string `json:"api_url,omitempty"`

	PathFile string `json:"-"`
}

// DefaultPath returns ~/.gh-issues-importer/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", domainErrors.ErrInvalidConfig.WithError(err)
	}
	if home == "" {
		return "", domainErrors.ErrInvalidConfig.WithError(fmt.Errorf("home directory is not set"))
	}
	return filepath.Join(home, dirName, fileName), nil
}

// LoadConfig reads the config at path. A directory gets the standard file
// name appended; a missing file is created with defaults.
func LoadConfig(path string) (*Config, error) {
	configPath := path
	if filepath.Ext(path) != ".json" {
		configPath = filepath.Join(path, dirName, fileName)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig(configPath)
	} else if err != nil {
		return nil, domainErrors.ErrInvalidConfig.WithError(err).WithContext("path", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, domainErrors.ErrInvalidConfig.WithError(err).WithContext("path", configPath)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, domainErrors.ErrInvalidConfig.WithError(err).WithContext("path", configPath)
	}
	config.PathFile = configPath

	applyDefaults(&config)
	if err := validateConfig(&config); err != nil {
		return nil, domainErrors.ErrInvalidConfig.WithError(err).WithContext("path", configPath)
	}

	return &config, nil
}

func newDefaultConfig(path string) *Config {
	return &Config{
		Language:      LangEN,
		DefaultParser: parser.DefaultName,
		Concurrency:   models.DefaultConcurrency,
		PathFile:      path,
	}
}

func createDefaultConfig(path string) (*Config, error) {
	config := newDefaultConfig(path)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, domainErrors.ErrInvalidConfig.WithError(err).WithContext("path", path)
	}

	if err := write(config); err != nil {
		return nil, err
	}

	return config, nil
}

// applyDefaults fills fields older config files may lack.
func applyDefaults(config *Config) {
	if config.Language == "" {
		config.Language = LangEN
	}
	if config.DefaultParser == "" {
		config.DefaultParser = parser.DefaultName
	}
	if config.Concurrency == 0 {
		config.Concurrency = models.DefaultConcurrency
	}
}

func SaveConfig(config *Config) error {
	if err := validateConfig(config); err != nil {
		return domainErrors.ErrInvalidConfig.WithError(err)
	}

	if config.PathFile == "" {
		return domainErrors.ErrInvalidConfig.WithError(fmt.Errorf("config file path is not set"))
	}

	return write(config)
}

func write(config *Config) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return domainErrors.ErrInvalidConfig.WithError(err)
	}

	// the file may hold a token
	if err := os.WriteFile(config.PathFile, data, 0600); err != nil {
		return domainErrors.ErrInvalidConfig.WithError(err).WithContext("path", config.PathFile)
	}

	return nil
}

func validateConfig(config *Config) error {
	if config.Concurrency < 0 {
		return fmt.Errorf("concurrency must be positive, got %d", config.Concurrency)
	}
	if !IsSupportedLanguage(config.Language) {
		return fmt.Errorf("unsupported language %q", config.Language)
	}
	if config.DefaultParser == "" {
		return fmt.Errorf("default_parser cannot be empty")
	}
	return nil
}
