// ABOUTME: PlainFit configuration loaded from YAML and PLAINFIT_* environment variables.
// ABOUTME: Resolves the data directory and opens the storage layer.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/harperreed/plainfit/internal/storage"
)

const (
	keyDataDir  = "data_dir"
	keyLogLevel = "log_level"
	keyLogFile  = "log_file"
	keyLogJSON  = "log_json"
	keyLogErr   = "log_stderr"
	keySeed     = "seed"

	envPrefix = "PLAINFIT"

	// DBFileName is the database file inside the data directory.
	DBFileName = "plainfit.db"
)

// Config stores plainfit settings.
type Config struct {
	// DataDir is the directory holding plainfit.db. Supports ~ expansion.
	// Defaults to ~/.local/share/plainfit.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir,omitempty"`

	// LogLevel is one of trace, debug, info, warn, error.
	LogLevel string `mapstructure:"log_level" yaml:"log_level,omitempty"`

	// LogFile enables rotated file logging when set. Logs go to stderr otherwise.
	LogFile string `mapstructure:"log_file" yaml:"log_file,omitempty"`

	LogJSON bool `mapstructure:"log_json" yaml:"log_json,omitempty"`

	// LogStderr copies file logs to stderr as well.
	LogStderr bool `mapstructure:"log_stderr" yaml:"log_stderr,omitempty"`

	// Seed loads the built-in catalog into an empty database on startup.
	Seed bool `mapstructure:"seed" yaml:"seed"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() *Config {
	return &Config{
		LogLevel: "warn",
		Seed:     true,
	}
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// DBPath returns the database file location.
func (c *Config) DBPath() string {
	return filepath.Join(c.GetDataDir(), DBFileName)
}

// GetLogFile returns the log file path with ~ expanded, or "" for stderr.
func (c *Config) GetLogFile() string {
	return ExpandPath(c.LogFile)
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage opens the SQLite repository in the data directory.
func (c *Config) OpenStorage() (storage.Repository, error) {
	db, err := storage.Open(c.DBPath())
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return db, nil
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "plainfit", "config.yaml")
}

// Load reads config from the default path.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom reads config from path, layering PLAINFIT_* environment
// variables over the file and defaults over both. A missing file is not
// an error.
func LoadFrom(path string) (*Config, error) {
	defaults := Defaults()

	v := viper.New()
	v.SetDefault(keyDataDir, defaults.DataDir)
	v.SetDefault(keyLogLevel, defaults.LogLevel)
	v.SetDefault(keyLogFile, defaults.LogFile)
	v.SetDefault(keyLogJSON, defaults.LogJSON)
	v.SetDefault(keyLogErr, defaults.LogStderr)
	v.SetDefault(keySeed, defaults.Seed)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !isNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func isNotExist(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

// Save writes config to the default path.
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo writes config as YAML to path.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
