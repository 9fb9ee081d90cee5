package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"

	PointerFine   = "fine"
	PointerCoarse = "coarse"
)

// Config holds the unified application configuration
type Config struct {
	DataDir string
	Backend string
	Pointer string
	Mouse   bool
}

// Settings represents the config file structure
type Settings struct {
	DataDir string `yaml:"data_dir,omitempty"`
	Backend string `yaml:"backend,omitempty"`
	Pointer string `yaml:"pointer,omitempty"`
	Mouse   *bool  `yaml:"mouse,omitempty"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	ConfigPath string
	DataDir    string
	Backend    string
	Pointer    string
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	cfg := &Config{
		Backend: BackendFile,
		Pointer: PointerFine,
		Mouse:   true,
	}

	configPath := flags.ConfigPath
	if configPath == "" {
		configPath = os.Getenv("LISTO_CONFIG")
	}
	if configPath == "" {
		if p, err := GetConfigPath(); err == nil {
			configPath = p
		}
	}

	// Priority 3: config file
	if configPath != "" {
		settings, err := loadConfigFile(configPath)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading %s: %w", configPath, err)
		}
		if settings != nil {
			if settings.DataDir != "" {
				cfg.DataDir = expandPath(settings.DataDir)
			}
			if settings.Backend != "" {
				cfg.Backend = settings.Backend
			}
			if settings.Pointer != "" {
				cfg.Pointer = settings.Pointer
			}
			if settings.Mouse != nil {
				cfg.Mouse = *settings.Mouse
			}
		}
	}

	// Priority 2: Environment variables override config file
	if v := os.Getenv("LISTO_DATA_DIR"); v != "" {
		cfg.DataDir = expandPath(v)
	}
	if v := os.Getenv("LISTO_BACKEND"); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv("LISTO_POINTER"); v != "" {
		cfg.Pointer = v
	}
	if v := os.Getenv("LISTO_MOUSE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Mouse = b
		}
	}

	// Priority 1: CLI flags override everything
	if flags.DataDir != "" {
		cfg.DataDir = expandPath(flags.DataDir)
	}
	if flags.Backend != "" {
		cfg.Backend = flags.Backend
	}
	if flags.Pointer != "" {
		cfg.Pointer = flags.Pointer
	}

	if cfg.DataDir == "" {
		defaultDir, err := GetDefaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = defaultDir
	}

	cfg.Backend = strings.ToLower(strings.TrimSpace(cfg.Backend))
	cfg.Pointer = strings.ToLower(strings.TrimSpace(cfg.Pointer))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown backend and pointer values.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendFile, BackendSQLite)
	}
	switch c.Pointer {
	case PointerFine, PointerCoarse:
	default:
		return fmt.Errorf("unknown pointer modality %q (want %s or %s)", c.Pointer, PointerFine, PointerCoarse)
	}
	return nil
}

// EnsureDataDir creates the data directory if missing
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0755)
}

// GetDefaultDataDir returns the default data directory path
func GetDefaultDataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share", "listo"), nil
}

// GetConfigPath returns the path to the configuration file
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "listo", "config.yaml"), nil
}

func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile(configPath string) error {
	if configPath == "" {
		p, err := GetConfigPath()
		if err != nil {
			return err
		}
		configPath = p
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	defaultDir, err := GetDefaultDataDir()
	if err != nil {
		return err
	}

	mouse := true
	settings := Settings{
		DataDir: defaultDir,
		Backend: BackendFile,
		Pointer: PointerFine,
		Mouse:   &mouse,
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
