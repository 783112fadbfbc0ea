// Package config loads and mutates the YAML configuration file.
package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/jswirl/ollash/internal/domain"
	"github.com/jswirl/ollash/internal/ports"
)

// FileStore reads ~/.ollash/config.yaml (overridable via OLLASH_CONFIG or
// an explicit path) and writes embedded defaults on first run.
type FileStore struct {
	overridePath string
}

// NewFileStore builds a store; an empty path selects the default location.
func NewFileStore(path string) *FileStore {
	return &FileStore{overridePath: path}
}

// Load implements ports.ConfigStore.
func (s *FileStore) Load(context.Context) (domain.Config, error) {
	path := s.Path()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := s.save(cfg); err != nil {
				return domain.Config{}, fmt.Errorf("write default config: %w", err)
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Get implements ports.ConfigStore. Unknown keys are rejected.
func (s *FileStore) Get(ctx context.Context, key string) (string, error) {
	cfg, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	switch domain.ConfigKey(key) {
	case domain.KeyModel:
		return cfg.GetModel(), nil
	case domain.KeyURL:
		return cfg.GetURL(), nil
	case domain.KeyTemperature:
		return strconv.FormatFloat(cfg.GetTemperature(), 'g', -1, 64), nil
	case domain.KeySafetyLevel:
		return string(cfg.GetSafetyLevel()), nil
	case domain.KeyAutoConfirm:
		return strconv.FormatBool(cfg.AutoConfirm), nil
	case domain.KeyHistoryEnabled:
		return strconv.FormatBool(cfg.HistoryEnabled), nil
	case domain.KeyMaxHistory:
		return strconv.Itoa(cfg.GetMaxHistory()), nil
	case domain.KeyVerbose:
		return strconv.FormatBool(cfg.Verbose), nil
	default:
		return "", unknownKey(key)
	}
}

// Set implements ports.ConfigStore. Values are validated before the file
// is rewritten.
func (s *FileStore) Set(ctx context.Context, key, value string) error {
	cfg, err := s.Load(ctx)
	if err != nil {
		return err
	}
	switch domain.ConfigKey(key) {
	case domain.KeyModel:
		if value == "" {
			return fmt.Errorf("model must not be empty")
		}
		cfg.Model = value
	case domain.KeyURL:
		if value == "" {
			return fmt.Errorf("url must not be empty")
		}
		cfg.URL = value
	case domain.KeyTemperature:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 || f > 2 {
			return fmt.Errorf("temperature must be a number in (0, 2], got %q", value)
		}
		cfg.Temperature = f
	case domain.KeySafetyLevel:
		level, err := domain.ParseSafetyLevel(value)
		if err != nil {
			return err
		}
		cfg.SafetyLevel = level
	case domain.KeyAutoConfirm:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("auto_confirm must be a boolean, got %q", value)
		}
		cfg.AutoConfirm = b
	case domain.KeyHistoryEnabled:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("history_enabled must be a boolean, got %q", value)
		}
		cfg.HistoryEnabled = b
	case domain.KeyMaxHistory:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return fmt.Errorf("max_history must be a positive integer, got %q", value)
		}
		cfg.MaxHistory = n
	case domain.KeyVerbose:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("verbose must be a boolean, got %q", value)
		}
		cfg.Verbose = b
	default:
		return unknownKey(key)
	}
	return s.save(cfg)
}

// Path resolves the active config file location.
func (s *FileStore) Path() string {
	if s.overridePath != "" {
		return s.overridePath
	}
	if custom := os.Getenv("OLLASH_CONFIG"); custom != "" {
		return custom
	}
	return filepath.Join(userHomeDir(), ".ollash", "config.yaml")
}

func (s *FileStore) save(cfg domain.Config) error {
	path := s.Path()
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return err
	}
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePerm)
}

func defaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Model:               domain.DefaultModel,
		URL:                 domain.DefaultBackendURL,
		Temperature:         domain.DefaultTemperature,
		SafetyLevel:         domain.SafetyMedium,
		AutoConfirm:         false,
		HistoryEnabled:      true,
		MaxHistory:          domain.DefaultMaxHistory,
		Verbose:             false,
	}
}

func unknownKey(key string) error {
	return fmt.Errorf("unknown config key %q (valid keys: %v)", key, domain.ConfigKeys())
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.ConfigStore = (*FileStore)(nil)
