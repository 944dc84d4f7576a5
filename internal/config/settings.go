package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	defaultBaseURL        = "http://127.0.0.1:8000"
	defaultTokenHeader    = "X-CSRFToken"
	defaultTimeoutSeconds = 10
)

const (
	BulkPolicyReload = "reload"
	BulkPolicyPatch  = "patch"

	PreferencesBackendBbolt = "bbolt"
	PreferencesBackendFile  = "file"
)

type CoreConfig struct {
	Server      ServerConfig      `toml:"server"`
	Logging     LoggingConfig     `toml:"logging"`
	UI          UIConfig          `toml:"ui"`
	Preferences PreferencesConfig `toml:"preferences"`
}

type ServerConfig struct {
	BaseURL        string `toml:"base_url"`
	TokenPath      string `toml:"token_path"`
	TokenHeader    string `toml:"token_header"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

type UIConfig struct {
	BulkPolicy     string `toml:"bulk_policy"`
	ShowOnboarding *bool  `toml:"show_onboarding"`
}

type PreferencesConfig struct {
	Backend string `toml:"backend"`
}

func DefaultCoreConfig() CoreConfig {
	return CoreConfig{
		Server: ServerConfig{
			BaseURL:        defaultBaseURL,
			TokenHeader:    defaultTokenHeader,
			TimeoutSeconds: defaultTimeoutSeconds,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		UI: UIConfig{
			BulkPolicy: BulkPolicyReload,
		},
		Preferences: PreferencesConfig{
			Backend: PreferencesBackendBbolt,
		},
	}
}

func LoadCoreConfig() (CoreConfig, error) {
	path, err := CoreConfigPath()
	if err != nil {
		return CoreConfig{}, err
	}
	return LoadCoreConfigFromPath(path)
}

func LoadCoreConfigFromPath(path string) (CoreConfig, error) {
	cfg := DefaultCoreConfig()
	if err := readTOML(path, &cfg); err != nil {
		return CoreConfig{}, err
	}
	return cfg, nil
}

// BaseURL returns the service root without a trailing slash.
func (c CoreConfig) BaseURL() string {
	raw := strings.TrimRight(strings.TrimSpace(c.Server.BaseURL), "/")
	if raw == "" {
		return defaultBaseURL
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		raw = "http://" + raw
	}
	return raw
}

func (c CoreConfig) TokenHeader() string {
	header := strings.TrimSpace(c.Server.TokenHeader)
	if header == "" {
		return defaultTokenHeader
	}
	return header
}

func (c CoreConfig) Timeout() time.Duration {
	if c.Server.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}

func (c CoreConfig) ResolveTokenPath() (string, error) {
	path := strings.TrimSpace(c.Server.TokenPath)
	if path == "" {
		return TokenPath()
	}
	return resolveConfigPath(path)
}

func (c CoreConfig) LogLevel() string {
	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		return "info"
	}
	return level
}

func (c CoreConfig) BulkPolicy() string {
	switch strings.ToLower(strings.TrimSpace(c.UI.BulkPolicy)) {
	case BulkPolicyPatch:
		return BulkPolicyPatch
	default:
		return BulkPolicyReload
	}
}

func (c CoreConfig) ShowOnboarding() bool {
	if c.UI.ShowOnboarding == nil {
		return true
	}
	return *c.UI.ShowOnboarding
}

func (c CoreConfig) PreferencesBackend() string {
	switch strings.ToLower(strings.TrimSpace(c.Preferences.Backend)) {
	case PreferencesBackendFile:
		return PreferencesBackendFile
	default:
		return PreferencesBackendBbolt
	}
}

func readTOML(path string, out any) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return errors.New("path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil
	}
	return toml.Unmarshal(data, out)
}

func resolveConfigPath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", errors.New("path is required")
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[2:]), nil
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	dataDir, err := DataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dataDir, path), nil
}
