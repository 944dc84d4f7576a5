package main

import (
	"encoding/json"
	"errors"
	"io"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"reviewdesk/internal/config"
)

const (
	configFormatJSON = "json"
	configFormatTOML = "toml"

	configSectionServer      = "server"
	configSectionLogging     = "logging"
	configSectionUI          = "ui"
	configSectionPreferences = "preferences"
)

type configOutput struct {
	ConfigPath  string                      `json:"config_path,omitempty" toml:"config_path,omitempty"`
	Server      *effectiveServerConfig      `json:"server,omitempty" toml:"server,omitempty"`
	Logging     *effectiveLoggingConfig     `json:"logging,omitempty" toml:"logging,omitempty"`
	UI          *effectiveUIConfig          `json:"ui,omitempty" toml:"ui,omitempty"`
	Preferences *effectivePreferencesConfig `json:"preferences,omitempty" toml:"preferences,omitempty"`
}

type effectiveServerConfig struct {
	BaseURL        string `json:"base_url" toml:"base_url"`
	TokenPath      string `json:"token_path" toml:"token_path"`
	TokenHeader    string `json:"token_header" toml:"token_header"`
	TimeoutSeconds int    `json:"timeout_seconds" toml:"timeout_seconds"`
}

type effectiveLoggingConfig struct {
	Level string `json:"level" toml:"level"`
	UILog string `json:"ui_log,omitempty" toml:"ui_log,omitempty"`
}

type effectiveUIConfig struct {
	BulkPolicy     string `json:"bulk_policy" toml:"bulk_policy"`
	ShowOnboarding bool   `json:"show_onboarding" toml:"show_onboarding"`
}

type effectivePreferencesConfig struct {
	Backend string `json:"backend" toml:"backend"`
	Path    string `json:"path,omitempty" toml:"path,omitempty"`
}

func newConfigCommand(env *commandEnv) *cobra.Command {
	var (
		defaults bool
		format   string
		sections []string
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration (or the defaults)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolvedFormat, err := resolveConfigFormat(format)
			if err != nil {
				return err
			}
			selected, err := resolveConfigSections(sections)
			if err != nil {
				return err
			}
			cfg := config.DefaultCoreConfig()
			if !defaults {
				cfg, err = env.config()
				if err != nil {
					return err
				}
			}
			out, err := buildConfigOutput(cfg, env.flags.configPath, selected)
			if err != nil {
				return err
			}
			return writeConfigOutput(env.wiring.stdout, resolvedFormat, out)
		},
	}
	cmd.Flags().BoolVar(&defaults, "default", false, "print default config values")
	cmd.Flags().StringVar(&format, "format", configFormatJSON, "output format: json|toml")
	cmd.Flags().StringSliceVar(&sections, "section", nil, "section to print: server|logging|ui|preferences|all (repeatable)")
	return cmd
}

func buildConfigOutput(cfg config.CoreConfig, configPath string, sections map[string]struct{}) (configOutput, error) {
	out := configOutput{ConfigPath: strings.TrimSpace(configPath)}
	if out.ConfigPath == "" {
		path, err := config.CoreConfigPath()
		if err != nil {
			return configOutput{}, err
		}
		out.ConfigPath = path
	}
	if sectionSelected(sections, configSectionServer) {
		tokenPath, err := cfg.ResolveTokenPath()
		if err != nil {
			return configOutput{}, err
		}
		out.Server = &effectiveServerConfig{
			BaseURL:        cfg.BaseURL(),
			TokenPath:      tokenPath,
			TokenHeader:    cfg.TokenHeader(),
			TimeoutSeconds: int(cfg.Timeout().Seconds()),
		}
	}
	if sectionSelected(sections, configSectionLogging) {
		out.Logging = &effectiveLoggingConfig{Level: cfg.LogLevel()}
		if path, err := config.UILogPath(); err == nil {
			out.Logging.UILog = path
		}
	}
	if sectionSelected(sections, configSectionUI) {
		out.UI = &effectiveUIConfig{
			BulkPolicy:     cfg.BulkPolicy(),
			ShowOnboarding: cfg.ShowOnboarding(),
		}
	}
	if sectionSelected(sections, configSectionPreferences) {
		out.Preferences = &effectivePreferencesConfig{Backend: cfg.PreferencesBackend()}
		pathFn := config.PreferencesDBPath
		if cfg.PreferencesBackend() == config.PreferencesBackendFile {
			pathFn = config.PreferencesFilePath
		}
		if path, err := pathFn(); err == nil {
			out.Preferences.Path = path
		}
	}
	return out, nil
}

func writeConfigOutput(out io.Writer, format string, payload any) error {
	switch format {
	case configFormatJSON:
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(payload)
	case configFormatTOML:
		data, err := toml.Marshal(payload)
		if err != nil {
			return err
		}
		if len(data) == 0 || data[len(data)-1] != '\n' {
			data = append(data, '\n')
		}
		_, err = out.Write(data)
		return err
	default:
		return errors.New("unsupported format")
	}
}

func resolveConfigFormat(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", configFormatJSON:
		return configFormatJSON, nil
	case configFormatTOML:
		return configFormatTOML, nil
	default:
		return "", errors.New("invalid format: must be json or toml")
	}
}

func allConfigSections() map[string]struct{} {
	return map[string]struct{}{
		configSectionServer:      {},
		configSectionLogging:     {},
		configSectionUI:          {},
		configSectionPreferences: {},
	}
}

func resolveConfigSections(values []string) (map[string]struct{}, error) {
	if len(values) == 0 {
		return allConfigSections(), nil
	}
	out := map[string]struct{}{}
	for _, raw := range values {
		switch section := strings.ToLower(strings.TrimSpace(raw)); section {
		case "all":
			return allConfigSections(), nil
		case configSectionServer, configSectionLogging, configSectionUI, configSectionPreferences:
			out[section] = struct{}{}
		case "prefs":
			out[configSectionPreferences] = struct{}{}
		default:
			return nil, errors.New("invalid section: must be server, logging, ui, preferences, or all")
		}
	}
	return out, nil
}

func sectionSelected(sections map[string]struct{}, section string) bool {
	_, ok := sections[section]
	return ok
}
