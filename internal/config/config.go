// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/handlr-go/handlr/internal/issue"

	"github.com/pelletier/go-toml/v2"
	"github.com/rkoesters/xdg/basedir"
	"github.com/spf13/viper"
)

const (
	// AppName is the application name.
	AppName = "handlr"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "handlr"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "toml"
	// EnvPrefix prefixes environment overrides (HANDLR_ENABLE_SELECTOR, ...).
	EnvPrefix = "HANDLR"
	// MimeappsFileName is the freedesktop user override file.
	MimeappsFileName = "mimeapps.list"

	fileHeader = "# handlr configuration\n# Environment variables prefixed with HANDLR_ override these values.\n\n"
)

// ConfigHome returns $XDG_CONFIG_HOME, defaulting to ~/.config.
func ConfigHome() string {
	return basedir.ConfigHome
}

// ConfigDir returns the handlr configuration directory, $XDG_CONFIG_HOME/handlr.
//
//nolint:revive // ConfigDir is more descriptive than Dir for external callers
func ConfigDir() string {
	if configDirOverride != "" {
		return configDirOverride
	}
	return filepath.Join(ConfigHome(), AppName)
}

// MimeappsPath returns the user override file, $XDG_CONFIG_HOME/mimeapps.list.
func MimeappsPath() string {
	return filepath.Join(ConfigHome(), MimeappsFileName)
}

// Path returns the config file that Load would read for opts.
func Path(opts LoadOptions) (string, error) {
	if opts.ConfigFilePath != "" {
		path, err := opts.ConfigFilePath.Expand()
		if err != nil {
			return "", err
		}
		return path.String(), nil
	}
	return filepath.Join(configDirWithOverride(opts.ConfigDirPath.String()), ConfigFileName+"."+ConfigFileExt), nil
}

// loadWithOptions reads defaults, then the config file, then HANDLR_*
// environment overrides. Without an explicit file the default location is
// created with default values on first use.
func loadWithOptions(ctx context.Context, opts LoadOptions) (*Config, string, error) {
	select {
	case <-ctx.Done():
		return nil, "", fmt.Errorf("load config canceled: %w", ctx.Err())
	default:
	}
	if err := opts.Validate(); err != nil {
		return nil, "", err
	}

	v := viper.New()
	v.SetConfigType(ConfigFileExt)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("enable_selector", defaults.EnableSelector)
	v.SetDefault("selector", defaults.Selector.String())
	v.SetDefault("term_exec_args", defaults.TermExecArgs)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)
	v.SetDefault("ui.theme", defaults.UI.Theme)

	path, err := Path(opts)
	if err != nil {
		return nil, "", err
	}

	if opts.ConfigFilePath != "" {
		if !fileExists(path) {
			return nil, "", issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(path).
				WithSuggestion("Verify the file path is correct").
				WithSuggestion("Use 'handlr config show' to see the default configuration").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(fmt.Errorf("config file not found: %s", path)).
				BuildError()
		}
	} else if !fileExists(path) {
		if err := writeDefault(path); err != nil {
			return nil, "", issue.NewErrorContext().
				WithOperation("create default configuration").
				WithResource(path).
				WithSuggestion("Check that the config directory is writable").
				WithIssue(issue.ConfigLoadFailedId).
				Wrap(err).
				BuildError()
		}
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, "", issue.NewErrorContext().
			WithOperation("load configuration").
			WithResource(path).
			WithSuggestion("Check that the file contains valid TOML").
			WithSuggestion("See 'handlr config --help' for configuration options").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(err).
			BuildError()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("failed to parse config: %w", err)
	}
	if ok, errs := cfg.IsValid(); !ok {
		return nil, "", issue.NewErrorContext().
			WithOperation("validate configuration").
			WithResource(path).
			WithSuggestion("Fix the reported fields or run 'handlr config init --force'").
			WithIssue(issue.ConfigLoadFailedId).
			Wrap(errs[0]).
			BuildError()
	}

	return &cfg, path, nil
}

// configDirWithOverride resolves the configuration directory, honoring
// explicit provider options before XDG defaults.
func configDirWithOverride(configDirPath string) string {
	if configDirPath != "" {
		return configDirPath
	}
	return ConfigDir()
}

// fileExists checks if a file exists and is not a directory
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	return err == nil && !info.IsDir()
}

func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return Save(path, DefaultConfig())
}

// CreateDefaultConfig writes the default config file for opts. An existing
// file is left alone unless force is set. It returns the file path.
func CreateDefaultConfig(opts LoadOptions, force bool) (string, error) {
	path, err := Path(opts)
	if err != nil {
		return "", err
	}
	if fileExists(path) && !force {
		return path, nil
	}
	return path, writeDefault(path)
}

// Save writes cfg as TOML to path.
func Save(path string, cfg *Config) error {
	content, err := GenerateTOML(cfg)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// GenerateTOML renders cfg as a commented TOML document.
func GenerateTOML(cfg *Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return fileHeader + string(data), nil
}
