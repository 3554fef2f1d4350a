// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/handlr-go/handlr/internal/tui"

	"mvdan.cc/sh/v3/shell"
)

const (
	// DefaultSelector is the rofi invocation used when prompting is enabled.
	DefaultSelector SelectorCommand = "rofi -dmenu -i -p 'Open With: '"
	// DefaultTermExecArgs is passed between the terminal emulator and the
	// program when launching Terminal=true applications.
	DefaultTermExecArgs = "-e"
)

var (
	// ErrInvalidSelectorCommand is the sentinel error wrapped by InvalidSelectorCommandError.
	ErrInvalidSelectorCommand = errors.New("invalid selector command")
	// ErrInvalidTheme is returned when ui.theme names an unknown theme.
	ErrInvalidTheme = errors.New("invalid theme")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Config is the handlr configuration file (handlr.toml).
	Config struct {
		// EnableSelector prompts with Selector when a MIME type has several defaults.
		EnableSelector bool `toml:"enable_selector" mapstructure:"enable_selector"`
		// Selector is the external picker command line.
		Selector SelectorCommand `toml:"selector" mapstructure:"selector"`
		// TermExecArgs separates the terminal emulator from the program it runs.
		TermExecArgs string `toml:"term_exec_args" mapstructure:"term_exec_args"`
		// UI holds presentation settings.
		UI UIConfig `toml:"ui" mapstructure:"ui"`
	}

	// UIConfig holds presentation settings.
	UIConfig struct {
		// Verbose enables debug logging and detailed error output.
		Verbose bool `toml:"verbose" mapstructure:"verbose"`
		// Theme is the huh theme of the built-in TUI selector.
		Theme string `toml:"theme" mapstructure:"theme"`
	}

	// SelectorCommand is a shell-style command line such as "fzf" or
	// "rofi -dmenu -p 'Open With: '".
	SelectorCommand string

	// InvalidSelectorCommandError is returned when a SelectorCommand cannot
	// be split into arguments or is empty.
	InvalidSelectorCommandError struct {
		Value  SelectorCommand
		Reason string
	}

	// InvalidThemeError is returned when ui.theme is not a known theme.
	InvalidThemeError struct {
		Value string
	}

	// InvalidConfigError collects field-level validation errors.
	InvalidConfigError struct {
		FieldErrors []error
	}
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		EnableSelector: false,
		Selector:       DefaultSelector,
		TermExecArgs:   DefaultTermExecArgs,
		UI: UIConfig{
			Verbose: false,
			Theme:   string(tui.ThemeDefault),
		},
	}
}

// String returns the command line.
func (c SelectorCommand) String() string { return string(c) }

// IsValid reports whether the command line splits into at least one word.
func (c SelectorCommand) IsValid() (bool, []error) {
	fields, err := shell.Fields(string(c), func(string) string { return "" })
	if err != nil {
		return false, []error{&InvalidSelectorCommandError{Value: c, Reason: err.Error()}}
	}
	if len(fields) == 0 {
		return false, []error{&InvalidSelectorCommandError{Value: c, Reason: "empty command"}}
	}
	return true, nil
}

// IsValid reports whether the UI settings are usable.
func (u UIConfig) IsValid() (bool, []error) {
	if u.Theme != "" && tui.ParseTheme(u.Theme) != tui.Theme(u.Theme) {
		return false, []error{&InvalidThemeError{Value: u.Theme}}
	}
	return true, nil
}

// IsValid validates every field. The selector is only checked when prompting
// is enabled.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if c.EnableSelector {
		if ok, fieldErrs := c.Selector.IsValid(); !ok {
			errs = append(errs, fieldErrs...)
		}
	}
	if ok, fieldErrs := c.UI.IsValid(); !ok {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface.
func (e *InvalidSelectorCommandError) Error() string {
	return fmt.Sprintf("invalid selector %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidSelectorCommand for errors.Is() compatibility.
func (e *InvalidSelectorCommandError) Unwrap() error { return ErrInvalidSelectorCommand }

// Error implements the error interface.
func (e *InvalidThemeError) Error() string {
	return fmt.Sprintf("invalid theme %q (valid: default, charm, dracula, catppuccin, base16)", e.Value)
}

// Unwrap returns ErrInvalidTheme for errors.Is() compatibility.
func (e *InvalidThemeError) Unwrap() error { return ErrInvalidTheme }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, len(e.FieldErrors))
	for i, err := range e.FieldErrors {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns the sentinel and every field error.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
