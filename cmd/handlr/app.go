// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"

	"github.com/handlr-go/handlr/internal/apps"
	"github.com/handlr-go/handlr/internal/config"
	"github.com/handlr-go/handlr/internal/desktop"
	"github.com/handlr-go/handlr/internal/issue"
	"github.com/handlr-go/handlr/internal/selector"
	"github.com/handlr-go/handlr/internal/tui"
	"github.com/handlr-go/handlr/pkg/types"

	"github.com/charmbracelet/log"
)

type (
	// App wires CLI services and shared dependencies. It is the composition
	// root for the CLI layer: every cobra handler receives an App and reaches
	// configuration, the handler store and the notifier through it.
	App struct {
		Config   ConfigProvider
		Entries  apps.EntryProvider
		Notifier Notifier

		mimeappsPath string
		stdin        io.Reader
		stdout       io.Writer
		stderr       io.Writer

		// Set from persistent flags before any command runs.
		verbose    bool
		configPath string

		logger *log.Logger
		cfg    *config.Config
		store  *apps.MimeApps
	}

	// Dependencies defines the injection points for building an App. Nil
	// fields are replaced with production defaults by NewApp.
	Dependencies struct {
		Config   ConfigProvider
		Entries  apps.EntryProvider
		Notifier Notifier
		// MimeappsPath overrides $XDG_CONFIG_HOME/mimeapps.list.
		MimeappsPath string
		Stdin        io.Reader
		Stdout       io.Writer
		Stderr       io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdin == nil {
		deps.Stdin = os.Stdin
	}
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Notifier == nil {
		deps.Notifier = notifySend{}
	}
	if deps.Entries == nil {
		deps.Entries = desktop.NewLocator(desktop.DefaultDirs())
	}
	if deps.MimeappsPath == "" {
		deps.MimeappsPath = config.MimeappsPath()
	}

	return &App{
		Config:       deps.Config,
		Entries:      deps.Entries,
		Notifier:     deps.Notifier,
		mimeappsPath: deps.MimeappsPath,
		stdin:        deps.Stdin,
		stdout:       deps.Stdout,
		stderr:       deps.Stderr,
		logger:       newLogger(deps.Stderr, false),
	}, nil
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{Prefix: "handlr"})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}
	return logger
}

// setGlobalFlags records persistent flag values. It runs before any command.
func (a *App) setGlobalFlags(verbose bool, configPath string) {
	a.verbose = verbose
	a.configPath = configPath
	a.logger = newLogger(a.stderr, verbose)
}

// Settings loads the configuration once per process.
func (a *App) Settings(ctx context.Context) (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	cfg, err := a.Config.Load(ctx, a.loadOptions())
	if err != nil {
		return nil, err
	}
	if cfg.UI.Verbose && !a.verbose {
		a.verbose = true
		a.logger.SetLevel(log.DebugLevel)
	}
	a.cfg = cfg
	return cfg, nil
}

func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: types.FilesystemPath(a.configPath)}
}

// Store reads mimeapps.list and scans installed applications once per process.
func (a *App) Store(ctx context.Context) (*apps.MimeApps, error) {
	if a.store != nil {
		return a.store, nil
	}
	cfg, err := a.Settings(ctx)
	if err != nil {
		return nil, err
	}

	store, err := apps.Load(apps.Options{
		Path:           a.mimeappsPath,
		Entries:        a.Entries,
		EnableSelector: cfg.EnableSelector,
		Selector:       &selector.Command{Line: cfg.Selector.String(), Err: a.stderr},
		Logger:         a.logger,
	})
	if err != nil {
		return nil, issue.NewErrorContext().
			WithOperation("load handler associations").
			WithResource(a.mimeappsPath).
			WithIssue(issue.MimeappsAccessFailedId).
			Wrap(err).
			BuildError()
	}
	if skipped := store.System().Skipped(); len(skipped) > 0 {
		a.logger.Debug("some desktop entries could not be parsed", "count", len(skipped))
	}
	a.store = store
	return store, nil
}

// tuiConfig returns the huh settings for the TUI selector.
func (a *App) tuiConfig() tui.Config {
	c := tui.DefaultConfig()
	if a.cfg != nil {
		c.Theme = tui.ParseTheme(a.cfg.UI.Theme)
	}
	c.Input = a.stdin
	c.Output = a.stderr
	return c
}

// notify shows a desktop notification. Failures are logged, not returned.
func (a *App) notify(ctx context.Context, title, msg string) {
	if err := a.Notifier.Notify(ctx, title, msg); err != nil {
		a.logger.Debug("notification failed", "err", err)
	}
}
