// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/handlr-go/handlr/internal/config"
	"github.com/handlr-go/handlr/internal/desktop"
	"github.com/handlr-go/handlr/internal/selector"
	"github.com/handlr-go/handlr/internal/testutil"
	"github.com/handlr-go/handlr/pkg/types"
)

type (
	staticConfig struct {
		cfg *config.Config
	}

	notification struct {
		title, msg string
	}

	recordingNotifier struct {
		mu   sync.Mutex
		sent []notification
	}

	// harness runs commands against an isolated data directory and
	// mimeapps.list.
	harness struct {
		t        *testing.T
		dataDir  string
		mimeapps string
		cfg      *config.Config
		notifier *recordingNotifier
	}
)

func (s staticConfig) Load(context.Context, config.LoadOptions) (*config.Config, error) {
	c := *s.cfg
	return &c, nil
}

func (r *recordingNotifier) Notify(_ context.Context, title, msg string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, notification{title: title, msg: msg})
	return nil
}

func (r *recordingNotifier) all() []notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notification(nil), r.sent...)
}

func newHarness(t *testing.T, entries ...testutil.DesktopEntry) *harness {
	t.Helper()
	root := t.TempDir()
	h := &harness{
		t:        t,
		dataDir:  filepath.Join(root, "data"),
		mimeapps: filepath.Join(root, "config", "mimeapps.list"),
		cfg:      config.DefaultConfig(),
		notifier: &recordingNotifier{},
	}
	testutil.MustMkdirAll(t, filepath.Join(h.dataDir, "applications"), 0o755)
	for _, e := range entries {
		testutil.WriteDesktopEntry(t, h.dataDir, e)
	}
	return h
}

func (h *harness) writeMimeapps(content string) {
	h.t.Helper()
	testutil.MustWriteFile(h.t, h.mimeapps, content)
}

func (h *harness) readMimeapps() string {
	h.t.Helper()
	return testutil.MustReadFile(h.t, h.mimeapps)
}

// run executes args and returns the exit code with captured output.
func (h *harness) run(args ...string) (code types.ExitCode, stdout, stderr string) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	code = run(context.Background(), Dependencies{
		Config:       staticConfig{cfg: h.cfg},
		Entries:      desktop.NewLocator(desktop.Dirs{DataHome: h.dataDir}),
		Notifier:     h.notifier,
		MimeappsPath: h.mimeapps,
		Stdin:        strings.NewReader(""),
		Stdout:       &out,
		Stderr:       &errOut,
	}, args)
	return code, out.String(), errOut.String()
}

func TestNewApp_Defaults(t *testing.T) {
	xdg := testutil.SetXDGHome(t)

	app, err := NewApp(Dependencies{})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}
	if app.Config == nil || app.Entries == nil || app.Notifier == nil {
		t.Fatal("expected production defaults for nil dependencies")
	}
	if want := filepath.Join(xdg.ConfigHome, "mimeapps.list"); app.mimeappsPath != want {
		t.Errorf("mimeappsPath = %q, want %q", app.mimeappsPath, want)
	}
}

func TestApp_Store_Cached(t *testing.T) {
	t.Parallel()

	h := newHarness(t, testutil.DesktopEntry{ID: "nvim.desktop", MimeTypes: []string{"text/plain"}})
	app, err := NewApp(Dependencies{
		Config:       staticConfig{cfg: h.cfg},
		Entries:      desktop.NewLocator(desktop.Dirs{DataHome: h.dataDir}),
		Notifier:     h.notifier,
		MimeappsPath: h.mimeapps,
		Stdout:       &bytes.Buffer{},
		Stderr:       &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}

	first, err := app.Store(t.Context())
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	second, err := app.Store(t.Context())
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if first != second {
		t.Error("expected Store to be built once")
	}
	if _, ok := first.System().Handler("text/plain"); !ok {
		t.Error("expected installed applications to be scanned")
	}
}

func TestApp_SelectorFor(t *testing.T) {
	t.Parallel()

	app, err := NewApp(Dependencies{
		Config:       staticConfig{cfg: config.DefaultConfig()},
		Entries:      desktop.NewLocator(desktop.Dirs{DataHome: t.TempDir()}),
		MimeappsPath: filepath.Join(t.TempDir(), "mimeapps.list"),
		Stdout:       &bytes.Buffer{},
		Stderr:       &bytes.Buffer{},
	})
	if err != nil {
		t.Fatalf("NewApp() error = %v", err)
	}

	enabled := config.DefaultConfig()
	enabled.EnableSelector = true

	tests := []struct {
		name    string
		mode    string
		cfg     *config.Config
		want    string
		wantErr bool
	}{
		{name: "default without selector", mode: "", cfg: config.DefaultConfig(), want: "*selector.Terminal"},
		{name: "default with selector", mode: "", cfg: enabled, want: "*selector.Command"},
		{name: "tui", mode: "tui", cfg: config.DefaultConfig(), want: "*selector.TUI"},
		{name: "explicit plain", mode: "plain", cfg: enabled, want: "*selector.Terminal"},
		{name: "unknown", mode: "skim", cfg: config.DefaultConfig(), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sel, err := app.selectorFor(tt.mode, tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("selectorFor() error = %v", err)
			}
			if got := typeName(sel); got != tt.want {
				t.Errorf("selectorFor() = %s, want %s", got, tt.want)
			}
		})
	}

	t.Run("command selector writes to app stderr", func(t *testing.T) {
		t.Parallel()
		sel, err := app.selectorFor("command", enabled)
		if err != nil {
			t.Fatalf("selectorFor() error = %v", err)
		}
		cmd, ok := sel.(*selector.Command)
		if !ok || cmd.Err != app.stderr {
			t.Errorf("selectorFor() = %#v, want Command writing to app stderr", sel)
		}
	})
}
