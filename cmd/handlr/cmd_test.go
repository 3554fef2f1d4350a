// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/handlr-go/handlr/internal/testutil"
	"github.com/handlr-go/handlr/pkg/types"
)

// Not parallel: fang.Execute installs a process-wide interrupt handler for
// the duration of each run.

func typeName(v any) string { return fmt.Sprintf("%T", v) }

func TestRun_SetThenGet(t *testing.T) {
	h := newHarness(t,
		testutil.DesktopEntry{ID: "zathura.desktop", Name: "Zathura", Exec: "zathura %f", MimeTypes: []string{"application/pdf"}},
	)

	if code, _, stderr := h.run("set", ".pdf", "zathura.desktop"); code != types.ExitOK {
		t.Fatalf("set exit = %d, stderr = %s", code, stderr)
	}
	if got := h.readMimeapps(); !strings.Contains(got, "application/pdf=zathura.desktop;") {
		t.Errorf("mimeapps.list = %q", got)
	}

	code, stdout, _ := h.run("get", "application/pdf")
	if code != types.ExitOK {
		t.Fatalf("get exit = %d", code)
	}
	if stdout != "zathura.desktop\n" {
		t.Errorf("get stdout = %q", stdout)
	}
}

func TestRun_GetJSON(t *testing.T) {
	h := newHarness(t,
		testutil.DesktopEntry{ID: "mpv.desktop", Name: "mpv Media Player", Exec: "mpv --player-operation-mode=pseudo-gui -- %U"},
	)
	h.writeMimeapps("[Default Applications]\nvideo/mp4=mpv.desktop;\n")

	code, stdout, stderr := h.run("get", "--json", "video/mp4")
	if code != types.ExitOK {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}
	var got handlerInfo
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout, err)
	}
	want := handlerInfo{Handler: "mpv.desktop", Name: "mpv Media Player", Cmd: "mpv --player-operation-mode=pseudo-gui --"}
	if got != want {
		t.Errorf("get --json = %+v, want %+v", got, want)
	}
}

func TestRun_AddAndUnset(t *testing.T) {
	h := newHarness(t,
		testutil.DesktopEntry{ID: "firefox.desktop"},
		testutil.DesktopEntry{ID: "chromium.desktop"},
	)

	for _, args := range [][]string{
		{"add", "x-scheme-handler/https", "firefox.desktop"},
		{"add", "x-scheme-handler/https", "chromium.desktop"},
	} {
		if code, _, stderr := h.run(args...); code != types.ExitOK {
			t.Fatalf("%v exit = %d, stderr = %s", args, code, stderr)
		}
	}
	if got := h.readMimeapps(); !strings.Contains(got, "x-scheme-handler/https=firefox.desktop;chromium.desktop;") {
		t.Errorf("after add mimeapps.list = %q", got)
	}

	if code, _, stderr := h.run("unset", "x-scheme-handler/https"); code != types.ExitOK {
		t.Fatalf("unset exit = %d, stderr = %s", code, stderr)
	}
	if got := h.readMimeapps(); strings.Contains(got, "x-scheme-handler/https") {
		t.Errorf("after unset mimeapps.list = %q", got)
	}
}

func TestRun_SetUnknownHandler(t *testing.T) {
	h := newHarness(t)

	code, _, stderr := h.run("set", "text/plain", "missing.desktop")
	if code != types.ExitFailure {
		t.Fatalf("exit = %d, want %d", code, types.ExitFailure)
	}
	if !strings.Contains(stderr, "missing.desktop") {
		t.Errorf("stderr = %q", stderr)
	}
	if !strings.Contains(stderr, "handlr list --all") {
		t.Errorf("expected suggestion in stderr, got %q", stderr)
	}
}

func TestRun_NotFoundNotifies(t *testing.T) {
	h := newHarness(t)

	code, _, stderr := h.run("get", "audio/flac")
	if code != types.ExitFailure {
		t.Fatalf("exit = %d, want %d", code, types.ExitFailure)
	}
	if !strings.Contains(strings.ToLower(stderr), "no handler found for audio/flac") {
		t.Errorf("stderr = %q", stderr)
	}

	sent := h.notifier.all()
	if len(sent) != 1 {
		t.Fatalf("notifications = %v, want 1", sent)
	}
	if sent[0].title != "handlr error" || !strings.Contains(sent[0].msg, "audio/flac") {
		t.Errorf("notification = %+v", sent[0])
	}
}

func TestRun_CancelledSelectionExitsQuietly(t *testing.T) {
	h := newHarness(t,
		testutil.DesktopEntry{ID: "nvim.desktop"},
		testutil.DesktopEntry{ID: "helix.desktop"},
	)
	h.writeMimeapps("[Default Applications]\ntext/plain=nvim.desktop;helix.desktop;\n")
	h.cfg.EnableSelector = true
	h.cfg.Selector = "true"

	code, stdout, stderr := h.run("get", "text/plain")
	if code != types.ExitCancelled {
		t.Fatalf("exit = %d, want %d", code, types.ExitCancelled)
	}
	if stdout != "" || stderr != "" {
		t.Errorf("expected no output, got stdout=%q stderr=%q", stdout, stderr)
	}
	if sent := h.notifier.all(); len(sent) != 0 {
		t.Errorf("expected no notification, got %v", sent)
	}
}

func TestRun_OpenGroupsByHandler(t *testing.T) {
	h := newHarness(t,
		testutil.DesktopEntry{ID: "viewer.desktop", Exec: "echo viewer %F"},
		testutil.DesktopEntry{ID: "browser.desktop", Exec: "echo browser %u"},
	)
	h.writeMimeapps("[Default Applications]\napplication/pdf=viewer.desktop;\nx-scheme-handler/https=browser.desktop;\n")

	code, stdout, stderr := h.run("open", "--wait", "a.pdf", "https://example.com", "b.pdf")
	if code != types.ExitOK {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}
	want := "viewer a.pdf b.pdf\nbrowser https://example.com\n"
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestRun_LaunchGuessesTerminal(t *testing.T) {
	h := newHarness(t,
		testutil.DesktopEntry{ID: "xterm.desktop", Exec: "echo term", Categories: []string{"System", "TerminalEmulator"}},
		testutil.DesktopEntry{ID: "htop.desktop", Exec: "echo htop", Terminal: true},
	)
	h.writeMimeapps("[Default Applications]\nx-scheme-handler/htop=htop.desktop;\n")

	code, stdout, stderr := h.run("launch", "--wait", "x-scheme-handler/htop")
	if code != types.ExitOK {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}
	if stdout != "term -e echo htop\n" {
		t.Errorf("stdout = %q", stdout)
	}
	if got := h.readMimeapps(); !strings.Contains(got, "x-scheme-handler/terminal=xterm.desktop;") {
		t.Errorf("expected guessed terminal to be saved, got %q", got)
	}

	sent := h.notifier.all()
	if len(sent) != 1 || !strings.Contains(sent[0].msg, "Guessed terminal emulator: xterm.desktop.") {
		t.Errorf("notifications = %v", sent)
	}
}

func TestRun_LaunchWaitPassesExitStatus(t *testing.T) {
	h := newHarness(t, testutil.DesktopEntry{ID: "fail.desktop", Exec: `sh -c "exit 3"`})
	h.writeMimeapps("[Default Applications]\nx-scheme-handler/fail=fail.desktop;\n")

	code, _, stderr := h.run("launch", "--wait", "x-scheme-handler/fail")
	if code != 3 {
		t.Fatalf("exit = %d, want 3, stderr = %s", code, stderr)
	}
	if !strings.Contains(stderr, "fail.desktop") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestRun_ListAndStatus(t *testing.T) {
	h := newHarness(t,
		testutil.DesktopEntry{ID: "imv.desktop", MimeTypes: []string{"image/png"}},
		testutil.DesktopEntry{ID: "feh.desktop"},
	)
	h.writeMimeapps("[Added Associations]\nimage/jpeg=imv.desktop;\n\n[Default Applications]\nimage/png=imv.desktop;\n")

	code, stdout, _ := h.run("list")
	if code != types.ExitOK {
		t.Fatalf("list exit = %d", code)
	}
	if !strings.Contains(stdout, "image/png") || strings.Contains(stdout, "image/jpeg") {
		t.Errorf("list stdout = %q", stdout)
	}

	_, stdout, _ = h.run("list", "--all")
	for _, want := range []string{"Default Apps", "Added Associations", "image/jpeg", "System Apps"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("list --all missing %q in %q", want, stdout)
		}
	}

	_, stdout, _ = h.run("status", "imv.desktop")
	if !strings.Contains(stdout, "image/png") {
		t.Errorf("status stdout = %q", stdout)
	}
	_, stdout, _ = h.run("status", "feh.desktop")
	if !strings.Contains(stdout, "feh.desktop is disabled") {
		t.Errorf("status stdout = %q", stdout)
	}
	if code, _, _ := h.run("status", "missing.desktop"); code != types.ExitFailure {
		t.Errorf("status of missing handler exit = %d", code)
	}
}

func TestRun_Cat(t *testing.T) {
	h := newHarness(t, testutil.DesktopEntry{ID: "nvim.desktop", Exec: "nvim %F"})

	code, stdout, stderr := h.run("cat", "nvim.desktop")
	if code != types.ExitOK {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}
	want := testutil.MustReadFile(t, filepath.Join(h.dataDir, "applications", "nvim.desktop"))
	if stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
}

func TestRun_Mime(t *testing.T) {
	h := newHarness(t)

	code, stdout, stderr := h.run("mime", "--json", "report.pdf", "mailto:someone@example.com")
	if code != types.ExitOK {
		t.Fatalf("exit = %d, stderr = %s", code, stderr)
	}
	var got []mimeInfo
	if err := json.Unmarshal([]byte(stdout), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", stdout, err)
	}
	want := []mimeInfo{
		{Path: "report.pdf", Mime: "application/pdf"},
		{Path: "mailto:someone@example.com", Mime: "x-scheme-handler/mailto"},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRun_InvalidMime(t *testing.T) {
	h := newHarness(t)

	code, _, stderr := h.run("get", "not-a-mime")
	if code != types.ExitFailure {
		t.Fatalf("exit = %d, want %d", code, types.ExitFailure)
	}
	if !strings.Contains(stderr, "not-a-mime") {
		t.Errorf("stderr = %q", stderr)
	}
}
