// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"strings"
	"testing"
)

// DesktopEntry describes a fixture desktop file. Zero fields get defaults:
// Name is derived from ID and Exec is "<name> %F".
type DesktopEntry struct {
	ID         string
	Name       string
	Exec       string
	MimeTypes  []string
	Categories []string
	Terminal   bool
	Hidden     bool
}

// Render returns the desktop file text for e.
func (e DesktopEntry) Render() string {
	name := e.Name
	if name == "" {
		name = strings.TrimSuffix(e.ID, ".desktop")
	}
	exec := e.Exec
	if exec == "" {
		exec = strings.ToLower(name) + " %F"
	}

	var sb strings.Builder
	sb.WriteString("[Desktop Entry]\n")
	sb.WriteString("Type=Application\n")
	sb.WriteString("Name=" + name + "\n")
	sb.WriteString("Exec=" + exec + "\n")
	if len(e.MimeTypes) > 0 {
		sb.WriteString("MimeType=" + strings.Join(e.MimeTypes, ";") + ";\n")
	}
	if len(e.Categories) > 0 {
		sb.WriteString("Categories=" + strings.Join(e.Categories, ";") + ";\n")
	}
	if e.Terminal {
		sb.WriteString("Terminal=true\n")
	}
	if e.Hidden {
		sb.WriteString("Hidden=true\n")
	}
	return sb.String()
}

// WriteDesktopEntry writes e under <dataDir>/applications and returns its path.
func WriteDesktopEntry(t testing.TB, dataDir string, e DesktopEntry) string {
	t.Helper()
	path := filepath.Join(dataDir, "applications", e.ID)
	MustWriteFile(t, path, e.Render())
	return path
}
