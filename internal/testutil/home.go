// SPDX-License-Identifier: MPL-2.0

package testutil

import (
	"path/filepath"
	"testing"

	"github.com/rkoesters/xdg/basedir"
)

// XDGHome is an isolated set of XDG base directories rooted in a temp dir.
type XDGHome struct {
	Root       string
	ConfigHome string
	DataHome   string
	// SystemData is the single entry placed in XDG_DATA_DIRS.
	SystemData string
}

// SetXDGHome points HOME, the XDG base directory variables and the values
// basedir resolved at startup at a fresh temporary tree, and restores them
// when the test ends. Tests using it must not call t.Parallel().
//
// Usage:
//
//	func TestSomething(t *testing.T) {
//	    xdg := testutil.SetXDGHome(t)
//	    testutil.WriteDesktopEntry(t, xdg.DataHome, testutil.DesktopEntry{ID: "mpv.desktop"})
//	}
func SetXDGHome(t testing.TB) XDGHome {
	t.Helper()
	root := t.TempDir()
	x := XDGHome{
		Root:       root,
		ConfigHome: filepath.Join(root, "config"),
		DataHome:   filepath.Join(root, "data"),
		SystemData: filepath.Join(root, "system"),
	}
	t.Cleanup(MustSetenv(t, "HOME", root))
	t.Cleanup(MustSetenv(t, "XDG_CONFIG_HOME", x.ConfigHome))
	t.Cleanup(MustSetenv(t, "XDG_DATA_HOME", x.DataHome))
	t.Cleanup(MustSetenv(t, "XDG_DATA_DIRS", x.SystemData))

	home, config, data, dirs := basedir.Home, basedir.ConfigHome, basedir.DataHome, basedir.DataDirs
	basedir.Home, basedir.ConfigHome, basedir.DataHome, basedir.DataDirs = root, x.ConfigHome, x.DataHome, []string{x.SystemData}
	t.Cleanup(func() {
		basedir.Home, basedir.ConfigHome, basedir.DataHome, basedir.DataDirs = home, config, data, dirs
	})
	return x
}
