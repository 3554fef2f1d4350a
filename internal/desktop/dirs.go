// SPDX-License-Identifier: MPL-2.0

package desktop

import (
	"path/filepath"
	"slices"

	"github.com/rkoesters/xdg/basedir"
)

// Dirs holds the XDG data directories searched for desktop entries, in
// precedence order.
type Dirs struct {
	// DataHome is $XDG_DATA_HOME (default ~/.local/share).
	DataHome string
	// DataDirs is $XDG_DATA_DIRS (default /usr/local/share:/usr/share).
	DataDirs []string
}

// DefaultDirs returns the XDG data directories of the current user.
func DefaultDirs() Dirs {
	return Dirs{DataHome: basedir.DataHome, DataDirs: slices.Clone(basedir.DataDirs)}
}

// ApplicationDirs returns every `applications` directory in precedence order,
// without duplicates.
func (d Dirs) ApplicationDirs() []string {
	seen := make(map[string]bool)
	var out []string
	for _, base := range append([]string{d.DataHome}, d.DataDirs...) {
		if base == "" {
			continue
		}
		dir := filepath.Join(base, "applications")
		if seen[dir] {
			continue
		}
		seen[dir] = true
		out = append(out, dir)
	}
	return out
}
