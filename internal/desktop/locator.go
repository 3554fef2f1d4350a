// SPDX-License-Identifier: MPL-2.0

package desktop

import (
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"
	"strings"
)

var errStopWalk = errors.New("stop walk")

// Locator finds and parses desktop entries in a fixed list of application
// directories. It holds no cache: every call reads the filesystem.
type Locator struct {
	dirs []string
}

// NewLocator creates a Locator over the application directories of d.
func NewLocator(d Dirs) *Locator {
	return &Locator{dirs: d.ApplicationDirs()}
}

// Dirs returns the application directories in precedence order.
func (l *Locator) Dirs() []string {
	return l.dirs
}

// Entries returns a lazy sequence over every visible desktop entry, in scan
// order. A desktop id found in a higher-precedence directory shadows the same
// id further down. Symlinked directories are followed. Files that fail to
// parse are yielded as a *MalformedEntryError; I/O failures are yielded
// as-is. The sequence can be ranged over more than once and rescans each time.
func (l *Locator) Entries() iter.Seq2[*Entry, error] {
	return func(yield func(*Entry, error) bool) {
		seen := make(map[string]bool)
		for _, dir := range l.dirs {
			err := walkApplications(dir, func(path, rel string, err error) error {
				if err != nil {
					if rel == "" && errors.Is(err, fs.ErrNotExist) {
						return nil
					}
					if !yield(nil, fmt.Errorf("scan %s: %w", path, err)) {
						return errStopWalk
					}
					return nil
				}

				id := fileID(rel)
				if seen[id] {
					return nil
				}
				seen[id] = true

				entry, perr := ParseFile(path, id)
				if perr != nil {
					if !errors.Is(perr, ErrMalformedEntry) {
						perr = &MalformedEntryError{Path: path, Err: perr}
					}
					if !yield(nil, perr) {
						return errStopWalk
					}
					return nil
				}
				if entry.Hidden {
					return nil
				}
				if !yield(entry, nil) {
					return errStopWalk
				}
				return nil
			})
			if errors.Is(err, errStopWalk) {
				return
			}
		}
	}
}

// walkFunc receives a desktop file path and its path relative to the
// applications directory, or a read error for path. rel is empty for an error
// on the applications directory itself.
type walkFunc func(path, rel string, err error) error

// walkApplications calls fn for every .desktop file below dir in lexical
// order. Unlike filepath.WalkDir it follows symlinks, both at dir itself and
// below it; a directory reached twice through links is only read once.
func walkApplications(dir string, fn walkFunc) error {
	return walkDir(dir, "", make(map[string]bool), fn)
}

func walkDir(dir, rel string, visited map[string]bool, fn walkFunc) error {
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return fn(dir, rel, err)
	}
	if visited[resolved] {
		return nil
	}
	visited[resolved] = true

	entries, err := os.ReadDir(resolved)
	if err != nil {
		return fn(dir, rel, err)
	}
	for _, d := range entries {
		path := filepath.Join(dir, d.Name())
		name := filepath.Join(rel, d.Name())

		isDir := d.IsDir()
		if d.Type()&fs.ModeSymlink != 0 {
			info, err := os.Stat(path)
			if err != nil {
				// Dangling link.
				continue
			}
			isDir = info.IsDir()
		}

		if isDir {
			if err := walkDir(path, name, visited, fn); err != nil {
				return err
			}
			continue
		}
		if filepath.Ext(name) != Extension {
			continue
		}
		if err := fn(path, name, nil); err != nil {
			return err
		}
	}
	return nil
}

// Find returns the path of the desktop file with the given id.
func (l *Locator) Find(id string) (string, error) {
	if id == "" || filepath.Ext(id) != Extension || strings.Contains(id, string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrEntryNotFound, id)
	}
	for _, dir := range l.dirs {
		for _, rel := range idCandidates(id) {
			path := filepath.Join(dir, rel)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %s", ErrEntryNotFound, id)
}

// Lookup locates and parses the desktop entry with the given id. Hidden
// entries are reported as not found.
func (l *Locator) Lookup(id string) (*Entry, error) {
	path, err := l.Find(id)
	if err != nil {
		return nil, err
	}
	entry, err := ParseFile(path, id)
	if err != nil {
		return nil, err
	}
	if entry.Hidden {
		return nil, fmt.Errorf("%w: %s (hidden)", ErrEntryNotFound, id)
	}
	return entry, nil
}

// fileID derives the desktop file id from its path relative to the
// applications directory: subdirectory separators become dashes.
func fileID(rel string) string {
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", "-")
}

// idCandidates lists the relative paths a desktop id may live at, trying the
// flat name first and then each dash as a possible subdirectory boundary.
func idCandidates(id string) []string {
	out := []string{id}
	for i := range len(id) {
		if id[i] == '-' {
			out = append(out, filepath.Join(id[:i], id[i+1:]))
		}
	}
	return out
}
