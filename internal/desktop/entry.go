// SPDX-License-Identifier: MPL-2.0

package desktop

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/handlr-go/handlr/pkg/mimes"

	xdgdesktop "github.com/rkoesters/xdg/desktop"
)

// Extension is the file extension of desktop entry files.
const Extension = ".desktop"

var (
	// ErrMalformedEntry is the sentinel error wrapped by MalformedEntryError.
	ErrMalformedEntry = errors.New("malformed desktop entry")
	// ErrEntryNotFound is returned when no desktop file exists for an id.
	ErrEntryNotFound = errors.New("desktop entry not found")
)

type (
	// Entry is the subset of a desktop entry that handlr needs to resolve
	// and launch handlers.
	Entry struct {
		// ID is the desktop file id, e.g. "org.gnome.Nautilus.desktop".
		ID string
		// Path is the file the entry was read from.
		Path string
		// Name is the localized-neutral display name.
		Name string
		// Exec is the raw command template including field codes.
		Exec string
		// Icon is the icon name, used by the %i field code.
		Icon string
		// Terminal reports whether the program must run inside a terminal.
		Terminal bool
		// Hidden entries are treated as deleted.
		Hidden bool
		// NoDisplay entries are valid handlers that menus should not show.
		NoDisplay bool
		// MimeTypes lists the MIME types the application declares support for.
		MimeTypes []mimes.MimeType
		// Categories lists the freedesktop menu categories.
		Categories []string
	}

	// MalformedEntryError is returned when a desktop file cannot be parsed.
	MalformedEntryError struct {
		Path string
		Err  error
	}
)

// Parse reads a desktop entry from r. id and path are recorded on the result.
// MIME types that fail to normalize are dropped.
func Parse(r io.Reader, id, path string) (*Entry, error) {
	raw, err := xdgdesktop.New(r)
	if err != nil {
		return nil, &MalformedEntryError{Path: path, Err: err}
	}
	if raw.Type != xdgdesktop.Application {
		return nil, &MalformedEntryError{Path: path, Err: fmt.Errorf("type is %q, not Application", raw.Type)}
	}
	if strings.TrimSpace(raw.Exec) == "" && !raw.Hidden {
		return nil, &MalformedEntryError{Path: path, Err: errors.New("missing Exec key")}
	}

	entry := &Entry{
		ID:         id,
		Path:       path,
		Name:       raw.Name,
		Exec:       raw.Exec,
		Icon:       raw.Icon,
		Terminal:   raw.Terminal,
		Hidden:     raw.Hidden,
		NoDisplay:  raw.NoDisplay,
		Categories: raw.Categories,
	}
	for _, s := range raw.MimeType {
		m, err := mimes.Parse(s)
		if err != nil {
			continue
		}
		if !slices.Contains(entry.MimeTypes, m) {
			entry.MimeTypes = append(entry.MimeTypes, m)
		}
	}
	return entry, nil
}

// ParseFile reads and parses the desktop file at path.
func ParseFile(path, id string) (*Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, id, path)
}

// Supports reports whether the entry declares m exactly.
func (e *Entry) Supports(m mimes.MimeType) bool {
	return slices.Contains(e.MimeTypes, m)
}

// HasCategory reports whether the entry lists category c.
func (e *Entry) HasCategory(c string) bool {
	return slices.Contains(e.Categories, c)
}

// Label is the selector label for the entry: "Name -- id".
func (e *Entry) Label() string {
	return e.Name + " -- " + e.ID
}

// Error implements the error interface.
func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("malformed desktop entry %s: %v", e.Path, e.Err)
}

// Unwrap returns ErrMalformedEntry for errors.Is() compatibility.
func (e *MalformedEntryError) Unwrap() error { return ErrMalformedEntry }
