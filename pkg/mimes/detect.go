// SPDX-License-Identifier: MPL-2.0

package mimes

import (
	"errors"
	"fmt"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrUnknownExtension is returned when no MIME type is registered for an extension.
var ErrUnknownExtension = errors.New("unknown file extension")

// Database answers extension <-> MIME type questions. The zero value uses the
// system mime.types tables merged with the content-sniffing database.
type Database struct{}

// System is the process-wide MIME database.
var System Database

// Extensions returns the known extensions (with leading dot) for m, most
// specific first. The result is empty when m is unknown.
func (Database) Extensions(m MimeType) []string {
	exts, _ := mime.ExtensionsByType(string(m))
	if mt := mimetype.Lookup(string(m)); mt != nil && mt.Extension() != "" && !slices.Contains(exts, mt.Extension()) {
		exts = append([]string{mt.Extension()}, exts...)
	}
	return exts
}

// ForExtension returns the MIME type registered for ext. ext may omit the
// leading dot.
func (Database) ForExtension(ext string) (MimeType, bool) {
	if ext == "" {
		return "", false
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	typ := mime.TypeByExtension(strings.ToLower(ext))
	if typ == "" {
		return "", false
	}
	m, err := Parse(typ)
	if err != nil {
		return "", false
	}
	return m, true
}

// ParseArg accepts either a MIME type (`text/plain`) or a file extension
// (`.txt`) and returns the corresponding MimeType.
func ParseArg(arg string) (MimeType, error) {
	if strings.HasPrefix(arg, ".") {
		m, ok := System.ForExtension(arg)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownExtension, arg)
		}
		return m, nil
	}
	return Parse(arg)
}

// IsURL reports whether arg looks like a URL rather than a filesystem path.
func IsURL(arg string) bool {
	u, err := url.Parse(arg)
	if err != nil || len(u.Scheme) < 2 {
		return false
	}
	return u.Opaque != "" || u.Host != "" || strings.Contains(arg, "://")
}

// FromPath determines the MIME type of a user-supplied argument. URLs map to
// their scheme handler, directories to inode/directory, and files to the type
// registered for their extension, falling back to content sniffing.
func FromPath(arg string) (MimeType, error) {
	if IsURL(arg) {
		u, _ := url.Parse(arg)
		return Parse(SchemeHandlerPrefix + strings.ToLower(u.Scheme))
	}

	info, statErr := os.Stat(arg)
	if statErr == nil && info.IsDir() {
		return InodeDirectory, nil
	}

	if m, ok := System.ForExtension(filepath.Ext(arg)); ok {
		return m, nil
	}

	if statErr != nil {
		return "", fmt.Errorf("detect mime type of %s: %w", arg, statErr)
	}

	detected, err := mimetype.DetectFile(arg)
	if err != nil {
		return "", fmt.Errorf("detect mime type of %s: %w", arg, err)
	}
	return Parse(detected.String())
}
