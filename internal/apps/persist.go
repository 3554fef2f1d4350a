// SPDX-License-Identifier: MPL-2.0

package apps

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/handlr-go/handlr/pkg/mimes"
)

const (
	sectionAdded    = "Added Associations"
	sectionDefaults = "Default Applications"

	fileMode = 0o644
	dirMode  = 0o755
)

// read loads the override file, creating it (and its directory) when absent.
func (a *MimeApps) read() error {
	path := a.opts.Path
	if path == "" {
		return &PersistenceError{Op: "read", Err: errors.New("no mimeapps.list path configured")}
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
			return &PersistenceError{Op: "create", Path: filepath.Dir(path), Err: err}
		}
		f, err = os.OpenFile(path, os.O_RDWR|os.O_CREATE, fileMode)
		if err != nil {
			return &PersistenceError{Op: "create", Path: path, Err: err}
		}
		a.opts.Logger.Debug("created empty mimeapps.list", "path", path)
	} else if err != nil {
		return &PersistenceError{Op: "read", Path: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	if err := a.Decode(f); err != nil {
		return &PersistenceError{Op: "read", Path: path, Err: err}
	}
	return nil
}

// Decode merges the mimeapps.list content of r into the store. Unknown
// sections, comments, invalid keys and lines without '=' are skipped. Handler
// tokens are taken as written. When a key repeats within a section the last
// non-empty line wins.
func (a *MimeApps) Decode(r io.Reader) error {
	var target map[mimes.MimeType]HandlerList

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "" || strings.HasPrefix(line, "#"):
			continue
		case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
			switch strings.TrimSpace(line[1 : len(line)-1]) {
			case sectionAdded:
				target = a.addedAssociations
			case sectionDefaults:
				target = a.defaultApps
			default:
				target = nil
			}
			continue
		}
		if target == nil {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		m, err := mimes.Parse(key)
		if err != nil {
			a.opts.Logger.Debug("skipping mimeapps.list line", "line", line, "err", err)
			continue
		}

		var list HandlerList
		for token := range strings.SplitSeq(value, ";") {
			if token = strings.TrimSpace(token); token != "" {
				list = list.Append(Handler(token))
			}
		}
		if len(list) > 0 {
			target[m] = list
		}
	}
	return scanner.Err()
}

// Encode writes the store in mimeapps.list format: added associations, a blank
// line, then default applications. Keys are sorted and empty lists omitted.
func (a *MimeApps) Encode(w io.Writer) error {
	bw := bufio.NewWriter(w)
	writeSection(bw, sectionAdded, a.addedAssociations)
	fmt.Fprintln(bw)
	writeSection(bw, sectionDefaults, a.defaultApps)
	return bw.Flush()
}

func writeSection(w io.Writer, name string, section map[mimes.MimeType]HandlerList) {
	fmt.Fprintf(w, "[%s]\n", name)
	for _, m := range slices.Sorted(maps.Keys(section)) {
		list := section[m]
		if len(list) == 0 {
			continue
		}
		var b strings.Builder
		for _, h := range list {
			b.WriteString(h.String())
			b.WriteByte(';')
		}
		fmt.Fprintf(w, "%s=%s\n", m, b.String())
	}
}

// Save rewrites the override file from the in-memory state.
func (a *MimeApps) Save() error {
	path := a.opts.Path
	if path == "" {
		return &PersistenceError{Op: "write", Err: errors.New("no mimeapps.list path configured")}
	}
	if err := os.MkdirAll(filepath.Dir(path), dirMode); err != nil {
		return &PersistenceError{Op: "write", Path: filepath.Dir(path), Err: err}
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fileMode)
	if err != nil {
		return &PersistenceError{Op: "write", Path: path, Err: err}
	}
	if err := a.Encode(f); err != nil {
		_ = f.Close()
		return &PersistenceError{Op: "write", Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &PersistenceError{Op: "write", Path: path, Err: err}
	}
	a.opts.Logger.Debug("saved mimeapps.list", "path", path, "defaults", len(a.defaultApps), "added", len(a.addedAssociations))
	return nil
}
