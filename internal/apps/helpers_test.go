// SPDX-License-Identifier: MPL-2.0

package apps

import (
	"context"
	"fmt"
	"iter"
	"path/filepath"
	"testing"

	"github.com/handlr-go/handlr/internal/desktop"
	"github.com/handlr-go/handlr/pkg/mimes"
)

type (
	fakeEntries struct {
		entries []*desktop.Entry
		errs    []error
	}

	// stubSelector returns choice (or nothing when choice is empty) and
	// records what it was offered.
	stubSelector struct {
		choice  string
		err     error
		offered []string
		calls   int
	}

	fakeMimeDB struct {
		exts  map[mimes.MimeType][]string
		byExt map[string]mimes.MimeType
	}
)

func (f *fakeEntries) Lookup(id string) (*desktop.Entry, error) {
	for _, e := range f.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", desktop.ErrEntryNotFound, id)
}

func (f *fakeEntries) Entries() iter.Seq2[*desktop.Entry, error] {
	return func(yield func(*desktop.Entry, error) bool) {
		for _, err := range f.errs {
			if !yield(nil, err) {
				return
			}
		}
		for _, e := range f.entries {
			if !yield(e, nil) {
				return
			}
		}
	}
}

func (s *stubSelector) Select(_ context.Context, _ string, items []string) (string, bool, error) {
	s.calls++
	s.offered = items
	if s.err != nil {
		return "", false, s.err
	}
	return s.choice, s.choice != "", nil
}

func (f fakeMimeDB) Extensions(m mimes.MimeType) []string { return f.exts[m] }

func (f fakeMimeDB) ForExtension(ext string) (mimes.MimeType, bool) {
	m, ok := f.byExt[ext]
	return m, ok
}

func app(id, name string, mts ...string) *desktop.Entry {
	e := &desktop.Entry{ID: id, Name: name, Exec: "true %F"}
	for _, m := range mts {
		e.MimeTypes = append(e.MimeTypes, mimes.MustParse(m))
	}
	return e
}

// newStore builds a store over the given installed entries, persisted to a
// fresh temporary file.
func newStore(t *testing.T, opts Options, entries ...*desktop.Entry) *MimeApps {
	t.Helper()
	if opts.Path == "" {
		opts.Path = filepath.Join(t.TempDir(), "mimeapps.list")
	}
	if opts.Entries == nil {
		opts.Entries = &fakeEntries{entries: entries}
	}
	a, err := Load(opts)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return a
}
