// SPDX-License-Identifier: MPL-2.0

package apps

import (
	"errors"
	"iter"
	"maps"
	"slices"

	"github.com/handlr-go/handlr/internal/desktop"
	"github.com/handlr-go/handlr/pkg/mimes"

	"github.com/charmbracelet/log"
)

type (
	// EntryProvider supplies desktop entries. *desktop.Locator implements it.
	EntryProvider interface {
		// Lookup returns the entry for a desktop file id.
		Lookup(id string) (*desktop.Entry, error)
		// Entries yields every installed entry in scan order.
		Entries() iter.Seq2[*desktop.Entry, error]
	}

	// SystemApps is the immutable snapshot of installed applications, indexed
	// by the MIME types they declare.
	SystemApps struct {
		handlers map[mimes.MimeType]HandlerList
		entries  map[Handler]*desktop.Entry
		order    []Handler
		skipped  []error
	}
)

// PopulateSystemApps scans every entry from p once. Malformed desktop files are
// skipped and recorded in Skipped; any other scan error is fatal.
func PopulateSystemApps(p EntryProvider, logger *log.Logger) (*SystemApps, error) {
	s := &SystemApps{
		handlers: make(map[mimes.MimeType]HandlerList, 64),
		entries:  make(map[Handler]*desktop.Entry),
	}
	if p == nil {
		return s, nil
	}

	for entry, err := range p.Entries() {
		if err != nil {
			if errors.Is(err, desktop.ErrMalformedEntry) {
				if logger != nil {
					logger.Debug("skipping desktop entry", "err", err)
				}
				s.skipped = append(s.skipped, err)
				continue
			}
			return nil, &PersistenceError{Op: "scan applications", Err: err}
		}

		h := Handler(entry.ID)
		if _, dup := s.entries[h]; dup {
			continue
		}
		s.entries[h] = entry
		s.order = append(s.order, h)
		for _, m := range entry.MimeTypes {
			s.handlers[m] = s.handlers[m].Append(h)
		}
	}

	if logger != nil {
		logger.Debug("scanned applications", "entries", len(s.order), "mimes", len(s.handlers), "skipped", len(s.skipped))
	}
	return s, nil
}

// Handlers returns the handlers declaring exactly m, in scan order.
func (s *SystemApps) Handlers(m mimes.MimeType) (HandlerList, bool) {
	l, ok := s.handlers[m]
	return l, ok && len(l) > 0
}

// Handler returns the first handler declaring m.
func (s *SystemApps) Handler(m mimes.MimeType) (Handler, bool) {
	l, _ := s.Handlers(m)
	return l.First()
}

// Entry returns the scanned entry for h.
func (s *SystemApps) Entry(h Handler) (*desktop.Entry, bool) {
	e, ok := s.entries[h]
	return e, ok
}

// All yields every scanned entry in scan order.
func (s *SystemApps) All() iter.Seq[*desktop.Entry] {
	return func(yield func(*desktop.Entry) bool) {
		for _, h := range s.order {
			if !yield(s.entries[h]) {
				return
			}
		}
	}
}

// Mimes returns every MIME type with at least one installed handler, sorted.
func (s *SystemApps) Mimes() []mimes.MimeType {
	return slices.Sorted(maps.Keys(s.handlers))
}

// Skipped returns the malformed-entry errors encountered during the scan.
func (s *SystemApps) Skipped() []error {
	return slices.Clone(s.skipped)
}
