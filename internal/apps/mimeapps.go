// SPDX-License-Identifier: MPL-2.0

package apps

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/handlr-go/handlr/internal/desktop"
	"github.com/handlr-go/handlr/internal/selector"
	"github.com/handlr-go/handlr/pkg/mimes"

	"github.com/charmbracelet/log"
)

// Tier names which mapping produced a resolution.
type Tier string

const (
	// TierDefault is the user's default_apps mapping.
	TierDefault Tier = "default"
	// TierAdded is the added_associations mapping.
	TierAdded Tier = "added"
	// TierSystem is the installed-applications snapshot.
	TierSystem Tier = "system"

	selectPrompt = "Open With"
)

type (
	// MimeDB answers extension <-> MIME type questions. mimes.Database
	// implements it.
	MimeDB interface {
		Extensions(m mimes.MimeType) []string
		ForExtension(ext string) (mimes.MimeType, bool)
	}

	// Options configures a MimeApps store.
	Options struct {
		// Path is the override file. Required by Load and Save.
		Path string
		// Entries locates desktop entries. Nil means no installed applications.
		Entries EntryProvider
		// MimeDB derives alias MIME types for AskHandler. Defaults to mimes.System.
		MimeDB MimeDB
		// EnableSelector turns on prompting when a default has several handlers.
		EnableSelector bool
		// Selector is used for those prompts. Required when EnableSelector is set.
		Selector selector.Selector
		// Logger receives debug diagnostics. Defaults to a discarding logger.
		Logger *log.Logger
	}

	// MimeApps is the user override store layered over the installed
	// applications snapshot.
	MimeApps struct {
		opts              Options
		defaultApps       map[mimes.MimeType]HandlerList
		addedAssociations map[mimes.MimeType]HandlerList
		system            *SystemApps
	}

	// Row is one line of a handler listing.
	Row struct {
		Mime     mimes.MimeType
		Handlers HandlerList
	}
)

// New returns an empty store over the given snapshot. It performs no I/O.
func New(opts Options, system *SystemApps) *MimeApps {
	if opts.MimeDB == nil {
		opts.MimeDB = mimes.System
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if system == nil {
		system = &SystemApps{
			handlers: map[mimes.MimeType]HandlerList{},
			entries:  map[Handler]*desktop.Entry{},
		}
	}
	return &MimeApps{
		opts:              opts,
		defaultApps:       make(map[mimes.MimeType]HandlerList),
		addedAssociations: make(map[mimes.MimeType]HandlerList),
		system:            system,
	}
}

// Load reads the override file at opts.Path, creating it empty when missing,
// and scans the installed applications.
func Load(opts Options) (*MimeApps, error) {
	a := New(opts, nil)
	if err := a.read(); err != nil {
		return nil, err
	}
	system, err := PopulateSystemApps(opts.Entries, a.opts.Logger)
	if err != nil {
		return nil, err
	}
	a.system = system
	return a, nil
}

// Path returns the override file path.
func (a *MimeApps) Path() string { return a.opts.Path }

// System returns the installed applications snapshot.
func (a *MimeApps) System() *SystemApps { return a.system }

// Handler resolves the handler for m. The first tier that yields a handler wins:
// exact default, wildcard default, added association, system default.
func (a *MimeApps) Handler(ctx context.Context, m mimes.MimeType) (Handler, error) {
	h, _, err := a.resolve(ctx, m)
	return h, err
}

// ResolveTier is like Handler but also reports which tier resolved m.
func (a *MimeApps) ResolveTier(ctx context.Context, m mimes.MimeType) (Handler, Tier, error) {
	return a.resolve(ctx, m)
}

func (a *MimeApps) resolve(ctx context.Context, m mimes.MimeType) (Handler, Tier, error) {
	if h, ok, err := a.userHandler(ctx, m); err != nil || ok {
		if ok {
			a.opts.Logger.Debug("resolved handler", "mime", m, "handler", h, "tier", TierDefault)
		}
		return h, TierDefault, err
	}
	if !m.IsWildcard() {
		if h, ok, err := a.userHandler(ctx, m.Wildcard()); err != nil || ok {
			if ok {
				a.opts.Logger.Debug("resolved handler", "mime", m, "handler", h, "tier", TierDefault, "wildcard", true)
			}
			return h, TierDefault, err
		}
	}
	if h, ok := a.addedAssociations[m].First(); ok {
		a.opts.Logger.Debug("resolved handler", "mime", m, "handler", h, "tier", TierAdded)
		return h, TierAdded, nil
	}
	if h, ok := a.system.Handler(m); ok {
		a.opts.Logger.Debug("resolved handler", "mime", m, "handler", h, "tier", TierSystem)
		return h, TierSystem, nil
	}
	return "", "", &NotFoundError{Name: m.String()}
}

// userHandler consults default_apps for exactly m.
func (a *MimeApps) userHandler(ctx context.Context, m mimes.MimeType) (Handler, bool, error) {
	list := a.defaultApps[m]
	switch {
	case len(list) == 0:
		return "", false, nil
	case len(list) == 1 || !a.opts.EnableSelector || a.opts.Selector == nil:
		return list[0], true, nil
	}

	h, err := a.pick(ctx, list, func(e *desktop.Entry) string { return e.Name })
	if err != nil {
		return "", false, err
	}
	return h, true, nil
}

// pick offers handlers to the configured selector using label for display.
// Handlers whose entries cannot be read are shown by id.
func (a *MimeApps) pick(ctx context.Context, list HandlerList, label func(*desktop.Entry) string) (Handler, error) {
	return pickWith(ctx, a.opts.Selector, list, func(h Handler) string {
		if e, err := a.Entry(h); err == nil && label(e) != "" {
			return label(e)
		}
		return h.String()
	})
}

func pickWith(ctx context.Context, sel selector.Selector, list HandlerList, label func(Handler) string) (Handler, error) {
	labels := make([]string, 0, len(list))
	byLabel := make(map[string]Handler, len(list))
	for _, h := range list {
		l := label(h)
		if _, dup := byLabel[l]; dup {
			l = fmt.Sprintf("%s (%s)", l, h)
		}
		byLabel[l] = h
		labels = append(labels, l)
	}

	choice, ok, err := sel.Select(ctx, selectPrompt, labels)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrCancelled
	}
	h, known := byLabel[choice]
	if !known {
		return "", &NotFoundError{Name: choice}
	}
	return h, nil
}

// AddHandler appends h to the defaults for m. Call Save to persist.
func (a *MimeApps) AddHandler(m mimes.MimeType, h Handler) {
	a.defaultApps[m] = a.defaultApps[m].Append(h)
}

// SetHandler makes h the only default for m. Call Save to persist.
func (a *MimeApps) SetHandler(m mimes.MimeType, h Handler) {
	a.defaultApps[m] = HandlerList{h}
}

// RemoveHandler deletes the defaults for m and saves immediately. It does
// nothing, and writes nothing, when m has no defaults.
func (a *MimeApps) RemoveHandler(m mimes.MimeType) error {
	if _, ok := a.defaultApps[m]; !ok {
		return nil
	}
	delete(a.defaultApps, m)
	return a.Save()
}

// Entry returns the desktop entry for h, preferring the scanned snapshot.
func (a *MimeApps) Entry(h Handler) (*desktop.Entry, error) {
	if e, ok := a.system.Entry(h); ok {
		return e, nil
	}
	if a.opts.Entries == nil {
		return nil, &NotFoundError{Name: h.String()}
	}
	e, err := a.opts.Entries.Lookup(h.String())
	if err != nil {
		if errors.Is(err, desktop.ErrEntryNotFound) {
			return nil, &NotFoundError{Name: h.String()}
		}
		return nil, err
	}
	return e, nil
}

// ResolveHandler validates a handler id supplied by the user: it must be
// well-formed and its desktop entry must exist and parse.
func (a *MimeApps) ResolveHandler(name string) (Handler, error) {
	h, err := ParseHandler(name)
	if err != nil {
		return "", err
	}
	if _, err := a.Entry(h); err != nil {
		return "", err
	}
	return h, nil
}

// Status returns the MIME types whose defaults list h, sorted. An empty
// result means h is not a default for anything.
func (a *MimeApps) Status(h Handler) []mimes.MimeType {
	var out []mimes.MimeType
	for m, list := range a.defaultApps {
		if list.Contains(h) {
			out = append(out, m)
		}
	}
	slices.Sort(out)
	return out
}

// Rows returns the mappings of one tier sorted by MIME type.
func (a *MimeApps) Rows(tier Tier) []Row {
	var src map[mimes.MimeType]HandlerList
	switch tier {
	case TierDefault:
		src = a.defaultApps
	case TierAdded:
		src = a.addedAssociations
	case TierSystem:
		src = a.system.handlers
	}
	rows := make([]Row, 0, len(src))
	for _, m := range slices.Sorted(maps.Keys(src)) {
		if len(src[m]) == 0 {
			continue
		}
		rows = append(rows, Row{Mime: m, Handlers: slices.Clone(src[m])})
	}
	return rows
}

// Terminal returns the preferred terminal emulator. When none is configured
// the first installed TerminalEmulator is made the default and saved; guessed
// reports that this happened.
func (a *MimeApps) Terminal(ctx context.Context) (entry *desktop.Entry, guessed bool, err error) {
	h, err := a.Handler(ctx, mimes.Terminal)
	if err == nil {
		entry, err = a.Entry(h)
		return entry, false, err
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	for e := range a.system.All() {
		if !e.HasCategory("TerminalEmulator") {
			continue
		}
		a.SetHandler(mimes.Terminal, Handler(e.ID))
		if err := a.Save(); err != nil {
			return nil, false, err
		}
		a.opts.Logger.Debug("guessed terminal emulator", "handler", e.ID)
		return e, true, nil
	}
	return nil, false, ErrNoTerminal
}
