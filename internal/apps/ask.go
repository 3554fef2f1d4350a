// SPDX-License-Identifier: MPL-2.0

package apps

import (
	"context"
	"errors"

	"github.com/handlr-go/handlr/internal/desktop"
	"github.com/handlr-go/handlr/internal/selector"
	"github.com/handlr-go/handlr/pkg/mimes"
)

// MinCandidates is the number of candidates AskHandler tries to reach before
// it stops widening the search to related MIME types.
const MinCandidates = 10

// Candidates gathers the applications offered by AskHandler for m: the
// currently resolved handler, every application declaring m, then (while
// fewer than MinCandidates) applications for MIME types sharing m's file
// extensions. Without known extensions the text/plain extensions are used.
func (a *MimeApps) Candidates(ctx context.Context, m mimes.MimeType) ([]*desktop.Entry, error) {
	var (
		out  []*desktop.Entry
		seen = make(map[string]struct{})
	)
	push := func(e *desktop.Entry) {
		if _, ok := seen[e.ID]; ok {
			return
		}
		seen[e.ID] = struct{}{}
		out = append(out, e)
	}
	pushAll := func(mt mimes.MimeType) {
		list, _ := a.system.Handlers(mt)
		for _, h := range list {
			if e, ok := a.system.Entry(h); ok {
				push(e)
			}
		}
	}

	// The resolved default leads; prompting here would ask twice.
	quiet := *a
	quiet.opts.EnableSelector = false
	if h, err := quiet.Handler(ctx, m); err == nil {
		if e, err := a.Entry(h); err == nil {
			push(e)
		} else if !errors.Is(err, ErrNotFound) {
			return nil, err
		}
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	pushAll(m)

	if len(out) < MinCandidates {
		exts := a.opts.MimeDB.Extensions(m)
		if len(exts) == 0 {
			exts = a.opts.MimeDB.Extensions(mimes.TextPlain)
		}
		for _, ext := range exts {
			alias, ok := a.opts.MimeDB.ForExtension(ext)
			if !ok || alias == m {
				continue
			}
			pushAll(alias)
			if len(out) >= MinCandidates {
				break
			}
		}
	}
	return out, nil
}

// AskHandler lets the user pick an application for m with sel. label renders
// each candidate; nil uses the entry's display label. An empty selection
// returns ErrCancelled.
func (a *MimeApps) AskHandler(ctx context.Context, m mimes.MimeType, sel selector.Selector, label func(*desktop.Entry) string) (*desktop.Entry, error) {
	candidates, err := a.Candidates(ctx, m)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, &NotFoundError{Name: m.String()}
	}
	if label == nil {
		label = (*desktop.Entry).Label
	}

	list := make(HandlerList, 0, len(candidates))
	byID := make(map[Handler]*desktop.Entry, len(candidates))
	for _, e := range candidates {
		h := Handler(e.ID)
		list = append(list, h)
		byID[h] = e
	}

	h, err := pickWith(ctx, sel, list, func(h Handler) string { return label(byID[h]) })
	if err != nil {
		return nil, err
	}
	return byID[h], nil
}
